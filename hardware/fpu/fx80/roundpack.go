// This file is part of fpu87.
//
// fpu87 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fpu87 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fpu87.  If not, see <https://www.gnu.org/licenses/>.

package fx80

import "math/bits"

// roundAndPackX80 takes a value normalized so that sig0 has its integer bit
// set (bit 63), with sig1 holding the bits below the rounding point, and
// produces the final 80-bit result. Overflow, underflow and inexactness are
// raised on the context. Tininess is detected after rounding.
func (c *Context) roundAndPackX80(sign bool, exp int32, sig0, sig1 uint64) Float {
	increment := c.incrementX80(sign, sig1)

	if exp >= 0x7ffe || exp <= 0 {
		if exp > 0x7ffe || (exp == 0x7ffe && sig0 == 0xffffffffffffffff && increment) {
			c.raise(FlagOverflow | FlagInexact)
			if c.Rounding == RoundZero ||
				(sign && c.Rounding == RoundUp) ||
				(!sign && c.Rounding == RoundDown) {
				return packX80(sign, 0x7ffe, 0xffffffffffffffff)
			}
			return infX80(sign)
		}

		if exp <= 0 {
			isTiny := exp < 0 || !increment || sig0 < 0xffffffffffffffff
			sig0, sig1 = shift64ExtraRightJamming(sig0, sig1, 1-exp)
			exp = 0
			if isTiny && sig1 != 0 {
				c.raise(FlagUnderflow)
			}
			if sig1 != 0 {
				c.raise(FlagInexact)
			}
			if c.incrementX80(sign, sig1) {
				sig0++
				if c.Rounding == RoundNearestEven && sig1<<1 == 0 {
					sig0 &^= 1
				}
				if int64(sig0) < 0 {
					exp = 1
				}
			}
			return packX80(sign, exp, sig0)
		}
	}

	if sig1 != 0 {
		c.raise(FlagInexact)
	}
	if increment {
		sig0++
		if sig0 == 0 {
			exp++
			sig0 = 0x8000000000000000
		} else if c.Rounding == RoundNearestEven && sig1<<1 == 0 {
			sig0 &^= 1
		}
	} else if sig0 == 0 {
		exp = 0
	}
	return packX80(sign, exp, sig0)
}

func (c *Context) incrementX80(sign bool, sig1 uint64) bool {
	switch c.Rounding {
	case RoundNearestEven:
		return int64(sig1) < 0
	case RoundZero:
		return false
	case RoundDown:
		return sign && sig1 != 0
	case RoundUp:
		return !sign && sig1 != 0
	}
	return false
}

// normalizeRoundAndPackX80 accepts an unnormalized significand (integer bit
// anywhere, or in sig1) and normalizes before rounding.
func (c *Context) normalizeRoundAndPackX80(sign bool, exp int32, sig0, sig1 uint64) Float {
	if sig0 == 0 {
		sig0, sig1 = sig1, 0
		exp -= 64
		if sig0 == 0 {
			return zeroX80(sign)
		}
	}
	shiftCount := int32(bits.LeadingZeros64(sig0))
	sig0, sig1 = shortShift128Left(sig0, sig1, shiftCount)
	exp -= shiftCount
	return c.roundAndPackX80(sign, exp, sig0, sig1)
}

// normalizeX80Subnormal brings a denormal significand into normal form,
// returning the adjusted exponent.
func normalizeX80Subnormal(sig uint64) (int32, uint64) {
	shiftCount := int32(bits.LeadingZeros64(sig))
	return 1 - shiftCount, sig << uint(shiftCount)
}

// propagateNaN implements the two-operand NaN result rule: signaling NaNs
// raise invalid and are quietened; an a-side NaN wins unless it was the
// signaling one and b is also NaN.
func (c *Context) propagateNaN(a, b Float) Float {
	aIsNaN := a.IsNaN()
	aIsSignaling := a.IsSignalingNaN()
	bIsNaN := b.IsNaN()
	bIsSignaling := b.IsSignalingNaN()

	if aIsSignaling || bIsSignaling {
		c.raise(FlagInvalid)
	}
	a.Low |= 0xc000000000000000
	b.Low |= 0xc000000000000000
	if aIsNaN {
		if aIsSignaling && bIsNaN {
			return b
		}
		return a
	}
	return b
}
