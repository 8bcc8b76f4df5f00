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

// addSigs adds the magnitudes of a and b, both carrying the given result
// sign.
func (c *Context) addSigs(a, b Float, sign bool) Float {
	aSig := a.Low
	aExp := a.exp()
	bSig := b.Low
	bExp := b.exp()

	var zSig0, zSig1 uint64
	var zExp int32

	expDiff := aExp - bExp
	switch {
	case expDiff > 0:
		if aExp == 0x7fff {
			if aSig<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			return a
		}
		if bExp == 0 {
			expDiff--
		}
		bSig, zSig1 = shift64ExtraRightJamming(bSig, 0, expDiff)
		zExp = aExp

	case expDiff < 0:
		if bExp == 0x7fff {
			if bSig<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			return infX80(sign)
		}
		if aExp == 0 {
			expDiff++
		}
		aSig, zSig1 = shift64ExtraRightJamming(aSig, 0, -expDiff)
		zExp = bExp

	default:
		if aExp == 0x7fff {
			if (aSig|bSig)<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			return a
		}
		zSig1 = 0
		zSig0 = aSig + bSig
		if aExp == 0 {
			zExp, zSig0 = normalizeX80Subnormal(zSig0)
			return c.roundAndPackX80(sign, zExp, zSig0, zSig1)
		}
		zExp = aExp
		// both integer bits were set so the sum carried out of bit 63
		zSig0, zSig1 = shift64ExtraRightJamming(zSig0, zSig1, 1)
		zSig0 |= 0x8000000000000000
		zExp++
		return c.roundAndPackX80(sign, zExp, zSig0, zSig1)
	}

	zSig0 = aSig + bSig
	if int64(zSig0) < 0 {
		return c.roundAndPackX80(sign, zExp, zSig0, zSig1)
	}
	zSig0, zSig1 = shift64ExtraRightJamming(zSig0, zSig1, 1)
	zSig0 |= 0x8000000000000000
	zExp++
	return c.roundAndPackX80(sign, zExp, zSig0, zSig1)
}

// subSigs subtracts the magnitude of b from a, with sign the sign of a.
func (c *Context) subSigs(a, b Float, sign bool) Float {
	aSig := a.Low
	aExp := a.exp()
	bSig := b.Low
	bExp := b.exp()

	var zSig0, zSig1 uint64

	expDiff := aExp - bExp
	if expDiff > 0 {
		if aExp == 0x7fff {
			if aSig<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			return a
		}
		if bExp == 0 {
			expDiff--
		}
		bSig, zSig1 = shift128RightJamming(bSig, 0, expDiff)
		zSig0, zSig1 = sub128(aSig, 0, bSig, zSig1)
		return c.normalizeRoundAndPackX80(sign, aExp, zSig0, zSig1)
	}

	if expDiff < 0 {
		if bExp == 0x7fff {
			if bSig<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			return infX80(!sign)
		}
		if aExp == 0 {
			expDiff++
		}
		aSig, zSig1 = shift128RightJamming(aSig, 0, -expDiff)
		zSig0, zSig1 = sub128(bSig, 0, aSig, zSig1)
		return c.normalizeRoundAndPackX80(!sign, bExp, zSig0, zSig1)
	}

	if aExp == 0x7fff {
		if (aSig|bSig)<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		c.raise(FlagInvalid)
		return Indefinite
	}
	if aExp == 0 {
		aExp = 1
		bExp = 1
	}
	switch {
	case bSig < aSig:
		zSig0, zSig1 = sub128(aSig, 0, bSig, 0)
		return c.normalizeRoundAndPackX80(sign, aExp, zSig0, zSig1)
	case aSig < bSig:
		zSig0, zSig1 = sub128(bSig, 0, aSig, 0)
		return c.normalizeRoundAndPackX80(!sign, bExp, zSig0, zSig1)
	}
	return zeroX80(c.Rounding == RoundDown)
}

// Add returns a+b rounded at extended precision.
func (c *Context) Add(a, b Float) Float {
	if a.sign() == b.sign() {
		return c.addSigs(a, b, a.sign())
	}
	return c.subSigs(a, b, a.sign())
}

// Sub returns a-b rounded at extended precision.
func (c *Context) Sub(a, b Float) Float {
	if a.sign() == b.sign() {
		return c.subSigs(a, b, a.sign())
	}
	return c.addSigs(a, b, a.sign())
}

// Mul returns a*b rounded at extended precision.
func (c *Context) Mul(a, b Float) Float {
	aSig := a.Low
	aExp := a.exp()
	bSig := b.Low
	bExp := b.exp()
	zSign := a.sign() != b.sign()

	if aExp == 0x7fff {
		if aSig<<1 != 0 || (bExp == 0x7fff && bSig<<1 != 0) {
			return c.propagateNaN(a, b)
		}
		if bExp == 0 && bSig == 0 {
			c.raise(FlagInvalid)
			return Indefinite
		}
		return infX80(zSign)
	}
	if bExp == 0x7fff {
		if bSig<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		if aExp == 0 && aSig == 0 {
			c.raise(FlagInvalid)
			return Indefinite
		}
		return infX80(zSign)
	}
	if aExp == 0 {
		if aSig == 0 {
			return zeroX80(zSign)
		}
		aExp, aSig = normalizeX80Subnormal(aSig)
	}
	if bExp == 0 {
		if bSig == 0 {
			return zeroX80(zSign)
		}
		bExp, bSig = normalizeX80Subnormal(bSig)
	}

	zExp := aExp + bExp - 0x3ffe
	zSig0, zSig1 := bits.Mul64(aSig, bSig)
	if int64(zSig0) > 0 {
		zSig0, zSig1 = shortShift128Left(zSig0, zSig1, 1)
		zExp--
	}
	return c.roundAndPackX80(zSign, zExp, zSig0, zSig1)
}

// Div returns a/b rounded at extended precision.
func (c *Context) Div(a, b Float) Float {
	aSig := a.Low
	aExp := a.exp()
	bSig := b.Low
	bExp := b.exp()
	zSign := a.sign() != b.sign()

	if aExp == 0x7fff {
		if aSig<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		if bExp == 0x7fff {
			if bSig<<1 != 0 {
				return c.propagateNaN(a, b)
			}
			c.raise(FlagInvalid)
			return Indefinite
		}
		return infX80(zSign)
	}
	if bExp == 0x7fff {
		if bSig<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		return zeroX80(zSign)
	}
	if bExp == 0 {
		if bSig == 0 {
			if aExp == 0 && aSig == 0 {
				c.raise(FlagInvalid)
				return Indefinite
			}
			c.raise(FlagDivByZero)
			return infX80(zSign)
		}
		bExp, bSig = normalizeX80Subnormal(bSig)
	}
	if aExp == 0 {
		if aSig == 0 {
			return zeroX80(zSign)
		}
		aExp, aSig = normalizeX80Subnormal(aSig)
	}

	zExp := aExp - bExp + 0x3ffe
	var rem1 uint64
	if bSig <= aSig {
		aSig, rem1 = shift128Right(aSig, 0, 1)
		zExp++
	}

	// aSig < bSig here, so the 128/64 divisions below cannot overflow
	zSig0, r := bits.Div64(aSig, rem1, bSig)
	zSig1, r := bits.Div64(r, 0, bSig)
	if r != 0 {
		zSig1 |= 1
	}
	return c.roundAndPackX80(zSign, zExp, zSig0, zSig1)
}

// Sqrt returns the square root of a, correctly rounded at extended
// precision. Negative operands (other than -0) are invalid.
func (c *Context) Sqrt(a Float) Float {
	aSig := a.Low
	aExp := a.exp()
	aSign := a.sign()

	if aExp == 0x7fff {
		if aSig<<1 != 0 {
			return c.propagateNaN(a, a)
		}
		if !aSign {
			return a
		}
		c.raise(FlagInvalid)
		return Indefinite
	}
	if aSign {
		if aExp == 0 && aSig == 0 {
			return a
		}
		c.raise(FlagInvalid)
		return Indefinite
	}
	if aExp == 0 {
		if aSig == 0 {
			return Zero
		}
		aExp, aSig = normalizeX80Subnormal(aSig)
	}

	zExp := ((aExp - 0x3fff) >> 1) + 0x3fff

	// build a radicand in [2^126, 2^128) so the integer root occupies all
	// 64 bits
	var radHi, radLo uint64
	if (aExp-0x3fff)&1 != 0 {
		radHi, radLo = aSig, 0
	} else {
		radHi, radLo = aSig>>1, aSig<<63
	}
	root, remHi, remLo := sqrt128(radHi, radLo)

	// the true root never lands exactly halfway between representable
	// values, so a guard bit plus a sticky bit is enough for every
	// rounding mode
	var zSig1 uint64
	if remHi != 0 || remLo > root {
		zSig1 = 0x8000000000000000
	}
	if remHi|remLo != 0 {
		zSig1 |= 1
	}
	return c.roundAndPackX80(false, zExp, root, zSig1)
}

// sqrt128 computes the integer square root of the 128-bit value hi:lo,
// returning the 64-bit root and the 65-bit remainder. Restoring
// digit-by-digit method, two radicand bits per step.
func sqrt128(hi, lo uint64) (root, remHi, remLo uint64) {
	for i := 0; i < 64; i++ {
		remHi = remHi<<2 | remLo>>62
		remLo = remLo<<2 | hi>>62
		hi = hi<<2 | lo>>62
		lo <<= 2

		// trial subtrahend is 4*root+1, which can occupy 66 bits
		tHi := root >> 62
		tLo := root<<2 | 1
		root <<= 1
		if remHi > tHi || (remHi == tHi && remLo >= tLo) {
			remHi, remLo = sub128(remHi, remLo, tHi, tLo)
			root |= 1
		}
	}
	return root, remHi, remLo
}

// Rem returns the IEEE remainder of a with respect to b: a - b*n where n is
// a/b rounded to the nearest integer.
func (c *Context) Rem(a, b Float) Float {
	aSig0 := a.Low
	aExp := a.exp()
	aSign := a.sign()
	bSig := b.Low
	bExp := b.exp()

	if aExp == 0x7fff {
		if aSig0<<1 != 0 || (bExp == 0x7fff && bSig<<1 != 0) {
			return c.propagateNaN(a, b)
		}
		c.raise(FlagInvalid)
		return Indefinite
	}
	if bExp == 0x7fff {
		if bSig<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		return a
	}
	if bExp == 0 {
		if bSig == 0 {
			c.raise(FlagInvalid)
			return Indefinite
		}
		bExp, bSig = normalizeX80Subnormal(bSig)
	}
	if aExp == 0 {
		if aSig0<<1 == 0 {
			return a
		}
		aExp, aSig0 = normalizeX80Subnormal(aSig0)
	}

	zSign := aSign
	expDiff := aExp - bExp
	var aSig1 uint64

	if expDiff < 0 {
		if expDiff < -1 {
			return a
		}
		aSig0, aSig1 = shift128Right(aSig0, 0, 1)
		expDiff = 0
	}

	var q uint64
	if bSig <= aSig0 {
		aSig0 -= bSig
		q = 1
	}
	expDiff -= 64
	for expDiff > 0 {
		q = estimateDiv128To64(aSig0, aSig1, bSig)
		if q > 2 {
			q -= 2
		} else {
			q = 0
		}
		term0, term1 := bits.Mul64(bSig, q)
		aSig0, aSig1 = sub128(aSig0, aSig1, term0, term1)
		aSig0, aSig1 = shortShift128Left(aSig0, aSig1, 62)
		expDiff -= 62
	}
	expDiff += 64

	var term0, term1 uint64
	if expDiff > 0 {
		q = estimateDiv128To64(aSig0, aSig1, bSig)
		if q > 2 {
			q -= 2
		} else {
			q = 0
		}
		q >>= uint(64 - expDiff)
		term0, term1 = bits.Mul64(bSig, q<<uint(64-expDiff))
		aSig0, aSig1 = sub128(aSig0, aSig1, term0, term1)
		term0, term1 = shortShift128Left(0, bSig, 64-expDiff)
		for le128(term0, term1, aSig0, aSig1) {
			q++
			aSig0, aSig1 = sub128(aSig0, aSig1, term0, term1)
		}
	} else {
		term0 = bSig
		term1 = 0
	}

	alt0, alt1 := sub128(term0, term1, aSig0, aSig1)
	if lt128(alt0, alt1, aSig0, aSig1) ||
		(eq128(alt0, alt1, aSig0, aSig1) && q&1 != 0) {
		aSig0, aSig1 = alt0, alt1
		zSign = !zSign
	}
	return c.normalizeRoundAndPackX80(zSign, bExp+expDiff, aSig0, aSig1)
}

// estimateDiv128To64 returns the exact quotient of the 128-bit value a0:a1
// by b, saturating when it would not fit in 64 bits.
func estimateDiv128To64(a0, a1, b uint64) uint64 {
	if b <= a0 {
		return 0xffffffffffffffff
	}
	q, _ := bits.Div64(a0, a1, b)
	return q
}

// RoundToInt rounds a to an integer value in the current rounding mode,
// keeping the extended format.
func (c *Context) RoundToInt(a Float) Float {
	aExp := a.exp()

	if aExp >= 0x403e {
		if aExp == 0x7fff && a.Low<<1 != 0 {
			return c.propagateNaN(a, a)
		}
		return a
	}

	if aExp < 0x3fff {
		if aExp == 0 && a.Low<<1 == 0 {
			return a
		}
		c.raise(FlagInexact)
		aSign := a.sign()
		switch c.Rounding {
		case RoundNearestEven:
			if aExp == 0x3ffe && a.Low<<1 != 0 {
				return packX80(aSign, 0x3fff, 0x8000000000000000)
			}
		case RoundDown:
			if aSign {
				return packX80(true, 0x3fff, 0x8000000000000000)
			}
			return zeroX80(false)
		case RoundUp:
			if aSign {
				return zeroX80(true)
			}
			return packX80(false, 0x3fff, 0x8000000000000000)
		}
		return zeroX80(aSign)
	}

	lastBitMask := uint64(1) << uint(0x403e-aExp)
	roundBitsMask := lastBitMask - 1
	z := a

	switch c.Rounding {
	case RoundNearestEven:
		z.Low += lastBitMask >> 1
		if z.Low&roundBitsMask == 0 {
			z.Low &^= lastBitMask
		}
	case RoundDown, RoundUp:
		if z.sign() == (c.Rounding == RoundDown) {
			z.Low += roundBitsMask
		}
	}

	z.Low &^= roundBitsMask
	if z.Low == 0 {
		z.High++
		z.Low = 0x8000000000000000
	}
	if z.Low != a.Low {
		c.raise(FlagInexact)
	}
	return z
}

// Scale returns a scaled by 2 to the power of b truncated to an integer.
func (c *Context) Scale(a, b Float) Float {
	aSig := a.Low
	aExp := a.exp()
	aSign := a.sign()
	bSig := b.Low
	bExp := b.exp()
	bSign := b.sign()

	if aExp == 0x7fff {
		if aSig<<1 != 0 || (bExp == 0x7fff && bSig<<1 != 0) {
			return c.propagateNaN(a, b)
		}
		if bExp == 0x7fff && bSign {
			c.raise(FlagInvalid)
			return Indefinite
		}
		return a
	}
	if bExp == 0x7fff {
		if bSig<<1 != 0 {
			return c.propagateNaN(a, b)
		}
		if aExp == 0 && aSig == 0 {
			if !bSign {
				c.raise(FlagInvalid)
				return Indefinite
			}
			return a
		}
		if bSign {
			return zeroX80(aSign)
		}
		return infX80(aSign)
	}
	if aExp == 0 {
		if aSig == 0 {
			return a
		}
		aExp, aSig = normalizeX80Subnormal(aSig)
	}
	if bExp == 0 || bExp < 0x3fff {
		// |b| < 1 truncates to zero
		return a
	}
	if bExp > 0x400f {
		if bSign {
			return c.roundAndPackX80(aSign, -0x6001, aSig, 0)
		}
		return c.roundAndPackX80(aSign, 0xe000, aSig, 0)
	}

	shiftCount := uint(0x403e - bExp)
	scale := int32(bSig >> shiftCount)
	if bSign {
		aExp -= scale
	} else {
		aExp += scale
	}
	return c.roundAndPackX80(aSign, aExp, aSig, 0)
}
