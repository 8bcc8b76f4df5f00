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

// Eq is the quiet equality test. NaN operands compare unequal; only a
// signaling NaN raises invalid.
func (c *Context) Eq(a, b Float) bool {
	if a.IsNaN() || b.IsNaN() {
		if a.IsSignalingNaN() || b.IsSignalingNaN() {
			c.raise(FlagInvalid)
		}
		return false
	}
	return a.Low == b.Low &&
		(a.High == b.High ||
			(a.Low == 0 && (a.High|b.High)&0x7fff == 0))
}

// Lt returns a < b. Any NaN operand raises invalid and compares false.
func (c *Context) Lt(a, b Float) bool {
	if a.IsNaN() || b.IsNaN() {
		c.raise(FlagInvalid)
		return false
	}
	aSign := a.sign()
	bSign := b.sign()
	if aSign != bSign {
		return aSign &&
			(uint16((a.High|b.High)<<1) != 0 || a.Low|b.Low != 0)
	}
	if aSign {
		return lt128(uint64(b.High), b.Low, uint64(a.High), a.Low)
	}
	return lt128(uint64(a.High), a.Low, uint64(b.High), b.Low)
}

// Le returns a <= b. Any NaN operand raises invalid and compares false.
func (c *Context) Le(a, b Float) bool {
	if a.IsNaN() || b.IsNaN() {
		c.raise(FlagInvalid)
		return false
	}
	aSign := a.sign()
	bSign := b.sign()
	if aSign != bSign {
		return aSign ||
			(uint16((a.High|b.High)<<1) == 0 && a.Low|b.Low == 0)
	}
	if aSign {
		return le128(uint64(b.High), b.Low, uint64(a.High), a.Low)
	}
	return le128(uint64(a.High), a.Low, uint64(b.High), b.Low)
}
