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

import "fmt"

// Float is the raw image of an 80-bit extended-precision value. High holds
// the sign in bit 15 and the biased exponent in bits 14:0. Low is the 64-bit
// significand with an explicit integer bit in bit 63.
type Float struct {
	High uint16
	Low  uint64
}

// Preset bit patterns. Indefinite is the quiet NaN the x87 substitutes for
// invalid results when the invalid exception is masked.
var (
	Zero       = Float{High: 0x0000, Low: 0x0000000000000000}
	One        = Float{High: 0x3fff, Low: 0x8000000000000000}
	NegInf     = Float{High: 0xffff, Low: 0x8000000000000000}
	Indefinite = Float{High: 0xffff, Low: 0xc000000000000000}
)

func (f Float) String() string {
	return fmt.Sprintf("%04x:%016x", f.High, f.Low)
}

// Sign returns true for negative values (including -0 and NaNs with the
// sign bit set).
func (f Float) Sign() bool {
	return f.High&0x8000 != 0
}

func (f Float) exp() int32 {
	return int32(f.High & 0x7fff)
}

func (f Float) sign() bool {
	return f.High&0x8000 != 0
}

// IsNaN returns true for both quiet and signaling NaNs.
func (f Float) IsNaN() bool {
	return f.High&0x7fff == 0x7fff && f.Low<<1 != 0
}

// IsSignalingNaN returns true when the quiet bit (bit 62) of a NaN is clear.
func (f Float) IsSignalingNaN() bool {
	low := f.Low &^ 0x4000000000000000
	return f.High&0x7fff == 0x7fff && low<<1 != 0 && f.Low == low
}

// IsQuietNaN returns true for NaNs with the quiet bit set and a non-empty
// payload. Note that the indefinite QNaN itself fails this test: its payload
// is empty. The unordered compare instructions rely on that wrinkle.
func (f Float) IsQuietNaN() bool {
	low := f.Low &^ 0x4000000000000000
	return f.High&0x7fff == 0x7fff && low<<1 != 0 && f.Low != low
}

// IsZero returns true for ±0. The significand test deliberately ignores the
// integer bit, so a pseudo-denormal with an empty fraction also reads as
// zero.
func (f Float) IsZero() bool {
	return f.High&0x7fff == 0 && f.Low<<1 == 0
}

// IsInf returns true for ±∞.
func (f Float) IsInf() bool {
	return f.High&0x7fff == 0x7fff && f.Low<<1 == 0
}

// IsDenormal returns true for values with a zero exponent, a clear integer
// bit and a non-zero fraction.
func (f Float) IsDenormal() bool {
	return f.High&0x7fff == 0 && f.Low&0x8000000000000000 == 0 && f.Low<<1 != 0
}

// Abs returns f with the sign bit cleared.
func (f Float) Abs() Float {
	f.High &= 0x7fff
	return f
}

// Neg returns f with the sign bit flipped.
func (f Float) Neg() Float {
	f.High ^= 0x8000
	return f
}

func packX80(sign bool, exp int32, sig uint64) Float {
	var h uint16
	if sign {
		h = 0x8000
	}
	return Float{High: h | uint16(exp), Low: sig}
}

func infX80(sign bool) Float {
	return packX80(sign, 0x7fff, 0x8000000000000000)
}

func zeroX80(sign bool) Float {
	return packX80(sign, 0, 0)
}
