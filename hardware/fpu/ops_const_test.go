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

package fpu_test

import (
	"testing"

	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
	"github.com/jetsetilly/fpu87/test"
)

// the transcendental constants are stored bit-exactly, with the last bit
// selected by the rounding mode in force at the load.
func TestConstants(t *testing.T) {
	tests := []struct {
		modrm    uint8
		high     uint16
		lowUp    uint64 // value in round-up (and, except L2T, nearest) mode
		lowDown  uint64 // value in round-down and round-to-zero modes
		upAtNear bool   // whether nearest selects the rounded-up encoding
	}{
		{0xe9, 0x4000, 0xd49a784bcd1b8aff, 0xd49a784bcd1b8afe, false}, // FLDL2T
		{0xea, 0x3fff, 0xb8aa3b295c17f0bc, 0xb8aa3b295c17f0bb, true},  // FLDL2E
		{0xeb, 0x4000, 0xc90fdaa22168c235, 0xc90fdaa22168c234, true},  // FLDPI
		{0xec, 0x3ffd, 0x9a209a84fbcff799, 0x9a209a84fbcff798, true},  // FLDLG2
		{0xed, 0x3ffe, 0xb17217f7d1cf79ac, 0xb17217f7d1cf79ab, true},  // FLDLN2
	}

	for _, tc := range tests {
		f, m := newTestFPU()

		// nearest (the reset mode)
		step(t, f, m, 0xd9, tc.modrm)
		expected := tc.lowDown
		if tc.upAtNear {
			expected = tc.lowUp
		}
		test.Equate(t, f.ST(0).High, tc.high)
		test.Equate(t, f.ST(0).Low, expected)

		// round down
		fldcw(t, f, m, 0x047f)
		step(t, f, m, 0xd9, tc.modrm)
		test.Equate(t, f.ST(0).Low, tc.lowDown)

		// round up
		fldcw(t, f, m, 0x087f)
		step(t, f, m, 0xd9, tc.modrm)
		test.Equate(t, f.ST(0).Low, tc.lowUp)

		// round to zero
		fldcw(t, f, m, 0x0c7f)
		step(t, f, m, 0xd9, tc.modrm)
		test.Equate(t, f.ST(0).Low, tc.lowDown)
	}
}

func TestFld1Fldz(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xe8) // FLD1
	equateST(t, f, 0, fx80.One)

	step(t, f, m, 0xd9, 0xee) // FLDZ
	equateST(t, f, 0, fx80.Zero)

	// tags: zero on top of valid
	tw := f.TagWord()
	test.Equate(t, tw>>12&3, 1)
	test.Equate(t, tw>>14&3, 0)
}

// a constant load into a full stack substitutes the indefinite NaN
func TestConstantOverflow(t *testing.T) {
	f, m := newTestFPU()

	for i := 0; i < 8; i++ {
		step(t, f, m, 0xd9, 0xe8) // FLD1
	}
	step(t, f, m, 0xd9, 0xeb) // FLDPI into a full stack

	equateST(t, f, 0, fx80.Indefinite)
	test.Equate(t, f.StatusWord()&0x0241, 0x0241) // C1|SF|IE
}
