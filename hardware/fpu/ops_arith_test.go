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
	"math"
	"testing"

	"github.com/jetsetilly/fpu87/hardware/fpu"
	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
	"github.com/jetsetilly/fpu87/test"
)

// FLD1; FLDZ; FADD ST(1),ST leaves +0 on top of +1, with clean condition
// codes.
func TestAddToSecond(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xe8) // FLD1
	step(t, f, m, 0xd9, 0xee) // FLDZ
	step(t, f, m, 0xdc, 0xc1) // FADD ST(1),ST

	equateST(t, f, 0, fx80.Zero)
	equateST(t, f, 1, one)
	test.Equate(t, f.StatusWord(), 0x3000)
	test.Equate(t, f.TagWord(), 0x1fff)
}

// an arithmetic operation on an empty stack underflows and, with the
// invalid exception masked, commits the indefinite NaN.
func TestAddFromEmpty(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd8, 0xc1) // FADD ST,ST(1)

	equateST(t, f, 0, fx80.Indefinite)
	sw := f.StatusWord()
	test.Equate(t, sw&fpu.SWIE, fpu.SWIE)
	test.Equate(t, sw&fpu.SWSF, fpu.SWSF)
	test.Equate(t, sw&fpu.SWC1, 0)

	// the masked commit reclassifies the destination slot
	test.Equate(t, f.TagWord(), 0xfffe)
}

// adding infinities of opposite sign is invalid
func TestAddOppositeInfinities(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, posInf)
	ld80(t, f, m, negInf)
	step(t, f, m, 0xdc, 0xc1) // FADD ST(1),ST

	equateST(t, f, 1, fx80.Indefinite)
	test.Equate(t, f.StatusWord()&fpu.SWIE, fpu.SWIE)
}

func TestAddMemoryForms(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xe8) // FLD1

	m.ea = 0x1000
	m.Write32(m.ea, math.Float32bits(2.0))
	step(t, f, m, 0xd8, 0x00) // FADD m32real
	equateST(t, f, 0, three)

	m.Write64(m.ea, math.Float64bits(9.0))
	step(t, f, m, 0xdc, 0x00) // FADD m64real
	equateST(t, f, 0, twelve)

	m.Write16(m.ea, 0xfffa)   // -6
	step(t, f, m, 0xde, 0x00) // FIADD m16int
	equateST(t, f, 0, fx80.Float{High: 0x4001, Low: 0xc000000000000000})

	m.Write32(m.ea, 6)
	step(t, f, m, 0xda, 0x00) // FIADD m32int
	equateST(t, f, 0, twelve)
}

func TestSubtractOrdering(t *testing.T) {
	f, m := newTestFPU()

	// ST(0)=12, ST(1)=3 after the two loads
	ld80(t, f, m, three)
	ld80(t, f, m, twelve)

	// FSUB ST,ST(1) computes ST(0) - ST(1)
	step(t, f, m, 0xd8, 0xe1)
	equateST(t, f, 0, fx80.Float{High: 0x4002, Low: 0x9000000000000000}) // 9

	// FSUBR ST,ST(1) computes ST(1) - ST(0) = -6
	step(t, f, m, 0xd8, 0xe9)
	equateST(t, f, 0, fx80.Float{High: 0xc001, Low: 0xc000000000000000})
}

func TestSubtractReverseMemory(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, one)

	// FSUBR m32real computes mem - ST(0) = 2 - 1
	m.ea = 0x1000
	m.Write32(m.ea, math.Float32bits(2.0))
	step(t, f, m, 0xd8, 0x28)
	equateST(t, f, 0, one)
}

func TestSubtractPop(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, three)
	ld80(t, f, m, one)

	// FSUBP ST(1),ST computes ST(1) - ST(0) and pops
	step(t, f, m, 0xde, 0xe9)
	equateST(t, f, 0, two)
	test.Equate(t, f.StatusWord()>>11&7, 7)
}

func TestMultiply(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, three)
	ld80(t, f, m, two)

	// FMULP ST(1),ST
	step(t, f, m, 0xde, 0xc9)
	equateST(t, f, 0, fx80.Float{High: 0x4001, Low: 0xc000000000000000}) // 6
}

func TestDivide(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, three)
	ld80(t, f, m, twelve)

	// FDIV ST,ST(1) = 12/3
	step(t, f, m, 0xd8, 0xf1)
	equateST(t, f, 0, fx80.Float{High: 0x4001, Low: 0x8000000000000000}) // 4

	// FDIVR ST,ST(1) = 3/4
	step(t, f, m, 0xd8, 0xf9)
	equateST(t, f, 0, fx80.Float{High: 0x3ffe, Low: 0xc000000000000000}) // 0.75
}

// the divide of a signaling NaN is invalid before the kernel runs
func TestDivideSignalingNaN(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, sNaN)
	ld80(t, f, m, one)

	step(t, f, m, 0xd8, 0xf1) // FDIV ST,ST(1)
	equateST(t, f, 0, fx80.Indefinite)
	test.Equate(t, f.StatusWord()&fpu.SWIE, fpu.SWIE)
}

// FIDIV m16int reads a full 32 bits and truncates, faithfully to the
// original
func TestDivideWideRead(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, twelve)

	m.ea = 0x1000
	// the 16-bit operand is 3; the high word would change the value if
	// the full 32 bits were used as-is
	m.Write32(m.ea, 0x00010003)
	step(t, f, m, 0xde, 0x30)                                            // FIDIV m16int
	equateST(t, f, 0, fx80.Float{High: 0x4001, Low: 0x8000000000000000}) // 4
}

// precision control narrows intermediate results: 2^24 + 1 at single
// precision is 2^24
func TestPrecisionControl(t *testing.T) {
	f, m := newTestFPU()

	fldcw(t, f, m, 0x007f) // PC=single

	ld80(t, f, m, one)
	m.ea = 0x1000
	m.Write32(m.ea, math.Float32bits(16777216.0))
	step(t, f, m, 0xd8, 0x00) // FADD m32real

	equateST(t, f, 0, fx80.Float{High: 0x4017, Low: 0x8000000000000000})
	test.Equate(t, f.StatusWord()&fpu.SWPE, fpu.SWPE)

	// the same sum is exact at extended precision
	f.Reset()
	ld80(t, f, m, one)
	m.ea = 0x4000
	m.Write32(m.ea, math.Float32bits(16777216.0))
	step(t, f, m, 0xd8, 0x00)
	equateST(t, f, 0, fx80.Float{High: 0x4017, Low: 0x8000008000000000})
	test.Equate(t, f.StatusWord()&fpu.SWPE, 0)
}

func TestPrecisionControlDouble(t *testing.T) {
	f, m := newTestFPU()

	fldcw(t, f, m, 0x027f) // PC=double

	ld80(t, f, m, one)
	m.ea = 0x1000
	m.Write64(m.ea, math.Float64bits(9007199254740992.0)) // 2^53
	step(t, f, m, 0xdc, 0x00)                             // FADD m64real

	equateST(t, f, 0, fx80.Float{High: 0x4034, Low: 0x8000000000000000})
	test.Equate(t, f.StatusWord()&fpu.SWPE, fpu.SWPE)
}
