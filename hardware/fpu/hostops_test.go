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

	"github.com/jetsetilly/fpu87/hardware/fpu"
	"github.com/jetsetilly/fpu87/test"
)

func TestVtableControlWords(t *testing.T) {
	f, _ := newTestFPU()
	ops := f.Vtable()

	ops.FLDCW(0x047f)
	var cw uint16
	ops.FSTCW(&cw)
	test.Equate(t, cw, 0x047f)

	var sw uint16
	ops.FSTSW(&sw)
	test.Equate(t, sw, f.StatusWord())

	ops.FNINIT()
	ops.FSTCW(&cw)
	test.Equate(t, cw, 0x037f)
}

func TestVtableSaveRestore(t *testing.T) {
	f, m := newTestFPU()
	ops := f.Vtable()

	ld80(t, f, m, oneAndFct)
	ld80(t, f, m, two)

	buf := make([]byte, fpu.SaveImageSize)
	ops.FSAVE(buf)

	cw := f.ControlWord()
	sw := f.StatusWord()
	tw := f.TagWord()

	ops.FNINIT()
	ops.FRSTOR(buf)

	test.Equate(t, f.ControlWord(), cw)
	test.Equate(t, f.StatusWord(), sw)
	test.Equate(t, f.TagWord(), tw)
	equateST(t, f, 0, two)
	equateST(t, f, 1, oneAndFct)
}

// FISTP overrides the rounding mode from its argument and restores it
// afterwards
func TestVtableFistp(t *testing.T) {
	f, m := newTestFPU()
	ops := f.Vtable()

	ld80(t, f, m, oneAndFct)
	test.Equate(t, ops.FISTP(3), uint32(1)) // round to zero

	ld80(t, f, m, oneAndFct)
	test.Equate(t, ops.FISTP(0), uint32(2)) // nearest

	// the stack was popped both times
	test.Equate(t, f.TagWord(), 0xffff)

	// the mode in force beforehand is restored: an FRNDINT after the
	// overrides still rounds to nearest
	ld80(t, f, m, oneAndFct)
	ops.FRNDINT()
	equateST(t, f, 0, two)
}

func TestVtableFistpEmpty(t *testing.T) {
	f, _ := newTestFPU()
	ops := f.Vtable()

	test.Equate(t, ops.FISTP(0), uint32(0x80000000))
}

func TestVtableClex(t *testing.T) {
	f, m := newTestFPU()
	ops := f.Vtable()

	// provoke a masked exception
	step(t, f, m, 0xdd, 0xd8) // FSTP from empty
	test.Equate(t, f.StatusWord()&fpu.SWIE, fpu.SWIE)

	ops.FCLEX()
	test.Equate(t, f.StatusWord()&0x80ff, 0)
}
