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
	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
	"github.com/jetsetilly/fpu87/test"
)

func TestControlWord(t *testing.T) {
	f, m := newTestFPU()

	fldcw(t, f, m, 0x047f)
	test.Equate(t, f.ControlWord(), 0x047f)

	m.ea = 0x3000
	step(t, f, m, 0xd9, 0x38) // FSTCW
	test.Equate(t, m.Read16(0x3000), 0x047f)
}

// the kernel rounding mode follows the control word RC field: the result of
// 1/3 differs in the last bit between nearest and down
func TestRoundingModeFollowsCW(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xe8) // FLD1
	m.ea = 0x1000
	m.Write32(m.ea, 0x40400000) // 3.0
	step(t, f, m, 0xd8, 0x30)   // FDIV m32real
	equateST(t, f, 0, fx80.Float{High: 0x3ffd, Low: 0xaaaaaaaaaaaaaaab})

	f.Reset()
	fldcw(t, f, m, 0x077f) // round down
	step(t, f, m, 0xd9, 0xe8)
	m.ea = 0x1000
	step(t, f, m, 0xd8, 0x30)
	equateST(t, f, 0, fx80.Float{High: 0x3ffd, Low: 0xaaaaaaaaaaaaaaaa})
}

func TestStswAx(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xee) // FLDZ
	step(t, f, m, 0xdf, 0xe0) // FSTSW AX
	test.Equate(t, m.ax, f.StatusWord())
	test.Equate(t, m.ax>>11&7, 7)
}

func TestStswMemory(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xee) // FLDZ
	m.ea = 0x3000
	step(t, f, m, 0xdd, 0x38) // FSTSW m2byte
	test.Equate(t, m.Read16(0x3000), f.StatusWord())
}

func TestXch(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, one)
	ld80(t, f, m, two)

	step(t, f, m, 0xd9, 0xc9) // FXCH ST(1)
	equateST(t, f, 0, one)
	equateST(t, f, 1, two)
}

// exchanging with an empty register fills that register with indefinite
// before the swap, so the indefinite ends up in ST(0)
func TestXchEmpty(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, one)
	step(t, f, m, 0xd9, 0xc9) // FXCH ST(1)

	equateST(t, f, 0, fx80.Indefinite)
	equateST(t, f, 1, one)
	test.Equate(t, f.StatusWord()&fpu.SWIE, fpu.SWIE)
}

func TestFree(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, one)
	test.Equate(t, f.TagWord(), 0x3fff)

	step(t, f, m, 0xdd, 0xc0) // FFREE ST(0)
	test.Equate(t, f.TagWord(), 0xffff)

	// the register bits survive
	equateST(t, f, 0, one)
}

func TestIncDecStp(t *testing.T) {
	f, m := newTestFPU()

	step(t, f, m, 0xd9, 0xf6) // FDECSTP
	test.Equate(t, f.StatusWord()>>11&7, 7)

	step(t, f, m, 0xd9, 0xf7) // FINCSTP
	test.Equate(t, f.StatusWord()>>11&7, 0)
}

func TestInit(t *testing.T) {
	f, m := newTestFPU()

	ld80(t, f, m, one)
	fldcw(t, f, m, 0x047f)

	step(t, f, m, 0xdb, 0xe3) // FINIT
	test.Equate(t, f.ControlWord(), 0x037f)
	test.Equate(t, f.StatusWord(), 0x0000)
	test.Equate(t, f.TagWord(), 0xffff)
}

// environment layout in 16-bit real mode: CW at +0, SW at +2, TW at +4
func TestEnv16(t *testing.T) {
	f, m := newTestFPU()
	m.cr0 = 0x0
	m.opsize32 = false

	step(t, f, m, 0xd9, 0xee) // FLDZ
	m.ea = 0x3000
	step(t, f, m, 0xd9, 0x30) // FSTENV

	test.Equate(t, m.Read16(0x3000), f.ControlWord())
	test.Equate(t, m.Read16(0x3002), f.StatusWord())
	test.Equate(t, m.Read16(0x3004), f.TagWord())
}

// environment layout with a 32-bit operand size: CW at +0, SW at +4, TW
// at +8
func TestEnv32(t *testing.T) {
	f, m := newTestFPU()
	m.cr0 = 0x1
	m.opsize32 = true

	step(t, f, m, 0xd9, 0xee) // FLDZ
	m.ea = 0x3000
	step(t, f, m, 0xd9, 0x30) // FSTENV

	test.Equate(t, m.Read16(0x3000), f.ControlWord())
	test.Equate(t, m.Read16(0x3004), f.StatusWord())
	test.Equate(t, m.Read16(0x3008), f.TagWord())
}

func TestLdenv(t *testing.T) {
	f, m := newTestFPU()

	m.ea = 0x3000
	m.Write16(0x3000, 0x027f)
	m.Write16(0x3002, 0x3800)
	m.Write16(0x3004, 0x55ff)
	step(t, f, m, 0xd9, 0x20) // FLDENV

	test.Equate(t, f.ControlWord(), 0x027f)
	test.Equate(t, f.StatusWord(), 0x3800)
	test.Equate(t, f.TagWord(), 0x55ff)
}

// FSAVE appends the eight registers after the environment; FRSTOR restores
// the whole state including values in empty-tagged slots
func TestSaveRestore16(t *testing.T) {
	f, m := newTestFPU()
	m.cr0 = 0x0
	m.opsize32 = false

	ld80(t, f, m, one)
	ld80(t, f, m, two)
	cw := f.ControlWord()
	sw := f.StatusWord()
	tw := f.TagWord()

	m.ea = 0x3000
	step(t, f, m, 0xdd, 0x30) // FSAVE

	// ST(0) is the first register image, at the end of the 14-byte
	// environment
	got := m.get80(0x3000 + 14)
	test.Equate(t, got.High, two.High)
	test.Equate(t, got.Low, two.Low)
	got = m.get80(0x3000 + 24)
	test.Equate(t, got.High, one.High)
	test.Equate(t, got.Low, one.Low)

	// wipe and restore
	step(t, f, m, 0xdb, 0xe3) // FINIT
	m.ea = 0x3000
	step(t, f, m, 0xdd, 0x20) // FRSTOR

	test.Equate(t, f.ControlWord(), cw)
	test.Equate(t, f.StatusWord(), sw)
	test.Equate(t, f.TagWord(), tw)
	equateST(t, f, 0, two)
	equateST(t, f, 1, one)
}

func TestSaveRestore32(t *testing.T) {
	f, m := newTestFPU()
	m.cr0 = 0x1
	m.opsize32 = true

	ld80(t, f, m, oneAndFct)

	m.ea = 0x3000
	step(t, f, m, 0xdd, 0x30) // FSAVE

	got := m.get80(0x3000 + 28)
	test.Equate(t, got.High, oneAndFct.High)
	test.Equate(t, got.Low, oneAndFct.Low)

	step(t, f, m, 0xdb, 0xe3) // FINIT
	m.ea = 0x3000
	step(t, f, m, 0xdd, 0x20) // FRSTOR
	equateST(t, f, 0, oneAndFct)
}

// an unmasked exception on a 386-class target raises #MF when CR0.NE is
// set
func TestUnmaskedFault(t *testing.T) {
	f, m := newTestFPU()
	m.cr0 = 0x20 // NE

	// unmask the invalid exception and pop from an empty stack
	fldcw(t, f, m, 0x037e)
	step(t, f, m, 0xdd, 0xd8) // FSTP ST(0)

	test.Equate(t, len(m.traps), 1)
	test.Equate(t, m.traps[0], 16)
	test.Equate(t, f.ErrorPending(), true)

	// the summary bit is set while the exception is outstanding
	test.Equate(t, f.StatusWord()&fpu.SWES, fpu.SWES)
}

// no fault is delivered on a pre-386 target
func TestUnmaskedPre386(t *testing.T) {
	m := newMockBus()
	m.cr0 = 0x20
	f := fpu.NewFPU(m, m, fpu.Model80286)

	fldcw(t, f, m, 0x037e)
	step(t, f, m, 0xdd, 0xd8)

	test.Equate(t, len(m.traps), 0)
	test.Equate(t, f.ErrorPending(), false)
}
