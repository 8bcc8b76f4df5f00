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

package fpu

import (
	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
)

func (f *FPU) fnop(modrm uint8) error {
	f.cycle(3)
	return nil
}

func (f *FPU) fdecstp(modrm uint8) error {
	f.sw &^= SWC1

	f.decStack()
	f.checkExceptions()

	f.cycle(3)
	return nil
}

func (f *FPU) fincstp(modrm uint8) error {
	f.sw &^= SWC1

	f.incStack()
	f.checkExceptions()

	f.cycle(3)
	return nil
}

// fclex clears the exception bits, the stack fault bit, the summary bit and
// busy. Condition codes and TOP survive.
func (f *FPU) fclex(modrm uint8) error {
	f.sw &= ^uint16(0x80ff)
	f.errorPending = false

	f.cycle(7)
	return nil
}

// ffree tags ST(i) empty without touching the register bits.
func (f *FPU) ffree(modrm uint8) error {
	f.setTag(f.phys(int(modrm&7)), tagEmpty)

	f.cycle(3)
	return nil
}

func (f *FPU) finit(modrm uint8) error {
	f.Reset()

	f.cycle(17)
	return nil
}

func (f *FPU) fldcw(modrm uint8) error {
	ea := f.mem.EA(modrm, false)
	cw := f.mem.Read16(ea)

	f.writeCW(cw)

	f.checkExceptions()

	f.cycle(4)
	return nil
}

func (f *FPU) fstcw(modrm uint8) error {
	ea := f.mem.EA(modrm, true)
	f.mem.Write16(ea, f.cw)

	f.cycle(3)
	return nil
}

func (f *FPU) fstswAx(modrm uint8) error {
	f.host.SetAX(f.sw)

	f.cycle(3)
	return nil
}

func (f *FPU) fstswM2Byte(modrm uint8) error {
	ea := f.mem.EA(modrm, true)
	f.mem.Write16(ea, f.sw)

	f.cycle(3)
	return nil
}

// envLayout selects one of the four environment layouts from CR0.PE and the
// operand size.
func (f *FPU) envLayout() int {
	layout := int(f.host.CR0() & 1)
	if f.host.OperandSize32() {
		layout |= 2
	}
	return layout
}

// fldenv reloads CW, SW and TW from a stored environment. The pointer and
// opcode fields are not modelled.
func (f *FPU) fldenv(modrm uint8) error {
	ea := f.mem.EA(modrm, false)

	if f.host.OperandSize32() {
		f.writeCW(f.mem.Read16(ea))
		f.sw = f.mem.Read16(ea + 4)
		f.tw = f.mem.Read16(ea + 8)
	} else {
		f.writeCW(f.mem.Read16(ea))
		f.sw = f.mem.Read16(ea + 2)
		f.tw = f.mem.Read16(ea + 4)
	}

	f.checkExceptions()

	if f.host.CR0()&1 != 0 {
		f.cycle(34)
	} else {
		f.cycle(44)
	}
	return nil
}

// storeEnv writes the environment words at ea and returns the offset of the
// first byte after the environment. The pointer fields are left as the
// caller finds them.
func (f *FPU) storeEnv(ea uint32) uint32 {
	switch f.envLayout() {
	case 0, 1: // 16-bit real and protected mode
		f.mem.Write16(ea+0, f.cw)
		f.mem.Write16(ea+2, f.sw)
		f.mem.Write16(ea+4, f.tw)
		return ea + 14
	}

	// 32-bit real and protected mode
	f.mem.Write16(ea+0, f.cw)
	f.mem.Write16(ea+4, f.sw)
	f.mem.Write16(ea+8, f.tw)
	return ea + 28
}

func (f *FPU) fstenv(modrm uint8) error {
	ea := f.mem.EA(modrm, true)
	f.storeEnv(ea)

	if f.host.CR0()&1 != 0 {
		f.cycle(56)
	} else {
		f.cycle(67)
	}
	return nil
}

func (f *FPU) fsave(modrm uint8) error {
	ea := f.mem.EA(modrm, true)
	ea = f.storeEnv(ea)

	for i := 0; i < 8; i++ {
		f.write80(ea+uint32(i)*10, f.st(i))
	}

	if f.host.CR0()&1 != 0 {
		f.cycle(56)
	} else {
		f.cycle(67)
	}
	return nil
}

// loadEnv is the FRSTOR counterpart of storeEnv.
func (f *FPU) loadEnv(ea uint32) uint32 {
	switch f.envLayout() {
	case 0, 1:
		f.writeCW(f.mem.Read16(ea))
		f.sw = f.mem.Read16(ea + 2)
		f.tw = f.mem.Read16(ea + 4)
		return ea + 14
	}

	f.writeCW(f.mem.Read16(ea))
	f.sw = f.mem.Read16(ea + 4)
	f.tw = f.mem.Read16(ea + 8)
	return ea + 28
}

// frstor replaces the whole FPU state. Register values are written without
// reclassification: the restored tag word is trusted as-is.
func (f *FPU) frstor(modrm uint8) error {
	ea := f.mem.EA(modrm, false)
	ea = f.loadEnv(ea)

	for i := 0; i < 8; i++ {
		f.writeStack(i, f.read80(ea+uint32(i)*10), false)
	}

	if f.host.CR0()&1 != 0 {
		f.cycle(34)
	} else {
		f.cycle(44)
	}
	return nil
}

// fxchSti swaps values and tags. Empty operands are first filled with the
// indefinite NaN and flagged as underflow.
func (f *FPU) fxchSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) {
		f.setST(0, fx80.Indefinite)
		f.setTag(f.phys(0), tagSpecial)
		f.setStackUnderflow()
	}
	if f.stEmpty(i) {
		f.setST(i, fx80.Indefinite)
		f.setTag(f.phys(i), tagSpecial)
		f.setStackUnderflow()
	}

	if f.checkExceptions() {
		tmp := f.st(0)
		f.setST(0, f.st(i))
		f.setST(i, tmp)

		tag0 := f.tag(f.phys(0))
		f.setTag(f.phys(0), f.tag(f.phys(i)))
		f.setTag(f.phys(i), tag0)
	}

	f.cycle(4)
	return nil
}
