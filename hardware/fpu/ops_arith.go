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

// The add/sub/mul/div families all share one of two shapes: a memory form
// that combines ST(0) with an operand read through the address unit, and a
// register form that combines ST(0) with ST(i). The handlers below name
// every encoding the manual names and defer to the two shapes.

// invalidAddOperands is the operand guard for the add and subtract
// families: signaling NaNs and the subtraction of like infinities are
// invalid.
func invalidAddOperands(a, b fx80.Float) bool {
	return a.IsSignalingNaN() || b.IsSignalingNaN() ||
		(a.IsInf() && b.IsInf() && (a.High^b.High)&0x8000 != 0)
}

// invalidMulOperands guards the multiply and divide families, where only
// signaling NaNs are rejected up front.
func invalidMulOperands(a, b fx80.Float) bool {
	return a.IsSignalingNaN() || b.IsSignalingNaN()
}

// arithMem is the memory-operand shape. read fetches and widens the
// operand; reverse selects the "R" operand order.
func (f *FPU) arithMem(modrm uint8,
	read func(uint32) fx80.Float,
	op func(fx80.Float, fx80.Float) fx80.Float,
	guard func(fx80.Float, fx80.Float) bool,
	reverse bool, cycles int) error {
	var result fx80.Float

	ea := f.mem.EA(modrm, false)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		a := f.st(0)
		b := read(ea)
		if reverse {
			a, b = b, a
		}

		if guard(a, b) {
			f.sw |= SWIE
			result = fx80.Indefinite
		} else {
			result = op(a, b)
		}
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(cycles)
	return nil
}

// arithReg is the register-operand shape. swapped selects ST(i) as the
// first operand; dest and pop select between the st/sti/p encodings.
func (f *FPU) arithReg(i int,
	op func(fx80.Float, fx80.Float) fx80.Float,
	guard func(fx80.Float, fx80.Float) bool,
	swapped bool, dest int, pop bool, cycles int) error {
	var result fx80.Float

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		a := f.st(0)
		b := f.st(i)
		if swapped {
			a, b = b, a
		}

		if guard(a, b) {
			f.sw |= SWIE
			result = fx80.Indefinite
		} else {
			result = op(a, b)
		}
	}

	if f.checkExceptions() {
		f.writeStack(dest, result, true)
		if pop {
			f.incStack()
		}
	}

	f.cycle(cycles)
	return nil
}

// operand readers for the memory forms

func (f *FPU) readM32Real(ea uint32) fx80.Float {
	return f.ctx.FromFloat32(f.mem.Read32(ea))
}

func (f *FPU) readM64Real(ea uint32) fx80.Float {
	return f.ctx.FromFloat64(f.mem.Read64(ea))
}

func (f *FPU) readM16Int(ea uint32) fx80.Float {
	return fx80.FromInt32(int32(int16(f.mem.Read16(ea))))
}

func (f *FPU) readM32Int(ea uint32) fx80.Float {
	return fx80.FromInt32(int32(f.mem.Read32(ea)))
}

// readM16IntWide reproduces the FIDIV/FIDIVR m16int behaviour of reading a
// full 32 bits and truncating to 16.
func (f *FPU) readM16IntWide(ea uint32) fx80.Float {
	return fx80.FromInt32(int32(int16(f.mem.Read32(ea))))
}

// add

func (f *FPU) faddM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.add, invalidAddOperands, false, 8)
}

func (f *FPU) faddM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.add, invalidAddOperands, false, 8)
}

func (f *FPU) faddStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.add, invalidAddOperands, false, 0, false, 8)
}

func (f *FPU) faddStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.add, invalidAddOperands, false, i, false, 8)
}

func (f *FPU) faddp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.add, invalidAddOperands, false, i, true, 8)
}

func (f *FPU) fiaddM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.add, invalidAddOperands, false, 19)
}

func (f *FPU) fiaddM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16Int, f.add, invalidAddOperands, false, 20)
}

// subtract

func (f *FPU) fsubM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.sub, invalidAddOperands, false, 8)
}

func (f *FPU) fsubM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.sub, invalidAddOperands, false, 8)
}

func (f *FPU) fsubStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.sub, invalidAddOperands, false, 0, false, 8)
}

func (f *FPU) fsubStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.sub, invalidAddOperands, true, i, false, 8)
}

func (f *FPU) fsubp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.sub, invalidAddOperands, true, i, true, 8)
}

func (f *FPU) fisubM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.sub, invalidAddOperands, false, 19)
}

func (f *FPU) fisubM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16Int, f.sub, invalidAddOperands, false, 20)
}

// reverse subtract

func (f *FPU) fsubrM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.sub, invalidAddOperands, true, 8)
}

func (f *FPU) fsubrM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.sub, invalidAddOperands, true, 8)
}

func (f *FPU) fsubrStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.sub, invalidAddOperands, true, 0, false, 8)
}

func (f *FPU) fsubrStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.sub, invalidAddOperands, false, i, false, 8)
}

func (f *FPU) fsubrp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.sub, invalidAddOperands, false, i, true, 8)
}

func (f *FPU) fisubrM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.sub, invalidAddOperands, true, 19)
}

func (f *FPU) fisubrM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16Int, f.sub, invalidAddOperands, true, 20)
}

// multiply

func (f *FPU) fmulM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.mul, invalidMulOperands, false, 11)
}

func (f *FPU) fmulM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.mul, invalidMulOperands, false, 14)
}

func (f *FPU) fmulStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.mul, invalidMulOperands, false, 0, false, 16)
}

func (f *FPU) fmulStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.mul, invalidMulOperands, false, i, false, 16)
}

func (f *FPU) fmulp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.mul, invalidMulOperands, false, i, true, 16)
}

func (f *FPU) fimulM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.mul, invalidMulOperands, false, 22)
}

func (f *FPU) fimulM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16Int, f.mul, invalidMulOperands, false, 22)
}

// divide

func (f *FPU) fdivM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.div, invalidMulOperands, false, 73)
}

func (f *FPU) fdivM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.div, invalidMulOperands, false, 73)
}

func (f *FPU) fdivStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.div, invalidMulOperands, false, 0, false, 73)
}

func (f *FPU) fdivStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.div, invalidMulOperands, true, i, false, 73)
}

func (f *FPU) fdivp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.div, invalidMulOperands, true, i, true, 73)
}

func (f *FPU) fidivM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.div, invalidMulOperands, false, 73)
}

func (f *FPU) fidivM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16IntWide, f.div, invalidMulOperands, false, 73)
}

// reverse divide

func (f *FPU) fdivrM32Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Real, f.div, invalidMulOperands, true, 73)
}

func (f *FPU) fdivrM64Real(modrm uint8) error {
	return f.arithMem(modrm, f.readM64Real, f.div, invalidMulOperands, true, 73)
}

func (f *FPU) fdivrStSti(modrm uint8) error {
	return f.arithReg(int(modrm&7), f.div, invalidMulOperands, true, 0, false, 73)
}

func (f *FPU) fdivrStiSt(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.div, invalidMulOperands, false, i, false, 73)
}

func (f *FPU) fdivrp(modrm uint8) error {
	i := int(modrm & 7)
	return f.arithReg(i, f.div, invalidMulOperands, false, i, true, 73)
}

func (f *FPU) fidivrM32Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM32Int, f.div, invalidMulOperands, true, 73)
}

func (f *FPU) fidivrM16Int(modrm uint8) error {
	return f.arithMem(modrm, f.readM16IntWide, f.div, invalidMulOperands, true, 73)
}
