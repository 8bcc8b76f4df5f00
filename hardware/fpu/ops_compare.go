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

// The classic comparisons report through C0/C2/C3; the later FCOMI family
// reports through the host ZF/PF/CF. The ordered forms raise invalid for
// any NaN operand, the unordered forms only for signaling NaNs.

// compareCC runs an ordered comparison of ST(0) against rhs and sets the
// condition codes. The caller has already cleared or preset them for the
// underflow case.
func (f *FPU) compareCC(rhs fx80.Float) {
	f.sw &^= SWC3 | SWC2 | SWC1 | SWC0

	a := f.st(0)

	if a.IsNaN() || rhs.IsNaN() {
		f.sw |= SWC0 | SWC2 | SWC3
		f.sw |= SWIE
		return
	}
	if f.ctx.Eq(a, rhs) {
		f.sw |= SWC3
	}
	if f.ctx.Lt(a, rhs) {
		f.sw |= SWC0
	}
}

// compareMem is the memory-operand comparison shape shared by FCOM,
// FCOMP, FICOM and FICOMP.
func (f *FPU) compareMem(modrm uint8,
	read func(uint32) fx80.Float, pop bool, cycles int) error {
	ea := f.mem.EA(modrm, false)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareCC(read(ea))
	}

	if f.checkExceptions() && pop {
		f.incStack()
	}

	f.cycle(cycles)
	return nil
}

// ficomCC matches the integer-compare handlers, which only look at ST(0)
// for NaNs (an integer operand cannot be one).
func (f *FPU) ficomCC(rhs fx80.Float) {
	f.sw &^= SWC3 | SWC2 | SWC1 | SWC0

	a := f.st(0)

	if a.IsNaN() {
		f.sw |= SWC0 | SWC2 | SWC3
		f.sw |= SWIE
		return
	}
	if f.ctx.Eq(a, rhs) {
		f.sw |= SWC3
	}
	if f.ctx.Lt(a, rhs) {
		f.sw |= SWC0
	}
}

func (f *FPU) ficomMem(modrm uint8,
	read func(uint32) fx80.Float, pop bool, cycles int) error {
	ea := f.mem.EA(modrm, false)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.ficomCC(read(ea))
	}

	if f.checkExceptions() && pop {
		f.incStack()
	}

	f.cycle(cycles)
	return nil
}

func (f *FPU) ficomM16Int(modrm uint8) error {
	return f.ficomMem(modrm, f.readM16Int, false, 16)
}

func (f *FPU) ficomM32Int(modrm uint8) error {
	return f.ficomMem(modrm, f.readM32Int, false, 15)
}

func (f *FPU) ficompM16Int(modrm uint8) error {
	return f.ficomMem(modrm, f.readM16Int, true, 16)
}

func (f *FPU) ficompM32Int(modrm uint8) error {
	return f.ficomMem(modrm, f.readM32Int, true, 15)
}

func (f *FPU) fcomM32Real(modrm uint8) error {
	return f.compareMem(modrm, f.readM32Real, false, 4)
}

func (f *FPU) fcomM64Real(modrm uint8) error {
	return f.compareMem(modrm, f.readM64Real, false, 4)
}

func (f *FPU) fcomSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareCC(f.st(i))
	}

	f.checkExceptions()

	f.cycle(4)
	return nil
}

func (f *FPU) fcompM32Real(modrm uint8) error {
	return f.compareMem(modrm, f.readM32Real, true, 4)
}

func (f *FPU) fcompM64Real(modrm uint8) error {
	return f.compareMem(modrm, f.readM64Real, true, 4)
}

func (f *FPU) fcompSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareCC(f.st(i))
	}

	if f.checkExceptions() {
		f.incStack()
	}

	f.cycle(4)
	return nil
}

func (f *FPU) fcompp(modrm uint8) error {
	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareCC(f.st(1))
	}

	if f.checkExceptions() {
		f.incStack()
		f.incStack()
	}

	f.cycle(5)
	return nil
}

// compareFlags runs a comparison of ST(0) against ST(i) into the host
// flags. unordered selects the FUCOMI quiet-NaN tolerance.
func (f *FPU) compareFlags(i int, unordered bool) {
	f.sw &^= SWC1

	a := f.st(0)
	b := f.st(i)

	if unordered && (a.IsQuietNaN() || b.IsQuietNaN()) {
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
		return
	}
	if a.IsNaN() || b.IsNaN() {
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
		f.sw |= SWIE
		return
	}

	f.host.SetZF(f.ctx.Eq(a, b))
	f.host.SetPF(false)
	f.host.SetCF(f.ctx.Lt(a, b))
}

func (f *FPU) fcomiSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
	} else {
		f.compareFlags(i, false)
	}

	f.checkExceptions()

	f.cycle(4)
	return nil
}

func (f *FPU) fcomipSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
	} else {
		f.compareFlags(i, false)
	}

	if f.checkExceptions() {
		f.incStack()
	}

	f.cycle(4)
	return nil
}

func (f *FPU) fucomiSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
	} else {
		f.compareFlags(i, true)
	}

	f.checkExceptions()

	f.cycle(4)
	return nil
}

func (f *FPU) fucomipSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.host.SetZF(true)
		f.host.SetPF(true)
		f.host.SetCF(true)
	} else {
		f.compareFlags(i, true)
	}

	if f.checkExceptions() {
		f.incStack()
	}

	f.cycle(4)
	return nil
}

// compareUnorderedCC is the FUCOM shape: NaNs still read as unordered but
// only signaling NaNs raise invalid.
func (f *FPU) compareUnorderedCC(rhs fx80.Float) {
	f.sw &^= SWC3 | SWC2 | SWC1 | SWC0

	a := f.st(0)

	if a.IsNaN() || rhs.IsNaN() {
		f.sw |= SWC0 | SWC2 | SWC3

		if a.IsSignalingNaN() || rhs.IsSignalingNaN() {
			f.sw |= SWIE
		}
		return
	}
	if f.ctx.Eq(a, rhs) {
		f.sw |= SWC3
	}
	if f.ctx.Lt(a, rhs) {
		f.sw |= SWC0
	}
}

func (f *FPU) fucomSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareUnorderedCC(f.st(i))
	}

	f.checkExceptions()

	f.cycle(4)
	return nil
}

func (f *FPU) fucompSti(modrm uint8) error {
	i := int(modrm & 7)

	if f.stEmpty(0) || f.stEmpty(i) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareUnorderedCC(f.st(i))
	}

	if f.checkExceptions() {
		f.incStack()
	}

	f.cycle(4)
	return nil
}

func (f *FPU) fucompp(modrm uint8) error {
	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.compareUnorderedCC(f.st(1))
	}

	if f.checkExceptions() {
		f.incStack()
		f.incStack()
	}

	f.cycle(4)
	return nil
}

// ftst compares ST(0) against +0 at extended precision.
func (f *FPU) ftst(modrm uint8) error {
	if f.stEmpty(0) {
		f.setStackUnderflow()
		f.sw |= SWC3 | SWC2 | SWC0
	} else {
		f.sw &^= SWC3 | SWC2 | SWC1 | SWC0

		if f.st(0).IsNaN() {
			f.sw |= SWC0 | SWC2 | SWC3
			f.sw |= SWIE
		} else {
			if f.ctx.Eq(f.st(0), fx80.Zero) {
				f.sw |= SWC3
			}
			if f.ctx.Lt(f.st(0), fx80.Zero) {
				f.sw |= SWC0
			}
		}
	}

	f.checkExceptions()

	f.cycle(4)
	return nil
}

// fxam classifies ST(0) into C0/C2/C3 with the sign in C1. Note the
// empty/zero test and the NaN/infinity/normal chain are not exclusive: a
// zero also falls through to the last branch and reads C3|C2, and an empty
// slot adds the class of its stale contents to C3|C0.
func (f *FPU) fxam(modrm uint8) error {
	value := f.st(0)

	f.sw &^= SWC3 | SWC2 | SWC1 | SWC0

	if f.stEmpty(0) {
		f.sw |= SWC3 | SWC0
	} else if value.IsZero() {
		f.sw |= SWC3
	}
	if value.IsNaN() {
		f.sw |= SWC0
	} else if value.IsInf() {
		f.sw |= SWC2 | SWC0
	} else {
		f.sw |= SWC2
	}

	if value.Sign() {
		f.sw |= SWC1
	}

	f.cycle(8)
	return nil
}
