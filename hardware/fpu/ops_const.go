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

// The constant loads push a preset bit pattern. The transcendental
// constants come in two ULP-adjacent encodings; which one is pushed depends
// on the rounding mode in force.

// pushConstant is the shared shape of the constant loads: value and tag are
// chosen by the caller, overflow substitutes the indefinite NaN.
func (f *FPU) pushConstant(value fx80.Float, tag int, cycles int) error {
	if f.decStack() {
		f.sw &^= SWC1
	} else {
		value = fx80.Indefinite
		tag = tagSpecial
	}

	if f.checkExceptions() {
		f.setTag(f.phys(0), tag)
		f.writeStack(0, value, false)
	}

	f.cycle(cycles)
	return nil
}

func (f *FPU) fld1(modrm uint8) error {
	return f.pushConstant(fx80.One, tagValid, 4)
}

func (f *FPU) fldz(modrm uint8) error {
	return f.pushConstant(fx80.Zero, tagZero, 4)
}

// fldl2t is the odd one out among the transcendental constants: log2(10)
// rounds up only in round-up mode, not in round-to-nearest.
func (f *FPU) fldl2t(modrm uint8) error {
	value := fx80.Float{High: 0x4000, Low: 0xd49a784bcd1b8afe}
	if f.rc() == rcUp {
		value.Low = 0xd49a784bcd1b8aff
	}
	return f.pushConstant(value, tagValid, 8)
}

func (f *FPU) fldl2e(modrm uint8) error {
	value := fx80.Float{High: 0x3fff, Low: 0xb8aa3b295c17f0bb}
	if rc := f.rc(); rc == rcUp || rc == rcNearest {
		value.Low = 0xb8aa3b295c17f0bc
	}
	return f.pushConstant(value, tagValid, 8)
}

func (f *FPU) fldpi(modrm uint8) error {
	value := fx80.Float{High: 0x4000, Low: 0xc90fdaa22168c234}
	if rc := f.rc(); rc == rcUp || rc == rcNearest {
		value.Low = 0xc90fdaa22168c235
	}
	return f.pushConstant(value, tagValid, 8)
}

func (f *FPU) fldlg2(modrm uint8) error {
	value := fx80.Float{High: 0x3ffd, Low: 0x9a209a84fbcff798}
	if rc := f.rc(); rc == rcUp || rc == rcNearest {
		value.Low = 0x9a209a84fbcff799
	}
	return f.pushConstant(value, tagValid, 8)
}

func (f *FPU) fldln2(modrm uint8) error {
	value := fx80.Float{High: 0x3ffe, Low: 0xb17217f7d1cf79ab}
	if rc := f.rc(); rc == rcUp || rc == rcNearest {
		value.Low = 0xb17217f7d1cf79ac
	}
	return f.pushConstant(value, tagValid, 8)
}
