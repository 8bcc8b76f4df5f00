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

// Load instructions push the stack first. When the push fails on a full
// stack the indefinite NaN is written to the new ST(0) anyway (the write is
// what the programmer sees when the invalid exception is masked).

func (f *FPU) fldM32Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if f.decStack() {
		value = f.ctx.FromFloat32(f.mem.Read32(ea))

		f.sw &^= SWC1

		if value.IsSignalingNaN() || value.IsDenormal() {
			f.sw |= SWIE
			value = fx80.Indefinite
		}
	} else {
		value = fx80.Indefinite
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(3)
	return nil
}

func (f *FPU) fldM64Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if f.decStack() {
		value = f.ctx.FromFloat64(f.mem.Read64(ea))

		f.sw &^= SWC1

		if value.IsSignalingNaN() || value.IsDenormal() {
			f.sw |= SWIE
			value = fx80.Indefinite
		}
	} else {
		value = fx80.Indefinite
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(3)
	return nil
}

func (f *FPU) fldM80Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if f.decStack() {
		f.sw &^= SWC1
		value = f.read80(ea)
	} else {
		value = fx80.Indefinite
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(6)
	return nil
}

func (f *FPU) fldSti(modrm uint8) error {
	var value fx80.Float

	if f.decStack() {
		f.sw &^= SWC1
		// the push has rotated the stack so the source register is one
		// place further away
		value = f.st(int(modrm+1) & 7)
	} else {
		value = fx80.Indefinite
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(4)
	return nil
}

func (f *FPU) fildM16Int(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if !f.decStack() {
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = fx80.FromInt32(int32(int16(f.mem.Read16(ea))))
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(13)
	return nil
}

func (f *FPU) fildM32Int(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if !f.decStack() {
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = fx80.FromInt32(int32(f.mem.Read32(ea)))
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(9)
	return nil
}

func (f *FPU) fildM64Int(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if !f.decStack() {
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = fx80.FromInt64(int64(f.mem.Read64(ea)))
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(10)
	return nil
}

// fbld loads an 18-digit packed BCD value: sixteen digits from the low
// qword, two more and the sign from the high word.
func (f *FPU) fbld(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, false)
	if !f.decStack() {
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1

		value = f.read80(ea)
		sign := value.High & 0x8000

		var m64 uint64
		m64 += uint64(value.High>>4&0xf) * 10
		m64 += uint64(value.High & 0xf)
		for i := 60; i >= 0; i -= 4 {
			m64 *= 10
			m64 += value.Low >> uint(i) & 0xf
		}

		value = fx80.FromInt64(int64(m64))
		value.High |= sign
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}

	f.cycle(75)
	return nil
}
