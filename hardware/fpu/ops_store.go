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

// Numeric stores round through the current mode on narrowing. Integer
// stores round to an integer first and write the signed minimum when the
// result does not fit the destination.

func (f *FPU) fstM32Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, true)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	if f.checkExceptions() {
		f.mem.Write32(ea, f.ctx.Float32(value))
	}

	f.cycle(7)
	return nil
}

func (f *FPU) fstM64Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, true)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	if f.checkExceptions() {
		f.mem.Write64(ea, f.ctx.Float64(value))
	}

	f.cycle(8)
	return nil
}

func (f *FPU) fstSti(modrm uint8) error {
	var value fx80.Float
	i := int(modrm & 7)

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	if f.checkExceptions() {
		f.writeStack(i, value, true)
	}

	f.cycle(3)
	return nil
}

func (f *FPU) fstpM32Real(modrm uint8) error {
	var value fx80.Float

	ea := f.mem.EA(modrm, true)
	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	if f.checkExceptions() {
		f.mem.Write32(ea, f.ctx.Float32(value))
		f.incStack()
	}

	f.cycle(7)
	return nil
}

func (f *FPU) fstpM64Real(modrm uint8) error {
	var value fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write64(ea, f.ctx.Float64(value))
		f.incStack()
	}

	f.cycle(8)
	return nil
}

func (f *FPU) fstpM80Real(modrm uint8) error {
	var value fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.write80(ea, value)
		f.incStack()
	}

	f.cycle(6)
	return nil
}

func (f *FPU) fstpSti(modrm uint8) error {
	var value fx80.Float
	i := int(modrm & 7)

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0)
	}

	if f.checkExceptions() {
		f.writeStack(i, value, true)
		f.incStack()
	}

	f.cycle(3)
	return nil
}

// roundToInt16 rounds ST(0) and bounds-checks against the int16 range,
// returning the signed minimum when out of range.
func (f *FPU) roundToInt16() int16 {
	v := f.ctx.RoundToInt(f.st(0))

	lower := fx80.FromInt32(-32768)
	upper := fx80.FromInt32(32767)

	f.sw &^= SWC1

	if !f.ctx.Lt(v, lower) && f.ctx.Le(v, upper) {
		return int16(f.ctx.Int32(v))
	}
	return -0x8000
}

func (f *FPU) roundToInt32() int32 {
	v := f.ctx.RoundToInt(f.st(0))

	lower := fx80.FromInt32(-0x80000000)
	upper := fx80.FromInt32(0x7fffffff)

	f.sw &^= SWC1

	if !f.ctx.Lt(v, lower) && f.ctx.Le(v, upper) {
		return f.ctx.Int32(v)
	}
	return -0x80000000
}

func (f *FPU) roundToInt64() int64 {
	v := f.ctx.RoundToInt(f.st(0))

	lower := fx80.FromInt64(-0x8000000000000000)
	upper := fx80.FromInt64(0x7fffffffffffffff)

	f.sw &^= SWC1

	if !f.ctx.Lt(v, lower) && f.ctx.Le(v, upper) {
		return f.ctx.Int64(v)
	}
	return -0x8000000000000000
}

func (f *FPU) fistM16Int(modrm uint8) error {
	var m16 int16

	if f.stEmpty(0) {
		f.setStackUnderflow()
		m16 = -0x8000
	} else {
		m16 = f.roundToInt16()
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write16(ea, uint16(m16))
	}

	f.cycle(29)
	return nil
}

func (f *FPU) fistM32Int(modrm uint8) error {
	var m32 int32

	if f.stEmpty(0) {
		f.setStackUnderflow()
		m32 = -0x80000000
	} else {
		m32 = f.roundToInt32()
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write32(ea, uint32(m32))
	}

	f.cycle(28)
	return nil
}

func (f *FPU) fistpM16Int(modrm uint8) error {
	var m16 int16

	if f.stEmpty(0) {
		f.setStackUnderflow()
		m16 = -0x8000
	} else {
		m16 = f.roundToInt16()
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write16(ea, uint16(m16))
		f.incStack()
	}

	f.cycle(29)
	return nil
}

func (f *FPU) fistpM32Int(modrm uint8) error {
	var m32 int32

	if f.stEmpty(0) {
		f.setStackUnderflow()
		m32 = -0x80000000
	} else {
		m32 = f.roundToInt32()
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write32(ea, uint32(m32))
		f.incStack()
	}

	f.cycle(29)
	return nil
}

func (f *FPU) fistpM64Int(modrm uint8) error {
	var m64 int64

	if f.stEmpty(0) {
		f.setStackUnderflow()
		m64 = -0x8000000000000000
	} else {
		m64 = f.roundToInt64()
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.mem.Write64(ea, uint64(m64))
		f.incStack()
	}

	f.cycle(29)
	return nil
}

// fbstp packs the magnitude of ST(0) into eighteen BCD digits with the
// sign in the top nibble, then pops.
func (f *FPU) fbstp(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		u64 := uint64(f.ctx.Int64(f.st(0).Abs()))

		result.Low = 0
		for i := 0; i < 64; i += 4 {
			result.Low += u64 % 10 << uint(i)
			u64 /= 10
		}
		result.High = uint16(u64 % 10)
		result.High += uint16(u64 / 10 % 10 << 4)
		result.High |= f.st(0).High & 0x8000
	}

	ea := f.mem.EA(modrm, true)
	if f.checkExceptions() {
		f.write80(ea, result)
		f.incStack()
	}

	f.cycle(175)
	return nil
}
