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
	"encoding/binary"

	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
)

// Operations is the vtable exported to a host process. Each entry works on
// the owning FPU's state directly; FSAVE and FRSTOR exchange the state
// through a caller-provided buffer of SaveImageSize bytes rather than
// guest memory.
type Operations struct {
	FLDCW   func(cw uint16)
	Wait    func()
	FNINIT  func()
	FSTCW   func(cw *uint16)
	FSTSW   func(sw *uint16)
	FRNDINT func()
	FCLEX   func()
	FSAVE   func(buf []byte)
	FRSTOR  func(buf []byte)
	FISTP   func(round uint16) uint32
}

// SaveImageSize is the buffer length Operations.FSAVE fills and
// Operations.FRSTOR consumes: three control words and eight 10-byte
// registers.
const SaveImageSize = 6 + 8*10

// Vtable builds the exported operation table for this FPU.
func (f *FPU) Vtable() Operations {
	return Operations{
		FLDCW:   f.hostFldcw,
		Wait:    f.hostWait,
		FNINIT:  f.hostFninit,
		FSTCW:   f.hostFstcw,
		FSTSW:   f.hostFstsw,
		FRNDINT: f.hostFrndint,
		FCLEX:   f.hostFclex,
		FSAVE:   f.hostFsave,
		FRSTOR:  f.hostFrstor,
		FISTP:   f.hostFistp,
	}
}

func (f *FPU) hostFldcw(cw uint16) {
	f.writeCW(cw)
	f.checkExceptions()
}

func (f *FPU) hostWait() {
}

func (f *FPU) hostFninit() {
	f.Reset()
}

func (f *FPU) hostFstcw(cw *uint16) {
	*cw = f.cw
}

func (f *FPU) hostFstsw(sw *uint16) {
	*sw = f.sw
}

func (f *FPU) hostFrndint() {
	var value fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.ctx.RoundToInt(f.st(0))
	}

	if f.checkExceptions() {
		f.writeStack(0, value, true)
	}
}

func (f *FPU) hostFclex() {
	f.sw &= ^uint16(0x80ff)
	f.errorPending = false
}

func (f *FPU) hostFsave(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:], f.cw)
	binary.LittleEndian.PutUint16(buf[2:], f.sw)
	binary.LittleEndian.PutUint16(buf[4:], f.tw)
	for i := 0; i < 8; i++ {
		st := f.st(i)
		binary.LittleEndian.PutUint64(buf[6+i*10:], st.Low)
		binary.LittleEndian.PutUint16(buf[6+i*10+8:], st.High)
	}
}

func (f *FPU) hostFrstor(buf []byte) {
	f.writeCW(binary.LittleEndian.Uint16(buf[0:]))
	f.sw = binary.LittleEndian.Uint16(buf[2:])
	f.tw = binary.LittleEndian.Uint16(buf[4:])
	for i := 0; i < 8; i++ {
		var st fx80.Float
		st.Low = binary.LittleEndian.Uint64(buf[6+i*10:])
		st.High = binary.LittleEndian.Uint16(buf[6+i*10+8:])
		f.writeStack(i, st, false)
	}
}

// hostFistp pops ST(0) as a 32-bit integer, rounding in the mode given by
// the two low bits of round rather than the control word. The kernel
// rounding mode is restored afterwards.
func (f *FPU) hostFistp(round uint16) uint32 {
	m32 := uint32(0x80000000)

	if !f.stEmpty(0) {
		oldRounding := f.ctx.Rounding
		f.ctx.Rounding = rcToRounding[round&3]

		v := f.ctx.RoundToInt(f.st(0))

		lower := fx80.FromInt32(-0x80000000)
		upper := fx80.FromInt32(0x7fffffff)

		if !f.ctx.Lt(v, lower) && f.ctx.Le(v, upper) {
			m32 = uint32(f.ctx.Int32(v))
		}
		f.incStack()
		f.ctx.Rounding = oldRounding
	}
	return m32
}
