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
	"fmt"

	"github.com/jetsetilly/fpu87/hardware/bus"
	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
	"github.com/jetsetilly/fpu87/logger"
)

// Status word bits.
const (
	SWIE       = 0x0001
	SWDE       = 0x0002
	SWZE       = 0x0004
	SWOE       = 0x0008
	SWUE       = 0x0010
	SWPE       = 0x0020
	SWSF       = 0x0040
	SWES       = 0x0080
	SWC0       = 0x0100
	SWC1       = 0x0200
	SWC2       = 0x0400
	SWC3       = 0x4000
	SWBusy     = 0x8000
	swTopShift = 11
	swTopMask  = 7
)

// Control word bits.
const (
	CWIM      = 0x0001
	CWDM      = 0x0002
	CWZM      = 0x0004
	CWOM      = 0x0008
	CWUM      = 0x0010
	CWPM      = 0x0020
	cwPCShift = 8
	cwPCMask  = 3
	cwRCShift = 10
	cwRCMask  = 3
)

// Precision control settings, from CW bits 9:8.
const (
	pcSingle = 0
	pcDouble = 2
	pcExtend = 3
)

// Rounding control settings, from CW bits 11:10.
const (
	rcNearest = 0
	rcDown    = 1
	rcUp      = 2
	rcZero    = 3
)

// Tag word values, two bits per physical register.
const (
	tagValid   = 0
	tagZero    = 1
	tagSpecial = 2
	tagEmpty   = 3
)

// rcToRounding maps the control word RC field to a kernel rounding mode.
var rcToRounding = [4]fx80.Rounding{
	fx80.RoundNearestEven,
	fx80.RoundDown,
	fx80.RoundUp,
	fx80.RoundZero,
}

// Model identifies the CPU core the FPU is attached to. Unmasked exceptions
// are only delivered as faults on the 80386 and later.
type Model int

// The supported CPU cores.
const (
	Model8086 Model = iota
	Model80186
	Model80286
	Model80386
	Model80486
)

// TranscendentalBackend supplies the transcendental functions the FPU has
// no soft-float implementation for. The default backend uses the host math
// library at double precision; a future soft-float implementation can be
// dropped in without touching the instruction handlers.
type TranscendentalBackend interface {
	Sin(x float64) float64
	Cos(x float64) float64
	Tan(x float64) float64
	Atan2(y, x float64) float64
	Log(x float64) float64
	Pow(x, y float64) float64
}

// FPU is the x87 coprocessor state: the eight-slot register stack and the
// control, status and tag words. Instruction handlers mutate it one
// instruction at a time through ExecuteEscape.
type FPU struct {
	mem   bus.Memory
	host  bus.Host
	model Model

	ctx *fx80.Context

	reg [8]fx80.Float
	cw  uint16
	sw  uint16
	tw  uint16

	// last instruction bookkeeping. maintained structurally but the
	// bit-exact pointer contents are not modelled
	dataPtr uint32
	instPtr uint32
	opcode  uint16

	// set when an unmasked exception was detected but CR0.NE did not
	// allow a #MF fault
	errorPending bool

	trig   TranscendentalBackend
	cycles func(int)
}

// NewFPU is the preferred method of initialisation for the FPU type. The
// returned FPU is in the post-FNINIT state.
func NewFPU(mem bus.Memory, host bus.Host, model Model) *FPU {
	f := &FPU{
		mem:   mem,
		host:  host,
		model: model,
		ctx:   fx80.NewContext(),
		trig:  HostMath{},
	}
	f.Reset()
	return f
}

func (f *FPU) String() string {
	return fmt.Sprintf("CW=%04x SW=%04x TW=%04x ST(0)=%s", f.cw, f.sw, f.tw, f.st(0))
}

// Reset returns the FPU to the power-on state: all registers tagged empty,
// default control word, round-to-nearest.
func (f *FPU) Reset() {
	f.writeCW(0x037f)
	f.sw = 0
	f.tw = 0xffff
	f.errorPending = false

	f.dataPtr = 0
	f.instPtr = 0
	f.opcode = 0
}

// SetCycleSink registers a callback receiving the cycle cost of each
// executed instruction. The counts are 486 timings.
func (f *FPU) SetCycleSink(sink func(int)) {
	f.cycles = sink
}

// SetTranscendentalBackend replaces the default host-math transcendental
// implementation.
func (f *FPU) SetTranscendentalBackend(t TranscendentalBackend) {
	f.trig = t
}

// StatusWord returns the current status word.
func (f *FPU) StatusWord() uint16 {
	return f.sw
}

// ControlWord returns the current control word.
func (f *FPU) ControlWord() uint16 {
	return f.cw
}

// TagWord returns the current tag word.
func (f *FPU) TagWord() uint16 {
	return f.tw
}

// ST returns the value of the i-th register from the top of the stack.
func (f *FPU) ST(i int) fx80.Float {
	return f.st(i)
}

// ErrorPending reports whether an unmasked exception has been detected
// since the last FCLEX/FNINIT that was not delivered as a #MF fault.
func (f *FPU) ErrorPending() bool {
	return f.errorPending
}

func (f *FPU) cycle(n int) {
	if f.cycles != nil {
		f.cycles(n)
	}
}

// writeCW installs a new control word and keeps the kernel rounding mode in
// step with the RC field.
func (f *FPU) writeCW(cw uint16) {
	f.cw = cw
	f.ctx.Rounding = rcToRounding[cw>>cwRCShift&cwRCMask]
}

func (f *FPU) rc() int {
	return int(f.cw >> cwRCShift & cwRCMask)
}

// top returns the physical index of ST(0).
func (f *FPU) top() int {
	return int(f.sw >> swTopShift & swTopMask)
}

// phys maps a logical stack position to a physical register index.
func (f *FPU) phys(i int) int {
	return (f.top() + i) & 7
}

func (f *FPU) st(i int) fx80.Float {
	return f.reg[f.phys(i)]
}

func (f *FPU) setST(i int, v fx80.Float) {
	f.reg[f.phys(i)] = v
}

func (f *FPU) setStackTop(top int) {
	f.sw &^= swTopMask << swTopShift
	f.sw |= uint16(top) << swTopShift
}

func (f *FPU) tag(reg int) int {
	return int(f.tw >> uint(reg<<1) & 3)
}

func (f *FPU) setTag(reg int, tag int) {
	shift := uint(reg << 1)
	f.tw &^= 3 << shift
	f.tw |= uint16(tag) << shift
}

func (f *FPU) stEmpty(i int) bool {
	return f.tag(f.phys(i)) == tagEmpty
}

// writeStack stores value into ST(i), reclassifying the slot's tag when
// updateTag is set. Denormals classify as valid.
func (f *FPU) writeStack(i int, value fx80.Float, updateTag bool) {
	f.setST(i, value)

	if updateTag {
		var tag int
		switch {
		case value.IsZero():
			tag = tagZero
		case value.IsInf() || value.IsNaN():
			tag = tagSpecial
		default:
			tag = tagValid
		}
		f.setTag(f.phys(i), tag)
	}
}

func (f *FPU) setStackUnderflow() {
	f.sw &^= SWC1
	f.sw |= SWIE | SWSF
}

func (f *FPU) setStackOverflow() {
	f.sw |= SWC1 | SWIE | SWSF
}

// incStack pops the stack. On underflow the stack is left alone when the
// invalid exception is unmasked; the return value reports success.
func (f *FPU) incStack() bool {
	ok := true

	if f.stEmpty(0) {
		ok = false
		f.setStackUnderflow()
		if f.cw&CWIM == 0 {
			return ok
		}
	}

	f.setTag(f.phys(0), tagEmpty)
	f.setStackTop(f.phys(1))
	return ok
}

// decStack pushes the stack. On overflow the stack is left alone when the
// invalid exception is unmasked; the return value reports success.
func (f *FPU) decStack() bool {
	ok := true

	if !f.stEmpty(7) {
		ok = false
		f.setStackOverflow()
		if f.cw&CWIM == 0 {
			return ok
		}
	}

	f.setStackTop(f.phys(7))
	return ok
}

// checkExceptions folds the kernel's sticky flags into the status word and
// decides whether the instruction may commit its results. A false return
// means an unmasked exception was delivered and no architectural side
// effects may be made.
func (f *FPU) checkExceptions() bool {
	if f.ctx.Flags&fx80.FlagInvalid != 0 {
		f.sw |= SWIE
		f.ctx.Flags &^= fx80.FlagInvalid
	}
	if f.ctx.Flags&fx80.FlagOverflow != 0 {
		f.sw |= SWOE
		f.ctx.Flags &^= fx80.FlagOverflow
	}
	if f.ctx.Flags&fx80.FlagUnderflow != 0 {
		f.sw |= SWUE
		f.ctx.Flags &^= fx80.FlagUnderflow
	}
	if f.ctx.Flags&fx80.FlagInexact != 0 {
		f.sw |= SWPE
		f.ctx.Flags &^= fx80.FlagInexact
	}

	unmasked := f.sw & ^f.cw & 0x3f
	if unmasked != 0 {
		f.sw |= SWES
	} else {
		f.sw &^= SWES
	}

	if unmasked != 0 && f.model >= Model80386 {
		logger.Logf(logger.Allow, "fpu", "unmasked exception (CW:%04x, SW:%04x)", f.cw, f.sw)
		f.errorPending = true
		if f.host.CR0()&0x20 != 0 {
			f.host.Trap(bus.FaultMF, 0, 0)
		}
		return false
	}

	return true
}

// read80 and write80 move raw 80-bit register images through the memory
// bus: the significand first, then the sign/exponent word.

func (f *FPU) read80(ea uint32) fx80.Float {
	var t fx80.Float
	t.Low = f.mem.Read64(ea)
	t.High = f.mem.Read16(ea + 8)
	return t
}

func (f *FPU) write80(ea uint32, t fx80.Float) {
	f.mem.Write64(ea, t.Low)
	f.mem.Write16(ea+8, t.High)
}
