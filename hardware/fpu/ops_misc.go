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

// fprem is the pre-IEEE truncating partial remainder. When the exponents
// are close the reduction completes in one step and the low three bits of
// the quotient land in C1/C3/C0. Otherwise the operand is reduced by up to
// 63 bits of the exponent difference, C2 signals the incomplete reduction
// and a later FPREM continues from the partial result.
func (f *FPU) fprem(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		a := f.st(0)
		b := f.st(1)

		f.sw &^= SWC2

		d := int(a.High&0x7fff) - int(b.High&0x7fff)
		if d < 64 {
			q := f.ctx.Int64RoundToZero(f.ctx.Div(a, b))
			qf := fx80.FromInt64(q)
			result = f.ctx.Sub(a, f.ctx.Mul(b, qf))

			f.sw &^= SWC0 | SWC3 | SWC1
			if q&1 != 0 {
				f.sw |= SWC1
			}
			if q&2 != 0 {
				f.sw |= SWC3
			}
			if q&4 != 0 {
				f.sw |= SWC0
			}
		} else {
			f.sw |= SWC2

			n := 63
			e := fx80.FromInt32(1 << uint(d-n))
			t := f.ctx.Div(a, b)
			q := f.ctx.Int64RoundToZero(f.ctx.Div(t, e))
			qf := fx80.FromInt64(q)
			result = f.ctx.Sub(a, f.ctx.Mul(f.ctx.Mul(b, qf), e))
		}
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(84)
	return nil
}

// fprem1 is the IEEE nearest-even remainder. The quotient condition codes
// are not modelled.
func (f *FPU) fprem1(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		f.sw &^= SWC2
		result = f.ctx.Rem(f.st(0), f.st(1))
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(94)
	return nil
}

func (f *FPU) fsqrt(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		value := f.st(0)

		if (!value.IsZero() && value.Sign()) || value.IsDenormal() {
			f.sw |= SWIE
			result = fx80.Indefinite
		} else {
			result = f.ctx.Sqrt(value)
		}
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(8)
	return nil
}

func (f *FPU) fchs(modrm uint8) error {
	var value fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0).Neg()
	}

	if f.checkExceptions() {
		f.writeStack(0, value, false)
	}

	f.cycle(6)
	return nil
}

func (f *FPU) fabs(modrm uint8) error {
	var value fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.st(0).Abs()
	}

	if f.checkExceptions() {
		f.writeStack(0, value, false)
	}

	f.cycle(6)
	return nil
}

func (f *FPU) fscale(modrm uint8) error {
	var value fx80.Float

	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		value = fx80.Indefinite
	} else {
		f.sw &^= SWC1
		value = f.ctx.Scale(f.st(0), f.st(1))
	}

	if f.checkExceptions() {
		f.writeStack(0, value, false)
	}

	f.cycle(31)
	return nil
}

func (f *FPU) frndint(modrm uint8) error {
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

	f.cycle(21)
	return nil
}

// fxtract splits ST(0) into its unbiased exponent and its significand with
// the exponent rebased to zero, pushing the significand on top.
func (f *FPU) fxtract(modrm uint8) error {
	var sig80, exp80 fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		sig80 = fx80.Indefinite
		exp80 = fx80.Indefinite
	} else if !f.stEmpty(7) {
		f.setStackOverflow()
		sig80 = fx80.Indefinite
		exp80 = fx80.Indefinite
	} else {
		value := f.st(0)

		if f.ctx.Eq(value, fx80.Zero) {
			f.sw |= SWZE

			exp80 = fx80.NegInf
			sig80 = fx80.Zero
		} else {
			exp80 = fx80.FromInt32(int32(value.High&0x7fff) - 0x3fff)

			sig80 = value
			sig80.High &^= 0x7fff
			sig80.High |= 0x3fff
		}
	}

	if f.checkExceptions() {
		f.writeStack(0, exp80, true)
		f.decStack()
		f.writeStack(0, sig80, true)
	}

	f.cycle(21)
	return nil
}

// Transcendental instructions compute at host double precision through the
// pluggable backend. Argument reduction is treated as always successful, so
// C2 is simply cleared.

func (f *FPU) f2xm1(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		x := f.toDouble(f.st(0))
		result = f.fromDouble(f.trig.Pow(2.0, x) - 1)
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(242)
	return nil
}

func (f *FPU) fyl2x(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		x := f.st(0)
		y := f.st(1)

		if x.Sign() {
			f.sw |= SWIE
			result = fx80.Indefinite
		} else {
			d64 := f.toDouble(x)
			l2x := f.trig.Log(d64) / f.trig.Log(2.0)
			result = f.ctx.Mul(f.fromDouble(l2x), y)
		}
	}

	if f.checkExceptions() {
		f.writeStack(1, result, true)
		f.incStack()
	}

	f.cycle(250)
	return nil
}

func (f *FPU) fyl2xp1(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) || f.stEmpty(1) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		d64 := f.toDouble(f.st(0))
		l2x1 := f.trig.Log(d64+1.0) / f.trig.Log(2.0)
		result = f.ctx.Mul(f.fromDouble(l2x1), f.st(1))
	}

	if f.checkExceptions() {
		f.writeStack(1, result, true)
		f.incStack()
	}

	f.cycle(313)
	return nil
}

func (f *FPU) fptan(modrm uint8) error {
	var result1, result2 fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result1 = fx80.Indefinite
		result2 = fx80.Indefinite
	} else if !f.stEmpty(7) {
		f.setStackOverflow()
		result1 = fx80.Indefinite
		result2 = fx80.Indefinite
	} else {
		result1 = f.fromDouble(f.trig.Tan(f.toDouble(f.st(0))))
		result2 = fx80.One

		f.sw &^= SWC2
	}

	if f.checkExceptions() {
		f.writeStack(0, result1, true)
		f.decStack()
		f.writeStack(0, result2, true)
	}

	f.cycle(244)
	return nil
}

func (f *FPU) fpatan(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		result = f.fromDouble(f.trig.Atan2(f.toDouble(f.st(1)), f.toDouble(f.st(0))))
	}

	if f.checkExceptions() {
		f.writeStack(1, result, true)
		f.incStack()
	}

	f.cycle(289)
	return nil
}

func (f *FPU) fsin(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		result = f.fromDouble(f.trig.Sin(f.toDouble(f.st(0))))
		f.sw &^= SWC2
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(241)
	return nil
}

func (f *FPU) fcos(modrm uint8) error {
	var result fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		result = fx80.Indefinite
	} else {
		result = f.fromDouble(f.trig.Cos(f.toDouble(f.st(0))))
		f.sw &^= SWC2
	}

	if f.checkExceptions() {
		f.writeStack(0, result, true)
	}

	f.cycle(241)
	return nil
}

func (f *FPU) fsincos(modrm uint8) error {
	var sResult, cResult fx80.Float

	if f.stEmpty(0) {
		f.setStackUnderflow()
		sResult = fx80.Indefinite
		cResult = fx80.Indefinite
	} else if !f.stEmpty(7) {
		f.setStackOverflow()
		sResult = fx80.Indefinite
		cResult = fx80.Indefinite
	} else {
		x := f.toDouble(f.st(0))
		sResult = f.fromDouble(f.trig.Sin(x))
		cResult = f.fromDouble(f.trig.Cos(x))

		f.sw &^= SWC2
	}

	if f.checkExceptions() {
		f.writeStack(0, sResult, true)
		f.decStack()
		f.writeStack(0, cResult, true)
	}

	f.cycle(291)
	return nil
}
