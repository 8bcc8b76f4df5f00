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
	"math"

	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
)

// The four basic operations honour the precision control field: at the
// single and double settings both operands are narrowed, the operation runs
// at the narrow width, and the result is widened back to the register
// format. Any PC value other than single or double computes at extended
// precision.

func (f *FPU) add(a, b fx80.Float) fx80.Float {
	switch f.cw >> cwPCShift & cwPCMask {
	case pcSingle:
		a32 := f.ctx.Float32(a)
		b32 := f.ctx.Float32(b)
		return f.ctx.FromFloat32(f.ctx.Add32(a32, b32))
	case pcDouble:
		a64 := f.ctx.Float64(a)
		b64 := f.ctx.Float64(b)
		return f.ctx.FromFloat64(f.ctx.Add64(a64, b64))
	}
	return f.ctx.Add(a, b)
}

func (f *FPU) sub(a, b fx80.Float) fx80.Float {
	switch f.cw >> cwPCShift & cwPCMask {
	case pcSingle:
		a32 := f.ctx.Float32(a)
		b32 := f.ctx.Float32(b)
		return f.ctx.FromFloat32(f.ctx.Sub32(a32, b32))
	case pcDouble:
		a64 := f.ctx.Float64(a)
		b64 := f.ctx.Float64(b)
		return f.ctx.FromFloat64(f.ctx.Sub64(a64, b64))
	}
	return f.ctx.Sub(a, b)
}

func (f *FPU) mul(a, b fx80.Float) fx80.Float {
	switch f.cw >> cwPCShift & cwPCMask {
	case pcSingle:
		a32 := f.ctx.Float32(a)
		b32 := f.ctx.Float32(b)
		return f.ctx.FromFloat32(f.ctx.Mul32(a32, b32))
	case pcDouble:
		a64 := f.ctx.Float64(a)
		b64 := f.ctx.Float64(b)
		return f.ctx.FromFloat64(f.ctx.Mul64(a64, b64))
	}
	return f.ctx.Mul(a, b)
}

func (f *FPU) div(a, b fx80.Float) fx80.Float {
	switch f.cw >> cwPCShift & cwPCMask {
	case pcSingle:
		a32 := f.ctx.Float32(a)
		b32 := f.ctx.Float32(b)
		return f.ctx.FromFloat32(f.ctx.Div32(a32, b32))
	case pcDouble:
		a64 := f.ctx.Float64(a)
		b64 := f.ctx.Float64(b)
		return f.ctx.FromFloat64(f.ctx.Div64(a64, b64))
	}
	return f.ctx.Div(a, b)
}

// toDouble and fromDouble bridge to the host math library for the
// transcendental instructions. The narrowing conversion can raise inexact,
// which the aggregator picks up like any other flag.

func (f *FPU) toDouble(v fx80.Float) float64 {
	return math.Float64frombits(f.ctx.Float64(v))
}

func (f *FPU) fromDouble(d float64) fx80.Float {
	return f.ctx.FromFloat64(math.Float64bits(d))
}

// HostMath is the default TranscendentalBackend, deferring to the host math
// library at double precision.
type HostMath struct{}

// Sin implements TranscendentalBackend.
func (HostMath) Sin(x float64) float64 { return math.Sin(x) }

// Cos implements TranscendentalBackend.
func (HostMath) Cos(x float64) float64 { return math.Cos(x) }

// Tan implements TranscendentalBackend.
func (HostMath) Tan(x float64) float64 { return math.Tan(x) }

// Atan2 implements TranscendentalBackend.
func (HostMath) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

// Log implements TranscendentalBackend.
func (HostMath) Log(x float64) float64 { return math.Log(x) }

// Pow implements TranscendentalBackend.
func (HostMath) Pow(x, y float64) float64 { return math.Pow(x, y) }
