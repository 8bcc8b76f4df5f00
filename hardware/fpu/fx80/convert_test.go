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

package fx80_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/fpu87/hardware/fpu/fx80"
	"github.com/jetsetilly/fpu87/test"
)

func TestFromFloat32(t *testing.T) {
	ctx := fx80.NewContext()

	equateX80(t, ctx.FromFloat32(math.Float32bits(1.0)), one)
	equateX80(t, ctx.FromFloat32(math.Float32bits(1.5)), oneAndFct)
	equateX80(t, ctx.FromFloat32(math.Float32bits(-1.0)), negOne)
	equateX80(t, ctx.FromFloat32(0x00000000), fx80.Zero)
	equateX80(t, ctx.FromFloat32(0x7f800000), posInf)

	// widening is exact
	test.Equate(t, ctx.Flags == 0, true)

	// the signaling/quiet distinction survives widening
	test.Equate(t, ctx.FromFloat32(0x7f800001).IsSignalingNaN(), true)
	test.Equate(t, ctx.FromFloat32(0x7fc00001).IsQuietNaN(), true)
}

func TestFloat32(t *testing.T) {
	ctx := fx80.NewContext()

	test.Equate(t, ctx.Float32(one), math.Float32bits(1.0))
	test.Equate(t, ctx.Float32(negOne), math.Float32bits(-1.0))
	test.Equate(t, ctx.Float32(posInf), uint32(0x7f800000))
	test.Equate(t, ctx.Flags == 0, true)

	// 1/3 at extended precision narrows inexactly
	third := fx80.Float{High: 0x3ffd, Low: 0xaaaaaaaaaaaaaaab}
	test.Equate(t, ctx.Float32(third), math.Float32bits(1.0/3.0))
	test.Equate(t, ctx.Flags&fx80.FlagInexact != 0, true)
}

func TestFloat64RoundTrip(t *testing.T) {
	ctx := fx80.NewContext()

	for _, v := range []float64{0, 1, -1, 1.5, 0.1, 123456.789, math.Pi} {
		b := math.Float64bits(v)
		test.Equate(t, ctx.Float64(ctx.FromFloat64(b)), b)
	}

	// narrowing never raises a flag when the round trip is exact
	test.Equate(t, ctx.Flags == 0, true)
}

func TestFromInt(t *testing.T) {
	equateX80(t, fx80.FromInt32(0), fx80.Zero)
	equateX80(t, fx80.FromInt32(1), one)
	equateX80(t, fx80.FromInt32(-1), negOne)
	equateX80(t, fx80.FromInt32(123), fx80.Float{High: 0x4005, Low: 0xf600000000000000})
	equateX80(t, fx80.FromInt64(123), fx80.Float{High: 0x4005, Low: 0xf600000000000000})
	equateX80(t, fx80.FromInt64(1<<40), fx80.Float{High: 0x4027, Low: 0x8000000000000000})
}

func TestInt32(t *testing.T) {
	ctx := fx80.NewContext()

	test.Equate(t, ctx.Int32(one), int32(1))
	test.Equate(t, ctx.Int32(negOne), int32(-1))
	test.Equate(t, ctx.Int32(twelve), int32(12))

	// rounding honours the mode
	test.Equate(t, ctx.Int32(oneAndFct), int32(2))
	ctx.Rounding = fx80.RoundZero
	test.Equate(t, ctx.Int32(oneAndFct), int32(1))
	ctx.Rounding = fx80.RoundNearestEven

	// out of range is invalid and saturates
	ctx.Flags = 0
	big := fx80.Float{High: 0x403e, Low: 0x8000000000000000} // 2^63
	test.Equate(t, ctx.Int32(big), int32(0x7fffffff))
	test.Equate(t, ctx.Flags&fx80.FlagInvalid != 0, true)
}

func TestInt64RoundToZero(t *testing.T) {
	ctx := fx80.NewContext()

	test.Equate(t, ctx.Int64RoundToZero(oneAndFct), int64(1))
	test.Equate(t, ctx.Int64RoundToZero(oneAndFct.Neg()), int64(-1))
	test.Equate(t, ctx.Int64RoundToZero(fx80.Zero), int64(0))

	// truncation ignores the rounding mode
	ctx.Rounding = fx80.RoundUp
	test.Equate(t, ctx.Int64RoundToZero(oneAndFct), int64(1))
}

func TestCompare(t *testing.T) {
	ctx := fx80.NewContext()

	test.Equate(t, ctx.Lt(one, two), true)
	test.Equate(t, ctx.Lt(two, one), false)
	test.Equate(t, ctx.Lt(negOne, one), true)
	test.Equate(t, ctx.Le(one, one), true)
	test.Equate(t, ctx.Eq(one, one), true)
	test.Equate(t, ctx.Eq(one, two), false)

	// zeroes compare equal regardless of sign
	test.Equate(t, ctx.Eq(fx80.Zero, fx80.Zero.Neg()), true)
	test.Equate(t, ctx.Lt(fx80.Zero.Neg(), fx80.Zero), false)
	test.Equate(t, ctx.Flags == 0, true)

	// quiet comparison is only signalled by signaling NaNs
	test.Equate(t, ctx.Eq(fx80.Indefinite, one), false)
	test.Equate(t, ctx.Flags == 0, true)
	test.Equate(t, ctx.Eq(sNaN, one), false)
	test.Equate(t, ctx.Flags&fx80.FlagInvalid != 0, true)

	// ordered comparison is signalled by any NaN
	ctx.Flags = 0
	test.Equate(t, ctx.Lt(fx80.Indefinite, one), false)
	test.Equate(t, ctx.Flags&fx80.FlagInvalid != 0, true)
}

func TestClassification(t *testing.T) {
	test.Equate(t, fx80.Zero.IsZero(), true)
	test.Equate(t, fx80.Zero.Neg().IsZero(), true)
	test.Equate(t, one.IsZero(), false)
	test.Equate(t, posInf.IsInf(), true)
	test.Equate(t, posInf.Neg().IsInf(), true)
	test.Equate(t, posInf.IsNaN(), false)
	test.Equate(t, fx80.Indefinite.IsNaN(), true)
	test.Equate(t, fx80.Indefinite.IsSignalingNaN(), false)
	test.Equate(t, sNaN.IsSignalingNaN(), true)
	test.Equate(t, sNaN.IsNaN(), true)

	denormal := fx80.Float{High: 0x0000, Low: 0x0000000000000001}
	test.Equate(t, denormal.IsDenormal(), true)
	test.Equate(t, denormal.IsZero(), false)
}

func TestPrecisionOps(t *testing.T) {
	ctx := fx80.NewContext()

	// single precision: 2^24 + 1 is not representable
	p24 := math.Float32bits(16777216.0)
	onef := math.Float32bits(1.0)
	test.Equate(t, ctx.Add32(p24, onef), p24)
	test.Equate(t, ctx.Flags&fx80.FlagInexact != 0, true)

	// double precision: 2^53 + 1 is not representable
	ctx.Flags = 0
	p53 := math.Float64bits(9007199254740992.0)
	oned := math.Float64bits(1.0)
	test.Equate(t, ctx.Add64(p53, oned), p53)
	test.Equate(t, ctx.Flags&fx80.FlagInexact != 0, true)

	// exact operations raise nothing
	ctx.Flags = 0
	test.Equate(t, ctx.Mul32(math.Float32bits(3.0), math.Float32bits(4.0)), math.Float32bits(12.0))
	test.Equate(t, ctx.Div64(math.Float64bits(12.0), math.Float64bits(3.0)), math.Float64bits(4.0))
	test.Equate(t, ctx.Sub32(math.Float32bits(3.0), math.Float32bits(4.0)), math.Float32bits(-1.0))
	test.Equate(t, ctx.Flags == 0, true)

	// directed rounding: 1/3 differs between modes in the last place
	down := fx80.NewContext()
	down.Rounding = fx80.RoundDown
	nearest := fx80.NewContext()
	rDown := down.Div32(math.Float32bits(1.0), math.Float32bits(3.0))
	rNear := nearest.Div32(math.Float32bits(1.0), math.Float32bits(3.0))
	test.Equate(t, rNear, math.Float32bits(1.0/3.0))
	test.Equate(t, rNear-rDown, uint32(1))
}
