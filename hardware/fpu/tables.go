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
	"github.com/jetsetilly/fpu87/curated"
)

// UnimplementedInstruction is the error pattern returned for modrm
// encodings absent from the opcode map.
const UnimplementedInstruction = "fpu: invalid x87 instruction (modrm %02x)"

// opcode is one entry in a dispatch table. A handler receives the modrm
// byte that selected it.
type opcode func(*FPU, uint8) error

// dispatch holds one 256-entry table per escape byte D8-DF, indexed by the
// full modrm byte. Built once at package initialisation.
var dispatch [8][256]opcode

func init() {
	buildD8()
	buildD9()
	buildDA()
	buildDB()
	buildDC()
	buildDD()
	buildDE()
	buildDF()
}

// ExecuteEscape runs a single x87 instruction: escape is the already
// fetched D8-DF opcode byte; the modrm byte is fetched here. The returned
// error is fatal to emulation. An unmapped modrm yields the
// UnimplementedInstruction pattern; an escape byte outside D8-DF is rejected
// with a separate error before any modrm is fetched.
func (f *FPU) ExecuteEscape(escape uint8) error {
	if escape < 0xd8 || escape > 0xdf {
		return curated.Errorf("fpu: not an x87 escape opcode (%02x)", escape)
	}

	modrm := f.mem.Fetch()
	return dispatch[escape-0xd8][modrm](f, modrm)
}

func invalid(f *FPU, modrm uint8) error {
	return curated.Errorf(UnimplementedInstruction, modrm)
}

// fill sets table entries for modrm values from through to inclusive.
func fill(table *[256]opcode, from, to int, fn opcode) {
	for modrm := from; modrm <= to; modrm++ {
		table[modrm] = fn
	}
}

// fillMem sets the 64 memory-form entries selected by bits 5:3 of the
// modrm byte.
func fillMem(table *[256]opcode, subop int, fn opcode) {
	for modrm := 0; modrm < 0xc0; modrm++ {
		if modrm>>3&7 == subop {
			table[modrm] = fn
		}
	}
}

func buildD8() {
	t := &dispatch[0]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).faddM32Real)
	fillMem(t, 1, (*FPU).fmulM32Real)
	fillMem(t, 2, (*FPU).fcomM32Real)
	fillMem(t, 3, (*FPU).fcompM32Real)
	fillMem(t, 4, (*FPU).fsubM32Real)
	fillMem(t, 5, (*FPU).fsubrM32Real)
	fillMem(t, 6, (*FPU).fdivM32Real)
	fillMem(t, 7, (*FPU).fdivrM32Real)

	fill(t, 0xc0, 0xc7, (*FPU).faddStSti)
	fill(t, 0xc8, 0xcf, (*FPU).fmulStSti)
	fill(t, 0xd0, 0xd7, (*FPU).fcomSti)
	fill(t, 0xd8, 0xdf, (*FPU).fcompSti)
	fill(t, 0xe0, 0xe7, (*FPU).fsubStSti)
	fill(t, 0xe8, 0xef, (*FPU).fsubrStSti)
	fill(t, 0xf0, 0xf7, (*FPU).fdivStSti)
	fill(t, 0xf8, 0xff, (*FPU).fdivrStSti)
}

func buildD9() {
	t := &dispatch[1]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fldM32Real)
	fillMem(t, 2, (*FPU).fstM32Real)
	fillMem(t, 3, (*FPU).fstpM32Real)
	fillMem(t, 4, (*FPU).fldenv)
	fillMem(t, 5, (*FPU).fldcw)
	fillMem(t, 6, (*FPU).fstenv)
	fillMem(t, 7, (*FPU).fstcw)

	fill(t, 0xc0, 0xc7, (*FPU).fldSti)
	fill(t, 0xc8, 0xcf, (*FPU).fxchSti)

	t[0xd0] = (*FPU).fnop
	t[0xe0] = (*FPU).fchs
	t[0xe1] = (*FPU).fabs
	t[0xe4] = (*FPU).ftst
	t[0xe5] = (*FPU).fxam
	t[0xe8] = (*FPU).fld1
	t[0xe9] = (*FPU).fldl2t
	t[0xea] = (*FPU).fldl2e
	t[0xeb] = (*FPU).fldpi
	t[0xec] = (*FPU).fldlg2
	t[0xed] = (*FPU).fldln2
	t[0xee] = (*FPU).fldz
	t[0xf0] = (*FPU).f2xm1
	t[0xf1] = (*FPU).fyl2x
	t[0xf2] = (*FPU).fptan
	t[0xf3] = (*FPU).fpatan
	t[0xf4] = (*FPU).fxtract
	t[0xf5] = (*FPU).fprem1
	t[0xf6] = (*FPU).fdecstp
	t[0xf7] = (*FPU).fincstp
	t[0xf8] = (*FPU).fprem
	t[0xf9] = (*FPU).fyl2xp1
	t[0xfa] = (*FPU).fsqrt
	t[0xfb] = (*FPU).fsincos
	t[0xfc] = (*FPU).frndint
	t[0xfd] = (*FPU).fscale
	t[0xfe] = (*FPU).fsin
	t[0xff] = (*FPU).fcos
}

func buildDA() {
	t := &dispatch[2]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fiaddM32Int)
	fillMem(t, 1, (*FPU).fimulM32Int)
	fillMem(t, 2, (*FPU).ficomM32Int)
	fillMem(t, 3, (*FPU).ficompM32Int)
	fillMem(t, 4, (*FPU).fisubM32Int)
	fillMem(t, 5, (*FPU).fisubrM32Int)
	fillMem(t, 6, (*FPU).fidivM32Int)
	fillMem(t, 7, (*FPU).fidivrM32Int)

	fill(t, 0xc0, 0xc7, (*FPU).fcmovbSti)
	fill(t, 0xc8, 0xcf, (*FPU).fcmoveSti)
	fill(t, 0xd0, 0xd7, (*FPU).fcmovbeSti)
	fill(t, 0xd8, 0xdf, (*FPU).fcmovuSti)
	t[0xe9] = (*FPU).fucompp
}

func buildDB() {
	t := &dispatch[3]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fildM32Int)
	fillMem(t, 2, (*FPU).fistM32Int)
	fillMem(t, 3, (*FPU).fistpM32Int)
	fillMem(t, 5, (*FPU).fldM80Real)
	fillMem(t, 7, (*FPU).fstpM80Real)

	fill(t, 0xc0, 0xc7, (*FPU).fcmovnbSti)
	fill(t, 0xc8, 0xcf, (*FPU).fcmovneSti)
	fill(t, 0xd0, 0xd7, (*FPU).fcmovnbeSti)
	fill(t, 0xd8, 0xdf, (*FPU).fcmovnuSti)

	t[0xe0] = (*FPU).fnop // FENI
	t[0xe1] = (*FPU).fnop // FDISI
	t[0xe2] = (*FPU).fclex
	t[0xe3] = (*FPU).finit
	t[0xe4] = (*FPU).fnop // FSETPM

	fill(t, 0xe8, 0xef, (*FPU).fucomiSti)
	fill(t, 0xf0, 0xf7, (*FPU).fcomiSti)
}

func buildDC() {
	t := &dispatch[4]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).faddM64Real)
	fillMem(t, 1, (*FPU).fmulM64Real)
	fillMem(t, 2, (*FPU).fcomM64Real)
	fillMem(t, 3, (*FPU).fcompM64Real)
	fillMem(t, 4, (*FPU).fsubM64Real)
	fillMem(t, 5, (*FPU).fsubrM64Real)
	fillMem(t, 6, (*FPU).fdivM64Real)
	fillMem(t, 7, (*FPU).fdivrM64Real)

	fill(t, 0xc0, 0xc7, (*FPU).faddStiSt)
	fill(t, 0xc8, 0xcf, (*FPU).fmulStiSt)
	fill(t, 0xe0, 0xe7, (*FPU).fsubrStiSt)
	fill(t, 0xe8, 0xef, (*FPU).fsubStiSt)
	fill(t, 0xf0, 0xf7, (*FPU).fdivrStiSt)
	fill(t, 0xf8, 0xff, (*FPU).fdivStiSt)
}

func buildDD() {
	t := &dispatch[5]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fldM64Real)
	fillMem(t, 2, (*FPU).fstM64Real)
	fillMem(t, 3, (*FPU).fstpM64Real)
	fillMem(t, 4, (*FPU).frstor)
	fillMem(t, 6, (*FPU).fsave)
	fillMem(t, 7, (*FPU).fstswM2Byte)

	fill(t, 0xc0, 0xc7, (*FPU).ffree)
	fill(t, 0xc8, 0xcf, (*FPU).fxchSti)
	fill(t, 0xd0, 0xd7, (*FPU).fstSti)
	fill(t, 0xd8, 0xdf, (*FPU).fstpSti)
	fill(t, 0xe0, 0xe7, (*FPU).fucomSti)
	fill(t, 0xe8, 0xef, (*FPU).fucompSti)
}

func buildDE() {
	t := &dispatch[6]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fiaddM16Int)
	fillMem(t, 1, (*FPU).fimulM16Int)
	fillMem(t, 2, (*FPU).ficomM16Int)
	fillMem(t, 3, (*FPU).ficompM16Int)
	fillMem(t, 4, (*FPU).fisubM16Int)
	fillMem(t, 5, (*FPU).fisubrM16Int)
	fillMem(t, 6, (*FPU).fidivM16Int)
	fillMem(t, 7, (*FPU).fidivrM16Int)

	fill(t, 0xc0, 0xc7, (*FPU).faddp)
	fill(t, 0xc8, 0xcf, (*FPU).fmulp)
	t[0xd9] = (*FPU).fcompp
	fill(t, 0xe0, 0xe7, (*FPU).fsubrp)
	fill(t, 0xe8, 0xef, (*FPU).fsubp)
	fill(t, 0xf0, 0xf7, (*FPU).fdivrp)
	fill(t, 0xf8, 0xff, (*FPU).fdivp)
}

func buildDF() {
	t := &dispatch[7]
	fill(t, 0x00, 0xff, invalid)

	fillMem(t, 0, (*FPU).fildM16Int)
	fillMem(t, 2, (*FPU).fistM16Int)
	fillMem(t, 3, (*FPU).fistpM16Int)
	fillMem(t, 4, (*FPU).fbld)
	fillMem(t, 5, (*FPU).fildM64Int)
	fillMem(t, 6, (*FPU).fbstp)
	fillMem(t, 7, (*FPU).fistpM64Int)

	t[0xe0] = (*FPU).fstswAx
	fill(t, 0xe8, 0xef, (*FPU).fucomipSti)
	fill(t, 0xf0, 0xf7, (*FPU).fcomipSti)
}
