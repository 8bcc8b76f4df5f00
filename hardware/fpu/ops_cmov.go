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

// The FCMOVcc family copies ST(i) into ST(0) when a condition on the host
// integer flags holds. The move is underflow-guarded but does not
// reclassify the destination tag.

func (f *FPU) fcmov(modrm uint8, condition bool) error {
	var result fx80.Float
	i := int(modrm & 7)

	if condition {
		if f.stEmpty(i) {
			f.setStackUnderflow()
			result = fx80.Indefinite
		} else {
			result = f.st(i)
		}

		if f.checkExceptions() {
			f.setST(0, result)
		}
	}

	f.cycle(4)
	return nil
}

func (f *FPU) fcmovbSti(modrm uint8) error {
	return f.fcmov(modrm, f.host.CF())
}

func (f *FPU) fcmoveSti(modrm uint8) error {
	return f.fcmov(modrm, f.host.ZF())
}

func (f *FPU) fcmovbeSti(modrm uint8) error {
	return f.fcmov(modrm, f.host.CF() || f.host.ZF())
}

func (f *FPU) fcmovuSti(modrm uint8) error {
	return f.fcmov(modrm, f.host.PF())
}

func (f *FPU) fcmovnbSti(modrm uint8) error {
	return f.fcmov(modrm, !f.host.CF())
}

func (f *FPU) fcmovneSti(modrm uint8) error {
	return f.fcmov(modrm, !f.host.ZF())
}

func (f *FPU) fcmovnbeSti(modrm uint8) error {
	return f.fcmov(modrm, !f.host.CF() && !f.host.ZF())
}

func (f *FPU) fcmovnuSti(modrm uint8) error {
	return f.fcmov(modrm, !f.host.PF())
}
