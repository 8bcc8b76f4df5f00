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

// fpu87 is a bit-level emulation of the Intel 8087/287/387/486 class x87
// floating point coprocessor.
//
// The emulation proper lives in the hardware/fpu package: the register
// stack, the control/status/tag words, the per-instruction semantics and
// the D8-DF dispatch tables. Arithmetic is carried out by the soft-float
// kernel in hardware/fpu/fx80 so results are bit-identical across host
// platforms; no host floating point leaks into guest-visible state (the
// transcendental instructions excepted, see the TranscendentalBackend
// interface).
//
// The containing CPU emulation supplies instruction bytes, effective
// addresses and memory through the interfaces in hardware/bus, and receives
// unmasked exceptions as #MF faults. Alternatively, a host process can
// drive the FPU directly through the small vtable returned by
// (*fpu.FPU).Vtable().
package fpu87
