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

// Package fx80 implements the extended-precision soft-float kernel used by
// the FPU core. It provides IEEE arithmetic on the 80-bit x87 extended
// format, along with the 64-bit and 32-bit formats needed for precision
// control and memory operands.
//
// All operations that can round or fault are methods on a Context. The
// Context owns the rounding mode and the sticky exception flags; the FPU's
// exception aggregator drains the flags after every computation.
//
// Values are bit patterns, not host floats. A Float is the raw 80-bit
// register image (16-bit sign/exponent word and 64-bit significand with an
// explicit integer bit); the 64-bit and 32-bit operations take and return
// uint64/uint32 bit patterns. Nothing in this package ever touches host
// floating point arithmetic, so results are identical on every platform.
package fx80
