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

package fx80

// Rounding selects the direction results are rounded in. The zero value is
// round-to-nearest-even.
type Rounding int

// The four IEEE rounding directions.
const (
	RoundNearestEven Rounding = iota
	RoundDown
	RoundUp
	RoundZero
)

func (r Rounding) String() string {
	switch r {
	case RoundNearestEven:
		return "nearest-even"
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	case RoundZero:
		return "zero"
	}
	return "unknown"
}

// Flags is the sticky exception flag register. Operations OR conditions into
// it; only the owner ever clears it.
type Flags uint8

// The exception conditions. The bit values follow the SoftFloat convention.
const (
	FlagInvalid   Flags = 0x01
	FlagDivByZero Flags = 0x04
	FlagOverflow  Flags = 0x08
	FlagUnderflow Flags = 0x10
	FlagInexact   Flags = 0x20
)

// Drain returns the accumulated flags and clears the register.
func (f *Flags) Drain() Flags {
	r := *f
	*f = 0
	return r
}

// Context owns the rounding mode and sticky flags for a set of soft-float
// computations. A single guest FPU owns a single Context.
type Context struct {
	Rounding Rounding
	Flags    Flags
}

// NewContext returns a Context rounding to nearest-even with no flags set.
func NewContext() *Context {
	return &Context{}
}

func (c *Context) raise(f Flags) {
	c.Flags |= f
}
