// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/lassandro/gosigma/pkg/encoding"
)

var (
	ErrExternalArithmetic = errors.New("Cannot perform arithmetic on external value")
	ErrRelocatableSum     = errors.New("Cannot add two relocatable values")
	ErrNegativeWord       = errors.New("Negative word clamped to 0")
)

// Value is a word tagged with where it comes from and whether it moves when
// the module is relocated. Values are never modified after construction.
type Value struct {
	word       uint16
	origin     Origin
	movability Movability
}

func NewValue(word uint16, origin Origin, movability Movability) Value {
	return Value{word: word, origin: origin, movability: movability}
}

// ConstValue is a Local Fixed value
func ConstValue(word uint16) Value {
	return Value{word: word, origin: ORIGIN_LOCAL, movability: MOVABILITY_FIXED}
}

// ExternalValue is the placeholder bound to imported names; the linker
// supplies the real word.
func ExternalValue() Value {
	return Value{word: 0, origin: ORIGIN_EXTERNAL, movability: MOVABILITY_FIXED}
}

func (v Value) Word() uint16 {
	return v.word
}

func (v Value) Origin() Origin {
	return v.origin
}

func (v Value) Movability() Movability {
	return v.movability
}

func (v Value) IsExternal() bool {
	return v.origin == ORIGIN_EXTERNAL
}

func (v Value) IsRelocatable() bool {
	return v.movability == MOVABILITY_RELOCATABLE
}

func (v Value) String() string {
	return fmt.Sprintf("%s %s %s", encoding.Hex4(v.word), v.origin, v.movability)
}

// AddValues returns x+y. External operands and the sum of two relocatable
// operands are rejected; the returned value is then Fixed Local 0.
func AddValues(x, y Value) (Value, error) {
	if x.IsExternal() || y.IsExternal() {
		return ConstValue(0), ErrExternalArithmetic
	}

	if x.IsRelocatable() && y.IsRelocatable() {
		return ConstValue(0), ErrRelocatableSum
	}

	movability := MOVABILITY_FIXED

	if x.IsRelocatable() || y.IsRelocatable() {
		movability = MOVABILITY_RELOCATABLE
	}

	word, err := wrapWord(int(x.word) + int(y.word))

	return NewValue(word, ORIGIN_LOCAL, movability), err
}

// wrapWord reduces n modulo 2^16. A negative n can only come from a defect
// in the caller and is clamped to 0.
func wrapWord(n int) (uint16, error) {
	if n < 0 {
		glog.Warningf("wrapWord: negative intermediate %d", n)
		return 0, ErrNegativeWord
	}

	return uint16(n & 0xFFFF), nil
}
