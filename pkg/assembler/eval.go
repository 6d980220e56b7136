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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/gosigma/pkg/arch"
	"github.com/lassandro/gosigma/pkg/encoding"
)

var (
	intParser = regexp.MustCompile(`^-?[0-9]+$`)
	hexParser = regexp.MustCompile(`^\$[0-9a-fA-F]{4}$`)
	regParser = regexp.MustCompile(`^R([0-9a-fA-F]|1[0-5])$`)
	xParser   = regexp.MustCompile(`^(-?[a-zA-Z0-9_$+]+)\[R([0-9a-fA-F]|1[0-5])\]$`)
)

type importRecord struct {
	Module       string
	ExternalName string
	Address      uint16
	Field        Field
}

type exportRecord struct {
	Name  string
	Value Value
}

func isTerm(text string) bool {
	return isName(text) || intParser.MatchString(text) || hexParser.MatchString(text)
}

// evaluate resolves operand text to a Value. addr is the address of the word
// the value will occupy. Errors are attached to stmt and yield Fixed Local 0.
//
//	expr := term | term '+' term
//	term := name | decimal | '$' hex hex hex hex
func (s *State) evaluate(stmt *Statement, addr uint16, text string) Value {
	glog.V(2).Infof(
		"line %d: evaluate %q for %s", stmt.Line, text, encoding.Hex4(addr),
	)

	if isTerm(text) {
		return s.evaluateTerm(stmt, text)
	}

	if left, right, found := strings.Cut(text, "+"); found {
		if isTerm(left) && isTerm(right) {
			x := s.evaluateTerm(stmt, left)
			y := s.evaluateTerm(stmt, right)

			result, err := AddValues(x, y)

			if err != nil {
				s.addError(stmt, &ArithmeticError{stmt.textCursor(text), err})
			}

			return result
		}
	}

	s.addError(stmt, &InvalidExpressionError{stmt.textCursor(text), text})

	return ConstValue(0)
}

func (s *State) evaluateTerm(stmt *Statement, text string) Value {
	switch {
	case isName(text):
		binding, exists := s.symbols.Lookup(text)

		if !exists {
			s.addError(stmt, &UndefinedSymbolError{stmt.textCursor(text), text})
			return ConstValue(0)
		}

		s.symbols.RecordUsage(text, stmt.Line)

		return binding.Value

	case intParser.MatchString(text):
		n, err := encoding.DecodeInt(text)

		if err == nil {
			if word, ok := encoding.IntToWord(n); ok {
				return ConstValue(word)
			}
		}

		s.addError(stmt, &InvalidLiteralError{stmt.textCursor(text), text})

		return ConstValue(0)

	default:
		word, err := encoding.DecodeHex4(text)

		if err != nil {
			s.addError(stmt, &InvalidLiteralError{stmt.textCursor(text), text})
			return ConstValue(0)
		}

		return ConstValue(word)
	}
}

// requireReg parses Rn where n is a hex digit or a decimal 10..15
func (s *State) requireReg(stmt *Statement, text string) uint16 {
	match := regParser.FindStringSubmatch(text)

	if match == nil {
		s.addError(stmt, &InvalidOperandError{stmt.textCursor(text), "register", text})
		return 0
	}

	base := 10

	if len(match[1]) == 1 {
		base = 16
	}

	n, _ := strconv.ParseUint(match[1], base, 8)

	return uint16(n)
}

// requireX splits disp[Rn] into the displacement text and the index register
func (s *State) requireX(stmt *Statement, text string) (string, uint16) {
	match := xParser.FindStringSubmatch(text)

	if match == nil {
		s.addError(stmt, &InvalidOperandError{stmt.textCursor(text), "disp[Rn]", text})
		return "0", 0
	}

	return match[1], s.requireReg(stmt, "R"+match[2])
}

// requireK evaluates a small constant field placed in the word at addr.
// Imported values leave the field 0 and produce an import record.
func (s *State) requireK(stmt *Statement, addr uint16, field Field, text string, limit uint16) uint16 {
	value := s.evaluate(stmt, addr, text)

	switch {
	case value.IsExternal():
		s.handleValue(stmt, addr, text, value, field)
		return 0

	case value.IsRelocatable():
		s.addError(stmt, &FixedFieldError{stmt.textCursor(text), field, value})
		return 0

	case value.Word() > limit:
		s.addError(stmt, &OversizedFieldError{
			stmt.textCursor(text), field, limit, value.Word(),
		})
		return 0
	}

	return value.Word()
}

func (s *State) requireControl(stmt *Statement, text string) uint16 {
	index, ok := arch.ControlRegister(text)

	if !ok {
		s.addError(stmt, &UnknownControlRegisterError{stmt.textCursor(text), text})
		return 0
	}

	return index
}

// handleValue records a relocation for Local Relocatable values and an import
// for External ones. text is the operand the value came from.
func (s *State) handleValue(stmt *Statement, addr uint16, text string, value Value, field Field) {
	switch {
	case value.IsExternal():
		binding, exists := s.symbols.Lookup(text)

		if !exists || !binding.IsImported() {
			s.addError(stmt, &InternalError{
				stmt.textCursor(text),
				fmt.Sprintf("external symbol %s undefined", text),
			})
			return
		}

		glog.V(2).Infof(
			"line %d: import %s.%s at %s", stmt.Line,
			binding.Module, binding.ExternalName, encoding.Hex4(addr),
		)

		s.imports = append(s.imports, importRecord{
			Module:       binding.Module,
			ExternalName: binding.ExternalName,
			Address:      addr,
			Field:        field,
		})

	case value.IsRelocatable():
		glog.V(2).Infof("line %d: relocate %s", stmt.Line, encoding.Hex4(addr))
		s.relocations = append(s.relocations, addr)
	}
}
