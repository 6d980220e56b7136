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
	"github.com/golang/glog"

	"github.com/lassandro/gosigma/pkg/arch"
)

// pass1 creates a statement per line, binds labels and assigns addresses
func (s *State) pass1() {
	glog.V(1).Infof("Beginning pass 1: %d lines", len(s.lines))

	for i, line := range s.lines {
		stmt := &Statement{
			Line:    i + 1,
			Address: s.locationCounter,
			Source:  line,
		}

		s.statements = append(s.statements, stmt)

		s.checkCharacters(stmt)
		s.parseLine(stmt)
		s.handleLabel(stmt)
		s.updateLocationCounter(stmt)

		glog.V(2).Infof(
			"line %d: address=%s size=%d lc=%s",
			stmt.Line, stmt.Address, stmt.CodeSize.Word(), s.locationCounter,
		)
	}
}

func (s *State) handleLabel(stmt *Statement) {
	op := stmt.Operation

	if !stmt.HasLabel {
		if op.IFormat == arch.IFMT_DIR {
			switch op.AFormat {
			case arch.AFMT_MODULE, arch.AFMT_EQU, arch.AFMT_IMPORT:
				s.addError(stmt, &MissingLabelError{stmt.operationCursor(), op.Mnemonic})
			}
		}

		return
	}

	if op.IFormat == arch.IFMT_DIR && op.AFormat == arch.AFMT_MODULE {
		s.moduleName = stmt.Label
		return
	}

	if existing, exists := s.symbols.Lookup(stmt.Label); exists {
		s.addError(stmt, &RedeclaredSymbolError{
			stmt.labelCursor(), stmt.Label, existing.DefLine,
		})
		return
	}

	binding := Identifier{Name: stmt.Label, DefLine: stmt.Line}

	switch {
	case op.IFormat == arch.IFMT_DIR && op.AFormat == arch.AFMT_EQU:
		binding.Value = s.evaluate(stmt, s.locationCounter.Word(), stmt.OperandText)

		// An alias of an imported name refers to the same foreign symbol
		if binding.Value.IsExternal() {
			if target, ok := s.symbols.Lookup(stmt.OperandText); ok {
				binding.Module = target.Module
				binding.ExternalName = target.ExternalName
			}
		}

	case op.IFormat == arch.IFMT_DIR && op.AFormat == arch.AFMT_IMPORT:
		if len(stmt.Operands) != 2 {
			s.addError(stmt, &InvalidNumArgumentsError{
				stmt.operandsCursor(), 2, len(stmt.Operands),
			})
			return
		}

		for _, name := range stmt.Operands {
			if !isName(name) {
				s.addError(stmt, &InvalidOperandError{
					stmt.textCursor(name), "module,name", stmt.OperandText,
				})
				return
			}
		}

		binding.Module = stmt.Operands[0]
		binding.ExternalName = stmt.Operands[1]
		binding.Value = ExternalValue()

	default:
		binding.Value = s.locationCounter
	}

	if err := s.symbols.Define(binding); err != nil {
		s.addError(stmt, &InternalError{stmt.labelCursor(), err.Error()})
	}
}

func (s *State) updateLocationCounter(stmt *Statement) {
	op := stmt.Operation

	switch {
	case op.IFormat == arch.IFMT_DIR && op.AFormat == arch.AFMT_ORG:
		value := s.evaluate(stmt, s.locationCounter.Word(), stmt.OperandText)

		if value.IsExternal() {
			s.addError(stmt, &InvalidOperandError{
				stmt.operandsCursor(), "local address", stmt.OperandText,
			})
		} else {
			s.locationCounter = value
		}

		address := s.locationCounter
		stmt.OrgAddress = &address

	case op.IFormat == arch.IFMT_DIR && op.AFormat == arch.AFMT_BLOCK:
		value := s.evaluate(stmt, s.locationCounter.Word(), stmt.OperandText)

		if value.IsRelocatable() {
			s.addError(stmt, &BlockOperandError{stmt.operandsCursor(), value})
		} else if next, err := AddValues(s.locationCounter, value); err != nil {
			s.addError(stmt, &ArithmeticError{stmt.operandsCursor(), err})
		} else {
			s.locationCounter = next
		}

		address := s.locationCounter
		stmt.OrgAddress = &address

	default:
		next, err := AddValues(s.locationCounter, stmt.CodeSize)

		if err != nil {
			s.addError(stmt, &ArithmeticError{stmt.operationCursor(), err})
			return
		}

		s.locationCounter = next
	}
}
