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
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lassandro/gosigma/pkg/arch"
)

// label, spaces, operation, spaces, operands, comment
var lineParser = regexp.MustCompile(`^([^\s";]*)(\s*)([^\s";]*)(\s*)([^\s";]*)(.*)$`)

var nameParser = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

const validCharacters = "_abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	" \t,;\n\"'" +
	".$[]()+-*" +
	"?`<=>!%^&{}#~@:|/\\"

var characterSetNotes = []string{
	"See User Guide for list of valid characters",
	"(Word processors often insert invalid characters)",
}

// Statement is one source line together with everything both passes learn
// about it.
type Statement struct {
	Line    int
	Address Value
	Source  string

	Label                string
	SpacesAfterLabel     string
	Mnemonic             string
	SpacesAfterOperation string
	OperandText          string
	Comment              string

	HasLabel  bool
	Operation *arch.Operation
	Operands  []string
	CodeSize  Value

	// Set by org and block to the location counter they establish
	OrgAddress *Value

	Code   []uint16
	Errors []StatementError
}

// normalize drops carriage returns and splits text into lines
func normalize(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
}

// validateChars returns the 1-based columns of characters outside the
// assembly character set.
func validateChars(line string) []int {
	var columns []int
	var column int

	for _, char := range line {
		column++

		if !strings.ContainsRune(validCharacters, char) {
			columns = append(columns, column)
		}
	}

	return columns
}

func isName(text string) bool {
	return nameParser.MatchString(text)
}

func splitOperands(text string) []string {
	if text == "" {
		return []string{}
	}

	return strings.Split(text, ",")
}

func (s *Statement) labelCursor() Cursor {
	return Cursor{Line: s.Line, Column: 1, Size: utf8.RuneCountInString(s.Label)}
}

func (s *Statement) operationCursor() Cursor {
	column := 1 + utf8.RuneCountInString(s.Label+s.SpacesAfterLabel)
	return Cursor{Line: s.Line, Column: column, Size: utf8.RuneCountInString(s.Mnemonic)}
}

func (s *Statement) operandsCursor() Cursor {
	column := 1 + utf8.RuneCountInString(
		s.Label+s.SpacesAfterLabel+s.Mnemonic+s.SpacesAfterOperation,
	)
	return Cursor{Line: s.Line, Column: column, Size: utf8.RuneCountInString(s.OperandText)}
}

// textCursor locates text inside the operand field, falling back to the
// whole field.
func (s *Statement) textCursor(text string) Cursor {
	cursor := s.operandsCursor()

	if text == "" {
		return cursor
	}

	if index := strings.Index(s.OperandText, text); index >= 0 {
		cursor.Column += utf8.RuneCountInString(s.OperandText[:index])
		cursor.Size = utf8.RuneCountInString(text)
	}

	return cursor
}

func (s *State) checkCharacters(stmt *Statement) {
	columns := validateChars(stmt.Source)

	if len(columns) == 0 {
		return
	}

	position := Cursor{Line: stmt.Line, Column: columns[0], Size: 1}

	s.addError(stmt, &InvalidCharacterError{position, columns})

	for _, note := range characterSetNotes {
		s.addError(stmt, &CharacterSetNote{position, note})
	}
}

func (s *State) parseLine(stmt *Statement) {
	fields := lineParser.FindStringSubmatch(stmt.Source)

	if fields == nil {
		stmt.Operation = arch.EmptyOperation
		stmt.CodeSize = ConstValue(0)
		s.addError(stmt, &InternalError{
			Cursor{Line: stmt.Line, Column: 1}, "line does not split into fields",
		})
		return
	}

	stmt.Label = fields[1]
	stmt.SpacesAfterLabel = fields[2]
	stmt.Mnemonic = fields[3]
	stmt.SpacesAfterOperation = fields[4]
	stmt.OperandText = fields[5]
	stmt.Comment = fields[6]
	stmt.Operands = splitOperands(stmt.OperandText)

	s.parseLabel(stmt)
	s.parseOperation(stmt)
}

func (s *State) parseLabel(stmt *Statement) {
	if stmt.Label == "" {
		stmt.HasLabel = false
	} else if isName(stmt.Label) {
		stmt.HasLabel = true
	} else {
		stmt.HasLabel = false
		s.addError(stmt, &InvalidLabelError{stmt.labelCursor(), stmt.Label})
	}
}

func (s *State) parseOperation(stmt *Statement) {
	stmt.Operation = arch.EmptyOperation
	stmt.CodeSize = ConstValue(0)

	if stmt.Mnemonic == "" {
		return
	}

	op, ok := arch.Lookup(stmt.Mnemonic)

	if !ok {
		s.addError(stmt, &UnknownOperationError{stmt.operationCursor(), stmt.Mnemonic})
		return
	}

	stmt.Operation = op
	stmt.CodeSize = ConstValue(arch.CodeSize(op.IFormat, op.AFormat))
}
