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
	"strings"

	"github.com/lassandro/gosigma/pkg/arch"
)

// Cursor locates a diagnostic in the source. Line and Column are 1-based,
// Size is the width of the offending text in characters.
type Cursor struct {
	Line   int
	Column int
	Size   int
}

// StatementError is implemented by every diagnostic attached to a
// statement.
type StatementError interface {
	error
	GetPosition() Cursor
	Kind() ErrorKind
}

type InvalidCharacterError struct {
	Position Cursor
	Columns  []int
}

func (err *InvalidCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidCharacterError) Kind() ErrorKind {
	return ERROR_LEXICAL
}

func (err *InvalidCharacterError) Error() string {
	columns := make([]string, len(err.Columns))

	for i, column := range err.Columns {
		columns[i] = fmt.Sprint(column)
	}

	return fmt.Sprintf(
		"%02d:%02d: Invalid character at position %s",
		err.Position.Line,
		err.Position.Column,
		strings.Join(columns, ","),
	)
}

// CharacterSetNote accompanies an InvalidCharacterError with guidance for
// the user.
type CharacterSetNote struct {
	Position Cursor
	Note     string
}

func (err *CharacterSetNote) GetPosition() Cursor {
	return err.Position
}

func (err *CharacterSetNote) Kind() ErrorKind {
	return ERROR_LEXICAL
}

func (err *CharacterSetNote) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s",
		err.Position.Line,
		err.Position.Column,
		err.Note,
	)
}

type InvalidLabelError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLabelError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: '%s' is not a valid label",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type MissingLabelError struct {
	Position  Cursor
	Operation string
}

func (err *MissingLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *MissingLabelError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *MissingLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: '%s' requires a label",
		err.Position.Line,
		err.Position.Column,
		err.Operation,
	)
}

type UnknownOperationError struct {
	Position Cursor
	Received string
}

func (err *UnknownOperationError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownOperationError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *UnknownOperationError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown operation '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidOperandError struct {
	Position Cursor
	Required string
	Received string
}

func (err *InvalidOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid operand\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidExpressionError struct {
	Position Cursor
	Received string
}

func (err *InvalidExpressionError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidExpressionError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *InvalidExpressionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Expression '%s' has invalid syntax",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidLiteralError struct {
	Position Cursor
	Received string
}

func (err *InvalidLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid numeric literal '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Kind() ErrorKind {
	return ERROR_SYNTAX
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type RedeclaredSymbolError struct {
	Position Cursor
	Received string
	DefLine  int
}

func (err *RedeclaredSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredSymbolError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *RedeclaredSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: '%s' has already been defined on line %d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.DefLine,
	)
}

type UndefinedSymbolError struct {
	Position Cursor
	Received string
}

func (err *UndefinedSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *UndefinedSymbolError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *UndefinedSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Symbol '%s' is not defined",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

// ArithmeticError wraps ErrExternalArithmetic, ErrRelocatableSum or
// ErrNegativeWord with the position of the statement that caused it.
type ArithmeticError struct {
	Position Cursor
	Err      error
}

func (err *ArithmeticError) GetPosition() Cursor {
	return err.Position
}

func (err *ArithmeticError) Kind() ErrorKind {
	if err.Err == ErrNegativeWord {
		return ERROR_INTERNAL
	}

	return ERROR_SEMANTIC
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}

func (err *ArithmeticError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s",
		err.Position.Line,
		err.Position.Column,
		err.Err,
	)
}

type UnknownControlRegisterError struct {
	Position Cursor
	Received string
}

func (err *UnknownControlRegisterError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownControlRegisterError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *UnknownControlRegisterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: '%s' is not a valid control register",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UndefinedExportError struct {
	Position Cursor
	Received string
}

func (err *UndefinedExportError) GetPosition() Cursor {
	return err.Position
}

func (err *UndefinedExportError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *UndefinedExportError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Export identifier '%s' is undefined",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type BlockOperandError struct {
	Position Cursor
	Received Value
}

func (err *BlockOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *BlockOperandError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *BlockOperandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Operand for block must be Fixed\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type FixedFieldError struct {
	Position Cursor
	Field    Field
	Received Value
}

func (err *FixedFieldError) GetPosition() Cursor {
	return err.Position
}

func (err *FixedFieldError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *FixedFieldError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Field %s requires a fixed value\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Field,
		err.Received,
	)
}

type OversizedFieldError struct {
	Position Cursor
	Field    Field
	Required uint16
	Received uint16
}

func (err *OversizedFieldError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedFieldError) Kind() ErrorKind {
	return ERROR_SEMANTIC
}

func (err *OversizedFieldError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Field %s exceeds allowed size\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Field,
		err.Required,
		err.Received,
	)
}

type UnhandledFormatError struct {
	Position Cursor
	IFormat  arch.InstructionFormat
	AFormat  arch.AddressingFormat
	Pseudo   bool
}

func (err *UnhandledFormatError) GetPosition() Cursor {
	return err.Position
}

func (err *UnhandledFormatError) Kind() ErrorKind {
	return ERROR_INTERNAL
}

func (err *UnhandledFormatError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Internal error, no encoding for %s/%s (pseudo=%t)",
		err.Position.Line,
		err.Position.Column,
		err.IFormat,
		err.AFormat,
		err.Pseudo,
	)
}

type InternalError struct {
	Position Cursor
	Message  string
}

func (err *InternalError) GetPosition() Cursor {
	return err.Position
}

func (err *InternalError) Kind() ErrorKind {
	return ERROR_INTERNAL
}

func (err *InternalError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Internal error, %s",
		err.Position.Line,
		err.Position.Column,
		err.Message,
	)
}
