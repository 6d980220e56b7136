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
	"github.com/lassandro/gosigma/pkg/encoding"
)

type encodingKey struct {
	IFormat arch.InstructionFormat
	AFormat arch.AddressingFormat
	Pseudo  bool
}

type encoder func(s *State, stmt *Statement, op *arch.Operation)

// Every key arch can produce has an entry; a miss is an internal error.
var encoders = map[encodingKey]encoder{
	{arch.IFMT_EMPTY, arch.AFMT_EMPTY, false}: encodeNothing,

	{arch.IFMT_RRR, arch.AFMT_RRR, false}: encodeRRR,
	{arch.IFMT_RRR, arch.AFMT_RR, false}:  encodeRR,

	{arch.IFMT_RX, arch.AFMT_RX, false}: encodeRX,
	{arch.IFMT_RX, arch.AFMT_X, false}:  encodeX,
	{arch.IFMT_RX, arch.AFMT_X, true}:   encodeXPseudo,
	{arch.IFMT_RX, arch.AFMT_KX, false}: encodeKX,

	{arch.IFMT_EXP1, arch.AFMT_NONE, false}: encodeEXP1,

	{arch.IFMT_EXP2, arch.AFMT_RRX, false}:   encodeRRX,
	{arch.IFMT_EXP2, arch.AFMT_RC, false}:    encodeRC,
	{arch.IFMT_EXP2, arch.AFMT_RRK, false}:   encodeRRK,
	{arch.IFMT_EXP2, arch.AFMT_RRRK, false}:  encodeRRRK,
	{arch.IFMT_EXP2, arch.AFMT_RRR, true}:    encodeRRRPseudo,
	{arch.IFMT_EXP2, arch.AFMT_RR, true}:     encodeRRPseudo,
	{arch.IFMT_EXP2, arch.AFMT_RKKKK, false}: encodeRKKKK,
	{arch.IFMT_EXP2, arch.AFMT_RKKK, true}:   encodeRKKKPseudo,
	{arch.IFMT_EXP2, arch.AFMT_RKKRK, false}: encodeRKKRK,
	{arch.IFMT_EXP2, arch.AFMT_RRKK, false}:  encodeRRKK,
	{arch.IFMT_EXP2, arch.AFMT_RRRKK, false}: encodeRRRKK,

	{arch.IFMT_DATA, arch.AFMT_DATA, false}: encodeData,

	{arch.IFMT_DIR, arch.AFMT_ORG, false}:    encodeOrg,
	{arch.IFMT_DIR, arch.AFMT_BLOCK, false}:  encodeOrg,
	{arch.IFMT_DIR, arch.AFMT_EXPORT, false}: encodeExport,
	{arch.IFMT_DIR, arch.AFMT_MODULE, false}: encodeNothing,
	{arch.IFMT_DIR, arch.AFMT_IMPORT, false}: encodeNothing,
	{arch.IFMT_DIR, arch.AFMT_EQU, false}:    encodeNothing,
}

// pass2 encodes every statement now that all addresses are known
func (s *State) pass2() {
	glog.V(1).Infof("Beginning pass 2: %d statements", len(s.statements))

	s.objectLines = append(s.objectLines, "module   "+s.moduleName)

	for _, stmt := range s.statements {
		op := stmt.Operation
		key := encodingKey{op.IFormat, op.AFormat, op.Pseudo}

		if encode, ok := encoders[key]; ok {
			encode(s, stmt, op)
		} else {
			s.addError(stmt, &UnhandledFormatError{
				stmt.operationCursor(), op.IFormat, op.AFormat, op.Pseudo,
			})
		}

		s.listStatement(stmt)
	}

	s.flushWords()
	s.emitRelocations()
	s.emitExports()
	s.emitImports()
}

func (s *State) emitWord(stmt *Statement, addr uint16, word uint16) {
	glog.V(2).Infof(
		"line %d: %s = %s", stmt.Line, encoding.Hex4(addr), encoding.Hex4(word),
	)

	s.wordBuffer = append(s.wordBuffer, word)
	s.asmap[addr] = stmt.Line
	s.memory[addr] = word
	stmt.Code = append(stmt.Code, word)
}

// requireOperands checks the operand count. On a mismatch the statement
// still fills its code size with zero words so later addresses line up.
func (s *State) requireOperands(stmt *Statement, n int) bool {
	if len(stmt.Operands) == n {
		return true
	}

	s.addError(stmt, &InvalidNumArgumentsError{
		stmt.operandsCursor(), n, len(stmt.Operands),
	})

	for i := uint16(0); i < stmt.CodeSize.Word(); i++ {
		s.emitWord(stmt, stmt.Address.Word()+i, 0)
	}

	return false
}

func encodeNothing(s *State, stmt *Statement, op *arch.Operation) {}

func encodeRRR(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 3) {
		return
	}

	d := s.requireReg(stmt, stmt.Operands[0])
	a := s.requireReg(stmt, stmt.Operands[1])
	b := s.requireReg(stmt, stmt.Operands[2])

	s.emitWord(stmt, stmt.Address.Word(), encoding.Word(op.Opcode[0], d, a, b))
}

func encodeRR(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 2) {
		return
	}

	a := s.requireReg(stmt, stmt.Operands[0])
	b := s.requireReg(stmt, stmt.Operands[1])

	s.emitWord(stmt, stmt.Address.Word(), encoding.Word(op.Opcode[0], 0, a, b))
}

// emitIndexed writes |op|d|index|secondary| followed by the displacement
func (s *State) emitIndexed(stmt *Statement, op *arch.Operation, d uint16, text string) {
	disp, index := s.requireX(stmt, text)
	addr := stmt.Address.Word()
	value := s.evaluate(stmt, addr+1, disp)

	s.emitWord(stmt, addr, encoding.Word(op.Opcode[0], d, index, op.Opcode[1]))
	s.emitWord(stmt, addr+1, value.Word())
	s.handleValue(stmt, addr+1, disp, value, FIELD_DISP)
}

func encodeRX(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 2) {
		return
	}

	d := s.requireReg(stmt, stmt.Operands[0])
	s.emitIndexed(stmt, op, d, stmt.Operands[1])
}

func encodeX(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 1) {
		return
	}

	s.emitIndexed(stmt, op, 0, stmt.Operands[0])
}

// Conditional jumps carry their condition bit in the opcode table
func encodeXPseudo(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 1) {
		return
	}

	s.emitIndexed(stmt, op, op.Opcode[2], stmt.Operands[0])
}

func encodeKX(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 2) {
		return
	}

	k := s.requireK(stmt, stmt.Address.Word(), FIELD_D, stmt.Operands[0], K4_MAX)
	s.emitIndexed(stmt, op, k, stmt.Operands[1])
}

func encodeEXP1(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 0) {
		return
	}

	s.emitWord(stmt, stmt.Address.Word(), encoding.WordK8(op.Opcode[0], 0, op.Opcode[1]))
}

// emitExpanded writes |e|d|ab| followed by the secondary word
func (s *State) emitExpanded(stmt *Statement, op *arch.Operation, d uint16, second uint16) {
	addr := stmt.Address.Word()

	s.emitWord(stmt, addr, encoding.WordK8(op.Opcode[0], d, op.Opcode[1]))
	s.emitWord(stmt, addr+1, second)
}

func encodeRRX(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 3) {
		return
	}

	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	disp, f := s.requireX(stmt, stmt.Operands[2])
	gh := s.requireK(stmt, stmt.Address.Word()+1, FIELD_GH, disp, K8_MAX)

	s.emitExpanded(stmt, op, d, encoding.WordK8(e, f, gh))
}

func encodeRC(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 2) {
		return
	}

	e := s.requireReg(stmt, stmt.Operands[0])
	f := s.requireControl(stmt, stmt.Operands[1])

	s.emitExpanded(stmt, op, 0, encoding.Word(e, f, 0, 0))
}

func encodeRRK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 3) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	f := s.requireK(stmt, addr, FIELD_F, stmt.Operands[2], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, 0, 0))
}

func encodeRRRK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 4) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	f := s.requireReg(stmt, stmt.Operands[2])
	h := s.requireK(stmt, addr, FIELD_H, stmt.Operands[3], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, 0, h))
}

func encodeRRRPseudo(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 3) {
		return
	}

	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	f := s.requireReg(stmt, stmt.Operands[2])

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, 0, op.Opcode[2]))
}

func encodeRRPseudo(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 2) {
		return
	}

	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])

	s.emitExpanded(stmt, op, d, encoding.Word(e, 0, 0, op.Opcode[2]))
}

func encodeRKKKK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 5) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireK(stmt, addr, FIELD_E, stmt.Operands[1], K4_MAX)
	f := s.requireK(stmt, addr, FIELD_F, stmt.Operands[2], K4_MAX)
	g := s.requireK(stmt, addr, FIELD_G, stmt.Operands[3], K4_MAX)
	h := s.requireK(stmt, addr, FIELD_H, stmt.Operands[4], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, g, h))
}

func encodeRKKKPseudo(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 4) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireK(stmt, addr, FIELD_E, stmt.Operands[1], K4_MAX)
	f := s.requireK(stmt, addr, FIELD_F, stmt.Operands[2], K4_MAX)
	g := s.requireK(stmt, addr, FIELD_G, stmt.Operands[3], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, g, op.Opcode[2]))
}

func encodeRKKRK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 5) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireK(stmt, addr, FIELD_E, stmt.Operands[1], K4_MAX)
	f := s.requireK(stmt, addr, FIELD_F, stmt.Operands[2], K4_MAX)
	g := s.requireReg(stmt, stmt.Operands[3])
	h := s.requireK(stmt, addr, FIELD_H, stmt.Operands[4], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, g, h))
}

func encodeRRKK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 4) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	g := s.requireK(stmt, addr, FIELD_G, stmt.Operands[2], K4_MAX)
	h := s.requireK(stmt, addr, FIELD_H, stmt.Operands[3], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, 0, g, h))
}

func encodeRRRKK(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 5) {
		return
	}

	addr := stmt.Address.Word() + 1
	d := s.requireReg(stmt, stmt.Operands[0])
	e := s.requireReg(stmt, stmt.Operands[1])
	f := s.requireReg(stmt, stmt.Operands[2])
	g := s.requireK(stmt, addr, FIELD_G, stmt.Operands[3], K4_MAX)
	h := s.requireK(stmt, addr, FIELD_H, stmt.Operands[4], K4_MAX)

	s.emitExpanded(stmt, op, d, encoding.Word(e, f, g, h))
}

func encodeData(s *State, stmt *Statement, op *arch.Operation) {
	if !s.requireOperands(stmt, 1) {
		return
	}

	addr := stmt.Address.Word()
	value := s.evaluate(stmt, addr, stmt.Operands[0])

	s.emitWord(stmt, addr, value.Word())
	s.handleValue(stmt, addr, stmt.Operands[0], value, FIELD_DATA)
}

// org and block start a new data record at the address fixed in pass 1
func encodeOrg(s *State, stmt *Statement, op *arch.Operation) {
	address := s.locationCounter

	if stmt.OrgAddress != nil {
		address = *stmt.OrgAddress
	}

	s.flushWords()
	s.objectLines = append(s.objectLines, "org      "+encoding.Hex4(address.Word()))
}

func encodeExport(s *State, stmt *Statement, op *arch.Operation) {
	if len(stmt.Operands) == 0 {
		s.addError(stmt, &InvalidNumArgumentsError{stmt.operandsCursor(), 1, 0})
		return
	}

	for _, name := range stmt.Operands {
		if !isName(name) {
			s.addError(stmt, &InvalidOperandError{stmt.textCursor(name), "identifier", name})
			continue
		}

		binding, exists := s.symbols.Lookup(name)

		if !exists {
			s.addError(stmt, &UndefinedExportError{stmt.textCursor(name), name})
			continue
		}

		s.symbols.RecordUsage(name, stmt.Line)
		s.exports = append(s.exports, exportRecord{Name: name, Value: binding.Value})
	}
}
