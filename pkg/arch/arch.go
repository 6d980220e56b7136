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

// Package arch holds the static tables describing the Sigma16 instruction
// set: which mnemonics exist, how each one is laid out in memory and which
// operand syntax it accepts.
package arch

import (
	"sort"
)

// Operation describes one statement kind. Opcode holds the primary opcode
// followed by any secondary fields; the meaning of the trailing entries
// depends on the formats.
type Operation struct {
	Mnemonic string
	IFormat  InstructionFormat
	AFormat  AddressingFormat
	Opcode   []uint16
	Pseudo   bool
}

var EmptyOperation = &Operation{
	Mnemonic: "",
	IFormat:  IFMT_EMPTY,
	AFormat:  AFMT_EMPTY,
}

var operations = map[string]*Operation{}

var controlRegisters = map[string]uint16{
	"status":  0,
	"mask":    1,
	"req":     2,
	"rstat":   3,
	"rpc":     4,
	"iir":     5,
	"iadr":    6,
	"vect":    7,
	"psegBeg": 8,
	"psegEnd": 9,
	"dsegBeg": 10,
	"dsegEnd": 11,
}

func define(mnemonic string, ifmt InstructionFormat, afmt AddressingFormat, pseudo bool, opcode ...uint16) {
	operations[mnemonic] = &Operation{
		Mnemonic: mnemonic,
		IFormat:  ifmt,
		AFormat:  afmt,
		Opcode:   opcode,
		Pseudo:   pseudo,
	}
}

func init() {
	// RRR |op|d|a|b|
	define("add", IFMT_RRR, AFMT_RRR, false, OP_ADD)
	define("sub", IFMT_RRR, AFMT_RRR, false, OP_SUB)
	define("mul", IFMT_RRR, AFMT_RRR, false, OP_MUL)
	define("div", IFMT_RRR, AFMT_RRR, false, OP_DIV)
	define("cmp", IFMT_RRR, AFMT_RR, false, OP_CMP)
	define("addc", IFMT_RRR, AFMT_RRR, false, OP_ADDC)
	define("muln", IFMT_RRR, AFMT_RRR, false, OP_MULN)
	define("divn", IFMT_RRR, AFMT_RRR, false, OP_DIVN)
	define("trap", IFMT_RRR, AFMT_RRR, false, OP_TRAP)

	// RX |f|d|a|sec| |disp|
	define("lea", IFMT_RX, AFMT_RX, false, OP_RX, RX_LEA)
	define("load", IFMT_RX, AFMT_RX, false, OP_RX, RX_LOAD)
	define("store", IFMT_RX, AFMT_RX, false, OP_RX, RX_STORE)
	define("jump", IFMT_RX, AFMT_X, false, OP_RX, RX_JUMP)
	define("jumpc0", IFMT_RX, AFMT_KX, false, OP_RX, RX_JUMPC0)
	define("jumpc1", IFMT_RX, AFMT_KX, false, OP_RX, RX_JUMPC1)
	define("jal", IFMT_RX, AFMT_RX, false, OP_RX, RX_JAL)
	define("jumpz", IFMT_RX, AFMT_RX, false, OP_RX, RX_JUMPZ)
	define("jumpnz", IFMT_RX, AFMT_RX, false, OP_RX, RX_JUMPNZ)
	define("testset", IFMT_RX, AFMT_RX, false, OP_RX, RX_TESTSET)

	// Conditional jumps expand to jumpc0/jumpc1 with the condition bit in d
	define("jumplt", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC1, CC_LT_INT)
	define("jumple", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC0, CC_GT_INT)
	define("jumpne", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC0, CC_EQ)
	define("jumpeq", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC1, CC_EQ)
	define("jumpge", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC0, CC_LT_INT)
	define("jumpgt", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC1, CC_GT_INT)
	define("jumpv", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC1, CC_OVERFLOW)
	define("jumpco", IFMT_RX, AFMT_X, true, OP_RX, RX_JUMPC1, CC_CARRY)

	// EXP |e|d|ab| |e|f|g|h|
	define("resume", IFMT_EXP1, AFMT_NONE, false, OP_EXP, EXP_RESUME)
	define("save", IFMT_EXP2, AFMT_RRX, false, OP_EXP, EXP_SAVE)
	define("restore", IFMT_EXP2, AFMT_RRX, false, OP_EXP, EXP_RESTORE)
	define("getctl", IFMT_EXP2, AFMT_RC, false, OP_EXP, EXP_GETCTL)
	define("putctl", IFMT_EXP2, AFMT_RC, false, OP_EXP, EXP_PUTCTL)
	define("shiftl", IFMT_EXP2, AFMT_RRK, false, OP_EXP, EXP_SHIFTL)
	define("shiftr", IFMT_EXP2, AFMT_RRK, false, OP_EXP, EXP_SHIFTR)
	define("logicw", IFMT_EXP2, AFMT_RRRK, false, OP_EXP, EXP_LOGICW)
	define("andw", IFMT_EXP2, AFMT_RRR, true, OP_EXP, EXP_LOGICW, LOGIC_AND)
	define("orw", IFMT_EXP2, AFMT_RRR, true, OP_EXP, EXP_LOGICW, LOGIC_OR)
	define("xorw", IFMT_EXP2, AFMT_RRR, true, OP_EXP, EXP_LOGICW, LOGIC_XOR)
	define("invw", IFMT_EXP2, AFMT_RR, true, OP_EXP, EXP_LOGICW, LOGIC_INV)
	define("logicb", IFMT_EXP2, AFMT_RKKKK, false, OP_EXP, EXP_LOGICB)
	define("andb", IFMT_EXP2, AFMT_RKKK, true, OP_EXP, EXP_LOGICB, LOGIC_AND)
	define("orb", IFMT_EXP2, AFMT_RKKK, true, OP_EXP, EXP_LOGICB, LOGIC_OR)
	define("xorb", IFMT_EXP2, AFMT_RKKK, true, OP_EXP, EXP_LOGICB, LOGIC_XOR)
	define("extract", IFMT_EXP2, AFMT_RKKRK, false, OP_EXP, EXP_EXTRACT)
	define("getbits", IFMT_EXP2, AFMT_RRKK, false, OP_EXP, EXP_GETBITS)
	define("putbits", IFMT_EXP2, AFMT_RRRKK, false, OP_EXP, EXP_PUTBITS)

	define("data", IFMT_DATA, AFMT_DATA, false)

	define("module", IFMT_DIR, AFMT_MODULE, false)
	define("import", IFMT_DIR, AFMT_IMPORT, false)
	define("export", IFMT_DIR, AFMT_EXPORT, false)
	define("org", IFMT_DIR, AFMT_ORG, false)
	define("block", IFMT_DIR, AFMT_BLOCK, false)
	define("equ", IFMT_DIR, AFMT_EQU, false)
}

// Lookup is case-sensitive, mnemonics are lower case
func Lookup(mnemonic string) (*Operation, bool) {
	op, ok := operations[mnemonic]
	return op, ok
}

// Operations returns every defined operation ordered by mnemonic
func Operations() []*Operation {
	result := make([]*Operation, 0, len(operations))

	for _, op := range operations {
		result = append(result, op)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Mnemonic < result[j].Mnemonic
	})

	return result
}

func ControlRegister(name string) (uint16, bool) {
	index, ok := controlRegisters[name]
	return index, ok
}

// CodeSize is the number of words a statement of the given formats occupies.
// Directives that move the location counter (org, block) report 0 here; the
// assembler handles them separately.
func CodeSize(ifmt InstructionFormat, afmt AddressingFormat) uint16 {
	switch ifmt {
	case IFMT_RRR, IFMT_EXP1, IFMT_DATA:
		return 1
	case IFMT_RX, IFMT_EXP2:
		return 2
	}

	return 0
}

func (ifmt InstructionFormat) String() string {
	switch ifmt {
	case IFMT_EMPTY:
		return "EMPTY"
	case IFMT_RRR:
		return "RRR"
	case IFMT_RX:
		return "RX"
	case IFMT_EXP1:
		return "EXP1"
	case IFMT_EXP2:
		return "EXP2"
	case IFMT_DATA:
		return "DATA"
	case IFMT_DIR:
		return "DIR"
	}

	return "<invalid>"
}

func (afmt AddressingFormat) String() string {
	switch afmt {
	case AFMT_NONE:
		return "none"
	case AFMT_EMPTY:
		return "empty"
	case AFMT_RRR:
		return "RRR"
	case AFMT_RR:
		return "RR"
	case AFMT_RX:
		return "RX"
	case AFMT_X:
		return "X"
	case AFMT_KX:
		return "kX"
	case AFMT_RKKRK:
		return "RkkRk"
	case AFMT_RRRK:
		return "RRRk"
	case AFMT_RKKKK:
		return "Rkkkk"
	case AFMT_RKKK:
		return "Rkkk"
	case AFMT_RC:
		return "RC"
	case AFMT_RRK:
		return "RRk"
	case AFMT_RRKK:
		return "RRkk"
	case AFMT_RRRKK:
		return "RRRkk"
	case AFMT_RRX:
		return "RRX"
	case AFMT_DATA:
		return "data"
	case AFMT_MODULE:
		return "module"
	case AFMT_IMPORT:
		return "import"
	case AFMT_EXPORT:
		return "export"
	case AFMT_ORG:
		return "org"
	case AFMT_BLOCK:
		return "block"
	case AFMT_EQU:
		return "equ"
	}

	return "<invalid>"
}
