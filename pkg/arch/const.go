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

package arch

type InstructionFormat uint
type AddressingFormat uint

const (
	IFMT_EMPTY InstructionFormat = iota
	IFMT_RRR
	IFMT_RX
	IFMT_EXP1
	IFMT_EXP2
	IFMT_DATA
	IFMT_DIR
)

const (
	AFMT_NONE AddressingFormat = iota
	AFMT_EMPTY
	AFMT_RRR
	AFMT_RR
	AFMT_RX
	AFMT_X
	AFMT_KX
	AFMT_RKKRK
	AFMT_RRRK
	AFMT_RKKKK
	AFMT_RKKK
	AFMT_RC
	AFMT_RRK
	AFMT_RRKK
	AFMT_RRRKK
	AFMT_RRX
	AFMT_DATA
	AFMT_MODULE
	AFMT_IMPORT
	AFMT_EXPORT
	AFMT_ORG
	AFMT_BLOCK
	AFMT_EQU
)

const (
	OP_ADD  uint16 = 0x0
	OP_SUB  uint16 = 0x1
	OP_MUL  uint16 = 0x2
	OP_DIV  uint16 = 0x3
	OP_CMP  uint16 = 0x4
	OP_ADDC uint16 = 0x5
	OP_MULN uint16 = 0x6
	OP_DIVN uint16 = 0x7
	OP_TRAP uint16 = 0xC
	OP_EXP  uint16 = 0xE
	OP_RX   uint16 = 0xF
)

// Secondary opcodes of the RX family, held in the b field
const (
	RX_LEA     uint16 = 0x0
	RX_LOAD    uint16 = 0x1
	RX_STORE   uint16 = 0x2
	RX_JUMP    uint16 = 0x3
	RX_JUMPC0  uint16 = 0x4
	RX_JUMPC1  uint16 = 0x5
	RX_JAL     uint16 = 0x6
	RX_JUMPZ   uint16 = 0x7
	RX_JUMPNZ  uint16 = 0x8
	RX_TESTSET uint16 = 0x9
)

// Secondary opcodes of the EXP family, held in the 8-bit ab field
const (
	EXP_RESUME  uint16 = 0x00
	EXP_SAVE    uint16 = 0x01
	EXP_RESTORE uint16 = 0x02
	EXP_GETCTL  uint16 = 0x03
	EXP_PUTCTL  uint16 = 0x04
	EXP_SHIFTL  uint16 = 0x05
	EXP_SHIFTR  uint16 = 0x06
	EXP_LOGICW  uint16 = 0x07
	EXP_LOGICB  uint16 = 0x08
	EXP_EXTRACT uint16 = 0x09
	EXP_GETBITS uint16 = 0x0A
	EXP_PUTBITS uint16 = 0x0B
)

// Condition code bits in R15
const (
	CC_GT_INT   uint16 = 0 // g
	CC_GT_NAT   uint16 = 1 // G
	CC_EQ       uint16 = 2 // E
	CC_LT_NAT   uint16 = 3 // L
	CC_LT_INT   uint16 = 4 // l
	CC_OVERFLOW uint16 = 5 // v
	CC_CARRY    uint16 = 6 // c
)

// Logic function truth tables; bit 3 holds f(0,0) and bit 0 holds f(1,1)
const (
	LOGIC_AND uint16 = 0b0001
	LOGIC_XOR uint16 = 0b0110
	LOGIC_OR  uint16 = 0b0111
	LOGIC_INV uint16 = 0b1100
)
