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

package arch_test

import (
	"sort"
	"testing"

	"github.com/lassandro/gosigma/pkg/arch"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		Mnemonic string
		IFormat  arch.InstructionFormat
		AFormat  arch.AddressingFormat
		Opcode   []uint16
		Pseudo   bool
	}{
		{"add", arch.IFMT_RRR, arch.AFMT_RRR, []uint16{arch.OP_ADD}, false},
		{"cmp", arch.IFMT_RRR, arch.AFMT_RR, []uint16{arch.OP_CMP}, false},
		{"load", arch.IFMT_RX, arch.AFMT_RX, []uint16{arch.OP_RX, arch.RX_LOAD}, false},
		{"jumpc1", arch.IFMT_RX, arch.AFMT_KX, []uint16{arch.OP_RX, arch.RX_JUMPC1}, false},
		{"jumpeq", arch.IFMT_RX, arch.AFMT_X, []uint16{arch.OP_RX, arch.RX_JUMPC1, arch.CC_EQ}, true},
		{"resume", arch.IFMT_EXP1, arch.AFMT_NONE, []uint16{arch.OP_EXP, arch.EXP_RESUME}, false},
		{"invw", arch.IFMT_EXP2, arch.AFMT_RR, []uint16{arch.OP_EXP, arch.EXP_LOGICW, arch.LOGIC_INV}, true},
		{"data", arch.IFMT_DATA, arch.AFMT_DATA, nil, false},
		{"equ", arch.IFMT_DIR, arch.AFMT_EQU, nil, false},
	}

	for _, test := range tests {
		op, ok := arch.Lookup(test.Mnemonic)

		if !ok {
			t.Fatalf("Lookup(%q)\nwant:operation\nhave:nil", test.Mnemonic)
		}

		if op.IFormat != test.IFormat || op.AFormat != test.AFormat || op.Pseudo != test.Pseudo {
			t.Fatalf(
				"Lookup(%q)\nwant:%s/%s pseudo=%t\nhave:%s/%s pseudo=%t",
				test.Mnemonic, test.IFormat, test.AFormat, test.Pseudo,
				op.IFormat, op.AFormat, op.Pseudo,
			)
		}

		if len(op.Opcode) != len(test.Opcode) {
			t.Fatalf("Lookup(%q) opcode\nwant:%v\nhave:%v", test.Mnemonic, test.Opcode, op.Opcode)
		}

		for i := range op.Opcode {
			if op.Opcode[i] != test.Opcode[i] {
				t.Fatalf("Lookup(%q) opcode\nwant:%v\nhave:%v", test.Mnemonic, test.Opcode, op.Opcode)
			}
		}
	}

	for _, mnemonic := range []string{"ADD", "frob", ""} {
		if _, ok := arch.Lookup(mnemonic); ok {
			t.Fatalf("Lookup(%q)\nwant:nil\nhave:operation", mnemonic)
		}
	}
}

func TestOperations(t *testing.T) {
	ops := arch.Operations()

	if !sort.SliceIsSorted(ops, func(i, j int) bool {
		return ops[i].Mnemonic < ops[j].Mnemonic
	}) {
		t.Fatalf("Operations not ordered by mnemonic")
	}

	for _, op := range ops {
		if op.Pseudo && len(op.Opcode) != 3 {
			t.Fatalf("Pseudo operation %q\nwant:3 opcode fields\nhave:%v", op.Mnemonic, op.Opcode)
		}
	}
}

func TestControlRegister(t *testing.T) {
	for name, want := range map[string]uint16{"status": 0, "mask": 1, "vect": 7, "dsegEnd": 11} {
		if have, ok := arch.ControlRegister(name); !ok || have != want {
			t.Fatalf("ControlRegister(%q)\nwant:%d\nhave:%d", name, want, have)
		}
	}

	if _, ok := arch.ControlRegister("Mask"); ok {
		t.Fatalf("ControlRegister is case-insensitive")
	}
}

func TestCodeSize(t *testing.T) {
	tests := []struct {
		IFormat arch.InstructionFormat
		AFormat arch.AddressingFormat
		Want    uint16
	}{
		{arch.IFMT_EMPTY, arch.AFMT_EMPTY, 0},
		{arch.IFMT_RRR, arch.AFMT_RRR, 1},
		{arch.IFMT_RX, arch.AFMT_RX, 2},
		{arch.IFMT_EXP1, arch.AFMT_NONE, 1},
		{arch.IFMT_EXP2, arch.AFMT_RRK, 2},
		{arch.IFMT_DATA, arch.AFMT_DATA, 1},
		{arch.IFMT_DIR, arch.AFMT_BLOCK, 0},
	}

	for _, test := range tests {
		if have := arch.CodeSize(test.IFormat, test.AFormat); have != test.Want {
			t.Fatalf("CodeSize(%s, %s)\nwant:%d\nhave:%d", test.IFormat, test.AFormat, test.Want, have)
		}
	}
}
