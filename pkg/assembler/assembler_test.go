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

package assembler_test

import (
	"reflect"
	"testing"

	"github.com/lassandro/gosigma/pkg/assembler"
)

type testCase struct {
	Name        string
	Input       string
	Output      map[uint16]uint16
	Relocations []uint16
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	state := assembler.Assemble("test", test.Input)

	if state.ErrorCount() > 0 {
		t.Fatal(state.Errors()[0])
	}

	result := state.Memory()

	for addr, want := range test.Output {
		have, exists := result[addr]

		if !exists {
			t.Fatalf(
				"Missing instruction\n"+
					"want:%#04x (test.Output[%#04x])\n"+
					"have:nil",
				want,
				addr,
			)
		} else if have != want {
			t.Fatalf(
				"Instruction encoding mismatch\n"+
					"want:%#04x (test.Output[%#04x])\n"+
					"have:%#04x",
				want,
				addr,
				have,
			)
		}
	}

	for addr, have := range result {
		if _, exists := test.Output[addr]; !exists {
			t.Fatalf(
				"Unexpected instruction\n"+
					"want:nil\n"+
					"have:%#04x (result[%#04x])",
				have,
				addr,
			)
		}
	}

	if test.Relocations != nil {
		if have := state.Relocations(); !reflect.DeepEqual(have, test.Relocations) {
			t.Fatalf(
				"Relocation mismatch\nwant:%v\nhave:%v",
				test.Relocations,
				have,
			)
		}
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	state := assembler.Assemble("test", test.Input)
	errs := state.Errors()

	if test.Error == nil {
		panic("Fail case missing error value")
	}

	if len(errs) == 0 {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if len(errs) > 1 {
		errTypes := make([]reflect.Type, 0, len(errs))
		for _, err := range errs {
			errTypes = append(errTypes, reflect.TypeOf(err))
		}

		t.Fatalf(
			"%s produced multiple errors:\n\twant:%T (test.Error)\n\thave:%v",
			t.Name(),
			test.Error,
			errTypes,
		)
	}

	if reflect.TypeOf(errs[0]) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			errs[0],
		)
	}

	if state.ErrorCount() != 1 {
		t.Fatalf("Error count mismatch\nwant:1\nhave:%d", state.ErrorCount())
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// RRR  |op  |d   |a   |b   |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestRRR(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "add",
			Input:  " add R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0x0123},
		},
		{
			Name:   "sub",
			Input:  " sub R4,R5,R6",
			Output: map[uint16]uint16{0x0000: 0x1456},
		},
		{
			Name:   "mul decimal registers",
			Input:  " mul R15,R14,R13",
			Output: map[uint16]uint16{0x0000: 0x2FED},
		},
		{
			Name:   "div hex registers",
			Input:  " div Ra,Rb,Rc",
			Output: map[uint16]uint16{0x0000: 0x3ABC},
		},
		{
			Name:   "cmp",
			Input:  " cmp R1,R2",
			Output: map[uint16]uint16{0x0000: 0x4012},
		},
		{
			Name:   "addc",
			Input:  " addc R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0x5123},
		},
		{
			Name:   "muln",
			Input:  " muln R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0x6123},
		},
		{
			Name:   "divn",
			Input:  " divn R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0x7123},
		},
		{
			Name:   "trap",
			Input:  " trap R0,R0,R0",
			Output: map[uint16]uint16{0x0000: 0xC000},
		},
		{
			Name:   "comment",
			Input:  " add R1,R2,R3 ; R1 := R2+R3",
			Output: map[uint16]uint16{0x0000: 0x0123},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "register out of range",
			Input: " add R1,R2,R16",
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "not a register",
			Input: " add R1,R2,x",
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "missing operand",
			Input: " add R1,R2",
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "cmp extra operand",
			Input: " cmp R1,R2,R3",
			Error: &assembler.InvalidNumArgumentsError{},
		},
	})
}

// RX   |f   |d   |a   |b   | |disp                           |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ] [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestRX(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "lea",
			Input:  " lea R1,6[R0]",
			Output: map[uint16]uint16{0x0000: 0xF100, 0x0001: 0x0006},
		},
		{
			Name:   "load hex displacement",
			Input:  " load R2,$00ff[R3]",
			Output: map[uint16]uint16{0x0000: 0xF231, 0x0001: 0x00FF},
		},
		{
			Name:   "store negative displacement",
			Input:  " store R3,-1[R0]",
			Output: map[uint16]uint16{0x0000: 0xF302, 0x0001: 0xFFFF},
		},
		{
			Name:   "jump",
			Input:  " jump 10[R5]",
			Output: map[uint16]uint16{0x0000: 0xF053, 0x0001: 0x000A},
		},
		{
			Name:   "jumpc0",
			Input:  " jumpc0 3,10[R5]",
			Output: map[uint16]uint16{0x0000: 0xF354, 0x0001: 0x000A},
		},
		{
			Name:   "jumpc1",
			Input:  " jumpc1 15,0[R0]",
			Output: map[uint16]uint16{0x0000: 0xFF05, 0x0001: 0x0000},
		},
		{
			Name:   "jal",
			Input:  " jal R13,20[R0]",
			Output: map[uint16]uint16{0x0000: 0xFD06, 0x0001: 0x0014},
		},
		{
			Name:   "jumpz",
			Input:  " jumpz R1,5[R0]",
			Output: map[uint16]uint16{0x0000: 0xF107, 0x0001: 0x0005},
		},
		{
			Name:   "jumpnz",
			Input:  " jumpnz R1,5[R0]",
			Output: map[uint16]uint16{0x0000: 0xF108, 0x0001: 0x0005},
		},
		{
			Name:   "testset",
			Input:  " testset R1,5[R0]",
			Output: map[uint16]uint16{0x0000: 0xF109, 0x0001: 0x0005},
		},
		{
			Name:        "forward reference",
			Input:       " jump done[R0]\ndone data 3",
			Output:      map[uint16]uint16{0x0000: 0xF003, 0x0001: 0x0002, 0x0002: 0x0003},
			Relocations: []uint16{0x0001},
		},
		{
			Name:        "label plus offset",
			Input:       " load R1,arr+1[R2]\narr data 1\n data 2",
			Output:      map[uint16]uint16{0x0000: 0xF121, 0x0001: 0x0003, 0x0002: 0x0001, 0x0003: 0x0002},
			Relocations: []uint16{0x0001},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "missing index",
			Input: " load R1,6",
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "undefined displacement",
			Input: " load R1,nowhere[R0]",
			Error: &assembler.UndefinedSymbolError{},
		},
		{
			Name:  "condition out of range",
			Input: " jumpc0 16,0[R0]",
			Error: &assembler.OversizedFieldError{},
		},
	})
}

func TestConditionalJump(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "jumplt",
			Input:  " jumplt 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF405, 0x0001: 0x0004},
		},
		{
			Name:   "jumple",
			Input:  " jumple 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF004, 0x0001: 0x0004},
		},
		{
			Name:   "jumpne",
			Input:  " jumpne 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF204, 0x0001: 0x0004},
		},
		{
			Name:   "jumpeq",
			Input:  " jumpeq 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF205, 0x0001: 0x0004},
		},
		{
			Name:   "jumpge",
			Input:  " jumpge 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF404, 0x0001: 0x0004},
		},
		{
			Name:   "jumpgt",
			Input:  " jumpgt 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF005, 0x0001: 0x0004},
		},
		{
			Name:   "jumpv",
			Input:  " jumpv 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF505, 0x0001: 0x0004},
		},
		{
			Name:   "jumpco",
			Input:  " jumpco 4[R0]",
			Output: map[uint16]uint16{0x0000: 0xF605, 0x0001: 0x0004},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "register operand",
			Input: " jumplt R1,4[R0]",
			Error: &assembler.InvalidNumArgumentsError{},
		},
	})
}

// EXP  |e   |d   |ab       | |e   |f   |g   |h   |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ] [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestEXP(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "resume",
			Input:  " resume",
			Output: map[uint16]uint16{0x0000: 0xE000},
		},
		{
			Name:   "save",
			Input:  " save R1,R2,5[R3]",
			Output: map[uint16]uint16{0x0000: 0xE101, 0x0001: 0x2305},
		},
		{
			Name:   "restore",
			Input:  " restore R4,R9,10[R14]",
			Output: map[uint16]uint16{0x0000: 0xE402, 0x0001: 0x9E0A},
		},
		{
			Name:   "getctl",
			Input:  " getctl R3,mask",
			Output: map[uint16]uint16{0x0000: 0xE003, 0x0001: 0x3100},
		},
		{
			Name:   "putctl",
			Input:  " putctl R5,dsegEnd",
			Output: map[uint16]uint16{0x0000: 0xE004, 0x0001: 0x5B00},
		},
		{
			Name:   "shiftl",
			Input:  " shiftl R1,R2,3",
			Output: map[uint16]uint16{0x0000: 0xE105, 0x0001: 0x2300},
		},
		{
			Name:   "shiftr",
			Input:  " shiftr R1,R2,15",
			Output: map[uint16]uint16{0x0000: 0xE106, 0x0001: 0x2F00},
		},
		{
			Name:   "logicw",
			Input:  " logicw R1,R2,R3,6",
			Output: map[uint16]uint16{0x0000: 0xE107, 0x0001: 0x2306},
		},
		{
			Name:   "andw",
			Input:  " andw R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0xE107, 0x0001: 0x2301},
		},
		{
			Name:   "orw",
			Input:  " orw R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0xE107, 0x0001: 0x2307},
		},
		{
			Name:   "xorw",
			Input:  " xorw R1,R2,R3",
			Output: map[uint16]uint16{0x0000: 0xE107, 0x0001: 0x2306},
		},
		{
			Name:   "invw",
			Input:  " invw R1,R2",
			Output: map[uint16]uint16{0x0000: 0xE107, 0x0001: 0x200C},
		},
		{
			Name:   "logicb",
			Input:  " logicb R1,1,2,3,7",
			Output: map[uint16]uint16{0x0000: 0xE108, 0x0001: 0x1237},
		},
		{
			Name:   "andb",
			Input:  " andb R1,1,2,3",
			Output: map[uint16]uint16{0x0000: 0xE108, 0x0001: 0x1231},
		},
		{
			Name:   "orb",
			Input:  " orb R1,1,2,3",
			Output: map[uint16]uint16{0x0000: 0xE108, 0x0001: 0x1237},
		},
		{
			Name:   "xorb",
			Input:  " xorb R1,1,2,3",
			Output: map[uint16]uint16{0x0000: 0xE108, 0x0001: 0x1236},
		},
		{
			Name:   "extract",
			Input:  " extract R1,1,2,R3,4",
			Output: map[uint16]uint16{0x0000: 0xE109, 0x0001: 0x1234},
		},
		{
			Name:   "getbits",
			Input:  " getbits R1,R2,3,4",
			Output: map[uint16]uint16{0x0000: 0xE10A, 0x0001: 0x2034},
		},
		{
			Name:   "putbits",
			Input:  " putbits R1,R2,R3,4,5",
			Output: map[uint16]uint16{0x0000: 0xE10B, 0x0001: 0x2345},
		},
		{
			Name:   "equ field",
			Input:  "amount equ 4\n shiftl R1,R2,amount",
			Output: map[uint16]uint16{0x0000: 0xE105, 0x0001: 0x2400},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "resume operand",
			Input: " resume R1",
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "unknown control register",
			Input: " getctl R1,bogus",
			Error: &assembler.UnknownControlRegisterError{},
		},
		{
			Name:  "oversized k4",
			Input: " shiftl R1,R2,16",
			Error: &assembler.OversizedFieldError{},
		},
		{
			Name:  "oversized k8",
			Input: " save R1,R2,256[R3]",
			Error: &assembler.OversizedFieldError{},
		},
		{
			Name:  "relocatable k4",
			Input: "a data 0\n shiftl R1,R2,a",
			Error: &assembler.FixedFieldError{},
		},
		{
			Name:  "extract register position",
			Input: " extract R1,1,2,3,4",
			Error: &assembler.InvalidOperandError{},
		},
	})
}

func TestData(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "decimal",
			Input:  " data 7",
			Output: map[uint16]uint16{0x0000: 0x0007},
		},
		{
			Name:   "negative",
			Input:  " data -1",
			Output: map[uint16]uint16{0x0000: 0xFFFF},
		},
		{
			Name:   "most negative",
			Input:  " data -32768",
			Output: map[uint16]uint16{0x0000: 0x8000},
		},
		{
			Name:   "largest",
			Input:  " data 65535",
			Output: map[uint16]uint16{0x0000: 0xFFFF},
		},
		{
			Name:   "hex upper case",
			Input:  " data $ABCD",
			Output: map[uint16]uint16{0x0000: 0xABCD},
		},
		{
			Name:        "self reference",
			Input:       "a data a",
			Output:      map[uint16]uint16{0x0000: 0x0000},
			Relocations: []uint16{0x0000},
		},
		{
			Name:        "fixed sum",
			Input:       " data 3+$0004",
			Output:      map[uint16]uint16{0x0000: 0x0007},
			Relocations: []uint16{},
		},
		{
			Name:   "sum wraps",
			Input:  " data 65535+2",
			Output: map[uint16]uint16{0x0000: 0x0001},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "too large",
			Input: " data 65536",
			Error: &assembler.InvalidLiteralError{},
		},
		{
			Name:  "too small",
			Input: " data -32769",
			Error: &assembler.InvalidLiteralError{},
		},
		{
			Name:  "short hex",
			Input: " data $fff",
			Error: &assembler.InvalidExpressionError{},
		},
		{
			Name:  "multiplication",
			Input: " data 3*4",
			Error: &assembler.InvalidExpressionError{},
		},
		{
			Name:  "undefined",
			Input: " data nowhere",
			Error: &assembler.UndefinedSymbolError{},
		},
		{
			Name:  "two relocatable",
			Input: "a data 1\nb data a+b",
			Error: &assembler.ArithmeticError{},
		},
		{
			Name:  "missing value",
			Input: " data",
			Error: &assembler.InvalidNumArgumentsError{},
		},
	})
}

func TestDirectives(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "org",
			Input:  " org $0100\n data 1",
			Output: map[uint16]uint16{0x0100: 0x0001},
		},
		{
			Name:   "block",
			Input:  " data 1\n block 3\n data 2",
			Output: map[uint16]uint16{0x0000: 0x0001, 0x0004: 0x0002},
		},
		{
			Name:   "equ",
			Input:  "k equ $0010\n data k",
			Output: map[uint16]uint16{0x0000: 0x0010},
		},
		{
			Name:   "module",
			Input:  "main module\n data 1",
			Output: map[uint16]uint16{0x0000: 0x0001},
		},
		{
			Name:   "label only",
			Input:  "here\n data here",
			Output: map[uint16]uint16{0x0000: 0x0000},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "block relocatable",
			Input: "a data 0\n block a",
			Error: &assembler.BlockOperandError{},
		},
		{
			Name:  "equ without label",
			Input: " equ 3",
			Error: &assembler.MissingLabelError{},
		},
		{
			Name:  "export undefined",
			Input: " export nowhere",
			Error: &assembler.UndefinedExportError{},
		},
		{
			Name:  "import arity",
			Input: "x import mod",
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "external arithmetic",
			Input: "x import mod,y\n data x+1",
			Error: &assembler.ArithmeticError{},
		},
		{
			Name:  "block external",
			Input: "x import mod,y\n block x",
			Error: &assembler.ArithmeticError{},
		},
	})
}

func TestStatement(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "blank lines",
			Input:  "\n\n data 1\n\n",
			Output: map[uint16]uint16{0x0000: 0x0001},
		},
		{
			Name:   "comment lines",
			Input:  "; heading\n data 1 ; one\n;",
			Output: map[uint16]uint16{0x0000: 0x0001},
		},
		{
			Name:   "carriage returns",
			Input:  "x data 1\r\n data x\r\n",
			Output: map[uint16]uint16{0x0000: 0x0001, 0x0001: 0x0000},
		},
		{
			Name:   "tabs",
			Input:  "x\tdata\t1",
			Output: map[uint16]uint16{0x0000: 0x0001},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "unknown operation",
			Input: " frob R1",
			Error: &assembler.UnknownOperationError{},
		},
		{
			Name:  "invalid label",
			Input: "1abc add R1,R2,R3",
			Error: &assembler.InvalidLabelError{},
		},
		{
			Name:  "duplicate label",
			Input: "x data 1\nx data 2",
			Error: &assembler.RedeclaredSymbolError{},
		},
	})
}
