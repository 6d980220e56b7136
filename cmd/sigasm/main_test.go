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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lassandro/gosigma/pkg/assembler"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{"prog.asm.txt", "prog"},
		{"dir/prog.asm.txt", "dir/prog"},
		{"prog.s", "prog"},
		{"prog", "prog"},
	}

	for _, test := range tests {
		if have := baseName(test.Input); have != test.Want {
			t.Fatalf("baseName(%q)\nwant:%s\nhave:%s", test.Input, test.Want, have)
		}
	}
}

func TestUnderline(t *testing.T) {
	tests := []struct {
		Cursor assembler.Cursor
		Source string
		Want   string
	}{
		{assembler.Cursor{Line: 1, Column: 1, Size: 3}, "foo add R1,R2,R3", "^~~"},
		{assembler.Cursor{Line: 1, Column: 5, Size: 3}, "foo add R1,R2,R3", "    ^~~"},
		{assembler.Cursor{Line: 1, Column: 40, Size: 1}, "abc", "   ^"},
		{assembler.Cursor{Line: 1, Column: 2, Size: 0}, "abc", " ^"},
	}

	for _, test := range tests {
		if have := underline(test.Cursor, test.Source); have != test.Want {
			t.Fatalf("underline(%v)\nwant:%q\nhave:%q", test.Cursor, test.Want, have)
		}
	}
}

func TestUseColor(t *testing.T) {
	if color, err := useColor("always", nil); err != nil || !color {
		t.Fatalf("useColor(always)\nwant:true\nhave:%v %v", color, err)
	}

	if color, err := useColor("never", nil); err != nil || color {
		t.Fatalf("useColor(never)\nwant:false\nhave:%v %v", color, err)
	}

	if _, err := useColor("sometimes", nil); err == nil {
		t.Fatalf("useColor(sometimes)\nwant:error\nhave:nil")
	}
}

func TestDiagnostic(t *testing.T) {
	state := assembler.Assemble("test", " foo R1,R2,R3\n")
	errs := state.Errors()

	if len(errs) != 1 {
		t.Fatalf("Errors\nwant:1\nhave:%d", len(errs))
	}

	want := errs[0].Error() + "\n foo R1,R2,R3\n ^~~"

	if have := diagnostic(errs[0], " foo R1,R2,R3", false); have != want {
		t.Fatalf("diagnostic\nwant:%q\nhave:%q", want, have)
	}
}

func TestIsCharDevice(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "prog.asm.txt"))

	if err != nil {
		t.Fatal(err)
	}

	if interactive, err := isCharDevice(file); err != nil || interactive {
		t.Fatalf("isCharDevice(file)\nwant:false\nhave:%v %v", interactive, err)
	}

	file.Close()

	if _, err := isCharDevice(file); err == nil {
		t.Fatalf("isCharDevice(closed)\nwant:error\nhave:nil")
	}
}
