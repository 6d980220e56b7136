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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/lassandro/gosigma/pkg/assembler"
)

func useColor(mode string, out *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return term.IsTerminal(int(out.Fd())), nil
	}

	return false, fmt.Errorf("invalid --color value '%s'", mode)
}

// isCharDevice reports whether f is attached to a terminal rather than a
// pipe or file
func isCharDevice(f *os.File) (bool, error) {
	stat, err := f.Stat()

	if err != nil {
		return false, err
	}

	return stat.Mode()&os.ModeCharDevice != 0, nil
}

func prefix(name string, color bool) string {
	if color {
		return fmt.Sprintf("\033[1m%s\033[0m", name)
	}

	return name
}

// baseName strips .asm.txt, or the plain extension for other files, keeping
// the directory
func baseName(path string) string {
	if strings.HasSuffix(path, sourceSuffix) {
		return strings.TrimSuffix(path, sourceSuffix)
	}

	return strings.TrimSuffix(path, filepath.Ext(path))
}

// underline marks the cursor's span within a line of source
func underline(cursor assembler.Cursor, source string) string {
	column := cursor.Column
	width := utf8.RuneCountInString(source)

	if column < 1 {
		column = 1
	}

	if column > width+1 {
		column = width + 1
	}

	size := cursor.Size

	if size < 1 {
		size = 1
	}

	return strings.Repeat(" ", column-1) + "^" + strings.Repeat("~", size-1)
}

func diagnostic(err assembler.StatementError, source string, color bool) string {
	mark := underline(err.GetPosition(), source)

	if color {
		mark = "\033[31m" + mark + "\033[0m"
	}

	return fmt.Sprintf("%s\n%s\n%s", err, source, mark)
}
