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

type Origin uint
type Movability uint
type ErrorKind uint
type Field string

const (
	ORIGIN_LOCAL Origin = iota
	ORIGIN_EXTERNAL
)

const (
	MOVABILITY_FIXED Movability = iota
	MOVABILITY_RELOCATABLE
)

const (
	ERROR_LEXICAL ErrorKind = iota
	ERROR_SYNTAX
	ERROR_SEMANTIC
	ERROR_INTERNAL
)

// Instruction fields named in import records
const (
	FIELD_D    Field = "d"
	FIELD_E    Field = "e"
	FIELD_F    Field = "f"
	FIELD_G    Field = "g"
	FIELD_H    Field = "h"
	FIELD_GH   Field = "gh"
	FIELD_DISP Field = "disp"
	FIELD_DATA Field = "data"
)

const (
	K4_MAX uint16 = 0xF
	K8_MAX uint16 = 0xFF
)

const (
	OBJECT_ITEMS_PER_LINE   = 8
	METADATA_ITEMS_PER_LINE = 10
)

const DEFAULT_MODULE_NAME = "anonymous"

func (o Origin) String() string {
	switch o {
	case ORIGIN_LOCAL:
		return "Loc"
	case ORIGIN_EXTERNAL:
		return "Ext"
	}

	return "<invalid>"
}

func (m Movability) String() string {
	switch m {
	case MOVABILITY_FIXED:
		return "Fix"
	case MOVABILITY_RELOCATABLE:
		return "Rel"
	}

	return "<invalid>"
}

func (k ErrorKind) String() string {
	switch k {
	case ERROR_LEXICAL:
		return "lexical"
	case ERROR_SYNTAX:
		return "syntax"
	case ERROR_SEMANTIC:
		return "semantic"
	case ERROR_INTERNAL:
		return "internal"
	}

	return "<invalid>"
}
