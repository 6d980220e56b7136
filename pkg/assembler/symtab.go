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
	"errors"
	"sort"
)

var ErrDuplicateSymbol = errors.New("Symbol has already been defined")

// Identifier is the binding of one name. Module and ExternalName are only
// set for imported names.
type Identifier struct {
	Name         string
	Module       string
	ExternalName string
	Value        Value
	DefLine      int
	UsageLines   []int
}

func (id Identifier) IsImported() bool {
	return id.Module != ""
}

// FullName qualifies imported names with their module
func (id Identifier) FullName() string {
	if id.IsImported() {
		return id.Module + "." + id.Name
	}

	return id.Name
}

func (id Identifier) clone() Identifier {
	result := id
	result.UsageLines = append([]int(nil), id.UsageLines...)
	return result
}

type SymbolTable struct {
	symbols map[string]*Identifier
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Identifier)}
}

// Define binds id.Name. An existing binding is kept and ErrDuplicateSymbol
// returned.
func (t *SymbolTable) Define(id Identifier) error {
	if _, exists := t.symbols[id.Name]; exists {
		return ErrDuplicateSymbol
	}

	binding := id.clone()
	t.symbols[id.Name] = &binding

	return nil
}

// Lookup returns a copy of the binding; it does not record usage.
func (t *SymbolTable) Lookup(name string) (Identifier, bool) {
	binding, exists := t.symbols[name]

	if !exists {
		return Identifier{}, false
	}

	return binding.clone(), true
}

// RecordUsage appends line to the usage list of name, reporting whether
// the name is bound.
func (t *SymbolTable) RecordUsage(name string, line int) bool {
	binding, exists := t.symbols[name]

	if !exists {
		return false
	}

	binding.UsageLines = append(binding.UsageLines, line)

	return true
}

// Identifiers returns every binding ordered by name
func (t *SymbolTable) Identifiers() []Identifier {
	result := make([]Identifier, 0, len(t.symbols))

	for _, binding := range t.symbols {
		result = append(result, binding.clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

func (t *SymbolTable) Len() int {
	return len(t.symbols)
}
