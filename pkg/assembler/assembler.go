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

// Package assembler translates Sigma16 assembly source into object code,
// metadata and a listing. A run never stops at the first problem: every
// diagnostic is attached to its statement and counted, and all outputs are
// produced regardless.
package assembler

import (
	"io"
	"strings"

	"github.com/golang/glog"
)

// State is the result of one assembler run. It is built from scratch on
// every call to Assemble and shares nothing with other runs.
type State struct {
	moduleName      string
	lines           []string
	statements      []*Statement
	symbols         *SymbolTable
	locationCounter Value
	errorCount      int

	wordBuffer  []uint16
	relocations []uint16
	imports     []importRecord
	exports     []exportRecord
	asmap       map[uint16]int
	memory      map[uint16]uint16

	objectLines      []string
	metadataLines    []string
	listingPlain     []string
	listingAnnotated []string
}

func newState(name string, text string) *State {
	if name == "" {
		name = DEFAULT_MODULE_NAME
	}

	return &State{
		moduleName:      name,
		lines:           normalize(text),
		symbols:         NewSymbolTable(),
		locationCounter: NewValue(0, ORIGIN_LOCAL, MOVABILITY_RELOCATABLE),
		asmap:           make(map[uint16]int),
		memory:          make(map[uint16]uint16),
	}
}

// Assemble translates the source of one module. name is used for the object
// header unless the source contains a module statement.
func Assemble(name string, text string) *State {
	s := newState(name, text)

	s.pass1()
	s.pass2()
	s.finishListing()
	s.emitMetadata()

	glog.V(1).Infof("Assembled %s: %d errors", s.moduleName, s.errorCount)

	return s
}

// AssembleSource reads input fully and assembles it. The error only reports
// a failure to read; assembly problems are in the returned state.
func AssembleSource(input io.Reader, name string) (*State, error) {
	text, err := io.ReadAll(input)

	if err != nil {
		return nil, err
	}

	return Assemble(name, string(text)), nil
}

func (s *State) addError(stmt *Statement, err StatementError) {
	glog.V(2).Infof("line %d: %s error: %v", stmt.Line, err.Kind(), err)

	stmt.Errors = append(stmt.Errors, err)
	s.errorCount++
}

func (s *State) ModuleName() string {
	return s.moduleName
}

func (s *State) ErrorCount() int {
	return s.errorCount
}

// Errors returns every diagnostic in source order
func (s *State) Errors() []StatementError {
	result := make([]StatementError, 0, s.errorCount)

	for _, stmt := range s.statements {
		result = append(result, stmt.Errors...)
	}

	return result
}

func (s *State) Statements() []*Statement {
	return s.statements
}

func (s *State) Symbols() []Identifier {
	return s.symbols.Identifiers()
}

func (s *State) Lookup(name string) (Identifier, bool) {
	return s.symbols.Lookup(name)
}

// Memory maps each generated address to its code word
func (s *State) Memory() map[uint16]uint16 {
	result := make(map[uint16]uint16, len(s.memory))

	for addr, word := range s.memory {
		result[addr] = word
	}

	return result
}

func (s *State) Relocations() []uint16 {
	return append([]uint16{}, s.relocations...)
}

func (s *State) ObjectText() string {
	return strings.Join(s.objectLines, "\n") + "\n"
}

func (s *State) MetadataText() string {
	return strings.Join(s.metadataLines, "\n") + "\n"
}

func (s *State) ListingText() string {
	return strings.Join(s.listingPlain, "\n") + "\n"
}

func (s *State) AnnotatedListing() string {
	return strings.Join(s.listingAnnotated, "\n") + "\n"
}

func (s *State) SymbolListing() string {
	return strings.Join(s.symbolLines(), "\n") + "\n"
}

// Module is a named source text that may be assembled any number of times;
// each run starts from an empty state.
type Module struct {
	Name   string
	Source string

	last *State
}

func (m *Module) Assemble() *State {
	m.last = Assemble(m.Name, m.Source)
	return m.last
}

// Last returns the state of the most recent run, or nil
func (m *Module) Last() *State {
	return m.last
}
