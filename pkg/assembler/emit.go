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
	"fmt"
	"sort"
	"strings"

	"github.com/lassandro/gosigma/pkg/encoding"
)

const listingHeader = "Line Addr Code Code Source"
const symbolHeader = "Name        Val Org Mov  Def Used"

func hexList(words []uint16) string {
	items := make([]string, len(words))

	for i, word := range words {
		items[i] = encoding.Hex4(word)
	}

	return strings.Join(items, ",")
}

// flushWords writes the buffered code words as data records
func (s *State) flushWords() {
	for len(s.wordBuffer) > 0 {
		n := min(len(s.wordBuffer), OBJECT_ITEMS_PER_LINE)
		s.objectLines = append(s.objectLines, "data     "+hexList(s.wordBuffer[:n]))
		s.wordBuffer = s.wordBuffer[n:]
	}
}

func (s *State) emitRelocations() {
	for start := 0; start < len(s.relocations); start += OBJECT_ITEMS_PER_LINE {
		end := min(start+OBJECT_ITEMS_PER_LINE, len(s.relocations))
		s.objectLines = append(s.objectLines, "relocate "+hexList(s.relocations[start:end]))
	}
}

func (s *State) emitExports() {
	for _, export := range s.exports {
		movability := "fixed"

		if export.Value.IsRelocatable() {
			movability = "relocatable"
		}

		s.objectLines = append(s.objectLines, fmt.Sprintf(
			"export   %s,%s,%s",
			export.Name, encoding.Hex4(export.Value.Word()), movability,
		))
	}
}

func (s *State) emitImports() {
	for _, record := range s.imports {
		s.objectLines = append(s.objectLines, fmt.Sprintf(
			"import   %s,%s,%s,%s",
			record.Module, record.ExternalName,
			encoding.Hex4(record.Address), record.Field,
		))
	}
}

func errorLine(err StatementError) string {
	return "Error: " + strings.ReplaceAll(err.Error(), "\n\t", " ")
}

func highlight(text, class string) string {
	return fmt.Sprintf("<span class='%s'>%s</span>", class, text)
}

func escapeMarkup(text string) string {
	return strings.ReplaceAll(text, "<", "&lt;")
}

// listStatement appends the plain and annotated listing lines of stmt
func (s *State) listStatement(stmt *Statement) {
	code := [2]string{"    ", "    "}

	for i := 0; i < len(stmt.Code) && i < len(code); i++ {
		code[i] = encoding.Hex4(stmt.Code[i])
	}

	mark := " "

	if !stmt.Address.IsRelocatable() {
		mark = "."
	}

	prefix := fmt.Sprintf(
		"%4d %s%s %s %s ",
		stmt.Line, encoding.Hex4(stmt.Address.Word()), mark, code[0], code[1],
	)

	s.listingPlain = append(s.listingPlain, prefix+
		stmt.Label+stmt.SpacesAfterLabel+
		stmt.Mnemonic+stmt.SpacesAfterOperation+
		stmt.OperandText+stmt.Comment,
	)

	s.listingAnnotated = append(s.listingAnnotated, prefix+
		highlight(stmt.Label, "FIELDLABEL")+stmt.SpacesAfterLabel+
		highlight(stmt.Mnemonic, "FIELDOPERATION")+stmt.SpacesAfterOperation+
		highlight(stmt.OperandText, "FIELDOPERAND")+
		highlight(escapeMarkup(stmt.Comment), "FIELDCOMMENT"),
	)

	for _, err := range stmt.Errors {
		line := errorLine(err)
		s.listingPlain = append(s.listingPlain, line)
		s.listingAnnotated = append(s.listingAnnotated, highlight(escapeMarkup(line), "ERR"))
	}
}

func (s *State) symbolLines() []string {
	lines := []string{symbolHeader}

	for _, id := range s.symbols.Identifiers() {
		usage := make([]string, len(id.UsageLines))

		for i, line := range id.UsageLines {
			usage[i] = fmt.Sprint(line)
		}

		lines = append(lines, fmt.Sprintf(
			"%-11s%s%5d  %s",
			id.FullName(), id.Value, id.DefLine, strings.Join(usage, ","),
		))
	}

	return lines
}

// finishListing frames the statement lines with the error summary and the
// symbol table.
func (s *State) finishListing() {
	var plain, annotated []string

	if s.errorCount > 0 {
		summary := fmt.Sprintf(" %d errors detected", s.errorCount)
		plain = append(plain, summary)
		annotated = append(annotated, highlight(summary, "ERR"))
	}

	plain = append(plain, listingHeader)
	annotated = append(annotated, highlight(listingHeader, "ListingHeader"))

	plain = append(plain, s.listingPlain...)
	annotated = append(annotated, s.listingAnnotated...)

	plain = append(plain, "", "Symbol table")
	annotated = append(annotated, "", highlight("Symbol table", "ListingHeader"))

	for i, line := range s.symbolLines() {
		plain = append(plain, line)

		if i == 0 {
			annotated = append(annotated, highlight(line, "ListingHeader"))
		} else {
			annotated = append(annotated, line)
		}
	}

	s.listingPlain = plain
	s.listingAnnotated = annotated
}

func (s *State) emitMetadata() {
	addresses := make([]int, 0, len(s.asmap))

	for addr := range s.asmap {
		addresses = append(addresses, int(addr))
	}

	sort.Ints(addresses)

	s.metadataLines = append(s.metadataLines, fmt.Sprintf("asmap %d", len(addresses)))

	for start := 0; start < len(addresses); start += METADATA_ITEMS_PER_LINE {
		end := min(start+METADATA_ITEMS_PER_LINE, len(addresses))
		items := make([]string, 0, end-start)

		for _, addr := range addresses[start:end] {
			items = append(items, fmt.Sprintf(
				"%s:%d", encoding.Hex4(uint16(addr)), s.asmap[uint16(addr)],
			))
		}

		s.metadataLines = append(s.metadataLines, strings.Join(items, ","))
	}

	s.metadataLines = append(s.metadataLines, fmt.Sprintf("source %d", len(s.listingPlain)))

	for i := range s.listingPlain {
		s.metadataLines = append(s.metadataLines, s.listingPlain[i], s.listingAnnotated[i])
	}
}
