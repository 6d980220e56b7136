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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	WORD_MIN_INT = -(1 << 15)
	WORD_MAX_INT = (1 << 16) - 1
)

var ErrInvalidHex = errors.New("Invalid hex string")

// Decodes a hexidecimal string in the format $FFFF (exactly four digits)
func DecodeHex4(s string) (uint16, error) {
	if len(s) != 5 || s[0] != '$' {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(s[1:], 16, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: 123, -123
func DecodeInt(s string) (int, error) {
	if strings.HasPrefix(s, "+") {
		return 0, strconv.ErrSyntax
	}

	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return int(result), nil
}

// Converts an integer in [WORD_MIN_INT, WORD_MAX_INT] to its two's complement
// word representation.
func IntToWord(n int) (uint16, bool) {
	if n < WORD_MIN_INT || n > WORD_MAX_INT {
		return 0, false
	}

	return uint16(n & 0xFFFF), true
}

// Packs four 4-bit fields: |op|d|a|b|
func Word(op, d, a, b uint16) uint16 {
	return (op&0xF)<<12 | (d&0xF)<<8 | (a&0xF)<<4 | (b & 0xF)
}

// Packs two 4-bit fields and an 8-bit field: |op|d|k8|
func WordK8(op, d, k uint16) uint16 {
	return (op&0xF)<<12 | (d&0xF)<<8 | (k & 0xFF)
}

func Hex4(w uint16) string {
	return fmt.Sprintf("%04x", w)
}
