/**
 * Copyright (c) 2024 Peking University and Peking University
 * Changsha Institute for Computing and Digital Economy
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package jobscript

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Placeholder is replaced by the input inside template tokens.
const Placeholder = "$1"

// Convention decides where an input lands in the worker's argument vector.
// It is one of PositionalSlot, TokenTemplate or NamedFlag.
type Convention interface {
	fmt.Stringer
	convention()
}

// PositionalSlot inserts the input at the one-based argument Index.
type PositionalSlot struct {
	Index int
}

// TokenTemplate expands every token with $1 replaced by the input.
type TokenTemplate struct {
	Tokens []string
}

// NamedFlag passes the input as the value following Flag.
type NamedFlag struct {
	Flag string
}

func (PositionalSlot) convention() {}
func (TokenTemplate) convention()  {}
func (NamedFlag) convention()      {}

func (c PositionalSlot) String() string {
	return fmt.Sprintf("positional slot $%d", c.Index)
}

func (c TokenTemplate) String() string {
	return fmt.Sprintf("template %q", c.Tokens)
}

func (c NamedFlag) String() string {
	return fmt.Sprintf("named flag %q", c.Flag)
}

// ParseConvention classifies s. A $N with N >= 1 is a positional slot, a
// string whose shell words contain $1 is a template, anything else is a
// named flag.
func ParseConvention(s string) Convention {
	var conv Convention
	if index, ok := parsePositionalSlot(s); ok {
		conv = PositionalSlot{Index: index}
	} else if tokens := templateTokens(s); containsPlaceholder(tokens) {
		conv = TokenTemplate{Tokens: tokens}
	} else {
		conv = NamedFlag{Flag: s}
	}

	log.Debugf("Input convention %q classified as %s.", s, conv)
	return conv
}

func parsePositionalSlot(s string) (int, bool) {
	digits, ok := strings.CutPrefix(s, "$")
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index == 0 {
		return 0, false
	}
	return index, true
}

// templateTokens falls back to the whole string as one token when it does
// not split cleanly.
func templateTokens(s string) []string {
	tokens, err := SplitWords(s)
	if err != nil {
		return []string{s}
	}
	return tokens
}

func containsPlaceholder(tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(token, Placeholder) {
			return true
		}
	}
	return false
}
