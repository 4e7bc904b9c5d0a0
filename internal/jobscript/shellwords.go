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
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type shellLine struct {
	Words []string `parser:"@Word*"`
}

// A Word is a run of unquoted bytes, backslash escapes, single-quoted and
// double-quoted segments. A line continuation between blanks is whitespace.
// An unterminated quote or a trailing backslash matches no rule, which makes
// the lexer fail.
var shellLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `(?:[ \t\n]|\\\n)+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Word", Pattern: `(?:[^ \t\n'"\\]|\\(?s:.)|'[^']*'|"(?:[^"\\]|\\(?s:.))*")+`},
})

var shellParser = participle.MustBuild[shellLine](
	participle.Lexer(shellLexer),
	participle.Elide("Whitespace", "Comment"),
)

// SplitWords tokenizes s the way a POSIX shell splits a simple command line
// into words, without performing any expansion.
func SplitWords(s string) ([]string, error) {
	line, err := shellParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", s, err)
	}

	words := make([]string, 0, len(line.Words))
	for _, raw := range line.Words {
		words = append(words, unquoteWord(raw))
	}
	return words, nil
}

// unquoteWord removes the quoting of a lexed Word token.
func unquoteWord(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			i++
			if raw[i] != '\n' {
				b.WriteByte(raw[i])
			}
		case '\'':
			end := strings.IndexByte(raw[i+1:], '\'')
			b.WriteString(raw[i+1 : i+1+end])
			i += end + 1
		case '"':
			i++
			for ; raw[i] != '"'; i++ {
				if raw[i] == '\\' {
					switch next := raw[i+1]; next {
					case '$', '`', '"', '\\':
						b.WriteByte(next)
						i++
						continue
					case '\n':
						i++
						continue
					}
				}
				b.WriteByte(raw[i])
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
