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

// Package jobscript turns input patterns into balanced groups and renders one
// bash job script per group.
package jobscript

import "strings"

func isSafeByte(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("@%_+=:,./-", b) >= 0
}

// Quote returns s as a single POSIX shell word. Strings made only of
// unambiguous bytes are returned unchanged, anything else is wrapped in
// single quotes with embedded single quotes written as '\''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}

	safe := true
	for i := 0; i < len(s); i++ {
		if !isSafeByte(s[i]) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteAll quotes every element of args.
func QuoteAll(args []string) []string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, Quote(arg))
	}
	return quoted
}
