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

import "strings"

// FormatInvocation returns the shell words passed to the worker script for
// one input. quotedTrailing must already be quoted with Quote; the input and
// convention values are quoted here.
func FormatInvocation(input string, conv Convention, quotedTrailing []string) []string {
	switch c := conv.(type) {
	case PositionalSlot:
		args := make([]string, 0, len(quotedTrailing)+1)
		args = append(args, quotedTrailing...)
		idx := min(c.Index-1, len(args))
		return insertAt(args, idx, Quote(input))

	case TokenTemplate:
		args := make([]string, 0, len(c.Tokens)+len(quotedTrailing))
		for _, token := range c.Tokens {
			args = append(args, Quote(strings.ReplaceAll(token, Placeholder, input)))
		}
		return append(args, quotedTrailing...)

	case NamedFlag:
		args := make([]string, 0, len(quotedTrailing)+2)
		args = append(args, Quote(c.Flag), Quote(input))
		return append(args, quotedTrailing...)
	}

	panic("jobscript: unknown convention type")
}

func insertAt(args []string, idx int, value string) []string {
	args = append(args, "")
	copy(args[idx+1:], args[idx:])
	args[idx] = value
	return args
}
