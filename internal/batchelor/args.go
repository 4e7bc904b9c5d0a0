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

package batchelor

import (
	"strings"

	"github.com/spf13/pflag"
)

const (
	globFlag       = "--glob"
	globShorthand  = "-g"
	scriptArgsFlag = "--script-args"
)

func looksLikeFlag(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}

// isRegisteredLongFlag reports whether arg is --name or --name=value for a
// flag defined in flags.
func isRegisteredLongFlag(flags *pflag.FlagSet, arg string) bool {
	name, ok := strings.CutPrefix(arg, "--")
	if !ok || name == "" {
		return false
	}
	name, _, _ = strings.Cut(name, "=")
	return flags.Lookup(name) != nil
}

// globValue returns the inline value of --glob=v or -g=v.
func globValue(arg string) (string, bool) {
	if v, ok := strings.CutPrefix(arg, globFlag+"="); ok {
		return v, true
	}
	return strings.CutPrefix(arg, globShorthand+"=")
}

// NormalizeArgs rewrites the command line so the flag parser sees one value
// per flag occurrence.
//
//	--glob a b c          becomes --glob=a --glob=b --glob=c
//	--script-args x -y z  becomes --script-args=x --script-args=-y --script-args=z
//
// --glob (or -g) takes values up to the next token starting with "-".
// --script-args takes values up to the next token naming a flag registered in
// flags, so worker options such as -v pass through. A worker option that
// collides with a batchelor flag is written --script-args=--keep. Tokens after
// a top-level "--" are left untouched.
func NormalizeArgs(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return append(out, args[i:]...)

		case arg == scriptArgsFlag, strings.HasPrefix(arg, scriptArgsFlag+"="):
			if arg != scriptArgsFlag {
				out = append(out, arg)
			}
			j := i + 1
			for ; j < len(args) && !isRegisteredLongFlag(flags, args[j]); j++ {
				out = append(out, scriptArgsFlag+"="+args[j])
			}
			i = j - 1

		case arg == globFlag, arg == globShorthand:
			j := i + 1
			for ; j < len(args) && !looksLikeFlag(args[j]); j++ {
				out = append(out, globFlag+"="+args[j])
			}
			if j == i+1 {
				// No values, leave it for the parser to report.
				out = append(out, arg)
			}
			i = j - 1

		default:
			v, ok := globValue(arg)
			if !ok {
				out = append(out, arg)
				continue
			}
			out = append(out, globFlag+"="+v)
			j := i + 1
			for ; j < len(args) && !looksLikeFlag(args[j]); j++ {
				out = append(out, globFlag+"="+args[j])
			}
			i = j - 1
		}
	}

	return out
}
