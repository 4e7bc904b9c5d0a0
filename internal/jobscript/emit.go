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
	"os"
	"strings"

	"batchelor/internal/util"

	log "github.com/sirupsen/logrus"
)

const (
	ScriptHeader = "#!/usr/bin/env bash\nset -euo pipefail\n\n"
	ScriptMode   = 0o755
)

// RenderScript builds the job script text: the bash prelude followed by one
// worker invocation per input.
func RenderScript(worker string, conv Convention, inputs []string, trailing []string) string {
	var b strings.Builder
	b.WriteString(ScriptHeader)

	quotedWorker := Quote(worker)
	quotedTrailing := QuoteAll(trailing)

	for _, input := range inputs {
		b.WriteString("bash ")
		b.WriteString(quotedWorker)
		if args := FormatInvocation(input, conv, quotedTrailing); len(args) > 0 {
			b.WriteByte(' ')
			b.WriteString(strings.Join(args, " "))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// EmitScript writes the job script for inputs to path and marks it
// executable.
func EmitScript(path string, worker string, conv Convention, inputs []string, trailing []string) error {
	text := RenderScript(worker, conv, inputs, trailing)

	if err := os.WriteFile(path, []byte(text), ScriptMode); err != nil {
		return util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to write job script %s", path), err)
	}
	if err := setExecutable(path); err != nil {
		return util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to set permissions on %s", path), err)
	}

	log.Debugf("Wrote %s with %d invocation(s).", path, len(inputs))
	return nil
}
