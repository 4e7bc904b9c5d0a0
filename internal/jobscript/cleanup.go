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
	"path/filepath"
	"strings"

	"batchelor/internal/util"

	log "github.com/sirupsen/logrus"
)

const ScriptSuffix = ".batch.sh"

// JobName returns <prefix>-<NNNN> for the one-based group index.
func JobName(prefix string, index int) string {
	return fmt.Sprintf("%s-%04d", prefix, index)
}

// ScriptName returns the file name of the job script for jobName.
func ScriptName(jobName string) string {
	return jobName + ScriptSuffix
}

// CleanupScripts removes the regular files directly under dir whose names
// start with "<prefix>-" and end with ".batch.sh". Nothing else is touched.
// It returns the number of files removed.
func CleanupScripts(dir string, prefix string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to read %s", dir), err)
	}

	namePrefix := prefix + "-"
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, ScriptSuffix) {
			continue
		}

		path := filepath.Join(dir, name)
		// Stat follows links: a link to a regular file is removed, its target is not.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to remove stale script %s", path), err)
		}
		log.Debugf("Removed stale job script %s.", path)
		removed++
	}

	return removed, nil
}
