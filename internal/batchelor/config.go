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
	"batchelor/internal/jobscript"
	"batchelor/internal/util"
)

// Config is the validated, immutable description of one run.
type Config struct {
	Script        string
	Patterns      []string
	InputFlag     string
	Convention    jobscript.Convention
	Batch         uint
	OutDir        string
	Submit        string
	JobNamePrefix string
	ScriptArgs    []string
	DryRun        bool
	Keep          bool
	Plan          bool
	Report        string
}

// NewConfig combines the file/environment backed settings with the per-run
// command line values and classifies the input convention once.
func NewConfig(base *util.Config, script string, patterns []string, scriptArgs []string,
	dryRun bool, plan bool) *Config {
	return &Config{
		Script:        script,
		Patterns:      append([]string(nil), patterns...),
		InputFlag:     base.InputFlag,
		Convention:    jobscript.ParseConvention(base.InputFlag),
		Batch:         base.Batch,
		OutDir:        base.OutDir,
		Submit:        base.Submit,
		JobNamePrefix: base.JobNamePrefix,
		ScriptArgs:    append([]string(nil), scriptArgs...),
		DryRun:        dryRun,
		Keep:          base.Keep,
		Plan:          plan,
		Report:        base.Report,
	}
}
