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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"batchelor/internal/jobscript"
	"batchelor/internal/submit"
	"batchelor/internal/util"

	log "github.com/sirupsen/logrus"
)

// Group states recorded in the run report.
const (
	StateDryRun    = "dry-run"
	StateSubmitted = "submitted"
	StateKept      = "kept"
)

type GroupRecord struct {
	JobName string `json:"job_name" yaml:"job_name"`
	Inputs  int    `json:"inputs" yaml:"inputs"`
	Script  string `json:"script" yaml:"script"`
	State   string `json:"state" yaml:"state"`
	JobId   string `json:"job_id,omitempty" yaml:"job_id,omitempty"`
}

type Report struct {
	Inputs int           `json:"inputs" yaml:"inputs"`
	Groups []GroupRecord `json:"groups" yaml:"groups"`
}

type Runner struct {
	Config    *Config
	Submitter submit.Submitter
	Stdout    io.Writer
}

func NewRunner(config *Config) *Runner {
	return &Runner{
		Config:    config,
		Submitter: submit.NewCommandSubmitter(),
		Stdout:    os.Stdout,
	}
}

// Run expands the inputs, writes one job script per group and submits the
// scripts in order. The first submission failure stops the run and leaves
// the failed script on disk. The returned report covers the groups handled
// before any failure.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cfg := r.Config

	if cfg.Batch == 0 {
		return nil, util.NewBatchErr(util.ErrorBadConfig, "--batch must be >= 1")
	}
	if !util.PathExists(cfg.Script) {
		return nil, util.NewBatchErrf(util.ErrorMissingScript, "script does not exist: %s", cfg.Script)
	}

	scriptAbs, err := util.Canonicalize(cfg.Script)
	if err != nil {
		return nil, util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to canonicalize %s", cfg.Script), err)
	}

	inputs, err := jobscript.ExpandInputs(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, util.NewBatchErrf(util.ErrorNoInputs, "no inputs matched from --glob %q", cfg.Patterns)
	}
	sort.Strings(inputs)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to create %s", cfg.OutDir), err)
	}
	if _, err := jobscript.CleanupScripts(cfg.OutDir, cfg.JobNamePrefix); err != nil {
		return nil, err
	}

	batchCount := min(int(cfg.Batch), len(inputs))
	fmt.Fprintf(r.Stdout, "Found %d input files. Creating %d job(s).\n", len(inputs), batchCount)

	groups := jobscript.Partition(inputs, batchCount)
	if cfg.Plan {
		PrintPlan(r.Stdout, cfg.JobNamePrefix, groups)
	}

	report := &Report{Inputs: len(inputs)}
	for idx, group := range groups {
		jobName := jobscript.JobName(cfg.JobNamePrefix, idx+1)
		scriptPath := filepath.Join(cfg.OutDir, jobscript.ScriptName(jobName))

		if err := jobscript.EmitScript(scriptPath, scriptAbs, cfg.Convention, group, cfg.ScriptArgs); err != nil {
			return report, err
		}

		record := GroupRecord{JobName: jobName, Inputs: len(group), Script: scriptPath}

		if cfg.DryRun {
			fmt.Fprintf(r.Stdout, "[dry-run] %s %s\n", cfg.Submit, jobscript.Quote(scriptPath))
			record.State = StateDryRun
			report.Groups = append(report.Groups, record)
			continue
		}

		receipt, err := r.Submitter.Submit(ctx, cfg.Submit, scriptPath)
		if err != nil {
			log.Debugf("Leaving %s in place after failed submission.", scriptPath)
			return report, err
		}
		record.JobId = receipt.JobId

		if cfg.Keep {
			record.State = StateKept
		} else {
			if err := util.RemoveFileIfExists(scriptPath); err != nil {
				return report, util.WrapBatchErr(util.ErrorIo, fmt.Sprintf("failed to remove %s", scriptPath), err)
			}
			record.State = StateSubmitted
		}
		report.Groups = append(report.Groups, record)
	}

	return report, nil
}
