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

package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"batchelor/internal/jobscript"
	"batchelor/internal/util"

	log "github.com/sirupsen/logrus"
)

// Scheduler front-ends print the allocated id in one of these forms.
var jobIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Submitted batch job (\d+)`),
	regexp.MustCompile(`Job id allocated: (\d+)`),
}

type Receipt struct {
	Program string
	Script  string
	Stdout  []byte
	JobId   string
}

type Submitter interface {
	Submit(ctx context.Context, command string, scriptPath string) (*Receipt, error)
}

// CommandSubmitter runs the submission command as a child process and
// forwards its standard output to Stdout.
type CommandSubmitter struct {
	Stdout io.Writer
}

func NewCommandSubmitter() *CommandSubmitter {
	return &CommandSubmitter{Stdout: os.Stdout}
}

// ParseCommand splits the submission command into program and arguments.
func ParseCommand(command string) (string, []string, error) {
	words, err := jobscript.SplitWords(command)
	if err != nil {
		return "", nil, util.WrapBatchErr(util.ErrorSubmitParse,
			fmt.Sprintf("could not parse --submit command string (check shell quoting): %s", command), err)
	}
	if len(words) == 0 {
		return "", nil, util.NewBatchErr(util.ErrorSubmitParse, "--submit cannot be empty")
	}
	return words[0], words[1:], nil
}

// Submit runs command with scriptPath appended as its last argument and
// waits for it to exit.
func (s *CommandSubmitter) Submit(ctx context.Context, command string, scriptPath string) (*Receipt, error) {
	program, args, err := ParseCommand(command)
	if err != nil {
		return nil, err
	}
	args = append(args, scriptPath)

	log.Debugf("Submitting %s: %s %q", scriptPath, program, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, util.NewBatchErrf(util.ErrorSubmitFailed, "%s failed for %s: %s",
				program, scriptPath, strings.TrimSpace(stderr.String()))
		}
		return nil, util.WrapBatchErr(util.ErrorSubmitFailed,
			fmt.Sprintf("%s could not be started for %s", program, scriptPath), err)
	}

	if s.Stdout != nil {
		if _, err := s.Stdout.Write(stdout.Bytes()); err != nil {
			return nil, util.WrapBatchErr(util.ErrorIo, "failed to forward submit output", err)
		}
	}

	receipt := &Receipt{
		Program: program,
		Script:  scriptPath,
		Stdout:  stdout.Bytes(),
		JobId:   ParseJobId(stdout.String()),
	}
	if receipt.JobId != "" {
		log.Debugf("%s accepted as job %s.", scriptPath, receipt.JobId)
	}
	return receipt, nil
}

// ParseJobId extracts the scheduler job id from submit output, or returns ""
// when the output has no recognizable id.
func ParseJobId(output string) string {
	for _, line := range strings.Split(output, "\n") {
		for _, re := range jobIdPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}
