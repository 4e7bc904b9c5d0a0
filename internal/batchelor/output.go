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
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"batchelor/internal/jobscript"
	"batchelor/internal/util"

	"github.com/olekukonko/tablewriter"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"
)

// PrintPlan writes the group layout as a tree, one branch per job.
func PrintPlan(w io.Writer, prefix string, groups [][]string) {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%d job(s)", len(groups)))
	for idx, group := range groups {
		branch := tree.AddBranch(fmt.Sprintf("%s (%d inputs)", jobscript.JobName(prefix, idx+1), len(group)))
		for _, input := range group {
			branch.AddNode(input)
		}
	}
	fmt.Fprint(w, tree.String())
}

// PrintReport writes report in the requested format. ReportNone and an empty
// format print nothing.
func PrintReport(w io.Writer, report *Report, format string) error {
	if report == nil {
		return nil
	}

	switch format {
	case "", util.ReportNone:
		return nil
	case util.ReportJson:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return util.WrapBatchErr(util.ErrorGeneric, "failed to encode report", err)
		}
		fmt.Fprintln(w, string(out))
	case util.ReportYaml:
		out, err := yaml.Marshal(report)
		if err != nil {
			return util.WrapBatchErr(util.ErrorGeneric, "failed to encode report", err)
		}
		fmt.Fprint(w, string(out))
	case util.ReportTable:
		table := tablewriter.NewWriter(w)
		util.SetBorderlessTable(table)
		table.SetHeader([]string{"JobName", "Inputs", "Script", "State", "JobId"})
		for _, g := range report.Groups {
			table.Append([]string{g.JobName, strconv.Itoa(g.Inputs), g.Script, g.State, g.JobId})
		}
		table.Render()
	default:
		return util.NewBatchErrf(util.ErrorBadConfig, "unknown report format %q", format)
	}
	return nil
}
