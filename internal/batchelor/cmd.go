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
	"os"

	"batchelor/internal/submit"
	"batchelor/internal/util"

	"github.com/spf13/cobra"
)

var (
	FlagScript         string
	FlagGlob           []string
	FlagInputFlag      string
	FlagBatch          uint
	FlagOutDir         string
	FlagSubmit         string
	FlagJobNamePrefix  string
	FlagScriptArgs     []string
	FlagDryRun         bool
	FlagKeep           bool
	FlagPlan           bool
	FlagReport         string
	FlagLogLevel       string
	FlagLogFile        string
	FlagConfigFilePath string

	RootCmd = &cobra.Command{
		Use:   "batchelor --script FILE --glob PATTERN... [flags] [--script-args ARG...]",
		Short: "Split matched inputs into balanced groups and submit one job script per group",
		Long: `Batchelor expands the --glob patterns, splits the matched inputs into at
most --batch groups, writes one bash job script per group and hands each
script to the --submit command.

--glob accepts several patterns after one occurrence. Arguments after
--script-args are passed to the worker script unchanged up to the next
batchelor flag; use --script-args=--keep for a worker option that shares a
batchelor flag name.`,
		Version:       util.Version(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := util.LoadConfig(FlagConfigFilePath, cmd.Flags().Changed("config"), cmd.Flags())
			if err != nil {
				return util.WrapBatchErr(util.ErrorBadConfig, "invalid configuration", err)
			}
			if err := util.InitLogger(base.LogLevel, base.LogFile); err != nil {
				return util.WrapBatchErr(util.ErrorBadConfig, "failed to initialize logger", err)
			}

			config := NewConfig(base, FlagScript, FlagGlob, FlagScriptArgs, FlagDryRun, FlagPlan)
			runner := NewRunner(config)
			runner.Stdout = cmd.OutOrStdout()
			runner.Submitter = &submit.CommandSubmitter{Stdout: cmd.OutOrStdout()}

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			return PrintReport(cmd.OutOrStdout(), report, config.Report)
		},
	}
)

// ParseCmdArgs executes the root command on the normalized process arguments
// and exits with the code of the first failure.
func ParseCmdArgs() {
	util.InitDefaultLogger()
	RootCmd.SetArgs(NormalizeArgs(RootCmd.Flags(), os.Args[1:]))
	util.RunAndHandleExit(RootCmd)
}

func init() {
	RootCmd.SetVersionTemplate(util.VersionTemplate())
	// Registered up front so NormalizeArgs sees them.
	RootCmd.InitDefaultHelpFlag()
	RootCmd.InitDefaultVersionFlag()

	RootCmd.Flags().StringVarP(&FlagScript, "script", "s", "", "Worker script invoked for each input")
	RootCmd.Flags().StringArrayVarP(&FlagGlob, "glob", "g", nil, "Input patterns, several may follow one --glob")
	RootCmd.Flags().StringVar(&FlagInputFlag, "input-flag", "--input",
		"How each input is passed: a flag name, a positional slot such as $1, or a template containing $1")
	RootCmd.Flags().UintVarP(&FlagBatch, "batch", "b", 1, "Maximum number of jobs to create")
	RootCmd.Flags().StringVarP(&FlagOutDir, "out-dir", "o", ".batchelor", "Directory for generated job scripts")
	RootCmd.Flags().StringVar(&FlagSubmit, "submit", "sbatch", "Submission command, split with shell quoting rules")
	RootCmd.Flags().StringVar(&FlagJobNamePrefix, "job-name-prefix", "batch", "Prefix of job names and script file names")
	RootCmd.Flags().StringArrayVar(&FlagScriptArgs, "script-args", nil, "Arguments appended to every worker invocation")
	RootCmd.Flags().BoolVar(&FlagDryRun, "dry-run", false, "Write the scripts and print the submit commands without running them")
	RootCmd.Flags().BoolVar(&FlagKeep, "keep", false, "Keep job scripts after successful submission")
	RootCmd.Flags().BoolVar(&FlagPlan, "plan", false, "Print the group layout before writing scripts")
	RootCmd.Flags().StringVar(&FlagReport, "report", util.ReportNone, "Summary printed after the run: none, table, json or yaml")
	RootCmd.Flags().StringVar(&FlagLogLevel, "log-level", util.DefaultLogLevel, "Log level: trace, debug, info, warn or error")
	RootCmd.Flags().StringVar(&FlagLogFile, "log-file", "", "Also write logs to this file")
	RootCmd.Flags().StringVarP(&FlagConfigFilePath, "config", "C", util.DefaultConfigPath(), "Path to configuration file")

	RootCmd.MarkFlagRequired("script")
	RootCmd.MarkFlagRequired("glob")
}
