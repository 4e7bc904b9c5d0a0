package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Uint("batch", 1, "")
	flags.String("submit", "sbatch", "")
	flags.String("out-dir", ".batchelor", "")
	flags.Bool("keep", false, "")
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Config{
		InputFlag:     "--input",
		Batch:         1,
		OutDir:        ".batchelor",
		Submit:        "sbatch",
		JobNamePrefix: "batch",
		LogLevel:      DefaultLogLevel,
		Report:        ReportNone,
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
batch: 4
submit: "cbatch --account lab"
out-dir: /scratch/jobs
job-name-prefix: nightly
input-flag: "$1"
keep: true
report: json
`)

	t.Run("file", func(t *testing.T) {
		config, err := LoadConfig(path, true, newFlagSet(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Batch != 4 || config.Submit != "cbatch --account lab" || config.OutDir != "/scratch/jobs" {
			t.Fatalf("file values not applied: %+v", config)
		}
		if config.JobNamePrefix != "nightly" || config.InputFlag != "$1" || !config.Keep || config.Report != ReportJson {
			t.Fatalf("file values not applied: %+v", config)
		}
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("BATCHELOR_BATCH", "6")
		t.Setenv("BATCHELOR_OUT_DIR", "/tmp/env-jobs")

		config, err := LoadConfig(path, true, newFlagSet(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Batch != 6 || config.OutDir != "/tmp/env-jobs" {
			t.Fatalf("environment not applied: %+v", config)
		}
		if config.Submit != "cbatch --account lab" {
			t.Fatalf("file value lost: %+v", config)
		}
	})

	t.Run("flags over environment", func(t *testing.T) {
		t.Setenv("BATCHELOR_BATCH", "6")

		config, err := LoadConfig(path, true, newFlagSet(t, "--batch=9", "--submit=qsub"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Batch != 9 || config.Submit != "qsub" {
			t.Fatalf("flags not applied: %+v", config)
		}
		if config.OutDir != "/scratch/jobs" {
			t.Fatalf("unset flag default overrode the file: %+v", config)
		}
	})
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "bad report", content: "report: xml\n"},
		{name: "bad log level", content: "log-level: loud\n"},
		{name: "prefix with separator", content: "job-name-prefix: a/b\n"},
		{name: "malformed yaml", content: "batch: [\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.content), true, nil); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}

	t.Run("explicit missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), true, nil); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
