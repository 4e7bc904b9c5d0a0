package batchelor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeArgs(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single glob",
			args: []string{"--script", "w.sh", "--glob", "*.txt"},
			want: []string{"--script", "w.sh", "--glob=*.txt"},
		},
		{
			name: "several globs then a flag",
			args: []string{"--glob", "a.txt", "b.txt", "--batch", "2"},
			want: []string{"--glob=a.txt", "--glob=b.txt", "--batch", "2"},
		},
		{
			name: "repeated glob flag",
			args: []string{"--glob", "a", "--dry-run", "--glob", "b"},
			want: []string{"--glob=a", "--dry-run", "--glob=b"},
		},
		{
			name: "glob with equals",
			args: []string{"--glob=a", "--keep"},
			want: []string{"--glob=a", "--keep"},
		},
		{
			name: "glob without value",
			args: []string{"--glob", "--batch", "2"},
			want: []string{"--glob", "--batch", "2"},
		},
		{
			name: "dash is a value",
			args: []string{"--glob", "-", "x"},
			want: []string{"--glob=-", "--glob=x"},
		},
		{
			name: "script args end at a batchelor flag",
			args: []string{"--glob", "x.dat", "--script-args", "foo", "-v", "--dry-run"},
			want: []string{"--glob=x.dat", "--script-args=foo", "--script-args=-v", "--dry-run"},
		},
		{
			name: "script args followed by glob",
			args: []string{"--input-flag", "$2", "--script-args", "foo", "bar", "--glob", "x.dat"},
			want: []string{"--input-flag", "$2", "--script-args=foo", "--script-args=bar", "--glob=x.dat"},
		},
		{
			name: "script args end at flag with inline value",
			args: []string{"--script-args", "a", "--batch=3"},
			want: []string{"--script-args=a", "--batch=3"},
		},
		{
			name: "unknown long options go to the worker",
			args: []string{"--script-args", "--threads", "4", "--", "x"},
			want: []string{"--script-args=--threads", "--script-args=4", "--script-args=--", "--script-args=x"},
		},
		{
			name: "help ends script args",
			args: []string{"--script-args", "x", "--help"},
			want: []string{"--script-args=x", "--help"},
		},
		{
			name: "script args with equals",
			args: []string{"--script-args=-n", "5"},
			want: []string{"--script-args=-n", "--script-args=5"},
		},
		{
			name: "glob shorthand",
			args: []string{"-g", "a", "b", "-b", "2"},
			want: []string{"--glob=a", "--glob=b", "-b", "2"},
		},
		{
			name: "glob with equals keeps collecting",
			args: []string{"--glob=a", "b", "--keep"},
			want: []string{"--glob=a", "--glob=b", "--keep"},
		},
		{
			name: "glob shorthand with equals",
			args: []string{"-g=a", "b"},
			want: []string{"--glob=a", "--glob=b"},
		},
		{
			name: "script args without values",
			args: []string{"--dry-run", "--script-args"},
			want: []string{"--dry-run"},
		},
		{
			name: "other flag values untouched",
			args: []string{"--input-flag", "-i $1", "--submit", "sbatch --mem 4G"},
			want: []string{"--input-flag", "-i $1", "--submit", "sbatch --mem 4G"},
		},
		{
			name: "terminator",
			args: []string{"--dry-run", "--", "--glob", "a"},
			want: []string{"--dry-run", "--", "--glob", "a"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeArgs(RootCmd.Flags(), tc.args)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("NormalizeArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
