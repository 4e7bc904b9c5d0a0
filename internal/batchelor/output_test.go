package batchelor

import (
	"bytes"
	"strings"
	"testing"

	"batchelor/internal/util"

	"github.com/tidwall/gjson"
)

var sampleReport = &Report{
	Inputs: 3,
	Groups: []GroupRecord{
		{JobName: "batch-0001", Inputs: 2, Script: "out/batch-0001.batch.sh", State: StateSubmitted, JobId: "101"},
		{JobName: "batch-0002", Inputs: 1, Script: "out/batch-0002.batch.sh", State: StateKept},
	},
}

func TestPrintReportJson(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintReport(&buf, sampleReport, util.ReportJson); err != nil {
		t.Fatalf("PrintReport failed: %v", err)
	}

	out := buf.String()
	if !gjson.Valid(out) {
		t.Fatalf("invalid json: %s", out)
	}
	if got := gjson.Get(out, "inputs").Int(); got != 3 {
		t.Errorf("inputs = %d", got)
	}
	if got := gjson.Get(out, "groups.#").Int(); got != 2 {
		t.Errorf("groups.# = %d", got)
	}
	if got := gjson.Get(out, "groups.0.job_id").String(); got != "101" {
		t.Errorf("groups.0.job_id = %q", got)
	}
	if gjson.Get(out, "groups.1.job_id").Exists() {
		t.Error("empty job id should be omitted")
	}
	if got := gjson.Get(out, "groups.#(state==\"kept\").job_name").String(); got != "batch-0002" {
		t.Errorf("kept group = %q", got)
	}
}

func TestPrintReportYaml(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintReport(&buf, sampleReport, util.ReportYaml); err != nil {
		t.Fatalf("PrintReport failed: %v", err)
	}
	for _, want := range []string{"inputs: 3", "job_name: batch-0001", "state: kept", `job_id: "101"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("yaml output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintReportTable(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintReport(&buf, sampleReport, util.ReportTable); err != nil {
		t.Fatalf("PrintReport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "JobName") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "batch-0001") || !strings.Contains(lines[1], "101") {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestPrintReportNone(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range []string{"", util.ReportNone} {
		if err := PrintReport(&buf, sampleReport, format); err != nil {
			t.Fatalf("PrintReport(%q) failed: %v", format, err)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}

	if err := PrintReport(&buf, sampleReport, "xml"); util.ErrorCode(err) != util.ErrorBadConfig {
		t.Fatalf("unknown format error = %v", err)
	}
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	PrintPlan(&buf, "batch", [][]string{{"a", "b"}, {"c"}})

	out := buf.String()
	for _, want := range []string{"2 job(s)", "batch-0001 (2 inputs)", "batch-0002 (1 inputs)", "a", "c"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "batch-0001") > strings.Index(out, "batch-0002") {
		t.Errorf("groups out of order:\n%s", out)
	}
}
