package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReportClose_WritesEntries(t *testing.T) {
	tmpDir := t.TempDir()

	r, err := (&ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(tmpDir, "session.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("final.log", stored)
	r.Store("missing.log", filepath.Join(tmpDir, "absent.log"))
	r.StoreData("trace/events.txt", []byte("pagechange 0/3"))
	r.StoreData("trace/events.txt", []byte("pagechange 1/3"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(tmpDir, "report.zip"))
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["MANIFEST"] || !names["final.log"] || !names["trace/events.txt"] {
		t.Errorf("report entries = %v, want MANIFEST, final.log and trace/events.txt", names)
	}
	if names["missing.log"] {
		t.Error("absent file should not be put into report")
	}
	// second trace is versioned, not dropped
	if len(names) != 4 {
		t.Errorf("report has %d entries, want 4", len(names))
	}
}

func TestReportStore_Overwrite(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "a.log")
	r.Store("final.log", "a.log")

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on overwriting stored file with different path")
		}
	}()
	r.Store("final.log", "b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name on nil report = %q, want empty", r.Name())
	}
	r.StoreData("ignored", []byte("x"))
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
