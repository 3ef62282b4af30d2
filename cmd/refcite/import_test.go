package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/refcite/internal/conflict"
	"github.com/matsen/refcite/internal/importer"
)

func TestNewDecider(t *testing.T) {
	tests := []struct {
		mode string
		want conflict.Choice
	}{
		{"overwrite", conflict.Overwrite},
		{"rename", conflict.RenameAndAdd},
		{"abort", conflict.Abort},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			decide, err := newDecider(tt.mode, nil, nil)
			if err != nil {
				t.Fatalf("newDecider(%q) error = %v", tt.mode, err)
			}
			got, err := decide("smith-2020")
			if err != nil || got != tt.want {
				t.Errorf("decide() = %v, %v; want %v", got, err, tt.want)
			}
		})
	}

	if _, err := newDecider("merge", nil, nil); err == nil {
		t.Error("newDecider(merge) should fail")
	}
}

func TestNewDecider_Ask(t *testing.T) {
	var out bytes.Buffer
	decide, err := newDecider("ask", strings.NewReader("n\nj\n"), &out)
	if err != nil {
		t.Fatalf("newDecider(ask) error = %v", err)
	}
	got, err := decide("smith-2020")
	if err != nil {
		t.Fatalf("decide() error = %v", err)
	}
	if got != conflict.RenameAndAdd {
		t.Errorf("decide() = %v, want rename", got)
	}
	if !strings.Contains(out.String(), "smith-2020 already exists") {
		t.Errorf("prompt output = %q", out.String())
	}
}

func TestReadImportInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte("@book{a, title={T}}"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readImportInput([]string{path}, false, nil)
	if err != nil || string(got) != "@book{a, title={T}}" {
		t.Errorf("file: got %q, %v", got, err)
	}

	got, err = readImportInput([]string{"-"}, false, strings.NewReader("from stdin"))
	if err != nil || string(got) != "from stdin" {
		t.Errorf("stdin: got %q, %v", got, err)
	}

	got, err = readImportInput(nil, false, strings.NewReader("implicit stdin"))
	if err != nil || string(got) != "implicit stdin" {
		t.Errorf("no args: got %q, %v", got, err)
	}

	if _, err := readImportInput([]string{path}, true, nil); err == nil {
		t.Error("--clipboard with a file argument should fail")
	}

	if _, err := readImportInput([]string{filepath.Join(dir, "missing.bib")}, false, nil); err == nil {
		t.Error("missing file should fail")
	}
}

func TestCountActions(t *testing.T) {
	results := []importer.Result{
		{Action: conflict.ActionNew},
		{Action: conflict.ActionNew},
		{Action: conflict.ActionSuffixed},
		{Action: conflict.ActionSkipped},
	}
	got := countActions(results)
	if got["new"] != 2 || got["suffixed"] != 1 || got["skipped"] != 1 || len(got) != 3 {
		t.Errorf("countActions() = %v", got)
	}
}
