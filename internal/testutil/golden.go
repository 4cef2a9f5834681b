// Package testutil provides shared test helpers for Mython Go tests.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files with actual output")

// ListPrograms returns all .my program files under the given testdata root.
func ListPrograms(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("reading %s: %v", root, err)
	}
	var programs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".my") {
			programs = append(programs, filepath.Join(root, e.Name()))
		}
	}
	return programs
}

// GoldenPath returns the golden file path for a program file.
func GoldenPath(program string) string {
	return strings.TrimSuffix(program, ".my") + ".golden"
}

// CheckGolden compares actual output against the program's golden file,
// rewriting it when the -update flag is set.
func CheckGolden(t *testing.T, program, actual string) {
	t.Helper()
	golden := GoldenPath(program)
	if *update {
		if err := os.WriteFile(golden, []byte(actual), 0o644); err != nil {
			t.Fatalf("updating %s: %v", golden, err)
		}
		return
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("reading %s: %v (run tests with -update to create it)", golden, err)
	}
	if actual != string(want) {
		t.Errorf("output mismatch for %s\ngot:\n%s\nwant:\n%s", program, actual, want)
	}
}
