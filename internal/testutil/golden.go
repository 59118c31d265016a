package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// GoldenString compares got against testdata/<name>.golden.
// With GOLDEN_UPDATE set in the environment, it rewrites the file instead.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", path, err, got)
	}
	if got != string(want) {
		t.Errorf("output mismatch for %s\nWant:\n%q\nGot:\n%q", name, want, got)
	}
}
