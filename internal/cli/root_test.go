package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const waterXYZ = `3
water
O  0.000  0.000  0.000
H  0.757  0.586  0.000
H -0.757  0.586  0.000
`

// runCLI executes the root command with args and captures nothing; commands
// print to stdout directly, so tests only assert on errors and files.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	os.Args = append([]string{appName}, args...)
	return Execute(context.Background())
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	input := filepath.Join(dir, "water.xyz")
	if err := os.WriteFile(input, []byte(waterXYZ), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "water.cgr")

	if err := runCLI(t, "build", input, "-o", out); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
}

func TestBuildCommandDOTExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	input := filepath.Join(dir, "water.xyz")
	if err := os.WriteFile(input, []byte(waterXYZ), 0644); err != nil {
		t.Fatal(err)
	}
	dotPath := filepath.Join(dir, "water.dot")

	if err := runCLI(t, "build", input, "--no-cache", "--dot", dotPath); err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("graph G {")) {
		t.Errorf("DOT export looks wrong: %s", data[:min(len(data), 40)])
	}
}

func TestBuildCommandMissingFileIsAbsent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	// A missing structure file is skipped, not an error.
	if err := runCLI(t, "build", filepath.Join(dir, "nope.xyz"), "--no-cache"); err != nil {
		t.Fatalf("missing input should not fail the command: %v", err)
	}
}

func TestRenderCommandRejectsNonArtifact(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "water.xyz")
	if err := os.WriteFile(input, []byte(waterXYZ), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "render", input, "-f", "dot"); err == nil {
		t.Error("render should reject non-artifact inputs")
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if err := runCLI(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}
