package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sablec/report"

	"gopkg.in/yaml.v3"
)

// checkFixture describes a full on-disk module and the errors checking it
// should produce.
type checkFixture struct {
	Name   string            `yaml:"name"`
	Files  map[string]string `yaml:"files"`
	Errors []string          `yaml:"errors"`
}

func loadCheckFixtures(t *testing.T) []checkFixture {
	t.Helper()

	buff, err := os.ReadFile(filepath.Join("testdata", "checks.yaml"))
	if err != nil {
		t.Fatalf("failed to read fixture file: %v", err)
	}

	var fixtures []checkFixture
	if err := yaml.Unmarshal(buff, &fixtures); err != nil {
		t.Fatalf("failed to parse fixture file: %v", err)
	}

	return fixtures
}

// writeFixtureModule materializes a fixture's files into a fresh module
// directory and returns that directory.
func writeFixtureModule(t *testing.T, fixture checkFixture) string {
	t.Helper()

	dir := t.TempDir()
	for relPath, contents := range fixture.Files {
		absPath := filepath.Join(dir, filepath.FromSlash(relPath))

		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			t.Fatalf("failed to create package directory: %v", err)
		}

		if err := os.WriteFile(absPath, []byte(contents), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", relPath, err)
		}
	}

	return dir
}

// TestCheckManyFilePackage checks a package wide enough that its files' parse
// goroutines define global symbols concurrently.  Run under the race detector
// this exercises the synchronization of the package symbol table.
func TestCheckManyFilePackage(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()

	manifest := "name = \"app\"\nsable-version = \"0.1.0\"\n"
	if err := os.WriteFile(filepath.Join(dir, "sable-mod.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("failed to write module file: %v", err)
	}

	for i := 0; i < 32; i++ {
		var sb strings.Builder
		for j := 0; j < 40; j++ {
			fmt.Fprintf(&sb, "struct S%d_%d { x: i64; }\n", i, j)
			fmt.Fprintf(&sb, "def f%d_%d() {}\n", i, j)
		}

		path := filepath.Join(dir, fmt.Sprintf("file%d.sbl", i))
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			t.Fatalf("failed to write source file: %v", err)
		}
	}

	if exitCode := NewCompiler(dir).Check(); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %v", exitCode, report.Diagnostics())
	}

	if diags := report.Diagnostics(); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckFixtures(t *testing.T) {
	for _, fixture := range loadCheckFixtures(t) {
		t.Run(fixture.Name, func(t *testing.T) {
			report.InitReporter(report.LogLevelSilent)

			dir := writeFixtureModule(t, fixture)
			exitCode := NewCompiler(dir).Check()

			wantCode := 0
			if len(fixture.Errors) > 0 {
				wantCode = 1
			}

			if exitCode != wantCode {
				t.Errorf("expected exit code %d, got %d", wantCode, exitCode)
			}

			var errMsgs []string
			for _, diag := range report.Diagnostics() {
				if diag.IsError {
					errMsgs = append(errMsgs, diag.Message)
				}
			}

			if len(fixture.Errors) == 0 && len(errMsgs) != 0 {
				t.Fatalf("unexpected errors: %v", errMsgs)
			}

			for _, want := range fixture.Errors {
				found := false
				for _, msg := range errMsgs {
					if strings.Contains(msg, want) {
						found = true
						break
					}
				}

				if !found {
					t.Errorf("expected an error containing %q, got %v", want, errMsgs)
				}
			}
		})
	}
}
