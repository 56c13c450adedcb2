package depm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sablec/common"
	"sablec/report"
)

// writeModFile writes a module manifest with the given contents into a fresh
// temporary directory and returns that directory.
func writeModFile(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, common.SableModFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write module file: %v", err)
	}

	return dir
}

func TestLoadModule(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := writeModFile(t, `
name = "myapp"
sable-version = "`+common.SableVersion+`"
layout-iter-limit = 8
`)

	mod, ok := LoadModule(dir)
	if !ok {
		t.Fatalf("expected module to load, got diagnostics %v", report.Diagnostics())
	}

	if mod.Name != "myapp" {
		t.Errorf("expected module name myapp, got %s", mod.Name)
	}

	if mod.LayoutIterLimit != 8 {
		t.Errorf("expected layout iteration limit 8, got %d", mod.LayoutIterLimit)
	}

	if mod.AbsPath != dir {
		t.Errorf("expected module path %s, got %s", dir, mod.AbsPath)
	}

	if mod.ID != GenerateIDFromPath(dir) {
		t.Error("module ID does not match its path hash")
	}

	if len(report.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics())
	}
}

func TestLoadModuleDefaultIterLimit(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := writeModFile(t, `
name = "myapp"
sable-version = "`+common.SableVersion+`"
`)

	mod, ok := LoadModule(dir)
	if !ok {
		t.Fatal("expected module to load")
	}

	if mod.LayoutIterLimit != common.DefaultLayoutIterLimit {
		t.Errorf(
			"expected default layout iteration limit %d, got %d",
			common.DefaultLayoutIterLimit, mod.LayoutIterLimit,
		)
	}
}

func TestLoadModuleVersionMismatchWarns(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := writeModFile(t, `
name = "myapp"
sable-version = "0.0.1"
`)

	if _, ok := LoadModule(dir); !ok {
		t.Fatal("version mismatch should not fail the load")
	}

	diags := report.Diagnostics()
	if len(diags) != 1 || diags[0].IsError {
		t.Fatalf("expected a single warning, got %v", diags)
	}

	if !strings.Contains(diags[0].Message, "does not match current sable version") {
		t.Errorf("unexpected warning message: %s", diags[0].Message)
	}
}

func TestLoadModuleRejectsBadManifests(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		wantMsg  string
	}{
		{"missing name", `sable-version = "0.1.0"`, "missing module name"},
		{"invalid name", `name = "my-app"`, "must be a valid identifier"},
		{"negative iter limit", "name = \"myapp\"\nlayout-iter-limit = -1", "layout-iter-limit must be positive"},
		{"malformed toml", `name = `, "error parsing module file"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report.InitReporter(report.LogLevelSilent)

			dir := writeModFile(t, c.contents)
			if _, ok := LoadModule(dir); ok {
				t.Fatal("expected load to fail")
			}

			diags := report.Diagnostics()
			found := false
			for _, diag := range diags {
				if diag.IsError && strings.Contains(diag.Message, c.wantMsg) {
					found = true
				}
			}

			if !found {
				t.Errorf("expected an error containing %q, got %v", c.wantMsg, diags)
			}
		})
	}
}

func TestLoadModuleMissingManifest(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	if _, ok := LoadModule(t.TempDir()); ok {
		t.Fatal("expected load to fail without a module file")
	}

	diags := report.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unable to read module file") {
		t.Fatalf("expected a read error, got %v", diags)
	}
}

func TestInitModuleFileRoundTrip(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	if err := InitModuleFile(dir, "fresh"); err != nil {
		t.Fatalf("failed to initialize module file: %v", err)
	}

	mod, ok := LoadModule(dir)
	if !ok {
		t.Fatalf("failed to load initialized module: %v", report.Diagnostics())
	}

	if mod.Name != "fresh" {
		t.Errorf("expected module name fresh, got %s", mod.Name)
	}

	if mod.LayoutIterLimit != common.DefaultLayoutIterLimit {
		t.Errorf("expected default layout iteration limit, got %d", mod.LayoutIterLimit)
	}

	// A freshly initialized module matches the current version.
	if len(report.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", report.Diagnostics())
	}
}

func TestInitModuleFileRejectsInvalidName(t *testing.T) {
	if err := InitModuleFile(t.TempDir(), "not a name"); err == nil {
		t.Fatal("expected an error for an invalid module name")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	cases := []struct {
		idstr string
		valid bool
	}{
		{"app", true},
		{"_private", true},
		{"App2", true},
		{"a_b_c", true},
		{"", false},
		{"2fast", false},
		{"my-app", false},
		{"my app", false},
		{"app!", false},
	}

	for _, c := range cases {
		if IsValidIdentifier(c.idstr) != c.valid {
			t.Errorf("IsValidIdentifier(%q) should be %v", c.idstr, c.valid)
		}
	}
}

func TestGenerateIDFromPath(t *testing.T) {
	if GenerateIDFromPath("/a/b") != GenerateIDFromPath("/a/b") {
		t.Error("path IDs must be deterministic")
	}

	if GenerateIDFromPath("/a/b") == GenerateIDFromPath("/a/c") {
		t.Error("distinct paths should produce distinct IDs")
	}
}
