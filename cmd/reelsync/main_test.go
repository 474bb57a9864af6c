package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, baseDir string) string {
	t.Helper()

	configPath := filepath.Join(baseDir, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[tmdb]
api_key = "test"

[logging]
format = "json"
level = "error"
`, filepath.Join(baseDir, "data"), filepath.Join(baseDir, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCLI(t, configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(base, "generated.toml")
	out, err = runCLI(t, configPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, configPath, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}

func TestLibraryAddAndList(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, configPath, "library", "add", "Inception",
		"--director", "Christopher Nolan", "--release-date", "2010-07-16")
	if err != nil {
		t.Fatalf("library add: %v", err)
	}
	requireContains(t, out, "Added \"Inception\"")

	out, err = runCLI(t, configPath, "library", "list", "--json")
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	var entries []libraryEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Title != "Inception" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestReconcileDryRunAndLive(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	if _, err := runCLI(t, configPath, "library", "add", "Inception",
		"--director", "Christopher Nolan", "--release-date", "2010-07-16"); err != nil {
		t.Fatalf("library add: %v", err)
	}

	logPath := filepath.Join(base, "viewlog.tsv")
	logContent := "#\tYear\tTitle\tDirector\tNotes\n" +
		"1\t2010\tInception\tChristopher Nolan\tgreat\n"
	if err := os.WriteFile(logPath, []byte(logContent), 0o644); err != nil {
		t.Fatalf("write viewlog: %v", err)
	}

	out, err := runCLI(t, configPath, "reconcile", "--log", logPath, "--dry-run", "--json")
	if err != nil {
		t.Fatalf("reconcile dry-run: %v", err)
	}
	var dryReport struct {
		DryRun      bool `json:"dryRun"`
		AutoApplied int  `json:"autoApplied"`
	}
	if err := json.Unmarshal([]byte(out), &dryReport); err != nil {
		t.Fatalf("decode dry-run report: %v\n%s", err, out)
	}
	if !dryReport.DryRun || dryReport.AutoApplied != 1 {
		t.Fatalf("unexpected dry-run report %+v", dryReport)
	}

	// Dry run must not persist anything.
	out, err = runCLI(t, configPath, "review", "list", "--json")
	if err != nil {
		t.Fatalf("review list: %v", err)
	}
	var pending []reviewEntry
	if err := json.Unmarshal([]byte(out), &pending); err != nil {
		t.Fatalf("decode review list: %v\n%s", err, out)
	}
	if len(pending) != 0 {
		t.Fatalf("dry run should not link, got %+v", pending)
	}

	out, err = runCLI(t, configPath, "reconcile", "--log", logPath, "--json")
	if err != nil {
		t.Fatalf("reconcile live: %v", err)
	}
	var liveReport struct {
		AutoApplied int `json:"autoApplied"`
		FailedLinks int `json:"failedLinks"`
	}
	if err := json.Unmarshal([]byte(out), &liveReport); err != nil {
		t.Fatalf("decode live report: %v\n%s", err, out)
	}
	if liveReport.AutoApplied != 1 || liveReport.FailedLinks != 0 {
		t.Fatalf("unexpected live report %+v", liveReport)
	}

	out, err = runCLI(t, configPath, "review", "list", "--json")
	if err != nil {
		t.Fatalf("review list: %v", err)
	}
	pending = nil
	if err := json.Unmarshal([]byte(out), &pending); err != nil {
		t.Fatalf("decode review list: %v\n%s", err, out)
	}
	if len(pending) != 1 || pending[0].LogRowNumber != 2 {
		t.Fatalf("expected one pending linkage for row 2, got %+v", pending)
	}

	if _, err := runCLI(t, configPath, "review", "approve",
		fmt.Sprintf("%d", pending[0].MovieID)); err != nil {
		t.Fatalf("review approve: %v", err)
	}

	// A second run finds nothing new to link.
	out, err = runCLI(t, configPath, "reconcile", "--log", logPath, "--json")
	if err != nil {
		t.Fatalf("reconcile rerun: %v", err)
	}
	var rerunReport struct {
		PotentialMatches int `json:"potentialMatches"`
	}
	if err := json.Unmarshal([]byte(out), &rerunReport); err != nil {
		t.Fatalf("decode rerun report: %v\n%s", err, out)
	}
	if rerunReport.PotentialMatches != 0 {
		t.Fatalf("rerun should find no candidates, got %+v", rerunReport)
	}
}

func TestReconcileMissingLogFile(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	if _, err := runCLI(t, configPath, "reconcile", "--log", "/nonexistent/viewlog.tsv", "--dry-run"); err == nil {
		t.Fatal("expected error for missing viewing log")
	}
}
