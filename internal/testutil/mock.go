// Package testutil provides testing utilities for the plankit project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SamplePlan is a complete, valid plan file.
const SamplePlan = `# yaml-language-server: $schema=./plan.schema.json
version: 1.2.0
name: Reporting iteration
description: Ship the reporting pipeline
metadata:
  created_by: alice
  created_date: 2026-01-10
  last_modified: 2026-02-01
goals:
  primary:
    - title: Export reports
      description: Users can export reports as CSV
      status: completed
      priority: high
    - title: Schedule reports
      description: Reports run on a schedule
      status: in_progress
      priority: medium
  secondary:
    - title: Dark mode
      description: Reports page supports dark mode
      status: pending
      priority: low
tasks:
  - id: t1
    title: CSV writer
    description: Stream rows into CSV
    status: completed
    priority: high
  - id: t2
    title: Export endpoint
    description: HTTP endpoint returning CSV
    status: in_progress
    priority: high
    dependencies: [t1]
    due_date: 2026-03-05
  - id: t3
    title: Scheduler
    description: Cron-like runner
    status: pending
    priority: medium
    dependencies: [t2]
milestones:
  - title: Beta
    date: 2026-03-01
    status: completed
  - title: GA
    date: 2026-04-01
    status: pending
`

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}

// WritePlan writes content to dir/name, creating dir when needed, and
// returns the file path.
func WritePlan(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
