package versioning

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/plankit/internal/lattice"
	"github.com/pablasso/plankit/internal/logging"
	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/prompt"
	"github.com/pablasso/plankit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) *plan.Repository {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "plan")
	testutil.WritePlan(t, dir, "1.2.0.yaml", testutil.SamplePlan)
	testutil.WritePlan(t, dir, "1.10.0.yml", strings.Replace(testutil.SamplePlan, "version: 1.2.0", "version: 1.10.0", 1))
	testutil.WritePlan(t, dir, "template.yaml", "version: 9.9.9\n")
	return plan.NewRepository(dir, "")
}

func run(t *testing.T, repo *plan.Repository, answers ...string) (Result, string, error) {
	t.Helper()
	var out strings.Builder
	res, err := Run(context.Background(), Options{
		Repo:     repo,
		Prompter: prompt.NewScripted(answers...),
		Out:      &out,
		Now:      func() time.Time { return today },
	})
	return res, out.String(), err
}

func TestRun_Minor(t *testing.T) {
	repo := setup(t)

	res, out, err := run(t, repo, "Add CSV export", "minor", "y")
	require.NoError(t, err)

	assert.Equal(t, "1.10.0", res.Source.Version.String())
	assert.Equal(t, "1.11.0", res.Target.String())
	assert.Equal(t, StrategyMinor, res.Strategy)
	assert.False(t, res.Cancelled)
	assert.Equal(t, filepath.Join(repo.Dir(), "1.11.0.yaml"), res.Path)
	assert.Contains(t, out, "Current version: 1.10.0")
	assert.Contains(t, out, "New version: 1.11.0")

	f, err := repo.Load(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "1.11.0", f.Doc.Version)
	assert.Equal(t, "2026-10-19", f.Doc.Metadata.LastModified)
	assert.True(t, strings.HasSuffix(f.Doc.Description, "Version 1.11.0 changes:\nAdd CSV export"))
	for _, task := range f.Doc.Tasks {
		assert.NotEqual(t, plan.StatusCompleted, task.Status, task.ID)
	}
	assert.Equal(t, plan.StatusInProgress, f.Doc.Tasks[1].Status)
}

func TestRun_Auto(t *testing.T) {
	tests := []struct {
		changes string
		want    string
	}{
		{"重构核心架构", "2.0.0"},
		{"新增功能：导出报表", "1.11.0"},
		{"修复拼写错误", "1.10.1"},
	}

	for _, tt := range tests {
		t.Run(tt.changes, func(t *testing.T) {
			res, out, err := run(t, setup(t), tt.changes, "auto", "yes")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Target.String())
			assert.Contains(t, out, "Detected version type")
		})
	}
}

func TestRun_Custom(t *testing.T) {
	res, _, err := run(t, setup(t), "Hotfix", "custom", "3.0.1", "y")
	require.NoError(t, err)
	assert.Equal(t, "3.0.1", res.Target.String())
}

func TestRun_CustomMalformed(t *testing.T) {
	repo := setup(t)
	_, _, err := run(t, repo, "Hotfix", "custom", "3.0", "y")

	var fe *lattice.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "3.0", fe.Input)
	assertFileCount(t, repo, 2)
}

func TestRun_TargetExists(t *testing.T) {
	repo := setup(t)
	_, _, err := run(t, repo, "Hotfix", "custom", "1.2.0", "y")
	assert.ErrorIs(t, err, plan.ErrTargetExists)
	assertFileCount(t, repo, 2)
}

func TestRun_Declined(t *testing.T) {
	repo := setup(t)
	res, out, err := run(t, repo, "Add export", "patch", "n")
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Contains(t, out, "Cancelled")
	assertFileCount(t, repo, 2)
}

func TestRun_Aborted(t *testing.T) {
	repo := setup(t)
	_, _, err := run(t, repo, "Add export", "patch")
	assert.ErrorIs(t, err, prompt.ErrAborted)
	assertFileCount(t, repo, 2)
}

func TestRun_Locked(t *testing.T) {
	repo := setup(t)
	lock, err := repo.Lock()
	require.NoError(t, err)
	defer lock.Release()

	_, _, err = run(t, repo, "Add export", "minor", "y")
	assert.ErrorIs(t, err, plan.ErrLocked)
	assertFileCount(t, repo, 2)
}

func TestRun_ReleasesLock(t *testing.T) {
	repo := setup(t)
	_, _, err := run(t, repo, "Add export", "minor", "y")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(repo.Dir(), plan.LockFile))
	assert.True(t, os.IsNotExist(err))
}

func TestReleaseLock_LogsFailure(t *testing.T) {
	dir := t.TempDir()
	lock := plan.NewDirLock(dir)
	require.NoError(t, lock.Acquire())

	// A non-empty directory in place of the lock file cannot be removed.
	require.NoError(t, os.Remove(lock.Path()))
	require.NoError(t, os.MkdirAll(filepath.Join(lock.Path(), "keep"), 0755))

	var buf bytes.Buffer
	opts := logging.DefaultOptions()
	opts.Output = &buf
	releaseLock(lock, logging.New(opts))

	assert.Contains(t, buf.String(), "failed to release plan directory lock")
	assert.Contains(t, buf.String(), plan.LockFile)
}

func TestRun_EmptyChanges(t *testing.T) {
	_, _, err := run(t, setup(t), "   ")
	assert.ErrorIs(t, err, ErrEmptyChanges)
}

func TestRun_NoCurrentVersion(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plan")
	testutil.WritePlan(t, dir, "draft.yaml", testutil.SamplePlan)

	_, _, err := run(t, plan.NewRepository(dir, ""), "x", "patch", "y")
	assert.ErrorIs(t, err, ErrNoCurrentVersion)
}

func TestRun_InvalidStrategyAnswer(t *testing.T) {
	_, _, err := run(t, setup(t), "x", "huge", "y")
	require.Error(t, err)
	assert.False(t, errors.Is(err, prompt.ErrAborted))
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(strings.ToUpper(string(s)))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("huge")
	assert.Error(t, err)
}

func assertFileCount(t *testing.T, repo *plan.Repository, want int) {
	t.Helper()
	files, err := repo.Files()
	require.NoError(t, err)
	assert.Len(t, files, want)
	_, err = os.Stat(filepath.Join(repo.Dir(), "1.11.0.yaml"))
	assert.True(t, os.IsNotExist(err))
}
