package tempfiles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/docling/internal/common"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "docling"), common.GetLogger())
}

func TestJobDirCreation(t *testing.T) {
	m := newTestManager(t)

	dir, err := m.JobDir("abc123")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "job_abc123", filepath.Base(dir))
}

func TestCleanupJob(t *testing.T) {
	m := newTestManager(t)

	dir, err := m.JobDir("abc123")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o644))

	assert.True(t, m.CleanupJob("abc123", "trace-1"))

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupJobMissingDir(t *testing.T) {
	m := newTestManager(t)
	assert.True(t, m.CleanupJob("never-existed", ""))
}

func TestCleanupOrphans(t *testing.T) {
	m := newTestManager(t)

	oldDir, err := m.JobDir("old")
	require.NoError(t, err)
	freshDir, err := m.JobDir("fresh")
	require.NoError(t, err)

	// Unrelated entries in the temp root are left alone
	base, err := m.Dir()
	require.NoError(t, err)
	otherDir := filepath.Join(base, "unrelated")
	require.NoError(t, os.MkdirAll(otherDir, 0o755))

	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldDir, stale, stale))
	require.NoError(t, os.Chtimes(otherDir, stale, stale))

	cleaned := m.CleanupOrphans(OrphanAge)
	assert.Equal(t, 1, cleaned)

	_, err = os.Stat(oldDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshDir)
	assert.NoError(t, err)
	_, err = os.Stat(otherDir)
	assert.NoError(t, err)
}

func TestCleanupOrphansMissingRoot(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "never-created"), common.GetLogger())
	assert.Equal(t, 0, m.CleanupOrphans(OrphanAge))
}

func TestGetStats(t *testing.T) {
	m := newTestManager(t)

	dir, err := m.JobDir("abc")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.bin"), []byte("12345"), 0o644))

	stats := m.GetStats()
	assert.True(t, stats.Exists)
	assert.Equal(t, 1, stats.JobCount)
	assert.Equal(t, int64(5), stats.SizeBytes)
}
