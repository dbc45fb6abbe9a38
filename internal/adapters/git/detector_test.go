package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestDetect(t *testing.T) {
	dir := initRepo(t)

	ctx, ok := NewDetector().Detect(dir)
	require.True(t, ok)
	assert.Equal(t, "master", ctx.Branch)
	assert.Len(t, ctx.Commit, 7)
}

func TestDetectFromSubdirectory(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, ok := NewDetector().Detect(sub)
	assert.True(t, ok)
}

func TestDetectOutsideRepo(t *testing.T) {
	_, ok := NewDetector().Detect(t.TempDir())
	assert.False(t, ok)
}

func TestDetectEmptyRepoNoHead(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, ok := NewDetector().Detect(dir)
	assert.False(t, ok, "unborn HEAD is not a usable context")
}
