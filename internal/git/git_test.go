package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates an empty repository in a temp directory.
func initRepo(t *testing.T) (*gogit.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

// commitFile writes a file and commits it, returning the commit hash.
func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content, msg string) plumbing.Hash {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func openTestRepo(t *testing.T, dir string) *Repo {
	t.Helper()
	r, err := Open(dir)
	require.NoError(t, err)
	return r
}

func TestIsRepository(t *testing.T) {
	_, dir := initRepo(t)
	assert.True(t, IsRepository(dir))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestLatestTag_NoTag(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "a", "Initial commit")

	_, err := openTestRepo(t, dir).LatestTag()
	assert.ErrorIs(t, err, ErrNoTag)
}

func TestLatestTag_LightweightAtHead(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	_, err := repo.CreateTag("v1.2.0", hash, nil)
	require.NoError(t, err)

	tag, err := openTestRepo(t, dir).LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", tag)
}

func TestLatestTag_AnnotatedResolvesToTarget(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	_, err := repo.CreateTag("v2.0.0", hash, &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
		Message: "release 2.0.0",
	})
	require.NoError(t, err)

	tag, err := openTestRepo(t, dir).LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", tag)
}

func TestLatestTag_FindsNearestReachable(t *testing.T) {
	repo, dir := initRepo(t)
	first := commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	_, err := repo.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)

	commitFile(t, repo, dir, "b.txt", "b", "Fix crash")
	commitFile(t, repo, dir, "c.txt", "c", "Add flag")

	tag, err := openTestRepo(t, dir).LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", tag)
}

func TestSubjectsSince_FullHistoryWithoutTag(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	commitFile(t, repo, dir, "b.txt", "b", "Fix crash")

	subjects, err := openTestRepo(t, dir).SubjectsSince("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fix crash", "Initial commit"}, subjects)
}

func TestSubjectsSince_TagAtHeadYieldsNothing(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	_, err := repo.CreateTag("v1.2.0", hash, nil)
	require.NoError(t, err)

	subjects, err := openTestRepo(t, dir).SubjectsSince("v1.2.0")
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestSubjectsSince_StopsAtTag(t *testing.T) {
	repo, dir := initRepo(t)
	first := commitFile(t, repo, dir, "a.txt", "a", "Initial commit")
	_, err := repo.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)

	commitFile(t, repo, dir, "b.txt", "b", "Fix crash")
	commitFile(t, repo, dir, "c.txt", "c", "Add flag")

	subjects, err := openTestRepo(t, dir).SubjectsSince("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"Add flag", "Fix crash"}, subjects)
}

func TestStatus_CleanWorktree(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "debian/changelog", "entry", "Initial commit")

	status, err := openTestRepo(t, dir).Status("debian/changelog")
	require.NoError(t, err)
	assert.True(t, status.Clean())
	assert.False(t, status.ChangelogDirty)
}

func TestStatus_DirtyChangelog(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "debian/changelog", "entry", "Initial commit")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debian/changelog"), []byte("edited"), 0o644))

	status, err := openTestRepo(t, dir).Status("debian/changelog")
	require.NoError(t, err)
	assert.False(t, status.Clean())
	assert.True(t, status.ChangelogDirty)
}

func TestStatus_DirtyOtherFile(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "debian/changelog", "entry", "Initial commit")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("new"), 0o644))

	status, err := openTestRepo(t, dir).Status("debian/changelog")
	require.NoError(t, err)
	assert.False(t, status.Clean())
	assert.False(t, status.ChangelogDirty)
	require.Len(t, status.Dirty, 1)
	assert.Equal(t, "other.txt", status.Dirty[0].Path)
}

func TestUserIdentity_FromLocalConfig(t *testing.T) {
	repo, dir := initRepo(t)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Alice Example"
	cfg.User.Email = "alice@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	id, err := openTestRepo(t, dir).UserIdentity()
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", id.Name)
	assert.Equal(t, "alice@example.com", id.Email)
}
