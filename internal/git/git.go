// Package git provides Git repository queries for dchw: user identity,
// worktree status, latest reachable tag, and commit subjects since a tag.
// It uses the go-git library exclusively, so no git CLI is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrNoTag is returned when no tag is reachable from HEAD.
var ErrNoTag = errors.New("no tag reachable from HEAD")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// Repo wraps a go-git repository and exposes the queries dchw needs.
// The zero value is not usable; construct with Open.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path ("" = current directory).
func Open(path string) (*Repo, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return &Repo{repo: repo}, nil
}

// IsRepository checks if path ("" = current directory) is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// Identity is a git author identity.
type Identity struct {
	Name  string
	Email string
}

// UserIdentity returns the configured user name and email, merged across
// local, global and system git configuration. Missing values come back empty;
// the caller decides the fallback.
func (r *Repo) UserIdentity() (Identity, error) {
	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return Identity{}, fmt.Errorf("reading git configuration: %w", err)
	}

	id := Identity{
		Name:  strings.TrimSpace(cfg.User.Name),
		Email: strings.TrimSpace(cfg.User.Email),
	}
	logDebug("[git] UserIdentity: name=%q email=%q", id.Name, id.Email)
	return id, nil
}

// FileStatus is a single dirty path with its porcelain-style status code.
type FileStatus struct {
	Code string // two-letter porcelain code, e.g. " M", "??"
	Path string
}

// WorktreeStatus summarizes the cleanliness of the working tree relative to
// a guarded changelog path.
type WorktreeStatus struct {
	// ChangelogDirty is true when the guarded changelog file itself has
	// uncommitted changes. Appending on top of those risks an ambiguous merge.
	ChangelogDirty bool
	// Dirty lists all modified, staged and untracked paths.
	Dirty []FileStatus
}

// Clean reports whether the working tree has no uncommitted changes.
func (s WorktreeStatus) Clean() bool {
	return len(s.Dirty) == 0
}

// Status returns the worktree status, classifying the given changelog path.
// The changelog path is compared with filepath slashes, as go-git reports.
func (r *Repo) Status(changelogPath string) (WorktreeStatus, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return WorktreeStatus{}, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return WorktreeStatus{}, fmt.Errorf("getting worktree status: %w", err)
	}

	changelogPath = strings.TrimPrefix(changelogPath, "./")

	var ws WorktreeStatus
	for path, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		ws.Dirty = append(ws.Dirty, FileStatus{
			Code: string(fs.Staging) + string(fs.Worktree),
			Path: path,
		})
		if path == changelogPath {
			ws.ChangelogDirty = true
		}
	}

	sort.Slice(ws.Dirty, func(i, j int) bool {
		return ws.Dirty[i].Path < ws.Dirty[j].Path
	})

	logDebug("[git] Status: %d dirty paths, changelog dirty: %v", len(ws.Dirty), ws.ChangelogDirty)
	return ws, nil
}

// LatestTag returns the name of the most recent tag reachable from HEAD,
// found by walking HEAD history against the full tag set. Annotated tags are
// resolved to their target commits. Returns ErrNoTag when nothing matches.
func (r *Repo) LatestTag() (string, error) {
	tagsByCommit, err := r.tagsByCommit()
	if err != nil {
		return "", err
	}
	if len(tagsByCommit) == 0 {
		return "", ErrNoTag
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("walking history from HEAD: %w", err)
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(c *object.Commit) error {
		if tag, ok := tagsByCommit[c.Hash]; ok {
			found = tag
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history from HEAD: %w", err)
	}

	if found == "" {
		return "", ErrNoTag
	}
	logDebug("[git] LatestTag: %s", found)
	return found, nil
}

// tagsByCommit maps target commit hashes to tag names.
// When multiple tags point at the same commit, the lexicographically greatest
// name wins, which prefers the higher version for conventional v-prefixed tags.
func (r *Repo) tagsByCommit() (map[plumbing.Hash]string, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	byCommit := make(map[plumbing.Hash]string)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		hash := ref.Hash()

		// Annotated tags point at a tag object, not the commit.
		if tagObj, terr := r.repo.TagObject(hash); terr == nil {
			hash = tagObj.Target
		}

		if existing, ok := byCommit[hash]; !ok || name > existing {
			byCommit[hash] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return byCommit, nil
}

// SubjectsSince returns the subject lines of commits reachable from HEAD but
// not from the given tag (exclusive), newest first. Merge commits and blank
// subjects are skipped. An empty tag returns subjects for the full history.
func (r *Repo) SubjectsSince(tag string) ([]string, error) {
	var stopAt plumbing.Hash
	if tag != "" {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(tag))
		if err != nil {
			return nil, fmt.Errorf("resolving tag %s: %w", tag, err)
		}
		stopAt = *hash
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walking history from HEAD: %w", err)
	}
	defer iter.Close()

	var subjects []string
	err = iter.ForEach(func(c *object.Commit) error {
		if tag != "" && c.Hash == stopAt {
			return storer.ErrStop
		}
		if c.NumParents() > 1 {
			return nil
		}
		subject := strings.TrimSpace(strings.SplitN(c.Message, "\n", 2)[0])
		if subject == "" {
			return nil
		}
		subjects = append(subjects, subject)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting commit subjects: %w", err)
	}

	logDebug("[git] SubjectsSince(%q): %d subjects", tag, len(subjects))
	return subjects, nil
}
