package workflow

import (
	"errors"

	"github.com/ariel-frischer/dchw/internal/git"
)

var errNoRepository = errors.New("not a git repository")

// NoRepo satisfies GitQueries when no repository surrounds the working
// directory. Every query fails, which the pipeline recovers from with
// fallback values: placeholder identity, default version, placeholder
// change line, and a skipped cleanliness check.
type NoRepo struct{}

func (NoRepo) UserIdentity() (git.Identity, error) {
	return git.Identity{}, errNoRepository
}

func (NoRepo) Status(string) (git.WorktreeStatus, error) {
	return git.WorktreeStatus{}, errNoRepository
}

func (NoRepo) LatestTag() (string, error) {
	return "", git.ErrNoTag
}

func (NoRepo) SubjectsSince(string) ([]string, error) {
	return nil, errNoRepository
}
