package workflow

import (
	"context"
	"time"

	"github.com/ariel-frischer/dchw/internal/git"
	"github.com/ariel-frischer/dchw/internal/testutil"
)

// fakeRepo is a scripted GitQueries implementation.
type fakeRepo struct {
	identity    git.Identity
	identityErr error
	status      git.WorktreeStatus
	statusErr   error
	tag         string
	tagErr      error
	subjects    []string
	subjectsErr error

	subjectsCalled bool
	subjectsArg    string
}

func (f *fakeRepo) UserIdentity() (git.Identity, error) {
	return f.identity, f.identityErr
}

func (f *fakeRepo) Status(changelogPath string) (git.WorktreeStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeRepo) LatestTag() (string, error) {
	return f.tag, f.tagErr
}

func (f *fakeRepo) SubjectsSince(tag string) ([]string, error) {
	f.subjectsCalled = true
	f.subjectsArg = tag
	return f.subjects, f.subjectsErr
}

// mockExecutor records executor calls instead of running dch.
type mockExecutor struct {
	records   []testutil.CallRecord
	appendErr error
	editErr   error
}

func (m *mockExecutor) Append(ctx context.Context, version, line string) error {
	rec := testutil.CallRecord{Method: "append", Version: version, Line: line, Timestamp: time.Now()}
	if m.appendErr != nil {
		rec.Error = m.appendErr.Error()
	}
	m.records = append(m.records, rec)
	return m.appendErr
}

func (m *mockExecutor) Edit(ctx context.Context) error {
	rec := testutil.CallRecord{Method: "edit", Timestamp: time.Now()}
	if m.editErr != nil {
		rec.Error = m.editErr.Error()
	}
	m.records = append(m.records, rec)
	return m.editErr
}

func (m *mockExecutor) FormatAppend(version, line string) string {
	return "dch -v " + version + " -a " + line
}

func (m *mockExecutor) FormatEdit() string {
	return "dch -e"
}

// methods returns the recorded call methods in order.
func (m *mockExecutor) methods() []string {
	var out []string
	for _, r := range m.records {
		out = append(out, r.Method)
	}
	return out
}

// scriptedPrompter answers prompts without a terminal.
type scriptedPrompter struct {
	confirmAnswer  bool
	confirmCalled  bool
	versionAnswer  string
	versionCalled  bool
	versionDefault string
}

func (p *scriptedPrompter) Confirm(question string) (bool, error) {
	p.confirmCalled = true
	return p.confirmAnswer, nil
}

func (p *scriptedPrompter) AskVersion(def string) (string, error) {
	p.versionCalled = true
	p.versionDefault = def
	if p.versionAnswer == "" {
		return def, nil
	}
	return p.versionAnswer, nil
}
