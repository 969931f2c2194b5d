// Package changelog models the transient changelog entry dchw derives from
// git history and hands to dch. The changelog file itself is owned by dch;
// nothing here is persisted.
package changelog

// Entry is a single derived changelog entry: a version and the change lines
// to append under it.
type Entry struct {
	// Version without any leading "v", e.g. "1.2.0".
	Version string
	// Lines are the individual change descriptions, one dch -a call each.
	Lines []string
}

// Empty reports whether no change lines were derived.
func (e Entry) Empty() bool {
	return len(e.Lines) == 0
}

// placeholderLine is appended when history yields no changes so the dch
// invocation still has a line to record.
const placeholderLine = "No changes recorded"

// WithPlaceholder returns the entry, substituting a placeholder line when no
// changes were derived.
func (e Entry) WithPlaceholder() Entry {
	if e.Empty() {
		return Entry{Version: e.Version, Lines: []string{placeholderLine}}
	}
	return e
}
