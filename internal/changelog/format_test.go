package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{name: "v prefix stripped", tag: "v1.2.0", want: "1.2.0"},
		{name: "bare version untouched", tag: "1.2.0", want: "1.2.0"},
		{name: "only first v stripped", tag: "vv2.0", want: "v2.0"},
		{name: "whitespace trimmed", tag: " v3.1.4\n", want: "3.1.4"},
		{name: "empty", tag: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VersionFromTag(tt.tag))
		})
	}
}

func TestFormatLines(t *testing.T) {
	t.Run("blank lines dropped", func(t *testing.T) {
		got := FormatLines([]string{"Fix crash", "", "   ", "Add flag"}, "")
		assert.Equal(t, []string{"Fix crash", "Add flag"}, got)
	})

	t.Run("bullet applied per line", func(t *testing.T) {
		got := FormatLines([]string{"Fix crash", "Add flag"}, "*")
		assert.Equal(t, []string{"* Fix crash", "* Add flag"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, FormatLines(nil, "*"))
	})

	t.Run("whitespace trimmed before bullet", func(t *testing.T) {
		got := FormatLines([]string{"  Fix crash  "}, "-")
		assert.Equal(t, []string{"- Fix crash"}, got)
	})
}

func TestEntryWithPlaceholder(t *testing.T) {
	t.Run("empty entry gets placeholder", func(t *testing.T) {
		e := Entry{Version: "1.2.0"}.WithPlaceholder()
		assert.Equal(t, []string{"No changes recorded"}, e.Lines)
		assert.Equal(t, "1.2.0", e.Version)
	})

	t.Run("non-empty entry unchanged", func(t *testing.T) {
		e := Entry{Version: "1.2.0", Lines: []string{"Fix crash"}}.WithPlaceholder()
		assert.Equal(t, []string{"Fix crash"}, e.Lines)
	})
}

func TestRender(t *testing.T) {
	e := Entry{Version: "2.0.0", Lines: []string{"Fix crash", "Add flag"}}
	got := Render(e)
	assert.Contains(t, got, "Version: 2.0.0")
	assert.Contains(t, got, "  Fix crash\n")
	assert.Contains(t, got, "  Add flag\n")
}
