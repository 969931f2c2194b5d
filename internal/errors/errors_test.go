package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Prerequisite Error", Prerequisite.String())
	assert.Equal(t, "Cancelled", Cancelled.String())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, Runtime))

	err := Wrap(fmt.Errorf("boom"), Runtime, "try again")
	require.NotNil(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, Runtime, err.Category)
	assert.Equal(t, []string{"try again"}, err.Remediation)
}

func TestWrapWithMessage(t *testing.T) {
	err := WrapWithMessage(fmt.Errorf("boom"), Configuration, "loading config")
	require.NotNil(t, err)
	assert.Equal(t, "loading config: boom", err.Error())
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(CancelledByUser()))
	assert.False(t, IsCancelled(NewRuntimeError("boom")))
	assert.False(t, IsCancelled(fmt.Errorf("plain")))
	assert.False(t, IsCancelled(nil))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewPrerequisiteError("missing")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(fmt.Errorf("plain")))
}

func TestFormatErrorPlain(t *testing.T) {
	err := &CLIError{
		Category:    Prerequisite,
		Message:     "dch command not found",
		Remediation: []string{"install devscripts"},
	}

	got := FormatErrorPlain(err)
	assert.Contains(t, got, "Error [Prerequisite Error]: dch command not found")
	assert.Contains(t, got, "To fix this:")
	assert.Contains(t, got, "  • install devscripts")
}

func TestFormatErrorPlain_Usage(t *testing.T) {
	err := NewArgumentError("accepts at most 1 message argument", "Quote the message")
	err.Usage = "dchw [message] [flags]"

	got := FormatErrorPlain(err)
	assert.Contains(t, got, "Usage: dchw [message] [flags]")
	assert.Contains(t, got, "  • Quote the message")
}

func TestFormatErrorPlain_Cancelled(t *testing.T) {
	got := FormatErrorPlain(CancelledByUser())
	assert.Equal(t, "operation cancelled by user\n", got)
}

func TestDchNotFoundMessage(t *testing.T) {
	err := DchNotFound()
	assert.Equal(t, Prerequisite, err.Category)
	assert.NotEmpty(t, err.Remediation)
}
