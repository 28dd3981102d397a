package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, CodeFailure, ExitCodeOf(cause))
	assert.Equal(t, CodeParse, ExitCodeOf(Wrap(CodeParse, "parse", cause)))
	assert.Equal(t, CodeUsage, ExitCodeOf(fmt.Errorf("outer: %w", Usage(cause))))
	assert.Equal(t, CodeFailure, ExitCodeOf(New(0, "zero is not an error code")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeGit, "running git", cause)

	assert.Equal(t, "running git: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", Wrap(CodeGit, "plain", nil).Error())
}
