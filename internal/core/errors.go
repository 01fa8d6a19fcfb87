package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const inconsistentRenamePrefix = "inconsistent rename state"

func missingHeaderError(path string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("first-party header not readable: %s", path)).
		WithCause(cause)
}

func inconsistentRenameError(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s", inconsistentRenamePrefix, detail))
}

// IsInconsistentRenameState reports whether err signals a header/archive
// rename mismatch rather than an environment failure.
func IsInconsistentRenameState(err error) bool {
	if err == nil || errbuilder.CodeOf(err) != errbuilder.CodeFailedPrecondition {
		return false
	}
	return strings.Contains(err.Error(), inconsistentRenamePrefix)
}
