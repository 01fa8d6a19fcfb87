package ports

import (
	"context"

	"devkit-builder/internal/types"
)

// ToolRunnerPort runs one external binary and returns its standard output.
// A non-zero exit is reported as an error carrying the tool's output.
type ToolRunnerPort interface {
	Run(ctx context.Context, invocation types.ToolInvocation) ([]byte, error)
}
