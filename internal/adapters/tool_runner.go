package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/shared"
	"devkit-builder/internal/types"
)

// ExecToolRunner runs toolchain binaries on the host.
type ExecToolRunner struct{}

func NewExecToolRunner() ExecToolRunner {
	return ExecToolRunner{}
}

func (r ExecToolRunner) Run(ctx context.Context, invocation types.ToolInvocation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(invocation.Tool) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("tool name is empty")
	}
	log.Ctx(ctx).Debug().
		Str("tool", invocation.Tool).
		Strs("args", invocation.Args).
		Msg("running tool")

	cmd := exec.CommandContext(ctx, invocation.Tool, invocation.Args...)
	cmd.Dir = invocation.Dir
	if invocation.Stdin != nil {
		cmd.Stdin = bytes.NewReader(invocation.Stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, ToolFailure(invocation, append(stderr.Bytes(), stdout.Bytes()...), err)
	}
	return stdout.Bytes(), nil
}

// ToolFailure is the error every tool runner reports for a failed
// invocation. The message names the tool; the cause keeps its output.
func ToolFailure(invocation types.ToolInvocation, output []byte, err error) error {
	tool := filepath.Base(invocation.Tool)
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s failed", tool)).
		WithCause(shared.CommandError(output, fmt.Errorf("%s %s: %w", tool, strings.Join(invocation.Args, " "), err)))
}

var _ ports.ToolRunnerPort = ExecToolRunner{}
