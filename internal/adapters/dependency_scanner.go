package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// DependencyScanAdapter asks the C compiler for the make-style dependency
// rule of an umbrella header (cc -E -M) and returns its prerequisites.
type DependencyScanAdapter struct {
	Runner   ports.ToolRunnerPort
	Compiler string
}

func NewDependencyScanAdapter(runner ports.ToolRunnerPort, compiler string) DependencyScanAdapter {
	if strings.TrimSpace(compiler) == "" {
		compiler = types.DefaultToolchain().CC
	}
	return DependencyScanAdapter{Runner: runner, Compiler: compiler}
}

func (a DependencyScanAdapter) ScanHeaders(ctx context.Context, cflags []string, umbrella string) ([]string, error) {
	if strings.TrimSpace(umbrella) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("umbrella header is empty")
	}
	args := append(append([]string(nil), cflags...), "-E", "-M", umbrella)
	output, err := a.Runner.Run(ctx, types.ToolInvocation{Tool: a.Compiler, Args: args})
	if err != nil {
		return nil, err
	}
	return ParseDependencyRule(string(output))
}

// ParseDependencyRule returns the prerequisites of the first rule in make
// dependency output, dropping the target and empty entries.
func ParseDependencyRule(rule string) ([]string, error) {
	joined := strings.NewReplacer("\\\r\n", " ", "\\\n", " ").Replace(rule)
	line, _, _ := strings.Cut(joined, "\n")
	words, err := SplitShellWords(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	var prerequisites []string
	targetSeen := false
	for _, word := range words {
		if !targetSeen {
			if strings.HasSuffix(word, ":") {
				targetSeen = true
			}
			continue
		}
		if strings.TrimSpace(word) == "" {
			continue
		}
		prerequisites = append(prerequisites, word)
	}
	if !targetSeen {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("dependency scan produced no rule")
	}
	return prerequisites, nil
}

var _ ports.DependencyScanPort = DependencyScanAdapter{}
