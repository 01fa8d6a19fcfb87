package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// ArArchiverAdapter merges static archives by driving `ar -M` with an MRI
// script on standard input.
type ArArchiverAdapter struct {
	Runner ports.ToolRunnerPort
	Binary string
}

func NewArArchiverAdapter(runner ports.ToolRunnerPort, binary string) ArArchiverAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = types.DefaultToolchain().AR
	}
	return ArArchiverAdapter{Runner: runner, Binary: binary}
}

func (a ArArchiverAdapter) Merge(ctx context.Context, output string, inputs []string) error {
	script, err := MRIScript(output, inputs)
	if err != nil {
		return err
	}
	_, err = a.Runner.Run(ctx, types.ToolInvocation{
		Tool:  a.Binary,
		Args:  []string{"-M"},
		Stdin: []byte(script),
	})
	return err
}

// MRIScript renders the create/addlib/save/end script for ar -M. MRI has
// no quoting, so paths that would be split or globbed are rejected.
func MRIScript(output string, inputs []string) (string, error) {
	if len(inputs) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no archives to merge")
	}
	lines := make([]string, 0, len(inputs)+3)
	if err := checkMRIPath(output); err != nil {
		return "", err
	}
	lines = append(lines, "create "+output)
	for _, input := range inputs {
		if err := checkMRIPath(input); err != nil {
			return "", err
		}
		lines = append(lines, "addlib "+input)
	}
	lines = append(lines, "save", "end")
	return strings.Join(lines, "\n") + "\n", nil
}

func checkMRIPath(path string) error {
	if path == "" || strings.ContainsAny(path, " \t\r\n;*") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("archive path cannot be used in an MRI script: %q", path))
	}
	return nil
}

var _ ports.ArchiverPort = ArArchiverAdapter{}
