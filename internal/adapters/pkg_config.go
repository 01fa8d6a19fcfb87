package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"mvdan.cc/sh/v3/shell"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

const pkgConfigCacheSize = 256

// PkgConfigAdapter answers package queries with pkg-config. Answers are
// cached per argument list, so concurrent builds of families that share a
// package ask pkg-config once.
type PkgConfigAdapter struct {
	Runner ports.ToolRunnerPort
	Binary string
	cache  *lru.Cache[string, string]
}

func NewPkgConfigAdapter(runner ports.ToolRunnerPort, binary string) (PkgConfigAdapter, error) {
	if strings.TrimSpace(binary) == "" {
		binary = types.DefaultToolchain().PkgConfig
	}
	cache, err := lru.New[string, string](pkgConfigCacheSize)
	if err != nil {
		return PkgConfigAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create pkg-config cache").
			WithCause(err)
	}
	return PkgConfigAdapter{Runner: runner, Binary: binary, cache: cache}, nil
}

func (a PkgConfigAdapter) CompilerFlags(ctx context.Context, pkg string) ([]string, error) {
	output, err := a.query(ctx, "--cflags", pkg)
	if err != nil {
		return nil, err
	}
	return SplitShellWords(output)
}

func (a PkgConfigAdapter) StaticLinkFlags(ctx context.Context, pkg string) ([]string, error) {
	output, err := a.query(ctx, "--static", "--libs", pkg)
	if err != nil {
		return nil, err
	}
	return SplitShellWords(output)
}

func (a PkgConfigAdapter) ModVersion(ctx context.Context, pkg string) (string, error) {
	return a.query(ctx, "--modversion", pkg)
}

func (a PkgConfigAdapter) query(ctx context.Context, args ...string) (string, error) {
	if strings.TrimSpace(args[len(args)-1]) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	key := strings.Join(args, "\x00")
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			return cached, nil
		}
	}
	output, err := a.Runner.Run(ctx, types.ToolInvocation{Tool: a.Binary, Args: args})
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(string(output))
	if a.cache != nil {
		a.cache.Add(key, answer)
	}
	return answer, nil
}

// SplitShellWords splits tool output the way a POSIX shell splits
// arguments. Variable references such as $ORIGIN in rpath flags are kept
// literally.
func SplitShellWords(text string) ([]string, error) {
	fields, err := shell.Fields(text, func(name string) string { return "$" + name })
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to split tool output").
			WithCause(err)
	}
	return fields, nil
}

var _ ports.PackageQueryPort = PkgConfigAdapter{}
