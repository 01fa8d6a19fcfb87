package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// HeaderResolver flattens an umbrella header and its first-party includes
// into a single header text.
type HeaderResolver struct {
	Source ports.HeaderSourcePort
}

// HeaderOptions carries the optional parts of the devkit header.
type HeaderOptions struct {
	Preamble     string
	Public       types.RenameMapping
	Mapping      types.RenameMapping
	MappingGuard string
}

func NewHeaderResolver(source ports.HeaderSourcePort) HeaderResolver {
	return HeaderResolver{Source: source}
}

// Resolve inlines every first-party header reachable from set.Umbrella()
// exactly once, in depth-first pre-order, and leaves foreign includes as
// written. When opts.Public is non-empty the public renames are applied to
// macro definitions and forwarded in a guarded block after the preamble.
func (r HeaderResolver) Resolve(ctx context.Context, set types.HeaderSet, opts HeaderOptions) (string, error) {
	if !opts.Public.IsEmpty() && opts.MappingGuard == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("public renames need a mapping guard")
	}
	if set.Len() == 0 {
		return opts.Preamble, nil
	}
	walk := closureWalk{
		source:    r.Source,
		set:       set,
		index:     newIncludeIndex(set),
		processed: map[int]struct{}{0: {}},
	}
	if err := walk.ingest(0); err != nil {
		return "", err
	}
	log.Ctx(ctx).Debug().
		Str("umbrella", set.Umbrella()).
		Int("headers", set.Len()).
		Int("inlined", len(walk.processed)).
		Int("foreign", walk.foreign).
		Msg("header closure resolved")

	body := walk.out.String()
	if opts.Public.IsEmpty() {
		return opts.Preamble + body, nil
	}
	rewritten, err := RewritePublicMacros(body, opts.Public, opts.Mapping)
	if err != nil {
		return "", err
	}
	return opts.Preamble + MappingBlock(opts.MappingGuard, opts.Public) + rewritten, nil
}

// closureWalk is the state of one Resolve call; it is never shared.
type closureWalk struct {
	source    ports.HeaderSourcePort
	set       types.HeaderSet
	index     includeIndex
	processed map[int]struct{}
	foreign   int
	out       strings.Builder
}

func (w *closureWalk) ingest(i int) error {
	path := w.set.At(i)
	content, err := w.source.ReadHeader(path)
	if err != nil {
		return missingHeaderError(path, err)
	}
	for _, line := range strings.SplitAfter(string(content), "\n") {
		if line == "" {
			continue
		}
		directive, ok := parseIncludeDirective(line)
		if !ok {
			w.out.WriteString(line)
			continue
		}
		target, found := w.index.lookup(directive.Components)
		if !found {
			w.foreign++
			w.out.WriteString(line)
			continue
		}
		if _, done := w.processed[target]; done {
			continue
		}
		w.processed[target] = struct{}{}
		if err := w.ingest(target); err != nil {
			return err
		}
	}
	return nil
}
