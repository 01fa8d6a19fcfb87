package core

import (
	"regexp"
	"strings"

	"devkit-builder/internal/types"
)

var includePattern = regexp.MustCompile(`^#\s*include\s*[<"]([^>"]*)[>"]`)

// parseIncludeDirective recognises #include <path> and #include "path".
func parseIncludeDirective(line string) (types.IncludeDirective, bool) {
	match := includePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return types.IncludeDirective{}, false
	}
	return types.IncludeDirective{
		Line:       line,
		Path:       match[1],
		Components: types.PathComponents(match[1]),
	}, true
}

// includeIndex answers "which header in the set ends with these path
// components" without rescanning the set per directive. Keys are the
// reversed trailing components of every header at every arity; the first
// header in set order wins a key.
type includeIndex struct {
	first map[string]int
}

func newIncludeIndex(set types.HeaderSet) includeIndex {
	index := includeIndex{first: map[string]int{}}
	for i := 0; i < set.Len(); i++ {
		components := types.PathComponents(set.At(i))
		for arity := 1; arity <= len(components); arity++ {
			key := suffixKey(components[len(components)-arity:])
			if _, ok := index.first[key]; !ok {
				index.first[key] = i
			}
		}
	}
	return index
}

func (x includeIndex) lookup(components []string) (int, bool) {
	if len(components) == 0 {
		return 0, false
	}
	i, ok := x.first[suffixKey(components)]
	return i, ok
}

func suffixKey(components []string) string {
	var builder strings.Builder
	for i := len(components) - 1; i >= 0; i-- {
		builder.WriteString(components[i])
		builder.WriteByte(0)
	}
	return builder.String()
}
