package types

import (
	"path"
	"path/filepath"
	"strings"
)

// HeaderSet is the ordered list of headers transitively included by an
// umbrella header. Element 0 is always the umbrella header.
type HeaderSet struct {
	paths []string
}

// NewHeaderSet builds a HeaderSet from scanner output. The umbrella header
// is moved to the front when the scanner did not report it first, paths are
// cleaned, and repeated paths keep their first position.
func NewHeaderSet(umbrella string, scanned []string) HeaderSet {
	seen := map[string]struct{}{}
	var paths []string
	add := func(value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		cleaned := filepath.Clean(value)
		if _, ok := seen[cleaned]; ok {
			return
		}
		seen[cleaned] = struct{}{}
		paths = append(paths, cleaned)
	}
	add(umbrella)
	for _, value := range scanned {
		add(value)
	}
	return HeaderSet{paths: paths}
}

func (s HeaderSet) Len() int {
	return len(s.paths)
}

func (s HeaderSet) At(i int) string {
	return s.paths[i]
}

func (s HeaderSet) Umbrella() string {
	if len(s.paths) == 0 {
		return ""
	}
	return s.paths[0]
}

// IncludeDirective is one parsed #include line.
type IncludeDirective struct {
	Line       string
	Path       string
	Components []string
}

// PathComponents splits a header path or include spelling into its
// slash-separated components after normalisation. Absolute paths keep a
// leading "/" component so they only match other absolute spellings.
func PathComponents(value string) []string {
	cleaned := path.Clean(filepath.ToSlash(value))
	if cleaned == "." {
		return nil
	}
	var parts []string
	if strings.HasPrefix(cleaned, "/") {
		parts = append(parts, "/")
		cleaned = strings.TrimPrefix(cleaned, "/")
		if cleaned == "" {
			return parts
		}
	}
	return append(parts, strings.Split(cleaned, "/")...)
}
