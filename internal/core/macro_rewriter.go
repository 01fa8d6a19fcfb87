package core

import (
	"fmt"
	"regexp"
	"strings"

	"devkit-builder/internal/types"
)

// RewritePublicMacros renames, in place, every macro definition whose name
// is a public original. The defined name and each word-boundary occurrence
// of the original inside the macro body, continuation lines included,
// become the namespaced name. Every public entry must exist in mapping with
// the same replacement.
//
// This is a textual transform over #define lines, not a preprocessor.
func RewritePublicMacros(header string, public types.RenameMapping, mapping types.RenameMapping) (string, error) {
	if err := CheckPublicSubset(mapping, public); err != nil {
		return "", err
	}
	defined := definedMacroNames(header)
	for _, entry := range public.Entries {
		if _, ok := defined[entry.Original]; !ok {
			continue
		}
		quoted := regexp.QuoteMeta(entry.Original)
		definition := regexp.MustCompile(`(?m)^[ \t]*#[ \t]*define[ \t]+` + quoted + `\b(?:.*\\\r?\n)*.*$`)
		word := regexp.MustCompile(`\b` + quoted + `\b`)
		header = definition.ReplaceAllStringFunc(header, func(macro string) string {
			return word.ReplaceAllLiteralString(macro, entry.Renamed)
		})
		if definition.MatchString(header) {
			return "", inconsistentRenameError(fmt.Sprintf("macro %s still defined after rename to %s", entry.Original, entry.Renamed))
		}
	}
	return header, nil
}

var macroNamePattern = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*define[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)

func definedMacroNames(header string) map[string]struct{} {
	names := map[string]struct{}{}
	for _, match := range macroNamePattern.FindAllStringSubmatch(header, -1) {
		names[match[1]] = struct{}{}
	}
	return names
}

// MappingBlock renders the include-guarded block that re-exposes every
// public original under its namespaced symbol.
func MappingBlock(guard string, public types.RenameMapping) string {
	if public.IsEmpty() {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("#ifndef ")
	builder.WriteString(guard)
	builder.WriteString("\n#define ")
	builder.WriteString(guard)
	builder.WriteString("\n\n")
	for _, entry := range public.Entries {
		builder.WriteString("#define ")
		builder.WriteString(entry.Original)
		builder.WriteString(" ")
		builder.WriteString(entry.Renamed)
		builder.WriteString("\n")
	}
	builder.WriteString("\n#endif\n\n")
	return builder.String()
}

// CheckPublicSubset verifies that public is a subset of mapping with
// identical replacements.
func CheckPublicSubset(mapping types.RenameMapping, public types.RenameMapping) error {
	index := mapping.Index()
	for _, entry := range public.Entries {
		renamed, ok := index[entry.Original]
		if !ok {
			return inconsistentRenameError(fmt.Sprintf("public symbol %s has no archive rename", entry.Original))
		}
		if renamed != entry.Renamed {
			return inconsistentRenameError(fmt.Sprintf("public symbol %s renamed to %s but archive uses %s", entry.Original, entry.Renamed, renamed))
		}
	}
	return nil
}
