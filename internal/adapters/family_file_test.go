package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devkit-builder/internal/types"
)

func TestFamilyFileAdapterDefaults(t *testing.T) {
	families, err := NewFamilyFileAdapter().LoadFamilies("")
	require.NoError(t, err)
	require.Len(t, families, 3)

	var names []string
	for _, family := range families {
		names = append(names, family.Name)
		assert.Equal(t, "_frida_", family.Namespace)
		assert.Equal(t, "__FRIDA_SYMBOL_MAPPINGS__", family.MappingGuard)
		assert.Contains(t, family.OwnPrefixes, "gum_")
		assert.Contains(t, family.PublicPrefixes, "json_")
	}
	assert.Equal(t, []string{"frida-core", "frida-gum", "frida-gumjs"}, names)
	assert.Equal(t, "GUM_STATIC", families[1].StaticDefine)
	assert.Equal(t, "frida-1.0/gum/gum.h", families[1].UmbrellaHeader)
	assert.Equal(t, "frida-gumjs-1.0", families[2].PackageName())
}

func TestFamilyFileAdapterDefaultPreambles(t *testing.T) {
	families, err := NewFamilyFileAdapter().LoadFamilies("")
	require.NoError(t, err)

	gumStatic := "#ifndef GUM_STATIC\n# define GUM_STATIC\n#endif\n\n"
	want := map[string]string{
		"frida-core":  "",
		"frida-gum":   gumStatic,
		"frida-gumjs": gumStatic,
	}
	got := map[string]string{}
	for _, family := range families {
		got[family.Name] = family.Preamble()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected preambles (-want +got):\n%s", diff)
	}
}

func TestFamilyFileAdapterFormats(t *testing.T) {
	want := []types.Family{{
		Name:           "zlib-kit",
		Package:        "zlib",
		UmbrellaHeader: "zlib.h",
		Namespace:      "_kit_",
		OwnPrefixes:    []string{"kit_"},
		PublicPrefixes: []string{"deflate", "inflate"},
		MappingGuard:   "__KIT_MAPPINGS__",
		MinVersion:     "1.2.11",
	}}

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "families.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`families:
  - name: zlib-kit
    package: zlib
    umbrella_header: zlib.h
    namespace: _kit_
    own_prefixes: [kit_]
    public_prefixes: [deflate, inflate]
    mapping_guard: __KIT_MAPPINGS__
    min_version: "1.2.11"
`), 0644))
	tomlPath := filepath.Join(dir, "families.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`[[families]]
name = "zlib-kit"
package = "zlib"
umbrella_header = "zlib.h"
namespace = "_kit_"
own_prefixes = ["kit_"]
public_prefixes = ["deflate", "inflate"]
mapping_guard = "__KIT_MAPPINGS__"
min_version = "1.2.11"
`), 0644))

	for _, path := range []string{yamlPath, tomlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := NewFamilyFileAdapter().LoadFamilies(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected families (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFamilyFileAdapterErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFamilyFileAdapter().LoadFamilies(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[[families]\nname = "), 0644))
	_, err = NewFamilyFileAdapter().LoadFamilies(broken)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
