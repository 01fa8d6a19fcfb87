package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devkit-builder/internal/adapters"
)

func TestValidateDefaultFamilies(t *testing.T) {
	service := Service{Families: adapters.NewFamilyFileAdapter()}

	result, err := service.Validate(t.Context(), ValidateRequest{})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"frida-core", "frida-gum", "frida-gumjs"}, result.Families); diff != "" {
		t.Fatalf("unexpected families (-want +got):\n%s", diff)
	}
}

func TestValidateRejectsBadFamilyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "families.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`families:
  - name: kit
    umbrella_header: kit.h
    namespace: _kit_
    own_prefixes: [kit_]
    public_prefixes: [kit_]
    mapping_guard: KIT_MAPPINGS
`), 0644))
	service := Service{Families: adapters.NewFamilyFileAdapter()}

	_, err := service.Validate(t.Context(), ValidateRequest{FamilyFile: path})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
