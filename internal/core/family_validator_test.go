package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devkit-builder/internal/types"
)

func validFamily() types.Family {
	return types.Family{
		Name:           "frida-gum",
		UmbrellaHeader: "frida-1.0/gum/gum.h",
		StaticDefine:   "GUM_STATIC",
		Namespace:      "_frida_",
		OwnPrefixes:    []string{"frida_", "_frida_", "gum_"},
		PublicPrefixes: []string{"g_", "json_"},
		MappingGuard:   "__FRIDA_SYMBOL_MAPPINGS__",
	}
}

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Family)
		wantErr bool
	}{
		{name: "valid", mutate: func(f *types.Family) {}},
		{name: "no renaming", mutate: func(f *types.Family) {
			f.Namespace, f.OwnPrefixes, f.PublicPrefixes, f.MappingGuard = "", nil, nil, ""
		}},
		{name: "missing name", mutate: func(f *types.Family) { f.Name = "" }, wantErr: true},
		{name: "name with slash", mutate: func(f *types.Family) { f.Name = "frida/gum" }, wantErr: true},
		{name: "missing umbrella", mutate: func(f *types.Family) { f.UmbrellaHeader = "" }, wantErr: true},
		{name: "absolute umbrella", mutate: func(f *types.Family) { f.UmbrellaHeader = "/usr/include/gum.h" }, wantErr: true},
		{name: "bad static define", mutate: func(f *types.Family) { f.StaticDefine = "GUM-STATIC" }, wantErr: true},
		{name: "bad namespace", mutate: func(f *types.Family) { f.Namespace = "1frida" }, wantErr: true},
		{name: "own prefixes without namespace", mutate: func(f *types.Family) { f.Namespace = "" }, wantErr: true},
		{name: "namespace without guard", mutate: func(f *types.Family) { f.MappingGuard = "" }, wantErr: true},
		{name: "namespace without own prefixes", mutate: func(f *types.Family) { f.OwnPrefixes = nil }, wantErr: true},
		{name: "namespace not an own prefix", mutate: func(f *types.Family) { f.OwnPrefixes = []string{"frida_", "gum_"} }, wantErr: true},
		{name: "empty prefix", mutate: func(f *types.Family) { f.PublicPrefixes = []string{"g_", ""} }, wantErr: true},
		{name: "overlapping prefix", mutate: func(f *types.Family) { f.PublicPrefixes = []string{"gum_"} }, wantErr: true},
	}

	validator := NewFamilyValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			family := validFamily()
			tt.mutate(&family)
			err := validator.ValidateFamily(t.Context(), family)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateFamilies(t *testing.T) {
	validator := NewFamilyValidator()

	err := validator.ValidateFamilies(t.Context(), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	core := validFamily()
	core.Name = "frida-core"
	require.NoError(t, validator.ValidateFamilies(t.Context(), []types.Family{validFamily(), core}))

	err = validator.ValidateFamilies(t.Context(), []types.Family{validFamily(), validFamily()})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
}

func TestFindFamily(t *testing.T) {
	families := []types.Family{validFamily()}

	got, err := FindFamily(families, "frida-gum")
	require.NoError(t, err)
	assert.Equal(t, "frida-gum-1.0", got.PackageName())

	_, err = FindFamily(families, "frida-core")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
