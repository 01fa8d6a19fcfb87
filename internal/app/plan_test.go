package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devkit-builder/internal/types"
)

func TestPlanDoesNotEditArchive(t *testing.T) {
	fx := newFixture(t, gumFamily())

	result, err := fx.service.Plan(t.Context(), PlanRequest{Kit: "frida-gum", ArchivePath: "/sdk/lib/libfrida-gum.a"})
	require.NoError(t, err)
	want := types.RenameMapping{Entries: []types.SymbolRename{
		{Original: "ffi_call", Renamed: "_frida_ffi_call"},
		{Original: "json_parse", Renamed: "_frida_json_parse"},
	}}
	if diff := cmp.Diff(want, result.Mapping); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, result.Public.Len())
	assert.Equal(t, "frida-gum", result.Family)
	assert.Zero(t, fx.editor.calls)
}

func TestPlanErrors(t *testing.T) {
	plain := gumFamily()
	plain.Name = "plain"
	plain.Namespace, plain.OwnPrefixes, plain.PublicPrefixes, plain.MappingGuard = "", nil, nil, ""
	fx := newFixture(t, gumFamily(), plain)

	_, err := fx.service.Plan(t.Context(), PlanRequest{Kit: "frida-gum"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = fx.service.Plan(t.Context(), PlanRequest{Kit: "plain", ArchivePath: "x.a"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}
