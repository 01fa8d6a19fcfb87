package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMRIScript(t *testing.T) {
	script, err := MRIScript("/out/lib/.libfrida-core.a.1.tmp", []string{"/usr/lib/libfrida-core.a", "/usr/lib/libglib-2.0.a"})
	require.NoError(t, err)
	want := "create /out/lib/.libfrida-core.a.1.tmp\n" +
		"addlib /usr/lib/libfrida-core.a\n" +
		"addlib /usr/lib/libglib-2.0.a\n" +
		"save\n" +
		"end\n"
	if diff := cmp.Diff(want, script); diff != "" {
		t.Fatalf("unexpected script (-want +got):\n%s", diff)
	}
}

func TestMRIScriptRejectsUnsafePaths(t *testing.T) {
	tests := []struct {
		name   string
		output string
		inputs []string
	}{
		{name: "no inputs", output: "/out/x.a"},
		{name: "space in output", output: "/my out/x.a", inputs: []string{"/l/liba.a"}},
		{name: "semicolon in input", output: "/out/x.a", inputs: []string{"/l/lib;a.a"}},
		{name: "glob in input", output: "/out/x.a", inputs: []string{"/l/*.a"}},
		{name: "newline in input", output: "/out/x.a", inputs: []string{"/l/a.a\nsave"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MRIScript(tt.output, tt.inputs)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestArArchiverAdapterPipesScript(t *testing.T) {
	runner := &recordingRunner{}
	err := NewArArchiverAdapter(runner, "").Merge(t.Context(), "/out/x.a", []string{"/l/liba.a"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "ar", runner.calls[0].Tool)
	assert.Equal(t, []string{"-M"}, runner.calls[0].Args)
	assert.Equal(t, "create /out/x.a\naddlib /l/liba.a\nsave\nend\n", string(runner.calls[0].Stdin))

	err = NewArArchiverAdapter(runner, "").Merge(t.Context(), "/out/x.a", []string{"/l/my lib.a"})
	require.Error(t, err)
	assert.Len(t, runner.calls, 1)
}
