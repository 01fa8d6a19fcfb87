package shared

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandErrorIncludesOutput(t *testing.T) {
	base := errors.New("exit status 1")
	err := CommandError([]byte("  nm: libx.a: no such file\n"), base)
	require.ErrorIs(t, err, base)
	assert.Equal(t, "nm: libx.a: no such file: exit status 1", err.Error())
}

func TestCommandErrorWithoutOutput(t *testing.T) {
	base := errors.New("exit status 2")
	assert.Equal(t, base, CommandError(nil, base))
}

func TestDedupeOrdered(t *testing.T) {
	got := DedupeOrdered([]string{"b", "a", "b", "c", "a"})
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("unexpected dedupe (-want +got):\n%s", diff)
	}
	assert.Nil(t, DedupeOrdered(nil))
}

func TestHasAnyPrefix(t *testing.T) {
	assert.True(t, HasAnyPrefix("gum_init", []string{"frida_", "gum_"}))
	assert.False(t, HasAnyPrefix("g_free", []string{"frida_", "gum_"}))
	assert.False(t, HasAnyPrefix("g_free", nil))
}
