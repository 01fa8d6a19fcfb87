package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderFileAdapterReadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gum.h")
	require.NoError(t, os.WriteFile(path, []byte("#include <glib.h>\n"), 0o644))

	got, err := NewHeaderFileAdapter().ReadHeader(path)
	require.NoError(t, err)
	require.Equal(t, "#include <glib.h>\n", string(got))

	_, err = NewHeaderFileAdapter().ReadHeader(filepath.Join(dir, "missing.h"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
