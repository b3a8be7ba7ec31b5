package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/nucleron/yaplc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByName(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"b/extensions.cfg":        "GRP A 1\nENDGRP",
		"a/extensions.cfg":        "GRP A 1\nENDGRP",
		"a/nested/extensions.cfg": "GRP A 1\nENDGRP",
		"c/other.cfg":             "",
	})

	files, err := FindFilesByName(root, "extensions.cfg")

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "extensions.cfg"),
		filepath.Join(root, "a", "nested", "extensions.cfg"),
		filepath.Join(root, "b", "extensions.cfg"),
	}, files)
}

func TestFindFilesByName_MissingRoot(t *testing.T) {
	_, err := FindFilesByName(filepath.Join(t.TempDir(), "nope"), "extensions.cfg")
	require.Error(t, err)
}

func TestFindFilesByName_EmptyNamePanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByName(t.TempDir(), "") })
}
