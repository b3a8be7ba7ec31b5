package targets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nucleron/yaplc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, map[string]string{
		"nuc242/extensions.cfg":        "GRP A 1\nENDGRP",
		"nuc243/extensions.cfg":        "GRP A 1\nENDGRP",
		"vendor/board/extensions.cfg":  "GRP A 1\nENDGRP",
		"stm32/toolchain.txt":          "no template here",
		"extensions.cfg":               "ignored at the root",
		"nuc243exp/docs/readme.txt":    "",
		"nuc243exp/extensions.cfg.bak": "",
	})
}

func TestResolver_List(t *testing.T) {
	r := NewResolver(fixture(t))

	names, err := r.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"nuc242", "nuc243", "vendor/board"}, names)
}

func TestResolver_List_MissingDir(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "none"))

	_, err := r.List(context.Background())

	require.Error(t, err)
}

func TestResolver_TemplatePath(t *testing.T) {
	dir := fixture(t)
	r := NewResolver(dir)
	ctx := context.Background()

	path, err := r.TemplatePath(ctx, "nuc243")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nuc243", TemplateFile), path)

	path, err = r.TemplatePath(ctx, "vendor/board")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vendor", "board", TemplateFile), path)
}

func TestResolver_TemplatePath_Unknown(t *testing.T) {
	r := NewResolver(fixture(t))
	ctx := context.Background()

	testCases := []struct {
		name     string
		target   string
		errParts []string
	}{
		{name: "typo", target: "nuc224", errParts: []string{`unknown target "nuc224"`, "did you mean"}},
		{name: "no template", target: "stm32", errParts: []string{"target doesn't support YAPLC features"}},
		{name: "empty", target: "", errParts: []string{"no target selected"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.TemplatePath(ctx, tc.target)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownTarget))
			for _, part := range tc.errParts {
				assert.Contains(t, err.Error(), part)
			}
		})
	}
}
