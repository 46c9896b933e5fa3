package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/grammargen/internal/testutil"
)

func TestFindFilesByExtension(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"Top.g4":             "grammar Top;",
		"sub/Nested.g4":      "grammar Nested;",
		"sub/deep/Leaf.g4":   "grammar Leaf;",
		"sub/readme.txt":     "not a grammar",
		"build/Generated.g4": "grammar Generated;",
	})

	t.Run("matches recursively and returns absolute paths", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".g4")
		require.NoError(t, err)
		require.Len(t, files, 4)
		for _, f := range files {
			assert.True(t, filepath.IsAbs(f), "path %q is not absolute", f)
			assert.Equal(t, ".g4", filepath.Ext(f))
		}
	})

	t.Run("skip directories are not descended into", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".g4", filepath.Join(root, "build"))
		require.NoError(t, err)
		require.Len(t, files, 3)
		for _, f := range files {
			assert.NotContains(t, f, "Generated.g4")
		}
	})

	t.Run("skip entry equal to the root does not empty the scan", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".g4", root)
		require.NoError(t, err)
		assert.Len(t, files, 4)
	})

	t.Run("empty skip entry is ignored", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".g4", "")
		require.NoError(t, err)
		assert.Len(t, files, 4)
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".proto")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing root is an error", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "no-such-dir"), ".g4")
		assert.Error(t, err)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = FindFilesByExtension(root, "")
		})
	})
}
