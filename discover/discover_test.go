package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	return path
}

func TestFilesOnlyStableJSON(t *testing.T) {
	root := t.TempDir()

	a := touch(t, root, "resource-manager", "Microsoft.Compute", "stable", "2023-01-01", "compute.json")
	b := touch(t, root, "resource-manager", "Microsoft.Compute", "stable", "2023-01-01", "examples", "get.json")
	touch(t, root, "resource-manager", "Microsoft.Compute", "preview", "2024-01-01-preview", "compute.json")
	touch(t, root, "resource-manager", "Microsoft.Compute", "stable", "2023-01-01", "readme.md")
	touch(t, root, "resource-manager", "Microsoft.Compute", "stabled", "x.json")
	touch(t, root, "resource-manager", "top.json")
	touch(t, root, "data-plane", "stable", "2023-01-01", "data.json")

	files, err := Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestFilesStableAboveResourceManagerDoesNotCount(t *testing.T) {
	root := filepath.Join(t.TempDir(), "stable", "compute")
	touch(t, root, "resource-manager", "preview", "x.json")

	files, err := Files(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesWithoutResourceManager(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "data-plane", "stable", "a.json")

	files, err := Files(root)
	assert.NoError(t, err)
	assert.Empty(t, files)

	files, err = Files(filepath.Join(root, "does-not-exist"))
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesSorted(t *testing.T) {
	root := t.TempDir()
	z := touch(t, root, "resource-manager", "stable", "z.json")
	a := touch(t, root, "resource-manager", "stable", "a.json")
	m := touch(t, root, "resource-manager", "B", "stable", "m.json")

	files, err := Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{m, a, z}, files)
}

func TestServiceDir(t *testing.T) {
	assert.Equal(t, filepath.Join("specs", "network"), ServiceDir("specs", "networking"))
	assert.Equal(t, filepath.Join("specs", "compute"), ServiceDir("specs", "compute"))
}
