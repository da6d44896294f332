package mockapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siegeai/cloudmock/mockstore"
)

func writeSpec(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadServices(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, filepath.Join(root, "compute", "resource-manager", "Microsoft.Compute", "stable", "2024-01-01", "widgets.json"), widgetSpec)
	writeSpec(t, filepath.Join(root, "compute", "resource-manager", "Microsoft.Compute", "preview", "2025-01-01", "preview.json"), duplicateSpec)
	writeSpec(t, filepath.Join(root, "network", "resource-manager", "Microsoft.Network", "stable", "2024-01-01", "dup.json"), duplicateSpec)
	writeSpec(t, filepath.Join(root, "network", "resource-manager", "Microsoft.Network", "stable", "2024-01-01", "broken.json"), `{"swagger": `)

	reg := NewRegistry(mockstore.New())
	n := reg.LoadServices(root, "compute", "networking", "storage")
	assert.Equal(t, 2, n)

	routes := reg.Routes()
	require.Len(t, routes, 2)
	for _, r := range routes {
		assert.Equal(t, "compute", r.Service)
	}
	assert.Equal(t, "Widgets_Get", routes[0].OperationID)
}

func TestLoadServicesEmptyTree(t *testing.T) {
	reg := NewRegistry(mockstore.New())
	assert.Equal(t, 0, reg.LoadServices(t.TempDir(), "compute"))
	assert.Equal(t, 0, reg.Len())
}
