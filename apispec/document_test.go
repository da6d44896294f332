package apispec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modernDoc = `{
  "openapi": "3.0.0",
  "paths": {},
  "components": {"schemas": {
    "Widget": {"type": "object", "properties": {"name": {"type": "string"}}},
    "Deep": {"$ref": "#/components/schemas/Widget"}
  }}
}`

const legacyDoc = `{
  "swagger": "2.0",
  "paths": {},
  "definitions": {
    "Widget": {"type": "object", "properties": {"name": {"type": "string"}}}
  }
}`

func TestDetectDialect(t *testing.T) {
	doc, err := Parse("modern.json", []byte(modernDoc))
	require.NoError(t, err)
	assert.Equal(t, DialectModern, doc.Dialect)
	assert.Equal(t, "#/components/schemas/", doc.Dialect.ComponentPrefix())

	doc, err = Parse("legacy.json", []byte(legacyDoc))
	require.NoError(t, err)
	assert.Equal(t, DialectLegacy, doc.Dialect)
	assert.Equal(t, "#/definitions/", doc.Dialect.ComponentPrefix())

	doc, err = Parse("both.json", []byte(`{"swagger": "2.0", "openapi": "3.0.1"}`))
	require.NoError(t, err)
	assert.Equal(t, DialectModern, doc.Dialect)

	doc, err = Parse("none.json", []byte(`{"paths": {}}`))
	require.NoError(t, err)
	assert.Equal(t, DialectUnknown, doc.Dialect)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse("broken.json", []byte(`{"openapi": `))
	assert.Error(t, err)

	_, err = Parse("latin1.json", []byte{'{', '"', 0xff, '"', ':', '1', '}'})
	assert.True(t, errors.Is(err, ErrInvalidEncoding))

	_, err = Parse("array.json", []byte(`[]`))
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestParseStripsBOM(t *testing.T) {
	b := append([]byte{0xEF, 0xBB, 0xBF}, []byte(legacyDoc)...)
	doc, err := Parse("bom.json", b)
	require.NoError(t, err)
	assert.Equal(t, DialectLegacy, doc.Dialect)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(modernDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.NotNil(t, doc.Root().Get("paths"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestComponentUsesDialect(t *testing.T) {
	doc, err := Parse("legacy.json", []byte(legacyDoc))
	require.NoError(t, err)

	s, ok := doc.Component("Widget")
	assert.True(t, ok)
	assert.Equal(t, SchemaKindObject, s.Kind())

	_, ok = doc.Component("Nope")
	assert.False(t, ok)
}
