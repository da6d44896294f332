package apispec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

type Dialect int

const (
	DialectUnknown Dialect = 0
	DialectLegacy  Dialect = 2
	DialectModern  Dialect = 3
)

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "swagger"
	case DialectModern:
		return "openapi"
	}
	return "unknown"
}

// ComponentPrefix is the reference prefix for reusable schemas in this dialect.
func (d Dialect) ComponentPrefix() string {
	switch d {
	case DialectLegacy:
		return legacyRefPrefix
	case DialectModern:
		return modernRefPrefix
	}
	return ""
}

const (
	legacyRefPrefix = "#/definitions/"
	modernRefPrefix = "#/components/schemas/"
)

var (
	ErrInvalidEncoding = errors.New("apispec: document is not valid utf-8")
	ErrNotObject       = errors.New("apispec: document root is not an object")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is one parsed description file. Reusable schemas are classified eagerly so
// a Document can be shared by concurrent request handlers once loaded; Root is only for
// single-goroutine use while extracting.
type Document struct {
	Path    string
	Dialect Dialect

	root        *fastjson.Value
	components  map[string]Schema
	definitions map[string]Schema
}

func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, b)
}

func Parse(path string, b []byte) (*Document, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return nil, ErrInvalidEncoding
	}

	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("apispec: parse %s: %w", path, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, ErrNotObject
	}

	return &Document{
		Path:        path,
		Dialect:     DetectDialect(v),
		root:        v,
		components:  parseSchemaTable(v.Get("components", "schemas")),
		definitions: parseSchemaTable(v.Get("definitions")),
	}, nil
}

// DetectDialect looks for the top level discriminator, preferring "openapi".
func DetectDialect(v *fastjson.Value) Dialect {
	if v.Exists("openapi") {
		return DialectModern
	}
	if v.Exists("swagger") {
		return DialectLegacy
	}
	return DialectUnknown
}

func (d *Document) Root() *fastjson.Value {
	return d.root
}

// Component returns the reusable schema with the given name in this document's dialect.
func (d *Document) Component(name string) (Schema, bool) {
	var s Schema
	var ok bool
	switch d.Dialect {
	case DialectModern:
		s, ok = d.components[name]
	case DialectLegacy:
		s, ok = d.definitions[name]
	}
	return s, ok
}

func parseSchemaTable(v *fastjson.Value) map[string]Schema {
	res := make(map[string]Schema)
	if v == nil || v.Type() != fastjson.TypeObject {
		return res
	}
	o, _ := v.Object()
	o.Visit(func(key []byte, sv *fastjson.Value) {
		res[string(key)] = ParseSchemaFastJson(sv)
	})
	return res
}
