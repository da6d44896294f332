// Package extract turns description documents into mockable read endpoints.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/siegeai/cloudmock/apispec"
)

// Endpoint is one mockable read operation. It is never modified after extraction.
type Endpoint struct {
	PathTemplate   string
	OperationID    string
	ResponseSchema apispec.Schema
	Document       *apispec.Document
}

var (
	ErrRead           = errors.New("extract: cannot read file")
	ErrDecode         = errors.New("extract: cannot decode document")
	ErrNotDescription = errors.New("extract: not a description document")
)

// SkipError explains why a whole file produced no endpoints. errors.Is matches the
// Reason, errors.As/Unwrap reach the Cause.
type SkipError struct {
	Reason error
	File   string
	Cause  error
}

func (e *SkipError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", e.Reason, e.File, e.Cause)
	}
	return fmt.Sprintf("%v: %s", e.Reason, e.File)
}

func (e *SkipError) Unwrap() error { return e.Cause }

func (e *SkipError) Is(target error) bool { return target == e.Reason }

// ExtractAll concatenates the endpoints of every file, in the order given. Files that
// cannot be used are logged and skipped.
func ExtractAll(files []string) []Endpoint {
	res := make([]Endpoint, 0)
	for _, f := range files {
		eps, err := Extract(f)
		if err != nil {
			if errors.Is(err, ErrNotDescription) {
				slog.Debug("skipping spec file", "file", f, "err", err)
			} else {
				slog.Warn("skipping spec file", "file", f, "err", err)
			}
			continue
		}
		res = append(res, eps...)
	}
	return res
}

func Extract(file string) ([]Endpoint, error) {
	doc, err := apispec.Load(file)
	if err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.As(err, &pathErr):
			return nil, &SkipError{Reason: ErrRead, File: file, Cause: err}
		case errors.Is(err, apispec.ErrNotObject):
			return nil, &SkipError{Reason: ErrNotDescription, File: file, Cause: err}
		}
		return nil, &SkipError{Reason: ErrDecode, File: file, Cause: err}
	}
	return FromDocument(doc)
}

// FromDocument walks the paths of a loaded document in declaration order.
func FromDocument(doc *apispec.Document) ([]Endpoint, error) {
	paths := doc.Root().Get("paths")
	if paths == nil || paths.Type() != fastjson.TypeObject {
		return nil, &SkipError{Reason: ErrNotDescription, File: doc.Path, Cause: errors.New("missing paths")}
	}
	if doc.Dialect == apispec.DialectUnknown {
		return nil, &SkipError{Reason: ErrNotDescription, File: doc.Path, Cause: errors.New("missing openapi or swagger field")}
	}

	res := make([]Endpoint, 0)
	o, _ := paths.Object()
	o.Visit(func(key []byte, item *fastjson.Value) {
		path := string(key)
		op := item.Get("get")
		if op == nil || op.Type() != fastjson.TypeObject {
			return
		}
		if truthy(op.Get("deprecated")) {
			return
		}

		schema := responseSchema(doc.Dialect, op.Get("responses", "200"))
		if schema == nil {
			return
		}

		res = append(res, Endpoint{
			PathTemplate:   path,
			OperationID:    operationID(op, path),
			ResponseSchema: apispec.ParseSchemaFastJson(schema),
			Document:       doc,
		})
	})

	return res, nil
}

// responseSchema returns nil when the 200 response has no usable body schema.
func responseSchema(d apispec.Dialect, res *fastjson.Value) *fastjson.Value {
	if !truthy(res) || res.Type() != fastjson.TypeObject {
		return nil
	}

	var schema *fastjson.Value
	switch d {
	case apispec.DialectModern:
		schema = res.Get("content", "application/json", "schema")
	case apispec.DialectLegacy:
		schema = res.Get("schema")
	}

	if !truthy(schema) || schema.Type() != fastjson.TypeObject {
		return nil
	}
	return schema
}

func operationID(op *fastjson.Value, path string) string {
	if id := op.Get("operationId"); id != nil && id.Type() == fastjson.TypeString {
		if s := string(id.GetStringBytes()); s != "" {
			return s
		}
	}
	return FallbackOperationID(path)
}

// FallbackOperationID derives an operation id from a path template.
func FallbackOperationID(path string) string {
	return "get_" + strings.ReplaceAll(path, "/", "_")
}

// truthy reports whether a JSON value is present and not false, null, zero or empty.
func truthy(v *fastjson.Value) bool {
	if v == nil {
		return false
	}
	switch v.Type() {
	case fastjson.TypeNull, fastjson.TypeFalse:
		return false
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeNumber:
		return v.GetFloat64() != 0
	case fastjson.TypeString:
		return len(v.GetStringBytes()) > 0
	case fastjson.TypeArray:
		return len(v.GetArray()) > 0
	case fastjson.TypeObject:
		o, _ := v.Object()
		return o.Len() > 0
	}
	return false
}
