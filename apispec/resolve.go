package apispec

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedRef = errors.New("apispec: unsupported reference")

// Resolve looks up a local reference. Both "#/components/schemas/" and "#/definitions/"
// are accepted whatever the document's dialect. A name the document does not define
// resolves to an untyped schema rather than an error.
func (d *Document) Resolve(ref string) (Schema, error) {
	var table map[string]Schema
	switch {
	case strings.HasPrefix(ref, modernRefPrefix):
		table = d.components
	case strings.HasPrefix(ref, legacyRefPrefix):
		table = d.definitions
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}

	name := ref[strings.LastIndex(ref, "/")+1:]
	if s, ok := table[name]; ok {
		return s, nil
	}
	return &UntypedSchema{}, nil
}
