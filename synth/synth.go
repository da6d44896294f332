// Package synth builds example values from schema fragments.
package synth

import (
	"encoding/json"

	"github.com/siegeai/cloudmock/apispec"
)

const (
	ExampleString      = "example_string"
	ExampleInteger     = 123
	ExampleNumber      = 123.45
	ExampleBoolean     = true
	RecursiveRefPrefix = "recursive_ref_to_"
	UnsupportedRefKey  = "unsupported_ref"
)

// Resolver is satisfied by *apispec.Document.
type Resolver interface {
	Resolve(ref string) (apispec.Schema, error)
}

// Generate synthesizes a value with a fresh visited set.
func Generate(s apispec.Schema, doc Resolver) any {
	return Synthesize(s, doc, make(map[string]struct{}))
}

// Marshal synthesizes a value and encodes it as JSON.
func Marshal(s apispec.Schema, doc Resolver) ([]byte, error) {
	return json.Marshal(Generate(s, doc))
}

// Synthesize always returns a renderable value, never nil. visited is shared by the
// whole traversal, so a reference already entered anywhere earlier (not only on the
// current branch) yields the recursion sentinel.
func Synthesize(s apispec.Schema, doc Resolver, visited map[string]struct{}) any {
	switch n := s.(type) {
	case *apispec.RefSchema:
		if _, seen := visited[n.Ref]; seen {
			return RecursiveRefPrefix + n.Ref
		}
		visited[n.Ref] = struct{}{}

		resolved, err := doc.Resolve(n.Ref)
		if err != nil {
			o := NewObject()
			o.Set(UnsupportedRefKey, n.Ref)
			return o
		}
		return Synthesize(resolved, doc, visited)

	case *apispec.ObjectSchema:
		if n.Declared && len(n.Fields) == 0 {
			return placeholderObject()
		}
		o := NewObject()
		for _, f := range n.Fields {
			o.Set(f.Key, Synthesize(f.Value, doc, visited))
		}
		return o

	case *apispec.ArraySchema:
		var elem apispec.Schema = &apispec.UntypedSchema{}
		if n.Element != nil {
			elem = n.Element
		}
		return []any{Synthesize(elem, doc, visited)}

	case *apispec.ValueSchema:
		if n.HasDefault() {
			return n.Default
		}
		switch n.Type {
		case apispec.ValueTypeString:
			return ExampleString
		case apispec.ValueTypeInteger:
			return ExampleInteger
		case apispec.ValueTypeNumber:
			return ExampleNumber
		case apispec.ValueTypeBoolean:
			return ExampleBoolean
		}

	case *apispec.UnionSchema:
		if len(n.Alternatives) == 0 {
			return NewObject()
		}
		return Synthesize(n.Alternatives[0], doc, visited)
	}

	return NewObject()
}

// placeholderObject stands in for free-form objects.
func placeholderObject() *Object {
	o := NewObject()
	o.Set("key", "value")
	return o
}
