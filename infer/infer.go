// Package infer derives OpenAPI schemas from sample JSON bodies.
package infer

import (
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/siegeai/cloudmock/merge"
)

func NewObjectSchema(props map[string]*openapi3.Schema) *openapi3.Schema {
	ps := make(openapi3.Schemas, len(props))
	rs := make([]string, 0, len(props))
	for k, v := range props {
		ps[k] = v.NewRef()
		rs = append(rs, k)
	}
	sort.Strings(rs)
	if len(rs) == 0 {
		rs = nil
	}
	return &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Required:   rs,
		Properties: ps,
	}
}

// NewArraySchema merges all element schemas into one item schema. An empty sample
// gives an item schema that accepts anything.
func NewArraySchema(elems []*openapi3.Schema) *openapi3.Schema {
	var item *openapi3.Schema
	for _, e := range elems {
		item = merge.Schema(item, e)
	}
	if item == nil {
		item = &openapi3.Schema{}
	}
	return &openapi3.Schema{
		Type:  openapi3.TypeArray,
		Items: item.NewRef(),
	}
}

func NewStringSchema(s string) *openapi3.Schema {
	return &openapi3.Schema{
		Type:   openapi3.TypeString,
		Format: stringFormat(s),
	}
}

func stringFormat(s string) string {
	if _, err := uuid.Parse(s); err == nil && len(s) == 36 {
		return "uuid"
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return "date-time"
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return "date"
	}
	return ""
}

func NewIntegerSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: openapi3.TypeInteger,
	}
}

func NewNumberSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: openapi3.TypeNumber,
	}
}

func NewBooleanSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: openapi3.TypeBoolean,
	}
}

// NewNullSchema has no type of its own, merging it into a typed schema marks that
// schema nullable.
func NewNullSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Nullable: true,
	}
}
