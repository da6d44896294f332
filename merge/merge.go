// Package merge combines OpenAPI documents and inferred schemas.
//
// Documents merge first-writer-wins: when both sides describe the same path and
// method, the left operation is kept. Schemas merge by widening so that the result
// accepts every sample either side accepted.
package merge

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

func Doc(a, b *openapi3.T) *openapi3.T {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}

	return &openapi3.T{
		Extensions:   a.Extensions,
		OpenAPI:      mergeString(a.OpenAPI, b.OpenAPI),
		Components:   Components(a.Components, b.Components),
		Info:         Info(a.Info, b.Info),
		Paths:        Paths(a.Paths, b.Paths),
		Security:     a.Security,
		Servers:      a.Servers,
		Tags:         Tags(a.Tags, b.Tags),
		ExternalDocs: a.ExternalDocs,
	}
}

func Components(a, b *openapi3.Components) *openapi3.Components {
	if a == nil {
		return b
	}
	return a
}

func Info(a, b *openapi3.Info) *openapi3.Info {
	if a == nil {
		return b
	}
	return a
}

func Paths(a, b openapi3.Paths) openapi3.Paths {
	res := make(openapi3.Paths, len(a)+len(b))
	for k, v := range a {
		if w, in := b[k]; in {
			res[k] = PathItem(v, w)
		} else {
			res[k] = v
		}
	}
	for k, v := range b {
		if _, in := a[k]; in {
			continue
		}
		res[k] = v
	}
	return res
}

func PathItem(a, b *openapi3.PathItem) *openapi3.PathItem {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}

	return &openapi3.PathItem{
		Ref:         mergeString(a.Ref, b.Ref),
		Summary:     mergeString(a.Summary, b.Summary),
		Description: mergeString(a.Description, b.Description),
		Connect:     Operation(a.Connect, b.Connect),
		Delete:      Operation(a.Delete, b.Delete),
		Get:         Operation(a.Get, b.Get),
		Head:        Operation(a.Head, b.Head),
		Options:     Operation(a.Options, b.Options),
		Patch:       Operation(a.Patch, b.Patch),
		Post:        Operation(a.Post, b.Post),
		Put:         Operation(a.Put, b.Put),
		Trace:       Operation(a.Trace, b.Trace),
		Servers:     a.Servers,
		Parameters:  Parameters(a.Parameters, b.Parameters),
	}
}

func Operation(a, b *openapi3.Operation) *openapi3.Operation {
	if a == nil {
		return b
	}
	return a
}

// Parameters keeps a's parameters and appends those of b that a does not declare.
func Parameters(a, b openapi3.Parameters) openapi3.Parameters {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a))
	res := make(openapi3.Parameters, 0, len(a)+len(b))
	for _, p := range a {
		if p != nil && p.Value != nil {
			seen[p.Value.In+":"+p.Value.Name] = struct{}{}
		}
		res = append(res, p)
	}
	for _, p := range b {
		if p != nil && p.Value != nil {
			if _, in := seen[p.Value.In+":"+p.Value.Name]; in {
				continue
			}
		}
		res = append(res, p)
	}
	return res
}

func Tags(a, b openapi3.Tags) openapi3.Tags {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a))
	res := make(openapi3.Tags, 0, len(a)+len(b))
	for _, t := range a {
		seen[t.Name] = struct{}{}
		res = append(res, t)
	}
	for _, t := range b {
		if _, in := seen[t.Name]; in {
			continue
		}
		seen[t.Name] = struct{}{}
		res = append(res, t)
	}
	return res
}

func SchemaRef(a, b *openapi3.SchemaRef) *openapi3.SchemaRef {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}
	// refs are not followed, the left one wins
	if a.Ref != "" || b.Ref != "" || a.Value == nil || b.Value == nil {
		return a
	}

	return Schema(a.Value, b.Value).NewRef()
}

func Schema(a, b *openapi3.Schema) *openapi3.Schema {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b == nil {
		return a
	}
	if a == nil && b != nil {
		return b
	}

	if isNull(a) {
		return nullable(b)
	}
	if isNull(b) {
		return nullable(a)
	}

	if a.Type == b.Type {
		return mergeSchemaSameType(a, b)
	}
	return mergeSchemaDifferentType(a, b)
}

func isNull(s *openapi3.Schema) bool {
	return s.Type == "" && s.Nullable && len(s.OneOf) == 0
}

func nullable(s *openapi3.Schema) *openapi3.Schema {
	if s.Nullable {
		return s
	}
	c := *s
	c.Nullable = true
	return &c
}

func mergeSchemaSameType(a, b *openapi3.Schema) *openapi3.Schema {
	return &openapi3.Schema{
		OneOf:       a.OneOf,
		Type:        a.Type,
		Title:       mergeString(a.Title, b.Title),
		Format:      mergeFormat(a.Format, b.Format),
		Description: mergeString(a.Description, b.Description),
		Nullable:    a.Nullable || b.Nullable,
		Items:       SchemaRef(a.Items, b.Items),
		Required:    mergeRequired(a.Required, b.Required),
		Properties:  Schemas(a.Properties, b.Properties),
	}
}

// mergeRequired keeps the names both sides require.
func mergeRequired(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	keep := make(map[string]struct{}, len(a))
	for _, r := range a {
		keep[r] = struct{}{}
	}
	res := make([]string, 0, len(a))
	for _, r := range b {
		if _, in := keep[r]; in {
			res = append(res, r)
		}
	}
	if len(res) == 0 {
		return nil
	}
	sort.Strings(res)
	return res
}

func Schemas(a, b openapi3.Schemas) openapi3.Schemas {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	if len(a) == 0 && len(b) != 0 {
		return b
	}
	if len(a) != 0 && len(b) == 0 {
		return a
	}

	rs := make(openapi3.Schemas, max(len(a), len(b)))
	for k, v := range a {
		if w, in := b[k]; in {
			rs[k] = SchemaRef(v, w)
		} else {
			rs[k] = v
		}
	}
	for k, v := range b {
		if _, in := a[k]; in {
			continue
		}
		rs[k] = v
	}
	return rs
}

// mergeSchemaDifferentType produces a oneOf with one alternative per distinct type,
// flattening any oneOf already present on either side.
func mergeSchemaDifferentType(a, b *openapi3.Schema) *openapi3.Schema {
	alts := make(map[string]*openapi3.SchemaRef)
	for _, s := range []*openapi3.Schema{a, b} {
		for k, v := range flattenTypes(s) {
			alts[k] = SchemaRef(alts[k], v)
		}
	}

	keys := make([]string, 0, len(alts))
	for k := range alts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	oneOf := make(openapi3.SchemaRefs, len(keys))
	for i, k := range keys {
		oneOf[i] = alts[k]
	}

	return &openapi3.Schema{
		OneOf:       oneOf,
		Title:       mergeString(a.Title, b.Title),
		Description: mergeString(a.Description, b.Description),
		Nullable:    a.Nullable || b.Nullable,
	}
}

func flattenTypes(s *openapi3.Schema) map[string]*openapi3.SchemaRef {
	if s.Type != "" || len(s.OneOf) == 0 {
		return map[string]*openapi3.SchemaRef{s.Type: s.NewRef()}
	}
	res := make(map[string]*openapi3.SchemaRef, len(s.OneOf))
	for _, v := range s.OneOf {
		if v.Value == nil {
			continue
		}
		res[v.Value.Type] = SchemaRef(res[v.Value.Type], v)
	}
	return res
}

func mergeFormat(a, b string) string {
	if a == b {
		return a
	}
	return ""
}

func mergeString(a, b string) string {
	if a == "" && b == "" {
		return ""
	}
	if a == "" && b != "" {
		return b
	}
	if a != "" && b == "" {
		return a
	}
	if len(b) > len(a) {
		return b
	}
	return a
}
