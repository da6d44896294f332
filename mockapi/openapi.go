package mockapi

import (
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/siegeai/cloudmock/infer"
	"github.com/siegeai/cloudmock/merge"
	"github.com/siegeai/cloudmock/synth"
)

const (
	DocumentTitle   = "cloudmock"
	DocumentVersion = "1.0.0"
)

// Document describes every registered route as an OpenAPI 3 document. Each route
// gets a GET operation tagged with its service whose 200 response schema is inferred
// from a freshly synthesized sample. The result is built once and cached.
func (r *Registry) Document() *openapi3.T {
	r.docOnce.Do(func() {
		r.doc = r.buildDocument()
	})
	return r.doc
}

func (r *Registry) buildDocument() *openapi3.T {
	var res *openapi3.T
	var cur *openapi3.T
	var curService string

	flush := func() {
		res = merge.Doc(res, cur)
		cur = nil
	}

	for _, rt := range r.routes {
		if cur == nil || rt.Service != curService {
			if cur != nil {
				flush()
			}
			cur = newServiceDocument(rt.Service)
			curService = rt.Service
		}
		cur.Paths[rt.Template] = &openapi3.PathItem{Get: r.operation(rt)}
	}
	if cur != nil {
		flush()
	}

	if res == nil {
		res = newServiceDocument("")
		res.Tags = nil
	}
	return res
}

func newServiceDocument(service string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   DocumentTitle,
			Version: DocumentVersion,
		},
		Paths: openapi3.Paths{},
		Tags:  openapi3.Tags{{Name: service}},
	}
}

func (r *Registry) operation(rt *route) *openapi3.Operation {
	schema := &openapi3.Schema{}
	sample, err := synth.Marshal(rt.endpoint.ResponseSchema, rt.endpoint.Document)
	if err == nil {
		schema, err = infer.ParseSampleBodyBytes(sample)
	}
	if err != nil {
		slog.Warn("could not infer response schema", "path", rt.Template, "err", err)
		schema = &openapi3.Schema{}
	}

	desc := "Mock response"
	content := openapi3.NewContentWithJSONSchema(schema)
	return &openapi3.Operation{
		OperationID: rt.OperationID,
		Tags:        []string{rt.Service},
		Parameters:  pathParameters(rt.Template),
		Responses: openapi3.Responses{
			"200": &openapi3.ResponseRef{
				Value: &openapi3.Response{
					Description: &desc,
					Content:     content,
				},
			},
		},
	}
}

func pathParameters(template string) openapi3.Parameters {
	var ps openapi3.Parameters
	for _, name := range templateVariables(template) {
		p := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
		ps = append(ps, &openapi3.ParameterRef{Value: p})
	}
	return ps
}

func templateVariables(template string) []string {
	var names []string
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return names
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return names
		}
		name := rest[open+1 : open+end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		names = append(names, name)
		rest = rest[open+end+1:]
	}
}
