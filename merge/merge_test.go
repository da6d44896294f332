package merge

import (
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getOp(id string) *openapi3.PathItem {
	return &openapi3.PathItem{Get: &openapi3.Operation{OperationID: id}}
}

func TestMergeWithTrivial(t *testing.T) {
	doc := openapi3.T{
		OpenAPI: "3.0.0",
		Info:    &openapi3.Info{Title: "Example", Version: "0.0.1"},
		Paths:   openapi3.Paths{},
	}

	bs, err := json.Marshal(Doc(&doc, nil))
	assert.Nil(t, err)
	assert.NotEmpty(t, string(bs))
}

func TestDocFirstWriterWins(t *testing.T) {
	a := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "a"},
		Paths:   openapi3.Paths{"/x": getOp("A_x"), "/y": getOp("A_y")},
		Tags:    openapi3.Tags{{Name: "compute"}},
	}
	b := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "b"},
		Paths:   openapi3.Paths{"/x": getOp("B_x"), "/z": getOp("B_z")},
		Tags:    openapi3.Tags{{Name: "network"}, {Name: "compute"}},
	}

	res := Doc(a, b)
	require.NotNil(t, res)
	assert.Equal(t, "a", res.Info.Title)
	assert.Len(t, res.Paths, 3)
	assert.Equal(t, "A_x", res.Paths["/x"].Get.OperationID)
	assert.Equal(t, "A_y", res.Paths["/y"].Get.OperationID)
	assert.Equal(t, "B_z", res.Paths["/z"].Get.OperationID)
	assert.Equal(t, []string{"compute", "network"}, []string{res.Tags[0].Name, res.Tags[1].Name})
}

func TestPathItemFillsMissingMethods(t *testing.T) {
	a := getOp("get")
	b := &openapi3.PathItem{Put: &openapi3.Operation{OperationID: "put"}}

	res := PathItem(a, b)
	assert.Equal(t, "get", res.Get.OperationID)
	assert.Equal(t, "put", res.Put.OperationID)
}

func TestParametersDeduplicate(t *testing.T) {
	a := openapi3.Parameters{{Value: openapi3.NewPathParameter("id")}}
	b := openapi3.Parameters{
		{Value: openapi3.NewPathParameter("id")},
		{Value: openapi3.NewQueryParameter("api-version")},
	}
	res := Parameters(a, b)
	assert.Len(t, res, 2)
	assert.Equal(t, "api-version", res[1].Value.Name)
}

func TestSchemaSameTypeObject(t *testing.T) {
	a := &openapi3.Schema{
		Type:     openapi3.TypeObject,
		Required: []string{"a", "b"},
		Properties: openapi3.Schemas{
			"a": openapi3.NewStringSchema().NewRef(),
			"b": openapi3.NewIntegerSchema().NewRef(),
		},
	}
	b := &openapi3.Schema{
		Type:     openapi3.TypeObject,
		Required: []string{"b", "c"},
		Properties: openapi3.Schemas{
			"b": openapi3.NewIntegerSchema().NewRef(),
			"c": openapi3.NewBoolSchema().NewRef(),
		},
	}

	res := Schema(a, b)
	assert.Equal(t, openapi3.TypeObject, res.Type)
	assert.Equal(t, []string{"b"}, res.Required)
	assert.Len(t, res.Properties, 3)
}

func TestSchemaDifferentTypes(t *testing.T) {
	res := Schema(openapi3.NewStringSchema(), openapi3.NewIntegerSchema())
	assert.Equal(t, "", res.Type)
	require.Len(t, res.OneOf, 2)
	assert.Equal(t, openapi3.TypeInteger, res.OneOf[0].Value.Type)
	assert.Equal(t, openapi3.TypeString, res.OneOf[1].Value.Type)

	again := Schema(res, openapi3.NewStringSchema())
	assert.Len(t, again.OneOf, 2)
}

func TestSchemaNullWidensToNullable(t *testing.T) {
	null := &openapi3.Schema{Nullable: true}
	res := Schema(openapi3.NewStringSchema(), null)
	assert.Equal(t, openapi3.TypeString, res.Type)
	assert.True(t, res.Nullable)

	res = Schema(null, openapi3.NewIntegerSchema())
	assert.Equal(t, openapi3.TypeInteger, res.Type)
	assert.True(t, res.Nullable)
}
