package apispec

import (
	"github.com/valyala/fastjson"
)

func ParseSchemaBytes(b []byte) (Schema, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return ParseSchemaFastJson(v), nil
}

// ParseSchemaFastJson classifies a schema fragment. The order of the checks matters:
// a reference wins over everything, then an explicit scalar or container type, then
// oneOf/anyOf, then bare properties. Anything else is untyped.
func ParseSchemaFastJson(v *fastjson.Value) Schema {
	if v == nil || v.Type() != fastjson.TypeObject {
		return &UntypedSchema{}
	}

	if ref := v.Get("$ref"); ref != nil && ref.Type() == fastjson.TypeString {
		return &RefSchema{Ref: string(ref.GetStringBytes())}
	}

	switch schemaType(v.Get("type")) {
	case "object":
		return parseFastJsonObject(v.Get("properties"), true)
	case "array":
		return parseFastJsonArray(v.Get("items"))
	case "string":
		return parseFastJsonValue(ValueTypeString, v.Get("default"))
	case "integer":
		return parseFastJsonValue(ValueTypeInteger, v.Get("default"))
	case "number":
		return parseFastJsonValue(ValueTypeNumber, v.Get("default"))
	case "boolean":
		return parseFastJsonValue(ValueTypeBoolean, v.Get("default"))
	}

	if alts := v.Get("oneOf"); alts != nil {
		return parseFastJsonUnion(alts)
	}
	if alts := v.Get("anyOf"); alts != nil {
		return parseFastJsonUnion(alts)
	}

	if props := v.Get("properties"); props != nil {
		return parseFastJsonObject(props, false)
	}

	return &UntypedSchema{}
}

// schemaType accepts both "type": "x" and the list form, where the first non-null
// entry is used.
func schemaType(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeArray:
		for _, e := range v.GetArray() {
			if e.Type() != fastjson.TypeString {
				continue
			}
			if s := string(e.GetStringBytes()); s != "null" {
				return s
			}
		}
	}
	return ""
}

func parseFastJsonObject(props *fastjson.Value, declared bool) Schema {
	n := ObjectSchema{
		Fields:   make([]ObjectSchemaField, 0),
		Declared: declared,
	}
	if props == nil || props.Type() != fastjson.TypeObject {
		return &n
	}

	o, _ := props.Object()
	o.Visit(func(key []byte, v *fastjson.Value) {
		n.Fields = append(n.Fields, ObjectSchemaField{
			Key:   string(key),
			Value: ParseSchemaFastJson(v),
		})
	})

	return &n
}

func parseFastJsonArray(items *fastjson.Value) Schema {
	if items == nil {
		return &ArraySchema{Element: nil}
	}
	return &ArraySchema{Element: ParseSchemaFastJson(items)}
}

func parseFastJsonValue(t ValueType, def *fastjson.Value) Schema {
	n := ValueSchema{Type: t}
	if def != nil && def.Type() != fastjson.TypeNull {
		n.Default = def.MarshalTo(nil)
	}
	return &n
}

func parseFastJsonUnion(alts *fastjson.Value) Schema {
	n := UnionSchema{Alternatives: make([]Schema, 0)}
	if alts.Type() != fastjson.TypeArray {
		return &n
	}
	for _, a := range alts.GetArray() {
		n.Alternatives = append(n.Alternatives, ParseSchemaFastJson(a))
	}
	return &n
}
