package apispec

import "encoding/json"

type SchemaKind int

const (
	SchemaKindUntyped SchemaKind = 0
	SchemaKindRef     SchemaKind = 1
	SchemaKindObject  SchemaKind = 2
	SchemaKindArray   SchemaKind = 3
	SchemaKindString  SchemaKind = 4
	SchemaKindInteger SchemaKind = 5
	SchemaKindNumber  SchemaKind = 6
	SchemaKindBoolean SchemaKind = 7
	SchemaKindUnion   SchemaKind = 8
)

func (k SchemaKind) String() string {
	switch k {
	case SchemaKindUntyped:
		return "untyped"
	case SchemaKindRef:
		return "ref"
	case SchemaKindObject:
		return "object"
	case SchemaKindArray:
		return "array"
	case SchemaKindString:
		return "string"
	case SchemaKindInteger:
		return "integer"
	case SchemaKindNumber:
		return "number"
	case SchemaKindBoolean:
		return "boolean"
	case SchemaKindUnion:
		return "union"
	}
	return "unknown"
}

// Schema is a schema fragment classified once at parse time. The concrete type is
// always one of *RefSchema, *ObjectSchema, *ArraySchema, *ValueSchema, *UnionSchema
// or *UntypedSchema.
type Schema interface {
	Kind() SchemaKind
}

type RefSchema struct {
	Ref string
}

func (r *RefSchema) Kind() SchemaKind {
	return SchemaKindRef
}

// ObjectSchema keeps fields in declaration order. Declared is set when the fragment
// carried an explicit "type": "object"; untyped fragments with properties are objects too.
type ObjectSchema struct {
	Fields   []ObjectSchemaField
	Declared bool
}

type ObjectSchemaField struct {
	Key   string
	Value Schema
}

func (o *ObjectSchema) Kind() SchemaKind {
	return SchemaKindObject
}

// ArraySchema has a nil Element when the fragment had no items.
type ArraySchema struct {
	Element Schema
}

func (a *ArraySchema) Kind() SchemaKind {
	return SchemaKindArray
}

type ValueType int

const (
	ValueTypeString  ValueType = 1
	ValueTypeInteger ValueType = 2
	ValueTypeNumber  ValueType = 3
	ValueTypeBoolean ValueType = 4
)

// ValueSchema is a scalar. Default holds the raw JSON of a non-null "default".
type ValueSchema struct {
	Type    ValueType
	Default json.RawMessage
}

func (v *ValueSchema) Kind() SchemaKind {
	switch v.Type {
	case ValueTypeString:
		return SchemaKindString
	case ValueTypeInteger:
		return SchemaKindInteger
	case ValueTypeNumber:
		return SchemaKindNumber
	case ValueTypeBoolean:
		return SchemaKindBoolean
	}
	panic("should be unreachable")
}

func (v *ValueSchema) HasDefault() bool {
	return len(v.Default) > 0
}

// UnionSchema holds the alternatives of oneOf, or of anyOf when oneOf is absent.
type UnionSchema struct {
	Alternatives []Schema
}

func (u *UnionSchema) Kind() SchemaKind {
	return SchemaKindUnion
}

type UntypedSchema struct{}

func (u *UntypedSchema) Kind() SchemaKind {
	return SchemaKindUntyped
}

func NewStringSchema() *ValueSchema {
	return &ValueSchema{Type: ValueTypeString}
}

func NewIntegerSchema() *ValueSchema {
	return &ValueSchema{Type: ValueTypeInteger}
}

func NewNumberSchema() *ValueSchema {
	return &ValueSchema{Type: ValueTypeNumber}
}

func NewBooleanSchema() *ValueSchema {
	return &ValueSchema{Type: ValueTypeBoolean}
}
