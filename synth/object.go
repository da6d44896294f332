package synth

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that remembers insertion order, so a synthesized body lists
// properties in the order the schema declared them.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{
		keys:   make([]string, 0),
		values: make(map[string]any),
	}
}

// Set adds or replaces a key. A replaced key keeps its original position.
func (o *Object) Set(key string, value any) {
	if _, in := o.values[key]; !in {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Get(key string) (any, bool) {
	v, in := o.values[key]
	return v, in
}

func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
