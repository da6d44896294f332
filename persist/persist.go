// Package persist stores the records behind the resource routes.
package persist

// Key identifies a record within its kind.
type Key struct {
	ResourceGroup string
	Name          string
}

type Fields map[string]string

type Record struct {
	ID     string
	Kind   string
	Key    Key
	Fields Fields
}

// Filter restricts List. Zero values match everything.
type Filter struct {
	ResourceGroup string
}

func (f Filter) match(k Key) bool {
	return f.ResourceGroup == "" || f.ResourceGroup == k.ResourceGroup
}

// Service is the persistence surface used by the resource routes. Upsert keeps the
// id of an existing record and replaces its fields.
type Service interface {
	Upsert(kind string, key Key, fields Fields) Record
	Get(kind string, key Key) (Record, bool)
	List(kind string, filter Filter) []Record
	Delete(kind string, key Key) bool
}
