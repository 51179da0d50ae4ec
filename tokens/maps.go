package tokens

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"csstokens/css"
)

// StringMap is an ordered map of custom property names to literal values.
// Keys keep position of their first insertion, values follow last write.
// Every pipeline stage builds a new map and never modifies its input.
type StringMap struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewStringMap returns empty map.
func NewStringMap() *StringMap {
	return &StringMap{m: orderedmap.New[string, string]()}
}

// StringMapOf builds map from name/value pairs, mostly useful in tests.
func StringMapOf(pairs ...string) *StringMap {
	m := NewStringMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value, replacing previous value for the same name.
func (m *StringMap) Set(name, value string) {
	m.m.Set(name, value)
}

// Get returns value stored for name.
func (m *StringMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.m.Get(name)
}

// Len returns number of entries.
func (m *StringMap) Len() int {
	if m == nil {
		return 0
	}
	return m.m.Len()
}

// Names returns keys in insertion order.
func (m *StringMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, m.m.Len())
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// All iterates over entries in insertion order.
func (m *StringMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for p := m.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Merge returns a new map with entries of base overlaid by entries of
// override. Names first seen in base keep their base position, names which
// exist only in override are appended in override order.
func Merge(base, override *StringMap) *StringMap {
	out := NewStringMap()
	for k, v := range base.All() {
		out.Set(k, v)
	}
	for k, v := range override.All() {
		out.Set(k, v)
	}
	return out
}

// TypedMap is an ordered map of custom property names to typed values.
type TypedMap struct {
	m *orderedmap.OrderedMap[string, css.Value]
}

// NewTypedMap returns empty map.
func NewTypedMap() *TypedMap {
	return &TypedMap{m: orderedmap.New[string, css.Value]()}
}

// Set stores value, replacing previous value for the same name.
func (m *TypedMap) Set(name string, v css.Value) {
	m.m.Set(name, v)
}

// Get returns value stored for name.
func (m *TypedMap) Get(name string) (css.Value, bool) {
	if m == nil {
		return nil, false
	}
	return m.m.Get(name)
}

// Len returns number of entries.
func (m *TypedMap) Len() int {
	if m == nil {
		return 0
	}
	return m.m.Len()
}

// All iterates over entries in insertion order.
func (m *TypedMap) All() iter.Seq2[string, css.Value] {
	return func(yield func(string, css.Value) bool) {
		if m == nil {
			return
		}
		for p := m.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
