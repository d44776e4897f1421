package graph

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Value is a single value produced by the graph database. The set of
// implementations is closed: Null, Bool, Int, Float, String, List, Map, Node
// and Relationship. Consumers are expected to switch over all of them.
type Value interface {
	graphValue()
}

// Null is the absence of a value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Int is an integer value.
type Int int64

// Float is a floating point value.
type Float float64

// String is a string value.
type String string

// List is an ordered list of values.
type List []Value

// Map is a string keyed map of values.
type Map map[string]Value

// Node is a graph node with its labels and properties.
type Node struct {
	ID     string
	Labels []string
	Props  Map
}

// Relationship is a typed edge between two nodes.
type Relationship struct {
	ID      string
	StartID string
	EndID   string
	Type    string
	Props   Map
}

func (Null) graphValue()         {}
func (Bool) graphValue()         {}
func (Int) graphValue()          {}
func (Float) graphValue()        {}
func (String) graphValue()       {}
func (List) graphValue()         {}
func (Map) graphValue()          {}
func (Node) graphValue()         {}
func (Relationship) graphValue() {}

// Prop returns the property stored under key. Missing keys yield (nil, false).
func (n Node) Prop(key string) (Value, bool) {
	v, ok := n.Props[key]
	return v, ok
}

// Render returns the string form of a value. Strings are returned as-is,
// containers are rendered recursively with map keys in sorted order.
func Render(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return cast.ToString(bool(v))
	case Int:
		return cast.ToString(int64(v))
	case Float:
		return cast.ToString(float64(v))
	case String:
		return string(v)
	case List:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, Render(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Map:
		return renderMap(v)
	case Node:
		var b strings.Builder
		b.WriteString("(")
		for _, label := range v.Labels {
			b.WriteString(":")
			b.WriteString(label)
		}
		if len(v.Props) > 0 {
			if len(v.Labels) > 0 {
				b.WriteString(" ")
			}
			b.WriteString(renderMap(v.Props))
		}
		b.WriteString(")")
		return b.String()
	case Relationship:
		var b strings.Builder
		b.WriteString("[:")
		b.WriteString(v.Type)
		if len(v.Props) > 0 {
			b.WriteString(" ")
			b.WriteString(renderMap(v.Props))
		}
		b.WriteString("]")
		return b.String()
	default:
		return ""
	}
}

func renderMap(m Map) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+Render(m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Kind names the variant of a value, mostly for error messages and logs.
func Kind(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	case Node:
		return "node"
	case Relationship:
		return "relationship"
	default:
		return "unknown"
	}
}
