package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "nil", value: nil, want: "null"},
		{name: "null", value: Null{}, want: "null"},
		{name: "bool", value: Bool(true), want: "true"},
		{name: "int", value: Int(42), want: "42"},
		{name: "float", value: Float(1.5), want: "1.5"},
		{name: "string is raw", value: String(`"quoted"`), want: `"quoted"`},
		{name: "list", value: List{String("a"), Int(1)}, want: "[a, 1]"},
		{name: "empty list", value: List{}, want: "[]"},
		{name: "map keys sorted", value: Map{"b": Int(2), "a": Int(1)}, want: "{a: 1, b: 2}"},
		{
			name:  "node",
			value: Node{Labels: []string{"Person"}, Props: Map{"uid": String("1")}},
			want:  "(:Person {uid: 1})",
		},
		{name: "bare node", value: Node{}, want: "()"},
		{
			name:  "relationship",
			value: Relationship{Type: "ACTED_IN", Props: Map{"role": String("lead")}},
			want:  "[:ACTED_IN {role: lead}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.value))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "null", Kind(nil))
	assert.Equal(t, "node", Kind(Node{}))
	assert.Equal(t, "relationship", Kind(Relationship{}))
	assert.Equal(t, "list", Kind(List{}))
	assert.Equal(t, "map", Kind(Map{}))
	assert.Equal(t, "string", Kind(String("")))
}

func TestNodeProp(t *testing.T) {
	node := Node{Labels: []string{"Person", "Director"}, Props: Map{"uid": String("7")}}

	v, ok := node.Prop("uid")
	assert.True(t, ok)
	assert.Equal(t, String("7"), v)

	_, ok = node.Prop("missing")
	assert.False(t, ok)
}

func TestRecordGet(t *testing.T) {
	rec := Record{Keys: []string{"n", "m"}, Values: []Value{Int(1), Int(2)}}

	v, ok := rec.Get("m")
	assert.True(t, ok)
	assert.Equal(t, Int(2), v)

	_, ok = rec.Get("x")
	assert.False(t, ok)
}
