package graph

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spf13/cast"
)

// FromDriver converts a value handed out by the neo4j driver into a Value.
// Temporal and spatial types are kept in their string form.
func FromDriver(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null{}
	case Value:
		return v
	case bool:
		return Bool(v)
	case int64:
		return Int(v)
	case int, int8, int16, int32, uint8, uint16, uint32:
		return Int(cast.ToInt64(v))
	case float64:
		return Float(v)
	case float32:
		return Float(float64(v))
	case string:
		return String(v)
	case []byte:
		return String(string(v))
	case []any:
		list := make(List, 0, len(v))
		for _, item := range v {
			list = append(list, FromDriver(item))
		}
		return list
	case map[string]any:
		return fromProps(v)
	case neo4j.Node:
		return Node{
			ID:     v.ElementId,
			Labels: append([]string(nil), v.Labels...),
			Props:  fromProps(v.Props),
		}
	case neo4j.Relationship:
		return Relationship{
			ID:      v.ElementId,
			StartID: v.StartElementId,
			EndID:   v.EndElementId,
			Type:    v.Type,
			Props:   fromProps(v.Props),
		}
	case neo4j.Path:
		// nodes and relationships interleaved in traversal order
		list := make(List, 0, len(v.Nodes)+len(v.Relationships))
		for i, n := range v.Nodes {
			list = append(list, FromDriver(n))
			if i < len(v.Relationships) {
				list = append(list, FromDriver(v.Relationships[i]))
			}
		}
		return list
	case time.Time:
		return String(v.Format(time.RFC3339Nano))
	case fmt.Stringer:
		return String(v.String())
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		return String(s)
	}
}

func fromProps(props map[string]any) Map {
	out := make(Map, len(props))
	for k, v := range props {
		out[k] = FromDriver(v)
	}
	return out
}
