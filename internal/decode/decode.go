// Package decode turns graph nodes into domain entities.
//
// Decoding is total: every property variant is handled. A missing or
// mistyped optional property decodes to absence, only the identity fields
// (uid, title, permalink) can reject a node.
package decode

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
)

// Property keys read from entity nodes.
const (
	KeyUID        = "uid"
	KeyTitle      = "title"
	KeyPermalink  = "permalink"
	KeyBiography  = "biography"
	KeyFullName   = "full_name"
	KeyBirthDate  = "birth_date"
	KeyInfluences = "influences"
	KeyPersons    = "persons"
	KeyWorkOfArts = "work_of_arts"
)

var validate = validator.New()

// Root decodes the identity shared by all entities. It reports false when
// any of the required properties is missing, not a string, or empty once
// quotes are stripped.
func Root(node graph.Node) (domain.StorableEntity, bool) {
	root := domain.StorableEntity{
		UID:       requiredString(node, KeyUID),
		Title:     requiredString(node, KeyTitle),
		Permalink: requiredString(node, KeyPermalink),
	}
	if err := validate.Struct(root); err != nil {
		return domain.StorableEntity{}, false
	}
	return root, true
}

// StripQuotes removes leading and trailing single and double quotes.
func StripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

func requiredString(node graph.Node, key string) string {
	v, _ := node.Prop(key)
	s, ok := v.(graph.String)
	if !ok {
		return ""
	}
	return StripQuotes(string(s))
}

func optionalString(props graph.Map, key string) *string {
	s, ok := props[key].(graph.String)
	if !ok {
		return nil
	}
	out := StripQuotes(string(s))
	return &out
}

// stringList renders every element of a list property. It returns nil when
// the property is absent or not a list.
func stringList(props graph.Map, key string) []string {
	list, ok := props[key].(graph.List)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, renderElement(item))
	}
	return out
}

func renderElement(v graph.Value) string {
	if s, ok := v.(graph.String); ok {
		return StripQuotes(string(s))
	}
	return graph.Render(v)
}
