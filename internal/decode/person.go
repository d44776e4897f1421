package decode

import (
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
)

// Person decodes a person node. The boolean is false when the node lacks a
// valid identity; nothing partial is returned in that case.
func Person(node graph.Node) (domain.Person, bool) {
	root, ok := Root(node)
	if !ok {
		return domain.Person{}, false
	}
	return domain.Person{
		Root:       root,
		Biography:  biography(node),
		Influences: influences(node),
	}, true
}

func biography(node graph.Node) *domain.Biography {
	v, _ := node.Prop(KeyBiography)
	m, ok := v.(graph.Map)
	if !ok {
		return nil
	}
	return &domain.Biography{
		FullName:  optionalString(m, KeyFullName),
		BirthDate: optionalString(m, KeyBirthDate),
	}
}

func influences(node graph.Node) *domain.Influences {
	v, _ := node.Prop(KeyInfluences)
	m, ok := v.(graph.Map)
	if !ok {
		return nil
	}
	return &domain.Influences{
		Persons:    stringList(m, KeyPersons),
		WorkOfArts: stringList(m, KeyWorkOfArts),
	}
}
