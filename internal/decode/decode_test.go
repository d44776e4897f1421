package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
)

func personNode(props graph.Map) graph.Node {
	base := graph.Map{
		KeyUID:       graph.String("123"),
		KeyTitle:     graph.String("John Doe"),
		KeyPermalink: graph.String("john-doe"),
	}
	for k, v := range props {
		base[k] = v
	}
	return graph.Node{ID: "1", Labels: []string{"Person"}, Props: base}
}

func strPtr(s string) *string { return &s }

func TestPersonRootOnly(t *testing.T) {
	person, ok := Person(personNode(nil))

	require.True(t, ok)
	assert.Equal(t, domain.Person{
		Root: domain.StorableEntity{UID: "123", Title: "John Doe", Permalink: "john-doe"},
	}, person)
	assert.Nil(t, person.Biography)
	assert.Nil(t, person.Influences)
}

func TestPersonWithBiography(t *testing.T) {
	person, ok := Person(personNode(graph.Map{
		KeyBiography: graph.Map{
			KeyFullName:  graph.String("Johnathan Doe"),
			KeyBirthDate: graph.String("1990-01-01"),
		},
	}))

	require.True(t, ok)
	require.NotNil(t, person.Biography)
	assert.Equal(t, strPtr("Johnathan Doe"), person.Biography.FullName)
	assert.Equal(t, strPtr("1990-01-01"), person.Biography.BirthDate)
}

func TestPersonBiographyEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		biography graph.Value
		want      *domain.Biography
	}{
		{name: "not a map", biography: graph.String("Johnathan Doe"), want: nil},
		{name: "null", biography: graph.Null{}, want: nil},
		{name: "empty map", biography: graph.Map{}, want: &domain.Biography{}},
		{
			name:      "partial",
			biography: graph.Map{KeyFullName: graph.String("J. Doe")},
			want:      &domain.Biography{FullName: strPtr("J. Doe")},
		},
		{
			name:      "wrong nested variant",
			biography: graph.Map{KeyFullName: graph.Int(4), KeyBirthDate: graph.String("'1990'")},
			want:      &domain.Biography{BirthDate: strPtr("1990")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			person, ok := Person(personNode(graph.Map{KeyBiography: tt.biography}))
			require.True(t, ok)
			assert.Equal(t, tt.want, person.Biography)
		})
	}
}

func TestPersonRejectsInvalidIdentity(t *testing.T) {
	tests := []struct {
		name  string
		props graph.Map
	}{
		{name: "missing permalink", props: graph.Map{KeyUID: graph.String("123"), KeyTitle: graph.String("John Doe")}},
		{name: "empty uid", props: graph.Map{KeyUID: graph.String(""), KeyTitle: graph.String("t"), KeyPermalink: graph.String("p")}},
		{name: "only quotes", props: graph.Map{KeyUID: graph.String(`""`), KeyTitle: graph.String("t"), KeyPermalink: graph.String("p")}},
		{name: "uid not a string", props: graph.Map{KeyUID: graph.Int(123), KeyTitle: graph.String("t"), KeyPermalink: graph.String("p")}},
		{name: "no properties", props: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			person, ok := Person(graph.Node{Props: tt.props})
			assert.False(t, ok)
			assert.Equal(t, domain.Person{}, person)
		})
	}
}

func TestPersonStripsQuotes(t *testing.T) {
	person, ok := Person(graph.Node{Props: graph.Map{
		KeyUID:       graph.String(`"123"`),
		KeyTitle:     graph.String(`'John Doe'`),
		KeyPermalink: graph.String(`"john-doe'`),
	}})

	require.True(t, ok)
	assert.Equal(t, domain.StorableEntity{UID: "123", Title: "John Doe", Permalink: "john-doe"}, person.Root)
}

func TestPersonInfluences(t *testing.T) {
	person, ok := Person(personNode(graph.Map{
		KeyInfluences: graph.Map{
			KeyPersons:    graph.List{graph.String(`"Ada"`), graph.Int(7)},
			KeyWorkOfArts: graph.List{},
		},
	}))

	require.True(t, ok)
	require.NotNil(t, person.Influences)
	assert.Equal(t, []string{"Ada", "7"}, person.Influences.Persons)
	assert.NotNil(t, person.Influences.WorkOfArts)
	assert.Empty(t, person.Influences.WorkOfArts)
}

func TestPersonInfluencesWrongVariants(t *testing.T) {
	person, ok := Person(personNode(graph.Map{
		KeyInfluences: graph.Map{KeyPersons: graph.String("Ada")},
	}))
	require.True(t, ok)
	require.NotNil(t, person.Influences)
	assert.Nil(t, person.Influences.Persons)
	assert.Nil(t, person.Influences.WorkOfArts)

	person, ok = Person(personNode(graph.Map{KeyInfluences: graph.List{graph.String("Ada")}}))
	require.True(t, ok)
	assert.Nil(t, person.Influences)
}

func TestPersonIsIdempotent(t *testing.T) {
	node := personNode(graph.Map{
		KeyBiography:  graph.Map{KeyFullName: graph.String("Johnathan Doe")},
		KeyInfluences: graph.Map{KeyPersons: graph.List{graph.String("Ada")}},
	})

	first, ok1 := Person(node)
	second, ok2 := Person(node)

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestMovie(t *testing.T) {
	movie, ok := Movie(graph.Node{Labels: []string{"Movie"}, Props: graph.Map{
		KeyUID:       graph.String("m1"),
		KeyTitle:     graph.String("Metropolis"),
		KeyPermalink: graph.String("metropolis"),
	}})
	require.True(t, ok)
	assert.Equal(t, "Metropolis", movie.Root.Title)

	_, ok = Movie(graph.Node{Props: graph.Map{KeyUID: graph.String("m1")}})
	assert.False(t, ok)
}
