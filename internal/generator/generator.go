package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vanshika/filmgraph/internal/service"
)

// Dataset contains the generated persons and movies.
type Dataset struct {
	Persons []service.PersonInput `json:"persons"`
	Movies  []service.MovieInput  `json:"movies"`
}

// Generator produces synthetic catalog entries in the shape the ingest command reads.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumPersons <= 0 {
		cfg.NumPersons = defaults.NumPersons
	}
	if cfg.NumMovies < 0 {
		cfg.NumMovies = defaults.NumMovies
	}
	if cfg.BiographyChance < 0 {
		cfg.BiographyChance = defaults.BiographyChance
	}
	if cfg.InfluenceChance < 0 {
		cfg.InfluenceChance = defaults.InfluenceChance
	}
	if cfg.MaxInfluences <= 0 {
		cfg.MaxInfluences = defaults.MaxInfluences
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultNameFragments(),
	}
}

// Generate synthesises movies, then persons influenced by each other and by
// those movies. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	movies := make([]service.MovieInput, g.cfg.NumMovies)
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		title := g.randomMovieTitle()
		movies[i] = service.MovieInput{
			UID:       fmt.Sprintf("MOV-%06d", i+1),
			Title:     title,
			Permalink: fmt.Sprintf("%s-%d", permalink(title), i+1),
		}
	}

	persons := make([]service.PersonInput, g.cfg.NumPersons)
	for i := range persons {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		title := g.randomName()
		person := service.PersonInput{
			UID:       fmt.Sprintf("PER-%06d", i+1),
			Title:     title,
			Permalink: fmt.Sprintf("%s-%d", permalink(title), i+1),
		}
		if g.rand.Float64() < g.cfg.BiographyChance {
			person.Biography = service.BiographyInput{
				FullName:  g.randomFullName(title),
				BirthDate: g.randomBirthDate(),
			}
		}
		if g.rand.Float64() < g.cfg.InfluenceChance {
			person.Influences = service.InfluencesInput{
				Persons:    g.pickPersons(persons[:i]),
				WorkOfArts: g.pickMovies(movies),
			}
		}
		persons[i] = person
	}

	return Dataset{Persons: persons, Movies: movies}, nil
}

func (g *Generator) pickPersons(earlier []service.PersonInput) []string {
	if len(earlier) == 0 {
		return nil
	}
	n := 1 + g.rand.Intn(g.cfg.MaxInfluences)
	out := make([]string, 0, n)
	for j := 0; j < n; j++ {
		out = append(out, earlier[g.rand.Intn(len(earlier))].Title)
	}
	return out
}

func (g *Generator) pickMovies(movies []service.MovieInput) []string {
	if len(movies) == 0 {
		return nil
	}
	n := g.rand.Intn(g.cfg.MaxInfluences + 1)
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for j := 0; j < n; j++ {
		out = append(out, movies[g.rand.Intn(len(movies))].Title)
	}
	return out
}

func (g *Generator) randomName() string {
	return fmt.Sprintf("%s %s", g.pick(g.fragments.first), g.pick(g.fragments.last))
}

func (g *Generator) randomFullName(name string) string {
	first, last, _ := strings.Cut(name, " ")
	return fmt.Sprintf("%s %s %s", first, g.pick(g.fragments.first), last)
}

func (g *Generator) randomBirthDate() string {
	dob := time.Date(1880+g.rand.Intn(120), time.Month(1+g.rand.Intn(12)), 1+g.rand.Intn(28), 0, 0, 0, 0, time.UTC)
	return dob.Format("2006-01-02")
}

func (g *Generator) randomMovieTitle() string {
	return fmt.Sprintf("%s %s", g.pick(g.fragments.adjectives), g.pick(g.fragments.nouns))
}

func (g *Generator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

func permalink(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}

type nameFragments struct {
	first      []string
	last       []string
	adjectives []string
	nouns      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:      []string{"Agnès", "Akira", "Alfred", "Chantal", "Federico", "Fritz", "Ingmar", "Jean", "Lina", "Maya", "Orson", "Satyajit", "Sergei", "Věra", "Yasujirō"},
		last:       []string{"Akerman", "Bergman", "Chytilová", "Deren", "Eisenstein", "Fellini", "Godard", "Hitchcock", "Kurosawa", "Lang", "Ozu", "Ray", "Varda", "Welles", "Wertmüller"},
		adjectives: []string{"Silent", "Burning", "Last", "Red", "Hidden", "Wild", "Bitter", "Seventh", "Quiet", "Lost"},
		nouns:      []string{"Seal", "Harvest", "Mirror", "Station", "Garden", "Citizen", "Voyage", "Rope", "Daisies", "Strawberries"},
	}
}
