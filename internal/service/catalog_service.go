package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/repository"
)

var (
	// ErrNotFound is returned by single entity lookups that match nothing.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput wraps validation failures of inbound payloads.
	ErrInvalidInput = errors.New("invalid input")
)

// listSeparator joins list parameters; the query splits them back server side.
const listSeparator = "\x1f"

const (
	personsByTitleCypher = `MATCH (n:Person {title: $title}) RETURN n`

	// Map-valued properties: Memgraph only.
	upsertPersonCypher = `
MERGE (n:Person {uid: $uid})
SET n.title = $title,
    n.permalink = $permalink,
    n.biography = CASE WHEN $full_name = '' AND $birth_date = '' THEN null ELSE {
        full_name: CASE $full_name WHEN '' THEN null ELSE $full_name END,
        birth_date: CASE $birth_date WHEN '' THEN null ELSE $birth_date END
    } END,
    n.influences = CASE WHEN $persons = '' AND $work_of_arts = '' THEN null ELSE {
        persons: CASE $persons WHEN '' THEN [] ELSE split($persons, $sep) END,
        work_of_arts: CASE $work_of_arts WHEN '' THEN [] ELSE split($work_of_arts, $sep) END
    } END
RETURN n`
)

// EntityQuerier runs a parameterised query and decodes the result.
type EntityQuerier[T any] interface {
	Query(ctx context.Context, template string, params map[string]string) ([]T, error)
}

// Stores groups the read and write repositories of the catalog.
type Stores struct {
	Persons      EntityQuerier[domain.Person]
	PersonWrites EntityQuerier[domain.Person]
	Movies       EntityQuerier[domain.Movie]
	MovieWrites  EntityQuerier[domain.Movie]
}

// CatalogService answers person and movie lookups and persists updates.
type CatalogService struct {
	stores   Stores
	validate *validator.Validate
}

// NewCatalogService constructs a CatalogService over the supplied stores.
func NewCatalogService(stores Stores) *CatalogService {
	return &CatalogService{
		stores:   stores,
		validate: validator.New(),
	}
}

// PersonsByTitle lists every person with the given title.
func (s *CatalogService) PersonsByTitle(ctx context.Context, title string) ([]domain.Person, error) {
	return s.stores.Persons.Query(ctx, personsByTitleCypher, map[string]string{"title": title})
}

// PersonByUID returns the person identified by uid.
func (s *CatalogService) PersonByUID(ctx context.Context, uid string) (domain.Person, error) {
	stmt, err := repository.MatchByProperty(repository.LabelPerson, "uid", uid)
	if err != nil {
		return domain.Person{}, err
	}
	people, err := s.stores.Persons.Query(ctx, stmt.Query, stmt.Params)
	if err != nil {
		return domain.Person{}, err
	}
	return single(people, "person", uid)
}

// MoviesByTitle lists every movie with the given title.
func (s *CatalogService) MoviesByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	stmt, err := repository.MatchByProperty(repository.LabelMovie, "title", title)
	if err != nil {
		return nil, err
	}
	return s.stores.Movies.Query(ctx, stmt.Query, stmt.Params)
}

// MovieByUID returns the movie identified by uid.
func (s *CatalogService) MovieByUID(ctx context.Context, uid string) (domain.Movie, error) {
	stmt, err := repository.MatchByProperty(repository.LabelMovie, "uid", uid)
	if err != nil {
		return domain.Movie{}, err
	}
	movies, err := s.stores.Movies.Query(ctx, stmt.Query, stmt.Params)
	if err != nil {
		return domain.Movie{}, err
	}
	return single(movies, "movie", uid)
}

// UpsertPerson creates or updates a person and returns it as stored.
func (s *CatalogService) UpsertPerson(ctx context.Context, input PersonInput) (domain.Person, error) {
	input = normalizePerson(input)
	if err := s.check(input); err != nil {
		return domain.Person{}, err
	}

	people, err := s.stores.PersonWrites.Query(ctx, upsertPersonCypher, map[string]string{
		"uid":          input.UID,
		"title":        input.Title,
		"permalink":    input.Permalink,
		"full_name":    input.Biography.FullName,
		"birth_date":   input.Biography.BirthDate,
		"persons":      strings.Join(input.Influences.Persons, listSeparator),
		"work_of_arts": strings.Join(input.Influences.WorkOfArts, listSeparator),
		"sep":          listSeparator,
	})
	if err != nil {
		return domain.Person{}, fmt.Errorf("upsert person %s: %w", input.UID, err)
	}
	return single(people, "person", input.UID)
}

// UpsertMovie creates or updates a movie and returns it as stored.
func (s *CatalogService) UpsertMovie(ctx context.Context, input MovieInput) (domain.Movie, error) {
	input = normalizeMovie(input)
	if err := s.check(input); err != nil {
		return domain.Movie{}, err
	}

	stmt, err := repository.MergeByProperty(repository.LabelMovie, "uid", input.UID, map[string]string{
		"title":     input.Title,
		"permalink": input.Permalink,
	})
	if err != nil {
		return domain.Movie{}, err
	}
	movies, err := s.stores.MovieWrites.Query(ctx, stmt.Query, stmt.Params)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("upsert movie %s: %w", input.UID, err)
	}
	return single(movies, "movie", input.UID)
}

func (s *CatalogService) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}

func normalizePerson(in PersonInput) PersonInput {
	in.UID = cleanText(in.UID)
	in.Title = cleanText(in.Title)
	in.Permalink = cleanText(in.Permalink)
	if in.Permalink == "" {
		in.Permalink = cleanText(slugify(in.Title))
	}
	in.Biography.FullName = cleanText(in.Biography.FullName)
	in.Biography.BirthDate = strings.TrimSpace(in.Biography.BirthDate)
	in.Influences.Persons = normalizeNames(in.Influences.Persons)
	in.Influences.WorkOfArts = normalizeNames(in.Influences.WorkOfArts)
	return in
}

func normalizeMovie(in MovieInput) MovieInput {
	in.UID = cleanText(in.UID)
	in.Title = cleanText(in.Title)
	in.Permalink = cleanText(in.Permalink)
	if in.Permalink == "" {
		in.Permalink = cleanText(slugify(in.Title))
	}
	return in
}

func single[T any](items []T, entity, uid string) (T, error) {
	var zero T
	switch len(items) {
	case 0:
		return zero, fmt.Errorf("%s %s: %w", entity, uid, ErrNotFound)
	case 1:
		return items[0], nil
	default:
		return zero, fmt.Errorf("%s %s: expected 1 record but found %d", entity, uid, len(items))
	}
}
