package service

import (
	"github.com/vanshika/filmgraph/internal/decode"
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/repository"
)

// NewStores builds the catalog repositories on a shared driver. Writes run
// in write mode and always decode strictly.
func NewStores(driver graph.Driver, opts ...repository.Option) Stores {
	with := func(extra ...repository.Option) []repository.Option {
		return append(append([]repository.Option{}, opts...), extra...)
	}
	return Stores{
		Persons: repository.New(driver, decode.Person, with(
			repository.WithEntityName("person"),
		)...),
		PersonWrites: repository.New[domain.Person](driver, decode.Person, with(
			repository.WithEntityName("person"),
			repository.WithAccessMode(graph.AccessModeWrite),
			repository.WithPolicy(repository.PolicyStrict),
		)...),
		Movies: repository.New(driver, decode.Movie, with(
			repository.WithEntityName("movie"),
		)...),
		MovieWrites: repository.New[domain.Movie](driver, decode.Movie, with(
			repository.WithEntityName("movie"),
			repository.WithAccessMode(graph.AccessModeWrite),
			repository.WithPolicy(repository.PolicyStrict),
		)...),
	}
}
