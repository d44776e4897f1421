package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanshika/filmgraph/internal/app"
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/service"
)

var errTitleRequired = errors.New("--title is required")

var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "List persons with a given title",
	RunE:  runPersons,
}

var personCmd = &cobra.Command{
	Use:   "person UID",
	Short: "Show the person with the given uid",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerson,
}

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies with a given title",
	RunE:  runMovies,
}

var movieCmd = &cobra.Command{
	Use:   "movie UID",
	Short: "Show the movie with the given uid",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

var (
	personsTitle string
	moviesTitle  string
)

func init() {
	personsCmd.Flags().StringVar(&personsTitle, "title", "", "exact person title to match")
	moviesCmd.Flags().StringVar(&moviesTitle, "title", "", "exact movie title to match")

	rootCmd.AddCommand(personsCmd, personCmd, moviesCmd, movieCmd)
}

func runPersons(cmd *cobra.Command, _ []string) error {
	if personsTitle == "" {
		return errTitleRequired
	}
	return runQuery(cmd, func(ctx context.Context, svc *service.CatalogService) ([]domain.Person, error) {
		return svc.PersonsByTitle(ctx, personsTitle)
	})
}

func runPerson(cmd *cobra.Command, args []string) error {
	return runQuery(cmd, func(ctx context.Context, svc *service.CatalogService) ([]domain.Person, error) {
		person, err := svc.PersonByUID(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []domain.Person{person}, nil
	})
}

func runMovies(cmd *cobra.Command, _ []string) error {
	if moviesTitle == "" {
		return errTitleRequired
	}
	return runQuery(cmd, func(ctx context.Context, svc *service.CatalogService) ([]domain.Movie, error) {
		return svc.MoviesByTitle(ctx, moviesTitle)
	})
}

func runMovie(cmd *cobra.Command, args []string) error {
	return runQuery(cmd, func(ctx context.Context, svc *service.CatalogService) ([]domain.Movie, error) {
		movie, err := svc.MovieByUID(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []domain.Movie{movie}, nil
	})
}

func runQuery[T fmt.Stringer](cmd *cobra.Command, query func(context.Context, *service.CatalogService) ([]T, error)) error {
	ctx := cmd.Context()
	catalog, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog(ctx, catalog)

	entities, err := query(ctx, catalog.Service)
	if err != nil {
		return err
	}
	return printEntities(cmd.OutOrStdout(), entities)
}

func closeCatalog(ctx context.Context, catalog *app.Catalog) {
	_ = catalog.Close(context.WithoutCancel(ctx))
}

func printEntities[T fmt.Stringer](w io.Writer, entities []T) error {
	if outputJSON {
		data, err := json.MarshalIndent(entities, "", "  ")
		if err != nil {
			return fmt.Errorf("encode entities: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	for _, entity := range entities {
		if _, err := fmt.Fprintln(w, entity.String()); err != nil {
			return err
		}
	}
	return nil
}
