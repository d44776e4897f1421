package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/app"
	"github.com/vanshika/filmgraph/internal/config"
	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/repository"
	"github.com/vanshika/filmgraph/internal/service"
)

func useDriver(t *testing.T, driver *graph.MemoryDriver) {
	t.Helper()
	original := openCatalog
	openCatalog = func(context.Context) (*app.Catalog, error) {
		cfg := config.Default()
		cfg.Breaker.Enabled = false
		if policyFlag != "" {
			cfg.Graph.DecodePolicy = policyFlag
		}
		return app.New(driver, cfg, zap.NewNop())
	}
	t.Cleanup(func() {
		openCatalog = original
		personsTitle, moviesTitle, policyFlag, outputJSON = "", "", "", false
	})
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func node(label, uid, title string) graph.Record {
	return graph.Record{Keys: []string{"n"}, Values: []graph.Value{graph.Node{
		Labels: []string{label},
		Props: graph.Map{
			"uid":       graph.String(uid),
			"title":     graph.String(title),
			"permalink": graph.String(uid + "-link"),
		},
	}}}
}

func TestPersonsCommand(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(node("Person", "1", "John Doe"), node("Person", "2", "John Doe"))
	useDriver(t, driver)

	out, err := execute("persons", "--title", "John Doe")

	require.NoError(t, err)
	assert.Equal(t, "<1: John Doe>\n<2: John Doe>\n", out)
	require.Len(t, driver.Executed(), 1)
	assert.Equal(t, "John Doe", driver.Executed()[0].Params["title"])
	assert.Zero(t, driver.OpenConnections())
}

func TestPersonsCommandRequiresTitle(t *testing.T) {
	useDriver(t, graph.NewMemoryDriver())

	_, err := execute("persons")

	assert.ErrorIs(t, err, errTitleRequired)
}

func TestMovieCommandJSON(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(node("Movie", "MOV-1", "Cleo from 5 to 7"))
	useDriver(t, driver)

	out, err := execute("movie", "MOV-1", "--json")
	require.NoError(t, err)

	var decoded []map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "MOV-1", decoded[0]["root"]["uid"])
	assert.Equal(t, "MOV-1-link", decoded[0]["root"]["permalink"])
}

func TestPersonCommandNotFound(t *testing.T) {
	driver := graph.NewMemoryDriver()
	useDriver(t, driver)

	_, err := execute("person", "missing")

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPersonsCommandPolicy(t *testing.T) {
	broken := graph.Record{Keys: []string{"n"}, Values: []graph.Value{graph.Node{Props: graph.Map{"uid": graph.String("3")}}}}

	driver := graph.NewMemoryDriver()
	driver.PushRecords(node("Person", "1", "Ada"), broken)
	useDriver(t, driver)
	_, err := execute("persons", "--title", "Ada")
	assert.ErrorIs(t, err, repository.ErrDecodeRejected)

	driver = graph.NewMemoryDriver()
	driver.PushRecords(node("Person", "1", "Ada"), broken)
	useDriver(t, driver)
	out, err := execute("persons", "--title", "Ada", "--policy", "lenient")
	require.NoError(t, err)
	assert.Equal(t, "<1: Ada>\n", out)
}

func TestPingCommand(t *testing.T) {
	useDriver(t, graph.NewMemoryDriver())
	out, err := execute("ping")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	useDriver(t, graph.NewMemoryDriver().WithConnectivityError(errors.New("refused")))
	_, err = execute("ping")
	assert.ErrorContains(t, err, "graph unreachable")
}
