package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vanshika/filmgraph/internal/decode"
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/metrics"
)

const byUID = "MATCH (n:Person {uid: $uid}) RETURN n"

func personNode(uid, title string) graph.Node {
	return graph.Node{
		ID:     "node-" + uid,
		Labels: []string{"Person"},
		Props: graph.Map{
			"uid":       graph.String(uid),
			"title":     graph.String(title),
			"permalink": graph.String(title + "-link"),
		},
	}
}

func nodeRecord(values ...graph.Value) graph.Record {
	keys := make([]string, len(values))
	for i := range values {
		keys[i] = "n"
	}
	return graph.Record{Keys: keys, Values: values}
}

func TestQueryReturnsEntitiesInRecordOrder(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(
		nodeRecord(personNode("42", "first")),
		nodeRecord(personNode("43", "second")),
	)
	repo := New(driver, decode.Person, WithEntityName("person"))

	people, err := repo.Query(context.Background(), byUID, map[string]string{"uid": "42"})

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "first", people[0].Root.Title)
	assert.Equal(t, "second", people[1].Root.Title)

	executed := driver.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, byUID, executed[0].Query)
	assert.Equal(t, map[string]any{"uid": "42"}, executed[0].Params)
	assert.Equal(t, graph.AccessModeRead, executed[0].Mode)
	assert.Equal(t, 0, driver.OpenConnections())
}

func TestQueryAcrossBatches(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushResult(
		[]graph.Record{nodeRecord(personNode("1", "a"))},
		[]graph.Record{},
		[]graph.Record{nodeRecord(personNode("2", "b")), nodeRecord(personNode("3", "c"))},
	)
	repo := New(driver, decode.Person)

	people, err := repo.Query(context.Background(), byUID, nil)

	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{people[0].Root.UID, people[1].Root.UID, people[2].Root.UID})
}

func TestQueryEmptyResult(t *testing.T) {
	driver := graph.NewMemoryDriver()
	repo := New(driver, decode.Person)

	people, err := repo.Query(context.Background(), byUID, map[string]string{"uid": "none"})

	require.NoError(t, err)
	require.NotNil(t, people)
	assert.Empty(t, people)
	assert.Equal(t, 0, driver.OpenConnections())
}

func TestQueryRejectsNonNodeValues(t *testing.T) {
	for _, policy := range []Policy{PolicyStrict, PolicyLenient} {
		t.Run(policy.String(), func(t *testing.T) {
			driver := graph.NewMemoryDriver()
			driver.PushRecords(
				nodeRecord(personNode("1", "a")),
				nodeRecord(graph.Relationship{ID: "r1", Type: "INFLUENCED"}),
				nodeRecord(personNode("2", "b")),
			)
			repo := New(driver, decode.Person, WithPolicy(policy))

			people, err := repo.Query(context.Background(), byUID, nil)

			require.Error(t, err)
			assert.Nil(t, people)
			assert.ErrorIs(t, err, ErrUnexpectedValue)
			assert.Contains(t, err.Error(), "relationship")
			assert.Equal(t, 0, driver.OpenConnections())
		})
	}
}

func TestQueryStrictPolicyAbortsOnRejectedNode(t *testing.T) {
	driver := graph.NewMemoryDriver()
	invalid := graph.Node{ID: "bad", Props: graph.Map{"uid": graph.String("9")}}
	driver.PushRecords(nodeRecord(personNode("1", "a")), nodeRecord(invalid))
	repo := New(driver, decode.Person)

	people, err := repo.Query(context.Background(), byUID, nil)

	assert.Nil(t, people)
	assert.ErrorIs(t, err, ErrDecodeRejected)
	assert.Equal(t, KindDecodeRejected, KindOf(err))
	assert.Equal(t, 0, driver.OpenConnections())
}

func TestQueryLenientPolicySkipsRejectedNode(t *testing.T) {
	driver := graph.NewMemoryDriver()
	invalid := graph.Node{ID: "bad", Props: graph.Map{"uid": graph.String("9")}}
	driver.PushRecords(nodeRecord(personNode("1", "a")), nodeRecord(invalid), nodeRecord(personNode("2", "b")))
	collector := metrics.NewCollector("filmgraph")
	repo := New(driver, decode.Person,
		WithPolicy(PolicyLenient),
		WithEntityName("person"),
		WithMetrics(collector),
	)

	people, err := repo.Query(context.Background(), byUID, nil)

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, PolicyLenient, repo.Policy())
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.RecordsSkipped.WithLabelValues("person")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.RecordsDecoded.WithLabelValues("person")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Queries.WithLabelValues("person", metrics.OutcomeOK)))
}

func TestQueryDriverFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name     string
		driver   *graph.MemoryDriver
		sentinel error
		open     int
	}{
		{name: "connect", driver: graph.NewMemoryDriver().WithConnectError(boom), sentinel: ErrConnectionFailed},
		{name: "execute", driver: graph.NewMemoryDriver().WithExecuteError(boom), sentinel: ErrQueryFailed},
		{name: "fetch", driver: graph.NewMemoryDriver().WithFetchError(boom), sentinel: ErrQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := metrics.NewCollector("filmgraph")
			repo := New(tt.driver, decode.Person, WithEntityName("person"), WithMetrics(collector))

			people, err := repo.Query(context.Background(), byUID, map[string]string{"uid": "42"})

			assert.Nil(t, people)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tt.open, tt.driver.OpenConnections())
			assert.Equal(t, 1, testutil.CollectAndCount(collector.Queries))
		})
	}
}

func TestQueryWithColumn(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(graph.Record{
		Keys:   []string{"score", "n"},
		Values: []graph.Value{graph.Float(0.9), personNode("1", "a")},
	})
	repo := New(driver, decode.Person, WithColumn("n"))

	people, err := repo.Query(context.Background(), "MATCH (n:Person) RETURN 0.9 AS score, n", nil)
	require.NoError(t, err)
	require.Len(t, people, 1)

	driver.PushRecords(graph.Record{Keys: []string{"m"}, Values: []graph.Value{personNode("1", "a")}})
	_, err = repo.Query(context.Background(), "MATCH (m:Person) RETURN m", nil)
	assert.ErrorIs(t, err, ErrUnexpectedValue)
}

func TestQueryWithoutColumnRequiresEveryValueToBeANode(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(graph.Record{
		Keys:   []string{"score", "n"},
		Values: []graph.Value{graph.Float(0.9), personNode("1", "a")},
	})
	repo := New(driver, decode.Person)

	_, err := repo.Query(context.Background(), "MATCH (n:Person) RETURN 0.9 AS score, n", nil)
	assert.ErrorIs(t, err, ErrUnexpectedValue)
}

func TestQueryWriteAccessMode(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(nodeRecord(personNode("1", "a")))
	repo := New(driver, decode.Person, WithAccessMode(graph.AccessModeWrite))

	_, err := repo.Query(context.Background(), "MERGE (n:Person {uid: $uid}) RETURN n", map[string]string{"uid": "1"})

	require.NoError(t, err)
	assert.Equal(t, graph.AccessModeWrite, driver.Executed()[0].Mode)
}

type upperBinder struct{}

func (upperBinder) Bind(params map[string]string) map[string]any {
	out := map[string]any{}
	for k, v := range params {
		out[k] = "X" + v
	}
	return out
}

func TestQueryUsesConfiguredBinder(t *testing.T) {
	driver := graph.NewMemoryDriver()
	repo := New(driver, decode.Person, WithBinder(upperBinder{}))

	_, err := repo.Query(context.Background(), byUID, map[string]string{"uid": "1"})

	require.NoError(t, err)
	assert.Equal(t, "X1", driver.Executed()[0].Params["uid"])
}

func TestQueryMovies(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(nodeRecord(graph.Node{Labels: []string{"Movie"}, Props: graph.Map{
		"uid": graph.String("m1"), "title": graph.String("Metropolis"), "permalink": graph.String("metropolis"),
	}}))
	repo := New[domain.Movie](driver, decode.Movie)

	movies, err := repo.Query(context.Background(), "MATCH (n:Movie) RETURN n", nil)

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Metropolis", movies[0].Root.Title)
}

func TestErrorMatchesByKind(t *testing.T) {
	err := newError(KindQueryFailed, errors.New("syntax"), "execute query")

	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.NotErrorIs(t, err, ErrConnectionFailed)
	assert.Equal(t, "[QUERY_FAILED] execute query: syntax", err.Error())
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy(" Lenient ")
	require.NoError(t, err)
	assert.Equal(t, PolicyLenient, p)

	_, err = ParsePolicy("sometimes")
	assert.Error(t, err)
}

type recordingTracer struct {
	noop.Tracer
	spans []string
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.spans = append(t.spans, name)
	return t.Tracer.Start(ctx, name, opts...)
}

func TestQueryStartsSpanOnTracer(t *testing.T) {
	driver := graph.NewMemoryDriver()
	driver.PushRecords(nodeRecord(personNode("1", "a")))
	tracer := &recordingTracer{}
	repo := New(driver, decode.Person, WithTracer(tracer))

	_, err := repo.Query(context.Background(), byUID, map[string]string{"uid": "1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"repository.query"}, tracer.spans)
}
