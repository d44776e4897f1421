package repository

import (
	"fmt"

	"github.com/saulfrancisco-ruizacevedo/gocypher"
	"github.com/spf13/cast"
)

// Node labels of the catalog.
const (
	LabelPerson = "Person"
	LabelMovie  = "Movie"
)

// Statement is a query template with its string parameters.
type Statement struct {
	Query  string
	Params map[string]string
}

// MatchByProperty builds `MATCH (n:<label> {<key>: $p}) RETURN n`.
func MatchByProperty(label, key, value string) (Statement, error) {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", label).WithProperties(map[string]interface{}{key: value})).
		Return("n").
		Build()
	if err != nil {
		return Statement{}, fmt.Errorf("build match %s by %s: %w", label, key, err)
	}
	return newStatement(query, params)
}

// MergeByProperty builds a MERGE on key that sets the remaining properties
// and returns the node.
func MergeByProperty(label, key, value string, set map[string]string) (Statement, error) {
	setProps := make(map[string]interface{}, len(set))
	for prop, v := range set {
		setProps["n."+prop] = v
	}

	qb := gocypher.NewQueryBuilder().
		Merge(gocypher.N("n", label).WithProperties(map[string]interface{}{key: value}))
	if len(setProps) > 0 {
		qb = qb.Set(setProps)
	}
	query, params, err := qb.Return("n").Build()
	if err != nil {
		return Statement{}, fmt.Errorf("build merge %s by %s: %w", label, key, err)
	}
	return newStatement(query, params)
}

func newStatement(query string, params map[string]interface{}) (Statement, error) {
	out := make(map[string]string, len(params))
	for k, v := range params {
		s, err := cast.ToStringE(v)
		if err != nil {
			return Statement{}, fmt.Errorf("parameter %s: %w", k, err)
		}
		out[k] = s
	}
	return Statement{Query: query, Params: out}, nil
}
