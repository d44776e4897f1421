package decode

import (
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/graph"
)

// Movie decodes a movie node.
func Movie(node graph.Node) (domain.Movie, bool) {
	root, ok := Root(node)
	if !ok {
		return domain.Movie{}, false
	}
	return domain.Movie{Root: root}, true
}
