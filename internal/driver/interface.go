package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the bolt query executor behind the Memgraph record store. The
// store persists match records as :Match nodes and the surname graph as
// :GraphNode vertices through it; store tests substitute a mock.
type GraphDriver interface {
	// ExecuteQuery runs one Cypher statement and returns its fully read result.
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	// BuildIndices creates the lookup indexes on match name, match order and node id.
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

var _ GraphDriver = (*MemgraphDriver)(nil)
