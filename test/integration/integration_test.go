//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/agenthands/kinship/internal/core"
	"github.com/agenthands/kinship/internal/core/community"
	"github.com/agenthands/kinship/internal/core/model"
	"github.com/agenthands/kinship/internal/driver"
	"github.com/agenthands/kinship/internal/observability"
	"github.com/agenthands/kinship/internal/store"
)

func newMemgraphKinship(t *testing.T) *core.Kinship {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	log := zaptest.NewLogger(t).Sugar()
	d, err := driver.NewMemgraphDriver(context.Background(), uri,
		os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), os.Getenv("MEMGRAPH_DATABASE"), log)
	require.NoError(t, err)

	s := store.NewMemgraphStore(d)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	k := core.NewKinship(s, community.NewLouvainDetector(), observability.NopTracer(), log)
	require.NoError(t, k.BuildIndices(context.Background()))
	return k
}

// records builds perSurname matches for each surname, every one listing
// its surname plus a shared "Common" surname.
func records(perSurname int, surnames ...string) []model.MatchRecord {
	var result []model.MatchRecord
	for _, s := range surnames {
		for i := 0; i < perSurname; i++ {
			tree := i
			result = append(result, model.MatchRecord{
				ID:                   uuid.NewString(),
				Name:                 fmt.Sprintf("%s Match %02d", s, i),
				Country:              "Ireland",
				IndividualsInTree:    &tree,
				AllAncestralSurnames: s + ",Common",
			})
		}
	}
	return result
}

func TestSeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	k := newMemgraphKinship(t)

	result, err := k.Seed(ctx, records(21, "Walsh", "Byrne"))
	require.NoError(t, err)
	// Walsh, Byrne, Common and 42 persons
	assert.Equal(t, 45, result.Nodes)
	assert.Equal(t, 84, result.Links)

	graph, err := k.GetGraphData(ctx)
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 45)
	assert.Equal(t, "Common", graph.Nodes[0].ID)
	assert.Equal(t, 42, graph.Nodes[0].Length)
	assert.Len(t, graph.Links, 84)

	matches, err := k.FindMatchesBySurname(ctx, "Walsh")
	require.NoError(t, err)
	assert.Len(t, matches, 21)
	require.NotNil(t, matches[3].IndividualsInTree)
	assert.Equal(t, 3, *matches[3].IndividualsInTree)

	byName, err := k.FindMatchesByPersonName(ctx, "Byrne Match 07")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Ireland", byName[0].Country)

	// reseeding replaces everything
	result, err = k.Seed(ctx, records(21, "Walsh"))
	require.NoError(t, err)
	graph, err = k.GetGraphData(ctx)
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, result.Nodes)
	assert.Len(t, graph.Links, result.Links)
}
