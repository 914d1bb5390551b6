package core

import (
	"context"
	"fmt"

	"github.com/agenthands/kinship/internal/core/assembly"
	"github.com/agenthands/kinship/internal/core/community"
	"github.com/agenthands/kinship/internal/core/model"
	"github.com/agenthands/kinship/internal/core/summary"
	"github.com/agenthands/kinship/internal/core/visibility"
	"github.com/agenthands/kinship/internal/observability"
	"github.com/agenthands/kinship/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kinship answers graph and match queries over a Store and seeds it from
// match records.
type Kinship struct {
	Store      store.Store
	Detector   community.Detector
	Summarizer *summary.Summarizer
	Tracer     *observability.Tracer
	Metrics    *observability.Collector
	Log        *zap.SugaredLogger
	Options    assembly.Options
}

func NewKinship(s store.Store, detector community.Detector, tracer *observability.Tracer, log *zap.SugaredLogger) *Kinship {
	return &Kinship{
		Store:      s,
		Detector:   detector,
		Summarizer: summary.NewSummarizer(),
		Tracer:     tracer,
		Log:        log,
		Options:    assembly.DefaultOptions(),
	}
}

type ColoredGraph struct {
	Nodes    []model.Node    `json:"nodes"`
	Links    []model.Link    `json:"links"`
	Clusters []model.Cluster `json:"clusters"`
}

type RenderView struct {
	Nodes []model.SimNode `json:"nodes"`
	Links []model.Link    `json:"links"`
}

type SeedResult struct {
	Matches int `json:"matches"`
	Nodes   int `json:"nodes"`
	Links   int `json:"links"`
}

func (k *Kinship) BuildIndices(ctx context.Context) error {
	return k.Store.BuildIndices(ctx)
}

// GetGraphData reads nodes and links concurrently. The two reads are not a
// snapshot; a concurrent seed may be observed half applied.
func (k *Kinship) GetGraphData(ctx context.Context) (model.Graph, error) {
	ctx, span := k.Tracer.Start(ctx, observability.MarkStoreRead)
	defer span.End()

	var graph model.Graph
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, err := k.Store.ListNodes(gctx)
		if err != nil {
			return err
		}
		graph.Nodes = nodes
		return nil
	})
	g.Go(func() error {
		links, err := k.Store.ListLinks(gctx)
		if err != nil {
			return err
		}
		graph.Links = links
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return model.Graph{}, fmt.Errorf("failed to read graph: %w", err)
	}

	if graph.Nodes == nil {
		graph.Nodes = []model.Node{}
	}
	if graph.Links == nil {
		graph.Links = []model.Link{}
	}
	span.SetAttributes(attribute.Int("nodes", len(graph.Nodes)), attribute.Int("links", len(graph.Links)))
	return graph, nil
}

func (k *Kinship) FindMatchesByPersonName(ctx context.Context, name string) ([]model.MatchRecord, error) {
	matches, err := k.Store.FindMatchesByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches by name: %w", err)
	}
	if matches == nil {
		matches = []model.MatchRecord{}
	}
	return matches, nil
}

func (k *Kinship) FindMatchesBySurname(ctx context.Context, surname string) ([]model.MatchRecord, error) {
	matches, err := k.Store.FindMatchesBySurname(ctx, surname)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches by surname: %w", err)
	}
	if matches == nil {
		matches = []model.MatchRecord{}
	}
	return matches, nil
}

func (k *Kinship) Clusters(ctx context.Context) ([]model.Cluster, error) {
	graph, err := k.GetGraphData(ctx)
	if err != nil {
		return nil, err
	}
	return k.clusterize(ctx, graph)
}

func (k *Kinship) clusterize(ctx context.Context, graph model.Graph) ([]model.Cluster, error) {
	var clusters []model.Cluster
	err := k.Tracer.Trace(ctx, observability.MarkClusterize, func(context.Context) error {
		var err error
		clusters, err = community.Clusterize(graph.Nodes, graph.Links, k.Detector)
		return err
	})
	if err != nil {
		return nil, err
	}

	if k.Metrics != nil {
		k.Metrics.Clusters.Set(float64(len(clusters)))
	}
	return clusters, nil
}

// ColoredGraph returns the graph with every node painted in its cluster colour.
// Stored nodes keep their assembly colours.
func (k *Kinship) ColoredGraph(ctx context.Context) (ColoredGraph, error) {
	graph, err := k.GetGraphData(ctx)
	if err != nil {
		return ColoredGraph{}, err
	}
	clusters, err := k.clusterize(ctx, graph)
	if err != nil {
		return ColoredGraph{}, err
	}

	return ColoredGraph{
		Nodes:    community.ColorByCluster(graph.Nodes, clusters),
		Links:    graph.Links,
		Clusters: clusters,
	}, nil
}

// RenderGraph returns cluster-coloured nodes wrapped for a force layout.
func (k *Kinship) RenderGraph(ctx context.Context) (RenderView, error) {
	colored, err := k.ColoredGraph(ctx)
	if err != nil {
		return RenderView{}, err
	}

	nodes := make([]model.SimNode, 0, len(colored.Nodes))
	for _, n := range colored.Nodes {
		nodes = append(nodes, model.NewSimNode(n))
	}
	return RenderView{Nodes: nodes, Links: colored.Links}, nil
}

// Visibility applies toggle to disabled and computes what the resulting
// selection hides.
func (k *Kinship) Visibility(ctx context.Context, disabled, toggle []string) (visibility.State, error) {
	links, err := k.Store.ListLinks(ctx)
	if err != nil {
		return visibility.State{}, fmt.Errorf("failed to list links: %w", err)
	}

	_, span := k.Tracer.Start(ctx, observability.MarkClosure)
	defer span.End()

	state := visibility.Compute(links, visibility.Toggle(disabled, toggle))
	span.SetAttributes(attribute.Int("related", len(state.Related)))
	return state, nil
}

func (k *Kinship) DescribeNode(ctx context.Context, id string) (summary.NodeDetail, error) {
	graph, err := k.GetGraphData(ctx)
	if err != nil {
		return summary.NodeDetail{}, err
	}
	clusters, err := k.clusterize(ctx, graph)
	if err != nil {
		return summary.NodeDetail{}, err
	}
	return k.Summarizer.DescribeNode(graph, clusters, id)
}

func (k *Kinship) ClusterSummaries(ctx context.Context) ([]summary.ClusterSummary, error) {
	clusters, err := k.Clusters(ctx)
	if err != nil {
		return nil, err
	}
	return k.Summarizer.SummarizeClusters(clusters), nil
}

// Seed replaces all stored matches with records, then rebuilds the surname
// graph from them. Nodes are written before links.
func (k *Kinship) Seed(ctx context.Context, records []model.MatchRecord) (SeedResult, error) {
	ctx, span := k.Tracer.Start(ctx, observability.MarkSeed, attribute.Int("records", len(records)))
	defer span.End()

	if err := k.Store.ReplaceAllMatches(ctx, records); err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to seed matches: %w", err)
	}
	k.Log.Infow("Seeded matches", "count", len(records))

	shorts := make([]model.ShortMatch, 0, len(records))
	for _, r := range records {
		shorts = append(shorts, r.Short())
	}

	_, groupSpan := k.Tracer.Start(ctx, observability.MarkGroup)
	groups := assembly.GroupBySurname(shorts)
	groupSpan.SetAttributes(attribute.Int("groups", len(groups)))
	groupSpan.End()

	_, assembleSpan := k.Tracer.Start(ctx, observability.MarkAssemble)
	graph := assembly.AssembleGroups(groups, k.Options)
	assembleSpan.End()

	if err := k.Store.ReplaceAllNodes(ctx, graph.Nodes); err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to seed nodes: %w", err)
	}
	if err := k.Store.ReplaceAllLinks(ctx, graph.Links); err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to seed links: %w", err)
	}

	result := SeedResult{Matches: len(records), Nodes: len(graph.Nodes), Links: len(graph.Links)}
	k.Log.Infow("Seeded graph", "nodes", result.Nodes, "links", result.Links)
	if k.Metrics != nil {
		k.Metrics.RecordSeed(result.Matches, result.Nodes, result.Links)
	}
	return result, nil
}
