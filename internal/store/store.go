package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/kinship/internal/config"
	"github.com/agenthands/kinship/internal/core/model"
	"github.com/agenthands/kinship/internal/driver"
	"go.uber.org/zap"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Store persists match records and the assembled surname graph. Reads return
// records in the order they were written. Replacing nodes may drop links that
// referenced the old nodes, so callers replace links afterwards.
type Store interface {
	ListMatches(ctx context.Context) ([]model.MatchRecord, error)
	FindMatchesByName(ctx context.Context, name string) ([]model.MatchRecord, error)
	FindMatchesBySurname(ctx context.Context, surname string) ([]model.MatchRecord, error)
	ListNodes(ctx context.Context) ([]model.Node, error)
	ListLinks(ctx context.Context) ([]model.Link, error)
	ReplaceAllMatches(ctx context.Context, matches []model.MatchRecord) error
	ReplaceAllNodes(ctx context.Context, nodes []model.Node) error
	ReplaceAllLinks(ctx context.Context, links []model.Link) error
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the backend selected in cfg.
func Open(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		log.Infow("Using in-memory store")
		return NewMemoryStore(), nil
	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, cfg.Memgraph.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open memgraph store: %w", err)
		}
		return NewMemgraphStore(d), nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.SQLite.Path, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
	}
}
