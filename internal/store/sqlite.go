package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agenthands/kinship/internal/core/model"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	ord INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	match_id TEXT NOT NULL,
	name TEXT NOT NULL,
	age TEXT NOT NULL,
	country TEXT NOT NULL,
	contact_url TEXT NOT NULL,
	managed_by_name TEXT NOT NULL,
	status TEXT NOT NULL,
	possible_relationships TEXT NOT NULL,
	total_cm_shared REAL NOT NULL,
	percent_dna_shared REAL NOT NULL,
	shared_segments INTEGER NOT NULL,
	largest_segment_cm REAL NOT NULL,
	has_family_tree INTEGER NOT NULL,
	individuals_in_tree INTEGER,
	tree_managed_by TEXT NOT NULL,
	tree_url TEXT NOT NULL,
	shared_ancestral_surnames TEXT NOT NULL,
	all_ancestral_surnames TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_name ON matches(name);
CREATE TABLE IF NOT EXISTS nodes (
	ord INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	type TEXT NOT NULL,
	length INTEGER NOT NULL DEFAULT 0,
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS links (
	ord INTEGER PRIMARY KEY,
	source TEXT NOT NULL,
	target TEXT NOT NULL
);
`

const (
	matchColumns = `id, match_id, name, age, country, contact_url, managed_by_name, status,
		possible_relationships, total_cm_shared, percent_dna_shared, shared_segments,
		largest_segment_cm, has_family_tree, individuals_in_tree, tree_managed_by, tree_url,
		shared_ancestral_surnames, all_ancestral_surnames, created_at, updated_at`

	selectMatchesQuery       = `SELECT ` + matchColumns + ` FROM matches ORDER BY ord`
	selectMatchesByNameQuery = `SELECT ` + matchColumns + ` FROM matches WHERE name = ? ORDER BY ord`
	selectMatchesBySurname   = `SELECT ` + matchColumns + ` FROM matches WHERE instr(all_ancestral_surnames, ?) > 0 ORDER BY ord`
	insertMatchQuery         = `INSERT INTO matches (ord, ` + matchColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectNodesQuery         = `SELECT id, type, length, color FROM nodes ORDER BY ord`
	insertNodeQuery          = `INSERT INTO nodes (ord, id, type, length, color) VALUES (?, ?, ?, ?, ?)`
	selectLinksQuery         = `SELECT source, target FROM links ORDER BY ord`
	insertLinkQuery          = `INSERT INTO links (ord, source, target) VALUES (?, ?, ?)`
)

type SQLiteStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewSQLiteStore wraps an open database whose schema already exists.
func NewSQLiteStore(db *sql.DB, log *zap.SugaredLogger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log}
}

// OpenSQLite opens the database at path and creates the schema when missing.
func OpenSQLite(ctx context.Context, path string, log *zap.SugaredLogger) (*SQLiteStore, error) {
	log.Debugw("Opening database", "path", path)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Infow("Database opened successfully", "path", path, "wal_mode", true)
	return NewSQLiteStore(db, log), nil
}

func (s *SQLiteStore) ListMatches(ctx context.Context) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, selectMatchesQuery)
}

func (s *SQLiteStore) FindMatchesByName(ctx context.Context, name string) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, selectMatchesByNameQuery, name)
}

func (s *SQLiteStore) FindMatchesBySurname(ctx context.Context, surname string) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, selectMatchesBySurname, surname)
}

func (s *SQLiteStore) queryMatches(ctx context.Context, query string, args ...any) ([]model.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []model.MatchRecord{}
	for rows.Next() {
		var (
			m                    model.MatchRecord
			individuals          sql.NullInt64
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&m.ID, &m.MatchID, &m.Name, &m.Age, &m.Country, &m.ContactURL, &m.ManagedByName,
			&m.Status, &m.PossibleRelationships, &m.TotalCMShared, &m.PercentDNAShared,
			&m.SharedSegments, &m.LargestSegmentCM, &m.HasFamilyTree, &individuals,
			&m.TreeManagedBy, &m.TreeURL, &m.SharedAncestralSurnames, &m.AllAncestralSurnames,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if individuals.Valid {
			n := int(individuals.Int64)
			m.IndividualsInTree = &n
		}
		m.CreatedAt = asTime(createdAt)
		m.UpdatedAt = asTime(updatedAt)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}
	return matches, nil
}

func (s *SQLiteStore) ListNodes(ctx context.Context) ([]model.Node, error) {
	rows, err := s.db.QueryContext(ctx, selectNodesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []model.Node{}
	for rows.Next() {
		var n model.Node
		if err := rows.Scan(&n.ID, &n.Type, &n.Length, &n.Color); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}
	return nodes, nil
}

func (s *SQLiteStore) ListLinks(ctx context.Context) ([]model.Link, error) {
	rows, err := s.db.QueryContext(ctx, selectLinksQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.Source, &l.Target); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read links: %w", err)
	}
	return links, nil
}

func (s *SQLiteStore) ReplaceAllMatches(ctx context.Context, matches []model.MatchRecord) error {
	return s.replace(ctx, "matches", insertMatchQuery, len(matches), func(i int) []any {
		m := matches[i]
		var individuals any
		if m.IndividualsInTree != nil {
			individuals = *m.IndividualsInTree
		}
		return []any{
			i, m.ID, m.MatchID, m.Name, m.Age, m.Country, m.ContactURL, m.ManagedByName,
			m.Status, m.PossibleRelationships, m.TotalCMShared, m.PercentDNAShared,
			m.SharedSegments, m.LargestSegmentCM, m.HasFamilyTree, individuals,
			m.TreeManagedBy, m.TreeURL, m.SharedAncestralSurnames, m.AllAncestralSurnames,
			m.CreatedAt.UTC().Format(time.RFC3339Nano), m.UpdatedAt.UTC().Format(time.RFC3339Nano),
		}
	})
}

func (s *SQLiteStore) ReplaceAllNodes(ctx context.Context, nodes []model.Node) error {
	return s.replace(ctx, "nodes", insertNodeQuery, len(nodes), func(i int) []any {
		n := nodes[i]
		return []any{i, n.ID, string(n.Type), n.Length, n.Color}
	})
}

func (s *SQLiteStore) ReplaceAllLinks(ctx context.Context, links []model.Link) error {
	return s.replace(ctx, "links", insertLinkQuery, len(links), func(i int) []any {
		return []any{i, links[i].Source, links[i].Target}
	})
}

// replace empties table and inserts n rows in a single transaction.
func (s *SQLiteStore) replace(ctx context.Context, table, insert string, n int, args func(i int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	s.log.Debugw("Replaced rows", "table", table, "count", n)
	return nil
}

func (s *SQLiteStore) BuildIndices(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}
