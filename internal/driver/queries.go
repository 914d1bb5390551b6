package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Match(name);",
	"CREATE INDEX ON :Match(ord);",
	"CREATE INDEX ON :GraphNode(id);",
}

const (
	ListMatchesQuery = `
		MATCH (m:Match)
		RETURN m
		ORDER BY m.ord
	`

	FindMatchesByNameQuery = `
		MATCH (m:Match)
		WHERE m.name = $name
		RETURN m
		ORDER BY m.ord
	`

	FindMatchesBySurnameQuery = `
		MATCH (m:Match)
		WHERE m.allAncestralSurnames CONTAINS $surname
		RETURN m
		ORDER BY m.ord
	`

	// Deletion and creation run in one auto-commit query so a failed
	// replace leaves the previous matches in place.
	ReplaceMatchesQuery = `
		OPTIONAL MATCH (old:Match)
		DETACH DELETE old
		WITH count(*) AS removed
		UNWIND $matches AS row
		CREATE (m:Match)
		SET m = row
	`

	ListNodesQuery = `
		MATCH (n:GraphNode)
		RETURN n.id AS id, n.type AS type, n.length AS length, n.color AS color
		ORDER BY n.ord
	`

	ReplaceNodesQuery = `
		OPTIONAL MATCH (old:GraphNode)
		DETACH DELETE old
		WITH count(*) AS removed
		UNWIND $nodes AS row
		CREATE (n:GraphNode)
		SET n = row
	`

	ListLinksQuery = `
		MATCH (s:GraphNode)-[l:LINKS]->(t:GraphNode)
		RETURN s.id AS source, t.id AS target
		ORDER BY l.ord
	`

	ReplaceLinksQuery = `
		OPTIONAL MATCH (:GraphNode)-[old:LINKS]->(:GraphNode)
		DELETE old
		WITH count(*) AS removed
		UNWIND $links AS row
		MATCH (s:GraphNode {id: row.source})
		MATCH (t:GraphNode {id: row.target})
		CREATE (s)-[:LINKS {ord: row.ord}]->(t)
	`
)
