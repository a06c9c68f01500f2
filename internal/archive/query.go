// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Text is the FTS5 full-text search string over title and summary.
	Text string

	// Year restricts results to publication dates within the year.
	Year int

	// Author filters by author substring match.
	Author string

	// Tags filters by one or more tags with AND semantics.
	Tags []string

	// MaxResults limits result count. Zero uses store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && q.Year == 0 && q.Author == "" && len(q.Tags) == 0
}

// Retrieve queries the catalog with optional full-text search and
// structured filters. Results are ranked by relevance for full-text
// queries or sorted by publication date then URL otherwise.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Article, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Text != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.url, a.title, a.author, a.published, a.tags,
				a.reading_time, a.summary, a.source
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Text)
	} else {
		qb.WriteString(
			`SELECT a.url, a.title, a.author, a.published, a.tags,
				a.reading_time, a.summary, a.source
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Year != 0 {
		qb.WriteString(` AND a.published LIKE ?`)
		args = append(args, strconv.Itoa(opts.Year)+"%")
	}

	if opts.Author != "" {
		qb.WriteString(` AND a.author LIKE ?`)
		args = append(args, "%"+opts.Author+"%")
	}

	for _, tag := range opts.Tags {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(a.tags) WHERE value = ?)`)
		args = append(args, tag)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.published, a.url`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []types.Article
	for rows.Next() {
		var (
			a        types.Article
			tagsJSON sql.NullString
		)

		if err := rows.Scan(
			&a.URL, &a.Title, &a.Author, &a.Published, &tagsJSON,
			&a.ReadingTime, &a.Summary, &a.Source,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &a.Tags)
		}

		results = append(results, a)
	}

	return results, rows.Err()
}

// Count returns the number of records in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM articles`,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
