// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const defaultListLimit = 20

// ArticleQuery filters the article archive.
type ArticleQuery struct {
	// Query matches a substring of the topic or title, case-insensitively.
	Query string

	// Keyword keeps only articles whose metadata lists this keyword.
	Keyword string

	// Limit caps the result count. Zero uses 20.
	Limit int
}

// SaveArticle archives a, replacing any earlier record with the same ID.
func (s *Store) SaveArticle(ctx context.Context, a *types.Article) error {
	keywordsJSON, _ := json.Marshal(a.Metadata.Keywords)
	quotesJSON, _ := json.Marshal(a.Metadata.Quotes)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (id, topic, tone, slug, title, description, keywords, quotes,
			outline, content, reading_time, degraded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			topic=excluded.topic, tone=excluded.tone, slug=excluded.slug,
			title=excluded.title, description=excluded.description,
			keywords=excluded.keywords, quotes=excluded.quotes, outline=excluded.outline,
			content=excluded.content, reading_time=excluded.reading_time,
			degraded=excluded.degraded, created_at=excluded.created_at`,
		a.ID, a.Topic, string(a.Tone), a.Metadata.Slug, a.Metadata.Title, a.Metadata.Description,
		string(keywordsJSON), string(quotesJSON), a.Metadata.Outline, a.Content,
		a.Metadata.ReadingTime, a.Degraded, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving article %s: %w", a.ID, err)
	}
	return nil
}

const articleColumns = `id, topic, tone, slug, title, description, keywords, quotes,
	outline, content, reading_time, degraded, created_at`

// ListArticles returns archived articles matching q, newest first.
func (s *Store) ListArticles(ctx context.Context, q ArticleQuery) ([]types.Article, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + articleColumns + ` FROM articles a WHERE 1=1`)

	if q.Query != "" {
		qb.WriteString(` AND (lower(a.topic) LIKE ? OR lower(a.title) LIKE ?)`)
		pattern := "%" + strings.ToLower(q.Query) + "%"
		args = append(args, pattern, pattern)
	}
	if q.Keyword != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(a.keywords) WHERE lower(value) = ?)`)
		args = append(args, strings.ToLower(q.Keyword))
	}

	qb.WriteString(` ORDER BY a.created_at DESC, a.rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	articles := []types.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ArticleBySlug returns the newest archived article with slug, or
// ErrNotFound.
func (s *Store) ArticleBySlug(ctx context.Context, slug string) (types.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`, slug)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Article{}, fmt.Errorf("article %q: %w", slug, ErrNotFound)
	}
	return a, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(r rowScanner) (types.Article, error) {
	var (
		a            types.Article
		tone         string
		title        sql.NullString
		description  sql.NullString
		keywordsJSON sql.NullString
		quotesJSON   sql.NullString
		outline      sql.NullString
		createdAt    string
	)
	err := r.Scan(
		&a.ID, &a.Topic, &tone, &a.Metadata.Slug, &title, &description,
		&keywordsJSON, &quotesJSON, &outline, &a.Content,
		&a.Metadata.ReadingTime, &a.Degraded, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("scanning article: %w", err)
	}

	a.Tone = types.Tone(tone)
	a.Metadata.Title = title.String
	a.Metadata.Description = description.String
	a.Metadata.Outline = outline.String
	a.Metadata.Keywords = decodeList(keywordsJSON)
	a.Metadata.Quotes = decodeList(quotesJSON)
	a.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return a, nil
}

// decodeList parses a JSON string array column. NULL, "null" and malformed
// values all decode to an empty list.
func decodeList(col sql.NullString) []string {
	var list []string
	if col.Valid {
		json.Unmarshal([]byte(col.String), &list)
	}
	if list == nil {
		list = []string{}
	}
	return list
}
