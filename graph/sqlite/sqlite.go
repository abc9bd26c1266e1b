// Package sqlite provides a GraphSource over a SQLite database of pages and
// their outgoing links.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

var tracer = otel.Tracer("wikisearch/graph/sqlite")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "sqlite."+name)
}

const schema = `
CREATE TABLE IF NOT EXISTS page (
	title TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS link (
	source   TEXT    NOT NULL,
	position INTEGER NOT NULL,
	target   TEXT    NOT NULL,
	PRIMARY KEY (source, position)
);`

// Config holds the optional settings of a Datastore.
type Config struct {
	Logger        logger.Logger
	ExportMetrics bool
}

// queryer is satisfied by both *sql.DB and *sql.Conn.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Datastore reads the page graph from two tables: page(title) and
// link(source, position, target). Link order is the position order.
type Datastore struct {
	db               *sql.DB
	logger           logger.Logger
	dbStatsCollector prometheus.Collector
}

var (
	_ wikisearch.GraphSource[string] = (*Datastore)(nil)
	_ wikisearch.Sessioner[string]   = (*Datastore)(nil)
)

// PrepareDSN adds WAL journal mode and a busy timeout to uri unless it
// already sets them.
func PrepareDSN(uri string) (string, error) {
	query := url.Values{}
	var err error

	if i := strings.Index(uri, "?"); i != -1 {
		query, err = url.ParseQuery(uri[i+1:])
		if err != nil {
			return uri, fmt.Errorf("error parsing dsn: %w", err)
		}

		uri = uri[:i]
	}

	foundJournalMode := false
	foundBusyTimeout := false
	for _, val := range query["_pragma"] {
		if strings.HasPrefix(val, "journal_mode") {
			foundJournalMode = true
		} else if strings.HasPrefix(val, "busy_timeout") {
			foundBusyTimeout = true
		}
	}

	if !foundJournalMode {
		query.Add("_pragma", "journal_mode(WAL)")
	}
	if !foundBusyTimeout {
		query.Add("_pragma", "busy_timeout(100)")
	}

	return uri + "?" + query.Encode(), nil
}

// New opens the database at uri. The schema is not created; see Migrate.
func New(uri string, cfg Config) (*Datastore, error) {
	uri, err := PrepareDSN(uri)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", uri)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite connection: %w", err)
	}

	var collector prometheus.Collector
	if cfg.ExportMetrics {
		collector = collectors.NewDBStatsCollector(db, "wikisearch")
		if err := prometheus.Register(collector); err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize metrics: %w", err)
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}

	return &Datastore{
		db:               db,
		logger:           cfg.Logger,
		dbStatsCollector: collector,
	}, nil
}

// Migrate creates the page and link tables if they do not exist.
func (s *Datastore) Migrate(ctx context.Context) error {
	ctx, span := startTrace(ctx, "Migrate")
	defer span.End()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return handleSQLError(err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Datastore) Close() {
	if s.dbStatsCollector != nil {
		prometheus.Unregister(s.dbStatsCollector)
	}
	s.db.Close()
}

func (s *Datastore) Resolve(ctx context.Context, key string) (string, error) {
	return resolve(ctx, s.db, key)
}

func (s *Datastore) Neighbors(ctx context.Context, node string) ([]string, error) {
	return neighbors(ctx, s.db, node)
}

// Session pins one pooled connection for the duration of a run.
func (s *Datastore) Session(ctx context.Context) (wikisearch.GraphSession[string], error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, handleSQLError(err)
	}
	return &session{conn: conn}, nil
}

type session struct {
	conn *sql.Conn
}

func (s *session) Resolve(ctx context.Context, key string) (string, error) {
	return resolve(ctx, s.conn, key)
}

func (s *session) Neighbors(ctx context.Context, node string) ([]string, error) {
	return neighbors(ctx, s.conn, node)
}

func (s *session) Close() error {
	return s.conn.Close()
}

func resolve(ctx context.Context, q queryer, key string) (string, error) {
	ctx, span := startTrace(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("title", key))

	stmt, args, err := sq.Select("title").
		From("page").
		Where(sq.Eq{"title": key}).
		ToSql()
	if err != nil {
		return "", err
	}

	var title string
	if err := q.QueryRowContext(ctx, stmt, args...).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("page '%s': %w", key, wikisearch.ErrNodeNotFound)
		}
		return "", handleSQLError(err)
	}
	return title, nil
}

func neighbors(ctx context.Context, q queryer, node string) ([]string, error) {
	ctx, span := startTrace(ctx, "Neighbors")
	defer span.End()
	span.SetAttributes(attribute.String("title", node))

	stmt, args, err := sq.Select("target").
		From("link").
		Where(sq.Eq{"source": node}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, handleSQLError(err)
		}
		links = append(links, target)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	span.SetAttributes(attribute.Int("links", len(links)))
	return links, nil
}

func handleSQLError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return wikisearch.ErrNodeNotFound
	}
	return fmt.Errorf("sql error: %w", err)
}
