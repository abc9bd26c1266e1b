// Package badger provides a GraphSource over an embedded BadgerDB key-value
// store. Each page is one key, page/<title>, whose value is the JSON array of
// the titles it links to.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

var tracer = otel.Tracer("wikisearch/graph/badger")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "badger."+name)
}

const pagePrefix = "page/"

// Config holds configuration for a BadgerDB graph.
type Config struct {
	// Path is the directory of the database files. Ignored when InMemory is
	// true.
	Path string

	// InMemory keeps everything in memory. Useful for testing.
	InMemory bool

	// Logger receives BadgerDB's internal logging. If nil, it is discarded.
	Logger logger.Logger
}

// InMemoryConfig returns a configuration with no disk persistence.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts logger.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), zap.String("component", "badger"))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), zap.String("component", "badger"))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), zap.String("component", "badger"))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), zap.String("component", "badger"))
}

// Datastore reads pages from a BadgerDB database.
type Datastore struct {
	db *badger.DB
}

var (
	_ wikisearch.GraphSource[string] = (*Datastore)(nil)
	_ wikisearch.Sessioner[string]   = (*Datastore)(nil)
)

// Open opens the database described by cfg. Callers must call Close.
func Open(cfg Config) (*Datastore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Datastore{db: db}, nil
}

func (s *Datastore) Close() error {
	return s.db.Close()
}

func (s *Datastore) Resolve(ctx context.Context, key string) (string, error) {
	var title string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		title, err = resolve(ctx, txn, key)
		return err
	})
	return title, err
}

func (s *Datastore) Neighbors(ctx context.Context, node string) ([]string, error) {
	var links []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		links, err = neighbors(ctx, txn, node)
		return err
	})
	return links, err
}

// Session opens a read-only transaction, so a whole run sees one snapshot of
// the graph.
func (s *Datastore) Session(_ context.Context) (wikisearch.GraphSession[string], error) {
	return &session{txn: s.db.NewTransaction(false)}, nil
}

type session struct {
	txn *badger.Txn
}

func (s *session) Resolve(ctx context.Context, key string) (string, error) {
	return resolve(ctx, s.txn, key)
}

func (s *session) Neighbors(ctx context.Context, node string) ([]string, error) {
	return neighbors(ctx, s.txn, node)
}

func (s *session) Close() error {
	s.txn.Discard()
	return nil
}

func pageKey(title string) []byte {
	return []byte(pagePrefix + title)
}

func resolve(ctx context.Context, txn *badger.Txn, key string) (string, error) {
	_, span := startTrace(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("title", key))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := txn.Get(pageKey(key)); err != nil {
		return "", handleError(key, err)
	}
	return key, nil
}

func neighbors(ctx context.Context, txn *badger.Txn, node string) ([]string, error) {
	_, span := startTrace(ctx, "Neighbors")
	defer span.End()
	span.SetAttributes(attribute.String("title", node))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := txn.Get(pageKey(node))
	if err != nil {
		return nil, handleError(node, err)
	}

	var links []string
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &links)
	})
	if err != nil {
		return nil, fmt.Errorf("decode links of page '%s': %w", node, err)
	}
	span.SetAttributes(attribute.Int("links", len(links)))
	return links, nil
}

func handleError(title string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("page '%s': %w", title, wikisearch.ErrNodeNotFound)
	}
	return fmt.Errorf("badger error: %w", err)
}
