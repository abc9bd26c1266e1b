// Package mongo provides a GraphSource over a MongoDB collection of wiki
// pages, each stored as a document {title, links}.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/wikisearch"
)

var tracer = otel.Tracer("wikisearch/graph/mongo")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mongo."+name)
}

// Page is the stored shape of a page. Text is kept by the importer but never
// read during a search.
type Page struct {
	Title string   `bson:"title"`
	Links []string `bson:"links"`
	Text  string   `bson:"text,omitempty"`
}

// Datastore looks pages up by title.
type Datastore struct {
	client *mongo.Client
	pages  *mongo.Collection
}

var (
	_ wikisearch.GraphSource[string] = (*Datastore)(nil)
	_ wikisearch.Sessioner[string]   = (*Datastore)(nil)
)

// New connects to uri and checks the deployment is reachable.
func New(ctx context.Context, uri, database, collection string) (*Datastore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("initialize mongo connection: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Datastore{
		client: client,
		pages:  client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects the client.
func (s *Datastore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Datastore) Resolve(ctx context.Context, key string) (string, error) {
	return s.resolve(ctx, key)
}

func (s *Datastore) Neighbors(ctx context.Context, node string) ([]string, error) {
	return s.neighbors(ctx, node)
}

// Session starts a client session; every lookup of the run is sent on it.
func (s *Datastore) Session(_ context.Context) (wikisearch.GraphSession[string], error) {
	mongoSession, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start mongo session: %w", err)
	}
	return &session{datastore: s, session: mongoSession}, nil
}

type session struct {
	datastore *Datastore
	session   mongo.Session
}

func (s *session) Resolve(ctx context.Context, key string) (string, error) {
	return s.datastore.resolve(mongo.NewSessionContext(ctx, s.session), key)
}

func (s *session) Neighbors(ctx context.Context, node string) ([]string, error) {
	return s.datastore.neighbors(mongo.NewSessionContext(ctx, s.session), node)
}

func (s *session) Close() error {
	s.session.EndSession(context.Background())
	return nil
}

func (s *Datastore) resolve(ctx context.Context, key string) (string, error) {
	ctx, span := startTrace(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("title", key))

	var page Page
	opts := options.FindOne().SetProjection(bson.M{"title": 1})
	if err := s.pages.FindOne(ctx, bson.M{"title": key}, opts).Decode(&page); err != nil {
		return "", handleError(key, err)
	}
	return page.Title, nil
}

func (s *Datastore) neighbors(ctx context.Context, node string) ([]string, error) {
	ctx, span := startTrace(ctx, "Neighbors")
	defer span.End()
	span.SetAttributes(attribute.String("title", node))

	var page Page
	opts := options.FindOne().SetProjection(bson.M{"links": 1})
	if err := s.pages.FindOne(ctx, bson.M{"title": node}, opts).Decode(&page); err != nil {
		return nil, handleError(node, err)
	}
	span.SetAttributes(attribute.Int("links", len(page.Links)))
	return page.Links, nil
}

func handleError(title string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("page '%s': %w", title, wikisearch.ErrNodeNotFound)
	}
	return fmt.Errorf("mongo error: %w", err)
}
