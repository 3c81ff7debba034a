package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnTimeout = 5 * time.Second

type DBConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the document store and verifies the connection with a ping.
func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("document store unreachable: %w", err)
	}

	slog.Info("Document store connected",
		slog.String("type", "db"),
		slog.String("database", cfg.Database))

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Collection returns a handle on a named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
