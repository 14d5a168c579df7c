package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type DB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Options bounds the single shared connection pool. Connect and socket
// timeouts are mandatory: a store call must fail, never hang.
type Options struct {
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

func NewMongoDB(uri string, opts Options) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetConnectTimeout(opts.ConnectTimeout).
		SetSocketTimeout(opts.SocketTimeout).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &DB{Client: client, DB: client.Database(opts.Database)}, nil
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *DB) Name() string {
	return db.DB.Name()
}

func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
