package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// State is the lifecycle of the process-wide database handle.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// ErrNotConnected is returned by DB before a successful Connect.
var ErrNotConnected = errors.New("database: not connected")

// Mongo owns the MongoDB client for the lifetime of the process.  Connect
// is idempotent: calling it on a connected handle does nothing.
type Mongo struct {
	uri  string
	name string

	mu     sync.Mutex
	state  State
	client *mongo.Client
	db     *mongo.Database
}

// New returns a disconnected handle for the given URI and database name.
func New(uri, name string) *Mongo {
	return &Mongo{uri: uri, name: name}
}

// State reports the current lifecycle state.
func (m *Mongo) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect dials MongoDB and verifies the connection with a ping.  On
// failure the handle goes back to Disconnected.
func (m *Mongo) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Connected {
		return nil
	}
	m.state = Connecting

	// Pool settings
	opts := options.Client().
		ApplyURI(m.uri).
		SetMaxPoolSize(25).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		m.state = Disconnected
		return fmt.Errorf("connect mongodb: %w", err)
	}

	// Ping with timeout
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		m.state = Disconnected
		return fmt.Errorf("ping mongodb: %w", err)
	}

	m.client = client
	m.db = client.Database(m.name)
	m.state = Connected
	return nil
}

// DB returns the database handle, or ErrNotConnected.
func (m *Mongo) DB() (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Connected {
		return nil, ErrNotConnected
	}
	return m.db, nil
}

// Close disconnects the client.  Closing a disconnected handle is a no-op.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Connected {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client, m.db = nil, nil
	m.state = Disconnected
	return err
}
