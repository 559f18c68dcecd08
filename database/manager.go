package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Manager owns the pooled client for the platform database. The analytics
// engine only reads, so the client prefers secondaries.
type Manager struct {
	mu          sync.RWMutex
	client      *mongo.Client
	database    *mongo.Database
	collections map[string]*mongo.Collection
}

type Config struct {
	MongoURI        string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
	ServerTimeout   time.Duration
	SocketTimeout   time.Duration
	LoggerOptions   *options.LoggerOptions
}

func NewManager() *Manager {
	return &Manager{collections: make(map[string]*mongo.Collection)}
}

// Connect dials MongoDB and verifies the primary is reachable.
func (m *Manager) Connect(ctx context.Context, config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return fmt.Errorf("database already connected")
	}

	clientOptions := options.Client().
		ApplyURI(config.MongoURI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetMaxConnIdleTime(config.MaxConnIdleTime).
		SetServerSelectionTimeout(config.ServerTimeout).
		SetSocketTimeout(config.SocketTimeout).
		SetConnectTimeout(config.ConnectTimeout).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetRetryReads(true)

	if config.LoggerOptions != nil {
		clientOptions.SetLoggerOptions(config.LoggerOptions)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.database = client.Database(config.DatabaseName)

	log.WithField("database", config.DatabaseName).Info("Connected to MongoDB")
	return nil
}

// Collection returns a cached handle, or nil before Connect.
func (m *Manager) Collection(name string) *mongo.Collection {
	m.mu.RLock()
	collection, ok := m.collections[name]
	db := m.database
	m.mu.RUnlock()
	if ok || db == nil {
		return collection
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if collection, ok := m.collections[name]; ok {
		return collection
	}
	collection = db.Collection(name)
	m.collections[name] = collection
	return collection
}

func (m *Manager) Database() *mongo.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.database
}

func (m *Manager) Ping(ctx context.Context) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("database not connected")
	}
	return client.Ping(ctx, readpref.SecondaryPreferred())
}

// Close disconnects the client. Closing an unconnected manager is a no-op.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	m.client = nil
	m.database = nil
	m.collections = make(map[string]*mongo.Collection)

	log.Info("Database connection closed")
	return nil
}
