package config

import (
	"context"
	"fmt"
	"time"

	"drivefund/database"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseManager handles database initialization and management
type DatabaseManager struct {
	manager *database.Manager
	config  *Config
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(cfg *Config) *DatabaseManager {
	return &DatabaseManager{
		manager: database.NewManager(),
		config:  cfg,
	}
}

// Initialize initializes the database connection
func (dm *DatabaseManager) Initialize() error {
	log.Println("Initializing database connection...")

	dbConfig := &database.Config{
		MongoURI:        dm.config.MongoURI,
		DatabaseName:    dm.config.DBName,
		MaxPoolSize:     dm.config.MaxPoolSize,
		MinPoolSize:     dm.config.MinPoolSize,
		MaxConnIdleTime: dm.config.MaxConnIdleTime,
		ConnectTimeout:  dm.config.ConnectTimeout,
		ServerTimeout:   dm.config.ConnectTimeout,
		SocketTimeout:   dm.config.ConnectTimeout,
	}

	if dm.config.IsDevelopment() && dm.config.Debug {
		// Enable command logging in development
		dbConfig.LoggerOptions = &options.LoggerOptions{
			ComponentLevels: map[options.LogComponent]options.LogLevel{
				options.LogComponentCommand: options.LogLevelDebug,
			},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dm.config.ConnectTimeout)
	defer cancel()

	return dm.manager.Connect(ctx, dbConfig)
}

// SetupDatabase performs initial database setup
func (dm *DatabaseManager) SetupDatabase() error {
	log.Println("Setting up database...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.CreateIndexes(ctx, dm.manager.Database()); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database setup completed successfully")
	return nil
}

// HealthCheck pings the database with a short deadline
func (dm *DatabaseManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return dm.manager.Ping(ctx)
}

// GetCollectionSizes returns estimated document counts for the analytics collections
func (dm *DatabaseManager) GetCollectionSizes() (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := dm.manager.Database()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	names, err := db.ListCollectionNames(ctx, bson.M{"name": bson.M{"$in": database.AnalyticsCollections}})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	sizes := make(map[string]int64, len(names))
	for _, name := range names {
		count, err := db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			log.WithError(err).WithField("collection", name).Warn("Could not get collection size")
			continue
		}
		sizes[name] = count
	}

	return sizes, nil
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return dm.manager.Close(ctx)
}

// MonitorConnection logs database health until the context is cancelled
func (dm *DatabaseManager) MonitorConnection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := dm.HealthCheck(); err != nil {
				log.WithError(err).Error("Database health check failed")
			} else if dm.config.Debug {
				log.Debug("Database connection healthy")
			}
		}
	}
}

// Ping checks connectivity within the caller's deadline
func (dm *DatabaseManager) Ping(ctx context.Context) error {
	return dm.manager.Ping(ctx)
}

// Collections returns handles for the analytics collections
func (dm *DatabaseManager) Collections() *database.Collections {
	return database.NewCollections(dm.manager)
}
