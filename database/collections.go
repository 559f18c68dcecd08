package database

import "go.mongodb.org/mongo-driver/mongo"

// Collection names as constants to prevent typos
const (
	UsersCollection             = "users"
	TransactionsCollection      = "transactions"
	PoolInvestmentsCollection   = "pool_investments"
	LegacyInvestmentsCollection = "investments"
	PoolsCollection             = "investment_pools"
	VehiclesCollection          = "vehicles"
)

// AnalyticsCollections lists every collection the dashboard reads.
var AnalyticsCollections = []string{
	UsersCollection,
	TransactionsCollection,
	PoolInvestmentsCollection,
	LegacyInvestmentsCollection,
	PoolsCollection,
	VehiclesCollection,
}

// Collections provides typed access to all collections
type Collections struct {
	manager *Manager
}

// NewCollections creates a new collections instance
func NewCollections(manager *Manager) *Collections {
	return &Collections{
		manager: manager,
	}
}

func (c *Collections) Users() *mongo.Collection {
	return c.manager.Collection(UsersCollection)
}

// Transactions holds deposits, wallet funding and payouts.
func (c *Collections) Transactions() *mongo.Collection {
	return c.manager.Collection(TransactionsCollection)
}

func (c *Collections) PoolInvestments() *mongo.Collection {
	return c.manager.Collection(PoolInvestmentsCollection)
}

// LegacyInvestments holds direct vehicle investments made before pools.
func (c *Collections) LegacyInvestments() *mongo.Collection {
	return c.manager.Collection(LegacyInvestmentsCollection)
}

func (c *Collections) Pools() *mongo.Collection {
	return c.manager.Collection(PoolsCollection)
}

func (c *Collections) Vehicles() *mongo.Collection {
	return c.manager.Collection(VehiclesCollection)
}
