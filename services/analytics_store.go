package services

import (
	"context"
	"time"

	"drivefund/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsStore is the read contract the dashboard needs from the platform
// stores. Every method filters on its own created_at field using since; a nil
// since means no lower bound. Grouping methods return raw groups keyed by the
// stored value; the service normalizes, merges and ranks them.
//
// Implementations must be read-only and safe for concurrent use.
type AnalyticsStore interface {
	CountUsers(ctx context.Context, since *time.Time, scope models.UserScope) (int64, error)
	SumDeposits(ctx context.Context, since *time.Time) (float64, error)
	SumPoolInvestments(ctx context.Context, since *time.Time) (float64, error)
	SumLegacyInvestments(ctx context.Context, since *time.Time) (float64, error)
	SumReturns(ctx context.Context, since *time.Time) (float64, error)
	PoolStatusGroups(ctx context.Context, since *time.Time) ([]models.PoolStatusGroup, error)
	DepositMethodGroups(ctx context.Context, since *time.Time) ([]models.DepositMethodGroup, error)
	AssetGroups(ctx context.Context, since *time.Time) ([]models.AssetGroup, error)

	RecentUsers(ctx context.Context, since *time.Time, limit int) ([]models.User, error)
	RecentDeposits(ctx context.Context, since *time.Time, limit int) ([]models.Transaction, error)
	RecentPoolInvestments(ctx context.Context, since *time.Time, limit int) ([]models.PoolInvestment, error)
	RecentLegacyInvestments(ctx context.Context, since *time.Time, limit int) ([]models.LegacyInvestment, error)

	UsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	PoolsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.InvestmentPool, error)
	VehiclesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Vehicle, error)
}
