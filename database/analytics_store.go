package database

import (
	"context"
	"fmt"
	"time"

	"drivefund/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAnalyticsStore serves the analytics read contract from the platform
// database. It never writes.
type MongoAnalyticsStore struct {
	collections *Collections
	vocabulary  *models.StatusVocabulary
}

func NewMongoAnalyticsStore(collections *Collections, vocabulary *models.StatusVocabulary) *MongoAnalyticsStore {
	return &MongoAnalyticsStore{
		collections: collections,
		vocabulary:  vocabulary,
	}
}

func (s *MongoAnalyticsStore) CountUsers(ctx context.Context, since *time.Time, scope models.UserScope) (int64, error) {
	filter := userCountFilter(scope, since, s.vocabulary)

	count, err := s.collections.Users().CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s users: %w", scope, err)
	}
	return count, nil
}

func (s *MongoAnalyticsStore) SumDeposits(ctx context.Context, since *time.Time) (float64, error) {
	return s.sum(ctx, s.collections.Transactions(), successfulDepositFilter(since, s.vocabulary))
}

func (s *MongoAnalyticsStore) SumPoolInvestments(ctx context.Context, since *time.Time) (float64, error) {
	return s.sum(ctx, s.collections.PoolInvestments(), confirmedPoolInvestmentFilter(since, s.vocabulary))
}

func (s *MongoAnalyticsStore) SumLegacyInvestments(ctx context.Context, since *time.Time) (float64, error) {
	return s.sum(ctx, s.collections.LegacyInvestments(), countedLegacyInvestmentFilter(since, s.vocabulary))
}

func (s *MongoAnalyticsStore) SumReturns(ctx context.Context, since *time.Time) (float64, error) {
	return s.sum(ctx, s.collections.Transactions(), successfulReturnFilter(since, s.vocabulary))
}

func (s *MongoAnalyticsStore) PoolStatusGroups(ctx context.Context, since *time.Time) ([]models.PoolStatusGroup, error) {
	var groups []models.PoolStatusGroup
	if err := s.aggregate(ctx, s.collections.Pools(), poolStatusPipeline(since), &groups); err != nil {
		return nil, fmt.Errorf("group pools by status: %w", err)
	}
	return groups, nil
}

func (s *MongoAnalyticsStore) DepositMethodGroups(ctx context.Context, since *time.Time) ([]models.DepositMethodGroup, error) {
	var groups []models.DepositMethodGroup
	if err := s.aggregate(ctx, s.collections.Transactions(), depositMethodPipeline(since, s.vocabulary), &groups); err != nil {
		return nil, fmt.Errorf("group deposits by method: %w", err)
	}
	return groups, nil
}

func (s *MongoAnalyticsStore) AssetGroups(ctx context.Context, since *time.Time) ([]models.AssetGroup, error) {
	var groups []models.AssetGroup
	if err := s.aggregate(ctx, s.collections.Pools(), assetGroupPipeline(since), &groups); err != nil {
		return nil, fmt.Errorf("group pools by asset: %w", err)
	}
	return groups, nil
}

func (s *MongoAnalyticsStore) RecentUsers(ctx context.Context, since *time.Time, limit int) ([]models.User, error) {
	var users []models.User
	if err := s.find(ctx, s.collections.Users(), windowFilter(since), recentOptions(limit), &users); err != nil {
		return nil, fmt.Errorf("load recent users: %w", err)
	}
	return users, nil
}

func (s *MongoAnalyticsStore) RecentDeposits(ctx context.Context, since *time.Time, limit int) ([]models.Transaction, error) {
	var deposits []models.Transaction
	if err := s.find(ctx, s.collections.Transactions(), successfulDepositFilter(since, s.vocabulary), recentOptions(limit), &deposits); err != nil {
		return nil, fmt.Errorf("load recent deposits: %w", err)
	}
	return deposits, nil
}

func (s *MongoAnalyticsStore) RecentPoolInvestments(ctx context.Context, since *time.Time, limit int) ([]models.PoolInvestment, error) {
	var investments []models.PoolInvestment
	if err := s.find(ctx, s.collections.PoolInvestments(), confirmedPoolInvestmentFilter(since, s.vocabulary), recentOptions(limit), &investments); err != nil {
		return nil, fmt.Errorf("load recent pool investments: %w", err)
	}
	return investments, nil
}

func (s *MongoAnalyticsStore) RecentLegacyInvestments(ctx context.Context, since *time.Time, limit int) ([]models.LegacyInvestment, error) {
	var investments []models.LegacyInvestment
	if err := s.find(ctx, s.collections.LegacyInvestments(), countedLegacyInvestmentFilter(since, s.vocabulary), recentOptions(limit), &investments); err != nil {
		return nil, fmt.Errorf("load recent legacy investments: %w", err)
	}
	return investments, nil
}

func (s *MongoAnalyticsStore) UsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"full_name": 1,
		"name":      1,
		"email":     1,
		"role":      1,
	})

	var users []models.User
	if err := s.find(ctx, s.collections.Users(), bson.M{"_id": bson.M{"$in": ids}}, opts, &users); err != nil {
		return nil, fmt.Errorf("lookup users: %w", err)
	}
	return users, nil
}

func (s *MongoAnalyticsStore) PoolsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.InvestmentPool, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var pools []models.InvestmentPool
	if err := s.find(ctx, s.collections.Pools(), bson.M{"_id": bson.M{"$in": ids}}, options.Find(), &pools); err != nil {
		return nil, fmt.Errorf("lookup pools: %w", err)
	}
	return pools, nil
}

func (s *MongoAnalyticsStore) VehiclesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var vehicles []models.Vehicle
	if err := s.find(ctx, s.collections.Vehicles(), bson.M{"_id": bson.M{"$in": ids}}, options.Find(), &vehicles); err != nil {
		return nil, fmt.Errorf("lookup vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *MongoAnalyticsStore) sum(ctx context.Context, collection *mongo.Collection, match bson.M) (float64, error) {
	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := s.aggregate(ctx, collection, sumPipeline(match), &result); err != nil {
		return 0, fmt.Errorf("sum %s: %w", collection.Name(), err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (s *MongoAnalyticsStore) aggregate(ctx context.Context, collection *mongo.Collection, pipeline []bson.M, out interface{}) error {
	cursor, err := collection.Aggregate(ctx, pipeline, options.Aggregate().SetCollation(caseInsensitive))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func (s *MongoAnalyticsStore) find(ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptions, out interface{}) error {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}
