package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"drivefund/models"
	"drivefund/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	recentLimit = 10

	// Each investment ledger is over-fetched before the merge so the newest
	// ten across both survive truncation.
	investmentSourceLimit = 30

	unknownEmail = "N/A"
)

// userDirectory resolves display fields for a page of rows. Missing users
// render with placeholders.
type userDirectory map[primitive.ObjectID]models.User

func (d userDirectory) name(id primitive.ObjectID) string {
	u, ok := d[id]
	if !ok {
		return utils.UnknownUserName
	}
	return utils.DisplayName(u.FullName, u.Name, u.Email)
}

func (d userDirectory) email(id primitive.ObjectID) string {
	if u, ok := d[id]; ok && strings.TrimSpace(u.Email) != "" {
		return u.Email
	}
	return unknownEmail
}

// lookupUsers fetches all referenced users in one query.
func (s *AnalyticsService) lookupUsers(ctx context.Context, ids []primitive.ObjectID) (userDirectory, error) {
	ids = utils.UniqueObjectIDs(ids)
	directory := make(userDirectory, len(ids))
	if len(ids) == 0 {
		return directory, nil
	}

	users, err := s.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup users: %w", err)
	}
	for _, u := range users {
		directory[u.ID] = u
	}
	return directory, nil
}

func (s *AnalyticsService) lookupPools(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.InvestmentPool, error) {
	ids = utils.UniqueObjectIDs(ids)
	pools := make(map[primitive.ObjectID]models.InvestmentPool, len(ids))
	if len(ids) == 0 {
		return pools, nil
	}

	rows, err := s.store.PoolsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup pools: %w", err)
	}
	for _, p := range rows {
		pools[p.ID] = p
	}
	return pools, nil
}

func (s *AnalyticsService) lookupVehicles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Vehicle, error) {
	ids = utils.UniqueObjectIDs(ids)
	vehicles := make(map[primitive.ObjectID]models.Vehicle, len(ids))
	if len(ids) == 0 {
		return vehicles, nil
	}

	rows, err := s.store.VehiclesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup vehicles: %w", err)
	}
	for _, v := range rows {
		vehicles[v.ID] = v
	}
	return vehicles, nil
}

func (s *AnalyticsService) loadRecentUsers(ctx context.Context, since *time.Time) ([]models.RecentUser, error) {
	users, err := s.store.RecentUsers(ctx, since, recentLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]models.RecentUser, 0, len(users))
	for i := range users {
		u := &users[i]
		recent = append(recent, models.RecentUser{
			ID:          utils.ObjectIDToString(u.ID),
			Name:        utils.DisplayName(u.FullName, u.Name, u.Email),
			Email:       u.Email,
			Role:        models.NormalizeStatus(u.Role),
			Verified:    s.vocabulary.IsVerifiedUser(u),
			PrivyLinked: strings.TrimSpace(u.PrivyID) != "",
			CreatedAt:   u.CreatedAt,
		})
	}
	return truncateRecent(recent, recentLimit), nil
}

func (s *AnalyticsService) loadRecentDeposits(ctx context.Context, since *time.Time) ([]models.RecentDeposit, error) {
	deposits, err := s.store.RecentDeposits(ctx, since, recentLimit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(deposits))
	for _, d := range deposits {
		userIDs = append(userIDs, d.UserID)
	}
	directory, err := s.lookupUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	recent := make([]models.RecentDeposit, 0, len(deposits))
	for _, d := range deposits {
		recent = append(recent, models.RecentDeposit{
			ID:        utils.ObjectIDToString(d.ID),
			UserID:    utils.ObjectIDToString(d.UserID),
			UserName:  directory.name(d.UserID),
			UserEmail: directory.email(d.UserID),
			AmountNgn: d.Amount,
			Method:    normalizeMethod(d.Method),
			Status:    models.NormalizeStatus(d.Status),
			Reference: d.Reference,
			CreatedAt: d.CreatedAt,
		})
	}
	return truncateRecent(recent, recentLimit), nil
}

// loadRecentInvestments reads both investment ledgers in parallel, resolves
// users, pools and vehicles with one lookup each, and returns the newest ten
// across both.
func (s *AnalyticsService) loadRecentInvestments(ctx context.Context, since *time.Time) ([]models.RecentInvestment, error) {
	var (
		poolRows   []models.PoolInvestment
		legacyRows []models.LegacyInvestment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		poolRows, err = s.store.RecentPoolInvestments(gctx, since, investmentSourceLimit)
		return err
	})
	g.Go(func() (err error) {
		legacyRows, err = s.store.RecentLegacyInvestments(gctx, since, investmentSourceLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(poolRows)+len(legacyRows))
	poolIDs := make([]primitive.ObjectID, 0, len(poolRows))
	vehicleIDs := make([]primitive.ObjectID, 0, len(legacyRows))
	for _, inv := range poolRows {
		userIDs = append(userIDs, inv.UserID)
		poolIDs = append(poolIDs, inv.PoolID)
	}
	for _, inv := range legacyRows {
		userIDs = append(userIDs, inv.InvestorID)
		vehicleIDs = append(vehicleIDs, inv.VehicleID)
	}

	var (
		directory userDirectory
		pools     map[primitive.ObjectID]models.InvestmentPool
		vehicles  map[primitive.ObjectID]models.Vehicle
	)

	lookups, lctx := errgroup.WithContext(ctx)
	lookups.Go(func() (err error) {
		directory, err = s.lookupUsers(lctx, userIDs)
		return err
	})
	lookups.Go(func() (err error) {
		pools, err = s.lookupPools(lctx, poolIDs)
		return err
	})
	lookups.Go(func() (err error) {
		vehicles, err = s.lookupVehicles(lctx, vehicleIDs)
		return err
	})
	if err := lookups.Wait(); err != nil {
		return nil, err
	}

	recent := make([]models.RecentInvestment, 0, len(poolRows)+len(legacyRows))
	for _, inv := range poolRows {
		recent = append(recent, poolInvestmentRecord(inv, directory, pools))
	}
	for _, inv := range legacyRows {
		recent = append(recent, legacyInvestmentRecord(inv, directory, vehicles))
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.Normalized().After(recent[j].CreatedAt.Normalized())
	})

	return truncateRecent(recent, recentLimit), nil
}

func poolInvestmentRecord(inv models.PoolInvestment, directory userDirectory, pools map[primitive.ObjectID]models.InvestmentPool) models.RecentInvestment {
	return models.RecentInvestment{
		ID:        utils.ObjectIDToString(inv.ID),
		Source:    models.InvestmentSourcePool,
		UserID:    utils.ObjectIDToString(inv.UserID),
		UserName:  directory.name(inv.UserID),
		UserEmail: directory.email(inv.UserID),
		Label:     poolLabel(pools, inv.PoolID),
		AmountNgn: inv.Amount,
		Status:    models.NormalizeStatus(inv.Status),
		ShareBps:  inv.ShareBps,
		CreatedAt: inv.CreatedAt,
	}
}

func legacyInvestmentRecord(inv models.LegacyInvestment, directory userDirectory, vehicles map[primitive.ObjectID]models.Vehicle) models.RecentInvestment {
	return models.RecentInvestment{
		ID:        utils.ObjectIDToString(inv.ID),
		Source:    models.InvestmentSourceLegacy,
		UserID:    utils.ObjectIDToString(inv.InvestorID),
		UserName:  directory.name(inv.InvestorID),
		UserEmail: directory.email(inv.InvestorID),
		Label:     vehicleLabel(vehicles, inv.VehicleID),
		AmountNgn: inv.Amount,
		Status:    models.NormalizeStatus(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
}

// poolLabel renders e.g. "KEKE pool (Open)".
func poolLabel(pools map[primitive.ObjectID]models.InvestmentPool, id primitive.ObjectID) string {
	pool, ok := pools[id]
	if !ok {
		return "Investment pool"
	}

	label := normalizeAsset(pool.AssetType) + " pool"
	if status := models.NormalizeStatus(pool.Status); status != "" {
		label += " (" + utils.TitleCase(status) + ")"
	}
	return label
}

// vehicleLabel renders e.g. "Bajaj RE (keke)".
func vehicleLabel(vehicles map[primitive.ObjectID]models.Vehicle, id primitive.ObjectID) string {
	vehicle, ok := vehicles[id]
	if !ok {
		return "Vehicle investment"
	}

	name := strings.TrimSpace(vehicle.Name)
	kind := strings.TrimSpace(vehicle.Type)
	switch {
	case name != "" && kind != "":
		return fmt.Sprintf("%s (%s)", name, strings.ToLower(kind))
	case name != "":
		return name
	case kind != "":
		return utils.TitleCase(kind) + " vehicle"
	}
	return "Vehicle investment"
}

func truncateRecent[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
