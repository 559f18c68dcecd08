package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"drivefund/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore serves the analytics read contract from an in-process dataset.
// It applies the same filters as MongoAnalyticsStore and backs DATA_SOURCE=memory
// and the service tests.
type MemoryStore struct {
	mu                sync.RWMutex
	vocabulary        *models.StatusVocabulary
	users             []models.User
	transactions      []models.Transaction
	poolInvestments   []models.PoolInvestment
	legacyInvestments []models.LegacyInvestment
	pools             []models.InvestmentPool
	vehicles          []models.Vehicle
}

func NewMemoryStore(vocabulary *models.StatusVocabulary) *MemoryStore {
	return &MemoryStore{vocabulary: vocabulary}
}

func (s *MemoryStore) AddUsers(users ...models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
}

func (s *MemoryStore) AddTransactions(transactions ...models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, transactions...)
}

func (s *MemoryStore) AddPoolInvestments(investments ...models.PoolInvestment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poolInvestments = append(s.poolInvestments, investments...)
}

func (s *MemoryStore) AddLegacyInvestments(investments ...models.LegacyInvestment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacyInvestments = append(s.legacyInvestments, investments...)
}

func (s *MemoryStore) AddPools(pools ...models.InvestmentPool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools = append(s.pools, pools...)
}

func (s *MemoryStore) AddVehicles(vehicles ...models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, vehicles...)
}

func (s *MemoryStore) CountUsers(ctx context.Context, since *time.Time, scope models.UserScope) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.users {
		u := &s.users[i]
		if !inWindow(u.CreatedAt, since) {
			continue
		}
		switch scope {
		case models.UserScopeIdentityLinked:
			if strings.TrimSpace(u.PrivyID) == "" {
				continue
			}
		case models.UserScopeVerified:
			if !s.vocabulary.IsVerifiedUser(u) {
				continue
			}
		}
		count++
	}
	return count, ctx.Err()
}

func (s *MemoryStore) SumDeposits(ctx context.Context, since *time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.transactions {
		if s.isSuccessfulDeposit(t, since) {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total.InexactFloat64(), ctx.Err()
}

func (s *MemoryStore) SumPoolInvestments(ctx context.Context, since *time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, inv := range s.poolInvestments {
		if s.isConfirmedPoolInvestment(inv, since) {
			total = total.Add(decimal.NewFromFloat(inv.Amount))
		}
	}
	return total.InexactFloat64(), ctx.Err()
}

func (s *MemoryStore) SumLegacyInvestments(ctx context.Context, since *time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, inv := range s.legacyInvestments {
		if s.isCountedLegacyInvestment(inv, since) {
			total = total.Add(decimal.NewFromFloat(inv.Amount))
		}
	}
	return total.InexactFloat64(), ctx.Err()
}

func (s *MemoryStore) SumReturns(ctx context.Context, since *time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.transactions {
		if inWindow(t.CreatedAt, since) && s.vocabulary.IsReturnType(t.Type) && s.vocabulary.IsSuccessful(t.Status) {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total.InexactFloat64(), ctx.Err()
}

func (s *MemoryStore) PoolStatusGroups(ctx context.Context, since *time.Time) ([]models.PoolStatusGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		count          int64
		raised, target decimal.Decimal
	}
	groups := make(map[string]*acc)
	var order []string

	for _, p := range s.pools {
		if !inWindow(p.CreatedAt, since) {
			continue
		}
		g, ok := groups[p.Status]
		if !ok {
			g = &acc{}
			groups[p.Status] = g
			order = append(order, p.Status)
		}
		g.count++
		g.raised = g.raised.Add(decimal.NewFromFloat(p.RaisedAmount))
		g.target = g.target.Add(decimal.NewFromFloat(p.TargetAmount))
	}

	result := make([]models.PoolStatusGroup, 0, len(order))
	for _, status := range order {
		g := groups[status]
		result = append(result, models.PoolStatusGroup{
			Status: status,
			Count:  g.count,
			Raised: g.raised.InexactFloat64(),
			Target: g.target.InexactFloat64(),
		})
	}
	return result, ctx.Err()
}

func (s *MemoryStore) DepositMethodGroups(ctx context.Context, since *time.Time) ([]models.DepositMethodGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		total decimal.Decimal
		count int64
	}
	groups := make(map[string]*acc)
	var order []string

	for _, t := range s.transactions {
		if !s.isSuccessfulDeposit(t, since) {
			continue
		}
		g, ok := groups[t.Method]
		if !ok {
			g = &acc{}
			groups[t.Method] = g
			order = append(order, t.Method)
		}
		g.total = g.total.Add(decimal.NewFromFloat(t.Amount))
		g.count++
	}

	result := make([]models.DepositMethodGroup, 0, len(order))
	for _, method := range order {
		g := groups[method]
		result = append(result, models.DepositMethodGroup{
			Method: method,
			Total:  g.total.InexactFloat64(),
			Count:  g.count,
		})
	}
	return result, ctx.Err()
}

func (s *MemoryStore) AssetGroups(ctx context.Context, since *time.Time) ([]models.AssetGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		pools, investors int64
		raised, target   decimal.Decimal
	}
	groups := make(map[string]*acc)
	var order []string

	for _, p := range s.pools {
		if !inWindow(p.CreatedAt, since) {
			continue
		}
		g, ok := groups[p.AssetType]
		if !ok {
			g = &acc{}
			groups[p.AssetType] = g
			order = append(order, p.AssetType)
		}
		g.pools++
		g.investors += p.InvestorCount
		g.raised = g.raised.Add(decimal.NewFromFloat(p.RaisedAmount))
		g.target = g.target.Add(decimal.NewFromFloat(p.TargetAmount))
	}

	result := make([]models.AssetGroup, 0, len(order))
	for _, asset := range order {
		g := groups[asset]
		result = append(result, models.AssetGroup{
			AssetType:     asset,
			PoolCount:     g.pools,
			InvestorCount: g.investors,
			Raised:        g.raised.InexactFloat64(),
			Target:        g.target.InexactFloat64(),
		})
	}
	return result, ctx.Err()
}

func (s *MemoryStore) RecentUsers(ctx context.Context, since *time.Time, limit int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []models.User
	for _, u := range s.users {
		if inWindow(u.CreatedAt, since) {
			users = append(users, u)
		}
	}
	sortNewestFirst(users, func(u models.User) (time.Time, primitive.ObjectID) { return u.CreatedAt.Time, u.ID })
	return truncate(users, limit), ctx.Err()
}

func (s *MemoryStore) RecentDeposits(ctx context.Context, since *time.Time, limit int) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var deposits []models.Transaction
	for _, t := range s.transactions {
		if s.isSuccessfulDeposit(t, since) {
			deposits = append(deposits, t)
		}
	}
	sortNewestFirst(deposits, func(t models.Transaction) (time.Time, primitive.ObjectID) { return t.CreatedAt.Time, t.ID })
	return truncate(deposits, limit), ctx.Err()
}

func (s *MemoryStore) RecentPoolInvestments(ctx context.Context, since *time.Time, limit int) ([]models.PoolInvestment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var investments []models.PoolInvestment
	for _, inv := range s.poolInvestments {
		if s.isConfirmedPoolInvestment(inv, since) {
			investments = append(investments, inv)
		}
	}
	sortNewestFirst(investments, func(inv models.PoolInvestment) (time.Time, primitive.ObjectID) { return inv.CreatedAt.Time, inv.ID })
	return truncate(investments, limit), ctx.Err()
}

func (s *MemoryStore) RecentLegacyInvestments(ctx context.Context, since *time.Time, limit int) ([]models.LegacyInvestment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var investments []models.LegacyInvestment
	for _, inv := range s.legacyInvestments {
		if s.isCountedLegacyInvestment(inv, since) {
			investments = append(investments, inv)
		}
	}
	sortNewestFirst(investments, func(inv models.LegacyInvestment) (time.Time, primitive.ObjectID) { return inv.CreatedAt.Time, inv.ID })
	return truncate(investments, limit), ctx.Err()
}

func (s *MemoryStore) UsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := idSet(ids)
	var users []models.User
	for _, u := range s.users {
		if wanted[u.ID] {
			users = append(users, u)
		}
	}
	return users, ctx.Err()
}

func (s *MemoryStore) PoolsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.InvestmentPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := idSet(ids)
	var pools []models.InvestmentPool
	for _, p := range s.pools {
		if wanted[p.ID] {
			pools = append(pools, p)
		}
	}
	return pools, ctx.Err()
}

func (s *MemoryStore) VehiclesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := idSet(ids)
	var vehicles []models.Vehicle
	for _, v := range s.vehicles {
		if wanted[v.ID] {
			vehicles = append(vehicles, v)
		}
	}
	return vehicles, ctx.Err()
}

func (s *MemoryStore) isSuccessfulDeposit(t models.Transaction, since *time.Time) bool {
	return inWindow(t.CreatedAt, since) && s.vocabulary.IsDepositType(t.Type) && s.vocabulary.IsSuccessful(t.Status)
}

func (s *MemoryStore) isConfirmedPoolInvestment(inv models.PoolInvestment, since *time.Time) bool {
	return inWindow(inv.CreatedAt, since) && s.vocabulary.IsConfirmedPoolInvestment(inv.Status)
}

func (s *MemoryStore) isCountedLegacyInvestment(inv models.LegacyInvestment, since *time.Time) bool {
	return inWindow(inv.CreatedAt, since) && s.vocabulary.IsCountedLegacyInvestment(inv.Status)
}

func inWindow(ts models.Timestamp, since *time.Time) bool {
	return since == nil || !ts.Time.Before(*since)
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]bool {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// sortNewestFirst orders by timestamp then id, both descending, matching recentOptions.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, primitive.ObjectID)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi.Hex() > idj.Hex()
	})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
