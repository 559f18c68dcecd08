package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"drivefund/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var storeNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func at(days int) models.Timestamp {
	return models.NewTimestamp(storeNow.AddDate(0, 0, -days))
}

func TestMemoryStoreCountUsers(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	store.AddUsers(
		models.User{ID: primitive.NewObjectID(), PrivyID: "did:privy:a", IsVerified: true, CreatedAt: at(1)},
		models.User{ID: primitive.NewObjectID(), PrivyID: "  ", KYCStatus: "Verified", CreatedAt: at(2)},
		models.User{ID: primitive.NewObjectID(), Role: "ADMIN", CreatedAt: at(3)},
		models.User{ID: primitive.NewObjectID(), KYCStatus: "pending", CreatedAt: at(40)},
	)
	since := storeNow.AddDate(0, 0, -30)
	ctx := context.Background()

	tests := []struct {
		scope models.UserScope
		since *time.Time
		want  int64
	}{
		{models.UserScopeAll, nil, 4},
		{models.UserScopeAll, &since, 3},
		{models.UserScopeIdentityLinked, nil, 1},
		{models.UserScopeVerified, nil, 3},
		{models.UserScopeVerified, &since, 3},
	}
	for _, tt := range tests {
		got, err := store.CountUsers(ctx, tt.since, tt.scope)
		if err != nil {
			t.Fatalf("CountUsers(%s): %v", tt.scope, err)
		}
		if got != tt.want {
			t.Errorf("CountUsers(%s, windowed=%t) = %d, want %d", tt.scope, tt.since != nil, got, tt.want)
		}
	}
}

func TestMemoryStoreSumsMatchStatusCaseInsensitively(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	store.AddTransactions(
		models.Transaction{Amount: 100, Type: "DEPOSIT", Status: "Success", CreatedAt: at(1)},
		models.Transaction{Amount: 0.1, Type: "wallet_funding", Status: "paid", CreatedAt: at(1)},
		models.Transaction{Amount: 0.2, Type: "deposit", Status: "completed", CreatedAt: at(1)},
		models.Transaction{Amount: 999, Type: "deposit", Status: "pending", CreatedAt: at(1)},
		models.Transaction{Amount: 50, Type: "roi_payout", Status: "SUCCESSFUL", CreatedAt: at(1)},
	)
	ctx := context.Background()

	deposits, err := store.SumDeposits(ctx, nil)
	if err != nil || deposits != 100.3 {
		t.Fatalf("SumDeposits = %v, %v; want 100.3", deposits, err)
	}
	returns, err := store.SumReturns(ctx, nil)
	if err != nil || returns != 50 {
		t.Fatalf("SumReturns = %v, %v; want 50", returns, err)
	}
}

func TestMemoryStoreRecentOrdering(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	older := primitive.NewObjectIDFromTimestamp(storeNow.Add(-time.Hour))
	newer := primitive.NewObjectIDFromTimestamp(storeNow)
	store.AddUsers(
		models.User{ID: older, Email: "tie-old@x.com", CreatedAt: at(1)},
		models.User{ID: primitive.NewObjectID(), Email: "oldest@x.com", CreatedAt: at(5)},
		models.User{ID: newer, Email: "tie-new@x.com", CreatedAt: at(1)},
		models.User{ID: primitive.NewObjectID(), Email: "newest@x.com", CreatedAt: at(0)},
	)

	users, err := store.RecentUsers(context.Background(), nil, 3)
	if err != nil {
		t.Fatalf("RecentUsers: %v", err)
	}

	want := []string{"newest@x.com", "tie-new@x.com", "tie-old@x.com"}
	if len(users) != len(want) {
		t.Fatalf("got %d users, want %d", len(users), len(want))
	}
	for i, email := range want {
		if users[i].Email != email {
			t.Errorf("users[%d] = %s, want %s", i, users[i].Email, email)
		}
	}
}

func TestMemoryStoreGroups(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	store.AddPools(
		models.InvestmentPool{ID: primitive.NewObjectID(), AssetType: "KEKE", Status: "open", RaisedAmount: 10, TargetAmount: 100, InvestorCount: 2, CreatedAt: at(1)},
		models.InvestmentPool{ID: primitive.NewObjectID(), AssetType: "KEKE", Status: "funded", RaisedAmount: 100, TargetAmount: 100, InvestorCount: 5, CreatedAt: at(1)},
		models.InvestmentPool{ID: primitive.NewObjectID(), AssetType: "BUS", Status: "open", RaisedAmount: 1, TargetAmount: 10, CreatedAt: at(100)},
	)
	since := storeNow.AddDate(0, 0, -30)

	statuses, err := store.PoolStatusGroups(context.Background(), &since)
	if err != nil {
		t.Fatalf("PoolStatusGroups: %v", err)
	}
	if len(statuses) != 2 || statuses[0].Status != "open" || statuses[0].Count != 1 {
		t.Fatalf("status groups = %+v", statuses)
	}

	assets, err := store.AssetGroups(context.Background(), nil)
	if err != nil {
		t.Fatalf("AssetGroups: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("asset groups = %+v", assets)
	}
	keke := assets[0]
	if keke.AssetType != "KEKE" || keke.PoolCount != 2 || keke.InvestorCount != 7 || keke.Raised != 110 || keke.Target != 200 {
		t.Fatalf("keke group = %+v", keke)
	}
}

func TestMemoryStoreLookupsIgnoreUnknownIDs(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	known := primitive.NewObjectID()
	store.AddVehicles(models.Vehicle{ID: known, Name: "Hiace"})

	vehicles, err := store.VehiclesByIDs(context.Background(), []primitive.ObjectID{known, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("VehiclesByIDs: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != known {
		t.Fatalf("vehicles = %+v", vehicles)
	}
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.SumDeposits(ctx, nil); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoadMemorySeed(t *testing.T) {
	const seed = `
users:
  - id: 665f1c2e8b3a4d0012345601
    email: ada@x.com
    privy_id: did:privy:ada
    created_at: 2025-05-30T10:00:00Z
pools:
  - id: 665f1c2e8b3a4d0012345602
    asset_type: keke
    status: open
    raised_amount: 50000
    target_amount: 200000
    created_at: 2025-05-01T00:00:00Z
pool_investments:
  - user_id: 665f1c2e8b3a4d0012345601
    pool_id: 665f1c2e8b3a4d0012345602
    amount: 50000
    share_bps: 2500
    status: CONFIRMED
    created_at: 2025-05-31T09:00:00Z
`
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	if err := store.LoadMemorySeed(strings.NewReader(seed)); err != nil {
		t.Fatalf("LoadMemorySeed: %v", err)
	}

	ctx := context.Background()
	linked, _ := store.CountUsers(ctx, nil, models.UserScopeIdentityLinked)
	invested, _ := store.SumPoolInvestments(ctx, nil)
	if linked != 1 || invested != 50000 {
		t.Fatalf("linked = %d invested = %v", linked, invested)
	}

	investments, _ := store.RecentPoolInvestments(ctx, nil, 10)
	if len(investments) != 1 || investments[0].ID.IsZero() || investments[0].PoolID.Hex() != "665f1c2e8b3a4d0012345602" {
		t.Fatalf("investments = %+v", investments)
	}
}

func TestLoadMemorySeedRejectsBadIDs(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	err := store.LoadMemorySeed(strings.NewReader("users:\n  - id: not-hex\n"))
	if err == nil || !strings.Contains(err.Error(), "not-hex") {
		t.Fatalf("err = %v, want invalid id error", err)
	}

	if n, _ := store.CountUsers(context.Background(), nil, models.UserScopeAll); n != 0 {
		t.Fatalf("store should stay empty after a failed load, has %d users", n)
	}
}

func TestLoadMemorySeedEmptyInput(t *testing.T) {
	store := NewMemoryStore(models.DefaultStatusVocabulary())
	if err := store.LoadMemorySeed(strings.NewReader("")); err != nil {
		t.Fatalf("empty seed: %v", err)
	}
}
