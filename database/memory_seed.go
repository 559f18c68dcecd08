package database

import (
	"fmt"
	"io"
	"os"
	"time"

	"drivefund/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// MemorySeed is the on-disk fixture format for DATA_SOURCE=memory. Ids are
// 24-character hex strings; an empty id gets a fresh ObjectID.
type MemorySeed struct {
	Users []struct {
		ID         string    `yaml:"id"`
		FullName   string    `yaml:"full_name"`
		Name       string    `yaml:"name"`
		Email      string    `yaml:"email"`
		PrivyID    string    `yaml:"privy_id"`
		Role       string    `yaml:"role"`
		IsVerified bool      `yaml:"is_verified"`
		KYCStatus  string    `yaml:"kyc_status"`
		CreatedAt  time.Time `yaml:"created_at"`
	} `yaml:"users"`

	Transactions []struct {
		ID        string    `yaml:"id"`
		UserID    string    `yaml:"user_id"`
		Amount    float64   `yaml:"amount"`
		Type      string    `yaml:"type"`
		Method    string    `yaml:"method"`
		Status    string    `yaml:"status"`
		Reference string    `yaml:"reference"`
		CreatedAt time.Time `yaml:"created_at"`
	} `yaml:"transactions"`

	PoolInvestments []struct {
		ID        string    `yaml:"id"`
		UserID    string    `yaml:"user_id"`
		PoolID    string    `yaml:"pool_id"`
		Amount    float64   `yaml:"amount"`
		ShareBps  int64     `yaml:"share_bps"`
		Status    string    `yaml:"status"`
		CreatedAt time.Time `yaml:"created_at"`
	} `yaml:"pool_investments"`

	LegacyInvestments []struct {
		ID         string    `yaml:"id"`
		InvestorID string    `yaml:"investor_id"`
		VehicleID  string    `yaml:"vehicle_id"`
		Amount     float64   `yaml:"amount"`
		Status     string    `yaml:"status"`
		CreatedAt  time.Time `yaml:"created_at"`
	} `yaml:"legacy_investments"`

	Pools []struct {
		ID            string    `yaml:"id"`
		AssetType     string    `yaml:"asset_type"`
		Status        string    `yaml:"status"`
		RaisedAmount  float64   `yaml:"raised_amount"`
		TargetAmount  float64   `yaml:"target_amount"`
		InvestorCount int64     `yaml:"investor_count"`
		CreatedAt     time.Time `yaml:"created_at"`
	} `yaml:"pools"`

	Vehicles []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"vehicles"`
}

// LoadMemorySeedFile reads a YAML fixture into the store.
func (s *MemoryStore) LoadMemorySeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open memory seed %s: %w", path, err)
	}
	defer f.Close()

	return s.LoadMemorySeed(f)
}

// LoadMemorySeed decodes a YAML fixture and appends its records.
func (s *MemoryStore) LoadMemorySeed(r io.Reader) error {
	var seed MemorySeed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && err != io.EOF {
		return fmt.Errorf("failed to parse memory seed: %w", err)
	}

	ids := seedIDParser{}

	users := make([]models.User, 0, len(seed.Users))
	for _, u := range seed.Users {
		users = append(users, models.User{
			ID:         ids.parse("users", u.ID, true),
			FullName:   u.FullName,
			Name:       u.Name,
			Email:      u.Email,
			PrivyID:    u.PrivyID,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			KYCStatus:  u.KYCStatus,
			CreatedAt:  models.NewTimestamp(u.CreatedAt),
		})
	}

	transactions := make([]models.Transaction, 0, len(seed.Transactions))
	for _, t := range seed.Transactions {
		transactions = append(transactions, models.Transaction{
			ID:        ids.parse("transactions", t.ID, true),
			UserID:    ids.parse("transactions.user_id", t.UserID, false),
			Amount:    t.Amount,
			Type:      t.Type,
			Method:    t.Method,
			Status:    t.Status,
			Reference: t.Reference,
			CreatedAt: models.NewTimestamp(t.CreatedAt),
		})
	}

	poolInvestments := make([]models.PoolInvestment, 0, len(seed.PoolInvestments))
	for _, inv := range seed.PoolInvestments {
		poolInvestments = append(poolInvestments, models.PoolInvestment{
			ID:        ids.parse("pool_investments", inv.ID, true),
			UserID:    ids.parse("pool_investments.user_id", inv.UserID, false),
			PoolID:    ids.parse("pool_investments.pool_id", inv.PoolID, false),
			Amount:    inv.Amount,
			ShareBps:  inv.ShareBps,
			Status:    inv.Status,
			CreatedAt: models.NewTimestamp(inv.CreatedAt),
		})
	}

	legacyInvestments := make([]models.LegacyInvestment, 0, len(seed.LegacyInvestments))
	for _, inv := range seed.LegacyInvestments {
		legacyInvestments = append(legacyInvestments, models.LegacyInvestment{
			ID:         ids.parse("legacy_investments", inv.ID, true),
			InvestorID: ids.parse("legacy_investments.investor_id", inv.InvestorID, false),
			VehicleID:  ids.parse("legacy_investments.vehicle_id", inv.VehicleID, false),
			Amount:     inv.Amount,
			Status:     inv.Status,
			CreatedAt:  models.NewTimestamp(inv.CreatedAt),
		})
	}

	pools := make([]models.InvestmentPool, 0, len(seed.Pools))
	for _, p := range seed.Pools {
		pools = append(pools, models.InvestmentPool{
			ID:            ids.parse("pools", p.ID, true),
			AssetType:     p.AssetType,
			Status:        p.Status,
			RaisedAmount:  p.RaisedAmount,
			TargetAmount:  p.TargetAmount,
			InvestorCount: p.InvestorCount,
			CreatedAt:     models.NewTimestamp(p.CreatedAt),
		})
	}

	vehicles := make([]models.Vehicle, 0, len(seed.Vehicles))
	for _, v := range seed.Vehicles {
		vehicles = append(vehicles, models.Vehicle{
			ID:   ids.parse("vehicles", v.ID, true),
			Name: v.Name,
			Type: v.Type,
		})
	}

	if ids.err != nil {
		return ids.err
	}

	s.AddUsers(users...)
	s.AddTransactions(transactions...)
	s.AddPoolInvestments(poolInvestments...)
	s.AddLegacyInvestments(legacyInvestments...)
	s.AddPools(pools...)
	s.AddVehicles(vehicles...)
	return nil
}

// seedIDParser keeps the first parse error so the loader can report it once.
type seedIDParser struct {
	err error
}

func (p *seedIDParser) parse(field, hex string, generate bool) primitive.ObjectID {
	if hex == "" {
		if generate {
			return primitive.NewObjectID()
		}
		return primitive.NilObjectID
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("memory seed %s: invalid id %q: %w", field, hex, err)
	}
	return id
}
