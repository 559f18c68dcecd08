package models

import (
	"time"
)

// RangeTag is one of the supported reporting windows.
type RangeTag string

const (
	Range7Days   RangeTag = "7d"
	Range30Days  RangeTag = "30d"
	Range90Days  RangeTag = "90d"
	RangeAllTime RangeTag = "all"

	DefaultRange = Range30Days
)

// AnalyticsWindow is a resolved range. A nil StartDate means unbounded.
type AnalyticsWindow struct {
	Range     RangeTag
	StartDate *time.Time
}

// UserScope selects which user subset a count covers.
type UserScope string

const (
	UserScopeAll            UserScope = "all"
	UserScopeIdentityLinked UserScope = "identity_linked"
	UserScopeVerified       UserScope = "verified"
)

// Raw groups returned by the stores, keyed by the stored value as-is.

type PoolStatusGroup struct {
	Status string  `bson:"_id"`
	Count  int64   `bson:"count"`
	Raised float64 `bson:"raised"`
	Target float64 `bson:"target"`
}

type DepositMethodGroup struct {
	Method string  `bson:"_id"`
	Total  float64 `bson:"total"`
	Count  int64   `bson:"count"`
}

type AssetGroup struct {
	AssetType     string  `bson:"_id"`
	PoolCount     int64   `bson:"pool_count"`
	InvestorCount int64   `bson:"investor_count"`
	Raised        float64 `bson:"raised"`
	Target        float64 `bson:"target"`
}

// DashboardReport is the admin analytics payload.
type DashboardReport struct {
	Range            RangeTag           `json:"range"`
	StartDate        *Timestamp         `json:"startDate"`
	GeneratedAt      Timestamp          `json:"generatedAt"`
	Totals           DashboardTotals    `json:"totals"`
	Breakdowns       DashboardBreakdown `json:"breakdowns"`
	Recent           RecentRecords      `json:"recent"`
	PlatformActivity []ActivityItem     `json:"platformActivity"`
	Notes            []string           `json:"notes"`
}

type DashboardTotals struct {
	TotalUsers                int64   `json:"totalUsers"`
	PrivyMappedUsers          int64   `json:"privyMappedUsers"`
	VerifiedUsers             int64   `json:"verifiedUsers"`
	TotalDepositsNgn          float64 `json:"totalDepositsNgn"`
	TotalInvestedNgn          float64 `json:"totalInvestedNgn"`
	TotalReturnsPaidNgn       float64 `json:"totalReturnsPaidNgn"`
	ActivePoolsCount          int64   `json:"activePoolsCount"`
	OpenPoolsCount            int64   `json:"openPoolsCount"`
	FundedPoolsCount          int64   `json:"fundedPoolsCount"`
	TotalRaisedAcrossPoolsNgn float64 `json:"totalRaisedAcrossPoolsNgn"`
}

type DashboardBreakdown struct {
	DepositMethods []DepositMethodBreakdown `json:"depositMethods"`
	Pools          PoolBreakdown            `json:"pools"`
	TopAssets      []TopAsset               `json:"topAssets"`
}

type DepositMethodBreakdown struct {
	Method   string  `json:"method"`
	TotalNgn float64 `json:"totalNgn"`
	Count    int64   `json:"count"`
}

type PoolBreakdown struct {
	TotalPools           int64   `json:"totalPools"`
	OpenPoolsCount       int64   `json:"openPoolsCount"`
	FundedPoolsCount     int64   `json:"fundedPoolsCount"`
	ClosedPoolsCount     int64   `json:"closedPoolsCount"`
	ActivePoolsCount     int64   `json:"activePoolsCount"`
	TotalRaisedNgn       float64 `json:"totalRaisedNgn"`
	TotalTargetNgn       float64 `json:"totalTargetNgn"`
	FundingProgressRatio float64 `json:"fundingProgressRatio"`
}

type TopAsset struct {
	AssetType     string  `json:"assetType"`
	PoolCount     int64   `json:"poolCount"`
	InvestorCount int64   `json:"investorCount"`
	RaisedNgn     float64 `json:"raisedNgn"`
	TargetNgn     float64 `json:"targetNgn"`
	ProgressRatio float64 `json:"progressRatio"`
}

type RecentRecords struct {
	Users       []RecentUser       `json:"users"`
	Deposits    []RecentDeposit    `json:"deposits"`
	Investments []RecentInvestment `json:"investments"`
}

type RecentUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Verified    bool      `json:"verified"`
	PrivyLinked bool      `json:"privyLinked"`
	CreatedAt   Timestamp `json:"createdAt"`
}

type RecentDeposit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	AmountNgn float64   `json:"amountNgn"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// InvestmentSource tags which ledger an investment came from.
type InvestmentSource string

const (
	InvestmentSourcePool   InvestmentSource = "pool"
	InvestmentSourceLegacy InvestmentSource = "legacy"
)

// RecentInvestment is the common shape both investment ledgers normalize to.
type RecentInvestment struct {
	ID        string           `json:"id"`
	Source    InvestmentSource `json:"source"`
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	UserEmail string           `json:"userEmail"`
	Label     string           `json:"label"`
	AmountNgn float64          `json:"amountNgn"`
	Status    string           `json:"status"`
	ShareBps  int64            `json:"shareBps,omitempty"`
	CreatedAt Timestamp        `json:"createdAt"`
}

type ActivityKind string

const (
	ActivityUserJoined ActivityKind = "user_joined"
	ActivityDeposit    ActivityKind = "deposit"
	ActivityInvestment ActivityKind = "investment"
)

type ActivityItem struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	AmountNgn *float64     `json:"amountNgn,omitempty"`
	Timestamp Timestamp    `json:"timestamp"`
}
