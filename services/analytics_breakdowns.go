package services

import (
	"sort"
	"strings"

	"drivefund/models"
	"drivefund/utils"

	"github.com/shopspring/decimal"
)

const (
	topAssetsLimit = 5

	unknownMethod    = "unknown"
	unspecifiedAsset = "UNSPECIFIED"
)

// normalizeMethod folds gateway method names so "Bank Transfer",
// "bank-transfer" and "BANK_TRANSFER" land in one group.
func normalizeMethod(method string) string {
	fields := strings.FieldsFunc(strings.ToLower(method), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	if len(fields) == 0 {
		return unknownMethod
	}
	return strings.Join(fields, "_")
}

func normalizeAsset(assetType string) string {
	asset := strings.ToUpper(strings.TrimSpace(assetType))
	if asset == "" {
		return unspecifiedAsset
	}
	return asset
}

// buildPoolBreakdown buckets raw status groups into open, funded and closed.
// Statuses outside the vocabulary still count toward the pool total and the
// raised/target sums.
func buildPoolBreakdown(groups []models.PoolStatusGroup, vocabulary *models.StatusVocabulary) models.PoolBreakdown {
	var breakdown models.PoolBreakdown
	raised, target := decimal.Zero, decimal.Zero

	for _, g := range groups {
		breakdown.TotalPools += g.Count
		raised = raised.Add(decimal.NewFromFloat(g.Raised))
		target = target.Add(decimal.NewFromFloat(g.Target))

		switch vocabulary.PoolBucket(g.Status) {
		case models.PoolStatusOpen:
			breakdown.OpenPoolsCount += g.Count
		case models.PoolStatusFunded:
			breakdown.FundedPoolsCount += g.Count
		case models.PoolStatusClosed:
			breakdown.ClosedPoolsCount += g.Count
		}
	}

	breakdown.ActivePoolsCount = breakdown.OpenPoolsCount + breakdown.FundedPoolsCount
	breakdown.TotalRaisedNgn = raised.InexactFloat64()
	breakdown.TotalTargetNgn = target.InexactFloat64()
	breakdown.FundingProgressRatio = utils.SafeRatio(breakdown.TotalRaisedNgn, breakdown.TotalTargetNgn)

	return breakdown
}

// buildDepositMethods merges groups by normalized method, largest total first.
func buildDepositMethods(groups []models.DepositMethodGroup) []models.DepositMethodBreakdown {
	type acc struct {
		total decimal.Decimal
		count int64
	}
	merged := make(map[string]*acc)
	var order []string

	for _, g := range groups {
		method := normalizeMethod(g.Method)
		a, ok := merged[method]
		if !ok {
			a = &acc{}
			merged[method] = a
			order = append(order, method)
		}
		a.total = a.total.Add(decimal.NewFromFloat(g.Total))
		a.count += g.Count
	}

	methods := make([]models.DepositMethodBreakdown, 0, len(order))
	for _, method := range order {
		a := merged[method]
		methods = append(methods, models.DepositMethodBreakdown{
			Method:   method,
			TotalNgn: a.total.InexactFloat64(),
			Count:    a.count,
		})
	}

	sort.SliceStable(methods, func(i, j int) bool {
		if methods[i].TotalNgn != methods[j].TotalNgn {
			return methods[i].TotalNgn > methods[j].TotalNgn
		}
		return methods[i].Method < methods[j].Method
	})

	return methods
}

// buildTopAssets ranks asset categories by amount raised and keeps the top five.
func buildTopAssets(groups []models.AssetGroup) []models.TopAsset {
	type acc struct {
		pools, investors int64
		raised, target   decimal.Decimal
	}
	merged := make(map[string]*acc)
	var order []string

	for _, g := range groups {
		asset := normalizeAsset(g.AssetType)
		a, ok := merged[asset]
		if !ok {
			a = &acc{}
			merged[asset] = a
			order = append(order, asset)
		}
		a.pools += g.PoolCount
		a.investors += g.InvestorCount
		a.raised = a.raised.Add(decimal.NewFromFloat(g.Raised))
		a.target = a.target.Add(decimal.NewFromFloat(g.Target))
	}

	assets := make([]models.TopAsset, 0, len(order))
	for _, asset := range order {
		a := merged[asset]
		raised, target := a.raised.InexactFloat64(), a.target.InexactFloat64()
		assets = append(assets, models.TopAsset{
			AssetType:     asset,
			PoolCount:     a.pools,
			InvestorCount: a.investors,
			RaisedNgn:     raised,
			TargetNgn:     target,
			ProgressRatio: utils.SafeRatio(raised, target),
		})
	}

	sort.SliceStable(assets, func(i, j int) bool {
		if assets[i].RaisedNgn != assets[j].RaisedNgn {
			return assets[i].RaisedNgn > assets[j].RaisedNgn
		}
		return assets[i].AssetType < assets[j].AssetType
	})

	if len(assets) > topAssetsLimit {
		assets = assets[:topAssetsLimit]
	}
	return assets
}

// addAmounts sums money without float drift.
func addAmounts(amounts ...float64) float64 {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount))
	}
	return total.InexactFloat64()
}
