package services

import (
	"context"
	"fmt"
	"time"

	"drivefund/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AnalyticsMetrics observes query and report latency. metrics.Recorder
// implements it.
type AnalyticsMetrics interface {
	ObserveQuery(query string, duration time.Duration, err error)
	ObserveReport(rangeTag string, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) ObserveQuery(string, time.Duration, error)  {}
func (noopMetrics) ObserveReport(string, time.Duration, error) {}

// AnalyticsService builds the admin dashboard report. Every call recomputes
// from the stores; nothing is cached or written.
//
// The reads in one report run concurrently and are not wrapped in a snapshot,
// so a row written mid-request can show up in one section and not another.
// All sections share the same window start.
type AnalyticsService struct {
	store      AnalyticsStore
	vocabulary *models.StatusVocabulary
	metrics    AnalyticsMetrics
	now        func() time.Time
}

type AnalyticsOption func(*AnalyticsService)

// WithMetrics attaches a latency observer.
func WithMetrics(m AnalyticsMetrics) AnalyticsOption {
	return func(s *AnalyticsService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for windows and generatedAt.
func WithClock(now func() time.Time) AnalyticsOption {
	return func(s *AnalyticsService) {
		s.now = now
	}
}

func NewAnalyticsService(store AnalyticsStore, vocabulary *models.StatusVocabulary, opts ...AnalyticsOption) *AnalyticsService {
	s := &AnalyticsService{
		store:      store,
		vocabulary: vocabulary,
		metrics:    noopMetrics{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboardAnalytics builds the report for the raw range query values.
// Any failed read fails the whole report; there is no partial result.
func (s *AnalyticsService) GetDashboardAnalytics(ctx context.Context, rawRange []string) (*models.DashboardReport, error) {
	start := time.Now()
	window := BuildWindow(ResolveRange(rawRange), s.now())

	report, err := s.buildReport(ctx, window)
	s.metrics.ObserveReport(string(window.Range), time.Since(start), err)
	if err != nil {
		log.WithError(err).WithField("range", window.Range).Error("Failed to build dashboard analytics")
		return nil, err
	}

	log.WithFields(log.Fields{
		"range":    window.Range,
		"duration": time.Since(start).String(),
	}).Debug("Dashboard analytics generated")

	return report, nil
}

func (s *AnalyticsService) buildReport(ctx context.Context, window models.AnalyticsWindow) (*models.DashboardReport, error) {
	since := window.StartDate

	var (
		totals         models.DashboardTotals
		poolInvested   float64
		legacyInvested float64

		poolGroups   []models.PoolStatusGroup
		methodGroups []models.DepositMethodGroup
		assetGroups  []models.AssetGroup

		recentUsers       []models.RecentUser
		recentDeposits    []models.RecentDeposit
		recentInvestments []models.RecentInvestment
	)

	g, gctx := errgroup.WithContext(ctx)

	// Scalar aggregators
	g.Go(s.track("users.total", func() (err error) {
		totals.TotalUsers, err = s.store.CountUsers(gctx, since, models.UserScopeAll)
		return err
	}))
	g.Go(s.track("users.identity_linked", func() (err error) {
		totals.PrivyMappedUsers, err = s.store.CountUsers(gctx, since, models.UserScopeIdentityLinked)
		return err
	}))
	g.Go(s.track("users.verified", func() (err error) {
		totals.VerifiedUsers, err = s.store.CountUsers(gctx, since, models.UserScopeVerified)
		return err
	}))
	g.Go(s.track("deposits.sum", func() (err error) {
		totals.TotalDepositsNgn, err = s.store.SumDeposits(gctx, since)
		return err
	}))
	g.Go(s.track("investments.pool_sum", func() (err error) {
		poolInvested, err = s.store.SumPoolInvestments(gctx, since)
		return err
	}))
	g.Go(s.track("investments.legacy_sum", func() (err error) {
		legacyInvested, err = s.store.SumLegacyInvestments(gctx, since)
		return err
	}))
	g.Go(s.track("returns.sum", func() (err error) {
		totals.TotalReturnsPaidNgn, err = s.store.SumReturns(gctx, since)
		return err
	}))
	g.Go(s.track("pools.status_groups", func() (err error) {
		poolGroups, err = s.store.PoolStatusGroups(gctx, since)
		return err
	}))
	g.Go(s.track("deposits.method_groups", func() (err error) {
		methodGroups, err = s.store.DepositMethodGroups(gctx, since)
		return err
	}))
	g.Go(s.track("pools.asset_groups", func() (err error) {
		assetGroups, err = s.store.AssetGroups(gctx, since)
		return err
	}))

	// Recency loaders
	g.Go(s.track("recent.users", func() (err error) {
		recentUsers, err = s.loadRecentUsers(gctx, since)
		return err
	}))
	g.Go(s.track("recent.deposits", func() (err error) {
		recentDeposits, err = s.loadRecentDeposits(gctx, since)
		return err
	}))
	g.Go(s.track("recent.investments", func() (err error) {
		recentInvestments, err = s.loadRecentInvestments(gctx, since)
		return err
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pools := buildPoolBreakdown(poolGroups, s.vocabulary)
	totals.TotalInvestedNgn = addAmounts(poolInvested, legacyInvested)
	totals.ActivePoolsCount = pools.ActivePoolsCount
	totals.OpenPoolsCount = pools.OpenPoolsCount
	totals.FundedPoolsCount = pools.FundedPoolsCount
	totals.TotalRaisedAcrossPoolsNgn = pools.TotalRaisedNgn

	report := &models.DashboardReport{
		Range:       window.Range,
		GeneratedAt: models.NewTimestamp(s.now()),
		Totals:      totals,
		Breakdowns: models.DashboardBreakdown{
			DepositMethods: buildDepositMethods(methodGroups),
			Pools:          pools,
			TopAssets:      buildTopAssets(assetGroups),
		},
		Recent: models.RecentRecords{
			Users:       recentUsers,
			Deposits:    recentDeposits,
			Investments: recentInvestments,
		},
		PlatformActivity: BuildPlatformActivity(recentUsers, recentDeposits, recentInvestments),
		Notes:            buildNotes(totals, legacyInvested),
	}
	if since != nil {
		start := models.NewTimestamp(*since)
		report.StartDate = &start
	}

	return report, nil
}

// track times one read and tags its error with the query name.
func (s *AnalyticsService) track(query string, fn func() error) func() error {
	return func() error {
		start := time.Now()
		err := fn()
		s.metrics.ObserveQuery(query, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("%s: %w", query, err)
		}
		return nil
	}
}

// buildNotes explains known data-completeness caveats. Notes are advisory and
// never fail the report.
func buildNotes(totals models.DashboardTotals, legacyInvested float64) []string {
	notes := []string{}

	if totals.PrivyMappedUsers < totals.TotalUsers {
		notes = append(notes, fmt.Sprintf(
			"Global counts are scoped to records already synchronized into the primary store: %d of %d users are linked to Privy.",
			totals.PrivyMappedUsers, totals.TotalUsers,
		))
	}

	if legacyInvested > 0 {
		notes = append(notes, "Investment totals combine confirmed pool investments with active and completed legacy vehicle investments.")
	}

	return notes
}
