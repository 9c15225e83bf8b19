package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/metrics"
	"github.com/stratforsr-sys/bokningsstatistik/internal/port"
	"github.com/stratforsr-sys/bokningsstatistik/internal/stats"
)

// Requester identifies the authenticated caller of a scoped operation.
type Requester struct {
	ID   uuid.UUID
	Role domain.UserRole
}

// ByPersonInput carries the filters for the per-person listing.
type ByPersonInput struct {
	Period      domain.StatsPeriod
	RoleFilter  domain.ParticipantRole
	CustomStart *time.Time
	CustomEnd   *time.Time
	Limit       int
	Offset      int
}

const maxByPersonUsers = 100

// StatsService provides the aggregate booking statistics. Every operation
// applies the ownership filter before touching the repository: a USER's view
// is always restricted to their own meetings, whatever target they name.
type StatsService interface {
	// Overview returns the four fixed-period stats plus the 30-day trend
	// series, served from cache when a fresh copy exists.
	Overview(ctx context.Context, requester Requester, targetUserID *uuid.UUID) (*domain.StatsOverview, error)
	// Summary returns one period's stats for the scoped target. Custom
	// bounds, when both are given, override the named period's range for
	// the status breakdown.
	Summary(ctx context.Context, requester Requester, period domain.StatsPeriod, targetUserID *uuid.UUID, customStart, customEnd *time.Time) (*domain.PeriodStats, error)
	// TeamSummary returns the unrestricted team-wide stats for one period.
	TeamSummary(ctx context.Context, period domain.StatsPeriod) (*domain.PeriodStats, error)
	// ByPerson returns per-user booker/seller breakdowns for every listed
	// user, including users with zero meetings.
	ByPerson(ctx context.Context, requester Requester, input ByPersonInput) ([]domain.PersonStats, error)
	// Detailed returns full period stats for every user, one entry per user.
	Detailed(ctx context.Context, requester Requester, period domain.StatsPeriod) ([]domain.DetailedPersonStats, error)
	// Trends returns the sparse daily outcome series over the trailing
	// window of the given number of days.
	Trends(ctx context.Context, requester Requester, days int, targetUserID *uuid.UUID) ([]domain.TrendPoint, error)
	// Comparison contrasts the requester's month against the per-user team
	// average without exposing any peer's raw numbers.
	Comparison(ctx context.Context, requester Requester) (*domain.TeamComparison, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	userRepo  port.UserRepository
	cache     port.StatsCache
	now       func() time.Time
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, userRepo port.UserRepository, cache port.StatsCache) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		cache:     cache,
		now:       time.Now,
	}
}

// resolveVisibility applies the ownership rules to the requested target.
// Naming a foreign target is forbidden for USER requesters; everything else
// is delegated to the ownership filter.
func (s *statsService) resolveVisibility(requester Requester, targetUserID *uuid.UUID) (domain.MeetingVisibility, error) {
	if requester.Role == domain.RoleUser && targetUserID != nil && *targetUserID != requester.ID {
		return domain.MeetingVisibility{}, domain.ErrForbidden
	}
	return stats.VisibilityFor(requester.ID, requester.Role, targetUserID), nil
}

func overviewCacheKey(vis domain.MeetingVisibility) string {
	if vis.Unrestricted() {
		return "stats:overview:all"
	}
	return "stats:overview:" + vis.UserID.String()
}

func (s *statsService) Overview(ctx context.Context, requester Requester, targetUserID *uuid.UUID) (*domain.StatsOverview, error) {
	vis, err := s.resolveVisibility(requester, targetUserID)
	if err != nil {
		return nil, err
	}
	metrics.StatsQueries.WithLabelValues("overview").Inc()

	key := overviewCacheKey(vis)
	if cached, ok := s.cache.GetOverview(ctx, key); ok {
		metrics.StatsCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.StatsCacheHits.WithLabelValues("miss").Inc()

	type periodResult struct {
		period domain.StatsPeriod
		stats  *domain.PeriodStats
		err    error
	}
	type trendResult struct {
		trends []domain.TrendPoint
		err    error
	}

	periods := []domain.StatsPeriod{domain.PeriodToday, domain.PeriodWeek, domain.PeriodMonth, domain.PeriodTotal}
	periodCh := make(chan periodResult, len(periods))
	trendCh := make(chan trendResult, 1)

	var wg sync.WaitGroup
	wg.Add(len(periods) + 1)
	for _, p := range periods {
		go func(p domain.StatsPeriod) {
			defer wg.Done()
			ps, err := s.periodStats(ctx, vis, p, nil, nil)
			periodCh <- periodResult{p, ps, err}
		}(p)
	}
	go func() {
		defer wg.Done()
		window := stats.TrendWindow(30, s.now())
		outcomes, err := s.statsRepo.OutcomesInRange(ctx, vis, window)
		if err != nil {
			trendCh <- trendResult{nil, err}
			return
		}
		trendCh <- trendResult{stats.BuildTrends(outcomes), nil}
	}()

	wg.Wait()
	close(periodCh)
	close(trendCh)

	overview := &domain.StatsOverview{}
	for res := range periodCh {
		if res.err != nil {
			return nil, res.err
		}
		switch res.period {
		case domain.PeriodToday:
			overview.Today = res.stats
		case domain.PeriodWeek:
			overview.Week = res.stats
		case domain.PeriodMonth:
			overview.Month = res.stats
		case domain.PeriodTotal:
			overview.Total = res.stats
		}
	}
	tr := <-trendCh
	if tr.err != nil {
		return nil, tr.err
	}
	overview.Trends = tr.trends

	s.cache.SetOverview(ctx, key, overview)
	return overview, nil
}

func (s *statsService) Summary(ctx context.Context, requester Requester, period domain.StatsPeriod, targetUserID *uuid.UUID, customStart, customEnd *time.Time) (*domain.PeriodStats, error) {
	if !domain.IsValidStatsPeriod(period) {
		return nil, domain.ErrInvalidPeriod
	}
	if err := stats.ValidateDateRange(customStart, customEnd); err != nil {
		return nil, err
	}
	vis, err := s.resolveVisibility(requester, targetUserID)
	if err != nil {
		return nil, err
	}
	metrics.StatsQueries.WithLabelValues("summary").Inc()

	ps, err := s.periodStats(ctx, vis, period, customStart, customEnd)
	if err != nil {
		return nil, err
	}
	ps.UserID = vis.UserID
	return ps, nil
}

func (s *statsService) TeamSummary(ctx context.Context, period domain.StatsPeriod) (*domain.PeriodStats, error) {
	if !domain.IsValidStatsPeriod(period) {
		return nil, domain.ErrInvalidPeriod
	}
	metrics.StatsQueries.WithLabelValues("team_summary").Inc()
	return s.periodStats(ctx, domain.MeetingVisibility{}, period, nil, nil)
}

// periodStats assembles one PeriodStats: the four booking counts on the
// booking timestamp, and the status breakdown plus quality average for the
// effective range on the start timestamp. These are distinct dimensions: a
// meeting booked today for next month counts toward today's bookings but
// not toward today's status breakdown.
func (s *statsService) periodStats(ctx context.Context, vis domain.MeetingVisibility, period domain.StatsPeriod, customStart, customEnd *time.Time) (*domain.PeriodStats, error) {
	now := s.now()
	statusRange := stats.EffectiveRange(period, customStart, customEnd, now)

	type countResult struct {
		period domain.StatsPeriod
		count  int
		err    error
	}
	type tallyResult struct {
		tally *domain.StatusTally
		err   error
	}
	type qualityResult struct {
		agg *domain.QualityAggregate
		err error
	}

	bookingPeriods := []domain.StatsPeriod{domain.PeriodToday, domain.PeriodWeek, domain.PeriodMonth, domain.PeriodTotal}
	countCh := make(chan countResult, len(bookingPeriods))
	tallyCh := make(chan tallyResult, 1)
	qualityCh := make(chan qualityResult, 1)

	var wg sync.WaitGroup
	wg.Add(len(bookingPeriods) + 2)
	for _, p := range bookingPeriods {
		go func(p domain.StatsPeriod) {
			defer wg.Done()
			count, err := s.statsRepo.CountBookings(ctx, vis, stats.PeriodRange(p, now))
			countCh <- countResult{p, count, err}
		}(p)
	}
	go func() {
		defer wg.Done()
		tally, err := s.statsRepo.StatusTally(ctx, vis, statusRange)
		tallyCh <- tallyResult{tally, err}
	}()
	go func() {
		defer wg.Done()
		agg, err := s.statsRepo.QualityAverage(ctx, vis, statusRange)
		qualityCh <- qualityResult{agg, err}
	}()

	wg.Wait()
	close(countCh)
	close(tallyCh)
	close(qualityCh)

	ps := &domain.PeriodStats{Period: period}
	for res := range countCh {
		if res.err != nil {
			return nil, res.err
		}
		switch res.period {
		case domain.PeriodToday:
			ps.DagensBokningar = res.count
		case domain.PeriodWeek:
			ps.VeckansBokningar = res.count
		case domain.PeriodMonth:
			ps.ManadensBokningar = res.count
		case domain.PeriodTotal:
			ps.TotalBokningar = res.count
		}
	}
	tr := <-tallyCh
	if tr.err != nil {
		return nil, tr.err
	}
	qr := <-qualityCh
	if qr.err != nil {
		return nil, qr.err
	}

	ps.Avbokningar = tr.tally.Canceled
	ps.Ombokningar = tr.tally.Rescheduled
	ps.Noshows = tr.tally.NoShow
	ps.Genomforda = tr.tally.Completed
	ps.ShowRate, ps.NoShowRate = stats.Rates(tr.tally.Completed, tr.tally.NoShow)
	ps.KvalitetGenomsnitt = qr.agg.Avg
	ps.KvalitetAntal = qr.agg.Count
	return ps, nil
}

func (s *statsService) ByPerson(ctx context.Context, requester Requester, input ByPersonInput) ([]domain.PersonStats, error) {
	if !domain.IsValidStatsPeriod(input.Period) {
		return nil, domain.ErrInvalidPeriod
	}
	roleFilter := input.RoleFilter
	if roleFilter == "" {
		roleFilter = domain.RoleBoth
	}
	if !domain.IsValidParticipantRole(roleFilter) {
		return nil, domain.ErrInvalidRole
	}
	if err := stats.ValidateDateRange(input.CustomStart, input.CustomEnd); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit <= 0 || limit > maxByPersonUsers {
		limit = maxByPersonUsers
	}
	metrics.StatsQueries.WithLabelValues("by_person").Inc()

	users, err := s.userRepo.ListSummaries(ctx, nil, input.Offset, limit)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []domain.PersonStats{}, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	startRange := stats.EffectiveRange(input.Period, input.CustomStart, input.CustomEnd, s.now())

	// Two batched queries replace one query per user per role; the
	// aggregator partitions the shared result sets in memory.
	type outcomeResult struct {
		outcomes []domain.MeetingOutcome
		err      error
	}
	bookerCh := make(chan outcomeResult, 1)
	sellerCh := make(chan outcomeResult, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcomes, err := s.statsRepo.OutcomesByParticipants(ctx, domain.RoleBooker, ids, startRange)
		bookerCh <- outcomeResult{outcomes, err}
	}()
	go func() {
		defer wg.Done()
		outcomes, err := s.statsRepo.OutcomesByParticipants(ctx, domain.RoleSeller, ids, startRange)
		sellerCh <- outcomeResult{outcomes, err}
	}()
	wg.Wait()
	close(bookerCh)
	close(sellerCh)

	br := <-bookerCh
	if br.err != nil {
		return nil, br.err
	}
	sr := <-sellerCh
	if sr.err != nil {
		return nil, sr.err
	}

	return stats.AggregatePersons(users, br.outcomes, sr.outcomes, roleFilter), nil
}

func (s *statsService) Detailed(ctx context.Context, requester Requester, period domain.StatsPeriod) ([]domain.DetailedPersonStats, error) {
	if !domain.IsValidStatsPeriod(period) {
		return nil, domain.ErrInvalidPeriod
	}
	metrics.StatsQueries.WithLabelValues("detailed").Inc()

	users, err := s.userRepo.ListSummaries(ctx, nil, 0, maxByPersonUsers)
	if err != nil {
		return nil, err
	}

	results := make([]domain.DetailedPersonStats, len(users))
	errCh := make(chan error, len(users))

	var wg sync.WaitGroup
	wg.Add(len(users))
	for i, u := range users {
		go func(i int, u domain.UserSummary) {
			defer wg.Done()
			userID := u.ID
			ps, err := s.periodStats(ctx, domain.MeetingVisibility{UserID: &userID}, period, nil, nil)
			if err != nil {
				errCh <- err
				return
			}
			ps.UserID = &userID
			results[i] = domain.DetailedPersonStats{
				UserID:   u.ID,
				UserName: u.Name,
				Stats:    ps,
			}
		}(i, u)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *statsService) Trends(ctx context.Context, requester Requester, days int, targetUserID *uuid.UUID) ([]domain.TrendPoint, error) {
	if err := stats.ValidateTrendDays(days); err != nil {
		return nil, err
	}
	vis, err := s.resolveVisibility(requester, targetUserID)
	if err != nil {
		return nil, err
	}
	metrics.StatsQueries.WithLabelValues("trends").Inc()

	window := stats.TrendWindow(days, s.now())
	outcomes, err := s.statsRepo.OutcomesInRange(ctx, vis, window)
	if err != nil {
		return nil, err
	}
	return stats.BuildTrends(outcomes), nil
}

func (s *statsService) Comparison(ctx context.Context, requester Requester) (*domain.TeamComparison, error) {
	metrics.StatsQueries.WithLabelValues("comparison").Inc()

	type statsResult struct {
		stats *domain.PeriodStats
		err   error
	}
	type countResult struct {
		count int
		err   error
	}

	personalCh := make(chan statsResult, 1)
	teamCh := make(chan statsResult, 1)
	activeCh := make(chan countResult, 1)

	requesterID := requester.ID
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		ps, err := s.periodStats(ctx, domain.MeetingVisibility{UserID: &requesterID}, domain.PeriodMonth, nil, nil)
		personalCh <- statsResult{ps, err}
	}()
	go func() {
		defer wg.Done()
		ps, err := s.periodStats(ctx, domain.MeetingVisibility{}, domain.PeriodMonth, nil, nil)
		teamCh <- statsResult{ps, err}
	}()
	go func() {
		defer wg.Done()
		count, err := s.userRepo.CountActive(ctx)
		activeCh <- countResult{count, err}
	}()
	wg.Wait()
	close(personalCh)
	close(teamCh)
	close(activeCh)

	pr := <-personalCh
	if pr.err != nil {
		return nil, pr.err
	}
	tr := <-teamCh
	if tr.err != nil {
		return nil, tr.err
	}
	ar := <-activeCh
	if ar.err != nil {
		return nil, ar.err
	}

	return stats.BuildComparison(pr.stats, tr.stats, ar.count), nil
}
