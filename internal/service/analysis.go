package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dota-analysis/internal/analysis"
	"dota-analysis/internal/config"
	"dota-analysis/internal/recommend"
	"dota-analysis/internal/sexagenary"
)

// Rankings bundles the six day rankings computed over one date range.
type Rankings struct {
	Best           []analysis.RankedDay `json:"best"`
	Worst          []analysis.RankedDay `json:"worst"`
	MostPlayed     []analysis.RankedDay `json:"most_played"`
	MostWins       []analysis.RankedDay `json:"most_wins"`
	HighestWinRate []analysis.RankedDay `json:"highest_win_rate"`
	LowestWinRate  []analysis.RankedDay `json:"lowest_win_rate"`
}

// Recommendations is the favorable/unfavorable date report for one month.
type Recommendations struct {
	Year       int                                            `json:"year"`
	Month      int                                            `json:"month"`
	Categories map[sexagenary.Element]*recommend.CategoryStat `json:"categories"`
	Good       []recommend.Recommendation                     `json:"good"`
	Bad        []recommend.Recommendation                     `json:"bad"`
	// Curated variants score from the best/worst day rankings instead
	// of the raw aggregate.
	CuratedGood []recommend.Recommendation `json:"curated_good"`
	CuratedBad  []recommend.Recommendation `json:"curated_bad"`
}

type AnalysisService struct {
	matches  *MatchService
	resolver sexagenary.Resolver
	cfg      *config.Config
	logger   zerolog.Logger
	trace    recommend.Tracer
}

func NewAnalysisService(matches *MatchService, resolver sexagenary.Resolver, cfg *config.Config, logger zerolog.Logger) *AnalysisService {
	trace := func(event string, fields map[string]any) {
		logger.Debug().Fields(fields).Msg(event)
	}
	return &AnalysisService{
		matches:  matches,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
		trace:    trace,
	}
}

// Calendar aggregates a player's matches into chronological day stats.
func (s *AnalysisService) Calendar(ctx context.Context, accountID string, from, to int64) ([]analysis.DayStat, error) {
	matches, err := s.matches.MatchesFor(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	days := analysis.Aggregate(matches)
	sort.Slice(days, func(i, j int) bool { return days[i].Timestamp < days[j].Timestamp })

	s.logger.Debug().
		Str("account_id", accountID).
		Int("matches", len(matches)).
		Int("days", len(days)).
		Msg("calendar aggregated")

	return days, nil
}

// Rankings computes all six day rankings over one date range. The ranking
// operations are pure and independent, so they run concurrently.
func (s *AnalysisService) Rankings(ctx context.Context, accountID string, from, to int64, n, minGames int) (*Rankings, error) {
	if n <= 0 {
		n = s.cfg.Analysis.TopN
	}
	if minGames <= 0 {
		minGames = s.cfg.Analysis.MinGames
	}

	matches, err := s.matches.MatchesFor(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	days := analysis.Aggregate(matches)

	var res Rankings
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { res.Best = analysis.BestDays(days, n); return nil })
	g.Go(func() error { res.Worst = analysis.WorstDays(days, n); return nil })
	g.Go(func() error { res.MostPlayed = analysis.MostPlayedDays(days, n); return nil })
	g.Go(func() error { res.MostWins = analysis.MostWinsDays(days, n); return nil })
	g.Go(func() error { res.HighestWinRate = analysis.HighestWinRateDays(days, n, minGames); return nil })
	g.Go(func() error { res.LowestWinRate = analysis.LowestWinRateDays(days, n, minGames); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &res, nil
}

// Recommendations scores every day of the target month against the
// player's full stored history.
func (s *AnalysisService) Recommendations(ctx context.Context, accountID string, year int, month time.Month) (*Recommendations, error) {
	matches, err := s.matches.MatchesFor(ctx, accountID, 0, 0)
	if err != nil {
		return nil, err
	}
	days := analysis.Aggregate(matches)

	monthDates := recommend.MonthDates(s.resolver, year, month)
	stats := recommend.CategoryWinRates(recommend.OutcomesOf(days), s.resolver, s.cfg.Analysis.GameLimit, s.trace)
	good, bad := recommend.Recommend(stats, monthDates, s.cfg.Analysis.Threshold, s.trace)

	best := analysis.BestDays(days, s.cfg.Analysis.TopN)
	worst := analysis.WorstDays(days, s.cfg.Analysis.TopN)
	bestStats := recommend.CategoryWinRates(recommend.OutcomesOfRanked(best), s.resolver, s.cfg.Analysis.GameLimit, s.trace)
	worstStats := recommend.CategoryWinRates(recommend.OutcomesOfRanked(worst), s.resolver, s.cfg.Analysis.GameLimit, s.trace)
	curatedGood, curatedBad := recommend.RecommendFromBestWorst(bestStats, worstStats, monthDates,
		s.cfg.Analysis.GoodThreshold, s.cfg.Analysis.BadThreshold, s.trace)

	s.logger.Info().
		Str("account_id", accountID).
		Int("year", year).
		Int("month", int(month)).
		Int("good", len(good)).
		Int("bad", len(bad)).
		Msg("recommendations computed")

	return &Recommendations{
		Year:        year,
		Month:       int(month),
		Categories:  stats,
		Good:        good,
		Bad:         bad,
		CuratedGood: curatedGood,
		CuratedBad:  curatedBad,
	}, nil
}

// Summary totals a player's stored history into the overview stats.
func (s *AnalysisService) Summary(ctx context.Context, accountID string) (analysis.SummaryStats, error) {
	matches, err := s.matches.MatchesFor(ctx, accountID, 0, 0)
	if err != nil {
		return analysis.SummaryStats{}, err
	}
	return analysis.Summary(analysis.Aggregate(matches)), nil
}
