package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/identity"
	"github.com/sameerfidai/FiveLegFlex/internal/domain/props"
	"github.com/sameerfidai/FiveLegFlex/internal/domain/sport"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/cache"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/logging"
)

type BestPropsInput struct {
	Sport string
	// IncludeReference matches bookmaker quotes against projections
	// provider lines. When false the ranking runs on bookmaker
	// consensus alone.
	IncludeReference bool
	// Limit truncates the ranked output after the sport's own cap;
	// 0 means no extra truncation.
	Limit int
}

type BestPropsResult struct {
	Sport  string          `json:"sport"`
	Label  string          `json:"label"`
	Source props.Source    `json:"source"`
	Bets   []props.BestBet `json:"bets"`
	// Message is set when the slate or board yielded nothing rankable.
	Message string `json:"message,omitempty"`
}

type SportInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Markets []string `json:"markets"`
}

// BestPropsService reconciles bookmaker prop quotes against projections
// provider lines and ranks the best side per player, statistic, and game.
type BestPropsService struct {
	odds        OddsBoardProvider
	projections ProjectionsProvider
	store       *cache.Store
	workers     int
	logger      *logging.Logger
	eastern     *time.Location
	now         func() time.Time
}

func NewBestPropsService(
	odds OddsBoardProvider,
	projections ProjectionsProvider,
	store *cache.Store,
	workers int,
	logger *logging.Logger,
) *BestPropsService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Slate windows shift by at most an hour without tzdata.
		eastern = time.FixedZone("EST", -5*60*60)
		logger.Warn("tzdata unavailable, using fixed eastern offset", "error", err)
	}

	return &BestPropsService{
		odds:        odds,
		projections: projections,
		store:       store,
		workers:     workers,
		logger:      logger,
		eastern:     eastern,
		now:         time.Now,
	}
}

func (s *BestPropsService) BestProps(ctx context.Context, input BestPropsInput) (BestPropsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BestPropsService.BestProps")
	defer span.End()

	profile, ok := sport.Lookup(strings.ToLower(strings.TrimSpace(input.Sport)))
	if !ok {
		return BestPropsResult{}, fmt.Errorf("%w: unsupported sport %q", ErrNotFound, input.Sport)
	}
	if input.Limit < 0 {
		return BestPropsResult{}, fmt.Errorf("%w: limit cannot be negative", ErrInvalidInput)
	}
	if s.odds == nil {
		return BestPropsResult{}, fmt.Errorf("%w: odds board provider is not configured", ErrDependencyUnavailable)
	}

	source := props.SourceConsensus
	if input.IncludeReference {
		source = props.SourceReference
	}
	if source == props.SourceReference && s.projections == nil {
		return BestPropsResult{}, fmt.Errorf("%w: projections provider is not configured", ErrDependencyUnavailable)
	}

	load := func(ctx context.Context) (any, error) {
		return s.computeBestProps(ctx, profile, source)
	}

	var value any
	var err error
	if s.store != nil {
		key := fmt.Sprintf("bestprops:%s:%s", profile.Key, source)
		value, err = s.store.GetOrLoad(ctx, key, load)
	} else {
		value, err = load(ctx)
	}
	if err != nil {
		return BestPropsResult{}, err
	}

	result, ok := value.(BestPropsResult)
	if !ok {
		return BestPropsResult{}, fmt.Errorf("unexpected cached value type %T", value)
	}
	if input.Limit > 0 && input.Limit < len(result.Bets) {
		result.Bets = result.Bets[:input.Limit]
	}
	return result, nil
}

// Sports lists the supported sports and their known markets.
func (s *BestPropsService) Sports(ctx context.Context) []SportInfo {
	_, span := startUsecaseSpan(ctx, "usecase.BestPropsService.Sports")
	defer span.End()

	profiles := sport.All()
	out := make([]SportInfo, 0, len(profiles))
	for _, p := range profiles {
		markets := make([]string, 0, len(p.Markets))
		for _, m := range p.Markets {
			markets = append(markets, m.Label)
		}
		out = append(out, SportInfo{
			Key:     p.Key,
			Label:   p.Label,
			Markets: markets,
		})
	}
	return out
}

func (s *BestPropsService) computeBestProps(ctx context.Context, profile sport.Profile, source props.Source) (BestPropsResult, error) {
	result := BestPropsResult{
		Sport:  profile.Key,
		Label:  profile.Label,
		Source: source,
		Bets:   []props.BestBet{},
	}

	var games []props.Game
	var refs []props.ReferenceLine
	var gamesErr, refsErr error

	var prefetch conc.WaitGroup
	prefetch.Go(func() {
		games, gamesErr = s.loadUpcomingGames(ctx, profile)
	})
	if source == props.SourceReference {
		prefetch.Go(func() {
			refs, refsErr = s.loadReferenceLines(ctx, profile)
		})
	}
	prefetch.Wait()
	if gamesErr != nil {
		return result, gamesErr
	}
	if refsErr != nil {
		return result, refsErr
	}

	if len(games) == 0 {
		result.Message = fmt.Sprintf("No %s games.", profile.Label)
		return result, nil
	}

	var refIndex map[referenceKey]props.ReferenceLine
	if source == props.SourceReference {
		if len(refs) == 0 {
			result.Message = fmt.Sprintf("No %s Props Data.", profile.Label)
			return result, nil
		}
		refIndex = indexReferenceLines(refs)
	}

	bundles, err := s.collectBundles(ctx, profile, games)
	if err != nil {
		return result, err
	}

	bets := make([]props.BestBet, 0, len(bundles))
	for _, bundle := range bundles {
		if bet, ok := rankBundle(profile, bundle, refIndex, source); ok {
			bets = append(bets, bet)
		}
	}

	sort.SliceStable(bets, func(i, j int) bool {
		ci, cj := bets[i].Confidence, bets[j].Confidence
		if ci.Valid != cj.Valid {
			return ci.Valid
		}
		if ci.Valid && ci.Value != cj.Value {
			return ci.Value > cj.Value
		}
		if bets[i].Player != bets[j].Player {
			return bets[i].Player < bets[j].Player
		}
		if bets[i].Category != bets[j].Category {
			return bets[i].Category < bets[j].Category
		}
		return bets[i].GameID < bets[j].GameID
	})

	if profile.TopN > 0 && len(bets) > profile.TopN {
		bets = bets[:profile.TopN]
	}
	if len(bets) == 0 {
		result.Message = fmt.Sprintf("No %s Props Data.", profile.Label)
		return result, nil
	}

	result.Bets = bets
	return result, nil
}

// loadUpcomingGames fetches the slate and keeps games inside the sport's
// window: strictly future, and when the profile bounds lookahead, before
// end of day US-Eastern N days out.
func (s *BestPropsService) loadUpcomingGames(ctx context.Context, profile sport.Profile) ([]props.Game, error) {
	items, err := s.odds.UpcomingGames(ctx, profile.OddsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch upcoming games sport=%s: %v", ErrDependencyUnavailable, profile.Key, err)
	}

	now := s.now()
	var cutoff time.Time
	if profile.LookaheadDays > 0 {
		y, m, d := now.In(s.eastern).Date()
		endOfDay := time.Date(y, m, d, 23, 59, 59, 0, s.eastern)
		cutoff = endOfDay.AddDate(0, 0, profile.LookaheadDays)
	}

	out := make([]props.Game, 0, len(items))
	for _, item := range items {
		if !item.CommenceTime.After(now) {
			continue
		}
		if !cutoff.IsZero() && item.CommenceTime.After(cutoff) {
			continue
		}
		game := props.Game{
			ID:           item.ID,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			CommenceTime: item.CommenceTime,
		}
		if err := game.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed game", "sport", profile.Key, "error", err)
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

// loadReferenceLines fetches the projections board and applies the
// profile's odds-type and team filters.
func (s *BestPropsService) loadReferenceLines(ctx context.Context, profile sport.Profile) ([]props.ReferenceLine, error) {
	items, err := s.projections.Projections(ctx, profile.ProjectionsLeagueID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch projections sport=%s: %v", ErrDependencyUnavailable, profile.Key, err)
	}

	normalizer := profile.Normalizer()
	out := make([]props.ReferenceLine, 0, len(items))
	for _, item := range items {
		if profile.OddsTypeExcluded(item.OddsType) {
			continue
		}
		club := item.Market
		if club == "" {
			club = item.Team
		}
		if !profile.TeamAllowed(club) {
			continue
		}
		ref := props.ReferenceLine{
			Player:           item.Player,
			NormalizedPlayer: normalizer.Normalize(item.Player),
			Category:         item.StatType,
			Line:             item.Line,
			Team:             item.Team,
			Position:         item.Position,
			ImageURL:         item.ImageURL,
		}
		if err := ref.Validate(); err != nil {
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

type gameBundlesResult struct {
	gameID  string
	bundles []props.Bundle
	err     error
}

// collectBundles fans out per-game odds fetches over a bounded worker
// pool and merges the per-game quote bundles. Individual game failures
// degrade the slate; a fully failed slate is a dependency error.
func (s *BestPropsService) collectBundles(ctx context.Context, profile sport.Profile, games []props.Game) ([]props.Bundle, error) {
	marketCodes := make([]string, 0, len(profile.Markets))
	for _, m := range profile.Markets {
		marketCodes = append(marketCodes, m.Code)
	}
	normalizer := profile.Normalizer()

	workerCount := s.workers
	if workerCount > len(games) {
		workerCount = len(games)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan gameBundlesResult, len(games))

	var fetchedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, game := range games {
		game := game
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			payload, err := s.odds.GameOdds(ctx, profile.OddsKey, game.ID, marketCodes)
			if err != nil {
				failedCount.Add(1)
				results <- gameBundlesResult{gameID: game.ID, err: err}
				return
			}
			fetchedCount.Add(1)
			results <- gameBundlesResult{
				gameID:  game.ID,
				bundles: buildGameBundles(profile, game, payload, normalizer),
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit game fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	bundles := make([]props.Bundle, 0, len(games)*len(marketCodes))
	for row := range results {
		if row.err != nil {
			s.logger.WarnContext(ctx, "game odds fetch failed",
				"sport", profile.Key,
				"game_id", row.gameID,
				"error", row.err,
			)
			continue
		}
		bundles = append(bundles, row.bundles...)
	}

	if fetchedCount.Load() == 0 && failedCount.Load() > 0 {
		return nil, fmt.Errorf("%w: all %d game odds fetches failed sport=%s", ErrDependencyUnavailable, failedCount.Load(), profile.Key)
	}

	s.logger.InfoContext(ctx, "collected prop bundles",
		"sport", profile.Key,
		"games_fetched", fetchedCount.Load(),
		"games_failed", failedCount.Load(),
		"bundles", len(bundles),
	)
	return bundles, nil
}

// buildGameBundles groups a game's bookmaker outcomes into quote bundles
// keyed by normalized player, statistic category, and game.
func buildGameBundles(profile sport.Profile, game props.Game, payload ExternalGameOdds, normalizer *identity.Normalizer) []props.Bundle {
	type pairKey struct {
		player string
		line   float64
	}
	type pairPrices struct {
		player string
		over   int
		under  int
	}

	byKey := make(map[props.Key]*props.Bundle)
	order := make([]props.Key, 0)

	for _, bookmaker := range payload.Bookmakers {
		if profile.BookExcluded(bookmaker.Key) {
			continue
		}
		for _, market := range bookmaker.Markets {
			label := profile.MarketLabel(market.Code)

			pairs := make(map[pairKey]*pairPrices)
			pairOrder := make([]pairKey, 0, len(market.Outcomes))
			for _, outcome := range market.Outcomes {
				if outcome.Player == "" || outcome.Price == 0 {
					continue
				}
				pk := pairKey{player: outcome.Player, line: outcome.Line}
				pair, ok := pairs[pk]
				if !ok {
					pair = &pairPrices{player: outcome.Player}
					pairs[pk] = pair
					pairOrder = append(pairOrder, pk)
				}
				if strings.EqualFold(outcome.Side, "under") {
					pair.under = outcome.Price
				} else {
					pair.over = outcome.Price
				}
			}

			for _, pk := range pairOrder {
				pair := pairs[pk]
				quote, err := props.NewQuote(bookmaker.Key, pk.line, pair.over, pair.under)
				if err != nil {
					continue
				}

				key := props.Key{
					Player:   normalizer.Normalize(pair.player),
					Category: label,
					GameID:   game.ID,
				}
				bundle, ok := byKey[key]
				if !ok {
					bundle = &props.Bundle{
						Player:           pair.player,
						NormalizedPlayer: key.Player,
						Category:         label,
						Game:             game,
					}
					byKey[key] = bundle
					order = append(order, key)
				}
				bundle.Quotes = append(bundle.Quotes, quote)
			}
		}
	}

	out := make([]props.Bundle, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

type referenceKey struct {
	player   string
	category string
}

func indexReferenceLines(refs []props.ReferenceLine) map[referenceKey]props.ReferenceLine {
	out := make(map[referenceKey]props.ReferenceLine, len(refs))
	for _, ref := range refs {
		key := referenceKey{player: ref.NormalizedPlayer, category: ref.Category}
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = ref
	}
	return out
}

// rankBundle runs line matching and side selection for one bundle. In
// reference mode a bundle without a matching projections line is
// dropped. Consensus ranking always compares fully two-sided quotes
// under the weighted policy.
func rankBundle(profile sport.Profile, bundle props.Bundle, refIndex map[referenceKey]props.ReferenceLine, source props.Source) (props.BestBet, bool) {
	mode := profile.SideMode
	policy := profile.Confidence

	if source == props.SourceReference {
		ref, ok := refIndex[referenceKey{player: bundle.NormalizedPlayer, category: bundle.Category}]
		if !ok {
			return props.BestBet{}, false
		}
		bundle.Reference = &ref
	} else {
		bundle.Reference = nil
		mode = props.SideModeTwoSided
		policy = props.ConfidenceWeighted
	}

	eligible := props.EligibleQuotes(bundle.Quotes, bundle.Reference, profile.Tolerance, mode)
	pick, ok := props.SelectBest(eligible, mode, policy)
	if !ok {
		return props.BestBet{}, false
	}

	bet := props.BestBet{
		Player:     bundle.Player,
		HomeTeam:   bundle.Game.HomeTeam,
		AwayTeam:   bundle.Game.AwayTeam,
		GameID:     bundle.Game.ID,
		GameTime:   bundle.Game.CommenceTime,
		Category:   bundle.Category,
		Line:       pick.Line,
		BookLine:   pick.Line,
		Side:       pick.Side,
		Book:       pick.Book,
		Price:      pick.Price,
		Confidence: pick.Confidence,
		Source:     source,
		Quotes:     eligible,
		ImageURL:   profile.FallbackImageURL,
	}
	if bundle.Reference != nil {
		bet.Line = bundle.Reference.Line
		bet.Team = bundle.Reference.Team
		bet.Position = bundle.Reference.Position
		if bundle.Reference.ImageURL != "" {
			bet.ImageURL = bundle.Reference.ImageURL
		}
	}
	return bet, true
}
