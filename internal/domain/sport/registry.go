package sport

import (
	"sort"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/identity"
	"github.com/sameerfidai/FiveLegFlex/internal/domain/props"
)

// Books and projection line variants excluded everywhere. Promotional
// odds types carry deliberately inflated lines and would poison the
// reference match.
var (
	defaultExcludedBooks     = []string{"betrivers", "unibet_us"}
	defaultExcludedOddsTypes = []string{"demon", "goblin"}
)

var baseNameReplacements = []identity.Replacement{
	{Old: "CJ", New: "C.J."},
	{Old: "Herbert", New: "Herb"},
	{Old: "Derrick Jones Jr", New: "Derrick Jones"},
	{Old: "PJ Washington", New: "P.J. Washington"},
}

var soccerNameReplacements = append([]identity.Replacement{
	{Old: "Denis Bouanga", New: "Dénis Bouanga"},
	{Old: "Martin Ojeda", New: "Martín Ojeda"},
}, baseNameReplacements...)

// premierLeagueClubs narrows the shared soccer projections board, which
// mixes several competitions under one league id.
var premierLeagueClubs = []string{
	"Arsenal FC",
	"Aston Villa FC",
	"AFC Bournemouth",
	"Brentford FC",
	"Brighton & Hove Albion FC",
	"Chelsea FC",
	"Crystal Palace FC",
	"Everton FC",
	"Fulham FC",
	"Ipswich Town FC",
	"Leicester City FC",
	"Liverpool FC",
	"Manchester City FC",
	"Manchester United FC",
	"Newcastle United FC",
	"Nottingham Forest FC",
	"Southampton FC",
	"Tottenham Hotspur FC",
	"West Ham United FC",
	"Wolverhampton Wanderers FC",
}

var soccerMarkets = []Market{
	{Code: "player_shots", Label: "Shots"},
	{Code: "player_shots_on_target", Label: "Shots On Target"},
}

var profiles = []Profile{
	{
		Key:                 "nba",
		Label:               "NBA",
		OddsKey:             "basketball_nba",
		ProjectionsLeagueID: 7,
		Markets: []Market{
			{Code: "player_points", Label: "Points"},
			{Code: "player_rebounds", Label: "Rebounds"},
			{Code: "player_assists", Label: "Assists"},
			{Code: "player_threes", Label: "3-PT Made"},
			{Code: "player_blocks", Label: "Blocked Shots"},
			{Code: "player_steals", Label: "Steals"},
			{Code: "player_blocks_steals", Label: "Blks+Stls"},
			{Code: "player_turnovers", Label: "Turnovers"},
			{Code: "player_points_rebounds_assists", Label: "Pts+Rebs+Asts"},
			{Code: "player_points_rebounds", Label: "Pts+Rebs"},
			{Code: "player_points_assists", Label: "Pts+Asts"},
			{Code: "player_rebounds_assists", Label: "Rebs+Asts"},
		},
		Tolerance:         props.ToleranceExact,
		Confidence:        props.ConfidenceWeighted,
		SideMode:          props.SideModeTwoSided,
		TopN:              10,
		ExcludedBooks:     defaultExcludedBooks,
		ExcludedOddsTypes: defaultExcludedOddsTypes,
		NameReplacements:  baseNameReplacements,
		FallbackImageURL:  "https://cdn-icons-png.flaticon.com/512/1499/1499891.png",
	},
	{
		Key:                 "nfl",
		Label:               "NFL",
		OddsKey:             "americanfootball_nfl",
		ProjectionsLeagueID: 9,
		Markets: []Market{
			{Code: "player_pass_tds", Label: "Pass TDs"},
			{Code: "player_pass_yds", Label: "Pass Yards"},
			{Code: "player_pass_completions", Label: "Pass Completions"},
			{Code: "player_pass_attempts", Label: "Pass Attempts"},
			{Code: "player_pass_interceptions", Label: "INT"},
			{Code: "player_rush_yds", Label: "Rush Yards"},
			{Code: "player_rush_attempts", Label: "Rush Attempts"},
			{Code: "player_receptions", Label: "Receptions"},
			{Code: "player_reception_yds", Label: "Receiving Yards"},
			{Code: "player_kicking_points", Label: "Kicking Points"},
			{Code: "player_field_goals", Label: "FG Made"},
			{Code: "player_anytime_td", Label: "Rush+Rec TDs"},
		},
		Tolerance:         props.ToleranceExact,
		Confidence:        props.ConfidenceWeighted,
		SideMode:          props.SideModeTwoSided,
		TopN:              100,
		LookaheadDays:     7,
		ExcludedBooks:     defaultExcludedBooks,
		ExcludedOddsTypes: defaultExcludedOddsTypes,
		NameReplacements:  baseNameReplacements,
		FallbackImageURL:  "https://cdn-icons-png.flaticon.com/512/1499/1499891.png",
	},
	{
		Key:                 "mlb",
		Label:               "MLB",
		OddsKey:             "baseball_mlb",
		ProjectionsLeagueID: 2,
		Markets: []Market{
			{Code: "batter_hits", Label: "Hits"},
			{Code: "batter_rbis", Label: "RBIs"},
			{Code: "batter_runs_scored", Label: "Runs"},
			{Code: "batter_hits_runs_rbis", Label: "Hits+Runs+RBIs"},
			{Code: "batter_singles", Label: "Singles"},
			{Code: "batter_strikeouts", Label: "Hitter Strikeouts"},
			{Code: "pitcher_strikeouts", Label: "Pitcher Strikeouts"},
			{Code: "pitcher_hits_allowed", Label: "Hits Allowed"},
			{Code: "pitcher_walks", Label: "Walks Allowed"},
			{Code: "pitcher_earned_runs", Label: "Earned Runs Allowed"},
			{Code: "pitcher_outs", Label: "Pitching Outs"},
		},
		Tolerance:         props.ToleranceExact,
		Confidence:        props.ConfidenceSimple,
		SideMode:          props.SideModeTwoSided,
		TopN:              100,
		ExcludedBooks:     defaultExcludedBooks,
		ExcludedOddsTypes: defaultExcludedOddsTypes,
		NameReplacements:  baseNameReplacements,
		FallbackImageURL:  "https://cdn-icons-png.flaticon.com/512/1499/1499891.png",
	},
	{
		Key:                 "epl",
		Label:               "Premier League",
		OddsKey:             "soccer_epl",
		ProjectionsLeagueID: 82,
		Markets:             soccerMarkets,
		Tolerance:           props.ToleranceHalfPoint,
		Confidence:          props.ConfidenceSimple,
		SideMode:            props.SideModeOverOnly,
		ExcludedBooks:       defaultExcludedBooks,
		ExcludedOddsTypes:   defaultExcludedOddsTypes,
		TeamAllowlist:       premierLeagueClubs,
		NameReplacements:    soccerNameReplacements,
		FallbackImageURL:    "https://cdn-icons-png.flaticon.com/512/166/166344.png",
	},
	{
		Key:                 "mls",
		Label:               "MLS",
		OddsKey:             "soccer_usa_mls",
		ProjectionsLeagueID: 82,
		Markets:             soccerMarkets,
		Tolerance:           props.ToleranceExact,
		Confidence:          props.ConfidenceSimple,
		SideMode:            props.SideModeOverOnly,
		ExcludedBooks:       defaultExcludedBooks,
		ExcludedOddsTypes:   defaultExcludedOddsTypes,
		NameReplacements:    soccerNameReplacements,
		FallbackImageURL:    "https://cdn-icons-png.flaticon.com/512/2748/2748558.png",
	},
	{
		Key:                 "euros",
		Label:               "UEFA Euros",
		OddsKey:             "soccer_uefa_european_championship",
		ProjectionsLeagueID: 82,
		Markets:             soccerMarkets,
		Tolerance:           props.ToleranceExact,
		Confidence:          props.ConfidenceSimple,
		SideMode:            props.SideModeOverOnly,
		ExcludedBooks:       defaultExcludedBooks,
		ExcludedOddsTypes:   defaultExcludedOddsTypes,
		NameReplacements:    soccerNameReplacements,
		FallbackImageURL:    "https://cdn-icons-png.flaticon.com/512/166/166344.png",
	},
}

var profilesByKey = func() map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Key] = p
	}
	return m
}()

// Lookup resolves a sport key to its profile.
func Lookup(key string) (Profile, bool) {
	p, ok := profilesByKey[key]
	return p, ok
}

// Keys returns every registered sport key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(profilesByKey))
	for k := range profilesByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every registered profile in key order.
func All() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, k := range Keys() {
		out = append(out, profilesByKey[k])
	}
	return out
}
