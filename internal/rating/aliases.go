package rating

import "strings"

// currentNBATeams is the set of canonical names for the 30 active franchises.
var currentNBATeams = map[string]struct{}{
	"Atlanta Hawks": {}, "Boston Celtics": {}, "Brooklyn Nets": {}, "Charlotte Hornets": {},
	"Chicago Bulls": {}, "Cleveland Cavaliers": {}, "Dallas Mavericks": {}, "Denver Nuggets": {},
	"Detroit Pistons": {}, "Golden State Warriors": {}, "Houston Rockets": {}, "Indiana Pacers": {},
	"Los Angeles Clippers": {}, "Los Angeles Lakers": {}, "Memphis Grizzlies": {}, "Miami Heat": {},
	"Milwaukee Bucks": {}, "Minnesota Timberwolves": {}, "New Orleans Pelicans": {},
	"New York Knicks": {}, "Oklahoma City Thunder": {}, "Orlando Magic": {},
	"Philadelphia 76ers": {}, "Phoenix Suns": {}, "Portland Trail Blazers": {},
	"Sacramento Kings": {}, "San Antonio Spurs": {}, "Toronto Raptors": {},
	"Utah Jazz": {}, "Washington Wizards": {},
}

// teamAliases folds common name variants, nicknames, and abbreviations to a
// canonical display name. Keys are lowercase; lookups are case-insensitive.
var teamAliases = map[string]string{
	// Common name variants
	"la lakers":            "Los Angeles Lakers",
	"la clippers":          "Los Angeles Clippers",
	"gs warriors":          "Golden State Warriors",
	"ny knicks":            "New York Knicks",
	"no pelicans":          "New Orleans Pelicans",
	"new orleans":          "New Orleans Pelicans",
	"new orleans pelicans": "New Orleans Pelicans",
	"pelicans":             "New Orleans Pelicans",
	"nola":                 "New Orleans Pelicans",
	"76ers":                "Philadelphia 76ers",
	"sixers":               "Philadelphia 76ers",
	"philadelphia":         "Philadelphia 76ers",
	"philadelphia 76ers":   "Philadelphia 76ers",
	"spurs":                "San Antonio Spurs",
	"lakers":               "Los Angeles Lakers",
	"clippers":             "Los Angeles Clippers",
	"warriors":             "Golden State Warriors",
	"thunder":              "Oklahoma City Thunder",
	"knicks":               "New York Knicks",
	"suns":                 "Phoenix Suns",
	"blazers":              "Portland Trail Blazers",
	"trail blazers":        "Portland Trail Blazers",
	"wolves":               "Minnesota Timberwolves",
	"timberwolves":         "Minnesota Timberwolves",
	"cavs":                 "Cleveland Cavaliers",
	"mavs":                 "Dallas Mavericks",

	// Team abbreviations
	"atl": "Atlanta Hawks",
	"bos": "Boston Celtics",
	"brk": "Brooklyn Nets",
	"bkn": "Brooklyn Nets",
	"chi": "Chicago Bulls",
	"cho": "Charlotte Hornets",
	"cha": "Charlotte Hornets",
	"cle": "Cleveland Cavaliers",
	"dal": "Dallas Mavericks",
	"den": "Denver Nuggets",
	"det": "Detroit Pistons",
	"gsw": "Golden State Warriors",
	"hou": "Houston Rockets",
	"ind": "Indiana Pacers",
	"lac": "Los Angeles Clippers",
	"lal": "Los Angeles Lakers",
	"mem": "Memphis Grizzlies",
	"mia": "Miami Heat",
	"mil": "Milwaukee Bucks",
	"min": "Minnesota Timberwolves",
	"nop": "New Orleans Pelicans",
	"no":  "New Orleans Pelicans",
	"nor": "New Orleans Pelicans",
	"nyk": "New York Knicks",
	"okc": "Oklahoma City Thunder",
	"orl": "Orlando Magic",
	"phi": "Philadelphia 76ers",
	"pho": "Phoenix Suns",
	"phx": "Phoenix Suns",
	"por": "Portland Trail Blazers",
	"sac": "Sacramento Kings",
	"sas": "San Antonio Spurs",
	"tor": "Toronto Raptors",
	"uta": "Utah Jazz",
	"was": "Washington Wizards",
}

// CanonicalTeamName normalizes whitespace and resolves aliases to a single
// canonical display name. Unrecognized names pass through unchanged and are
// treated as their own canonical form. Every rating read and write goes
// through this function; skipping it forks ratings across spellings.
func CanonicalTeamName(name string) string {
	if name == "" {
		return ""
	}
	n := strings.Join(strings.Fields(name), " ")
	if canonical, ok := teamAliases[strings.ToLower(n)]; ok {
		return canonical
	}
	return n
}

// IsCurrentNBATeam reports whether the name maps to an active NBA franchise.
func IsCurrentNBATeam(name string) bool {
	_, ok := currentNBATeams[CanonicalTeamName(name)]
	return ok
}
