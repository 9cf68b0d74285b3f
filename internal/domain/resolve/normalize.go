package resolve

import (
	"strings"
	"sync"
	"unicode"
)

// nameSuffixes are generational suffixes stripped before matching.
var nameSuffixes = map[string]struct{}{
	"JR": {}, "SR": {}, "II": {}, "III": {}, "IV": {}, "V": {},
}

// nicknames maps formal first names to the short form projection sources
// tend to use.
var nicknames = map[string]string{
	"CHRISTOPHER": "CHRIS",
	"BENJAMIN":    "BEN",
	"MATTHEW":     "MATT",
	"ANTHONY":     "TONY",
	"ALEXANDER":   "ALEX",
	"NICHOLAS":    "NICK",
	"JONATHAN":    "JON",
	"MICHAEL":     "MIKE",
	"WILLIAM":     "WILL",
	"ROBERT":      "ROB",
	"KENNETH":     "KEN",
}

// teamAliases maps the spellings platforms use to a canonical abbreviation.
var teamAliases = map[string][]string{
	"ARI": {"ARI", "ARIZONA", "CARDINALS"},
	"ATL": {"ATL", "ATLANTA", "FALCONS"},
	"BAL": {"BAL", "BALTIMORE", "RAVENS"},
	"BUF": {"BUF", "BUFFALO", "BILLS"},
	"CAR": {"CAR", "CAROLINA", "PANTHERS"},
	"CHI": {"CHI", "CHICAGO", "BEARS"},
	"CIN": {"CIN", "CINCINNATI", "BENGALS"},
	"CLE": {"CLE", "CLEVELAND", "BROWNS"},
	"DAL": {"DAL", "DALLAS", "COWBOYS"},
	"DEN": {"DEN", "DENVER", "BRONCOS"},
	"DET": {"DET", "DETROIT", "LIONS"},
	"GB":  {"GB", "GNB", "GREEN BAY", "PACKERS"},
	"HOU": {"HOU", "HOUSTON", "TEXANS"},
	"IND": {"IND", "INDIANAPOLIS", "COLTS"},
	"JAX": {"JAX", "JAC", "JACKSONVILLE", "JAGUARS"},
	"KC":  {"KC", "KAN", "KANSAS CITY", "CHIEFS"},
	"LV":  {"LV", "LAS", "LAS VEGAS", "RAIDERS"},
	"LAC": {"LAC", "CHARGERS"},
	"LAR": {"LAR", "RAMS"},
	"MIA": {"MIA", "MIAMI", "DOLPHINS"},
	"MIN": {"MIN", "MINNESOTA", "VIKINGS"},
	"NE":  {"NE", "NEW ENGLAND", "PATRIOTS"},
	"NO":  {"NO", "NEW ORLEANS", "SAINTS"},
	"NYG": {"NYG", "GIANTS"},
	"NYJ": {"NYJ", "JETS"},
	"PHI": {"PHI", "PHILADELPHIA", "EAGLES"},
	"PIT": {"PIT", "PITTSBURGH", "STEELERS"},
	"SEA": {"SEA", "SEATTLE", "SEAHAWKS"},
	"SF":  {"SF", "SAN FRANCISCO", "49ERS"},
	"TB":  {"TB", "TAMPA BAY", "BUCCANEERS"},
	"TEN": {"TEN", "TENNESSEE", "TITANS"},
	"WAS": {"WAS", "WASHINGTON", "COMMANDERS"},
}

// canonicalTeams is the alias table inverted for O(1) lookup.
var canonicalTeams = func() map[string]string {
	m := make(map[string]string)
	for canonical, aliases := range teamAliases {
		for _, alias := range aliases {
			m[alias] = canonical
		}
	}
	return m
}()

// nameCache bounds memoized normalizations; roster and projection names
// repeat heavily across analysis calls.
type nameCache struct {
	mu      sync.RWMutex
	maxSize int
	entries map[string]string
}

func newNameCache(maxSize int) *nameCache {
	return &nameCache{maxSize: maxSize, entries: make(map[string]string, maxSize)}
}

func (c *nameCache) get(raw string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[raw]
	return v, ok
}

func (c *nameCache) put(raw, normalized string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		// Drop everything rather than track recency; the cache refills from
		// a small working set.
		c.entries = make(map[string]string, c.maxSize)
	}
	c.entries[raw] = normalized
}

// normalizeName uppercases, strips punctuation and generational suffixes,
// and collapses formal first names to their common short form.
func (r *Resolver) normalizeName(raw string) string {
	if raw == "" {
		return ""
	}
	if cached, ok := r.names.get(raw); ok {
		return cached
	}

	var b strings.Builder
	for _, ch := range strings.ToUpper(raw) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			b.WriteRune(ch)
		case unicode.IsSpace(ch):
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, suffix := nameSuffixes[w]; suffix {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) > 0 {
		if short, ok := nicknames[kept[0]]; ok {
			kept[0] = short
		}
	}

	normalized := strings.Join(kept, " ")
	r.names.put(raw, normalized)
	return normalized
}

// normalizeTeam maps any known team spelling to its canonical abbreviation;
// unknown spellings pass through uppercased.
func normalizeTeam(raw string) string {
	team := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := canonicalTeams[team]; ok {
		return canonical
	}
	return team
}
