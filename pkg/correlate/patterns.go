package correlate

import (
	"regexp"
	"strings"
)

// Pattern variants for pilot -> vehicle associations.
var (
	reDriverA = regexp.MustCompile(`(?i)\[C\] (?P<driver>\S+) entered entity (?P<ship>\S+) as driver`)
	reDriverB = regexp.MustCompile(`(?i)(?P<driver>\S+)\s+entered\s+(?P<ship>\S+)\s+as\s+driver`)
	reDriverC = regexp.MustCompile(`(?i)Driver:\s*(?P<driver>\S+).*?(?:vehicle|ship):\s*(?P<ship>\S+)`)
)

// Corpse variants: the "Corpse:" format names a killer, the ActorState
// format only the victim.
var (
	reCorpse       = regexp.MustCompile(`(?i)Corpse:\s*(\S+?)(?:\s*\(\d+\))?\s+was killed by\s+(\S+?)(?:\s+using\s+(\S+))?`)
	reCorpsePlayer = regexp.MustCompile(`(?i)<\[ActorState\] Corpse>.*?Player '(?P<player>[^']+)'`)
)

// reVehicleDestruction extracts the vehicle, its driver (possibly
// "unknown") and the responsible actor from a destruction line.
var reVehicleDestruction = regexp.MustCompile(`(?i)<Vehicle Destruction>.*?Vehicle '(?P<vehicle>[^']+)'.*?driven by '(?P<driver>[^']+)'.*?caused by '(?P<causer>[^']+)'.*?with '(?P<damage>[^']+)'`)

// Actor death patterns, tried from most to least structured.
var (
	reActorDeathFull = regexp.MustCompile(`(?i)<Actor Death>.*?'(?P<victim>[^']+)'.*?in zone '(?P<vehicle>[^']+)'.*?killed by '(?P<killer>[^']+)'.*?using '(?P<weapon>[^']+)'.*?damage type '(?P<damage>[^']+)'`)
	reKillEvent      = regexp.MustCompile(`(?i)<(?P<victim>[^>]+)>.*?killed.*?by.*?<(?P<killer>[^>]+)>`)
	reDeathAlt       = regexp.MustCompile(`(?i)(?P<victim>[a-zA-Z0-9_\-]+)\s+(?:was\s+)?killed\s+by\s+(?P<killer>[a-zA-Z0-9_\-]+)`)
	reActorDeath     = regexp.MustCompile(`(?i)(?P<victim>\S+)\s+(?:died|killed).*?(?:by|from)\s+(?P<killer>\S+)(?:.*?(?P<cause>\S+))?`)
)

// reHostility captures the attacker, the target vehicle, and the pilot of
// that vehicle from a hostility debug line.
var reHostility = regexp.MustCompile(`(?i)<Debug Hostility Events>.*?FROM\s+(?P<attacker>[A-Za-z0-9_\-]+)\s+TO\s+(?P<target>\S+).*?child\s+(?P<pilot>[A-Za-z0-9_\-]+)`)

// rePlayerName spots the local player identity in the log.
var rePlayerName = regexp.MustCompile(`(?i)Local player name set to \[([^\]]+)\]`)

// group returns the named capture from a match, or "".
func group(re *regexp.Regexp, match []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(match) {
		return ""
	}
	return strings.TrimSpace(match[idx])
}

// isEntityID reports whether a token is an internal entity identifier
// rather than a player name: an underscore-separated name whose last
// segment is a numeric suffix longer than 8 digits, e.g.
// ANVL_Arrow_651076209584.
func isEntityID(name string) bool {
	if name == "" {
		return true
	}
	if !strings.Contains(name, "_") {
		return false
	}
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return false
	}
	last := parts[len(parts)-1]
	if len(last) <= 8 {
		return false
	}
	for _, r := range last {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cleanPlayerName filters entity identifiers and unknown placeholders, and
// strips quote characters that break profile links downstream.
func cleanPlayerName(name string) string {
	if name == "" {
		return ""
	}
	if isEntityID(name) {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unknown", "inconnu", "none", "n/a":
		return ""
	}
	name = strings.NewReplacer("'", "", `"`, "", "`", "").Replace(name)
	return strings.TrimSpace(name)
}
