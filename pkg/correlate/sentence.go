package correlate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/killfeedsc/killfeed/pkg/models"
)

// Picker selects one of n phrasing variants. The production picker is
// seeded math/rand; tests install a deterministic one.
type Picker interface {
	Pick(n int) int
}

// RandPicker picks uniformly at random.
type RandPicker struct {
	r *rand.Rand
}

// NewRandPicker creates a picker seeded with the given value.
func NewRandPicker(seed int64) *RandPicker {
	return &RandPicker{r: rand.New(rand.NewSource(seed))}
}

func (p *RandPicker) Pick(n int) int { return p.r.Intn(n) }

// FirstPicker always picks the first variant. Keeps test output exact.
type FirstPicker struct{}

func (FirstPicker) Pick(n int) int { return 0 }

var (
	killVerbs  = []string{"a éliminé", "a vaincu", "a abattu", "a terrassé"}
	crashVerbs = []string{"a percuté", "est entré en collision avec", "s'est écrasé sur"}

	causePhrases = []string{"avec %s", "en utilisant %s", "grâce à %s", "par %s"}

	deathPhrases = []string{"%s est mort(e)", "%s a péri", "%s a trouvé la mort"}
)

// makeSentence generates the French human-readable description carried by
// every event. Deterministic given the event fields and the picker.
func makeSentence(evt models.KillEvent, pick Picker) string {
	victim := evt.Victim
	if victim == "" {
		victim = "Inconnu"
	}

	var parts []string

	switch {
	case evt.Type == models.EventSuicide:
		switch {
		case evt.IsCrash:
			ship := evt.VictimShip
			if ship == "" {
				ship = "vaisseau"
			}
			parts = append(parts, fmt.Sprintf("%s s'est écrasé(e) avec son %s", victim, ship))
		case strings.Contains(strings.ToLower(evt.Cause), "suicide"):
			parts = append(parts, fmt.Sprintf("%s s'est suicidé(e)", victim))
		default:
			parts = append(parts, fmt.Sprintf("%s est mort(e) dans des circonstances mystérieuses", victim))
		}

	case evt.Type == models.EventKill && evt.Killer != "":
		killerPart := evt.Killer
		if evt.KillerShip != "" {
			killerPart = fmt.Sprintf("%s (%s)", evt.Killer, evt.KillerShip)
		}
		victimPart := victim
		if evt.VictimShip != "" {
			victimPart = fmt.Sprintf("%s (%s)", victim, evt.VictimShip)
		}

		verbs := killVerbs
		if evt.IsCrash {
			verbs = crashVerbs
		}
		verb := verbs[pick.Pick(len(verbs))]
		parts = append(parts, fmt.Sprintf("%s %s %s", killerPart, verb, victimPart))

		cause := strings.ToLower(evt.Cause)
		if evt.Cause != "" && cause != "unknown" && cause != "inconnu" && cause != "none" {
			parts = append(parts, fmt.Sprintf(causePhrases[pick.Pick(len(causePhrases))], evt.Cause))
		}

	case evt.Type == models.EventDeath:
		parts = append(parts, fmt.Sprintf(deathPhrases[pick.Pick(len(deathPhrases))], victim))
		if evt.Cause != "" {
			parts = append(parts, fmt.Sprintf("à cause de %s", evt.Cause))
		}

	case evt.Type == models.EventHostility:
		parts = append(parts, fmt.Sprintf("%s a attaqué %s", evt.Attacker, evt.Target))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Événement inconnu: %s - %s par %s", evt.Type, victim, orUnknown(evt.Killer))
	}

	sentence := strings.Join(parts, " ") + "."
	return capitalize(sentence)
}

func orUnknown(s string) string {
	if s == "" {
		return "inconnu"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
