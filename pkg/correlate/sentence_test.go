package correlate

import (
	"testing"

	"github.com/killfeedsc/killfeed/pkg/models"
)

func TestMakeSentence(t *testing.T) {
	tests := []struct {
		name     string
		evt      models.KillEvent
		expected string
	}{
		{
			name:     "kill with ships and cause",
			evt:      models.KillEvent{Type: models.EventKill, Victim: "Alice", Killer: "Bob", VictimShip: "Arrow", KillerShip: "Gladius", Cause: "Combat"},
			expected: "Bob (Gladius) a éliminé Alice (Arrow) avec Combat.",
		},
		{
			name:     "kill without ships",
			evt:      models.KillEvent{Type: models.EventKill, Victim: "Alice", Killer: "Bob"},
			expected: "Bob a éliminé Alice.",
		},
		{
			name:     "kill with unknown cause omits it",
			evt:      models.KillEvent{Type: models.EventKill, Victim: "Alice", Killer: "Bob", Cause: "Unknown"},
			expected: "Bob a éliminé Alice.",
		},
		{
			name:     "crash kill uses crash verbs",
			evt:      models.KillEvent{Type: models.EventKill, Victim: "Alice", Killer: "Bob", IsCrash: true},
			expected: "Bob a percuté Alice.",
		},
		{
			name:     "suicide with explicit cause",
			evt:      models.KillEvent{Type: models.EventSuicide, Victim: "Alice", Killer: "Alice", Cause: "Suicide"},
			expected: "Alice s'est suicidé(e).",
		},
		{
			name:     "suicide without cause",
			evt:      models.KillEvent{Type: models.EventSuicide, Victim: "Alice", Killer: "Alice"},
			expected: "Alice est mort(e) dans des circonstances mystérieuses.",
		},
		{
			name:     "crash suicide names the ship",
			evt:      models.KillEvent{Type: models.EventSuicide, Victim: "Alice", VictimShip: "Arrow", IsCrash: true},
			expected: "Alice s'est écrasé(e) avec son Arrow.",
		},
		{
			name:     "death with cause",
			evt:      models.KillEvent{Type: models.EventDeath, Victim: "Alice", Cause: "Combat"},
			expected: "Alice est mort(e) à cause de Combat.",
		},
		{
			name:     "death without cause",
			evt:      models.KillEvent{Type: models.EventDeath, Victim: "Alice"},
			expected: "Alice est mort(e).",
		},
		{
			name:     "hostility",
			evt:      models.KillEvent{Type: models.EventHostility, Attacker: "Alice", Target: "Bob"},
			expected: "Alice a attaqué Bob.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeSentence(tt.evt, FirstPicker{}); got != tt.expected {
				t.Errorf("makeSentence = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMakeSentenceDeterministicWithPicker(t *testing.T) {
	evt := models.KillEvent{Type: models.EventKill, Victim: "Alice", Killer: "Bob", Cause: "Combat"}

	a := makeSentence(evt, NewRandPicker(42))
	b := makeSentence(evt, NewRandPicker(42))
	if a != b {
		t.Errorf("same seed must produce the same sentence: %q vs %q", a, b)
	}
}
