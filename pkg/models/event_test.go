package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPayloadNullableFields(t *testing.T) {
	evt := KillEvent{
		ID:        "evt-1",
		Type:      EventDeath,
		Victim:    "Alice",
		Raw:       "raw",
		Timestamp: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt.Payload())
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"killer", "victim_ship", "killer_ship", "cause"} {
		val, present := decoded[field]
		if !present {
			t.Errorf("field %s should be present", field)
		}
		if val != nil {
			t.Errorf("unknown %s should serialize as null, got %v", field, val)
		}
	}
	if decoded["victim"] != "Alice" {
		t.Errorf("expected victim Alice, got %v", decoded["victim"])
	}
}

func TestPayloadHostilityVariant(t *testing.T) {
	evt := KillEvent{
		Type:      EventHostility,
		Attacker:  "Alice",
		Target:    "Bob",
		Raw:       "raw",
		Timestamp: time.Now(),
	}

	p := evt.Payload()
	if p["attacker"] != "Alice" || p["target"] != "Bob" {
		t.Errorf("hostility payload missing attacker/target: %v", p)
	}
	if _, present := p["victim"]; present {
		t.Error("hostility payload must not carry a victim field")
	}
	if _, present := p["killer"]; present {
		t.Error("hostility payload must not carry a killer field")
	}
}

func TestGreeting(t *testing.T) {
	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	g := Greeting("MonPseudo", at)
	if g["type"] != EventHello || g["version"] != Version {
		t.Errorf("unexpected greeting: %v", g)
	}
	if g["server_time"] != "2024-01-15T12:00:00Z" {
		t.Errorf("expected UTC server_time, got %v", g["server_time"])
	}
	if g["player_name"] != "MonPseudo" {
		t.Errorf("expected player_name, got %v", g["player_name"])
	}

	anon := Greeting("", at)
	if anon["player_name"] != nil {
		t.Errorf("empty player name should serialize as null, got %v", anon["player_name"])
	}
}
