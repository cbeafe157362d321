// Package models defines the kill feed event types and their wire form.
package models

import (
	"strings"
	"time"
)

// Version is the protocol version advertised in every event and greeting.
const Version = "1.0.0"

// Event types
const (
	EventKill      = "kill"
	EventSuicide   = "suicide"
	EventDeath     = "death"
	EventHostility = "hostility"
	EventInfo      = "info"
)

// EventHello is the greeting sent to each subscriber on connect.
const EventHello = "hello"

// EventCloseOverlay is a subscriber-initiated control message. The core
// never acts on it; the presentation layer does.
const EventCloseOverlay = "close_overlay"

// KillEvent is a fully resolved feed event. Immutable once emitted.
type KillEvent struct {
	ID         string
	Type       string // kill, suicide, death, hostility, info
	Victim     string
	Killer     string // empty = unknown
	VictimShip string
	KillerShip string
	Cause      string
	Attacker   string // hostility only
	Target     string // hostility only
	Message    string // info only
	Raw        string // original source line, trimmed
	Timestamp  time.Time
	IsCrash    bool
	SentenceFR string
}

// Payload returns the wire form of the event, one JSON object per event.
// Unknown killer/ship/cause fields serialize as null; the hostility and
// info variants carry their own field sets.
func (e KillEvent) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"id":          e.ID,
		"type":        e.Type,
		"raw":         e.Raw,
		"ts":          e.Timestamp.UTC().Format(time.RFC3339),
		"version":     Version,
		"sentence_fr": e.SentenceFR,
	}

	switch e.Type {
	case EventHostility:
		p["attacker"] = e.Attacker
		p["target"] = e.Target
	case EventInfo:
		p["message"] = e.Message
	default:
		p["victim"] = e.Victim
		p["killer"] = nullable(e.Killer)
		p["victim_ship"] = nullable(e.VictimShip)
		p["killer_ship"] = nullable(e.KillerShip)
		p["cause"] = nullable(e.Cause)
	}

	return p
}

// Greeting is the hello message sent to a subscriber on connect.
func Greeting(playerName string, serverTime time.Time) map[string]interface{} {
	return map[string]interface{}{
		"type":        EventHello,
		"version":     Version,
		"server_time": serverTime.UTC().Format(time.RFC3339),
		"player_name": nullable(strings.TrimSpace(playerName)),
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
