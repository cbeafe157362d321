// Package correlate turns raw game log lines into normalized kill feed
// events. A Correlator is a single-threaded state machine: it classifies
// each line through an ordered matcher cascade, maintains TTL-bounded
// caches linking pilots, vehicles, and pending destructions, and emits
// zero or more events per line.
package correlate

import (
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/killfeedsc/killfeed/pkg/models"
	"github.com/killfeedsc/killfeed/pkg/ships"
)

// pendingKill is a vehicle destruction whose victim is not yet resolved.
// It waits for a later corpse line to name the victim.
type pendingKill struct {
	ts      time.Time
	killer  string // may be empty
	vehicle string
	damage  string
	raw     string
}

// corpse is a victim sighting without a linked destruction.
type corpse struct {
	ts     time.Time
	victim string
}

// Options configures a Correlator. The zero value is usable: built-in
// ship table, wall clock, seeded random phrasing, no Redis backing.
type Options struct {
	// Ships resolves vehicle identifiers to display names.
	Ships ships.Resolver
	// Redis optionally backs the driver association cache.
	Redis *redis.Client
	// Now overrides the clock. Tests use this.
	Now func() time.Time
	// Picker selects sentence phrasing variants.
	Picker Picker
	// OnPlayerName is invoked when the log reveals the local player
	// identity.
	OnPlayerName func(name string)
	// Debug enables per-line diagnostics and "info" events.
	Debug bool
}

type handler struct {
	name  string
	apply func(line string) ([]models.KillEvent, bool)
}

// Correlator consumes one line at a time. Classify is meant to run on
// the single consumer side of the line queue; a mutex makes Stats and
// PlayerName safe to call from other goroutines.
type Correlator struct {
	mu         sync.Mutex
	shipNames  ships.Resolver
	drivers    *driverCache
	attackers  map[string]time.Time
	pending    []pendingKill
	lastCorpse *corpse

	playerName   string
	onPlayerName func(string)

	now     func() time.Time
	picker  Picker
	debug   bool
	cascade []handler

	linesSeen     uint64
	eventsEmitted uint64
	discarded     uint64
}

// New creates a Correlator.
func New(opts Options) *Correlator {
	if opts.Ships == nil {
		opts.Ships = ships.NewStaticResolver()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Picker == nil {
		opts.Picker = NewRandPicker(time.Now().UnixNano())
	}

	c := &Correlator{
		shipNames:    opts.Ships,
		attackers:    make(map[string]time.Time),
		onPlayerName: opts.OnPlayerName,
		now:          opts.Now,
		picker:       opts.Picker,
		debug:        opts.Debug,
	}
	c.drivers = newDriverCache(c.clock, opts.Redis)

	// Ordered cascade: the first matcher that matches owns the line.
	c.cascade = []handler{
		{"player_name", c.handlePlayerName},
		{"driver", c.handleDriver},
		{"corpse", c.handleCorpse},
		{"vehicle_destruction", c.handleDestruction},
		{"actor_death", c.handleActorDeath},
		{"hostility", c.handleHostility},
		{"info", c.handleInfo},
	}
	return c
}

func (c *Correlator) clock() time.Time { return c.now() }

// Classify runs a line through the cascade and returns the events it
// produced, if any. Lines no matcher owns are ignored.
func (c *Correlator) Classify(line string) []models.KillEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.linesSeen++
	for _, h := range c.cascade {
		events, matched := h.apply(line)
		if matched {
			c.eventsEmitted += uint64(len(events))
			return events
		}
	}
	return nil
}

// PlayerName returns the local player identity learned from the log, or "".
func (c *Correlator) PlayerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerName
}

// Stats returns current counters.
func (c *Correlator) Stats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]interface{}{
		"lines_seen":     c.linesSeen,
		"events_emitted": c.eventsEmitted,
		"discarded":      c.discarded,
		"drivers":        c.drivers.len(),
		"attackers":      len(c.attackers),
		"pending_kills":  len(c.pending),
	}
}

func (c *Correlator) handlePlayerName(line string) ([]models.KillEvent, bool) {
	m := rePlayerName.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	name := strings.TrimSpace(m[1])
	if name != "" && name != c.playerName {
		c.playerName = name
		c.debugf("[Player] local player: %s", name)
		if c.onPlayerName != nil {
			c.onPlayerName(name)
		}
	}
	return nil, true
}

func (c *Correlator) handleDriver(line string) ([]models.KillEvent, bool) {
	for _, re := range []*regexp.Regexp{reDriverA, reDriverB, reDriverC} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		driver := group(re, m, "driver")
		ship := group(re, m, "ship")
		if driver != "" {
			c.drivers.put(driver, ship)
			c.debugf("[Driver] %s -> %s", driver, ship)
			return nil, true
		}
	}
	return nil, false
}

func (c *Correlator) handleCorpse(line string) ([]models.KillEvent, bool) {
	if m := reCorpse.FindStringSubmatch(line); m != nil {
		if victim := cleanPlayerName(strings.TrimSpace(m[1])); victim != "" {
			return c.linkOrStash(victim), true
		}
	}
	if m := reCorpsePlayer.FindStringSubmatch(line); m != nil {
		if victim := cleanPlayerName(group(reCorpsePlayer, m, "player")); victim != "" {
			return c.linkOrStash(victim), true
		}
	}
	return nil, false
}

// linkOrStash pairs a corpse with the most recent pending destruction
// inside the link window, or stashes the victim for later. The pairing
// uses time proximity only; under near-simultaneous deaths this can
// mis-pair victim and killer, a tie-break deliberately kept as-is.
func (c *Correlator) linkOrStash(victim string) []models.KillEvent {
	t := c.now()
	for i := len(c.pending) - 1; i >= 0; i-- {
		p := c.pending[i]
		if t.Sub(p.ts) > linkWindow {
			continue
		}
		c.pending = append(c.pending[:i], c.pending[i+1:]...)
		c.debugf("[Link] %s <=(destruction)=> %s", victim, p.killer)
		return []models.KillEvent{c.resolvedEvent(victim, p.killer, p.vehicle, p.damage, p.raw)}
	}

	c.lastCorpse = &corpse{ts: t, victim: victim}
	c.debugf("[Corpse] stored without link: %s", victim)
	return nil
}

func (c *Correlator) handleDestruction(line string) ([]models.KillEvent, bool) {
	m := reVehicleDestruction.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	vehicle := group(reVehicleDestruction, m, "vehicle")
	driverRaw := group(reVehicleDestruction, m, "driver")
	killerRaw := group(reVehicleDestruction, m, "causer")
	damage := group(reVehicleDestruction, m, "damage")

	driver := cleanPlayerName(driverRaw)
	killer := cleanPlayerName(killerRaw)

	c.pruneAttackers()

	if driver == "" || strings.EqualFold(driverRaw, "unknown") {
		// Victim identity unknown. Queue and wait for a corpse line.
		if len(c.pending) == pendingKillCap {
			c.pending = c.pending[1:]
		}
		c.pending = append(c.pending, pendingKill{
			ts:      c.now(),
			killer:  killer,
			vehicle: vehicle,
			damage:  damage,
			raw:     strings.TrimSpace(line),
		})
		c.debugf("[Destruction] queued (unknown driver), killer=%s", killer)
		return nil, true
	}

	return []models.KillEvent{c.resolvedEvent(driver, killer, vehicle, damage, strings.TrimSpace(line))}, true
}

func (c *Correlator) handleActorDeath(line string) ([]models.KillEvent, bool) {
	var victimRaw, killerRaw, vehicleRaw, weapon, cause string

	if m := reActorDeathFull.FindStringSubmatch(line); m != nil {
		victimRaw = group(reActorDeathFull, m, "victim")
		killerRaw = group(reActorDeathFull, m, "killer")
		vehicleRaw = group(reActorDeathFull, m, "vehicle")
		weapon = group(reActorDeathFull, m, "weapon")
		cause = group(reActorDeathFull, m, "damage")
	} else {
		matched := false
		for _, re := range []*regexp.Regexp{reKillEvent, reDeathAlt, reActorDeath} {
			if m := re.FindStringSubmatch(line); m != nil {
				victimRaw = group(re, m, "victim")
				killerRaw = group(re, m, "killer")
				cause = group(re, m, "cause")
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}

	victim := cleanPlayerName(victimRaw)
	killer := cleanPlayerName(killerRaw)

	// Entity identifiers are not names. Try to recover the pilot from the
	// driver associations instead.
	if victim == "" && victimRaw != "" {
		if name, ok := c.drivers.reverseLookup(victimRaw); ok {
			victim = name
			c.debugf("[Parse] victim resolved via drivers: %s", victim)
		}
	}
	if killer == "" && killerRaw != "" {
		if name, ok := c.drivers.reverseLookup(killerRaw); ok {
			killer = name
			c.debugf("[Parse] killer resolved via drivers: %s", killer)
		}
	}

	if victim == "" {
		c.discarded++
		c.debugf("[Parse] no valid victim, skipping: %s", strings.TrimSpace(line))
		return nil, false
	}

	evt := models.KillEvent{
		ID:        uuid.NewString(),
		Type:      eventType(victim, killer, cause),
		Victim:    victim,
		Killer:    killer,
		Cause:     cause,
		Raw:       strings.TrimSpace(line),
		Timestamp: c.now(),
	}

	// Prefer the vehicle named by the line itself; fall back to driver
	// associations.
	if vehicleRaw != "" {
		evt.VictimShip = c.shipNames.DisplayName(vehicleRaw)
	} else if ship, ok := c.drivers.ship(victim); ok && ship != "" {
		evt.VictimShip = c.shipNames.DisplayName(ship)
	}
	if weapon != "" && strings.Contains(weapon, "_") {
		evt.KillerShip = c.shipNames.DisplayName(weapon)
	} else {
		evt.KillerShip = c.killerShip(killer)
	}

	evt.SentenceFR = makeSentence(evt, c.picker)
	return []models.KillEvent{evt}, true
}

func (c *Correlator) handleHostility(line string) ([]models.KillEvent, bool) {
	m := reHostility.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	attacker := cleanPlayerName(group(reHostility, m, "attacker"))
	target := cleanPlayerName(group(reHostility, m, "pilot"))
	targetVehicle := group(reHostility, m, "target")

	if attacker == "" || target == "" {
		return nil, false
	}

	// The target is inferred to be piloting the vehicle it was attacked
	// in; remember the binding for later death resolution.
	if targetVehicle != "" {
		c.drivers.put(target, targetVehicle)
		c.debugf("[Hostility] %s -> %s", target, targetVehicle)
	}
	c.attackers[attacker] = c.now()

	evt := models.KillEvent{
		ID:        uuid.NewString(),
		Type:      models.EventHostility,
		Attacker:  attacker,
		Target:    target,
		Raw:       strings.TrimSpace(line),
		Timestamp: c.now(),
	}
	evt.SentenceFR = makeSentence(evt, c.picker)
	return []models.KillEvent{evt}, true
}

func (c *Correlator) handleInfo(line string) ([]models.KillEvent, bool) {
	if !c.debug {
		return nil, false
	}
	if !strings.Contains(line, "GET /") && !strings.Contains(line, "HTTP/1.1") {
		return nil, false
	}
	evt := models.KillEvent{
		ID:        uuid.NewString(),
		Type:      models.EventInfo,
		Message:   strings.TrimSpace(line),
		Raw:       strings.TrimSpace(line),
		Timestamp: c.now(),
	}
	evt.SentenceFR = makeSentence(evt, c.picker)
	return []models.KillEvent{evt}, true
}

// resolvedEvent builds a fully resolved event from a known victim and an
// optional killer, vehicle, and damage type.
func (c *Correlator) resolvedEvent(victim, killer, vehicle, damage, raw string) models.KillEvent {
	evt := models.KillEvent{
		ID:         uuid.NewString(),
		Type:       eventType(victim, killer, damage),
		Victim:     victim,
		Killer:     killer,
		VictimShip: c.shipNames.DisplayName(vehicle),
		KillerShip: c.killerShip(killer),
		Cause:      damage,
		Raw:        raw,
		Timestamp:  c.now(),
	}
	evt.SentenceFR = makeSentence(evt, c.picker)
	return evt
}

// killerShip resolves the killer's ship from driver associations, or "".
func (c *Correlator) killerShip(killer string) string {
	if killer == "" {
		return ""
	}
	if ship, ok := c.drivers.ship(killer); ok && ship != "" {
		return c.shipNames.DisplayName(ship)
	}
	return ""
}

// eventType applies the uniform classification rule wherever a victim and
// optional killer are known.
func eventType(victim, killer, cause string) string {
	switch {
	case killer != "" && strings.EqualFold(killer, victim):
		return models.EventSuicide
	case strings.Contains(strings.ToLower(cause), "suicide"):
		return models.EventSuicide
	case killer == "":
		return models.EventDeath
	default:
		return models.EventKill
	}
}

func (c *Correlator) pruneAttackers() {
	t := c.now()
	for name, seen := range c.attackers {
		if t.Sub(seen) > attackerTTL {
			delete(c.attackers, name)
		}
	}
}

func (c *Correlator) debugf(format string, args ...interface{}) {
	if c.debug {
		log.Printf(format, args...)
	}
}
