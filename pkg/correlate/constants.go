package correlate

import "time"

const (
	// driverTTL bounds how long a pilot -> vehicle association stays
	// usable without being refreshed.
	driverTTL = 5 * time.Minute

	// attackerTTL bounds the recent-aggressor cache.
	attackerTTL = 15 * time.Second

	// linkWindow is how long an unresolved vehicle destruction may wait
	// for a corpse line naming its victim.
	linkWindow = 6 * time.Second

	// pendingKillCap bounds the unresolved destruction queue; exceeding
	// it drops the oldest pending correlation.
	pendingKillCap = 64

	// dedupWindow collapses structurally identical events to one.
	dedupWindow = 5 * time.Second

	// dedupHistory is the fixed capacity of the dedup signature rings.
	dedupHistory = 256
)
