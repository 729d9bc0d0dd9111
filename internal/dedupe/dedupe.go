package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent hand-deal requests. Using a centralized singleflight.Group
// ensures that only one deal runs for a given user while other callers wait
// for the committed result instead of rolling a second hand.

import "golang.org/x/sync/singleflight"

// DealGroup deduplicates hand-deal requests keyed by the user ID
// (e.g. "deal:42").
var DealGroup singleflight.Group
