package stationcache

import "time"

// rateWindow is a single-bucket minimum-interval guard: at most one fetch
// per cooldown, measured from the last successful fetch. Callers hold the
// cache lock across allow and the dispatch decision, which makes the check
// atomic with the fetch it gates.
type rateWindow struct {
	last     time.Time
	cooldown time.Duration
}

func (w *rateWindow) allow(now time.Time) bool {
	return w.last.IsZero() || now.Sub(w.last) >= w.cooldown
}

func (w *rateWindow) stamp(now time.Time) {
	w.last = now
}
