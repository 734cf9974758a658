package shadowcast

import(
	"fmt"

	"github.com/skypies/util/histogram"
)

// TickResult summarizes one pass over a snapshot.
type TickResult struct {
	NumObserved     int // aircraft in the snapshot
	NumForecast     int // aircraft inside the search radius that got forecast
	NumAlerts       int
	NumDropped      int // malformed observations + refused ephemeris samples
	NumSinkFailures int

	LeadTimes histogram.Histogram // seconds of warning, across all alerts
}

func (tr TickResult)String() string {
	return fmt.Sprintf("tick: %d observed, %d forecast, %d alerts, %d dropped, %d sink failures",
		tr.NumObserved, tr.NumForecast, tr.NumAlerts, tr.NumDropped, tr.NumSinkFailures)
}

// Tick runs the whole pipeline over one snapshot: search-radius filter,
// per-aircraft per-body shadow forecast, disk arbitration, log append, sink
// dispatch. It is deterministic given the snapshot, config and ephemeris,
// and holds no state between calls beyond what the log file carries. The
// only error it can return is a log-append failure; that one is fatal for
// the audit trail, so it stops the tick.
func Tick(snap Snapshot, cfg Configuration, eph Ephemeris, sinks []Sink,
	alog AlertLog) (TickResult, error) {
	return TickWithArbiter(snap, cfg, eph, sinks, alog, NewArbiter(cfg.Home(), float64(cfg.AlertRadiusM)))
}

// TickWithArbiter is Tick with caller-owned arming state, for orchestrators
// that want alert suppression to survive across ticks (see ArmedSet.AgeOut).
func TickWithArbiter(snap Snapshot, cfg Configuration, eph Ephemeris, sinks []Sink,
	alog AlertLog, arb *Arbiter) (TickResult, error) {

	res := TickResult{
		NumObserved: len(snap.Observations),
		NumDropped:  snap.NumDropped,
		LeadTimes:   histogram.Histogram{ValMin:0, ValMax:histogram.ScalarVal(cfg.ForecastHorizonS), NumBuckets:10},
	}

	home := cfg.Home()
	searchRadiusM := float64(cfg.SearchRadiusKM) * 1000.0

	for _,o := range snap.Observations {
		if DistanceM(o.Latlong, home) > searchRadiusM { continue }
		res.NumForecast++

		for _,b := range cfg.Bodies() {
			track,nDropped := ForecastShadowTrack(o, b, snap.TimestampUTC, eph,
				cfg.Horizon(), cfg.Step())
			res.NumDropped += nDropped

			for _,rec := range arb.Scan(o, track, snap.TimestampUTC) {
				if err := alog.Append(rec); err != nil {
					return res, fmt.Errorf("tick: %v", err)
				}
				res.NumAlerts++
				res.LeadTimes.Add(histogram.ScalarVal(rec.LeadTimeSec))

				for _,sink := range sinks {
					if !safeNotify(sink, rec) { res.NumSinkFailures++ }
				}
			}
		}
	}

	return res, nil
}

// Sinks are best-effort; a panicking sink counts as a failed delivery.
func safeNotify(s Sink, r AlertRecord) (ok bool) {
	defer func() {
		if p := recover(); p != nil { ok = false }
	}()
	return s.Notify(r)
}
