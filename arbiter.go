package shadowcast

import(
	"fmt"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
)

// {{{ ArmedSet

// ArmedSet is the one-shot latch: once an (aircraft,body) pair has alerted,
// it stays quiet until the set is reset (normally every tick) or its entry
// ages out (when an orchestrator wants cross-tick suppression instead).
type ArmedSet map[string]time.Time

func armedKey(id adsb.IcaoId, b Body) string {
	return string(id) + ":" + string(b)
}

func (s ArmedSet)String() string {
	str := "{"
	for k := range s {
		str += " " + k
	}
	return str + " }"
}

func (s ArmedSet)Exists(id adsb.IcaoId, b Body) bool {
	_,exists := s[armedKey(id,b)]
	return exists
}

func (s ArmedSet)AddIfNew(id adsb.IcaoId, b Body) (addedOk bool) {
	if s.Exists(id,b) {
		return false
	}
	s[armedKey(id,b)] = time.Now().UTC()
	return true
}

func (s ArmedSet)AgeOut(d time.Duration) {
	for k,created := range s {
		if time.Since(created) > d {
			delete (s, k)
		}
	}
}

func (s ArmedSet)Remove(id adsb.IcaoId, b Body) {
	delete (s, armedKey(id,b))
}

// }}}
// {{{ AlertRecord

// AlertRecord is what gets persisted and pushed when a shadow transit is
// forecast: which aircraft, how long until the transit, and where the shadow
// will be when it happens.
type AlertRecord struct {
	EmittedAtUTC time.Time
	Callsign     string
	LeadTimeSec  int
	geo.Latlong             // the forecast shadow ground point
	Body         Body
}

func (r AlertRecord)String() string {
	return fmt.Sprintf("%s shadow of %s over %s in %ds",
		r.Body, r.Callsign, r.Latlong, r.LeadTimeSec)
}

// }}}
// {{{ Arbiter

// Arbiter decides which shadow samples become alerts: inside the disk, and
// not already armed. It scans tracks in time order, so the record it emits
// for a pair carries the earliest forecast intersection.
type Arbiter struct {
	Home    geo.Latlong
	RadiusM float64
	Armed   ArmedSet

	Now func() time.Time // injectable, so tests get stable emission times
}

func NewArbiter(home geo.Latlong, radiusM float64) *Arbiter {
	return &Arbiter{
		Home:    home,
		RadiusM: radiusM,
		Armed:   ArmedSet{},
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// Scan cannot fail; bad samples were already filtered out upstream.
func (a *Arbiter)Scan(o Observation, track ShadowTrack, tSnap time.Time) []AlertRecord {
	records := []AlertRecord{}

	for _,s := range track {
		if a.Armed.Exists(o.Id, s.Body) { continue }
		if DistanceM(s.Latlong, a.Home) > a.RadiusM { continue }

		a.Armed.AddIfNew(o.Id, s.Body)
		records = append(records, AlertRecord{
			EmittedAtUTC: a.Now().UTC(),
			Callsign:     o.CallsignOrNA(),
			LeadTimeSec:  int(s.T.Sub(tSnap).Seconds()),
			Latlong:      s.Latlong,
			Body:         s.Body,
		})
	}

	return records
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
