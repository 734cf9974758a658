package shadowcast

import(
	"fmt"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
)

// Observation locates one airborne aircraft at the snapshot instant. All
// units are SI; the normalizers convert from whatever the feed reports.
type Observation struct {
	Id       adsb.IcaoId // Opaque feed identity; may be empty (anonymous GA traffic)
	Callsign string

	geo.Latlong            // Embedded, so the geo methods work directly on observations

	AltitudeM     float64  // Above the ellipsoid where the feed has it; else barometric
	GroundSpeedMS float64
	Heading       float64  // [0.0, 360.0) degrees, clockwise from true north
}

func (o Observation)String() string {
	return fmt.Sprintf("%s %s %.0fm, %.0fm/s, %.0fdeg",
		o.CallsignOrNA(), o.Latlong, o.AltitudeM, o.GroundSpeedMS, o.Heading)
}

// CallsignOrNA is what goes into alert records and notifications.
func (o Observation)CallsignOrNA() string {
	if o.Callsign != "" { return o.Callsign }
	if o.Id != ""       { return string(o.Id) }
	return "N/A"
}

// Valid says whether the observation is usable for forecasting. Aircraft on
// the ground (zero altitude or speed) cast no shadow worth predicting.
func (o Observation)Valid() bool {
	if o.Lat < -90.0 || o.Lat > 90.0     { return false }
	if o.Long < -180.0 || o.Long > 180.0 { return false }
	if o.AltitudeM <= 0.0                { return false }
	if o.GroundSpeedMS <= 0.0            { return false }
	if o.Heading < 0.0 || o.Heading >= 360.0 { return false }
	return true
}

// Snapshot is the set of observations captured at a single instant. It is
// consumed by exactly one forecast tick, then thrown away.
type Snapshot struct {
	TimestampUTC time.Time
	Observations []Observation
	NumDropped   int        // Malformed or grounded entries discarded during normalization
}

func (s Snapshot)String() string {
	return fmt.Sprintf("snapshot@%s: %d aircraft (%d dropped)",
		s.TimestampUTC.Format(time.RFC3339), len(s.Observations), s.NumDropped)
}

// add applies the validity filter; bad observations are counted, not kept.
func (s *Snapshot)add(o Observation) {
	o.Heading = normalizeHeading(o.Heading)
	if !o.Valid() {
		s.NumDropped++
		return
	}
	s.Observations = append(s.Observations, o)
}
