package shadowcast

import(
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// ShadowSample is one time-quantized prediction: where an aircraft's shadow
// will be on the ground at instant T, assuming it holds speed and heading.
type ShadowSample struct {
	T time.Time
	geo.Latlong
	Body Body
}

func (s ShadowSample)String() string {
	return fmt.Sprintf("[%s] %s %s", s.T.Format("15:04:05"), s.Body, s.Latlong)
}

// ShadowTrack is the sample sequence for one (aircraft,body) pair, in time
// order. Empty when the body is below the horizon for the whole window.
type ShadowTrack []ShadowSample

// ForecastShadowTrack propagates the aircraft along its current track in
// `step` increments out to `horizon` (both endpoints included), projecting
// each future position onto the ground via the body's altitude/azimuth at
// that future instant. Samples where the body is at or below the horizon are
// simply absent; samples the ephemeris refused are counted in nDropped.
//
// Near-horizon bodies make the offsets huge; that's fine, the samples just
// land far outside anyone's alert disk.
func ForecastShadowTrack(o Observation, b Body, tSnap time.Time, eph Ephemeris,
	horizon,step time.Duration) (ShadowTrack, int) {

	track := ShadowTrack{}
	nDropped := 0

	for d := time.Duration(0); d <= horizon; d += step {
		t := tSnap.Add(d)
		pos := MoveM(o.Latlong, o.Heading, o.GroundSpeedMS*d.Seconds())

		alt,az,err := eph.AltAz(b, pos, t)
		if err != nil {
			nDropped++
			continue
		}

		if shadow,ok := ShadowOffset(pos, o.AltitudeM, alt, az); ok {
			track = append(track, ShadowSample{T:t, Latlong:shadow, Body:b})
		}
	}

	return track, nDropped
}
