package shadowcast

import(
	"fmt"
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/shadowcast/ephem"
)

// Body is a celestial body that can cast an aircraft shadow worth watching.
type Body string

const(
	Sun  Body = "SUN"
	Moon Body = "MOON"
)

// Ephemeris yields a body's apparent altitude/azimuth (degrees; azimuth
// clockwise from true north) at a point and time. The production
// implementation is SuncalcEphemeris; tests inject deterministic stubs.
type Ephemeris interface {
	AltAz(b Body, pos geo.Latlong, t time.Time) (altDeg,azDeg float64, err error)
}

type SuncalcEphemeris struct{}

func (SuncalcEphemeris)AltAz(b Body, pos geo.Latlong, t time.Time) (float64,float64,error) {
	switch b {
	case Sun:
		alt,az := ephem.SunAltAz(pos.Lat, pos.Long, t)
		return alt,az,nil
	case Moon:
		alt,az := ephem.MoonAltAz(pos.Lat, pos.Long, t)
		return alt,az,nil
	}
	return 0,0,fmt.Errorf("ephemeris: unknown body %q", b)
}
