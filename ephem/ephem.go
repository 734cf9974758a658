// Package ephem computes the apparent altitude and azimuth of the sun and
// moon for a point and time, using the suncalc equations (Agafonkin's
// simplification of the formulae in Meeus, "Astronomical Algorithms").
// Altitudes are degrees above the true horizon (no refraction correction);
// azimuths are degrees clockwise from true north.
package ephem

import(
	"math"
	"time"
)

const(
	rad   = math.Pi / 180.0
	dayMs = 1000 * 60 * 60 * 24
	J1970 = 2440588
	J2000 = 2451545
	e     = rad * 23.4397 // obliquity of the ecliptic
)

// {{{ julian day plumbing

func toDays(t time.Time) float64 {
	return float64(t.UnixMilli())/dayMs - 0.5 + J1970 - J2000
}

// }}}
// {{{ equatorial & horizontal coordinate helpers

func rightAscension(l,b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(e)-math.Tan(b)*math.Sin(e), math.Cos(l))
}

func declination(l,b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(e) + math.Cos(b)*math.Sin(e)*math.Sin(l))
}

// Azimuth here is the suncalc convention: radians, zero at south, positive
// towards the west. azimuthNorthDeg converts to the aviation convention.
func azimuth(H,phi,dec float64) float64 {
	return math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

func altitude(H,phi,dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(H))
}

func siderealTime(d,lw float64) float64 {
	return rad*(280.16+360.9856235*d) - lw
}

func azimuthNorthDeg(az float64) float64 {
	deg := az/rad + 180.0
	deg = math.Mod(deg, 360.0)
	if deg < 0.0 { deg += 360.0 }
	return deg
}

// }}}

// {{{ sun coordinates

func solarMeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

func eclipticLongitude(M float64) float64 {
	C := rad * (1.9148*math.Sin(M) + 0.02*math.Sin(2*M) + 0.0003*math.Sin(3*M))
	P := rad * 102.9372 // perihelion of the Earth
	return M + C + P + math.Pi
}

func sunCoords(d float64) (dec,ra float64) {
	M := solarMeanAnomaly(d)
	L := eclipticLongitude(M)
	return declination(L,0), rightAscension(L,0)
}

// }}}
// {{{ moon coordinates

func moonCoords(d float64) (dec,ra float64) {
	L := rad * (218.316 + 13.176396*d) // ecliptic longitude
	M := rad * (134.963 + 13.064993*d) // mean anomaly
	F := rad * (93.272  + 13.229350*d) // mean distance

	l := L + rad*6.289*math.Sin(M)
	b := rad * 5.128 * math.Sin(F)

	return declination(l,b), rightAscension(l,b)
}

// }}}

// {{{ SunAltAz

// SunAltAz returns the sun's altitude and azimuth, in degrees, as seen from
// (lat,long) at time t.
func SunAltAz(lat,long float64, t time.Time) (altDeg,azDeg float64) {
	lw  := rad * -long
	phi := rad * lat
	d   := toDays(t)

	dec,ra := sunCoords(d)
	H := siderealTime(d,lw) - ra

	return altitude(H,phi,dec)/rad, azimuthNorthDeg(azimuth(H,phi,dec))
}

// }}}
// {{{ MoonAltAz

// MoonAltAz returns the moon's altitude and azimuth, in degrees, as seen
// from (lat,long) at time t.
func MoonAltAz(lat,long float64, t time.Time) (altDeg,azDeg float64) {
	lw  := rad * -long
	phi := rad * lat
	d   := toDays(t)

	dec,ra := moonCoords(d)
	H := siderealTime(d,lw) - ra

	return altitude(H,phi,dec)/rad, azimuthNorthDeg(azimuth(H,phi,dec))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
