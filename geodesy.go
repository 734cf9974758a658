package shadowcast

// The distance and destination-point math is spherical (it has to cover the
// tens of km an airliner travels over a forecast window); the shadow offset
// is a local tangent-plane approximation, which keeps the alert disk test
// numerically symmetric for the sub-30km offsets we see in practice. At
// mid-latitudes the two disagree by less than a meter.

import(
	"math"

	"github.com/skypies/geo"
)

const(
	KEarthRadiusM    = 6371000.0 // mean radius, as per the haversine convention
	KMetersPerDegree = 111111.0  // tangent-plane scale for the shadow offset
)

// DistanceM is the great-circle distance between two points, in meters.
func DistanceM(p,q geo.Latlong) float64 {
	return p.DistKM(q) * 1000.0
}

// MoveM returns the point reached by travelling distM meters from p along
// the great circle with initial bearing headingDeg (0 == due north, 90 ==
// due east). The zero-distance move returns p exactly.
func MoveM(p geo.Latlong, headingDeg, distM float64) geo.Latlong {
	if distM == 0.0 { return p }

	lat1  := p.Lat  * math.Pi/180.0
	long1 := p.Long * math.Pi/180.0
	brng  := headingDeg * math.Pi/180.0
	dR    := distM / KEarthRadiusM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(dR) +
		math.Cos(lat1)*math.Sin(dR)*math.Cos(brng))
	long2 := long1 + math.Atan2(math.Sin(brng)*math.Sin(dR)*math.Cos(lat1),
		math.Cos(dR)-math.Sin(lat1)*math.Sin(lat2))

	return geo.Latlong{Lat: lat2*180.0/math.Pi, Long: normalizeLong(long2*180.0/math.Pi)}
}

// ShadowOffset projects a point at altitude altM down onto the ground, given
// the altitude and azimuth of the body casting the shadow. Returns false when
// the body is at or below the horizon. Not meaningful within a degree or so
// of the poles.
func ShadowOffset(p geo.Latlong, altM, bodyAltDeg, bodyAzDeg float64) (geo.Latlong, bool) {
	if bodyAltDeg <= 0.0 { return geo.Latlong{}, false }

	s := altM / math.Tan(bodyAltDeg*math.Pi/180.0)
	theta := (bodyAzDeg + 180.0) * math.Pi/180.0  // the shadow falls away from the body

	dLat  := (s * math.Cos(theta)) / KMetersPerDegree
	dLong := (s * math.Sin(theta)) / (KMetersPerDegree * math.Cos(p.Lat*math.Pi/180.0))

	return geo.Latlong{Lat: p.Lat + dLat, Long: normalizeLong(p.Long + dLong)}, true
}

func normalizeLong(long float64) float64 {
	for long >  180.0 { long -= 360.0 }
	for long < -180.0 { long += 360.0 }
	return long
}

func normalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0.0 { deg += 360.0 }
	return deg
}
