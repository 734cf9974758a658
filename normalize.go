package shadowcast

import(
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
	"github.com/skypies/pi/airspace"
)

// Schema identifies the wire layout of a live traffic feed. Normalization is
// the only code that knows about these layouts; everything downstream sees
// Observations.
type Schema int

const(
	SchemaOpenSky Schema = iota // Array-per-aircraft, positional fields
	SchemaADSBx                 // Object-per-aircraft, named fields (dump1090 / ADSBx flavors)
	SchemaFr24                  // Dict of id->array, plus meta keys to be filtered out
)

func (s Schema)String() string {
	switch s {
	case SchemaOpenSky: return "opensky"
	case SchemaADSBx:   return "adsbx"
	case SchemaFr24:    return "fr24"
	}
	return fmt.Sprintf("schema(%d)", int(s))
}

// Normalize turns a raw feed body into a Snapshot stamped at tSnap. Rows it
// can't make sense of are dropped silently and counted; a body that isn't
// even the right shape is an error.
func Normalize(raw []byte, schema Schema, tSnap time.Time) (Snapshot, error) {
	switch schema {
	case SchemaOpenSky: return normalizeOpenSky(raw, tSnap)
	case SchemaADSBx:   return normalizeADSBx(raw, tSnap)
	case SchemaFr24:    return normalizeFr24(raw, tSnap)
	}
	return Snapshot{}, fmt.Errorf("normalize: unknown schema %v", schema)
}

// {{{ tolerant field coercion

// The feeds mix numbers, numeric strings, and nulls freely, so these never
// trust the wire type.

func jsonFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64: return val, true
	case string:
		var f float64
		if _,err := fmt.Sscanf(strings.TrimSpace(val), "%f", &f); err == nil { return f, true }
	}
	return 0, false
}

func jsonString(v interface{}) (string, bool) {
	if s,ok := v.(string); ok { return strings.TrimSpace(s), true }
	return "", false
}

// }}}

// {{{ normalizeOpenSky

// Positional state vectors: 0=id, 1=callsign, 5=long, 6=lat, 7=baro alt (m),
// 9=speed (m/s), 10=track, 13=geometric alt (m). Geometric altitude is
// preferred; barometric is accepted when that's all there is. Accepts either
// a bare array of rows or the {"states":[...]} wrapper.

func normalizeOpenSky(raw []byte, tSnap time.Time) (Snapshot, error) {
	snap := Snapshot{TimestampUTC: tSnap}

	var rows [][]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		var wrap struct {
			States [][]interface{} `json:"states"`
		}
		if err := json.Unmarshal(raw, &wrap); err != nil {
			return snap, fmt.Errorf("normalize/%v: %v", SchemaOpenSky, err)
		}
		rows = wrap.States
	}

	for _,row := range rows {
		if len(row) < 14 {
			snap.NumDropped++
			continue
		}

		long,ok1 := jsonFloat(row[5])
		lat,ok2  := jsonFloat(row[6])
		spd,ok3  := jsonFloat(row[9])
		hdg,ok4  := jsonFloat(row[10])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			snap.NumDropped++
			continue
		}

		alt,ok := jsonFloat(row[13])
		if !ok {
			alt,ok = jsonFloat(row[7]) // fall back to barometric
		}
		if !ok {
			snap.NumDropped++
			continue
		}

		id,_ := jsonString(row[0])
		callsign,_ := jsonString(row[1])

		snap.add(Observation{
			Id:            adsb.IcaoId(strings.ToUpper(id)),
			Callsign:      DisplayCallsign(callsign),
			Latlong:       geo.Latlong{Lat:lat, Long:long},
			AltitudeM:     alt,
			GroundSpeedMS: spd,
			Heading:       hdg,
		})
	}

	return snap, nil
}

// }}}
// {{{ normalizeADSBx

// Object-per-aircraft feeds; tolerant of the dump1090 / VirtualRadar naming
// drift (flight|hex, gs|spd, track|trak, alt_geom|alt_baro). Speeds are
// knots, altitudes are feet.

type adsbxAircraft struct {
	Hex     string   `json:"hex"`
	Flight  string   `json:"flight"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	GS      *float64 `json:"gs"`
	Spd     *float64 `json:"spd"`
	Track   *float64 `json:"track"`
	Trak    *float64 `json:"trak"`
	AltGeom *float64 `json:"alt_geom"`
	AltBaro *float64 `json:"alt_baro"`
}

func firstOf(vals ...*float64) (float64, bool) {
	for _,v := range vals {
		if v != nil { return *v, true }
	}
	return 0, false
}

func normalizeADSBx(raw []byte, tSnap time.Time) (Snapshot, error) {
	snap := Snapshot{TimestampUTC: tSnap}

	var wrap struct {
		Aircraft []adsbxAircraft `json:"aircraft"`
		AC       []adsbxAircraft `json:"ac"`
	}
	if err := json.Unmarshal(raw, &wrap); err != nil {
		return snap, fmt.Errorf("normalize/%v: %v", SchemaADSBx, err)
	}
	list := wrap.Aircraft
	if len(list) == 0 { list = wrap.AC }

	for _,a := range list {
		if a.Lat == nil || a.Lon == nil {
			snap.NumDropped++
			continue
		}
		spdKt,ok1 := firstOf(a.GS, a.Spd)
		hdg,ok2   := firstOf(a.Track, a.Trak)
		altFt,ok3 := firstOf(a.AltGeom, a.AltBaro)
		if !ok1 || !ok2 || !ok3 {
			snap.NumDropped++
			continue
		}

		snap.add(Observation{
			Id:            adsb.IcaoId(strings.ToUpper(strings.TrimSpace(a.Hex))),
			Callsign:      DisplayCallsign(a.Flight),
			Latlong:       geo.Latlong{Lat:*a.Lat, Long:*a.Lon},
			AltitudeM:     altFt * KFeetToMeters,
			GroundSpeedMS: spdKt * KKnotsToMPS,
			Heading:       hdg,
		})
	}

	return snap, nil
}

// }}}
// {{{ normalizeFr24

// The fr24 live feed is a dict of feed-id -> positional array, with a few
// meta keys (full_count, version, stats) riding along at the top level:
//  "ee3ab36": ["7C6DB8", -33.77, 150.95, 12, 5000, 210, "3664", "T-YSSY1",
//              "B738", "VH-VYK", 1718944800, "SYD", "MEL", "QF473", 0, 0,
//              "QFA473", 0]
// Array: 0=modeS, 1=lat, 2=long, 3=track, 4=alt (ft), 5=speed (kt),
// 16=callsign (when the row reaches that far). Altitudes and speeds are
// aviation units.

var kFr24MetaKeys = map[string]bool{"full_count":true, "version":true, "stats":true}

func normalizeFr24(raw []byte, tSnap time.Time) (Snapshot, error) {
	snap := Snapshot{TimestampUTC: tSnap}

	jsonMap := map[string]interface{}{}
	if err := json.Unmarshal(raw, &jsonMap); err != nil {
		return snap, fmt.Errorf("normalize/%v: %v", SchemaFr24, err)
	}

	for k,vRaw := range jsonMap {
		if kFr24MetaKeys[k] { continue }

		// Only fields 0-5 are load-bearing; short rows just lack a callsign.
		v,ok := vRaw.([]interface{})
		if !ok || len(v) < 6 {
			snap.NumDropped++
			continue
		}

		lat,ok1   := jsonFloat(v[1])
		long,ok2  := jsonFloat(v[2])
		hdg,ok3   := jsonFloat(v[3])
		altFt,ok4 := jsonFloat(v[4])
		spdKt,ok5 := jsonFloat(v[5])
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			snap.NumDropped++
			continue
		}

		id,_ := jsonString(v[0])
		callsign := ""
		if len(v) > 16 {
			callsign,_ = jsonString(v[16])
		}

		snap.add(Observation{
			Id:            adsb.IcaoId(strings.ToUpper(id)),
			Callsign:      DisplayCallsign(callsign),
			Latlong:       geo.Latlong{Lat:lat, Long:long},
			AltitudeM:     altFt * KFeetToMeters,
			GroundSpeedMS: spdKt * KKnotsToMPS,
			Heading:       hdg,
		})
	}

	return snap, nil
}

// }}}

// {{{ FromADSB

// FromADSB builds a snapshot from locally received composite messages.
// Receiver altitudes are feet, speeds knots.
func FromADSB(msgs []adsb.CompositeMsg, tSnap time.Time) Snapshot {
	snap := Snapshot{TimestampUTC: tSnap}

	for _,m := range msgs {
		snap.add(Observation{
			Id:            m.Icao24,
			Callsign:      DisplayCallsign(m.Callsign),
			Latlong:       m.Position,
			AltitudeM:     float64(m.Altitude) * KFeetToMeters,
			GroundSpeedMS: float64(m.GroundSpeed) * KKnotsToMPS,
			Heading:       float64(m.Track),
		})
	}

	return snap
}

// }}}
// {{{ FromAirspace

// FromAirspace bridges from a polled airspace, so the forecaster can sit
// directly behind anything that aggregates live traffic into one of those.
func FromAirspace(as *airspace.Airspace, tSnap time.Time) Snapshot {
	snap := Snapshot{TimestampUTC: tSnap}
	if as == nil { return snap }

	for id,ad := range as.Aircraft {
		if ad.Msg == nil {
			snap.NumDropped++
			continue
		}
		snap.add(Observation{
			Id:            id,
			Callsign:      DisplayCallsign(ad.Msg.Callsign),
			Latlong:       ad.Msg.Position,
			AltitudeM:     float64(ad.Msg.Altitude) * KFeetToMeters,
			GroundSpeedMS: float64(ad.Msg.GroundSpeed) * KKnotsToMPS,
			Heading:       float64(ad.Msg.Track),
		})
	}

	return snap
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
