package shadowcast

import(
	"testing"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
	"github.com/skypies/pi/airspace"
)

var tSnap = time.Date(2024, 6, 21, 4, 0, 0, 0, time.UTC)

func TestNormalizeOpenSky(t *testing.T) {
	// Row 1 is good (geometric altitude preferred over barometric);
	// row 2 only has barometric; row 3 is on the ground (dropped);
	// row 4 has a null position (dropped); row 5 is truncated (dropped).
	raw := []byte(`{"time": 1718942400, "states": [
		["7c6db8", "QFA12   ", "Australia", 1718942400, 1718942400, 150.95, -33.80, 9144.0, false, 250.5, 10.0, 0.0, null, 9300.0, "3664", false, 0],
		["7c1234", "VOZ871",   "Australia", 1718942400, 1718942400, 150.99, -33.70, 7620.0, false, 220.0, 355.0, 0.0, null, null,   "3664", false, 0],
		["7c9999", "",         "Australia", 1718942400, 1718942400, 150.97, -33.76, 0.0,    true,  0.0,   0.0,  0.0, null, 0.0,    null,   false, 0],
		["7c8888", "JST501",   "Australia", 1718942400, 1718942400, null,   -33.76, 6000.0, false, 200.0, 90.0, 0.0, null, 6100.0, null,   false, 0],
		["7c7777"]
	]}`)

	snap,err := Normalize(raw, SchemaOpenSky, tSnap)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if snap.TimestampUTC != tSnap {
		t.Errorf("snapshot timestamp: got %v, want %v", snap.TimestampUTC, tSnap)
	}
	if len(snap.Observations) != 2 {
		t.Fatalf("got %d observations, want 2: %v", len(snap.Observations), snap.Observations)
	}
	if snap.NumDropped != 3 {
		t.Errorf("got %d dropped, want 3", snap.NumDropped)
	}

	o := snap.Observations[0]
	if o.Id != adsb.IcaoId("7C6DB8") {
		t.Errorf("id: got %q, want 7C6DB8", o.Id)
	}
	if o.Callsign != "QFA12" { // whitespace stripped
		t.Errorf("callsign: got %q, want QFA12", o.Callsign)
	}
	if o.AltitudeM != 9300.0 {
		t.Errorf("altitude: got %f, want geometric 9300", o.AltitudeM)
	}
	if o.GroundSpeedMS != 250.5 || o.Heading != 10.0 {
		t.Errorf("speed/heading: got %f/%f", o.GroundSpeedMS, o.Heading)
	}

	if o2 := snap.Observations[1]; o2.AltitudeM != 7620.0 {
		t.Errorf("barometric fallback: got %f, want 7620", o2.AltitudeM)
	}
}

func TestNormalizeADSBx(t *testing.T) {
	raw := []byte(`{"aircraft": [
		{"hex":"7c6db8", "flight":"QFA473 ", "lat":-33.77, "lon":150.95, "gs":210.0, "track":12.0, "alt_geom":5000},
		{"hex":"7c1111", "flight":"VOZ1",    "lat":-33.70, "lon":150.99, "spd":180.0, "trak":270.0, "alt_baro":4000},
		{"hex":"7c2222", "flight":"NOPOS"},
		{"hex":"7c3333", "flight":"NOALT",   "lat":-33.71, "lon":150.91, "gs":180.0, "track":90.0}
	]}`)

	snap,err := Normalize(raw, SchemaADSBx, tSnap)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(snap.Observations) != 2 || snap.NumDropped != 2 {
		t.Fatalf("got %d observations / %d dropped, want 2/2", len(snap.Observations), snap.NumDropped)
	}

	o := snap.Observations[0]
	if o.AltitudeM < 1523.0 || o.AltitudeM > 1525.0 { // 5000ft
		t.Errorf("altitude: got %fm, want ~1524m", o.AltitudeM)
	}
	if o.GroundSpeedMS < 107.0 || o.GroundSpeedMS > 109.0 { // 210kt
		t.Errorf("speed: got %fm/s, want ~108m/s", o.GroundSpeedMS)
	}

	// The alias fields should work too
	if o2 := snap.Observations[1]; o2.GroundSpeedMS < 92.0 || o2.GroundSpeedMS > 93.0 || o2.Heading != 270.0 {
		t.Errorf("spd/trak aliases: got %f/%f", o2.GroundSpeedMS, o2.Heading)
	}
}

func TestNormalizeFr24(t *testing.T) {
	raw := []byte(`{
		"full_count": 17244,
		"version": 4,
		"stats": {"total": 2},
		"ee3ab36": ["7C6DB8", -33.77, 150.95, 12, 5000, 210, "3664", "T-YSSY1", "B738", "VH-VYK", 1718944800, "SYD", "MEL", "QF473", 0, 0, "QFA473", 0],
		"ee3ab37": ["7C0000", -33.90, 151.10, 200, 0, 0, "3664", "T-YSSY1", "DH8D", "VH-QOV", 1718944800, "", "", "", 1, 0, "QLK22D", 0],
		"ee3ab38": ["7C9999", -33.78, 150.96, 90, 6000, 250],
		"ee3ab39": ["7C8888", -33.79]
	}`)

	snap,err := Normalize(raw, SchemaFr24, tSnap)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(snap.Observations) != 2 {
		t.Fatalf("got %d observations, want 2 (meta keys, the grounded and the truncated one filtered)",
			len(snap.Observations))
	}

	byId := map[adsb.IcaoId]Observation{}
	for _,o := range snap.Observations { byId[o.Id] = o }

	o := byId[adsb.IcaoId("7C6DB8")]
	if o.Callsign != "QFA473" {
		t.Errorf("callsign: got %q, want QFA473", o.Callsign)
	}
	if o.Heading != 12.0 {
		t.Errorf("heading: got %f, want 12", o.Heading)
	}

	// A row ending at the positional fields still forecasts; it just has no
	// callsign to display.
	short := byId[adsb.IcaoId("7C9999")]
	if short.Callsign != "" || short.Heading != 90.0 {
		t.Errorf("short row: got %q/%f, want anonymous at 90deg", short.Callsign, short.Heading)
	}
	if short.CallsignOrNA() != "7C9999" {
		t.Errorf("short row display: got %q, want the feed id", short.CallsignOrNA())
	}

	if snap.NumDropped != 2 { // the grounded and the truncated aircraft
		t.Errorf("got %d dropped, want 2", snap.NumDropped)
	}
}

func TestFromADSB(t *testing.T) {
	msgs := []adsb.CompositeMsg{
		{Msg: adsb.Msg{
			Icao24:      adsb.IcaoId("7C6DB8"),
			Callsign:    "QFA473",
			Position:    geo.Latlong{Lat:-33.77, Long:150.95},
			Altitude:    5000,
			GroundSpeed: 210,
			Track:       12,
		}},
		{Msg: adsb.Msg{ // grounded; should be filtered
			Icao24:   adsb.IcaoId("7C0000"),
			Position: geo.Latlong{Lat:-33.90, Long:151.10},
		}},
	}

	snap := FromADSB(msgs, tSnap)
	if len(snap.Observations) != 1 || snap.NumDropped != 1 {
		t.Fatalf("got %d observations / %d dropped, want 1/1", len(snap.Observations), snap.NumDropped)
	}
}

func TestFromAirspace(t *testing.T) {
	as := airspace.NewAirspace()
	msg := adsb.CompositeMsg{Msg: adsb.Msg{
		Icao24:      adsb.IcaoId("7C6DB8"),
		Callsign:    "QFA473",
		Position:    geo.Latlong{Lat:-33.77, Long:150.95},
		Altitude:    5000,
		GroundSpeed: 210,
		Track:       12,
	}}
	as.Aircraft[msg.Icao24] = airspace.AircraftData{Msg: &msg}

	snap := FromAirspace(&as, tSnap)
	if len(snap.Observations) != 1 {
		t.Fatalf("got %d observations, want 1", len(snap.Observations))
	}
	if snap.Observations[0].Id != adsb.IcaoId("7C6DB8") {
		t.Errorf("id: got %q", snap.Observations[0].Id)
	}
}
