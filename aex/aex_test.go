package aex

import(
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skypies/geo"
)

var testBox = geo.Latlong{Lat:-33.8174, Long:150.9443}.Box(40,40)

func TestFetchSnapshot(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _,arg := range []string{"lat", "lng", "fDstL", "fDstU"} {
			if q.Get(arg) == "" {
				t.Errorf("request %q missing %q", r.URL, arg)
			}
		}
		w.Write([]byte(`{"aircraft": [
			{"hex":"7c6db8", "flight":"QFA473", "lat":-33.77, "lon":150.95, "gs":210.0, "track":12.0, "alt_geom":5000}
		]}`))
	}))
	defer svr.Close()

	aex := NewAdsbExchange(nil, svr.URL)
	snap,err := aex.FetchSnapshot(testBox)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(snap.Observations) != 1 || snap.Observations[0].Callsign != "QFA473" {
		t.Errorf("snapshot: %v", snap)
	}
}

func TestFetchSnapshotFailures(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	aex := NewAdsbExchange(nil, svr.URL)
	if _,err := aex.FetchSnapshot(testBox); err == nil {
		t.Errorf("non-200 endpoint should error")
	}

	svr.Close()
	if _,err := aex.FetchSnapshot(testBox); err == nil {
		t.Errorf("unreachable endpoint should error")
	}
}
