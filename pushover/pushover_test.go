package pushover

import(
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skypies/geo"

	sc "github.com/skypies/shadowcast"
)

func testRecord() sc.AlertRecord {
	return sc.AlertRecord{
		EmittedAtUTC: time.Date(2024, 6, 21, 4, 0, 0, 0, time.UTC),
		Callsign:     "QFA473",
		LeadTimeSec:  60,
		Latlong:      geo.Latlong{Lat:-33.8174, Long:150.9443},
		Body:         sc.Sun,
	}
}

func TestNotifyDelivers(t *testing.T) {
	var got struct {
		token,user,message string
	}

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		got.token = r.PostFormValue("token")
		got.user = r.PostFormValue("user")
		got.message = r.PostFormValue("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer svr.Close()

	c := NewClient("tok123", "usr456")
	c.URL = svr.URL

	if !c.Notify(testRecord()) {
		t.Fatalf("notify against a 200 server should succeed")
	}
	if got.token != "tok123" || got.user != "usr456" {
		t.Errorf("credentials: got %q/%q", got.token, got.user)
	}
	for _,want := range []string{"QFA473", "60s", "SUN"} {
		if !strings.Contains(got.message, want) {
			t.Errorf("message %q should mention %q", got.message, want)
		}
	}
}

func TestNotifyFailures(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer svr.Close()

	c := NewClient("tok", "usr")
	c.URL = svr.URL
	if c.Notify(testRecord()) {
		t.Errorf("4xx should report undelivered")
	}

	svr.Close()
	if c.Notify(testRecord()) {
		t.Errorf("connection refused should report undelivered")
	}
}
