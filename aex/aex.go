// Package aex polls an ADS-B Exchange / readsb style endpoint (anything
// serving the object-per-aircraft JSON shape) for the traffic around a
// point.
package aex

import(
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skypies/geo"

	sc "github.com/skypies/shadowcast"
)

type AdsbExchange struct {
	Client  *http.Client
	URLStem string // e.g. "https://adsbexchange.example.com/api/aircraft/json"
}

func NewAdsbExchange(c *http.Client, urlStem string) *AdsbExchange {
	if c == nil {
		c = &http.Client{Timeout: 10*time.Second}
	}
	return &AdsbExchange{Client:c, URLStem:urlStem}
}

func (aex *AdsbExchange)args2url(args map[string]string) string {
	getArgs := url.Values{}
	for k,v := range args { getArgs.Set(k,v) }
	return aex.URLStem+"?"+getArgs.Encode()
}

// FetchSnapshot queries for everything within the box (expressed to the
// endpoint as a center + radius, half the box diagonal).
func (aex *AdsbExchange)FetchSnapshot(box geo.LatlongBox) (sc.Snapshot, error) {
	args := map[string]string{
		"lat":  fmt.Sprintf("%.6f", box.Center().Lat),
		"lng":  fmt.Sprintf("%.6f", box.Center().Long),
		"fDstL": "0",
		"fDstU": fmt.Sprintf("%.0f", box.NE.DistKM(box.SW) / 2.0),
	}

	resp,err := aex.Client.Get(aex.args2url(args))
	if err != nil {
		return sc.Snapshot{}, fmt.Errorf("aex fetch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sc.Snapshot{}, fmt.Errorf("aex fetch: bad status %s", resp.Status)
	}

	body,err := io.ReadAll(resp.Body)
	if err != nil {
		return sc.Snapshot{}, fmt.Errorf("aex read: %v", err)
	}
	return sc.Normalize(body, sc.SchemaADSBx, time.Now().UTC())
}
