// Package fr24 polls the flightradar24 live feed for the traffic inside a
// bounding box, and hands the raw body to the normalizer. It knows URLs and
// HTTP; the feed's field layout lives with the other schemas in the root
// package.
package fr24

import(
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skypies/geo"

	sc "github.com/skypies/shadowcast"
)

var ErrBadStatus = fmt.Errorf("fr24: bad response status")

type Fr24 struct {
	Client *http.Client
	Prefix  string
	host    string
}

func NewFr24(c *http.Client) *Fr24 {
	if c == nil {
		c = &http.Client{Timeout: 10*time.Second} // a stuck feed must not stall the tick loop
	}
	return &Fr24{Client:c, Prefix:"https://", host:"data-live.flightradar24.com"}
}

// bounds are "north,south,west,east"
func (fr *Fr24)GetFeedUrl(box geo.LatlongBox) string {
	return fmt.Sprintf("%s%s/zones/fcgi/feed.json?bounds=%.3f,%.3f,%.3f,%.3f&faa=1",
		fr.Prefix, fr.host, box.NE.Lat, box.SW.Lat, box.SW.Long, box.NE.Long)
}

func (fr *Fr24)Url2Body(url string) ([]byte, error) {
	resp,err := fr.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FetchSnapshot returns a normalized snapshot of what's currently in the
// box, stamped with the fetch time.
func (fr *Fr24)FetchSnapshot(box geo.LatlongBox) (sc.Snapshot, error) {
	body,err := fr.Url2Body(fr.GetFeedUrl(box))
	if err != nil {
		return sc.Snapshot{}, err
	}
	return sc.Normalize(body, sc.SchemaFr24, time.Now().UTC())
}
