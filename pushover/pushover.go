// Package pushover delivers alert records as push notifications via the
// Pushover message API (or anything accepting the same form POST).
package pushover

import(
	"fmt"
	"net/http"
	"net/url"
	"time"

	sc "github.com/skypies/shadowcast"
)

const KDefaultURL = "https://api.pushover.net/1/messages.json"

type Client struct {
	URL, Token, User string
	HTTPClient       *http.Client
}

func NewClient(token,user string) *Client {
	return &Client{
		URL:        KDefaultURL,
		Token:      token,
		User:       user,
		HTTPClient: &http.Client{Timeout: 10*time.Second},
	}
}

// Notify treats any 2xx as delivered. It never returns errors; a sink is
// best-effort by contract.
func (c *Client)Notify(r sc.AlertRecord) bool {
	msg := fmt.Sprintf("%s shadow of %s passing home in %ds (at %.5f,%.5f)",
		r.Body, r.Callsign, r.LeadTimeSec, r.Lat, r.Long)

	resp,err := c.HTTPClient.PostForm(c.URL, url.Values{
		"token":   {c.Token},
		"user":    {c.User},
		"title":   {"Shadow transit inbound"},
		"message": {msg},
	})
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
