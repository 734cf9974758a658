package shadowcast

import(
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/* Callsigns, as seen in the live feeds we normalize:

1. Airlines mostly broadcast the ICAO flight number: SWA3848
2. Private aircraft mostly broadcast their registration: N839AL
3. Some airlines broadcast a bare flight number (1106, 948); annoying
4. Anonymous traffic broadcasts junk: '00000000', '????????', '', or an
   equipment type (fr24 is fond of stuffing those into the callsign field)

The classification matters only for presentation; aircraft identity is the
feed id, never the callsign (two aircraft can fly the same callsign).
*/

type CallsignType int
const(
	UndefinedCallsign CallsignType = iota
	JunkCallsign
	Registration
	IcaoFlightNumber
	BareFlightNumber
)

type Callsign struct {
	Raw           string

	CallsignType
	Registration  string
	IcaoPrefix    string
	ATCSuffix     string
	Number        int64
}

func (c Callsign)String() string {
	switch c.CallsignType {
	case IcaoFlightNumber:
		return fmt.Sprintf("%s%d", c.IcaoPrefix, c.Number) // Strips leading zeroes and ATC suffix
	default:
		return c.Raw
	}
}

func (c1 Callsign)Equal(c2 Callsign) bool {
	return c1.String() == c2.String()
}

func NewCallsign(callsign string) (ret Callsign) {
	callsign = strings.TrimSpace(callsign)
	ret.Raw = callsign

	// Registration (e.g. N23ST): one to five chars, leading digit non-zero,
	// no trailing run of three letters, never contains I or O
	reg := regexp.MustCompile("^(N[1-9][0-9A-HJ-NP-Z]{0,4})$").FindStringSubmatch(callsign)
	if reg != nil && len(reg)==2 {
		ret.Registration = callsign
		ret.CallsignType = Registration
		return
	}

	icao := regexp.MustCompile("^([A-Z]{3})([0-9]{1,4})([A-Z]?)$").FindStringSubmatch(callsign)
	if icao != nil && len(icao)==4 {
		ret.Number,_ = strconv.ParseInt(icao[2], 10, 64) // no errors here :)
		ret.IcaoPrefix = icao[1]
		ret.ATCSuffix = icao[3]
		ret.CallsignType = IcaoFlightNumber
		return
	}

	bare := regexp.MustCompile("^([0-9]{2,4})$").FindStringSubmatch(callsign)
	if bare != nil && len(bare)==2 {
		ret.Number,_ = strconv.ParseInt(bare[1], 10, 64)
		ret.CallsignType = BareFlightNumber
		return
	}

	ret.CallsignType = JunkCallsign
	return
}

// DisplayCallsign is what the normalizers store on an Observation: trimmed,
// with flight numbers canonicalized.
func DisplayCallsign(raw string) string {
	return NewCallsign(raw).String()
}
