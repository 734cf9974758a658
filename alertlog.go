package shadowcast

import(
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/geo"
)

// AlertLog is the append-only audit trail. The file is opened fresh for
// every append; with one forecast loop per process that is the simplest
// thing that is correct. (Multiple concurrent writers would need an
// advisory lock around each append.)
type AlertLog struct {
	Path string
}

const kAlertLogHeader = "time_utc,callsign,lead_time_seconds,lat,lon,body"

// {{{ log.Append

// Append writes one record as a single write of one fully-formed line. The
// header goes in iff this call created the file; a pre-existing file is
// never touched beyond the append.
func (l AlertLog)Append(r AlertRecord) error {
	_,statErr := os.Stat(l.Path)

	f,err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("alertlog open %s: %v", l.Path, err)
	}
	defer f.Close()

	if os.IsNotExist(statErr) {
		if _,err := f.WriteString(kAlertLogHeader+"\n"); err != nil {
			return fmt.Errorf("alertlog header %s: %v", l.Path, err)
		}
	}

	line := fmt.Sprintf("%s,%s,%d,%.6f,%.6f,%s\n",
		r.EmittedAtUTC.UTC().Format(time.RFC3339),
		csvEscape(r.Callsign), r.LeadTimeSec, r.Lat, r.Long, r.Body)

	if _,err := f.WriteString(line); err != nil {
		return fmt.Errorf("alertlog append %s: %v", l.Path, err)
	}
	return nil
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// }}}
// {{{ log.Tail

// Tail parses back the last n records. Lines it can't parse are skipped and
// counted; append never tries to repair them. A log that doesn't exist yet
// tails to nothing.
func (l AlertLog)Tail(n int) ([]AlertRecord, int, error) {
	f,err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) { return []AlertRecord{}, 0, nil }
		return nil, 0, fmt.Errorf("alertlog open %s: %v", l.Path, err)
	}
	defer f.Close()

	records := []AlertRecord{}
	nSkipped := 0

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	for {
		row,err := r.Read()
		if err == io.EOF { break }
		if err != nil {
			nSkipped++
			continue
		}
		if len(row) > 0 && row[0] == "time_utc" { continue } // header
		if rec,ok := parseAlertRow(row); ok {
			records = append(records, rec)
		} else {
			nSkipped++
		}
	}

	if n >= 0 && n < len(records) {
		records = records[len(records)-n:]
	}
	return records, nSkipped, nil
}

func parseAlertRow(row []string) (AlertRecord, bool) {
	if len(row) != 6 { return AlertRecord{}, false }

	emitted,err := time.Parse(time.RFC3339, row[0])
	if err != nil { return AlertRecord{}, false }
	lead,err := strconv.Atoi(row[2])
	if err != nil { return AlertRecord{}, false }
	lat,err := strconv.ParseFloat(row[3], 64)
	if err != nil { return AlertRecord{}, false }
	long,err := strconv.ParseFloat(row[4], 64)
	if err != nil { return AlertRecord{}, false }

	return AlertRecord{
		EmittedAtUTC: emitted.UTC(),
		Callsign:     row[1],
		LeadTimeSec:  lead,
		Latlong:      geo.Latlong{Lat:lat, Long:long},
		Body:         Body(row[5]),
	}, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
