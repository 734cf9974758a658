package main

// Watches the sky over a fixed point, and raises an alert shortly before
// any aircraft's sun (or moon) shadow is forecast to sweep across it.
//
//   shadowcast -config home.yaml           # poll forever
//   shadowcast -config home.yaml -once     # single tick, for cron

import(
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skypies/geo"

	sc "github.com/skypies/shadowcast"
	"github.com/skypies/shadowcast/aex"
	"github.com/skypies/shadowcast/fr24"
	"github.com/skypies/shadowcast/pushover"
)

var(
	fConfigPath string
	fOnce       bool
)

func init() {
	flag.StringVar(&fConfigPath, "config", "./shadowcast.yaml", "path to YAML config")
	flag.BoolVar(&fOnce, "once", false, "run a single tick and exit")
	flag.Parse()
}

// Exit codes: 0 tick completed, 2 config error, 3 alert log I/O error.
const(
	kExitOK       = 0
	kExitConfig   = 2
	kExitAlertLog = 3
)

type snapshotSource interface {
	FetchSnapshot(box geo.LatlongBox) (sc.Snapshot, error)
}

func main() {
	cfg,err := sc.LoadConfiguration(fConfigPath)
	if err != nil {
		log.Printf("config load failed: %v", err)
		os.Exit(kExitConfig)
	}

	var src snapshotSource
	switch cfg.Source {
	case "aex":
		src = aex.NewAdsbExchange(nil, cfg.SourceURL)
	default:
		src = fr24.NewFr24(nil)
	}

	sinks := []sc.Sink{sc.WriterSink{Writer: os.Stdout}}
	if cfg.PushoverToken != "" && cfg.PushoverUser != "" {
		po := pushover.NewClient(cfg.PushoverToken, cfg.PushoverUser)
		if cfg.PushoverURL != "" { po.URL = cfg.PushoverURL }
		sinks = append(sinks, po)
	}

	eph := sc.SuncalcEphemeris{}
	alog := sc.AlertLog{Path: cfg.LogPath}
	box := cfg.Home().Box(float64(2*cfg.SearchRadiusKM), float64(2*cfg.SearchRadiusKM))

	// Arming state lives here, so alert suppression can outlive a tick when
	// configured to.
	arb := sc.NewArbiter(cfg.Home(), float64(cfg.AlertRadiusM))

	runTick := func() (sc.TickResult, error) {
		snap,err := src.FetchSnapshot(box)
		if err != nil {
			log.Printf("fetch failed (%v); ticking with an empty snapshot", err)
			snap = sc.Snapshot{TimestampUTC: time.Now().UTC()}
		}

		if cfg.AlertRearmMin > 0 {
			arb.Armed.AgeOut(time.Duration(cfg.AlertRearmMin) * time.Minute)
		} else {
			arb.Armed = sc.ArmedSet{}
		}
		return sc.TickWithArbiter(snap, cfg, eph, sinks, alog, arb)
	}

	if fOnce {
		res,err := runTick()
		if err != nil {
			log.Printf("%v", err)
			os.Exit(kExitAlertLog)
		}
		fmt.Printf("%s\n", res)
		os.Exit(kExitOK)
	}

	ctx,cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("shadowcast starting; home=%s source=%s refresh=%ds",
		cfg.Home(), cfg.Source, cfg.RefreshIntervalS)

	ticker := time.NewTicker(time.Duration(cfg.RefreshIntervalS) * time.Second)
	defer ticker.Stop()

	for {
		res,err := runTick()
		if err != nil {
			log.Printf("%v", err) // the audit trail is broken; stop rather than alert unrecorded
			os.Exit(kExitAlertLog)
		}
		log.Printf("%s", res)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Printf("shadowcast stopping")
			return
		}
	}
}
