package shadowcast

import(
	"fmt"
	"os"
	"time"

	"github.com/skypies/geo"
	"gopkg.in/yaml.v3"
)

// Configuration is built once at startup, validated, and then passed around
// by value; nothing mutates it during a tick.
type Configuration struct {
	// Pointers, so an absent key is distinguishable from a home at (0,0)
	HomeLat          *float64 `yaml:"home_lat"`
	HomeLong         *float64 `yaml:"home_lon"`
	AlertRadiusM     int     `yaml:"alert_radius_m"`
	SearchRadiusKM   int     `yaml:"search_radius_km"`
	ForecastHorizonS int     `yaml:"forecast_horizon_s"`
	ForecastStepS    int     `yaml:"forecast_step_s"`
	EnableSun        bool    `yaml:"enable_sun"`
	EnableMoon       bool    `yaml:"enable_moon"`
	LogPath          string  `yaml:"log_path"`
	ShadowLineWidth  int     `yaml:"shadow_line_width"` // cosmetic; handed to renderers untouched

	// Orchestration (the loop around the core, not the core itself)
	RefreshIntervalS int    `yaml:"refresh_interval_s"`
	AlertRearmMin    int    `yaml:"alert_rearm_min"` // 0 == re-arm every tick
	Source           string `yaml:"source"`          // fr24 | aex
	SourceURL        string `yaml:"source_url"`      // endpoint stem, for sources that need one

	// Optional push notifications
	PushoverURL   string `yaml:"pushover_url"`
	PushoverToken string `yaml:"pushover_token"`
	PushoverUser  string `yaml:"pushover_user"`
}

// DefaultConfiguration carries the documented defaults; LoadConfiguration
// unmarshals on top of it, so absent yaml keys keep their defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		AlertRadiusM:     50,
		SearchRadiusKM:   20,
		ForecastHorizonS: 300,
		ForecastStepS:    30,
		EnableSun:        true,
		EnableMoon:       false,
		LogPath:          "./alert_log.csv",
		ShadowLineWidth:  3,
		RefreshIntervalS: 60,
		Source:           "fr24",
	}
}

func LoadConfiguration(path string) (Configuration, error) {
	b,err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}

	cfg := DefaultConfiguration()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Configuration{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Validate fails fast, before any tick runs.
func (cfg Configuration)Validate() error {
	if cfg.HomeLat == nil || cfg.HomeLong == nil {
		return fmt.Errorf("home_lat and home_lon are required")
	}
	if *cfg.HomeLat < -90.0 || *cfg.HomeLat > 90.0 {
		return fmt.Errorf("home_lat %f out of range [-90,90]", *cfg.HomeLat)
	}
	if *cfg.HomeLong < -180.0 || *cfg.HomeLong > 180.0 {
		return fmt.Errorf("home_lon %f out of range [-180,180]", *cfg.HomeLong)
	}
	if cfg.AlertRadiusM <= 0 {
		return fmt.Errorf("alert_radius_m must be > 0")
	}
	if cfg.SearchRadiusKM <= 0 {
		return fmt.Errorf("search_radius_km must be > 0")
	}
	if cfg.ForecastStepS <= 0 {
		return fmt.Errorf("forecast_step_s must be > 0")
	}
	if cfg.ForecastHorizonS < cfg.ForecastStepS {
		return fmt.Errorf("forecast_horizon_s must be >= forecast_step_s")
	}
	if !cfg.EnableSun && !cfg.EnableMoon {
		return fmt.Errorf("at least one of enable_sun / enable_moon must be set")
	}
	if cfg.LogPath == "" {
		return fmt.Errorf("log_path must not be empty")
	}
	switch cfg.Source {
	case "fr24":
	case "aex":
		if cfg.SourceURL == "" {
			return fmt.Errorf("source_url is required when source is aex")
		}
	default:
		return fmt.Errorf("source %q not recognized (want fr24 or aex)", cfg.Source)
	}
	return nil
}

// Home assumes Validate has passed (i.e. both coordinates are present).
func (cfg Configuration)Home() geo.Latlong {
	return geo.Latlong{Lat:*cfg.HomeLat, Long:*cfg.HomeLong}
}

func (cfg Configuration)Horizon() time.Duration {
	return time.Duration(cfg.ForecastHorizonS) * time.Second
}

func (cfg Configuration)Step() time.Duration {
	return time.Duration(cfg.ForecastStepS) * time.Second
}

// Bodies lists the enabled shadow casters, sun first.
func (cfg Configuration)Bodies() []Body {
	bodies := []Body{}
	if cfg.EnableSun  { bodies = append(bodies, Sun) }
	if cfg.EnableMoon { bodies = append(bodies, Moon) }
	return bodies
}
