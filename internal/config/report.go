package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AgingBucket is a days-past-due range for accounts-receivable aging.
// A nil MaxDays means the bucket is open-ended.
type AgingBucket struct {
	Label   string `mapstructure:"label"`
	MinDays int    `mapstructure:"minDays"`
	MaxDays *int   `mapstructure:"maxDays"`
}

// ReportConfig controls the reporting summary computation. It is passed
// explicitly to the aggregation call sites; nothing reads it ambiently.
type ReportConfig struct {
	AgingBuckets []AgingBucket `mapstructure:"agingBuckets"`
	WindowDays   int           `mapstructure:"windowDays"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		AgingBuckets: []AgingBucket{
			{Label: "1-30", MinDays: 1, MaxDays: intPtr(30)},
			{Label: "31-60", MinDays: 31, MaxDays: intPtr(60)},
			{Label: "61-90", MinDays: 61, MaxDays: intPtr(90)},
			{Label: "90+", MinDays: 91, MaxDays: nil},
		},
		WindowDays: 90,
	}
}

func intPtr(v int) *int { return &v }

// ReportConfigHolder serves the current ReportConfig and swaps it
// atomically when the config file changes on disk.
type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/finvo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINVO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReportConfig()
		v.SetDefault("report.agingBuckets", defaults.AgingBuckets)
		v.SetDefault("report.windowDays", defaults.WindowDays)
	}

	var cfg ReportConfig
	if err := v.UnmarshalKey("report", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportConfig
		if err := v.UnmarshalKey("report", &updated); err != nil {
			log.Printf("[report-config] reload failed: %v", err)
			return
		}
		if err := validateReportConfig(updated); err != nil {
			log.Printf("[report-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[report-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticReportConfigHolder wraps a fixed config with no file watching.
func NewStaticReportConfigHolder(cfg ReportConfig) *ReportConfigHolder {
	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportConfigHolder) Get() ReportConfig {
	return h.current.Load().(ReportConfig)
}

func validateReportConfig(cfg ReportConfig) error {
	if len(cfg.AgingBuckets) == 0 {
		return errors.New("report.agingBuckets cannot be empty")
	}
	if cfg.WindowDays <= 0 {
		return errors.New("report.windowDays must be positive")
	}
	prev := 0
	for i, bucket := range cfg.AgingBuckets {
		if strings.TrimSpace(bucket.Label) == "" {
			return errors.New("report.agingBuckets labels cannot be empty")
		}
		if i > 0 && bucket.MinDays <= prev {
			return errors.New("report.agingBuckets must be ordered by minDays")
		}
		if bucket.MaxDays != nil && *bucket.MaxDays < bucket.MinDays {
			return errors.New("report.agingBuckets maxDays must not precede minDays")
		}
		prev = bucket.MinDays
	}
	return nil
}
