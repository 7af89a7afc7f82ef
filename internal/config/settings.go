package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Settings are operator-tunable policy knobs, reloaded on file change.
type Settings struct {
	// MileageLockWindow is the minimum time between two interactive mileage
	// entries for the same vehicle.
	MileageLockWindow time.Duration `mapstructure:"mileageLockWindow"`

	// DuplicateServiceLookbackDays is the advisory window for the
	// recent-duplicate-service check before saving an invoice.
	DuplicateServiceLookbackDays int `mapstructure:"duplicateServiceLookbackDays"`
}

func DefaultSettings() Settings {
	return Settings{
		MileageLockWindow:            5 * time.Hour,
		DuplicateServiceLookbackDays: 5,
	}
}

// SettingsHolder exposes the current Settings; Get is safe for concurrent use.
type SettingsHolder struct {
	current atomic.Value // holds Settings
}

// SettingsModule provides a hot-reloading SettingsHolder.
var SettingsModule = fx.Provide(NewSettingsHolder)

func NewSettingsHolder(cfg Config) (*SettingsHolder, error) {
	v := viper.New()

	v.SetConfigName("settings")
	v.SetConfigType("yml")
	v.AddConfigPath(cfg.DataDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("MOTORBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("settings.mileageLockWindow", defaults.MileageLockWindow)
	v.SetDefault("settings.duplicateServiceLookbackDays", defaults.DuplicateServiceLookbackDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var settings Settings
	if err := v.UnmarshalKey("settings", &settings); err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	holder := &SettingsHolder{}
	holder.current.Store(settings)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Settings
		if err := v.UnmarshalKey("settings", &updated); err != nil {
			log.Printf("[settings] reload failed: %v", err)
			return
		}
		if err := validateSettings(updated); err != nil {
			log.Printf("[settings] invalid settings ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[settings] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *SettingsHolder) Get() Settings {
	return h.current.Load().(Settings)
}

// NewStaticSettings returns a holder pinned to the given settings. Tests use it.
func NewStaticSettings(s Settings) *SettingsHolder {
	holder := &SettingsHolder{}
	holder.current.Store(s)
	return holder
}

func validateSettings(s Settings) error {
	if s.MileageLockWindow < 0 {
		return errors.New("settings.mileageLockWindow cannot be negative")
	}
	if s.DuplicateServiceLookbackDays < 0 {
		return errors.New("settings.duplicateServiceLookbackDays cannot be negative")
	}
	return nil
}
