package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InvoicingConfig holds numbering and currency defaults for invoice generation.
type InvoicingConfig struct {
	NumberPrefix    string `mapstructure:"numberPrefix"`
	SequenceWidth   int    `mapstructure:"sequenceWidth"`
	DefaultCurrency string `mapstructure:"defaultCurrency"`
	DefaultDueDays  int    `mapstructure:"defaultDueDays"`
}

func DefaultInvoicingConfig() InvoicingConfig {
	return InvoicingConfig{
		NumberPrefix:    "INV",
		SequenceWidth:   4,
		DefaultCurrency: "EUR",
		DefaultDueDays:  14,
	}
}

// InvoicingConfigHolder serves the current invoicing config and hot-reloads it
// when the backing file changes.
type InvoicingConfigHolder struct {
	current atomic.Value // holds InvoicingConfig
}

func NewInvoicingConfigHolder() (*InvoicingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/onebase/config") // Volume-mounted config
	v.AddConfigPath("/etc/onebase")            // System config
	v.AddConfigPath(".")                       // Current directory (dev mode)

	v.SetEnvPrefix("ONEBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultInvoicingConfig()
	v.SetDefault("invoicing.numberPrefix", defaults.NumberPrefix)
	v.SetDefault("invoicing.sequenceWidth", defaults.SequenceWidth)
	v.SetDefault("invoicing.defaultCurrency", defaults.DefaultCurrency)
	v.SetDefault("invoicing.defaultDueDays", defaults.DefaultDueDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg InvoicingConfig
	if err := v.UnmarshalKey("invoicing", &cfg); err != nil {
		return nil, err
	}
	if err := validateInvoicingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoicingConfig
		if err := v.UnmarshalKey("invoicing", &updated); err != nil {
			log.Printf("[invoicing-config] reload failed: %v", err)
			return
		}
		if err := validateInvoicingConfig(updated); err != nil {
			log.Printf("[invoicing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoicing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticInvoicingConfigHolder wraps a fixed config without file watching.
func NewStaticInvoicingConfigHolder(cfg InvoicingConfig) *InvoicingConfigHolder {
	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *InvoicingConfigHolder) Get() InvoicingConfig {
	return h.current.Load().(InvoicingConfig)
}

func validateInvoicingConfig(cfg InvoicingConfig) error {
	if strings.TrimSpace(cfg.NumberPrefix) == "" {
		return errors.New("invoicing.numberPrefix cannot be empty")
	}
	if cfg.SequenceWidth < 1 || cfg.SequenceWidth > 10 {
		return errors.New("invoicing.sequenceWidth must be between 1 and 10")
	}
	if len(strings.TrimSpace(cfg.DefaultCurrency)) != 3 {
		return errors.New("invoicing.defaultCurrency must be a 3-letter code")
	}
	if cfg.DefaultDueDays < 0 {
		return errors.New("invoicing.defaultDueDays cannot be negative")
	}
	return nil
}
