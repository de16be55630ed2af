package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jvaldes/hucha/internal/common"
)

// Config carries everything the core components need. It is materialized once
// in cmd and passed to constructors explicitly; core packages never read the
// environment or viper themselves.
type Config struct {
	Token        string
	BudgetID     string
	APIBaseURL   string
	RulesFile    string
	LookbackDays int
	HTTPTimeout  time.Duration
	Email        EmailConfig
}

// EmailConfig holds the settings for sending reports by mail.
type EmailConfig struct {
	From         string
	To           string
	ClientID     string
	ClientSecret string
	TokenFile    string
}

// FromViper builds a Config from the already-initialized viper instance.
func FromViper() Config {
	return Config{
		Token:        viper.GetString("ynab.token"),
		BudgetID:     viper.GetString("ynab.budget"),
		APIBaseURL:   viper.GetString("ynab.base_url"),
		RulesFile:    ExpandPath(viper.GetString("rules.file")),
		LookbackDays: viper.GetInt("categorize.lookback_days"),
		HTTPTimeout:  viper.GetDuration("ynab.timeout"),
		Email: EmailConfig{
			From:         viper.GetString("email.from"),
			To:           viper.GetString("email.to"),
			ClientID:     viper.GetString("email.client_id"),
			ClientSecret: viper.GetString("email.client_secret"),
			TokenFile:    ExpandPath(viper.GetString("email.token_file")),
		},
	}
}

// Validate checks that the configuration is usable. A missing API token is
// fatal before any core logic runs.
func (c Config) Validate() error {
	if c.Token == "" {
		return common.NewUserError(
			"YNAB API token is required (set HUCHA_YNAB_TOKEN or ynab.token in the config file)",
			common.ErrMissingConfig)
	}
	if c.BudgetID == "" {
		return common.NewUserError("budget selector cannot be empty", common.ErrInvalidConfig)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("%w: lookback days must be positive, got %d", common.ErrInvalidConfig, c.LookbackDays)
	}
	return nil
}

// ValidateEmail checks the additional settings the email command needs.
func (c Config) ValidateEmail() error {
	if c.Email.To == "" {
		return common.NewUserError("email recipient is required (email.to)", common.ErrMissingConfig)
	}
	if c.Email.ClientID == "" || c.Email.ClientSecret == "" {
		return common.NewUserError("Google OAuth client credentials are required (email.client_id, email.client_secret)", common.ErrMissingConfig)
	}
	return nil
}
