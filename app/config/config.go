package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SheetCfg locates the published rules spreadsheet. The sheet is external
// and mutable; it is re-fetched on every lookup, never cached.
type SheetCfg struct {
	ID  string `yaml:"id" json:"id"`
	Tab string `yaml:"tab" json:"tab"`
}

type GeocodeCfg struct {
	MapboxToken string `yaml:"mapbox_token" json:"-"`
}

type TwilioCfg struct {
	AccountSID  string `yaml:"account_sid" json:"-"`
	AuthToken   string `yaml:"auth_token" json:"-"`
	PhoneNumber string `yaml:"phone_number" json:"phone_number"`
}

type AnthropicCfg struct {
	APIKey string `yaml:"api_key" json:"-"`
	Model  string `yaml:"model" json:"model"`
}

type QuotaCfg struct {
	FreeChecks int `yaml:"free_checks" json:"free_checks"` // free compliance checks per client before upsell
}

type SuggestCfg struct {
	Max int `yaml:"max" json:"max"` // max fuzzy suggestions on a miss
}

// ServiceCfg is the full service configuration
type ServiceCfg struct {
	Sheet      SheetCfg     `yaml:"sheet" json:"sheet"`
	Geocode    GeocodeCfg   `yaml:"geocode" json:"geocode"`
	Twilio     TwilioCfg    `yaml:"twilio" json:"twilio"`
	Anthropic  AnthropicCfg `yaml:"anthropic" json:"anthropic"`
	WebhookURL string       `yaml:"webhook_url" json:"-"`
	RedisURL   string       `yaml:"redis_url" json:"redis_url"`
	MongoURI   string       `yaml:"mongo_uri" json:"mongo_uri"`
	Quota      QuotaCfg     `yaml:"quota" json:"quota"`
	Suggest    SuggestCfg   `yaml:"suggest" json:"suggest"`
}

var C ServiceCfg

// Load reads the yaml config and applies ENV overrides. A missing file is
// not fatal: a fully env-configured deployment carries no yaml at all.
func Load(path string) error {
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &C); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	// ENV overrides
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&C.Sheet.ID, "SHEET_ID")
	override(&C.Sheet.Tab, "SHEET_TAB")
	override(&C.Geocode.MapboxToken, "MAPBOX_TOKEN")
	override(&C.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	override(&C.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	override(&C.Twilio.PhoneNumber, "TWILIO_PHONE_NUMBER")
	override(&C.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	override(&C.Anthropic.Model, "ANTHROPIC_MODEL")
	override(&C.WebhookURL, "GAS_WEBAPP_URL")
	override(&C.RedisURL, "REDIS_URL")
	override(&C.MongoURI, "MONGO_URI")

	if C.Sheet.Tab == "" {
		C.Sheet.Tab = "Sheet1"
	}
	if C.Quota.FreeChecks == 0 {
		C.Quota.FreeChecks = 3
	}
	if C.Suggest.Max == 0 {
		C.Suggest.Max = 3
	}
	return nil
}

func RequestTimeout() time.Duration { return 15 * time.Second }
