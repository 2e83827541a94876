package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"kadoshrent/internal/i18n"
)

type Config struct {
	Port          string
	DefaultLocale string
	CORSOrigin    string

	LogLevel  logrus.Level
	LogFormat string

	// SendGridAPIKey selects the real mail provider; empty means simulated sends.
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
	SimulatedSendDelay time.Duration

	OperatorEmail    string
	OperatorName     string
	OperatorLocation string
	OperatorPhone    string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	NATSURL     string
	NATSSubject string

	ReservationRateLimit float64
	ReservationRateBurst int
}

func (c Config) MailEnabled() bool { return c.SendGridAPIKey != "" }

func (c Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && c.OperatorPhone != ""
}

func (c Config) NATSEnabled() bool { return c.NATSURL != "" }

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:              get("PORT", "8080"),
		DefaultLocale:     get("DEFAULT_LOCALE", i18n.DefaultLocale),
		CORSOrigin:        get("CORS_ORIGIN", "*"),
		LogFormat:         get("LOG_FORMAT", "text"),
		SendGridAPIKey:    get("SENDGRID_API_KEY", ""),
		SendGridFromEmail: get("SENDGRID_FROM_EMAIL", "noreply@kadoshrentcar.com"),
		SendGridFromName:  get("SENDGRID_FROM_NAME", "Kadosh RentCar"),
		OperatorEmail:     get("OPERATOR_EMAIL", "info.webnovalab@gmail.com"),
		OperatorName:      get("OPERATOR_NAME", "Kadosh RentCar"),
		OperatorLocation:  get("OPERATOR_LOCATION", "Kadosh RentCar, Punta Cana"),
		OperatorPhone:     get("OPERATOR_PHONE", ""),
		TwilioAccountSID:  get("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   get("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:  get("TWILIO_FROM_NUMBER", ""),
		NATSURL:           get("NATS_URL", ""),
		NATSSubject:       get("NATS_SUBJECT", "reservations.requested"),
	}

	if !i18n.IsSupported(cfg.DefaultLocale) {
		return Config{}, fmt.Errorf("DEFAULT_LOCALE %q is not one of %v", cfg.DefaultLocale, i18n.SupportedLocales)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	level, err := logrus.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.SimulatedSendDelay, err = time.ParseDuration(get("SIMULATED_SEND_DELAY", "1s"))
	if err != nil || cfg.SimulatedSendDelay < 0 {
		return Config{}, fmt.Errorf("invalid SIMULATED_SEND_DELAY %q", get("SIMULATED_SEND_DELAY", ""))
	}

	cfg.ReservationRateLimit, err = strconv.ParseFloat(get("RESERVATION_RATE_LIMIT", "0.2"), 64)
	if err != nil || cfg.ReservationRateLimit <= 0 {
		return Config{}, fmt.Errorf("invalid RESERVATION_RATE_LIMIT %q", get("RESERVATION_RATE_LIMIT", ""))
	}
	cfg.ReservationRateBurst, err = strconv.Atoi(get("RESERVATION_RATE_BURST", "3"))
	if err != nil || cfg.ReservationRateBurst <= 0 {
		return Config{}, fmt.Errorf("invalid RESERVATION_RATE_BURST %q", get("RESERVATION_RATE_BURST", ""))
	}

	return cfg, nil
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
