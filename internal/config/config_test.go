package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.SimulatedSendDelay)
	assert.Equal(t, "info.webnovalab@gmail.com", cfg.OperatorEmail)
	assert.False(t, cfg.MailEnabled())
	assert.False(t, cfg.SMSEnabled())
	assert.False(t, cfg.NATSEnabled())
}

func TestMailCredentialsEnableProvider(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"SENDGRID_API_KEY": "SG.key"}))
	require.NoError(t, err)
	assert.True(t, cfg.MailEnabled())
}

func TestSMSNeedsAllCredentials(t *testing.T) {
	env := map[string]string{
		"TWILIO_ACCOUNT_SID": "AC123",
		"TWILIO_AUTH_TOKEN":  "token",
		"TWILIO_FROM_NUMBER": "+15550000000",
	}
	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.False(t, cfg.SMSEnabled())

	env["OPERATOR_PHONE"] = "+18090000000"
	cfg, err = FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.True(t, cfg.SMSEnabled())
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"locale":     {"DEFAULT_LOCALE": "de"},
		"log level":  {"LOG_LEVEL": "loud"},
		"log format": {"LOG_FORMAT": "xml"},
		"delay":      {"SIMULATED_SEND_DELAY": "soon"},
		"rate":       {"RESERVATION_RATE_LIMIT": "-1"},
		"burst":      {"RESERVATION_RATE_BURST": "zero"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"LOG_FORMAT": "json", "LOG_LEVEL": "debug"}))
	require.NoError(t, err)
	log := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}
