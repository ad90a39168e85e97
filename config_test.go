package console_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	console "github.com/goliatone/go-console"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := console.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.GetBaseURL())
	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, 30*time.Second, cfg.GetWatchInterval())
	assert.Equal(t, console.LanguageEnglish, cfg.GetDefaultLanguage())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CONSOLE_API_URL", "https://console.example.com/api")
	t.Setenv("CONSOLE_WATCH_INTERVAL", "5s")
	t.Setenv("CONSOLE_LANGUAGE", "ar")

	cfg, err := console.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://console.example.com/api", cfg.GetBaseURL())
	assert.Equal(t, 5*time.Second, cfg.GetWatchInterval())
	assert.Equal(t, console.LanguageArabic, cfg.GetDefaultLanguage())
}

func TestLoadConfigUnknownLanguageFallsBackToEnglish(t *testing.T) {
	t.Setenv("CONSOLE_LANGUAGE", "xx")

	cfg, err := console.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, console.LanguageEnglish, cfg.GetDefaultLanguage())
}
