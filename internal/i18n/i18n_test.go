package i18n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := LoadBundle()
	require.NoError(t, err)
	return b
}

func TestTranslateResolvesNestedKeys(t *testing.T) {
	l := loadBundle(t).FromLocale("fr")

	assert.Equal(t, "Réserver", l.T("reserve", "common"))
	assert.Equal(t, "Réserver", l.T("reserve", ""))
	assert.Equal(t, "Livraison Gratuite", l.T("features.freeDelivery", "hero"))
	assert.Equal(t, "Berline", l.T("sedan", "categories"))
}

func TestTranslateFallsBackToKey(t *testing.T) {
	b := loadBundle(t)
	for _, locale := range SupportedLocales {
		l := b.FromLocale(locale)
		assert.Equal(t, "doesNotExist", l.T("doesNotExist", "common"), locale)
		assert.Equal(t, "features.nope", l.T("features.nope", "hero"), locale)
		assert.Equal(t, "title", l.T("title", "noSuchSection"), locale)
		// non-leaf node
		assert.Equal(t, "features", l.T("features", "hero"), locale)
		// walking past a leaf
		assert.Equal(t, "title.deeper", l.T("title.deeper", "hero"), locale)
	}
}

func TestSetLocaleIgnoresUnsupported(t *testing.T) {
	l := loadBundle(t).FromLocale("es")

	assert.False(t, l.SetLocale("de"))
	assert.False(t, l.SetLocale(""))
	assert.Equal(t, "es", l.Locale())
	assert.Equal(t, "Reservar", l.T("reserve", "common"))

	assert.True(t, l.SetLocale("en"))
	assert.Equal(t, "en", l.Locale())
	assert.Equal(t, "Reserve", l.T("reserve", "common"))
}

func TestFromLocaleDefaultsUnsupported(t *testing.T) {
	l := loadBundle(t).FromLocale("pt")
	assert.Equal(t, DefaultLocale, l.Locale())
}

func TestDictionariesShareKeys(t *testing.T) {
	b := loadBundle(t)
	en := b.FromLocale("en")
	for _, locale := range []string{"es", "fr"} {
		other := b.FromLocale(locale)
		for _, section := range []string{"common", "categories", "hero", "navigation", "vehicleCatalog", "reservationForm", "footer", "vehicleDetails"} {
			enKeys := en.Section(section)
			otherKeys := other.Section(section)
			require.NotEmpty(t, enKeys, section)
			for k := range enKeys {
				assert.Contains(t, otherKeys, k, "%s missing %s.%s", locale, section, k)
			}
		}
	}
}

func TestSectionFlattens(t *testing.T) {
	l := loadBundle(t).FromLocale("en")
	hero := l.Section("hero")
	assert.Equal(t, "Free Delivery", hero["features.freeDelivery"])
	assert.Equal(t, "Explore Our Fleet", hero["cta"])
	assert.Empty(t, l.Section("missing"))
}

func TestNewBundleRequiresAllLocales(t *testing.T) {
	_, err := NewBundle(map[string]Dictionary{"en": {}})
	assert.Error(t, err)
}

func TestLocalizerConcurrentUse(t *testing.T) {
	l := loadBundle(t).FromLocale("en")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			l.SetLocale(SupportedLocales[i%len(SupportedLocales)])
		}(i)
		go func() {
			defer wg.Done()
			assert.NotEqual(t, "reserve", l.T("reserve", "common"))
		}()
	}
	wg.Wait()
}
