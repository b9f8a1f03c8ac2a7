package ui

import "fyne.io/fyne/v2"

// absent is never written by the calculator, so it marks a missing key.
const absent = "\x00"

// PreferencesStorage keeps key-value pairs in the application preferences,
// which fyne persists per application ID.
type PreferencesStorage struct {
	prefs fyne.Preferences
}

// NewPreferencesStorage wraps prefs.
func NewPreferencesStorage(prefs fyne.Preferences) *PreferencesStorage {
	return &PreferencesStorage{prefs: prefs}
}

func (p *PreferencesStorage) Get(key string) (string, bool) {
	v := p.prefs.StringWithFallback(key, absent)
	if v == absent {
		return "", false
	}
	return v, true
}

func (p *PreferencesStorage) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}
