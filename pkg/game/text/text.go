// Package text holds the message catalogue for the CLI and the renderers.
// Keys are upper-case identifiers; an unknown key is returned unchanged.
package text

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is the catalogue used when none is selected
const DefaultLanguage = "en_GB"

//go:embed locales/*/default.po
var locales embed.FS

var (
	mu      sync.RWMutex
	current map[string]string
)

// Languages lists the embedded catalogues
func Languages() []string {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// Load makes lang the active catalogue
func Load(lang string) error {
	if lang == "" {
		lang = DefaultLanguage
	}
	buf, err := locales.ReadFile("locales/" + lang + "/default.po")
	if err != nil {
		return fmt.Errorf("text: no catalogue for %q (have %s)", lang, strings.Join(Languages(), ", "))
	}
	po := gotext.NewPo()
	po.Parse(buf)

	translations := po.GetDomain().GetTranslations()
	catalogue := make(map[string]string, len(translations))
	for id, tr := range translations {
		catalogue[id] = tr.Get()
	}

	mu.Lock()
	current = catalogue
	mu.Unlock()
	return nil
}

// Lookup returns the translation of key without formatting it
func Lookup(key string) string {
	mu.RLock()
	catalogue := current
	mu.RUnlock()

	if catalogue == nil {
		if err := Load(DefaultLanguage); err != nil {
			return key
		}
		mu.RLock()
		catalogue = current
		mu.RUnlock()
	}
	if msg, ok := catalogue[key]; ok {
		return msg
	}
	return key
}

// Get returns the translation of key formatted with vars
func Get(key string, vars ...any) string {
	msg := Lookup(key)
	if len(vars) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, vars...)
}
