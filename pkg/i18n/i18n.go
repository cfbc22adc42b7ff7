package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// DefaultLanguage is used when the caller sends no usable Accept-Language.
var DefaultLanguage = language.BrazilianPortuguese

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init builds the bundle with the embedded locales.
func Init() {
	b := goi18n.NewBundle(DefaultLanguage)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, name := range []string{"locales/active.pt-BR.json", "locales/active.en.json"} {
		if _, err := b.LoadMessageFileFS(locales, name); err != nil {
			panic(err)
		}
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
}

// Load adds an external message file on top of the embedded ones.
func Load(path string) error {
	b := current()
	mu.Lock()
	defer mu.Unlock()
	_, err := b.LoadMessageFile(path)
	return err
}

// T localizes messageID for the given Accept-Language values. Unknown IDs
// come back unchanged.
func T(messageID string, data map[string]interface{}, langs ...string) string {
	b := current()
	mu.RLock()
	defer mu.RUnlock()

	msg, err := goi18n.NewLocalizer(b, langs...).Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

func current() *goi18n.Bundle {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b != nil {
		return b
	}
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return bundle
}
