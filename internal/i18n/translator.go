package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogs = []string{"active.en.toml", "active.ru.toml"}

// Translator renders error messages in the language a client asks for.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator loads the embedded catalogs. An unparsable defaultLocale
// falls back to English.
func NewTranslator(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range catalogs {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, errors.Wrapf(err, "load %s", file)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}, nil
}

// Translate resolves key against an Accept-Language value. The default
// locale is tried next and fallback is returned when neither knows the key.
func (t *Translator) Translate(acceptLanguage, key, fallback string) string {
	if t == nil || key == "" {
		return fallback
	}

	languages := make([]string, 0, 2)
	if acceptLanguage != "" {
		languages = append(languages, acceptLanguage)
	}
	languages = append(languages, t.defaultLanguage.String())

	msg, err := i18n.NewLocalizer(t.bundle, languages...).Localize(&i18n.LocalizeConfig{
		MessageID: key,
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
