package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_Translate(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	tests := []struct {
		name           string
		acceptLanguage string
		key            string
		expected       string
	}{
		{name: "default locale", acceptLanguage: "", key: "team_full", expected: "Team is full"},
		{name: "russian", acceptLanguage: "ru", key: "team_full", expected: "Команда заполнена"},
		{name: "weighted header", acceptLanguage: "ru-RU,ru;q=0.9,en;q=0.8", key: "event_not_found", expected: "Мероприятие не найдено"},
		{name: "unsupported language", acceptLanguage: "de", key: "event_not_found", expected: "Event not found"},
		{name: "unknown key", acceptLanguage: "ru", key: "no_such_key", expected: "fallback"},
		{name: "empty key", acceptLanguage: "ru", key: "", expected: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.Translate(tt.acceptLanguage, tt.key, "fallback"))
		})
	}
}

func TestNewTranslator_BadDefaultLocale(t *testing.T) {
	tr, err := NewTranslator("not a locale!")
	require.NoError(t, err)
	assert.Equal(t, "Team is full", tr.Translate("", "team_full", "fallback"))
}

func TestTranslator_Nil(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "fallback", tr.Translate("ru", "team_full", "fallback"))
}
