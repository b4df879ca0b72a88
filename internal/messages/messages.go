// Package messages renders the parser's closed error-kind set to
// human-readable text, defaulting to English but structured so a caller
// could load additional locales the same way go-i18n loads any other
// translation file.
package messages

import (
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/i18n"
)

// Catalog translation IDs, one per closed error kind (see parse.Kind).
const (
	UnexpectedEndOfInput      = "error_unexpected_end_of_input"
	Mismatch                  = "error_mismatch"
	EmptyRepetition           = "error_empty_repetition"
	NegativeLookaheadViolated = "error_negative_lookahead_violation"
)

// defaultCatalog is the built-in English translation file, in the same
// format go-i18n expects from disk.
const defaultCatalog = `[
	{"id": "error_unexpected_end_of_input", "translation": "unexpected end of input{{if .Detail}}: {{.Detail}}{{end}}"},
	{"id": "error_mismatch", "translation": "mismatch{{if .Detail}}: {{.Detail}}{{end}}"},
	{"id": "error_empty_repetition", "translation": "one-or-more matched zero times{{if .Detail}}: {{.Detail}}{{end}}"},
	{"id": "error_negative_lookahead_violation", "translation": "negative lookahead violated{{if .Detail}}: {{.Detail}}{{end}}"}
]`

var (
	once  sync.Once
	tfunc i18n.TranslateFunc
)

func init() {
	if err := i18n.ParseTranslationFileBytes("en-us.all.json", []byte(defaultCatalog)); err != nil {
		panic(fmt.Sprintf("messages: invalid default catalog: %v", err))
	}
}

func translator() i18n.TranslateFunc {
	once.Do(func() {
		t, err := i18n.Tfunc("en-US")
		if err != nil {
			// Fall back to echoing the translation ID; parsing must never
			// fail because a message catalog failed to load.
			t = func(translationID string, _ ...interface{}) string { return translationID }
		}
		tfunc = t
	})
	return tfunc
}

// Format renders translationID with an optional detail string and the
// byte offset the error occurred at.
func Format(translationID string, offset int, detail string) string {
	msg := translator()(translationID, map[string]interface{}{"Detail": detail})
	return fmt.Sprintf("offset %d: %s", offset, msg)
}

// LoadLocale registers an additional go-i18n translation file (JSON, YAML
// or TOML, per go-i18n's own filename-extension dispatch) so callers can
// override the built-in English messages.
func LoadLocale(filename string, data []byte) error {
	return i18n.ParseTranslationFileBytes(filename, data)
}
