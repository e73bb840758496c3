package utils

import (
	"fmt"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

// InitI18NBundle loads every yaml message file under dir
func InitI18NBundle(dir string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no message file in %s", dir)
	}

	for _, f := range files {
		if _, err := b.LoadMessageFile(f); err != nil {
			return fmt.Errorf("load message file %s: %w", f, err)
		}
	}

	bundle = b
	return nil
}

// NewLocalizer returns nil when no bundle is loaded. Callers fall back to
// English messages in that case.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, langs...)
}
