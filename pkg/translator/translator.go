package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embeddedTranslations embed.FS

type Config struct {
	// TranslationFolder overrides the embedded catalog when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if cfg.TranslationFolder == "" {
		loadFS(embeddedTranslations, "translation")
		return
	}

	if _, err := os.Stat(cfg.TranslationFolder); err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}
	loadFS(os.DirFS(cfg.TranslationFolder), ".")
}

func loadFS(fsys fs.FS, dir string) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		name := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			zap.L().Warn("failed to read translation file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		// The language tag is taken from the file name, e.g. "fr.toml".
		if _, err := Translator.ParseMessageFileBytes(content, entry.Name()); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}

// Localize returns the message for key in lang, falling back to English and
// then to the key itself.
func Localize(key string, lang string) (string, error) {
	if Translator == nil {
		return key, nil
	}
	localizer := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return key, err
	}
	return msg, nil
}
