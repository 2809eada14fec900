package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskmind/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()

	enFile := filepath.Join(dir, "en.toml")
	content := []byte(`
taskNotFound = "Task not found"
hello = "Hello english"
`)
	if err := os.WriteFile(enFile, content, 0644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	localizer := i18n.NewLocalizer(translator.Translator, translator.LanguageEn)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: "hello",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	expected := "Hello english"
	if msg != expected {
		t.Errorf("expected %q, got %q", expected, msg)
	}
}

func TestInitTranslator_EmbeddedCatalog(t *testing.T) {
	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	msg, err := translator.Localize("taskNotFound", translator.LanguageFr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Tâche introuvable" {
		t.Errorf("expected french message, got %q", msg)
	}

	msg, err = translator.Localize("taskCreated", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Task created successfully" {
		t.Errorf("expected english fallback, got %q", msg)
	}
}

func TestLocalize_UnknownKeyReturnsKey(t *testing.T) {
	translator.InitTranslator(translator.Config{})

	msg, err := translator.Localize("doesNotExist", translator.LanguageEn)
	if err == nil {
		t.Errorf("expected an error for a missing message")
	}
	if msg != "doesNotExist" {
		t.Errorf("expected key fallback, got %q", msg)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
}

func TestTranslatorConstants(t *testing.T) {
	if translator.LanguageEn != "en" {
		t.Errorf("expected LanguageEn to be 'en'")
	}
	if translator.LanguageFr != "fr" {
		t.Errorf("expected LanguageFr to be 'fr'")
	}
}
