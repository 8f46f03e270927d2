package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestCollectionConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if got := cfg.Collection.Extension; got != ".org" {
		t.Errorf("extension = %q, want .org", got)
	}
	if len(cfg.Collection.Keywords) != 1 || cfg.Collection.Keywords[0] != "journal" {
		t.Errorf("keywords = %v, want [journal]", cfg.Collection.Keywords)
	}
}

func TestCollectionConfig_EmptyKeywordsRejected(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Collection.Keywords = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty keyword set should fail validation")
	}
}

func TestCollectionConfig_EmptyKeywordMemberRejected(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Collection.Keywords = []string{"journal", ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty keyword member should fail validation")
	}
}

func TestCollectionConfig_UnsupportedExtension(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Collection.Extension = ".pdf"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("unsupported extension should fail")
	}
	if !strings.Contains(err.Error(), "unsupported extension") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCollectionConfig_BadComponentOrder(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Collection.Order = []string{"title", "keywords"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("order without identifier should fail")
	}

	cfg.Collection.Order = []string{"identifier", "frobnicate"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown component should fail")
	}
}

func TestTitleConfig_DefaultsToDayStyle(t *testing.T) {
	c := TitleConfig{}
	if err := c.Validate(); err != nil {
		t.Fatalf("empty title config should validate: %v", err)
	}
	f, err := c.Format()
	if err != nil {
		t.Fatal(err)
	}
	if f.IsPrompt() {
		t.Error("default title format should not prompt")
	}
}

func TestTitleConfig_Prompt(t *testing.T) {
	c := TitleConfig{Style: "prompt"}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	f, err := c.Format()
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsPrompt() {
		t.Error("prompt style should produce a prompting format")
	}
}

func TestTitleConfig_LayoutWinsOverStyle(t *testing.T) {
	c := TitleConfig{Style: "day", Layout: "2006/01/02"}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	f, err := c.Format()
	if err != nil {
		t.Fatal(err)
	}
	if f.IsPrompt() {
		t.Error("layout format should not prompt")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
