package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/protesilaos/denote-journal/internal/filename"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/storage"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Collection CollectionConfig  `yaml:"collection"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Collection.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// Title styles accepted by TitleConfig.Style, plus "prompt".
const TitleStylePrompt = "prompt"

// TitleConfig describes how new entry titles are derived. Layout, when
// set, is a Go time layout used verbatim and takes precedence over Style.
type TitleConfig struct {
	Style  string `yaml:"style"`
	Layout string `yaml:"layout"`
}

// Validate validates the title configuration.
func (c *TitleConfig) Validate() error {
	if c.Layout != "" {
		return nil
	}
	if c.Style == "" {
		c.Style = string(journal.StyleDay)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Style, validation.In(
			string(journal.StyleDay),
			string(journal.StyleDayDate),
			string(journal.StyleDayDate24h),
			string(journal.StyleDayDate12h),
			TitleStylePrompt,
		)),
	)
}

// Format converts the configuration into the engine's title format.
// Validate must have been called first.
func (c *TitleConfig) Format() (journal.TitleFormat, error) {
	switch {
	case c.Layout != "":
		return journal.CustomTitle(c.Layout), nil
	case c.Style == TitleStylePrompt:
		return journal.PromptTitle(), nil
	default:
		return journal.PresetTitle(journal.TitleStyle(c.Style))
	}
}

// CollectionConfig holds the note collection layout: where entries live,
// how their file names are composed, and which keywords mark an entry as
// belonging to the journal.
type CollectionConfig struct {
	Path         string      `yaml:"path"`
	JournalDir   string      `yaml:"journal_dir"`
	Extension    string      `yaml:"extension"`
	Order        []string    `yaml:"component_order"`
	Keywords     []string    `yaml:"keywords"`
	Title        TitleConfig `yaml:"title"`
	TemplatesDir string      `yaml:"templates_dir"`
}

// Validate validates the collection configuration.
func (c *CollectionConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Extension, validation.Required),
		validation.Field(&c.Keywords, validation.Required, validation.Each(validation.Required)),
	); err != nil {
		return err
	}
	if !storage.IsNoteExtension(c.Extension) {
		return fmt.Errorf("collection: unsupported extension %q", c.Extension)
	}
	if _, err := filename.ParseOrder(c.Order); err != nil {
		return err
	}
	return c.Title.Validate()
}

// ComponentOrder returns the parsed component order. Validate must have
// been called first.
func (c *CollectionConfig) ComponentOrder() []filename.Component {
	order, err := filename.ParseOrder(c.Order)
	if err != nil {
		return filename.DefaultOrder()
	}
	return order
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Collection: CollectionConfig{
			Path:       "./notes",
			JournalDir: "journal",
			Extension:  ".org",
			Keywords:   []string{"journal"},
			Title:      TitleConfig{Style: string(journal.StyleDay)},
		},
		SQLite: SQLiteConfig{
			Path: "./journal.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
