// Package styles defines the visual styling for dotlink's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. The defaults are embedded; a user theme file can be
// loaded over them at runtime.
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var defaultStyles []byte

// registry maps semantic names to lipgloss styles
var registry map[string]lipgloss.Style

// colors holds the adaptive colors loaded from YAML
var colors map[string]lipgloss.AdaptiveColor

func init() {
	if err := loadFromBytes(defaultStyles); err != nil {
		// Embedded defaults are validated by tests; an empty registry
		// degrades to unstyled output.
		registry = map[string]lipgloss.Style{}
	}
}

// LoadStyles loads a user theme file over the defaults.
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file: %w", err)
	}
	return loadFromBytes(data)
}

func loadFromBytes(data []byte) error {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	colors = make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry = make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		registry[name] = buildStyle(def)
	}
	return nil
}

func buildStyle(def StyleDef) lipgloss.Style {
	s := lipgloss.NewStyle()
	if def.Bold {
		s = s.Bold(true)
	}
	if def.Italic {
		s = s.Italic(true)
	}
	if def.Underline {
		s = s.Underline(true)
	}
	if def.Foreground != "" {
		s = s.Foreground(resolveColor(def.Foreground))
	}
	if def.Background != "" {
		s = s.Background(resolveColor(def.Background))
	}
	if def.Width > 0 {
		s = s.Width(def.Width)
	}
	return s
}

// resolveColor resolves a named color from the colors section, falling back
// to treating the value as a literal color.
func resolveColor(name string) lipgloss.TerminalColor {
	if c, ok := colors[name]; ok {
		return c
	}
	return lipgloss.Color(name)
}

// GetStyle returns the style registered under name, or an empty style when
// the terminal has no color support or the name is unknown.
func GetStyle(name string) lipgloss.Style {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return lipgloss.NewStyle()
	}
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
