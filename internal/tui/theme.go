// Package tui contains theme system for the TUI
package tui

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nettracex/netlistx/internal/domain"
)

// DefaultTheme implements the domain.Theme interface
type DefaultTheme struct {
	colors map[string]string
	styles map[string]map[string]interface{}
}

// NewDefaultTheme creates a new default theme
func NewDefaultTheme() *DefaultTheme {
	colors := map[string]string{
		"primary":    "62",  // Blue
		"secondary":  "205", // Pink
		"success":    "46",  // Green
		"warning":    "226", // Yellow
		"error":      "196", // Red
		"info":       "39",  // Light Blue
		"background": "235", // Dark Gray
		"foreground": "252", // Light Gray
		"muted":      "243", // Medium Gray
		"border":     "240", // Border Gray
		"highlight":  "230", // White
	}

	t := &DefaultTheme{colors: colors}
	t.buildStyles()
	return t
}

// buildStyles derives the element styles from the palette
func (t *DefaultTheme) buildStyles() {
	c := t.colors
	t.styles = map[string]map[string]interface{}{
		"header": {
			"background": c["primary"],
			"foreground": c["highlight"],
			"bold":       true,
			"padding":    "0 1",
		},
		"footer": {
			"background": c["border"],
			"foreground": c["foreground"],
			"padding":    "0 1",
		},
		"tab": {
			"foreground":        c["muted"],
			"border":            "rounded",
			"border_foreground": c["border"],
			"padding":           "0 1",
		},
		"tab_active": {
			"foreground":        c["highlight"],
			"bold":              true,
			"border":            "rounded",
			"border_foreground": c["primary"],
			"padding":           "0 1",
		},
		"button": {
			"foreground": c["foreground"],
			"background": c["border"],
			"padding":    "0 2",
		},
		"button_focused": {
			"foreground": c["highlight"],
			"background": c["primary"],
			"bold":       true,
			"padding":    "0 2",
		},
		"form_label": {
			"bold": true,
		},
		"form_input": {
			"border":            "rounded",
			"border_foreground": c["border"],
			"padding":           "0 1",
		},
		"form_input_focused": {
			"border":            "rounded",
			"border_foreground": c["primary"],
			"padding":           "0 1",
		},
		"message_box": {
			"border":            "rounded",
			"border_foreground": c["secondary"],
			"padding":           "1 2",
		},
		"error": {
			"foreground": c["error"],
			"italic":     true,
		},
		"success": {
			"foreground": c["success"],
		},
		"warning": {
			"foreground": c["warning"],
		},
		"info": {
			"foreground": c["info"],
		},
		"muted": {
			"foreground": c["muted"],
			"italic":     true,
		},
	}
}

// GetColor implements domain.Theme
func (t *DefaultTheme) GetColor(element string) string {
	if color, exists := t.colors[element]; exists {
		return color
	}
	return t.colors["foreground"] // Default color
}

// GetStyle implements domain.Theme
func (t *DefaultTheme) GetStyle(element string) map[string]interface{} {
	if style, exists := t.styles[element]; exists {
		return style
	}
	return make(map[string]interface{}) // Empty style
}

// SetColor implements domain.Theme
func (t *DefaultTheme) SetColor(element, color string) {
	t.colors[element] = color
}

// StyleFor returns a lipgloss.Style for a theme element. Themes other than
// DefaultTheme are read through the domain.Theme style maps.
func StyleFor(theme domain.Theme, element string) lipgloss.Style {
	if theme == nil {
		return lipgloss.NewStyle()
	}
	return styleFromMap(theme.GetStyle(element))
}

func styleFromMap(styleMap map[string]interface{}) lipgloss.Style {
	style := lipgloss.NewStyle()

	// Apply style properties
	if bg, ok := styleMap["background"].(string); ok {
		style = style.Background(lipgloss.Color(bg))
	}
	if fg, ok := styleMap["foreground"].(string); ok {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bold, ok := styleMap["bold"].(bool); ok && bold {
		style = style.Bold(true)
	}
	if italic, ok := styleMap["italic"].(bool); ok && italic {
		style = style.Italic(true)
	}
	if padding, ok := styleMap["padding"].(string); ok {
		style = style.Padding(parsePadding(padding)...)
	}
	if border, ok := styleMap["border"].(string); ok {
		switch border {
		case "rounded":
			style = style.Border(lipgloss.RoundedBorder())
		case "normal":
			style = style.Border(lipgloss.NormalBorder())
		case "thick":
			style = style.Border(lipgloss.ThickBorder())
		}
	}
	if borderFg, ok := styleMap["border_foreground"].(string); ok {
		style = style.BorderForeground(lipgloss.Color(borderFg))
	}

	return style
}

// parsePadding reads CSS-like shorthand ("1", "0 1", "1 2 1 2")
func parsePadding(s string) []int {
	var values []int
	for _, f := range strings.Fields(s) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return []int{0}
		}
		values = append(values, n)
	}
	if len(values) == 0 || len(values) > 4 {
		return []int{0}
	}
	return values
}

// DarkTheme creates a dark theme variant
type DarkTheme struct {
	*DefaultTheme
}

// NewDarkTheme creates a new dark theme
func NewDarkTheme() *DarkTheme {
	base := NewDefaultTheme()

	// Override colors for dark theme
	base.colors["background"] = "0"  // Black
	base.colors["foreground"] = "15" // White
	base.colors["muted"] = "8"       // Dark Gray
	base.colors["border"] = "8"      // Dark Gray
	base.buildStyles()

	return &DarkTheme{DefaultTheme: base}
}

// LightTheme creates a light theme variant
type LightTheme struct {
	*DefaultTheme
}

// NewLightTheme creates a new light theme
func NewLightTheme() *LightTheme {
	base := NewDefaultTheme()

	// Override colors for light theme
	base.colors["background"] = "15" // White
	base.colors["foreground"] = "0"  // Black
	base.colors["muted"] = "8"       // Gray
	base.colors["border"] = "7"      // Light Gray
	base.colors["primary"] = "4"     // Blue
	base.colors["highlight"] = "0"
	base.buildStyles()

	return &LightTheme{DefaultTheme: base}
}

// MinimalTheme renders without colors, for terminals where they are unwanted
type MinimalTheme struct {
	*DefaultTheme
}

// NewMinimalTheme creates a colorless theme that keeps borders and emphasis
func NewMinimalTheme() *MinimalTheme {
	base := NewDefaultTheme()
	for _, style := range base.styles {
		delete(style, "foreground")
		delete(style, "background")
		delete(style, "border_foreground")
	}
	return &MinimalTheme{DefaultTheme: base}
}

// ThemeManager manages theme switching and application
type ThemeManager struct {
	themes      map[string]domain.Theme
	currentName string
	current     domain.Theme
}

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	themes := map[string]domain.Theme{
		"default": NewDefaultTheme(),
		"dark":    NewDarkTheme(),
		"light":   NewLightTheme(),
		"minimal": NewMinimalTheme(),
	}

	return &ThemeManager{
		themes:      themes,
		currentName: "default",
		current:     themes["default"],
	}
}

// GetTheme returns the current theme
func (tm *ThemeManager) GetTheme() domain.Theme {
	return tm.current
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) bool {
	if theme, exists := tm.themes[name]; exists {
		tm.currentName = name
		tm.current = theme
		return true
	}
	return false
}

// GetCurrentThemeName returns the name of the current theme
func (tm *ThemeManager) GetCurrentThemeName() string {
	return tm.currentName
}

// GetAvailableThemes returns the sorted theme names
func (tm *ThemeManager) GetAvailableThemes() []string {
	return slices.Sorted(maps.Keys(tm.themes))
}

// ApplyThemeToComponent applies the current theme to a TUI component
func (tm *ThemeManager) ApplyThemeToComponent(component domain.TUIComponent) {
	component.SetTheme(tm.current)
}

// ResponsiveLayout handles responsive layout calculations
type ResponsiveLayout struct {
	width  int
	height int
}

// NewResponsiveLayout creates a new responsive layout manager
func NewResponsiveLayout() *ResponsiveLayout {
	return &ResponsiveLayout{}
}

// SetSize updates the layout dimensions
func (rl *ResponsiveLayout) SetSize(width, height int) {
	rl.width = width
	rl.height = height
}

// GetContentArea returns the available content area dimensions
func (rl *ResponsiveLayout) GetContentArea(headerHeight, footerHeight int) (int, int) {
	contentWidth := rl.width
	contentHeight := rl.height - headerHeight - footerHeight

	if contentHeight < 1 {
		contentHeight = 1
	}
	if contentWidth < 1 {
		contentWidth = 1
	}

	return contentWidth, contentHeight
}

// IsSmallScreen returns true if the screen is considered small
func (rl *ResponsiveLayout) IsSmallScreen() bool {
	return rl.width < 80 || rl.height < 24
}

// GetFormWidth returns the recommended form width
func (rl *ResponsiveLayout) GetFormWidth() int {
	maxWidth := 72
	if rl.width-4 < maxWidth {
		return max(rl.width-4, 10)
	}
	return maxWidth
}
