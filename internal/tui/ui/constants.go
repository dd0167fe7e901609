// Package ui provides shared styles, key bindings, and messages for TUI components.
package ui

// Default component dimensions.
const (
	// DefaultWidthSmall is the default width for small components (search, panels).
	DefaultWidthSmall = 40

	// DefaultWidthMedium is the default width for medium components (lists, viewports).
	DefaultWidthMedium = 60

	// DefaultWidthLarge is the default width for full-screen components.
	DefaultWidthLarge = 80

	// DefaultHeightSmall is the default height for small components (explain panels).
	DefaultHeightSmall = 10

	// DefaultHeightMedium is the default height for medium components (viewports).
	DefaultHeightMedium = 20

	// DefaultHeightLarge is the default height for full-screen components.
	DefaultHeightLarge = 24

	// DefaultProgressBarWidth is the default width for progress bars.
	DefaultProgressBarWidth = 40

	// DefaultSearchCharLimit is the default character limit for search inputs.
	DefaultSearchCharLimit = 100
)
