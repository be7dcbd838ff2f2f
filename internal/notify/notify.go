// Package notify delivers user-facing warnings to the terminal and, when
// enabled, to the desktop notification system.
package notify

// OutputType represents where a warning is shown
type OutputType string

const (
	// OutputTerminal prints the warning to stderr only
	OutputTerminal OutputType = "terminal"
	// OutputVisual sends a desktop notification, falling back to the terminal
	OutputVisual OutputType = "visual"
	// OutputBoth prints to stderr and sends a desktop notification
	OutputBoth OutputType = "both"
)

// OutputTypes lists the accepted output types.
var OutputTypes = []OutputType{OutputTerminal, OutputVisual, OutputBoth}

// ValidOutputType checks if the given string is a valid output type
func ValidOutputType(s string) bool {
	switch OutputType(s) {
	case OutputTerminal, OutputVisual, OutputBoth:
		return true
	default:
		return false
	}
}

// NotificationConfig holds user preferences for notification behavior.
// Configuration is loaded from the config hierarchy (env > project > user > defaults).
type NotificationConfig struct {
	// Enabled is the master switch for desktop notifications (default: false, opt-in)
	Enabled bool `koanf:"enabled" yaml:"enabled"`

	// Type selects terminal, visual, or both (default: terminal)
	Type OutputType `koanf:"type" yaml:"type" validate:"oneof=terminal visual both"`
}

// DefaultConfig returns a NotificationConfig with default values
func DefaultConfig() NotificationConfig {
	return NotificationConfig{
		Enabled: false,
		Type:    OutputTerminal,
	}
}

// Notification represents a single desktop notification
type Notification struct {
	Title   string
	Message string
	Link    string
}

// Body returns the message with the link appended on its own line.
func (n Notification) Body() string {
	if n.Link == "" {
		return n.Message
	}
	return n.Message + "\n" + n.Link
}
