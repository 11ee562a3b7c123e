// Package reports carries the messages produced while loading agents and
// validating configuration.
package reports

import (
	"fmt"
	"log/slog"
)

// Level is the severity of a report item.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Severity tells whether an item blocks the operation and whether --force
// may override it.
type Severity struct {
	Level     Level
	Forceable bool
}

// Error returns a non-forceable error severity.
func Error() Severity { return Severity{Level: LevelError} }

// Warning returns a warning severity.
func Warning() Severity { return Severity{Level: LevelWarning} }

// Info returns an informational severity.
func Info() Severity { return Severity{Level: LevelInfo} }

// SeverityFromForce returns a forceable error, or a warning once the user has
// forced the operation.
func SeverityFromForce(force bool) Severity {
	if force {
		return Warning()
	}
	return Severity{Level: LevelError, Forceable: true}
}

// Report codes.
const (
	CodeInvalidOptions                       = "INVALID_OPTIONS"
	CodeRequiredOptionsAreMissing            = "REQUIRED_OPTIONS_ARE_MISSING"
	CodeRequiredOptionOfAlternativesMissing  = "REQUIRED_OPTION_OF_ALTERNATIVES_IS_MISSING"
	CodeDeprecatedOption                     = "DEPRECATED_OPTION"
	CodeUnableToGetAgentMetadata             = "UNABLE_TO_GET_AGENT_METADATA"
	CodeAgentImplementsUnsupportedOcfVersion = "AGENT_IMPLEMENTS_UNSUPPORTED_OCF_VERSION"
	CodeInvalidResourceAgentName             = "INVALID_RESOURCE_AGENT_NAME"
	CodeAgentNameGuessFoundNone              = "AGENT_NAME_GUESS_FOUND_NONE"
	CodeAgentNameGuessFoundMoreThanOne       = "AGENT_NAME_GUESS_FOUND_MORE_THAN_ONE"
	CodeAgentNameGuessed                     = "AGENT_NAME_GUESSED"
)

// Item is a single report.
type Item struct {
	Severity Severity
	Code     string
	Message  string
}

func (i Item) String() string {
	prefix := i.Severity.Level.String()
	if i.Severity.Forceable {
		prefix += " (use --force to override)"
	}
	return fmt.Sprintf("%s: %s", prefix, i.Message)
}

// Processor receives report items.
type Processor interface {
	Report(items ...Item)
}

// Collector stores report items and logs them as they arrive.
type Collector struct {
	logger *slog.Logger
	items  []Item
}

// NewCollector creates a Collector logging to logger. A nil logger uses the
// default slog logger.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Report implements Processor.
func (c *Collector) Report(items ...Item) {
	for _, item := range items {
		c.items = append(c.items, item)
		switch item.Severity.Level {
		case LevelError:
			c.logger.Debug(item.Message, "code", item.Code, "forceable", item.Severity.Forceable)
		case LevelWarning:
			c.logger.Warn(item.Message, "code", item.Code)
		default:
			c.logger.Info(item.Message, "code", item.Code)
		}
	}
}

// Items returns everything reported so far.
func (c *Collector) Items() []Item {
	return append([]Item{}, c.items...)
}

// HasErrors reports whether any error was reported.
func (c *Collector) HasErrors() bool {
	return HasErrors(c.items)
}

// HasErrors reports whether items contain an error.
func HasErrors(items []Item) bool {
	for _, item := range items {
		if item.Severity.Level == LevelError {
			return true
		}
	}
	return false
}
