package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// OptionExtractor simplifies extraction of options for Discord commands
type OptionExtractor struct {
	options []*discordgo.ApplicationCommandInteractionDataOption
}

// NewOptionExtractor creates a new option extractor
func NewOptionExtractor(options []*discordgo.ApplicationCommandInteractionDataOption) *OptionExtractor {
	return &OptionExtractor{options: options}
}

func (e *OptionExtractor) find(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range e.options {
		if opt != nil && opt.Name == name {
			return opt
		}
	}
	return nil
}

// String extracts a string option by name
func (e *OptionExtractor) String(name string) string {
	opt := e.find(name)
	if opt == nil {
		return ""
	}
	switch v := opt.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// StringRequired extracts a required string option
func (e *OptionExtractor) StringRequired(name string) (string, error) {
	value := e.String(name)
	if value == "" {
		return "", NewValidationError(name, fmt.Sprintf("Option '%s' is required", name))
	}
	return value, nil
}

// Int extracts an integer option by name. Discord sends numbers as JSON
// floats; strings holding an integer are accepted too.
func (e *OptionExtractor) Int(name string) (int64, bool) {
	opt := e.find(name)
	if opt == nil {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// IntOr extracts an integer option, returning def when it is absent or malformed
func (e *OptionExtractor) IntOr(name string, def int64) int64 {
	if n, ok := e.Int(name); ok {
		return n
	}
	return def
}

// IntRequired extracts a required integer option
func (e *OptionExtractor) IntRequired(name string) (int64, error) {
	n, ok := e.Int(name)
	if !ok {
		return 0, NewValidationError(name, fmt.Sprintf("Option '%s' is required", name))
	}
	return n, nil
}

// Bool extracts a boolean option by name
func (e *OptionExtractor) Bool(name string) bool {
	opt := e.find(name)
	if opt == nil {
		return false
	}
	b, _ := opt.Value.(bool)
	return b
}

// HasOption checks whether an option exists
func (e *OptionExtractor) HasOption(name string) bool {
	return e.find(name) != nil
}

// CreateChoicesFromStrings creates autocomplete choices from a slice of strings
func CreateChoicesFromStrings(items []string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(items))
	for i, item := range items {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  item,
			Value: item,
		}
	}
	return choices
}

// TruncateContent shortens s to at most maxLen runes, marking the cut with "…".
func TruncateContent(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

// CompareCommands compares two commands to check if they are semantically equal
func CompareCommands(a, b *discordgo.ApplicationCommand) bool {
	ca := struct {
		Name        string                                `json:"name"`
		Description string                                `json:"description"`
		Options     []*discordgo.ApplicationCommandOption `json:"options"`
	}{a.Name, a.Description, a.Options}
	cb := struct {
		Name        string                                `json:"name"`
		Description string                                `json:"description"`
		Options     []*discordgo.ApplicationCommandOption `json:"options"`
	}{b.Name, b.Description, b.Options}
	ba, _ := json.Marshal(ca)
	bb, _ := json.Marshal(cb)
	return string(ba) == string(bb)
}
