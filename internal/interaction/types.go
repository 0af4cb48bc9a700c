// Package interaction decodes verified interaction callbacks.
package interaction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies an inbound interaction.
type Kind int

const (
	KindOther Kind = iota
	KindHandshake
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindHandshake:
		return "handshake"
	case KindCommand:
		return "command"
	default:
		return "other"
	}
}

// Platform interaction type codes.
const (
	typePing               = 1
	typeApplicationCommand = 2
)

// Interaction is a parsed callback. Command and Options are set only for KindCommand.
type Interaction struct {
	ID      string
	Type    int
	Kind    Kind
	Command string
	Options []Option
}

// Option is one named command argument, in the order the caller supplied it.
type Option struct {
	Name  string
	Value json.RawMessage
}

// String returns the option value as text. JSON strings are unquoted; other
// values are returned in their JSON form.
func (o Option) String() string {
	var s string
	if err := json.Unmarshal(o.Value, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(o.Value))
}

// Option returns the option called name.
func (i *Interaction) Option(name string) (Option, bool) {
	for _, o := range i.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func (i *Interaction) String() string {
	if i.Kind == KindCommand {
		return fmt.Sprintf("%s /%s", i.Kind, i.Command)
	}
	return i.Kind.String()
}

type wireInteraction struct {
	ID   string `json:"id"`
	Type int    `json:"type"`
	Data *struct {
		Name    string `json:"name"`
		Options []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"options"`
	} `json:"data"`
}
