package interaction

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned for payloads that are not a usable interaction.
var ErrMalformed = errors.New("malformed interaction")

// Parse decodes a verified request body.
//
// A handshake is recognized from its type alone so that no other field can
// turn it into an error. Everything else is schema-checked before decoding.
func Parse(body []byte) (*Interaction, error) {
	var head struct {
		ID   json.RawMessage `json:"id"`
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var typ int
	if err := json.Unmarshal(head.Type, &typ); err == nil && typ == typePing {
		var id string
		_ = json.Unmarshal(head.ID, &id)
		return &Interaction{ID: id, Type: typ, Kind: KindHandshake}, nil
	}

	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var wire wireInteraction
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	in := &Interaction{ID: wire.ID, Type: wire.Type, Kind: KindOther}
	if wire.Type != typeApplicationCommand {
		return in, nil
	}

	in.Kind = KindCommand
	in.Command = wire.Data.Name
	seen := make(map[string]bool, len(wire.Data.Options))
	for _, o := range wire.Data.Options {
		if seen[o.Name] {
			return nil, fmt.Errorf("%w: duplicate option %q", ErrMalformed, o.Name)
		}
		seen[o.Name] = true
		in.Options = append(in.Options, Option{Name: o.Name, Value: o.Value})
	}
	return in, nil
}
