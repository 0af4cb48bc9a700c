// Package reply builds the interaction response envelopes the chat platform expects.
package reply

// Type discriminates interaction responses.
type Type int

const (
	// TypePong acknowledges a handshake and carries no content.
	TypePong Type = 1
	// TypeChannelMessage answers with a visible message.
	TypeChannelMessage Type = 4
)

// DefaultFooter is the footer text on embeds when none is configured.
const DefaultFooter = "Virtual Skies IBM Application"

// Response is the outer envelope returned to the platform.
type Response struct {
	Type Type         `json:"type"`
	Data *MessageData `json:"data,omitempty"`
}

// MessageData is the content of a channel message.
type MessageData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a rich message block.
type Embed struct {
	Title       string     `json:"title"`
	Color       int        `json:"color"`
	Description string     `json:"description"`
	Footer      Footer     `json:"footer"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
}

// Footer is the text line under an embed.
type Footer struct {
	Text string `json:"text"`
}

// Thumbnail is the small image beside an embed.
type Thumbnail struct {
	URL string `json:"url"`
}

// Pong is the handshake acknowledgement.
func Pong() Response {
	return Response{Type: TypePong}
}

// Formatter builds message replies with a fixed embed footer.
type Formatter struct {
	Footer string
}

// NewFormatter returns a Formatter, using DefaultFooter when footer is empty.
func NewFormatter(footer string) Formatter {
	if footer == "" {
		footer = DefaultFooter
	}
	return Formatter{Footer: footer}
}

// Text wraps content in a plain message reply.
func (f Formatter) Text(content string) Response {
	return Response{
		Type: TypeChannelMessage,
		Data: &MessageData{Content: content},
	}
}

// Embed wraps a single embed in a message reply. An empty thumbnail is omitted.
func (f Formatter) Embed(title string, color int, description, thumbnail string) Response {
	embed := Embed{
		Title:       title,
		Color:       color,
		Description: description,
		Footer:      Footer{Text: f.Footer},
	}
	if thumbnail != "" {
		embed.Thumbnail = &Thumbnail{URL: thumbnail}
	}
	return Response{
		Type: TypeChannelMessage,
		Data: &MessageData{Embeds: []Embed{embed}},
	}
}
