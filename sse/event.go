package sse

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/kbukum/ssehub/validation"
)

// Event types sent by the transport itself.
const (
	// EventTypeConnected is sent when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive is the text of keep-alive comments.
	EventTypeKeepAlive = "keepalive"

	// EventTypeMessage is the default type browsers assign to unnamed events.
	EventTypeMessage = "message"

	// EventTypeError is sent when an error occurs.
	EventTypeError = "error"
)

// Event is one structured server-sent event. Empty fields are omitted on
// the wire, so a zero Retry means no retry field. Use
// Service.ChangeReconnectInterval to push a zero interval.
type Event struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type,omitempty"`
	Data    string `json:"data,omitempty"`
	Retry   uint32 `json:"retry,omitempty"` // milliseconds
	Comment string `json:"comment,omitempty"`
}

// Validate rejects events that would put nothing on the wire but a
// terminator.
func (e Event) Validate() error {
	v := validation.New().Custom(e.Data != "" || e.Comment != "", "data", "data or comment is required")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Encode renders e in the text/event-stream format: comment lines, id,
// event, retry, one data line per line of Data, then a blank line. Line
// breaks are removed from ID and Type.
func Encode(e Event) []byte {
	var b bytes.Buffer
	if e.Comment != "" {
		for _, line := range splitLines(e.Comment) {
			writeField(&b, "", line)
		}
	}
	if e.ID != "" {
		writeField(&b, "id", stripLineBreaks(e.ID))
	}
	if e.Type != "" {
		writeField(&b, "event", stripLineBreaks(e.Type))
	}
	if e.Retry > 0 {
		writeField(&b, "retry", strconv.FormatUint(uint64(e.Retry), 10))
	}
	if e.Data != "" {
		for _, line := range splitLines(e.Data) {
			writeField(&b, "data", line)
		}
	}
	b.WriteByte('\n')
	return b.Bytes()
}

// EncodeData renders a data-only event.
func EncodeData(data []byte) []byte {
	var b bytes.Buffer
	for _, line := range splitLines(string(data)) {
		writeField(&b, "data", line)
	}
	b.WriteByte('\n')
	return b.Bytes()
}

// EncodeRetry renders a frame carrying only a retry field. interval is the
// decimal text produced by EncodeInterval.
func EncodeRetry(interval []byte) []byte {
	var b bytes.Buffer
	writeField(&b, "retry", stripLineBreaks(string(interval)))
	b.WriteByte('\n')
	return b.Bytes()
}

// EncodeComment renders a comment frame, ignored by EventSource clients.
func EncodeComment(text string) []byte {
	var b bytes.Buffer
	for _, line := range splitLines(text) {
		writeField(&b, "", line)
	}
	b.WriteByte('\n')
	return b.Bytes()
}

// writeField writes "name: value\n"; an empty name writes a comment line.
func writeField(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

var lineBreakRemover = strings.NewReplacer("\r", "", "\n", "")

func stripLineBreaks(s string) string {
	return lineBreakRemover.Replace(s)
}
