package statement

import "fmt"

// EventType discriminates progress stream events.
type EventType string

const (
	// EventProgress reports per-page advancement, including page-level
	// extraction failures.
	EventProgress EventType = "progress"
	// EventDone terminates a successful stream.
	EventDone EventType = "done"
	// EventError terminates the stream on a job-fatal condition.
	EventError EventType = "error"
)

// Event is one frame of the progress stream. The stream ends after a
// done or error event.
type Event struct {
	Type            EventType `json:"event"`
	Page            int       `json:"page,omitempty"`
	Total           int       `json:"total,omitempty"`
	Message         string    `json:"message"`
	OutputReference string    `json:"output_reference,omitempty"`
	RecordCount     int       `json:"record_count,omitempty"`
}

// Progress builds a progress event.
func Progress(page, total int, message string) Event {
	return Event{Type: EventProgress, Page: page, Total: total, Message: message}
}

// Done builds the terminal success event.
func Done(message, outputReference string, recordCount int) Event {
	return Event{
		Type:            EventDone,
		Message:         message,
		OutputReference: outputReference,
		RecordCount:     recordCount,
	}
}

// Errorf builds the terminal failure event.
func Errorf(format string, args ...any) Event {
	return Event{Type: EventError, Message: fmt.Sprintf(format, args...)}
}
