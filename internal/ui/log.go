package ui

import "fmt"

// MessageLog keeps the most recent lines shown under the map.
type MessageLog struct {
	lines []string
	limit int
}

// NewMessageLog creates a log that keeps up to limit lines.
func NewMessageLog(limit int) *MessageLog {
	return &MessageLog{limit: limit}
}

// Add appends a formatted line, dropping the oldest past the limit.
func (l *MessageLog) Add(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if over := len(l.lines) - l.limit; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Last returns up to n of the newest lines, oldest first.
func (l *MessageLog) Last(n int) []string {
	if n >= len(l.lines) {
		return l.lines
	}
	return l.lines[len(l.lines)-n:]
}
