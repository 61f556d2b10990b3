package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// reserved keys are rendered in the header line rather than as details.
var reserved = map[string]bool{
	"time":       true,
	"level":      true,
	"msg":        true,
	"request_id": true,
	"error":      true,
}

// FormatLine renders one JSON log entry as a readable header plus indented
// detail lines. Lines that are not JSON objects are returned unchanged.
func FormatLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return line
	}

	ts := stringField(entry, "time")
	if parsed, err := time.Parse(TimestampFormat, ts); err == nil {
		ts = parsed.In(time.Local).Format("2006-01-02 15:04:05")
	}
	level := strings.ToUpper(stringField(entry, "level"))
	if level == "" {
		level = "INFO"
	}

	parts := make([]string, 0, 4)
	if ts != "" {
		parts = append(parts, ts)
	}
	parts = append(parts, level)
	if id := stringField(entry, "request_id"); id != "" {
		parts = append(parts, "["+shortID(id)+"]")
	}
	header := strings.Join(parts, " ")
	if msg := stringField(entry, "msg"); msg != "" {
		header += " – " + msg
	}

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if !reserved[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if errText := stringField(entry, "error"); errText != "" {
		keys = append([]string{"error"}, keys...)
	}
	if len(keys) == 0 {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	for _, key := range keys {
		value := strings.TrimSpace(fmt.Sprint(entry[key]))
		if value == "" {
			continue
		}
		b.WriteString("\n    - ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}

// FormatLines applies FormatLine to each entry.
func FormatLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, FormatLine(line))
	}
	return out
}

func stringField(entry map[string]any, key string) string {
	value, ok := entry[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
