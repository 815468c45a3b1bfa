package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Entry is one line of the application log.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
	// Raw holds the original line when it was not JSON.
	Raw string
}

// Keys written by the zap encoder that are lifted into Entry fields.
var reservedKeys = map[string]struct{}{
	"time":   {},
	"ts":     {},
	"level":  {},
	"msg":    {},
	"caller": {},
}

// Read returns at most maxLines entries from the end of the log at path.
// A maxLines of zero or less reads the whole file.
func Read(path string, maxLines int) ([]Entry, error) {
	lines, err := readLines(path, maxLines)
	if err != nil || len(lines) == 0 {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseLine(line))
	}
	return entries, nil
}

func readLines(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// ParseLine decodes a zap JSON line. Anything else becomes a raw entry.
func ParseLine(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Message: trimmed, Raw: line}
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Entry{Message: trimmed, Raw: line}
	}

	entry := Entry{
		Level:   strings.ToUpper(stringValue(raw["level"])),
		Message: stringValue(raw["msg"]),
	}
	if ts, ok := raw["time"]; ok {
		entry.Time = parseTime(ts)
	} else if ts, ok := raw["ts"]; ok {
		entry.Time = parseTime(ts)
	}
	for k, v := range raw {
		if _, skip := reservedKeys[k]; skip {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[k] = stringValue(v)
	}
	return entry
}

// Format renders the entry as a header line plus indented field lines.
func (e Entry) Format() string {
	if e.Raw != "" {
		return e.Raw
	}
	parts := make([]string, 0, 3)
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := e.Level
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	header := strings.Join(parts, " ")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		header += " – " + msg
	}
	if len(e.Fields) == 0 {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	for _, k := range e.FieldKeys() {
		v := strings.TrimSpace(e.Fields[k])
		if v == "" {
			continue
		}
		b.WriteString("\n    - ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
	}
	return b.String()
}

// FieldKeys returns the field names in a stable order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case float64:
		sec := int64(t)
		nsec := int64((t - float64(sec)) * 1e9)
		return time.Unix(sec, nsec)
	}
	return time.Time{}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
