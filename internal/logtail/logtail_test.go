package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petgallery.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead_TailsLines(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("Line %d", i))
	}
	path := writeLog(t, lines)

	tests := []struct {
		name     string
		maxLines int
		first    string
		count    int
	}{
		{"read all (0)", 0, "Line 1", 10},
		{"read all (negative)", -1, "Line 1", 10},
		{"read partial (5)", 5, "Line 6", 5},
		{"read exactly all (10)", 10, "Line 1", 10},
		{"read more than exists (20)", 20, "Line 1", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("Read() returned %d entries, want %d", len(got), tt.count)
			}
			if got[0].Raw != tt.first {
				t.Fatalf("first entry = %q, want %q", got[0].Raw, tt.first)
			}
			if got[len(got)-1].Raw != "Line 10" {
				t.Fatalf("last entry = %q, want %q", got[len(got)-1].Raw, "Line 10")
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLine_ZapJSON(t *testing.T) {
	line := `{"level":"error","time":"2026-10-19T10:00:00Z","caller":"gallery/controller.go:10","msg":"delete pet failed","action":"delete","id":3,"status":500}`
	e := ParseLine(line)

	if e.Level != "ERROR" {
		t.Fatalf("Level = %q, want ERROR", e.Level)
	}
	if e.Message != "delete pet failed" {
		t.Fatalf("Message = %q", e.Message)
	}
	want := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Fields["id"] != "3" || e.Fields["status"] != "500" || e.Fields["action"] != "delete" {
		t.Fatalf("Fields = %#v", e.Fields)
	}
	if _, ok := e.Fields["caller"]; ok {
		t.Fatal("caller should not be a field")
	}
	if e.Raw != "" {
		t.Fatalf("Raw = %q, want empty", e.Raw)
	}
}

func TestParseLine_EpochTimestamp(t *testing.T) {
	e := ParseLine(`{"level":"info","ts":1700000000.5,"msg":"pets loaded"}`)
	if e.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v, want unix 1700000000", e.Time)
	}
}

func TestParseLine_NonJSON(t *testing.T) {
	for _, line := range []string{"plain text", "{broken"} {
		e := ParseLine(line)
		if e.Raw != line {
			t.Fatalf("Raw = %q, want %q", e.Raw, line)
		}
		if e.Format() != line {
			t.Fatalf("Format() = %q, want %q", e.Format(), line)
		}
	}
}

func TestEntryFormat(t *testing.T) {
	e := Entry{
		Level:   "WARN",
		Message: "request failed",
		Fields:  map[string]string{"status": "404", "path": "pets/3", "empty": " "},
	}
	want := "WARN – request failed\n    - path: pets/3\n    - status: 404"
	if got := e.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}

	if got := (Entry{Message: "hi"}).Format(); got != "INFO – hi" {
		t.Fatalf("Format() default level = %q", got)
	}
}
