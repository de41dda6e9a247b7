package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "engine.txt")
	l := NewAt(path)

	l.Log("Creating Physics 2D environment")
	l.Logf("spawned %d bodies", 3)

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() = %d entries, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[") || !strings.HasSuffix(lines[0], "] Creating Physics 2D environment") {
		t.Errorf("line 0 = %q, want timestamped entry", lines[0])
	}
	if !strings.HasSuffix(lines[1], "spawned 3 bodies") {
		t.Errorf("line 1 = %q", lines[1])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("file has %d lines, want 2", got)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewAt("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	if l.Lines()[0] == "changed" {
		t.Error("Lines() exposed internal slice")
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	l.Log("ignored")
	l.Logf("ignored %d", 1)
	if l.Lines() != nil {
		t.Error("nil logger returned lines")
	}
}
