package log

import (
	"errors"
	"os"
	"path"
	"strings"
	"testing"

	"veil-go/pkg/appdir"
)

func TestGetLastNLogsUninitialized(t *testing.T) {
	if _, err := GetLastNLogs(5); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("GetLastNLogs before Init: got %v, want ErrNotInitialized", err)
	}
}

func TestSQLiteSinkRoundTrip(t *testing.T) {
	const dbFile = "log_test.db"
	if err := Init(dbFile); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() {
		Close()
		os.Remove(path.Join(appdir.AppDir(), dbFile))
	})

	Info().Str("seq", "first").Msg("first entry")
	Info().Str("seq", "second").Msg("second entry")

	entries, err := GetLastNLogs(10)
	if err != nil {
		t.Fatalf("GetLastNLogs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Oldest first.
	if !strings.Contains(entries[0].LogData, "first entry") {
		t.Errorf("entries[0] = %s, want the first entry", entries[0].LogData)
	}
	if !strings.Contains(entries[1].LogData, "second entry") {
		t.Errorf("entries[1] = %s, want the second entry", entries[1].LogData)
	}

	if zero, err := GetLastNLogs(0); err != nil || len(zero) != 0 {
		t.Errorf("GetLastNLogs(0) = %v, %v; want empty, nil", zero, err)
	}
}
