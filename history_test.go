package bgpsim

import (
	"path/filepath"
	"testing"
)

func TestHistoryRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite3")

	h, err := NewSQLiteHistory(path)
	if err != nil {
		t.Fatalf("NewSQLiteHistory: %v", err)
	}
	defer h.Close()

	err = h.Record(RunSummary{
		SourceASN:    1,
		ReachedCount: 3,
		Caught:       true,
		DetectorASN:  3,
		ValleyFree:   true,
		HijackMode:   false,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
}
