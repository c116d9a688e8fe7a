package naming

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func newTestRecorder(capacity int) *recorder {
	return newRecorder(capacity, time.Now, zerolog.Nop())
}

func TestRecorder_RingBufferWraps(t *testing.T) {
	r := newTestRecorder(3)

	for i := 0; i < 5; i++ {
		r.start(fmt.Sprintf("op-%d", i), "bag", "")
	}

	records := r.records()
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	// Oldest-first: op-2, op-3, op-4 survive.
	for i, want := range []string{"op-2", "op-3", "op-4"} {
		if records[i].Operation != want {
			t.Errorf("records[%d].Operation = %q, want %q", i, records[i].Operation, want)
		}
	}
}

func TestRecorder_Aggregates(t *testing.T) {
	r := newTestRecorder(10)

	r.success("generate_bag_name", "bag", "", 10*time.Millisecond, false, "")
	r.success("generate_bag_name", "bag", "", 30*time.Millisecond, true, "")
	r.failure("generate_brew_name", "brew", "", 20*time.Millisecond, errors.New("boom"))

	total, failed, avg := r.aggregates()
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if avg != 20 {
		t.Errorf("avg latency = %v, want 20", avg)
	}
}

func TestRecorder_FailureClassifiesError(t *testing.T) {
	r := newTestRecorder(10)

	r.failure("generate_bag_name", "bag", "", time.Millisecond,
		fmt.Errorf("%w: after 5s", ErrTimeout))

	records := r.records()
	last := records[len(records)-1]
	if !strings.HasPrefix(last.Context, "timeout:") {
		t.Errorf("Context = %q, want timeout classification", last.Context)
	}
	if !last.UsedFallback {
		t.Error("failure record not marked as fallback")
	}
}

func TestRecorder_Override(t *testing.T) {
	r := newTestRecorder(10)

	r.override("bag", "some-id", "Old Name", "New Name", "actor-1", "typo fix")

	records := r.records()
	rec := records[len(records)-1]
	if rec.Operation != "admin_override" {
		t.Errorf("Operation = %q, want admin_override", rec.Operation)
	}
	if rec.ActorID != "actor-1" {
		t.Errorf("ActorID = %q, want actor-1", rec.ActorID)
	}
	if !strings.Contains(rec.Context, "Old Name") || !strings.Contains(rec.Context, "New Name") {
		t.Errorf("Context = %q, want both names", rec.Context)
	}
}

func TestRecorder_ExportJSON(t *testing.T) {
	r := newTestRecorder(10)
	r.success("generate_bag_name", "bag", "e-1", 5*time.Millisecond, false, "")

	data, err := r.export("json")
	if err != nil {
		t.Fatalf("export(json) error = %v", err)
	}

	var records []AuditRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].EntityID != "e-1" {
		t.Errorf("EntityID = %q, want e-1", records[0].EntityID)
	}
}

func TestRecorder_ExportCSV(t *testing.T) {
	r := newTestRecorder(10)
	r.success("generate_bag_name", "bag", "e-1", 5*time.Millisecond, true, "")

	data, err := r.export("csv")
	if err != nil {
		t.Fatalf("export(csv) error = %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("csv parse error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "time" || rows[0][6] != "duration_ms" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][7] != "true" {
		t.Errorf("used_fallback column = %q, want true", rows[1][7])
	}
}

func TestRecorder_ExportUnknownFormat(t *testing.T) {
	r := newTestRecorder(10)
	if _, err := r.export("xml"); err == nil {
		t.Error("export(xml) error = nil, want error")
	}
}
