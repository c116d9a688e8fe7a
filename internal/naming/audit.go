package naming

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Outcome labels an audit record within a generation attempt's triad.
type Outcome string

const (
	OutcomeStart   Outcome = "start"
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// AuditRecord is one observability entry. The trail is never the source of
// truth for a stored name; the CRUD layer persists names itself.
type AuditRecord struct {
	Time         time.Time `json:"time"`
	Operation    string    `json:"operation"`
	EntityKind   string    `json:"entity_kind"`
	EntityID     string    `json:"entity_id,omitempty"`
	ActorID      string    `json:"actor_id,omitempty"`
	Outcome      Outcome   `json:"outcome"`
	DurationMs   int64     `json:"duration_ms"`
	UsedFallback bool      `json:"used_fallback"`
	Context      string    `json:"context,omitempty"`
}

// recorder appends audit records to a bounded in-memory ring buffer and
// keeps the aggregate counters behind Metrics() and Health().
type recorder struct {
	mu   sync.Mutex
	buf  []AuditRecord
	next int
	full bool
	now  func() time.Time
	log  zerolog.Logger

	totalRequests  int64
	failedRequests int64
	durationSumMs  int64
}

func newRecorder(capacity int, now func() time.Time, log zerolog.Logger) *recorder {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &recorder{buf: make([]AuditRecord, capacity), now: now, log: log}
}

func (r *recorder) append(rec AuditRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = rec
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

func (r *recorder) start(op, kind, entityID string) {
	r.append(AuditRecord{
		Time:       r.now(),
		Operation:  op,
		EntityKind: kind,
		EntityID:   entityID,
		Outcome:    OutcomeStart,
	})
}

func (r *recorder) success(op, kind, entityID string, dur time.Duration, usedFallback bool, note string) {
	r.mu.Lock()
	r.totalRequests++
	r.durationSumMs += dur.Milliseconds()
	r.mu.Unlock()

	r.append(AuditRecord{
		Time:         r.now(),
		Operation:    op,
		EntityKind:   kind,
		EntityID:     entityID,
		Outcome:      OutcomeSuccess,
		DurationMs:   dur.Milliseconds(),
		UsedFallback: usedFallback,
		Context:      note,
	})
}

func (r *recorder) failure(op, kind, entityID string, dur time.Duration, err error) {
	r.mu.Lock()
	r.totalRequests++
	r.failedRequests++
	r.durationSumMs += dur.Milliseconds()
	r.mu.Unlock()

	note := fmt.Sprintf("%s: %v", classify(err), err)
	r.append(AuditRecord{
		Time:         r.now(),
		Operation:    op,
		EntityKind:   kind,
		EntityID:     entityID,
		Outcome:      OutcomeFailure,
		DurationMs:   dur.Milliseconds(),
		UsedFallback: true,
		Context:      note,
	})

	r.log.Warn().
		Str("operation", op).
		Str("entity_kind", kind).
		Str("entity_id", entityID).
		Dur("duration", dur).
		Err(err).
		Msg("naming pipeline failure, emergency fallback served")
}

// override records an administrative name override for compliance. Audit
// only; the caller persists the new name.
func (r *recorder) override(kind, entityID, oldName, newName, actorID, reason string) {
	r.append(AuditRecord{
		Time:       r.now(),
		Operation:  "admin_override",
		EntityKind: kind,
		EntityID:   entityID,
		ActorID:    actorID,
		Outcome:    OutcomeSuccess,
		Context:    fmt.Sprintf("%q -> %q (%s)", oldName, newName, reason),
	})

	r.log.Info().
		Str("entity_kind", kind).
		Str("entity_id", entityID).
		Str("actor_id", actorID).
		Str("old_name", oldName).
		Str("new_name", newName).
		Str("reason", reason).
		Msg("administrative name override")
}

// records returns the buffered entries oldest-first.
func (r *recorder) records() []AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]AuditRecord, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]AuditRecord, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}

// aggregates returns the counters feeding Metrics().
func (r *recorder) aggregates() (total, failed int64, avgLatencyMs float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.totalRequests > 0 {
		avgLatencyMs = float64(r.durationSumMs) / float64(r.totalRequests)
	}
	return r.totalRequests, r.failedRequests, avgLatencyMs
}

// export serializes the buffered records as JSON or CSV.
func (r *recorder) export(format string) ([]byte, error) {
	records := r.records()

	switch format {
	case "json":
		return json.MarshalIndent(records, "", "  ")
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		header := []string{"time", "operation", "entity_kind", "entity_id", "actor_id", "outcome", "duration_ms", "used_fallback", "context"}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, rec := range records {
			row := []string{
				rec.Time.UTC().Format(time.RFC3339Nano),
				rec.Operation,
				rec.EntityKind,
				rec.EntityID,
				rec.ActorID,
				string(rec.Outcome),
				strconv.FormatInt(rec.DurationMs, 10),
				strconv.FormatBool(rec.UsedFallback),
				rec.Context,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q (want json or csv)", format)
	}
}
