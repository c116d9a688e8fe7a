package naming

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/godshot/godshot/internal/metrics"
	"github.com/godshot/godshot/internal/types"
)

// Defaults for Config zero values.
const (
	defaultCacheTTL      = 5 * time.Minute
	defaultTimeout       = 5 * time.Second
	defaultTimezone      = "UTC"
	defaultAuditCapacity = 1000
)

// Config tunes the naming service. Zero values take the defaults above.
type Config struct {
	// CacheTTL is the freshness window shared by the three caches.
	CacheTTL time.Duration
	// Timeout bounds total pipeline latency per call. The deadline is
	// soft: the pipeline is not aborted, only no longer waited for.
	Timeout time.Duration
	// DefaultTimezone is the process-wide zone used when no caller hint
	// resolves.
	DefaultTimezone string
	// AuditCapacity is the ring-buffer size of the audit trail.
	AuditCapacity int
	// MemoryLimitBytes marks memory pressure when live heap exceeds it.
	// Zero disables the probe.
	MemoryLimitBytes uint64
}

func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = defaultTimezone
	}
	if c.AuditCapacity <= 0 {
		c.AuditCapacity = defaultAuditCapacity
	}
	return c
}

// Service is the naming subsystem's public surface. The Generate methods
// never return an error: every failure resolves to a placeholder name so
// entity creation cannot be blocked by naming.
type Service struct {
	cfg     Config
	store   Store
	builder *contextBuilder
	owners  *ttlCache[string]
	beans   *ttlCache[string]
	bags    *ttlCache[string]
	pending *pendingMap
	health  *healthMonitor
	audit   *recorder
	log     zerolog.Logger
	now     func() time.Time
}

// New creates a naming service over the given store. When the store
// exposes a Reachable method (SQLStore's breaker state), it feeds the
// health snapshot; otherwise the store is presumed reachable.
func New(store Store, cfg Config, log zerolog.Logger) *Service {
	cfg = cfg.withDefaults()
	now := time.Now

	reachable := func() bool { return true }
	if r, ok := store.(interface{ Reachable() bool }); ok {
		reachable = r.Reachable
	}

	s := &Service{
		cfg:     cfg,
		store:   store,
		owners:  newTTLCache[string]("barista", cfg.CacheTTL, now),
		beans:   newTTLCache[string]("bean", cfg.CacheTTL, now),
		bags:    newTTLCache[string]("bag", cfg.CacheTTL, now),
		pending: newPendingMap(),
		health:  newHealthMonitor(reachable, cfg.MemoryLimitBytes, now),
		audit:   newRecorder(cfg.AuditCapacity, now, log),
		log:     log,
		now:     now,
	}
	s.builder = newContextBuilder(store, s.owners, s.beans, s.bags, log)
	return s
}

// GenerateBagName synthesizes "{owner}'s {bean} {dateLabel}" for a new bag.
// dateLabel is caller-formatted (usually the roast date) and may be empty.
func (s *Service) GenerateBagName(ctx context.Context, baristaID types.BaristaID, beanID types.BeanID, dateLabel string) string {
	const op, kind = "generate_bag_name", "bag"

	key := fmt.Sprintf("bag:%s:%s", baristaID, beanID)
	return s.generate(ctx, op, kind, string(beanID), key, emergencyBagName(s.now()),
		func(ctx context.Context, policy pipelinePolicy) (string, bool, error) {
			return s.buildBagName(ctx, baristaID, beanID, dateLabel)
		})
}

// GenerateBrewName synthesizes "{owner}'s {ordinal} {phase} {bean} {date}"
// for a new brew at the given creation instant. The identity key includes
// the millisecond instant, so distinct brews never coalesce while exact
// duplicate retries do.
func (s *Service) GenerateBrewName(ctx context.Context, baristaID types.BaristaID, bagID types.BagID, at time.Time, hints TimezoneHints) string {
	const op, kind = "generate_brew_name", "brew"

	key := fmt.Sprintf("brew:%s:%s:%d", baristaID, bagID, at.UnixMilli())
	return s.generate(ctx, op, kind, string(bagID), key, emergencyBrewName(at),
		func(ctx context.Context, policy pipelinePolicy) (string, bool, error) {
			return s.buildBrewName(ctx, baristaID, bagID, at, hints, policy)
		})
}

// generate runs the shared outer flow: health check, validation gate,
// coalescing, deadline, audit, and last-resort emergency fallback.
func (s *Service) generate(ctx context.Context, op, kind, entityID, key, emergencyName string, pipeline func(context.Context, pipelinePolicy) (string, bool, error)) string {
	start := s.now()
	s.audit.start(op, kind, entityID)

	snap := s.health.snapshot()
	policy := policies[snap.Action()]
	if policy.bypass {
		s.audit.success(op, kind, entityID, s.now().Sub(start), true, "degradation: "+snap.Action().String())
		s.observe(kind, "emergency", start)
		return emergencyName
	}

	c, created := s.pending.join(key)
	if created {
		// The computation outlives a timed-out caller on purpose: it
		// settles the pending entry and warms the caches for the next
		// call. WithoutCancel keeps request-scoped values but detaches
		// the caller's cancellation.
		bg := context.WithoutCancel(ctx)
		go func() {
			name, fellBack, err := pipeline(bg, policy)
			s.pending.settle(key, c, name, fellBack, err)
		}()
	}

	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()

	select {
	case <-c.done:
		if c.err != nil {
			s.audit.failure(op, kind, entityID, s.now().Sub(start), c.err)
			s.observe(kind, "emergency", start)
			return emergencyName
		}
		outcome := "ok"
		if c.fellBack {
			outcome = "fallback"
		}
		s.audit.success(op, kind, entityID, s.now().Sub(start), c.fellBack, "")
		s.observe(kind, outcome, start)
		return c.name
	case <-timer.C:
		s.audit.failure(op, kind, entityID, s.now().Sub(start), fmt.Errorf("%w: after %v", ErrTimeout, s.cfg.Timeout))
		s.observe(kind, "emergency", start)
		return emergencyName
	}
}

func (s *Service) observe(kind, outcome string, start time.Time) {
	metrics.NamingRequests.WithLabelValues(kind, outcome).Inc()
	metrics.NamingDuration.WithLabelValues(kind).Observe(s.now().Sub(start).Seconds())
}

// buildBagName resolves the bag-name context and renders it. Malformed
// identifiers degrade per field; only a store failure propagates.
func (s *Service) buildBagName(ctx context.Context, baristaID types.BaristaID, beanID types.BeanID, dateLabel string) (string, bool, error) {
	ownerOK := validID(string(baristaID))
	itemOK := validID(string(beanID))
	if !ownerOK && !itemOK {
		return "", false, fmt.Errorf("%w: no usable identifiers (barista %q, bean %q)", ErrValidation, baristaID, beanID)
	}

	var owner, item string
	fellBack := false

	if ownerOK {
		n, fb, err := s.builder.ownerName(ctx, baristaID)
		if err != nil {
			return "", false, err
		}
		owner, fellBack = n, fb
	} else {
		s.builder.fallback("owner", string(baristaID), "malformed barista id")
		fellBack = true
	}

	if itemOK {
		n, fb, err := s.builder.beanName(ctx, beanID)
		if err != nil {
			return "", false, err
		}
		item = n
		fellBack = fellBack || fb
	} else {
		s.builder.fallback("bean", string(beanID), "malformed bean id")
		fellBack = true
	}

	if dateLabel == "" {
		fellBack = true
	}
	return renderBagName(owner, item, dateLabel), fellBack, nil
}

// buildBrewName resolves timezone, bucket, ordinal, and names, then
// renders. Under a degraded policy the range-count enrichment is skipped
// and the ordinal stays 1 (omitted from the output).
func (s *Service) buildBrewName(ctx context.Context, baristaID types.BaristaID, bagID types.BagID, at time.Time, hints TimezoneHints, policy pipelinePolicy) (string, bool, error) {
	ownerOK := validID(string(baristaID))
	itemOK := validID(string(bagID))
	if !ownerOK && !itemOK {
		return "", false, fmt.Errorf("%w: no usable identifiers (barista %q, bag %q)", ErrValidation, baristaID, bagID)
	}

	loc := resolveLocation(hints, s.cfg.DefaultTimezone)
	phase, ranges := bucketRanges(at, loc)

	ordinal := 1
	fellBack := false

	if policy.skipSequence {
		s.log.Debug().Str("barista", string(baristaID)).Msg("degraded: skipping sequence count")
		fellBack = true
	} else if ownerOK {
		count := 0
		for _, r := range ranges {
			n, err := s.store.CountBrewsInRange(ctx, baristaID, r.Start, r.End)
			if err != nil {
				return "", false, err
			}
			count += n
		}
		ordinal = count + 1
	}

	var owner, item string
	if ownerOK {
		n, fb, err := s.builder.ownerName(ctx, baristaID)
		if err != nil {
			return "", false, err
		}
		owner = n
		fellBack = fellBack || fb
	} else {
		s.builder.fallback("owner", string(baristaID), "malformed barista id")
		fellBack = true
	}

	if itemOK {
		n, fb, err := s.builder.bagBeanName(ctx, bagID)
		if err != nil {
			return "", false, err
		}
		item = n
		fellBack = fellBack || fb
	} else {
		s.builder.fallback("bag", string(bagID), "malformed bag id")
		fellBack = true
	}

	return renderBrewName(owner, ordinal, phase, item, localDateLabel(at, loc)), fellBack, nil
}

// InvalidateBarista removes a renamed barista from the owner cache.
// Push-based: the CRUD layer calls this on mutation.
func (s *Service) InvalidateBarista(id types.BaristaID) int {
	return s.owners.invalidate(string(id))
}

// InvalidateBean removes a renamed bean from the bean cache. Bag entries
// that joined through the bean age out within the cache TTL.
func (s *Service) InvalidateBean(id types.BeanID) int {
	return s.beans.invalidate(string(id))
}

// InvalidateBag removes a bag whose referenced bean was reassigned.
func (s *Service) InvalidateBag(id types.BagID) int {
	return s.bags.invalidate(string(id))
}

// Metrics are the aggregate numbers exposed on the admin surface.
type Metrics struct {
	TotalRequests    int64                 `json:"total_requests"`
	FailedRequests   int64                 `json:"failed_requests"`
	AverageLatencyMs float64               `json:"average_latency_ms"`
	PendingRequests  int                   `json:"pending_requests"`
	Caches           map[string]CacheStats `json:"caches"`
}

// Metrics returns current aggregates.
func (s *Service) Metrics() Metrics {
	total, failed, avg := s.audit.aggregates()
	return Metrics{
		TotalRequests:    total,
		FailedRequests:   failed,
		AverageLatencyMs: avg,
		PendingRequests:  s.pending.size(),
		Caches: map[string]CacheStats{
			"barista": s.owners.stats(),
			"bean":    s.beans.stats(),
			"bag":     s.bags.stats(),
		},
	}
}

// HealthReport combines aggregates with a fresh snapshot and flags issues.
type HealthReport struct {
	Status   string   `json:"status"`
	Action   string   `json:"action"`
	Snapshot Snapshot `json:"snapshot"`
	Metrics  Metrics  `json:"metrics"`
	Issues   []string `json:"issues,omitempty"`
}

// Health thresholds.
const (
	maxErrorRate    = 0.5
	maxAvgLatencyMs = 1000
	maxPending      = 100
)

// Health computes a fresh snapshot and flags threshold violations.
func (s *Service) Health() HealthReport {
	snap := s.health.snapshot()
	m := s.Metrics()

	var issues []string
	if m.TotalRequests > 0 && float64(m.FailedRequests)/float64(m.TotalRequests) > maxErrorRate {
		issues = append(issues, "error rate above 50%")
	}
	if m.AverageLatencyMs > maxAvgLatencyMs {
		issues = append(issues, "average latency above 1000ms")
	}
	if snap.MemoryPressure {
		issues = append(issues, "memory pressure")
	}
	if !snap.StoreReachable {
		issues = append(issues, "store unreachable")
	}
	if m.PendingRequests > maxPending {
		issues = append(issues, "pending request count above 100")
	}

	status := "healthy"
	if len(issues) > 0 {
		status = "unhealthy"
	}
	return HealthReport{
		Status:   status,
		Action:   snap.Action().String(),
		Snapshot: snap,
		Metrics:  m,
		Issues:   issues,
	}
}

// ExportLogs serializes the audit trail as "json" or "csv".
func (s *Service) ExportLogs(format string) ([]byte, error) {
	return s.audit.export(format)
}

// LogAdminOverride records an administrative name override for compliance.
// It does not persist the override; that remains the caller's job.
func (s *Service) LogAdminOverride(entityKind, entityID, oldName, newName, actorID, reason string) {
	s.audit.override(entityKind, entityID, oldName, newName, actorID, reason)
}

func validID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
