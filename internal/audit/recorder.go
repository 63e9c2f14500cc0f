// Package audit persists authorization denials so role, permission and
// principal are available to compliance tooling.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian/internal/authz"
)

// Recorder writes denial records into audit_denials. Recording is best
// effort: a write failure is logged and never surfaces into the
// authorization decision.
type Recorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRecorder returns a Recorder backed by the given pool.
func NewRecorder(pool *pgxpool.Pool, logger *slog.Logger) *Recorder {
	return &Recorder{pool: pool, logger: logger}
}

// RecordDenial implements authz.AuditRecorder.
func (r *Recorder) RecordDenial(ctx context.Context, d authz.Denial) {
	if r == nil || r.pool == nil {
		return
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_denials (principal_id, role, permission, reason, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		d.Principal, string(d.Role), string(d.Permission), d.Reason, time.Now().UTC())
	if err != nil && r.logger != nil {
		r.logger.Error("record denial",
			slog.String("principal", d.Principal),
			slog.String("reason", d.Reason),
			slog.Any("error", err))
	}
}
