package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian/internal/authz"
	"github.com/meridian-erp/meridian/internal/platform/db"
	"github.com/meridian-erp/meridian/internal/shared"
)

// Repository defines persistence operations for the identity store.
type Repository interface {
	LookupRole(ctx context.Context, principalID string) (authz.Role, error)
	ListPrincipals(ctx context.Context) ([]Principal, error)
	AssignRole(ctx context.Context, change RoleChange) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// LookupRole returns the role of an active principal. An inactive or absent
// principal yields authz.ErrUnknownPrincipal so the resolver treats it as
// not-found rather than a store failure.
func (r *PGRepository) LookupRole(ctx context.Context, principalID string) (authz.Role, error) {
	var role string
	err := r.pool.QueryRow(ctx,
		`SELECT role FROM principals WHERE id = $1 AND is_active`, principalID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", authz.ErrUnknownPrincipal
		}
		return "", err
	}
	return authz.Role(role), nil
}

// ListPrincipals returns all principals ordered by id.
func (r *PGRepository) ListPrincipals(ctx context.Context) ([]Principal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, role, is_active, created_at, updated_at FROM principals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var principals []Principal
	for rows.Next() {
		var p Principal
		var role string
		if err := rows.Scan(&p.ID, &p.Name, &role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Role = authz.Role(role)
		principals = append(principals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return principals, nil
}

// AssignRole updates the principal's role and appends a history row in one
// transaction, so the change log never diverges from the live assignment.
func (r *PGRepository) AssignRole(ctx context.Context, change RoleChange) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var previous string
		err := tx.QueryRow(ctx,
			`SELECT role FROM principals WHERE id = $1 FOR UPDATE`, change.PrincipalID).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if _, err := tx.Exec(ctx,
			`UPDATE principals SET role = $2, updated_at = $3 WHERE id = $1`,
			change.PrincipalID, string(change.ToRole), now); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO role_changes (principal_id, from_role, to_role, changed_by, changed_at) VALUES ($1, $2, $3, $4, $5)`,
			change.PrincipalID, previous, string(change.ToRole), change.ChangedBy, now)
		return err
	})
}

var _ Repository = (*PGRepository)(nil)
