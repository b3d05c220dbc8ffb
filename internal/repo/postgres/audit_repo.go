package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

var ErrAuditValidation = errors.New("invalid audit entry")

// AuditRepo keeps a local trail of staff actions. The console stays usable
// without postgres; a nil pool turns recording into a no-op.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Record(ctx context.Context, entry model.Audit) error {
	if r.pool == nil {
		return nil
	}
	if strings.TrimSpace(string(entry.Action)) == "" {
		return ErrAuditValidation
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO staff_audit (id, staff_id, user_id, action, payload, created_at)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
`, entry.ID, entry.StaffID, entry.UserID, string(entry.Action), []byte(entry.Payload), entry.CreatedAt); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.Audit, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, COALESCE(staff_id, ''), COALESCE(user_id, ''), action, payload, created_at
FROM staff_audit
ORDER BY created_at DESC, id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Audit
	for rows.Next() {
		var (
			entry   model.Audit
			action  string
			payload []byte
		)
		if err := rows.Scan(&entry.ID, &entry.StaffID, &entry.UserID, &action, &payload, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Action = enums.AuditAction(action)
		entry.Payload = payload
		entry.CreatedAt = entry.CreatedAt.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
