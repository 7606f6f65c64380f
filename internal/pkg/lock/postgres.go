package lock

import (
	"context"
	"fmt"

	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

// PostgresManager implements Manager with pg_try_advisory_lock. A session
// advisory lock lives on one connection, so the manager pins a dedicated
// pool connection for the lifetime of each held lock and releases both
// together.
type PostgresManager struct {
	db *database.DB
}

func NewPostgresManager(db *database.DB) *PostgresManager {
	return &PostgresManager{db: db}
}

func (m *PostgresManager) TryAcquire(ctx context.Context, key int64) (*Lock, bool, error) {
	conn, err := m.db.Pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock %d: %w", key, err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		defer conn.Release()
		var unlocked bool
		if err := conn.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&unlocked); err != nil {
			return fmt.Errorf("advisory unlock %d: %w", key, err)
		}
		if !unlocked {
			return fmt.Errorf("advisory unlock %d: lock was not held by this session", key)
		}
		return nil
	}

	return NewLock(key, release), true, nil
}
