package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hotel_site/internal/adapters/observability"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Load(ctx context.Context, visitorID, namespace string, dst any) (bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, getStateSQL, visitorID, namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveState("mysql", namespace, "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveState("mysql", namespace, "error")
		return false, fmt.Errorf("load %s state: %w", namespace, err)
	}
	observability.ObserveState("mysql", namespace, "hit")
	return true, json.Unmarshal(payload, dst)
}

func (r *Repo) Save(ctx context.Context, visitorID, namespace string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, upsertStateSQL, visitorID, namespace, string(b)); err != nil {
		observability.ObserveState("mysql", namespace, "error")
		return fmt.Errorf("save %s state: %w", namespace, err)
	}
	observability.ObserveState("mysql", namespace, "save")
	return nil
}
