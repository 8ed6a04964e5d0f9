package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const kvTable = "kv"

type kvRepo struct {
	drv *entsql.Driver
	seq *revisionCounter
}

func (r *kvRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := r.builder().
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", key, err)
	}
	return value, true, nil
}

func (r *kvRepo) Put(ctx context.Context, key, value string) error {
	rev, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	query, args := r.builder().
		Insert(kvTable).
		Columns("key", "value", "rev", "updated_at").
		Values(key, value, rev, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query, qargs := r.builder().
		Delete(kvTable).
		Where(entsql.In("key", args...)).
		Query()

	if err := r.drv.Exec(ctx, query, qargs, nil); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

func (r *kvRepo) List(ctx context.Context) ([]Entry, error) {
	query, args := r.builder().
		Select("key", "value", "rev", "updated_at").
		From(entsql.Table(kvTable)).
		OrderBy("key").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.Rev, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
