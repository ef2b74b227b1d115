package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

type sqliteStore struct {
	db         *sql.DB
	defaultTTL time.Duration
	logger     *logger.Logger
	sb         sq.StatementBuilderType

	now func() time.Time
}

func newSQLiteStore(db *sql.DB, defaultTTL time.Duration, log *logger.Logger) *sqliteStore {
	if defaultTTL <= 0 {
		defaultTTL = config.DefaultExpiration
	}
	return &sqliteStore{
		db:         db,
		defaultTTL: defaultTTL,
		logger:     log,
		sb:         sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now:        time.Now,
	}
}

func (s *sqliteStore) Put(ctx context.Context, key string, value any, opts ...PutOption) error {
	o := applyPutOptions(opts)

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrEncode, key, err)
	}

	now := s.now()
	var expiresAt any
	if !o.never {
		ttl := s.defaultTTL
		if o.expiration != nil {
			ttl = *o.expiration
		}
		expiresAt = now.Add(ttl)
	}

	query, args, err := s.sb.Insert("kv_items").
		Columns("key", "data", "ts", "expires_at", "schema_version", "sync_status").
		Values(key, string(payload), now, expiresAt, SchemaVersion, string(o.status)).
		Suffix(`ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			ts = excluded.ts,
			expires_at = excluded.expires_at,
			schema_version = excluded.schema_version,
			sync_status = excluded.sync_status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build put query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

func (s *sqliteStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	query, args, err := s.sb.
		Select("data", "ts", "expires_at", "schema_version", "sync_status").
		From("kv_items").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build get query: %w", err)
	}

	var (
		data          string
		ts            time.Time
		expiresAt     sql.NullTime
		schemaVersion string
		syncStatus    string
	)
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&data, &ts, &expiresAt, &schemaVersion, &syncStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if expiresAt.Valid && s.now().After(expiresAt.Time) {
		if err = s.Remove(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to remove expired item")
		}
		return false, nil
	}

	if schemaVersion == "" {
		// Pre-envelope row written before versioning was introduced:
		// stamp it in place so the next read is uniform.
		if err = s.migrateLegacyRow(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to migrate legacy item")
		}
	}

	if err = json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("%w: key %s: %v", ErrDecode, key, err)
	}

	return true, nil
}

func (s *sqliteStore) GetMeta(ctx context.Context, key string) (models.ItemMeta, bool, error) {
	query, args, err := s.sb.
		Select("ts", "expires_at", "schema_version", "sync_status").
		From("kv_items").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return models.ItemMeta{}, false, fmt.Errorf("build get meta query: %w", err)
	}

	var (
		ts            time.Time
		expiresAt     sql.NullTime
		schemaVersion string
		syncStatus    string
	)
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&ts, &expiresAt, &schemaVersion, &syncStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ItemMeta{}, false, nil
		}
		return models.ItemMeta{}, false, fmt.Errorf("get meta %s: %w", key, err)
	}

	if expiresAt.Valid && s.now().After(expiresAt.Time) {
		if err = s.Remove(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to remove expired item")
		}
		return models.ItemMeta{}, false, nil
	}

	meta := models.ItemMeta{
		Key:           key,
		Timestamp:     ts,
		SchemaVersion: schemaVersion,
		SyncStatus:    models.SyncStatus(syncStatus),
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		meta.ExpiresAt = &t
	}

	return meta, true, nil
}

func (s *sqliteStore) MarkPending(ctx context.Context, key string) error {
	return s.setStatus(ctx, key, models.StatusPending)
}

func (s *sqliteStore) MarkSynced(ctx context.Context, key string) error {
	return s.setStatus(ctx, key, models.StatusSynced)
}

func (s *sqliteStore) setStatus(ctx context.Context, key string, status models.SyncStatus) error {
	query, args, err := s.sb.Update("kv_items").
		Set("sync_status", string(status)).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set status %s on %s: %w", status, key, err)
	}

	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	query, args, err := s.sb.Delete("kv_items").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build remove query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}

	return nil
}

func (s *sqliteStore) SweepExpired(ctx context.Context) (int, error) {
	query, args, err := s.sb.Delete("kv_items").
		Where(sq.NotEq{"expires_at": nil}).
		Where(sq.LtOrEq{"expires_at": s.now()}).
		Where(sq.NotEq{"key": models.ReservedKeys}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sweep query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("sweep expired: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}

	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("swept expired local items")
	}
	return int(removed), nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// migrateLegacyRow stamps the current schema version onto a row written
// before envelope versioning existed. Payload, timestamps and status stay
// untouched.
func (s *sqliteStore) migrateLegacyRow(ctx context.Context, key string) error {
	query, args, err := s.sb.Update("kv_items").
		Set("schema_version", SchemaVersion).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build legacy migrate query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("migrate legacy row %s: %w", key, err)
	}

	return nil
}

// stampSchemaVersion compares the persisted app_schema_version marker with
// the compiled-in constant and re-stamps it. Currently stamping is the
// whole migration; format rewrites would hook in here.
func (s *sqliteStore) stampSchemaVersion(ctx context.Context) error {
	var current string
	found, err := s.Get(ctx, models.KeySchemaVersion, &current)
	if err != nil {
		return err
	}
	if found && current == SchemaVersion {
		return nil
	}

	if found {
		s.logger.Info().
			Str("from", current).
			Str("to", SchemaVersion).
			Msg("upgrading local schema version")
	}

	return s.Put(ctx, models.KeySchemaVersion, SchemaVersion, WithNoExpiration())
}
