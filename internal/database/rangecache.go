package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file created inside the cache directory.
const FileName = "ranges.db"

// DefaultTTL is how long a cached range stays fresh.
const DefaultTTL = 24 * time.Hour

// ErrInvalidPrefix is returned for keys that are not 5 hex characters.
// Only hash prefixes are ever written, so anything else is a bug.
var ErrInvalidPrefix = errors.New("invalid hash prefix")

var prefixPattern = regexp.MustCompile(`^[0-9A-F]{5}$`)

// RangeCache stores breach range responses keyed by SHA-1 prefix.
//
// Only what the range API already returned is stored: the public prefix
// and the list of suffixes under it. Nothing identifies which suffix the
// user was interested in.
type RangeCache struct {
	db     *sql.DB
	dbPath string
	ttl    time.Duration
	now    func() time.Time
}

// Options configures RangeCache behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// TTL is how long entries stay fresh. Zero means DefaultTTL.
	TTL time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		TTL:               DefaultTTL,
	}
}

// Open opens or creates the range cache inside dir.
func Open(dir string, opts Options) (*RangeCache, error) {
	dbPath := filepath.Join(dir, FileName)

	mode := "rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		mode = "rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cache not found at %s", dbPath)
		}
		return nil, fmt.Errorf("failed to check cache path: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	// SQLite allows one writer; the batch processor shares this handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rc := &RangeCache{db: db, dbPath: dbPath, ttl: ttl, now: time.Now}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if err := rc.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return rc, nil
}

// Close closes the database connection.
func (rc *RangeCache) Close() error {
	return rc.db.Close()
}

// Path returns the database file path.
func (rc *RangeCache) Path() string {
	return rc.dbPath
}

// TTL returns the freshness window.
func (rc *RangeCache) TTL() time.Duration {
	return rc.ttl
}

func (rc *RangeCache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ranges (
		prefix TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ranges_fetched_at ON ranges(fetched_at);
	`
	_, err := rc.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the body stored for prefix if it is younger than the TTL.
func (rc *RangeCache) Get(ctx context.Context, prefix string) ([]byte, bool, error) {
	prefix, err := normalizePrefix(prefix)
	if err != nil {
		return nil, false, err
	}

	cutoff := rc.now().Add(-rc.ttl).Unix()
	var body []byte
	err = rc.db.QueryRowContext(ctx,
		`SELECT body FROM ranges WHERE prefix = ? AND fetched_at > ?`,
		prefix, cutoff,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read range %s: %w", prefix, err)
	}
	return body, true, nil
}

// Put stores body for prefix, replacing any previous entry.
func (rc *RangeCache) Put(ctx context.Context, prefix string, body []byte) error {
	prefix, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO ranges (prefix, body, fetched_at)
	VALUES (?, ?, ?)
	ON CONFLICT(prefix) DO UPDATE SET
		body = excluded.body,
		fetched_at = excluded.fetched_at
	`
	if _, err := rc.db.ExecContext(ctx, query, prefix, body, rc.now().Unix()); err != nil {
		return fmt.Errorf("failed to store range %s: %w", prefix, err)
	}
	return nil
}

// Purge deletes entries. With expiredOnly set, only entries older than
// the TTL go. It returns the number of rows removed.
func (rc *RangeCache) Purge(ctx context.Context, expiredOnly bool) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if expiredOnly {
		cutoff := rc.now().Add(-rc.ttl).Unix()
		res, err = rc.db.ExecContext(ctx, `DELETE FROM ranges WHERE fetched_at <= ?`, cutoff)
	} else {
		res, err = rc.db.ExecContext(ctx, `DELETE FROM ranges`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Entry describes one cached range without its body.
type Entry struct {
	Prefix    string
	Size      int
	FetchedAt time.Time
	Expired   bool
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

// List returns cached ranges, newest first. limit <= 0 lists everything.
func (rc *RangeCache) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT prefix, length(body), fetched_at FROM ranges ORDER BY fetched_at DESC, prefix`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := rc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}
	defer rows.Close()

	cutoff := rc.now().Add(-rc.ttl)
	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts int64
		)
		if err := rows.Scan(&e.Prefix, &e.Size, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		e.FetchedAt = time.Unix(ts, 0)
		e.Expired = !e.FetchedAt.After(cutoff)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache: %w", err)
	}
	return entries, nil
}

// Stats returns aggregate numbers about the cache.
func (rc *RangeCache) Stats(ctx context.Context) (Stats, error) {
	cutoff := rc.now().Add(-rc.ttl).Unix()

	var (
		s              Stats
		bytes          sql.NullInt64
		oldest, newest sql.NullInt64
	)
	err := rc.db.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN fetched_at <= ? THEN 1 ELSE 0 END), 0),
		SUM(length(body)),
		MIN(fetched_at),
		MAX(fetched_at)
	FROM ranges
	`, cutoff).Scan(&s.Entries, &s.Expired, &bytes, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	s.Bytes = bytes.Int64
	if oldest.Valid {
		s.Oldest = time.Unix(oldest.Int64, 0)
	}
	if newest.Valid {
		s.Newest = time.Unix(newest.Int64, 0)
	}
	return s, nil
}

func normalizePrefix(prefix string) (string, error) {
	p := strings.ToUpper(prefix)
	if !prefixPattern.MatchString(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return p, nil
}
