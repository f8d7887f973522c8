// Package index caches envelopes of a mail.Provider in SQLite so listing a
// folder does not re-read its source. Message bodies are always fetched from
// the wrapped provider.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/mail"
)

const refreshConcurrency = 4

// Index is a mail.Provider backed by a SQLite envelope cache.
type Index struct {
	db     *sql.DB
	source mail.Provider
	mu     sync.Mutex
}

// Open creates or opens the index database at path.
func Open(path string, source mail.Provider) (*Index, error) {
	if source == nil {
		return nil, errors.New("index needs a source provider")
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open index: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db, source: source}, nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS envelopes (
			folder TEXT NOT NULL,
			id TEXT NOT NULL,
			subject TEXT NOT NULL,
			sender TEXT NOT NULL,
			date TEXT NOT NULL,
			date_unix INTEGER NOT NULL,
			flags TEXT NOT NULL,
			PRIMARY KEY (folder, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_envelopes_date ON envelopes(folder, date_unix DESC, id)`,
		`CREATE TABLE IF NOT EXISTS folders (
			name TEXT PRIMARY KEY,
			refreshed_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (i *Index) Close() error {
	if i.db != nil {
		return i.db.Close()
	}
	return nil
}

func (i *Index) Folders(ctx context.Context) ([]string, error) {
	return i.source.Folders(ctx)
}

func (i *Index) Message(ctx context.Context, folder, id string) (mail.Message, error) {
	return i.source.Message(ctx, folder, id)
}

// WatchDirs forwards to the source when it is directory backed.
func (i *Index) WatchDirs(folder string) ([]string, error) {
	if w, ok := i.source.(mail.Watchable); ok {
		return w.WatchDirs(folder)
	}
	return nil, nil
}

// Refresh re-reads folders from the source in parallel and replaces their
// cached envelopes. With no folders it refreshes every source folder.
func (i *Index) Refresh(ctx context.Context, folders ...string) error {
	if len(folders) == 0 {
		all, err := i.source.Folders(ctx)
		if err != nil {
			return fmt.Errorf("list folders: %w", err)
		}
		folders = all
	}

	results := make([][]mail.Envelope, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)
	for n, folder := range folders {
		n, folder := n, folder
		g.Go(func() error {
			envs, err := i.source.ListEnvelopes(gctx, folder, 0, 0)
			if err != nil {
				return fmt.Errorf("refresh %s: %w", folder, err)
			}
			results[n] = envs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for n, folder := range folders {
		if _, err := tx.ExecContext(ctx, `DELETE FROM envelopes WHERE folder = ?`, folder); err != nil {
			return fmt.Errorf("clear %s: %w", folder, err)
		}
		for _, env := range results[n] {
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO envelopes (folder, id, subject, sender, date, date_unix, flags) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				folder, env.ID, env.Subject, env.From, env.Date.Format(time.RFC3339Nano), env.Date.Unix(), string(env.Flags))
			if err != nil {
				return fmt.Errorf("store %s/%s: %w", folder, env.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO folders (name, refreshed_at) VALUES (?, ?)`, folder, now); err != nil {
			return fmt.Errorf("mark %s refreshed: %w", folder, err)
		}
		logging.Debugf("index refreshed %s with %d envelopes", folder, len(results[n]))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh: %w", err)
	}
	return nil
}

// Refreshed reports when folder was last refreshed.
func (i *Index) Refreshed(ctx context.Context, folder string) (time.Time, bool, error) {
	var unix int64
	err := i.db.QueryRowContext(ctx, `SELECT refreshed_at FROM folders WHERE name = ?`, folder).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read refresh time: %w", err)
	}
	return time.Unix(unix, 0), true, nil
}

// ListEnvelopes reads from the cache, refreshing folder first if it was never
// indexed.
func (i *Index) ListEnvelopes(ctx context.Context, folder string, pageSize, page int) ([]mail.Envelope, error) {
	if folder == "" {
		folder = mail.DefaultFolder
	}
	if _, ok, err := i.Refreshed(ctx, folder); err != nil {
		return nil, err
	} else if !ok {
		if err := i.Refresh(ctx, folder); err != nil {
			return nil, err
		}
	}

	limit, offset := -1, 0
	if pageSize > 0 {
		if page < 0 {
			page = 0
		}
		limit, offset = pageSize, page*pageSize
	}
	rows, err := i.db.QueryContext(ctx,
		`SELECT id, subject, sender, date, flags FROM envelopes WHERE folder = ? ORDER BY date_unix DESC, id ASC LIMIT ? OFFSET ?`,
		folder, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query envelopes: %w", err)
	}
	defer rows.Close()

	envs := []mail.Envelope{}
	for rows.Next() {
		var env mail.Envelope
		var date, flags string
		if err := rows.Scan(&env.ID, &env.Subject, &env.From, &date, &flags); err != nil {
			return nil, fmt.Errorf("scan envelope: %w", err)
		}
		env.Folder = folder
		env.Flags = mail.Flags(flags)
		if parsed, err := time.Parse(time.RFC3339Nano, date); err == nil {
			env.Date = parsed
		}
		envs = append(envs, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate envelopes: %w", err)
	}
	return envs, nil
}
