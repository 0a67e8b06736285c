package monsoon

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Archive is the durable store of seasonal metrics keyed by year. It backs
// the historical rainfall endpoint and survives scenario file edits.
//
// The archive uses a write-ahead log for concurrent reads and a single
// writer connection, which is all SQLite supports anyway.
type Archive struct {
	db        *sql.DB
	mu        sync.RWMutex
	closeOnce sync.Once

	putStmt   *sql.Stmt
	yearStmt  *sql.Stmt
	yearsStmt *sql.Stmt
}

// ArchiveConfig configures the archive.
type ArchiveConfig struct {
	// DBPath is the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default 5 seconds.
	BusyTimeout time.Duration
}

// NewArchive opens (creating if needed) the archive database.
func NewArchive(cfg ArchiveConfig) (*Archive, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("archive db path cannot be empty")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	a := &Archive{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	if err := a.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare archive statements: %w", err)
	}
	return a, nil
}

func (a *Archive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS monsoon_metrics (
		year INTEGER PRIMARY KEY,
		onset_date TEXT NOT NULL,
		normal_onset_date TEXT NOT NULL,
		all_india_rainfall_mm REAL NOT NULL,
		lpa_mm REAL NOT NULL,
		deviation_percent REAL NOT NULL,
		regional_data TEXT,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

func (a *Archive) prepareStatements() error {
	var err error

	a.putStmt, err = a.db.Prepare(`
		INSERT INTO monsoon_metrics (year, onset_date, normal_onset_date,
			all_india_rainfall_mm, lpa_mm, deviation_percent, regional_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (year) DO UPDATE SET
			onset_date = excluded.onset_date,
			normal_onset_date = excluded.normal_onset_date,
			all_india_rainfall_mm = excluded.all_india_rainfall_mm,
			lpa_mm = excluded.lpa_mm,
			deviation_percent = excluded.deviation_percent,
			regional_data = excluded.regional_data,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare put statement: %w", err)
	}

	a.yearStmt, err = a.db.Prepare(`
		SELECT year, onset_date, normal_onset_date, all_india_rainfall_mm,
			lpa_mm, deviation_percent, regional_data
		FROM monsoon_metrics
		WHERE year = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare year statement: %w", err)
	}

	a.yearsStmt, err = a.db.Prepare(`
		SELECT year FROM monsoon_metrics ORDER BY year
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare years statement: %w", err)
	}

	return nil
}

// Put upserts one seasonal packet.
func (a *Archive) Put(ctx context.Context, m *Metrics) error {
	if m == nil {
		return fmt.Errorf("metrics cannot be nil")
	}
	if m.Year <= 0 {
		return fmt.Errorf("metrics year must be positive, got %d", m.Year)
	}

	var regionalJSON []byte
	if len(m.Regional) > 0 {
		var err error
		regionalJSON, err = json.Marshal(m.Regional)
		if err != nil {
			return fmt.Errorf("failed to marshal regional data: %w", err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.putStmt.ExecContext(ctx,
		m.Year,
		m.OnsetDate,
		m.NormalOnsetDate,
		m.AllIndiaRainfallMM,
		m.LongPeriodAverageMM,
		m.DeviationPercent,
		string(regionalJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store metrics for %d: %w", m.Year, err)
	}
	return nil
}

// Year retrieves the packet archived for one year, or ErrYearUnavailable.
func (a *Archive) Year(ctx context.Context, year int) (*Metrics, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var (
		m            Metrics
		regionalJSON string
	)
	err := a.yearStmt.QueryRowContext(ctx, year).Scan(
		&m.Year,
		&m.OnsetDate,
		&m.NormalOnsetDate,
		&m.AllIndiaRainfallMM,
		&m.LongPeriodAverageMM,
		&m.DeviationPercent,
		&regionalJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrYearUnavailable, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics for %d: %w", year, err)
	}

	if regionalJSON != "" {
		if err := json.Unmarshal([]byte(regionalJSON), &m.Regional); err != nil {
			return nil, fmt.Errorf("failed to unmarshal regional data for %d: %w", year, err)
		}
	}
	return &m, nil
}

// Years lists archived years in ascending order.
func (a *Archive) Years(ctx context.Context) ([]int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rows, err := a.yearsStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year row: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating year rows: %w", err)
	}
	return years, nil
}

// Seed stores every packet, keeping the archive in step with the scenario
// file at startup. Errors abort on the first failed year.
func (a *Archive) Seed(ctx context.Context, packets []*Metrics) error {
	for _, m := range packets {
		if err := a.Put(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Close releases database resources. It is idempotent.
func (a *Archive) Close() error {
	var closeErr error
	a.closeOnce.Do(func() {
		if a.putStmt != nil {
			a.putStmt.Close()
		}
		if a.yearStmt != nil {
			a.yearStmt.Close()
		}
		if a.yearsStmt != nil {
			a.yearsStmt.Close()
		}
		if a.db != nil {
			_, _ = a.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = a.db.Close()
		}
	})
	return closeErr
}
