package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tivins/php-solid/internal/report"
	"github.com/tivins/php-solid/internal/rules"
)

// BaselineStore persists violation fingerprints so a later run can suppress
// everything already known and report only new violations.
type BaselineStore struct {
	db *sql.DB
}

// NewBaselineStore creates or opens a SQLite baseline database.
func NewBaselineStore(path string) (*BaselineStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &BaselineStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *BaselineStore) Close() error {
	return s.db.Close()
}

func (s *BaselineStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS baseline (
		fingerprint TEXT PRIMARY KEY,
		principle TEXT,
		class TEXT,
		member TEXT,
		contract TEXT,
		reason TEXT,
		recorded_at TEXT
	);`)
	return err
}

// Fingerprint identifies a violation across runs. Details are excluded: call
// chains may legitimately change while the violation stays the same.
func Fingerprint(principle, class, member, contract, reason string) string {
	h := sha256.Sum256([]byte(strings.Join(
		[]string{principle, strings.ToLower(class), strings.ToLower(member), strings.ToLower(contract), reason}, "|")))
	return hex.EncodeToString(h[:])
}

func lspFingerprint(v rules.LspViolation) string {
	return Fingerprint("LSP", v.Class, v.Method, v.Contract, v.Reason)
}

func ispFingerprint(v rules.IspViolation) string {
	return Fingerprint("ISP", v.Class, "", v.Interface, v.Reason)
}

// SaveReport replaces the stored baseline with the violations of this run.
func (s *BaselineStore) SaveReport(ctx context.Context, r *report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM baseline`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO baseline (fingerprint, principle, class, member, contract, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, v := range r.Lsp {
		if _, err := stmt.ExecContext(ctx, lspFingerprint(v), "LSP", v.Class, v.Method, v.Contract, v.Reason, now); err != nil {
			return err
		}
	}
	for _, v := range r.Isp {
		if _, err := stmt.ExecContext(ctx, ispFingerprint(v), "ISP", v.Class, "", v.Interface, v.Reason, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Known returns the set of stored fingerprints.
func (s *BaselineStore) Known(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT fingerprint FROM baseline`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := map[string]bool{}
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		known[fp] = true
	}
	return known, rows.Err()
}

// Filter returns a copy of the report with baselined violations removed.
// Errors and counters are kept as-is.
func (s *BaselineStore) Filter(ctx context.Context, r *report.Report) (*report.Report, error) {
	known, err := s.Known(ctx)
	if err != nil {
		return nil, err
	}

	filtered := *r
	filtered.Lsp = nil
	filtered.Isp = nil
	for _, v := range r.Lsp {
		if !known[lspFingerprint(v)] {
			filtered.Lsp = append(filtered.Lsp, v)
		}
	}
	for _, v := range r.Isp {
		if !known[ispFingerprint(v)] {
			filtered.Isp = append(filtered.Isp, v)
		}
	}
	return &filtered, nil
}
