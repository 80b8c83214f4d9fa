package migration

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Migration tek bir migration dosyasını temsil eder
type Migration struct {
	Version   string
	Name      string
	Path      string
	AppliedAt *time.Time
}

// Runner migrations/ klasöründeki .sql dosyalarını sırayla uygular.
// Uygulanan versiyonlar schema_migrations tablosunda tutulur; her dosya
// kendi transaction'ında koşar.
type Runner struct {
	db  *sql.DB
	dir string
}

// NewRunner yeni migration runner oluşturur
func NewRunner(db *sql.DB, dir string) *Runner {
	return &Runner{db: db, dir: dir}
}

// Init schema_migrations tablosunu oluşturur
func (r *Runner) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("schema_migrations tablosu oluşturulamadı: %w", err)
	}

	return nil
}

// Up bekleyen tüm migration'ları uygular
func (r *Runner) Up() error {
	if err := r.Init(); err != nil {
		return err
	}

	migrations, err := r.loadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return err
	}

	count := 0
	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		if err := r.apply(m); err != nil {
			return fmt.Errorf("migration %s uygulanamadı: %w", m.Version, err)
		}

		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("✅ Migration uygulandı")
		count++
	}

	if count == 0 {
		log.Info().Msg("Bekleyen migration yok")
	}

	return nil
}

// Status migration'ları uygulanma durumlarıyla döner
func (r *Runner) Status() ([]*Migration, error) {
	if err := r.Init(); err != nil {
		return nil, err
	}

	migrations, err := r.loadMigrations()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migration durumu sorgusu hatası: %w", err)
	}
	defer rows.Close()

	appliedAt := make(map[string]time.Time)
	for rows.Next() {
		var version string
		var at time.Time
		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("migration durumu scan hatası: %w", err)
		}
		appliedAt[version] = at
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range migrations {
		if at, ok := appliedAt[m.Version]; ok {
			t := at
			m.AppliedAt = &t
		}
	}

	return migrations, nil
}

// apply tek bir migration dosyasını transaction içinde uygular
func (r *Runner) apply(m *Migration) error {
	content, err := os.ReadFile(m.Path)
	if err != nil {
		return fmt.Errorf("migration dosyası okunamadı: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		m.Version, m.Name,
	); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// appliedVersions uygulanmış versiyonları set olarak döner
func (r *Runner) appliedVersions() (map[string]struct{}, error) {
	rows, err := r.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("uygulanmış migration sorgusu hatası: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migration scan hatası: %w", err)
		}
		applied[version] = struct{}{}
	}

	return applied, rows.Err()
}

// loadMigrations migrations klasöründeki .sql dosyalarını versiyona göre
// sıralı yükler. Dosya adı formatı: 001_create_users.sql
func (r *Runner) loadMigrations() ([]*Migration, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("migration klasörü okunamadı: %w", err)
	}

	var migrations []*Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(strings.TrimSuffix(entry.Name(), ".sql"), "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("geçersiz migration dosya adı: %s", entry.Name())
		}

		migrations = append(migrations, &Migration{
			Version: parts[0],
			Name:    parts[1],
			Path:    filepath.Join(r.dir, entry.Name()),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}
