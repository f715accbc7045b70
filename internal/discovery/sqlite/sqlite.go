package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"blueorgreen/internal/discovery"
	"blueorgreen/internal/domain"
)

// Registry implementiert discovery.Resolver und discovery.Registrar auf
// einer SQLite-Datei, die sich mehrere Prozesse teilen können.
type Registry struct {
	db           *sql.DB
	maxInstances int
	logger       *zap.Logger
}

// NewRegistry öffnet die SQLite-Datenbank unter dsn und erstellt das Schema.
// maxInstances begrenzt die Anzahl registrierter Instanzen; 0 bedeutet unbegrenzt.
func NewRegistry(dsn string, maxInstances int, logger *zap.Logger) (*Registry, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	if dsn == ":memory:" {
		// jede neue Verbindung sähe sonst eine eigene, leere Datenbank
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS instances (
			id      TEXT PRIMARY KEY,
			service TEXT NOT NULL,
			url     TEXT NOT NULL,
			zone    TEXT NOT NULL DEFAULT '',
			status  TEXT NOT NULL DEFAULT 'UP'
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tabelle erstellen: %w", err)
	}

	logger.Info("sqlite-registry initialisiert", zap.String("dsn", dsn))
	return &Registry{db: db, maxInstances: maxInstances, logger: logger}, nil
}

// withPragmas ergänzt Datei-DSNs um WAL, Busy-Timeout und sofortige
// Schreibsperre, damit sich mehrere Prozesse die Datei teilen können.
func withPragmas(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Instances gibt alle Instanzen eines Service in Registrierungsreihenfolge zurück.
func (r *Registry) Instances(ctx context.Context, service string) ([]domain.Instance, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, service, url, zone, status FROM instances WHERE service = ? ORDER BY rowid",
		discovery.NormalizeService(service))
	if err != nil {
		return nil, fmt.Errorf("abfrage: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Instance, 0)
	for rows.Next() {
		var inst domain.Instance
		if err := rows.Scan(&inst.ID, &inst.Service, &inst.URL, &inst.Zone, &inst.Status); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("service %q: %w", service, domain.ErrNoInstances)
	}
	return out, nil
}

// Register legt eine Instanz an oder aktualisiert sie anhand ihrer ID.
// Ohne ID wird eine neue UUID vergeben. Ältere Einträge mit gleichem
// Service und gleicher URL werden ersetzt, etwa nach einem Neustart ohne Abmeldung.
func (r *Registry) Register(ctx context.Context, inst domain.Instance) (domain.Instance, error) {
	inst, err := discovery.Validate(inst)
	if err != nil {
		return domain.Instance{}, err
	}
	if inst.ID == "" {
		inst.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("transaktion starten: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if r.maxInstances > 0 {
		var count int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM instances WHERE id <> ? AND NOT (service = ? AND url = ?)",
			inst.ID, inst.Service, inst.URL,
		).Scan(&count); err != nil {
			return domain.Instance{}, fmt.Errorf("anzahl abfragen: %w", err)
		}
		if count >= r.maxInstances {
			return domain.Instance{}, fmt.Errorf("max %d instanzen: %w", r.maxInstances, domain.ErrInvalidInput)
		}
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM instances WHERE service = ? AND url = ? AND id <> ?",
		inst.Service, inst.URL, inst.ID)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("veraltete instanzen löschen: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.logger.Info("veraltete instanzen ersetzt",
			zap.String("service", inst.Service),
			zap.String("url", inst.URL),
			zap.Int64("anzahl", n),
		)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO instances (id, service, url, zone, status) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			service = excluded.service,
			url     = excluded.url,
			zone    = excluded.zone,
			status  = excluded.status`,
		inst.ID, inst.Service, inst.URL, inst.Zone, inst.Status,
	); err != nil {
		return domain.Instance{}, fmt.Errorf("instanz speichern: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Instance{}, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("instanz registriert",
		zap.String("id", inst.ID),
		zap.String("service", inst.Service),
		zap.String("url", inst.URL),
	)
	return inst, nil
}

// Deregister entfernt die Instanz mit der angegebenen ID.
func (r *Registry) Deregister(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM instances WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("instanz löschen: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("betroffene zeilen: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("instanz %s: %w", id, domain.ErrNotFound)
	}
	r.logger.Info("instanz abgemeldet", zap.String("id", id))
	return nil
}
