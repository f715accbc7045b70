package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	"blueorgreen/internal/domain"
)

// catalogRow ist eine Zeile der Katalogdatei mit Kopfzeile service,url,zone,status.
type catalogRow struct {
	Service string `csv:"service"`
	URL     string `csv:"url"`
	Zone    string `csv:"zone"`
	Status  string `csv:"status"`
}

// Catalog implementiert discovery.Resolver und hält alle Instanzen im Arbeitsspeicher.
type Catalog struct {
	mu        sync.RWMutex
	instances map[string][]domain.Instance
	logger    *zap.Logger
}

// NewCatalog lädt die Katalogdatei unter filePath sofort in den Speicher.
func NewCatalog(filePath string, logger *zap.Logger) (*Catalog, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("csv-katalog: datei öffnen %s: %w", filePath, err)
	}
	defer file.Close()

	c, err := NewCatalogFromReader(file, logger)
	if err != nil {
		return nil, fmt.Errorf("csv-katalog %s: %w", filePath, err)
	}
	return c, nil
}

// NewCatalogFromReader liest einen Katalog aus r.
func NewCatalogFromReader(r io.Reader, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{instances: make(map[string][]domain.Instance), logger: logger}
	if err := c.load(r); err != nil {
		return nil, err
	}
	return c, nil
}

// load liest alle Zeilen und übernimmt die gültigen; ungültige werden übersprungen.
func (c *Catalog) load(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reader := stdcsv.NewReader(r)
	reader.TrimLeadingSpace = true

	var rows []catalogRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return fmt.Errorf("csv lesen: %w", err)
	}

	total := 0
	for i, row := range rows {
		inst, err := discovery.Validate(domain.Instance{
			Service: row.Service,
			URL:     row.URL,
			Zone:    row.Zone,
			Status:  row.Status,
		})
		if err != nil {
			c.logger.Warn("ungültiger katalogeintrag wird übersprungen",
				zap.Int("zeile", i+2),
				zap.Error(err),
			)
			continue
		}
		inst.ID = fmt.Sprintf("%s-%d", inst.Service, len(c.instances[inst.Service])+1)
		c.instances[inst.Service] = append(c.instances[inst.Service], inst)
		total++
	}

	c.logger.Info("service-katalog aus CSV geladen",
		zap.Int("instanzen", total),
		zap.Int("services", len(c.instances)),
	)
	return nil
}

// Instances gibt alle Instanzen des Service zurück, auch solche mit Status DOWN.
func (c *Catalog) Instances(_ context.Context, service string) ([]domain.Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found, ok := c.instances[discovery.NormalizeService(service)]
	if !ok || len(found) == 0 {
		return nil, fmt.Errorf("service %q: %w", service, domain.ErrNoInstances)
	}
	out := make([]domain.Instance, len(found))
	copy(out, found)
	return out, nil
}
