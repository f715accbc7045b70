package env

import (
	"os"
	"strconv"
	"time"
)

// Discovery-Quellen für den Service-Katalog.
const (
	DiscoveryNone   = "none"
	DiscoveryCSV    = "csv"
	DiscoverySQLite = "sqlite"
)

// Common enthält Werte, die beide Services teilen.
type Common struct {
	ServerAddr  string  // SERVER_ADDR – Adresse des HTTP-Servers
	Discovery   string  // DISCOVERY – "csv", "sqlite" oder "none"
	CatalogFile string  // CATALOG_FILE – Pfad zum CSV-Katalog (Standard: "services.csv")
	RegistryDSN string  // REGISTRY_DSN – SQLite-Datei des Katalogs (Standard: "registry.db")
	RateLimit   float64 // RATE_LIMIT – Erlaubte Anfragen pro Sekunde (Standard: 100)
	LogLevel    string  // LOG_LEVEL – zap-Level (Standard: "info")
}

// BackendConfig ist die Konfiguration des Farb-Service.
type BackendConfig struct {
	Common
	Color        string // COLOR – aktive Farbe (Standard: "green")
	ServiceName  string // SERVICE_NAME – logischer Name für die Registrierung
	InstanceURL  string // INSTANCE_URL – Adresse, unter der die Instanz erreichbar ist
	InstanceZone string // INSTANCE_ZONE – rein informativ
}

// FrontendConfig ist die Konfiguration des Frontend-Proxys.
type FrontendConfig struct {
	Common
	BackendService string        // BACKEND_SERVICE – logischer Name des Farb-Service
	LBStrategy     string        // LB_STRATEGY – "round_robin" oder "random"
	ClientTimeout  time.Duration // HTTP_CLIENT_TIMEOUT – 0 bedeutet kein Timeout
}

// MustLoadBackend liest die Backend-Konfiguration aus Umgebungsvariablen.
func MustLoadBackend() BackendConfig {
	return BackendConfig{
		Common:       loadCommon(":8081", DiscoveryNone),
		Color:        getOr("COLOR", "green"),
		ServiceName:  getOr("SERVICE_NAME", "blueorgreen"),
		InstanceURL:  getOr("INSTANCE_URL", "http://localhost:8081"),
		InstanceZone: getOr("INSTANCE_ZONE", "default"),
	}
}

// MustLoadFrontend liest die Frontend-Konfiguration aus Umgebungsvariablen.
func MustLoadFrontend() FrontendConfig {
	return FrontendConfig{
		Common:         loadCommon(":8080", DiscoveryCSV),
		BackendService: getOr("BACKEND_SERVICE", "blueorgreen"),
		LBStrategy:     getOr("LB_STRATEGY", "round_robin"),
		ClientTimeout:  getDurationOr("HTTP_CLIENT_TIMEOUT", 0),
	}
}

func loadCommon(addr, discovery string) Common {
	return Common{
		ServerAddr:  getOr("SERVER_ADDR", addr),
		Discovery:   getOr("DISCOVERY", discovery),
		CatalogFile: getOr("CATALOG_FILE", "services.csv"),
		RegistryDSN: getOr("REGISTRY_DSN", "registry.db"),
		RateLimit:   getFloatOr("RATE_LIMIT", 100),
		LogLevel:    getOr("LOG_LEVEL", "info"),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
