// Package config lee la configuración del proceso desde variables de entorno.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// DBDSN vacío => adapters in-memory (modo dev).
	DBDSN     string
	DBMigrate bool

	LogLevel  string
	LogFormat string
	AppName   string

	OdinBaseURL string
	OdinAPIKey  string

	// Si PatientDirectoryURL está vacío se usa el directorio local (tabla patients).
	PatientDirectoryURL    string
	PatientDirectoryAPIKey string

	OTLPEndpoint string
	SampleRate   float64

	KafkaBrokers        []string
	ScheduleEventsTopic string
	OutboxPollInterval  time.Duration
	OutboxBatchSize     int
}

func Load() Config {
	return Config{
		Port:      getenv("PORT", "8080"),
		DBDSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
		DBMigrate: getbool("DB_MIGRATE", false),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
		AppName:   getenv("APP_NAME", "medicine-schedule-service"),

		OdinBaseURL: strings.TrimSpace(os.Getenv("ODIN_BASE_URL")),
		OdinAPIKey:  strings.TrimSpace(os.Getenv("ODIN_API_KEY")),

		PatientDirectoryURL:    strings.TrimSpace(os.Getenv("PATIENT_DIRECTORY_URL")),
		PatientDirectoryAPIKey: strings.TrimSpace(os.Getenv("PATIENT_DIRECTORY_API_KEY")),

		OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		SampleRate:   getfloat("OTEL_SAMPLE_RATE", 1.0),

		KafkaBrokers:        getlist("KAFKA_BROKERS", []string{"localhost:9092"}),
		ScheduleEventsTopic: getenv("SCHEDULE_EVENTS_TOPIC", "medicine-schedule-events"),
		OutboxPollInterval:  getduration("OUTBOX_POLL_INTERVAL", time.Second),
		OutboxBatchSize:     getint("OUTBOX_BATCH_SIZE", 100),
	}
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getint(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getfloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return v
}

func getduration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getlist(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
