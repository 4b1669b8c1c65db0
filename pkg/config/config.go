package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	RoomPlan RoomPlanConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RoomPlanWeights are the default soft-factor dials, each 0-100, used when
// a preview request does not override them.
type RoomPlanWeights struct {
	SubjectAffinity  int
	CapacityFit      int
	TeacherProximity int
	Distribution     int
	GradeGrouping    int
}

// RoomPlanConstraints are the default hard-rule switches.
type RoomPlanConstraints struct {
	EnforceCapacity   bool
	EnforceLab        bool
	PreferConsecutive bool
}

// RoomPlanConfig governs the room assignment engine and its preview store.
type RoomPlanConfig struct {
	ProposalTTL       time.Duration
	RoomCacheTTL      time.Duration
	LabClassPattern   string
	LabRoomPattern    string
	ConsecutiveGapMin int
	Weights           RoomPlanWeights
	Constraints       RoomPlanConstraints
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.RoomPlan = RoomPlanConfig{
		ProposalTTL:       parseDuration(v.GetString("ROOMPLAN_PROPOSAL_TTL"), 30*time.Minute),
		RoomCacheTTL:      parseDuration(v.GetString("ROOMPLAN_ROOM_CACHE_TTL"), 5*time.Minute),
		LabClassPattern:   v.GetString("ROOMPLAN_LAB_CLASS_PATTERN"),
		LabRoomPattern:    v.GetString("ROOMPLAN_LAB_ROOM_PATTERN"),
		ConsecutiveGapMin: v.GetInt("ROOMPLAN_CONSECUTIVE_GAP_MIN"),
		Weights: RoomPlanWeights{
			SubjectAffinity:  v.GetInt("ROOMPLAN_WEIGHT_SUBJECT_AFFINITY"),
			CapacityFit:      v.GetInt("ROOMPLAN_WEIGHT_CAPACITY_FIT"),
			TeacherProximity: v.GetInt("ROOMPLAN_WEIGHT_TEACHER_PROXIMITY"),
			Distribution:     v.GetInt("ROOMPLAN_WEIGHT_DISTRIBUTION"),
			GradeGrouping:    v.GetInt("ROOMPLAN_WEIGHT_GRADE_GROUPING"),
		},
		Constraints: RoomPlanConstraints{
			EnforceCapacity:   v.GetBool("ROOMPLAN_ENFORCE_CAPACITY"),
			EnforceLab:        v.GetBool("ROOMPLAN_ENFORCE_LAB"),
			PreferConsecutive: v.GetBool("ROOMPLAN_PREFER_CONSECUTIVE"),
		},
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ijw_calander")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ROOMPLAN_PROPOSAL_TTL", "30m")
	v.SetDefault("ROOMPLAN_ROOM_CACHE_TTL", "5m")
	v.SetDefault("ROOMPLAN_LAB_CLASS_PATTERN", "")
	v.SetDefault("ROOMPLAN_LAB_ROOM_PATTERN", "")
	v.SetDefault("ROOMPLAN_CONSECUTIVE_GAP_MIN", 5)
	v.SetDefault("ROOMPLAN_WEIGHT_SUBJECT_AFFINITY", 50)
	v.SetDefault("ROOMPLAN_WEIGHT_CAPACITY_FIT", 50)
	v.SetDefault("ROOMPLAN_WEIGHT_TEACHER_PROXIMITY", 50)
	v.SetDefault("ROOMPLAN_WEIGHT_DISTRIBUTION", 50)
	v.SetDefault("ROOMPLAN_WEIGHT_GRADE_GROUPING", 50)
	v.SetDefault("ROOMPLAN_ENFORCE_CAPACITY", true)
	v.SetDefault("ROOMPLAN_ENFORCE_LAB", true)
	v.SetDefault("ROOMPLAN_PREFER_CONSECUTIVE", true)

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
