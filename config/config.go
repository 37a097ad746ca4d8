package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 서버 기동에 필요한 설정 값
type Config struct {
	Port          string
	DBType        string // sqlite 또는 mysql
	DBDSN         string
	LogDir        string
	TokenTTLHours int  // 검증 토큰 기본 유효 시간
	ForceOnline   bool // true면 모든 시리얼에 온라인 검증 강제
}

// DefaultConfig 기본 설정 값
func DefaultConfig() *Config {
	return &Config{
		Port:          "8080",
		DBType:        "sqlite",
		DBDSN:         "./serialvault.db",
		LogDir:        "./logs",
		TokenTTLHours: 24,
		ForceOnline:   false,
	}
}

// Load .env 파일과 환경변수에서 설정을 읽습니다. 환경변수가 .env보다 우선합니다.
func Load() *Config {
	// .env는 선택 사항
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		cfg.DBType = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.TokenTTLHours = hours
		}
	}
	if v := os.Getenv("FORCE_ONLINE_ALL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ForceOnline = b
		}
	}

	return cfg
}
