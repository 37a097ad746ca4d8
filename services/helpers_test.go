package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"serialvault/models"
	"serialvault/utils"
)

// newTestDB 테스트용 인메모리 SQLite. 커넥션이 늘어나면 각자 빈 메모리 DB를
// 보게 되므로 커넥션을 하나로 고정합니다.
func newTestDB(t *testing.T) SQLExecutor {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE serials (
			serial_hash VARCHAR(64) PRIMARY KEY,
			serial_key VARCHAR(255) UNIQUE NOT NULL,
			machine_id VARCHAR(255) NOT NULL,
			user_name VARCHAR(255) NOT NULL DEFAULT '',
			tier VARCHAR(50) NOT NULL DEFAULT 'trial',
			created_at VARCHAR(50) NOT NULL DEFAULT '',
			expires_at VARCHAR(50) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT 1,
			last_check_time VARCHAR(50),
			check_count INT NOT NULL DEFAULT 0,
			revoked_at VARCHAR(50),
			revoked_reason VARCHAR(255),
			force_online BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE blacklist (
			machine_id VARCHAR(255) PRIMARY KEY,
			reason VARCHAR(255) NOT NULL DEFAULT '',
			created_at VARCHAR(50) NOT NULL DEFAULT '',
			created_by VARCHAR(100) NOT NULL DEFAULT 'admin'
		)`,
		`CREATE TABLE validation_tokens (
			token_hash VARCHAR(64) PRIMARY KEY,
			issued_at VARCHAR(50) NOT NULL DEFAULT '',
			expires_at VARCHAR(50) NOT NULL DEFAULT '',
			usage_count INT NOT NULL DEFAULT 0,
			created_by VARCHAR(100) NOT NULL DEFAULT 'admin'
		)`,
		`CREATE TABLE validation_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			serial_hash VARCHAR(64) NOT NULL,
			machine_id VARCHAR(255) NOT NULL,
			validation_time VARCHAR(50) NOT NULL,
			result VARCHAR(50) NOT NULL,
			client_ip VARCHAR(64),
			validation_method VARCHAR(20) NOT NULL DEFAULT 'standard'
		)`,
	}

	for _, query := range schema {
		_, err := db.Exec(query)
		require.NoError(t, err)
	}

	return NewSQLExecutor(db)
}

// registerTestSerial 기본값이 채워진 시리얼을 등록합니다.
func registerTestSerial(t *testing.T, db SQLExecutor, req models.RegisterRequest) models.Serial {
	t.Helper()

	serial, err := NewSerialService(db).Register(context.Background(), req)
	require.NoError(t, err)
	return serial
}

// expireSerial 만료 시각을 과거로 되돌립니다.
func expireSerial(t *testing.T, db SQLExecutor, serialKey string) {
	t.Helper()

	past := utils.FormatDateTimeForDB(utils.NowSeoul().Add(-48 * time.Hour))
	_, err := db.ExecContext(context.Background(),
		"UPDATE serials SET expires_at = ? WHERE serial_hash = ?",
		past, utils.HashSerial(serialKey),
	)
	require.NoError(t, err)
}

// countLogs 검증 로그 건수
func countLogs(t *testing.T, db SQLExecutor) int {
	t.Helper()

	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM validation_logs",
	).Scan(&count)
	require.NoError(t, err)
	return count
}
