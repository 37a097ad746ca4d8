package database

import (
	"database/sql"
	"fmt"
	"strings"

	"serialvault/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var DB *sql.DB
var dbType string

// Initialize 데이터베이스 초기화
// t: "sqlite" 또는 "mysql"
// dsn: SQLite 파일 경로 또는 MySQL DSN
func Initialize(t, dsn string) error {
	var err error

	if t == "" {
		t = "sqlite"
	}
	if dsn == "" && t == "sqlite" {
		dsn = "./serialvault.db"
	}

	dbType = t

	DB, err = sql.Open(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite: 동시 쓰기 경합 완화
	if dbType == "sqlite" {
		if _, err := DB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			return fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := createDefaultAdmin(); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Info("Database initialized successfully (%s)", dbType)
	return nil
}

// Type 현재 사용 중인 데이터베이스 타입
func Type() string {
	return dbType
}

// createTables 테이블 생성. SQLite와 MySQL을 모두 지원합니다.
func createTables() error {
	logTableSQLite := `CREATE TABLE IF NOT EXISTS validation_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		serial_hash VARCHAR(64) NOT NULL,
		machine_id VARCHAR(255) NOT NULL,
		validation_time VARCHAR(50) NOT NULL,
		result VARCHAR(50) NOT NULL,
		client_ip VARCHAR(64),
		validation_method VARCHAR(20) NOT NULL DEFAULT 'standard'
	)`
	logTableMySQL := `CREATE TABLE IF NOT EXISTS validation_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		serial_hash VARCHAR(64) NOT NULL,
		machine_id VARCHAR(255) NOT NULL,
		validation_time VARCHAR(50) NOT NULL,
		result VARCHAR(50) NOT NULL,
		client_ip VARCHAR(64),
		validation_method VARCHAR(20) NOT NULL DEFAULT 'standard'
	)`

	tables := []string{
		// 시리얼 테이블: 조회 키는 serial_hash
		`CREATE TABLE IF NOT EXISTS serials (
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

		// 블랙리스트 테이블
		`CREATE TABLE IF NOT EXISTS blacklist (
			machine_id VARCHAR(255) PRIMARY KEY,
			reason VARCHAR(255) NOT NULL DEFAULT '',
			created_at VARCHAR(50) NOT NULL DEFAULT '',
			created_by VARCHAR(100) NOT NULL DEFAULT 'admin'
		)`,

		// 검증 토큰 테이블: 원본 토큰은 저장하지 않음
		`CREATE TABLE IF NOT EXISTS validation_tokens (
			token_hash VARCHAR(64) PRIMARY KEY,
			issued_at VARCHAR(50) NOT NULL DEFAULT '',
			expires_at VARCHAR(50) NOT NULL DEFAULT '',
			usage_count INT NOT NULL DEFAULT 0,
			created_by VARCHAR(100) NOT NULL DEFAULT 'admin'
		)`,

		// 관리자 테이블
		`CREATE TABLE IF NOT EXISTS admins (
			id VARCHAR(50) PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			email VARCHAR(100) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'admin',
			created_at VARCHAR(50) NOT NULL DEFAULT '',
			updated_at VARCHAR(50) NOT NULL DEFAULT ''
		)`,
	}

	indexes := []string{
		`CREATE INDEX idx_serials_machine ON serials(machine_id)`,
		`CREATE INDEX idx_serials_active ON serials(is_active)`,
		`CREATE INDEX idx_logs_time ON validation_logs(validation_time)`,
		`CREATE INDEX idx_logs_serial ON validation_logs(serial_hash)`,
		`CREATE INDEX idx_tokens_expires ON validation_tokens(expires_at)`,
	}

	if dbType == "sqlite" {
		tables = append(tables, logTableSQLite)
	} else {
		tables = append(tables, logTableMySQL)
	}

	for _, query := range tables {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// MySQL은 CREATE INDEX IF NOT EXISTS를 지원하지 않으므로 중복 오류는 무시
	for _, query := range indexes {
		if dbType == "sqlite" {
			query = strings.Replace(query, "CREATE INDEX", "CREATE INDEX IF NOT EXISTS", 1)
		}
		if _, err := DB.Exec(query); err != nil {
			if !isDuplicateError(err) {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
	}

	return nil
}

// isDuplicateError 이미 존재하는 인덱스/키 오류 여부
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
}

// createDefaultAdmin 관리자가 하나도 없으면 기본 계정 생성
func createDefaultAdmin() error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	// bcrypt 해시 (비밀번호: admin123)
	hashedPassword := "$2a$10$qSCYloReyQ4gid/Gxf4gquDv3LaMmzC/2lnxvnfAAKnRkkaqXoOha"

	_, err := DB.Exec(
		`INSERT INTO admins (id, username, password, email, role) VALUES (?, ?, ?, ?, ?)`,
		"admin-001", "admin", hashedPassword, "admin@example.com", "super_admin",
	)
	if err != nil {
		return err
	}

	logger.Info("Default admin created (username: admin, password: admin123)")
	return nil
}

// Close 데이터베이스 연결 종료
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
