package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/utils"
)

var (
	// ErrSerialNotFound는 시리얼이 존재하지 않을 때 반환됩니다.
	ErrSerialNotFound = errors.New("serial not found")
	// ErrInvalidSerialInput은 필수 입력이 비어 있을 때 반환됩니다.
	ErrInvalidSerialInput = errors.New("serial_key and machine_id are required")
)

// SerialService는 시리얼 등록과 수명 주기 관리를 정의합니다.
type SerialService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.Serial, error)
	Revoke(ctx context.Context, serialKey, reason string) error
	Restore(ctx context.Context, serialKey string) error
	Status(ctx context.Context, serialKey string) (models.SerialStatus, error)
}

type serialService struct {
	db SQLExecutor
}

// NewSerialService는 SerialService 구현체를 생성합니다.
func NewSerialService(db SQLExecutor) SerialService {
	return &serialService{db: db}
}

// Register 시리얼 등록. serial_hash 기준 upsert이므로 같은 키를 다시 등록하면
// 바인딩/티어/만료일이 새 값으로 덮어써지고 누적 상태는 초기화됩니다.
func (s *serialService) Register(ctx context.Context, req models.RegisterRequest) (models.Serial, error) {
	if req.SerialKey == "" || req.MachineID == "" {
		return models.Serial{}, ErrInvalidSerialInput
	}

	if req.Tier == "" {
		req.Tier = "trial"
	}
	if req.Days <= 0 {
		req.Days = 7
	}

	serialHash := utils.HashSerial(req.SerialKey)
	now := utils.NowSeoul()
	createdAt := utils.FormatDateTimeForDB(now)
	expiresAt := utils.FormatDateTimeForDB(now.Add(time.Duration(req.Days) * 24 * time.Hour))

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return models.Serial{}, fmt.Errorf("begin register tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// UPDATE 후 INSERT 방식의 upsert. SQLite와 MySQL 문법 차이를 피합니다.
	result, err := tx.ExecContext(ctx, `
		UPDATE serials
		SET serial_key = ?, machine_id = ?, user_name = ?, tier = ?,
			created_at = ?, expires_at = ?, is_active = 1,
			last_check_time = NULL, check_count = 0,
			revoked_at = NULL, revoked_reason = NULL, force_online = ?
		WHERE serial_hash = ?`,
		req.SerialKey, req.MachineID, req.UserName, req.Tier,
		createdAt, expiresAt, req.ForceOnline, serialHash,
	)
	if err != nil {
		return models.Serial{}, fmt.Errorf("upsert serial: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO serials (serial_hash, serial_key, machine_id, user_name, tier,
				created_at, expires_at, is_active, check_count, force_online)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1, 0, ?)`,
			serialHash, req.SerialKey, req.MachineID, req.UserName, req.Tier,
			createdAt, expiresAt, req.ForceOnline,
		); err != nil {
			return models.Serial{}, fmt.Errorf("insert serial: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.Serial{}, fmt.Errorf("commit register tx: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"machine_id":   req.MachineID,
		"tier":         req.Tier,
		"days":         req.Days,
		"force_online": req.ForceOnline,
		"overwrite":    affected > 0,
	}).Info("Serial registered")

	return models.Serial{
		SerialKey:   req.SerialKey,
		SerialHash:  serialHash,
		MachineID:   req.MachineID,
		UserName:    req.UserName,
		Tier:        req.Tier,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		IsActive:    true,
		ForceOnline: req.ForceOnline,
	}, nil
}

// Revoke 시리얼 정지
func (s *serialService) Revoke(ctx context.Context, serialKey, reason string) error {
	if serialKey == "" {
		return ErrInvalidSerialInput
	}
	if reason == "" {
		reason = "revoked by admin"
	}

	serialHash := utils.HashSerial(serialKey)
	now := utils.FormatDateTimeForDB(utils.NowSeoul())

	result, err := s.db.ExecContext(ctx, `
		UPDATE serials SET is_active = 0, revoked_at = ?, revoked_reason = ?
		WHERE serial_hash = ?`, now, reason, serialHash,
	)
	if err != nil {
		return fmt.Errorf("revoke serial: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrSerialNotFound
	}

	logger.WithFields(map[string]interface{}{
		"reason": reason,
	}).Info("Serial revoked")
	return nil
}

// Restore 정지된 시리얼 복구
func (s *serialService) Restore(ctx context.Context, serialKey string) error {
	if serialKey == "" {
		return ErrInvalidSerialInput
	}

	serialHash := utils.HashSerial(serialKey)

	result, err := s.db.ExecContext(ctx, `
		UPDATE serials SET is_active = 1, revoked_at = NULL, revoked_reason = NULL
		WHERE serial_hash = ?`, serialHash,
	)
	if err != nil {
		return fmt.Errorf("restore serial: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrSerialNotFound
	}

	logger.Info("Serial restored")
	return nil
}

// Status 시리얼 상태 조회. 검증 로그를 남기지 않는 관리자용 조회입니다.
func (s *serialService) Status(ctx context.Context, serialKey string) (models.SerialStatus, error) {
	if serialKey == "" {
		return models.SerialStatus{}, ErrInvalidSerialInput
	}

	serialHash := utils.HashSerial(serialKey)

	var (
		status        models.SerialStatus
		revokedAt     sql.NullString
		revokedReason sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT machine_id, user_name, tier, expires_at, is_active, check_count,
			force_online, revoked_at, revoked_reason
		FROM serials WHERE serial_hash = ?`, serialHash,
	).Scan(
		&status.MachineID, &status.UserName, &status.Tier, &status.ExpiresAt,
		&status.IsActive, &status.CheckCount, &status.ForceOnline,
		&revokedAt, &revokedReason,
	)

	if err == sql.ErrNoRows {
		return models.SerialStatus{Found: false}, nil
	}
	if err != nil {
		return models.SerialStatus{}, fmt.Errorf("query serial status: %w", err)
	}

	status.Found = true
	if revokedAt.Valid {
		status.RevokedAt = &revokedAt.String
	}
	if revokedReason.Valid {
		status.RevokedReason = &revokedReason.String
	}

	return status, nil
}
