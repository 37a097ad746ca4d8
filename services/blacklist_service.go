package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/utils"
)

var (
	// ErrMachineNotBlacklisted는 블랙리스트에 없는 머신을 제거하려 할 때 반환됩니다.
	ErrMachineNotBlacklisted = errors.New("machine is not blacklisted")
	// ErrInvalidMachineID는 머신 ID가 비어 있을 때 반환됩니다.
	ErrInvalidMachineID = errors.New("machine_id is required")
)

// BlacklistService는 머신 차단 목록 관리를 정의합니다.
type BlacklistService interface {
	Add(ctx context.Context, machineID, reason, createdBy string) error
	Remove(ctx context.Context, machineID string) error
	Check(ctx context.Context, machineID string) (*models.BlacklistEntry, error)
}

type blacklistService struct {
	db SQLExecutor
}

// NewBlacklistService는 BlacklistService 구현체를 생성합니다.
func NewBlacklistService(db SQLExecutor) BlacklistService {
	return &blacklistService{db: db}
}

// Add 머신을 블랙리스트에 추가하고, 같은 트랜잭션 안에서 해당 머신에 바인딩된
// 모든 활성 시리얼을 정지합니다. 차단 중에 검증이 끼어들어 통과하는 일이 없도록
// 두 쓰기는 반드시 함께 커밋됩니다.
func (s *blacklistService) Add(ctx context.Context, machineID, reason, createdBy string) error {
	if machineID == "" {
		return ErrInvalidMachineID
	}
	if reason == "" {
		reason = "policy violation"
	}

	now := utils.FormatDateTimeForDB(utils.NowSeoul())

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin blacklist tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE blacklist SET reason = ?, created_at = ?, created_by = ?
		WHERE machine_id = ?`, reason, now, createdBy, machineID,
	)
	if err != nil {
		return fmt.Errorf("upsert blacklist entry: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO blacklist (machine_id, reason, created_at, created_by)
			VALUES (?, ?, ?, ?)`, machineID, reason, now, createdBy,
		); err != nil {
			return fmt.Errorf("insert blacklist entry: %w", err)
		}
	}

	// 연쇄 정지. 차단 이후 등록된 시리얼은 영향을 받지 않으며
	// 검증 시점의 블랙리스트 확인이 그 경우를 막습니다.
	cascade, err := tx.ExecContext(ctx, `
		UPDATE serials SET is_active = 0, revoked_at = ?, revoked_reason = ?
		WHERE machine_id = ? AND is_active = 1`,
		now, "auto-revoked by blacklist: "+reason, machineID,
	)
	if err != nil {
		return fmt.Errorf("cascade revoke serials: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit blacklist tx: %w", err)
	}

	revoked, _ := cascade.RowsAffected()
	logger.WithFields(map[string]interface{}{
		"machine_id":      machineID,
		"reason":          reason,
		"revoked_serials": revoked,
	}).Info("Machine blacklisted")

	return nil
}

// Remove 블랙리스트 항목만 제거합니다. 연쇄 정지된 시리얼은 복구되지 않으며
// 개별 Restore로만 되살릴 수 있습니다.
func (s *blacklistService) Remove(ctx context.Context, machineID string) error {
	if machineID == "" {
		return ErrInvalidMachineID
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM blacklist WHERE machine_id = ?", machineID,
	)
	if err != nil {
		return fmt.Errorf("remove blacklist entry: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrMachineNotBlacklisted
	}

	logger.WithFields(map[string]interface{}{
		"machine_id": machineID,
	}).Info("Machine removed from blacklist")
	return nil
}

// Check 블랙리스트 조회. 없으면 nil을 반환합니다.
func (s *blacklistService) Check(ctx context.Context, machineID string) (*models.BlacklistEntry, error) {
	if machineID == "" {
		return nil, ErrInvalidMachineID
	}

	var entry models.BlacklistEntry
	err := s.db.QueryRowContext(ctx,
		"SELECT machine_id, reason, created_at, created_by FROM blacklist WHERE machine_id = ?",
		machineID,
	).Scan(&entry.MachineID, &entry.Reason, &entry.CreatedAt, &entry.CreatedBy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query blacklist entry: %w", err)
	}

	return &entry, nil
}
