package services

import (
	"context"
	"database/sql"
	"fmt"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/utils"
)

// ValidationService는 시리얼 검증 판정 절차를 정의합니다.
type ValidationService interface {
	Validate(ctx context.Context, req models.ValidateRequest, clientIP string) (models.Verdict, error)
}

type validationService struct {
	db     SQLExecutor
	tokens TokenService

	// true면 시리얼별 플래그와 무관하게 모든 검증에 토큰을 요구합니다.
	forceOnlineAll bool
}

// NewValidationService는 ValidationService 구현체를 생성합니다.
func NewValidationService(db SQLExecutor, tokens TokenService, forceOnlineAll bool) ValidationService {
	return &validationService{db: db, tokens: tokens, forceOnlineAll: forceOnlineAll}
}

// Validate 시리얼 검증. 판정 순서는 고정입니다:
// 블랙리스트 → 존재 → 온라인 검증 토큰 → 머신 바인딩 → 정지 상태 → 만료.
// 차단된 머신에는 시리얼 존재 여부조차 노출하지 않도록 블랙리스트를 가장 먼저 확인합니다.
// 각 시도는 성공/실패와 무관하게 감사 로그를 정확히 한 건 남기며,
// 판독과 갱신은 하나의 트랜잭션 안에서 수행됩니다.
func (s *validationService) Validate(ctx context.Context, req models.ValidateRequest, clientIP string) (verdict models.Verdict, err error) {
	if req.SerialKey == "" || req.MachineID == "" {
		return models.Verdict{
			Valid:   false,
			Result:  models.ResultInvalidInput,
			Message: "serial_key and machine_id are required",
		}, nil
	}

	serialHash := utils.HashSerial(req.SerialKey)
	now := utils.NowSeoul()
	nowStr := utils.FormatDateTimeForDB(now)
	method := models.MethodStandard

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return models.Verdict{}, fmt.Errorf("begin validation tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deny := func(result models.ValidationResult, message string) (models.Verdict, error) {
		if logErr := s.logAttempt(ctx, tx, serialHash, req.MachineID, nowStr, result, clientIP, method); logErr != nil {
			err = fmt.Errorf("write validation log: %w", logErr)
			return models.Verdict{}, err
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit validation tx: %w", commitErr)
			return models.Verdict{}, err
		}
		return models.Verdict{Valid: false, Result: result, Message: message}, nil
	}

	// 1. 블랙리스트 확인
	var banReason string
	err = tx.QueryRowContext(ctx,
		"SELECT reason FROM blacklist WHERE machine_id = ?", req.MachineID,
	).Scan(&banReason)
	if err != nil && err != sql.ErrNoRows {
		return models.Verdict{}, fmt.Errorf("query blacklist: %w", err)
	}
	if err == nil {
		return deny(models.ResultBlacklisted, "machine is blacklisted: "+banReason)
	}
	err = nil

	// 2. 시리얼 존재 확인
	var (
		storedMachineID string
		userName        string
		tier            string
		expiresAtStr    string
		isActive        bool
		checkCount      int
		forceOnline     bool
	)
	err = tx.QueryRowContext(ctx, `
		SELECT machine_id, user_name, tier, expires_at, is_active, check_count, force_online
		FROM serials WHERE serial_hash = ?`, serialHash,
	).Scan(&storedMachineID, &userName, &tier, &expiresAtStr, &isActive, &checkCount, &forceOnline)

	if err == sql.ErrNoRows {
		err = nil
		return deny(models.ResultNotFound, "serial not found")
	}
	if err != nil {
		return models.Verdict{}, fmt.Errorf("query serial: %w", err)
	}

	// 3. 온라인 검증 토큰 확인
	if forceOnline || s.forceOnlineAll {
		method = models.MethodForceOnline

		if req.Token == "" {
			return deny(models.ResultTokenRequired, "validation token required")
		}

		ok, verifyErr := s.tokens.VerifyInTx(ctx, tx, req.Token)
		if verifyErr != nil {
			err = fmt.Errorf("verify token: %w", verifyErr)
			return models.Verdict{}, err
		}
		if !ok {
			return deny(models.ResultTokenInvalid, "validation token invalid or expired")
		}
	}

	// 4. 머신 바인딩 확인. 시리얼은 재등록 없이는 다른 머신에 바인딩되지 않습니다.
	if storedMachineID != req.MachineID {
		return deny(models.ResultMachineMismatch, "serial is bound to another machine")
	}

	// 5. 정지 상태 확인
	if !isActive {
		return deny(models.ResultRevoked, "serial has been revoked")
	}

	// 6. 만료 확인
	expiresAt, parseErr := utils.ParseDBDate(expiresAtStr)
	if parseErr != nil {
		err = fmt.Errorf("parse serial expiry: %w", parseErr)
		return models.Verdict{}, err
	}
	if now.After(expiresAt) {
		return deny(models.ResultExpired, "serial has expired")
	}

	// 7. 성공: 검증 횟수와 최종 검증 시각 갱신
	if _, err = tx.ExecContext(ctx, `
		UPDATE serials SET check_count = check_count + 1, last_check_time = ?
		WHERE serial_hash = ?`, nowStr, serialHash,
	); err != nil {
		return models.Verdict{}, fmt.Errorf("update check count: %w", err)
	}

	if err = s.logAttempt(ctx, tx, serialHash, req.MachineID, nowStr, models.ResultValid, clientIP, method); err != nil {
		return models.Verdict{}, fmt.Errorf("write validation log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Verdict{}, fmt.Errorf("commit validation tx: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"machine_id": req.MachineID,
		"tier":       tier,
		"method":     method,
	}).Debug("Serial validated")

	return models.Verdict{
		Valid:         true,
		Result:        models.ResultValid,
		Tier:          tier,
		UserName:      userName,
		ExpiresAt:     expiresAtStr,
		RemainingDays: utils.RemainingDays(expiresAt, now),
		CheckCount:    checkCount + 1,
	}, nil
}

// logAttempt 감사 로그 기록. 판정과 같은 트랜잭션 안에서 수행됩니다.
func (s *validationService) logAttempt(ctx context.Context, tx *sql.Tx, serialHash, machineID, at string, result models.ValidationResult, clientIP, method string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO validation_logs (serial_hash, machine_id, validation_time, result, client_ip, validation_method)
		VALUES (?, ?, ?, ?, ?, ?)`,
		serialHash, machineID, at, string(result), clientIP, method,
	)
	return err
}
