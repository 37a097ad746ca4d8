package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/utils"
)

// DefaultTokenTTLHours 토큰 기본 유효 시간
const DefaultTokenTTLHours = 24

// ErrTokenGeneration은 난수 토큰 생성에 실패했을 때 반환됩니다.
var ErrTokenGeneration = errors.New("failed to generate validation token")

// TokenService는 온라인 검증용 베어러 토큰의 발급과 검증을 정의합니다.
type TokenService interface {
	Issue(ctx context.Context, ttlHours int, createdBy string) (models.IssueTokenResponse, error)
	Verify(ctx context.Context, token string) (bool, error)
	// VerifyInTx는 진행 중인 트랜잭션 안에서 토큰을 검증합니다. 검증 판정과
	// 같은 커넥션을 사용해야 SQLite에서 잠금 경합이 생기지 않습니다.
	VerifyInTx(ctx context.Context, tx *sql.Tx, token string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// sqlQuerier는 *sql.Tx와 SQLExecutor가 공통으로 제공하는 질의 표면입니다.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type tokenService struct {
	db         SQLExecutor
	defaultTTL int // hours

	// 캐시는 조회 가속용일 뿐 저장소가 항상 기준입니다.
	mu    sync.RWMutex
	cache map[string]time.Time // token_hash -> expires_at
}

// NewTokenService는 TokenService 구현체를 생성합니다. defaultTTLHours가 0 이하면
// DefaultTokenTTLHours를 사용합니다.
func NewTokenService(db SQLExecutor, defaultTTLHours int) TokenService {
	if defaultTTLHours <= 0 {
		defaultTTLHours = DefaultTokenTTLHours
	}
	return &tokenService{
		db:         db,
		defaultTTL: defaultTTLHours,
		cache:      make(map[string]time.Time),
	}
}

func (s *tokenService) Issue(ctx context.Context, ttlHours int, createdBy string) (models.IssueTokenResponse, error) {
	if ttlHours <= 0 {
		ttlHours = s.defaultTTL
	}

	token, err := utils.GenerateValidationToken()
	if err != nil {
		return models.IssueTokenResponse{}, ErrTokenGeneration
	}

	tokenHash := utils.HashToken(token)
	now := utils.NowSeoul()
	expiresAt := now.Add(time.Duration(ttlHours) * time.Hour)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO validation_tokens (token_hash, issued_at, expires_at, usage_count, created_by)
		VALUES (?, ?, ?, 0, ?)`,
		tokenHash, utils.FormatDateTimeForDB(now), utils.FormatDateTimeForDB(expiresAt), createdBy,
	)
	if err != nil {
		return models.IssueTokenResponse{}, err
	}

	s.mu.Lock()
	s.cache[tokenHash] = expiresAt
	s.mu.Unlock()

	logger.WithFields(map[string]interface{}{
		"created_by": createdBy,
		"ttl_hours":  ttlHours,
	}).Info("Validation token issued")

	// 원본 토큰은 이 응답 이후 다시 조회할 수 없습니다.
	return models.IssueTokenResponse{
		Token:     token,
		ExpiresAt: utils.FormatDateTimeForDB(expiresAt),
	}, nil
}

// Verify 토큰 검증. 미등록/만료/형식 오류는 모두 false로 동일하게 처리하며 만료 시각을 연장하지 않습니다.
func (s *tokenService) Verify(ctx context.Context, token string) (bool, error) {
	return s.verify(ctx, s.db, token)
}

// VerifyInTx 트랜잭션 내 토큰 검증
func (s *tokenService) VerifyInTx(ctx context.Context, tx *sql.Tx, token string) (bool, error) {
	return s.verify(ctx, tx, token)
}

func (s *tokenService) verify(ctx context.Context, q sqlQuerier, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	tokenHash := utils.HashToken(token)
	now := utils.NowSeoul()

	s.mu.RLock()
	cachedExpiry, cached := s.cache[tokenHash]
	s.mu.RUnlock()

	if cached {
		if !now.Before(cachedExpiry) {
			return false, nil
		}
		return true, s.touch(ctx, q, tokenHash)
	}

	// 캐시 미스: 저장소 재확인
	var expiresAtStr string
	err := q.QueryRowContext(ctx,
		"SELECT expires_at FROM validation_tokens WHERE token_hash = ?", tokenHash,
	).Scan(&expiresAtStr)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	expiresAt, err := utils.ParseDBDate(expiresAtStr)
	if err != nil || !now.Before(expiresAt) {
		return false, nil
	}

	s.mu.Lock()
	s.cache[tokenHash] = expiresAt
	s.mu.Unlock()

	return true, s.touch(ctx, q, tokenHash)
}

// touch 사용 횟수 증가. 횟수는 제한 용도가 아니라 통계용입니다.
func (s *tokenService) touch(ctx context.Context, q sqlQuerier, tokenHash string) error {
	_, err := q.ExecContext(ctx,
		"UPDATE validation_tokens SET usage_count = usage_count + 1 WHERE token_hash = ?", tokenHash,
	)
	return err
}

// SweepExpired 만료된 토큰 정리. 지연 만료 검사가 정합성을 보장하므로 이 작업은 보조적입니다.
func (s *tokenService) SweepExpired(ctx context.Context) (int64, error) {
	now := utils.NowSeoul()

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM validation_tokens WHERE expires_at < ?", utils.FormatDateTimeForDB(now),
	)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	for hash, expiry := range s.cache {
		if !now.Before(expiry) {
			delete(s.cache, hash)
		}
	}
	s.mu.Unlock()

	removed, _ := result.RowsAffected()
	return removed, nil
}
