package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serialvault/models"
)

func newValidationService(db SQLExecutor, forceOnlineAll bool) (ValidationService, TokenService) {
	tokens := NewTokenService(db, 0)
	return NewValidationService(db, tokens, forceOnlineAll), tokens
}

func TestValidateSuccess(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		UserName:  "tester",
		Tier:      "pro",
		Days:      30,
	})

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, models.ResultValid, verdict.Result)
	assert.Equal(t, "pro", verdict.Tier)
	assert.Equal(t, "tester", verdict.UserName)
	assert.Equal(t, 1, verdict.CheckCount)
	// 등록과 검증 사이의 시간차 때문에 29 또는 30이 될 수 있습니다.
	assert.GreaterOrEqual(t, verdict.RemainingDays, 29)
	assert.LessOrEqual(t, verdict.RemainingDays, 30)

	assert.Equal(t, 1, countLogs(t, db))
}

func TestValidateCheckCountMonotonic(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	req := models.ValidateRequest{SerialKey: "AAAA-BBBB-CCCC-DDDD", MachineID: "machine-01"}
	for i := 1; i <= 3; i++ {
		verdict, err := svc.Validate(context.Background(), req, "127.0.0.1")
		require.NoError(t, err)
		require.True(t, verdict.Valid)
		assert.Equal(t, i, verdict.CheckCount)
	}

	assert.Equal(t, 3, countLogs(t, db))
}

func TestValidateNotFound(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "ZZZZ-ZZZZ-ZZZZ-ZZZZ",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, models.ResultNotFound, verdict.Result)
	assert.Equal(t, 1, countLogs(t, db))
}

func TestValidateMachineMismatch(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-02",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	// 다른 머신에서의 시도는 존재하지 않는 시리얼과 구분되어야 합니다.
	assert.Equal(t, models.ResultMachineMismatch, verdict.Result)

	// 실패한 시도는 check_count를 올리지 않습니다.
	status, err := NewSerialService(db).Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.Equal(t, 0, status.CheckCount)
}

func TestValidateRevoked(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)
	serials := NewSerialService(db)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})
	require.NoError(t, serials.Revoke(context.Background(), "AAAA-BBBB-CCCC-DDDD", "chargeback"))

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultRevoked, verdict.Result)
}

func TestValidateExpired(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})
	expireSerial(t, db, "AAAA-BBBB-CCCC-DDDD")

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultExpired, verdict.Result)
}

func TestValidateBlacklistTakesPrecedence(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})
	// 정지까지 겹쳐도 차단 판정이 우선해야 합니다.
	require.NoError(t, NewSerialService(db).Revoke(context.Background(), "AAAA-BBBB-CCCC-DDDD", "fraud"))
	require.NoError(t, NewBlacklistService(db).Add(context.Background(), "machine-01", "fraud", "admin"))

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultBlacklisted, verdict.Result)

	// 존재하지 않는 시리얼이라도 차단된 머신에는 BLACKLISTED만 노출합니다.
	verdict, err = svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "ZZZZ-ZZZZ-ZZZZ-ZZZZ",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultBlacklisted, verdict.Result)
}

func TestValidateForceOnline(t *testing.T) {
	db := newTestDB(t)
	svc, tokens := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey:   "AAAA-BBBB-CCCC-DDDD",
		MachineID:   "machine-01",
		Days:        30,
		ForceOnline: true,
	})

	// 토큰 없이 시도
	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.ResultTokenRequired, verdict.Result)

	// 잘못된 토큰으로 시도
	verdict, err = svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Token:     "not-a-real-token",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.ResultTokenInvalid, verdict.Result)

	// 발급된 토큰으로 시도
	issued, err := tokens.Issue(context.Background(), 1, "admin")
	require.NoError(t, err)

	req := models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Token:     issued.Token,
	}
	verdict, err = svc.Validate(context.Background(), req, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)

	// 토큰은 TTL 안에서 재사용할 수 있습니다.
	verdict, err = svc.Validate(context.Background(), req, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 2, verdict.CheckCount)

	assert.Equal(t, 4, countLogs(t, db))
}

func TestValidateForceOnlineAll(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, true)

	// 시리얼 자체에는 온라인 검증 플래그가 없어도 전역 설정이 토큰을 요구합니다.
	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultTokenRequired, verdict.Result)
}

func TestValidateInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newValidationService(db, false)

	verdict, err := svc.Validate(context.Background(), models.ValidateRequest{}, "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, models.ResultInvalidInput, verdict.Result)
	// 입력 검증 실패는 저장소에 닿기 전이므로 로그를 남기지 않습니다.
	assert.Equal(t, 0, countLogs(t, db))
}

func TestValidateLogsMethodAndResult(t *testing.T) {
	db := newTestDB(t)
	svc, tokens := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey:   "AAAA-BBBB-CCCC-DDDD",
		MachineID:   "machine-01",
		Days:        30,
		ForceOnline: true,
	})

	issued, err := tokens.Issue(context.Background(), 1, "admin")
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Token:     issued.Token,
	}, "10.0.0.5")
	require.NoError(t, err)

	var result, method, clientIP string
	err = db.QueryRowContext(context.Background(),
		"SELECT result, validation_method, client_ip FROM validation_logs ORDER BY id DESC LIMIT 1",
	).Scan(&result, &method, &clientIP)
	require.NoError(t, err)

	assert.Equal(t, string(models.ResultValid), result)
	assert.Equal(t, models.MethodForceOnline, method)
	assert.Equal(t, "10.0.0.5", clientIP)
}
