package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serialvault/models"
	"serialvault/utils"
)

func TestRegisterDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)

	serial, err := svc.Register(context.Background(), models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "trial", serial.Tier)
	assert.True(t, serial.IsActive)
	assert.Equal(t, utils.HashSerial("AAAA-BBBB-CCCC-DDDD"), serial.SerialHash)

	expiresAt, err := utils.ParseDBDate(serial.ExpiresAt)
	require.NoError(t, err)
	// 기본 유효 기간은 7일
	remaining := utils.RemainingDays(expiresAt, utils.NowSeoul())
	assert.GreaterOrEqual(t, remaining, 6)
	assert.LessOrEqual(t, remaining, 7)
}

func TestRegisterInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)

	_, err := svc.Register(context.Background(), models.RegisterRequest{SerialKey: "AAAA"})
	assert.ErrorIs(t, err, ErrInvalidSerialInput)

	_, err = svc.Register(context.Background(), models.RegisterRequest{MachineID: "machine-01"})
	assert.ErrorIs(t, err, ErrInvalidSerialInput)
}

func TestRegisterOverwriteResetsState(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)
	validation, _ := newValidationService(db, false)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Tier:      "pro",
		Days:      30,
	})

	// 검증과 정지로 누적 상태를 만든 뒤 재등록합니다.
	verdict, err := validation.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")
	require.NoError(t, err)
	require.True(t, verdict.Valid)
	require.NoError(t, svc.Revoke(context.Background(), "AAAA-BBBB-CCCC-DDDD", "test"))

	serial, err := svc.Register(context.Background(), models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-02",
		Tier:      "enterprise",
		Days:      90,
	})
	require.NoError(t, err)
	assert.Equal(t, "machine-02", serial.MachineID)

	status, err := svc.Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.True(t, status.Found)
	assert.True(t, status.IsActive)
	assert.Equal(t, "machine-02", status.MachineID)
	assert.Equal(t, "enterprise", status.Tier)
	assert.Equal(t, 0, status.CheckCount)
	assert.Nil(t, status.RevokedAt)
	assert.Nil(t, status.RevokedReason)
}

func TestRevokeAndRestore(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	require.NoError(t, svc.Revoke(context.Background(), "AAAA-BBBB-CCCC-DDDD", "refund"))

	status, err := svc.Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.False(t, status.IsActive)
	require.NotNil(t, status.RevokedReason)
	assert.Equal(t, "refund", *status.RevokedReason)

	require.NoError(t, svc.Restore(context.Background(), "AAAA-BBBB-CCCC-DDDD"))

	status, err = svc.Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Nil(t, status.RevokedAt)
	assert.Nil(t, status.RevokedReason)
}

func TestRevokeNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)

	err := svc.Revoke(context.Background(), "ZZZZ-ZZZZ-ZZZZ-ZZZZ", "")
	assert.ErrorIs(t, err, ErrSerialNotFound)

	err = svc.Restore(context.Background(), "ZZZZ-ZZZZ-ZZZZ-ZZZZ")
	assert.ErrorIs(t, err, ErrSerialNotFound)
}

func TestStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSerialService(db)

	status, err := svc.Status(context.Background(), "ZZZZ-ZZZZ-ZZZZ-ZZZZ")
	require.NoError(t, err)
	assert.False(t, status.Found)

	// 관리자용 조회는 검증 로그를 남기지 않습니다.
	assert.Equal(t, 0, countLogs(t, db))
}
