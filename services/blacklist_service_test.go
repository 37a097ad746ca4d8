package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serialvault/models"
)

func TestBlacklistAddCascadesRevoke(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)
	serials := NewSerialService(db)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})
	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "EEEE-FFFF-GGGG-HHHH",
		MachineID: "machine-01",
		Days:      30,
	})
	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "IIII-JJJJ-KKKK-LLLL",
		MachineID: "machine-02",
		Days:      30,
	})

	require.NoError(t, svc.Add(context.Background(), "machine-01", "fraud", "admin"))

	// 같은 머신의 활성 시리얼은 모두 정지됩니다.
	for _, key := range []string{"AAAA-BBBB-CCCC-DDDD", "EEEE-FFFF-GGGG-HHHH"} {
		status, err := serials.Status(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, status.IsActive, key)
		require.NotNil(t, status.RevokedReason, key)
		assert.Equal(t, "auto-revoked by blacklist: fraud", *status.RevokedReason, key)
	}

	// 다른 머신의 시리얼은 영향을 받지 않습니다.
	status, err := serials.Status(context.Background(), "IIII-JJJJ-KKKK-LLLL")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
}

func TestBlacklistDoesNotAffectLaterRegistrations(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)
	serials := NewSerialService(db)
	validation, _ := newValidationService(db, false)

	require.NoError(t, svc.Add(context.Background(), "machine-01", "fraud", "admin"))

	// 차단 이후 등록된 시리얼은 연쇄 정지 대상이 아니지만
	// 검증 시점의 블랙리스트 확인이 사용을 막습니다.
	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	status, err := serials.Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.True(t, status.IsActive)

	verdict, err := validation.Validate(context.Background(), models.ValidateRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.ResultBlacklisted, verdict.Result)
}

func TestBlacklistRemoveDoesNotRestoreSerials(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)
	serials := NewSerialService(db)

	registerTestSerial(t, db, models.RegisterRequest{
		SerialKey: "AAAA-BBBB-CCCC-DDDD",
		MachineID: "machine-01",
		Days:      30,
	})

	require.NoError(t, svc.Add(context.Background(), "machine-01", "fraud", "admin"))
	require.NoError(t, svc.Remove(context.Background(), "machine-01"))

	entry, err := svc.Check(context.Background(), "machine-01")
	require.NoError(t, err)
	assert.Nil(t, entry)

	// 연쇄 정지된 시리얼은 개별 복구 전까지 정지 상태를 유지합니다.
	status, err := serials.Status(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.False(t, status.IsActive)
}

func TestBlacklistRemoveNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)

	err := svc.Remove(context.Background(), "machine-unknown")
	assert.ErrorIs(t, err, ErrMachineNotBlacklisted)
}

func TestBlacklistAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)

	require.NoError(t, svc.Add(context.Background(), "machine-01", "fraud", "admin"))
	require.NoError(t, svc.Add(context.Background(), "machine-01", "repeat offender", "operator"))

	entry, err := svc.Check(context.Background(), "machine-01")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "repeat offender", entry.Reason)
	assert.Equal(t, "operator", entry.CreatedBy)
}

func TestBlacklistCheckEmptyMachineID(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlacklistService(db)

	_, err := svc.Check(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidMachineID)
}
