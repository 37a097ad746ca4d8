package models

// Serial 발급된 시리얼 정보. 조회 키는 serial_hash이며 원본 키는 질의에 사용하지 않습니다.
type Serial struct {
	SerialKey     string  `json:"serial_key" db:"serial_key"`
	SerialHash    string  `json:"serial_hash" db:"serial_hash"`
	MachineID     string  `json:"machine_id" db:"machine_id"`
	UserName      string  `json:"user_name" db:"user_name"`
	Tier          string  `json:"tier" db:"tier"`
	CreatedAt     string  `json:"created_at" db:"created_at"`
	ExpiresAt     string  `json:"expires_at" db:"expires_at"`
	IsActive      bool    `json:"is_active" db:"is_active"`
	LastCheckTime *string `json:"last_check_time,omitempty" db:"last_check_time"`
	CheckCount    int     `json:"check_count" db:"check_count"`
	RevokedAt     *string `json:"revoked_at,omitempty" db:"revoked_at"`
	RevokedReason *string `json:"revoked_reason,omitempty" db:"revoked_reason"`
	ForceOnline   bool    `json:"force_online" db:"force_online"`
}

// RegisterRequest 시리얼 등록 요청
type RegisterRequest struct {
	SerialKey   string `json:"serial_key" binding:"required"`
	MachineID   string `json:"machine_id" binding:"required"`
	Tier        string `json:"tier"`
	Days        int    `json:"days"`
	UserName    string `json:"user_name"`
	ForceOnline bool   `json:"force_online"`
}

// RevokeRequest 시리얼 정지 요청
type RevokeRequest struct {
	SerialKey string `json:"serial_key" binding:"required"`
	Reason    string `json:"reason"`
}

// RestoreRequest 시리얼 복구 요청
type RestoreRequest struct {
	SerialKey string `json:"serial_key" binding:"required"`
}

// SerialStatusRequest 시리얼 상태 조회 요청
type SerialStatusRequest struct {
	SerialKey string `json:"serial_key" binding:"required"`
}

// SerialStatus 시리얼 상태 조회 응답
type SerialStatus struct {
	Found         bool    `json:"found"`
	IsActive      bool    `json:"is_active,omitempty"`
	MachineID     string  `json:"machine_id,omitempty"`
	UserName      string  `json:"user_name,omitempty"`
	Tier          string  `json:"tier,omitempty"`
	ExpiresAt     string  `json:"expires_at,omitempty"`
	ForceOnline   bool    `json:"force_online,omitempty"`
	CheckCount    int     `json:"check_count,omitempty"`
	RevokedAt     *string `json:"revoked_at,omitempty"`
	RevokedReason *string `json:"revoked_reason,omitempty"`
}
