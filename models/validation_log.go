package models

// ValidationResult 검증 결과 코드
type ValidationResult string

const (
	ResultValid           ValidationResult = "VALID"
	ResultBlacklisted     ValidationResult = "BLACKLISTED"
	ResultNotFound        ValidationResult = "NOT_FOUND"
	ResultTokenRequired   ValidationResult = "TOKEN_REQUIRED"
	ResultTokenInvalid    ValidationResult = "TOKEN_INVALID"
	ResultMachineMismatch ValidationResult = "MACHINE_MISMATCH"
	ResultRevoked         ValidationResult = "REVOKED"
	ResultExpired         ValidationResult = "EXPIRED"
	ResultInvalidInput    ValidationResult = "INVALID_INPUT"
)

// ValidationMethod 검증 방식
const (
	MethodStandard    = "standard"
	MethodForceOnline = "force-online"
)

// ValidationLog 검증 시도 감사 로그 (추가 전용)
type ValidationLog struct {
	ID               int64  `json:"id" db:"id"`
	SerialHash       string `json:"serial_hash" db:"serial_hash"`
	MachineID        string `json:"machine_id" db:"machine_id"`
	ValidationTime   string `json:"validation_time" db:"validation_time"`
	Result           string `json:"result" db:"result"`
	ClientIP         string `json:"client_ip" db:"client_ip"`
	ValidationMethod string `json:"validation_method" db:"validation_method"`
}

// ValidateRequest 시리얼 검증 요청
type ValidateRequest struct {
	SerialKey string `json:"serial_key" binding:"required"`
	MachineID string `json:"machine_id" binding:"required"`
	Token     string `json:"token"`
}

// Verdict 검증 판정 결과
type Verdict struct {
	Valid         bool             `json:"valid"`
	Result        ValidationResult `json:"result"`
	Message       string           `json:"message,omitempty"`
	Tier          string           `json:"tier,omitempty"`
	UserName      string           `json:"user_name,omitempty"`
	ExpiresAt     string           `json:"expires_at,omitempty"`
	RemainingDays int              `json:"remaining_days,omitempty"`
	CheckCount    int              `json:"check_count,omitempty"`
}
