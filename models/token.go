package models

// ValidationToken 온라인 검증용 베어러 토큰. 저장소에는 해시만 보관하며 원본은 발급 시 한 번만 반환됩니다.
type ValidationToken struct {
	TokenHash  string `json:"token_hash" db:"token_hash"`
	IssuedAt   string `json:"issued_at" db:"issued_at"`
	ExpiresAt  string `json:"expires_at" db:"expires_at"`
	UsageCount int    `json:"usage_count" db:"usage_count"`
	CreatedBy  string `json:"created_by" db:"created_by"`
}

// IssueTokenRequest 토큰 발급 요청
type IssueTokenRequest struct {
	TTLHours int `json:"ttl_hours"`
}

// IssueTokenResponse 토큰 발급 응답
type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
