package models

// BlacklistEntry 차단된 머신 정보
type BlacklistEntry struct {
	MachineID string `json:"machine_id" db:"machine_id"`
	Reason    string `json:"reason" db:"reason"`
	CreatedAt string `json:"created_at" db:"created_at"`
	CreatedBy string `json:"created_by" db:"created_by"`
}

// BlacklistRequest 블랙리스트 추가 요청
type BlacklistRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
	Reason    string `json:"reason"`
}

// BlacklistRemoveRequest 블랙리스트 제거 요청
type BlacklistRemoveRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
}

// BlacklistCheckRequest 블랙리스트 조회 요청 (공개 API)
type BlacklistCheckRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
}
