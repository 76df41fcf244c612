package structs

type CreateChallengeRequest struct {
	Opponents     []string `json:"opponents"`
	Game          string   `json:"game" binding:"required"`
	Platform      string   `json:"platform" binding:"required"`
	Stake         float64  `json:"stake" binding:"required,gt=0"`
	IsPublic      bool     `json:"isPublic"`
	MaxOpponents  int      `json:"maxOpponents"`
	DeadlineHours int      `json:"deadlineHours"`
}

type AcceptChallengeRequest struct {
	Team            string            `json:"team"`
	PlatformAliases map[string]string `json:"platformAliases"`
}

type SubmitScorecardRequest struct {
	ClaimedWinner string `json:"claimedWinner" binding:"required"`
	Score         string `json:"score"`
	Notes         string `json:"notes"`
}

type UploadProofRequest struct {
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
}

type FileDisputeRequest struct {
	Reason      string `json:"reason" binding:"required"`
	EvidenceURL string `json:"evidenceUrl"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required,oneof=upheld overturned"`
	Notes      string `json:"notes"`
}
