package structs

type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type UpdateProfileRequest struct {
	DisplayName     string            `json:"displayName"`
	Bio             string            `json:"bio"`
	AvatarURL       string            `json:"avatarUrl"`
	PlatformAliases map[string]string `json:"platformAliases"`
}
