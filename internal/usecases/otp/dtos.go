package otp

type SendInputDTO struct {
	Email string `json:"email" binding:"required"`
}

type VerifyInputDTO struct {
	Email string `json:"email" binding:"required"`
	Otp   string `json:"otp" binding:"required"`
}

type IssueOutputDTO struct {
	Success   bool `json:"success"`
	ExpiresIn int  `json:"expiresIn"`
}
