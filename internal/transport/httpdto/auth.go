package httpdto

// AuthRequest is the action-dispatch body of POST /auth.
type AuthRequest struct {
	Action string `json:"action"`
	Phone  string `json:"phone"`
	Code   string `json:"code"`
}

type SendCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

type VerifyCodeResponse struct {
	Success     bool   `json:"success"`
	Verified    bool   `json:"verified"`
	UserID      string `json:"user_id,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Message     string `json:"message,omitempty"`
}
