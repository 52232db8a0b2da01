// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordReq は/api/auth/forgot-passwordのリクエストボディを表します。
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq は/api/auth/reset-password/:tokenのリクエストボディを表します。
// トークン自体はURLパスパラメータで渡されます。
type ResetPasswordReq struct {
	Password string `json:"password" binding:"required"`
}
