package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/session"
)

// TokenIssuerInterface はトークン発行サービスのインターフェース。
type TokenIssuerInterface interface {
	Issue(email string) (string, error)
}

// AuthHandler はトークン発行とログアウトを扱うハンドラー。
type AuthHandler struct {
	issuer    TokenIssuerInterface
	transport *session.Transport
}

// NewAuthHandler は新しいAuthHandlerを作成する。
func NewAuthHandler(issuer TokenIssuerInterface, transport *session.Transport) *AuthHandler {
	return &AuthHandler{issuer: issuer, transport: transport}
}

type issueTokenRequest struct {
	Email string `json:"email"`
}

type issueTokenResponse struct {
	Success bool `json:"success"`
}

// IssueToken はPOST /jwtへのリクエストを処理する。
// 識別子を署名付きトークンに変換し、セッションクッキーとして添付する。
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		handleServiceError(w, model.NewInvalidRequestError("emailは必須です"))
		return
	}

	tokenString, err := h.issuer.Issue(email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.transport.Attach(w, tokenString)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(issueTokenResponse{Success: true}); err != nil {
		middleware.WriteInternalServerError(w)
	}
}

// Logout はGET /logoutへのリクエストを処理する。
// セッションクッキーを即時失効させる。サーバー側の状態は持たないため
// クッキーの破棄のみで完了する。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.transport.Clear(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(issueTokenResponse{Success: true}); err != nil {
		middleware.WriteInternalServerError(w)
	}
}
