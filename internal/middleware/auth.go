// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rafee/blogsphere/internal/metrics"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/session"
	"github.com/rafee/blogsphere/internal/token"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// emailContextKey はリクエストコンテキストに検証済みメールアドレスを格納するためのキー。
var emailContextKey = contextKey("claim_email")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Serviceの部分集合として定義する。検証は純粋な計算でなければならない。
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// NewAuthMiddleware はセッションCookieからアクセストークンを読み取り、
// 署名と有効期限を検証するミドルウェアを返す。
//
// リクエストごとの状態遷移:
//
//	トークンなし → 401
//	トークンあり・検証失敗（署名不正/期限切れは区別しない） → 403
//	トークンあり・検証成功 → クレームをコンテキストに載せて続行
//
// このミドルウェアを通過したハンドラーは、検証済みで期限内のクレームが
// コンテキストに存在することを前提にしてよい。部分的に検証された状態で
// ハンドラーが実行されることはない。
func NewAuthMiddleware(verifier TokenVerifier, transport *session.Transport, collector metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := transport.Extract(r)
			if !ok {
				if collector != nil {
					collector.RecordAuthRejection("missing_credential")
				}
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				if collector != nil {
					collector.RecordAuthRejection("invalid_credential")
				}
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}

			ctx := context.WithValue(r.Context(), emailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext はリクエストコンテキストから検証済みメールアドレスを取得する。
// 認可ガードを通過したリクエストでのみ有効。
func EmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(emailContextKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("verified email not found in context")
	}
	return email, nil
}

// ContextWithEmail はコンテキストに検証済みメールアドレスを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey, email)
}
