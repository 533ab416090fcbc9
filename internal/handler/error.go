// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/model"
)

// statusForCode はエラーコードをHTTPステータスコードに対応付ける。
// 資格情報の欠落のみ401、それ以外の認可失敗はすべて403に畳み込む。
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeMalformedID,
		model.ErrCodeDuplicateWishlist,
		model.ErrCodeInvalidRequest,
		model.ErrCodeInvalidCoverURL:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError はサービス層のエラーを統一エラーレスポンスに変換する。
// ドメインエラー（APIError）はコードに応じたステータスで返し、
// それ以外は詳細をログに記録して一般的な500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, statusForCode(apiErr.Code), apiErr)
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
