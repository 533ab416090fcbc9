// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, blog, wishlist, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	// ErrCodeUnauthorized は資格情報が欠落している場合（401相当）。
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden は資格情報はあるが許可されない場合（403相当）。
	// トークンの署名不正・期限切れと所有権不一致は外部的に区別しない。
	ErrCodeForbidden = "FORBIDDEN_ACCESS"
	// ErrCodeMalformedID は識別子の形式が不正な場合（400相当）。
	ErrCodeMalformedID = "MALFORMED_ID"
	// ErrCodeDuplicateWishlist は同一の(user, blog)ペアが既に存在する場合（400相当）。
	ErrCodeDuplicateWishlist = "DUPLICATE_WISHLIST"
	// ErrCodeInvalidRequest はリクエスト内容の検証エラー（400相当）。
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	// ErrCodeInvalidCoverURL はカバー画像URLが許可されない場合（400相当）。
	ErrCodeInvalidCoverURL = "INVALID_COVER_URL"
)

// NewUnauthorizedError は資格情報欠落エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は権限なしエラーを生成する。
// トークン検証失敗と所有権不一致の双方で同一のエラーを返し、
// どちらの検査で失敗したかを外部に漏らさない。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "自分が所有するリソースに対してのみ操作できます。",
	}
}

// NewMalformedIDError は識別子形式エラーを生成する。
func NewMalformedIDError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeMalformedID,
		Message:  fmt.Sprintf("IDの形式が不正です: %s", id),
		Category: "validation",
		Action:   "正しいID形式を指定してください。",
	}
}

// NewDuplicateWishlistError は重複ウィッシュリストエラーを生成する。
func NewDuplicateWishlistError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateWishlist,
		Message:  "この記事は既にウィッシュリストに追加されています。",
		Category: "wishlist",
		Action:   "ウィッシュリスト一覧を確認してください。",
	}
}

// NewInvalidRequestError はリクエスト検証エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}

// NewInvalidCoverURLError はカバー画像URLエラーを生成する。
func NewInvalidCoverURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCoverURL,
		Message:  fmt.Sprintf("カバー画像URLが許可されません: %s", reason),
		Category: "validation",
		Action:   "公開されているhttp/httpsのURLを指定してください。",
	}
}
