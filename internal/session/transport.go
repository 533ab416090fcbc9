// Package session はアクセストークンをHTTP Only Cookieで受け渡す
// セッショントランスポートを提供する。
package session

import "net/http"

// CookieName はアクセストークンを保持するCookieの名前。
const CookieName = "access-token"

// Mode はデプロイメントモードを表す。Cookie属性の決定に使用する。
type Mode string

const (
	// ModeDevelopment はローカル開発向け。secure=false, SameSite=Strict。
	ModeDevelopment Mode = "development"
	// ModeProduction は本番向け。secure=true, SameSite=None。
	// HTTPS越しのクロスサイト配送を許可するための非対称な設定であり、
	// Strictのままでは別オリジンのフロントエンドからCookieが送信されなくなる。
	ModeProduction Mode = "production"
)

// Transport はセッションCookieの付与・抽出・破棄を行う。
type Transport struct {
	mode   Mode
	maxAge int // Cookie有効期間（秒）
}

// NewTransport はTransportを生成する。
// 未知のmodeはModeDevelopmentとして扱う。
func NewTransport(mode Mode, maxAge int) *Transport {
	if mode != ModeProduction {
		mode = ModeDevelopment
	}
	return &Transport{mode: mode, maxAge: maxAge}
}

// Attach はレスポンスにセッションCookieを設定する。
func (t *Transport) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   t.maxAge,
		HttpOnly: true,
		Secure:   t.secure(),
		SameSite: t.sameSite(),
	})
}

// Extract はリクエストからトークンを読み取る。
// Cookieの不在それ自体はエラーではなく、okで表現する。
// 本人性が必要になった時点で初めてエラーとして扱うのは認可ガードの責務。
func (t *Transport) Extract(r *http.Request) (token string, ok bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear はセッションCookieを同一属性で上書きし、ブラウザ側の状態を無効化する。
// サーバー側の失効リストは持たないため、発行済みトークン自体は期限まで有効に残る。
// Cookieを消すことで止まるのはブラウザの再送だけである。
func (t *Transport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure(),
		SameSite: t.sameSite(),
	})
}

func (t *Transport) secure() bool {
	return t.mode == ModeProduction
}

func (t *Transport) sameSite() http.SameSite {
	if t.mode == ModeProduction {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
