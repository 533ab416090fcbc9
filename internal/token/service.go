// Package token は署名付きアクセストークンの発行と検証を提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL はアクセストークンの標準有効期間。
const DefaultTTL = time.Hour

// ErrInvalidToken はトークン検証の失敗を表す。
// 署名不正と期限切れを意図的に区別せず、単一のエラーに畳み込む。
// どちらの検査で失敗したかを呼び出し元に漏らすとオラクル攻撃の手がかりになるため。
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims はトークンに埋め込まれる本人性クレーム。
// 永続化されず、有効性は署名と期限の検査のみに委ねられる。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service はHMAC-SHA256によるトークンの発行・検証を行う。
// 検証は純粋な計算であり、I/Oを伴わない。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。
// secretが空の場合はエラーを返す。署名鍵の未設定は起動時に致命的エラーとして
// 扱うべきであり、リクエストごとのエラーにはしない。
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue は指定メールアドレスのクレームを署名し、アクセストークンを発行する。
// 有効期限は発行時刻 + TTL。
func (s *Service) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗しました: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検査し、クレームを返す。
// いずれの検査に失敗してもErrInvalidTokenを返す。
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// algヘッダの偽装（none攻撃等）を拒否する
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL は発行するトークンの有効期間を返す。
func (s *Service) TTL() time.Duration {
	return s.ttl
}
