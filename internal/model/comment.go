// Package model はドメインモデルを定義する。
package model

import "time"

// Comment はブログ記事へのコメントを表す。
// 作成のみ可能で、更新・削除の操作は提供しない（追記専用）。
type Comment struct {
	ID             string
	BlogID         string
	CommentEmail   string // 投稿者のメールアドレス
	CommenterName  string
	CommenterPhoto string
	Text           string
	CreatedAt      time.Time
}
