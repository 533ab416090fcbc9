// Package model はドメインモデルを定義する。
package model

import "time"

// WishlistEntry はユーザーのウィッシュリストに追加されたブログ記事を表す。
// (WishlistUserEmail, BlogID) の組み合わせごとに最大1件という不変条件を持つ。
// BlogIDは参照であり、外部キー制約では強制されない。
// 参照先のブログが削除された場合、カスケード処理で一緒に削除される。
type WishlistEntry struct {
	ID                string
	WishlistUserEmail string // 所有者のメールアドレス
	BlogID            string

	// 追加時点のブログのスナップショット
	PostTitle       string
	PostDescription string
	PostCover       string
	Category        string
	PublishingDate  string
	BlogOwnerEmail  string

	CreatedAt time.Time
}
