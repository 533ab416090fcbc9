// Package model はドメインモデルを定義する。
package model

import "time"

// Blog はユーザーが公開するブログ記事を表す。
// Emailは作成時に認証済みユーザーのメールアドレスで固定され、以後変更されない。
// 所有権の判定はこのフィールドのみで行う。
type Blog struct {
	ID              string
	Email           string // 所有者のメールアドレス（作成後は不変）
	PostTitle       string
	PostDescription string
	PostCover       string
	Category        string
	PublishingDate  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlogPatch はブログ更新で書き換え可能なフィールドの集合。
// Email（所有者）は含まれない。
type BlogPatch struct {
	PostTitle       string
	PostDescription string
	PostCover       string
	Category        string
	PublishingDate  string
}
