// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/rafee/blogsphere/internal/model"
)

// ErrDuplicateWishlist はウィッシュリストの一意制約違反を表す。
// アプリケーション層のcheck-then-insertをすり抜けた並行挿入を
// データベース側の制約が弾いた場合に返される。
var ErrDuplicateWishlist = errors.New("wishlist entry already exists for this (user, blog) pair")

// BlogRepository はブログ記事の永続化インターフェース。
type BlogRepository interface {
	// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Blog, error)

	// List はブログ一覧を返す。categoryが空でない場合は完全一致で絞り込む。
	// カテゴリ入力の正規化（先頭大文字化）は呼び出し側の責務。
	List(ctx context.Context, category string) ([]*model.Blog, error)

	// ListByEmail は指定ユーザーが所有するブログ一覧を返す。
	ListByEmail(ctx context.Context, email string) ([]*model.Blog, error)

	// Create はブログを作成する。
	Create(ctx context.Context, blog *model.Blog) error

	// Update は指定IDのブログの可変フィールドを上書きする。
	// 該当行が存在しない場合は新規行を挿入し（upsert）、upsertedIDにそのIDを返す。
	// 既存行を更新した場合はmatched=1, upsertedID=""となる。
	Update(ctx context.Context, id string, ownerEmail string, patch *model.BlogPatch) (matched int64, upsertedID string, err error)

	// DeleteByID は指定IDのブログを削除し、削除行数を返す。
	// 存在しないIDの削除は0件の成功であり、エラーではない。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// WishlistRepository はウィッシュリストエントリの永続化インターフェース。
type WishlistRepository interface {
	// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.WishlistEntry, error)

	// FindByUserAndBlog は(user, blog)ペアでエントリを検索する。見つからない場合はnilを返す。
	FindByUserAndBlog(ctx context.Context, userEmail, blogID string) (*model.WishlistEntry, error)

	// ListByUserEmail は指定ユーザーのエントリ一覧を返す。
	ListByUserEmail(ctx context.Context, userEmail string) ([]*model.WishlistEntry, error)

	// Create はエントリを作成する。一意制約違反時はErrDuplicateWishlistを返す。
	Create(ctx context.Context, entry *model.WishlistEntry) error

	// DeleteByID は指定IDのエントリを削除し、削除行数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)

	// DeleteByBlogID は指定ブログを参照する全エントリを削除し、削除行数を返す。
	// 参照ゼロのブログIDに対しては0件の成功となるため、再実行は冪等。
	DeleteByBlogID(ctx context.Context, blogID string) (int64, error)
}

// CommentRepository はコメントの永続化インターフェース。
// コメントは追記専用であり、更新・削除は提供しない。
type CommentRepository interface {
	// ListByBlogID は指定ブログのコメント一覧を古い順で返す。
	ListByBlogID(ctx context.Context, blogID string) ([]*model.Comment, error)

	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error
}
