package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rafee/blogsphere/internal/model"
)

// pqUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコード。
const pqUniqueViolation = "23505"

// PostgresWishlistRepo はPostgreSQLを使用したウィッシュリストリポジトリ。
type PostgresWishlistRepo struct {
	db *sql.DB
}

// NewPostgresWishlistRepo はPostgresWishlistRepoを生成する。
func NewPostgresWishlistRepo(db *sql.DB) *PostgresWishlistRepo {
	return &PostgresWishlistRepo{db: db}
}

const wishlistColumns = `id, wishlist_user_email, blog_id, post_title, post_description, post_cover, category, publishing_date, blog_owner_email, created_at`

// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
func (r *PostgresWishlistRepo) FindByID(ctx context.Context, id string) (*model.WishlistEntry, error) {
	entry := &model.WishlistEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE id = $1`,
		id,
	).Scan(
		&entry.ID, &entry.WishlistUserEmail, &entry.BlogID,
		&entry.PostTitle, &entry.PostDescription, &entry.PostCover,
		&entry.Category, &entry.PublishingDate, &entry.BlogOwnerEmail,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ウィッシュリストエントリの取得に失敗しました: %w", err)
	}

	return entry, nil
}

// FindByUserAndBlog は(user, blog)ペアでエントリを検索する。見つからない場合はnilを返す。
func (r *PostgresWishlistRepo) FindByUserAndBlog(ctx context.Context, userEmail, blogID string) (*model.WishlistEntry, error) {
	entry := &model.WishlistEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE wishlist_user_email = $1 AND blog_id = $2`,
		userEmail, blogID,
	).Scan(
		&entry.ID, &entry.WishlistUserEmail, &entry.BlogID,
		&entry.PostTitle, &entry.PostDescription, &entry.PostCover,
		&entry.Category, &entry.PublishingDate, &entry.BlogOwnerEmail,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ウィッシュリストエントリの検索に失敗しました: %w", err)
	}

	return entry, nil
}

// ListByUserEmail は指定ユーザーのエントリ一覧を返す。
func (r *PostgresWishlistRepo) ListByUserEmail(ctx context.Context, userEmail string) ([]*model.WishlistEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE wishlist_user_email = $1 ORDER BY created_at`,
		userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("ウィッシュリスト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []*model.WishlistEntry
	for rows.Next() {
		entry := &model.WishlistEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.WishlistUserEmail, &entry.BlogID,
			&entry.PostTitle, &entry.PostDescription, &entry.PostCover,
			&entry.Category, &entry.PublishingDate, &entry.BlogOwnerEmail,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ウィッシュリスト行の読み取りに失敗しました: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ウィッシュリスト行の走査に失敗しました: %w", err)
	}
	return entries, nil
}

// Create はエントリを作成する。
// (wishlist_user_email, blog_id) の一意制約に違反した場合はErrDuplicateWishlistを返す。
// check-then-insert競合の最終防衛線はこの制約である。
func (r *PostgresWishlistRepo) Create(ctx context.Context, entry *model.WishlistEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlists (id, wishlist_user_email, blog_id, post_title, post_description, post_cover, category, publishing_date, blog_owner_email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.WishlistUserEmail, entry.BlogID,
		entry.PostTitle, entry.PostDescription, entry.PostCover,
		entry.Category, entry.PublishingDate, entry.BlogOwnerEmail,
		entry.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicateWishlist
		}
		return fmt.Errorf("ウィッシュリストエントリの保存に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのエントリを削除し、削除行数を返す。
func (r *PostgresWishlistRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("ウィッシュリストエントリの削除に失敗しました: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	return deleted, nil
}

// DeleteByBlogID は指定ブログを参照する全エントリを削除し、削除行数を返す。
func (r *PostgresWishlistRepo) DeleteByBlogID(ctx context.Context, blogID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, fmt.Errorf("ウィッシュリストの一括削除に失敗しました: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	return deleted, nil
}
