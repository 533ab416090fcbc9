package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rafee/blogsphere/internal/model"
)

// PostgresBlogRepo はPostgreSQLを使用したブログリポジトリ。
type PostgresBlogRepo struct {
	db *sql.DB
}

// NewPostgresBlogRepo はPostgresBlogRepoを生成する。
func NewPostgresBlogRepo(db *sql.DB) *PostgresBlogRepo {
	return &PostgresBlogRepo{db: db}
}

const blogColumns = `id, email, post_title, post_description, post_cover, category, publishing_date, created_at, updated_at`

// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
func (r *PostgresBlogRepo) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	blog := &model.Blog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`,
		id,
	).Scan(
		&blog.ID, &blog.Email, &blog.PostTitle, &blog.PostDescription,
		&blog.PostCover, &blog.Category, &blog.PublishingDate,
		&blog.CreatedAt, &blog.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ブログの取得に失敗しました: %w", err)
	}

	return blog, nil
}

// List はブログ一覧を返す。categoryが空でない場合は完全一致で絞り込む。
func (r *PostgresBlogRepo) List(ctx context.Context, category string) ([]*model.Blog, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if category != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+blogColumns+` FROM blogs WHERE category = $1 ORDER BY created_at`,
			category,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+blogColumns+` FROM blogs ORDER BY created_at`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("ブログ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanBlogs(rows)
}

// ListByEmail は指定ユーザーが所有するブログ一覧を返す。
func (r *PostgresBlogRepo) ListByEmail(ctx context.Context, email string) ([]*model.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE email = $1 ORDER BY created_at`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("ユーザーのブログ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanBlogs(rows)
}

// Create はブログを作成する。
func (r *PostgresBlogRepo) Create(ctx context.Context, blog *model.Blog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (id, email, post_title, post_description, post_cover, category, publishing_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		blog.ID, blog.Email, blog.PostTitle, blog.PostDescription,
		blog.PostCover, blog.Category, blog.PublishingDate,
		blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ブログの保存に失敗しました: %w", err)
	}
	return nil
}

// Update は指定IDのブログの可変フィールドを上書きする。
// 該当行が存在しない場合はupsertとして新規行を挿入する。
// 所有者email列を更新対象に含めないため、upsert時のみownerEmailを使用する。
func (r *PostgresBlogRepo) Update(ctx context.Context, id string, ownerEmail string, patch *model.BlogPatch) (int64, string, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs
		 SET post_title = $1, post_description = $2, post_cover = $3,
		     category = $4, publishing_date = $5, updated_at = $6
		 WHERE id = $7`,
		patch.PostTitle, patch.PostDescription, patch.PostCover,
		patch.Category, patch.PublishingDate, time.Now(),
		id,
	)
	if err != nil {
		return 0, "", fmt.Errorf("ブログの更新に失敗しました: %w", err)
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, "", fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if matched > 0 {
		return matched, "", nil
	}

	// upsert: 該当行がなければ新規作成する
	now := time.Now()
	blog := &model.Blog{
		ID:              id,
		Email:           ownerEmail,
		PostTitle:       patch.PostTitle,
		PostDescription: patch.PostDescription,
		PostCover:       patch.PostCover,
		Category:        patch.Category,
		PublishingDate:  patch.PublishingDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.Create(ctx, blog); err != nil {
		return 0, "", err
	}
	return 0, id, nil
}

// DeleteByID は指定IDのブログを削除し、削除行数を返す。
func (r *PostgresBlogRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("ブログの削除に失敗しました: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	return deleted, nil
}

// scanBlogs はクエリ結果の全行をBlogスライスに変換する。
func scanBlogs(rows *sql.Rows) ([]*model.Blog, error) {
	var blogs []*model.Blog
	for rows.Next() {
		blog := &model.Blog{}
		if err := rows.Scan(
			&blog.ID, &blog.Email, &blog.PostTitle, &blog.PostDescription,
			&blog.PostCover, &blog.Category, &blog.PublishingDate,
			&blog.CreatedAt, &blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ブログ行の読み取りに失敗しました: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ブログ行の走査に失敗しました: %w", err)
	}
	return blogs, nil
}
