package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rafee/blogsphere/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// ListByBlogID は指定ブログのコメント一覧を古い順で返す。
func (r *PostgresCommentRepo) ListByBlogID(ctx context.Context, blogID string) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, blog_id, comment_email, commenter_name, commenter_photo, comment_text, created_at
		 FROM comments WHERE blog_id = $1 ORDER BY created_at`,
		blogID,
	)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(
			&c.ID, &c.BlogID, &c.CommentEmail, &c.CommenterName,
			&c.CommenterPhoto, &c.Text, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("コメント行の読み取りに失敗しました: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コメント行の走査に失敗しました: %w", err)
	}
	return comments, nil
}

// Create はコメントを作成する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, blog_id, comment_email, commenter_name, commenter_photo, comment_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		comment.ID, comment.BlogID, comment.CommentEmail,
		comment.CommenterName, comment.CommenterPhoto, comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("コメントの保存に失敗しました: %w", err)
	}
	return nil
}
