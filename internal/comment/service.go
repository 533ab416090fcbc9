// Package comment はコメントのドメインロジックを提供する。
// コメントは追記専用であり、作成と一覧のみを提供する。
package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafee/blogsphere/internal/metrics"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/repository"
	"github.com/rafee/blogsphere/internal/security"
)

// Service はコメントのサービス層。
type Service struct {
	comments  repository.CommentRepository
	sanitizer security.Sanitizer
	collector metrics.Collector
}

// NewService はServiceを生成する。
func NewService(comments repository.CommentRepository, sanitizer security.Sanitizer, collector metrics.Collector) *Service {
	return &Service{comments: comments, sanitizer: sanitizer, collector: collector}
}

// ListByBlog は指定ブログのコメント一覧を返す。
// 形式不正なブログIDはストアに到達する前にMALFORMED_IDとして弾く。
func (s *Service) ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error) {
	if _, err := uuid.Parse(blogID); err != nil {
		return nil, model.NewMalformedIDError(blogID)
	}
	return s.comments.ListByBlogID(ctx, blogID)
}

// Add はコメントを追加する。投稿者は検証済みクレームのメールアドレスと
// 一致しなければならない。
func (s *Service) Add(ctx context.Context, actorEmail string, comment *model.Comment) (*model.Comment, error) {
	if comment.CommentEmail != actorEmail {
		if s.collector != nil {
			s.collector.RecordAuthRejection("ownership_mismatch")
		}
		return nil, model.NewForbiddenError()
	}
	if _, err := uuid.Parse(comment.BlogID); err != nil {
		return nil, model.NewMalformedIDError(comment.BlogID)
	}
	if strings.TrimSpace(comment.Text) == "" {
		return nil, model.NewInvalidRequestError("コメント本文が空です")
	}

	comment.ID = uuid.New().String()
	comment.Text = s.sanitizer.Sanitize(comment.Text)
	comment.CreatedAt = time.Now()

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("コメントの追加に失敗しました: %w", err)
	}
	return comment, nil
}
