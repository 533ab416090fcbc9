// Package wishlist はウィッシュリストのドメインロジックを提供する。
// 所有権ポリシーの適用と、(user, blog)ペアごとに最大1件という
// 重複防止ガードを担う。
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rafee/blogsphere/internal/metrics"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/repository"
)

// Service はウィッシュリストのサービス層。
type Service struct {
	wishlists repository.WishlistRepository
	collector metrics.Collector
}

// NewService はServiceを生成する。
func NewService(wishlists repository.WishlistRepository, collector metrics.Collector) *Service {
	return &Service{wishlists: wishlists, collector: collector}
}

// RemoveResult はエントリ削除の結果を表す。
type RemoveResult struct {
	DeletedCount int64
}

// ListByUser は指定ユーザーのエントリ一覧を返す。
// 本人のみ参照可能（actorEmailとemailの一致を要求する）。
func (s *Service) ListByUser(ctx context.Context, actorEmail, email string) ([]*model.WishlistEntry, error) {
	if actorEmail != email {
		return nil, s.forbidden()
	}
	return s.wishlists.ListByUserEmail(ctx, email)
}

// Add はエントリを追加する。所有者は検証済みクレームのメールアドレス。
//
// 挿入前に(user, blog)ペアの既存エントリを検索し、存在すれば重複として拒否する。
// このcheck-then-insertは並行する同一リクエストに対しては競合し得るため、
// データベースの一意制約がバックストップとして同じ重複エラーに畳み込まれる。
// アプリケーション層の検査だけで厳密な保証はしない。
func (s *Service) Add(ctx context.Context, actorEmail string, entry *model.WishlistEntry) (*model.WishlistEntry, error) {
	if entry.WishlistUserEmail != actorEmail {
		return nil, s.forbidden()
	}
	if err := validateID(entry.BlogID); err != nil {
		return nil, err
	}

	existing, err := s.wishlists.FindByUserAndBlog(ctx, actorEmail, entry.BlogID)
	if err != nil {
		return nil, fmt.Errorf("既存エントリの確認に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, s.duplicate()
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()

	if err := s.wishlists.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateWishlist) {
			// 並行挿入が検査をすり抜け、一意制約で弾かれた場合
			return nil, s.duplicate()
		}
		return nil, fmt.Errorf("エントリの追加に失敗しました: %w", err)
	}

	slog.Info("wishlist entry added",
		slog.String("entry_id", entry.ID),
		slog.String("blog_id", entry.BlogID),
		slog.String("email", entry.WishlistUserEmail),
	)
	return entry, nil
}

// Remove は指定IDのエントリを削除する。
// 所有者は保存済みレコードから解決し、クレームと一致しない場合は拒否する。
// 存在しないIDの削除は0件の成功であり、エラーではない。
func (s *Service) Remove(ctx context.Context, actorEmail, id string) (*RemoveResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	stored, err := s.wishlists.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("削除対象の取得に失敗しました: %w", err)
	}
	if stored == nil {
		return &RemoveResult{}, nil
	}
	if stored.WishlistUserEmail != actorEmail {
		return nil, s.forbidden()
	}

	deleted, err := s.wishlists.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("エントリの削除に失敗しました: %w", err)
	}
	return &RemoveResult{DeletedCount: deleted}, nil
}

// forbidden は所有権不一致の拒否を記録し、統一の403エラーを返す。
func (s *Service) forbidden() error {
	if s.collector != nil {
		s.collector.RecordAuthRejection("ownership_mismatch")
	}
	return model.NewForbiddenError()
}

// duplicate は重複ガードの発動を記録し、重複エラーを返す。
func (s *Service) duplicate() error {
	if s.collector != nil {
		s.collector.RecordDuplicateWishlist()
	}
	return model.NewDuplicateWishlistError()
}

// validateID はIDがUUIDとして妥当かを検証する。
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.NewMalformedIDError(id)
	}
	return nil
}
