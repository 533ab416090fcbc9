// Package blog はブログ記事のドメインロジックを提供する。
// 所有権ポリシーの適用、公開・更新・削除、削除時のウィッシュリスト
// カスケード削除、注目記事のランキングを担う。
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rafee/blogsphere/internal/metrics"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/repository"
	"github.com/rafee/blogsphere/internal/security"
)

// Service はブログ記事のサービス層。
// すべての変更系操作は、検証済みクレームのメールアドレスと
// ストレージ上の所有者メールアドレスの一致を前提条件とする。
// 所有者はクライアントが申告した値ではなく、必ず保存済みレコードから解決する。
type Service struct {
	blogs      repository.BlogRepository
	wishlists  repository.WishlistRepository
	sanitizer  security.Sanitizer
	coverGuard security.CoverGuardService
	collector  metrics.Collector
	probeCover bool
}

// NewService はServiceを生成する。
// probeCoverが真の場合、公開・更新時にカバー画像URLへHEADプローブを行う。
func NewService(
	blogs repository.BlogRepository,
	wishlists repository.WishlistRepository,
	sanitizer security.Sanitizer,
	coverGuard security.CoverGuardService,
	collector metrics.Collector,
	probeCover bool,
) *Service {
	return &Service{
		blogs:      blogs,
		wishlists:  wishlists,
		sanitizer:  sanitizer,
		coverGuard: coverGuard,
		collector:  collector,
		probeCover: probeCover,
	}
}

// UpdateResult はupsert更新の結果を表す。
type UpdateResult struct {
	MatchedCount int64
	UpsertedID   string
}

// DeleteResult はブログ削除とカスケード削除の結果を表す。
type DeleteResult struct {
	DeletedCount    int64
	PurgedWishlists int64
}

// List はブログ一覧を返す。categoryが指定された場合は先頭大文字化して
// 完全一致で絞り込む（"tech" で保存済みの "Tech" にマッチする）。
func (s *Service) List(ctx context.Context, category string) ([]*model.Blog, error) {
	return s.blogs.List(ctx, NormalizeCategory(category))
}

// Get は指定IDのブログを取得する。見つからない場合はnilを返す。
// 形式不正なIDはストアに到達する前にMALFORMED_IDとして弾く。
func (s *Service) Get(ctx context.Context, id string) (*model.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.blogs.FindByID(ctx, id)
}

// ListByOwner は指定ユーザーが所有するブログ一覧を返す。
// 本人のみ参照可能（actorEmailとemailの一致を要求する）。
func (s *Service) ListByOwner(ctx context.Context, actorEmail, email string) ([]*model.Blog, error) {
	if actorEmail != email {
		return nil, s.forbidden()
	}
	return s.blogs.ListByEmail(ctx, email)
}

// Publish は新しいブログを公開する。所有者は検証済みクレームのメールアドレス。
// リクエストボディのemailがクレームと一致しない場合は拒否する。
func (s *Service) Publish(ctx context.Context, actorEmail string, blog *model.Blog) (*model.Blog, error) {
	if blog.Email != actorEmail {
		return nil, s.forbidden()
	}
	if strings.TrimSpace(blog.PostTitle) == "" {
		return nil, model.NewInvalidRequestError("タイトルが空です")
	}
	if err := s.checkCover(blog.PostCover); err != nil {
		return nil, err
	}

	now := time.Now()
	blog.ID = uuid.New().String()
	blog.PostDescription = s.sanitizer.Sanitize(blog.PostDescription)
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("ブログの公開に失敗しました: %w", err)
	}

	slog.Info("blog published",
		slog.String("blog_id", blog.ID),
		slog.String("email", blog.Email),
	)
	return blog, nil
}

// Update は指定IDのブログの可変フィールドを更新する。
// 所有者は保存済みレコードから解決し、クレームと一致しない場合は
// ストレージに触れる前に拒否する。該当レコードが存在しない場合は
// 操作者を所有者としたupsertになる。
func (s *Service) Update(ctx context.Context, actorEmail, id string, patch *model.BlogPatch) (*UpdateResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	stored, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("更新対象の取得に失敗しました: %w", err)
	}
	if stored != nil && stored.Email != actorEmail {
		return nil, s.forbidden()
	}

	if err := s.checkCover(patch.PostCover); err != nil {
		return nil, err
	}
	patch.PostDescription = s.sanitizer.Sanitize(patch.PostDescription)

	matched, upsertedID, err := s.blogs.Update(ctx, id, actorEmail, patch)
	if err != nil {
		return nil, fmt.Errorf("ブログの更新に失敗しました: %w", err)
	}
	return &UpdateResult{MatchedCount: matched, UpsertedID: upsertedID}, nil
}

// Delete は指定IDのブログを削除し、そのブログを参照する全ウィッシュリスト
// エントリをカスケード削除する。
//
// 2つの削除は原子的ではない。1段目の成功後に2段目が失敗した場合、
// 存在しないブログを参照する孤児エントリが残り得る。2段目は冪等
// （参照ゼロの削除は0件の成功）なので再実行は安全。2段目の失敗は
// ログとメトリクスに記録するのみで、レスポンスには1段目の結果を反映する。
//
// 存在しないIDの削除は0件の成功であり、エラーではない。
func (s *Service) Delete(ctx context.Context, actorEmail, id string) (*DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	stored, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("削除対象の取得に失敗しました: %w", err)
	}
	if stored == nil {
		return &DeleteResult{}, nil
	}
	if stored.Email != actorEmail {
		return nil, s.forbidden()
	}

	deleted, err := s.blogs.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ブログの削除に失敗しました: %w", err)
	}

	result := &DeleteResult{DeletedCount: deleted}

	purged, err := s.wishlists.DeleteByBlogID(ctx, id)
	if err != nil {
		// カスケード失敗はリクエストエラーとして扱わない。孤児エントリは
		// 安全性に関わらないため、記録して運用で再実行する。
		slog.Error("wishlist cascade purge failed",
			slog.String("blog_id", id),
			slog.String("error", err.Error()),
		)
		if s.collector != nil {
			s.collector.RecordCascadePurgeFailure()
		}
		return result, nil
	}

	result.PurgedWishlists = purged
	if s.collector != nil {
		s.collector.RecordCascadePurge(purged)
	}

	slog.Info("blog deleted",
		slog.String("blog_id", id),
		slog.Int64("purged_wishlists", purged),
	)
	return result, nil
}

// checkCover はカバー画像URLを検証する。
func (s *Service) checkCover(rawURL string) error {
	if s.coverGuard == nil || rawURL == "" {
		return nil
	}
	if err := s.coverGuard.ValidateURL(rawURL); err != nil {
		return model.NewInvalidCoverURLError(err.Error())
	}
	if s.probeCover {
		if err := s.coverGuard.Probe(rawURL); err != nil {
			return model.NewInvalidCoverURLError(err.Error())
		}
	}
	return nil
}

// forbidden は所有権不一致の拒否を記録し、統一の403エラーを返す。
func (s *Service) forbidden() error {
	if s.collector != nil {
		s.collector.RecordAuthRejection("ownership_mismatch")
	}
	return model.NewForbiddenError()
}

// validateID はIDがUUIDとして妥当かを検証する。
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.NewMalformedIDError(id)
	}
	return nil
}

// NormalizeCategory はカテゴリ入力の先頭1文字を大文字化する。
// カテゴリ検索の大文字小文字を吸収する規約（"tech" → "Tech"）。
func NormalizeCategory(category string) string {
	if category == "" {
		return ""
	}
	runes := []rune(category)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
