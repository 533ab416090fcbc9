package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafee/blogsphere/internal/metrics"
	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/session"
)

// HealthChecker はヘルスチェックで依存先の疎通を確認するためのインターフェース。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	SessionTransport  *session.Transport
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Collector         metrics.Collector
	CSRFEnabled       bool
	CSRFConfig        middleware.CSRFConfig

	// 認証
	TokenIssuer TokenIssuerInterface

	// ドメインサービス
	BlogService     BlogServiceInterface
	WishlistService WishlistServiceInterface
	CommentService  CommentServiceInterface

	// ヘルスチェック
	HealthChecker HealthChecker

	// ログ出力先。nilの場合はslog.Defaultを使用する。
	Logger *slog.Logger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 公開ルート（一覧・詳細・注目・コメント閲覧・トークン発行）は認証なしで到達でき、
// 書き込み系ルートは Auth → RateLimit(General) →（有効時）CSRF を通る。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Collector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	}

	authHandler := NewAuthHandler(deps.TokenIssuer, deps.SessionTransport)
	blogHandler := NewBlogHandler(deps.BlogService)
	wishlistHandler := NewWishlistHandler(deps.WishlistService)
	commentHandler := NewCommentHandler(deps.CommentService)

	// --- 認証不要のルート ---

	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/logout", authHandler.Logout)

	r.Get("/blogs", blogHandler.ListBlogs)
	r.Get("/blogs/{id}", blogHandler.GetBlog)
	r.Get("/featured-blogs", blogHandler.FeaturedBlogs)
	r.Get("/comments/{id}", commentHandler.ListComments)

	r.Get("/healthz", newHealthzHandler(deps.HealthChecker))

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General) →（有効時）CSRF
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.SessionTransport, deps.Collector))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}
		if deps.CSRFEnabled {
			r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		}

		// ブログ管理
		if deps.RateLimiter != nil {
			r.With(deps.RateLimiter.PublishMiddleware()).Post("/blogs", blogHandler.PublishBlog)
		} else {
			r.Post("/blogs", blogHandler.PublishBlog)
		}
		r.Put("/blogs/{id}", blogHandler.UpdateBlog)
		r.Delete("/blogs/{id}", blogHandler.DeleteBlog)
		r.Get("/blogs/user/{email}", blogHandler.ListUserBlogs)

		// ウィッシュリスト管理
		r.Get("/wishlists", wishlistHandler.ListWishlist)
		r.Post("/wishlists", wishlistHandler.AddWishlist)
		r.Delete("/wishlists/{id}", wishlistHandler.RemoveWishlist)

		// コメント投稿
		r.Post("/comments", commentHandler.AddComment)
	})

	return r
}

// newHealthzHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
// checkerがnilの場合はプロセス生存のみを報告する。
func newHealthzHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := checker.PingContext(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}
