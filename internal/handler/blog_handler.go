package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafee/blogsphere/internal/blog"
	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/model"
)

// BlogServiceInterface はブログハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	// List はカテゴリで絞り込んだブログ一覧を返す。categoryが空なら全件。
	List(ctx context.Context, category string) ([]*model.Blog, error)
	// Get はIDでブログを1件取得する。存在しない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.Blog, error)
	// ListByOwner は指定メールアドレスが所有するブログ一覧を返す。
	ListByOwner(ctx context.Context, actorEmail, ownerEmail string) ([]*model.Blog, error)
	// Publish は新しいブログを公開する。
	Publish(ctx context.Context, actorEmail string, b *model.Blog) (*model.Blog, error)
	// Update は既存ブログの可変フィールドを更新する。
	Update(ctx context.Context, actorEmail, id string, patch *model.BlogPatch) (*blog.UpdateResult, error)
	// Delete はブログを削除し、関連ウィッシュリストを連鎖削除する。
	Delete(ctx context.Context, actorEmail, id string) (*blog.DeleteResult, error)
	// Featured は注目ブログの上位を返す。
	Featured(ctx context.Context) ([]*model.Blog, error)
}

// BlogHandler はブログ管理のHTTPハンドラー。
type BlogHandler struct {
	service BlogServiceInterface
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(service BlogServiceInterface) *BlogHandler {
	return &BlogHandler{service: service}
}

// blogRequest はブログ作成・更新リクエストのボディ。
type blogRequest struct {
	Email           string `json:"email"`
	PostTitle       string `json:"postTitle"`
	PostDescription string `json:"postDescription"`
	PostCover       string `json:"postCover"`
	Category        string `json:"category"`
	PublishingDate  string `json:"publishingDate"`
}

// blogResponse はブログ情報のAPIレスポンス。
type blogResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	PostTitle       string `json:"postTitle"`
	PostDescription string `json:"postDescription"`
	PostCover       string `json:"postCover"`
	Category        string `json:"category"`
	PublishingDate  string `json:"publishingDate"`
}

// updateBlogResponse は更新操作の結果レスポンス。
type updateBlogResponse struct {
	MatchedCount int64  `json:"matchedCount"`
	UpsertedID   string `json:"upsertedId,omitempty"`
}

// deleteBlogResponse は削除操作の結果レスポンス。
// 連鎖削除されたウィッシュリスト件数も併せて返す。
type deleteBlogResponse struct {
	DeletedCount   int64 `json:"deletedCount"`
	PurgedEntries  int64 `json:"deletedFromWishlists"`
}

// ListBlogs はブログ一覧を取得する。
// GET /blogs?category=xxx
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	blogs, err := h.service.List(r.Context(), category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toBlogResponses(blogs))
}

// GetBlog はブログ詳細を取得する。
// GET /blogs/:id
// 存在しないIDに対しては200とnullボディを返す。
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if b == nil {
		writeJSONResponse(w, http.StatusOK, nil)
		return
	}

	writeJSONResponse(w, http.StatusOK, toBlogResponse(b))
}

// FeaturedBlogs は注目ブログの上位を取得する。
// GET /featured-blogs
func (h *BlogHandler) FeaturedBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.Featured(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toBlogResponses(blogs))
}

// ListUserBlogs はログイン中ユーザーが所有するブログ一覧を取得する。
// GET /blogs/user/:email
func (h *BlogHandler) ListUserBlogs(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	ownerEmail := chi.URLParam(r, "email")

	blogs, err := h.service.ListByOwner(r.Context(), actorEmail, ownerEmail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toBlogResponses(blogs))
}

// PublishBlog は新しいブログを公開する。
// POST /blogs
func (h *BlogHandler) PublishBlog(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Publish(r.Context(), actorEmail, &model.Blog{
		Email:           req.Email,
		PostTitle:       req.PostTitle,
		PostDescription: req.PostDescription,
		PostCover:       req.PostCover,
		Category:        req.Category,
		PublishingDate:  req.PublishingDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toBlogResponse(created))
}

// UpdateBlog は既存ブログを更新する。
// PUT /blogs/:id
// 所有者はリクエストボディではなく保存済みレコードから解決する。
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	result, err := h.service.Update(r.Context(), actorEmail, id, &model.BlogPatch{
		PostTitle:       req.PostTitle,
		PostDescription: req.PostDescription,
		PostCover:       req.PostCover,
		Category:        req.Category,
		PublishingDate:  req.PublishingDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, updateBlogResponse{
		MatchedCount: result.MatchedCount,
		UpsertedID:   result.UpsertedID,
	})
}

// DeleteBlog はブログを削除する。
// DELETE /blogs/:id
// 存在しないIDに対しては件数0の成功レスポンスを返す（冪等）。
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.service.Delete(r.Context(), actorEmail, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, deleteBlogResponse{
		DeletedCount:  result.DeletedCount,
		PurgedEntries: result.PurgedWishlists,
	})
}

// --- ヘルパー関数 ---

func toBlogResponse(b *model.Blog) *blogResponse {
	return &blogResponse{
		ID:              b.ID,
		Email:           b.Email,
		PostTitle:       b.PostTitle,
		PostDescription: b.PostDescription,
		PostCover:       b.PostCover,
		Category:        b.Category,
		PublishingDate:  b.PublishingDate,
	}
}

// toBlogResponses は一覧レスポンスを組み立てる。結果が空でもnullではなく[]を返す。
func toBlogResponses(blogs []*model.Blog) []*blogResponse {
	responses := make([]*blogResponse, 0, len(blogs))
	for _, b := range blogs {
		responses = append(responses, toBlogResponse(b))
	}
	return responses
}

// writeJSONResponse はJSONボディ付きのレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
