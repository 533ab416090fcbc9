package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/model"
	"github.com/rafee/blogsphere/internal/wishlist"
)

// WishlistServiceInterface はウィッシュリストハンドラーが必要とするサービスインターフェース。
type WishlistServiceInterface interface {
	// ListByUser は指定ユーザーのウィッシュリスト一覧を返す。
	ListByUser(ctx context.Context, actorEmail, userEmail string) ([]*model.WishlistEntry, error)
	// Add はウィッシュリストにエントリを追加する。重複は拒否される。
	Add(ctx context.Context, actorEmail string, entry *model.WishlistEntry) (*model.WishlistEntry, error)
	// Remove はウィッシュリストからエントリを削除する。
	Remove(ctx context.Context, actorEmail, id string) (*wishlist.RemoveResult, error)
}

// WishlistHandler はウィッシュリスト管理のHTTPハンドラー。
type WishlistHandler struct {
	service WishlistServiceInterface
}

// NewWishlistHandler はWishlistHandlerを生成する。
func NewWishlistHandler(service WishlistServiceInterface) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// wishlistRequest はウィッシュリスト追加リクエストのボディ。
// 対象ブログのスナップショットを併せて保存する。
type wishlistRequest struct {
	WishlistUserEmail string `json:"wishlistUserEmail"`
	BlogID            string `json:"blogId"`
	PostTitle         string `json:"postTitle"`
	PostDescription   string `json:"postDescription"`
	PostCover         string `json:"postCover"`
	Category          string `json:"category"`
	PublishingDate    string `json:"publishingDate"`
	BlogOwnerEmail    string `json:"blogOwnerEmail"`
}

// wishlistResponse はウィッシュリストエントリのAPIレスポンス。
type wishlistResponse struct {
	ID                string `json:"id"`
	WishlistUserEmail string `json:"wishlistUserEmail"`
	BlogID            string `json:"blogId"`
	PostTitle         string `json:"postTitle"`
	PostDescription   string `json:"postDescription"`
	PostCover         string `json:"postCover"`
	Category          string `json:"category"`
	PublishingDate    string `json:"publishingDate"`
	BlogOwnerEmail    string `json:"blogOwnerEmail"`
}

// removeWishlistResponse は削除操作の結果レスポンス。
type removeWishlistResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListWishlist はログイン中ユーザーのウィッシュリスト一覧を取得する。
// GET /wishlists?email=xxx
// emailクエリが省略された場合はログイン中ユーザー自身の一覧を返す。
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	userEmail := r.URL.Query().Get("email")
	if userEmail == "" {
		userEmail = actorEmail
	}

	entries, err := h.service.ListByUser(r.Context(), actorEmail, userEmail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toWishlistResponses(entries))
}

// AddWishlist はウィッシュリストにエントリを追加する。
// POST /wishlists
func (h *WishlistHandler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Add(r.Context(), actorEmail, &model.WishlistEntry{
		WishlistUserEmail: req.WishlistUserEmail,
		BlogID:            req.BlogID,
		PostTitle:         req.PostTitle,
		PostDescription:   req.PostDescription,
		PostCover:         req.PostCover,
		Category:          req.Category,
		PublishingDate:    req.PublishingDate,
		BlogOwnerEmail:    req.BlogOwnerEmail,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toWishlistResponse(created))
}

// RemoveWishlist はウィッシュリストからエントリを削除する。
// DELETE /wishlists/:id
// 存在しないIDに対しては件数0の成功レスポンスを返す（冪等）。
func (h *WishlistHandler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.service.Remove(r.Context(), actorEmail, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, removeWishlistResponse{DeletedCount: result.DeletedCount})
}

// --- ヘルパー関数 ---

func toWishlistResponse(e *model.WishlistEntry) *wishlistResponse {
	return &wishlistResponse{
		ID:                e.ID,
		WishlistUserEmail: e.WishlistUserEmail,
		BlogID:            e.BlogID,
		PostTitle:         e.PostTitle,
		PostDescription:   e.PostDescription,
		PostCover:         e.PostCover,
		Category:          e.Category,
		PublishingDate:    e.PublishingDate,
		BlogOwnerEmail:    e.BlogOwnerEmail,
	}
}

func toWishlistResponses(entries []*model.WishlistEntry) []*wishlistResponse {
	responses := make([]*wishlistResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toWishlistResponse(e))
	}
	return responses
}
