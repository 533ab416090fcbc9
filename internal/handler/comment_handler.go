package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafee/blogsphere/internal/middleware"
	"github.com/rafee/blogsphere/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// ListByBlog は指定ブログのコメント一覧を古い順に返す。
	ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error)
	// Add はブログにコメントを追加する。
	Add(ctx context.Context, actorEmail string, comment *model.Comment) (*model.Comment, error)
}

// CommentHandler はコメント管理のHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// commentRequest はコメント追加リクエストのボディ。
type commentRequest struct {
	BlogID         string `json:"blogId"`
	CommentEmail   string `json:"commentEmail"`
	CommenterName  string `json:"commenterName"`
	CommenterPhoto string `json:"commenterPhoto"`
	Text           string `json:"comment"`
}

// commentResponse はコメントのAPIレスポンス。
type commentResponse struct {
	ID             string `json:"id"`
	BlogID         string `json:"blogId"`
	CommentEmail   string `json:"commentEmail"`
	CommenterName  string `json:"commenterName"`
	CommenterPhoto string `json:"commenterPhoto"`
	Text           string `json:"comment"`
}

// ListComments はブログのコメント一覧を取得する。
// GET /comments/:id
// :id はブログのID。コメントが存在しない場合は空配列を返す。
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	blogID := chi.URLParam(r, "id")

	comments, err := h.service.ListByBlog(r.Context(), blogID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toCommentResponses(comments))
}

// AddComment はブログにコメントを追加する。
// POST /comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actorEmail, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewUnauthorizedError())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Add(r.Context(), actorEmail, &model.Comment{
		BlogID:         req.BlogID,
		CommentEmail:   req.CommentEmail,
		CommenterName:  req.CommenterName,
		CommenterPhoto: req.CommenterPhoto,
		Text:           req.Text,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toCommentResponse(created))
}

// --- ヘルパー関数 ---

func toCommentResponse(c *model.Comment) *commentResponse {
	return &commentResponse{
		ID:             c.ID,
		BlogID:         c.BlogID,
		CommentEmail:   c.CommentEmail,
		CommenterName:  c.CommenterName,
		CommenterPhoto: c.CommenterPhoto,
		Text:           c.Text,
	}
}

func toCommentResponses(comments []*model.Comment) []*commentResponse {
	responses := make([]*commentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, toCommentResponse(c))
	}
	return responses
}
