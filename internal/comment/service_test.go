package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rafee/blogsphere/internal/model"
)

// mockCommentRepo はrepository.CommentRepositoryのモック実装。
type mockCommentRepo struct {
	listByBlogIDFn func(ctx context.Context, blogID string) ([]*model.Comment, error)
	createFn       func(ctx context.Context, comment *model.Comment) error
}

func (m *mockCommentRepo) ListByBlogID(ctx context.Context, blogID string) ([]*model.Comment, error) {
	if m.listByBlogIDFn != nil {
		return m.listByBlogIDFn(ctx, blogID)
	}
	return nil, nil
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

// markerSanitizer はsecurity.Sanitizerのモック実装。
type markerSanitizer struct{}

func (markerSanitizer) Sanitize(html string) string { return "sanitized:" + html }

// assertAPIErrorCode はAPIErrorのコードを検証するヘルパー。
func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", apiErr.Code, wantCode)
	}
}

const commenterEmail = "commenter@example.com"

var testBlogID = uuid.NewString()

func validComment() *model.Comment {
	return &model.Comment{
		BlogID:        testBlogID,
		CommentEmail:  commenterEmail,
		CommenterName: "山田",
		Text:          "<p>良い記事でした</p>",
	}
}

// TestAdd_Success は追加時にID採番とサニタイズが行われることを検証する。
func TestAdd_Success(t *testing.T) {
	var created *model.Comment
	repo := &mockCommentRepo{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			created = comment
			return nil
		},
	}
	svc := NewService(repo, markerSanitizer{}, nil)

	result, err := svc.Add(context.Background(), commenterEmail, validComment())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created == nil {
		t.Fatal("Create was not called")
	}
	if _, err := uuid.Parse(result.ID); err != nil {
		t.Errorf("result.ID = %q is not a valid UUID", result.ID)
	}
	if result.Text != "sanitized:<p>良い記事でした</p>" {
		t.Errorf("comment text was not sanitized: %q", result.Text)
	}
}

// TestAdd_EmailMismatch は他人名義のコメントが拒否されることを検証する。
func TestAdd_EmailMismatch(t *testing.T) {
	repo := &mockCommentRepo{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			t.Error("Create should not be called")
			return nil
		},
	}
	svc := NewService(repo, markerSanitizer{}, nil)

	_, err := svc.Add(context.Background(), "someone-else@example.com", validComment())
	assertAPIErrorCode(t, err, model.ErrCodeForbidden)
}

// TestAdd_MalformedBlogID は形式不正なブログIDが弾かれることを検証する。
func TestAdd_MalformedBlogID(t *testing.T) {
	svc := NewService(&mockCommentRepo{}, markerSanitizer{}, nil)

	c := validComment()
	c.BlogID = "nope"

	_, err := svc.Add(context.Background(), commenterEmail, c)
	assertAPIErrorCode(t, err, model.ErrCodeMalformedID)
}

// TestAdd_EmptyText は空コメントが拒否されることを検証する。
func TestAdd_EmptyText(t *testing.T) {
	svc := NewService(&mockCommentRepo{}, markerSanitizer{}, nil)

	c := validComment()
	c.Text = "  \n "

	_, err := svc.Add(context.Background(), commenterEmail, c)
	assertAPIErrorCode(t, err, model.ErrCodeInvalidRequest)
}

// TestListByBlog_Success は一覧取得がストアに委譲されることを検証する。
func TestListByBlog_Success(t *testing.T) {
	repo := &mockCommentRepo{
		listByBlogIDFn: func(ctx context.Context, blogID string) ([]*model.Comment, error) {
			return []*model.Comment{{ID: uuid.NewString(), BlogID: blogID}}, nil
		},
	}
	svc := NewService(repo, markerSanitizer{}, nil)

	comments, err := svc.ListByBlog(context.Background(), testBlogID)
	if err != nil {
		t.Fatalf("ListByBlog failed: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("len(comments) = %d, want 1", len(comments))
	}
}

// TestListByBlog_MalformedID は形式不正なブログIDが弾かれることを検証する。
func TestListByBlog_MalformedID(t *testing.T) {
	svc := NewService(&mockCommentRepo{}, markerSanitizer{}, nil)

	_, err := svc.ListByBlog(context.Background(), "bad-id")
	assertAPIErrorCode(t, err, model.ErrCodeMalformedID)
}
