package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/rafee/blogsphere/internal/model"
)

// blogWithLength は指定コードポイント数の説明文を持つブログを作成するヘルパー。
func blogWithLength(id string, length int) *model.Blog {
	return &model.Blog{
		ID:              id,
		PostDescription: strings.Repeat("a", length),
	}
}

// TestRankFeatured_TopFiveByLength は説明文長の降順で上位5件が選ばれることを検証する。
func TestRankFeatured_TopFiveByLength(t *testing.T) {
	blogs := []*model.Blog{
		blogWithLength("b1", 0),
		blogWithLength("b2", 50),
		blogWithLength("b3", 200),
		blogWithLength("b4", 10),
		blogWithLength("b5", 300),
		blogWithLength("b6", 150),
		blogWithLength("b7", 75),
	}

	ranked := rankFeatured(blogs)

	wantIDs := []string{"b5", "b3", "b6", "b7", "b2"} // 300, 200, 150, 75, 50
	if len(ranked) != len(wantIDs) {
		t.Fatalf("len(ranked) = %d, want %d", len(ranked), len(wantIDs))
	}
	for i, want := range wantIDs {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d].ID = %q, want %q", i, ranked[i].ID, want)
		}
	}
}

// TestRankFeatured_ExcludesEmptyDescriptions は説明文が空の記事が対象外であることを検証する。
func TestRankFeatured_ExcludesEmptyDescriptions(t *testing.T) {
	blogs := []*model.Blog{
		blogWithLength("b1", 0),
		blogWithLength("b2", 0),
		blogWithLength("b3", 5),
	}

	ranked := rankFeatured(blogs)

	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].ID != "b3" {
		t.Errorf("ranked[0].ID = %q, want b3", ranked[0].ID)
	}
}

// TestRankFeatured_FewerThanFive は5件未満でもそのまま返ることを検証する。
func TestRankFeatured_FewerThanFive(t *testing.T) {
	blogs := []*model.Blog{
		blogWithLength("b1", 10),
		blogWithLength("b2", 20),
	}

	ranked := rankFeatured(blogs)

	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].ID != "b2" || ranked[1].ID != "b1" {
		t.Errorf("order = [%s, %s], want [b2, b1]", ranked[0].ID, ranked[1].ID)
	}
}

// TestRankFeatured_TieBreakIsDeterministic は同点時の順序が入力順に依存しないことを検証する。
// 同点は公開日の降順、さらに同じ場合はIDの昇順で確定させる。
func TestRankFeatured_TieBreakIsDeterministic(t *testing.T) {
	a := &model.Blog{ID: "a", PostDescription: strings.Repeat("x", 10), PublishingDate: "2024-01-01"}
	b := &model.Blog{ID: "b", PostDescription: strings.Repeat("x", 10), PublishingDate: "2024-06-01"}
	c := &model.Blog{ID: "c", PostDescription: strings.Repeat("x", 10), PublishingDate: "2024-01-01"}

	forward := rankFeatured([]*model.Blog{a, b, c})
	reverse := rankFeatured([]*model.Blog{c, b, a})

	wantIDs := []string{"b", "a", "c"} // 公開日降順 → ID昇順
	for i, want := range wantIDs {
		if forward[i].ID != want {
			t.Errorf("forward[%d].ID = %q, want %q", i, forward[i].ID, want)
		}
		if reverse[i].ID != want {
			t.Errorf("reverse[%d].ID = %q, want %q", i, reverse[i].ID, want)
		}
	}
}

// TestRankFeatured_CountsCodePoints は長さがバイト数ではなくコードポイント数で数えられることを検証する。
func TestRankFeatured_CountsCodePoints(t *testing.T) {
	// 「あ」は3バイト1コードポイント。バイト数で数えると multibyte が勝ってしまう。
	multibyte := &model.Blog{ID: "jp", PostDescription: strings.Repeat("あ", 4)} // 4文字 = 12バイト
	ascii := &model.Blog{ID: "en", PostDescription: strings.Repeat("a", 6)}     // 6文字 = 6バイト

	ranked := rankFeatured([]*model.Blog{multibyte, ascii})

	if ranked[0].ID != "en" {
		t.Errorf("ranked[0].ID = %q, want en (code point count should win)", ranked[0].ID)
	}
}

// TestFeatured_QueriesAllCategories はランキングが全カテゴリを母集団にすることを検証する。
func TestFeatured_QueriesAllCategories(t *testing.T) {
	var gotCategory string
	blogs := &mockBlogRepo{
		listFn: func(ctx context.Context, category string) ([]*model.Blog, error) {
			gotCategory = category
			return []*model.Blog{blogWithLength("b1", 10)}, nil
		},
	}
	svc := newTestService(blogs, &mockWishlistRepo{}, nil)

	ranked, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured failed: %v", err)
	}
	if gotCategory != "" {
		t.Errorf("List was called with category %q, want empty", gotCategory)
	}
	if len(ranked) != 1 {
		t.Errorf("len(ranked) = %d, want 1", len(ranked))
	}
}
