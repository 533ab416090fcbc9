package blog

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/rafee/blogsphere/internal/model"
)

// featuredLimit は注目記事として返す最大件数。
const featuredLimit = 5

// Featured は説明文の長さによる注目記事の上位5件を返す。
// 説明文が空の記事は対象外。長さはバイト数ではなくコードポイント数で数える。
func (s *Service) Featured(ctx context.Context) ([]*model.Blog, error) {
	blogs, err := s.blogs.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("注目記事の取得に失敗しました: %w", err)
	}
	return rankFeatured(blogs), nil
}

// rankFeatured は説明文のコードポイント数の降順でソートし、上位5件に切り詰める。
// 長さが同じ場合は公開日の降順、さらに同じならIDの昇順で順序を確定させる。
// タイブレークを固定することで結果は入力順に依存しない。
func rankFeatured(blogs []*model.Blog) []*model.Blog {
	ranked := make([]*model.Blog, 0, len(blogs))
	for _, b := range blogs {
		if utf8.RuneCountInString(b.PostDescription) > 0 {
			ranked = append(ranked, b)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		li := utf8.RuneCountInString(ranked[i].PostDescription)
		lj := utf8.RuneCountInString(ranked[j].PostDescription)
		if li != lj {
			return li > lj
		}
		if ranked[i].PublishingDate != ranked[j].PublishingDate {
			return ranked[i].PublishingDate > ranked[j].PublishingDate
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > featuredLimit {
		ranked = ranked[:featuredLimit]
	}
	return ranked
}
