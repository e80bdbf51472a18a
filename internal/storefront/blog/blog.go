// Package blog holds the storefront's published posts.
package blog

import (
	"context"
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/gateway"
	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
)

// pageSize is the listing size requested from the API
const pageSize = 100

// PostSource fetches published posts
type PostSource interface {
	ListBlogs(ctx context.Context, q gateway.ListQuery) (*gateway.Page[model.BlogPost], error)
}

// SeedPosts returns the built-in posts shown when the API is unreachable
func SeedPosts() []model.BlogPost {
	return []model.BlogPost{
		{
			ID:        "b1",
			Title:     "5 Lợi ích của Ghế Công Thái Học đối với sức khỏe",
			Excerpt:   "Tại sao bạn cần đầu tư một chiếc ghế tốt ngay hôm nay?",
			Content:   "Ghế công thái học không chỉ là một món đồ nội thất, nó là khoản đầu tư cho sức khỏe lâu dài...",
			Author:    "Admin Ergolife",
			Date:      "2023-11-20",
			Image:     "https://picsum.photos/seed/blog1/800/400",
			Published: true,
		},
		{
			ID:        "b2",
			Title:     "Cách thiết lập góc làm việc chuẩn công thái học",
			Excerpt:   "Hướng dẫn chi tiết từng bước để có một setup hoàn hảo.",
			Content:   "Bắt đầu từ độ cao của bàn, vị trí màn hình đến cách đặt bàn chân...",
			Author:    "Nhân viên Support",
			Date:      "2023-11-25",
			Image:     "https://picsum.photos/seed/blog2/800/400",
			Published: true,
		},
	}
}

// State holds the loaded posts. Loading follows the catalogue policy: any
// failure installs the seed posts, superseded loads are dropped.
type State struct {
	source PostSource
	logger *zap.Logger

	mu         sync.RWMutex
	posts      []model.BlogPost
	generation uint64
}

func NewState(source PostSource, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{source: source, logger: logger, posts: SeedPosts()}
}

// Load fetches the published posts and reports whether they came from the server
func (s *State) Load(ctx context.Context) bool {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	var posts []model.BlogPost
	page, err := s.source.ListBlogs(ctx, gateway.ListQuery{Page: 1, PageSize: pageSize})
	if err == nil {
		posts = page.Items
	} else {
		s.logger.Warn("blog listing unavailable, using built-in posts", zap.Error(err))
		posts = SeedPosts()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.posts = posts
	}
	return err == nil
}

func (s *State) Posts() []model.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *State) Find(id model.ID) (model.BlogPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.posts, func(p model.BlogPost) bool { return p.ID == id })
	if i < 0 {
		return model.BlogPost{}, false
	}
	return s.posts[i], true
}
