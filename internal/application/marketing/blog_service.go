package marketing

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrBlogNotFound is returned for a missing post, or an unpublished one on the
// public side
var ErrBlogNotFound = shared.NewDomainError("BLOG_NOT_FOUND", "Blog not found")

// BlogService serves published posts to shoppers and every post to administrators
type BlogService struct {
	blogRepo marketing.BlogRepository
	logger   *zap.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo marketing.BlogRepository, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{blogRepo: blogRepo, logger: logger}
}

// ListPublished returns published posts, newest first
func (s *BlogService) ListPublished(ctx context.Context, query ListQuery) (*shared.Paginated[BlogResponse], error) {
	return s.list(ctx, marketing.BlogFilter{Filter: query.Filter(), PublishedOnly: true})
}

// ListAll returns every post including drafts
func (s *BlogService) ListAll(ctx context.Context, query ListQuery) (*shared.Paginated[BlogResponse], error) {
	return s.list(ctx, marketing.BlogFilter{Filter: query.Filter()})
}

func (s *BlogService) list(ctx context.Context, filter marketing.BlogFilter) (*shared.Paginated[BlogResponse], error) {
	blogs, total, err := s.blogRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]BlogResponse, len(blogs))
	for i := range blogs {
		items[i] = ToBlogResponse(&blogs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetPublished returns a post only when it is published
func (s *BlogService) GetPublished(ctx context.Context, id uint) (*BlogResponse, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !blog.Published {
		return nil, ErrBlogNotFound
	}
	resp := ToBlogResponse(blog)
	return &resp, nil
}

// GetByID returns any post
func (s *BlogService) GetByID(ctx context.Context, id uint) (*BlogResponse, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBlogResponse(blog)
	return &resp, nil
}

// Create adds a post. Posts are published unless the request says otherwise.
func (s *BlogService) Create(ctx context.Context, req BlogRequest) (*BlogResponse, error) {
	blog, err := marketing.NewBlog(req.Title, req.Author)
	if err != nil {
		return nil, err
	}
	if err := blog.Edit(req.Title, req.Excerpt, req.Content, req.Author, req.Image); err != nil {
		return nil, err
	}
	if req.Published == nil || *req.Published {
		blog.Publish()
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	s.logger.Info("Blog created", zap.Uint("blog_id", blog.ID), zap.Bool("published", blog.Published))
	resp := ToBlogResponse(blog)
	return &resp, nil
}

// Update replaces a post's body and optionally its visibility
func (s *BlogService) Update(ctx context.Context, id uint, req BlogRequest) (*BlogResponse, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := blog.Edit(req.Title, req.Excerpt, req.Content, req.Author, req.Image); err != nil {
		return nil, err
	}
	if req.Published != nil {
		if *req.Published {
			blog.Publish()
		} else {
			blog.Unpublish()
		}
	}
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	resp := ToBlogResponse(blog)
	return &resp, nil
}

// Delete removes a post
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	s.logger.Info("Blog deleted", zap.Uint("blog_id", id))
	return nil
}

func (s *BlogService) find(ctx context.Context, id uint) (*marketing.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}
