package marketing

import (
	"strings"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// Blog is an editorial post. Only published posts are visible to shoppers.
type Blog struct {
	shared.BaseEntity
	Title     string `gorm:"type:varchar(300);not null"`
	Excerpt   string `gorm:"type:varchar(1000)"`
	Content   string `gorm:"type:text"`
	Author    string `gorm:"type:varchar(100);not null"`
	Image     string `gorm:"column:image_url;type:varchar(500)"`
	Published bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Blog) TableName() string {
	return "blogs"
}

// NewBlog creates an unpublished draft
func NewBlog(title, author string) (*Blog, error) {
	b := &Blog{BaseEntity: shared.NewBaseEntity()}
	if err := b.Edit(title, "", "", author, ""); err != nil {
		return nil, err
	}
	return b, nil
}

// Edit replaces the post body
func (b *Blog) Edit(title, excerpt, content, author, image string) error {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if author == "" {
		return shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	b.Title = title
	b.Excerpt = excerpt
	b.Content = content
	b.Author = author
	b.Image = image
	b.Touch()
	return nil
}

// Publish makes the post visible to shoppers
func (b *Blog) Publish() {
	b.Published = true
	b.Touch()
}

// Unpublish hides the post from shoppers
func (b *Blog) Unpublish() {
	b.Published = false
	b.Touch()
}
