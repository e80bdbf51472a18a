// Package view models which screen the storefront shows. Each screen is its
// own type; detail screens carry exactly the entity they display.
package view

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/model"
)

type Name string

const (
	NameHome     Name = "HOME"
	NameShop     Name = "SHOP"
	NameCart     Name = "CART"
	NameProfile  Name = "PROFILE"
	NameAdmin    Name = "ADMIN"
	NameStaff    Name = "STAFF"
	NameBlog     Name = "BLOG"
	NameDetail   Name = "DETAIL"
	NameCheckout Name = "CHECKOUT"
	NameLogin    Name = "LOGIN"
)

// View is one screen
type View interface {
	Name() Name
	view()
}

type (
	Home     struct{}
	Shop     struct{}
	Cart     struct{}
	Profile  struct{}
	Admin    struct{}
	Staff    struct{}
	Blog     struct{}
	Checkout struct{}
	Login    struct{}
)

// ProductDetail shows one product
type ProductDetail struct{ Product model.Product }

// PostDetail shows one blog post
type PostDetail struct{ Post model.BlogPost }

func (Home) Name() Name          { return NameHome }
func (Shop) Name() Name          { return NameShop }
func (Cart) Name() Name          { return NameCart }
func (Profile) Name() Name       { return NameProfile }
func (Admin) Name() Name         { return NameAdmin }
func (Staff) Name() Name         { return NameStaff }
func (Blog) Name() Name          { return NameBlog }
func (Checkout) Name() Name      { return NameCheckout }
func (Login) Name() Name         { return NameLogin }
func (ProductDetail) Name() Name { return NameDetail }
func (PostDetail) Name() Name    { return NameDetail }

func (Home) view()          {}
func (Shop) view()          {}
func (Cart) view()          {}
func (Profile) view()       {}
func (Admin) view()         {}
func (Staff) view()         {}
func (Blog) view()          {}
func (Checkout) view()      {}
func (Login) view()         {}
func (ProductDetail) view() {}
func (PostDetail) view()    {}

// Parse returns the view for a name. DETAIL needs an entity and is rejected.
func Parse(name string) (View, error) {
	switch Name(strings.ToUpper(strings.TrimSpace(name))) {
	case NameHome:
		return Home{}, nil
	case NameShop:
		return Shop{}, nil
	case NameCart:
		return Cart{}, nil
	case NameProfile:
		return Profile{}, nil
	case NameAdmin:
		return Admin{}, nil
	case NameStaff:
		return Staff{}, nil
	case NameBlog:
		return Blog{}, nil
	case NameCheckout:
		return Checkout{}, nil
	case NameLogin:
		return Login{}, nil
	case NameDetail:
		return nil, fmt.Errorf("view: %s needs a product or a post", NameDetail)
	}
	return nil, fmt.Errorf("view: unknown view %q", name)
}

// Landing is the view a role starts on after login
func Landing(role model.Role) View {
	switch role {
	case model.RoleAdmin:
		return Admin{}
	case model.RoleStaff:
		return Staff{}
	}
	return Home{}
}

// Router holds the current view. Every navigation bumps a generation so
// async work started for an older view can tell it is stale.
type Router struct {
	mu         sync.RWMutex
	current    View
	generation uint64
}

// NewRouter starts on the home view
func NewRouter() *Router {
	return &Router{current: Home{}}
}

// Navigate switches to v and returns the new generation
func (r *Router) Navigate(v View) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = v
	r.generation++
	return r.generation
}

// Current returns the active view and its generation
func (r *Router) Current() (View, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.generation
}

// IsCurrent reports whether gen is still the active navigation
func (r *Router) IsCurrent(gen uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation == gen
}

// Update swaps the view shown by navigation gen without starting a new
// navigation, e.g. to show fresher data. It reports false when gen is stale.
func (r *Router) Update(gen uint64, v View) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return false
	}
	r.current = v
	return true
}
