// Package app is the storefront's application-state container. It owns the
// session, catalogue, blog, cart, wishlist and view router and exposes the
// operations the presentation layer calls. Read failures fall back to
// built-in data; write failures become notices; mutations without a session
// redirect to the login view.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ergolife/storefront/internal/storefront/admin"
	"github.com/ergolife/storefront/internal/storefront/blog"
	"github.com/ergolife/storefront/internal/storefront/cart"
	"github.com/ergolife/storefront/internal/storefront/catalog"
	"github.com/ergolife/storefront/internal/storefront/gateway"
	"github.com/ergolife/storefront/internal/storefront/kv"
	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/ergolife/storefront/internal/storefront/session"
	"github.com/ergolife/storefront/internal/storefront/view"
	"github.com/ergolife/storefront/internal/storefront/wishlist"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrProductNotFound is returned for ids that are not in the catalogue
var ErrProductNotFound = errors.New("app: product not found")

// ErrPostNotFound is returned for ids that are not in the blog
var ErrPostNotFound = errors.New("app: post not found")

// Responder answers support chat messages
type Responder interface {
	Respond(ctx context.Context, message string) string
}

// Deps are the collaborators of the container
type Deps struct {
	Gateway   *gateway.Client
	Store     kv.Store
	Assistant Responder
	Logger    *zap.Logger
}

// App is the storefront state
type App struct {
	gw        *gateway.Client
	assistant Responder
	logger    *zap.Logger
	notices   notices

	Session  *session.Store
	Catalog  *catalog.State
	Blog     *blog.State
	Cart     *cart.Aggregate
	Wishlist *wishlist.Set
	Router   *view.Router
	Admin    *admin.Console
}

// New wires the container. It reads the persisted wishlist; call Init to
// restore the session and load data.
func New(ctx context.Context, deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sess := session.New(deps.Store, deps.Gateway, log.Named("session"))
	return &App{
		gw:        deps.Gateway,
		assistant: deps.Assistant,
		logger:    log,
		Session:   sess,
		Catalog:   catalog.NewState(deps.Gateway, log.Named("catalog")),
		Blog:      blog.NewState(deps.Gateway, log.Named("blog")),
		Cart:      cart.New(deps.Gateway, sess, log.Named("cart")),
		Wishlist:  wishlist.Load(ctx, deps.Store, session.KeyWishlist, log.Named("wishlist")),
		Router:    view.NewRouter(),
		Admin:     admin.NewConsole(deps.Gateway, log.Named("admin")),
	}
}

// Init restores a persisted session and loads the catalogue and blog.
// It never fails: every read falls back to built-in data.
func (a *App) Init(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		if a.Session.Restore(ctx) {
			if err := a.Cart.Refresh(ctx); err != nil {
				a.logger.Warn("cart refresh after restore failed", zap.Error(err))
			}
		}
		return nil
	})
	g.Go(func() error {
		a.Catalog.Load(ctx)
		return nil
	})
	g.Go(func() error {
		a.Blog.Load(ctx)
		return nil
	})
	_ = g.Wait()
}

// Notices returns and clears the pending notices
func (a *App) Notices() []Notice {
	return a.notices.drain()
}

func (a *App) fail(err error) error {
	a.notices.push(LevelError, noticeText(err))
	return err
}

func noticeText(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "Không tìm thấy sản phẩm"
	case errors.Is(err, ErrPostNotFound):
		return "Không tìm thấy bài viết"
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Vui lòng nhập email và mật khẩu"
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Số lượng phải lớn hơn 0"
	}
	return gateway.Message(err)
}

func (a *App) info(format string, args ...any) {
	a.notices.push(LevelInfo, fmt.Sprintf(format, args...))
}

// requireLogin routes to the login view when err says a session is needed
func (a *App) requireLogin(err error) bool {
	if errors.Is(err, cart.ErrAuthRequired) || errors.Is(err, gateway.ErrUnauthorized) {
		a.Router.Navigate(view.Login{})
		a.info("Vui lòng đăng nhập để tiếp tục")
		return true
	}
	return false
}

// Login authenticates, refreshes the cart and routes by role
func (a *App) Login(ctx context.Context, email, password string) error {
	user, err := a.Session.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}
	if err := a.Cart.Refresh(ctx); err != nil {
		a.logger.Warn("cart refresh after login failed", zap.Error(err))
	}
	a.Router.Navigate(view.Landing(user.Role))
	a.info("Xin chào, %s", user.Name)
	return nil
}

// Logout tears the session down: identity, cart, wishlist and every
// persisted key
func (a *App) Logout(ctx context.Context) error {
	err := a.Session.Logout(ctx)
	a.Cart.Clear()
	a.Wishlist.Reset()
	a.Router.Navigate(view.Home{})
	if err != nil {
		return a.fail(err)
	}
	return nil
}

// Register creates an account and routes to the login view
func (a *App) Register(ctx context.Context, r model.Registration) error {
	if _, err := a.Session.Register(ctx, r); err != nil {
		return a.fail(err)
	}
	a.Router.Navigate(view.Login{})
	a.info("Đăng ký thành công, vui lòng đăng nhập")
	return nil
}

// AddToCart adds one unit of a catalogue product
func (a *App) AddToCart(ctx context.Context, productID model.ID) error {
	product, ok := a.Catalog.Find(productID)
	if !ok {
		return a.fail(ErrProductNotFound)
	}
	if err := a.Cart.Add(ctx, product); err != nil {
		if a.requireLogin(err) {
			return err
		}
		return a.fail(err)
	}
	a.info("Đã thêm %s vào giỏ hàng", product.Name)
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, lineID model.ID) error {
	if err := a.Cart.Remove(ctx, lineID); err != nil {
		if a.requireLogin(err) {
			return err
		}
		return a.fail(err)
	}
	return nil
}

func (a *App) UpdateCartQuantity(ctx context.Context, lineID model.ID, quantity int) error {
	if err := a.Cart.UpdateQuantity(ctx, lineID, quantity); err != nil {
		if a.requireLogin(err) {
			return err
		}
		return a.fail(err)
	}
	return nil
}

// Checkout places the order. Success empties the cart and routes home;
// failure leaves the cart as it was.
func (a *App) Checkout(ctx context.Context, voucherCode string) (*model.Order, error) {
	order, err := a.Cart.Checkout(ctx, voucherCode)
	if err != nil {
		if a.requireLogin(err) {
			return nil, err
		}
		return nil, a.fail(err)
	}
	a.Router.Navigate(view.Home{})
	a.info("Đặt hàng thành công! Mã đơn #%s, tổng %s", order.ID, model.FormatVND(order.TotalAmount))
	return order, nil
}

// ToggleWishlist flips a product's membership and reports the new state
func (a *App) ToggleWishlist(ctx context.Context, productID model.ID) (bool, error) {
	in, err := a.Wishlist.Toggle(ctx, productID)
	if err != nil {
		return in, a.fail(err)
	}
	return in, nil
}

// AddReview posts a review and refreshes the product in place
func (a *App) AddReview(ctx context.Context, productID model.ID, rating int, comment string) error {
	if !a.Session.Authenticated() {
		a.requireLogin(cart.ErrAuthRequired)
		return cart.ErrAuthRequired
	}
	product, err := a.gw.AddReview(ctx, productID, model.ReviewInput{Rating: rating, Comment: comment})
	if err != nil {
		if a.requireLogin(err) {
			return err
		}
		return a.fail(err)
	}
	a.Catalog.Replace(*product)
	if v, gen := a.Router.Current(); isDetailOf(v, productID) {
		a.Router.Update(gen, view.ProductDetail{Product: *product})
	}
	a.info("Cảm ơn bạn đã đánh giá")
	return nil
}

func isDetailOf(v view.View, productID model.ID) bool {
	d, ok := v.(view.ProductDetail)
	return ok && d.Product.ID == productID
}

// OpenProduct shows a product from the catalogue, then swaps in the
// server's fresher copy if the shopper is still on that page
func (a *App) OpenProduct(ctx context.Context, productID model.ID) error {
	product, ok := a.Catalog.Find(productID)
	if !ok {
		return a.fail(ErrProductNotFound)
	}
	gen := a.Router.Navigate(view.ProductDetail{Product: product})
	if a.Catalog.FromSeed() {
		return nil
	}

	fresh, err := a.gw.GetProduct(ctx, productID)
	if err != nil {
		a.logger.Debug("product detail refresh failed", zap.String("id", productID.String()), zap.Error(err))
		return nil
	}
	if a.Router.Update(gen, view.ProductDetail{Product: *fresh}) {
		a.Catalog.Replace(*fresh)
	}
	return nil
}

// OpenPost shows a blog post
func (a *App) OpenPost(postID model.ID) error {
	post, ok := a.Blog.Find(postID)
	if !ok {
		return a.fail(ErrPostNotFound)
	}
	a.Router.Navigate(view.PostDetail{Post: post})
	return nil
}

// Navigate switches to v. Cart, checkout, profile and the back office need
// a session and route to login without one.
func (a *App) Navigate(v view.View) view.View {
	switch v.(type) {
	case view.Cart, view.Checkout, view.Profile, view.Admin, view.Staff:
		if !a.Session.Authenticated() {
			v = view.Login{}
		}
	}
	a.Router.Navigate(v)
	return v
}

// Products derives the visible listing. Descriptions are searched on the
// shop view only.
func (a *App) Products(f catalog.Filter) []model.Product {
	current, _ := a.Router.Current()
	_, f.InShop = current.(view.Shop)
	return a.Catalog.Derive(f)
}

// WishlistProducts returns the catalogue products on the wishlist
func (a *App) WishlistProducts() []model.Product {
	var out []model.Product
	for _, id := range a.Wishlist.IDs() {
		if p, ok := a.Catalog.Find(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Ask sends a message to the support assistant
func (a *App) Ask(ctx context.Context, message string) string {
	return a.assistant.Respond(ctx, message)
}
