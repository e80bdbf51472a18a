package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ergolife/storefront/internal/storefront/model"
)

// ProductQuery filters the server-side product listing
type ProductQuery struct {
	Category string
	Search   string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" && q.Category != model.CategoryAll {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.MinPrice != nil {
		v.Set("min_price", strconv.FormatInt(*q.MinPrice, 10))
	}
	if q.MaxPrice != nil {
		v.Set("max_price", strconv.FormatInt(*q.MaxPrice, 10))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// ListQuery pages and filters admin listings
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

func itemPath(base string, id model.ID) string {
	return base + "/" + url.PathEscape(id.String())
}

// Auth

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, r model.Registration) (*model.User, error) {
	user, err := sendJSON[model.User](ctx, c, http.MethodPost, "/auth/register", r)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*model.Login, error) {
	login, err := sendJSON[model.Login](ctx, c, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(login.Token)
	return &login, nil
}

// Logout revokes the current token on the server and forgets it locally.
// The local token is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	if c.Token() == "" {
		return nil
	}
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil)
	return err
}

// Me returns the account behind the current token
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	user, err := getJSON[model.User](ctx, c, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Products

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	return getJSON[[]model.Product](ctx, c, "/api/products", q.values())
}

func (c *Client) GetProduct(ctx context.Context, id model.ID) (*model.Product, error) {
	p, err := getJSON[model.Product](ctx, c, itemPath("/api/products", id), nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	p, err := sendJSON[model.Product](ctx, c, http.MethodPost, "/api/products", in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id model.ID, in model.ProductInput) (*model.Product, error) {
	p, err := sendJSON[model.Product](ctx, c, http.MethodPut, itemPath("/api/products", id), in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id model.ID) error {
	return c.deleteResource(ctx, itemPath("/api/products", id))
}

// AddReview appends a review and returns the product with its new rating
func (c *Client) AddReview(ctx context.Context, productID model.ID, in model.ReviewInput) (*model.Product, error) {
	p, err := sendJSON[model.Product](ctx, c, http.MethodPost, itemPath("/api/products", productID)+"/reviews", in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Cart

func (c *Client) GetCart(ctx context.Context) (*model.Cart, error) {
	cart, err := getJSON[model.Cart](ctx, c, "/api/cart", nil)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity units of a product, incrementing an existing line
func (c *Client) AddToCart(ctx context.Context, productID model.ID, quantity int) (*model.Cart, error) {
	n, ok := productID.Numeric()
	if !ok {
		return nil, &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("Sản phẩm %q không tồn tại trên máy chủ", productID)}
	}
	cart, err := sendJSON[model.Cart](ctx, c, http.MethodPost, "/api/cart/add", map[string]any{
		"product_id": n,
		"quantity":   quantity,
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, lineID model.ID, quantity int) (*model.Cart, error) {
	cart, err := sendJSON[model.Cart](ctx, c, http.MethodPut, itemPath("/api/cart/item", lineID), map[string]int{
		"quantity": quantity,
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, lineID model.ID) (*model.Cart, error) {
	var cart model.Cart
	if _, err := c.do(ctx, request{method: http.MethodDelete, path: itemPath("/api/cart/item", lineID)}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Orders

// PlaceOrder turns the server-side cart into an order. An empty voucher
// code sends no body.
func (c *Client) PlaceOrder(ctx context.Context, voucherCode string) (*model.Order, error) {
	r := request{method: http.MethodPost, path: "/api/orders"}
	if voucherCode != "" {
		r.body = map[string]string{"voucher_code": voucherCode}
	}
	var order model.Order
	if _, err := c.do(ctx, r, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, q ListQuery) (*Page[model.Order], error) {
	return getPage[model.Order](ctx, c, "/api/orders", q.values())
}

func (c *Client) GetOrder(ctx context.Context, id model.ID) (*model.Order, error) {
	o, err := getJSON[model.Order](ctx, c, itemPath("/api/orders", id), nil)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Blog

// ListBlogs returns published posts
func (c *Client) ListBlogs(ctx context.Context, q ListQuery) (*Page[model.BlogPost], error) {
	return getPage[model.BlogPost](ctx, c, "/api/blogs", q.values())
}

func (c *Client) GetBlog(ctx context.Context, id model.ID) (*model.BlogPost, error) {
	b, err := getJSON[model.BlogPost](ctx, c, itemPath("/api/blogs", id), nil)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Admin

func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	s, err := getJSON[model.DashboardStats](ctx, c, "/api/admin/dashboard", nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ListUsers(ctx context.Context, q ListQuery) (*Page[model.User], error) {
	return getPage[model.User](ctx, c, "/api/admin/users", q.values())
}

func (c *Client) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	u, err := sendJSON[model.User](ctx, c, http.MethodPost, "/api/admin/users", in)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id model.ID, in model.UserInput) (*model.User, error) {
	u, err := sendJSON[model.User](ctx, c, http.MethodPut, itemPath("/api/admin/users", id), in)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id model.ID) error {
	return c.deleteResource(ctx, itemPath("/api/admin/users", id))
}

func (c *Client) ListVouchers(ctx context.Context, q ListQuery) (*Page[model.Voucher], error) {
	return getPage[model.Voucher](ctx, c, "/api/admin/vouchers", q.values())
}

func (c *Client) CreateVoucher(ctx context.Context, in model.VoucherInput) (*model.Voucher, error) {
	v, err := sendJSON[model.Voucher](ctx, c, http.MethodPost, "/api/admin/vouchers", in)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateVoucher(ctx context.Context, id model.ID, in model.VoucherInput) (*model.Voucher, error) {
	v, err := sendJSON[model.Voucher](ctx, c, http.MethodPut, itemPath("/api/admin/vouchers", id), in)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVoucher(ctx context.Context, id model.ID) error {
	return c.deleteResource(ctx, itemPath("/api/admin/vouchers", id))
}

// ListAllBlogs includes unpublished posts
func (c *Client) ListAllBlogs(ctx context.Context, q ListQuery) (*Page[model.BlogPost], error) {
	return getPage[model.BlogPost](ctx, c, "/api/admin/blogs", q.values())
}

func (c *Client) CreateBlog(ctx context.Context, in model.BlogInput) (*model.BlogPost, error) {
	b, err := sendJSON[model.BlogPost](ctx, c, http.MethodPost, "/api/admin/blogs", in)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateBlog(ctx context.Context, id model.ID, in model.BlogInput) (*model.BlogPost, error) {
	b, err := sendJSON[model.BlogPost](ctx, c, http.MethodPut, itemPath("/api/admin/blogs", id), in)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBlog(ctx context.Context, id model.ID) error {
	return c.deleteResource(ctx, itemPath("/api/admin/blogs", id))
}

// ListAllOrders is the back-office order listing (ADMIN or STAFF)
func (c *Client) ListAllOrders(ctx context.Context, q ListQuery) (*Page[model.Order], error) {
	return getPage[model.Order](ctx, c, "/api/admin/orders", q.values())
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id model.ID, status string) (*model.Order, error) {
	o, err := sendJSON[model.Order](ctx, c, http.MethodPut, itemPath("/api/admin/orders", id)+"/status", map[string]string{
		"status": status,
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UploadImage stores an image under folder and returns its public URL
func (c *Client) UploadImage(ctx context.Context, folder, filename string, content io.Reader) (*model.Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return nil, fmt.Errorf("gateway: failed to build upload: %w", err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("gateway: failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("gateway: failed to build upload: %w", err)
	}

	var up model.Upload
	_, err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/uploads",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &up)
	if err != nil {
		return nil, err
	}
	return &up, nil
}
