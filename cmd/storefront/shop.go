package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ergolife/storefront/cmd/storefront/output"
	"github.com/ergolife/storefront/internal/storefront/catalog"
	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/ergolife/storefront/internal/storefront/view"
	"github.com/spf13/cobra"
)

func (c *cli) productsCmd() *cobra.Command {
	var (
		category string
		search   string
		maxPrice int64
		sortKey  string
	)
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"shop"},
		Short:   "Browse the catalogue",
		Args:    cobra.NoArgs,
	}
	cmd.RunE = c.run(func(context.Context, []string) error {
		key, ok := catalog.ParseSortKey(sortKey)
		if !ok {
			return fmt.Errorf("unknown sort %q (price_asc, price_desc, name, newest)", sortKey)
		}
		c.shop.Navigate(view.Shop{})
		products := c.shop.Products(catalog.Filter{
			Query:    search,
			Category: category,
			PriceMax: maxPrice,
			Sort:     key,
		})
		return c.printProducts(products)
	})
	cmd.Flags().StringVarP(&category, "category", "c", model.CategoryAll, "Category: "+strings.Join(model.Categories(), ", "))
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match name, category or description")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "Highest price in VND (0 for no limit)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort: price_asc, price_desc, name, newest")
	return cmd
}

func (c *cli) printProducts(products []model.Product) error {
	if c.out.JSON() {
		return c.out.Encode(products)
	}
	if len(products) == 0 {
		c.out.Info("Không có sản phẩm phù hợp")
		return nil
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		name := p.Name
		if c.shop.Wishlist.Contains(p.ID) {
			name += " ♥"
		}
		rows = append(rows, []string{
			p.ID.String(), name, p.Category, model.FormatVND(p.Price),
			output.Stars(p.Rating), strconv.Itoa(p.Stock),
		})
	}
	c.out.Table([]string{"ID", "Sản phẩm", "Danh mục", "Giá", "Đánh giá", "Kho"}, rows)
	return nil
}

func (c *cli) productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product ID",
		Short: "Show a product with its reviews",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, args []string) error {
		if err := c.shop.OpenProduct(ctx, model.ID(args[0])); err != nil {
			return err
		}
		current, _ := c.shop.Router.Current()
		detail, ok := current.(view.ProductDetail)
		if !ok {
			return nil
		}
		p := detail.Product
		if c.out.JSON() {
			return c.out.Encode(p)
		}
		c.out.Section(p.Name)
		c.out.Field("Mã", p.ID)
		c.out.Field("Danh mục", p.Category)
		c.out.Field("Giá", model.FormatVND(p.Price))
		c.out.Field("Kho", p.Stock)
		c.out.Field("Đánh giá", fmt.Sprintf("%s %.1f (%d)", output.Stars(p.Rating), p.Rating, len(p.Reviews)))
		c.out.Text("")
		c.out.Text(p.Description)
		for _, r := range p.Reviews {
			c.out.Text("")
			c.out.Field(r.UserName, output.Stars(float64(r.Rating)))
			c.out.Muted("%s  %s", r.Date, r.Comment)
		}
		return nil
	})
	return cmd
}

func (c *cli) reviewCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)
	cmd := &cobra.Command{
		Use:   "review PRODUCT_ID",
		Short: "Rate a product",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, args []string) error {
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}
		return c.shop.AddReview(ctx, model.ID(args[0]), rating, comment)
	})
	cmd.Flags().IntVarP(&rating, "rating", "r", 5, "Stars, 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Review text")
	return cmd
}

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(context.Context, []string) error {
		c.shop.Navigate(view.Cart{})
		return c.printCart()
	})

	add := &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
	}
	add.RunE = c.run(func(ctx context.Context, args []string) error {
		return c.shop.AddToCart(ctx, model.ID(args[0]))
	})

	remove := &cobra.Command{
		Use:   "remove LINE_ID",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
	}
	remove.RunE = c.run(func(ctx context.Context, args []string) error {
		if err := c.shop.RemoveFromCart(ctx, model.ID(args[0])); err != nil {
			return err
		}
		return c.printCart()
	})

	update := &cobra.Command{
		Use:   "update LINE_ID QUANTITY",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
	}
	update.RunE = c.run(func(ctx context.Context, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if err := c.shop.UpdateCartQuantity(ctx, model.ID(args[0]), qty); err != nil {
			return err
		}
		return c.printCart()
	})

	cmd.AddCommand(add, remove, update)
	return cmd
}

func (c *cli) printCart() error {
	if !c.shop.Session.Authenticated() {
		c.out.Info("Vui lòng đăng nhập để xem giỏ hàng")
		return nil
	}
	items := c.shop.Cart.Items()
	if c.out.JSON() {
		return c.out.Encode(map[string]any{"items": items, "total": c.shop.Cart.Total()})
	}
	if len(items) == 0 {
		c.out.Info("Giỏ hàng trống")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		name := it.ProductID.String()
		if it.Product != nil {
			name = it.Product.Name
		}
		rows = append(rows, []string{
			it.ID.String(), name, strconv.Itoa(it.Quantity),
			model.FormatVND(it.UnitPrice()), model.FormatVND(it.UnitPrice() * int64(it.Quantity)),
		})
	}
	c.out.Table([]string{"Dòng", "Sản phẩm", "SL", "Đơn giá", "Thành tiền"}, rows)
	c.out.Field("Tổng cộng", model.FormatVND(c.shop.Cart.Total()))
	return nil
}

func (c *cli) checkoutCmd() *cobra.Command {
	var voucher string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		if c.shop.Navigate(view.Checkout{}) != (view.Checkout{}) {
			c.out.Info("Vui lòng đăng nhập để thanh toán")
			return nil
		}
		order, err := c.shop.Checkout(ctx, strings.TrimSpace(voucher))
		if err != nil {
			return err
		}
		if c.out.JSON() {
			return c.out.Encode(order)
		}
		if order.Discount > 0 {
			c.out.Field("Giảm giá", model.FormatVND(order.Discount))
		}
		return nil
	})
	cmd.Flags().StringVar(&voucher, "voucher", "", "Voucher code")
	return cmd
}

func (c *cli) wishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show saved products",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(context.Context, []string) error {
		return c.printProducts(c.shop.WishlistProducts())
	})

	toggle := &cobra.Command{
		Use:   "toggle PRODUCT_ID",
		Short: "Save or unsave a product",
		Args:  cobra.ExactArgs(1),
	}
	toggle.RunE = c.run(func(ctx context.Context, args []string) error {
		id := model.ID(args[0])
		in, err := c.shop.ToggleWishlist(ctx, id)
		if err != nil {
			return err
		}
		if in {
			c.out.Success("Đã lưu %s", id)
		} else {
			c.out.Success("Đã bỏ lưu %s", id)
		}
		return nil
	})
	cmd.AddCommand(toggle)
	return cmd
}

func (c *cli) blogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog [POST_ID]",
		Short: "List posts or read one",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = c.run(func(_ context.Context, args []string) error {
		if len(args) == 1 {
			return c.printPost(model.ID(args[0]))
		}
		c.shop.Navigate(view.Blog{})
		posts := c.shop.Blog.Posts()
		if c.out.JSON() {
			return c.out.Encode(posts)
		}
		rows := make([][]string, 0, len(posts))
		for _, p := range posts {
			rows = append(rows, []string{p.ID.String(), p.Title, p.Author, p.Date})
		}
		c.out.Table([]string{"ID", "Tiêu đề", "Tác giả", "Ngày"}, rows)
		return nil
	})
	return cmd
}

func (c *cli) printPost(id model.ID) error {
	if err := c.shop.OpenPost(id); err != nil {
		return err
	}
	current, _ := c.shop.Router.Current()
	post := current.(view.PostDetail).Post
	if c.out.JSON() {
		return c.out.Encode(post)
	}
	c.out.Section(post.Title)
	c.out.Muted("%s · %s", post.Author, post.Date)
	c.out.Text("")
	c.out.Text(post.Content)
	return nil
}

func (c *cli) askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Ask the support assistant",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, args []string) error {
		reply := c.shop.Ask(ctx, strings.Join(args, " "))
		if c.out.JSON() {
			return c.out.Encode(map[string]string{"reply": reply})
		}
		c.out.Text(reply)
		return nil
	})
	return cmd
}
