package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ergolife/storefront/cmd/storefront/output"
	"github.com/ergolife/storefront/internal/storefront/admin"
	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/ergolife/storefront/internal/storefront/view"
	"github.com/spf13/cobra"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office console for staff and admins",
	}
	cmd.AddCommand(
		c.dashboardCmd(),
		panelCmd(c, admin.TabProducts, "product", func(con *admin.Console) *admin.Panel[model.Product, model.ProductInput] {
			return con.Products
		}, func(p model.Product) []string {
			return []string{p.ID.String(), p.Name, p.Category, model.FormatVND(p.Price), strconv.Itoa(p.Stock)}
		}, "ID", "Tên", "Danh mục", "Giá", "Kho"),
		panelCmd(c, admin.TabUsers, "user", func(con *admin.Console) *admin.Panel[model.User, model.UserInput] {
			return con.Users
		}, func(u model.User) []string {
			return []string{u.ID.String(), u.Name, u.Email, string(u.Role)}
		}, "ID", "Tên", "Email", "Vai trò"),
		panelCmd(c, admin.TabVouchers, "voucher", func(con *admin.Console) *admin.Panel[model.Voucher, model.VoucherInput] {
			return con.Vouchers
		}, func(v model.Voucher) []string {
			return []string{
				v.ID.String(), v.Code, v.DiscountType, v.DiscountValue.String(),
				fmt.Sprintf("%d/%d", v.UsedCount, v.UsageLimit), strconv.FormatBool(v.IsActive),
			}
		}, "ID", "Mã", "Loại", "Giá trị", "Đã dùng", "Hoạt động"),
		panelCmd(c, admin.TabBlogs, "post", func(con *admin.Console) *admin.Panel[model.BlogPost, model.BlogInput] {
			return con.Blogs
		}, func(p model.BlogPost) []string {
			return []string{p.ID.String(), p.Title, p.Author, strconv.FormatBool(p.Published)}
		}, "ID", "Tiêu đề", "Tác giả", "Đã đăng"),
		c.ordersCmd(),
		c.uploadCmd(),
	)
	return cmd
}

// console opens the back office if the current role may see tab
func (c *cli) console(tab admin.Tab) (*admin.Console, error) {
	user, ok := c.shop.Session.User()
	if !ok {
		return nil, fmt.Errorf("log in first")
	}
	if !admin.CanSee(user.Role, tab) {
		return nil, fmt.Errorf("%s cannot open the %s panel", user.Role, tab)
	}
	c.shop.Navigate(view.Landing(user.Role))
	return c.shop.Admin, nil
}

func (c *cli) dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show store totals",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		con, err := c.console(admin.TabDashboard)
		if err != nil {
			return err
		}
		if err := con.Dashboard.Refresh(ctx); err != nil {
			return err
		}
		stats := con.Dashboard.Stats()
		if c.out.JSON() {
			return c.out.Encode(stats)
		}
		c.out.Section("Tổng quan")
		c.out.Field("Người dùng", stats.Users)
		c.out.Field("Đơn hàng", stats.Orders)
		c.out.Field("Sản phẩm", stats.Products)
		c.out.Field("Doanh thu", model.FormatVND(stats.Revenue.IntPart()))
		return nil
	})
	return cmd
}

// panelCmd builds list, create, update and delete commands for one panel.
// Create and update read the input form from a JSON file.
func panelCmd[T, In any](
	c *cli,
	tab admin.Tab,
	noun string,
	panel func(*admin.Console) *admin.Panel[T, In],
	row func(T) []string,
	headers ...string,
) *cobra.Command {
	open := func() (*admin.Panel[T, In], error) {
		con, err := c.console(tab)
		if err != nil {
			return nil, err
		}
		return panel(con), nil
	}
	show := func(items []T) error {
		if c.out.JSON() {
			return c.out.Encode(items)
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, row(it))
		}
		c.out.Table(headers, rows)
		return nil
	}

	cmd := &cobra.Command{
		Use:   string(tab),
		Short: fmt.Sprintf("List and manage %ss", noun),
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		p, err := open()
		if err != nil {
			return err
		}
		if err := p.Refresh(ctx); err != nil {
			return err
		}
		return show(p.Items())
	})

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + noun + " from a JSON file",
		Args:  cobra.NoArgs,
	}
	create.RunE = c.run(func(ctx context.Context, _ []string) error {
		in, err := readForm[In](file)
		if err != nil {
			return err
		}
		p, err := open()
		if err != nil {
			return err
		}
		if _, err := p.Create(ctx, in); err != nil {
			return err
		}
		return show(p.Items())
	})
	create.Flags().StringVarP(&file, "file", "f", "", "JSON input ('-' for stdin)")
	_ = create.MarkFlagRequired("file")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a " + noun + " from a JSON file",
		Args:  cobra.ExactArgs(1),
	}
	update.RunE = c.run(func(ctx context.Context, args []string) error {
		in, err := readForm[In](file)
		if err != nil {
			return err
		}
		p, err := open()
		if err != nil {
			return err
		}
		if _, err := p.Update(ctx, model.ID(args[0]), in); err != nil {
			return err
		}
		return show(p.Items())
	})
	update.Flags().StringVarP(&file, "file", "f", "", "JSON input ('-' for stdin)")
	_ = update.MarkFlagRequired("file")

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
	}
	remove.RunE = c.run(func(ctx context.Context, args []string) error {
		p, err := open()
		if err != nil {
			return err
		}
		if err := p.Delete(ctx, model.ID(args[0])); err != nil {
			return err
		}
		c.out.Success("Đã xóa %s %s", noun, args[0])
		return nil
	})

	cmd.AddCommand(create, update, remove)
	return cmd
}

func readForm[In any](path string) (In, error) {
	var in In
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

func (c *cli) ordersCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, optionally by status",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		con, err := c.console(admin.TabOrders)
		if err != nil {
			return err
		}
		con.Orders.Filter(status)
		if err := con.Orders.Refresh(ctx); err != nil {
			return err
		}
		return c.printOrders(con.Orders.Items())
	})
	cmd.Flags().StringVar(&status, "status", "", "PENDING, PROCESSING, SHIPPED, DELIVERED or CANCELLED")

	setStatus := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move an order to a new status",
		Args:  cobra.ExactArgs(2),
	}
	setStatus.RunE = c.run(func(ctx context.Context, args []string) error {
		con, err := c.console(admin.TabOrders)
		if err != nil {
			return err
		}
		order, err := con.Orders.SetStatus(ctx, model.ID(args[0]), args[1])
		if err != nil {
			return err
		}
		c.out.Success("Đơn #%s: %s %s", order.ID, output.StatusIcon(order.Status), order.Status)
		return nil
	})
	cmd.AddCommand(setStatus)
	return cmd
}

func (c *cli) printOrders(orders []model.Order) error {
	if c.out.JSON() {
		return c.out.Encode(orders)
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID.String(), o.UserID.String(),
			output.StatusIcon(o.Status) + " " + o.Status,
			model.FormatVND(o.TotalAmount), o.VoucherCode,
			o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	c.out.Table([]string{"ID", "Khách", "Trạng thái", "Tổng", "Voucher", "Ngày"}, rows)
	return nil
}

func (c *cli) uploadCmd() *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a product or post image",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, args []string) error {
		con, err := c.console(admin.TabProducts)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		url, err := con.UploadImage(ctx, folder, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		if c.out.JSON() {
			return c.out.Encode(map[string]string{"url": url})
		}
		c.out.Success("%s", url)
		return nil
	})
	cmd.Flags().StringVar(&folder, "folder", "products", "Destination folder (products or blogs)")
	return cmd
}
