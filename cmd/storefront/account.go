package main

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login EMAIL",
		Short: "Log in and keep the session",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, args []string) error {
		if err := c.shop.Login(ctx, args[0], password); err != nil {
			return err
		}
		current, _ := c.shop.Router.Current()
		c.out.Muted("→ %s", current.Name())
		return nil
	})
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the wishlist",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		if err := c.shop.Logout(ctx); err != nil {
			return err
		}
		c.out.Success("Đã đăng xuất")
		return nil
	})
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var r model.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, _ []string) error {
		if r.Name == "" || r.Email == "" || r.Password == "" {
			return errors.New("--name, --email and --password are required")
		}
		return c.shop.Register(ctx, r)
	})
	cmd.Flags().StringVar(&r.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&r.Email, "email", "", "Email address")
	cmd.Flags().StringVarP(&r.Password, "password", "p", "", "Password, at least 6 characters")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(context.Context, []string) error {
		user, ok := c.shop.Session.User()
		if c.out.JSON() {
			if !ok {
				return c.out.Encode(nil)
			}
			return c.out.Encode(user)
		}
		if !ok {
			c.out.Info("Chưa đăng nhập")
			return nil
		}
		c.out.Field("Tên", user.Name)
		c.out.Field("Email", user.Email)
		c.out.Field("Vai trò", user.Role)
		c.out.Field("Giỏ hàng", c.shop.Cart.Count())
		c.out.Field("Yêu thích", c.shop.Wishlist.Len())
		return nil
	})
	return cmd
}
