// Command storefront is the Ergolife shop client. Every invocation restores
// the persisted session, loads the catalogue and blog, runs one operation
// and prints the resulting notices.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ergolife/storefront/cmd/storefront/output"
	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"github.com/ergolife/storefront/internal/storefront/app"
	"github.com/ergolife/storefront/internal/storefront/assistant"
	"github.com/ergolife/storefront/internal/storefront/gateway"
	"github.com/ergolife/storefront/internal/storefront/kv"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errReported marks a failure whose notices were already printed
var errReported = errors.New("reported")

type cli struct {
	jsonOutput bool
	logLevel   string
	apiURL     string

	cfg   *config.StorefrontConfig
	log   *zap.Logger
	store kv.Store
	shop  *app.App
	out   *output.Printer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	c := &cli{}
	err := c.rootCmd().ExecuteContext(ctx)
	c.close()
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			output.New(os.Stderr, false).Error("%v", err)
		}
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Ergolife storefront client",
		Long: `storefront browses the Ergolife catalogue and blog, manages the cart,
wishlist and checkout, and drives the back office for staff and admins.

The session is kept in the configured store (memory, sqlite or redis), so a
login survives between invocations.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.apiURL, "api", "", "API base URL override")

	root.AddCommand(
		c.productsCmd(), c.productCmd(), c.reviewCmd(),
		c.cartCmd(), c.checkoutCmd(), c.wishlistCmd(),
		c.blogCmd(), c.askCmd(),
		c.loginCmd(), c.logoutCmd(), c.registerCmd(), c.whoamiCmd(),
		c.adminCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	c.out = output.New(cmd.OutOrStdout(), c.jsonOutput)

	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	c.cfg = cfg

	c.log, err = logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "15:04:05",
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c.store, err = kv.Open(ctx, cfg, c.log)
	if err != nil {
		return err
	}

	responder, err := assistant.New(ctx, cfg.GeminiAPIKey,
		assistant.WithModel(cfg.GeminiModel),
		assistant.WithLogger(c.log.Named("assistant")),
	)
	if err != nil {
		return err
	}

	c.shop = app.New(ctx, app.Deps{
		Gateway: gateway.New(cfg.APIURL,
			gateway.WithTimeout(cfg.Timeout),
			gateway.WithLogger(c.log.Named("gateway")),
		),
		Store:     c.store,
		Assistant: responder,
		Logger:    c.log,
	})
	c.shop.Init(ctx)
	if c.shop.Catalog.FromSeed() {
		c.log.Warn("API unreachable, showing the built-in catalogue", zap.String("api", cfg.APIURL))
	}
	return nil
}

func (c *cli) close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil && c.log != nil {
			c.log.Warn("failed to close session store", zap.Error(err))
		}
	}
	if c.log != nil {
		logger.Sync(c.log)
	}
}

// run executes fn and prints the notices it produced. A failure already
// described by a notice is not printed again.
func (c *cli) run(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), args)
		reported := c.flush()
		if err != nil && reported {
			return errReported
		}
		return err
	}
}

// flush prints pending notices and reports whether any was an error
func (c *cli) flush() bool {
	failed := false
	for _, n := range c.shop.Notices() {
		if n.Level == app.LevelError {
			failed = true
			c.out.Error("%s", n.Message)
			continue
		}
		if !c.out.JSON() {
			c.out.Success("%s", n.Message)
		}
	}
	return failed
}
