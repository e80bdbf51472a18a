package persistence

import (
	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/identity"
	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/trade"
)

// Models lists every persisted entity in dependency order
func Models() []any {
	return []any{
		&identity.User{},
		&catalog.Product{},
		&catalog.Review{},
		&trade.Cart{},
		&trade.CartItem{},
		&trade.Order{},
		&trade.OrderItem{},
		&marketing.Voucher{},
		&marketing.Blog{},
	}
}
