package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/identity"
	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoPassword is the password given to every seeded demo account
const DemoPassword = "demo123"

type seedProduct struct {
	name        string
	category    string
	price       int64
	description string
	image       string
	stock       int
	rating      float64
	reviews     []seedReview
}

type seedReview struct {
	userName string
	rating   int
	comment  string
	date     time.Time
}

var catalogSeed = []seedProduct{
	{
		name:        "Ghế Công Thái Học ErgoMaster Pro",
		category:    catalog.CategoryChair,
		price:       8500000,
		description: "Thiết kế chuẩn công thái học, hỗ trợ cột sống tối đa với đệm thắt lưng 3D điều chỉnh linh hoạt.",
		image:       "https://picsum.photos/seed/ergochair1/600/600",
		stock:       15,
		rating:      4.8,
		reviews: []seedReview{{
			userName: "Nguyễn Văn A",
			rating:   5,
			comment:  "Ghế rất êm, ngồi làm việc cả ngày không mỏi.",
			date:     time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
		}},
	},
	{
		name:        "Bàn Đứng Thông Minh FlexiDesk V2",
		category:    catalog.CategoryDesk,
		price:       12500000,
		description: "Điều chỉnh độ cao bằng điện, có bộ nhớ 4 vị trí, chân thép chắc chắn, tải trọng lên đến 120kg.",
		image:       "https://picsum.photos/seed/ergodesk1/600/600",
		stock:       8,
		rating:      4.9,
	},
	{
		name:        "Giá Treo Màn Hình Dual Arm Pro",
		category:    catalog.CategoryAccessory,
		price:       1850000,
		description: "Nâng hạ linh hoạt cho 2 màn hình, giúp giải phóng không gian bàn làm việc và bảo vệ cổ vai gáy.",
		image:       "https://picsum.photos/seed/ergomonitor/600/600",
		stock:       25,
		rating:      4.5,
	},
	{
		name:        "Bàn Phím Cơ Công Thái Học Split-K",
		category:    catalog.CategoryAccessory,
		price:       3200000,
		description: "Thiết kế tách rời giúp cổ tay ở tư thế tự nhiên nhất, giảm thiểu hội chứng ống cổ tay.",
		image:       "https://picsum.photos/seed/ergokeyboard/600/600",
		stock:       10,
		rating:      4.7,
	},
	{
		name:        "Chuột Vertical Ergo Mouse",
		category:    catalog.CategoryAccessory,
		price:       950000,
		description: "Thiết kế dạng đứng 57 độ, giúp giảm áp lực cổ tay khi sử dụng thời gian dài.",
		image:       "https://picsum.photos/seed/ergomouse/600/600",
		stock:       30,
		rating:      4.6,
	},
}

type seedBlog struct {
	title, excerpt, content, author, image string
	date                                   time.Time
}

var blogSeed = []seedBlog{
	{
		title:   "5 Lợi ích của Ghế Công Thái Học đối với sức khỏe",
		excerpt: "Tại sao bạn cần đầu tư một chiếc ghế tốt ngay hôm nay?",
		content: "Ghế công thái học không chỉ là một món đồ nội thất, nó là khoản đầu tư cho sức khỏe lâu dài...",
		author:  "Admin Ergolife",
		image:   "https://picsum.photos/seed/blog1/800/400",
		date:    time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
	},
	{
		title:   "Cách thiết lập góc làm việc chuẩn công thái học",
		excerpt: "Hướng dẫn chi tiết từng bước để có một setup hoàn hảo.",
		content: "Bắt đầu từ độ cao của bàn, vị trí màn hình đến cách đặt bàn chân...",
		author:  "Nhân viên Support",
		image:   "https://picsum.photos/seed/blog2/800/400",
		date:    time.Date(2023, 11, 25, 0, 0, 0, 0, time.UTC),
	},
}

type seedUser struct {
	name, email, avatar string
	role                identity.Role
}

var demoUsers = []seedUser{
	{name: "Khách hàng Demo", email: "user@ergolife.com", role: identity.RoleUser, avatar: "https://i.pravatar.cc/150?u=1"},
	{name: "Nhân viên Demo", email: "staff@ergolife.com", role: identity.RoleStaff, avatar: "https://i.pravatar.cc/150?u=2"},
}

// Seeder populates an empty database with the storefront's starter data
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, logger: logger}
}

// EnsureAdmin creates the bootstrap administrator when no ADMIN account exists
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password string) error {
	users := NewGormUserRepository(s.db)
	exists, err := users.ExistsByRole(ctx, identity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}

	admin, err := identity.NewUserWithRole("Admin Ergolife", email, password, identity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("build admin: %w", err)
	}
	admin.Avatar = "https://i.pravatar.cc/150?u=3"
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("Bootstrap admin created", zap.String("email", admin.Email))
	return nil
}

// SeedCatalog inserts the starter products and blog posts when the product
// table is empty
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sp := range catalogSeed {
			product, err := catalog.NewProduct(sp.name, sp.category, sp.price)
			if err != nil {
				return err
			}
			if err := product.SetDetails(sp.description, sp.image, sp.stock); err != nil {
				return err
			}
			product.Rating = sp.rating
			for _, sr := range sp.reviews {
				review, err := catalog.NewReview(0, sr.userName, sr.rating, sr.comment)
				if err != nil {
					return err
				}
				review.Date = sr.date
				product.Reviews = append(product.Reviews, review)
			}
			if err := tx.Create(product).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", sp.name, err)
			}
		}

		for _, sb := range blogSeed {
			blog, err := marketing.NewBlog(sb.title, sb.author)
			if err != nil {
				return err
			}
			if err := blog.Edit(sb.title, sb.excerpt, sb.content, sb.author, sb.image); err != nil {
				return err
			}
			blog.Publish()
			blog.CreatedAt = sb.date
			blog.UpdatedAt = sb.date
			if err := tx.Create(blog).Error; err != nil {
				return fmt.Errorf("seed blog %q: %w", sb.title, err)
			}
		}

		s.logger.Info("Catalog seeded",
			zap.Int("products", len(catalogSeed)),
			zap.Int("blogs", len(blogSeed)),
		)
		return nil
	})
}

// SeedDemoUsers creates the customer and staff demo accounts if missing
func (s *Seeder) SeedDemoUsers(ctx context.Context) error {
	users := NewGormUserRepository(s.db)
	for _, su := range demoUsers {
		exists, err := users.ExistsByEmail(ctx, su.email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		user, err := identity.NewUserWithRole(su.name, su.email, DemoPassword, su.role)
		if err != nil {
			return err
		}
		user.Avatar = su.avatar
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}
	return nil
}

// SeedDemo generates fake customers, vouchers and orders against the seeded
// catalog. A fixed seed yields the same data set on every run.
func (s *Seeder) SeedDemo(ctx context.Context, customers int, seed uint64) error {
	faker := gofakeit.New(seed)

	var products []catalog.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("seed demo: catalog is empty")
	}

	if err := s.seedVouchers(ctx); err != nil {
		return err
	}

	users := NewGormUserRepository(s.db)
	statuses := []trade.OrderStatus{
		trade.OrderStatusPending,
		trade.OrderStatusProcessing,
		trade.OrderStatusShipped,
		trade.OrderStatusDelivered,
		trade.OrderStatusCancelled,
	}

	placed := 0
	for i := 0; i < customers; i++ {
		email := fmt.Sprintf("demo%03d.%s", i+1, faker.Email())
		user, err := identity.NewUser(faker.Name(), email, DemoPassword)
		if err != nil {
			return err
		}
		user.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", faker.UUID())
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}

		cart := trade.NewCart(user.ID)
		for j, n := 0, faker.Number(1, 3); j < n; j++ {
			product := products[faker.Number(0, len(products)-1)]
			item, err := cart.Add(product.ID, faker.Number(1, 2))
			if err != nil {
				return err
			}
			item.Product = product
		}

		order, err := trade.NewOrderFromCart(cart)
		if err != nil {
			return err
		}
		order.Status = statuses[faker.Number(0, len(statuses)-1)]
		if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
			return fmt.Errorf("seed demo order: %w", err)
		}
		placed++
	}

	s.logger.Info("Demo data seeded",
		zap.Int("customers", customers),
		zap.Int("orders", placed),
	)
	return nil
}

func (s *Seeder) seedVouchers(ctx context.Context) error {
	vouchers := NewGormVoucherRepository(s.db)
	defs := []struct {
		code     string
		typ      marketing.DiscountType
		value    int64
		minOrder int64
		maxDisc  int64
		limit    int
	}{
		{"WELCOME10", marketing.DiscountPercentage, 10, 0, 1000000, 0},
		{"ERGO500K", marketing.DiscountFixed, 500000, 5000000, 0, 100},
	}
	for _, d := range defs {
		if _, err := vouchers.FindByCode(ctx, d.code); err == nil {
			continue
		}
		v, err := marketing.NewVoucher(d.code, d.typ, decimal.NewFromInt(d.value))
		if err != nil {
			return err
		}
		if err := v.SetLimits(decimal.NewFromInt(d.minOrder), decimal.NewFromInt(d.maxDisc), d.limit, nil); err != nil {
			return err
		}
		if err := vouchers.Create(ctx, v); err != nil {
			return fmt.Errorf("seed voucher %s: %w", d.code, err)
		}
	}
	return nil
}
