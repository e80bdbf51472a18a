package marketing

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrVoucherCodeTaken is returned when a code is already in use
var ErrVoucherCodeTaken = shared.NewDomainError("ALREADY_EXISTS", "Voucher code already exists")

// VoucherService handles administrator voucher management
type VoucherService struct {
	voucherRepo marketing.VoucherRepository
	logger      *zap.Logger
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(voucherRepo marketing.VoucherRepository, logger *zap.Logger) *VoucherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoucherService{voucherRepo: voucherRepo, logger: logger}
}

// List returns a page of vouchers
func (s *VoucherService) List(ctx context.Context, query ListQuery) (*shared.Paginated[VoucherResponse], error) {
	filter := query.Filter()
	vouchers, total, err := s.voucherRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		items[i] = ToVoucherResponse(&vouchers[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns a single voucher
func (s *VoucherService) GetByID(ctx context.Context, id uint) (*VoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVoucherResponse(voucher)
	return &resp, nil
}

// Create adds a voucher with a unique code
func (s *VoucherService) Create(ctx context.Context, req VoucherRequest) (*VoucherResponse, error) {
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}
	voucher, err := marketing.NewVoucher(req.Code, marketing.DiscountType(req.DiscountType), req.DiscountValue)
	if err != nil {
		return nil, err
	}
	if err := applyVoucherRequest(voucher, req); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}
	s.logger.Info("Voucher created", zap.Uint("voucher_id", voucher.ID), zap.String("code", voucher.Code))
	resp := ToVoucherResponse(voucher)
	return &resp, nil
}

// Update replaces a voucher's terms and limits. The usage count is kept.
func (s *VoucherService) Update(ctx context.Context, id uint, req VoucherRequest) (*VoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, id); err != nil {
		return nil, err
	}
	if err := voucher.SetTerms(req.Code, marketing.DiscountType(req.DiscountType), req.DiscountValue); err != nil {
		return nil, err
	}
	if err := applyVoucherRequest(voucher, req); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Update(ctx, voucher); err != nil {
		return nil, err
	}
	resp := ToVoucherResponse(voucher)
	return &resp, nil
}

// Delete removes a voucher. Orders keep the code they were placed with.
func (s *VoucherService) Delete(ctx context.Context, id uint) error {
	if err := s.voucherRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Voucher deleted", zap.Uint("voucher_id", id))
	return nil
}

func (s *VoucherService) ensureCodeFree(ctx context.Context, code string, selfID uint) error {
	existing, err := s.voucherRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, marketing.ErrVoucherNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrVoucherCodeTaken
	}
	return nil
}

func applyVoucherRequest(v *marketing.Voucher, req VoucherRequest) error {
	v.Description = req.Description
	if err := v.SetLimits(req.MinOrderValue, req.MaxDiscount, req.UsageLimit, req.ExpiresAt); err != nil {
		return err
	}
	if req.IsActive != nil {
		v.SetActive(*req.IsActive)
	}
	return nil
}
