package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

type DiscountService struct {
	Repo *repo.GormRepo
}

// Validate evaluates a code against an order amount. Pure read: no
// usage counting happens here.
func (s *DiscountService) Validate(ctx context.Context, code string, orderAmount decimal.Decimal) (*models.DiscountCode, decimal.Decimal, error) {
	dc, err := s.Repo.GetDiscountCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, fmt.Errorf("%w: discount code not found", ErrNotFound)
		}
		return nil, decimal.Zero, err
	}
	return dc, dc.CalculateDiscount(orderAmount), nil
}

func (s *DiscountService) Create(ctx context.Context, req transport.CreateDiscountCodeRequest) (*models.DiscountCode, error) {
	l := logging.FromContext(ctx).With("svc", "discount.create")

	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: validUntil must be an RFC 3339 timestamp", ErrValidation)
	}
	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom, err = time.Parse(time.RFC3339, *req.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: validFrom must be an RFC 3339 timestamp", ErrValidation)
		}
	}

	code := strings.ToUpper(req.Code)
	if _, err := s.Repo.GetDiscountCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: discount code %s already exists", ErrConflict, code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dc := &models.DiscountCode{
		Code:              code,
		Description:       req.Description,
		Type:              models.DiscountType(req.Type),
		Value:             req.Value,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		UsedCount:         0,
		IsActive:          true,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
	}
	if err := s.Repo.CreateDiscountCode(ctx, dc); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: discount code %s already exists", ErrConflict, code)
		}
		return nil, err
	}

	l.Info("discount_code_created", "code", dc.Code)
	return dc, nil
}

func (s *DiscountService) List(ctx context.Context, offset, limit int) (int64, []models.DiscountCode, error) {
	return s.Repo.ListDiscountCodes(ctx, offset, limit)
}

// Redeem counts one use of a code atomically. The guarded UPDATE keeps
// concurrent redemptions inside the usage limit.
func (s *DiscountService) Redeem(ctx context.Context, code string) (*models.DiscountCode, error) {
	l := logging.FromContext(ctx).With("svc", "discount.redeem")

	if _, err := s.Repo.GetDiscountCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: discount code not found", ErrNotFound)
		}
		return nil, err
	}

	ok, err := s.Repo.IncrementDiscountUsage(ctx, code, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: discount code is no longer redeemable", ErrConflict)
	}

	dc, err := s.Repo.GetDiscountCode(ctx, code)
	if err != nil {
		return nil, err
	}

	l.Info("discount_code_redeemed", "code", dc.Code, "used_count", dc.UsedCount)
	return dc, nil
}
