package services

import (
	"context"
	"strings"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CouponService validates coupons against carts. Validation never
// mutates the coupon: currentUses is a ceiling check only.
type CouponService struct {
	coupons repository.CouponRepository
	logger  *zap.Logger
}

func NewCouponService(coupons repository.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{coupons: coupons, logger: logger}
}

func (s *CouponService) Create(ctx context.Context, adminID primitive.ObjectID, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	coupon := &models.Coupon{
		Code:            req.Code,
		Description:     req.Description,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MinimumPurchase: req.MinimumPurchase,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxUses:         req.MaxUses,
		IsActive:        true,
		CreatedBy:       adminID,
	}
	if coupon.StartDate.IsZero() {
		coupon.StartDate = time.Now()
	}
	if err := coupon.ValidateWindow(); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
	}
	coupon.Normalize(time.Now())

	if err := s.coupons.Create(ctx, coupon); err != nil {
		s.logger.Error("Failed to create coupon", zap.String("code", coupon.Code), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create coupon"}
	}
	return coupon, nil
}

// Validate checks a code against a cart total and returns the discount
// fields. It never applies the discount and never increments usage.
func (s *CouponService) Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *ServiceError) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	coupon, err := s.coupons.FindActiveByCode(ctx, code, time.Now())
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Coupon not found or expired"}
		}
		s.logger.Error("Failed to look up coupon", zap.String("code", code), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to validate coupon"}
	}

	if req.CartTotal < coupon.MinimumPurchase {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart total is below the coupon minimum"}
	}
	if coupon.MaxUses > 0 && coupon.CurrentUses >= coupon.MaxUses {
		return nil, &ServiceError{StatusCode: 400, Message: "Coupon usage limit reached"}
	}

	return &models.ValidateCouponResponse{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
	}, nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, *ServiceError) {
	coupons, err := s.coupons.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list coupons"}
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	return coupons, nil
}

func (s *CouponService) Delete(ctx context.Context, couponID string) *ServiceError {
	id, err := primitive.ObjectIDFromHex(couponID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid coupon id"}
	}
	if err := s.coupons.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to delete coupon", zap.String("coupon", couponID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete coupon"}
	}
	return nil
}
