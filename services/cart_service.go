package services

import (
	"context"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CartService owns the per-user cart aggregate. Every mutation recomputes
// the totals invariant before persisting.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// GetCart returns the user's cart enriched with catalog display fields,
// or nil when the user has none. Reading never creates a cart.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, *ServiceError) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		s.logger.Error("Failed to fetch cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
	}

	s.enrich(ctx, cart)
	return cart, nil
}

// AddItem adds a product+variant line to the cart, merging into an
// existing line when one matches structurally. The unit price is captured
// from the catalog at add time and never re-derived.
func (s *CartService) AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddCartItemRequest) (*models.Cart, *ServiceError) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid quantity"}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to load product", zap.String("product", req.ProductID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load product"}
	}

	if err := product.ValidateVariant(req.Variant); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid variant"}
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Error("Failed to fetch cart", zap.String("user", userID.Hex()), zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
		}
		cart = models.NewCart(userID)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID && cart.Items[i].Variant.Equal(req.Variant) {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ID:          primitive.NewObjectID(),
			Product:     productID,
			Variant:     req.Variant,
			Quantity:    quantity,
			Price:       product.Price,
			ProductType: product.ProductType,
		})
	}

	cart.RecalculateTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}

	s.enrich(ctx, cart)
	return cart, nil
}

// UpdateItemQuantity sets the quantity of an existing line. The price is
// left untouched.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID primitive.ObjectID, itemID string, quantity int) (*models.Cart, *ServiceError) {
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid quantity"}
	}

	id, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid item id"}
	}

	cart, svcErr := s.requireCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, &ServiceError{StatusCode: 404, Message: "Item not found in cart"}
	}

	cart.RecalculateTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}

	s.enrich(ctx, cart)
	return cart, nil
}

// RemoveItem deletes one line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, itemID string) (*models.Cart, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid item id"}
	}

	cart, svcErr := s.requireCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	index := -1
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &ServiceError{StatusCode: 404, Message: "Item not found in cart"}
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	cart.RecalculateTotals()
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}

	s.enrich(ctx, cart)
	return cart, nil
}

// Clear deletes the whole cart document, not just its items.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) *ServiceError {
	cart, svcErr := s.requireCart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Cart not found"}
		}
		s.logger.Error("Failed to clear cart", zap.String("user", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

func (s *CartService) requireCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, *ServiceError) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Cart not found"}
		}
		s.logger.Error("Failed to fetch cart", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
	}
	return cart, nil
}

// enrich attaches catalog display fields to each line. A line whose
// product has since vanished keeps its snapshot fields and no ProductInfo.
func (s *CartService) enrich(ctx context.Context, cart *models.Cart) {
	for i := range cart.Items {
		product, err := s.products.FindByID(ctx, cart.Items[i].Product)
		if err != nil {
			continue
		}
		info := &models.CartProduct{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Images:      product.Images,
			ProductType: product.ProductType,
		}
		if product.ProductType == models.ProductMagazine {
			info.Magazine = product.MagazineData
		}
		cart.Items[i].ProductInfo = info
	}
}
