package services

import (
	"context"
	"strings"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserService covers profile, address book and wishlist management.
type UserService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewUserService(users repository.UserRepository, products repository.ProductRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, products: products, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, *ServiceError) {
	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, *ServiceError) {
	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		if _, err := s.users.FindByEmail(ctx, email); err == nil {
			return nil, &ServiceError{StatusCode: 409, Message: "Email already in use"}
		} else if !isNotFound(err) {
			s.logger.Error("Failed to check email", zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to update profile"}
		}
		user.Email = email
	}
	user.Profile.FirstName = req.FirstName
	user.Profile.LastName = req.LastName
	user.Profile.Phone = req.Phone

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update profile"}
	}
	return user, nil
}

// AddAddress appends an address. The first address, or one flagged
// default, becomes the user's default; only one address holds the flag.
func (s *UserService) AddAddress(ctx context.Context, userID primitive.ObjectID, req *models.AddressRequest) (*models.User, *ServiceError) {
	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	address := models.Address{
		ID:      primitive.NewObjectID(),
		Type:    req.Type,
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}
	makeDefault := len(user.Addresses) == 0 || (req.IsDefault != nil && *req.IsDefault)
	if makeDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
		address.IsDefault = true
	}
	user.Addresses = append(user.Addresses, address)

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to add address", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add address"}
	}
	return user, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID primitive.ObjectID, addressID string, req *models.AddressRequest) (*models.User, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid address id"}
	}

	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	index := -1
	for i := range user.Addresses {
		if user.Addresses[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &ServiceError{StatusCode: 404, Message: "Address not found"}
	}

	address := &user.Addresses[index]
	address.Type = req.Type
	address.Street = req.Street
	address.City = req.City
	address.State = req.State
	address.ZipCode = req.ZipCode
	address.Country = req.Country
	if req.IsDefault != nil && *req.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = i == index
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update address", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update address"}
	}
	return user, nil
}

func (s *UserService) RemoveAddress(ctx context.Context, userID primitive.ObjectID, addressID string) (*models.User, *ServiceError) {
	id, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid address id"}
	}

	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	index := -1
	for i := range user.Addresses {
		if user.Addresses[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &ServiceError{StatusCode: 404, Message: "Address not found"}
	}

	wasDefault := user.Addresses[index].IsDefault
	user.Addresses = append(user.Addresses[:index], user.Addresses[index+1:]...)
	if wasDefault && len(user.Addresses) > 0 {
		user.Addresses[0].IsDefault = true
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to remove address", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to remove address"}
	}
	return user, nil
}

func (s *UserService) AddToWishlist(ctx context.Context, userID primitive.ObjectID, productID string) *ServiceError {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}

	if _, err := s.products.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to load product", zap.String("product", productID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}

	if err := s.users.AddToWishlist(ctx, userID, id); err != nil {
		s.logger.Error("Failed to update wishlist", zap.String("user", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}
	return nil
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID primitive.ObjectID, productID string) *ServiceError {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid product id"}
	}
	if err := s.users.RemoveFromWishlist(ctx, userID, id); err != nil {
		s.logger.Error("Failed to update wishlist", zap.String("user", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update wishlist"}
	}
	return nil
}

// GetWishlist resolves the wishlist references to catalog entries,
// skipping products that have since been removed.
func (s *UserService) GetWishlist(ctx context.Context, userID primitive.ObjectID) ([]models.Product, *ServiceError) {
	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	products := make([]models.Product, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}

func (s *UserService) findUser(ctx context.Context, userID primitive.ObjectID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.String("user", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch user"}
	}
	return user, nil
}
