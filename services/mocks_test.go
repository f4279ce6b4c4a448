package services_test

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- Mock Cart Repository ---

type mockCartRepo struct {
	carts map[primitive.ObjectID]*models.Cart // keyed by user
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (m *mockCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	cart.UpdatedAt = time.Now()
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	m.carts[cart.User] = &copied
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, cartID primitive.ObjectID) error {
	for user, cart := range m.carts {
		if cart.ID == cartID {
			delete(m.carts, user)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// --- Mock Product Repository ---

type mockProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductRepo) add(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = p
	return p
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	m.add(p)
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (m *mockProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockProductRepo) Find(_ context.Context, _ repository.ProductFilter, _, _ int) ([]models.Product, int64, error) {
	var result []models.Product
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.products, id)
	return nil
}

// --- Mock Order Repository ---

type mockOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.User == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, filter repository.OrderFilter, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindByPaymentReference(_ context.Context, reference string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.Payment.Reference == reference {
			copied := *o
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// --- Mock User Repository ---

type mockUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *mockUserRepo) add(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepo) Create(_ context.Context, u *models.User) error {
	m.add(u)
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) FindByResetToken(_ context.Context, tokenHash string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepo) AddToWishlist(_ context.Context, userID, productID primitive.ObjectID) error {
	u, ok := m.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range u.Wishlist {
		if id == productID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (m *mockUserRepo) RemoveFromWishlist(_ context.Context, userID, productID primitive.ObjectID) error {
	u, ok := m.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- Mock AdminLog Repository ---

type mockAdminLogRepo struct {
	entries []models.AdminLog
}

func newMockAdminLogRepo() *mockAdminLogRepo {
	return &mockAdminLogRepo{}
}

func (m *mockAdminLogRepo) Append(_ context.Context, entry *models.AdminLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAdminLogRepo) FindByOrder(_ context.Context, orderID primitive.ObjectID) ([]models.AdminLog, error) {
	var result []models.AdminLog
	for _, e := range m.entries {
		if e.TargetOrder == orderID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockAdminLogRepo) FindAll(_ context.Context, _, _ int) ([]models.AdminLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

// --- Mock Coupon Repository ---

type mockCouponRepo struct {
	coupons map[string]*models.Coupon
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{coupons: make(map[string]*models.Coupon)}
}

func (m *mockCouponRepo) Create(_ context.Context, c *models.Coupon) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.coupons[c.Code] = c
	return nil
}

func (m *mockCouponRepo) FindActiveByCode(_ context.Context, code string, now time.Time) (*models.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok || !c.IsActive || now.Before(c.StartDate) || now.After(c.EndDate) {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (m *mockCouponRepo) FindAll(_ context.Context) ([]models.Coupon, error) {
	var result []models.Coupon
	for _, c := range m.coupons {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCouponRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for code, c := range m.coupons {
		if c.ID == id {
			delete(m.coupons, code)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}
