package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yashrajoria/storefront-backend/mailer"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const refreshKeyPrefix = "refresh_token:"

// AuthService handles signup, login and the Redis-backed refresh token
// store. One active refresh token per user; issuing a new pair rotates
// the stored one.
type AuthService struct {
	users       repository.UserRepository
	tokens      *TokenService
	redis       *redis.Client
	mail        mailer.EmailSender
	frontendURL string
	logger      *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, redisClient *redis.Client, mail mailer.EmailSender, frontendURL string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		redis:       redisClient,
		mail:        mail,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserResponse, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, &ServiceError{StatusCode: 409, Message: "Email already registered"}
	} else if !isNotFound(err) {
		s.logger.Error("Failed to check email", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	response := user.Public()
	return &response, nil
}

// Login verifies credentials and issues a token pair. The refresh token
// is stored in Redis keyed by user id with the refresh TTL.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*TokenPair, *models.UserResponse, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, &ServiceError{StatusCode: 401, Message: "Invalid email or password"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, &ServiceError{StatusCode: 401, Message: "Invalid email or password"}
	}

	pair, svcErr := s.issueTokens(ctx, user)
	if svcErr != nil {
		return nil, nil, svcErr
	}

	response := user.Public()
	return pair, &response, nil
}

// Refresh rotates the token pair. The presented refresh token must both
// validate and match the one stored in Redis; anything else is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *ServiceError) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid refresh token"}
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid refresh token"}
	}

	stored, err := s.redis.Get(ctx, refreshKeyPrefix+userIDStr).Result()
	if err != nil || stored != refreshToken {
		return nil, &ServiceError{StatusCode: 401, Message: "Refresh token revoked"}
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid refresh token"}
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 401, Message: "User no longer exists"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to refresh tokens"}
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the stored refresh token. Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID) *ServiceError {
	if err := s.redis.Del(ctx, refreshKeyPrefix+userID.Hex()).Err(); err != nil {
		s.logger.Error("Failed to revoke refresh token", zap.String("user", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to log out"}
	}
	return nil
}

// RequestPasswordReset stores a hashed one-hour reset token and emails
// the raw token to the user. Unknown emails get the same success
// response so the endpoint cannot be used to probe accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) *ServiceError {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to request password reset"}
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		s.logger.Error("Failed to generate reset token", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to request password reset"}
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	expires := time.Now().Add(time.Hour)
	user.ResetPasswordToken = hex.EncodeToString(hash[:])
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to store reset token", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to request password reset"}
	}

	if s.mail != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
		body := fmt.Sprintf("<p>Reset your password using <a href=%q>this link</a>. It expires in one hour.</p>", link)
		if _, err := s.mail.SendEmail(ctx, user.Email, "Password reset", body); err != nil {
			s.logger.Error("Failed to send reset email", zap.Error(err))
			return &ServiceError{StatusCode: 500, Message: "Failed to send reset email"}
		}
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. All
// refresh tokens for the user are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) *ServiceError {
	if len(newPassword) < 8 {
		return &ServiceError{StatusCode: 400, Message: "Password must be at least 8 characters"}
	}

	hash := sha256.Sum256([]byte(token))
	user, err := s.users.FindByResetToken(ctx, hex.EncodeToString(hash[:]))
	if err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 400, Message: "Invalid or expired reset token"}
		}
		s.logger.Error("Failed to look up reset token", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to reset password"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to reset password"}
	}

	user.Password = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to reset password"}
	}

	if err := s.redis.Del(ctx, refreshKeyPrefix+user.ID.Hex()).Err(); err != nil {
		s.logger.Warn("Failed to revoke refresh token after reset", zap.Error(err))
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, *ServiceError) {
	pair, err := s.tokens.GenerateTokenPair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to issue tokens"}
	}

	key := refreshKeyPrefix + user.ID.Hex()
	if err := s.redis.Set(ctx, key, pair.RefreshToken, s.tokens.RefreshTTL()).Err(); err != nil {
		s.logger.Error("Failed to store refresh token", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to issue tokens"}
	}
	return pair, nil
}
