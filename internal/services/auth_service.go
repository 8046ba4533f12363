package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"crm/internal/models"
	"crm/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo     repositories.UserRepository
	customerRepo repositories.CustomerRepository
	jwtSecret    []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, customerRepo repositories.CustomerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   24 * time.Hour, // Token valid for 24 hours
	}
}

// Register creates a login account with the customer role and its
// linked customer profile in one step. The password is hashed before
// anything is stored; the user/customer pair is written atomically.
func (s *AuthService) Register(user *models.User, customer *models.Customer) error {
	if existingUser, err := s.userRepo.GetByUsername(user.Username); err == nil && existingUser != nil {
		return fmt.Errorf("username '%s' already taken", user.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = models.RoleCustomer

	if customer.Name == "" {
		customer.Name = user.Username
	}

	if err := s.userRepo.CreateWithCustomer(user, customer); err != nil {
		// A concurrent registration can win between the lookup above and
		// the insert; the unique index is the authority.
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("username '%s' already taken", user.Username)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// CreateAdmin creates an admin account. Admins have no customer profile.
func (s *AuthService) CreateAdmin(username, password string) error {
	if existingUser, err := s.userRepo.GetByUsername(username); err == nil && existingUser != nil {
		return fmt.Errorf("username '%s' already taken", username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("username '%s' already taken", username)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// Login authenticates a user and returns a signed JWT on success. The
// token carries the role and, for customer accounts, the linked
// customer ID so handlers can scope reads without another lookup.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	}
	if user.Role == models.RoleCustomer {
		customer, err := s.customerRepo.GetByUserID(user.ID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return "", fmt.Errorf("failed to load customer profile: %w", err)
			}
		} else {
			claims["customer_id"] = customer.ID
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
