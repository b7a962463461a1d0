package services

import (
	stdctx "context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

type AuthService struct {
	context.DefaultService

	dbSvc  *DatabaseService
	jwtSvc *JWTService
	users  *repositories.UserRepository

	adminEmail    string
	adminPassword string
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.adminEmail = os.Getenv("ADMIN_EMAIL")
	svc.adminPassword = os.Getenv("ADMIN_PASSWORD")
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.users = repositories.NewUserRepository(svc.dbSvc.Db())

	return svc.seedAdmin(stdctx.Background())
}

// NewAuthService wires the service without the container.
func NewAuthService(users *repositories.UserRepository, jwtSvc *JWTService) *AuthService {
	return &AuthService{users: users, jwtSvc: jwtSvc}
}

// seedAdmin creates the configured admin account once.
func (svc *AuthService) seedAdmin(ctx stdctx.Context) error {
	if svc.adminEmail == "" || svc.adminPassword == "" {
		return nil
	}

	if _, err := svc.users.GetUserByEmail(ctx, svc.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return svc.dbSvc.HandleError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(svc.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        strings.ToLower(svc.adminEmail),
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		Role:         model.RoleAdmin,
	}
	if err := svc.users.CreateUserWithProgress(ctx, admin); err != nil {
		return svc.dbSvc.HandleError(err)
	}

	log.WithField("email", admin.Email).Info("Created admin user")
	return nil
}

// Register creates the account together with its empty progress record.
func (svc *AuthService) Register(ctx stdctx.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	available, err := svc.users.IsEmailAvailable(ctx, email)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to check email availability")
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = shared.DefaultDisplayName
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         model.RoleUser,
	}
	if err := svc.users.CreateUserWithProgress(ctx, user); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create user")
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return &dto.RegisterResponse{UserID: user.ID}, nil
}

func (svc *AuthService) Login(ctx stdctx.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
		}
		return nil, shared.NewInternalError(err, "Failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.WithField("user_id", user.ID).Warn("Failed login attempt")
		return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
	}

	token, err := svc.jwtSvc.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	now := time.Now()
	if err := svc.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}
	user.LastLogin = &now

	return &dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		User:        toUserInfo(user),
	}, nil
}

func (svc *AuthService) GetProfile(ctx stdctx.Context, userID string) (*dto.UserInfo, error) {
	user, err := svc.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load user")
	}
	info := toUserInfo(user)
	return &info, nil
}

func (svc *AuthService) UpdateProfile(ctx stdctx.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		updates["display_name"] = name
	}
	if req.Avatar != "" {
		if !strings.HasPrefix(req.Avatar, "data:image/") {
			return nil, shared.NewBadRequestError(nil, "Avatar must be an image data URL")
		}
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := svc.users.UpdateProfile(ctx, userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.NewNotFoundError(err, "User not found")
			}
			return nil, shared.NewInternalError(err, "Failed to update profile")
		}
	}

	return svc.GetProfile(ctx, userID)
}

// RequiredAuth rejects requests without a valid bearer token and stores the
// caller's id and role in the fiber locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return shared.NewUnauthorizedError(err, "Unauthorized")
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.NewUnauthorizedError(err, "Invalid JWT token")
		}

		c.Locals(shared.UserID, claims.UserID)
		c.Locals(shared.UserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole must run after RequiredAuth.
func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if current, _ := c.Locals(shared.UserRole).(string); current != role {
			return shared.NewForbiddenError(nil, "Forbidden")
		}
		return c.Next()
	}
}

func toUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLogin,
	}
}
