package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"meetmatch/core/cache"
	"meetmatch/core/constants"
	"meetmatch/core/errors"
	"meetmatch/core/logger"
	"meetmatch/core/utils"
	"meetmatch/modules/auth/dto"
	"meetmatch/modules/auth/entity"
	"meetmatch/modules/auth/repository"
	calendarService "meetmatch/modules/calendar/service"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	GoogleLoginURL(ctx context.Context) (*dto.GoogleLoginURLResponse, *errors.AppError)
	GoogleCallback(ctx context.Context, req *dto.GoogleCallbackRequest) (*dto.AuthResponse, *errors.AppError)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, *errors.AppError)
}

type AuthService struct {
	repo     repository.AuthRepository
	cache    cache.Cache
	calendar calendarService.CalendarServiceInterface
}

func NewAuthService(repo repository.AuthRepository, c cache.Cache, calendar calendarService.CalendarServiceInterface) AuthServiceInterface {
	return &AuthService{
		repo:     repo,
		cache:    c,
		calendar: calendar,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a valid email is required", nil)
	}
	if len(req.Password) < 8 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "password must be at least 8 characters", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = email
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "an account with this email already exists", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{Email: email, Name: name, PasswordHash: &hash}
	if _, err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}
	// Same error for unknown email and wrong password.
	if user == nil || user.PasswordHash == nil || !utils.CheckPassword(*user.PasswordHash, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	return s.issueToken(user)
}

// GoogleLoginURL creates a single-use state nonce and returns the consent
// URL. AccessTypeOffline with consent prompt makes Google return a refresh
// token.
func (s *AuthService) GoogleLoginURL(ctx context.Context) (*dto.GoogleLoginURLResponse, *errors.AppError) {
	state := utils.GenerateRandomString(32)
	if err := s.cache.SetOAuthState(ctx, state); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store oauth state", err)
	}

	url := calendarService.GoogleOAuthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	return &dto.GoogleLoginURLResponse{URL: url}, nil
}

// GoogleCallback finishes the OAuth flow: validates the state nonce,
// exchanges the code, upserts the user and stores the calendar connection.
func (s *AuthService) GoogleCallback(ctx context.Context, req *dto.GoogleCallbackRequest) (*dto.AuthResponse, *errors.AppError) {
	if req.Code == "" || req.State == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "code and state are required", nil)
	}

	valid, err := s.cache.ConsumeOAuthState(ctx, req.State)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate oauth state", err)
	}
	if !valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "unknown or expired oauth state", nil)
	}

	oauthCfg := calendarService.GoogleOAuthConfig()

	exchangeCtx, cancel := context.WithTimeout(ctx, constants.GoogleAPICallTimeout)
	defer cancel()
	token, err := oauthCfg.Exchange(exchangeCtx, req.Code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	info, err := fetchGoogleUserInfo(exchangeCtx, oauthCfg, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch google profile", err)
	}
	if info.Email == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "google profile has no email", nil)
	}

	user, appErr := s.upsertGoogleUser(ctx, info)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.calendar.SaveGoogleConnection(ctx, user.ID, token, info.Email); appErr != nil {
		// Sign-in still succeeds; the user can reconnect the calendar later.
		logger.Error("AuthService:GoogleCallback: failed to save calendar connection", "user_id", user.ID, "error", appErr)
	}

	return s.issueToken(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	u := toUserDTO(user)
	return &u, nil
}

func (s *AuthService) upsertGoogleUser(ctx context.Context, info *googleUserInfo) (*entity.User, *errors.AppError) {
	email := strings.ToLower(info.Email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}
	if user != nil {
		return user, nil
	}

	name := info.Name
	if name == "" {
		name = email
	}
	user = &entity.User{Email: email, Name: name}
	if _, err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	resp, err := cfg.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &info, nil
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
