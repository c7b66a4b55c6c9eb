package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog-service/config"
	"blog-service/models"

	"go.uber.org/zap"
)

const (
	bearerPrefix    = "Bearer "
	maxResponseBody = 1 << 20
)

// AuthService is the client of the external identity service. It never
// issues or verifies tokens itself.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
	ExtractToken(header string) (string, error)
	GetUserDetails(ctx context.Context, token string) (*models.UserDetails, error)
	GetAllUsers(ctx context.Context, token string) ([]models.UserDetails, error)
	DeleteUser(ctx context.Context, username, token string) error
	CanEditOrDelete(ctx context.Context, token, owner string) (bool, error)
}

type authService struct {
	cfg    config.AuthServiceConfig
	http   *http.Client
	logger *zap.Logger
}

// NewAuthService creates the auth service client. A nil httpClient gets a
// pooled client with the configured timeout.
func NewAuthService(cfg config.AuthServiceConfig, httpClient *http.Client, logger *zap.Logger) AuthService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &authService{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.Named("auth_gateway"),
	}
}

// response is a fully read upstream reply.
type response struct {
	status int
	body   []byte
}

// doRequest executes one call. Transport failures come back as upstream errors;
// any HTTP status is returned to the caller for interpretation.
func (s *authService) doRequest(ctx context.Context, op, method, url, token string, payload interface{}) (*response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", bearerPrefix+token)
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		authRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		s.logger.Error("auth service unreachable", zap.String("operation", op), zap.Error(err))
		return nil, models.NewError(models.ErrUpstream, "Auth service is unavailable", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	authRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, models.NewError(models.ErrUpstream, "Auth service is unavailable", fmt.Errorf("read response: %w", err))
	}

	s.logger.Debug("auth service call",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return &response{status: resp.StatusCode, body: b}, nil
}

func (s *authService) unexpected(op string, resp *response) error {
	s.logger.Error("unexpected auth service response",
		zap.String("operation", op),
		zap.Int("status", resp.status),
	)
	return models.NewError(models.ErrUpstream, "Auth service error",
		fmt.Errorf("%s: unexpected status %d", op, resp.status))
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	creds := models.Credentials{Username: username, Password: password}
	resp, err := s.doRequest(ctx, "login", http.MethodPost, s.cfg.LoginURL(), "", creds)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusUnauthorized:
		return nil, models.NewError(models.ErrAuthenticationFailed, "Failed to authenticate", nil)
	case isSuccess(resp.status):
		var login models.LoginResponse
		if err := json.Unmarshal(resp.body, &login); err != nil || login.Token == "" {
			s.logger.Error("failed to authenticate: empty login response")
			return nil, models.NewError(models.ErrAuthenticationFailed, "Failed to authenticate", err)
		}
		return &login, nil
	default:
		return nil, s.unexpected("login", resp)
	}
}

func (s *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	resp, err := s.doRequest(ctx, "validate", http.MethodGet, s.cfg.ValidateURL(), token, nil)
	if err != nil {
		return false, err
	}

	switch {
	case isSuccess(resp.status):
		return true, nil
	case resp.status == http.StatusUnauthorized:
		return false, nil
	default:
		return false, s.unexpected("validate", resp)
	}
}

// ExtractToken returns the credential following the "Bearer " prefix.
func (s *authService) ExtractToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", models.ValidationError("Invalid Authorization header format")
	}
	return strings.TrimSpace(token), nil
}

func (s *authService) GetUserDetails(ctx context.Context, token string) (*models.UserDetails, error) {
	resp, err := s.doRequest(ctx, "user_details", http.MethodGet, s.cfg.UserDetailsURL(), token, nil)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserResponse("user_details", resp); err != nil {
		return nil, err
	}

	var user models.UserDetails
	if err := json.Unmarshal(resp.body, &user); err != nil || user.Username == "" {
		return nil, models.NewError(models.ErrUserDetailsRetrieval, "Failed to retrieve user details", err)
	}
	return &user, nil
}

func (s *authService) GetAllUsers(ctx context.Context, token string) ([]models.UserDetails, error) {
	resp, err := s.doRequest(ctx, "list_users", http.MethodGet, s.cfg.UsersURL(), token, nil)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserResponse("list_users", resp); err != nil {
		return nil, err
	}

	var users []models.UserDetails
	if err := json.Unmarshal(resp.body, &users); err != nil || users == nil {
		return nil, models.NewError(models.ErrUserDetailsRetrieval, "Failed to retrieve user details", err)
	}
	return users, nil
}

func (s *authService) checkUserResponse(op string, resp *response) error {
	switch {
	case resp.status == http.StatusUnauthorized:
		return models.NewError(models.ErrUserDetailsRetrieval, "Unauthorized access", nil)
	case !isSuccess(resp.status) || len(bytes.TrimSpace(resp.body)) == 0:
		s.logger.Error("failed to retrieve user details",
			zap.String("operation", op),
			zap.Int("status", resp.status),
		)
		return models.NewError(models.ErrUserDetailsRetrieval, "Failed to retrieve user details", nil)
	default:
		return nil
	}
}

// DeleteUser asks the auth service to remove username. Only 204 counts as
// success and the call is made exactly once.
func (s *authService) DeleteUser(ctx context.Context, username, token string) error {
	resp, err := s.doRequest(ctx, "delete_user", http.MethodDelete, s.cfg.DeleteUserURL(username), token, nil)
	if err != nil {
		return models.NewError(models.ErrUserDeletionFailed, "Failed to delete user", err)
	}
	if resp.status != http.StatusNoContent {
		s.logger.Error("failed to delete user",
			zap.String("username", username),
			zap.Int("status", resp.status),
		)
		return models.NewError(models.ErrUserDeletionFailed, "Failed to delete user",
			fmt.Errorf("unexpected status %d", resp.status))
	}

	s.logger.Info("deleted user", zap.String("username", username))
	return nil
}

// CanEditOrDelete resolves the caller behind token and applies IsOwnerOrAdmin.
func (s *authService) CanEditOrDelete(ctx context.Context, token, owner string) (bool, error) {
	user, err := s.GetUserDetails(ctx, token)
	if err != nil {
		return false, err
	}
	return IsOwnerOrAdmin(*user, owner, s.cfg.AdminRole), nil
}
