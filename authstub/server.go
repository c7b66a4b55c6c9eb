package authstub

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"blog-service/config"
	"blog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Server exposes Store over HTTP and issues HS256 tokens.
type Server struct {
	store     *Store
	settings  config.JWTSettings
	adminRole string
	logger    *zap.Logger
}

func NewServer(store *Store, settings config.JWTSettings, adminRole string, logger *zap.Logger) *Server {
	return &Server{store: store, settings: settings, adminRole: adminRole, logger: logger}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/api/auth/login", s.login)

	authed := r.Group("", s.authenticate)
	{
		authed.GET("/api/auth/validate", s.validate)
		authed.GET("/api/users/me", s.me)
		authed.GET("/api/users", s.listUsers)
		authed.DELETE("/api/users/:username", s.deleteUser)
	}
	return r
}

// IssueToken signs a token for the given user.
func (s *Server) IssueToken(user models.UserDetails) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.settings.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.settings.Secret)
}

func (s *Server) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.settings.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func (s *Server) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := s.store.Authenticate(creds.Username, creds.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", creds.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
		return
	}

	token, err := s.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresIn: s.settings.Expiration.Milliseconds(),
	})
}

// authenticate resolves the bearer token to a current user. Tokens of
// deleted users stop working immediately.
func (s *Server) authenticate(c *gin.Context) {
	tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := s.parseToken(tokenString)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := s.store.Get(claims.Username)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("user", user)
	c.Next()
}

func currentUser(c *gin.Context) models.UserDetails {
	return c.MustGet("user").(models.UserDetails)
}

func (s *Server) validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) deleteUser(c *gin.Context) {
	if !currentUser(c).HasRole(s.adminRole) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	username := c.Param("username")
	if err := s.store.Delete(username); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	s.logger.Info("user deleted", zap.String("username", username))
	c.Status(http.StatusNoContent)
}
