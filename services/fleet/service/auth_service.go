package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"fleet-registry/lib/apperrors"
	"fleet-registry/lib/config"
	authmw "fleet-registry/lib/middlewares/auth"
	"fleet-registry/lib/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// AuthService issues and revokes operator sessions. Credentials live in
// Postgres; the live session set lives in Redis so a deleted session kills
// the token before its JWT expiry.
type AuthService struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
	log         *logrus.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthService(pool *pgxpool.Pool, redisClient *redis.Client, log *logrus.Logger) *AuthService {
	return &AuthService{
		pool:        pool,
		redisClient: redisClient,
		log:         log,
	}
}

// EnsureSchema creates the operators table and seeds the default admin
// account when it is missing.
func (s *AuthService) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS operators (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		"INSERT INTO operators (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		config.AdminUsername(), config.AdminPassword(),
	)
	return err
}

func (s *AuthService) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var operatorID int32
	var username string
	err := s.pool.QueryRow(c.Request.Context(),
		"SELECT id, username FROM operators WHERE username = $1 AND password = $2",
		req.Username, req.Password,
	).Scan(&operatorID, &username)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("login query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	sessionID := uuid.NewString()
	if err := s.redisClient.Set(c.Request.Context(),
		authmw.SessionKeyPrefix+sessionID, username, config.SessionTTL()).Err(); err != nil {
		s.log.WithError(err).Error("failed to store session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	signed, expiresAt, err := token.GenerateToken(sessionID, strconv.Itoa(int(operatorID)), username)
	if err != nil {
		s.log.WithError(err).Error("failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "name": username, "expiresAt": expiresAt})
}

func (s *AuthService) HandleLogout(c *gin.Context) {
	operator, ok := c.Get("operator")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	session, ok := operator.(token.OperatorSession)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	if err := s.redisClient.Del(c.Request.Context(), authmw.SessionKeyPrefix+session.SessionID).Err(); err != nil {
		s.log.WithError(err).Error("failed to delete session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
