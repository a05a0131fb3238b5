package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/rish2311/BookStore-Assignment/internal/constants"
	"github.com/rish2311/BookStore-Assignment/internal/models"
	"github.com/rish2311/BookStore-Assignment/internal/store"
	"github.com/rish2311/BookStore-Assignment/internal/utils"
)

type UserHandler struct {
	Users       *store.Users
	AuditLogger utils.Logger
	Timeout     time.Duration
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// POST /api/user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, "username, email and password are required", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = string(models.RoleMember)
	}
	if !models.IsValidRole(req.Role) {
		utils.JSONError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         models.Role(req.Role),
		RegisteredAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if _, err := h.Users.FindByUsername(ctx, req.Username); err == nil {
		utils.JSONError(w, "Username already taken", http.StatusConflict)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, "Registration failed", http.StatusServiceUnavailable)
		return
	}

	if err := h.Users.Insert(ctx, &user); err != nil {
		// Unique indexes on username/email catch the race the read misses.
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(w, "Username or email already taken", http.StatusConflict)
			return
		}
		utils.JSONError(w, "Registration failed", http.StatusServiceUnavailable)
		return
	}

	h.AuditLogger.Log(ctx, models.UserEntity, constants.Register, user.Username)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// POST /api/user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		utils.JSONError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// GET /api/user
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	users, err := h.Users.FindAll(ctx)
	if err != nil {
		utils.JSONError(w, "Failed to fetch users", http.StatusServiceUnavailable)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"totalUsers": len(users),
		"users":      users,
	})
}
