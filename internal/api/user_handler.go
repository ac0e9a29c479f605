package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/openshelf/catalog-api/internal/api/shared"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/service"
)

// CreateUserRequest represents the request body for creating a new user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// UpdateUserRequest represents the request body for user updates.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeleteUserResponse reports user deletion as a boolean success flag,
// mirroring the product deletion boundary.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// CreateUser handles POST /api/users requests.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Struct validation catches absent fields; blank-after-trim and
	// uniqueness remain the service's responsibility.
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user := &domain.User{
		Name:  req.Name,
		Email: req.Email,
	}

	saved, err := h.userService.Save(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(saved))
}

// GetUser handles GET /api/users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUsers handles GET /api/users requests.
// An optional name query parameter narrows the listing to users whose
// name contains the given substring.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []*domain.User
		err   error
	)

	if name := r.URL.Query().Get("name"); name != "" {
		users, err = h.userService.SearchByName(r.Context(), name)
	} else {
		users, err = h.userService.GetAll(r.Context())
	}

	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// UpdateUser handles PUT /api/users/{id} requests.
// It checks existence, overwrites only the supplied fields, and saves
// through the service. The save path does not re-check email uniqueness
// for existing users; PATCH is the stricter surface. Historical behavior,
// kept intact.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	saved, err := h.userService.Save(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(saved))
}

// PatchUser handles PATCH /api/users/{id} requests.
// Delegates to the service's partial update, which re-checks email
// uniqueness against other users.
func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	saved, err := h.userService.UpdatePartial(r.Context(), id, service.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(saved))
}

// DeleteUser handles DELETE /api/users/{id} requests.
// Mirrors the product deletion boundary: every failure collapses into
// deleted=false.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusOK, DeleteUserResponse{Deleted: false})
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.logger.Debug("user delete failed",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusOK, DeleteUserResponse{Deleted: false})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteUserResponse{Deleted: true})
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// usersToResponse converts a slice of users, keeping an empty JSON array
// instead of null for an empty result.
func usersToResponse(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, userToResponse(u))
	}
	return responses
}
