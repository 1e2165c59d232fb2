package http

import (
	"net/http"

	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/httpx"
)

type UsersHandler struct {
	Users *service.UserService
}

// HandleProfile godoc
//
//	@Summary		Current user profile
//	@Tags			Users
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	snipsdk.User			"profile"
//	@Failure		401	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/profile [get].
func (h *UsersHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Users.GetProfile(ctx, httpx.UserID(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
