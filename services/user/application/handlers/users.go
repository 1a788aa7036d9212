package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/venue-master/admin-console/pkg/auth"
	"github.com/venue-master/admin-console/pkg/errhttp"
	"github.com/venue-master/admin-console/pkg/httpx"
	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	"github.com/venue-master/admin-console/services/user/domain/models"
	"github.com/venue-master/admin-console/services/user/infrastructure/remote"
)

type UserHandlers struct {
	clients auth.ClientSource
}

func NewUserHandlers(clients auth.ClientSource) *UserHandlers {
	return &UserHandlers{clients: clients}
}

func (h *UserHandlers) facade(w http.ResponseWriter, r *http.Request) (*remote.UserFacade, bool) {
	client, err := h.clients(r)
	if err != nil {
		errhttp.Respond(w, r, err)
		return nil, false
	}
	return remote.NewUserFacade(client), true
}

// List returns user accounts.
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Param		search	query		string	false	"Name or email fragment"
//	@Param		role	query		string	false	"Role"
//	@Param		active	query		bool	false	"Account state"
//	@Param		limit	query		int		false	"Page size"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{array}		models.User
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/users [get]
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Page(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	active, err := httpx.QueryBool(r, "active")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	users, err := f.List(r.Context(), models.ListParams{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Active: active,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSONList(w, http.StatusOK, users)
}

// Me returns the account of the signed-in operator as the user service sees it.
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Router		/users/me [get]
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.Me(ctx)
	})
}

// Get returns one user.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	models.User
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.Get(ctx, id)
	})
}

// Update edits a user's profile.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User ID"
//	@Param		request	body		models.UserUpdate	true	"Profile"
//	@Success	200		{object}	models.User
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.UserUpdate](w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.Update(ctx, id, *in)
	})
}

// UpdateRoles replaces a user's roles.
//
//	@Summary	Update user roles
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User ID"
//	@Param		request	body		models.RolesUpdate	true	"Roles"
//	@Success	200		{object}	models.User
//	@Failure	422		{object}	httpx.ErrorResponse
//	@Router		/users/{id}/roles [patch]
func (h *UserHandlers) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	in, ok := pkgvalidator.ValidateRequest[models.RolesUpdate](w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.UpdateRoles(ctx, id, in.Roles)
	})
}

// Activate re-enables an account.
//
//	@Summary	Activate user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	models.User
//	@Router		/users/{id}/activate [patch]
func (h *UserHandlers) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.Activate(ctx, id)
	})
}

// Deactivate disables an account.
//
//	@Summary	Deactivate user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	models.User
//	@Router		/users/{id}/deactivate [patch]
func (h *UserHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.one(w, r, func(ctx context.Context, f *remote.UserFacade) (*models.User, error) {
		return f.Deactivate(ctx, id)
	})
}

func (h *UserHandlers) one(w http.ResponseWriter, r *http.Request, call func(context.Context, *remote.UserFacade) (*models.User, error)) {
	f, ok := h.facade(w, r)
	if !ok {
		return
	}
	user, err := call(r.Context(), f)
	if err != nil {
		errhttp.Respond(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
