package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/blogly/internal/forms"
	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/store"
	"github.com/vaughan-dsouza/blogly/internal/utils"
	"github.com/vaughan-dsouza/blogly/internal/views"
)

type UserHandler struct {
	responder
	users store.UserRepository
	posts store.PostRepository
}

// ---------------------- LIST ----------------------

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.UserList, views.UserListData{Users: users})
}

// ---------------------- GET ONE ----------------------

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	posts, err := h.posts.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.UserDetail, views.UserData{User: user, Posts: posts})
}

// ---------------------- CREATE ----------------------

func (h *UserHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.UserNew, nil)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form forms.UserForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	var user models.User
	form.Apply(&user)
	if err := h.users.Create(r.Context(), &user); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/users")
}

// ---------------------- UPDATE ----------------------

func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.UserEdit, views.UserData{User: user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var form forms.UserForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	form.Apply(user)
	if err := h.users.Update(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/users/%d", user.ID)
}

// ---------------------- DELETE ----------------------

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := id(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), userID); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/users")
}

func (h *UserHandler) load(r *http.Request) (*models.User, error) {
	userID, err := id(r)
	if err != nil {
		return nil, err
	}
	return h.users.ByID(r.Context(), userID)
}
