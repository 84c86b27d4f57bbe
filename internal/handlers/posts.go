package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/blogly/internal/forms"
	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/store"
	"github.com/vaughan-dsouza/blogly/internal/utils"
	"github.com/vaughan-dsouza/blogly/internal/views"
)

type PostHandler struct {
	responder
	users store.UserRepository
	posts store.PostRepository
	tags  store.TagRepository
}

// ---------------------- CREATE ----------------------

// NewForm is mounted under /users/{id}: the id names the author.
func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.author(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	all, err := h.tags.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.PostNew, views.PostFormData{User: user, AllTags: all})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := h.author(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var form forms.PostForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	post := models.Post{UserID: user.ID}
	form.Apply(&post)
	if err := h.posts.Create(r.Context(), &post, form.Tags); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/users/%d", user.ID)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	post, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.ByID(r.Context(), post.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	tags, err := h.tags.ListByPost(r.Context(), post.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.PostDetail, views.PostData{Post: post, User: user, Tags: tags})
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current, err := h.tags.ListByPost(r.Context(), post.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	all, err := h.tags.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	checked := make(map[string]bool, len(current))
	for _, t := range current {
		checked[t.Name] = true
	}
	h.render(w, r, views.PostEdit, views.PostFormData{Post: post, AllTags: all, Checked: checked})
}

// Update overwrites title and content and reconciles the tag links with the
// submitted tag names.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	post, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var form forms.PostForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	form.Apply(post)
	if err := h.posts.Update(r.Context(), post, form.Tags); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/posts/%d", post.ID)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := id(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	userID, err := h.posts.Delete(r.Context(), postID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/users/%d", userID)
}

func (h *PostHandler) load(r *http.Request) (*models.Post, error) {
	postID, err := id(r)
	if err != nil {
		return nil, err
	}
	return h.posts.ByID(r.Context(), postID)
}

func (h *PostHandler) author(r *http.Request) (*models.User, error) {
	userID, err := id(r)
	if err != nil {
		return nil, err
	}
	return h.users.ByID(r.Context(), userID)
}
