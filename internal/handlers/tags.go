package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/blogly/internal/forms"
	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/store"
	"github.com/vaughan-dsouza/blogly/internal/utils"
	"github.com/vaughan-dsouza/blogly/internal/views"
)

type TagHandler struct {
	responder
	posts store.PostRepository
	tags  store.TagRepository
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.TagList, views.TagListData{Tags: tags})
}

func (h *TagHandler) Show(w http.ResponseWriter, r *http.Request) {
	tag, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	posts, err := h.posts.ListByTag(r.Context(), tag.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.TagDetail, views.TagData{Tag: tag, Posts: posts})
}

func (h *TagHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.TagNew, nil)
}

// Create answers a name collision with 409 and leaves the existing tag as is.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form forms.TagForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	tag := models.Tag{Name: form.Name}
	if err := h.tags.Create(r.Context(), &tag); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/tags")
}

func (h *TagHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	tag, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, views.TagEdit, views.TagData{Tag: tag})
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	tag, err := h.load(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var form forms.TagForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	tag.Name = form.Name
	if err := h.tags.Update(r.Context(), tag); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/tags/%d", tag.ID)
}

// Delete removes the tag's links; the posts themselves stay.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tagID, err := id(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.tags.Delete(r.Context(), tagID); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.Redirect(w, r, "/tags")
}

func (h *TagHandler) load(r *http.Request) (*models.Tag, error) {
	tagID, err := id(r)
	if err != nil {
		return nil, err
	}
	return h.tags.ByID(r.Context(), tagID)
}
