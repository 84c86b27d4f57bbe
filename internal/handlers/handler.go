package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/blogly/internal/store"
	"github.com/vaughan-dsouza/blogly/internal/utils"
	"github.com/vaughan-dsouza/blogly/internal/views"
)

type Handler struct {
	Users *UserHandler
	Posts *PostHandler
	Tags  *TagHandler

	pages responder
}

func NewHandler(users store.UserRepository, posts store.PostRepository, tags store.TagRepository, v *views.Renderer) *Handler {
	pages := responder{views: v}
	return &Handler{
		Users: &UserHandler{responder: pages, users: users, posts: posts},
		Posts: &PostHandler{responder: pages, users: users, posts: posts, tags: tags},
		Tags:  &TagHandler{responder: pages, posts: posts, tags: tags},
		pages: pages,
	}
}

// Routes mounts every page and form endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.List)
		r.Get("/new", h.Users.NewForm)
		r.Post("/new", h.Users.Create)
		r.Get("/{id}", h.Users.Show)
		r.Get("/{id}/edit", h.Users.EditForm)
		r.Post("/{id}/edit", h.Users.Update)
		r.Post("/{id}/delete", h.Users.Delete)
		r.Get("/{id}/posts/new", h.Posts.NewForm)
		r.Post("/{id}/posts/new", h.Posts.Create)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/{id}", h.Posts.Show)
		r.Get("/{id}/edit", h.Posts.EditForm)
		r.Post("/{id}/edit", h.Posts.Update)
		r.Post("/{id}/delete", h.Posts.Delete)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.Tags.List)
		r.Get("/new", h.Tags.NewForm)
		r.Post("/new", h.Tags.Create)
		r.Get("/{id}", h.Tags.Show)
		r.Get("/{id}/edit", h.Tags.EditForm)
		r.Post("/{id}/edit", h.Tags.Update)
		r.Post("/{id}/delete", h.Tags.Delete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.pages.fail(w, r, store.ErrNotFound)
	})
}

// Health reports 200 while ping succeeds and 503 otherwise.
func Health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := ping(r.Context()); err != nil {
			log.Printf("healthz: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable\n"))
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	}
}

// responder renders pages and turns errors into error pages.
type responder struct {
	views *views.Renderer
}

func (rs responder) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := rs.views.Render(w, http.StatusOK, page, data); err != nil {
		rs.fail(w, r, err)
	}
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	page := views.ErrorData{Status: http.StatusInternalServerError, Title: "Something went wrong"}

	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Status, page.Title = http.StatusBadRequest, "Invalid form"
		page.Fields = verr.Fields
	case errors.Is(err, store.ErrNotFound):
		page.Status, page.Title = http.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrUnknownTag):
		page.Status, page.Title = http.StatusBadRequest, "Unknown tag"
		page.Message = err.Error()
	case errors.Is(err, store.ErrDuplicateTag):
		page.Status, page.Title = http.StatusConflict, "Tag already exists"
		page.Message = err.Error()
	default:
		log.Printf("[%s] %s %s: %v", chimw.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	}

	if rerr := rs.views.Render(w, page.Status, views.ErrorPage, page); rerr != nil {
		log.Printf("render error page: %v", rerr)
		http.Error(w, http.StatusText(page.Status), page.Status)
	}
}

// id reads the {id} path parameter; a malformed id is reported as not found.
func id(r *http.Request) (int64, error) {
	v, ok := utils.IDParam(r, "id")
	if !ok {
		return 0, store.ErrNotFound
	}
	return v, nil
}
