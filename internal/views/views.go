// Package views renders the HTML pages of the blog.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	UserList   = "user_list.html"
	UserDetail = "user_detail.html"
	UserNew    = "user_new.html"
	UserEdit   = "user_edit.html"
	PostDetail = "post_detail.html"
	PostNew    = "post_new.html"
	PostEdit   = "post_edit.html"
	TagList    = "tag_list.html"
	TagDetail  = "tag_detail.html"
	TagNew     = "tag_new.html"
	TagEdit    = "tag_edit.html"
	ErrorPage  = "error.html"
)

type UserListData struct {
	Users []models.User
}

type UserData struct {
	User  *models.User
	Posts []models.Post
}

type PostData struct {
	Post *models.Post
	User *models.User
	Tags []models.Tag
}

// PostFormData drives both the new and edit post forms. Checked holds the
// names of tags that start selected.
type PostFormData struct {
	User    *models.User
	Post    *models.Post
	AllTags []models.Tag
	Checked map[string]bool
}

type TagListData struct {
	Tags []models.Tag
}

type TagData struct {
	Tag   *models.Tag
	Posts []models.Post
}

type ErrorData struct {
	Status  int
	Title   string
	Message string
	Fields  map[string]string
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		page := path.Base(name)
		if page == "layout.html" {
			continue
		}
		t, err := template.ParseFS(fsys, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into a buffer and writes it with status. Nothing is
// written if the template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("views: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("views: render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
