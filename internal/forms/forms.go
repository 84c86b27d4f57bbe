// Package forms declares the typed bodies accepted by the HTML forms.
package forms

import (
	"strings"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

type UserForm struct {
	FirstName string `form:"first-name" validate:"required,max=100"`
	LastName  string `form:"last-name" validate:"required,max=100"`
	ImageURL  string `form:"image-url" validate:"omitempty,url"`
}

func (f *UserForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

// Apply overwrites every mutable field of u. A blank image is left for the
// store to default.
func (f *UserForm) Apply(u *models.User) {
	u.FirstName = f.FirstName
	u.LastName = f.LastName
	u.ImageURL = f.ImageURL
}

type PostForm struct {
	Title   string   `form:"title" validate:"required,max=200"`
	Content string   `form:"content" validate:"required"`
	Tags    []string `form:"tags" validate:"dive,required"`
}

func (f *PostForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
}

func (f *PostForm) Apply(p *models.Post) {
	p.Title = f.Title
	p.Content = f.Content
}

type TagForm struct {
	Name string `form:"name" validate:"required,max=50"`
}

func (f *TagForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}
