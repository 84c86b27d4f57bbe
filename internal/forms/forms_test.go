package forms_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/blogly/internal/forms"
	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/utils"
)

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestUserForm(t *testing.T) {
	var f forms.UserForm
	err := utils.DecodeForm(postForm(url.Values{
		"first-name": {" Honey "},
		"last-name":  {"Milk"},
		"image-url":  {""},
	}), &f)
	require.NoError(t, err)
	assert.Equal(t, "Honey", f.FirstName)

	u := models.User{ID: 7, ImageURL: "https://old.example.com/x.png"}
	f.Apply(&u)
	assert.Equal(t, models.User{ID: 7, FirstName: "Honey", LastName: "Milk"}, u)
}

func TestUserFormMissingFields(t *testing.T) {
	var f forms.UserForm
	err := utils.DecodeForm(postForm(url.Values{
		"first-name": {"   "},
		"image-url":  {"not a url"},
	}), &f)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"first-name": "is required",
		"last-name":  "is required",
		"image-url":  "must be a valid URL",
	}, verr.Fields)
}

func TestPostFormTags(t *testing.T) {
	var f forms.PostForm
	err := utils.DecodeForm(postForm(url.Values{
		"title":   {"Hello"},
		"content": {"World"},
		"tags":    {"x", "y"},
		"extra":   {"ignored"},
	}), &f)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, f.Tags)

	var noTags forms.PostForm
	require.NoError(t, utils.DecodeForm(postForm(url.Values{"title": {"a"}, "content": {"b"}}), &noTags))
	assert.Empty(t, noTags.Tags)
}

func TestPostFormMissingContent(t *testing.T) {
	var f forms.PostForm
	err := utils.DecodeForm(postForm(url.Values{"title": {"Hello"}}), &f)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "content")
	assert.NotContains(t, verr.Fields, "title")
}

func TestTagForm(t *testing.T) {
	var f forms.TagForm
	require.NoError(t, utils.DecodeForm(postForm(url.Values{"name": {" fun "}}), &f))
	assert.Equal(t, "fun", f.Name)

	var empty forms.TagForm
	var verr *utils.ValidationError
	require.ErrorAs(t, utils.DecodeForm(postForm(url.Values{}), &empty), &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
}
