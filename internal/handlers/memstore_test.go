package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/store"
)

// memDB is an in-memory stand-in for the Postgres schema. It keeps the same
// rules: unique tag names, user deletes cascade to posts, post and tag deletes
// cascade to links only.
type memDB struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
	posts  map[int64]models.Post
	tags   map[int64]models.Tag
	links  map[models.PostTag]bool

	// failWith, when set, is returned by every list call.
	failWith error
}

func newMemDB() *memDB {
	return &memDB{
		users: map[int64]models.User{},
		posts: map[int64]models.Post{},
		tags:  map[int64]models.Tag{},
		links: map[models.PostTag]bool{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) tagByName(name string) (models.Tag, bool) {
	for _, t := range m.tags {
		if t.Name == name {
			return t, true
		}
	}
	return models.Tag{}, false
}

func (m *memDB) postTags(postID int64) []models.Tag {
	var out []models.Tag
	for l := range m.links {
		if l.PostID == postID {
			out = append(out, m.tags[l.TagID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type memUsers struct{ *memDB }

func (m memUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m memUsers) ByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ImageURL == "" {
		u.ImageURL = models.DefaultImageURL
	}
	u.ID = m.id()
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) Update(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	if u.ImageURL == "" {
		u.ImageURL = models.DefaultImageURL
	}
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	for pid, p := range m.posts {
		if p.UserID == id {
			m.deletePost(pid)
		}
	}
	return nil
}

type memPosts struct{ *memDB }

func (m memPosts) ByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m memPosts) list(keep func(models.Post) bool) []models.Post {
	out := []models.Post{}
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m memPosts) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(p models.Post) bool { return p.UserID == userID }), nil
}

func (m memPosts) ListByTag(ctx context.Context, tagID int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(p models.Post) bool { return m.links[models.PostTag{PostID: p.ID, TagID: tagID}] }), nil
}

func (m memPosts) resolve(names []string) ([]models.Tag, error) {
	var out []models.Tag
	for _, n := range store.Dedupe(names) {
		t, ok := m.tagByName(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", store.ErrUnknownTag, n)
		}
		out = append(out, t)
	}
	return out, nil
}

func (m memPosts) Create(ctx context.Context, p *models.Post, tagNames []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[p.UserID]; !ok {
		return store.ErrNotFound
	}
	tags, err := m.resolve(tagNames)
	if err != nil {
		return err
	}
	p.ID = m.id()
	p.CreatedAt = time.Now()
	m.posts[p.ID] = *p
	for _, t := range tags {
		m.links[models.PostTag{PostID: p.ID, TagID: t.ID}] = true
	}
	return nil
}

func (m memPosts) Update(ctx context.Context, p *models.Post, tagNames []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.posts[p.ID]
	if !ok {
		return store.ErrNotFound
	}

	var current []string
	for _, t := range m.postTags(p.ID) {
		current = append(current, t.Name)
	}
	unlink, link := store.ReconcileTags(current, tagNames)
	added, err := m.resolve(link)
	if err != nil {
		return err
	}

	p.UserID, p.CreatedAt = old.UserID, old.CreatedAt
	m.posts[p.ID] = *p
	for _, name := range unlink {
		t, _ := m.tagByName(name)
		delete(m.links, models.PostTag{PostID: p.ID, TagID: t.ID})
	}
	for _, t := range added {
		m.links[models.PostTag{PostID: p.ID, TagID: t.ID}] = true
	}
	return nil
}

func (m memPosts) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	m.deletePost(id)
	return p.UserID, nil
}

func (m *memDB) deletePost(id int64) {
	delete(m.posts, id)
	for l := range m.links {
		if l.PostID == id {
			delete(m.links, l)
		}
	}
}

type memTags struct{ *memDB }

func (m memTags) List(ctx context.Context) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Tag{}
	for _, t := range m.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memTags) ByID(ctx context.Context, id int64) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (m memTags) ListByPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.postTags(postID), nil
}

func (m memTags) Create(ctx context.Context, t *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.tagByName(t.Name); taken {
		return fmt.Errorf("%w: %q", store.ErrDuplicateTag, t.Name)
	}
	t.ID = m.id()
	m.tags[t.ID] = *t
	return nil
}

func (m memTags) Update(ctx context.Context, t *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[t.ID]; !ok {
		return store.ErrNotFound
	}
	if other, taken := m.tagByName(t.Name); taken && other.ID != t.ID {
		return fmt.Errorf("%w: %q", store.ErrDuplicateTag, t.Name)
	}
	m.tags[t.ID] = *t
	return nil
}

func (m memTags) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.tags, id)
	for l := range m.links {
		if l.TagID == id {
			delete(m.links, l)
		}
	}
	return nil
}
