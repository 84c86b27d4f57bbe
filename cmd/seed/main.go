// Command seed resets the blog schema and fills it with demo content.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/vaughan-dsouza/blogly/internal/config"
	"github.com/vaughan-dsouza/blogly/internal/db"
	"github.com/vaughan-dsouza/blogly/internal/models"
	"github.com/vaughan-dsouza/blogly/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(cfg.DatabaseURL, cfg.DB)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := db.ResetSchema(ctx, conn); err != nil {
		log.Fatalf("reset schema: %v", err)
	}

	st := store.New(conn, cfg.DefaultImageURL)
	if err := seed(ctx, st); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed complete")
}

func seed(ctx context.Context, st *store.Store) error {
	matt := &models.User{FirstName: "Matt", LastName: "Campbell", ImageURL: "https://avatars.githubusercontent.com/u/114436937?v=4"}
	caroline := &models.User{FirstName: "Caroline", LastName: "Redmond"}
	for _, u := range []*models.User{matt, caroline} {
		if err := st.Users.Create(ctx, u); err != nil {
			return err
		}
	}

	for _, name := range []string{"fun", "go", "cooking"} {
		if err := st.Tags.Create(ctx, &models.Tag{Name: name}); err != nil {
			return err
		}
	}

	posts := []struct {
		post models.Post
		tags []string
	}{
		{models.Post{UserID: matt.ID, Title: "First post", Content: "Hello from Blogly."}, []string{"fun"}},
		{models.Post{UserID: matt.ID, Title: "Templates", Content: "Rendering pages on the server."}, []string{"go", "fun"}},
		{models.Post{UserID: caroline.ID, Title: "Soup", Content: "A recipe for a cold day."}, []string{"cooking"}},
	}
	for _, p := range posts {
		if err := st.Posts.Create(ctx, &p.post, p.tags); err != nil {
			return err
		}
	}
	return nil
}
