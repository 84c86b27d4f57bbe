package models

// DefaultImageURL is used when a user is saved without an image.
const DefaultImageURL = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcR82DN9JU-hbIhhkPR-AX8KiYzA4fBMVwjLAG82fz7GLg&s"

type User struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	ImageURL  string `db:"image_url" json:"image_url"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
