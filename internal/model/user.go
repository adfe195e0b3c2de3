package model

import (
	"time"

	"github.com/google/uuid"
)

// Account holds credentials and login state. It is never exposed to other
// users; search and discovery endpoints redact it entirely.
type Account struct {
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	SessionToken       *string    `json:"-"`
	EmailConfirmed     bool       `json:"email_confirmed"`
	ResetPasswordToken *string    `json:"-"`
	PaymentID          *string    `json:"-"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

type Profile struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	City        *string    `json:"city,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Description *string    `json:"description,omitempty"`
	Interests   StringList `json:"interests"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	AvatarKey   *string    `json:"avatar_key,omitempty"`
}

type User struct {
	ID         uuid.UUID `json:"id"`
	Account    Account   `json:"account"`
	Profile    Profile   `json:"profile"`
	IsGuide    bool      `json:"is_guide"`
	IsBlocking bool      `json:"is_blocking"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasLocation reports whether both coordinates are set.
func (u *User) HasLocation() bool {
	return u.Profile.Latitude != nil && u.Profile.Longitude != nil
}

// GuideProfile is the display-safe projection returned by geo search.
type GuideProfile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Rating      *float64  `db:"rating" json:"rating,omitempty"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	Distance    float64   `db:"distance" json:"distance"`
}

// PublicProfile is what search and listing endpoints return: no account
// data, no phone, name reduced to "First L.".
type PublicProfile struct {
	ID          uuid.UUID  `json:"id"`
	DisplayName string     `json:"display_name"`
	City        *string    `json:"city,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Description *string    `json:"description,omitempty"`
	Interests   StringList `json:"interests"`
	Age         *int       `json:"age,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	IsGuide     bool       `json:"is_guide"`
}
