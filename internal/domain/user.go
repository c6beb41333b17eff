package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Membership string

const (
	MembershipBasic  Membership = "basic"
	MembershipSilver Membership = "silver"
	MembershipGold   Membership = "gold"
)

type User struct {
	ID          int
	Name        string
	Email       string
	Phone       string
	Password    password
	Location    UserLocation
	Preferences Preferences
	Points      int
	Membership  Membership
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int
}

type UserLocation struct {
	City        string
	Coordinates *Coordinates
}

type Preferences struct {
	FavoriteGenres    []string    `json:"favoriteGenres"`
	PreferredLanguage string      `json:"preferredLanguage"`
	BudgetRange       BudgetRange `json:"budgetRange"`
}

type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
}
