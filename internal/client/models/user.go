package models

import "github.com/dmitrijs2005/nekolist/internal/timex"

// User is a registered account as returned by register and login.
// The password is write-only and never part of a read response.
type User struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Country   string           `json:"country,omitempty"`
	Hobby     string           `json:"hobby,omitempty"`
	CreatedAt *timex.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *timex.Timestamp `json:"updated_at,omitempty"`
}

// UserDetail is the user detail page payload.
type UserDetail struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Country   string           `json:"country,omitempty"`
	Hobby     string           `json:"hobby,omitempty"`
	CreatedAt *timex.Timestamp `json:"created_at,omitempty"`
}

// UserInfo is the owner projection the server embeds in a Cat.
type UserInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Hobby   string `json:"hobby,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country,omitempty"`
	Hobby    string `json:"hobby,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Message is a bare confirmation, e.g. the DELETE /cats/{id} response.
type Message struct {
	Message string `json:"message"`
}
