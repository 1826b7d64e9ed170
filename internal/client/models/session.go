package models

// Session is the locally cached identity of the signed-in user.
// It never holds a password.
type Session struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country,omitempty"`
	Hobby   string `json:"hobby,omitempty"`
}

func SessionFromUser(u User) Session {
	return Session{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Country: u.Country,
		Hobby:   u.Hobby,
	}
}

// Valid reports whether the session identifies a server-assigned user.
func (s Session) Valid() bool {
	return s.ID > 0
}
