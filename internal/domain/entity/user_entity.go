package entity

// User is a registered member of the board.
//
// Password holds a bcrypt hash, never the plain credential. CreatedAt is unix
// seconds and is set once, on first save.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
	Role        string `json:"role,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// FullName joins given and family name.
func (u User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
