package model

// User is a row of the users table.
//
// Password holds the plaintext value the store keeps and is never
// serialized.
type User struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email,omitempty"`
	Password string `json:"-"`
}
