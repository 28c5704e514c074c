// Package model defines domain entities for the application.
package model

// User represents a customer. Orders belong to a user and are removed with it.
type User struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Email   string  `json:"email"`
}

// UserInput carries the fields of a new user.
// Nil required fields are passed through so the store can reject them.
type UserInput struct {
	Name    *string
	Address *string
	Email   *string
}

// UserPatch lists the mutable user fields. Only set fields are written.
type UserPatch struct {
	Name    Optional[string]
	Address Optional[string]
	Email   Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Address.Set && !p.Email.Set
}
