package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags so the
// password hash can never leak into a response.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	FirstName    – given name supplied at signup.
//	LastName     – family name supplied at signup.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Phone        – optional contact number (nullable).
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           int64     // users.id
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	Email        string    // users.email
	PasswordHash string    // users.password
	Phone        *string   // users.phone (nullable)
	CreatedAt    time.Time // users.created_at
}
