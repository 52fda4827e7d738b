package models

// User defines the user model based on the 'users' table
type User struct {
	ID       int64  `json:"id" db:"id" example:"1"`                     // Unique identifier for the user
	Username string `json:"username" db:"username" example:"jdoe"`      // Unique login name
	Password string `json:"-" db:"password"`                            // Hashed password (excluded from JSON)
	Role     Role   `json:"role" db:"role" example:"student"`           // User's role (student, faculty or admin)
	FullName string `json:"fullName" db:"full_name" example:"John Doe"` // User's display name
	Email    string `json:"email" db:"email" example:"jdoe@campus.edu"` // User's email address
}
