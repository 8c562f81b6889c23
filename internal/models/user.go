package models

type Role string

const (
	RoleStudent    Role = "student"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ParseRole returns the closed role value for a wire string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Role       Role   `db:"role" json:"role"`
	Department string `db:"department" json:"department"`
	Phone      string `db:"phone" json:"phone,omitempty"`
	IsActive   bool   `db:"is_active" json:"isActive"`

	// Student fields.
	MatricNumber *string `db:"matric_number" json:"matricNumber,omitempty"`
	Level        *string `db:"level" json:"level,omitempty"`

	// Supervisor fields.
	Title          *string `db:"title" json:"title,omitempty"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

func (u User) IsStudent() bool    { return u.Role == RoleStudent }
func (u User) IsSupervisor() bool { return u.Role == RoleSupervisor }
func (u User) IsAdmin() bool      { return u.Role == RoleAdmin }
