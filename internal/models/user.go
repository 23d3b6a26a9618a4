package models

// User is an account that can sign in (driver or manager role)
type User struct {
	ID             int64    `json:"id" db:"id"`
	Email          string   `json:"email" db:"email"`
	Password       string   `json:"-" db:"password"`
	Name           string   `json:"name" db:"name"`
	Photo          string   `json:"photo,omitempty" db:"photo"`
	Role           string   `json:"role" db:"role"`
	ChangePassword bool     `json:"changePassword" db:"change_password"`
	CompanyID      *int64   `json:"companyId,omitempty" db:"company_id"`
	Company        *Company `json:"company,omitempty"`
}

// Company groups drivers and routes under one operator
type Company struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Logo string `json:"logo,omitempty" db:"logo"`
}
