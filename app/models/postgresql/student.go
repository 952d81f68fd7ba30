package models

import "time"

type Student struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	DNI        string     `json:"dni"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	EnrolledOn *time.Time `json:"enrolled_on"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateStudentRequest is the body of POST /students. EnrolledOn uses YYYY-MM-DD.
type CreateStudentRequest struct {
	Code       string  `json:"code"`
	DNI        string  `json:"dni"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	EnrolledOn *string `json:"enrolled_on"`
}

// StudentPatch lists the columns a student update may touch. Nil fields are
// left unchanged.
type StudentPatch struct {
	Code       *string    `json:"code"`
	DNI        *string    `json:"dni"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	EnrolledOn *time.Time `json:"-"`
}

// Empty reports whether the patch would change nothing.
func (p StudentPatch) Empty() bool {
	return p.Code == nil && p.DNI == nil && p.FirstName == nil && p.LastName == nil &&
		p.Email == nil && p.Phone == nil && p.EnrolledOn == nil
}

// UpdateStudentRequest is the body of PUT /students/:id.
type UpdateStudentRequest struct {
	StudentPatch
	EnrolledOn *string `json:"enrolled_on"`
}
