package portal

import (
	"github.com/go-playground/validator/v10"

	"github.com/Ramcharan123-lang/hackthon/core"
)

// User types
const (
	UserTypeAdmin   = "admin"
	UserTypeStudent = "student"
)

// Account is a portal login identity. Email is the unique key; IDs are
// assigned by the storage gateway. Passwords are stored as-is for
// compatibility with the existing deployment.
type Account struct {
	ID              int    `json:"id"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	UserType        string `json:"userType"`
	ProfileComplete bool   `json:"profileComplete"`
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`

	// student fields
	StudentID    string   `json:"studentId,omitempty"`
	AcademicYear string   `json:"academicYear,omitempty"`
	Branch       string   `json:"branch,omitempty"`
	GroupNumber  string   `json:"groupNumber,omitempty"`
	AverageGrade *float64 `json:"averageGrade,omitempty"` // admin-assigned only

	// admin fields
	Department string `json:"department,omitempty"`
}

func (acc *Account) IsAdmin() bool {
	return acc.UserType == UserTypeAdmin
}

func (acc *Account) IsStudent() bool {
	return acc.UserType == UserTypeStudent
}

// CheckPassword compares the given password with the stored one.
func (acc *Account) CheckPassword(pwd string) bool {
	return acc.Password != "" && acc.Password == pwd
}

// NewAccount contains information needed to register a new Account.
type NewAccount struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	UserType        string `json:"userType" validate:"required,oneof=admin student"`
	ProfileComplete bool   `json:"profileComplete"`
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"omitempty,min=10"`
	StudentID       string `json:"studentId"`
	AcademicYear    string `json:"academicYear"`
	Branch          string `json:"branch"`
	GroupNumber     string `json:"groupNumber"`
	Department      string `json:"department"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true)
	return validate.Struct(na)
}

// Account builds the Account to be created. Fresh registrations start with an
// incomplete profile; admin-created accounts skip profile setup.
func (na NewAccount) Account() Account {
	return Account{
		Email:           na.Email,
		Password:        na.Password,
		UserType:        na.UserType,
		ProfileComplete: na.ProfileComplete,
		Name:            na.Name,
		Phone:           na.Phone,
		StudentID:       na.StudentID,
		AcademicYear:    na.AcademicYear,
		Branch:          na.Branch,
		GroupNumber:     na.GroupNumber,
		Department:      na.Department,
	}
}

// Project is an admin-published project students submit work against.
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"` // admin email
	AssignedTo  []string `json:"assignedTo,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Submission is a student's work handed in for a project.
type Submission struct {
	ID           int      `json:"id"`
	ProjectID    int      `json:"projectId,omitempty"`
	StudentEmail string   `json:"studentEmail,omitempty"`
	Content      string   `json:"content,omitempty"`
	FileName     string   `json:"fileName,omitempty"`
	SubmittedAt  string   `json:"submittedAt,omitempty"`
	Grade        *float64 `json:"grade,omitempty"`
	Feedback     string   `json:"feedback,omitempty"`
}

// Task is a personal to-do item on a dashboard.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
}

// Message is a note sent between portal users.
type Message struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	To      string `json:"to,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	SentAt  string `json:"sentAt,omitempty"`
	Read    bool   `json:"read,omitempty"`
}
