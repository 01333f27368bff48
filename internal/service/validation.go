package service

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	maxUsernameLength = 20
	maxEmailLength    = 120
	maxTitleLength    = 100
	maxCategoryLength = 50
)

// ArticleInput carries the editable fields of an article
type ArticleInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Category   string     `json:"category"`
	DatePosted *time.Time `json:"date_posted,omitempty"`
}

func (in *ArticleInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
}

func (in *ArticleInput) validate(categories []string) error {
	allowed := make([]interface{}, len(categories))
	for i, c := range categories {
		allowed[i] = c
	}

	return newValidationError(validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, maxTitleLength).Error("title must be at most 100 characters"),
		),
		validation.Field(&in.Content,
			validation.By(notBlank("content is required")),
		),
		validation.Field(&in.Category,
			validation.Required.Error("category is required"),
			validation.RuneLength(1, maxCategoryLength),
			validation.In(allowed...).Error("category is not one of the configured categories"),
		),
	))
}

// AdministratorInput carries the editable fields of an administrator. An
// empty Password on update keeps the existing hash.
type AdministratorInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *AdministratorInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
}

func (in *AdministratorInput) validate(passwordRequired bool) error {
	return newValidationError(validation.ValidateStruct(in,
		validation.Field(&in.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, maxUsernameLength).Error("username must be at most 20 characters"),
		),
		validation.Field(&in.Email,
			validation.Required.Error("email is required"),
			validation.RuneLength(1, maxEmailLength).Error("email must be at most 120 characters"),
			is.EmailFormat.Error("email is not a valid address"),
		),
		validation.Field(&in.Password,
			validation.When(passwordRequired, validation.Required.Error("password is required")),
		),
	))
}

// ContactInput is a contact form submission
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
}

func (in *ContactInput) validate() error {
	return newValidationError(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email, validation.Required.Error("email is required")),
		validation.Field(&in.Message, validation.Required.Error("message is required")),
	))
}

func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", message)
		}
		return nil
	}
}
