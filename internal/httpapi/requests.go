package httpapi

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal/snippets"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
	_ = validate.RegisterValidation("trimmedemail", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		email := strings.TrimSpace(field.String())
		if email == "" || len(email) > 254 {
			return false
		}
		return validate.Var(email, "email") == nil
	})
	_ = validate.RegisterValidation("maxlines", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return strings.Count(field.String(), "\n")+1 <= limit
	})
}

var snippetFieldMessages = map[string]map[string]string{
	"Title": {
		"max": "title is too long",
	},
	"FileName": {
		"max": "file_name is too long",
	},
	"Content": {
		"max":      "content is too long",
		"maxlines": "content has too many lines",
	},
	"Visibility": {
		"oneof": "visibility is invalid",
	},
}

// SnippetCreateDTO only checks shape. Missing fields are reported by the
// admission check so create and update share one message set.
type SnippetCreateDTO struct {
	Title      string `json:"title" validate:"max=255"`
	FileName   string `json:"file_name" validate:"max=255"`
	Content    string `json:"content" validate:"max=250000,maxlines=5000"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private internal public PRIVATE INTERNAL PUBLIC"`
}

func (r *SnippetCreateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, snippetFieldMessages, "invalid request")
	}
	return nil
}

// Request maps the DTO onto the service input. Visibility defaults to
// private when omitted.
func (r *SnippetCreateDTO) Request() snippets.CreateSnippetRequest {
	level := visibility.Private
	if r.Visibility != "" {
		level, _ = visibility.Parse(r.Visibility)
	}
	return snippets.CreateSnippetRequest{
		Title:      r.Title,
		FileName:   r.FileName,
		Content:    r.Content,
		Visibility: level,
	}
}

type SnippetUpdateDTO struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=255"`
	FileName   *string `json:"file_name,omitempty" validate:"omitempty,max=255"`
	Content    *string `json:"content,omitempty" validate:"omitempty,max=250000,maxlines=5000"`
	Visibility *string `json:"visibility,omitempty" validate:"omitempty,oneof=private internal public PRIVATE INTERNAL PUBLIC"`
}

func (r *SnippetUpdateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, snippetFieldMessages, "invalid request")
	}
	return nil
}

func (r *SnippetUpdateDTO) Request() snippets.UpdateSnippetRequest {
	req := snippets.UpdateSnippetRequest{
		Title:    r.Title,
		FileName: r.FileName,
		Content:  r.Content,
	}
	if r.Visibility != nil {
		level, _ := visibility.Parse(*r.Visibility)
		req.Visibility = &level
	}
	return req
}

type ProjectCreateDTO struct {
	Name       string `json:"name" validate:"required,notblank,max=255"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private internal public PRIVATE INTERNAL PUBLIC"`
}

func (r *ProjectCreateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Name": {
				"required": "name is required",
				"notblank": "name is required",
				"max":      "name is too long",
			},
			"Visibility": {
				"oneof": "visibility is invalid",
			},
		}, "invalid request")
	}
	return nil
}

func (r *ProjectCreateDTO) Level() visibility.Level {
	if r.Visibility == "" {
		return visibility.Private
	}
	level, _ := visibility.Parse(r.Visibility)
	return level
}

type MemberAddDTO struct {
	UserID string `json:"user_id" validate:"required,notblank"`
}

func (r *MemberAddDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"UserID": {"*": "user_id is required"},
		}, "invalid request")
	}
	return nil
}

type UserCreateDTO struct {
	Email    string `json:"email" validate:"required,notblank,trimmedemail"`
	Password string `json:"password" validate:"required,notblank,max=72"`
}

func (r *UserCreateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Email": {
				"required":     "email and password are required",
				"notblank":     "email and password are required",
				"trimmedemail": "invalid email",
			},
			"Password": {
				"required": "email and password are required",
				"notblank": "email and password are required",
				"max":      "password is too long",
			},
		}, "invalid request")
	}
	return nil
}

type RoleUpdateDTO struct {
	Role string `json:"role" validate:"required,oneof=user admin external"`
}

func (r *RoleUpdateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Role": {"*": "invalid role"},
		}, "invalid request")
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validationMessage(err error, messages map[string]map[string]string, fallback string) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return errors.New(fallback)
	}
	for _, valErr := range valErrs {
		if fieldMessages, ok := messages[valErr.Field()]; ok {
			if msg, ok := fieldMessages[valErr.Tag()]; ok {
				return errors.New(msg)
			}
			if msg, ok := fieldMessages["*"]; ok {
				return errors.New(msg)
			}
		}
	}
	return errors.New(fallback)
}
