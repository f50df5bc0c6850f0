// Package validation wraps go-playground/validator for request payloads.
// Field names are reported by their JSON names and the first failing field
// is turned into a single human readable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/recipe-blog-api/internal/model"
)

// imageURL matches the image links accepted for recipes and blog posts.
var imageURL = regexp.MustCompile(`(?i)^https?://.*\.(jpg|jpeg|png|gif|bmp)$`)

// messages maps "field.tag" (or just "field" for any tag) to the message
// returned to the client.
var messages = map[string]string{
	"username.required":            "Username is required",
	"email.required":               "Email is required",
	"email.email":                  "Invalid email",
	"password.required":            "Password is required",
	"password.max":                 "Password must be at most 72 bytes",
	"role.role":                    "Invalid role",
	"recipe_name.required":         "Recipe name is required",
	"recipe_name.min":              "Recipe name must be at least 3 characters",
	"recipe_name.max":              "Recipe name must be at most 100 characters",
	"category.required":            "Category is required",
	"image.required":               "Image is required",
	"image.imageurl":               "Invalid image URL",
	"prep_time.required":           "Preparation time is required",
	"recipe_making_time.required":  "Recipe making time is required",
	"ingredients.required":         "Ingredients are required",
	"ingredients.min":              "Ingredients are required",
	"recipe_instructions.required": "Recipe instructions are required",
	"steps":                        "Recipe instructions are required",
	"nutrition.required":           "Nutrition details are required",
	"privacy.oneof":                "Privacy must be public or private",
	"title.required":               "Title is required",
	"content.required":             "Content is required",
	"description.required":         "Description is required",
	"text.required":                "Comment text is required",
	"rating":                       fmt.Sprintf("Rating must be between %d and %d", model.MinRating, model.MaxRating),
}

// fallback messages keyed by tag; %s is the field name, %v the tag param.
var fallback = map[string]string{
	"required": "%s is required",
	"min":      "%s must be at least %v",
	"max":      "%s must be at most %v",
	"gte":      "%s must be greater than or equal to %v",
	"lte":      "%s must be less than or equal to %v",
	"oneof":    "%s must be one of: %v",
	"email":    "%s must be a valid email address",
	"imageurl": "%s must be an image URL",
}

// FieldError is the first validation failure of a payload.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with JSON field naming and the imageurl, role
// and rating rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return ValidImageURL(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.ValidRole(fl.Field().String())
	})
	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= model.MinRating && n <= model.MaxRating
	})
	return &Validator{v: v}
}

// Validate checks i and returns a *FieldError for the first failing field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	if format, ok := fallback[fe.Tag()]; ok {
		if strings.Count(format, "%") == 2 {
			return fmt.Sprintf(format, fe.Field(), fe.Param())
		}
		return fmt.Sprintf(format, fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// ValidImageURL reports whether s is an accepted image link.
func ValidImageURL(s string) bool { return imageURL.MatchString(s) }
