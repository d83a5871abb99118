// Package forms validates and normalizes externally supplied post and
// comment submissions before they reach the repositories. A form that
// validates builds a transient entity; the caller stamps author, post and
// timestamp fields before persisting. Validation failure yields per-field
// messages so handlers can echo the submitted values back with the errors,
// and never results in a partially persisted entity.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"scribe/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a submitted field name to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// AsFieldErrors extracts FieldErrors from err if present.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// PostForm carries an externally supplied post submission.
type PostForm struct {
	Text     string `json:"text" validate:"required,max=200"`
	GroupID  *uint  `json:"group_id" validate:"omitempty,gt=0"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// Validate reports all field problems at once, or nil when the form is clean.
func (f *PostForm) Validate() error {
	f.Text = strings.TrimSpace(f.Text)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	if err := validate.Struct(f); err != nil {
		return collectFieldErrors(err)
	}
	return nil
}

// Post builds a transient entity from the validated form. Author and
// timestamps are stamped by the caller.
func (f *PostForm) Post() *models.Post {
	return &models.Post{
		Text:     f.Text,
		GroupID:  f.GroupID,
		ImageURL: f.ImageURL,
	}
}

// CommentForm carries an externally supplied comment submission.
type CommentForm struct {
	Text string `json:"text" validate:"required,max=200"`
}

// Validate reports all field problems at once, or nil when the form is clean.
func (f *CommentForm) Validate() error {
	f.Text = strings.TrimSpace(f.Text)
	if err := validate.Struct(f); err != nil {
		return collectFieldErrors(err)
	}
	return nil
}

// Comment builds a transient entity from the validated form. Author, post and
// timestamp are stamped by the caller.
func (f *CommentForm) Comment() *models.Comment {
	return &models.Comment{
		Text: f.Text,
	}
}

// collectFieldErrors flattens validator errors into per-field messages keyed
// by the json field name.
func collectFieldErrors(err error) error {
	fieldErrs := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrs.Add("form", err.Error())
		return fieldErrs
	}

	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		fieldErrs.Add(field, fieldMessage(field, fe))
	}
	return fieldErrs
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Text":
		return "text"
	case "GroupID":
		return "group_id"
	case "ImageURL":
		return "image_url"
	}
	return strings.ToLower(structField)
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "gt":
		return field + " is invalid"
	}
	return field + " is invalid"
}
