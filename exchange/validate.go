package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// MaxDocumentSize is the largest import accepted, in bytes.
const MaxDocumentSize = 5 * 1024 * 1024

// maxReportedIssues bounds the issues named in ValidationError.Error.
const maxReportedIssues = 3

// Issue is one offending field. Path uses the JSON names, e.g.
// "daysData[2026-03-02].dayStatus".
type Issue struct {
	Path    string
	Message string
}

// ValidationError rejects a whole document. Nothing from it is imported.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	shown := e.Issues
	if len(shown) > maxReportedIssues {
		shown = shown[:maxReportedIssues]
	}
	parts := make([]string, 0, len(shown))
	for _, i := range shown {
		if i.Path == "" {
			parts = append(parts, i.Message)
			continue
		}
		parts = append(parts, i.Path+": "+i.Message)
	}
	return "invalid document: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return generic.ErrInvalidDocument
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := generic.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := timesheet.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// Decode reads at most MaxDocumentSize bytes and returns the validated
// document. Oversized input fails with generic.ErrDocumentTooLarge, anything
// else with a *ValidationError.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return Document{}, fmt.Errorf("%w: limit is %d bytes", generic.ErrDocumentTooLarge, MaxDocumentSize)
	}

	var doc Document
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return Document{}, &ValidationError{Issues: []Issue{{Message: jsonMessage(err)}}}
	}
	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func jsonMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return "malformed JSON: " + err.Error()
}

// Validate checks the document schema and that every daysData key matches
// the date of its record.
func Validate(doc Document) error {
	var issues []Issue
	if err := validatePart(doc); err != nil {
		issues = err.Issues
	}

	keys := make([]string, 0, len(doc.DaysData))
	for k := range doc.DaysData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if d := doc.DaysData[k]; d != nil && d.Date != "" && d.Date != k {
			issues = append(issues, Issue{
				Path:    "daysData[" + k + "].date",
				Message: fmt.Sprintf("does not match key (%s)", d.Date),
			})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ValidateConfig checks a config on its own, as submitted from settings.
func ValidateConfig(dto ConfigDTO) error {
	if err := validatePart(dto); err != nil {
		return err
	}
	return nil
}

// ValidateDay checks a single day record submitted for editing.
func ValidateDay(dto DayDTO) error {
	if err := validatePart(dto); err != nil {
		return err
	}
	return nil
}

// validatePart runs the struct tags and collects every failure.
func validatePart(v any) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Path: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return &ValidationError{Issues: issues}
}

func fieldPath(fe validator.FieldError) string {
	// Namespace starts with the root type name.
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return "must have at most " + fe.Param() + " elements or characters"
		}
		return "must be at most " + fe.Param()
	case "isodate":
		return "invalid date, expected YYYY-MM-DD"
	case "hhmm":
		return "invalid time, expected HH:MM"
	}
	return "failed " + fe.Tag()
}
