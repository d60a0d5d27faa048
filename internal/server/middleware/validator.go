package middleware

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	commonTags := []string{
		"json",
		"param",
		"query",
		"header",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	// scrape_url accepts only absolute http/https URLs; scrape requests are
	// rejected before anything is dispatched to the backend.
	validate.RegisterValidation("scrape_url", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		if err := validate.Var(raw, "required,url"); err != nil {
			return false
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			return false
		}
		return parsed.Scheme == "http" || parsed.Scheme == "https"
	})

	return &Validator{
		validate: validate,
	}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
