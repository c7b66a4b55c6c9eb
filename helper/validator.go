package helper

import (
	"errors"
	"strings"

	"blog-service/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// Validator wraps validator.v9 with an English translator so rule
// violations turn into readable messages.
type Validator struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewValidator() (*Validator, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{Validate: validate, Translator: trans}, nil
}

// Check validates v and returns a models validation error listing every
// violated rule.
func (u *Validator) Check(v interface{}) error {
	err := u.Validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return models.ValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(u.Translator))
	}
	return models.ValidationError(strings.Join(messages, ", "))
}
