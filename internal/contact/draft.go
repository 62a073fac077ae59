package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrUnknownField is returned when an update names a field the draft does not have.
var ErrUnknownField = errors.New("contact: unknown field")

// ErrIncomplete is matched by IncompleteError.
var ErrIncomplete = errors.New("contact: draft is incomplete")

// Field names one of the draft's inputs.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the draft inputs in form order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ParseField maps an input name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.TrimSpace(name)); f {
	case FieldName, FieldEmail, FieldMessage:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Draft is the unsent content of the contact form.
type Draft struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Message string `json:"message" form:"message" validate:"required"`
}

// With returns a copy of d with field set to value.
func (d Draft) With(field Field, value string) (Draft, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldMessage:
		d.Message = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return d, nil
}

// Value returns the current text of field.
func (d Draft) Value(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldMessage:
		return d.Message
	}
	return ""
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Params is the template payload relayed to the provider.
func (d Draft) Params() map[string]any {
	return map[string]any{
		string(FieldName):    d.Name,
		string(FieldEmail):   d.Email,
		string(FieldMessage): d.Message,
	}
}

// IncompleteError maps each failing field to a readable reason.
type IncompleteError map[Field]string

func (e IncompleteError) Error() string {
	if len(e) == 0 {
		return ErrIncomplete.Error()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return ErrIncomplete.Error()
	}
	return ErrIncomplete.Error() + ": " + string(b)
}

func (e IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// Gate checks a draft before it may be dispatched: every field present and
// the email shaped like an address.
type Gate struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewGate constructs a Gate with English messages.
func NewGate() (*Gate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("contact: english translator not found")
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Gate{validate: validate, translator: trans}, nil
}

// Check returns an IncompleteError when d may not be sent.
func (g *Gate) Check(d Draft) error {
	err := g.validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(IncompleteError, len(verrs))
	for _, fe := range verrs {
		out[Field(fe.Field())] = fe.Translate(g.translator)
	}
	return out
}
