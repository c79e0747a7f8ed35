// Package validation checks activity forms before they reach the repository.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"

	"activities/internal/models"
)

// DefaultTimezone is used to decide what "today" means.
const DefaultTimezone = "America/Fortaleza"

const dateOnly = "2006-01-02"

// Field messages.
const (
	MsgNomeMin             = "O nome deve ter pelo menos 3 caracteres"
	MsgNomeMax             = "O nome deve ter no máximo 100 caracteres"
	MsgResponsavelMin      = "O responsável deve ter pelo menos 3 caracteres"
	MsgResponsavelMax      = "O responsável deve ter no máximo 100 caracteres"
	MsgDataPast            = "A data deve ser igual ou posterior a hoje"
	MsgDataInvalid         = "Data inválida"
	MsgDescricaoMin        = "A descrição deve ter pelo menos 10 caracteres"
	MsgDescricaoMax        = "A descrição deve ter no máximo 500 caracteres"
	MsgParticipantRequired = "O nome do participante é obrigatório"
)

var messages = map[string]map[string]string{
	"nome":        {"min": MsgNomeMin, "max": MsgNomeMax},
	"responsavel": {"min": MsgResponsavelMin, "max": MsgResponsavelMax},
	"data":        {"notpast": MsgDataPast},
	"descricao":   {"min": MsgDescricaoMin, "max": MsgDescricaoMax},
}

// ActivityInput is the raw form as submitted by a client.
type ActivityInput struct {
	Nome        string `json:"nome"`
	Responsavel string `json:"responsavel"`
	Data        string `json:"data"`
	Descricao   string `json:"descricao"`
}

// activityRules carries the constraints; lengths are counted in characters.
type activityRules struct {
	Nome        string    `json:"nome" validate:"min=3,max=100"`
	Responsavel string    `json:"responsavel" validate:"min=3,max=100"`
	Data        time.Time `json:"data" validate:"notpast"`
	Descricao   string    `json:"descricao" validate:"min=10,max=500"`
}

// Errors maps a form field to the message describing its violation.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator applies the activity form rules. Today's date is taken from the clock in
// the configured location and is itself an accepted date.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
}

// Option customizes a Validator.
type Option func(*Validator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLocation sets the time zone used for date-only input and the "today" boundary.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// New builds a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		loc:      defaultLocation(),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.validate.RegisterValidation("notpast", v.notPast); err != nil {
		panic(fmt.Sprintf("validation: register notpast: %v", err))
	}
	return v
}

// Location returns the zone used for date-only input and the "today" boundary.
func (v *Validator) Location() *time.Location {
	return v.loc
}

// defaultLocation resolves DefaultTimezone from the embedded zone database.
func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		panic(fmt.Sprintf("validation: load %s: %v", DefaultTimezone, err))
	}
	return loc
}

// LoadLocation resolves a time zone name, falling back to DefaultTimezone when empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ValidateActivity checks every field of in and returns the normalized form. On
// failure the error is an Errors value with one message per violated field.
func (v *Validator) ValidateActivity(in ActivityInput) (models.ActivityForm, error) {
	date, dateErr := v.parseDate(in.Data)

	rules := activityRules{
		Nome:        in.Nome,
		Responsavel: in.Responsavel,
		Data:        date,
		Descricao:   in.Descricao,
	}

	errs := Errors{}
	if err := v.validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.ActivityForm{}, fmt.Errorf("validate activity: %w", err)
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := errs[field]; seen {
				continue
			}
			errs[field] = messageFor(field, fe.Tag())
		}
	}
	if dateErr != nil {
		errs["data"] = MsgDataInvalid
	}
	if len(errs) > 0 {
		return models.ActivityForm{}, errs
	}

	return models.ActivityForm{
		Nome:        in.Nome,
		Responsavel: in.Responsavel,
		Data:        date.UTC(),
		Descricao:   in.Descricao,
	}, nil
}

// ValidateParticipant trims name and rejects blank names.
func (v *Validator) ValidateParticipant(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := v.validate.Var(name, "required"); err != nil {
		return "", Errors{"nome": MsgParticipantRequired}
	}
	return name, nil
}

// parseDate accepts a calendar date (midnight in the validator location) or an
// RFC 3339 timestamp.
func (v *Validator) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.ParseInLocation(dateOnly, raw, v.loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (v *Validator) notPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return false
	}
	return !startOfDay(t, v.loc).Before(startOfDay(v.now(), v.loc))
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func messageFor(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid (%s)", field, tag)
}
