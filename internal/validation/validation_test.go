package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) (*Validator, time.Time) {
	t.Helper()
	loc, err := LoadLocation("")
	require.NoError(t, err)

	now := time.Date(2026, time.October, 16, 14, 30, 0, 0, loc)
	return New(WithLocation(loc), WithClock(func() time.Time { return now })), now
}

func validInput() ActivityInput {
	return ActivityInput{
		Nome:        "Semana da Engenharia de Computação de Sobral",
		Responsavel: "Prof. Thiago Iachiley",
		Data:        "2026-11-20",
		Descricao:   "Palestras, minicursos e maratona de programação.",
	}
}

func requireErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var errs Errors
	require.True(t, errors.As(err, &errs), "expected validation.Errors, got %T", err)
	return errs
}

func TestValidateActivity_Valid(t *testing.T) {
	v, _ := newTestValidator(t)

	form, err := v.ValidateActivity(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Semana da Engenharia de Computação de Sobral", form.Nome)
	assert.Equal(t, time.UTC, form.Data.Location())
	// Midnight in Fortaleza (UTC-3).
	assert.Equal(t, time.Date(2026, time.November, 20, 3, 0, 0, 0, time.UTC), form.Data)
}

func TestValidateActivity_ShortNome(t *testing.T) {
	v, _ := newTestValidator(t)
	in := validInput()
	in.Nome = "AB"

	errs := requireErrors(t, mustFail(v.ValidateActivity(in)))
	assert.Equal(t, Errors{"nome": MsgNomeMin}, errs)
}

func TestValidateActivity_LengthBounds(t *testing.T) {
	v, _ := newTestValidator(t)

	tests := []struct {
		name    string
		mutate  func(*ActivityInput)
		field   string
		message string
	}{
		{"nome too long", func(in *ActivityInput) { in.Nome = strings.Repeat("a", 101) }, "nome", MsgNomeMax},
		{"responsavel too short", func(in *ActivityInput) { in.Responsavel = "Jo" }, "responsavel", MsgResponsavelMin},
		{"responsavel too long", func(in *ActivityInput) { in.Responsavel = strings.Repeat("b", 101) }, "responsavel", MsgResponsavelMax},
		{"descricao too short", func(in *ActivityInput) { in.Descricao = "curta" }, "descricao", MsgDescricaoMin},
		{"descricao too long", func(in *ActivityInput) { in.Descricao = strings.Repeat("c", 501) }, "descricao", MsgDescricaoMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			errs := requireErrors(t, mustFail(v.ValidateActivity(in)))
			assert.Equal(t, Errors{tt.field: tt.message}, errs)
		})
	}
}

func TestValidateActivity_BoundaryLengthsPass(t *testing.T) {
	v, _ := newTestValidator(t)
	in := validInput()
	in.Nome = "ABC"
	in.Responsavel = strings.Repeat("r", 100)
	in.Descricao = strings.Repeat("d", 10)

	_, err := v.ValidateActivity(in)
	assert.NoError(t, err)

	in.Descricao = strings.Repeat("d", 500)
	_, err = v.ValidateActivity(in)
	assert.NoError(t, err)
}

func TestValidateActivity_CountsCharactersNotBytes(t *testing.T) {
	v, _ := newTestValidator(t)
	in := validInput()
	// 100 two-byte characters.
	in.Nome = strings.Repeat("ç", 100)

	_, err := v.ValidateActivity(in)
	assert.NoError(t, err)
}

func TestValidateActivity_Dates(t *testing.T) {
	v, now := newTestValidator(t)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"yesterday", now.AddDate(0, 0, -1).Format("2006-01-02"), MsgDataPast},
		{"today", now.Format("2006-01-02"), ""},
		{"tomorrow", now.AddDate(0, 0, 1).Format("2006-01-02"), ""},
		{"earlier today as timestamp", "2026-10-16T08:00:00-03:00", ""},
		{"yesterday as timestamp", "2026-10-15T23:59:59-03:00", MsgDataPast},
		{"utc timestamp that is today locally", "2026-10-17T01:00:00Z", ""},
		{"garbage", "amanhã", MsgDataInvalid},
		{"empty", "", MsgDataInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Data = tt.data
			_, err := v.ValidateActivity(in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			errs := requireErrors(t, err)
			assert.Equal(t, Errors{"data": tt.wantErr}, errs)
		})
	}
}

func TestValidateActivity_ReportsEveryField(t *testing.T) {
	v, _ := newTestValidator(t)

	_, err := v.ValidateActivity(ActivityInput{Nome: "A", Responsavel: "B", Data: "2020-01-01", Descricao: "curta"})
	errs := requireErrors(t, err)
	assert.Equal(t, Errors{
		"nome":        MsgNomeMin,
		"responsavel": MsgResponsavelMin,
		"data":        MsgDataPast,
		"descricao":   MsgDescricaoMin,
	}, errs)
	assert.Contains(t, errs.Error(), "nome: "+MsgNomeMin)
}

func TestValidateParticipant(t *testing.T) {
	v, _ := newTestValidator(t)

	name, err := v.ValidateParticipant("  Maria Clara  ")
	require.NoError(t, err)
	assert.Equal(t, "Maria Clara", name)

	_, err = v.ValidateParticipant("   ")
	errs := requireErrors(t, err)
	assert.Equal(t, MsgParticipantRequired, errs["nome"])
}

func TestLoadLocation_Unknown(t *testing.T) {
	_, err := LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func mustFail[T any](_ T, err error) error {
	return err
}

func TestNew_DefaultsToFortaleza(t *testing.T) {
	var v *Validator
	require.NotPanics(t, func() { v = New() })
	assert.Equal(t, DefaultTimezone, v.Location().String())

	// 02:00 UTC on Oct 17 is still Oct 16 in Fortaleza.
	now := time.Date(2026, time.October, 17, 2, 0, 0, 0, time.UTC)
	v = New(WithClock(func() time.Time { return now }))
	in := validInput()
	in.Data = "2026-10-16"
	_, err := v.ValidateActivity(in)
	assert.NoError(t, err)
}

func TestNew_RegistersDateRule(t *testing.T) {
	v := New()
	err := v.validate.Var(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), "notpast")
	assert.Error(t, err)
}
