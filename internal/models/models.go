package models

import "time"

// Activity is an academic event tracked on campus together with its roster.
type Activity struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Responsavel   string    `json:"responsavel"`
	Data          time.Time `json:"data"`
	Descricao     string    `json:"descricao"`
	Participantes []string  `json:"participantes"`
}

// ActivityForm holds the user editable fields of an activity.
type ActivityForm struct {
	Nome        string    `json:"nome"`
	Responsavel string    `json:"responsavel"`
	Data        time.Time `json:"data"`
	Descricao   string    `json:"descricao"`
}

// Form returns the editable fields of the activity.
func (a Activity) Form() ActivityForm {
	return ActivityForm{
		Nome:        a.Nome,
		Responsavel: a.Responsavel,
		Data:        a.Data,
		Descricao:   a.Descricao,
	}
}

// Clone returns a copy that does not share the participant slice.
func (a Activity) Clone() Activity {
	out := a
	out.Participantes = make([]string, len(a.Participantes))
	copy(out.Participantes, a.Participantes)
	return out
}
