package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activities/internal/models"
)

func TestWriteCSV(t *testing.T) {
	activities := []models.Activity{
		{
			ID:            "1",
			Nome:          `Palestra "Go na prática"`,
			Responsavel:   "Prof. Ana",
			Data:          time.Date(2030, time.May, 2, 3, 0, 0, 0, time.UTC),
			Descricao:     "Linha 1, com vírgula",
			Participantes: []string{"Bruno", "Carla"},
		},
		{
			ID:            "2",
			Nome:          "Oficina",
			Responsavel:   "Prof. Davi",
			Data:          time.Date(2030, time.June, 10, 3, 0, 0, 0, time.UTC),
			Descricao:     "Sem participantes ainda",
			Participantes: []string{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, activities, nil))

	want := strings.Join([]string{
		`"Nome","Responsável","Data","Descrição","Participantes"`,
		`"Palestra ""Go na prática""","Prof. Ana","2030-05-02","Linha 1, com vírgula","Bruno;Carla"`,
		`"Oficina","Prof. Davi","2030-06-10","Sem participantes ainda",""`,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EmptyCollectionWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Equal(t, `"Nome","Responsável","Data","Descrição","Participantes"`+"\n", buf.String())
}

func TestWriteCSV_PrintsCalendarDayOfEntryZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Entered as 2026-11-20 in Berlin, stored in UTC as the evening before.
	stored := time.Date(2026, time.November, 20, 0, 0, 0, 0, berlin).UTC()
	require.Equal(t, 19, stored.Day())

	activities := []models.Activity{{
		ID:            "1",
		Nome:          "Oficina",
		Responsavel:   "Ana Paula",
		Data:          stored,
		Descricao:     "Oficina de Go para iniciantes",
		Participantes: []string{},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, activities, berlin))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Oficina","Ana Paula","2026-11-20","Oficina de Go para iniciantes",""`, lines[1])
}
