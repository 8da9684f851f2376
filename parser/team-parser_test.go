package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeamsCSV(t *testing.T) {
	csv := "num_equipe,nom_equipe\n1,Alpha\n2,Bravo\n"
	result, err := ParseTeamsCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, TeamRow{NumEquipe: "1", NomEquipe: "Alpha"}, result.Rows[0])
	assert.Equal(t, TeamRow{NumEquipe: "2", NomEquipe: "Bravo"}, result.Rows[1])
	assert.Empty(t, result.Errors)
	assert.Equal(t, 0, result.DuplicateCount)
}

func TestParseTeamsCSVHeaderDetection(t *testing.T) {
	csv := "Numéro,Team Name,Extra\n7,Gamma,x\n"
	result, err := ParseTeamsCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "7", result.Rows[0].NumEquipe)
	assert.Equal(t, "Gamma", result.Rows[0].NomEquipe)
}

func TestParseTeamsCSVInFileDuplicatesSkipped(t *testing.T) {
	csv := "num_equipe,nom_equipe\n1,Alpha\n1,Alpha Again\n2,Bravo\n"
	result, err := ParseTeamsCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Alpha", result.Rows[0].NomEquipe)
	assert.Equal(t, 1, result.DuplicateCount)
	assert.Empty(t, result.Errors)
}

func TestParseTeamsCSVMissingFields(t *testing.T) {
	csv := "num_equipe,nom_equipe\n,Alpha\n2,\n3,Charlie\n"
	result, err := ParseTeamsCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "3", result.Rows[0].NumEquipe)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Row 2: Missing num_equipe")
	assert.Contains(t, result.Errors[1], "Row 3: Missing nom_equipe")
}

func TestParseTeamsCSVEmptyFile(t *testing.T) {
	_, err := ParseTeamsCSV(strings.NewReader(""))
	assert.Error(t, err)
}
