package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pauta-api/internal/domain/export"
)

func render(t *testing.T, rows []export.Row, cols []export.Column) string {
	t.Helper()
	var sb strings.Builder
	err := export.NewCSVExporter("").Write(&sb, rows, cols)
	require.NoError(t, err)
	return sb.String()
}

func TestWrite_ListaVaciaNoEscribeNada(t *testing.T) {
	var sb strings.Builder
	err := export.NewCSVExporter("").Write(&sb, nil, nil)

	require.NoError(t, err, "exportar cero registros no es un error")
	assert.Empty(t, sb.String(), "no debe producirse ningún artefacto")
}

func TestWrite_ComaEnCampoSeCita(t *testing.T) {
	out := render(t, []export.Row{{"name": "Smith, John", "city": "NYC"}}, nil)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "City,Name", lines[0])
	assert.Equal(t, `NYC,"Smith, John"`, lines[1],
		"la coma interna se preserva y el campo completo va citado")
}

func TestWrite_ComillasInternasSeDuplican(t *testing.T) {
	out := render(t, []export.Row{{"name": `John "Johnny" Doe`}}, nil)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"John ""Johnny"" Doe"`, lines[1])
}

func TestWrite_EncabezadoAutogenerado(t *testing.T) {
	e := export.NewCSVExporter("")

	assert.Equal(t, "Last Login Date", e.HumanizeHeader("lastLoginDate"))
	assert.Equal(t, "First Name", e.HumanizeHeader("firstName"))
	assert.Equal(t, "Invoice Number", e.HumanizeHeader("invoice_number"))
	assert.Equal(t, "Booked Amount", e.HumanizeHeader("bookedAmount"))
}

func TestWrite_ProyeccionExplicitaRespetaOrden(t *testing.T) {
	cols := []export.Column{
		{Field: "invoiceNumber", Header: "Invoice Number"},
		{Field: "clientName", Header: "Client"},
	}
	rows := []export.Row{
		{"invoiceNumber": "FV-001", "clientName": "Acme", "ignored": "x"},
		{"invoiceNumber": "FV-002", "clientName": "Initech", "ignored": "y"},
	}

	out := render(t, rows, cols)

	assert.Equal(t, "Invoice Number,Client\nFV-001,Acme\nFV-002,Initech", out,
		"la proyección define columnas y orden; campos no proyectados se omiten")
}

func TestWrite_ValorNilEsCadenaVacia(t *testing.T) {
	var paid *time.Time
	out := render(t, []export.Row{{"name": "Acme", "paidDate": paid, "note": nil}}, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Name,Note,Paid Date", lines[0])
	assert.Equal(t, "Acme,,", lines[1])
}

func TestWrite_FechaConFormatoDeterminista(t *testing.T) {
	issue := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	out := render(t, []export.Row{{"issueDate": issue}}, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "3/7/2026", lines[1])
}

func TestWrite_ListaSeUneConPuntoYComaYSeCita(t *testing.T) {
	rows := []export.Row{{"tags": []string{"display", "video"}}}
	out := render(t, rows, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, `"display; video"`, lines[1],
		"las listas van unidas con '; ' y el campo completo citado")
}

func TestWrite_ObjetoAnidadoComoJSONCitado(t *testing.T) {
	rows := []export.Row{{"meta": map[string]any{"channel": "ctv", "spots": 3}}}
	out := render(t, rows, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, `"{""channel"":""ctv"",""spots"":3}"`, lines[1],
		"los objetos anidados se serializan como JSON compacto citado")
}

func TestWrite_DecimalSinNotacionCientifica(t *testing.T) {
	rows := []export.Row{{"total": decimal.RequireFromString("1250000.50")}}
	out := render(t, rows, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "1250000.5", lines[1])
}

func TestWrite_SaltoDeLineaEnCampoSeCita(t *testing.T) {
	rows := []export.Row{{"note": "línea uno\nlínea dos"}}
	out := render(t, rows, nil)

	assert.Equal(t, "Note\n\"línea uno\nlínea dos\"", out)
}
