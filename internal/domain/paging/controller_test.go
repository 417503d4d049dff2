package paging_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pauta-api/internal/domain/paging"
)

// advance simula el ciclo completo de una consulta: pedir el cursor para la
// página, "consultar" y registrar el cursor devuelto por el backend.
func advance(c *paging.Controller, pageIndex, pageSize int, backendNext string) (string, int) {
	cursor, page := c.AdvanceTo(pageIndex, pageSize)
	c.RecordPageResult(backendNext)
	return cursor, page
}

func TestAdvanceTo_PaginaInicial(t *testing.T) {
	c := paging.NewController(20)

	cursor, page := c.AdvanceTo(0, 20)

	assert.Equal(t, paging.StartCursor, cursor, "la página 0 se consulta sin cursor")
	assert.Equal(t, 0, page)
}

func TestAdvanceTo_AvanceSecuencial(t *testing.T) {
	c := paging.NewController(20)

	_, _ = advance(c, 0, 20, "cur-p1")
	cursor, page := c.AdvanceTo(1, 20)

	assert.Equal(t, "cur-p1", cursor, "avanzar +1 usa el último cursor observado")
	assert.Equal(t, 1, page)
}

// TestAdvanceTo_RetrocesoCacheado verifica la propiedad de ida y vuelta: el
// cursor al retroceder a una página es exactamente el que estaba activo cuando
// esa página se consultó por primera vez.
func TestAdvanceTo_RetrocesoCacheado(t *testing.T) {
	c := paging.NewController(10)

	seen := make(map[int]string)
	next := ""
	for page := 0; page <= 3; page++ {
		cursor, effective := c.AdvanceTo(page, 10)
		require.Equal(t, page, effective)
		seen[page] = cursor
		next = fmt.Sprintf("cur-p%d", page+1)
		c.RecordPageResult(next)
	}

	for page := 3; page >= 0; page-- {
		cursor, effective := c.AdvanceTo(page, 10)
		assert.Equal(t, page, effective)
		assert.Equal(t, seen[page], cursor,
			"el cursor de retroceso debe coincidir con el del primer render de la página %d", page)
	}
}

func TestAdvanceTo_CambioDePageSizeReseteaTodo(t *testing.T) {
	c := paging.NewController(10)

	_, _ = advance(c, 0, 10, "cur-p1")
	_, _ = advance(c, 1, 10, "cur-p2")
	_, _ = advance(c, 2, 10, "cur-p3")
	_, _ = advance(c, 3, 10, "cur-p4")

	// Cambiar el tamaño de página estando en la página 3 → reset duro.
	cursor, page := c.AdvanceTo(3, 25)
	assert.Equal(t, paging.StartCursor, cursor)
	assert.Equal(t, 0, page)
	assert.Equal(t, 25, c.PageSize())

	// Los cursores de las páginas 1..3 quedaron descartados: retroceder ya no
	// encuentra caché y degrada al inicio.
	c.RecordPageResult("nuevo-p1")
	cursor, page = c.AdvanceTo(2, 25)
	assert.Equal(t, paging.StartCursor, cursor)
	assert.Equal(t, 0, page)
}

func TestAdvanceTo_SaltoNoAdyacenteEsReset(t *testing.T) {
	c := paging.NewController(20)

	_, _ = advance(c, 0, 20, "cur-p1")
	cursor, page := c.AdvanceTo(4, 20)

	assert.Equal(t, paging.StartCursor, cursor, "no existe token de salto directo")
	assert.Equal(t, 0, page, "el salto se trata como reset y re-consulta desde el inicio")
}

func TestAdvanceTo_AvanceSinCursorObservadoEsReset(t *testing.T) {
	c := paging.NewController(20)

	// La página 0 fue la última: el backend no devolvió cursor.
	_, _ = advance(c, 0, 20, "")
	require.False(t, c.HasMore())

	cursor, page := c.AdvanceTo(1, 20)
	assert.Equal(t, paging.StartCursor, cursor)
	assert.Equal(t, 0, page)
}

func TestAdvanceTo_MismaPaginaRepiteCursorVigente(t *testing.T) {
	c := paging.NewController(20)

	_, _ = advance(c, 0, 20, "cur-p1")
	_, _ = advance(c, 1, 20, "cur-p2")

	cursor, page := c.AdvanceTo(1, 20)
	assert.Equal(t, "cur-p1", cursor, "repetir la página actual no consume el último cursor")
	assert.Equal(t, 1, page)
}

func TestReset_CambioDeFiltros(t *testing.T) {
	c := paging.NewController(20)

	_, _ = advance(c, 0, 20, "cur-p1")
	_, _ = advance(c, 1, 20, "cur-p2")
	require.Equal(t, 1, c.PageIndex())

	// Cambio de filtros: el caller debe resetear antes de la siguiente consulta.
	c.Reset(0)

	assert.Equal(t, 0, c.PageIndex(), "todo cambio de filtros vuelve a la página 0")
	assert.Equal(t, paging.StartCursor, c.ActiveCursor())
	assert.Equal(t, 20, c.PageSize(), "Reset(0) conserva el tamaño de página")
	assert.False(t, c.HasMore())
}

func TestRecordPageResult_PaginaVaciaEsValida(t *testing.T) {
	c := paging.NewController(20)

	c.RecordPageResult("")
	assert.False(t, c.HasMore())

	c.RecordPageResult("cur-p1")
	assert.True(t, c.HasMore())
}
