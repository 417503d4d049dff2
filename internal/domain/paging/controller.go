// Package paging implementa el controlador de paginación por cursores.
//
// El backend emite, por cada página consultada, un cursor opaco que marca el
// final de esa página. El controlador guarda esos cursores indexados por número
// de página, de modo que navegar hacia atrás no requiere re-consultar desde la
// página 0. Los cursores se almacenan y reenvían tal cual: el controlador no
// asume ninguna estructura interna del token.
//
// Invariante: ningún cursor sobrevive al predicado de filtros ni al tamaño de
// página que lo produjo. Cambiar el tamaño de página es un reset duro dentro de
// AdvanceTo; cambiar los filtros exige que el caller invoque Reset antes de la
// siguiente consulta.
package paging

// StartCursor es el cursor de inicio: consulta la página 0 sin posición previa.
const StartCursor = ""

// Controller mantiene el estado de paginación de una sesión de listado:
// página actual, tamaño de página, caché de cursores por página y el último
// cursor observado (final de la página recién consultada).
type Controller struct {
	pageIndex    int
	pageSize     int
	active       string
	cursorByPage map[int]string
	lastObserved string
}

// NewController construye el controlador posicionado en la página 0.
func NewController(pageSize int) *Controller {
	return &Controller{
		pageSize:     pageSize,
		cursorByPage: make(map[int]string),
	}
}

// AdvanceTo traduce la intención de navegación (pageIndex, pageSize) al cursor
// que necesita la consulta. Devuelve el cursor activo y la página efectiva, que
// puede diferir de la pedida cuando la transición degrada a la página 0.
//
// Transiciones:
//   - pageSize distinto           → reset duro: caché vacía, página 0, cursor de inicio.
//   - pageIndex == actual         → repite la página con el cursor vigente.
//   - avance de exactamente +1    → registra y usa el último cursor observado.
//   - retroceso                   → cursor cacheado; si falta (uso no secuencial),
//     degrada a página 0 con cursor de inicio en lugar de fallar.
//   - pageIndex == 0              → limpia la caché y vuelve al inicio.
//   - salto hacia adelante > +1   → sin token de salto directo no hay transición
//     definida: se trata como reset y el caller re-avanza secuencialmente.
func (c *Controller) AdvanceTo(pageIndex, pageSize int) (cursor string, page int) {
	if pageSize != c.pageSize {
		c.reset(pageSize)
		return StartCursor, 0
	}

	switch {
	case pageIndex == c.pageIndex:
		return c.active, c.pageIndex

	case pageIndex == c.pageIndex+1 && c.lastObserved != StartCursor:
		c.cursorByPage[pageIndex] = c.lastObserved
		c.active = c.lastObserved
		c.pageIndex = pageIndex
		return c.active, c.pageIndex

	case pageIndex == 0:
		c.reset(c.pageSize)
		return StartCursor, 0

	case pageIndex < c.pageIndex:
		if cur, ok := c.cursorByPage[pageIndex]; ok {
			c.active = cur
			c.pageIndex = pageIndex
			return cur, pageIndex
		}
		// No debería ocurrir con navegación secuencial; degradar a la página 0.
		c.reset(c.pageSize)
		return StartCursor, 0

	default:
		// Salto no adyacente hacia adelante, o avance +1 sin cursor observado
		// (fin de datos): reset y re-consulta desde el inicio.
		c.reset(c.pageSize)
		return StartCursor, 0
	}
}

// RecordPageResult registra el cursor que marca el final de la página recién
// consultada. Debe llamarse tras cada consulta exitosa, incluso si el backend
// no devolvió cursor (página vacía o última página).
func (c *Controller) RecordPageResult(cursor string) {
	c.lastObserved = cursor
}

// Reset vuelve a la página 0 y descarta todos los cursores cacheados. Debe
// invocarse siempre que cambie el conjunto de filtros. Con pageSize <= 0 se
// conserva el tamaño de página vigente.
func (c *Controller) Reset(pageSize int) {
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	c.reset(pageSize)
}

func (c *Controller) reset(pageSize int) {
	c.pageIndex = 0
	c.pageSize = pageSize
	c.active = StartCursor
	c.lastObserved = StartCursor
	c.cursorByPage = make(map[int]string)
}

// PageIndex devuelve la página actual.
func (c *Controller) PageIndex() int { return c.pageIndex }

// PageSize devuelve el tamaño de página vigente.
func (c *Controller) PageSize() int { return c.pageSize }

// ActiveCursor devuelve el cursor con el que se consulta la página actual.
func (c *Controller) ActiveCursor() string { return c.active }

// HasMore informa si la última consulta registrada dejó un cursor hacia
// adelante, es decir, si existe una página siguiente.
func (c *Controller) HasMore() bool { return c.lastObserved != StartCursor }
