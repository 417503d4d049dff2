// Package export produce artefactos CSV a partir de registros tabulares.
//
// El exportador es puro: escribe sobre un io.Writer y no conoce HTTP ni
// archivos. La capa de interfaces es responsable de la entrega (MIME
// text/csv;charset=utf-8 y Content-Disposition con el nombre <name>.csv).
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDateLayout formatea fechas al estilo de locale en-US (determinista).
const DefaultDateLayout = "1/2/2006"

// Column es una proyección de columna: campo del registro y encabezado visible.
type Column struct {
	Field  string
	Header string
}

// Row es un registro uniforme campo → valor.
type Row map[string]any

// CSVExporter serializa filas a CSV con reglas de tipado fijas por valor.
type CSVExporter struct {
	dateLayout string
	title      cases.Caser
}

// NewCSVExporter construye el exportador. dateLayout vacío usa DefaultDateLayout.
func NewCSVExporter(dateLayout string) *CSVExporter {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &CSVExporter{
		dateLayout: dateLayout,
		title:      cases.Title(language.English),
	}
}

// Write serializa las filas sobre w: fila de encabezados y una fila por
// registro, unidas por salto de línea. Con cero registros no escribe nada y no
// es un error (exportar una tabla vacía es un no-op sin efecto).
//
// Si cols es nil, las columnas se derivan del conjunto de claves del primer
// registro (ordenadas para salida determinista) y el encabezado se genera
// humanizando el identificador: "lastLoginDate" → "Last Login Date".
func (e *CSVExporter) Write(w io.Writer, rows []Row, cols []Column) error {
	if len(rows) == 0 {
		return nil
	}
	if cols == nil {
		cols = e.deriveColumns(rows[0])
	}

	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(col.Header, false))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, col := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			value, forceQuote := e.serializeValue(row[col.Field])
			b.WriteString(escapeField(value, forceQuote))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("escribir csv: %w", err)
	}
	return nil
}

// deriveColumns toma las claves del primer registro en orden alfabético
// (los mapas de Go no tienen orden) y humaniza cada encabezado.
func (e *CSVExporter) deriveColumns(first Row) []Column {
	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Field: k, Header: e.HumanizeHeader(k)})
	}
	return cols
}

// HumanizeHeader convierte un identificador camelCase o snake_case en un
// encabezado legible con cada palabra capitalizada.
func (e *CSVExporter) HumanizeHeader(field string) string {
	var words []string
	for _, chunk := range strings.Split(field, "_") {
		words = append(words, splitCamel(chunk)...)
	}
	for i, w := range words {
		words[i] = e.title.String(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

// splitCamel corta un identificador camelCase en palabras ("lastLoginDate" →
// ["last", "Login", "Date"]). Una racha de mayúsculas se mantiene unida.
func splitCamel(s string) []string {
	if s == "" {
		return nil
	}
	var words []string
	start := 0
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
		curUpper := runes[i] >= 'A' && runes[i] <= 'Z'
		if prevLower && curUpper {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

// serializeValue aplica las reglas de serialización por tipo. El segundo valor
// indica si el campo debe citarse aunque RFC 4180 no lo exija (listas y objetos
// anidados siempre van citados).
func (e *CSVExporter) serializeValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case time.Time:
		return val.Format(e.dateLayout), false
	case *time.Time:
		if val == nil {
			return "", false
		}
		return val.Format(e.dateLayout), false
	case decimal.Decimal:
		return val.String(), false
	case string:
		return val, false
	case []string:
		return strings.Join(val, "; "), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "", false
		}
		return e.serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, _ := e.serializeValue(rv.Index(i).Interface())
			parts = append(parts, s)
		}
		return strings.Join(parts, "; "), true
	case reflect.Map, reflect.Struct:
		// Objeto anidado → JSON compacto citado. json.Marshal ordena las claves
		// de los mapas, así que la salida es determinista.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v), true
		}
		return string(raw), true
	default:
		return fmt.Sprintf("%v", v), false
	}
}

// escapeField aplica el citado CSV estándar: el campo se envuelve en comillas
// dobles si contiene coma, comilla o salto de línea (o si force lo exige) y las
// comillas internas se escapan duplicándolas.
func escapeField(s string, force bool) string {
	if !force && !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
