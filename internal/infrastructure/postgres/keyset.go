package postgres

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// Paginación keyset compartida por todos los listados.
//
// El cursor es un token opaco: base64url del JSON {v, id}, donde v es el valor
// de la columna de orden en la última fila entregada (timestamps en
// RFC3339Nano, numéricos con String de decimal) e id desempata. La página
// siguiente filtra con comparación de tupla (col, id) sobre esos valores, lo
// que mantiene el recorrido estable aunque se inserten filas entre peticiones.
//
// Cada repositorio declara su whitelist de columnas ordenables; un sort_by
// fuera de ella es entrada inválida, nunca se interpola texto del cliente en
// el SQL.

type colKind int

const (
	colText colKind = iota
	colTime
	colNumeric
)

type sortColumn struct {
	column string
	kind   colKind
}

type cursorPayload struct {
	V  string `json:"v"`
	ID string `json:"id"`
}

func encodeCursor(v, id string) string {
	b, _ := json.Marshal(cursorPayload{V: v, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeCursor(s string) (cursorPayload, error) {
	var p cursorPayload
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("%w: %v", domain.ErrInvalidCursor, err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("%w: %v", domain.ErrInvalidCursor, err)
	}
	if p.ID == "" {
		return p, domain.ErrInvalidCursor
	}
	return p, nil
}

// resolveSort valida sort_by contra la whitelist del repositorio y normaliza la
// dirección. sort_by vacío usa defaultKey; uno desconocido es entrada inválida.
func resolveSort(allowed map[string]sortColumn, sortBy, sortOrder, defaultKey string) (sortColumn, string, error) {
	key := sortBy
	if key == "" {
		key = defaultKey
	}
	sc, ok := allowed[key]
	if !ok {
		return sortColumn{}, "", fmt.Errorf("%w: sort_by %q", domain.ErrInvalidInput, sortBy)
	}
	dir := "DESC"
	switch sortOrder {
	case repository.SortAsc:
		dir = "ASC"
	case "", repository.SortDesc:
	default:
		return sortColumn{}, "", fmt.Errorf("%w: sort_order %q", domain.ErrInvalidInput, sortOrder)
	}
	return sc, dir, nil
}

// cast devuelve el cast SQL para comparar el valor del cursor (que viaja como
// texto) contra la columna de orden.
func (sc sortColumn) cast() string {
	switch sc.kind {
	case colTime:
		return "::timestamptz"
	case colNumeric:
		return "::numeric"
	default:
		return ""
	}
}

// keysetPredicate arma la condición de tupla para continuar después del cursor.
// argPos es la posición del primer placeholder a usar (v ocupa argPos, id argPos+1).
func keysetPredicate(sc sortColumn, dir string, argPos int) string {
	op := "<"
	if dir == "ASC" {
		op = ">"
	}
	return fmt.Sprintf("(%s, id) %s ($%d%s, $%d)", sc.column, op, argPos, sc.cast(), argPos+1)
}

// orderBy arma la cláusula de orden con id como desempate estable.
func orderBy(sc sortColumn, dir string) string {
	return fmt.Sprintf("ORDER BY %s %s, id %s", sc.column, dir, dir)
}
