package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pauta-api/internal/domain"
)

func TestCursor_IdaYVuelta(t *testing.T) {
	tok := encodeCursor("2026-03-07T10:00:00.000000123Z", "inv-42")
	require.NotEmpty(t, tok)

	p, err := decodeCursor(tok)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-07T10:00:00.000000123Z", p.V)
	assert.Equal(t, "inv-42", p.ID)
}

func TestDecodeCursor_TokenCorruptoEsErrInvalidCursor(t *testing.T) {
	for _, tok := range []string{"no-es-base64!!!", "bm8ganNvbg", encodeCursor("x", "")} {
		_, err := decodeCursor(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidCursor, "token %q", tok)
	}
}

func TestResolveSort_WhitelistYDireccion(t *testing.T) {
	allowed := map[string]sortColumn{
		"created_at": {column: "created_at", kind: colTime},
		"name":       {column: "name", kind: colText},
	}

	sc, dir, err := resolveSort(allowed, "", "", "created_at")
	require.NoError(t, err)
	assert.Equal(t, "created_at", sc.column)
	assert.Equal(t, "DESC", dir, "sin orden explícito, más reciente primero")

	sc, dir, err = resolveSort(allowed, "name", "asc", "created_at")
	require.NoError(t, err)
	assert.Equal(t, "name", sc.column)
	assert.Equal(t, "ASC", dir)

	_, _, err = resolveSort(allowed, "total_amount; DROP TABLE", "asc", "created_at")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = resolveSort(allowed, "name", "sideways", "created_at")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKeysetPredicate_TuplaYCast(t *testing.T) {
	sc := sortColumn{column: "issue_date", kind: colTime}
	assert.Equal(t, "(issue_date, id) < ($3::timestamptz, $4)", keysetPredicate(sc, "DESC", 3))
	assert.Equal(t, "(issue_date, id) > ($3::timestamptz, $4)", keysetPredicate(sc, "ASC", 3))

	txt := sortColumn{column: "name", kind: colText}
	assert.Equal(t, "(name, id) > ($2, $3)", keysetPredicate(txt, "ASC", 2))

	num := sortColumn{column: "total_amount", kind: colNumeric}
	assert.Equal(t, "(total_amount, id) < ($5::numeric, $6)", keysetPredicate(num, "DESC", 5))
}

func TestOrderBy_DesempatePorID(t *testing.T) {
	sc := sortColumn{column: "created_at", kind: colTime}
	assert.Equal(t, "ORDER BY created_at DESC, id DESC", orderBy(sc, "DESC"))
}
