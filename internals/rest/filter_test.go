// internals/rest/filter_test.go
package rest

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var santriCols = map[string]bool{
	"id": true, "name": true, "rumah_quran_id": true,
	"enrollment_status": true, "deleted_at": true,
}

func TestParseQueryFilters(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"id":                {"eq.42"},
		"name":              {"ilike.*fauzi*"},
		"enrollment_status": {"in.(active,graduated)"},
		"deleted_at":        {"is.null"},
		"order":             {"name.desc"},
		"limit":             {"10"},
		"offset":            {"20"},
	}, santriCols)
	require.NoError(t, err)

	assert.Len(t, q.Conditions, 4)
	assert.Equal(t, "name DESC", q.OrderBy)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset)
}

func TestParseQueryRangeOnSameColumn(t *testing.T) {
	// rentang: dua filter di kolom yang sama harus dua kondisi
	q, err := ParseQuery(url.Values{"id": {"gte.2", "lte.5"}}, santriCols)
	require.NoError(t, err)

	require.Len(t, q.Conditions, 2)
	ops := []string{q.Conditions[0].Op, q.Conditions[1].Op}
	assert.ElementsMatch(t, []string{"gte", "lte"}, ops)
}

func TestParseQuerySelect(t *testing.T) {
	q, err := ParseQuery(url.Values{"select": {"id,name"}}, santriCols)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, q.Select)

	// select=* artinya tanpa proyeksi
	q, err = ParseQuery(url.Values{"select": {"*"}}, santriCols)
	require.NoError(t, err)
	assert.Empty(t, q.Select)
}

func TestParseQueryRejectsUnknown(t *testing.T) {
	cases := []url.Values{
		{"password_hash": {"eq.x"}},      // kolom tidak terdaftar
		{"name": {"regex.^a"}},           // operator asing
		{"name": {"tanpa-titik"}},        // format filter rusak
		{"select": {"id,password_hash"}}, // proyeksi kolom terlarang
		{"order": {"password_hash.asc"}}, // order kolom terlarang
		{"order": {"name.sideways"}},     // arah order tidak valid
		{"limit": {"-1"}},                // limit negatif
		{"limit": {"sepuluh"}},           // limit bukan angka
	}
	for _, params := range cases {
		_, err := ParseQuery(params, santriCols)
		assert.Error(t, err, "params %v harus ditolak", params)
	}
}

func TestParseQueryOrderDefaultAsc(t *testing.T) {
	q, err := ParseQuery(url.Values{"order": {"name"}}, santriCols)
	require.NoError(t, err)
	assert.Equal(t, "name ASC", q.OrderBy)
}

func TestWildcardTranslation(t *testing.T) {
	assert.Equal(t, "%fauzi%", wildcard("*fauzi*"))
	assert.Equal(t, "%sudah%", wildcard("%sudah%"))
	assert.Equal(t, "polos", wildcard("polos"))
}

func TestParseDateValue(t *testing.T) {
	d := parseDateValue("2025-03-01")
	require.NotNil(t, d)

	// komponen waktu dibuang
	d2 := parseDateValue("2025-03-01T09:30:00Z")
	require.NotNil(t, d2)
	assert.Equal(t, *d, *d2)

	assert.Nil(t, parseDateValue(""))
	assert.Nil(t, parseDateValue(nil))
	assert.Nil(t, parseDateValue(42))
}
