// internals/clients/tabledata/filter.go
package tabledata

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter adalah satu kondisi kolom yang dirender ke query param
// bergaya PostgREST (kolom=op.nilai).
type Filter struct {
	column string
	op     string
	value  string
}

func newFilter(column, op string, v interface{}) Filter {
	return Filter{column: column, op: op, value: fmt.Sprintf("%v", v)}
}

func Eq(column string, v interface{}) Filter  { return newFilter(column, "eq", v) }
func Neq(column string, v interface{}) Filter { return newFilter(column, "neq", v) }
func Gt(column string, v interface{}) Filter  { return newFilter(column, "gt", v) }
func Gte(column string, v interface{}) Filter { return newFilter(column, "gte", v) }
func Lt(column string, v interface{}) Filter  { return newFilter(column, "lt", v) }
func Lte(column string, v interface{}) Filter { return newFilter(column, "lte", v) }

// Like / ILike: pakai '*' sebagai wildcard ('%' juga diterima server).
func Like(column, pattern string) Filter  { return newFilter(column, "like", pattern) }
func ILike(column, pattern string) Filter { return newFilter(column, "ilike", pattern) }

func In(column string, vals ...interface{}) Filter {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return Filter{column: column, op: "in", value: "(" + strings.Join(parts, ",") + ")"}
}

func IsNull(column string) Filter  { return Filter{column: column, op: "is", value: "null"} }
func IsTrue(column string) Filter  { return Filter{column: column, op: "is", value: "true"} }
func IsFalse(column string) Filter { return Filter{column: column, op: "is", value: "false"} }

// NotDeleted menyaring baris yang belum di-soft-delete. Hampir semua
// query pakai ini, jadi diberi nama sendiri.
func NotDeleted() Filter { return IsNull("deleted_at") }

// appendTo memakai Add, bukan Set, supaya dua filter di kolom yang sama
// (rentang gte+lte) dua-duanya terkirim.
func (f Filter) appendTo(vals url.Values) {
	vals.Add(f.column, f.op+"."+f.value)
}
