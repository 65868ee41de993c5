// internals/rest/filter.go
package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Operator filter gaya PostgREST: kolom=op.nilai
// contoh: id=eq.42, name=ilike.*quran*, status=in.(submitted,revised)
var filterOps = map[string]string{
	"eq":   "=",
	"neq":  "<>",
	"gt":   ">",
	"gte":  ">=",
	"lt":   "<",
	"lte":  "<=",
	"like": "LIKE",
}

// Param yang bukan filter kolom
var reservedParams = map[string]bool{
	"select": true,
	"order":  true,
	"limit":  true,
	"offset": true,
	"apikey": true,
}

type Condition struct {
	Column string
	Op     string // op mentah (eq, ilike, in, is, ...)
	Value  string
}

type Query struct {
	Conditions []Condition
	Select     []string
	OrderBy    string // "col ASC" / "col DESC", kosong = tanpa order
	Limit      int    // 0 = tanpa limit
	Offset     int
}

// ParseQuery membaca query param gaya PostgREST. Kolom di luar allowed
// ditolak. Satu kolom boleh muncul lebih dari sekali (rentang gte+lte).
func ParseQuery(params url.Values, allowed map[string]bool) (*Query, error) {
	q := &Query{}

	for key, raws := range params {
		if reservedParams[key] {
			continue
		}
		if !allowed[key] {
			return nil, fmt.Errorf("kolom tidak dikenal: %s", key)
		}
		for _, raw := range raws {
			op, val, ok := strings.Cut(raw, ".")
			if !ok {
				return nil, fmt.Errorf("filter tidak valid untuk kolom %s", key)
			}
			switch op {
			case "eq", "neq", "gt", "gte", "lt", "lte", "like", "ilike", "in", "is":
				q.Conditions = append(q.Conditions, Condition{Column: key, Op: op, Value: val})
			default:
				return nil, fmt.Errorf("operator tidak didukung: %s", op)
			}
		}
	}

	if v := params.Get("select"); v != "" && v != "*" {
		for _, col := range strings.Split(v, ",") {
			col = strings.TrimSpace(col)
			if !allowed[col] {
				return nil, fmt.Errorf("kolom tidak dikenal: %s", col)
			}
			q.Select = append(q.Select, col)
		}
	}

	if v := params.Get("order"); v != "" {
		col, dir, _ := strings.Cut(v, ".")
		if !allowed[col] {
			return nil, fmt.Errorf("kolom order tidak dikenal: %s", col)
		}
		switch dir {
		case "", "asc":
			q.OrderBy = col + " ASC"
		case "desc":
			q.OrderBy = col + " DESC"
		default:
			return nil, fmt.Errorf("arah order tidak valid: %s", dir)
		}
	}

	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("limit tidak valid")
		}
		q.Limit = n
	}
	if v := params.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("offset tidak valid")
		}
		q.Offset = n
	}

	return q, nil
}

// Apply menempelkan seluruh kondisi ke query GORM.
func (q *Query) Apply(dbq *gorm.DB) (*gorm.DB, error) {
	for _, cond := range q.Conditions {
		var err error
		dbq, err = applyCondition(dbq, cond)
		if err != nil {
			return nil, err
		}
	}
	if len(q.Select) > 0 {
		dbq = dbq.Select(q.Select)
	}
	if q.OrderBy != "" {
		dbq = dbq.Order(q.OrderBy)
	}
	if q.Limit > 0 {
		dbq = dbq.Limit(q.Limit)
	}
	if q.Offset > 0 {
		dbq = dbq.Offset(q.Offset)
	}
	return dbq, nil
}

func applyCondition(dbq *gorm.DB, cond Condition) (*gorm.DB, error) {
	col := cond.Column

	switch cond.Op {
	case "like":
		return dbq.Where(col+" LIKE ?", wildcard(cond.Value)), nil
	case "ilike":
		// LOWER+LIKE supaya konsisten di Postgres dan SQLite
		return dbq.Where("LOWER("+col+") LIKE ?", strings.ToLower(wildcard(cond.Value))), nil
	case "in":
		raw := strings.TrimSuffix(strings.TrimPrefix(cond.Value, "("), ")")
		if raw == "" {
			return dbq.Where("1 = 0"), nil
		}
		parts := strings.Split(raw, ",")
		vals := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			vals = append(vals, strings.TrimSpace(p))
		}
		return dbq.Where(col+" IN ?", vals), nil
	case "is":
		switch cond.Value {
		case "null":
			return dbq.Where(col + " IS NULL"), nil
		case "true":
			return dbq.Where(col+" = ?", true), nil
		case "false":
			return dbq.Where(col+" = ?", false), nil
		default:
			return nil, fmt.Errorf("nilai is tidak valid: %s", cond.Value)
		}
	default:
		sqlOp, ok := filterOps[cond.Op]
		if !ok {
			return nil, fmt.Errorf("operator tidak didukung: %s", cond.Op)
		}
		return dbq.Where(col+" "+sqlOp+" ?", cond.Value), nil
	}
}

// wildcard menerjemahkan '*' PostgREST ke '%' SQL; '%' mentah tetap jalan.
func wildcard(v string) string {
	return strings.ReplaceAll(v, "*", "%")
}
