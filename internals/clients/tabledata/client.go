// internals/clients/tabledata/client.go
//
// Klien data tabel untuk surface /rest/v1. Pola pemakaiannya builder:
//
//	rows, err := cli.From("santri").
//		Where(tabledata.Eq("rumah_quran_id", 3), tabledata.NotDeleted()).
//		Order("name", true).
//		Get(ctx)
package tabledata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// TokenSource menyuplai bearer token per request (biasanya SessionManager).
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

// WithHTTPClient mengganti transport; dipakai test untuk routing in-process.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource memasang sumber bearer token (SessionManager).
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New membuat klien. Base URL dan apikey wajib ada; tanpa keduanya
// klien gagal dibangun, bukan gagal diam-diam di request pertama.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("tabledata: base URL wajib diisi")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("tabledata: apikey wajib diisi")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError adalah error HTTP dari server, termasuk body message-nya.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tabledata: HTTP %d: %s", e.Status, e.Message)
}

/* ===================== QUERY BUILDER ===================== */

type Query struct {
	client  *Client
	table   string
	selects []string
	filters []Filter
	order   string
	limit   int
	single  bool
}

func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table}
}

func (q *Query) Select(cols ...string) *Query {
	q.selects = append(q.selects, cols...)
	return q
}

func (q *Query) Where(filters ...Filter) *Query {
	q.filters = append(q.filters, filters...)
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single menandai query yang diharapkan maksimal satu baris.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

/* ===================== OPERATIONS ===================== */

// Get menjalankan SELECT. Mode Single: nol baris → (nil, nil), bukan error.
func (q *Query) Get(ctx context.Context) ([]map[string]interface{}, error) {
	if q.single && q.limit == 0 {
		q.limit = 1
	}
	body, err := q.client.do(ctx, http.MethodGet, q.table, q.queryString(), nil, false)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("tabledata: respons tidak valid: %w", err)
	}
	return rows, nil
}

// GetSingle mengembalikan baris pertama, atau (nil, nil) bila kosong.
func (q *Query) GetSingle(ctx context.Context) (map[string]interface{}, error) {
	rows, err := q.Single().Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Insert mengirim satu objek atau slice objek, dan mengembalikan baris
// tersimpan (Prefer: return=representation).
func (q *Query) Insert(ctx context.Context, payload interface{}) ([]map[string]interface{}, error) {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tabledata: payload tidak bisa di-serialize: %w", err)
	}
	body, err := q.client.do(ctx, http.MethodPost, q.table, "", raw, true)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("tabledata: respons tidak valid: %w", err)
	}
	return rows, nil
}

// Update mem-patch baris yang lolos filter. Tanpa filter server menolak.
func (q *Query) Update(ctx context.Context, patch interface{}) ([]map[string]interface{}, error) {
	raw, err := sonic.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("tabledata: patch tidak bisa di-serialize: %w", err)
	}
	body, err := q.client.do(ctx, http.MethodPatch, q.table, q.queryString(), raw, true)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("tabledata: respons tidak valid: %w", err)
	}
	return rows, nil
}

// SoftDelete menandai baris terhapus lewat patch deleted_at.
func (q *Query) SoftDelete(ctx context.Context) error {
	_, err := q.Update(ctx, map[string]interface{}{
		"deleted_at": time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

/* ===================== TRANSPORT ===================== */

func (q *Query) queryString() string {
	vals := url.Values{}
	for _, f := range q.filters {
		f.appendTo(vals)
	}
	if len(q.selects) > 0 {
		vals.Set("select", strings.Join(q.selects, ","))
	}
	if q.order != "" {
		vals.Set("order", q.order)
	}
	if q.limit > 0 {
		vals.Set("limit", strconv.Itoa(q.limit))
	}
	return vals.Encode()
}

func (c *Client) do(ctx context.Context, method, table, query string, body []byte, representation bool) ([]byte, error) {
	endpoint := c.baseURL + "/rest/v1/" + table
	if query != "" {
		endpoint += "?" + query
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if method == http.MethodGet {
		req.Header.Set("Accept-Profile", "public")
	} else {
		req.Header.Set("Content-Profile", "public")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if representation {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: extractMessage(data)}
	}
	return data, nil
}

// bearer: token sesi bila ada, apikey sebagai fallback anonim.
func (c *Client) bearer() string {
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			return tok
		}
	}
	return c.apiKey
}

func extractMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}
