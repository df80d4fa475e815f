// Package metakocka is a small client for the Metakocka ERP REST (JSON) API.
package metakocka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/pkg/tracing"
)

// APIError is returned when Metakocka answers with a non-zero opr_code.
type APIError struct {
	Method  string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metakocka %s failed (code %s): %s", e.Method, e.Code, e.Message)
}

type Credentials struct {
	CompanyID string
	SecretKey string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: tracing.WrapHTTPClient(&http.Client{Timeout: timeout}),
	}
}

type Product struct {
	MkID       string  `json:"mk_id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	SalesPrice float64 `json:"sales_price"`
	Stock      float64 `json:"stock"`
}

type Partner struct {
	Name         string
	Email        string
	Phone        string
	Street       string
	PostNumber   string
	Place        string
	Country      string
	ContactName  string
	BusinessType string // "business" or "individual"
}

type OrderLine struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}

type SalesOrder struct {
	Title     string
	Partner   Partner
	Lines     []OrderLine
	Currency  string
	DocDate   time.Time
	Reference string
}

// call posts payload plus credentials to <base>/<method> and returns the raw response body.
func (c *Client) call(ctx context.Context, creds Credentials, method string, payload map[string]interface{}) (gjson.Result, error) {
	body := map[string]interface{}{
		"secret_key": creds.SecretKey,
		"company_id": creds.CompanyID,
	}
	for k, v := range payload {
		body[k] = v
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(raw))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("metakocka %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read metakocka response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("metakocka %s returned HTTP %d", method, resp.StatusCode)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("metakocka %s returned invalid JSON", method)
	}

	result := gjson.ParseBytes(data)
	if code := result.Get("opr_code").String(); code != "0" {
		msg := result.Get("opr_desc_app").String()
		if msg == "" {
			msg = result.Get("opr_desc").String()
		}
		return result, &APIError{Method: method, Code: code, Message: msg}
	}
	return result, nil
}

// TestConnection validates credentials with a one-item product listing.
func (c *Client) TestConnection(ctx context.Context, creds Credentials) error {
	_, err := c.call(ctx, creds, "product_list", map[string]interface{}{"limit": 1})
	return err
}

func (c *Client) ListProducts(ctx context.Context, creds Credentials, offset, limit int) ([]Product, error) {
	res, err := c.call(ctx, creds, "product_list", map[string]interface{}{
		"offset": offset,
		"limit":  limit,
	})
	if err != nil {
		return nil, err
	}

	items := res.Get("product_list").Array()
	products := make([]Product, 0, len(items))
	for _, item := range items {
		products = append(products, Product{
			MkID:       item.Get("mk_id").String(),
			Code:       item.Get("code").String(),
			Name:       item.Get("name").String(),
			Unit:       item.Get("unit").String(),
			SalesPrice: item.Get("sales_price").Float(),
			Stock:      item.Get("amount").Float(),
		})
	}
	return products, nil
}

func partnerPayload(p Partner) map[string]interface{} {
	businessEntity := "true"
	if p.BusinessType == "individual" {
		businessEntity = "false"
	}
	payload := map[string]interface{}{
		"business_entity": businessEntity,
		"taxpayer":        businessEntity,
		"customer":        p.Name,
		"street":          p.Street,
		"post_number":     p.PostNumber,
		"place":           p.Place,
		"country":         p.Country,
	}
	if p.Email != "" || p.ContactName != "" {
		payload["partner_contact"] = map[string]interface{}{
			"name":  p.ContactName,
			"email": p.Email,
			"gsm":   p.Phone,
		}
	}
	return payload
}

// AddPartner creates a partner and returns its Metakocka id.
func (c *Client) AddPartner(ctx context.Context, creds Credentials, p Partner) (string, error) {
	res, err := c.call(ctx, creds, "partner_add", map[string]interface{}{"partner": partnerPayload(p)})
	if err != nil {
		return "", err
	}
	id := res.Get("partner_id").String()
	if id == "" {
		id = res.Get("mk_id").String()
	}
	return id, nil
}

// PutSalesOrder creates a sales order document and returns its Metakocka id.
func (c *Client) PutSalesOrder(ctx context.Context, creds Credentials, order SalesOrder) (string, error) {
	lines := make([]map[string]interface{}, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, map[string]interface{}{
			"code":           l.Code,
			"name":           l.Name,
			"amount":         fmt.Sprintf("%g", l.Amount),
			"price":          fmt.Sprintf("%.2f", l.Price),
			"price_with_tax": fmt.Sprintf("%.2f", l.Price),
		})
	}

	docDate := order.DocDate
	if docDate.IsZero() {
		docDate = time.Now()
	}

	res, err := c.call(ctx, creds, "put_document", map[string]interface{}{
		"doc_type":      "sales_order",
		"title":         order.Title,
		"doc_date":      docDate.Format("2006-01-02-07:00"),
		"currency_code": order.Currency,
		"buyer_order":   order.Reference,
		"partner":       partnerPayload(order.Partner),
		"product_list":  lines,
	})
	if err != nil {
		return "", err
	}
	return res.Get("mk_id").String(), nil
}
