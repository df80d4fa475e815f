package metakocka

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{CompanyID: "1234", SecretKey: "sk-test"}

func newTestServer(t *testing.T, handler func(method string, body map[string]interface{}) (int, string)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1234", body["company_id"])
		assert.Equal(t, "sk-test", body["secret_key"])

		status, resp := handler(r.URL.Path[1:], body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", 5*time.Second)
}

func TestClient_ListProducts(t *testing.T) {
	client := newTestServer(t, func(method string, body map[string]interface{}) (int, string) {
		assert.Equal(t, "product_list", method)
		assert.Equal(t, float64(100), body["limit"])
		return 200, `{"opr_code":"0","product_list":[
			{"mk_id":"900","code":"SKU-1","name":"Widget","unit":"kos","sales_price":"12.50","amount":"4"},
			{"mk_id":"901","code":"SKU-2","name":"Gadget","unit":"kos","sales_price":3}
		]}`
	})

	products, err := client.ListProducts(context.Background(), testCreds, 0, 100)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, Product{MkID: "900", Code: "SKU-1", Name: "Widget", Unit: "kos", SalesPrice: 12.5, Stock: 4}, products[0])
	assert.Equal(t, 3.0, products[1].SalesPrice)
}

func TestClient_APIError(t *testing.T) {
	client := newTestServer(t, func(method string, body map[string]interface{}) (int, string) {
		return 200, `{"opr_code":"1","opr_desc_app":"Wrong secret key"}`
	})

	err := client.TestConnection(context.Background(), testCreds)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "product_list", apiErr.Method)
	assert.Equal(t, "Wrong secret key", apiErr.Message)
}

func TestClient_HTTPAndJSONErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		client := newTestServer(t, func(string, map[string]interface{}) (int, string) {
			return 502, `bad gateway`
		})
		err := client.TestConnection(context.Background(), testCreds)
		assert.ErrorContains(t, err, "HTTP 502")
	})

	t.Run("invalid json", func(t *testing.T) {
		client := newTestServer(t, func(string, map[string]interface{}) (int, string) {
			return 200, `<html>`
		})
		err := client.TestConnection(context.Background(), testCreds)
		assert.ErrorContains(t, err, "invalid JSON")
	})
}

func TestClient_AddPartner(t *testing.T) {
	client := newTestServer(t, func(method string, body map[string]interface{}) (int, string) {
		assert.Equal(t, "partner_add", method)
		partner := body["partner"].(map[string]interface{})
		assert.Equal(t, "Acme d.o.o.", partner["customer"])
		assert.Equal(t, "true", partner["business_entity"])
		contact := partner["partner_contact"].(map[string]interface{})
		assert.Equal(t, "ana@acme.si", contact["email"])
		return 200, `{"opr_code":"0","partner_id":"555"}`
	})

	id, err := client.AddPartner(context.Background(), testCreds, Partner{
		Name:        "Acme d.o.o.",
		Email:       "ana@acme.si",
		ContactName: "Ana Novak",
		Country:     "SI",
	})
	require.NoError(t, err)
	assert.Equal(t, "555", id)
}

func TestClient_PutSalesOrder(t *testing.T) {
	client := newTestServer(t, func(method string, body map[string]interface{}) (int, string) {
		assert.Equal(t, "put_document", method)
		assert.Equal(t, "sales_order", body["doc_type"])
		assert.Equal(t, "EUR", body["currency_code"])
		assert.Equal(t, "2026-02-03+00:00", body["doc_date"])
		lines := body["product_list"].([]interface{})
		require.Len(t, lines, 1)
		line := lines[0].(map[string]interface{})
		assert.Equal(t, "2", line["amount"])
		assert.Equal(t, "1500.00", line["price"])
		return 200, `{"opr_code":"0","mk_id":"7001","count_code":"SO-2026-1"}`
	})

	id, err := client.PutSalesOrder(context.Background(), testCreds, SalesOrder{
		Title:    "Website redesign",
		Partner:  Partner{Name: "Acme"},
		Currency: "EUR",
		DocDate:  time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Lines:    []OrderLine{{Code: "SRV", Name: "Website redesign", Amount: 2, Price: 1500}},
	})
	require.NoError(t, err)
	assert.Equal(t, "7001", id)
}
