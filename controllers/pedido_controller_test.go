package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bonaparte-uniformes/bonaparte-api/models"
)

func pedidoRoutes() *httptest.Server {
	router := setupTestRouter()
	router.GET("/api/pedidos", ListPedidos)
	router.POST("/api/pedidos", CreatePedido)
	router.PUT("/api/pedidos/:id", UpdatePedido)
	router.DELETE("/api/pedidos/:id", DeletePedido)
	return httptest.NewServer(router)
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func decodePedido(t *testing.T, resp *http.Response) models.Pedido {
	t.Helper()
	defer resp.Body.Close()

	var pedido models.Pedido
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&pedido))
	return pedido
}

func TestCreateAndFetchPedidoRoundTrip(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	resp := doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{
		"clienteNombre": "Ana",
		"precioTotal":   500,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodePedido(t, resp)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Folio)

	resp = doJSON(t, "GET", server.URL+"/api/pedidos", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var pedidos []map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&pedidos))
	assert.Len(t, pedidos, 1)

	fetched := pedidos[0]
	assert.Equal(t, "Ana", fetched["clienteNombre"])
	assert.Equal(t, 500.0, fetched["precioTotal"])
	assert.Equal(t, 0.0, fetched["anticipo"])
	assert.Equal(t, 0.0, fetched["saldo"])
	assert.NotEmpty(t, fetched["folio"])
	assert.NotNil(t, fetched["id"])
}

func TestListPedidosNewestFirst(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	first := decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{"clienteNombre": "Primero"}))
	second := decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{"clienteNombre": "Segundo"}))

	resp := doJSON(t, "GET", server.URL+"/api/pedidos", nil)
	defer resp.Body.Close()
	var pedidos []models.Pedido
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&pedidos))
	assert.Len(t, pedidos, 2)
	assert.Equal(t, second.ID, pedidos[0].ID)
	assert.Equal(t, first.ID, pedidos[1].ID)
}

func TestUpdatePedidoMergesFields(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	created := decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{
		"clienteNombre": "Ana",
		"precioTotal":   500,
		"anticipo":      100,
	}))

	resp := doJSON(t, "PUT", fmt.Sprintf("%s/api/pedidos/%d", server.URL, created.ID), map[string]any{
		"estado": "corte",
		"saldo":  400,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodePedido(t, resp)

	assert.Equal(t, "corte", updated.Estado)
	assert.Equal(t, 400.0, updated.Saldo)
	assert.Equal(t, "Ana", updated.ClienteNombre, "omitted fields survive the update")
	assert.Equal(t, 500.0, updated.PrecioTotal)
	assert.Equal(t, 100.0, updated.Anticipo)
	assert.Equal(t, created.Folio, updated.Folio, "folio survives updates that omit it")
	assert.True(t, updated.ActualizadoEn.After(created.ActualizadoEn) ||
		updated.ActualizadoEn.Equal(created.ActualizadoEn))
}

func TestUpdatePedidoRejectsInvalidNumeric(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	created := decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{
		"precioTotal": 500,
	}))

	resp := doJSON(t, "PUT", fmt.Sprintf("%s/api/pedidos/%d", server.URL, created.ID), map[string]any{
		"precioTotal": "quinientos",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The stored value is untouched.
	resp = doJSON(t, "GET", server.URL+"/api/pedidos", nil)
	defer resp.Body.Close()
	var pedidos []models.Pedido
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&pedidos))
	assert.Equal(t, 500.0, pedidos[0].PrecioTotal)
}

func TestUpdatePedidoNotFound(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	resp := doJSON(t, "PUT", server.URL+"/api/pedidos/999", map[string]any{"estado": "corte"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeletePedido(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	created := decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{}))

	resp := doJSON(t, "DELETE", fmt.Sprintf("%s/api/pedidos/%d", server.URL, created.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
}

func TestDeletePedidoNotFoundLeavesCollectionAlone(t *testing.T) {
	store, _ := setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	decodePedido(t, doJSON(t, "POST", server.URL+"/api/pedidos", map[string]any{}))

	resp := doJSON(t, "DELETE", server.URL+"/api/pedidos/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	pedidos, err := store.ListPedidos()
	assert.NoError(t, err)
	assert.Len(t, pedidos, 1)
}

func TestPedidoInvalidIDParam(t *testing.T) {
	setupTest(t)
	server := pedidoRoutes()
	defer server.Close()

	resp := doJSON(t, "PUT", server.URL+"/api/pedidos/abc", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
