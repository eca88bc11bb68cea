package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-import-pipeline/internal/api"
	"go-import-pipeline/internal/api/handler"
	"go-import-pipeline/internal/pipeline"
	"go-import-pipeline/internal/store"
	"go-import-pipeline/pkg/router"
)

func testServer(t *testing.T) *router.Router {
	t.Helper()
	db, err := store.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mappings, err := store.NewMappings(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { mappings.Close() })

	r := router.New()
	api.RegisterRoutes(r, handler.New(db, mappings, pipeline.DefaultCatalog()))
	return r
}

func uploadCSV(t *testing.T, r *router.Router, csv string) map[string]interface{} {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "ledger.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("entity", "ledger-entries"))
	require.NoError(t, mw.WriteField("mode", "append"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const ledgerCSV = `Vendor Name,Amount,Currency,Period
ACME,100.50,EUR,2025-03
Globex,200,EUR,2025-03
`

func TestCreateImportSuggestsMapping(t *testing.T) {
	r := testServer(t)
	resp := uploadCSV(t, r, ledgerCSV)

	assert.Equal(t, "mapping_suggested", resp["state"])
	assert.Equal(t, "confirm_mapping", resp["pendingAction"])
	assert.Equal(t, float64(2), resp["rowCount"])

	suggested := resp["suggestedMapping"].(map[string]interface{})
	amount := suggested["Amount"].(map[string]interface{})
	assert.Equal(t, "Amount", amount["sourceColumn"])
	// "Vendor Name" folds onto VendorId
	vendor := suggested["VendorId"].(map[string]interface{})
	assert.Equal(t, "Vendor Name", vendor["sourceColumn"])
	assert.Equal(t, float64(0), resp["missingRequired"])
}

func TestConfirmMappingCommits(t *testing.T) {
	r := testServer(t)
	resp := uploadCSV(t, r, ledgerCSV)
	id := resp["id"].(string)

	// empty body accepts the suggestion
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/"+id+"/mapping", strings.NewReader(""))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var state map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "done", state["state"])
	assert.Equal(t, float64(2), state["rowCount"])

	// the batch turned up committed in the listing
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/imports", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var batches []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batches))
	require.Len(t, batches, 1)
	assert.Equal(t, "committed", batches[0]["status"])
}

func TestConfirmMappingIncomplete(t *testing.T) {
	r := testServer(t)
	// no currency or amount column anywhere
	resp := uploadCSV(t, r, "Vendor Name,Period\nACME,2025-03\n")
	id := resp["id"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/"+id+"/mapping", strings.NewReader(""))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var state map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "mapping_suggested", state["state"])
	assert.Equal(t, float64(2), state["missingRequired"])
}

func TestCancelImport(t *testing.T) {
	r := testServer(t)
	resp := uploadCSV(t, r, ledgerCSV)
	id := resp["id"].(string)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/imports/"+id+"/cancel", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/imports/"+id, nil))
	var state map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "cancelled", state["state"])
}

func TestGetImportUnknown(t *testing.T) {
	r := testServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/imports/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTransforms(t *testing.T) {
	r := testServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transforms?field=Currency", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var transforms []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transforms))
	ids := make([]string, len(transforms))
	for i, tr := range transforms {
		ids[i] = tr["id"].(string)
	}
	assert.Contains(t, ids, "currency-normalize")
}
