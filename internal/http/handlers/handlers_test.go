package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"goldlinks/internal/app"
	"goldlinks/internal/auth"
	"goldlinks/internal/config"
	"goldlinks/internal/repo/repotest"
	"goldlinks/internal/services"
	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	e        *echo.Echo
	services *app.Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := repotest.NewDB()
	cfg := &config.Config{DefaultTimezone: "UTC", StatusFeedInterval: 20 * time.Millisecond}

	storeService := services.NewStoreService(db.Stores(), db.Hours(), nil, cfg.DefaultTimezone)
	svcs := &app.Services{
		Config:         cfg,
		AuthService:    auth.NewService(db.Users(), auth.Options{Secret: "handler-test"}),
		StoreService:   storeService,
		ProductService: services.NewProductService(db.Products(), storeService, nil),
		CompareService: services.NewCompareService(db.Stores(), db.Products(), cfg.DefaultTimezone),
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	SetupRoutes(e.Group("/api/v1"), svcs)

	return &testEnv{e: e, services: svcs}
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

// register signs up an owner through the API and returns the access token
func (env *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email: email, Password: "goldchains", Name: "Owner",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp models.LoginResponse
	decode(t, rec, &resp)
	return resp.AccessToken
}

func (env *testEnv) createStore(t *testing.T, token string, req models.CreateStoreRequest) models.Store {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/stores", req, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var store models.Store
	decode(t, rec, &store)
	return store
}

func TestParseHoursEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/hours/parse", models.ParseHoursRequest{
		Text:     "Mon-Sat: 10AM-6PM, Sun: Closed",
		At:       "2024-01-01T12:00:00Z",
		Timezone: "UTC",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.ParseHoursResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Records, 7)
	assert.Equal(t, "10:00", resp.Records[0].OpenTime)
	assert.True(t, resp.Records[6].IsClosed)
	assert.Equal(t, "Sunday: Closed", resp.Summary[6].Text)
	require.NotNil(t, resp.Status)
	assert.True(t, resp.Status.IsOpen)
	assert.Equal(t, "Closes at 6:00 PM", resp.Status.NextChange)
	assert.Nil(t, resp.NextOpening)

	// Sunday in New York
	rec = env.do(t, http.MethodPost, "/hours/parse", models.ParseHoursRequest{
		Text:     "Mon-Sat: 10AM-6PM, Sun: Closed",
		At:       "2024-01-07T17:00:00Z",
		Timezone: "America/New_York",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.False(t, resp.Status.IsOpen)
	assert.Equal(t, "Closed on Sunday", resp.Status.NextChange)
	require.NotNil(t, resp.NextOpening)
	assert.Equal(t, "Monday", resp.NextOpening.DayName)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing text", models.ParseHoursRequest{}},
		{"bad zone", models.ParseHoursRequest{Text: "Mon: 9AM-5PM", Timezone: "Nowhere/Land"}},
		{"bad instant", models.ParseHoursRequest{Text: "Mon: 9AM-5PM", At: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/hours/parse", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, errorOf(t, rec))
		})
	}
}

func TestOwnerStoreFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "owner@goldlinks.test")

	rec := env.do(t, http.MethodPost, "/stores", models.CreateStoreRequest{Name: "No Token"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", errorOf(t, rec))

	store := env.createStore(t, token, models.CreateStoreRequest{Name: "Miami Gold", City: "Miami", Timezone: "UTC"})

	rec = env.do(t, http.MethodPut, "/stores/"+store.ID.String()+"/hours", models.UpdateHoursRequest{
		Text: "Mon-Fri: 9AM-5PM; Sat: 10AM-2PM",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view models.StoreHoursView
	decode(t, rec, &view)
	assert.Equal(t, services.HoursSourceRecords, view.Source)
	assert.Equal(t, "Saturday: 10:00 AM - 2:00 PM", view.Summary[5].Text)

	statusAt := func(at string) models.StoreStatus {
		rec := env.do(t, http.MethodGet, "/stores/"+store.ID.String()+"/status?at="+at, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var status models.StoreStatus
		decode(t, rec, &status)
		return status
	}

	status := statusAt("2024-01-01T16:59:00Z")
	assert.True(t, status.IsOpen)
	assert.Equal(t, "Closes at 5:00 PM", status.NextChange)

	status = statusAt("2024-01-01T17:00:00Z")
	assert.False(t, status.IsOpen)
	assert.Equal(t, "Currently Closed", status.NextChange)
	require.NotNil(t, status.NextOpening)
	assert.Equal(t, "Tuesday", status.NextOpening.DayName)

	rec = env.do(t, http.MethodGet, "/stores/"+store.ID.String()+"/hours", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/me/stores", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.StoreWithStatus
	decode(t, rec, &mine)
	assert.Len(t, mine, 1)

	other := env.register(t, "rival@goldlinks.test")
	name := "Hijacked"
	rec = env.do(t, http.MethodPut, "/stores/"+store.ID.String(), models.UpdateStoreRequest{Name: &name}, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/stores/"+store.ID.String()+"/logo", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/stores/"+store.ID.String(), nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/stores/"+store.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusEndpointErrors(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "owner@goldlinks.test")
	store := env.createStore(t, token, models.CreateStoreRequest{Name: "Shop"})

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/stores/not-a-uuid/status", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/stores/"+"00000000-0000-0000-0000-000000000001/status", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/stores/"+store.ID.String()+"/status?at=noon", nil, "").Code)

	rec := env.do(t, http.MethodGet, "/stores/"+store.ID.String()+"/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status models.StoreStatus
	decode(t, rec, &status)
	assert.False(t, status.IsOpen)
	assert.Equal(t, services.HoursSourceNone, status.Source)
	assert.True(t, strings.HasPrefix(status.NextChange, "Closed on "))
}

func TestCompareEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "owner@goldlinks.test")
	store := env.createStore(t, token, models.CreateStoreRequest{Name: "Chain Town", HoursText: "Mon-Sun: 12AM-11:59PM"})

	for _, p := range []map[string]interface{}{
		{"name": "Rope 14K", "karat": "14K", "style": "rope", "price": "600", "weight_grams": "6", "length_inches": "20"},
		{"name": "Rope 14K long", "karat": "14K", "style": "rope", "price": "900", "weight_grams": "10", "length_inches": "24"},
		{"name": "Box 10K", "karat": "10K", "style": "box", "price": "300", "weight_grams": "5", "length_inches": "18"},
	} {
		rec := env.do(t, http.MethodPost, "/stores/"+store.ID.String()+"/products", p, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/compare?karat=14k&style=rope&sort=price_desc&max_length=22", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.CompareResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Rope 14K", resp.Data[0].Name)
	assert.Equal(t, "100", resp.Data[0].PricePerGram.String())
	assert.Equal(t, "Chain Town", resp.Data[0].StoreName)

	rec = env.do(t, http.MethodGet, "/compare?sort=price_per_gram", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, "Box 10K", resp.Data[0].Name)

	rec = env.do(t, http.MethodGet, "/stores/"+store.ID.String()+"/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	decode(t, rec, &products)
	assert.Len(t, products, 3)

	for _, q := range []string{"min_price=cheap", "min_price=10&max_price=5", "open_now=maybe", "limit=-1", "sort=random"} {
		rec := env.do(t, http.MethodGet, "/compare?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestProductImportEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "importer@goldlinks.test")
	store := env.createStore(t, token, models.CreateStoreRequest{Name: "Bulk Gold"})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,karat,price,weight\nRope,14K,600,6\nBroken,14K,,\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/"+store.ID.String()+"/products/import", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result models.ImportResult
	decode(t, rec, &result)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)

	rec = env.do(t, http.MethodPost, "/stores/"+store.ID.String()+"/products/import", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File is required", errorOf(t, rec))
}

func TestStatusFeed(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.e)
	defer server.Close()

	owner := services.Actor{UserID: uuid.New(), Role: models.RoleBusinessOwner}
	ctx := context.Background()
	store, err := env.services.StoreService.Create(ctx, owner, models.CreateStoreRequest{
		Name: "Always Open", Timezone: "UTC", HoursText: "Mon-Sun: 12AM-11:59PM",
	})
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws/stores/"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"00000000-0000-0000-0000-000000000001/status", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+store.ID.String()+"/status", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first WebSocketMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, MessageTypeStatus, first.Type)
	require.NotNil(t, first.Data)
	assert.Equal(t, store.ID, first.Data.StoreID)
	assert.NotContains(t, first.Data.NextChange, "Closed on")

	empty := ""
	_, err = env.services.StoreService.Update(ctx, owner, store.ID, models.UpdateStoreRequest{HoursText: &empty})
	require.NoError(t, err)

	var second WebSocketMessage
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, MessageTypeStatus, second.Type)
	require.NotNil(t, second.Data)
	assert.False(t, second.Data.IsOpen)
	assert.True(t, strings.HasPrefix(second.Data.NextChange, "Closed on "))

	require.NoError(t, env.services.StoreService.Delete(ctx, owner, store.ID))

	var gone WebSocketMessage
	require.NoError(t, conn.ReadJSON(&gone))
	assert.Equal(t, MessageTypeError, gone.Type)
	assert.Equal(t, "Store no longer exists", gone.Error)
}
