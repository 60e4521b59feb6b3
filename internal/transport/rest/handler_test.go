package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	serrors "shoplist/internal/errors"
	"shoplist/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockItemService is a mock implementation of the ItemService interface
type mockItemService struct {
	item  *service.ItemDto
	items []service.ItemDto
	error error

	createCalls int
	gotCreate   service.ItemCreateDto
	gotUpdate   service.ItemUpdateDto
	gotID       int64
}

func (m *mockItemService) FindAll(_ context.Context) ([]service.ItemDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.items, nil
}

func (m *mockItemService) FindByID(_ context.Context, id int64) (*service.ItemDto, error) {
	m.gotID = id
	if m.error != nil {
		return nil, m.error
	}
	return m.item, nil
}

func (m *mockItemService) Create(_ context.Context, dto service.ItemCreateDto) (*service.ItemDto, error) {
	m.createCalls++
	m.gotCreate = dto
	if m.error != nil {
		return nil, m.error
	}
	return m.item, nil
}

func (m *mockItemService) Update(_ context.Context, id int64, dto service.ItemUpdateDto) (*service.ItemDto, error) {
	m.gotID = id
	m.gotUpdate = dto
	if m.error != nil {
		return nil, m.error
	}
	return m.item, nil
}

func (m *mockItemService) DeleteByID(_ context.Context, id int64) (*service.ItemDto, error) {
	m.gotID = id
	if m.error != nil {
		return nil, m.error
	}
	return m.item, nil
}

func newTestRouter(svc service.ItemService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func Test_ItemAPI_FindAll(t *testing.T) {
	// given
	mockService := &mockItemService{items: []service.ItemDto{
		{ID: 1, Name: "Milk", Quantity: 1, Purchased: false},
		{ID: 2, Name: "Bread", Quantity: 2, Purchased: true},
	}}
	mux := newTestRouter(mockService)
	// when
	rec := doRequest(t, mux, http.MethodGet, "/api/items", "")
	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"name":"Milk","quantity":1,"purchased":false},{"id":2,"name":"Bread","quantity":2,"purchased":true}]`,
		rec.Body.String())
}

func Test_ItemAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockItemService
		path         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - item found",
			mockService:  &mockItemService{item: &service.ItemDto{ID: 1, Name: "Milk", Quantity: 2}},
			path:         "/api/items/1",
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"Milk","quantity":2,"purchased":false}`,
		},
		{
			name:         "Not found - unknown id",
			mockService:  &mockItemService{error: serrors.ErrItemNotFound},
			path:         "/api/items/99999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Item not found"}`,
		},
		{
			name:         "Bad request - malformed id",
			mockService:  &mockItemService{},
			path:         "/api/items/abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Invalid item ID: abc"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodGet, tc.path, "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func Test_ItemAPI_Create(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		mockService   *mockItemService
		expectedCode  int
		expectedBody  string
		expectedCalls int
	}{
		{
			name:          "Created - name and quantity provided",
			body:          `{"name":"Milk","quantity":2}`,
			mockService:   &mockItemService{item: &service.ItemDto{ID: 3, Name: "Milk", Quantity: 2, Purchased: false}},
			expectedCode:  http.StatusCreated,
			expectedBody:  `{"id":3,"name":"Milk","quantity":2,"purchased":false}`,
			expectedCalls: 1,
		},
		{
			name:          "Created - zero quantity is still present",
			body:          `{"name":"Milk","quantity":0}`,
			mockService:   &mockItemService{item: &service.ItemDto{ID: 4, Name: "Milk", Quantity: 0}},
			expectedCode:  http.StatusCreated,
			expectedBody:  `{"id":4,"name":"Milk","quantity":0,"purchased":false}`,
			expectedCalls: 1,
		},
		{
			name:          "Bad request - missing quantity",
			body:          `{"name":"Milk"}`,
			mockService:   &mockItemService{},
			expectedCode:  http.StatusBadRequest,
			expectedBody:  `{"message":"Name and quantity are required"}`,
			expectedCalls: 0,
		},
		{
			name:          "Bad request - missing name",
			body:          `{"quantity":2}`,
			mockService:   &mockItemService{},
			expectedCode:  http.StatusBadRequest,
			expectedBody:  `{"message":"Name and quantity are required"}`,
			expectedCalls: 0,
		},
		{
			name:          "Bad request - malformed JSON",
			body:          `{"name":`,
			mockService:   &mockItemService{},
			expectedCode:  http.StatusBadRequest,
			expectedBody:  `{"message":"Invalid request body"}`,
			expectedCalls: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPost, "/api/items", tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			// a rejected payload must not reach the service
			assert.Equal(t, tc.expectedCalls, tc.mockService.createCalls)
		})
	}
}

func Test_ItemAPI_Update(t *testing.T) {
	t.Run("purchased false is applied, not treated as absent", func(t *testing.T) {
		// given
		mockService := &mockItemService{item: &service.ItemDto{ID: 1, Name: "Milk", Quantity: 2, Purchased: false}}
		mux := newTestRouter(mockService)
		// when
		rec := doRequest(t, mux, http.MethodPut, "/api/items/1", `{"purchased":false}`)
		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, mockService.gotUpdate.Purchased)
		assert.False(t, *mockService.gotUpdate.Purchased)
		assert.Nil(t, mockService.gotUpdate.Name)
		assert.Nil(t, mockService.gotUpdate.Quantity)
	})

	t.Run("unknown id responds 404", func(t *testing.T) {
		// given
		mockService := &mockItemService{error: serrors.ErrItemNotFound}
		mux := newTestRouter(mockService)
		// when
		rec := doRequest(t, mux, http.MethodPut, "/api/items/99999", `{"name":"x"}`)
		// then
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Item not found"}`, rec.Body.String())
	})

	t.Run("empty body is a no-op update", func(t *testing.T) {
		// given
		mockService := &mockItemService{item: &service.ItemDto{ID: 1, Name: "Milk", Quantity: 2}}
		mux := newTestRouter(mockService)
		// when
		rec := doRequest(t, mux, http.MethodPut, "/api/items/1", `{}`)
		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, mockService.gotUpdate.Name)
		assert.Nil(t, mockService.gotUpdate.Quantity)
		assert.Nil(t, mockService.gotUpdate.Purchased)
	})
}

func Test_ItemAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockItemService
		path         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - echoes the removed record",
			mockService:  &mockItemService{item: &service.ItemDto{ID: 1, Name: "Milk", Quantity: 2, Purchased: true}},
			path:         "/api/items/1",
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Item deleted successfully","item":{"id":1,"name":"Milk","quantity":2,"purchased":true}}`,
		},
		{
			name:         "Not found - unknown id",
			mockService:  &mockItemService{error: serrors.ErrItemNotFound},
			path:         "/api/items/99999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Item not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodDelete, tc.path, "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func Test_ItemAPI_HealthCheck(t *testing.T) {
	// given
	mux := newTestRouter(&mockItemService{})
	// when
	rec := doRequest(t, mux, http.MethodGet, "/api/health", "")
	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
