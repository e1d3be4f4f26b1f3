package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipedex/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQueryService is a mock implementation of catalog.Service
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) APIVersion() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockQueryService) Recipes(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockQueryService) Recipe(ctx context.Context, title string) (model.Recipe, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func newTestServer(t *testing.T) (*MockQueryService, *http.ServeMux) {
	t.Helper()
	mockService := new(MockQueryService)
	handler := NewHandler(mockService)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mockService, mux
}

func postQuery(mux *http.ServeMux, query string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) graphQLResponse {
	t.Helper()
	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandler_APIVersion(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("APIVersion").Return("0.1")

	rr := postQuery(mux, `{ apiVersion }`)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "0.1", data["apiVersion"])
}

func TestHandler_Recipes(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("Recipes", mock.Anything).Return([]model.Recipe{
		{
			Title:        "Pancakes",
			Ingredients:  []model.Ingredient{{Name: "flour", Qty: "2 cups"}},
			Instructions: []string{"Mix", "Cook"},
			Tags:         []string{"breakfast"},
			Media:        []model.MediaRef{},
		},
	}, nil)

	rr := postQuery(mux, `{ recipes { title ingredients { name qty } instructions tags media { anchor url } } }`)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	recipes := data["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	first := recipes[0].(map[string]interface{})
	assert.Equal(t, "Pancakes", first["title"])
	assert.Equal(t, []interface{}{"Mix", "Cook"}, first["instructions"])
}

func TestHandler_Recipes_EngineError(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("Recipes", mock.Anything).Return(nil, model.WrapDbError(errors.New("cursor error")))

	rr := postQuery(mux, `{ recipes { title } }`)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Nil(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "An unexpected error has occurred", resp.Errors[0].Message)
	assert.Equal(t, "DB_ERROR", resp.Errors[0].Extensions["kind"])
	// The internal cause never reaches the client.
	assert.NotContains(t, rr.Body.String(), "cursor error")
}

func TestHandler_Recipe(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("Recipe", mock.Anything, "Pancakes").Return(model.Recipe{
		Title:        "Pancakes",
		Ingredients:  []model.Ingredient{{Name: "flour", Qty: "2 cups"}},
		Instructions: []string{"Mix", "Cook"},
		Tags:         []string{"breakfast"},
		Media:        []model.MediaRef{},
	}, nil)

	rr := postQuery(mux, `{ recipe(title: "Pancakes") { title } }`)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	recipe := data["recipe"].(map[string]interface{})
	assert.Equal(t, "Pancakes", recipe["title"])
	mockService.AssertExpectations(t)
}

func TestHandler_Recipe_NotFound(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("Recipe", mock.Anything, "Waffles").
		Return(model.Recipe{}, &model.AppError{Kind: model.NotFoundError})

	rr := postQuery(mux, `{ recipe(title: "Waffles") { title } }`)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Nil(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "The requested item was not found", resp.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["kind"])
}

func TestHandler_Recipe_Canceled(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("Recipe", mock.Anything, "Pancakes").
		Return(model.Recipe{}, model.WrapDbError(context.Canceled))

	rr := postQuery(mux, `{ recipe(title: "Pancakes") { title } }`)

	assert.Equal(t, 499, rr.Code)
}

func TestHandler_UnsupportedQuery(t *testing.T) {
	_, mux := newTestServer(t)

	rr := postQuery(mux, `{ pancakes }`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Invalid field value provided", resp.Errors[0].Message)
	assert.Equal(t, "INVALID_FIELD", resp.Errors[0].Extensions["kind"])
}

func TestHandler_InvalidBody(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "BAD_REQUEST")
}

func TestHandler_QueryViaGet(t *testing.T) {
	mockService, mux := newTestServer(t)
	mockService.On("APIVersion").Return("0.1")

	req := httptest.NewRequest("GET", "/graphql?query=%7B%20apiVersion%20%7D", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "0.1", data["apiVersion"])
}

func TestHandler_Console(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest("GET", "/graphiql", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "/graphql")
}

func TestHandler_Health(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestHandler_UnroutablePath(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest("GET", "/no/such/path", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrCodeNotFound)
}
