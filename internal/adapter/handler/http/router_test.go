package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeRez0/shoptrack/internal/adapter/auth"
	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/adapter/notify"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage/memory"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/service"
	"github.com/MikeRez0/shoptrack/internal/core/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *Router
	repo   *memory.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	repo := memory.NewRepository()
	tokens, err := auth.New(&config.Auth{TokenTTL: time.Hour})
	require.NoError(t, err)
	svc, err := service.NewService(repo, tokens, notify.NewLogNotifier("http://test", log), nil, log)
	require.NoError(t, err)

	h := Handlers{}
	h.User, err = NewUserHandler(svc, log)
	require.NoError(t, err)
	h.Catalog, err = NewCatalogHandler(svc, log)
	require.NoError(t, err)
	h.Order, err = NewOrderHandler(svc, log)
	require.NoError(t, err)
	h.Product, err = NewProductHandler(svc, log)
	require.NoError(t, err)
	h.Lifecycle, err = NewLifecycleHandler(svc, log)
	require.NoError(t, err)
	h.Image, err = NewImageHandler(svc, log)
	require.NoError(t, err)

	r, err := NewRouter(tokens, h)
	require.NoError(t, err)

	return &testServer{router: r, repo: repo}
}

// addUser stores an active user with password "password".
func (s *testServer) addUser(t *testing.T, email string, caps ...domain.Capability) *domain.User {
	t.Helper()
	hashed, err := utils.HashPassword("password")
	require.NoError(t, err)
	u, err := s.repo.CreateUser(context.Background(), &domain.User{Email: email, Name: email, Password: hashed,
		IsActive: true, IsVerified: true, Capabilities: domain.NewCapabilities(caps...)})
	require.NoError(t, err)
	return u
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeaderKey, authType+" "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_Auth(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "ana@example.com")

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", status: http.StatusUnauthorized},
		{name: "bad type", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "too many words", header: "Bearer a b", status: http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", http.NoBody)
			if test.header != "" {
				req.Header.Set(authHeaderKey, test.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			assert.Equal(t, test.status, w.Code)
		})
	}

	w := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t, "ana@example.com")
	w = s.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@example.com", decode(t, w)["email"])
}

func TestRouter_Register(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/users/register", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/users/register", "",
		gin.H{"email": "eva@example.com", "password": "secret-pass", "name": "Eva"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["is_active"])

	w = s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "eva@example.com", "password": "secret-pass"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	user, err := s.repo.GetUserByEmail(context.Background(), "eva@example.com")
	require.NoError(t, err)
	w = s.do(t, http.MethodGet, "/api/users/verify/"+user.VerificationSecret, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	s.login(t, "eva@example.com")

	w = s.do(t, http.MethodPost, "/api/users/register", "",
		gin.H{"email": "EVA@example.com", "password": "secret-pass", "name": "Eva"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_Capabilities(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "client@example.com")
	s.addUser(t, "boss@example.com", domain.CapStaff)

	client := s.login(t, "client@example.com")
	boss := s.login(t, "boss@example.com")

	w := s.do(t, http.MethodPost, "/api/orders", client, gin.H{"client": "client@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/shops", client, gin.H{"name": "amazon", "link": "https://amazon.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/shops", boss, gin.H{"name": "amazon", "link": "https://amazon.com"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/shops", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"amazon","link":"https://amazon.com"}]`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/common-information", boss, gin.H{"change_rate": 1.5, "cost_per_pound": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"change_rate":1.5,"cost_per_pound":4}`, w.Body.String())
}

func TestRouter_OrderFlow(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "client@example.com")
	s.addUser(t, "agent@example.com", domain.CapAgent, domain.CapLogistical)
	_, err := s.repo.CreateShop(context.Background(), &domain.Shop{Name: "amazon", Link: "https://amazon.com"})
	require.NoError(t, err)

	agent := s.login(t, "agent@example.com")

	w := s.do(t, http.MethodPost, "/api/orders", agent, gin.H{"client": "nobody@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client", decode(t, w)["field"])

	w = s.do(t, http.MethodPost, "/api/orders", agent, gin.H{"client": "client@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := uint64(decode(t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, "/api/products", agent, gin.H{"order": orderID, "shop": "nowhere",
		"name": "Keyboard", "amount_requested": 5, "shop_cost": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "shop", decode(t, w)["field"])

	w = s.do(t, http.MethodPost, "/api/products", agent, gin.H{"order": orderID, "shop": "amazon",
		"name": "Keyboard", "amount_requested": 5, "shop_cost": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decode(t, w)
	assert.Equal(t, float64(50), product["total_cost"])
	assert.Equal(t, "Ordered", product["status"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), agent, nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := decode(t, w)
	assert.Equal(t, float64(50), order["total_cost"])
	assert.Len(t, order["products"], 1)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d", orderID), agent, gin.H{"sales_manager": 12345})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/orders?client=client&min_cost=40", agent, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	w = s.do(t, http.MethodGet, "/api/orders/999", agent, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/orders/abc", agent, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/deliver-receips", agent, gin.H{"order": orderID, "weight": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	deliverID := uint64(decode(t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/deliver-receips/%d/delivery", deliverID), agent,
		gin.H{"package_where_was_send": 1, "delivered_products": []gin.H{{"id": 1, "amount_delivered": 1}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "package_where_was_send", decode(t, w)["field"])

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/deliver-receips/%d/delivery", deliverID), agent,
		gin.H{"package_where_was_send": nil, "delivered_products": []gin.H{{"id": 1, "amount_delivered": 1}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "package_where_was_send", decode(t, w)["field"])

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), agent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_ImagesDisabled(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "ana@example.com")
	token := s.login(t, "ana@example.com")

	w := s.do(t, http.MethodDelete, "/api/images/abc.png", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_PurchaseWithoutLines(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "buyer@example.com", domain.CapBuyer)
	ctx := context.Background()
	_, err := s.repo.CreateShop(ctx, &domain.Shop{Name: "amazon", Link: "https://amazon.com"})
	require.NoError(t, err)
	account, err := s.repo.CreateBuyingAccount(ctx, &domain.BuyingAccount{AccountName: "main"})
	require.NoError(t, err)

	buyer := s.login(t, "buyer@example.com")
	w := s.do(t, http.MethodPost, "/api/shopping-receips", buyer,
		gin.H{"shopping_account": account.ID, "shop_of_buy": "amazon"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	receip := decode(t, w)
	assert.Equal(t, "amazon", receip["shop_of_buy"])
	assert.Empty(t, receip["buyed_products"])
	assert.Equal(t, float64(0), receip["total_cost_of_shopping"])
}
