package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": status < 400, "data": data})
}

func fakeAPI(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, []model.Product{
			{ID: "1", Name: "Ghế Công Thái Học X1", Category: model.CategoryChair, Price: 4500000},
			{ID: "2", Name: "Bàn Nâng Hạ Pro", Category: model.CategoryDesk, Price: 8500000},
		})
	})
	mux.HandleFunc("GET /api/blogs", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, []model.BlogPost{})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, model.Login{
			Token: "tok",
			User:  model.User{ID: "5", Name: "Minh", Email: "minh@ergolife.vn", Role: model.RoleUser},
		})
	})
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, model.Cart{ID: "1", Items: []model.CartItem{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := &cli{}
	root := c.rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	c.close()
	return out.String(), err
}

func setEnv(t *testing.T, apiURL string) {
	t.Setenv("ERGO_STOREFRONT_API_URL", apiURL)
	t.Setenv("ERGO_STOREFRONT_STORE", "sqlite")
	t.Setenv("ERGO_STOREFRONT_STORE_PATH", filepath.Join(t.TempDir(), "session.db"))
	t.Setenv("ERGO_STOREFRONT_GEMINI_API_KEY", "")
	t.Setenv("ERGO_LOG_LEVEL", "error")
}

func TestProductsJSON(t *testing.T) {
	setEnv(t, fakeAPI(t))

	out, err := execute(t, "products", "--sort", "price_desc", "--json")
	require.NoError(t, err)

	var products []model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 2)
	assert.Equal(t, model.ID("2"), products[0].ID)
}

func TestProductsRejectsUnknownSort(t *testing.T) {
	setEnv(t, fakeAPI(t))

	_, err := execute(t, "products", "--sort", "rating")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort")
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	setEnv(t, fakeAPI(t))

	_, err := execute(t, "login", "minh@ergolife.vn", "-p", "secret1")
	require.NoError(t, err)

	out, err := execute(t, "whoami", "--json")
	require.NoError(t, err)
	var user model.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "Minh", user.Name)

	_, err = execute(t, "logout")
	require.NoError(t, err)
	out, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Chưa đăng nhập")
}

func TestCartAddWithoutLogin(t *testing.T) {
	setEnv(t, fakeAPI(t))

	out, err := execute(t, "cart", "add", "1")

	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Vui lòng đăng nhập")
}

func TestAskWithoutKeyApologises(t *testing.T) {
	setEnv(t, fakeAPI(t))

	out, err := execute(t, "ask", "--json", "ghế", "nào", "tốt?")
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.NotEmpty(t, body["reply"])
}

func TestAdminRequiresRole(t *testing.T) {
	setEnv(t, fakeAPI(t))
	_, err := execute(t, "login", "minh@ergolife.vn", "-p", "secret1")
	require.NoError(t, err)

	_, err = execute(t, "admin", "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open the dashboard panel")
}
