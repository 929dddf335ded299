package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/kv"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		Cart: config.CartConfig{
			TaxRate:         decimal.RequireFromString("0.16"),
			DuplicatePolicy: "merge",
		},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "steakaway",
			ExpirationMinutes: 60,
		},
	}

	menu, err := catalog.Default()
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	engineMetrics := metrics.NewEngineMetrics(nil)
	sessions := session.NewManager(kv.NewMemory(), cart.Options{
		TaxRate: cfg.Cart.TaxRate,
		Policy:  cart.MergeQuantities,
	}, logg, engineMetrics)

	return NewRouter(cfg, logg, menu, sessions, nil, engineMetrics)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func login(t *testing.T, handler http.Handler, userID string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"user_id": userID})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMenuList(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []struct {
			Name     string `json:"name"`
			Products []struct {
				ID           string `json:"id"`
				Customizable bool   `json:"customizable"`
			} `json:"products"`
		} `json:"categories"`
	}
	decodeData(t, rec, &body)
	require.Len(t, body.Categories, 5)
	require.Equal(t, "Steaks", body.Categories[0].Name)
	require.True(t, body.Categories[0].Products[0].Customizable)
}

func TestMenuSearch(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/menu/search?q=BURGER", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query    string `json:"query"`
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
	}
	decodeData(t, rec, &body)
	require.Equal(t, "BURGER", body.Query)
	require.Len(t, body.Products, 2)
	require.Equal(t, "Smashed Beef Burger", body.Products[0].Name)

	// No query returns the whole flattened menu.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/menu/search", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &body)
	require.Len(t, body.Products, 8)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/menu/search?q=sushi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &body)
	require.Empty(t, body.Products)
}

func TestMenuProductDetail(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/menu/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name              string              `json:"name"`
		StartingPrice     string              `json:"starting_price"`
		DefaultSelections map[string][]string `json:"default_selections"`
	}
	decodeData(t, rec, &body)
	require.Equal(t, "Classic Ribeye", body.Name)
	require.Equal(t, "1850.00", body.StartingPrice)
	require.Equal(t, []string{"Medium Rare"}, body.DefaultSelections["Doneness"])
	require.Equal(t, []string{"8 oz"}, body.DefaultSelections["Size"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/menu/products/999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuQuote(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/menu/products/1/quote", "", map[string]any{
		"selections": map[string]any{
			"Doneness":     "Medium",
			"Size":         "12 oz",
			"Ad-On Extras": []string{"Grilled Prawns"},
		},
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UnitPrice   string `json:"unit_price"`
		LineTotal   string `json:"line_total"`
		Fingerprint string `json:"fingerprint"`
	}
	decodeData(t, rec, &body)
	require.Equal(t, "2900.00", body.UnitPrice)
	require.Equal(t, "5800.00", body.LineTotal)
	require.NotEmpty(t, body.Fingerprint)
}

func TestMenuQuoteRejectsUnknownOption(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/menu/products/1/quote", "", map[string]any{
		"selections": map[string]any{
			"Doneness": "Blue Rare",
			"Size":     "8 oz",
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "SELECTION_ERROR")
}

func TestCartRequiresAuth(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

type cartBody struct {
	Lines []struct {
		Fingerprint string              `json:"fingerprint"`
		ProductID   string              `json:"product_id"`
		UnitPrice   string              `json:"unit_price"`
		Quantity    int                 `json:"quantity"`
		LineTotal   string              `json:"line_total"`
		Selections  map[string][]string `json:"selections"`
	} `json:"lines"`
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
	ItemCount  int    `json:"item_count"`
}

func TestCartLifecycle(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)
	token := login(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var empty cartBody
	decodeData(t, rec, &empty)
	require.Empty(t, empty.Lines)
	require.Equal(t, "0.00", empty.GrandTotal)

	addPayload := map[string]any{
		"product_id": "1",
		"selections": map[string]any{
			"Doneness":     "Medium",
			"Size":         "12 oz",
			"Ad-On Extras": []string{"Grilled Prawns"},
		},
		"quantity": 1,
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, addPayload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var afterAdd cartBody
	decodeData(t, rec, &afterAdd)
	require.Len(t, afterAdd.Lines, 1)
	require.Equal(t, "2900.00", afterAdd.Subtotal)
	require.Equal(t, "464.00", afterAdd.Tax)
	require.Equal(t, "3364.00", afterAdd.GrandTotal)

	// An identical add merges into the existing line.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, addPayload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var afterMerge cartBody
	decodeData(t, rec, &afterMerge)
	require.Len(t, afterMerge.Lines, 1)
	require.Equal(t, 2, afterMerge.Lines[0].Quantity)
	require.Equal(t, "5800.00", afterMerge.Subtotal)

	fingerprint := afterMerge.Lines[0].Fingerprint

	rec = doJSON(t, handler, http.MethodPatch, "/api/v1/cart/items/"+fingerprint, token, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	var afterUpdate cartBody
	decodeData(t, rec, &afterUpdate)
	require.Equal(t, 3, afterUpdate.Lines[0].Quantity)
	require.Equal(t, "8700.00", afterUpdate.Subtotal)

	// Quantity below one removes the line.
	rec = doJSON(t, handler, http.MethodPatch, "/api/v1/cart/items/"+fingerprint, token, map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	var afterZero cartBody
	decodeData(t, rec, &afterZero)
	require.Empty(t, afterZero.Lines)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, addPayload)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var afterClear cartBody
	decodeData(t, rec, &afterClear)
	require.Empty(t, afterClear.Lines)
	require.Equal(t, "0.00", afterClear.Subtotal)
}

func TestCartUpdateRequiresQuantity(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)
	token := login(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"product_id": "7"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var added cartBody
	decodeData(t, rec, &added)
	fingerprint := added.Lines[0].Fingerprint

	// An empty body must not be read as quantity zero and remove the line.
	rec = doJSON(t, handler, http.MethodPatch, "/api/v1/cart/items/"+fingerprint, token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after cartBody
	decodeData(t, rec, &after)
	require.Len(t, after.Lines, 1)
}

func TestCartAddRejectsBadSelections(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)
	token := login(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
		"product_id": "1",
		"selections": map[string]any{
			"Doneness": "Medium",
			// Size is required but missing.
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
		"product_id": "999",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritesToggle(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)
	token := login(t, handler, "user-1")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/favorites/3/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled struct {
		Favorited bool `json:"favorited"`
		Items     []struct {
			ProductID string `json:"product_id"`
			Price     string `json:"price"`
		} `json:"items"`
	}
	decodeData(t, rec, &toggled)
	require.True(t, toggled.Favorited)
	require.Len(t, toggled.Items, 1)
	require.Equal(t, "850.00", toggled.Items[0].Price)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/favorites/3/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &toggled)
	require.False(t, toggled.Favorited)
	require.Empty(t, toggled.Items)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Items []struct {
			ProductID string `json:"product_id"`
		} `json:"items"`
	}
	decodeData(t, rec, &listed)
	require.Empty(t, listed.Items)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/favorites/999/toggle", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStateSurvivesRelogin(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)
	token := login(t, handler, "user-2")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"product_id": "7", "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The old token is dead after logout even though it has not expired.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	fresh := login(t, handler, "user-2")
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", fresh, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body cartBody
	decodeData(t, rec, &body)
	require.Len(t, body.Lines, 1)
	require.Equal(t, 2, body.Lines[0].Quantity)
	require.Equal(t, "300.00", body.Subtotal)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
