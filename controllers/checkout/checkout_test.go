package checkoutControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.StickerOrder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeStripe stands in for the checkout sessions endpoint.
func fakeStripe(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_777","url":"https://checkout.example.com/pay/cs_test_777"}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")
	t.Setenv("STRIPE_API_URL", srv.URL)
	return srv
}

func placeOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/place", PlaceOrderHandler(db, zap.NewNop().Sugar()))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validPlaceOrder = `{
	"jobName": "Logo run",
	"material": "Premium Vinyl",
	"materialId": "premium-vinyl",
	"size": "3\"",
	"cutting": "Die Cut",
	"cuttingId": "die-cut",
	"quantity": 50,
	"fileUrl": "https://files.example.com/dtf-orders/a.png",
	"fileKey": "dtf-orders/a.png",
	"fileName": "a.png",
	"unitPriceCents": 89,
	"totalPriceCents": 4450
}`

func TestPlaceOrder(t *testing.T) {
	fakeStripe(t)
	db := testDB(t)
	r := placeOrderRouter(db)

	w := postJSON(r, "/orders/place", validPlaceOrder)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		CheckoutURL string `json:"checkoutUrl"`
		SessionID   string `json:"sessionId"`
		Warning     string `json:"warning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.SessionID != "cs_test_777" || resp.CheckoutURL == "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Warning != "" {
		t.Fatalf("unexpected warning: %q", resp.Warning)
	}

	var order models.StickerOrder
	if err := db.Where("stripe_session_id = ?", "cs_test_777").First(&order).Error; err != nil {
		t.Fatalf("order row: %v", err)
	}
	if order.JobName != "Logo run" || order.Quantity != 50 || order.Status != models.OrderStatusCreated {
		t.Fatalf("order = %+v", order)
	}
	if order.CartOrderID != nil {
		t.Fatalf("single order carries cart id %v", *order.CartOrderID)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	fakeStripe(t)
	db := testDB(t)
	r := placeOrderRouter(db)

	cases := []struct {
		name    string
		mutate  func(m map[string]interface{})
		wantErr string
	}{
		{"missing job name", func(m map[string]interface{}) { delete(m, "jobName") }, "Missing required fields"},
		{"missing file", func(m map[string]interface{}) { delete(m, "fileUrl") }, "File must be uploaded before checkout"},
		{"missing pricing", func(m map[string]interface{}) { m["unitPriceCents"] = 0 }, "Pricing information required"},
		{"bad quantity", func(m map[string]interface{}) { m["quantity"] = 10000 }, "Invalid quantity"},
		{"negative price", func(m map[string]interface{}) { m["unitPriceCents"] = -5 }, "Invalid pricing"},
	}
	for _, tc := range cases {
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(validPlaceOrder), &payload); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		tc.mutate(payload)
		body, _ := json.Marshal(payload)

		w := postJSON(r, "/orders/place", string(body))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, body %s", tc.name, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), tc.wantErr) {
			t.Fatalf("%s: body %s does not contain %q", tc.name, w.Body.String(), tc.wantErr)
		}
	}

	var count int64
	db.Model(&models.StickerOrder{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid requests created %d order rows", count)
	}
}

func TestPlaceOrderProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")
	t.Setenv("STRIPE_API_URL", srv.URL)

	db := testDB(t)
	r := placeOrderRouter(db)

	w := postJSON(r, "/orders/place", validPlaceOrder)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	// The provider's message must not leak to the customer.
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("provider error leaked: %s", w.Body.String())
	}

	var count int64
	db.Model(&models.StickerOrder{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed checkout created %d order rows", count)
	}
}
