package orderControllers

import (
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

func seedOrder(t *testing.T, db *gorm.DB, order models.StickerOrder) models.StickerOrder {
	t.Helper()
	if order.Status == "" {
		order.Status = models.OrderStatusCreated
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestApplyCheckoutCompleted(t *testing.T) {
	db := testDB(t)
	seedOrder(t, db, models.StickerOrder{
		ItemType:        "sticker",
		JobName:         "Logo",
		Quantity:        50,
		StripeSessionID: "cs_1",
	})

	details := CustomerDetails{
		Email:           "jo@example.com",
		Name:            "Jo Smith",
		Phone:           "+15550001111",
		ShippingAddress: `{"city":"Austin"}`,
	}
	if err := ApplyCheckoutCompleted(db, "cs_1", details); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var order models.StickerOrder
	if err := db.Where("stripe_session_id = ?", "cs_1").First(&order).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Fatalf("status = %q, want completed", order.Status)
	}
	if order.CustomerEmail != "jo@example.com" || order.CustomerName != "Jo Smith" {
		t.Fatalf("customer fields not applied: %+v", order)
	}

	// Duplicate delivery leaves the order unchanged.
	if err := ApplyCheckoutCompleted(db, "cs_1", details); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	var again models.StickerOrder
	db.Where("stripe_session_id = ?", "cs_1").First(&again)
	if again.Status != models.OrderStatusCompleted || again.CustomerEmail != order.CustomerEmail {
		t.Fatalf("duplicate delivery changed the order: %+v", again)
	}
}

func TestApplyCheckoutCompletedUpdatesAllSessionRows(t *testing.T) {
	db := testDB(t)
	cartID := "cart_1"
	seedOrder(t, db, models.StickerOrder{JobName: "A", StripeSessionID: "cs_2", CartOrderID: &cartID})
	seedOrder(t, db, models.StickerOrder{JobName: "B", StripeSessionID: "cs_2", CartOrderID: &cartID})
	seedOrder(t, db, models.StickerOrder{JobName: "Other", StripeSessionID: "cs_other"})

	if err := ApplyCheckoutCompleted(db, "cs_2", CustomerDetails{Email: "x@example.com"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var completed int64
	db.Model(&models.StickerOrder{}).
		Where("stripe_session_id = ? AND status = ?", "cs_2", models.OrderStatusCompleted).
		Count(&completed)
	if completed != 2 {
		t.Fatalf("completed %d rows, want 2", completed)
	}

	var other models.StickerOrder
	db.Where("stripe_session_id = ?", "cs_other").First(&other)
	if other.Status != models.OrderStatusCreated {
		t.Fatalf("unrelated order was touched: %+v", other)
	}
}

func TestApplyCheckoutCompletedEmptySession(t *testing.T) {
	db := testDB(t)
	if err := ApplyCheckoutCompleted(db, "", CustomerDetails{}); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestStripeWebhookHandlerCompletesOrder(t *testing.T) {
	db := testDB(t)
	seedOrder(t, db, models.StickerOrder{JobName: "Logo", StripeSessionID: "cs_3"})

	r := newTestRouter()
	r.POST("/payment/webhook", StripeWebhookHandler(db, zap.NewNop().Sugar()))

	payload := `{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_3",
			"customer_details": {"email": "jo@example.com", "name": "Jo", "phone": "+1555"},
			"shipping_details": {"name": "Jo", "address": {"city": "Austin", "country": "US"}}
		}}
	}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(payload)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var order models.StickerOrder
	db.Where("stripe_session_id = ?", "cs_3").First(&order)
	if order.Status != models.OrderStatusCompleted {
		t.Fatalf("status = %q, want completed", order.Status)
	}
	if !strings.Contains(order.ShippingAddress, "Austin") {
		t.Fatalf("shipping address not recorded: %q", order.ShippingAddress)
	}
}

func TestStripeWebhookHandlerIgnoresOtherEvents(t *testing.T) {
	db := testDB(t)
	seedOrder(t, db, models.StickerOrder{JobName: "Logo", StripeSessionID: "cs_4"})

	r := newTestRouter()
	r.POST("/payment/webhook", StripeWebhookHandler(db, zap.NewNop().Sugar()))

	payload := `{"type": "payment_intent.created", "data": {"object": {"id": "cs_4"}}}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(payload)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var order models.StickerOrder
	db.Where("stripe_session_id = ?", "cs_4").First(&order)
	if order.Status != models.OrderStatusCreated {
		t.Fatalf("ignored event mutated the order: %q", order.Status)
	}
}

func TestGetOrderBySessionHandler(t *testing.T) {
	db := testDB(t)
	seedOrder(t, db, models.StickerOrder{JobName: "Logo", StripeSessionID: "cs_5"})

	r := newTestRouter()
	r.GET("/orders/session/:sessionID", GetOrderBySessionHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/session/cs_5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Logo") {
		t.Fatalf("body missing order: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/session/cs_missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetOrdersByCartHandler(t *testing.T) {
	db := testDB(t)
	cartID := "cart_77"
	seedOrder(t, db, models.StickerOrder{JobName: "A", StripeSessionID: "cs_6", CartOrderID: &cartID})
	seedOrder(t, db, models.StickerOrder{JobName: "B", StripeSessionID: "cs_6", CartOrderID: &cartID})

	r := newTestRouter()
	r.GET("/orders/cart/:cartID", GetOrdersByCartHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/cart/cart_77", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"A"`) || !strings.Contains(body, `"B"`) {
		t.Fatalf("body missing cart orders: %s", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/cart/cart_none", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "[]") {
		t.Fatalf("empty cart lookup: status %d body %s", w.Code, w.Body.String())
	}
}
