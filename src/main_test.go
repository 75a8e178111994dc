package main

import (
	"context"
	"encoding/json"
	"etb/src/common"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB    *gorm.DB
	Event *models.Event
}

var dbi *gorm.DB

type stubMembership struct {
	info *types.MembershipInfo
}

func (s *stubMembership) GetUserMembershipInfo(ctx context.Context, userID string) (*types.MembershipInfo, error) {
	return s.info, nil
}

type stubPayments struct {
	next uint
}

func (s *stubPayments) CreatePayment(ctx context.Context, data *types.CreatePaymentRequest) (*types.PaymentResponse, error) {
	s.next++
	return &types.PaymentResponse{Success: true, PaymentID: s.next}, nil
}

type stubQR struct{}

func (stubQR) UploadAndGenerateQR(ctx context.Context, data *common.QRTicketData) (*common.QRUploadResult, error) {
	key := fmt.Sprintf("tickets/qr-codes/ticket-%d-qr.jpeg", data.TicketID)
	return &common.QRUploadResult{
		URL: "https://assets.example.com/" + key,
		Key: key,
	}, nil
}

func (stubQR) DeleteQR(ctx context.Context, key string) error {
	return nil
}

func (s *TestSuite) SetupSuite() {
	registerValidators()

	d, err := gorm.Open(sqlite.Open("file:apitest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	db.NewDB(d)
	s.DB = d
	dbi = d

	err = dbi.AutoMigrate(
		&models.Event{},
		&models.Ticket{},
		&models.Banner{},
		&models.Lead{},
		&models.Complaint{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	event := models.Event{
		Name:        "Launch Night",
		StartDate:   time.Now().Add(72 * time.Hour),
		EndDate:     time.Now().Add(76 * time.Hour),
		MemberPrice: decimal.NewFromInt(50),
		PublicPrice: decimal.NewFromInt(80),
		Status:      types.EVENT_ACTIVE,
	}
	if err := d.Create(&event).Error; err != nil {
		log.Fatalf("Could not create event due to error: %s\n", err.Error())
	}
	s.Event = &event

	common.UseTicketSaga(common.NewTicketSaga(d, common.SagaClients{
		Events:     &common.GormEventLookup{DB: d},
		Membership: &stubMembership{info: &types.MembershipInfo{}},
		Payments:   &stubPayments{},
		QR:         stubQR{},
	}))
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Exec(`
	DELETE FROM reports WHERE true;
	DELETE FROM complaints WHERE true;
	DELETE FROM leads WHERE true;
	DELETE FROM banners WHERE true;
	DELETE FROM tickets WHERE true;
	DELETE FROM events WHERE true;
	`)
	inner.Close()
}

func (s *TestSuite) newRouter() *gin.Engine {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	registerHandlers(apiv1)
	return router
}

func (s *TestSuite) purchase(method types.PaymentMethod, price string) (int, string) {
	router := s.newRouter()
	body := map[string]any{
		"event_id":       s.Event.ID,
		"user_id":        "user-77",
		"user_name":      "Maria Lopez",
		"user_email":     "maria@example.com",
		"payment_method": string(method),
		"price_paid":     json.Number(price),
	}
	sbody, _ := json.Marshal(&body)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/tickets/purchase", strings.NewReader(string(sbody)))
	router.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestPurchaseTickets() {
	s.Run("Should reject a body without payment method", func() {
		router := s.newRouter()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tickets/purchase", strings.NewReader(`{"event_id":1}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject an unknown payment method", func() {
		code, _ := s.purchase(types.PaymentMethod("BARTER"), "80")
		assert.Equal(s.T(), 400, code)
	})

	s.Run("Should reject a mismatched price", func() {
		code, body := s.purchase(types.PAYMENT_VOUCHER, "10")
		assert.Equal(s.T(), 400, code)
		assert.Equal(s.T(), types.ErrInvalidPrice.Error(), gjson.Get(body, "error").String())
	})

	s.Run("Should create a PENDING ticket for a voucher purchase", func() {
		code, body := s.purchase(types.PAYMENT_VOUCHER, "80")
		assert.Equal(s.T(), 201, code)
		assert.True(s.T(), gjson.Get(body, "success").Bool())
		assert.Equal(s.T(), "PENDING", gjson.Get(body, "status").String())
		assert.Greater(s.T(), gjson.Get(body, "payment_id").Int(), int64(0))
		assert.Empty(s.T(), gjson.Get(body, "qr_code_url").String())
	})

	s.Run("Should confirm a points purchase in one call", func() {
		code, body := s.purchase(types.PAYMENT_POINTS, "80")
		assert.Equal(s.T(), 201, code)
		assert.Equal(s.T(), "CONFIRMED", gjson.Get(body, "status").String())
		assert.NotEmpty(s.T(), gjson.Get(body, "qr_code_url").String())
	})
}

func (s *TestSuite) TestTicketStatus() {
	router := s.newRouter()
	code, body := s.purchase(types.PAYMENT_VOUCHER, "80")
	assert.Equal(s.T(), 201, code)
	ticketID := gjson.Get(body, "ticket_id").Int()

	s.Run("Should confirm a PENDING ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/v1/tickets/%d/status", ticketID), strings.NewReader(`{"status":"CONFIRMED"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "CONFIRMED", gjson.Get(w.Body.String(), "data.status").String())
	})

	s.Run("Should accept a repeated confirmation", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/v1/tickets/%d/status", ticketID), strings.NewReader(`{"status":"CONFIRMED"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should reject leaving a terminal state", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/v1/tickets/%d/status", ticketID), strings.NewReader(`{"status":"CANCELLED"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject an unknown status value", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/v1/tickets/%d/status", ticketID), strings.NewReader(`{"status":"ARCHIVED"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should return 404 for an unknown ticket", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/v1/tickets/99999/status", strings.NewReader(`{"status":"CONFIRMED"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Should serve the QR code url", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/tickets/%d/qr", ticketID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.NotEmpty(s.T(), gjson.Get(w.Body.String(), "url").String())
	})
}

func (s *TestSuite) TestTicketValidation() {
	router := s.newRouter()
	code, body := s.purchase(types.PAYMENT_POINTS, "80")
	assert.Equal(s.T(), 201, code)
	ticketID := gjson.Get(body, "ticket_id").Int()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/tickets/%d/validate", ticketID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", fmt.Sprintf("/api/v1/tickets/%d/validate", ticketID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), types.ErrTicketAlreadyUsed.Error(), gjson.Get(w.Body.String(), "error").String())
}

func (s *TestSuite) TestEvents() {
	router := s.newRouter()

	s.Run("Should return list of Event with 200 status", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/events", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		items := gjson.Get(w.Body.String(), "data.items")
		assert.True(s.T(), items.Exists())
	})

	s.Run("Should list the seeded event as available", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/events/available", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		names := gjson.Get(w.Body.String(), "data.#.name")
		assert.Contains(s.T(), names.String(), s.Event.Name)
	})

	s.Run("Should return a 400 error response", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/events", strings.NewReader(`{"name":"test event"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		assert.NotEmpty(s.T(), gjson.Get(w.Body.String(), "error").String())
	})
}

func (s *TestSuite) TestLeads() {
	router := s.newRouter()

	w := httptest.NewRecorder()
	body := `{"full_name":"Juan Perez","email":"juan@example.com","phone":"+5199911122","message":"Interested in the next event"}`
	req, _ := http.NewRequest("POST", "/api/v1/leads", strings.NewReader(body))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/leads", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	assert.GreaterOrEqual(s.T(), gjson.Get(w.Body.String(), "data.meta.total").Int(), int64(1))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/leads/export.csv", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(s.T(), w.Body.String(), "juan@example.com")
}

func (s *TestSuite) TestBannerOrdering() {
	router := s.newRouter()

	first := models.Banner{Title: "Summer Season", IsActive: true}
	second := models.Banner{Title: "Member Discounts", IsActive: true}
	inactive := models.Banner{Title: "Past Campaign", IsActive: false}
	assert.Nil(s.T(), s.DB.Create(&first).Error)
	assert.Nil(s.T(), s.DB.Create(&second).Error)
	assert.Nil(s.T(), s.DB.Create(&inactive).Error)

	s.Run("Should reorder active banners", func() {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"banners":[{"id":%d,"order":2},{"id":%d,"order":1}]}`, first.ID, second.ID)
		req, _ := http.NewRequest("PATCH", "/api/v1/banners/order", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)

		var reloaded models.Banner
		assert.Nil(s.T(), s.DB.Where(&models.Banner{ID: second.ID}).First(&reloaded).Error)
		if assert.NotNil(s.T(), reloaded.Order) {
			assert.Equal(s.T(), 1, *reloaded.Order)
		}
	})

	s.Run("Should reject unknown banner ids", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/v1/banners/order", strings.NewReader(`{"banners":[{"id":99999,"order":1}]}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject inactive banners", func() {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"banners":[{"id":%d,"order":1}]}`, inactive.ID)
		req, _ := http.NewRequest("PATCH", "/api/v1/banners/order", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestReportCatalog() {
	router := s.newRouter()

	s.Run("Should create a report and reject a duplicate code", func() {
		w := httptest.NewRecorder()
		body := `{"name":"Monthly Sales","code":"MONTHLY_SALES","description":"Confirmed sales grouped by payment method"}`
		req, _ := http.NewRequest("POST", "/api/v1/reports", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		assert.Equal(s.T(), "MONTHLY_SALES", gjson.Get(w.Body.String(), "data.code").String())

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("POST", "/api/v1/reports", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 409, w.Code)
	})

	s.Run("Should list only active reports ordered by name", func() {
		w := httptest.NewRecorder()
		body := `{"name":"Archived View","code":"ARCHIVED_VIEW","is_active":false}`
		req, _ := http.NewRequest("POST", "/api/v1/reports", strings.NewReader(body))
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 201, w.Code)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/v1/reports", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		codes := gjson.Get(w.Body.String(), "data.#.code").String()
		assert.Contains(s.T(), codes, "MONTHLY_SALES")
		assert.NotContains(s.T(), codes, "ARCHIVED_VIEW")
	})

	s.Run("Should reject a body without a code", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reports", strings.NewReader(`{"name":"No Code"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestComplaints() {
	router := s.newRouter()

	s.Run("Should reject an unknown document type", func() {
		w := httptest.NewRecorder()
		body := `{"full_name":"Ana Diaz","address":"Av. Principal 123","document_type":"PASSPORT","document_number":"12345678","phone":"+5199933344","email":"ana@example.com","item_type":"SERVICE","claim_amount":120.50,"description":"Ticket not delivered","detail":"Paid but never received the QR code","complaint_type":"CLAIM"}`
		req, _ := http.NewRequest("POST", "/api/v1/complaints", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should register a claim and mark it attended", func() {
		w := httptest.NewRecorder()
		body := `{"full_name":"Ana Diaz","address":"Av. Principal 123","document_type":"DNI","document_number":"12345678","phone":"+5199933344","email":"ana@example.com","item_type":"SERVICE","claim_amount":120.50,"description":"Ticket not delivered","detail":"Paid but never received the QR code","complaint_type":"CLAIM"}`
		req, _ := http.NewRequest("POST", "/api/v1/complaints", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		complaintID := gjson.Get(w.Body.String(), "data.id").Int()

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("PATCH", fmt.Sprintf("/api/v1/complaints/%d/attend", complaintID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 200, w.Code)
	})
}

func (s *TestSuite) TestReports() {
	router := s.newRouter()

	s.Run("Should export event tickets as CSV", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/reports/events/%d/tickets.csv", s.Event.ID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.Contains(s.T(), w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(s.T(), w.Body.String(), "USER_EMAIL")
	})

	s.Run("Should summarize confirmed sales", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/reports/sales", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.True(s.T(), gjson.Get(w.Body.String(), "data").Exists())
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
