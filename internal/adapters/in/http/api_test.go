package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"montarota/cmd"
	httpin "montarota/internal/adapters/in/http"
	"montarota/internal/adapters/out/postgres/pgtest"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type APISuite struct {
	suite.Suite
	e  *echo.Echo
	db *gorm.DB
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	cfg := cmd.Config{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		PlatformFee:    kernel.MustMoney("4.50"),
		IdempotencyTTL: time.Hour,
	}
	s.db = pgtest.NewSQLite(s.T())
	root, err := cmd.NewCompositionRoot(cfg, s.db, slog.New(slog.DiscardHandler))
	s.Require().NoError(err)
	s.e, err = root.NewEcho()
	s.Require().NoError(err)
}

// do sends body as JSON; a string body is sent verbatim. Extra headers come
// in name, value pairs.
func (s *APISuite) do(method, path string, body any, token string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *APISuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *APISuite) errorOf(rec *httptest.ResponseRecorder) string {
	return decode[httpin.ErrorResponse](s, rec).Error
}

// login registers a user and returns its bearer token. Store-linked users are
// registered by an admin.
func (s *APISuite) login(email, role string, storeID *uuid.UUID) string {
	body := map[string]any{"name": "Test " + role, "email": email, "password": "secret123", "role": role}
	registrar := ""
	if storeID != nil {
		body["store_id"] = storeID.String()
		registrar = s.admin()
	}
	rec := s.do(http.MethodPost, "/api/auth/register", body, registrar)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return s.token(email)
}

func (s *APISuite) token(email string) string {
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "secret123"}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return decode[httpin.LoginResponse](s, rec).Token
}

// admin seeds the admin account directly, the way the first admin is created.
func (s *APISuite) admin() string {
	const email = "admin@montarota.test"
	var count int64
	s.Require().NoError(s.db.Table("users").Where("email = ?", email).Count(&count).Error)
	if count == 0 {
		rec := s.do(http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Admin", "email": email, "password": "secret123"}, "")
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		s.Require().NoError(s.db.Exec("UPDATE users SET role = ? WHERE email = ?", "admin", email).Error)
	}
	return s.token(email)
}

func (s *APISuite) operator() string {
	return s.login("ops@montarota.test", "courier", nil)
}

func (s *APISuite) createStore(token, name string) queries.StoreView {
	rec := s.do(http.MethodPost, "/api/stores", map[string]any{"name": name, "neighborhood": "Centro"}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[queries.StoreView](s, rec)
}

func (s *APISuite) createCourier(token, name string) queries.CourierView {
	rec := s.do(http.MethodPost, "/api/couriers", map[string]any{"name": name, "phone": "11999990000"}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[queries.CourierView](s, rec)
}

func (s *APISuite) createOrder(token string, storeID uuid.UUID, address string, headers ...string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/orders", map[string]any{
		"store_id":              storeID.String(),
		"customer_name":         "Ana",
		"customer_address":      address,
		"customer_neighborhood": "Centro",
	}, token, headers...)
}

func (s *APISuite) TestRootAndHealth() {
	rec := s.do(http.MethodGet, "/", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("online", decode[map[string]string](s, rec)["status"])

	rec = s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", decode[map[string]any](s, rec)["status"])
}

func (s *APISuite) TestOpenAPIDocument() {
	rec := s.do(http.MethodGet, "/openapi.json", nil, "")

	s.Require().Equal(http.StatusOK, rec.Code)
	doc := decode[map[string]any](s, rec)
	s.Equal("3.0.3", doc["openapi"])
	s.Contains(doc["paths"], "/routes/assemble")
}

func (s *APISuite) TestUnknownRoute() {
	for _, path := range []string{"/nope", "/api/nope"} {
		rec := s.do(http.MethodGet, path, nil, "")
		s.Equal(http.StatusNotFound, rec.Code, path)
		s.Equal("route not found", s.errorOf(rec))
	}
}

func (s *APISuite) TestProtectedRoutesRequireBearerToken() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/stores", nil, "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/stores", nil, "not-a-jwt").Code)

	rec := s.do(http.MethodGet, "/api/stores", nil, "", echo.HeaderAuthorization, "Basic abc")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APISuite) TestRegisterAndLogin() {
	rec := s.do(http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Bia", "email": "Bia@Example.com", "password": "secret123"}, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.NotEqual(uuid.Nil, decode[httpin.CreatedResponse](s, rec).ID)

	rec = s.do(http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Bia", "email": "bia@example.com", "password": "secret123"}, "")
	s.Equal(http.StatusBadRequest, rec.Code, "duplicate email")

	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "bia@example.com", "password": "secret123"}, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	login := decode[httpin.LoginResponse](s, rec)
	s.NotEmpty(login.Token)
	s.Equal("store", login.User.Role)
	s.Equal("bia@example.com", login.User.Email)
	s.NotNil(login.User.LastLoginAt)

	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "bia@example.com", "password": "wrong"}, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "x"}, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APISuite) TestAdminRegistrationNeedsAdmin() {
	body := map[string]string{"name": "Root", "email": "root@example.com", "password": "secret123", "role": "admin"}

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/register", body, "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/register", body, s.operator()).Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/auth/register", body, s.admin()).Code)
}

func (s *APISuite) TestLinkedRegistrationNeedsAdmin() {
	st := s.createStore(s.operator(), "Pizzaria")
	body := map[string]any{"name": "Owner", "email": "owner@example.com", "password": "secret123", "store_id": st.ID}

	rec := s.do(http.MethodPost, "/api/auth/register", body, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(s.errorOf(rec), "link")

	body["courier_id"] = uuid.New()
	delete(body, "store_id")
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/register", body, s.operator()).Code)

	delete(body, "courier_id")
	body["store_id"] = st.ID
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/auth/register", body, s.admin()).Code)
}

func (s *APISuite) TestRequestValidation() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   string
	}{
		{"missing address", http.MethodPost, "/api/orders", map[string]any{"store_id": st.ID}, "customer_address"},
		{"unknown field", http.MethodPost, "/api/orders", `{"store_id":"` + st.ID.String() + `","bogus":1}`, "bogus"},
		{"empty body", http.MethodPost, "/api/couriers", "", "body"},
		{"bad status", http.MethodPatch, "/api/orders/" + uuid.NewString() + "/status", map[string]string{"status": "lost"}, "status"},
		{"malformed id", http.MethodGet, "/api/orders/not-a-uuid", nil, "id"},
		{"limit out of range", http.MethodGet, "/api/orders?limit=501", nil, "limit"},
		{"bad date", http.MethodGet, "/api/orders?date=yesterday", nil, "date"},
		{"empty order ids", http.MethodPost, "/api/routes/assemble", map[string]any{"courier_id": uuid.NewString(), "order_ids": []string{}}, "order_ids"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.path, tt.body, token)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			s.Contains(s.errorOf(rec), tt.want)
		})
	}
}

func (s *APISuite) TestNotFound() {
	token := s.operator()

	for _, path := range []string{
		"/api/orders/" + uuid.NewString(),
		"/api/couriers/" + uuid.NewString(),
		"/api/stores/" + uuid.NewString(),
	} {
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, path, nil, token).Code, path)
	}
}

func (s *APISuite) TestDeliveryFlow() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")
	courier := s.createCourier(token, "Caio")

	var orders []queries.OrderView
	for _, addr := range []string{"Rua A, 1", "Rua B, 2"} {
		rec := s.createOrder(token, st.ID, addr)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		orders = append(orders, decode[queries.OrderView](s, rec))
	}
	s.Len(orders[0].ConfirmationCode, 6)
	s.Equal("pending", orders[0].Status)
	s.Equal("4.50", orders[0].PlatformFee)

	rec := s.do(http.MethodPost, "/api/routes/assemble", map[string]any{
		"courier_id":     courier.ID,
		"order_ids":      []uuid.UUID{orders[0].ID, orders[1].ID},
		"origin_address": "Av. Paulista, 1000",
	}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	assembled := decode[httpin.AssembleRouteResponse](s, rec)
	s.Equal("9.00", assembled.Route.TotalFee)
	s.Equal(2, assembled.Route.OrderCount)
	s.Contains(assembled.Route.GoogleMapsLink, "google.com/maps")
	s.Equal("on_route", assembled.Courier.Status)
	s.Require().Len(assembled.Stops, 2)
	s.Equal(1, assembled.Stops[0].Position)
	s.Equal(orders[0].ID, assembled.Stops[0].OrderID)
	s.Equal(orders[0].ConfirmationCode, assembled.Stops[0].ConfirmationCode)

	rec = s.do(http.MethodPost, "/api/routes/assemble", map[string]any{
		"courier_id": courier.ID, "order_ids": []uuid.UUID{orders[0].ID},
	}, token)
	s.Equal(http.StatusBadRequest, rec.Code, "courier already on route")

	routePath := "/api/routes/" + assembled.Route.ID.String()
	rec = s.do(http.MethodPatch, routePath+"/start", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("in_progress", decode[queries.RouteView](s, rec).Status)

	confirmPath := "/api/orders/" + orders[0].ID.String() + "/confirm"
	rec = s.do(http.MethodPost, confirmPath, map[string]string{"code": wrongCode(orders[0].ConfirmationCode)}, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, confirmPath, map[string]string{"code": orders[0].ConfirmationCode}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	confirmed := decode[httpin.ConfirmDeliveryResponse](s, rec)
	s.Equal("delivered", confirmed.Order.Status)
	s.Require().NotNil(confirmed.Courier)
	s.Equal("4.50", confirmed.Courier.Balance)
	s.Equal(1, confirmed.Courier.TotalDeliveries)

	rec = s.do(http.MethodPost, confirmPath, map[string]string{"code": orders[0].ConfirmationCode}, "")
	s.Equal(http.StatusBadRequest, rec.Code, "already confirmed")

	rec = s.do(http.MethodPatch, routePath+"/complete", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("completed", decode[queries.RouteView](s, rec).Status)

	rec = s.do(http.MethodGet, "/api/couriers/available", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	available := decode[[]queries.CourierView](s, rec)
	s.Require().Len(available, 1)
	s.Equal(courier.ID, available[0].ID)

	rec = s.do(http.MethodGet, "/api/orders?status=delivered", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.OrderView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/routes?status=completed&courier_id="+courier.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.RouteView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/analytics/summary/"+st.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	summary := decode[queries.AnalyticsSummary](s, rec)
	s.Equal(1, summary.Today.TotalOrders)
	s.Equal("4.50", summary.Today.FeeRevenue)
}

func (s *APISuite) TestWeeklySettlementAndPayment() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")
	rec := s.createOrder(token, st.ID, "Rua A, 1")
	s.Require().Equal(http.StatusCreated, rec.Code)
	o := decode[queries.OrderView](s, rec)
	rec = s.do(http.MethodPost, "/api/orders/"+o.ID.String()+"/confirm", map[string]string{"code": o.ConfirmationCode}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	today := time.Now().UTC().Format("2006-01-02")
	rec = s.do(http.MethodPost, "/api/payments/generate-weekly", map[string]any{
		"store_id": st.ID, "period_start": today, "period_end": today,
	}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	settlement := decode[httpin.SettlementResponse](s, rec)
	s.Equal("1 deliveries = R$ 4.50", settlement.Message)
	s.Equal("pending", settlement.Payment.Status)
	s.Equal(today, settlement.Payment.PeriodStart)

	payPath := "/api/payments/" + settlement.Payment.ID.String() + "/pay"
	rec = s.do(http.MethodPatch, payPath, map[string]string{"method": "pix", "receipt_ref": "abc"}, token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("paid", decode[queries.PaymentView](s, rec).Status)

	rec = s.do(http.MethodPatch, payPath, map[string]string{"method": "pix"}, token)
	s.Equal(http.StatusBadRequest, rec.Code, "already paid")

	rec = s.do(http.MethodGet, "/api/payments?status=paid&store_id="+st.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.PaymentView](s, rec), 1)

	rec = s.do(http.MethodPost, "/api/payments/generate-weekly", map[string]any{"store_id": st.ID, "period_start": today}, token)
	s.Equal(http.StatusBadRequest, rec.Code, "period_end missing")
}

func (s *APISuite) TestStoreUsersOnlySeeTheirStore() {
	token := s.operator()
	own := s.createStore(token, "Own")
	other := s.createStore(token, "Other")

	s.Require().Equal(http.StatusCreated, s.createOrder(token, own.ID, "Rua A, 1").Code)
	rec := s.createOrder(token, other.ID, "Rua B, 2")
	s.Require().Equal(http.StatusCreated, rec.Code)
	foreign := decode[queries.OrderView](s, rec)

	storeToken := s.login("owner@example.com", "store", &own.ID)

	rec = s.do(http.MethodGet, "/api/orders?store_id="+other.ID.String(), nil, storeToken)
	s.Require().Equal(http.StatusOK, rec.Code)
	listed := decode[[]queries.OrderView](s, rec)
	s.Require().Len(listed, 1)
	s.Equal(own.ID, listed[0].StoreID)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/orders/"+foreign.ID.String(), nil, storeToken).Code)

	// the body's store_id is ignored for store users
	rec = s.createOrder(storeToken, other.ID, "Rua C, 3")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal(own.ID, decode[queries.OrderView](s, rec).StoreID)

	unlinked := s.login("nostore@example.com", "store", nil)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/orders", nil, unlinked).Code)
}

func (s *APISuite) TestStoreUsersCannotWriteToOtherStores() {
	token := s.operator()
	own := s.createStore(token, "Own")
	other := s.createStore(token, "Other")
	courier := s.createCourier(token, "Caio")

	rec := s.createOrder(token, other.ID, "Rua A, 1")
	s.Require().Equal(http.StatusCreated, rec.Code)
	foreign := decode[queries.OrderView](s, rec)
	rec = s.createOrder(token, other.ID, "Rua B, 2")
	s.Require().Equal(http.StatusCreated, rec.Code)
	routed := decode[queries.OrderView](s, rec)

	rec = s.do(http.MethodPost, "/api/routes/assemble", map[string]any{
		"courier_id": courier.ID, "order_ids": []uuid.UUID{routed.ID},
	}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	foreignRoute := decode[httpin.AssembleRouteResponse](s, rec).Route

	rec = s.do(http.MethodPost, "/api/payments/generate-weekly", map[string]any{"store_id": other.ID}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	foreignPayment := decode[httpin.SettlementResponse](s, rec).Payment

	storeToken := s.login("owner@example.com", "store", &own.ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"order status", http.MethodPatch, "/api/orders/" + foreign.ID.String() + "/status", map[string]string{"status": "cancelled"}},
		{"assemble", http.MethodPost, "/api/routes/assemble", map[string]any{"courier_id": s.createCourier(token, "Bia").ID, "order_ids": []uuid.UUID{foreign.ID}}},
		{"route start", http.MethodPatch, "/api/routes/" + foreignRoute.ID.String() + "/start", nil},
		{"route complete", http.MethodPatch, "/api/routes/" + foreignRoute.ID.String() + "/complete", nil},
		{"mark paid", http.MethodPatch, "/api/payments/" + foreignPayment.ID.String() + "/pay", map[string]string{"method": "pix"}},
		{"store update", http.MethodPut, "/api/stores/" + other.ID.String(), map[string]any{"name": "Mine now"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.path, tt.body, storeToken)
			s.Equal(http.StatusNotFound, rec.Code, rec.Body.String())
			s.NotContains(rec.Body.String(), foreign.ConfirmationCode)
		})
	}

	rec = s.do(http.MethodGet, "/api/orders/"+foreign.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("pending", decode[queries.OrderView](s, rec).Status)

	rec = s.do(http.MethodGet, "/api/routes?status=pending", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.RouteView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/payments?status=pending", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.PaymentView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/stores/"+other.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Other", decode[queries.StoreView](s, rec).Name)

	rec = s.createOrder(storeToken, own.ID, "Rua C, 3")
	s.Require().Equal(http.StatusCreated, rec.Code)
	mine := decode[queries.OrderView](s, rec)
	rec = s.do(http.MethodPatch, "/api/orders/"+mine.ID.String()+"/status", map[string]string{"status": "cancelled"}, storeToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("cancelled", decode[queries.OrderView](s, rec).Status)

	rec = s.do(http.MethodPut, "/api/stores/"+own.ID.String(), map[string]any{"phone": "1133334444"}, storeToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("1133334444", decode[queries.StoreView](s, rec).Phone)
}

func (s *APISuite) TestIdempotencyKeyIsBoundToCaller() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")

	first := s.createOrder(token, st.ID, "Rua A, 1", httpin.HeaderIdempotencyKey, "shared-key")
	s.Require().Equal(http.StatusCreated, first.Code, first.Body.String())
	code := decode[queries.OrderView](s, first).ConfirmationCode

	intruder := s.login("someone@example.com", "courier", nil)
	rec := s.createOrder(intruder, st.ID, "Rua A, 1", httpin.HeaderIdempotencyKey, "shared-key")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(rec.Header().Get(httpin.HeaderIdempotentReplayed))
	s.NotContains(rec.Body.String(), code)
}

func (s *APISuite) TestIdempotentOrderCreation() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")

	first := s.createOrder(token, st.ID, "Rua A, 1", httpin.HeaderIdempotencyKey, "order-1")
	s.Require().Equal(http.StatusCreated, first.Code, first.Body.String())

	replay := s.createOrder(token, st.ID, "Rua A, 1", httpin.HeaderIdempotencyKey, "order-1")
	s.Equal(http.StatusCreated, replay.Code)
	s.Equal("true", replay.Header().Get(httpin.HeaderIdempotentReplayed))
	s.JSONEq(first.Body.String(), replay.Body.String())

	rec := s.do(http.MethodGet, "/api/orders", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.OrderView](s, rec), 1)

	o := decode[queries.OrderView](s, first)
	reused := s.do(http.MethodPost, "/api/orders/"+o.ID.String()+"/confirm",
		map[string]string{"code": o.ConfirmationCode}, "", httpin.HeaderIdempotencyKey, "order-1")
	s.Equal(http.StatusBadRequest, reused.Code, "key bound to another request")
}

func (s *APISuite) TestFailedIdempotentRequestCanBeRetried() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")

	rec := s.createOrder(token, st.ID, "", httpin.HeaderIdempotencyKey, "retry-me")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.createOrder(token, st.ID, "Rua A, 1", httpin.HeaderIdempotencyKey, "retry-me")
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Empty(rec.Header().Get(httpin.HeaderIdempotentReplayed))
}

func (s *APISuite) TestCourierPositionAndTrack() {
	token := s.operator()
	courier := s.createCourier(token, "Caio")
	gpsPath := "/api/couriers/" + courier.ID.String() + "/gps"

	rec := s.do(http.MethodPatch, gpsPath, map[string]any{"lat": -23.55, "lng": -46.63, "speed_kmh": 32.5}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.InDelta(-23.55, decode[queries.PingView](s, rec).Lat, 1e-9)

	rec = s.do(http.MethodPatch, gpsPath, map[string]any{"lat": -23.55}, "")
	s.Equal(http.StatusBadRequest, rec.Code, "lng missing")

	rec = s.do(http.MethodPatch, "/api/couriers/"+uuid.NewString()+"/gps", map[string]any{"lat": 1, "lng": 1}, "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/tracking/courier/"+courier.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]queries.PingView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/couriers/"+courier.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	view := decode[queries.CourierView](s, rec)
	s.Require().NotNil(view.Lat)
	s.InDelta(-23.55, *view.Lat, 1e-9)
}

func (s *APISuite) TestLiveTracking() {
	token := s.operator()
	courier := s.createCourier(token, "Caio")

	server := httptest.NewServer(s.e)
	defer server.Close()

	url := fmt.Sprintf("ws%s/api/tracking/courier/%s/live?token=%s",
		strings.TrimPrefix(server.URL, "http"), courier.ID, token)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	defer conn.Close()

	rec := s.do(http.MethodPatch, "/api/couriers/"+courier.ID.String()+"/gps", map[string]any{"lat": -23.5, "lng": -46.6}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var pos events.CourierPositionRecorded
	s.Require().NoError(conn.ReadJSON(&pos))
	s.Equal(courier.ID.String(), pos.CourierID)
	s.InDelta(-46.6, pos.Lng, 1e-9)
}

func (s *APISuite) TestLiveTrackingRequiresToken() {
	server := httptest.NewServer(s.e)
	defer server.Close()

	url := fmt.Sprintf("ws%s/api/tracking/courier/%s/live", strings.TrimPrefix(server.URL, "http"), uuid.New())
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestStoreUpdateAndOcr() {
	token := s.operator()
	st := s.createStore(token, "Pizzaria")

	rec := s.do(http.MethodPut, "/api/stores/"+st.ID.String(), map[string]any{"platform_fee": 6, "status": "inactive"}, token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[queries.StoreView](s, rec)
	s.Equal("6.00", updated.PlatformFee)
	s.Equal("inactive", updated.Status)
	s.Equal("Pizzaria", updated.Name)

	rec = s.do(http.MethodGet, "/api/stores", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Empty(decode[[]queries.StoreView](s, rec))

	rec = s.do(http.MethodPost, "/api/ocr/ingest", map[string]any{
		"store_id": st.ID,
		"raw_text": "Rua A, 123 CEP 01310-100\nCliente: Ana (11) 98765-4321\nTotal R$ 57,90",
	}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	slip := decode[httpin.OcrSlipView](s, rec)
	s.Require().NotNil(slip.Phone)
	s.Equal("(11) 98765-4321", *slip.Phone)
	s.Require().NotNil(slip.OrderValue)
	s.Equal("57.90", *slip.OrderValue)
	s.False(slip.Confirmed)
}

func (s *APISuite) TestLiveTrackingUnknownCourier() {
	token := s.operator()
	server := httptest.NewServer(s.e)
	defer server.Close()

	url := fmt.Sprintf("ws%s/api/tracking/courier/%s/live?token=%s",
		strings.TrimPrefix(server.URL, "http"), uuid.New(), token)
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().ErrorIs(err, websocket.ErrBadHandshake)
	s.Require().NotNil(resp)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}
