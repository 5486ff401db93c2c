package proformas

import (
	stdcontext "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	sessioncontext "github.com/ledesmaled1977/ledesma-led-app/frontend/shared/context"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSession(req *http.Request, userID int64, role string) *http.Request {
	session := models.Session{
		UserID: userID,
		User:   models.User{ID: userID, Fullname: "Test User", Username: "test", Role: role},
	}
	return req.WithContext(sessioncontext.NewContextWithSession(req.Context(), session))
}

func withIDRouteParam(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := stdcontext.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestCreateProformaCommandHandler_NoSessionReturns401(t *testing.T) {
	db := openProformasTestDB(t)
	handler := CreateProformaCommandHandler(db)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newJSONRequest(http.MethodPost, "/api/proformas", "{}"))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestCreateProformaCommandHandler_ValidationErrorReturns400(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)
	handler := CreateProformaCommandHandler(db)

	body := `{"cotizacion_nro":"1","fecha":"2026-03-10","cliente":"X","items":[]}`
	req := withSession(newJSONRequest(http.MethodPost, "/api/proformas", body), 1, models.RoleUser)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected failure body, got %+v", resp)
	}
}

func TestGetProformaQueryHandler_MissingReturns404(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)
	handler := GetProformaQueryHandler(db)

	req := withSession(newJSONRequest(http.MethodGet, "/api/proformas/999", ""), 1, models.RoleUser)
	req = withIDRouteParam(req, "999")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUpdateStatusCommandHandler_InvalidIDReturns400(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)
	handler := UpdateStatusCommandHandler(db)

	req := withSession(newJSONRequest(http.MethodPut, "/api/proformas/abc/status", `{"status":"Aprobada"}`), 1, models.RoleUser)
	req = withIDRouteParam(req, "abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateProformaCommandHandler_ForeignReturns403(t *testing.T) {
	db := openProformasTestDB(t)
	seedUser(t, db, 1, "maria", models.RoleUser)
	seedUser(t, db, 2, "jorge", models.RoleUser)

	id, err := Create(stdcontext.Background(), db, 1, basicInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	handler := UpdateProformaCommandHandler(db)
	body := `{"cotizacion_nro":"1","fecha":"2026-03-10","cliente":"X","items":[{"item":"A","cantidad":1,"precio_unitario":5}]}`
	req := withSession(newJSONRequest(http.MethodPut, "/api/proformas/1", body), 2, models.RoleUser)
	req = withIDRouteParam(req, strconv.FormatInt(id, 10))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}
