package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
	"github.com/eabrosimov/fstr-pereval-api/internal/repository"
	"github.com/eabrosimov/fstr-pereval-api/internal/service"
)

func setupTestServer() (*echo.Echo, *repository.MemStore) {
	store := repository.NewMemStore()
	h := NewSubmitDataHandler(service.NewSubmission(store, nil))

	e := echo.New()
	e.POST("/SubmitData", h.Submit)
	e.GET("/SubmitData", h.GetByID)
	e.PATCH("/SubmitData", h.Update)
	e.GET("/SubmitData/:user_email", h.ListByEmail)
	return e, store
}

func submitPayload(email string) map[string]any {
	return map[string]any{
		"beauty_title": "пер. ",
		"title":        "Pkhiya",
		"user": map[string]any{
			"email": email,
			"fam":   "Pupkin",
			"name":  "Vasily",
			"otc":   "Ivanovich",
			"phone": "+7 555 55 55",
		},
		"coords": map[string]any{"latitude": 45.3842, "longitude": 7.1525, "height": 1200},
		"level":  map[string]any{"winter": "", "summer": "1A", "autumn": "1A", "spring": ""},
		"images": []map[string]any{{"data": "base64payload", "name": "Summit"}},
	}
}

func doJSON(e *echo.Echo, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestSubmitEndpoint(t *testing.T) {
	e, _ := setupTestServer()

	w := doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var res model.SubmitResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Status != 200 || res.ID != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	e, _ := setupTestServer()

	payload := submitPayload("not-an-email")
	w := doJSON(e, http.MethodPost, "/SubmitData", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetByIDEndpoint(t *testing.T) {
	e, _ := setupTestServer()
	doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))

	w := doJSON(e, http.MethodGet, "/SubmitData?pereval_id=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var view model.SubmissionView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.Title != "Pkhiya" || view.Status != model.StatusNew || len(view.Images) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestGetByIDNotFoundBody(t *testing.T) {
	e, _ := setupTestServer()

	w := doJSON(e, http.MethodGet, "/SubmitData?pereval_id=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != 204 {
		t.Fatalf("expected body status 204, got %d", body.Status)
	}
}

func TestGetByIDRejectsBadParam(t *testing.T) {
	e, _ := setupTestServer()

	for _, q := range []string{"", "?pereval_id=abc", "?pereval_id=0"} {
		w := doJSON(e, http.MethodGet, "/SubmitData"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %q, got %d", q, w.Code)
		}
	}
}

func TestPatchEndpoint(t *testing.T) {
	e, store := setupTestServer()
	doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))

	payload := submitPayload("a@x.com")
	payload["title"] = "Pkhiya (corrected)"
	w := doJSON(e, http.MethodPatch, "/SubmitData?pereval_id=1", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var res model.PatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.State != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Once reviewed, the same patch is rejected.
	store.SetPerevalStatus(1, model.StatusAccepted)
	w = doJSON(e, http.MethodPatch, "/SubmitData?pereval_id=1", payload)
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.State != 0 || res.Message != service.MsgReviewed {
		t.Fatalf("expected reviewed-data rejection, got %+v", res)
	}
}

func TestPatchForeignUserRejected(t *testing.T) {
	e, _ := setupTestServer()
	doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))

	w := doJSON(e, http.MethodPatch, "/SubmitData?pereval_id=1", submitPayload("b@x.com"))
	var res model.PatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.State != 0 || res.Message != service.MsgForeignUser {
		t.Fatalf("expected ownership rejection, got %+v", res)
	}
}

func TestListByEmailEndpoint(t *testing.T) {
	e, _ := setupTestServer()
	doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))
	doJSON(e, http.MethodPost, "/SubmitData", submitPayload("a@x.com"))

	w := doJSON(e, http.MethodGet, "/SubmitData/a@x.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Perevals []model.SubmissionView `json:"perevals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Perevals) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(body.Perevals))
	}

	w = doJSON(e, http.MethodGet, "/SubmitData/nobody@x.com", nil)
	var nf struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &nf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if nf.Status != 204 {
		t.Fatalf("expected body status 204, got %d", nf.Status)
	}
}
