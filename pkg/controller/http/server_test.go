package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/aletheia/pkg/controller/http"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"github.com/secmon-lab/aletheia/pkg/repository/memory"
	"github.com/secmon-lab/aletheia/pkg/service/storage"
	"github.com/secmon-lab/aletheia/pkg/usecase"
)

var testSecret = []byte("test-signing-secret")

const testCompanyID = "acme"

func newTestServer(t *testing.T) (*server.Server, *usecase.UseCases) {
	t.Helper()

	registry := model.NewCompanyRegistry()
	registry.Register(&model.Company{
		ID:      testCompanyID,
		Name:    "ACME Corp",
		SLADays: 5,
	})

	uc := usecase.New(memory.New(), registry, usecase.WithStorage(storage.NewMemory()))
	return server.New(uc, server.WithTokenSecret(testSecret), server.WithCompanyRegistry(registry)), uc
}

func signToken(t *testing.T, sub string, role types.Role, companyID string) string {
	t.Helper()

	token, err := jwt.NewBuilder().
		Subject(sub).
		Claim("role", role.String()).
		Claim("company_id", companyID).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Build()
	gt.NoError(t, err).Required()

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, testSecret))
	gt.NoError(t, err).Required()
	return string(signed)
}

func doJSON(t *testing.T, srv *server.Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createTestReport(t *testing.T, srv *server.Server) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/reports", "", map[string]any{
		"company_id":     testCompanyID,
		"situation_type": "misconduct",
		"affected_scope": "team",
		"recurrence":     "first_time",
	})
	gt.N(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		ID string `json:"id"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	return resp.ID
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	gt.N(t, rec.Code).Equal(http.StatusOK)
}

func TestServer_Companies(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/companies", "", nil)
	gt.N(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Companies []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"companies"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.A(t, resp.Companies).Length(1)
	gt.S(t, resp.Companies[0].ID).Equal(testCompanyID)
}

func TestServer_CreateReport(t *testing.T) {
	t.Run("anonymous submission needs no token", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/reports", "", map[string]any{
			"company_id":     testCompanyID,
			"situation_type": "sexual_harassment",
			"affected_scope": "company",
			"recurrence":     "frequent",
		})
		gt.N(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			Protocol  string `json:"protocol"`
			Level     string `json:"level"`
			Score     int    `json:"score"`
			Anonymous bool   `json:"anonymous"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.S(t, resp.Protocol).Contains("WB-")
		gt.S(t, resp.Level).Equal("critical")
		gt.N(t, resp.Score).Equal(110)
		gt.B(t, resp.Anonymous).True()
	})

	t.Run("authenticated submission records the submitter", func(t *testing.T) {
		srv, _ := newTestServer(t)
		token := signToken(t, "U123", types.RoleEmployee, testCompanyID)

		rec := doJSON(t, srv, http.MethodPost, "/api/reports", token, map[string]any{
			"situation_type": "misconduct",
			"affected_scope": "individual",
			"recurrence":     "first_time",
		})
		gt.N(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			CompanyID string `json:"company_id"`
			Anonymous bool   `json:"anonymous"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.S(t, resp.CompanyID).Equal(testCompanyID)
		gt.B(t, resp.Anonymous).False()
	})

	t.Run("unknown situation type is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/reports", "", map[string]any{
			"company_id":     testCompanyID,
			"situation_type": "gossip",
			"affected_scope": "team",
			"recurrence":     "first_time",
		})
		gt.N(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing company is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/reports", "", map[string]any{
			"situation_type": "misconduct",
			"affected_scope": "team",
			"recurrence":     "first_time",
		})
		gt.N(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_Authentication(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("reads require a token", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports", "", nil)
		gt.N(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports", "not-a-jwt", nil)
		gt.N(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("token with unknown role is rejected", func(t *testing.T) {
		token := signToken(t, "U1", types.Role("superuser"), testCompanyID)
		rec := doJSON(t, srv, http.MethodGet, "/api/reports", token, nil)
		gt.N(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token := signToken(t, "U1", types.RoleAdmin, testCompanyID)
		rec := doJSON(t, srv, http.MethodGet, "/api/reports", token, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)
	})
}

func TestServer_ReportLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	reportID := createTestReport(t, srv)
	manager := signToken(t, "U-mgr", types.RoleCorporateManager, testCompanyID)

	t.Run("fresh report shows a within badge", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+reportID, manager, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Status string `json:"status"`
			Badge  struct {
				State string `json:"state"`
			} `json:"sla_badge"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.S(t, resp.Status).Equal("received")
		gt.S(t, resp.Badge.State).Equal("within_deadline")
	})

	t.Run("decision before corporate_approval is a conflict", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/decision", manager, map[string]any{
			"approve": true,
			"comment": "premature",
		})
		gt.N(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("employee status change is forbidden", func(t *testing.T) {
		employee := signToken(t, "U-emp", types.RoleEmployee, testCompanyID)
		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/status", employee, map[string]any{
			"status": "under_analysis",
		})
		gt.N(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("manager walks the case to a decision", func(t *testing.T) {
		for _, status := range []string{"under_analysis", "under_investigation", "waiting_info", "corporate_approval"} {
			rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/status", manager, map[string]any{
				"status": status,
			})
			gt.N(t, rec.Code).Equal(http.StatusOK)
		}

		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/decision", manager, map[string]any{
			"approve": true,
			"comment": "investigation confirmed the facts",
		})
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Report struct {
				Status string `json:"status"`
			} `json:"report"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.S(t, resp.Report.Status).Equal("approved")
	})

	t.Run("timeline lists every transition", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+reportID+"/timeline", manager, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Timeline []struct {
				NewStatus string `json:"new_status"`
				ChangedBy string `json:"changed_by"`
			} `json:"timeline"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.Timeline).Length(5)
		gt.S(t, resp.Timeline[4].NewStatus).Equal("approved")
		gt.S(t, resp.Timeline[4].ChangedBy).Equal("U-mgr")
	})

	t.Run("finalized report rejects manager comments", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/comments", manager, map[string]any{
			"body": "afterthought",
		})
		gt.N(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("missing report is not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/nothing", manager, nil)
		gt.N(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_CommentVisibility(t *testing.T) {
	srv, _ := newTestServer(t)
	reportID := createTestReport(t, srv)
	manager := signToken(t, "U-mgr", types.RoleCorporateManager, testCompanyID)
	employee := signToken(t, "U-emp", types.RoleEmployee, testCompanyID)

	rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/comments", manager, map[string]any{
		"body":     "internal note",
		"internal": true,
	})
	gt.N(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/comments", manager, map[string]any{
		"body": "public reply",
	})
	gt.N(t, rec.Code).Equal(http.StatusCreated)

	t.Run("employee sees one comment", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+reportID+"/comments", employee, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Comments []struct {
				Body string `json:"body"`
			} `json:"comments"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.Comments).Length(1)
		gt.S(t, resp.Comments[0].Body).Equal("public reply")
	})

	t.Run("manager sees both", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+reportID+"/comments", manager, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Comments []struct {
				Body string `json:"body"`
			} `json:"comments"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.Comments).Length(2)
	})

	t.Run("employee may not mark internal", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+reportID+"/comments", employee, map[string]any{
			"body":     "secret",
			"internal": true,
		})
		gt.N(t, rec.Code).Equal(http.StatusForbidden)
	})
}

func TestServer_Attachments(t *testing.T) {
	srv, _ := newTestServer(t)
	reportID := createTestReport(t, srv)
	manager := signToken(t, "U-mgr", types.RoleCorporateManager, testCompanyID)

	t.Run("multipart upload stores the file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("files", "evidence é final.txt")
		gt.NoError(t, err).Required()
		_, err = io.Copy(fw, strings.NewReader("the facts"))
		gt.NoError(t, err).Required()
		gt.NoError(t, mw.Close()).Required()

		req := httptest.NewRequest(http.MethodPost, "/api/reports/"+reportID+"/attachments", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+manager)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.N(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			Saved []struct {
				FileName string `json:"file_name"`
			} `json:"saved"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.Saved).Length(1)
		gt.S(t, resp.Saved[0].FileName).Equal("evidence-e-final.txt")
	})

	t.Run("empty upload is a bad request", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		gt.NoError(t, mw.Close()).Required()

		req := httptest.NewRequest(http.MethodPost, "/api/reports/"+reportID+"/attachments", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+manager)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.N(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("list returns stored metadata", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+reportID+"/attachments", manager, nil)
		gt.N(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Attachments []struct {
				FileName string `json:"file_name"`
				Size     int64  `json:"size"`
			} `json:"attachments"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.Attachments).Length(1)
		gt.N(t, resp.Attachments[0].Size).Equal(int64(len("the facts")))
	})
}

func TestServer_NoAuthMode(t *testing.T) {
	registry := model.NewCompanyRegistry()
	registry.Register(&model.Company{ID: testCompanyID, Name: "ACME Corp", SLADays: 5})
	uc := usecase.New(memory.New(), registry, usecase.WithStorage(storage.NewMemory()))
	srv := server.New(uc, server.WithNoAuth(testCompanyID))

	rec := doJSON(t, srv, http.MethodPost, "/api/reports", "", map[string]any{
		"situation_type": "conflict",
		"affected_scope": "individual",
		"recurrence":     "first_time",
	})
	gt.N(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodGet, "/api/reports", "", nil)
	gt.N(t, rec.Code).Equal(http.StatusOK)

	t.Run("dev role header downgrades authority", func(t *testing.T) {
		reportID := createTestReport(t, srv)

		req := httptest.NewRequest(http.MethodPost, "/api/reports/"+reportID+"/status", strings.NewReader(`{"status":"under_analysis"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Dev-Role", "employee")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.N(t, rec.Code).Equal(http.StatusForbidden)
	})
}
