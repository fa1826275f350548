package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/domain/model/auth"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
	"github.com/secmon-lab/aletheia/pkg/usecase"
)

type badgeResponse struct {
	State        string `json:"state"`
	Label        string `json:"label"`
	Detail       string `json:"detail,omitempty"`
	FallbackUsed bool   `json:"fallback_used,omitempty"`
}

type reportResponse struct {
	ID                    string         `json:"id"`
	Protocol              string         `json:"protocol"`
	CompanyID             string         `json:"company_id"`
	SituationType         string         `json:"situation_type"`
	ImmediateRisk         bool           `json:"immediate_risk"`
	LeadershipInvolvement bool           `json:"leadership_involvement"`
	AffectedScope         string         `json:"affected_scope"`
	Recurrence            string         `json:"recurrence"`
	Retaliation           bool           `json:"retaliation"`
	Score                 int            `json:"score"`
	Level                 string         `json:"level"`
	Justification         string         `json:"justification"`
	Status                string         `json:"status"`
	Anonymous             bool           `json:"anonymous"`
	Revision              int64          `json:"revision"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	Badge                 *badgeResponse `json:"sla_badge,omitempty"`
}

func toReportResponse(report *model.Report, badge *model.Badge) *reportResponse {
	resp := &reportResponse{
		ID:                    report.ID,
		Protocol:              report.Protocol,
		CompanyID:             report.CompanyID,
		SituationType:         report.SituationType.String(),
		ImmediateRisk:         report.ImmediateRisk,
		LeadershipInvolvement: report.LeadershipInvolvement,
		AffectedScope:         report.AffectedScope.String(),
		Recurrence:            report.Recurrence.String(),
		Retaliation:           report.Retaliation,
		Score:                 report.Score,
		Level:                 report.Level.String(),
		Justification:         report.Justification,
		Status:                report.Status.String(),
		Anonymous:             report.Anonymous(),
		Revision:              report.Revision,
		CreatedAt:             report.CreatedAt,
		UpdatedAt:             report.UpdatedAt,
	}
	if badge != nil {
		resp.Badge = &badgeResponse{
			State:        badge.State.String(),
			Label:        badge.Label,
			Detail:       badge.Detail,
			FallbackUsed: badge.FallbackUsed,
		}
	}
	return resp
}

type createReportRequest struct {
	CompanyID             string `json:"company_id"`
	SituationType         string `json:"situation_type"`
	ImmediateRisk         bool   `json:"immediate_risk"`
	LeadershipInvolvement bool   `json:"leadership_involvement"`
	AffectedScope         string `json:"affected_scope"`
	Recurrence            string `json:"recurrence"`
	Retaliation           bool   `json:"retaliation"`
}

// createReportHandler accepts a new case submission. The endpoint works
// with or without a token: unauthenticated submissions are anonymous
// and must name their company in the body.
func createReportHandler(uc *usecase.UseCases, verifier *TokenVerifier, noAuth noAuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReportRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(r, w, err)
			return
		}

		companyID := req.CompanyID
		submitterID := ""
		if noAuth.Enabled {
			actor := noAuth.actor(r)
			submitterID = actor.ID
			if companyID == "" {
				companyID = actor.CompanyID
			}
		} else if raw := bearerToken(r); raw != "" && verifier != nil {
			actor, err := verifier.Verify(raw)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}
			submitterID = actor.ID
			if companyID == "" {
				companyID = actor.CompanyID
			}
		}

		if companyID == "" {
			handleError(r, w, goerr.Wrap(model.ErrValidation, "company_id is required"))
			return
		}

		input := model.ClassificationInput{
			SituationType:         types.SituationType(req.SituationType),
			ImmediateRisk:         req.ImmediateRisk,
			LeadershipInvolvement: req.LeadershipInvolvement,
			AffectedScope:         types.AffectedScope(req.AffectedScope),
			Recurrence:            types.Recurrence(req.Recurrence),
			Retaliation:           req.Retaliation,
		}

		created, err := uc.Report.CreateReport(r.Context(), companyID, input, submitterID)
		if err != nil {
			handleError(r, w, err)
			return
		}

		respondJSON(r, w, http.StatusCreated, toReportResponse(created, nil))
	}
}

func listReportsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		reports, err := uc.Report.ListReports(r.Context(), actor.CompanyID)
		if err != nil {
			handleError(r, w, err)
			return
		}

		resp := make([]*reportResponse, len(reports))
		for i, rb := range reports {
			resp[i] = toReportResponse(rb.Report, &rb.Badge)
		}
		respondJSON(r, w, http.StatusOK, map[string]any{"reports": resp})
	}
}

func getReportHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		rb, err := uc.Report.GetReport(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"))
		if err != nil {
			handleError(r, w, err)
			return
		}

		respondJSON(r, w, http.StatusOK, toReportResponse(rb.Report, &rb.Badge))
	}
}

type historyResponse struct {
	ID         string    `json:"id"`
	PrevStatus string    `json:"prev_status"`
	NewStatus  string    `json:"new_status"`
	ActorID    string    `json:"changed_by"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func getTimelineHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		history, err := uc.Report.GetTimeline(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"))
		if err != nil {
			handleError(r, w, err)
			return
		}

		resp := make([]*historyResponse, len(history))
		for i, h := range history {
			resp[i] = &historyResponse{
				ID:         h.ID,
				PrevStatus: h.PrevStatus.String(),
				NewStatus:  h.NewStatus.String(),
				ActorID:    h.ActorID,
				Comment:    h.Comment,
				CreatedAt:  h.CreatedAt,
			}
		}
		respondJSON(r, w, http.StatusOK, map[string]any{"timeline": resp})
	}
}

type changeStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func changeStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.ActorFromContext(r.Context())
		if err != nil {
			handleError(r, w, goerr.Wrap(model.ErrForbidden, "no acting identity"))
			return
		}

		var req changeStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(r, w, err)
			return
		}

		updated, err := uc.Transition.ChangeStatus(r.Context(), actor.CompanyID, chi.URLParam(r, "reportID"), types.ReportStatus(req.Status), req.Comment)
		if err != nil {
			handleError(r, w, err)
			return
		}

		respondJSON(r, w, http.StatusOK, toReportResponse(updated, nil))
	}
}
