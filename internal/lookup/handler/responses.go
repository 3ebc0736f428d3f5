package handler

import (
	"time"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/service"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type submitResponse struct {
	Data map[string]any `json:"data"`
	Ref  string         `json:"ref"`
}

type statusResponse struct {
	Status    string         `json:"status"`
	Provider  string         `json:"provider"`
	CreatedAt time.Time      `json:"createdAt"`
	Result    map[string]any `json:"result"`
	Error     string         `json:"error"`
}

type requestSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	LookupMethod string    `json:"lookupMethod"`
	Status       string    `json:"status"`
	Provider     string    `json:"provider"`
	Ref          string    `json:"ref"`
}

func toSubmitResponse(res *service.SubmitResult) submitResponse {
	data := res.Result.Data()
	if data == nil {
		data = map[string]any{}
	}
	return submitResponse{Data: data, Ref: res.Record.Ref.String()}
}

func toStatusResponse(rec *models.VerificationRequest) statusResponse {
	result := rec.Result
	if result == nil {
		result = map[string]any{}
	}
	return statusResponse{
		Status:    rec.Status,
		Provider:  rec.Provider,
		CreatedAt: rec.CreatedAt.UTC(),
		Result:    result,
		Error:     rec.Error,
	}
}

func toSummaries(recs []*models.VerificationRequest) []requestSummary {
	out := make([]requestSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, requestSummary{
			ID:           rec.ID.String(),
			CreatedAt:    rec.CreatedAt.UTC(),
			LookupMethod: rec.Method.String(),
			Status:       rec.Status,
			Provider:     rec.Provider,
			Ref:          rec.Ref.String(),
		})
	}
	return out
}
