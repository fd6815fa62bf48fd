// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// validate is the shared validator instance; validators are thread-safe
// and cache struct metadata.
var validate = validator.New()

// LoadSessionRequest is the body of POST /api/v1/session/load.
type LoadSessionRequest struct {
	Year      int    `json:"year" validate:"required,min=1950,max=2100"`
	EventName string `json:"event_name" validate:"required,min=3,max=100"`
	Kind      string `json:"kind" validate:"required,oneof=FP1 FP2 FP3 Q S R"`
}

// AnalysisRequest is the body of every POST /api/v1/analysis/* endpoint.
// An empty driver list selects all drivers in the session.
type AnalysisRequest struct {
	Drivers []string `json:"drivers" validate:"omitempty,max=20,dive,len=3,alpha"`
}

// decodeAndValidate decodes a JSON request body into dst and runs
// validation. Writes the error response itself and reports success.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var details []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				details = append(details, fe.Field()+" failed "+fe.Tag()+" validation")
			}
		}
		rw.ValidationError("Request validation failed", details)
		return false
	}
	return true
}
