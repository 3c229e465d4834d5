package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"equipment_management/internal/domain"
	"equipment_management/internal/service"
)

func (s *Server) createTimesheetHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EquipmentID     int64  `json:"equipment_id"`
		DriverID        int64  `json:"driver_id"`
		MonthYear       string `json:"month_year"`
		ProjectLocation string `json:"project_location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.EquipmentID == 0 || payload.DriverID == 0 || payload.MonthYear == "" {
		http.Error(w, "equipment_id, driver_id and month_year are required", http.StatusBadRequest)
		return
	}
	monthYear, err := parseDate(payload.MonthYear)
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := s.timesheets.CreateOrGet(r.Context(), service.CreateCardInput{
		EquipmentID:     payload.EquipmentID,
		DriverID:        payload.DriverID,
		MonthYear:       *monthYear,
		ProjectLocation: payload.ProjectLocation,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

func (s *Server) getTimesheetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := s.timesheets.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

// optionalLogDate reads an optional {"log_date": "YYYY-MM-DD"} body; an empty
// body means "today".
func optionalLogDate(r *http.Request) (*time.Time, error) {
	var payload struct {
		LogDate string `json:"log_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrValidation)
	}
	if payload.LogDate == "" {
		return nil, nil
	}
	return parseDate(payload.LogDate)
}

func (s *Server) clockInHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	logDate, err := optionalLogDate(r)
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := s.timesheets.ClockIn(r.Context(), id, logDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

func (s *Server) clockOutHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	logDate, err := optionalLogDate(r)
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := s.timesheets.ClockOut(r.Context(), id, logDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

// updateDayHandler applies a partial edit. Key presence in the JSON body
// decides which fields change, so "time_end": null clears the value while an
// omitted key leaves it alone.
func (s *Server) updateDayHandler(w http.ResponseWriter, r *http.Request) {
	dayID, err := pathID(r, "dayId")
	if err != nil {
		respondError(w, err)
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var patch service.DayPatch
	if raw, ok := body["time_start"]; ok {
		patch.SetTimeStart = true
		if err := json.Unmarshal(raw, &patch.TimeStart); err != nil {
			http.Error(w, "invalid time_start", http.StatusBadRequest)
			return
		}
	}
	if raw, ok := body["time_end"]; ok {
		patch.SetTimeEnd = true
		if err := json.Unmarshal(raw, &patch.TimeEnd); err != nil {
			http.Error(w, "invalid time_end", http.StatusBadRequest)
			return
		}
	}
	if raw, ok := body["duty_break_hrs"]; ok {
		patch.SetDutyBreakHrs = true
		if err := json.Unmarshal(raw, &patch.DutyBreakHrs); err != nil {
			http.Error(w, "invalid duty_break_hrs", http.StatusBadRequest)
			return
		}
	}
	if raw, ok := body["breakdown_reason"]; ok {
		patch.SetBreakdownReason = true
		if err := json.Unmarshal(raw, &patch.BreakdownReason); err != nil {
			http.Error(w, "invalid breakdown_reason", http.StatusBadRequest)
			return
		}
	}

	detail, err := s.timesheets.UpdateDay(r.Context(), dayID, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := s.timesheets.Submit(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}

func (s *Server) listPendingHandler(w http.ResponseWriter, r *http.Request) {
	details, err := s.timesheets.ListPending(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	views := make([]TimesheetView, 0, len(details))
	for _, detail := range details {
		views = append(views, newTimesheetView(detail))
	}
	respondJSON(w, views)
}

func (s *Server) approveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	callerID, ok := s.currentUserID(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	detail, err := s.timesheets.Approve(r.Context(), id, callerID, payload.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newTimesheetView(detail))
}
