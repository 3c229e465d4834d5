package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"equipment_management/internal/domain"
)

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, value)
	}
	return &t, nil
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}
	return id, nil
}

type equipmentPayload struct {
	AssetNo            string  `json:"asset_no"`
	EquipmentName      string  `json:"equipment_name"`
	PlateSerialNo      string  `json:"plate_serial_no"`
	ShiftType          string  `json:"shift_type"`
	NumShiftsRequested *int    `json:"num_shifts_requested"`
	Status             *string `json:"status"`
	ZoneDepartment     *string `json:"zone_department"`
	MobilizedDate      *string `json:"mobilized_date"`
	DemobilizationDate *string `json:"demobilization_date"`
	CompanySupplier    *string `json:"company_supplier"`
	Remarks            *string `json:"remarks"`
}

func (s *Server) listEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	equipment, err := s.equipment.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	drivers, err := s.drivers.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	dayDrivers := map[int64]*domain.Driver{}
	nightDrivers := map[int64]*domain.Driver{}
	for _, d := range drivers {
		if d.DayShiftEquipmentID != nil {
			dayDrivers[*d.DayShiftEquipmentID] = d
		}
		if d.NightShiftEquipmentID != nil {
			nightDrivers[*d.NightShiftEquipmentID] = d
		}
	}

	views := make([]EquipmentView, 0, len(equipment))
	for _, eq := range equipment {
		view := newEquipmentView(eq)
		if d, ok := dayDrivers[eq.ID]; ok {
			view.DayShiftDriverName = &d.DriverName
			view.DayShiftDriverPhone = &d.PhoneNumber
		}
		if d, ok := nightDrivers[eq.ID]; ok {
			view.NightShiftDriverName = &d.DriverName
			view.NightShiftDriverPhone = &d.PhoneNumber
		}
		views = append(views, view)
	}
	respondJSON(w, views)
}

func (s *Server) createEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	var payload equipmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.AssetNo == "" || payload.EquipmentName == "" || payload.PlateSerialNo == "" {
		http.Error(w, "asset_no, equipment_name and plate_serial_no are required", http.StatusBadRequest)
		return
	}

	eq := domain.Equipment{
		AssetNo:            payload.AssetNo,
		EquipmentName:      payload.EquipmentName,
		PlateSerialNo:      payload.PlateSerialNo,
		ShiftType:          payload.ShiftType,
		NumShiftsRequested: payload.NumShiftsRequested,
		Status:             "Available",
		ZoneDepartment:     payload.ZoneDepartment,
		CompanySupplier:    payload.CompanySupplier,
		Remarks:            payload.Remarks,
	}
	if payload.Status != nil {
		eq.Status = *payload.Status
	}

	var err error
	if payload.MobilizedDate != nil {
		if eq.MobilizedDate, err = parseDate(*payload.MobilizedDate); err != nil {
			respondError(w, err)
			return
		}
	}
	if payload.DemobilizationDate != nil {
		if eq.DemobilizationDate, err = parseDate(*payload.DemobilizationDate); err != nil {
			respondError(w, err)
			return
		}
	}

	if err := s.equipment.Create(r.Context(), &eq); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	respondJSON(w, newEquipmentView(&eq))
}

func (s *Server) updateEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	eq, err := s.equipment.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	var payload equipmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if payload.AssetNo != "" {
		eq.AssetNo = payload.AssetNo
	}
	if payload.EquipmentName != "" {
		eq.EquipmentName = payload.EquipmentName
	}
	if payload.PlateSerialNo != "" {
		eq.PlateSerialNo = payload.PlateSerialNo
	}
	if payload.ShiftType != "" {
		eq.ShiftType = payload.ShiftType
	}
	if payload.NumShiftsRequested != nil {
		eq.NumShiftsRequested = payload.NumShiftsRequested
	}
	if payload.Status != nil {
		eq.Status = *payload.Status
	}
	if payload.ZoneDepartment != nil {
		eq.ZoneDepartment = payload.ZoneDepartment
	}
	if payload.CompanySupplier != nil {
		eq.CompanySupplier = payload.CompanySupplier
	}
	if payload.Remarks != nil {
		eq.Remarks = payload.Remarks
	}
	if payload.MobilizedDate != nil {
		if eq.MobilizedDate, err = parseDate(*payload.MobilizedDate); err != nil {
			respondError(w, err)
			return
		}
	}
	if payload.DemobilizationDate != nil {
		if eq.DemobilizationDate, err = parseDate(*payload.DemobilizationDate); err != nil {
			respondError(w, err)
			return
		}
	}

	if err := s.equipment.Update(r.Context(), eq); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, newEquipmentView(eq))
}

func (s *Server) listDriversHandler(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.drivers.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]DriverView, 0, len(drivers))
	for _, d := range drivers {
		view := DriverView{
			DriverID:              d.ID,
			DriverName:            d.DriverName,
			PhoneNumber:           d.PhoneNumber,
			EqamaNumber:           d.EqamaNumber,
			DayShiftEquipmentID:   d.DayShiftEquipmentID,
			NightShiftEquipmentID: d.NightShiftEquipmentID,
		}
		if d.DayShiftEquipmentID != nil {
			if eq, err := s.equipment.GetByID(r.Context(), *d.DayShiftEquipmentID); err == nil {
				view.DayShiftEquipmentName = &eq.EquipmentName
				view.DayShiftMachineNumber = &eq.PlateSerialNo
			}
		}
		if d.NightShiftEquipmentID != nil {
			if eq, err := s.equipment.GetByID(r.Context(), *d.NightShiftEquipmentID); err == nil {
				view.NightShiftEquipmentName = &eq.EquipmentName
				view.NightShiftMachineNumber = &eq.PlateSerialNo
			}
		}
		views = append(views, view)
	}
	respondJSON(w, views)
}

func (s *Server) createDriverHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DriverName            string `json:"driver_name"`
		PhoneNumber           string `json:"phone_number"`
		EqamaNumber           string `json:"eqama_number"`
		DayShiftEquipmentID   *int64 `json:"day_shift_equipment_id"`
		NightShiftEquipmentID *int64 `json:"night_shift_equipment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.DriverName == "" || payload.PhoneNumber == "" || payload.EqamaNumber == "" {
		http.Error(w, "driver_name, phone_number and eqama_number are required", http.StatusBadRequest)
		return
	}

	d := domain.Driver{
		DriverName:            payload.DriverName,
		PhoneNumber:           payload.PhoneNumber,
		EqamaNumber:           payload.EqamaNumber,
		DayShiftEquipmentID:   payload.DayShiftEquipmentID,
		NightShiftEquipmentID: payload.NightShiftEquipmentID,
	}
	if err := s.drivers.Create(r.Context(), &d); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	respondJSON(w, DriverView{
		DriverID:              d.ID,
		DriverName:            d.DriverName,
		PhoneNumber:           d.PhoneNumber,
		EqamaNumber:           d.EqamaNumber,
		DayShiftEquipmentID:   d.DayShiftEquipmentID,
		NightShiftEquipmentID: d.NightShiftEquipmentID,
	})
}

func (s *Server) listRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		view := RequestView{
			RequestID:    req.ID,
			EngineerName: req.EngineerName,
			EquipmentID:  req.EquipmentID,
			RequestTime:  req.RequestTime.Format(time.RFC3339),
			Status:       req.Status,
			Notes:        req.Notes,
		}
		if eq, err := s.equipment.GetByID(r.Context(), req.EquipmentID); err == nil {
			view.EquipmentName = &eq.EquipmentName
			view.MachineNumber = &eq.PlateSerialNo
		}
		views = append(views, view)
	}
	respondJSON(w, views)
}

func (s *Server) createRequestHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EngineerName string `json:"engineer_name"`
		EquipmentID  int64  `json:"requested_equipment"`
		Notes        string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.EngineerName == "" || payload.EquipmentID == 0 {
		http.Error(w, "engineer_name and requested_equipment are required", http.StatusBadRequest)
		return
	}

	if _, err := s.equipment.GetByID(r.Context(), payload.EquipmentID); err != nil {
		respondError(w, err)
		return
	}

	req := domain.Request{
		EngineerName: payload.EngineerName,
		EquipmentID:  payload.EquipmentID,
		Notes:        payload.Notes,
	}
	if err := s.requests.Create(r.Context(), &req); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	respondJSON(w, RequestView{
		RequestID:    req.ID,
		EngineerName: req.EngineerName,
		EquipmentID:  req.EquipmentID,
		RequestTime:  req.RequestTime.Format(time.RFC3339),
		Status:       req.Status,
		Notes:        req.Notes,
	})
}

func (s *Server) updateRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	req, err := s.requests.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, RequestView{
		RequestID:    req.ID,
		EngineerName: req.EngineerName,
		EquipmentID:  req.EquipmentID,
		RequestTime:  req.RequestTime.Format(time.RFC3339),
		Status:       req.Status,
		Notes:        req.Notes,
	})
}

func (s *Server) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, stats)
}
