package server

import (
	"time"

	"equipment_management/internal/domain"
	"equipment_management/internal/service"
)

// Serialized shapes returned to the frontend. Field names match the existing
// API contract (snake_case, ISO dates).

type EquipmentSummary struct {
	EquipmentID   int64  `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	PlateSerialNo string `json:"plate_serial_no"`
}

type DriverSummary struct {
	DriverID    int64  `json:"driver_id"`
	DriverName  string `json:"driver_name"`
	EqamaNumber string `json:"eqama_number"`
	PhoneNumber string `json:"phone_number"`
}

type DayView struct {
	DayID           int64    `json:"day_id"`
	LogDate         string   `json:"log_date"`
	TimeStart       *string  `json:"time_start"`
	TimeEnd         *string  `json:"time_end"`
	DutyBreakHrs    float64  `json:"duty_break_hrs"`
	RegularHrs      *float64 `json:"regular_working_hrs"`
	OvertimeHrs     *float64 `json:"overtime_hrs"`
	TotalHrs        *float64 `json:"total_using_hrs"`
	BreakdownReason *string  `json:"breakdown_reason"`
}

type ApprovalView struct {
	Status         string  `json:"status"`
	Role           string  `json:"role"`
	Comment        *string `json:"comment"`
	ActedAt        *string `json:"acted_at"`
	ApproverUserID *int64  `json:"approver_user_id"`
}

type TimesheetView struct {
	TimesheetID           int64            `json:"timesheet_id"`
	MonthYear             string           `json:"month_year"`
	ProjectLocation       string           `json:"project_location"`
	Status                string           `json:"status"`
	SupplierName          *string          `json:"supplier_name"`
	ChassisNo             *string          `json:"chassis_no"`
	StartMeter            *float64         `json:"start_meter"`
	EndMeter              *float64         `json:"end_meter"`
	DieselConsumptionLtrs *float64         `json:"diesel_consumption_ltrs"`
	Equipment             EquipmentSummary `json:"equipment"`
	Driver                DriverSummary    `json:"driver"`
	Days                  []DayView        `json:"days"`
	Approval              *ApprovalView    `json:"approval"`
}

func newTimesheetView(detail *service.CardDetail) TimesheetView {
	card := detail.Card
	view := TimesheetView{
		TimesheetID:           card.ID,
		MonthYear:             card.MonthYear.Format("2006-01-02"),
		ProjectLocation:       card.ProjectLocation,
		Status:                string(card.Status),
		SupplierName:          card.SupplierName,
		ChassisNo:             card.ChassisNo,
		StartMeter:            card.StartMeter,
		EndMeter:              card.EndMeter,
		DieselConsumptionLtrs: card.DieselConsumptionLtrs,
		Equipment: EquipmentSummary{
			EquipmentID:   detail.Equipment.ID,
			EquipmentName: detail.Equipment.EquipmentName,
			PlateSerialNo: detail.Equipment.PlateSerialNo,
		},
		Driver: DriverSummary{
			DriverID:    detail.Driver.ID,
			DriverName:  detail.Driver.DriverName,
			EqamaNumber: detail.Driver.EqamaNumber,
			PhoneNumber: detail.Driver.PhoneNumber,
		},
		Days: []DayView{},
	}

	for _, d := range card.SortedDays() {
		view.Days = append(view.Days, DayView{
			DayID:           d.ID,
			LogDate:         d.LogDate.Format("2006-01-02"),
			TimeStart:       d.TimeStart,
			TimeEnd:         d.TimeEnd,
			DutyBreakHrs:    d.DutyBreakHrs,
			RegularHrs:      d.RegularHrs,
			OvertimeHrs:     d.OvertimeHrs,
			TotalHrs:        d.TotalHrs,
			BreakdownReason: d.BreakdownReason,
		})
	}

	if a := latestApproval(card); a != nil {
		av := &ApprovalView{
			Status:         string(a.Status),
			Role:           a.Role,
			Comment:        a.Comment,
			ApproverUserID: a.ApproverUserID,
		}
		if a.ActedAt != nil {
			acted := a.ActedAt.Format(time.RFC3339)
			av.ActedAt = &acted
		}
		view.Approval = av
	}
	return view
}

func latestApproval(card *domain.TimesheetCard) *domain.Approval {
	var latest *domain.Approval
	for _, a := range card.Approvals {
		if latest == nil || a.ID > latest.ID {
			latest = a
		}
	}
	return latest
}

type EquipmentView struct {
	EquipmentID        int64   `json:"equipment_id"`
	AssetNo            string  `json:"asset_no"`
	EquipmentName      string  `json:"equipment_name"`
	PlateSerialNo      string  `json:"plate_serial_no"`
	ShiftType          string  `json:"shift_type"`
	NumShiftsRequested *int    `json:"num_shifts_requested"`
	Status             string  `json:"status"`
	ZoneDepartment     *string `json:"zone_department"`
	MobilizedDate      *string `json:"mobilized_date"`
	DemobilizationDate *string `json:"demobilization_date"`
	CompanySupplier    *string `json:"company_supplier"`
	Remarks            *string `json:"remarks"`

	DayShiftDriverName    *string `json:"day_shift_driver_name"`
	DayShiftDriverPhone   *string `json:"day_shift_driver_phone"`
	NightShiftDriverName  *string `json:"night_shift_driver_name"`
	NightShiftDriverPhone *string `json:"night_shift_driver_phone"`
}

func newEquipmentView(eq *domain.Equipment) EquipmentView {
	return EquipmentView{
		EquipmentID:        eq.ID,
		AssetNo:            eq.AssetNo,
		EquipmentName:      eq.EquipmentName,
		PlateSerialNo:      eq.PlateSerialNo,
		ShiftType:          eq.ShiftType,
		NumShiftsRequested: eq.NumShiftsRequested,
		Status:             eq.Status,
		ZoneDepartment:     eq.ZoneDepartment,
		MobilizedDate:      dateStr(eq.MobilizedDate),
		DemobilizationDate: dateStr(eq.DemobilizationDate),
		CompanySupplier:    eq.CompanySupplier,
		Remarks:            eq.Remarks,
	}
}

type DriverView struct {
	DriverID              int64   `json:"driver_id"`
	DriverName            string  `json:"driver_name"`
	PhoneNumber           string  `json:"phone_number"`
	EqamaNumber           string  `json:"eqama_number"`
	DayShiftEquipmentID   *int64  `json:"day_shift_equipment_id"`
	NightShiftEquipmentID *int64  `json:"night_shift_equipment_id"`

	DayShiftEquipmentName   *string `json:"day_shift_equipment_name"`
	DayShiftMachineNumber   *string `json:"day_shift_machine_number"`
	NightShiftEquipmentName *string `json:"night_shift_equipment_name"`
	NightShiftMachineNumber *string `json:"night_shift_machine_number"`
}

type RequestView struct {
	RequestID     int64   `json:"request_id"`
	EngineerName  string  `json:"engineer_name"`
	EquipmentID   int64   `json:"requested_equipment"`
	RequestTime   string  `json:"request_time"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
	EquipmentName *string `json:"equipment_name"`
	MachineNumber *string `json:"machine_number"`
}

func dateStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
