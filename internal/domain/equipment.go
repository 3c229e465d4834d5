package domain

import "time"

// Equipment is a construction-site asset. Referenced by timesheets, never
// owned by them.
type Equipment struct {
	ID                 int64
	AssetNo            string
	EquipmentName      string
	PlateSerialNo      string
	ShiftType          string // 'Day', 'Night', 'Day & Night'
	NumShiftsRequested *int
	Status             string
	ZoneDepartment     *string
	MobilizedDate      *time.Time
	DemobilizationDate *time.Time
	CompanySupplier    *string
	Remarks            *string
}

// Driver operates equipment on a day and/or night shift.
type Driver struct {
	ID                    int64
	DriverName            string
	PhoneNumber           string
	EqamaNumber           string
	DayShiftEquipmentID   *int64
	NightShiftEquipmentID *int64
}

// Request is an engineer's ask for a piece of equipment.
type Request struct {
	ID           int64
	EngineerName string
	EquipmentID  int64
	RequestTime  time.Time
	Status       string // 'Pending', 'Approved', 'Rejected', 'Completed'
	Notes        string
}

// DashboardStats are the counts shown on the landing page.
type DashboardStats struct {
	TotalEquipment     int `json:"total_equipment"`
	AvailableEquipment int `json:"available_equipment"`
	TotalDrivers       int `json:"total_drivers"`
	PendingRequests    int `json:"pending_requests"`
}
