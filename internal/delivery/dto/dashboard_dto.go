package dto

type PatientDashboardResponse struct {
	UpcomingAppointments []AppointmentResponse  `json:"upcoming_appointments"`
	RecentPrescriptions  []PrescriptionResponse `json:"recent_prescriptions"`
	UnreadMessages       int64                  `json:"unread_messages"`
}

type DoctorDashboardResponse struct {
	TodayAppointments   []AppointmentResponse `json:"today_appointments"`
	PendingAppointments int64                 `json:"pending_appointments"`
	TotalPatients       int64                 `json:"total_patients"`
	UnreadMessages      int64                 `json:"unread_messages"`
}
