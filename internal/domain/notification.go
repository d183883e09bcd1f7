package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateEmployeeNotificationData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordNotificationData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type SubstitutionDecidedNotificationData struct {
	FullName     string `json:"fullName"`
	Decision     string `json:"decision"`
	ResponseNote string `json:"responseNote"`
	WeekStart    string `json:"weekStart"`
	Weekday      string `json:"weekday"`
	ShiftType    string `json:"shiftType"`
}

type SchedulePublishedNotificationData struct {
	FullName  string `json:"fullName"`
	WeekStart string `json:"weekStart"`
	ShiftsNum int    `json:"shiftsNum"`
}
