package domain

// Clinical records as exchanged with the backend. Field names follow the
// backend JSON contract.

type Patient struct {
	ID          string `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
	BloodGroup  string `json:"bloodGroup,omitempty"`
}

type Doctor struct {
	ID             string `json:"id,omitempty"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Department     string `json:"department,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
}

type Appointment struct {
	ID        string `json:"id,omitempty"`
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"appointmentDate"`
	Time      string `json:"appointmentTime,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Prescription struct {
	ID           string `json:"id,omitempty"`
	PatientID    string `json:"patientId"`
	DoctorID     string `json:"doctorId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	IssuedAt     string `json:"issuedAt,omitempty"`
}

type Bill struct {
	ID          string  `json:"id,omitempty"`
	PatientID   string  `json:"patientId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
}
