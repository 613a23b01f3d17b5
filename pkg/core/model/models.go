package model

// UserType is the kind of account an identity belongs to
type UserType string

const (
	UserTypeFarmer UserType = "farmer"
	UserTypeWorker UserType = "worker"
)

func (t UserType) IsValid() bool {
	return t == UserTypeFarmer || t == UserTypeWorker
}

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further review action applies to the status
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Label returns the display label for an application status
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// Identity is the authenticated user as seen by the client
type Identity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Type     UserType `json:"type"`
	Location string   `json:"location"`
	Phone    string   `json:"phone"`
}

// Job is a posted work opportunity, in the client's vocabulary.
// FarmerID keeps its snake_case wire name.
type Job struct {
	ID             string `json:"id"`
	FarmerID       string `json:"farmer_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Duration       string `json:"duration"`
	PayRate        int    `json:"payRate"`
	TimeSlot       string `json:"timeSlot"`
	SkillsRequired string `json:"skillsRequired"`
	Location       string `json:"location"`
	FarmerName     string `json:"farmerName"`
	FarmerPhone    string `json:"farmerPhone"`
	PostedDate     string `json:"postedDate"`
	Status         string `json:"status"`
}

// Application is a worker's request to be hired for a job
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	WorkerID       string            `json:"workerId"`
	WorkerName     string            `json:"workerName"`
	WorkerLocation string            `json:"workerLocation"`
	WorkerPhone    string            `json:"workerPhone"`
	JobTitle       string            `json:"jobTitle"`
	AppliedAt      string            `json:"appliedAt"`
	Status         ApplicationStatus `json:"status"`
}

// IdentityHeader carries the caller's identity ID on every request
const IdentityHeader = "User-ID"
