package db

import "time"

// Profile represents a profiles row
type Profile struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Location  string
	UserType  string
	CreatedAt time.Time
}

// Job represents a jobs row. Nullable columns are pointers.
type Job struct {
	ID             string
	FarmerID       string
	Title          string
	Description    *string
	Duration       *string
	PayRate        *int
	TimeSlot       *string
	SkillsRequired *string
	Location       *string
	Status         *string
	CreatedAt      time.Time
}

// JobWithFarmer is a jobs row joined with the posting farmer's profile
type JobWithFarmer struct {
	Job
	FarmerName  *string
	FarmerPhone *string
}

// JobApplication represents a job_applications row.
// The JSON form is the raw row returned after a status update.
type JobApplication struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	WorkerID  string    `json:"worker_id"`
	Status    *string   `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplicationDetail is a job_applications row joined with its job and worker profile
type ApplicationDetail struct {
	JobApplication
	JobFarmerID    string
	JobTitle       *string
	WorkerName     *string
	WorkerPhone    *string
	WorkerLocation *string
	WorkerEmail    *string
}
