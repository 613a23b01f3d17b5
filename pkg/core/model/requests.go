package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SignupRequest is the body of POST /api/signup
type SignupRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Password string   `json:"password" validate:"required"`
	UserType UserType `json:"userType" validate:"required,oneof=farmer worker"`
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PostJobRequest is the body of POST /api/jobs
type PostJobRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	TimeSlot       string    `json:"timeSlot"`
	Duration       string    `json:"duration"`
	PayRate        IntString `json:"payRate"`
	SkillsRequired string    `json:"skillsRequired"`
}

// UpdateStatusRequest is the body of PUT /api/applications/{id}
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// ApplyRequest is the body of POST /api/apply
type ApplyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

// IntString is an integer that decodes from a JSON number or a numeric string.
// Fractions are truncated and trailing non-digits in strings are ignored.
type IntString struct {
	Value int
	Valid bool
}

// NewIntString returns a valid IntString holding v
func NewIntString(v int) IntString {
	return IntString{Value: v, Valid: true}
}

func (n IntString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

func (n *IntString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = IntString{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = IntString{}
			return nil
		}
		v, err := parseLeadingInt(s)
		if err != nil {
			return err
		}
		*n = NewIntString(v)
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return fmt.Errorf("number %s out of range", b)
	}
	*n = NewIntString(int(f))
	return nil
}

// parseLeadingInt reads an optionally signed run of digits from the start of s
func parseLeadingInt(s string) (int, error) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return strconv.Atoi(s[:end])
}
