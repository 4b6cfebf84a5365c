package domain

import "time"

type Workspace struct {
	ID                     string
	Name                   string
	Plan                   Plan
	SeatLimit              int // 0 means fall back to the plan table
	EmployeeLimit          int
	BrandingColor          string
	LogoURL                string
	PersonalizationEnabled bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
