// Package types provides type definitions for structured data used throughout the diagnostic engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Project represents a user's job-search project
type Project struct {
	ProjectID    string `json:"project_id"`
	IsIncomplete bool   `json:"is_incomplete,omitempty"`

	City      *City      `json:"city,omitempty"`
	TargetJob *TargetJob `json:"target_job,omitempty"`

	CreatedAt              time.Time  `json:"created_at"`
	JobSearchStartedAt     *time.Time `json:"job_search_started_at,omitempty"`
	JobSearchHasNotStarted bool       `json:"job_search_has_not_started,omitempty"`

	WeeklyApplicationsEstimate int    `json:"weekly_applications_estimate,omitempty"` // 0 means unknown
	TotalInterviewCount        int    `json:"total_interview_count,omitempty"`        // -1 means none, 0 means unknown
	Seniority                  string `json:"seniority,omitempty"`                    // see Seniority* constants
	NetworkEstimate            int    `json:"network_estimate,omitempty"`             // 1 (weak) to 3 (strong), 0 unknown
	Kind                       string `json:"kind,omitempty"`                         // FIND_A_FIRST_JOB, FIND_ANOTHER_JOB, ...

	OriginalSelfDiagnostic *SelfDiagnostic `json:"original_self_diagnostic,omitempty"`

	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// City is the location where the user is looking for a job
type City struct {
	CityID        string `json:"city_id"`
	Name          string `json:"name"`
	DepartementID string `json:"departement_id"`
	RegionID      string `json:"region_id,omitempty"`
}

// TargetJob is the job the user is looking for
type TargetJob struct {
	CodeOGR       string   `json:"code_ogr,omitempty"`
	Name          string   `json:"name"`
	MasculineName string   `json:"masculine_name,omitempty"`
	FeminineName  string   `json:"feminine_name,omitempty"`
	JobGroup      JobGroup `json:"job_group"`
}

// JobGroup is a ROME job group
type JobGroup struct {
	RomeID string `json:"rome_id"`
	Name   string `json:"name"`
}

// SelfDiagnostic is the main challenge the user picked for themselves
type SelfDiagnostic struct {
	CategoryID string `json:"category_id,omitempty"`
	Status     string `json:"status,omitempty"` // KNOWN_SELF_DIAGNOSTIC, UNDEFINED_SELF_DIAGNOSTIC, OTHER_SELF_DIAGNOSTIC
}

// Seniority levels
const (
	SeniorityInternship   = "INTERN"
	SeniorityJunior       = "JUNIOR"
	SeniorityIntermediary = "INTERMEDIARY"
	SenioritySenior       = "SENIOR"
	SeniorityExpert       = "EXPERT"
)

// Project kinds
const (
	ProjectKindFirstJob   = "FIND_A_FIRST_JOB"
	ProjectKindAnotherJob = "FIND_ANOTHER_JOB"
	ProjectKindReorient   = "REORIENTATION"
)

// DepartementID returns the project's département or an empty string
func (p *Project) DepartementID() string {
	if p == nil || p.City == nil {
		return ""
	}
	return p.City.DepartementID
}

// RomeID returns the project's job group ROME ID or an empty string
func (p *Project) RomeID() string {
	if p == nil || p.TargetJob == nil {
		return ""
	}
	return p.TargetJob.JobGroup.RomeID
}
