package types

// LocalDiagnosis holds labor market statistics for a job group in a département
type LocalDiagnosis struct {
	ID  string `json:"id"` // <departement_id>:<rome_id>
	IMT *IMT   `json:"imt,omitempty"`
}

// IMT is the labor market information ("Informations sur le Marché du Travail")
type IMT struct {
	YearlyAvgOffersPer10Candidates int                        `json:"yearly_avg_offers_per_10_candidates,omitempty"` // -1 means no offers
	JuniorSalary                   *SalaryEstimation          `json:"junior_salary,omitempty"`
	SeniorSalary                   *SalaryEstimation          `json:"senior_salary,omitempty"`
	EmploymentTypePercentages      []EmploymentTypePercentage `json:"employment_type_percentages,omitempty"`
}

// SalaryEstimation is a salary range as displayed to users
type SalaryEstimation struct {
	MinSalary float64 `json:"min_salary,omitempty"`
	MaxSalary float64 `json:"max_salary,omitempty"`
	ShortText string  `json:"short_text,omitempty"`
}

// EmploymentTypePercentage is the share of offers for one employment type, sorted by decreasing percentage
type EmploymentTypePercentage struct {
	EmploymentType string  `json:"employment_type"`
	Percentage     float64 `json:"percentage"`
}

// Employment types
const (
	EmploymentTypeCDI                  = "CDI"
	EmploymentTypeCDDOver3Months       = "CDD_OVER_3_MONTHS"
	EmploymentTypeCDDLessEqual3Months  = "CDD_LESS_EQUAL_3_MONTHS"
	EmploymentTypeInterim              = "INTERIM"
	EmploymentTypeAnyContractLessMonth = "ANY_CONTRACT_LESS_THAN_A_MONTH"
)

// JobGroupInfo holds static information about a ROME job group
type JobGroupInfo struct {
	RomeID           string                      `json:"rome_id" validate:"required"`
	Name             string                      `json:"name"`
	Requirements     *JobRequirements            `json:"requirements,omitempty"`
	ApplicationModes map[string]ApplicationModes `json:"application_modes,omitempty"` // keyed by FAP code
}

// JobRequirements lists what employers ask for in offers of a job group
type JobRequirements struct {
	Diplomas []DiplomaRequirement `json:"diplomas,omitempty"`
}

// DiplomaRequirement is a diploma requested in a share of offers
type DiplomaRequirement struct {
	Name            string  `json:"name"`
	Diploma         Diploma `json:"diploma"`
	PercentRequired float64 `json:"percent_required"`
}

// Diploma is a degree with its level in the French education system
type Diploma struct {
	Level int `json:"level"` // 1 (CAP/BEP) to 8 (Doctorat)
}

// ApplicationModes lists how people got hired for one FAP code
type ApplicationModes struct {
	Modes []ApplicationMode `json:"modes"`
}

// ApplicationMode is the share of hires through one channel
type ApplicationMode struct {
	Mode       string  `json:"mode"`
	Percentage float64 `json:"percentage"`
}

// Application modes
const (
	ApplicationModeSpontaneous = "SPONTANEOUS_APPLICATION"
	ApplicationModeNetwork     = "PERSONAL_OR_PROFESSIONAL_CONTACTS"
	ApplicationModePlacement   = "PLACEMENT_AGENCY"
	ApplicationModeOther       = "OTHER_CHANNELS"
)

// DepartementInfo describes a French département
type DepartementInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix"` // e.g. "dans le ", "en "
	RegionID string `json:"region_id"`
}

// Region describes a French region
type Region struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// UsersCount aggregates how many users already used the diagnostic
type UsersCount struct {
	DepartementCounts map[string]int `json:"departement_counts,omitempty"`
	JobGroupCounts    map[string]int `json:"job_group_counts,omitempty"`
}

// Translation holds the translations of one source string, keyed by locale
type Translation struct {
	String  string            `json:"string"`
	Locales map[string]string `json:"locales"`
}
