package types

// User is the account owning the projects
type User struct {
	UserID          string          `json:"user_id"`
	Profile         UserProfile     `json:"profile"`
	FeaturesEnabled FeaturesEnabled `json:"features_enabled"`
	Projects        []Project       `json:"projects,omitempty"`
}

// UserProfile holds the personal information used to personalize the diagnostic
type UserProfile struct {
	Gender        string   `json:"gender,omitempty" validate:"omitempty,oneof=MASCULINE FEMININE UNKNOWN_GENDER"`
	Locale        string   `json:"locale,omitempty"`
	YearOfBirth   int      `json:"year_of_birth,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	HighestDegree string   `json:"highest_degree,omitempty"`
	Frustrations  []string `json:"frustrations,omitempty"`
}

// FeaturesEnabled lists the experimental cohorts a user belongs to
type FeaturesEnabled struct {
	Alpha bool `json:"alpha,omitempty"`
}

// Genders
const (
	GenderMasculine = "MASCULINE"
	GenderFeminine  = "FEMININE"
)

// UserDiff describes the fields that were just updated on a user.
// Only presence matters: a set field means it was part of the update.
type UserDiff struct {
	Profile  UserProfile `json:"profile"`
	Projects []Project   `json:"projects,omitempty"`
}

// HasDepartementDiff reports whether the first project's département changed
func (d *UserDiff) HasDepartementDiff() bool {
	return d != nil && len(d.Projects) > 0 && d.Projects[0].DepartementID() != ""
}

// HasJobGroupDiff reports whether the first project's job group changed
func (d *UserDiff) HasJobGroupDiff() bool {
	return d != nil && len(d.Projects) > 0 && d.Projects[0].RomeID() != ""
}

// HasYearOfBirthDiff reports whether the year of birth changed
func (d *UserDiff) HasYearOfBirthDiff() bool {
	return d != nil && d.Profile.YearOfBirth != 0
}
