package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticMainChallenge_Validate(t *testing.T) {
	tests := []struct {
		name      string
		challenge DiagnosticMainChallenge
		wantErr   bool
	}{
		{
			name:      "valid",
			challenge: DiagnosticMainChallenge{CategoryID: "bravo", Filters: []string{"constant(1)"}},
		},
		{
			name:      "missing category",
			challenge: DiagnosticMainChallenge{Filters: []string{"constant(1)"}},
			wantErr:   true,
		},
		{
			name:      "empty filter name",
			challenge: DiagnosticMainChallenge{CategoryID: "bravo", Filters: []string{""}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.challenge.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiagnosticTemplate_Validate(t *testing.T) {
	valid := DiagnosticTemplate{ID: "rec1", CategoryID: "bravo", Score: 50}
	assert.NoError(t, valid.Validate())

	outOfRange := DiagnosticTemplate{ID: "rec1", CategoryID: "bravo", Score: 150}
	assert.Error(t, outOfRange.Validate())

	noCategory := DiagnosticTemplate{ID: "rec1"}
	assert.Error(t, noCategory.Validate())
}

func TestDiagnosticResponse_Validate(t *testing.T) {
	assert.NoError(t, (&DiagnosticResponse{ResponseID: "stuck-market:bravo"}).Validate())
	assert.Error(t, (&DiagnosticResponse{ResponseID: "bravo"}).Validate())
}

func TestUserProfile_Validate(t *testing.T) {
	assert.NoError(t, (&UserProfile{Gender: GenderFeminine, YearOfBirth: 1990}).Validate())
	assert.NoError(t, (&UserProfile{}).Validate())
	assert.Error(t, (&UserProfile{Gender: "OTHER"}).Validate())
	assert.Error(t, (&UserProfile{YearOfBirth: 190}).Validate())
}

func TestUserDiff(t *testing.T) {
	var empty *UserDiff
	assert.False(t, empty.HasDepartementDiff())
	assert.False(t, empty.HasJobGroupDiff())
	assert.False(t, empty.HasYearOfBirthDiff())

	diff := &UserDiff{
		Profile: UserProfile{YearOfBirth: 1982},
		Projects: []Project{{
			City: &City{DepartementID: "31"},
		}},
	}
	assert.True(t, diff.HasDepartementDiff())
	assert.False(t, diff.HasJobGroupDiff())
	assert.True(t, diff.HasYearOfBirthDiff())
}
