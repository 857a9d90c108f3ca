package diagnostic

import (
	"context"
	"strings"
	"testing"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestedDiplomas(t *testing.T) {
	bac := types.DiplomaRequirement{Name: "Bac", Diploma: types.Diploma{Level: 4}}
	bac4 := types.DiplomaRequirement{Name: "Bac+4", Diploma: types.Diploma{Level: 6}}
	bac5 := types.DiplomaRequirement{Name: "Bac+5", Diploma: types.Diploma{Level: 7}}
	with := func(d types.DiplomaRequirement, percent float64) types.DiplomaRequirement {
		d.PercentRequired = percent
		return d
	}

	tests := []struct {
		name     string
		diplomas []types.DiplomaRequirement
		want     []string
	}{
		{
			name:     "dominant diploma collapses the list",
			diplomas: []types.DiplomaRequirement{with(bac5, 75), with(bac4, 20)},
			want:     []string{"Bac+5"},
		},
		{
			name:     "top two sorted by level",
			diplomas: []types.DiplomaRequirement{with(bac5, 60), with(bac4, 25), with(bac, 15)},
			want:     []string{"Bac+4", "Bac+5"},
		},
		{
			name:     "rare diplomas are ignored",
			diplomas: []types.DiplomaRequirement{with(bac4, 8), with(bac5, 10)},
			want:     []string{},
		},
		{
			name:     "single diploma",
			diplomas: []types.DiplomaRequirement{with(bac, 40), with(bac5, 5)},
			want:     []string{"Bac"},
		},
		{
			name:     "unsorted content",
			diplomas: []types.DiplomaRequirement{with(bac, 15), with(bac5, 30), with(bac4, 50)},
			want:     []string{"Bac+4", "Bac+5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requestedDiplomas(&types.JobRequirements{Diplomas: tt.diplomas})
			assert.Equal(t, tt.want, got)
		})
	}
}

func quickStore(t *testing.T) *content.MemoryStore {
	t.Helper()
	store := content.NewMemoryStore()
	putRecords(t, store, content.CollectionUsersCount, types.UsersCount{
		DepartementCounts: map[string]int{"31": 1234, "81": 12},
		JobGroupCounts:    map[string]int{"D1102": 51},
	})
	putRecords(t, store, content.CollectionLocalDiagnosis,
		types.LocalDiagnosis{ID: "31:D1102", IMT: &types.IMT{
			JuniorSalary: &types.SalaryEstimation{ShortText: "entre 1 500 et 1 700 €"},
			SeniorSalary: &types.SalaryEstimation{ShortText: "entre 1 800 et 2 200 €"},
			EmploymentTypePercentages: []types.EmploymentTypePercentage{
				{EmploymentType: types.EmploymentTypeCDI, Percentage: 72.5},
				{EmploymentType: types.EmploymentTypeInterim, Percentage: 20},
			},
		}},
		types.LocalDiagnosis{ID: "81:D1102", IMT: &types.IMT{
			EmploymentTypePercentages: []types.EmploymentTypePercentage{
				{EmploymentType: types.EmploymentTypeInterim, Percentage: 99},
			},
		}},
	)
	putRecords(t, store, content.CollectionJobGroupInfo, types.JobGroupInfo{
		RomeID: "D1102",
		Requirements: &types.JobRequirements{Diplomas: []types.DiplomaRequirement{
			{Name: "CAP", Diploma: types.Diploma{Level: 3}, PercentRequired: 80},
			{Name: "Bac", Diploma: types.Diploma{Level: 4}, PercentRequired: 15},
		}},
	})
	return store
}

func bakerProject(departementID string) *types.Project {
	return &types.Project{
		City:      &types.City{DepartementID: departementID},
		TargetJob: &types.TargetJob{JobGroup: types.JobGroup{RomeID: "D1102"}},
	}
}

func commentsByField(quick *types.QuickDiagnostic) map[string]types.QuickComment {
	comments := make(map[string]types.QuickComment, len(quick.Comments))
	for _, c := range quick.Comments {
		comments[c.Field] = c
	}
	return comments
}

func TestEngine_QuickDiagnose(t *testing.T) {
	engine := newTestEngine(t, quickStore(t))
	user := &types.User{Profile: types.UserProfile{YearOfBirth: testNow.Year() - 30}}
	project := bakerProject("31")
	diff := &types.UserDiff{Projects: []types.Project{*bakerProject("31")}}

	quick := engine.QuickDiagnose(context.Background(), user, project, diff)
	comments := commentsByField(quick)
	require.Len(t, comments, 5)

	city := comments[types.FieldCity]
	assert.Equal(t, "Super, 1\u202f234 personnes dans ce département ont déjà testé le diagnostic de Bob\u00a0!",
		strings.Join(city.Comment.StringParts, ""))

	job := comments[types.FieldTargetJob]
	assert.Equal(t, []string{"Super, ", "51", " personnes ont déjà testé le diagnostic de Bob pour ce métier\u00a0!"}, job.Comment.StringParts)

	salary := comments[types.FieldSalary]
	assert.True(t, salary.IsBeforeQuestion)
	assert.Equal(t, "En général les gens demandent un salaire entre 1 500 et 1 700 € par mois.",
		strings.Join(salary.Comment.StringParts, ""))

	diploma := comments[types.FieldRequestedDiploma]
	assert.Equal(t, "Les offres demandent souvent un CAP ou équivalent.", strings.Join(diploma.Comment.StringParts, ""))

	employment := comments[types.FieldEmploymentType]
	assert.Equal(t, "Plus de 72% des offres sont en CDI.", strings.Join(employment.Comment.StringParts, ""))

	assert.Nil(t, project.Diagnostic)
}

func TestEngine_QuickDiagnoseOnlyCommentsDiff(t *testing.T) {
	engine := newTestEngine(t, quickStore(t))
	senior := &types.User{Profile: types.UserProfile{YearOfBirth: testNow.Year() - 40}}

	quick := engine.QuickDiagnose(context.Background(), senior, bakerProject("31"), &types.UserDiff{
		Profile: types.UserProfile{YearOfBirth: senior.Profile.YearOfBirth},
	})
	require.Len(t, quick.Comments, 1)
	assert.Equal(t, types.FieldSalary, quick.Comments[0].Field)
	assert.Contains(t, strings.Join(quick.Comments[0].Comment.StringParts, ""), "2 200")

	empty := engine.QuickDiagnose(context.Background(), senior, bakerProject("31"), &types.UserDiff{})
	assert.NotNil(t, empty.Comments)
	assert.Empty(t, empty.Comments)
}

func TestEngine_QuickDiagnoseFewUsersAndDominantType(t *testing.T) {
	engine := newTestEngine(t, quickStore(t))
	project := &types.Project{City: &types.City{DepartementID: "81"}, TargetJob: &types.TargetJob{JobGroup: types.JobGroup{RomeID: "D1102"}}}
	diff := &types.UserDiff{Projects: []types.Project{{City: &types.City{DepartementID: "81"}}}}

	quick := engine.QuickDiagnose(context.Background(), &types.User{}, project, diff)
	comments := commentsByField(quick)

	_, hasCity := comments[types.FieldCity]
	assert.False(t, hasCity, "12 users are not worth mentioning")
	assert.Equal(t, "La plupart des offres sont en intérim.",
		strings.Join(comments[types.FieldEmploymentType].Comment.StringParts, ""))
}

func TestEngine_QuickDiagnoseUnknownEmploymentType(t *testing.T) {
	store := content.NewMemoryStore()
	putRecords(t, store, content.CollectionLocalDiagnosis, types.LocalDiagnosis{ID: "31:D1102", IMT: &types.IMT{
		EmploymentTypePercentages: []types.EmploymentTypePercentage{{EmploymentType: "FREELANCE", Percentage: 90}},
	}})
	engine := newTestEngine(t, store)
	diff := &types.UserDiff{Projects: []types.Project{*bakerProject("31")}}

	quick := engine.QuickDiagnose(context.Background(), &types.User{}, bakerProject("31"), diff)
	assert.Empty(t, quick.Comments)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "51", formatCount(51))
	assert.Equal(t, "1\u202f234", formatCount(1234))
	assert.Equal(t, "1\u202f234\u202f567", formatCount(1234567))
}
