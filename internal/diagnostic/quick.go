package diagnostic

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

const (
	// minUsersToBoast is the number of users from which quick comments mention how many people used Bob.
	minUsersToBoast = 50
	// minDiplomaPercent is the share of offers from which a diploma is worth mentioning.
	minDiplomaPercent = 10
	// dominantDiplomaPercent is the share of offers from which only the most requested diploma is mentioned.
	dominantDiplomaPercent = 70
	// mostOffersPercent is the share of offers from which an employment type is "most offers".
	mostOffersPercent = 98
)

// employmentTypeNames are the French names of the employment types worth commenting on.
var employmentTypeNames = map[string]string{
	types.EmploymentTypeCDI:                  "CDI",
	types.EmploymentTypeCDDOver3Months:       "CDD de plus de 3 mois",
	types.EmploymentTypeCDDLessEqual3Months:  "CDD de moins de 3 mois",
	types.EmploymentTypeInterim:              "intérim",
	types.EmploymentTypeAnyContractLessMonth: "CDD de moins d'un mois",
}

// quickDiagnose comments on the fields of the diff. Each rule adds at most one comment.
func quickDiagnose(p *scoring.Project, diff *types.UserDiff) *types.QuickDiagnostic {
	quick := &types.QuickDiagnostic{Comments: []types.QuickComment{}}
	add := func(comment *types.QuickComment) {
		if comment != nil {
			quick.Comments = append(quick.Comments, *comment)
		}
	}

	if diff.HasDepartementDiff() {
		add(departementComment(p))
	}
	if diff.HasJobGroupDiff() {
		add(jobGroupComment(p))
	}
	if diff.HasYearOfBirthDiff() || diff.HasDepartementDiff() || diff.HasJobGroupDiff() {
		add(salaryComment(p))
	}
	if diff.HasJobGroupDiff() {
		add(diplomaComment(p))
	}
	if diff.HasJobGroupDiff() || diff.HasDepartementDiff() {
		add(employmentTypeComment(p))
	}
	return quick
}

func departementComment(p *scoring.Project) *types.QuickComment {
	counts := p.UsersCount()
	if counts == nil {
		return nil
	}
	count := counts.DepartementCounts[p.Details().DepartementID()]
	if count <= minUsersToBoast {
		return nil
	}
	return &types.QuickComment{
		Field: types.FieldCity,
		Comment: text(
			p.TranslateStaticString("Super, "),
			formatCount(count),
			p.TranslateStaticString(" personnes dans ce département ont déjà testé le diagnostic de Bob\u00a0!"),
		),
	}
}

func jobGroupComment(p *scoring.Project) *types.QuickComment {
	counts := p.UsersCount()
	if counts == nil {
		return nil
	}
	count := counts.JobGroupCounts[p.Details().RomeID()]
	if count <= minUsersToBoast {
		return nil
	}
	return &types.QuickComment{
		Field: types.FieldTargetJob,
		Comment: text(
			p.TranslateStaticString("Super, "),
			formatCount(count),
			p.TranslateStaticString(" personnes ont déjà testé le diagnostic de Bob pour ce métier\u00a0!"),
		),
	}
}

func salaryComment(p *scoring.Project) *types.QuickComment {
	salary := p.SalaryEstimation()
	if salary == "" {
		return nil
	}
	return &types.QuickComment{
		Field:            types.FieldSalary,
		IsBeforeQuestion: true,
		Comment: text(
			p.TranslateStaticString("En général les gens demandent un salaire "),
			p.TranslateStaticString(salary),
			p.TranslateStaticString(" par mois."),
		),
	}
}

// requestedDiplomas returns the names of the diplomas worth mentioning, in
// the order they read best.
func requestedDiplomas(requirements *types.JobRequirements) []string {
	var diplomas []types.DiplomaRequirement
	for _, diploma := range requirements.Diplomas {
		if diploma.PercentRequired > minDiplomaPercent {
			diplomas = append(diplomas, diploma)
		}
	}
	slices.SortStableFunc(diplomas, func(a, b types.DiplomaRequirement) int {
		switch {
		case a.PercentRequired > b.PercentRequired:
			return -1
		case a.PercentRequired < b.PercentRequired:
			return 1
		default:
			return 0
		}
	})
	if len(diplomas) > 2 {
		diplomas = diplomas[:2]
	}
	if len(diplomas) == 2 && diplomas[0].PercentRequired >= dominantDiplomaPercent {
		diplomas = diplomas[:1]
	} else {
		slices.SortStableFunc(diplomas, func(a, b types.DiplomaRequirement) int {
			return a.Diploma.Level - b.Diploma.Level
		})
	}

	names := make([]string, 0, len(diplomas))
	for _, diploma := range diplomas {
		names = append(names, diploma.Name)
	}
	return names
}

func diplomaComment(p *scoring.Project) *types.QuickComment {
	names := requestedDiplomas(p.Requirements())
	if len(names) == 0 {
		return nil
	}
	for i, name := range names {
		names[i] = p.TranslateStaticString(name)
	}
	return &types.QuickComment{
		Field: types.FieldRequestedDiploma,
		Comment: text(
			p.TranslateStaticString("Les offres demandent souvent un "),
			strings.Join(names, p.TranslateStaticString(" ou un ")),
			p.TranslateStaticString(" ou équivalent."),
		),
	}
}

func employmentTypeComment(p *scoring.Project) *types.QuickComment {
	imt := p.LocalDiagnosis().IMT
	if imt == nil || len(imt.EmploymentTypePercentages) == 0 {
		return nil
	}
	dominant := imt.EmploymentTypePercentages[0]
	name, ok := employmentTypeNames[dominant.EmploymentType]
	if !ok {
		return nil
	}
	name = p.TranslateStaticString(name)

	var comment types.Text
	if dominant.Percentage > mostOffersPercent {
		comment = text(p.TranslateStaticString("La plupart des offres sont en "), name, ".")
	} else {
		comment = text(
			p.TranslateStaticString("Plus de "),
			strconv.Itoa(int(dominant.Percentage))+"%",
			p.TranslateStaticString(" des offres sont en "),
			name,
			".",
		)
	}
	return &types.QuickComment{Field: types.FieldEmploymentType, Comment: comment}
}

func text(parts ...string) types.Text {
	return types.Text{StringParts: parts}
}

// formatCount writes a number with French thousands separators.
func formatCount(n int) string {
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString("\u202f")
		}
		b.WriteRune(digit)
	}
	return b.String()
}
