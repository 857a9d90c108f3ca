package scoring

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Project fields reported when a model cannot decide.
const (
	FieldCity               = "project.city"
	FieldTargetJob          = "project.target_job"
	FieldJobSearchStartedAt = "project.job_search_started_at"
	FieldInterviewCount     = "project.total_interview_count"
	FieldWeeklyApplications = "project.weekly_applications_estimate"
	FieldNetwork            = "project.network_estimate"
	FieldSeniority          = "project.seniority"
	FieldKind               = "project.kind"
	FieldYearOfBirth        = "profile.year_of_birth"
	FieldGender             = "profile.gender"
	FieldHighestDegree      = "profile.highest_degree"
)

var seniorityRanks = map[string]int{
	types.SeniorityInternship:   1,
	types.SeniorityJunior:       2,
	types.SeniorityIntermediary: 3,
	types.SenioritySenior:       4,
	types.SeniorityExpert:       5,
}

func parseList(args string) ([]string, error) {
	var values []string
	for _, value := range strings.Split(args, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("expected at least one argument")
	}
	return values, nil
}

func parseInt(args string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return 0, fmt.Errorf("expected an integer argument: %w", err)
	}
	return n, nil
}

func newConstantModel(args string) (Model, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(args), 64)
	if err != nil {
		return nil, fmt.Errorf("expected a number: %w", err)
	}
	return ConstantModel(value), nil
}

// intModel builds a parameterized model taking a single integer.
func intModel(score func(p *Project, n int) Result) Constructor {
	return func(args string) (Model, error) {
		n, err := parseInt(args)
		if err != nil {
			return nil, err
		}
		return ModelFunc(func(p *Project) Result { return score(p, n) }), nil
	}
}

// listModel builds a parameterized model taking a comma-separated list.
func listModel(score func(p *Project, values []string) Result) Constructor {
	return func(args string) (Model, error) {
		values, err := parseList(args)
		if err != nil {
			return nil, err
		}
		return ModelFunc(func(p *Project) Result { return score(p, values) }), nil
	}
}

func scoreDepartement(p *Project, departements []string) Result {
	depID := p.details.DepartementID()
	if depID == "" {
		return NotEnoughData(FieldCity)
	}
	return scoreIf(slices.Contains(departements, depID))
}

func scoreJobGroup(p *Project, prefixes []string) Result {
	romeID := p.details.RomeID()
	if romeID == "" {
		return NotEnoughData(FieldTargetJob)
	}
	return scoreIf(slices.ContainsFunc(prefixes, func(prefix string) bool {
		return strings.HasPrefix(romeID, prefix)
	}))
}

func scoreYoung(p *Project, maxAge int) Result {
	age, ok := p.GetUserAge()
	if !ok {
		return NotEnoughData(FieldYearOfBirth)
	}
	return scoreIf(age < maxAge)
}

func scoreOld(p *Project, minAge int) Result {
	age, ok := p.GetUserAge()
	if !ok {
		return NotEnoughData(FieldYearOfBirth)
	}
	return scoreIf(age >= minAge)
}

func scoreLongSearch(p *Project, minMonths int) Result {
	months, ok := p.GetSearchLengthAtCreation()
	if !ok {
		return NotEnoughData(FieldJobSearchStartedAt)
	}
	return scoreIf(months >= float64(minMonths))
}

func scoreFewInterviews(p *Project, maxInterviews int) Result {
	count := p.details.TotalInterviewCount
	switch {
	case count == 0:
		return NotEnoughData(FieldInterviewCount)
	case count < 0:
		count = 0
	}
	return scoreIf(count < maxInterviews)
}

func scoreWeeklyApplications(p *Project, minApplications int) Result {
	estimate := p.details.WeeklyApplicationsEstimate
	if estimate == 0 {
		return NotEnoughData(FieldWeeklyApplications)
	}
	return scoreIf(estimate >= minApplications)
}

// scoreLowMarket passes when there are at most maxOffers job offers per 10
// candidates in the project's area.
func scoreLowMarket(p *Project, maxOffers int) Result {
	if missing := p.missingLocation(); len(missing) > 0 {
		return NotEnoughData(missing...)
	}
	imt := p.LocalDiagnosis().IMT
	if imt == nil || imt.YearlyAvgOffersPer10Candidates == 0 {
		return Scored(0)
	}
	if imt.YearlyAvgOffersPer10Candidates < 0 {
		return Scored(StrongScore)
	}
	return scoreIf(imt.YearlyAvgOffersPer10Candidates <= maxOffers)
}

func scoreExperienced(p *Project, levels []string) Result {
	rank, ok := seniorityRanks[p.details.Seniority]
	if !ok {
		return NotEnoughData(FieldSeniority)
	}
	// Only the lowest level matters: "for-experienced(SENIOR)" covers experts too.
	minRank := 0
	for _, level := range levels {
		if r, known := seniorityRanks[level]; known && (minRank == 0 || r < minRank) {
			minRank = r
		}
	}
	return scoreIf(minRank > 0 && rank >= minRank)
}

func scoreNetwork(p *Project, maxEstimate int) Result {
	estimate := p.details.NetworkEstimate
	if estimate == 0 {
		return NotEnoughData(FieldNetwork)
	}
	return scoreIf(estimate <= maxEstimate)
}

func scoreFrustrated(p *Project, frustrations []string) Result {
	return scoreIf(slices.ContainsFunc(p.user.Profile.Frustrations, func(f string) bool {
		return slices.Contains(frustrations, f)
	}))
}

func scoreWomen(p *Project) Result {
	if p.UserGender() == "" {
		return NotEnoughData(FieldGender)
	}
	return scoreIf(p.UserGender() == types.GenderFeminine)
}

func scoreAlpha(p *Project) Result {
	return scoreIf(p.FeaturesEnabled().Alpha)
}

// scoreEmploymentType passes when the most common employment type of offers
// is one of the given types.
func scoreEmploymentType(p *Project, employmentTypes []string) Result {
	if missing := p.missingLocation(); len(missing) > 0 {
		return NotEnoughData(missing...)
	}
	imt := p.LocalDiagnosis().IMT
	if imt == nil || len(imt.EmploymentTypePercentages) == 0 {
		return Scored(0)
	}
	return scoreIf(slices.Contains(employmentTypes, imt.EmploymentTypePercentages[0].EmploymentType))
}

func scoreApplicationMode(p *Project, modes []string) Result {
	if p.details.RomeID() == "" {
		return NotEnoughData(FieldTargetJob)
	}
	best := p.GetBestApplicationMode()
	return scoreIf(best != nil && slices.Contains(modes, best.Mode))
}

func scoreHighestDegree(p *Project, degrees []string) Result {
	degree := p.user.Profile.HighestDegree
	if degree == "" {
		return NotEnoughData(FieldHighestDegree)
	}
	return scoreIf(slices.Contains(degrees, degree))
}

func scoreFirstJobSearch(p *Project) Result {
	if p.details.Kind == "" {
		return NotEnoughData(FieldKind)
	}
	return scoreIf(p.details.Kind == types.ProjectKindFirstJob)
}

func scoreUnstartedSearch(p *Project) Result {
	if p.details.JobSearchHasNotStarted {
		return Scored(StrongScore)
	}
	if p.details.JobSearchStartedAt == nil {
		return NotEnoughData(FieldJobSearchStartedAt)
	}
	return Scored(0)
}

func (p *Project) missingLocation() []string {
	var missing []string
	if p.details.DepartementID() == "" {
		missing = append(missing, FieldCity)
	}
	if p.details.RomeID() == "" {
		missing = append(missing, FieldTargetJob)
	}
	return missing
}
