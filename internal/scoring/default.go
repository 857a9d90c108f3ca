package scoring

import (
	"math"

	"github.com/jonathan/bob-diagnostic/internal/types"
)

// DefaultRegistry builds the registry of every built-in model and template variable.
func DefaultRegistry() *Registry {
	return RegisterDefaults(NewRegistryBuilder()).Build()
}

// RegisterDefaults adds the built-in models and template variables to a builder,
// so that callers can extend them before building.
func RegisterDefaults(b *RegistryBuilder) *RegistryBuilder {
	b.RegisterParameterized("constant", newConstantModel).
		RegisterParameterized("for-departement", listModel(scoreDepartement)).
		RegisterParameterized("for-job-group", listModel(scoreJobGroup)).
		RegisterParameterized("for-young", intModel(scoreYoung)).
		RegisterParameterized("for-old", intModel(scoreOld)).
		RegisterParameterized("for-long-search", intModel(scoreLongSearch)).
		RegisterParameterized("for-few-interviews", intModel(scoreFewInterviews)).
		RegisterParameterized("for-weekly-applications", intModel(scoreWeeklyApplications)).
		RegisterParameterized("for-low-market", intModel(scoreLowMarket)).
		RegisterParameterized("for-experienced", listModel(scoreExperienced)).
		RegisterParameterized("for-network", intModel(scoreNetwork)).
		RegisterParameterized("for-frustrated", listModel(scoreFrustrated)).
		RegisterParameterized("for-employment-type", listModel(scoreEmploymentType)).
		RegisterParameterized("for-application-mode", listModel(scoreApplicationMode)).
		RegisterParameterized("for-highest-degree", listModel(scoreHighestDegree))

	b.RegisterFunc("for-women", scoreWomen).
		RegisterFunc("for-alpha", scoreAlpha).
		RegisterFunc("for-first-job-search", scoreFirstJobSearch).
		RegisterFunc("for-unstarted-search", scoreUnstartedSearch)

	b.RegisterVariable("%cityName", cityName).
		RegisterVariable("%inCity", func(p *Project) string { return inArea("à ", cityName(p)) }).
		RegisterVariable("%ofCity", func(p *Project) string { return ofName(cityName(p)) }).
		RegisterVariable("%departementName", func(p *Project) string { return p.Departement().Name }).
		RegisterVariable("%inDepartement", func(p *Project) string {
			dep := p.Departement()
			return inArea(dep.Prefix, dep.Name)
		}).
		RegisterVariable("%regionName", func(p *Project) string { return p.GetRegion().Name }).
		RegisterVariable("%inRegion", func(p *Project) string {
			region := p.GetRegion()
			return inArea(region.Prefix, region.Name)
		}).
		RegisterVariable("%jobName", jobName).
		RegisterVariable("%ofJobName", func(p *Project) string { return ofName(jobName(p)) }).
		RegisterVariable("%masculineJobName", func(p *Project) string {
			return lowerFirst(genderedJobName(p.details.TargetJob, types.GenderMasculine))
		}).
		RegisterVariable("%feminineJobName", func(p *Project) string {
			return lowerFirst(genderedJobName(p.details.TargetJob, types.GenderFeminine))
		}).
		RegisterVariable("%jobGroupName", func(p *Project) string {
			if p.details.TargetJob == nil {
				return ""
			}
			return p.details.TargetJob.JobGroup.Name
		}).
		RegisterVariable("%jobSearchLengthMonthsAtCreation", searchLengthMonths).
		RegisterVariable("%totalInterviewCount", interviewCount)

	return b
}

func cityName(p *Project) string {
	if p.details.City == nil {
		return ""
	}
	return p.details.City.Name
}

func inArea(prefix, name string) string {
	if name == "" {
		return ""
	}
	if prefix == "" {
		prefix = "en "
	}
	return prefix + name
}

func jobName(p *Project) string {
	return lowerFirst(genderedJobName(p.details.TargetJob, p.UserGender()))
}

func genderedJobName(job *types.TargetJob, gender string) string {
	if job == nil {
		return ""
	}
	switch {
	case gender == types.GenderFeminine && job.FeminineName != "":
		return job.FeminineName
	case gender == types.GenderMasculine && job.MasculineName != "":
		return job.MasculineName
	default:
		return job.Name
	}
}

func searchLengthMonths(p *Project) string {
	months, ok := p.GetSearchLengthAtCreation()
	if !ok || months < 0 {
		return p.TranslateStaticString("quelques")
	}
	return p.TranslateStaticString(frenchNumber(int(math.Round(months))))
}

func interviewCount(p *Project) string {
	count := p.details.TotalInterviewCount
	if count <= 0 {
		return p.TranslateStaticString("aucun")
	}
	return p.TranslateStaticString(frenchNumber(count))
}
