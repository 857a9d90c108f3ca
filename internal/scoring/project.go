package scoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// SourceLocale is the locale content is authored in.
const SourceLocale = "fr"

// seniorAge is the age from which the senior salary estimation applies.
const seniorAge = 35

// Project wraps a user's project for one evaluation: it reads derived facts
// once and evaluates models against them.
//
// A Project carries the context of the request it serves so that models can
// read content without threading it through every call. It must not outlive
// that request.
type Project struct {
	ctx      context.Context
	details  *types.Project
	user     *types.User
	db       *content.Database
	registry *Registry
	now      time.Time

	defaultLocale string

	jobGroupInfo   memo[*types.JobGroupInfo]
	localDiagnosis memo[*types.LocalDiagnosis]
	departement    memo[*types.DepartementInfo]
	region         memo[*types.Region]
	usersCount     memo[*types.UsersCount]
}

// Option configures a Project.
type Option func(*Project)

// WithNow sets the evaluation time, used for ages and search lengths.
func WithNow(now time.Time) Option {
	return func(p *Project) {
		p.now = now
	}
}

// WithDefaultLocale sets the locale used when the user has none.
func WithDefaultLocale(locale string) Option {
	return func(p *Project) {
		if locale != "" {
			p.defaultLocale = locale
		}
	}
}

// NewProject creates a Project for one evaluation.
func NewProject(ctx context.Context, project *types.Project, user *types.User, db *content.Database, registry *Registry, opts ...Option) *Project {
	if project == nil {
		project = &types.Project{}
	}
	if user == nil {
		user = &types.User{}
	}
	p := &Project{
		ctx:           ctx,
		details:       project,
		user:          user,
		db:            db,
		registry:      registry,
		now:           time.Now(),
		defaultLocale: SourceLocale,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Details returns the wrapped project.
func (p *Project) Details() *types.Project {
	return p.details
}

// User returns the project owner.
func (p *Project) User() *types.User {
	return p.user
}

// Database returns the content database.
func (p *Project) Database() *content.Database {
	return p.db
}

// Context returns the context of the evaluation.
func (p *Project) Context() context.Context {
	return p.ctx
}

// Now returns the evaluation time.
func (p *Project) Now() time.Time {
	return p.now
}

// FeaturesEnabled returns the user's experimental cohorts.
func (p *Project) FeaturesEnabled() types.FeaturesEnabled {
	return p.user.FeaturesEnabled
}

// UserGender returns the user's gender, or an empty string if unknown.
func (p *Project) UserGender() string {
	return p.user.Profile.Gender
}

// Locale returns the locale texts are translated to.
func (p *Project) Locale() string {
	if p.user.Profile.Locale != "" {
		return p.user.Profile.Locale
	}
	return p.defaultLocale
}

// Score evaluates a model. Unknown models and undecided results score 0.
func (p *Project) Score(modelID string) float64 {
	res := p.ScoreResult(modelID)
	if res.Verdict() == VerdictInsufficientData {
		return 0
	}
	return res.Score
}

// ScoreResult evaluates a model, keeping undecided results.
func (p *Project) ScoreResult(modelID string) Result {
	model := p.registry.Get(modelID)
	if model == nil {
		slog.Warn("scoring model is not implemented", "model", modelID, "project", p.details.ProjectID)
		return Scored(0)
	}
	return model.Score(p)
}

// GetUserAge returns the user's age in the evaluation year, and false if the
// year of birth is unknown.
func (p *Project) GetUserAge() (int, bool) {
	if p.user.Profile.YearOfBirth == 0 {
		return 0, false
	}
	return p.now.Year() - p.user.Profile.YearOfBirth, true
}

// GetSearchLengthAtCreation returns how many months the user had been
// searching when the project was created: -1 if the search had not started,
// and false if the start date is unknown.
func (p *Project) GetSearchLengthAtCreation() (float64, bool) {
	if p.details.JobSearchHasNotStarted {
		return -1, true
	}
	if p.details.JobSearchStartedAt == nil {
		return 0, false
	}
	createdAt := p.details.CreatedAt
	if createdAt.IsZero() {
		createdAt = p.now
	}
	days := createdAt.Sub(*p.details.JobSearchStartedAt).Hours() / 24
	return days / (365.25 / 12), true
}

// JobGroupInfo returns the info of the project's job group, never nil.
func (p *Project) JobGroupInfo() *types.JobGroupInfo {
	return p.jobGroupInfo.get(func() *types.JobGroupInfo {
		romeID := p.details.RomeID()
		if romeID == "" {
			return &types.JobGroupInfo{}
		}
		info, err := p.db.JobGroupInfo(p.ctx, romeID)
		if err != nil {
			p.logReadError(content.CollectionJobGroupInfo, err)
		}
		if info == nil {
			return &types.JobGroupInfo{RomeID: romeID}
		}
		return info
	})
}

// Requirements returns what employers ask for in the project's job group, never nil.
func (p *Project) Requirements() *types.JobRequirements {
	if reqs := p.JobGroupInfo().Requirements; reqs != nil {
		return reqs
	}
	return &types.JobRequirements{}
}

// LocalDiagnosis returns the market statistics for the project's job group
// in its département, never nil.
func (p *Project) LocalDiagnosis() *types.LocalDiagnosis {
	return p.localDiagnosis.get(func() *types.LocalDiagnosis {
		depID, romeID := p.details.DepartementID(), p.details.RomeID()
		if depID == "" || romeID == "" {
			return &types.LocalDiagnosis{}
		}
		id := depID + ":" + romeID
		local, err := p.db.LocalDiagnosis(p.ctx, id)
		if err != nil {
			p.logReadError(content.CollectionLocalDiagnosis, err)
		}
		if local == nil {
			return &types.LocalDiagnosis{ID: id}
		}
		return local
	})
}

// Departement returns the project's département, never nil.
func (p *Project) Departement() *types.DepartementInfo {
	return p.departement.get(func() *types.DepartementInfo {
		depID := p.details.DepartementID()
		if depID == "" {
			return &types.DepartementInfo{}
		}
		dep, err := p.db.Departement(p.ctx, depID)
		if err != nil {
			p.logReadError(content.CollectionDepartements, err)
		}
		if dep == nil {
			return &types.DepartementInfo{ID: depID}
		}
		return dep
	})
}

// GetRegion returns the project's region, never nil.
func (p *Project) GetRegion() *types.Region {
	return p.region.get(func() *types.Region {
		regionID := ""
		if p.details.City != nil {
			regionID = p.details.City.RegionID
		}
		if regionID == "" {
			regionID = p.Departement().RegionID
		}
		if regionID == "" {
			return &types.Region{}
		}
		region, err := p.db.Region(p.ctx, regionID)
		if err != nil {
			p.logReadError(content.CollectionRegions, err)
		}
		if region == nil {
			return &types.Region{ID: regionID}
		}
		return region
	})
}

// GetBestApplicationMode returns the channel hiring the most in the project's
// job group, or nil if unknown.
func (p *Project) GetBestApplicationMode() *types.ApplicationMode {
	var best *types.ApplicationMode
	for _, fap := range sortedKeys(p.JobGroupInfo().ApplicationModes) {
		modes := p.JobGroupInfo().ApplicationModes[fap].Modes
		for i := range modes {
			if best == nil || modes[i].Percentage > best.Percentage {
				best = &modes[i]
			}
		}
	}
	return best
}

// SalaryEstimation returns the short text of the salary estimation for the
// user's age, or an empty string if unknown.
func (p *Project) SalaryEstimation() string {
	imt := p.LocalDiagnosis().IMT
	if imt == nil {
		return ""
	}
	salary := imt.SeniorSalary
	if age, ok := p.GetUserAge(); ok && age < seniorAge {
		salary = imt.JuniorSalary
	}
	if salary == nil {
		return ""
	}
	return salary.ShortText
}

// UsersCount returns the aggregated user counts, or nil if unavailable.
func (p *Project) UsersCount() *types.UsersCount {
	return p.usersCount.get(func() *types.UsersCount {
		counts, err := p.db.UsersCount(p.ctx)
		if err != nil {
			p.logReadError(content.CollectionUsersCount, err)
			return nil
		}
		return counts
	})
}

func (p *Project) logReadError(collection string, err error) {
	slog.Error("failed to read content", "collection", collection, "project", p.details.ProjectID, "error", err)
}

// memo caches a value for the lifetime of one Project.
type memo[T any] struct {
	done  bool
	value T
}

func (m *memo[T]) get(load func() T) T {
	if !m.done {
		m.value = load()
		m.done = true
	}
	return m.value
}
