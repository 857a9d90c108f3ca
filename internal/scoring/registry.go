package scoring

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Model scores a project. Scores <= 0 mean "not relevant", > 0 mean relevant
// with the magnitude as strength (>= 3 is strongly relevant).
type Model interface {
	Score(p *Project) Result
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(p *Project) Result

// Score implements Model.
func (f ModelFunc) Score(p *Project) Result {
	return f(p)
}

// ConstantModel always returns the same score.
type ConstantModel float64

// Score implements Model.
func (c ConstantModel) Score(*Project) Result {
	return Scored(float64(c))
}

// Constructor binds the arguments of a parameterized model, e.g. "75,69" for
// "for-departement(75,69)".
type Constructor func(args string) (Model, error)

// TemplateVariable computes the value of a %variable in content templates.
type TemplateVariable func(p *Project) string

const negationPrefix = "not-"

var parameterizedID = regexp.MustCompile(`^([^()]+)\((.*)\)$`)

// negatedModel flips the verdict of a model, keeping undecided results undecided.
type negatedModel struct {
	inner Model
}

func (n negatedModel) Score(p *Project) Result {
	res := n.inner.Score(p)
	switch res.Verdict() {
	case VerdictInsufficientData:
		return res
	case VerdictRelevant:
		return Scored(0)
	default:
		return Scored(StrongScore)
	}
}

// RegistryBuilder collects models and template variables before they are frozen in a Registry.
type RegistryBuilder struct {
	models       map[string]Model
	constructors map[string]Constructor
	variables    map[string]TemplateVariable
}

// NewRegistryBuilder creates an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		models:       make(map[string]Model),
		constructors: make(map[string]Constructor),
		variables:    make(map[string]TemplateVariable),
	}
}

// Register adds a model under a fixed id. It panics if the id is already taken.
func (b *RegistryBuilder) Register(id string, model Model) *RegistryBuilder {
	if _, exists := b.models[id]; exists {
		panic(fmt.Sprintf("scoring: model %q registered twice", id))
	}
	b.models[id] = model
	return b
}

// RegisterFunc adds a model implemented by a plain function.
func (b *RegistryBuilder) RegisterFunc(id string, f func(p *Project) Result) *RegistryBuilder {
	return b.Register(id, ModelFunc(f))
}

// RegisterParameterized adds a family of models called as "name(args)".
// It panics if the name is already taken.
func (b *RegistryBuilder) RegisterParameterized(name string, constructor Constructor) *RegistryBuilder {
	if _, exists := b.constructors[name]; exists {
		panic(fmt.Sprintf("scoring: parameterized model %q registered twice", name))
	}
	b.constructors[name] = constructor
	return b
}

// RegisterVariable adds a template variable. The name includes the leading "%".
func (b *RegistryBuilder) RegisterVariable(name string, variable TemplateVariable) *RegistryBuilder {
	if !strings.HasPrefix(name, "%") {
		panic(fmt.Sprintf("scoring: template variable %q must start with %%", name))
	}
	if _, exists := b.variables[name]; exists {
		panic(fmt.Sprintf("scoring: template variable %q registered twice", name))
	}
	b.variables[name] = variable
	return b
}

// Build freezes the builder into a Registry. The builder must not be reused.
func (b *RegistryBuilder) Build() *Registry {
	return &Registry{
		models:       b.models,
		constructors: b.constructors,
		variables:    b.variables,
	}
}

// Registry resolves model ids to models. It is immutable and safe for concurrent use.
type Registry struct {
	models       map[string]Model
	constructors map[string]Constructor
	variables    map[string]TemplateVariable

	bound sync.Map // full model id -> Model, for parameterized and negated ids
}

// Get returns the model for an id such as "for-old", "for-departement(75,69)"
// or "not-for-young(25)", or nil if the id cannot be resolved.
func (r *Registry) Get(id string) Model {
	if model, ok := r.models[id]; ok {
		return model
	}
	if cached, ok := r.bound.Load(id); ok {
		return cached.(Model)
	}

	model := r.resolve(id)
	if model == nil {
		return nil
	}
	actual, _ := r.bound.LoadOrStore(id, model)
	return actual.(Model)
}

func (r *Registry) resolve(id string) Model {
	if strings.HasPrefix(id, negationPrefix) {
		inner := r.Get(strings.TrimPrefix(id, negationPrefix))
		if inner == nil {
			return nil
		}
		return negatedModel{inner: inner}
	}

	matches := parameterizedID.FindStringSubmatch(id)
	if matches == nil {
		return nil
	}
	constructor, ok := r.constructors[strings.TrimSpace(matches[1])]
	if !ok {
		return nil
	}
	model, err := constructor(matches[2])
	if err != nil {
		slog.Warn("invalid scoring model arguments", "model", id, "error", err)
		return nil
	}
	return model
}

// Variable returns a template variable by name (with its leading "%").
func (r *Registry) Variable(name string) (TemplateVariable, bool) {
	v, ok := r.variables[name]
	return v, ok
}

// Validate checks that every id resolves to a model.
func (r *Registry) Validate(ids []string) error {
	var unknown []string
	for _, id := range ids {
		if r.Get(id) == nil {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return &UnknownModelsError{IDs: unknown}
	}
	return nil
}

// ModelIDs lists the fixed ids and parameterized names, sorted.
func (r *Registry) ModelIDs() []string {
	ids := make([]string, 0, len(r.models)+len(r.constructors))
	for id := range r.models {
		ids = append(ids, id)
	}
	for name := range r.constructors {
		ids = append(ids, name+"(...)")
	}
	sort.Strings(ids)
	return ids
}
