package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/integrators"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/physics"
)

var ErrUnknownIntegrator = errors.New("experiment: unknown integrator")

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownIntegrator, name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListModels() []string {
	return []string{string(KindPendulum), string(KindProjectile)}
}

// DefaultMetrics are observed on every pendulum run. The envelope watches
// the angular velocity.
func (r *Registry) DefaultMetrics(p *physics.DampedPendulum) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(p.Gravity, p.Length),
		metrics.NewEnergyDrift(p),
		metrics.NewEnvelope(1),
	}
}
