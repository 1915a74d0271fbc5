package physics_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/integrators"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/physics"
)

var _ = Describe("DampedPendulum", func() {
	var (
		ctx context.Context
		p   *physics.DampedPendulum
	)

	BeforeEach(func() {
		ctx = context.Background()
		p = physics.NewDampedPendulum(physics.DefaultConstants())
	})

	It("rests at the bottom", func() {
		dx := p.Derive(dynamo.State{0, 0}, 0)
		Expect(dx[0]).To(Equal(0.0))
		Expect(dx[1]).To(Equal(0.0))
	})

	It("accelerates by -g/L when horizontal", func() {
		dx := p.Derive(dynamo.State{math.Pi / 2, 0}, 0)
		Expect(dx[1]).To(BeNumerically("~", -physics.DefaultGravity/physics.DefaultLength, 1e-12))
	})

	It("opposes motion with drag", func() {
		dx := p.Derive(dynamo.State{0, 2}, 0)
		Expect(dx[1]).To(BeNumerically("~", -physics.DefaultDrag*2, 1e-12))
	})

	It("records ceil(duration/dt)+1 samples starting at the initial state", func() {
		res, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1.2, -0.4, 60, 0.01)
		Expect(err).NotTo(HaveOccurred())

		tr := res.Trajectory
		Expect(tr.Len()).To(Equal(6001))
		Expect(res.Steps).To(Equal(6000))
		Expect(tr.X[0]).To(Equal(1.2))
		Expect(tr.Y[0]).To(Equal(-0.4))
		Expect(tr.Validate(0.01)).To(Succeed())
	})

	It("reproduces the explicit Euler recurrence exactly", func() {
		res, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1.0, 0.5, 5, 0.01)
		Expect(err).NotTo(HaveOccurred())

		theta, thetaDot := 1.0, 0.5
		for i := 1; i < res.Trajectory.Len(); i++ {
			acc := -0.1*thetaDot - (9.8/2.0)*math.Sin(theta)
			theta += thetaDot * 0.01
			thetaDot += acc * 0.01
			Expect(res.Trajectory.X[i]).To(Equal(theta))
			Expect(res.Trajectory.Y[i]).To(Equal(thetaDot))
		}
	})

	It("loses amplitude under drag", func() {
		env := metrics.NewEnvelope(1)
		res, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1.0, 0, 60, 0.01, physics.WithMetrics(env))
		Expect(err).NotTo(HaveOccurred())

		peaks := env.Peaks()
		Expect(len(peaks)).To(BeNumerically(">", 10))
		for i := 1; i < len(peaks); i++ {
			Expect(peaks[i]).To(BeNumerically("<", peaks[i-1]))
		}
		Expect(res.Metrics["envelope"]).To(BeNumerically("<", 0.5))
	})

	Context("without drag", func() {
		BeforeEach(func() {
			Expect(p.SetParam("drag", 0)).To(Succeed())
		})

		It("keeps energy nearly constant with a drift that shrinks with dt", func() {
			coarse, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 0.5, 0, 10, 0.01)
			Expect(err).NotTo(HaveOccurred())
			fine, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 0.5, 0, 10, 0.001)
			Expect(err).NotTo(HaveOccurred())

			Expect(fine.EnergyDrift).To(BeNumerically("<", 0.02))
			Expect(fine.EnergyDrift).To(BeNumerically("<", coarse.EnergyDrift))
		})

		It("conserves energy closely with rk4", func() {
			res, err := physics.SimulatePendulum(ctx, p, integrators.NewRK4(), 0.5, 0, 10, 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.EnergyDrift).To(BeNumerically("<", 1e-6))
		})
	})

	It("exposes its parameters", func() {
		Expect(p.GetParams()).To(HaveKeyWithValue("length", 2.0))
		Expect(p.SetParam("length", 1)).To(Succeed())
		Expect(p.Length).To(Equal(1.0))

		err := p.SetParam("mass", 1)
		Expect(errors.Is(err, dynamo.ErrUnknownParam)).To(BeTrue())
	})

	It("rejects non-physical constants", func() {
		p.Length = 0
		_, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1, 0, 1, 0.01)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	DescribeTable("rejects unusable time steps",
		func(duration, dt float64) {
			_, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1, 0, duration, dt)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		},
		Entry("zero", 1.0, 0.0),
		Entry("vanishing", 60.0, 1e-300),
		Entry("too fine for the duration", 60.0, 1e-9),
	)

	It("passes every sample to an observer", func() {
		rec := &recorder{}
		res, err := physics.SimulatePendulum(ctx, p, integrators.NewEuler(), 1, 0, 1, 0.01, physics.WithObserver(rec))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.times).To(Equal(res.Trajectory.Times))
		last := res.Trajectory.Len() - 1
		Expect(rec.last).To(Equal(dynamo.State{res.Trajectory.X[last], res.Trajectory.Y[last]}))
	})
})

type recorder struct {
	times []float64
	last  dynamo.State
}

func (r *recorder) OnStep(x dynamo.State, t float64) {
	r.times = append(r.times, t)
	r.last = x.Clone()
}
