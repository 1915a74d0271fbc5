package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/physim/internal/physics"
)

var _ = Describe("Projectile", func() {
	var p *physics.Projectile

	BeforeEach(func() {
		p = physics.NewProjectile(physics.DefaultConstants())
	})

	It("matches the textbook 20 m/s at 45 degrees example", func() {
		res, err := p.Simulate(20, 45, 0, 0.01)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.FlightTime).To(BeNumerically("~", 2.886, 1e-3))
		Expect(res.Apex).To(BeNumerically("~", 10.204, 1e-3))
		Expect(floats.Max(res.Trajectory.Y)).To(BeNumerically("~", res.Apex, 1e-3))
		Expect(res.Trajectory.Len()).To(Equal(289))
	})

	DescribeTable("flight time from ground level is 2·v·sin(θ)/g",
		func(speed, angle float64) {
			res, err := p.Simulate(speed, angle, 0, 0.01)
			Expect(err).NotTo(HaveOccurred())

			want := 2 * speed * math.Sin(angle*math.Pi/180) / physics.DefaultGravity
			Expect(res.FlightTime).To(BeNumerically("~", want, 1e-9))
		},
		Entry("shallow", 10.0, 15.0),
		Entry("steep", 35.0, 80.0),
		Entry("backwards", 12.0, 135.0),
		Entry("vertical", 5.0, 90.0),
	)

	DescribeTable("returns to the ground without dipping below it",
		func(speed, angle float64) {
			res, err := p.Simulate(speed, angle, 0, 0.01)
			Expect(err).NotTo(HaveOccurred())

			_, lastY, ok := res.Trajectory.Last()
			Expect(ok).To(BeTrue())
			Expect(lastY).To(BeNumerically(">=", 0))

			v0y := speed * math.Sin(angle*math.Pi/180)
			Expect(floats.Max(res.Trajectory.Y)).To(BeNumerically("~", v0y*v0y/(2*physics.DefaultGravity), 1e-3))
		},
		Entry("45 degrees", 20.0, 45.0),
		Entry("60 degrees", 15.0, 60.0),
		Entry("170 degrees", 30.0, 170.0),
	)

	It("samples time on a uniform grid below the landing time", func() {
		res, err := p.Simulate(25, 30, 3, 0.01)
		Expect(err).NotTo(HaveOccurred())

		tr := res.Trajectory
		Expect(tr.Validate(0.01)).To(Succeed())
		Expect(tr.Times[0]).To(Equal(0.0))
		Expect(tr.Times[tr.Len()-1]).To(BeNumerically("<", res.FlightTime))
		Expect(tr.Times[tr.Len()-1] + 0.01).To(BeNumerically(">=", res.FlightTime))
	})

	It("spreads x evenly and ends exactly on the rounded range", func() {
		res, err := p.Simulate(18, 40, 0, 0.01)
		Expect(err).NotTo(HaveOccurred())

		x := res.Trajectory.X
		Expect(x[0]).To(Equal(0.0))
		Expect(x[len(x)-1]).To(Equal(res.Range))
		Expect(res.Range).To(Equal(math.Round(res.VelocityX*res.FlightTime*1000) / 1000))

		step := x[1] - x[0]
		for i := 2; i < len(x); i++ {
			Expect(x[i] - x[i-1]).To(BeNumerically("~", step, 1e-9))
		}
	})

	It("lands further away when launched from a height", func() {
		res, err := p.Simulate(10, 30, 5, 0.01)
		Expect(err).NotTo(HaveOccurred())

		v0y := 10 * math.Sin(30*math.Pi/180)
		want := (v0y + math.Sqrt(v0y*v0y+2*physics.DefaultGravity*5)) / physics.DefaultGravity
		Expect(res.FlightTime).To(BeNumerically("~", want, 1e-9))
		Expect(res.Trajectory.Y[0]).To(Equal(5.0))
		Expect(res.Apex).To(BeNumerically("~", 5+v0y*v0y/(2*physics.DefaultGravity), 1e-9))
	})

	It("goes in the negative x direction past vertical", func() {
		res, err := p.Simulate(10, 120, 0, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Range).To(BeNumerically("<", 0))
		Expect(floats.Min(res.Trajectory.X)).To(Equal(res.Range))
	})

	It("keeps a straight-up launch on the y axis", func() {
		res, err := p.Simulate(10, 90, 0, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Range).To(Equal(0.0))
		for _, x := range res.Trajectory.X {
			Expect(x).To(Equal(0.0))
		}
	})

	It("produces a single sample when dt exceeds the flight", func() {
		res, err := p.Simulate(1, 10, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trajectory.X).To(Equal([]float64{0}))
		Expect(res.Trajectory.Y).To(Equal([]float64{0}))
	})

	DescribeTable("rejects invalid launches",
		func(speed, angle, height, dt float64) {
			_, err := p.Simulate(speed, angle, height, dt)
			Expect(err).To(MatchError(physics.ErrInvalidLaunch))
		},
		Entry("zero speed", 0.0, 45.0, 0.0, 0.01),
		Entry("negative speed", -3.0, 45.0, 0.0, 0.01),
		Entry("zero angle", 10.0, 0.0, 0.0, 0.01),
		Entry("flat backwards", 10.0, 180.0, 0.0, 0.01),
		Entry("negative angle", 10.0, -10.0, 0.0, 0.01),
		Entry("negative height", 10.0, 45.0, -1.0, 0.01),
		Entry("zero dt", 10.0, 45.0, 0.0, 0.0),
		Entry("nan speed", math.NaN(), 45.0, 0.0, 0.01),
		Entry("vanishing dt", 20.0, 45.0, 0.0, 1e-300),
		Entry("dt too fine for the flight", 20.0, 45.0, 0.0, 1e-9),
		Entry("huge speed", 1e200, 45.0, 0.0, 0.01),
		Entry("speed beyond the sample limit", 1e6, 45.0, 0.0, 0.01),
	)

	It("reports the flight time it samples", func() {
		res, err := p.Simulate(15, 30, 40, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.FlightTime(15, 30, 40)).To(Equal(res.FlightTime))
	})

	It("computes heights as v0y·t - 4.9·t² + h", func() {
		res, err := p.Simulate(20, 45, 1.5, 0.01)
		Expect(err).NotTo(HaveOccurred())
		for i, t := range res.Trajectory.Times {
			want := res.VelocityY*t - 4.9*(t*t) + 1.5
			Expect(res.Trajectory.Y[i]).To(Equal(want), "sample %d", i)
		}
	})
})
