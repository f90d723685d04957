package sim

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
)

type countingMetric struct {
	observations int
	wraps        int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(f particle.Field, wraps int, t float64) {
	c.observations++
	c.wraps += wraps
}
func (c *countingMetric) Value() float64 { return float64(c.observations) }
func (c *countingMetric) Reset()         { c.observations, c.wraps = 0, 0 }

type recorder struct{ times []float64 }

func (r *recorder) OnStep(f particle.Field, t float64) { r.times = append(r.times, t) }

// escapingBackend moves every particle far outside the domain without wrapping.
type escapingBackend struct{}

func (escapingBackend) Name() string    { return "escape" }
func (escapingBackend) Available() bool { return true }
func (escapingBackend) Cleanup()        {}
func (escapingBackend) Integrate(ps []particle.Particle, dt, w, h float32) int {
	for i := range ps {
		ps[i].Position.X += w
	}
	return 0
}

var _ = Describe("Simulator", func() {
	var (
		field particle.Field
		cfg   Config
	)

	BeforeEach(func() {
		field = particle.Spawn(300, 800, 600, 200, rand.New(rand.NewSource(5)))
		cfg = Config{Dt: 0.125, Duration: 1.25, Width: 800, Height: 600, SampleEvery: 5}
	})

	It("takes Duration/Dt steps and samples the series", func() {
		result, err := New(compute.NewSerialBackend()).Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(10))
		Expect(result.Samples).To(HaveLen(3))
		Expect(result.Samples[0].Time).To(BeZero())
		Expect(result.Samples[2].Time).To(BeNumerically("~", 1.25, 1e-9))
	})

	It("accounts for every wrap in the sampled series", func() {
		fast := particle.Spawn(500, 800, 600, 600, rand.New(rand.NewSource(9)))
		cfg.Duration = 10
		cfg.SampleEvery = 6
		result, err := New(nil).Run(context.Background(), fast, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.TotalWraps).To(BeNumerically(">", 0))

		sum := 0
		for _, s := range result.Samples {
			sum += s.Wraps
		}
		Expect(sum).To(Equal(result.TotalWraps))
	})

	It("adds a short final sample when steps do not divide evenly", func() {
		cfg.Duration = 1.5
		result, err := New(nil).Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(12))
		Expect(result.Samples).To(HaveLen(4))
		Expect(result.Samples[1].Time).To(BeNumerically("~", 0.625, 1e-9))
		Expect(result.Samples[2].Time).To(BeNumerically("~", 1.25, 1e-9))
		Expect(result.Samples[3].Time - result.Samples[2].Time).To(BeNumerically("~", 0.25, 1e-9))

		sum := 0
		for _, s := range result.Samples {
			sum += s.Wraps
		}
		Expect(sum).To(Equal(result.TotalWraps))
	})

	It("matches calling Update directly", func() {
		want := field.Clone()
		for i := 0; i < 10; i++ {
			particle.Update(want, 0.125, 800, 600)
		}

		_, err := New(nil).Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(field).To(Equal(want))
	})

	It("keeps every particle inside the domain", func() {
		cfg.ValidateBounds = true
		cfg.Duration = 20
		result, err := New(compute.NewCPUBackend()).Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).To(BeEmpty())
		Expect(result.TotalWraps).To(BeNumerically(">", 0))
	})

	It("reports a backend that breaks the domain invariant", func() {
		cfg.ValidateBounds = true
		result, err := New(escapingBackend{}).Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).To(HaveLen(1))
		Expect(result.Errors[0]).To(BeAssignableToTypeOf(SimError{}))
		Expect(result.StepsTaken).To(Equal(1))
	})

	It("feeds metrics and observers once per step", func() {
		m := &countingMetric{}
		r := &recorder{}
		s := New(nil)
		s.AddMetric(m)
		s.AddObserver(r)

		result, err := s.Run(context.Background(), field, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKeyWithValue("count", 10.0))
		Expect(r.times).To(HaveLen(10))
		Expect(m.wraps).To(Equal(result.TotalWraps))
	})

	It("leaves a zero-velocity field untouched", func() {
		still := particle.Spawn(50, 800, 600, 0, rand.New(rand.NewSource(1)))
		before := still.Clone()
		_, err := New(nil).Run(context.Background(), still, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(still).To(Equal(before))
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := New(nil).Run(ctx, field, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.StepsTaken).To(BeZero())
	})

	DescribeTable("rejects invalid configs",
		func(mutate func(*Config)) {
			mutate(&cfg)
			_, err := New(nil).Run(context.Background(), field, cfg)
			Expect(err).To(MatchError(ErrInvalidConfig))
		},
		Entry("zero dt", func(c *Config) { c.Dt = 0 }),
		Entry("negative dt", func(c *Config) { c.Dt = -0.1 }),
		Entry("zero duration", func(c *Config) { c.Duration = 0 }),
		Entry("zero width", func(c *Config) { c.Width = 0 }),
		Entry("negative height", func(c *Config) { c.Height = -5 }),
	)

	Describe("RunWithCallback", func() {
		It("stops when the callback declines", func() {
			calls := 0
			err := New(nil).RunWithCallback(context.Background(), field, cfg, func(f particle.Field, t float64) bool {
				calls++
				return calls < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
		})

		It("fails when the invariant breaks", func() {
			cfg.ValidateBounds = true
			err := New(escapingBackend{}).RunWithCallback(context.Background(), field, cfg, func(particle.Field, float64) bool { return true })
			Expect(err).To(MatchError(ErrOutOfBounds))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one independent field per seed", func() {
		spawn := func(rng *rand.Rand) particle.Field { return particle.Spawn(20, 800, 600, 100, rng) }
		metrics := func() []Metric { return []Metric{&countingMetric{}} }
		e := NewEnsemble(4, 10, spawn, metrics)

		results, err := e.Run(context.Background(), Config{Dt: 0.25, Duration: 1.25, Width: 800, Height: 600})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for _, r := range results {
			Expect(r.Metrics["count"]).To(Equal(5.0))
			Expect(r.Field).To(HaveLen(20))
		}
		Expect(results[0].Samples[0].Centroid).NotTo(Equal(results[1].Samples[0].Centroid))
	})

	It("propagates config errors", func() {
		spawn := func(rng *rand.Rand) particle.Field { return particle.Spawn(5, 10, 10, 1, rng) }
		_, err := NewEnsemble(2, 0, spawn, nil).Run(context.Background(), Config{})
		Expect(err).To(MatchError(ErrInvalidConfig))
	})
})
