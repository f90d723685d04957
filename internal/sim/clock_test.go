package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameClock", func() {
	var (
		now   time.Time
		clock *FrameClock
	)

	BeforeEach(func() {
		now = time.Unix(1000, 0)
		clock = newFrameClock(func() time.Time { return now })
	})

	It("measures seconds between ticks", func() {
		now = now.Add(16 * time.Millisecond)
		Expect(clock.Tick()).To(BeNumerically("~", 0.016, 1e-9))
		now = now.Add(time.Second)
		Expect(clock.Tick()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("never reports a negative dt", func() {
		now = now.Add(-time.Second)
		Expect(clock.Tick()).To(BeZero())
	})

	It("caps dt at MaxDt", func() {
		clock.MaxDt = 0.1
		now = now.Add(3 * time.Second)
		Expect(clock.Tick()).To(Equal(0.1))
	})

	It("leaves long frames alone when MaxDt is zero", func() {
		clock.MaxDt = 0
		now = now.Add(3 * time.Second)
		Expect(clock.Tick()).To(BeNumerically("~", 3.0, 1e-9))
	})

	It("restarts from Reset", func() {
		now = now.Add(5 * time.Second)
		clock.Reset()
		now = now.Add(time.Second)
		Expect(clock.Tick()).To(BeNumerically("~", 1.0, 1e-9))
	})
})
