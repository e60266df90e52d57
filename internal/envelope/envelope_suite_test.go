package envelope_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/beamenv/internal/beam"
	"github.com/san-kum/beamenv/internal/envelope"
	"github.com/san-kum/beamenv/internal/steppers"
)

func TestEnvelopeSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Envelope Suite")
}

// Reference case: 14 mA beam, beta=0.073, gamma=1.00266, r0=5 mm,
// rp0=1 mrad, KV emittance 1.2e-6 m rad, 1000 steps over a 1 m drift.
// Reference radii validated against an independent implementation of
// the same scheme.
var refParams = beam.Params{
	Current: 0.014,
	Beta:    0.073,
	Gamma:   1.00266,
	R0:      0.005,
	RP0:     0.001,
}

var _ = Describe("Expand", func() {
	It("reproduces the reference final radius with Ralston stepping", func() {
		traj, err := envelope.Expand(refParams, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())

		_, r := traj.Final()
		Expect(r).To(BeNumerically("~", 0.006057149442670512, 1e-9))
	})

	It("reproduces the reference final radius with RK4 stepping", func() {
		traj, err := envelope.Expand(refParams, steppers.NewRK4())
		Expect(err).NotTo(HaveOccurred())

		_, r := traj.Final()
		Expect(r).To(BeNumerically("~", 0.006057149444790268, 1e-9))
	})

	It("reduces to emittance-only expansion at zero current", func() {
		p := refParams
		p.Current = 0

		traj, err := envelope.Expand(p, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())

		_, r := traj.Final()
		Expect(r).To(BeNumerically("~", 0.006003789291559199, 1e-9))
	})

	It("never contracts during ballistic expansion with positive divergence", func() {
		p := refParams
		p.Current = 0

		traj, err := envelope.Expand(p, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < traj.Len(); i++ {
			Expect(traj.R[i]).To(BeNumerically(">=", traj.R[i-1]),
				"radius contracted at sample %d", i)
		}
	})

	It("is idempotent: repeated runs are bit-identical", func() {
		first, err := envelope.Expand(refParams, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())

		second, err := envelope.Expand(refParams, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Z).To(Equal(first.Z))
		Expect(second.R).To(Equal(first.R))
	})

	It("agrees between Ralston and RK4 to the scheme's order", func() {
		rk2, err := envelope.Expand(refParams, steppers.NewRalston())
		Expect(err).NotTo(HaveOccurred())
		rk4, err := envelope.Expand(refParams, steppers.NewRK4())
		Expect(err).NotTo(HaveOccurred())

		_, r2 := rk2.Final()
		_, r4 := rk4.Final()
		Expect(r2).To(BeNumerically("~", r4, 1e-8))
	})
})
