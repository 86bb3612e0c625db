package atmos

// lcg is a 48-bit linear congruential generator (java.util.Random
// constants), so seed 42 always yields the same four condition draws.
type lcg struct {
	seed uint64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = (1 << 48) - 1
)

func newLCG(seed int64) *lcg {
	return &lcg{seed: (uint64(seed) ^ lcgMultiplier) & lcgMask}
}

func (g *lcg) next(bits uint) uint64 {
	g.seed = (g.seed*lcgMultiplier + lcgAddend) & lcgMask
	return g.seed >> (48 - bits)
}

// Float64 returns a uniformly distributed value in [0, 1) with 53 bits of precision.
func (g *lcg) Float64() float64 {
	return float64(g.next(26)<<27+g.next(27)) * (1.0 / (1 << 53))
}
