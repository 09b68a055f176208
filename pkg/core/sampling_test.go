package core

import (
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	var sum Vec3

	const samples = 10000
	for i := 0; i < samples; i++ {
		p := RandomInUnitSphere(random)
		if p.LengthSquared() > 1.0 {
			t.Fatalf("Sample %d outside unit sphere: %v", i, p)
		}
		sum = sum.Add(p)
	}

	// The mean of a uniform distribution over the ball is the origin
	mean := sum.Divide(samples)
	if mean.Length() > 0.05 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		p := RandomInUnitDisk(random)
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie on z=0, got %v", p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit disk: %v", i, p)
		}
	}
}

func TestSamplersDeterministicForSeed(t *testing.T) {
	a := RandomInUnitSphere(rand.New(rand.NewSource(99)))
	b := RandomInUnitSphere(rand.New(rand.NewSource(99)))
	if !a.Equals(b) {
		t.Errorf("Same seed should give same sample: %v != %v", a, b)
	}
}
