package core

import "math/rand"

// RandomInUnitSphere returns a uniformly distributed point inside the unit sphere.
// Components are drawn from [-1,1) until the squared length is at most 1.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		)
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk returns a uniformly distributed point inside the unit disk on z=0 (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(random.Float64()-0.5, random.Float64()-0.5, 0).Multiply(2)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
