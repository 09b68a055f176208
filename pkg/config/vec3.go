package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ParseVec3 parses "x,y,z"
func ParseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("vector %q: expected x,y,z", s)
	}

	var xyz [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// FormatVec3 is the inverse of ParseVec3
func FormatVec3(v core.Vec3) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

// vec3Value implements flag.Value for an optional Vec3 field
type vec3Value struct {
	v **core.Vec3
}

func (f vec3Value) String() string {
	if f.v == nil || *f.v == nil {
		return ""
	}
	return FormatVec3(**f.v)
}

func (f vec3Value) Set(s string) error {
	v, err := ParseVec3(s)
	if err != nil {
		return err
	}
	*f.v = &v
	return nil
}

// floatValue implements flag.Value for an optional float64 field, so an
// explicit 0 is distinguishable from an absent flag
type floatValue struct {
	f **float64
}

func (f floatValue) String() string {
	if f.f == nil || *f.f == nil {
		return ""
	}
	return strconv.FormatFloat(**f.f, 'g', -1, 64)
}

func (f floatValue) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	*f.f = &v
	return nil
}

var (
	_ flag.Value = vec3Value{}
	_ flag.Value = floatValue{}
)
