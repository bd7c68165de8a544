package culling

import (
	"sort"

	"github.com/orbitforge/astrosim/pkg/astromath"
)

// Stats accumulates visibility test counts across culling passes.
type Stats struct {
	Tested  int
	Culled  int
	Visible int
}

// CullRate returns the fraction of tested objects that were culled.
func (s Stats) CullRate() float64 {
	if s.Tested == 0 {
		return 0
	}
	return float64(s.Culled) / float64(s.Tested)
}

// FrustumCuller tracks named objects with bounding spheres and filters
// them against the current camera frustum. Not safe for concurrent use.
type FrustumCuller struct {
	frustum Frustum
	spheres map[string]BoundingSphere
	enabled bool
	stats   Stats
}

// NewFrustumCuller returns an enabled culler with no registered objects.
func NewFrustumCuller() *FrustumCuller {
	return &FrustumCuller{
		spheres: make(map[string]BoundingSphere),
		enabled: true,
	}
}

// RegisterObject associates a bounding sphere with an object name.
// Re-registering replaces the previous sphere.
func (c *FrustumCuller) RegisterObject(name string, sphere BoundingSphere) {
	c.spheres[name] = sphere
}

// UnregisterObject removes an object. Unknown names are ignored.
func (c *FrustumCuller) UnregisterObject(name string) {
	delete(c.spheres, name)
}

// ObjectCount returns the number of registered objects.
func (c *FrustumCuller) ObjectCount() int { return len(c.spheres) }

// SetEnabled toggles culling. While disabled, every registered object is
// reported visible.
func (c *FrustumCuller) SetEnabled(enabled bool) { c.enabled = enabled }

// Enabled reports whether culling is active.
func (c *FrustumCuller) Enabled() bool { return c.enabled }

// UpdateFrustum rebuilds the frustum from camera parameters.
func (c *FrustumCuller) UpdateFrustum(cam CameraParams) error {
	return c.frustum.UpdateFromCamera(cam)
}

// IsVisible tests a single registered object at a world position. Unknown
// objects are treated as visible points.
func (c *FrustumCuller) IsVisible(name string, position astromath.Vector3) bool {
	if !c.enabled {
		return true
	}
	sphere, ok := c.spheres[name]
	if !ok {
		return c.frustum.IsPointVisible(position)
	}
	world := sphere.Transformed(position, 1)
	return c.frustum.IsSphereVisible(world.Center, world.Radius)
}

// CullObjects tests every registered object against the frustum, given a
// map of object name to world position. Objects without a position entry
// are skipped. The visible names are returned sorted so repeated passes
// over the same scene are deterministic.
func (c *FrustumCuller) CullObjects(positions map[string]astromath.Vector3) []string {
	visible := make([]string, 0, len(c.spheres))
	for name, sphere := range c.spheres {
		position, ok := positions[name]
		if !ok {
			continue
		}
		if !c.enabled {
			visible = append(visible, name)
			continue
		}
		c.stats.Tested++
		world := sphere.Transformed(position, 1)
		if c.frustum.IsSphereVisible(world.Center, world.Radius) {
			c.stats.Visible++
			visible = append(visible, name)
		} else {
			c.stats.Culled++
		}
	}
	sort.Strings(visible)
	return visible
}

// Stats returns the accumulated visibility counters.
func (c *FrustumCuller) Stats() Stats { return c.stats }

// ResetStats clears the accumulated counters.
func (c *FrustumCuller) ResetStats() { c.stats = Stats{} }
