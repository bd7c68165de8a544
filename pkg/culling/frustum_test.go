package culling

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
)

// solarCamera looks down the +X axis from just behind the origin, far
// plane 20 units out. Distances are in AU.
func solarCamera() CameraParams {
	return CameraParams{
		Position:     astromath.Vector3{X: -0.85},
		Target:       astromath.Vector3{X: 1},
		Up:           astromath.Vector3{Z: 1},
		FOVDegrees:   60,
		AspectRatio:  1,
		NearDistance: 0.1,
		FarDistance:  20,
	}
}

func TestPlaneClassifyPoint(t *testing.T) {
	plane := Plane{Normal: astromath.Vector3{Z: 1}, Distance: 0}

	if got := plane.ClassifyPoint(astromath.Vector3{Z: 1}); got != PlaneFront {
		t.Errorf("above plane: got %v, want front", got)
	}
	if got := plane.ClassifyPoint(astromath.Vector3{Z: -1}); got != PlaneBack {
		t.Errorf("below plane: got %v, want back", got)
	}
	if got := plane.ClassifyPoint(astromath.Vector3{X: 3, Y: -2}); got != PlaneOn {
		t.Errorf("in plane: got %v, want on", got)
	}
}

func TestCameraValidation(t *testing.T) {
	var f Frustum

	cam := solarCamera()
	cam.FOVDegrees = 180
	if err := f.UpdateFromCamera(cam); !errors.Is(err, types.ErrValidation) {
		t.Errorf("fov 180: expected validation error, got %v", err)
	}

	cam = solarCamera()
	cam.FarDistance = cam.NearDistance
	if err := f.UpdateFromCamera(cam); !errors.Is(err, types.ErrValidation) {
		t.Errorf("far == near: expected validation error, got %v", err)
	}

	cam = solarCamera()
	cam.Target = cam.Position
	if err := f.UpdateFromCamera(cam); !errors.Is(err, types.ErrDegenerateGeometry) {
		t.Errorf("target at camera: expected degenerate geometry error, got %v", err)
	}

	cam = solarCamera()
	cam.Up = astromath.Vector3{X: 1}
	if err := f.UpdateFromCamera(cam); !errors.Is(err, types.ErrDegenerateGeometry) {
		t.Errorf("up parallel to view: expected degenerate geometry error, got %v", err)
	}
}

func TestPointVisibility(t *testing.T) {
	var f Frustum
	if err := f.UpdateFromCamera(solarCamera()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.IsPointVisible(astromath.Vector3{X: 5}) {
		t.Error("point on the view axis inside the volume should be visible")
	}
	if f.IsPointVisible(astromath.Vector3{X: 25}) {
		t.Error("point beyond the far plane should be invisible")
	}
	if f.IsPointVisible(astromath.Vector3{X: -2}) {
		t.Error("point behind the camera should be invisible")
	}
	if f.IsPointVisible(astromath.Vector3{X: 1, Y: 15}) {
		t.Error("point far off axis should be invisible")
	}
}

func TestSphereVisibilityStraddlesFarPlane(t *testing.T) {
	var f Frustum
	if err := f.UpdateFromCamera(solarCamera()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Far plane sits at x = 19.15. A sphere poking through stays visible;
	// one fully past it is culled.
	if !f.IsSphereVisible(astromath.Vector3{X: 19.2}, 0.1) {
		t.Error("sphere straddling the far plane should be visible")
	}
	if f.IsSphereVisible(astromath.Vector3{X: 19.2}, 0.01) {
		t.Error("sphere fully beyond the far plane should be culled")
	}
}

func TestCullPlanetDistances(t *testing.T) {
	culler := NewFrustumCuller()
	if err := culler.UpdateFrustum(solarCamera()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	distances := map[string]float64{
		"Mercury": 0.38,
		"Venus":   0.72,
		"Earth":   1.0,
		"Mars":    1.52,
		"Jupiter": 5.2,
		"Saturn":  9.5,
		"Uranus":  19.2,
		"Neptune": 30.0,
	}

	positions := make(map[string]astromath.Vector3, len(distances))
	for name, d := range distances {
		culler.RegisterObject(name, BoundingSphere{Radius: 0.01})
		positions[name] = astromath.Vector3{X: d}
	}

	visible := culler.CullObjects(positions)
	want := []string{"Earth", "Jupiter", "Mars", "Mercury", "Saturn", "Venus"}
	if !reflect.DeepEqual(visible, want) {
		t.Fatalf("visible = %v, want %v", visible, want)
	}

	stats := culler.Stats()
	if stats.Tested != 8 || stats.Culled != 2 || stats.Visible != 6 {
		t.Errorf("stats %+v, want 8 tested / 2 culled / 6 visible", stats)
	}
	if math.Abs(stats.CullRate()-0.25) > 1e-12 {
		t.Errorf("cull rate %g, want 0.25", stats.CullRate())
	}
}

func TestCullerDisabledPassesEverything(t *testing.T) {
	culler := NewFrustumCuller()
	if err := culler.UpdateFrustum(solarCamera()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	culler.RegisterObject("Neptune", BoundingSphere{Radius: 0.01})
	culler.SetEnabled(false)

	positions := map[string]astromath.Vector3{"Neptune": {X: 30}}
	visible := culler.CullObjects(positions)
	if len(visible) != 1 {
		t.Errorf("disabled culler should pass everything, got %v", visible)
	}
	if culler.Stats().Tested != 0 {
		t.Errorf("disabled passes must not count as tests: %+v", culler.Stats())
	}
}

func TestBoundingSphereTransformed(t *testing.T) {
	sphere := BoundingSphere{Center: astromath.Vector3{X: 1}, Radius: 2}
	world := sphere.Transformed(astromath.Vector3{Y: 10}, 3)

	if world.Center.X != 3 || world.Center.Y != 10 {
		t.Errorf("transformed center %+v", world.Center)
	}
	if world.Radius != 6 {
		t.Errorf("transformed radius %g, want 6", world.Radius)
	}
}

func TestUnregisterObject(t *testing.T) {
	culler := NewFrustumCuller()
	culler.RegisterObject("Pluto", BoundingSphere{Radius: 0.001})
	if culler.ObjectCount() != 1 {
		t.Fatalf("object count %d", culler.ObjectCount())
	}
	culler.UnregisterObject("Pluto")
	if culler.ObjectCount() != 0 {
		t.Errorf("object count after unregister %d", culler.ObjectCount())
	}
}
