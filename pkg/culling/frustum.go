// Package culling implements view-frustum visibility testing for bounding
// spheres. All distances are in the same unit as the supplied camera
// parameters; callers working in AU or km just need to be consistent.
package culling

import (
	"math"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
)

// PlaneLocation classifies a point against a plane.
type PlaneLocation int

const (
	PlaneFront PlaneLocation = iota
	PlaneBack
	PlaneOn
)

// planeEpsilon is the half-width of the "on plane" band.
const planeEpsilon = 1e-6

// Plane is an oriented plane in Hessian normal form: points p with
// Dot(Normal, p) + Distance > 0 lie on the front (interior) side.
type Plane struct {
	Normal   astromath.Vector3
	Distance float64
}

// planeFromPointNormal builds a plane through point with the given unit
// normal.
func planeFromPointNormal(point, normal astromath.Vector3) Plane {
	return Plane{Normal: normal, Distance: -normal.Dot(point)}
}

// DistanceToPoint returns the signed distance from the plane to a point.
func (p Plane) DistanceToPoint(point astromath.Vector3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// ClassifyPoint reports which side of the plane a point lies on.
func (p Plane) ClassifyPoint(point astromath.Vector3) PlaneLocation {
	d := p.DistanceToPoint(point)
	switch {
	case d > planeEpsilon:
		return PlaneFront
	case d < -planeEpsilon:
		return PlaneBack
	default:
		return PlaneOn
	}
}

// IsSphereOnFrontSide reports whether any part of a sphere reaches the
// front side of the plane.
func (p Plane) IsSphereOnFrontSide(center astromath.Vector3, radius float64) bool {
	return p.DistanceToPoint(center) > -radius
}

// BoundingSphere is a sphere in an object's local space.
type BoundingSphere struct {
	Center astromath.Vector3
	Radius float64
}

// Transformed returns the sphere placed at a world position with a
// uniform scale applied.
func (s BoundingSphere) Transformed(position astromath.Vector3, scale float64) BoundingSphere {
	return BoundingSphere{
		Center: position.Add(s.Center.Scale(scale)),
		Radius: s.Radius * scale,
	}
}

// CameraParams describes a perspective camera. FOVDegrees is the vertical
// field of view.
type CameraParams struct {
	Position astromath.Vector3
	Target   astromath.Vector3
	Up       astromath.Vector3

	FOVDegrees   float64
	AspectRatio  float64
	NearDistance float64
	FarDistance  float64
}

func (c CameraParams) validate() error {
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return errors.Wrapf(types.ErrValidation, "field of view must be in (0, 180), got %g", c.FOVDegrees)
	}
	if c.AspectRatio <= 0 {
		return errors.Wrapf(types.ErrValidation, "aspect ratio must be > 0, got %g", c.AspectRatio)
	}
	if c.NearDistance <= 0 {
		return errors.Wrapf(types.ErrValidation, "near distance must be > 0, got %g", c.NearDistance)
	}
	if c.FarDistance <= c.NearDistance {
		return errors.Wrapf(types.ErrValidation,
			"far distance %g must exceed near distance %g", c.FarDistance, c.NearDistance)
	}
	return nil
}

// Frustum is the six-plane viewing volume of a perspective camera. All
// plane normals point toward the interior.
type Frustum struct {
	planes [6]Plane
	valid  bool
}

// Planes returns the six oriented planes. Meaningful only after a
// successful UpdateFromCamera.
func (f *Frustum) Planes() [6]Plane { return f.planes }

// UpdateFromCamera rebuilds the six planes from camera parameters.
func (f *Frustum) UpdateFromCamera(cam CameraParams) error {
	if err := cam.validate(); err != nil {
		return err
	}

	lookVec := cam.Target.Sub(cam.Position)
	if lookVec.IsZero() {
		return errors.Wrap(types.ErrDegenerateGeometry, "camera target coincides with camera position")
	}
	forward := lookVec.Normalize()

	rightVec := forward.Cross(cam.Up)
	if rightVec.IsZero() {
		return errors.Wrap(types.ErrDegenerateGeometry, "camera up vector is parallel to the view direction")
	}
	right := rightVec.Normalize()
	up := right.Cross(forward)

	halfFOV := cam.FOVDegrees * math.Pi / 360.0
	farHalfHeight := math.Tan(halfFOV) * cam.FarDistance
	farHalfWidth := farHalfHeight * cam.AspectRatio

	nearCenter := cam.Position.Add(forward.Scale(cam.NearDistance))
	farCenter := cam.Position.Add(forward.Scale(cam.FarDistance))
	interior := nearCenter.Add(farCenter).Scale(0.5)

	f.planes[0] = planeFromPointNormal(nearCenter, forward)
	f.planes[1] = planeFromPointNormal(farCenter, forward.Neg())

	// Side planes pass through the camera position; their normals come
	// from the edges of the far rectangle.
	rightEdge := farCenter.Add(right.Scale(farHalfWidth)).Sub(cam.Position).Normalize()
	leftEdge := farCenter.Sub(right.Scale(farHalfWidth)).Sub(cam.Position).Normalize()
	topEdge := farCenter.Add(up.Scale(farHalfHeight)).Sub(cam.Position).Normalize()
	bottomEdge := farCenter.Sub(up.Scale(farHalfHeight)).Sub(cam.Position).Normalize()

	f.planes[2] = planeFromPointNormal(cam.Position, up.Cross(rightEdge).Normalize())
	f.planes[3] = planeFromPointNormal(cam.Position, leftEdge.Cross(up).Normalize())
	f.planes[4] = planeFromPointNormal(cam.Position, topEdge.Cross(right).Normalize())
	f.planes[5] = planeFromPointNormal(cam.Position, right.Cross(bottomEdge).Normalize())

	// Orient every normal toward the frustum interior so visibility tests
	// never depend on the handedness of the construction above.
	for i := range f.planes {
		if f.planes[i].DistanceToPoint(interior) < 0 {
			f.planes[i].Normal = f.planes[i].Normal.Neg()
			f.planes[i].Distance = -f.planes[i].Distance
		}
	}

	f.valid = true
	return nil
}

// IsPointVisible reports whether a point lies inside or on the boundary of
// the frustum. An unconfigured frustum treats everything as visible.
func (f *Frustum) IsPointVisible(point astromath.Vector3) bool {
	if !f.valid {
		return true
	}
	for _, plane := range f.planes {
		if plane.ClassifyPoint(point) == PlaneBack {
			return false
		}
	}
	return true
}

// IsSphereVisible reports whether a sphere intersects the frustum. The
// sphere is visible only if it reaches the front side of every plane.
func (f *Frustum) IsSphereVisible(center astromath.Vector3, radius float64) bool {
	if !f.valid {
		return true
	}
	for _, plane := range f.planes {
		if !plane.IsSphereOnFrontSide(center, radius) {
			return false
		}
	}
	return true
}
