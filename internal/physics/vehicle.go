package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// Tire describes one wheel attached to a vehicle chassis.
type Tire struct {
	// Pin is the spin axis in chassis space.
	Pin    rl.Vector3
	Mass   float32
	Width  float32
	Radius float32

	SuspensionShock  float32
	SuspensionSpring float32
	SuspensionLength float32

	// LocalTransform places the tire relative to the chassis.
	LocalTransform rl.Matrix

	// UserID lets callers match tires back to their scene entities.
	UserID any
}

// VehicleSetup turns an object into a vehicle chassis. All three
// callbacks are mandatory: the simulation cannot drive, steer, or
// report a vehicle without them.
type VehicleSetup struct {
	Tires []Tire

	// ForceCallback replaces the default chassis force callback and is
	// where engine thrust, braking and steering torques are applied.
	ForceCallback newton.ForceTorqueCallback

	// TransformCallback receives the chassis pose after every step.
	TransformCallback newton.TransformCallback

	// TireUpdate runs once per update so callers can advance wheel
	// spin and suspension state.
	TireUpdate func(timestep float32)

	joints []*newton.Joint
}

// validate reports the first missing mandatory piece of a vehicle
// definition, or nil.
func (v *VehicleSetup) validate() error {
	if v.ForceCallback == nil {
		return configErrorf("Vehicle.ForceCallback", "vehicles require a force and torque callback")
	}
	if v.TransformCallback == nil {
		return configErrorf("Vehicle.TransformCallback", "vehicles require a transform callback")
	}
	if v.TireUpdate == nil {
		return configErrorf("Vehicle.TireUpdate", "vehicles require a tire update callback")
	}
	if len(v.Tires) == 0 {
		return configErrorf("Vehicle.Tires", "vehicles require at least one tire")
	}
	return nil
}

// attachVehicle wires a validated vehicle chassis: the shared engine
// callbacks route to the caller's force and transform callbacks, and
// each tire becomes a corkscrew joint so it can spin about its pin and
// travel along the suspension. Callers hold e.mu.
func (e *Engine) attachVehicle(rec *record) {
	v := rec.object.Vehicle
	rec.body.SetForceAndTorqueCallback(e.applyBodyForces)
	rec.body.SetTransformCallback(e.publishTransform)

	chassis := rec.body.Matrix()
	v.joints = v.joints[:0]
	for i := range v.Tires {
		tire := &v.Tires[i]
		pivot := rl.Vector3Transform(translationOf(tire.LocalTransform), chassis)
		pin := rotateDirection(tire.Pin, chassis)
		joint := e.world.CreateCorkscrew(pivot, pin, rec.body, nil)
		if tire.SuspensionSpring > 0 {
			joint.SetStiffness(clamp01(tire.SuspensionSpring / (tire.SuspensionSpring + tire.SuspensionShock)))
		}
		v.joints = append(v.joints, joint)
	}
}

// detachVehicle tears down the tire joints when the chassis leaves the
// simulation. Callers hold e.mu.
func (e *Engine) detachVehicle(rec *record) {
	v := rec.object.Vehicle
	for _, j := range v.joints {
		e.world.DestroyJoint(j)
	}
	v.joints = nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
