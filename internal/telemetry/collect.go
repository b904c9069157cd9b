package telemetry

import (
	"goblin3d/internal/scene"
)

// Collect builds a frame snapshot from the current scene state.
// stepMillis is how long the last update took, for client-side graphs.
func Collect(s *scene.Scene, stepMillis float64) FrameSnapshot {
	frame := FrameSnapshot{
		StepTime:   stepMillis,
		BodyCount:  s.Engine.BodyCount(),
		JointCount: s.Engine.JointCount(),
	}
	for _, n := range s.Nodes {
		if n.Physics == nil {
			continue
		}
		snap := BodySnapshot{
			Name:     n.Name,
			Position: [3]float32{n.Position.X, n.Position.Y, n.Position.Z},
		}
		if body := s.Engine.GetBody(n.Physics); body != nil {
			v := body.Velocity()
			snap.Velocity = [3]float32{v.X, v.Y, v.Z}
			snap.Sleeping = body.Sleeping()
		}
		frame.Bodies = append(frame.Bodies, snap)
	}
	return frame
}
