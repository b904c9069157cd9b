// Headless physics sandbox: drops a pile of bodies onto a ground
// plane, steps the simulation in real time and reports progress.
// With telemetry enabled, live body state is streamed over websocket.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/assets"
	"goblin3d/internal/camera"
	"goblin3d/internal/physics"
	"goblin3d/internal/scene"
	"goblin3d/internal/telemetry"
)

func main() {
	count := flag.Int("count", 50, "number of falling bodies")
	duration := flag.Duration("duration", 10*time.Second, "how long to simulate")
	scenePath := flag.String("scene", "", "scene file to load instead of the generated pile")
	savePath := flag.String("save", "", "write the final scene to this file")
	materialDir := flag.String("materials", "", "directory of material JSON files to register")
	flag.Parse()

	settings, err := physics.LoadSettings()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	engine := physics.NewEngine(settings)
	defer engine.Dispose()
	world := scene.NewScene(engine)

	if *materialDir != "" {
		if err := assets.LoadMaterialDir(engine, *materialDir); err != nil {
			log.Fatalf("materials: %v", err)
		}
	}

	var hub *telemetry.Hub
	if settings.TelemetryAddr != "" {
		hub = telemetry.NewHub()
		go func() {
			if err := hub.Serve(settings.TelemetryAddr); err != nil {
				log.Printf("telemetry: %v", err)
			}
		}()
		fmt.Printf("telemetry on ws://%s/ws\n", settings.TelemetryAddr)
	}

	if *scenePath != "" {
		if err := world.Load(*scenePath); err != nil {
			log.Fatalf("load scene: %v", err)
		}
	} else {
		buildPile(world, *count)
	}
	fmt.Printf("%d bodies, %d joints\n", engine.BodyCount(), engine.JointCount())

	observer := camera.New(rl.NewVector3(25, 20, 25))
	observer.LookAt(rl.NewVector3(0, 0, 0))
	recorder := telemetry.NewRecorder(600, 5*time.Second)

	const frame = 16 * time.Millisecond
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	deadline := time.Now().Add(*duration)
	lastReport := time.Now()
	for now := range ticker.C {
		if now.After(deadline) {
			break
		}
		start := time.Now()
		world.Update(float32(frame.Seconds()))
		stepMillis := float64(time.Since(start).Microseconds()) / 1000

		frame := telemetry.Collect(world, stepMillis)
		recorder.Record(frame)
		if hub != nil {
			hub.Broadcast(frame)
		}
		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			near, far := observer.PickRay(200)
			picked := engine.PickRayCast(near, far)
			fmt.Printf("step %6.2fms  bodies %d  picked %d\n",
				stepMillis, engine.BodyCount(), len(picked))
		}
	}

	fmt.Printf("simulated %d frames\n", recorder.Count())

	if *savePath != "" {
		if err := world.Save(*savePath); err != nil {
			log.Fatalf("save scene: %v", err)
		}
		fmt.Printf("scene written to %s\n", *savePath)
	}
}

// buildPile creates a static ground plus a cloud of random dynamic
// bodies above it.
func buildPile(world *scene.Scene, count int) {
	ground := scene.NewNode("ground")
	ground.Mesh = scene.NewBoxMesh(100, 1, 100)
	ground.Position = rl.NewVector3(0, -0.5, 0)
	ground.Physics = physics.NewObject(ground)
	ground.Physics.Mass = 0
	ground.Physics.Shape = physics.Box
	if err := world.Add(ground); err != nil {
		log.Fatalf("add ground: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < count; i++ {
		n := scene.NewNode(fmt.Sprintf("body-%d", i))
		n.Position = rl.NewVector3(
			rng.Float32()*20-10,
			5+rng.Float32()*20,
			rng.Float32()*20-10,
		)
		if i%2 == 0 {
			n.Mesh = scene.NewSphereMesh(0.5+rng.Float32()*0.5, 12, 12)
			n.Physics = physics.NewObject(n)
			n.Physics.Shape = physics.Sphere
		} else {
			n.Mesh = scene.NewBoxMesh(1, 1, 1)
			n.Physics = physics.NewObject(n)
			n.Physics.Shape = physics.Box
		}
		n.Physics.Mass = 1
		n.Physics.Interactable = true
		n.Physics.Pickable = true
		if err := world.Add(n); err != nil {
			log.Fatalf("add body: %v", err)
		}
	}
}
