package newton

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRayCastReportsInOrder(t *testing.T) {
	w := NewWorld()
	near := w.CreateBody(NewSphere(1))
	near.SetMatrix(rl.MatrixTranslate(0, 0, 5))
	far := w.CreateBody(NewSphere(1))
	far.SetMatrix(rl.MatrixTranslate(0, 0, 15))

	var order []*Body
	var params []float32
	w.RayCast(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 20), func(b *Body, n rl.Vector3, tt float32) float32 {
		order = append(order, b)
		params = append(params, tt)
		return 1
	})

	if len(order) != 2 {
		t.Fatalf("Ray hit %d bodies, want 2", len(order))
	}
	if order[0] != near || order[1] != far {
		t.Error("Hits should arrive nearest first")
	}
	if params[0] >= params[1] {
		t.Errorf("Ray params out of order: %v, %v", params[0], params[1])
	}
}

func TestRayCastClipping(t *testing.T) {
	w := NewWorld()
	near := w.CreateBody(NewSphere(1))
	near.SetMatrix(rl.MatrixTranslate(0, 0, 5))
	far := w.CreateBody(NewSphere(1))
	far.SetMatrix(rl.MatrixTranslate(0, 0, 15))

	hits := 0
	w.RayCast(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 20), func(b *Body, n rl.Vector3, tt float32) float32 {
		hits++
		return tt // clip at the first hit: the far sphere is beyond it
	})
	if hits != 1 {
		t.Errorf("Clipped ray reported %d hits, want 1", hits)
	}
}

func TestRayCastStop(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 3; i++ {
		b := w.CreateBody(NewSphere(1))
		b.SetMatrix(rl.MatrixTranslate(0, 0, float32(5+5*i)))
	}

	hits := 0
	w.RayCast(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 30), func(b *Body, n rl.Vector3, tt float32) float32 {
		hits++
		return 0 // stop immediately
	})
	if hits != 1 {
		t.Errorf("Stopped ray reported %d hits, want 1", hits)
	}
}

func TestRayCastBoxNormal(t *testing.T) {
	w := NewWorld()
	box := w.CreateBody(NewBox(2, 2, 2))
	box.SetMatrix(rl.MatrixTranslate(0, 0, 10))

	var normal rl.Vector3
	hit := false
	w.RayCast(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 20), func(b *Body, n rl.Vector3, tt float32) float32 {
		hit = true
		normal = n
		return 0
	})
	if !hit {
		t.Fatal("Ray should hit the box")
	}
	if normal.Z >= 0 {
		t.Errorf("Entry normal should face the ray origin, got %v", normal)
	}
}

func TestRayCastMiss(t *testing.T) {
	w := NewWorld()
	b := w.CreateBody(NewSphere(1))
	b.SetMatrix(rl.MatrixTranslate(10, 10, 10))

	hits := 0
	w.RayCast(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 5), func(b *Body, n rl.Vector3, tt float32) float32 {
		hits++
		return 1
	})
	if hits != 0 {
		t.Errorf("Ray should miss everything, got %d hits", hits)
	}
}
