package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/geometry"
)

func testMaterials() []Material {
	return []Material{
		NewEmissive(core.NewVec3(0.3, 0.5, 0.5)),
		NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0),
		NewDiffuse(core.NewVec3(0.7, 0.5, 0.3), 1),
	}
}

func TestNewWorld_Validation(t *testing.T) {
	ground := geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1)
	ball := geometry.NewSphere(core.NewVec3(0, 0, 1), 1, 2)

	tests := []struct {
		name      string
		materials []Material
		planes    []geometry.Plane
		spheres   []geometry.Sphere
		wantErr   error
	}{
		{
			name:      "valid world",
			materials: testMaterials(),
			planes:    []geometry.Plane{ground},
			spheres:   []geometry.Sphere{ball},
		},
		{
			name:      "background only",
			materials: testMaterials()[:1],
		},
		{
			name:    "empty material table",
			wantErr: ErrMissingBackground,
		},
		{
			name:      "plane uses background material",
			materials: testMaterials(),
			planes:    []geometry.Plane{geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 0)},
			wantErr:   ErrInvalidMaterialIndex,
		},
		{
			name:      "sphere material past end of table",
			materials: testMaterials(),
			spheres:   []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, 3)},
			wantErr:   ErrInvalidMaterialIndex,
		},
		{
			name:      "negative material index",
			materials: testMaterials(),
			spheres:   []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, -1)},
			wantErr:   ErrInvalidMaterialIndex,
		},
		{
			name:      "non-unit plane normal",
			materials: testMaterials(),
			planes:    []geometry.Plane{geometry.NewPlane(core.NewVec3(0, 0, 2), 0, 1)},
			wantErr:   ErrNonUnitNormal,
		},
		{
			name:      "zero radius",
			materials: testMaterials(),
			spheres:   []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 0), 0, 1)},
			wantErr:   ErrInvalidRadius,
		},
		{
			name:      "negative radius",
			materials: testMaterials(),
			spheres:   []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 0), -1, 1)},
			wantErr:   ErrInvalidRadius,
		},
		{
			name:      "scatter above one",
			materials: []Material{{}, {Scatter: 1.5}},
			wantErr:   ErrInvalidMaterial,
		},
		{
			name:      "negative reflectance",
			materials: []Material{{}, {Reflect: core.NewVec3(-0.1, 0, 0)}},
			wantErr:   ErrInvalidMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world, err := NewWorld(tt.materials, tt.planes, tt.spheres)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if world == nil {
					t.Fatal("Expected world, got nil")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if world != nil {
				t.Error("Expected nil world on error")
			}
		})
	}
}

func TestNewWorld_CopiesInput(t *testing.T) {
	materials := testMaterials()
	spheres := []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 1), 1, 2)}

	world, err := NewWorld(materials, nil, spheres)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Mutating the caller's slices must not affect the world
	materials[0].Emit = core.NewVec3(9, 9, 9)
	spheres[0].Radius = 100

	if world.Background().Emit != core.NewVec3(0.3, 0.5, 0.5) {
		t.Errorf("Background changed through caller slice: %v", world.Background().Emit)
	}
	if world.Spheres()[0].Radius != 1 {
		t.Errorf("Sphere changed through caller slice: %v", world.Spheres()[0].Radius)
	}
}

func TestWorld_Closest(t *testing.T) {
	world, err := NewWorld(testMaterials(),
		[]geometry.Plane{geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1)},
		[]geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 1), 1, 2)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit, isHit := world.Closest(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.MaterialIndex != 2 {
		t.Errorf("Expected sphere material 2, got %d", hit.MaterialIndex)
	}
	if world.Material(hit.MaterialIndex).Scatter != 1 {
		t.Errorf("Expected mirror material, got %+v", world.Material(hit.MaterialIndex))
	}
	if world.PrimitiveCount() != 2 {
		t.Errorf("Expected 2 primitives, got %d", world.PrimitiveCount())
	}
}

func TestWorld_AddBouncesConcurrent(t *testing.T) {
	world, err := NewWorld(testMaterials(), nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				world.AddBounces(1)
			}
		}()
	}
	wg.Wait()

	if got := world.RaysBounced(); got != 8000 {
		t.Errorf("Expected 8000 bounces, got %d", got)
	}
}
