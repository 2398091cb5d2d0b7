package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

func TestNewLookAtCamera(t *testing.T) {
	camera, err := NewLookAtCamera(core.NewVec3(0, -10, 1), core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := camera.Validate(); err != nil {
		t.Errorf("Look-at camera failed validation: %v", err)
	}

	forward := camera.Forward()
	expected := core.NewVec3(0, 10, 2).Normalize()
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward %v, got %v", expected, forward)
	}

	// X lies in the horizontal plane, Y tilts upward
	if math.Abs(camera.X.Z) > 1e-9 {
		t.Errorf("Expected horizontal X axis, got %v", camera.X)
	}
	if camera.Y.Z <= 0 {
		t.Errorf("Expected Y axis pointing up, got %v", camera.Y)
	}
}

func TestNewLookAtCamera_Degenerate(t *testing.T) {
	// Looking straight down with up = +Z has no defined right vector
	_, err := NewLookAtCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if !errors.Is(err, ErrDegenerateOrientation) {
		t.Errorf("Expected ErrDegenerateOrientation, got %v", err)
	}

	_, err = NewLookAtCamera(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 1))
	if !errors.Is(err, ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestCamera_Validate(t *testing.T) {
	tests := []struct {
		name    string
		camera  Camera
		wantErr bool
	}{
		{
			name: "identity basis",
			camera: Camera{
				Position: core.NewVec3(0, 0, 5),
				X:        core.NewVec3(1, 0, 0),
				Y:        core.NewVec3(0, 1, 0),
				Z:        core.NewVec3(0, 0, 1),
			},
		},
		{
			name: "left-handed basis",
			camera: Camera{
				X: core.NewVec3(1, 0, 0),
				Y: core.NewVec3(0, 1, 0),
				Z: core.NewVec3(0, 0, -1),
			},
			wantErr: true,
		},
		{
			name: "non-unit axis",
			camera: Camera{
				X: core.NewVec3(2, 0, 0),
				Y: core.NewVec3(0, 1, 0),
				Z: core.NewVec3(0, 0, 1),
			},
			wantErr: true,
		},
		{
			name: "non-orthogonal axes",
			camera: Camera{
				X: core.NewVec3(1, 0, 0),
				Y: core.NewVec3(1, 1, 0).Normalize(),
				Z: core.NewVec3(0, 0, 1),
			},
			wantErr: true,
		},
		{
			name:    "zero camera",
			camera:  Camera{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.camera.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("Expected ErrInvalidCamera, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
