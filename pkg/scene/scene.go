package scene

import (
	"fmt"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera Camera
	World  *World
}

// NewScene validates the camera and pairs it with a world
func NewScene(name string, camera Camera, world *World) (*Scene, error) {
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	if world == nil {
		return nil, fmt.Errorf("scene %q: world is nil", name)
	}
	return &Scene{Name: name, Camera: camera, World: world}, nil
}
