package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/geometry"
)

// Vec3JSON is a vector written as a three element array
type Vec3JSON [3]float64

// Vec3 converts to a core.Vec3
func (v Vec3JSON) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg places the camera either with a look-at triple or an explicit basis
type CameraCfg struct {
	Position Vec3JSON  `json:"position"`
	Target   *Vec3JSON `json:"target,omitempty"`
	Up       *Vec3JSON `json:"up,omitempty"`
	X        *Vec3JSON `json:"x,omitempty"`
	Y        *Vec3JSON `json:"y,omitempty"`
	Z        *Vec3JSON `json:"z,omitempty"`
}

type MaterialCfg struct {
	Scatter float64  `json:"scatter"`
	Emit    Vec3JSON `json:"emit"`
	Reflect Vec3JSON `json:"reflect"`
}

type PlaneCfg struct {
	Normal   Vec3JSON `json:"normal"`
	D        float64  `json:"d"`
	Material int      `json:"material"`
}

type SphereCfg struct {
	Center   Vec3JSON `json:"center"`
	Radius   float64  `json:"radius"`
	Material int      `json:"material"`
}

// SceneFile is the on-disk JSON description of a scene.
// Materials[0] is the background.
type SceneFile struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Camera      CameraCfg     `json:"camera"`
	Materials   []MaterialCfg `json:"materials"`
	Planes      []PlaneCfg    `json:"planes,omitempty"`
	Spheres     []SphereCfg   `json:"spheres,omitempty"`
}

// ParseSceneFile decodes a scene description, rejecting unknown fields
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return &sf, nil
}

// Build validates the description and turns it into a Scene
func (sf *SceneFile) Build() (*Scene, error) {
	materials := make([]Material, len(sf.Materials))
	for i, mc := range sf.Materials {
		materials[i] = Material{Scatter: mc.Scatter, Emit: mc.Emit.Vec3(), Reflect: mc.Reflect.Vec3()}
	}

	planes := make([]geometry.Plane, len(sf.Planes))
	for i, pc := range sf.Planes {
		planes[i] = geometry.NewPlane(pc.Normal.Vec3(), pc.D, pc.Material)
	}

	spheres := make([]geometry.Sphere, len(sf.Spheres))
	for i, sc := range sf.Spheres {
		spheres[i] = geometry.NewSphere(sc.Center.Vec3(), sc.Radius, sc.Material)
	}

	world, err := NewWorld(materials, planes, spheres)
	if err != nil {
		return nil, err
	}

	camera, err := sf.Camera.build()
	if err != nil {
		return nil, err
	}

	return NewScene(sf.Name, camera, world)
}

func (cc CameraCfg) build() (Camera, error) {
	if cc.X != nil || cc.Y != nil || cc.Z != nil {
		if cc.X == nil || cc.Y == nil || cc.Z == nil {
			return Camera{}, fmt.Errorf("%w: explicit basis needs x, y and z", ErrInvalidCamera)
		}
		return Camera{
			Position: cc.Position.Vec3(),
			X:        cc.X.Vec3(),
			Y:        cc.Y.Vec3(),
			Z:        cc.Z.Vec3(),
		}, nil
	}

	if cc.Target == nil {
		return Camera{}, fmt.Errorf("%w: camera needs a target or an explicit basis", ErrInvalidCamera)
	}
	up := core.NewVec3(0, 0, 1)
	if cc.Up != nil {
		up = cc.Up.Vec3()
	}
	return NewLookAtCamera(cc.Position.Vec3(), cc.Target.Vec3(), up)
}

// LoadSceneFile reads and builds a JSON scene from disk.
// Scenes without a name take it from the file name.
func LoadSceneFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := sf.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
