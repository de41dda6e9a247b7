package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/primitives"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

var lightDir = mgl32.Vec3{0.5, 1, 0.5}

// View3D holds the 3D camera. Draw renders the editor grid (the y=0 ground plane with axes)
// and flushes the primitives queued by scenes during the frame.
type View3D struct {
	Camera      rl.Camera3D
	GridVisible bool

	meshes    *primitives.Registry
	freeLook  bool
	cursorOff bool
}

// NewView3D returns a perspective camera looking at the drop zone above the origin.
func NewView3D(meshes *primitives.Registry) *View3D {
	v := &View3D{meshes: meshes, GridVisible: true}
	v.Camera.Position = rl.NewVector3(20, 15, 20)
	v.Camera.Target = rl.NewVector3(0, 5, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	return v
}

// Update moves the free camera with mouse and keyboard while free look is on and active is
// true. The cursor is captured only in that state, so it is released while the console is open.
func (v *View3D) Update(active bool) {
	look := active && v.freeLook
	if look != v.cursorOff {
		if look {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
		v.cursorOff = look
	}
	if look {
		rl.UpdateCamera(&v.Camera, rl.CameraFree)
	}
}

// SetFreeLook enables mouse camera control.
func (v *View3D) SetFreeLook(on bool) { v.freeLook = on }

func (v *View3D) Draw() {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawEditorGrid()
	}
	p := v.Camera.Position
	v.meshes.Flush(mgl32.Vec3{p.X, p.Y, p.Z}, lightDir)
	rl.EndMode3D()
}

// drawEditorGrid draws major/minor lines on the XZ plane and the three axes through the origin.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		f := float32(i)
		rl.DrawLine3D(rl.NewVector3(f, 0, -gridExtent), rl.NewVector3(f, 0, gridExtent), c)
		rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, f), rl.NewVector3(gridExtent, 0, f), c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}
