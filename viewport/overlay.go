package viewport

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/math"
	"rendercore/meshesdrawer"
	"rendercore/resource"
	"rendercore/rhi"
	"rendercore/scene"
	"rendercore/spatial"
)

// Overlay draws into a Viewport's forward target after deferred lighting has
// resolved and before post-process: the skybox, and any PathTranslucent/
// PathUnlit geometry (debug grids, AABB gizmos, billboards) a host wants lit
// flat or blended against the already-resolved scene rather than run
// through the G-buffer. It is a thin RHI-draw-call wrapper, not a text/GUI
// stack — an editor or game host draws its own gizmos/GUI into the same
// target using the device directly, between Renderer.Render's lighting and
// post-process stages.
//
// Grounded on the reference renderer's internal/opengl/skybox.go Skybox:
// same xyww far-plane trick and stripped-translation view matrix, rebuilt
// against an environment cubemap instead of a procedural gradient so it can
// share a source with the IBL preprocessor.
type Overlay struct {
	device *rhi.Device

	skyboxProgram resource.Handle
	skyboxCube    resource.Handle

	unlitProgram resource.Handle
}

// unitCubeVerts mirrors ibl.unitCubeVerts (36 positions, CCW from the
// outside) — duplicated here rather than exported across packages since
// each package's capture/draw geometry is otherwise self-contained.
var unitCubeVerts = []float32{
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}

func NewOverlay(device *rhi.Device) (*Overlay, error) {
	o := &Overlay{device: device}

	var err error
	o.skyboxProgram, err = device.CreateShaderProgram(skyboxVertSrc, skyboxFragSrc, rhi.OverlayPipelineState())
	if err != nil {
		return nil, fmt.Errorf("viewport: skybox program: %w", err)
	}
	o.skyboxCube = device.CreatePositionModel(unitCubeVerts)

	o.unlitProgram, err = device.CreateShaderProgram(unlitVertSrc, unlitFragSrc, rhi.BlendPipelineState())
	if err != nil {
		return nil, fmt.Errorf("viewport: unlit overlay program: %w", err)
	}

	return o, nil
}

// DrawSkybox renders env (the IBL environment cubemap, or any other
// cubemap a host wants as its backdrop) behind everything already in the
// forward target. view/proj are the viewer camera's matrices; the
// translation is stripped from view here so the sky doesn't move with the
// camera's position, only its orientation.
func (o *Overlay) DrawSkybox(view, proj math.Mat4, env resource.Handle) {
	if !env.IsValid() {
		return
	}
	skyView := view
	skyView[3][0], skyView[3][1], skyView[3][2] = 0, 0, 0
	skyVP := skyView.Mul(proj)

	o.device.UseShader(o.skyboxProgram)
	o.device.SetUniformMat4(o.skyboxProgram, "skyVP", skyVP)
	o.device.BindTexture(0, env)
	o.device.SetUniformInt(o.skyboxProgram, "environmentMap", 0)
	o.device.DrawModel(gl.TRIANGLES, o.skyboxCube)
}

// DrawForward draws every PathTranslucent/PathUnlit static and skinned node
// in drawer's current frame snapshot with a flat vertex-color/albedo shader,
// alpha-blended against whatever the lighting pass already wrote. frustum
// and orthographic mirror the viewer camera the lighting pass used, so a
// culled gizmo doesn't render one frame behind the camera that cut it.
func (o *Overlay) DrawForward(drawer *meshesdrawer.Drawer, viewProj math.Mat4, frustum spatial.Frustum, orthographic bool) {
	o.device.UseShader(o.unlitProgram)
	o.device.SetUniformMat4(o.unlitProgram, "viewProj", viewProj)
	bind := func(mat *scene.Material) {
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		o.device.SetUniformVec4(o.unlitProgram, "albedo", math.Vec4{X: mat.Albedo.R, Y: mat.Albedo.G, Z: mat.Albedo.B, W: mat.Albedo.A})
	}
	drawer.DrawStatic(o.unlitProgram, frustum, orthographic, meshesdrawer.ForwardOnly, bind)
	drawer.DrawSkinned(o.unlitProgram, meshesdrawer.ForwardOnly, bind)
}
