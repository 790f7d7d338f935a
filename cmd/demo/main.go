package main

import (
	"fmt"
	stdmath "math"
	"time"

	"rendercore/core"
	"rendercore/engine"
	"rendercore/math"
	"rendercore/scene"
)

// CameraController is a simple fly camera: WASD to move, right-mouse-drag to
// look, mirroring the reference demo's mouse-look scheme but without ground
// collision/gravity — this showcase has no building footprints to collide
// against.
type CameraController struct {
	moveSpeed  float32
	lookSpeed  float32
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
	dragging   bool
	yaw, pitch float32
}

func NewCameraController() *CameraController {
	return &CameraController{
		moveSpeed:  6.0,
		lookSpeed:  0.003,
		firstMouse: true,
		yaw:        -90.0,
	}
}

func (cc *CameraController) UpdateViewportCamera(window *core.Window, cam interface {
	SetPosition(math.Vec3)
	LookAt(math.Vec3, math.Vec3)
}, position *math.Vec3, deltaTime float32) {
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	const mouseButtonRight = 1
	cc.dragging = window.IsMouseButtonPressed(mouseButtonRight)
	if cc.dragging {
		mouseX, mouseY := window.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX, cc.lastMouseY = mouseX, mouseY
			cc.firstMouse = false
		}
		cc.yaw += float32(mouseX-cc.lastMouseX) * cc.lookSpeed * 57.3
		cc.pitch += float32(cc.lastMouseY-mouseY) * cc.lookSpeed * 57.3
		if cc.pitch > 88 {
			cc.pitch = 88
		}
		if cc.pitch < -88 {
			cc.pitch = -88
		}
		cc.lastMouseX, cc.lastMouseY = mouseX, mouseY
	} else {
		cc.firstMouse = true
	}

	yawRad := float64(cc.yaw) * stdmath.Pi / 180.0
	pitchRad := float64(cc.pitch) * stdmath.Pi / 180.0
	forward := math.Vec3{
		X: float32(stdmath.Cos(yawRad) * stdmath.Cos(pitchRad)),
		Y: float32(stdmath.Sin(pitchRad)),
		Z: float32(stdmath.Sin(yawRad) * stdmath.Cos(pitchRad)),
	}.Normalize()
	right := math.Vec3{X: float32(stdmath.Cos(yawRad - stdmath.Pi/2)), Z: float32(stdmath.Sin(yawRad - stdmath.Pi/2))}.Normalize()

	move := math.Vec3{}
	if window.IsKeyPressed(core.KeyW) {
		move = move.Add(forward.Mul(cc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyS) {
		move = move.Add(forward.Mul(-cc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyD) {
		move = move.Add(right.Mul(cc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyA) {
		move = move.Add(right.Mul(-cc.moveSpeed * deltaTime))
	}

	*position = position.Add(move)
	cam.SetPosition(*position)
	cam.LookAt(position.Add(forward), math.Vec3Up)
}

func main() {
	fmt.Println("Starting rendercore showcase...")

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Title = "rendercore - showcase"
	windowConfig.Width = 1280
	windowConfig.Height = 720

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	eng, err := engine.New(windowConfig.Width, windowConfig.Height)
	if err != nil {
		fmt.Printf("Failed to create engine: %v\n", err)
		return
	}
	defer eng.Destroy()

	if err := eng.EnableOverlay(); err != nil {
		fmt.Printf("Overlay init failed (continuing without it): %v\n", err)
	}

	s := eng.Scene
	s.Ambient = core.Color{R: 0.10, G: 0.12, B: 0.20, A: 1}
	s.SkyColor = core.Color{R: 0.18, G: 0.22, B: 0.50, A: 1}

	cam := eng.Viewport().Camera
	camPos := math.Vec3{X: 0, Y: 1.7, Z: 12}
	cam.SetPosition(camPos)
	cam.LookAt(math.Vec3{X: 0, Y: 1.7, Z: 0}, math.Vec3Up)

	// ── Materials ───────────────────────────────────────────────────────────
	matGround := scene.NewMaterial("Ground", core.Color{R: 0.62, G: 0.58, B: 0.52, A: 1}, 0, 0.9)
	matStone := scene.NewMaterial("Stone", core.Color{R: 0.58, G: 0.55, B: 0.50, A: 1}, 0, 0.8)
	matBrick := scene.NewMaterial("Brick", core.Color{R: 0.70, G: 0.43, B: 0.30, A: 1}, 0, 0.75)
	matMetal := scene.NewMaterial("Metal", core.Color{R: 0.14, G: 0.14, B: 0.12, A: 1}, 0.95, 0.15)
	matLamp := scene.NewMaterial("LampGlow", core.Color{R: 1.0, G: 0.85, B: 0.45, A: 1}, 0, 0.5)
	matLamp.EmissiveColor = core.Color{R: 3.0, G: 2.0, B: 0.6, A: 1}
	matLamp.EmissiveStrength = 1.0

	addBox := func(name string, pos math.Vec3, sx, sy, sz float32, mat *scene.Material) {
		m, err := scene.CreateCube(1.0)
		if err != nil {
			fmt.Printf("CreateCube %q: %v\n", name, err)
			return
		}
		m.Material = mat
		n := scene.NewNode(name)
		n.Renderer = scene.NewStaticMeshRenderer(m)
		n.SetPosition(pos)
		n.SetScale(math.Vec3{X: sx, Y: sy, Z: sz})
		s.AddNode(n)
	}

	groundMesh, err := scene.CreatePlane(80, 80, 1)
	if err == nil {
		groundMesh.Material = matGround
		groundNode := scene.NewNode("Ground")
		groundNode.Renderer = scene.NewStaticMeshRenderer(groundMesh)
		s.AddNode(groundNode)
	}

	gridNode := scene.NewNode("Grid")
	gridNode.Renderer = scene.NewStaticMeshRenderer(scene.CreateGrid(80, 40))
	s.AddNode(gridNode)

	addBox("Bldg_NW", math.Vec3{X: -15, Y: 4.5, Z: -15}, 9, 9, 9, matStone)
	addBox("Bldg_NE", math.Vec3{X: 16, Y: 3.5, Z: -15}, 12, 7, 10, matBrick)

	lampPos := []math.Vec3{
		{X: -5.5, Y: 0, Z: -5.5}, {X: 5.5, Y: 0, Z: -5.5},
		{X: -5.5, Y: 0, Z: 5.5}, {X: 5.5, Y: 0, Z: 5.5},
	}
	embers := make([]*scene.ParticleEmitter, 0, len(lampPos))
	for i, lp := range lampPos {
		pole, err := scene.CreateCylinder(0.09, 4.8, 8)
		if err == nil {
			pole.Material = matMetal
			pn := scene.NewNode(fmt.Sprintf("LampPole%d", i))
			pn.Renderer = scene.NewStaticMeshRenderer(pole)
			pn.SetPosition(math.Vec3{X: lp.X, Y: 2.4, Z: lp.Z})
			s.AddNode(pn)
		}
		cap, err := scene.CreateSphere(0.28, 12, 6)
		if err == nil {
			cap.Material = matLamp
			cn := scene.NewNode(fmt.Sprintf("LampCap%d", i))
			cn.Renderer = scene.NewStaticMeshRenderer(cap)
			cn.SetPosition(math.Vec3{X: lp.X, Y: 4.9, Z: lp.Z})
			s.AddNode(cn)
		}
		s.AddLight(scene.NewPointLight(math.Vec3{X: lp.X, Y: 4.7, Z: lp.Z}, core.Color{R: 1.0, G: 0.78, B: 0.35, A: 1}, 3.0, 14.0))

		ember := scene.NewParticleEmitter(64)
		ember.Position = math.Vec3{X: lp.X, Y: 4.9, Z: lp.Z}
		ember.Rate = 8
		ember.MinLife, ember.MaxLife = 0.6, 1.4
		ember.MinSpeed, ember.MaxSpeed = 0.2, 0.6
		ember.MinSize, ember.MaxSize = 0.02, 0.06
		ember.StartColor = core.Color{R: 1.0, G: 0.6, B: 0.2, A: 0.8}
		ember.EndColor = core.Color{R: 0.4, G: 0.1, B: 0.05, A: 0}
		ember.BlendMode = scene.BlendAdditive
		embers = append(embers, ember)
	}

	sunLight := scene.NewDirectionalLight(math.Vec3{X: 0.55, Y: -0.75, Z: -0.35}, core.Color{R: 1.0, G: 0.90, B: 0.70, A: 1}, 1.1)
	s.AddLight(sunLight)

	dayNight := NewDayNight()
	dayNight.Apply(s, sunLight)

	camController := NewCameraController()
	debugOverlay := &DebugOverlay{}

	frameCount := 0
	displayFPS := 0
	lastTime := time.Now()
	deltaTime := float32(0.016)

	fmt.Println("WASD move, right-mouse-drag look, N pause day/night, ESC quit")
	nWasDown := false

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		nDown := window.IsKeyPressed(core.KeyN)
		if nDown && !nWasDown {
			dayNight.Active = !dayNight.Active
		}
		nWasDown = nDown

		dayNight.Update(deltaTime)
		dayNight.Apply(s, sunLight)

		for _, ember := range embers {
			ember.Update(deltaTime)
		}

		camController.UpdateViewportCamera(window, cam, &camPos, deltaTime)

		eng.Render(deltaTime)

		debugOverlay.Clear()
		debugOverlay.AddLine("FPS: %d   Pos: %.1f %.1f %.1f", displayFPS, camPos.X, camPos.Y, camPos.Z)
		debugOverlay.AddLine("Day/Night: %s", dayNight.TimeOfDayStr())
		emberCount := 0
		for _, ember := range embers {
			emberCount += ember.Count()
		}
		debugOverlay.AddLine("Embers: %d", emberCount)

		window.SwapBuffers()

		frameCount++
		now := time.Now()
		elapsed := now.Sub(lastTime)
		if elapsed.Seconds() >= 1.0 {
			displayFPS = frameCount
			window.SetTitle(fmt.Sprintf("rendercore | FPS: %d | %s", displayFPS, debugOverlay.GetText()))
			frameCount = 0
			lastTime = now
		}

		width, height := window.GetFramebufferSize()
		if width > 0 && height > 0 {
			eng.Resize(width, height)
		}

		deltaTime = float32(elapsed.Seconds())
		if deltaTime <= 0 {
			deltaTime = 0.016
		}
	}

	fmt.Println("Exiting...")
}
