package main

import (
	"math"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"glscope/internal/config"
	"glscope/internal/profiling"
	"glscope/pkg/gfx"
	"glscope/pkg/gfx/glbackend"
)

func init() {
	runtime.LockOSThread()
}

const vertexSrc = `#version 330 core
layout (location = 0) in vec3 pos;

void main()
{
  gl_Position = vec4(pos, 1.0);
}
`

const fragmentSrc = `#version 330 core
out vec4 color;
uniform vec3 tint;

void main()
{
  color = vec4(tint, 1.0f);
}
`

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if lvl, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	gfx.SetLogger(log.WithField("component", "gfx"))

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, settings.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, settings.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	window.MakeContextCurrent()
	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	dev, err := glbackend.New()
	if err != nil {
		log.Fatal(err)
	}
	log.WithField("version", dev.Version()).Info("OpenGL context ready")

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		dev.Viewport(width, height)
	})

	if err := run(window, dev, settings); err != nil {
		log.Fatal(err)
	}
}

func run(window *glfw.Window, dev *glbackend.Device, settings config.WindowSettings) error {
	program, err := linkProgram(dev)
	if err != nil {
		return err
	}
	defer program.Delete()

	vertices := gfx.NewVBO(dev, []mgl32.Vec3{
		{0.5, 0.5, 0},
		{0.5, -0.5, 0},
		{-0.5, -0.5, 0},
		{-0.5, 0.5, 0},
	}, gfx.StaticDraw)
	defer vertices.Delete()

	indices := gfx.NewEBO(dev, []uint32{
		0, 1, 3,
		1, 2, 3,
	}, gfx.StaticDraw)
	defer indices.Delete()

	vao := gfx.NewVertexArray(dev)
	defer vao.Delete()
	if err := vao.Attach(0, vertices, gfx.Layout{}); err != nil {
		return err
	}
	if err := vao.AttachIndices(indices); err != nil {
		return err
	}

	clearColor := mgl32.Vec4(settings.ClearColor)
	slowFrame := time.Duration(settings.SlowFrameMs * float64(time.Millisecond))
	start := time.Now()

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		profiling.ResetFrame()
		frameStart := time.Now()

		dev.Clear(clearColor)
		if err := drawFrame(dev, program, vao, time.Since(start)); err != nil {
			return err
		}

		stopSwap := profiling.Track("window.SwapBuffers")
		window.SwapBuffers()
		stopSwap()
		glfw.PollEvents()

		if d := time.Since(frameStart); d > slowFrame {
			log.Warnf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(3))
		}
		if err := dev.Error(); err != nil {
			log.WithError(err).Error("frame failed")
		}
	}
	return nil
}

func linkProgram(dev gfx.Device) (*gfx.Program, error) {
	vs, err := gfx.NewShader(dev, gfx.VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer vs.Delete()
	fs, err := gfx.NewShader(dev, gfx.FragmentStage, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer fs.Delete()
	return gfx.NewProgram(dev, vs, fs)
}

func drawFrame(dev gfx.Device, program *gfx.Program, vao *gfx.VertexArray, elapsed time.Duration) error {
	defer profiling.Track("rectangle.Draw")()
	defer gfx.RestoreEnable(dev, gfx.Blend)()

	program.Use()
	pulse := float32(0.75 + 0.25*math.Sin(elapsed.Seconds()))
	program.SetVec3("tint", mgl32.Vec3{1.0, 0.5 * pulse, 0.2})
	return vao.DrawElements(gfx.Triangles)
}
