// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"runtime"
	"unsafe"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/plume-gfx/plume/core"
	"github.com/plume-gfx/plume/resource"
)

func init() {
	runtime.LockOSThread()
}

// Essential globals
var (
	vkInstance core.Instance
	vkRenderer core.Renderer
	sdlWindow  *sdl.Window
	sdlSurface unsafe.Pointer
)

var defaults = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  2,
	},
	Renderer: core.RendererConfiguration{
		ScreenWidth:   800,
		ScreenHeight:  600,
		SwapchainSize: 3,
		// TODO: Make extension name escaping bearable
		DeviceExtensions: []string{
			"VK_KHR_swapchain\x00",
		},
		ShaderDirectory: "./shaders",
	},
}

func newWindow(cfg core.RendererConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow("Plume",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.WithError(err).Fatal("window creation failed")
	}
	return window
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment as is")
	}
	configuration := core.ConfigFromEnv(defaults)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.WithError(err).Fatal("sdl initialisation failed")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.WithError(err).Fatal("vulkan library load failed")
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow = newWindow(configuration.Renderer)

	{
		cfg := core.InstanceConfiguration{
			DebugMode:  true,
			Extensions: sdlWindow.VulkanGetInstanceExtensions(),
			Layers:     []string{},
		}

		if vi, err := core.NewVulkanInstance(core.DefaultApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), cfg); err != nil {
			log.WithError(err).Fatal("instance creation failed")
		} else {
			vkInstance = vi
		}
	}

	for _, deviceInfo := range vkInstance.PhysicalDevicesInfo() {
		log.WithFields(log.Fields{
			"id":      deviceInfo.ID,
			"name":    deviceInfo.Name,
			"memory":  deviceInfo.Memory,
			"invalid": deviceInfo.Invalid,
		}).Info("physical device found")
	}

	if srf, err := sdlWindow.VulkanCreateSurface(vkInstance.Inner()); err != nil {
		log.WithError(err).Fatal("surface creation failed")
	} else {
		sdlSurface = srf
		vkInstance.SetSurface(sdlSurface)
	}

	loader := resource.NewLoader(resource.Dir{Root: configuration.Renderer.ShaderDirectory})

	var rendererErr error
	vkRenderer, rendererErr = core.NewVulkanRenderer(vkInstance, loader, configuration.Renderer)
	if rendererErr != nil {
		log.WithError(rendererErr).Fatal("renderer creation failed")
	}

	deviceUsed := vkInstance.AvailableDevices()[0]
	if suitable, reason := vkRenderer.DeviceIsSuitable(deviceUsed); !suitable {
		log.WithField("reason", reason).Fatal("device not suitable")
	}

	if err := vkRenderer.Initialise(); err != nil {
		log.WithError(err).Fatal("renderer initialisation failed")
	}

	surfaceConfig := vkRenderer.SurfaceConfig()
	log.WithFields(log.Fields{
		"width":  surfaceConfig.Extent.Width,
		"height": surfaceConfig.Extent.Height,
		"images": surfaceConfig.ImageCount,
	}).Info("renderer ready")

	time := core.NewTime(configuration.Time)
	defer time.Stop()
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("event loop exited")
			break EventLoop
		case <-time.FpsTicker().C:
			if err := vkRenderer.Draw(); err != nil {
				log.WithError(err).Error("frame draw failed")
				exitC <- struct{}{}
				continue EventLoop
			}
		case <-time.EventTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				}
			}
		}
	}

	vkRenderer.Destroy()
	vkInstance.Destroy()
}
