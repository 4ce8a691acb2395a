// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strconv"

	"github.com/gobuffalo/envy"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out.
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between event polls in milliseconds
	EventPollDelay int
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	// DebugMode appends the standard validation layer and the debug
	// report extension to the lists below
	DebugMode bool

	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// SwapchainSize is the desired image count of the presentable
	// chain; zero lets the surface capabilities decide
	SwapchainSize    uint32
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32

	// ShaderDirectory is the loader prefix compiled shaders live under
	ShaderDirectory string
}

// ConfigFromEnv overlays environment variables onto defaults. Only
// variables that are set and parse cleanly override anything.
func ConfigFromEnv(defaults Configuration) Configuration {
	cfg := defaults
	cfg.Time.FramesPerSecond = envInt("PLUME_FPS", cfg.Time.FramesPerSecond)
	cfg.Time.EventPollDelay = envInt("PLUME_EVENT_POLL_MS", cfg.Time.EventPollDelay)
	cfg.Renderer.ScreenWidth = envUint32("PLUME_SCREEN_WIDTH", cfg.Renderer.ScreenWidth)
	cfg.Renderer.ScreenHeight = envUint32("PLUME_SCREEN_HEIGHT", cfg.Renderer.ScreenHeight)
	cfg.Renderer.SwapchainSize = envUint32("PLUME_SWAPCHAIN_SIZE", cfg.Renderer.SwapchainSize)
	if dir := envy.Get("PLUME_SHADER_DIR", ""); dir != "" {
		cfg.Renderer.ShaderDirectory = dir
	}
	return cfg
}

func envInt(key string, fallback int) int {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envUint32(key string, fallback uint32) uint32 {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return uint32(v)
}
