package game

import (
	"gamehost/internal/config"
	"gamehost/internal/surface"
)

// RunHeadless drives a session for frames frames on a headless surface and
// returns the surface for inspection. It is the smoke-test mode of the CLI.
func RunHeadless(cfg config.Config, deps Deps, frames int) (*surface.Headless, error) {
	screen := &surface.Headless{}
	deps.Surface = screen

	s, err := Init(cfg, deps)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	for range frames {
		s.Update()
		s.RenderFrame()
	}
	return screen, nil
}
