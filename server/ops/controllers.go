package ops

import (
	"github.com/luno/topodash/api"
	"github.com/luno/topodash/api/render"
)

var controllerColors = []string{
	"color1", "color2", "color3", "color4", "color5", "color6", "color7", "color8",
}

// barColors are the liveness bar colours, by controller index.
var barColors = []string{
	"red", "blue", "green", "orange", "cyan", "magenta", "yellow", "purple",
}

const (
	colorInactive = "colorInactive"
	barFallback   = "black"
)

// ControllerBars returns one liveness bar per configured controller, in
// configuration order.
func ControllerBars(controllers, active []string) []render.ControllerBar {
	live := set(active)
	ret := make([]render.ControllerBar, 0, len(controllers))
	for i, name := range controllers {
		c := barFallback
		if i < len(barColors) {
			c = barColors[i]
		}
		ret = append(ret, render.ControllerBar{Name: name, Active: live[name], Color: c})
	}
	return ret
}

// controllerColor returns the css class of a controller, by its index in
// the configured controllers.
func controllerColor(controllers []string, name string) (string, bool) {
	for i, c := range controllers {
		if c != name {
			continue
		}
		if i < len(controllerColors) {
			return controllerColors[i], true
		}
		return "", false
	}
	return "", false
}

// switchStyle is the css class list of a switch: active switches take the
// colour of their controller.
func switchStyle(s render.Switch, controllers []string) string {
	if s.State != string(api.StateActive) || s.Controller == "" {
		return "inactive " + colorInactive
	}
	c, ok := controllerColor(controllers, s.Controller)
	if !ok {
		return "active"
	}
	return "active " + c
}
