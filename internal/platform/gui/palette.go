package gui

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/sinland/internal/core"
)

// palette maps the shared color enum onto window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       colornames.Black,
	core.ColorRed:           colornames.Firebrick,
	core.ColorGreen:         colornames.Forestgreen,
	core.ColorYellow:        colornames.Goldenrod,
	core.ColorBlue:          colornames.Royalblue,
	core.ColorMagenta:       colornames.Darkmagenta,
	core.ColorCyan:          colornames.Darkcyan,
	core.ColorWhite:         colornames.Lightgray,
	core.ColorBrightRed:     colornames.Red,
	core.ColorBrightGreen:   colornames.Limegreen,
	core.ColorBrightYellow:  colornames.Yellow,
	core.ColorBrightBlue:    colornames.Dodgerblue,
	core.ColorBrightMagenta: colornames.Magenta,
	core.ColorBrightCyan:    colornames.Cyan,
	core.ColorBrightWhite:   colornames.White,
	core.ColorOrange:        colornames.Orange,
	core.ColorGray:          colornames.Gray,
	core.ColorBrown:         colornames.Saddlebrown,
	core.ColorBlack:         colornames.Black,
}

// RGBA returns the window color for c.
func RGBA(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return colornames.Black
}

// background treats the default as a white page.
func background(c core.Color) color.RGBA {
	if c == core.ColorDefault {
		return colornames.White
	}
	return RGBA(c)
}

// overlay is the black fade overlay at strength alpha, premultiplied.
func overlay(alpha float64) color.RGBA {
	return color.RGBA{A: uint8(core.Saturate(alpha)*255 + 0.5)}
}
