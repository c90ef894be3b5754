package api

import (
	"fmt"

	"github.com/gerow/go-color"
)

// Colors are stored as ARGB integers. The API also exposes them as HTML hex.

func colorToHTML(argb *int64) string {
	if argb == nil {
		return ""
	}

	c := color.RGB{
		R: float64((*argb>>16)&0xff) / 255,
		G: float64((*argb>>8)&0xff) / 255,
		B: float64(*argb&0xff) / 255,
	}
	return "#" + c.ToHTML()
}

func htmlToColor(hex string) (int64, error) {
	c, err := color.HTMLToRGB(hex)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", hex, err)
	}

	argb := int64(0xff)<<24 |
		int64(c.R*255+0.5)<<16 |
		int64(c.G*255+0.5)<<8 |
		int64(c.B*255+0.5)
	return argb, nil
}
