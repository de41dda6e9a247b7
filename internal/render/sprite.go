package render

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// LoadImage decodes the sprite at path. When maxSide > 0 and the image is larger, it is
// scaled down so its longest side equals maxSide, keeping the aspect ratio.
func LoadImage(path string, maxSide int) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: load %s: %w", path, err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("render: load %s: empty image", path)
	}
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			h = max(1, h*maxSide/w)
			w = maxSide
		} else {
			w = max(1, w*maxSide/h)
			h = maxSide
		}
	}
	// Resize also normalizes to RGBA at origin (0, 0).
	return transform.Resize(img, w, h, transform.Linear), nil
}
