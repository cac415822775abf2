// Package rasset loads the report's raster assets (page background and
// signature) and provides fit-and-center scaling.
package rasset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const (
	backgroundFile = "background.png"
	signatureFile  = "signature.png"
)

// Provider holds the decoded report images. Missing or unreadable assets are
// logged and reported as nil; rendering proceeds without them.
type Provider struct {
	logger     log.FieldLogger
	background image.Image
	signature  image.Image
}

// NewProvider decodes the background and signature images from dir. A nil
// logger means the standard logger.
func NewProvider(dir string, logger log.FieldLogger) *Provider {
	if logger == nil {
		logger = log.StandardLogger()
	}
	p := &Provider{logger: logger}
	p.background = p.load(filepath.Join(dir, backgroundFile))
	p.signature = p.load(filepath.Join(dir, signatureFile))
	return p
}

func (p *Provider) load(path string) image.Image {
	file, err := os.Open(path)
	if err != nil {
		p.logger.Warnf("image asset %s unavailable: %v", path, err)
		return nil
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		p.logger.Warnf("image asset %s failed to decode: %v", path, err)
		return nil
	}
	return img
}

// Background returns the page background image, or nil when unavailable.
func (p *Provider) Background() image.Image { return p.background }

// Signature returns the signature image, or nil when unavailable.
func (p *Provider) Signature() image.Image { return p.signature }

// FitRect scales an image of imgW x imgH to fit inside targetW x targetH
// preserving aspect ratio, and centers it. It returns the scaled size and the
// centering offsets. Degenerate source dimensions yield the target rect at
// zero offset.
func FitRect(imgW, imgH, targetW, targetH float64) (w, h, offX, offY float64) {
	if imgW <= 0 || imgH <= 0 {
		return targetW, targetH, 0, 0
	}
	scale := targetW / imgW
	if s := targetH / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	offX = (targetW - w) / 2
	offY = (targetH - h) / 2
	return w, h, offX, offY
}
