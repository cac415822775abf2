// Package typeface resolves the report's font styles to loaded font faces and
// answers width queries in PDF points.
package typeface

import (
	"image/color"
	"os"
	"path/filepath"
	"unicode/utf8"

	lmbold "github.com/go-fonts/latin-modern/lmroman10bold"
	lmregular "github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Style names a font variant used by the report layout.
type Style string

const (
	Regular    Style = "regular"
	Bold       Style = "bold"
	BoldItalic Style = "bold-italic"
	Serif      Style = "times"
	SerifBold  Style = "times-bold"
)

// Conversion constants between pt and mm. Face sizes are given in pt while
// canvas measures text in mm.
const (
	ptToMm = 0.352777
	mmToPt = 1.0 / ptToMm
)

// Average character width per style, used when no face could be loaded.
// Conservative so that approximate wrapping breaks early rather than late.
var widthCoefficients = map[Style]float64{
	Regular:    0.47,
	Bold:       0.48,
	BoldItalic: 0.48,
	Serif:      0.52,
	SerifBold:  0.54,
}

type styleSpec struct {
	file     string
	style    canvas.FontStyle
	family   string
	fallback []byte
}

var styleSpecs = map[Style]styleSpec{
	Regular:    {file: "ARIAL.TTF", style: canvas.FontRegular, family: "Arial", fallback: goregular.TTF},
	Bold:       {file: "ARIALBD.TTF", style: canvas.FontBold, family: "Arial", fallback: gobold.TTF},
	BoldItalic: {file: "ARIALBI.TTF", style: canvas.FontBold | canvas.FontItalic, family: "Arial", fallback: gobolditalic.TTF},
	Serif:      {file: "TIMES.TTF", style: canvas.FontRegular, family: "Times", fallback: lmregular.TTF},
	SerifBold:  {file: "TIMESBD.TTF", style: canvas.FontBold, family: "Times", fallback: lmbold.TTF},
}

type familyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Provider loads the preferred font assets once and serves faces and width
// measurements for the five report styles. A style whose asset is missing or
// unreadable is bound permanently to its embedded fallback family.
type Provider struct {
	logger   log.FieldLogger
	families map[Style]*familyEntry
}

// NewProvider resolves every style against the TTF assets in dir. A nil
// logger means the standard logger.
func NewProvider(dir string, logger log.FieldLogger) *Provider {
	if logger == nil {
		logger = log.StandardLogger()
	}
	p := &Provider{
		logger:   logger,
		families: make(map[Style]*familyEntry, len(styleSpecs)),
	}
	for style, spec := range styleSpecs {
		p.families[style] = p.resolve(dir, style, spec)
	}
	return p
}

func (p *Provider) resolve(dir string, style Style, spec styleSpec) *familyEntry {
	if dir != "" {
		path := filepath.Join(dir, spec.file)
		data, err := os.ReadFile(path)
		if err == nil {
			family := canvas.NewFontFamily(spec.family)
			if err = family.LoadFont(data, 0, spec.style); err == nil {
				return &familyEntry{family: family, style: spec.style}
			}
		}
		p.logger.Warnf("font asset %s unavailable, using embedded fallback: %v", path, err)
	}

	family := canvas.NewFontFamily("eval-fallback-" + string(style))
	if err := family.LoadFont(spec.fallback, 0, spec.style); err != nil {
		p.logger.Errorf("embedded fallback for style %s failed to load: %v", style, err)
		return nil
	}
	return &familyEntry{family: family, style: spec.style}
}

func (p *Provider) entry(style Style) *familyEntry {
	if e, ok := p.families[style]; ok {
		return e
	}
	return p.families[Regular]
}

// Measure returns the width of text in points when drawn at the given size.
// Unknown styles measure as Regular. When no face is available the width is
// approximated from the per-style character coefficient.
func (p *Provider) Measure(text string, style Style, size float64) float64 {
	e := p.entry(style)
	if e == nil {
		p.logger.Debugf("no face for style %s, approximating width", style)
		return approxWidth(text, style, size)
	}
	face := e.family.Face(size, color.Black, e.style, canvas.FontNormal)
	return face.TextWidth(text) * mmToPt
}

// Face returns a drawable font face at the given size (pt) and color.
func (p *Provider) Face(style Style, size float64, col color.Color) (*canvas.FontFace, error) {
	e := p.entry(style)
	if e == nil {
		return nil, errors.Errorf("typeface: no face available for style %s", style)
	}
	return e.family.Face(size, col, e.style, canvas.FontNormal), nil
}

func approxWidth(text string, style Style, size float64) float64 {
	coeff, ok := widthCoefficients[style]
	if !ok {
		coeff = widthCoefficients[Regular]
	}
	return float64(utf8.RuneCountInString(text)) * size * coeff
}
