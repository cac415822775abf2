// Package pagedoc is the drawing surface for evaluation reports. It keeps one
// canvas per page so text can still be stamped onto earlier pages after the
// total page count is known, and serializes all pages to PDF on Finalize.
//
// Coordinates are PDF points with the origin at the bottom-left of the page;
// conversion to the canvas backend's millimeters happens at this boundary.
package pagedoc

import (
	"bytes"
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/the-evaluation-company/eval-worker/rasset"
	"github.com/the-evaluation-company/eval-worker/typeface"
)

// US Letter, in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

const (
	ptToMm = 0.352777
	mmToPt = 1.0 / ptToMm
)

var (
	// ErrNoActivePage is returned by draw operations before the first page.
	ErrNoActivePage = errors.New("pagedoc: no active page")
	// ErrFinalized is returned by any operation after Finalize.
	ErrFinalized = errors.New("pagedoc: document already finalized")
)

type page struct {
	canvas *canvas.Canvas
	ctx    *canvas.Context
}

// Document accumulates pages and draw operations for a single report.
type Document struct {
	// Title is written into the PDF info dictionary.
	Title string
	// LeftMargin and RightMargin only affect ContentWidth.
	LeftMargin  float64
	RightMargin float64

	fonts     *typeface.Provider
	images    *rasset.Provider
	pages     []*page
	finalized bool
}

// NewDocument creates an empty document drawing with the given providers.
func NewDocument(fonts *typeface.Provider, images *rasset.Provider) *Document {
	return &Document{fonts: fonts, images: images}
}

// NewPage appends a page and makes it current. The background image, when
// available, is painted fit-and-centered across the full page.
func (d *Document) NewPage() error {
	if d.finalized {
		return ErrFinalized
	}
	c := canvas.New(PageWidth*ptToMm, PageHeight*ptToMm)
	p := &page{canvas: c, ctx: canvas.NewContext(c)}
	d.pages = append(d.pages, p)

	if d.images != nil {
		if bg := d.images.Background(); bg != nil {
			b := bg.Bounds()
			w, _, offX, offY := rasset.FitRect(float64(b.Dx()), float64(b.Dy()), PageWidth, PageHeight)
			drawImage(p.ctx, bg, offX, offY, w)
		}
	}
	return nil
}

// PageCount returns the number of pages created so far.
func (d *Document) PageCount() int { return len(d.pages) }

// ContentWidth returns the page width minus the horizontal margins.
func (d *Document) ContentWidth() float64 { return PageWidth - d.LeftMargin - d.RightMargin }

// DrawText draws a single line of text with its baseline at (x, y) on the
// current page.
func (d *Document) DrawText(text string, x, y, size float64, style typeface.Style, col color.Color) error {
	p, err := d.active()
	if err != nil {
		return err
	}
	return d.drawTextOn(p, text, x, y, size, style, col)
}

// DrawTextOnPage draws on the page at index instead of the current page. It
// exists for the footer pass, which runs after all pages are laid out.
func (d *Document) DrawTextOnPage(index int, text string, x, y, size float64, style typeface.Style, col color.Color) error {
	if d.finalized {
		return ErrFinalized
	}
	if index < 0 || index >= len(d.pages) {
		return errors.Errorf("pagedoc: page %d out of range [0, %d)", index, len(d.pages))
	}
	return d.drawTextOn(d.pages[index], text, x, y, size, style, col)
}

func (d *Document) drawTextOn(p *page, text string, x, y, size float64, style typeface.Style, col color.Color) error {
	if text == "" {
		return nil
	}
	face, err := d.fonts.Face(style, size, col)
	if err != nil {
		return err
	}
	p.ctx.DrawText(x*ptToMm, y*ptToMm, canvas.NewTextLine(face, text, canvas.Left))
	return nil
}

// DrawRect strokes a rectangle anchored at its bottom-left corner, filling it
// when fill is non-nil.
func (d *Document) DrawRect(x, y, w, h float64, border color.Color, borderWidth float64, fill color.Color) error {
	p, err := d.active()
	if err != nil {
		return err
	}
	if fill != nil {
		p.ctx.SetFillColor(fill)
	} else {
		p.ctx.SetFillColor(color.RGBA{})
	}
	p.ctx.SetStrokeColor(border)
	p.ctx.SetStrokeWidth(borderWidth * ptToMm)
	p.ctx.DrawPath(x*ptToMm, y*ptToMm, canvas.Rectangle(w*ptToMm, h*ptToMm))
	return nil
}

// DrawLine strokes a straight line between two points.
func (d *Document) DrawLine(x1, y1, x2, y2 float64, col color.Color, width float64) error {
	p, err := d.active()
	if err != nil {
		return err
	}
	p.ctx.SetStrokeColor(col)
	p.ctx.SetStrokeWidth(width * ptToMm)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo((x2-x1)*ptToMm, (y2-y1)*ptToMm)
	p.ctx.DrawPath(x1*ptToMm, y1*ptToMm, path)
	return nil
}

// DrawImage draws img scaled to w wide with its bottom-left corner at (x, y).
// Height follows the image aspect ratio; callers pass rasset.FitRect results.
func (d *Document) DrawImage(img image.Image, x, y, w float64) error {
	p, err := d.active()
	if err != nil {
		return err
	}
	if img == nil || w <= 0 {
		return nil
	}
	drawImage(p.ctx, img, x, y, w)
	return nil
}

func drawImage(ctx *canvas.Context, img image.Image, x, y, w float64) {
	dpmm := float64(img.Bounds().Dx()) / (w * ptToMm)
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(x*ptToMm, y*ptToMm, img, canvas.DPMM(dpmm))
}

// DrawTable draws a bordered table with y as its top edge: outer border,
// optional header fill, column and row separators, and centered cell text.
// It returns the y coordinate just below the table.
func (d *Document) DrawTable(x, y float64, rows [][]string, colWidths []float64, rowHeight, fontSize float64, border color.Color, borderWidth float64, headerFill color.Color) (float64, error) {
	if _, err := d.active(); err != nil {
		return y, err
	}
	if len(rows) == 0 || len(colWidths) == 0 {
		return y, nil
	}

	tableWidth := 0.0
	for _, w := range colWidths {
		tableWidth += w
	}
	tableHeight := float64(len(rows)) * rowHeight

	if err := d.DrawRect(x, y-tableHeight, tableWidth, tableHeight, border, borderWidth, nil); err != nil {
		return y, err
	}

	for rowIdx, row := range rows {
		rowY := y - float64(rowIdx)*rowHeight

		if rowIdx == 0 && headerFill != nil {
			if err := d.DrawRect(x, rowY-rowHeight, tableWidth, rowHeight, border, borderWidth, headerFill); err != nil {
				return y, err
			}
		}

		colX := x
		for colIdx, cell := range row {
			if colIdx >= len(colWidths) {
				break
			}
			if colIdx > 0 {
				if err := d.DrawLine(colX, y, colX, y-tableHeight, border, borderWidth); err != nil {
					return y, err
				}
			}
			if cell != "" {
				cellWidth := colWidths[colIdx]
				textWidth := d.fonts.Measure(cell, typeface.Regular, fontSize)
				textX := colX + (cellWidth-textWidth)/2
				textY := rowY - rowHeight + (rowHeight-fontSize)/2
				if err := d.DrawText(cell, textX, textY, fontSize, typeface.Regular, border); err != nil {
					return y, err
				}
			}
			colX += colWidths[colIdx]
		}

		if rowIdx < len(rows)-1 {
			if err := d.DrawLine(x, rowY-rowHeight, x+tableWidth, rowY-rowHeight, border, borderWidth); err != nil {
				return y, err
			}
		}
	}
	return y - tableHeight, nil
}

// Finalize renders every page, in creation order, into a single PDF and
// returns its bytes. The document cannot be used afterwards.
func (d *Document) Finalize() ([]byte, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	if len(d.pages) == 0 {
		return nil, ErrNoActivePage
	}
	d.finalized = true

	var buf bytes.Buffer
	writer := pdf.New(&buf, PageWidth*ptToMm, PageHeight*ptToMm, nil)
	writer.SetInfo(d.Title, "", "", "", "")
	for i, p := range d.pages {
		if i > 0 {
			writer.NewPage(PageWidth*ptToMm, PageHeight*ptToMm)
		}
		p.canvas.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "pagedoc: write pdf")
	}
	return buf.Bytes(), nil
}

func (d *Document) active() (*page, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	if len(d.pages) == 0 {
		return nil, ErrNoActivePage
	}
	return d.pages[len(d.pages)-1], nil
}
