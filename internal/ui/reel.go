package ui

import (
	"fmt"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/squadtools/squad-roulette/internal/model"
	"github.com/squadtools/squad-roulette/internal/spin"
)

// overscanRows pads the virtual scroll extent beyond the guaranteed
// TargetScrollRows so the viewport stays full near the stop point
const overscanRows = 10

// rowPoolSize is the number of row widgets kept alive and repositioned each
// frame; enough to cover the viewport plus one partial row on each edge
const rowPoolSize = int(ReelHeight/RowHeight) + 2

// Repetitions returns how many times a listing of length n is virtually
// repeated so the reel never runs out of rows before the longest possible
// scroll settles.
func Repetitions(n int) int {
	if n <= 0 {
		return 0
	}
	needed := spin.TargetScrollRows + overscanRows
	return (needed+n-1)/n + 2
}

// RowPlacement positions one virtual row inside the reel viewport
type RowPlacement struct {
	Server     model.ServerRecord
	VirtualRow int
	Y          float32 // top edge, viewport coordinates
}

// VisibleRows windows the virtually repeated listing for the current scroll
// offset: the virtual row under the marker sits centered on the viewport
// midline, and rows partially inside the viewport are included.
func VisibleRows(servers []model.ServerRecord, offset float64, viewportH float32) []RowPlacement {
	if len(servers) == 0 || viewportH <= 0 {
		return nil
	}

	center := float64(viewportH) / 2
	maxRow := Repetitions(len(servers))*len(servers) - 1

	// Smallest virtual row whose bottom edge is below the viewport top.
	first := int(math.Floor((offset-center-spin.RowHeight/2)/spin.RowHeight)) + 1
	if first < 0 {
		first = 0
	}

	rows := make([]RowPlacement, 0, rowPoolSize)
	for j := first; j <= maxRow; j++ {
		y := float64(j)*spin.RowHeight - offset + center - spin.RowHeight/2
		if y >= float64(viewportH) {
			break
		}
		rows = append(rows, RowPlacement{
			Server:     servers[j%len(servers)],
			VirtualRow: j,
			Y:          float32(y),
		})
	}
	return rows
}

// ReelView renders the scrolling server reel with its center marker
type ReelView struct {
	widget.BaseWidget

	mu      sync.Mutex
	servers []model.ServerRecord
	offset  float64
}

// NewReelView creates an empty reel viewport
func NewReelView() *ReelView {
	view := &ReelView{}
	view.ExtendBaseWidget(view)
	return view
}

// SetState replaces the rendered listing and scroll offset. Must be called
// on the UI thread.
func (rv *ReelView) SetState(servers []model.ServerRecord, offset float64) {
	rv.mu.Lock()
	changed := rv.offset != offset || len(rv.servers) != len(servers) ||
		(len(servers) > 0 && &rv.servers[0] != &servers[0])
	rv.servers = servers
	rv.offset = offset
	rv.mu.Unlock()

	if changed {
		rv.Refresh()
	}
}

func (rv *ReelView) snapshot() ([]model.ServerRecord, float64) {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	return rv.servers, rv.offset
}

// CreateRenderer builds the canvas primitives for the reel
func (rv *ReelView) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(colorReelBackground)

	markerLine := canvas.NewLine(colorMarker)
	markerLine.StrokeWidth = 3

	markerGlyph := canvas.NewText(IconMarker, colorMarker)
	markerGlyph.TextSize = 24

	emptyLabel := canvas.NewText(TextEmptyListing, colorFaded)
	emptyLabel.Alignment = fyne.TextAlignCenter
	emptyLabel.Hide()

	rows := make([]*reelRow, rowPoolSize)
	objects := []fyne.CanvasObject{background}
	for i := range rows {
		rows[i] = newReelRow()
		objects = append(objects, rows[i].objects()...)
	}
	objects = append(objects, markerLine, markerGlyph, emptyLabel)

	return &reelRenderer{
		view:        rv,
		background:  background,
		markerLine:  markerLine,
		markerGlyph: markerGlyph,
		emptyLabel:  emptyLabel,
		rows:        rows,
		objs:        objects,
	}
}

// reelRow is one pooled row of canvas primitives, repositioned every frame
// instead of being rebuilt.
type reelRow struct {
	box     *canvas.Rectangle
	name    *canvas.Text
	details *canvas.Text
}

func newReelRow() *reelRow {
	box := canvas.NewRectangle(colorRowBackground)
	box.StrokeColor = colorRowBorder
	box.StrokeWidth = 1
	box.CornerRadius = 4

	name := canvas.NewText("", colorServerName)
	name.TextSize = 18
	name.TextStyle = fyne.TextStyle{Bold: true}
	name.Alignment = fyne.TextAlignCenter

	details := canvas.NewText("", colorServerDetails)
	details.TextSize = 13
	details.Alignment = fyne.TextAlignCenter

	row := &reelRow{box: box, name: name, details: details}
	row.hide()
	return row
}

func (rr *reelRow) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{rr.box, rr.name, rr.details}
}

func (rr *reelRow) update(server model.ServerRecord) {
	rr.name.Text = server.Name
	rr.details.Text = fmt.Sprintf("%s%s%s %s", server.Map, MiddleDotSeparator, server.PlayersLabel(), server.Country)
}

func (rr *reelRow) place(y, width float32) {
	rr.box.Move(fyne.NewPos(RowInnerMargin, y+RowInnerMargin/2))
	rr.box.Resize(fyne.NewSize(width-2*RowInnerMargin, RowHeight-RowInnerMargin))

	rr.name.Move(fyne.NewPos(0, y+14))
	rr.name.Resize(fyne.NewSize(width, 26))

	rr.details.Move(fyne.NewPos(0, y+RowHeight-34))
	rr.details.Resize(fyne.NewSize(width, 20))
}

func (rr *reelRow) show() {
	rr.box.Show()
	rr.name.Show()
	rr.details.Show()
}

func (rr *reelRow) hide() {
	rr.box.Hide()
	rr.name.Hide()
	rr.details.Hide()
}

// reelRenderer lays out the pooled rows against the current scroll offset
type reelRenderer struct {
	view *ReelView
	size fyne.Size

	background  *canvas.Rectangle
	markerLine  *canvas.Line
	markerGlyph *canvas.Text
	emptyLabel  *canvas.Text
	rows        []*reelRow
	objs        []fyne.CanvasObject
}

func (r *reelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(ReelMinWidth, ReelHeight)
}

func (r *reelRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)

	centerY := size.Height / 2
	r.markerLine.Position1 = fyne.NewPos(0, centerY)
	r.markerLine.Position2 = fyne.NewPos(size.Width, centerY)

	glyphSize := r.markerGlyph.MinSize()
	r.markerGlyph.Move(fyne.NewPos(size.Width-MarkerInset-glyphSize.Width, centerY-glyphSize.Height/2))

	r.layoutRows()
}

func (r *reelRenderer) Refresh() {
	r.layoutRows()
	canvas.Refresh(r.view)
}

func (r *reelRenderer) layoutRows() {
	servers, offset := r.view.snapshot()

	if len(servers) == 0 {
		labelSize := r.emptyLabel.MinSize()
		r.emptyLabel.Move(fyne.NewPos((r.size.Width-labelSize.Width)/2, (r.size.Height-labelSize.Height)/2))
		r.emptyLabel.Show()
	} else {
		r.emptyLabel.Hide()
	}

	placements := VisibleRows(servers, offset, r.size.Height)
	for i, row := range r.rows {
		if i >= len(placements) {
			row.hide()
			continue
		}
		placement := placements[i]
		row.update(placement.Server)
		row.place(placement.Y, r.size.Width)
		row.show()
	}
}

func (r *reelRenderer) Objects() []fyne.CanvasObject {
	return r.objs
}

func (r *reelRenderer) Destroy() {}
