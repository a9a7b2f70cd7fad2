package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/rivo/tview"

	"github.com/dimonomid/cellterm/markup"
)

// Presenter turns the cells of a screen into terminal output.
type Presenter interface {
	Present(s *Screen) error
}

// ANSIPresenter presents a screen with its own Print.
type ANSIPresenter struct{}

func (ANSIPresenter) Present(s *Screen) error {
	return errors.Trace(s.Print())
}

// TcellPresenter draws the cells onto a tcell screen instead of writing
// escape sequences directly. Every rewritten cell is translated into tview
// color tags and drawn with tview.Print, so the colors match the ones Print
// would produce.
type TcellPresenter struct {
	screen tcell.Screen
}

func NewTcellPresenter(screen tcell.Screen) *TcellPresenter {
	return &TcellPresenter{screen: screen}
}

func (p *TcellPresenter) Present(s *Screen) error {
	if !s.initialized() {
		return errors.NotValidf("presenting uninitialized screen")
	}

	for y := 0; y < s.params.Height; y++ {
		for x := 0; x < s.params.Width; x++ {
			text := markup.RewriteString(s.cell(x, y).String())
			tview.Print(p.screen, tview.TranslateANSI(text), x, y, 1, tview.AlignLeft, tcell.ColorDefault)
		}
	}

	p.screen.Show()

	return nil
}
