package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/maskfield/internal/caret"
	"github.com/dshills/maskfield/internal/field"
	"github.com/dshills/maskfield/internal/form"
	"github.com/dshills/maskfield/internal/logging"
)

const (
	labelColumn = 1
	boxPadding  = 2
	firstRow    = 2
)

var (
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleLabel   = tcell.StyleDefault
	styleFocused = tcell.StyleDefault.Reverse(true)
	styleBox     = tcell.StyleDefault.Underline(true)
	styleStatus  = tcell.StyleDefault.Dim(true)
)

// SubmitFunc receives the submitted document or the submission error.
type SubmitFunc func(doc []byte, err error)

// App renders a form on a tcell screen and routes key events to the focused
// field. All field mutation happens on the goroutine running Run.
type App struct {
	screen   tcell.Screen
	form     *form.Form
	boxes    []*TextBox
	focus    int
	status   string
	onSubmit SubmitFunc
	logger   *logging.Logger

	pasting bool
	paste   []rune
}

// AppOption configures an App.
type AppOption func(*App)

// WithAppLogger sets the logger.
func WithAppLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// WithSubmit sets the function called when the user submits the form.
func WithSubmit(fn SubmitFunc) AppOption {
	return func(a *App) {
		a.onSubmit = fn
	}
}

// NewApp creates an app showing f on screen. The screen must already be
// initialized.
func NewApp(screen tcell.Screen, f *form.Form, opts ...AppOption) *App {
	a := &App{
		screen: screen,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("tui")
	a.SetForm(f)
	return a
}

// SetForm replaces the displayed form. Values and focus carry over to
// fields with the same name.
func (a *App) SetForm(f *form.Form) {
	focused := ""
	if b := a.Focused(); b != nil {
		focused = b.Field().Name()
	}
	previous := make(map[string]string, len(a.boxes))
	for _, b := range a.boxes {
		previous[b.Field().Name()] = b.Field().Raw()
	}

	a.form = f
	a.boxes = nil
	a.focus = 0
	for i, e := range f.Entries() {
		if raw, ok := previous[e.Field.Name()]; ok {
			e.Field.SetRaw(raw)
		}
		a.boxes = append(a.boxes, NewTextBox(e.Field))
		if e.Field.Name() == focused {
			a.focus = i
		}
	}
	f.OnChange(func(ev field.ChangeEvent) {
		a.status = fmt.Sprintf("%s = %q", ev.Name, ev.Raw)
	})
}

// Form returns the displayed form.
func (a *App) Form() *form.Form {
	return a.form
}

// Boxes returns the text boxes in display order.
func (a *App) Boxes() []*TextBox {
	return a.boxes
}

// Focused returns the focused text box, or nil when the form is empty.
func (a *App) Focused() *TextBox {
	if a.focus < 0 || a.focus >= len(a.boxes) {
		return nil
	}
	return a.boxes[a.focus]
}

// Status returns the status line text.
func (a *App) Status() string {
	return a.status
}

// Run draws the form and processes events until the user quits or the
// screen is finalized.
func (a *App) Run() error {
	a.screen.EnablePaste()
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := a.HandleEvent(ev); quit {
			return nil
		}
	}
}

// HandleEvent processes one event and reports whether the app should quit.
// An EventInterrupt carrying a *form.Form swaps the displayed form and
// closes the replaced one.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(e)

	case *tcell.EventPaste:
		if e.Start() {
			a.pasting = true
			a.paste = a.paste[:0]
			return false
		}
		a.pasting = false
		if b := a.Focused(); b != nil && len(a.paste) > 0 {
			a.report(b.Insert(string(a.paste)))
		}
		a.paste = a.paste[:0]

	case *tcell.EventInterrupt:
		if f, ok := e.Data().(*form.Form); ok {
			old := a.form
			a.SetForm(f)
			old.Close()
			a.status = "configuration reloaded"
			a.logger.Info("form replaced after reload")
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *App) handleKey(e *tcell.EventKey) bool {
	if a.pasting {
		if e.Key() == tcell.KeyRune {
			a.paste = append(a.paste, e.Rune())
		}
		return false
	}

	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyDown:
		a.moveFocus(1)
		return false
	case tcell.KeyBacktab, tcell.KeyUp:
		a.moveFocus(-1)
		return false
	case tcell.KeyEnter:
		a.submit()
		return false
	}

	b := a.Focused()
	if b == nil {
		return false
	}
	switch e.Key() {
	case tcell.KeyRune:
		a.report(b.Insert(string(e.Rune())))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.report(b.Backspace())
	case tcell.KeyDelete:
		a.report(b.Delete())
	case tcell.KeyLeft:
		b.MoveLeft()
	case tcell.KeyRight:
		b.MoveRight()
	case tcell.KeyHome, tcell.KeyCtrlA:
		b.Home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		b.End()
	case tcell.KeyCtrlU:
		a.report(b.Clear())
	}
	return false
}

func (a *App) moveFocus(delta int) {
	n := len(a.boxes)
	if n == 0 {
		return
	}
	a.focus = ((a.focus+delta)%n + n) % n
}

func (a *App) report(res field.Result) {
	if res.Rejected {
		a.status = "input rejected"
		_ = a.screen.Beep()
	}
}

func (a *App) submit() {
	doc, err := a.form.Submit()
	if err != nil {
		a.status = "submit: " + err.Error()
		a.logger.Warn("submit failed: %v", err)
	} else {
		a.status = "submitted " + string(doc)
		a.logger.Info("form submitted")
	}
	if a.onSubmit != nil {
		a.onSubmit(doc, err)
	}
}

// Draw renders the form and places the terminal cursor in the focused box.
func (a *App) Draw() {
	a.screen.Clear()
	drawText(a.screen, labelColumn, 0, "maskfield  Tab next  Enter submit  Esc quit", styleTitle)

	boxColumn := a.boxColumn()
	for i, b := range a.boxes {
		y := firstRow + i
		style := styleLabel
		if i == a.focus {
			style = styleFocused
		}
		drawText(a.screen, labelColumn, y, b.Field().Name(), style)
		drawText(a.screen, boxColumn, y, b.DisplayText(), styleBox)
	}

	drawText(a.screen, labelColumn, firstRow+len(a.boxes)+1, a.status, styleStatus)

	if b := a.Focused(); b != nil {
		x, y := a.CursorPosition()
		a.screen.ShowCursor(x, y)
	} else {
		a.screen.HideCursor()
	}
	a.screen.Show()
}

// CursorPosition returns the screen cell of the focused box's cursor.
func (a *App) CursorPosition() (int, int) {
	b := a.Focused()
	if b == nil {
		return 0, 0
	}
	x := a.boxColumn() + uniseg.StringWidth(caret.Lead(b.DisplayText(), b.Cursor()))
	return x, firstRow + a.focus
}

func (a *App) boxColumn() int {
	labelWidth := 0
	for _, b := range a.boxes {
		if w := uniseg.StringWidth(b.Field().Name()); w > labelWidth {
			labelWidth = w
		}
	}
	return labelColumn + labelWidth + boxPadding
}

// drawText writes s starting at (x, y), advancing by grapheme cluster width.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
}
