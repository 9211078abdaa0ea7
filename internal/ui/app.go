package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hdrbar/internal/dataset"
	"hdrbar/internal/events"
	"hdrbar/internal/header"
	"hdrbar/internal/logging"
	"hdrbar/internal/render"
	"hdrbar/internal/state"
	"hdrbar/pkg/types"
)

const (
	// horizontal scroll step of the arrow keys and the wheel
	scrollStep = 4
	// rows taken by the header and the status bar
	chromeRows = 2
)

// Options configures the header application
type Options struct {
	Table  *dataset.Table
	Theme  render.Theme
	Header header.Options

	MinWidth    int
	MaxWidth    int // 0 means unlimited
	Pinned      []int
	DoubleClick time.Duration
	HistorySize int

	// Layouts persists the layout; nil disables persistence.
	Layouts *state.Manager
	// Snapshot receives the layout after every update; may be nil.
	Snapshot *Snapshot
	Logger   *slog.Logger
}

// Model is the terminal application: a header over a scrollable table body
// and a status bar
type Model struct {
	opts Options
	ctx  context.Context

	table      *dataset.Table
	columns    *Columns
	host       *screenHost
	ctrl       *header.Controller
	dispatcher *events.Dispatcher
	mouse      *mouseTranslator
	keys       keyMap
	help       help.Model
	styles     *render.Styles
	canvas     *render.Canvas
	body       viewport.Model
	inspector  *inspector

	width         int
	height        int
	showInspector bool
	headerView    string
	rendered      types.Layout
	// width of the column being resized when the resize began
	resizeOrigin int

	status string
	// statusOK marks status as the result of a save
	statusOK bool
	err      error
	logger   *slog.Logger
}

// New creates the application model and restores the saved layout
func New(opts Options) (*Model, error) {
	if opts.Table == nil {
		opts.Table = dataset.Demo()
	}
	if len(opts.Table.Columns) == 0 {
		return nil, errors.New("table has no columns")
	}
	if opts.Theme.Name == "" {
		opts.Theme = render.DarkTheme
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = 400 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	styles := render.NewStyles(opts.Theme)
	m := &Model{
		opts:         opts,
		ctx:          logging.PackageCtx("ui"),
		table:        opts.Table,
		columns:      NewColumns(opts.Table, opts.MinWidth),
		host:         newScreenHost(),
		mouse:        newMouseTranslator(opts.DoubleClick),
		keys:         defaultKeyMap(),
		help:         help.New(),
		styles:       styles,
		canvas:       render.NewCanvas(0, 1, styles),
		body:         viewport.New(0, 0),
		inspector:    newInspector(chromaStyle(opts.Theme)),
		resizeOrigin: header.None,
		logger:       logger,
	}

	m.dispatcher = events.NewDispatcher(m, events.DispatcherConfig{
		HistorySize: opts.HistorySize,
		Logger:      logger,
	})

	hopts := opts.Header
	hopts.Logger = logger
	m.ctrl = header.NewController(m.columns, m.host, m.dispatcher, hopts)
	m.ctrl.SetColumnCount(m.columns.Len())

	m.dispatcher.Use(events.Logging(logger))
	if len(opts.Pinned) > 0 {
		m.dispatcher.Use(events.PinnedColumns(m.ctrl.ColumnsOrder, opts.Pinned...))
	}
	if opts.MaxWidth > 0 {
		m.dispatcher.Use(events.MaxWidth(opts.MaxWidth))
	}

	if opts.Layouts != nil {
		layout, ok, err := opts.Layouts.Restore()
		if err != nil {
			logger.WarnContext(m.ctx, "failed to restore layout", "error", err)
			m.err = err
		} else if ok {
			m.applyLayout(layout)
		}
	}

	m.rendered = m.Layout()
	m.refreshBody()
	m.publish()
	return m, nil
}

func chromaStyle(theme render.Theme) string {
	if theme.Name == render.LightTheme.Name {
		return "github"
	}
	return "monokai"
}

// Dispatcher returns the notification dispatcher, for subscribers
func (m *Model) Dispatcher() *events.Dispatcher {
	return m.dispatcher
}

// Controller returns the header controller
func (m *Model) Controller() *header.Controller {
	return m.ctrl
}

// Layout returns the current layout
func (m *Model) Layout() types.Layout {
	name := ""
	if m.opts.Layouts != nil {
		name = m.opts.Layouts.Name()
	}
	return types.Layout{
		Name:         name,
		Order:        m.ctrl.ColumnsOrder(),
		Columns:      m.columns.Layouts(),
		Sort:         m.columns.Sort(),
		ScrollOffset: m.ctrl.ScrollOffset(),
	}
}

// applyLayout restores a saved layout. Parts that no longer fit the table
// are skipped.
func (m *Model) applyLayout(layout types.Layout) {
	if !m.columns.ApplyLayouts(layout.Columns) {
		m.logger.WarnContext(m.ctx, "saved columns do not match the table", "layout", layout.Name)
		return
	}
	if err := m.ctrl.SetColumnsOrder(layout.Order); err != nil {
		m.logger.WarnContext(m.ctx, "ignoring saved order", "order", layout.Order, "error", err)
	}
	if s := layout.Sort; s.Column >= 0 && s.Column < m.columns.Len() {
		m.columns.SetSort(s)
		m.table.SortBy(s.Column, s.Ascending)
	}
	m.scrollTo(layout.ScrollOffset)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case remoteMsg:
		err := msg.apply(m)
		m.sync()
		msg.reply <- err
		return m, nil
	}

	m.sync()
	return m, cmd
}

// sync brings the body, the saved layout and the snapshot up to date
// with the header
func (m *Model) sync() {
	layout := m.Layout()
	if !layout.Equal(m.rendered) {
		m.rendered = layout
		m.refreshBody()
		m.publish()
	}
	if !m.ctrl.IsDragging() {
		m.persist()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	// the terminal takes the pointer back on resize
	if m.host.loseCapture() {
		m.ctrl.CaptureLost()
		m.mouse.reset()
	}

	m.host.setSize(width)
	m.canvas.Resize(width, 1)
	m.body.Width = width
	m.body.Height = max(height-chromeRows, 0)
	m.inspector.setSize(max(width-4, 0), max(height-chromeRows-2, 0))
	m.help.Width = width
	m.scrollBy(0)
	m.refreshBody()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.body.LineUp(1)
			return
		case tea.MouseButtonWheelDown:
			m.body.LineDown(1)
			return
		case tea.MouseButtonWheelLeft:
			m.scrollBy(scrollStep)
			return
		case tea.MouseButtonWheelRight:
			m.scrollBy(-scrollStep)
			return
		}
	}

	ev, ok := m.mouse.translate(msg, m.host.captured)
	if !ok || !m.host.enabled {
		return
	}
	if ev.Type == header.PointerDown {
		m.status = ""
		m.statusOK = false
	}
	m.ctrl.HandleInput(ev)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persist()
		return tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.HandleInput(header.InputEvent{Type: header.KeyDown, Key: header.KeyEscape}) {
			return nil
		}
		if m.showInspector {
			m.toggleInspector()
		}

	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollBy(scrollStep)

	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollBy(-scrollStep)

	case key.Matches(msg, m.keys.Up):
		m.activeView().LineUp(1)

	case key.Matches(msg, m.keys.Down):
		m.activeView().LineDown(1)

	case key.Matches(msg, m.keys.PageUp):
		m.activeView().ViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.activeView().ViewDown()

	case key.Matches(msg, m.keys.Inspector):
		m.toggleInspector()

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.ShowAll):
		m.showAll()

	default:
		m.ctrl.HandleInput(header.InputEvent{Type: header.KeyDown, Key: header.KeyOther})
	}
	return nil
}

func (m *Model) activeView() *viewport.Model {
	if m.showInspector {
		return &m.inspector.view
	}
	return &m.body
}

// toggleInspector shows or hides the layout inspector. The header is
// disabled while the inspector is open.
func (m *Model) toggleInspector() {
	if !m.showInspector {
		if err := m.inspector.show(m.Layout()); err != nil {
			m.err = err
			return
		}
	}
	m.showInspector = !m.showInspector
	m.host.setEnabled(!m.showInspector)
}

func (m *Model) showAll() {
	for i := 0; i < m.columns.Len(); i++ {
		m.columns.SetHidden(i, false)
	}
	m.host.Refresh()
}

// scrollBy scrolls the header by dx cells. Positive values reveal columns
// on the left.
func (m *Model) scrollBy(dx int) {
	m.scrollTo(m.ctrl.ScrollOffset() + dx)
}

// scrollTo sets the scroll offset, keeping the columns on screen
func (m *Model) scrollTo(offset int) {
	lowest := min(m.host.width-m.ctrl.BestWidth(), 0)
	offset = max(min(offset, 0), lowest)
	if offset != m.ctrl.ScrollOffset() {
		m.ctrl.SetScrollOffset(offset)
	}
}

// HandleHeaderEvent is the final handler of the dispatcher. It applies the
// header's notifications to the columns and the table.
func (m *Model) HandleHeaderEvent(ev header.Event) header.Verdict {
	switch ev.Kind {
	case header.BeginResize:
		m.resizeOrigin = m.columns.Column(ev.Column).Width
		return header.Accept

	case header.Resizing:
		m.setWidth(ev.Column, ev.Width)
		return header.Accept

	case header.EndResize:
		m.setWidth(ev.Column, ev.Width)
		m.resizeOrigin = header.None
		return header.Accept

	case header.DraggingCancelled:
		if m.resizeOrigin != header.None {
			m.setWidth(ev.Column, m.resizeOrigin)
			m.resizeOrigin = header.None
		}
		return header.Accept

	case header.BeginReorder, header.EndReorder:
		return header.Accept

	case header.Click:
		s := m.columns.ToggleSort(ev.Column)
		m.table.SortBy(s.Column, s.Ascending)
		m.host.Refresh()
		return header.Accept

	case header.SeparatorDoubleClick:
		width := m.table.ContentWidth(ev.Column) + cellChrome
		if m.columns.Column(ev.Column).SortKey {
			width += sortChrome
		}
		m.setWidth(ev.Column, width)
		return header.Accept

	case header.MiddleClick:
		m.setWidth(ev.Column, m.columns.InitialWidth(ev.Column))
		return header.Accept

	case header.RightClick:
		if m.columns.ShownCount() > 1 {
			m.columns.SetHidden(ev.Column, true)
			m.ctrl.UpdateColumn(ev.Column)
		}
		return header.Accept
	}

	return header.Unhandled
}

func (m *Model) setWidth(col, width int) {
	m.columns.SetWidth(col, width)
	m.ctrl.UpdateColumn(col)
}

func (m *Model) persist() {
	if m.opts.Layouts == nil {
		return
	}
	if _, err := m.opts.Layouts.Save(m.Layout()); err != nil {
		m.logger.ErrorContext(m.ctx, "failed to save layout", "error", err)
		m.err = err
		return
	}
	m.err = nil
}

func (m *Model) save() {
	if m.opts.Layouts == nil {
		m.status = "layout persistence is disabled"
		m.statusOK = false
		return
	}
	saved, err := m.opts.Layouts.Save(m.Layout())
	m.statusOK = err == nil
	switch {
	case err != nil:
		m.logger.ErrorContext(m.ctx, "failed to save layout", "error", err)
		m.err = err
	case saved:
		m.err = nil
		m.status = fmt.Sprintf("layout %q saved", m.opts.Layouts.Name())
	default:
		m.err = nil
		m.status = "layout unchanged"
	}
}

func (m *Model) publish() {
	if m.opts.Snapshot != nil {
		m.opts.Snapshot.Set(m.Layout())
	}
}

func (m *Model) refreshBody() {
	lines := m.bodyLines(true)
	m.body.SetContent(strings.Join(lines, "\n"))
}

// bodyLines lays out the table rows under the header columns, shifted by
// the scroll offset and clipped to the screen width
func (m *Model) bodyLines(styled bool) []string {
	order := m.ctrl.ColumnsOrder()
	lines := make([]string, 0, len(m.table.Rows))

	for r, row := range m.table.Rows {
		var b strings.Builder
		for _, idx := range order {
			col := m.columns.Column(idx)
			if !col.Shown() {
				continue
			}
			b.WriteString(render.AlignCell(row[idx], col.Width-1, col.Align))
			b.WriteRune(render.SeparatorGlyph)
		}

		line := clip(b.String(), -m.ctrl.ScrollOffset(), m.width)
		if styled {
			style := m.styles.Body
			if r%2 == 1 {
				style = m.styles.BodyAlt
			}
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

// clip returns width cells of s starting at cell from, padded with
// spaces. A negative from pads on the left. A zero width leaves s
// unclipped.
func clip(s string, from, width int) string {
	runes := []rune(s)
	if from < 0 {
		runes = append([]rune(strings.Repeat(" ", -from)), runes...)
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}
	runes = runes[from:]
	if width <= 0 {
		return string(runes)
	}
	if len(runes) > width {
		return string(runes[:width])
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	main := m.body.View()
	if m.showInspector {
		main = m.styles.Inspector.Render(m.inspector.view.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), main, m.renderStatus())
}

func (m *Model) renderHeader() string {
	if m.host.takeDirty() || m.host.overlay != nil || m.headerView == "" {
		m.ctrl.Paint(m.canvas)
		m.canvas.ApplyOverlay(m.host.overlay)
		m.headerView = m.canvas.Render()
	}
	return m.headerView
}

func (m *Model) renderStatus() string {
	if m.err != nil {
		return m.styles.StatusError.Width(m.width).Render(m.err.Error())
	}

	parts := []string{}
	if m.status != "" {
		parts = append(parts, m.status)
	} else if rec, ok := m.dispatcher.History().Last(); ok {
		parts = append(parts, describe(rec))
	}
	switch {
	case m.ctrl.IsResizing():
		parts = append(parts, "resizing")
	case m.ctrl.IsReordering():
		parts = append(parts, "moving")
	case m.host.cursor == header.CursorSizeWE:
		parts = append(parts, "drag to resize")
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.shortHelp()))

	style := m.styles.Status
	if m.statusOK {
		style = m.styles.StatusOK
	}
	return style.Width(m.width).MaxHeight(1).Render(strings.Join(parts, "  "))
}

// describe formats a notification record for the status bar
func describe(rec events.Record) string {
	ev := rec.Event
	text := fmt.Sprintf("%s #%d", ev.Kind, ev.Column)
	switch ev.Kind {
	case header.BeginResize, header.Resizing, header.EndResize:
		text += fmt.Sprintf(" w=%d", ev.Width)
	case header.EndReorder:
		text += fmt.Sprintf(" to %d", ev.NewOrder)
	}
	if rec.Verdict == header.Veto {
		text += " (vetoed)"
	}
	return text
}

// Render lays out the header and the first rows of the table without a
// terminal, for printing. Colours are left out when plain is set.
func Render(opts Options, width, rows int, plain bool) (string, error) {
	m, err := New(opts)
	if err != nil {
		return "", err
	}
	m.resize(width, rows+chromeRows)

	m.ctrl.Paint(m.canvas)
	head := m.canvas.Render()
	if plain {
		head = m.canvas.String()
	}

	lines := m.bodyLines(!plain)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(append([]string{head}, lines...), "\n"), nil
}

var _ tea.Model = (*Model)(nil)
