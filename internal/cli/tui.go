package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/netfog/pkg/graph"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/svgdoc"
	"github.com/matzehuels/netfog/pkg/viewport"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listGrabbedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// defaultStep is how far one arrow key press moves, in screen pixels of
// the unzoomed canvas.
const defaultStep = 10.0

// =============================================================================
// exploreModel - keyboard editor for a document
// =============================================================================

// exploreModel drives a viewport.Controller from the keyboard. Arrow keys
// pan the view, or move the selected node while it is grabbed; every
// change goes through the same controller the live editor uses.
type exploreModel struct {
	name   string
	doc    *svgdoc.Document
	ctrl   *viewport.Controller
	ids    []graph.NodeID
	labels map[graph.NodeID]string

	cursor int
	offset int
	height int
	grab   bool
	step   float64

	output string
	status string
	saved  bool
	err    error
}

func newExploreModel(doc *svgdoc.Document, name, output string, step float64) exploreModel {
	if step <= 0 {
		step = defaultStep
	}
	return exploreModel{
		name:   name,
		doc:    doc,
		ctrl:   newController(doc),
		ids:    doc.NodeIDs(),
		labels: doc.Extract().Labels,
		height: 15,
		step:   step,
		output: output,
	}
}

func newController(doc *svgdoc.Document) *viewport.Controller {
	var opts []viewport.Option
	if v, ok := doc.ViewBox(); ok {
		opts = append(opts, viewport.WithViewBox(v))
	}
	return viewport.New(doc, opts...)
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-9, 5)
		m.scroll()
	}
	return m, nil
}

func (m exploreModel) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if !m.grab {
			return m, tea.Quit
		}
		m.grab = false
	case "tab", "n":
		m.selectNode(1)
	case "shift+tab", "p":
		m.selectNode(-1)
	case " ", "enter":
		m.grab = !m.grab && len(m.ids) > 0
	case "left", "h":
		m.nudge(-1, 0)
	case "right", "l":
		m.nudge(1, 0)
	case "up", "k":
		m.nudge(0, -1)
	case "down", "j":
		m.nudge(0, 1)
	case "+", "=":
		m.zoom(-1)
	case "-":
		m.zoom(1)
	case "0":
		m.ctrl = viewport.New(m.doc)
		m.doc.SetViewBox(m.ctrl.ViewBox())
	case "w":
		m.save()
	}
	return m, nil
}

func (m *exploreModel) selectNode(delta int) {
	if len(m.ids) == 0 {
		return
	}
	m.grab = false
	m.cursor = (m.cursor + delta + len(m.ids)) % len(m.ids)
	m.scroll()
}

func (m *exploreModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// nudge emulates a one-step pointer drag: on the grabbed node when
// grabbing, on the background otherwise. Panning moves the pointer
// against the key so the view travels in the key's direction.
func (m *exploreModel) nudge(dx, dy float64) {
	p := viewport.Pointer{}
	if m.grab {
		p.Node, p.OnNode = m.ids[m.cursor], true
	} else {
		dx, dy = -dx, -dy
	}
	m.ctrl.PointerDown(p)
	m.ctrl.PointerMove(dx*m.step, dy*m.step)
	m.ctrl.PointerUp()
	m.doc.SetViewBox(m.ctrl.ViewBox())
}

// zoom wheels around the centre of the surface.
func (m *exploreModel) zoom(deltaY float64) {
	s := m.ctrl.Surface()
	m.ctrl.Wheel(s.Left+s.Width/2, s.Top+s.Height/2, deltaY)
	m.doc.SetViewBox(m.ctrl.ViewBox())
}

func (m *exploreModel) save() {
	if m.output == "" {
		m.status = "no output file (run with -o)"
		return
	}
	if err := saveDocument(m.doc, m.output); err != nil {
		m.err = err
		m.status = err.Error()
		return
	}
	m.saved, m.err = true, nil
	m.status = "saved " + m.output
}

// saveDocument writes doc to path: Pajek or JSON for .net and .json,
// the SVG document otherwise.
func saveDocument(doc *svgdoc.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format, err := netio.FormatFromPath(path); err == nil {
		return netio.Write(f, doc.Extract().Network(), format)
	}
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	view := m.ctrl.ViewBox()
	mode := "pan"
	if m.grab {
		mode = "move"
	}

	b.WriteString(StyleTitle.Render("netfog explore") + " " + listDimStyle.Render(m.name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("viewBox %s · zoom %.0f%% · %s",
		view, viewport.DefaultViewBox.Width/view.Width*100, mode)))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.ids))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		p, _ := m.doc.Placement(id)
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, id.String(), m.labels[id], fmt.Sprintf("%.1f", p.CX), fmt.Sprintf("%.1f", p.CY)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case m.offset+row != m.cursor:
				return listNormalStyle
			case m.grab:
				return listGrabbedStyle
			default:
				return listSelectedStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.ids)), len(m.ids))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab select  space grab  ←↑↓→ pan/move  +/- zoom  0 reset  w save  q quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.status))
	}
	return b.String()
}
