package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/wavloop"
	"github.com/go-audio/audio"
)

var levels = []rune("▁▂▃▄▅▆▇█")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	markerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// savedMsg reports the outcome of a save triggered from the editor. loop is
// the loop point the written bytes carry.
type savedMsg struct {
	loop uint32
	err  error
}

// model is the loop point editor state.
type model struct {
	path  string
	file  *wavloop.File
	pcm   *audio.IntBuffer
	width int

	dirty  bool
	status string
	err    error
}

func newModel(path string, f *wavloop.File) (model, error) {
	pcm, err := f.PCMBuffer()
	if err != nil {
		return model{}, err
	}

	return model{path: path, file: f, pcm: pcm}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case savedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.status = ""
			break
		}

		if msg.loop != m.file.LoopPoint() {
			m.status = fmt.Sprintf("saved loop point %d, later changes are not saved yet", msg.loop)
			break
		}

		m.dirty = false
		m.status = "saved, re-import the file in your sampler to pick up the new loop"
	}

	return m, nil
}

// step is one percent of the payload, at least one frame.
func (m model) step() int64 {
	return max(int64(m.file.SampleCount())/100, 1)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	loop := int64(m.file.LoopPoint())

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		cmd, err := m.save()
		if err != nil {
			m.err = err
			m.status = ""

			return m, nil
		}

		m.err = nil
		m.status = "saving..."

		return m, cmd
	case "left":
		m.moveTo(loop - 1)
	case "right":
		m.moveTo(loop + 1)
	case "shift+left", "pgdown":
		m.moveTo(loop - m.step())
	case "shift+right", "pgup":
		m.moveTo(loop + m.step())
	case "home":
		m.moveTo(0)
	case "end":
		m.moveTo(int64(m.file.SampleCount()))
	}

	return m, nil
}

func (m *model) moveTo(v int64) {
	next := m.file.ClampLoopPoint(v)
	if next == m.file.LoopPoint() {
		return
	}

	m.file.SetLoopPoint(next)
	m.dirty = true
	m.status = ""
	m.err = nil
}

// save encodes the file on the calling goroutine; the returned command only
// writes the snapshot, so it never touches the File.
func (m model) save() (tea.Cmd, error) {
	data, err := m.file.Bytes()
	if err != nil {
		return nil, err
	}

	path, loop := m.path, m.file.LoopPoint()

	return func() tea.Msg {
		return savedMsg{loop: loop, err: wavloop.WriteFile(path, data)}
	}, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wavloop-edit"))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(m.path))
	b.WriteString("\n\n")

	loop := m.file.LoopPoint()

	fmt.Fprintf(&b, "%s %s / %s\n",
		labelStyle.Render("Loop point:"),
		valueStyle.Render(fmt.Sprintf("%d", loop)),
		valueStyle.Render(fmt.Sprintf("%d frames", m.file.SampleCount())))
	fmt.Fprintf(&b, "%s %s of %s\n",
		labelStyle.Render("Position:  "),
		valueStyle.Render(fmt.Sprintf("%.3fs", m.file.LoopPointDuration().Seconds())),
		valueStyle.Render(fmt.Sprintf("%.3fs", m.file.Duration().Seconds())))

	b.WriteString("\n")
	b.WriteString(m.renderWaveform())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(valueStyle.Render(m.status))
		b.WriteString("\n")
	case m.dirty:
		b.WriteString(valueStyle.Render("modified"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/→ frame  shift+←/→ or pgup/pgdn 1%  home/end  s save  q quit"))

	return b.String()
}

func (m model) renderWaveform() string {
	cols := max(m.width-2, 10)

	peaks := wavloop.Peaks(m.pcm, cols)
	marker := -1

	if count := m.file.SampleCount(); count > 0 {
		marker = int(uint64(m.file.LoopPoint()) * uint64(cols) / uint64(count))
	}

	var wave, ruler strings.Builder

	for i, p := range peaks {
		level := min(int(p*float64(len(levels))), len(levels)-1)

		if i == marker {
			wave.WriteString(markerStyle.Render(string(levels[level])))
			ruler.WriteString(markerStyle.Render("^"))

			continue
		}

		wave.WriteRune(levels[level])
		ruler.WriteByte(' ')
	}

	return wave.String() + "\n" + ruler.String()
}
