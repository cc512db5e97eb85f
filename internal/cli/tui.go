package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rankwidth/pkg/pipeline"
	"github.com/matzehuels/rankwidth/pkg/search"
)

// improvementInterval throttles score improvements forwarded to the view.
const improvementInterval = 100 * time.Millisecond

var (
	tuiLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	tuiBestStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// =============================================================================
// SearchModel - Live view of a running search
// =============================================================================

type eventMsg search.Event

type searchDoneMsg struct{}

// SearchModel is the bubbletea model showing the progress of one search.
type SearchModel struct {
	Title    string
	Last     search.Event
	Widths   []int // best widths in the order they were reached
	Stopping bool

	cancel context.CancelFunc
}

// NewSearchModel creates a model; cancel is called when the user asks to stop.
func NewSearchModel(title string, cancel context.CancelFunc) SearchModel {
	return SearchModel{Title: title, cancel: cancel}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.Stopping && m.cancel != nil {
				m.cancel()
			}
			m.Stopping = true
		}
	case eventMsg:
		e := search.Event(msg)
		if e.Kind == search.EventBetterWidth {
			m.Widths = append(m.Widths, e.BestWidth)
		}
		m.Last = e
	case searchDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	e := m.Last
	row := func(label, value string) {
		b.WriteString(tuiLabelStyle.Render(label) + " " + value + "\n")
	}
	row("best width", tuiBestStyle.Render(strconv.Itoa(e.BestWidth)))
	row("width", StyleValue.Render(strconv.Itoa(e.Width)))
	row("score", StyleValue.Render(fmt.Sprintf("%d (best %d)", e.Score, e.BestScore)))
	row("temperature", StyleValue.Render(fmt.Sprintf("%.4f", e.Temperature)))
	row("iterations", StyleValue.Render(strconv.FormatInt(e.Iterations, 10)))
	row("elapsed", StyleValue.Render(e.Elapsed.Round(100*time.Millisecond).String()))

	if len(m.Widths) > 0 {
		parts := make([]string, len(m.Widths))
		for i, w := range m.Widths {
			parts[i] = strconv.Itoa(w)
		}
		row("history", StyleDim.Render(strings.Join(parts, " "+iconArrow+" ")))
	}

	b.WriteString("\n")
	if m.Stopping {
		b.WriteString(StyleWarning.Render("stopping..."))
	} else {
		b.WriteString(StyleDim.Render("q stop"))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Runner integration
// =============================================================================

// runWithTUI runs the search while a live view renders to out. Quitting the
// view stops the search; the best decomposition is still returned.
func runWithTUI(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, out io.Writer) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSearchModel("Approximating "+input, cancel), tea.WithOutput(out))
	runner.OnEvent = forwardEvents(p.Send)

	var (
		res    *pipeline.Result
		runErr error
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, runErr = runner.Run(ctx, input, opts)
		p.Send(searchDoneMsg{})
	}()

	_, tuiErr := p.Run()
	cancel()
	wg.Wait()
	if tuiErr != nil {
		return nil, fmt.Errorf("live view: %w", tuiErr)
	}
	return res, runErr
}

// forwardEvents returns an event callback that sends to a program,
// dropping score improvements that arrive faster than improvementInterval.
func forwardEvents(send func(tea.Msg)) func(search.Event) {
	var last time.Time
	return func(e search.Event) {
		if e.Kind == search.EventImprovement {
			if time.Since(last) < improvementInterval {
				return
			}
			last = time.Now()
		}
		e.Decomposition = ""
		send(eventMsg(e))
	}
}
