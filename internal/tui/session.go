// Package tui runs the interactive prompt session.
package tui

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/viz"
)

const (
	msgNotNumber = "Please enter a number."
	msgContinue  = "Would you like to continue? (y/n): "
	msgYesNo     = "Please enter either y or n..."
	msgEnded     = "Program ended."
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var banners = map[experiment.Kind][]string{
	experiment.KindProjectile: {
		"Projectile:",
		" - angle measured in degrees",
		" - velocity measured in m/s",
		" - initial height measured in m",
		" - air resistance is NOT taken into account",
		" - plot the arc the projectile will make",
	},
	experiment.KindPendulum: {
		"Pendulum with drag:",
		" - angle measured in radians",
		" - velocity measured in m/s",
		" - drag is taken into account",
		" - analyze results of the time period after",
		"   initial conditions",
	},
}

// field is one prompt. check returns the rejection message, or "" when the
// value is acceptable.
type field struct {
	prompt string
	set    func(cfg *config.Config, v float64)
	check  func(v float64) string
}

func rejectWith(check func(float64) error, msg string) func(float64) string {
	return func(v float64) string {
		if check(v) != nil {
			return msg
		}
		return ""
	}
}

func anyValue(float64) string { return "" }

var fields = map[experiment.Kind][]field{
	experiment.KindProjectile: {
		{
			prompt: "What is the initial velocity of the projectile? (m/s)",
			set:    func(cfg *config.Config, v float64) { cfg.Projectile.Speed = v },
			check:  rejectWith(config.CheckSpeed, config.MsgSpeed),
		},
		{
			prompt: "What is the launch angle of the projectile? (degrees above x-axis)",
			set:    func(cfg *config.Config, v float64) { cfg.Projectile.Angle = v },
			check:  rejectWith(config.CheckAngle, config.MsgAngle),
		},
		{
			prompt: "What is the initial height of the projectile? (m)",
			set:    func(cfg *config.Config, v float64) { cfg.Projectile.Height = v },
			check:  rejectWith(config.CheckHeight, config.MsgHeight),
		},
	},
	experiment.KindPendulum: {
		{
			prompt: "Enter an initial angle (radians)",
			set:    func(cfg *config.Config, v float64) { cfg.Pendulum.Theta = v },
			check:  anyValue,
		},
		{
			prompt: "Enter an initial velocity (m/s)",
			set:    func(cfg *config.Config, v float64) { cfg.Pendulum.Omega = v },
			check:  anyValue,
		},
	},
}

type state int

const (
	stateMenu state = iota
	statePrompt
	stateResult
	stateDone
)

type model struct {
	state  state
	cursor int
	kinds  []experiment.Kind

	base   *config.Config
	cfg    *config.Config
	runner *experiment.Runner
	term   *viz.Terminal
	log    *zap.Logger

	kind    experiment.Kind
	field   int
	answers []string
	input   string
	problem string
	plot    string
}

func newModel(base *config.Config, runner *experiment.Runner, term *viz.Terminal, log *zap.Logger) model {
	if log == nil {
		log = zap.NewNop()
	}
	return model{
		state:  stateMenu,
		kinds:  []experiment.Kind{experiment.KindProjectile, experiment.KindPendulum},
		base:   base,
		runner: runner,
		term:   term,
		log:    log,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = stateDone
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		return m.menuKey(key)
	case statePrompt:
		return m.promptKey(key)
	case stateResult:
		return m.resultKey(key)
	}
	return m, nil
}

func (m model) menuKey(key tea.KeyMsg) (model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.state = stateDone
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.kinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.begin(m.kinds[m.cursor])
	}
	return m, nil
}

func (m *model) begin(kind experiment.Kind) {
	cfg := *m.base
	cfg.Model = string(kind)
	m.cfg = &cfg
	m.kind = kind
	m.state = statePrompt
	m.field = 0
	m.answers = nil
	m.input = ""
	m.problem = ""
	m.plot = ""
}

// edit applies a text editing key to the input buffer and reports whether it
// was one.
func (m *model) edit(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyBackspace:
		_, size := utf8.DecodeLastRuneInString(m.input)
		m.input = m.input[:len(m.input)-size]
		return true
	case tea.KeySpace:
		m.input += " "
		return true
	case tea.KeyRunes:
		m.input += string(key.Runes)
		return true
	}
	return false
}

func (m model) promptKey(key tea.KeyMsg) (model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		m.edit(key)
		return m, nil
	}

	f := fields[m.kind][m.field]
	raw := strings.TrimSpace(m.input)
	m.input = ""

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		m.problem = msgNotNumber
		return m, nil
	}
	if msg := f.check(v); msg != "" {
		m.problem = msg
		return m, nil
	}

	f.set(m.cfg, v)
	m.problem = ""
	m.answers = append(m.answers, raw)
	m.field++
	if m.field == len(fields[m.kind]) {
		m.simulate()
	}
	return m, nil
}

func (m *model) simulate() {
	var (
		run *experiment.Run
		err error
	)
	switch m.kind {
	case experiment.KindProjectile:
		run, err = m.runner.RunProjectile(m.cfg)
	case experiment.KindPendulum:
		run, err = m.runner.RunPendulum(context.Background(), m.cfg)
	}

	m.state = stateResult
	if err != nil {
		m.log.Warn("interactive run failed", zap.String("model", string(m.kind)), zap.Error(err))
		m.plot = viz.ErrorText.Render(err.Error())
		return
	}

	var b strings.Builder
	if err := m.term.Render(&b, run.Figure()); err != nil {
		m.plot = viz.ErrorText.Render(err.Error())
		return
	}
	m.plot = b.String()
}

func (m model) resultKey(key tea.KeyMsg) (model, tea.Cmd) {
	if key.Type != tea.KeyEnter {
		m.edit(key)
		return m, nil
	}

	ans := strings.ToLower(strings.TrimSpace(m.input))
	m.input = ""
	switch ans {
	case "y":
		m.state = stateMenu
		m.problem = ""
	case "n":
		m.state = stateDone
		return m, tea.Quit
	default:
		m.problem = msgYesNo
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePrompt:
		return m.viewPrompt()
	case stateResult:
		return m.viewResult()
	default:
		return msgEnded + "\n"
	}
}

func (m model) viewMenu() string {
	var s strings.Builder
	s.WriteString(viz.TitleStyle.Render("physim") + "\n\n")
	for i, k := range m.kinds {
		if i == m.cursor {
			s.WriteString(cyan.Render("> "+string(k)) + "\n")
		} else {
			s.WriteString(white.Render("  "+string(k)) + "\n")
		}
	}
	s.WriteString("\n" + viz.KeyHint.Render("↑/↓ select · enter choose · q quit") + "\n")
	return s.String()
}

func (m model) viewPrompt() string {
	var s strings.Builder
	rule := strings.Repeat("*", 45)
	s.WriteString(dim.Render(rule) + "\n")
	for _, line := range banners[m.kind] {
		s.WriteString(line + "\n")
	}
	s.WriteString(dim.Render(rule) + "\n\n")

	fs := fields[m.kind]
	for i, a := range m.answers {
		s.WriteString(dim.Render(fs[i].prompt+": "+a) + "\n")
	}
	if m.problem != "" {
		s.WriteString(viz.ErrorText.Render(m.problem) + "\n")
	}
	s.WriteString(fs[m.field].prompt + "\n")
	s.WriteString(cyan.Render("> ") + m.input + "█\n")
	return s.String()
}

func (m model) viewResult() string {
	var s strings.Builder
	s.WriteString(m.plot + "\n")
	if m.problem != "" {
		s.WriteString(viz.ErrorText.Render(m.problem) + "\n")
	}
	s.WriteString(msgContinue + m.input + "█\n")
	return s.String()
}

// Run starts the session on the terminal. base supplies the physical
// constants and time step; the prompts fill in the initial conditions.
func Run(base *config.Config, runner *experiment.Runner, term *viz.Terminal, log *zap.Logger) error {
	_, err := tea.NewProgram(newModel(base, runner, term, log)).Run()
	return err
}
