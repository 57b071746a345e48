package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/metropolis"
	"github.com/san-kum/spinlab/internal/observable"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives a lattice interactively: every tick runs one Metropolis
// sweep and re-renders the grid next to running statistics.
type Model struct {
	lat        *lattice.Lattice
	updater    *metropolis.Updater
	params     lattice.Params
	seed       int64
	step       int
	running    bool
	fps        int
	lastStats  metropolis.SweepStats
	magHistory []float64
	showHelp   bool
}

func NewModel(p lattice.Params, seed int64, fps int) (Model, error) {
	if fps < 1 {
		fps = 30
	}

	rng := rand.New(rand.NewSource(seed))
	lat, err := lattice.New(p, rng)
	if err != nil {
		return Model{}, err
	}

	return Model{
		lat:        lat,
		updater:    metropolis.NewUpdater(rng),
		params:     p,
		seed:       seed,
		running:    true,
		fps:        fps,
		magHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k", "+", "=":
			m.adjustTemperature(1.05)
		case "down", "j", "-", "_":
			m.adjustTemperature(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.sweep()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) sweep() {
	m.lastStats = m.updater.Sweep(m.lat)
	m.step++

	m.magHistory = append(m.magHistory, observable.MagnetizationPerSpin(m.lat))
	if len(m.magHistory) > historyCapacity {
		m.magHistory = m.magHistory[1:]
	}
}

func (m *Model) adjustTemperature(factor float64) {
	// Ignore adjustments that would cross zero; construction guarantees
	// the starting temperature is already positive.
	_ = m.lat.SetTemperature(m.lat.Params().T * factor)
}

// reset reseeds and rebuilds the lattice with the original parameters.
func (m *Model) reset() {
	rng := rand.New(rand.NewSource(m.seed))
	lat, err := lattice.New(m.params, rng)
	if err != nil {
		return
	}
	m.lat = lat
	m.updater = metropolis.NewUpdater(rng)
	m.step = 0
	m.lastStats = metropolis.SweepStats{}
	m.magHistory = m.magHistory[:0]
}

// View renders the lattice pane and the stats pane side by side.
func (m Model) View() string {
	canvasView := canvasStyle.Render(RenderGridColor(m.lat.Grid()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("ISING METROPOLIS") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.magHistory) > 1 {
		chart := asciigraph.Plot(m.magHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("m per spin"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	p := m.lat.Params()
	mag := observable.MagnetizationPerSpin(m.lat)
	s.WriteString(labelStyle.Render("Sweep") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.3f", p.T)) + "\n")
	s.WriteString(labelStyle.Render("Coupling") + valueStyle.Render(fmt.Sprintf("%.2f", p.J)) + "\n")
	s.WriteString(labelStyle.Render("Field") + valueStyle.Render(fmt.Sprintf("%.2f", p.H)) + "\n")
	s.WriteString(labelStyle.Render("|m|") + valueStyle.Render(fmt.Sprintf("%.4f", math.Abs(mag))) + "\n")
	s.WriteString(labelStyle.Render("Energy/spin") + valueStyle.Render(fmt.Sprintf("%.4f", observable.EnergyPerSpin(m.lat))) + "\n")
	s.WriteString(labelStyle.Render("Acceptance") + valueStyle.Render(fmt.Sprintf("%.3f", m.lastStats.AcceptanceRate())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reseed Q:Quit\n↑↓:Temperature ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume sweeps      ║
║  R        - Reseed the lattice       ║
║  Q        - Quit                     ║
║  Up/K/+   - Raise temperature (+5%)  ║
║  Down/J/- - Lower temperature (-5%)  ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
