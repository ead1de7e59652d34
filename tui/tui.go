// Package tui is the interactive presentation layer for the Tomasulo
// simulator. It renders simulator state as a handful of panes and
// single-steps on a keypress; it never reaches into engine internals, only
// engine.Snapshot.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"tomasulo/engine"
)

type model struct {
	sim *engine.Simulator
}

// Init is the first function called. There is no initial command.
func (m model) Init() tea.Cmd { return nil }

// Update is called when a message is received.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.sim.Step()
		case "n":
			m.sim.RunN(10)
		case "r":
			m.sim.Reset()
		}
	}
	return m, nil
}

func (m model) registers(snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString("regs | ")
	for i, r := range snap.Regs {
		if r.Waiting {
			fmt.Fprintf(&b, "%d=%s ", i, r.Tag)
		} else {
			fmt.Fprintf(&b, "%d=%d ", i, r.Value)
		}
		if i%8 == 7 {
			b.WriteString("\n     | ")
		}
	}
	return b.String()
}

func (m model) stations(snap engine.Snapshot) string {
	lines := []string{"name | busy | op   | remain | vj    | vk    | issued"}
	for _, rs := range snap.RS {
		lines = append(lines, stationLine(rs.Name, rs.Busy, rs.Op, rs.Remain, rs.Vj, rs.Vk, rs.IssueTime))
	}
	for _, lb := range snap.LB {
		lines = append(lines, stationLine(lb.Name, lb.Busy, "LD", lb.Remain, engine.OperandSnapshot{Value: lb.Imm}, engine.OperandSnapshot{}, lb.IssueTime))
	}
	return strings.Join(lines, "\n")
}

func stationLine(name string, busy bool, op, remain string, vj, vk engine.OperandSnapshot, issued uint32) string {
	return fmt.Sprintf("%-4s | %-4v | %-4s | %-6s | %-5s | %-5s | %d",
		name, busy, op, remain, operandStr(vj), operandStr(vk), issued)
}

func operandStr(o engine.OperandSnapshot) string {
	if o.Waiting {
		return o.Tag
	}
	return fmt.Sprintf("%d", o.Value)
}

func (m model) status(snap engine.Snapshot) string {
	return fmt.Sprintf("clk: %d\npc:  %d\ndone: %v", snap.Clock, snap.PC, snap.Done)
}

// View renders the UI as a single string: a station/status row on top,
// the register file below it, then the currently-issuing instruction.
func (m model) View() string {
	snap := m.sim.Snapshot()

	var currInst string
	if int(snap.PC) < len(snap.Insts) {
		currInst = spew.Sdump(snap.Insts[snap.PC])
	} else {
		currInst = "(pc past end of program)"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.stations(snap),
			m.status(snap),
		),
		m.registers(snap),
		"",
		currInst,
	)
}

// Run loads sim into an interactive stepper. Keys: space/j single-steps, n
// runs up to 10 ticks, r resets, q quits.
func Run(sim *engine.Simulator) error {
	_, err := tea.NewProgram(model{sim: sim}).Run()
	return err
}
