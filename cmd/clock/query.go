package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndrewLester/clock/internal/sugar"
	"github.com/AndrewLester/clock/internal/ui"
	"github.com/AndrewLester/clock/pkg/clock"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

var errCancelled = errors.New("cancelled")

const (
	padding  = 10
	maxWidth = 80
)

type queryCommandModel struct {
	progress progress.Model
	querier  *clock.Querier
	servers  []string
	results  <-chan clock.ServerResult

	finished int
	last     string
	estimate *clock.Estimate
	err      error
}

type serverDoneMessage clock.ServerResult
type queryDoneMessage struct {
	estimate *clock.Estimate
	err      error
}

func runQueryUI(querier *clock.Querier, servers []string) (*clock.Estimate, error) {
	results := make(chan clock.ServerResult, len(servers))
	querier.Progress = results

	m := queryCommandModel{
		progress: progress.New(progress.WithScaledGradient("#68b1b1", "#6ea4ff")),
		querier:  querier,
		servers:  servers,
		results:  results,
	}

	resultModel, err := sugar.RunProgramWithErrors(m)
	if final, ok := resultModel.(queryCommandModel); ok && final.estimate != nil {
		return final.estimate, err
	}
	return nil, err
}

func queryCommand(querier *clock.Querier, servers []string, results chan<- clock.ServerResult) tea.Cmd {
	return func() tea.Msg {
		estimate, err := querier.Query(context.Background(), servers)
		close(results)
		return queryDoneMessage{estimate: estimate, err: err}
	}
}

func listenCommand(results <-chan clock.ServerResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return nil
		}
		return serverDoneMessage(result)
	}
}

func (m queryCommandModel) Init() tea.Cmd {
	return tea.Batch(
		queryCommand(m.querier, m.servers, m.querier.Progress),
		listenCommand(m.results),
	)
}

func (m queryCommandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.err = errCancelled
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}
		return m, nil
	case serverDoneMessage:
		m.finished++
		m.last = msg.Server
		return m, listenCommand(m.results)
	case queryDoneMessage:
		m.estimate = msg.estimate
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m queryCommandModel) percentage() float64 {
	if len(m.servers) == 0 {
		return 1
	}
	return float64(m.finished) / float64(len(m.servers))
}

func (m queryCommandModel) View() (s string) {
	if m.estimate != nil || m.err != nil {
		return
	}

	s += ui.TitleStyle("Clock - Query") + "\n\n"
	s += m.progress.ViewAs(m.percentage()) + "\n"
	if m.last != "" {
		s += ui.HelpStyle(fmt.Sprintf("%d/%d, last: %s", m.finished, len(m.servers), m.last)) + "\n"
	}
	s += "\n" + ui.HelpStyle("q: exit") + "\n"
	return
}

func (m queryCommandModel) GetError() error {
	return m.err
}
