package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/flattener"
	"github.com/Malcolmdotpeewhy/folderflatten/pkg/logger"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state == StateProcessing && m.canceller != nil {
				m.canceller.Cancel()
				return m, nil
			}
			return m, tea.Quit
		case "q":
			if m.state == StateComplete {
				return m, tea.Quit
			}
		case "esc":
			if m.state == StateProcessing && m.canceller != nil {
				m.canceller.Cancel()
				return m, nil
			}
		}

		if m.state == StateConfig {
			return m.updateConfigPhase(msg)
		}

	case tea.WindowSizeMsg:
		m.modeList.SetWidth(msg.Width - 4)
		m.progressBar.Width = msg.Width - 8

	case progressEventMsg:
		m.applyEvent(internal.ProgressEvent(msg))
		cmds = append(cmds, waitForEvent(m.eventCh))
		if m.totalFiles > 0 {
			percent := float64(m.processed) / float64(m.totalFiles)
			cmds = append(cmds, m.progressBar.SetPercent(percent))
		}
		return m, tea.Batch(cmds...)

	case flattenFinishedMsg:
		m.state = StateComplete
		m.stats = msg.stats
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state == StateProcessing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateConfig {
		var cmd tea.Cmd
		m.rootInput, cmd = m.rootInput.Update(msg)
		cmds = append(cmds, cmd)

		m.modeList, cmd = m.modeList.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state == StateProcessing {
		pb, cmd := m.progressBar.Update(msg)
		m.progressBar = pb.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) updateConfigPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == FocusRoot {
			m.focus = FocusMode
			m.rootInput.Blur()
		} else {
			m.focus = FocusRoot
			m.rootInput.Focus()
		}
		return m, nil

	case "enter":
		if strings.TrimSpace(m.rootInput.Value()) == "" {
			return m, nil
		}
		m.state = StateProcessing
		return m, tea.Batch(m.startFlatten(), m.spinner.Tick)
	}

	// 开关项只在模式列表聚焦时响应，避免吞掉路径输入
	if m.focus == FocusMode {
		switch msg.String() {
		case "e":
			m.extractArchives = !m.extractArchives
			return m, nil
		case "a":
			m.archiveOriginals = !m.archiveOriginals
			return m, nil
		case "r":
			m.removeEmpty = !m.removeEmpty
			return m, nil
		case "h":
			m.includeHidden = !m.includeHidden
			return m, nil
		case "d":
			m.dryRun = !m.dryRun
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.focus == FocusRoot {
		m.rootInput, cmd = m.rootInput.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.modeList, cmd = m.modeList.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// applyEvent 把引擎事件映射到界面状态
func (m *model) applyEvent(ev internal.ProgressEvent) {
	switch ev.Phase {
	case internal.PhaseScan:
		m.totalFiles = ev.Total
		m.bytesTotal = ev.BytesTotal
		m.phaseMsg = ev.Message
	case internal.PhaseExtractScan, internal.PhaseExtract:
		m.phaseMsg = ev.Message
	case internal.PhaseExtractFile:
		m.currentFile = ev.File
	case internal.PhaseMove:
		m.processed = ev.Current
		m.currentFile = ev.File
		m.moved = ev.Moved
		m.skipped = ev.Skipped
		m.errors = ev.Errors
		m.bytesMoved = ev.BytesMoved
	case internal.PhaseError:
		m.errors = ev.Errors
		logger.Get().Error().Msgf("%s: %s", ev.File, ev.Error)
	case internal.PhaseDone:
		m.phaseMsg = ev.Message
	}
}

// startFlatten 在后台 goroutine 中运行引擎，事件经通道逐条转发
func (m *model) startFlatten() tea.Cmd {
	ch := make(chan tea.Msg, internal.DefaultBufferSize)
	m.eventCh = ch
	m.canceller = internal.NewCanceller()

	opts := flattener.Options{
		Root:             m.rootInput.Value(),
		DuplicateMode:    m.selectedMode(),
		RemoveEmpty:      m.removeEmpty,
		IncludeHidden:    m.includeHidden,
		DryRun:           m.dryRun,
		ExtractArchives:  m.extractArchives,
		ArchiveOriginals: m.archiveOriginals,
	}
	if cfg != nil && cfg.ArchiveFolder != "" && cfg.ArchiveFolder != internal.DefaultArchiveFolderName {
		opts.ArchiveFolder = cfg.ArchiveFolder
	}

	fl := flattener.New(afero.NewOsFs(), opts, func(ev internal.ProgressEvent) {
		ch <- progressEventMsg(ev)
	}, m.canceller)

	go func() {
		stats, err := fl.Run()
		ch <- flattenFinishedMsg{stats: stats, err: err}
	}()

	return waitForEvent(ch)
}

func waitForEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
