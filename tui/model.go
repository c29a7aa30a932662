package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
)

type State int

const (
	StateConfig State = iota
	StateProcessing
	StateComplete
)

type Focus int

const (
	FocusRoot Focus = iota
	FocusMode
)

type model struct {
	state State
	focus Focus

	rootInput textinput.Model
	modeList  list.Model

	// 开关项
	extractArchives  bool
	archiveOriginals bool
	removeEmpty      bool
	includeHidden    bool
	dryRun           bool

	progressBar progress.Model
	spinner     spinner.Model

	// 处理进度（仅由进度事件驱动）
	totalFiles  int
	processed   int
	currentFile string
	moved       int
	skipped     int
	errors      int
	bytesTotal  int64
	bytesMoved  int64
	phaseMsg    string

	eventCh   chan tea.Msg
	canceller *internal.Canceller

	stats *internal.FlattenStats
	err   error
}

func initialModel() model {
	modeList := list.New([]list.Item{
		modeItem{mode: internal.ModeRename, title: "重命名", desc: "追加自增序号，保留双方文件"},
		modeItem{mode: internal.ModeOverwrite, title: "覆盖", desc: "删除根目录中的同名文件后移入"},
		modeItem{mode: internal.ModeSkip, title: "跳过", desc: "同名文件留在原处不动"},
	}, list.NewDefaultDelegate(), 0, 8)

	modeList.Title = "选择重名处理方式"
	modeList.SetShowStatusBar(false)
	modeList.SetFilteringEnabled(false)
	modeList.SetShowHelp(false)
	modeList.Styles.Title = titleStyle

	if cfg != nil {
		for i, item := range modeList.Items() {
			if string(item.(modeItem).mode) == cfg.DefaultMode {
				modeList.Select(i)
				break
			}
		}
	}

	rootInput := textinput.New()
	rootInput.Placeholder = "请输入要整理的目录（例如：~/Downloads）"
	rootInput.Prompt = "> "
	rootInput.PromptStyle = focusedPromptStyle
	rootInput.TextStyle = textStyle
	rootInput.Focus()

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		state:       StateConfig,
		focus:       FocusRoot,
		removeEmpty: true,
		rootInput:   rootInput,
		modeList:    modeList,
		progressBar: progressBar,
		spinner:     s,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) selectedMode() internal.DuplicateMode {
	if item, ok := m.modeList.SelectedItem().(modeItem); ok {
		return item.mode
	}
	return internal.ModeRename
}

type modeItem struct {
	mode  internal.DuplicateMode
	title string
	desc  string
}

func (m modeItem) Title() string       { return m.title }
func (m modeItem) Description() string { return m.desc }
func (m modeItem) FilterValue() string { return m.title }
