package tui

import (
	"fmt"
	"strings"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
)

func (m *model) View() string {
	switch m.state {
	case StateProcessing:
		return m.processingView()
	case StateComplete:
		return m.completeView()
	default:
		return m.configView()
	}
}

func (m *model) configView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📂 文件夹拍平工具"))
	b.WriteString("\n\n")

	inputBox := normalStyle
	if m.focus == FocusRoot {
		inputBox = focusedStyle
	}
	b.WriteString(inputBox.Render(m.rootInput.View()))
	b.WriteString("\n\n")

	listBox := normalStyle
	if m.focus == FocusMode {
		listBox = focusedStyle
	}
	b.WriteString(listBox.Render(m.modeList.View()))
	b.WriteString("\n")

	b.WriteString(renderToggle("e", "解压 zip 归档", m.extractArchives))
	b.WriteString(renderToggle("a", "归档原始 zip", m.archiveOriginals))
	b.WriteString(renderToggle("r", "清理空目录", m.removeEmpty))
	b.WriteString(renderToggle("h", "包含隐藏文件", m.includeHidden))
	b.WriteString(renderToggle("d", "预演模式（不改动文件）", m.dryRun))
	b.WriteString("\n")

	b.WriteString(hintStyle.Render("tab 切换焦点 · enter 开始 · ctrl+c 退出 · 开关键在列表聚焦时生效"))
	b.WriteString("\n")

	return b.String()
}

func renderToggle(key, label string, on bool) string {
	mark := toggleOffStyle.Render("[ ]")
	if on {
		mark = toggleOnStyle.Render("[✓]")
	}
	return fmt.Sprintf("  %s %s (%s)\n", mark, label, key)
}

func (m *model) processingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("正在整理..."))
	b.WriteString("\n\n")

	if m.phaseMsg != "" {
		b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), m.phaseMsg))
	} else {
		b.WriteString(fmt.Sprintf("%s 处理中\n\n", m.spinner.View()))
	}

	b.WriteString(m.progressBar.View())
	b.WriteString("\n\n")

	if m.totalFiles > 0 {
		b.WriteString(fmt.Sprintf("进度: %d/%d (%s / %s)\n",
			m.processed, m.totalFiles,
			internal.HumanSize(m.bytesMoved), internal.HumanSize(m.bytesTotal)))
	}
	b.WriteString(fmt.Sprintf("移动: %d  跳过: %d  错误: %d\n", m.moved, m.skipped, m.errors))

	if m.currentFile != "" {
		b.WriteString("\n")
		b.WriteString(filePathStyle.Render("当前: " + m.currentFile))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("esc 取消"))
	b.WriteString("\n")

	return b.String()
}

func (m *model) completeView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render("整理失败"))
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("q 退出"))
		b.WriteString("\n")
		return b.String()
	}

	title := successTitleStyle.Render("✅ 整理完成")
	if m.stats != nil && m.stats.Cancelled {
		title = errorStyle.Render("⚠ 已取消")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.stats != nil {
		var s strings.Builder
		s.WriteString(fmt.Sprintf("扫描文件:   %d (%s)\n", m.stats.TotalFiles, internal.HumanSize(m.stats.TotalBytes)))
		s.WriteString(fmt.Sprintf("移动:       %d (%s)\n", m.stats.Moved, internal.HumanSize(m.stats.BytesMoved)))
		s.WriteString(fmt.Sprintf("跳过:       %d\n", m.stats.Skipped))
		s.WriteString(fmt.Sprintf("错误:       %d\n", m.stats.Errors))
		s.WriteString(fmt.Sprintf("清理空目录: %d", m.stats.EmptyFoldersRemoved))
		if m.stats.ArchivesFound > 0 {
			s.WriteString(fmt.Sprintf("\n解压归档:   %d (条目 %d, %s)",
				m.stats.ArchivesFound, m.stats.ExtractedEntries, internal.HumanSize(m.stats.ArchiveBytesWritten)))
		}
		b.WriteString(statsBoxStyle.Render(s.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("q 退出"))
	b.WriteString("\n")

	return b.String()
}
