package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/npillmayer/strokes/engine"
	"github.com/npillmayer/strokes/keys"
	"github.com/npillmayer/strokes/machine"
	"github.com/npillmayer/strokes/session"
)

var (
	textStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	preeditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	ghostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	typingModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	selectingModeStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("166")).
				Foreground(lipgloss.Color("230")).
				Padding(0, 1)

	disabledModeStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("250")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const demoHelp = "U一 I丨 O丿 J丶 Kフ L＊ · 0 select · 1-9 pick · M/N page · Tab on/off · Ctrl+C quit"

// demoKeymap is the letters keymap with Tab as toggle key, since terminals
// do not report a bare Shift.
func demoKeymap() keys.Keymap {
	km := keys.LettersKeymap()
	km.Toggle = []keys.Code{keys.VKTab}
	return km
}

type demoModel struct {
	sess *session.Session
	snap session.Snapshot
	text string
}

func newDemoModel(e *engine.Engine) demoModel {
	s := e.NewSession()
	return demoModel{sess: s, snap: s.Snapshot()}
}

func cmdDemo() {
	cfg := loadConfig()
	e := openEngine(cfg, engine.WithKeymap(demoKeymap()))
	defer e.Close()
	p := tea.NewProgram(newDemoModel(e), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// translateKey maps a terminal key to a virtual key. Keys without a
// counterpart report false.
func translateKey(msg tea.KeyMsg) (keys.Key, bool) {
	var k keys.Key
	if msg.Alt {
		k.Modifiers |= keys.ModAlt
	}
	switch msg.Type {
	case tea.KeyTab:
		k.Code, k.Char = keys.VKTab, '\t'
	case tea.KeyEnter:
		k.Code, k.Char = keys.VKReturn, '\r'
	case tea.KeyBackspace:
		k.Code = keys.VKBack
	case tea.KeyEsc:
		k.Code = keys.VKEscape
	case tea.KeySpace:
		k.Code, k.Char = keys.VKSpace, ' '
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return k, false
		}
		r := msg.Runes[0]
		k.Char = r
		switch {
		case r >= '0' && r <= '9':
			k.Code = keys.TopRow(int(r - '0'))
		case keys.LetterKey(r) != 0:
			k.Code = keys.LetterKey(r)
			if unicode.IsUpper(r) {
				k.Modifiers |= keys.ModShift
			}
		}
	default:
		return k, false
	}
	return k, true
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	k, ok := translateKey(keyMsg)
	if !ok {
		return m, nil
	}
	res := m.sess.HandleKey(k)
	m.snap = res.Snapshot
	if res.Commit != nil {
		m.text += res.Commit.Text
	}
	if !res.Consumed {
		m.text = hostInput(m.text, k)
	}
	return m, nil
}

// hostInput is what the terminal does with keys the input method passes on.
func hostInput(text string, k keys.Key) string {
	switch {
	case k.Code == keys.VKBack:
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	case k.Code == keys.VKReturn:
		return text + "\n"
	case k.Modifiers.HasAny(keys.ModControl | keys.ModAlt | keys.ModMeta):
		return text
	case k.Char != 0 && k.Char != '\t':
		return text + string(k.Char)
	}
	return text
}

func (m demoModel) View() string {
	var b strings.Builder

	composition := ""
	switch {
	case m.snap.Preedit != "":
		composition = preeditStyle.Render(m.snap.Preedit)
	case m.snap.Ghost != "":
		composition = ghostStyle.Render(m.snap.Ghost)
	}
	b.WriteString(textStyle.Render(m.text + composition + "▏"))
	b.WriteString("\n")

	style := candidateStyle
	if m.snap.Suggesting {
		style = suggestionStyle
	}
	items := make([]string, len(m.snap.Page))
	for i, c := range m.snap.Page {
		items[i] = fmt.Sprintf("%d.%s", i+1, c)
	}
	if len(items) > 0 {
		pages := (m.snap.Total + session.PageSize - 1) / session.PageSize
		b.WriteString(style.Render(strings.Join(items, "  ")))
		b.WriteString(helpStyle.Render(fmt.Sprintf("   %d/%d", m.snap.PageIndex+1, pages)))
	}
	b.WriteString("\n\n")

	b.WriteString(modeBadge(m.snap.Mode))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(demoHelp))
	b.WriteString("\n")
	return b.String()
}

func modeBadge(mode machine.Mode) string {
	switch mode {
	case machine.Typing:
		return typingModeStyle.Render("筆 TYPING")
	case machine.Selecting:
		return selectingModeStyle.Render("選 SELECTING")
	}
	return disabledModeStyle.Render("EN DISABLED")
}
