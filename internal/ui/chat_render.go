package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/incordes/incordes/internal/api"
)

// highlightCode applies syntax highlighting to a fenced code block using
// chroma.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderContent wraps message text to the panel width, highlighting fenced
// code blocks. Fences inside a message are rare but people paste snippets.
func renderContent(content string, width int) string {
	lines := strings.Split(content, "\n")

	var out []string
	var code []string
	var lang string
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, highlightCode(strings.Join(code, "\n"), lang))
				code = nil
				inFence = false
			} else {
				inFence = true
				lang = strings.TrimPrefix(trimmed, "```")
			}
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}
		out = append(out, wordwrap.String(line, width))
	}
	// Unterminated fence; render what we have
	if inFence {
		out = append(out, highlightCode(strings.Join(code, "\n"), lang))
	}

	return strings.Join(out, "\n")
}

// renderMessage renders one transcript entry: timestamp, sender tag, and
// wrapped content.
func renderMessage(m api.Message, selfID int64, width int) string {
	ts := ""
	if t := m.Time(); !t.IsZero() {
		ts = t.Local().Format("Jan 2 15:04")
	}

	senderStyle := ChatSenderPeerStyle
	if m.Sender.ID == selfID {
		senderStyle = ChatSenderSelfStyle
	}

	header := senderStyle.Render(m.Sender.Username+"#"+m.Sender.Discriminator)
	if ts != "" {
		header += "  " + ChatTimestampStyle.Render(ts)
	}

	contentWidth := width - 2
	if w := ansi.StringWidth(header); w+2 > width {
		contentWidth = width
	}
	if contentWidth < 10 {
		contentWidth = 10
	}

	return header + "\n" + renderContent(m.Content, contentWidth)
}
