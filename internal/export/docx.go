package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// WriteDocx saves the summary and transcript as a styled Word document.
func WriteDocx(path, title string, snap session.Snapshot) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addMarkdown(doc.AddParagraph, snap.Summary.CombinedText)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Total tokens: %d", snap.Summary.TotalTokens), false, fontSize)

	if len(snap.Turns) > 0 {
		addStyledRun(doc.AddParagraph(""), "Questions", true, 15)
		for _, turn := range snap.Turns {
			p := doc.AddParagraph("")
			p.AddText("Question: ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			p.AddText(turn.Question).Font(fontName).Size(fontSize).Color("000000")

			p = doc.AddParagraph("")
			p.AddText("Answer: ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			addRichText(p, strings.TrimSpace(turn.Answer))
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx %s: %w", path, err)
	}
	return nil
}

// addMarkdown converts the subset of markdown Gemini produces: headings,
// bullets and bold runs.
func addMarkdown(addParagraph func(string) *docx.Paragraph, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(addParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(addParagraph(""), "• "+m[1])
			continue
		}

		addRichText(addParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
