package shape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// htmlTags maps styles to the elements wrapping them. Other styles become
// <span class="style-name">.
var htmlTags = map[string]string{
	"bold":   "strong",
	"italic": "em",
	"code":   "code",
	"strike": "s",
}

// markdownMarks maps styles to markdown emphasis. Other styles are dropped.
var markdownMarks = map[string]string{
	"bold":   "**",
	"italic": "*",
	"code":   "`",
	"strike": "~~",
}

var (
	policy     *bluemonday.Policy
	md         goldmark.Markdown
	policyOnce sync.Once
)

func initRender() {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowElements("p", "br", "strong", "em", "code", "s", "span", "del")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")
		md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	})
}

// toUpper builds a caser per call; casers are not safe for concurrent use.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// HTML returns a component rendering t as inline HTML. Text is escaped;
// every run is wrapped in the elements of its styles.
func (t Text) HTML() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, r := range t.runs {
			if _, err := io.WriteString(w, openTags(r.Styles)+templ.EscapeString(r.Text)+closeTags(r.Styles)); err != nil {
				return err
			}
		}
		return nil
	})
}

// RenderHTML renders t to sanitized HTML.
func RenderHTML(ctx context.Context, t Text) (string, error) {
	initRender()
	var buf bytes.Buffer
	if err := t.HTML().Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return policy.Sanitize(buf.String()), nil
}

// Markdown returns t with styles written as inline markdown emphasis.
// Markdown metacharacters of the text are escaped.
func (t Text) Markdown() string {
	var b strings.Builder
	for _, r := range t.runs {
		text := escapeMarkdown(r.Text)
		var marks []string
		for _, s := range r.Styles {
			if m, ok := markdownMarks[s]; ok {
				marks = append(marks, m)
			}
		}
		for _, m := range marks {
			b.WriteString(m)
		}
		b.WriteString(text)
		for i := len(marks) - 1; i >= 0; i-- {
			b.WriteString(marks[i])
		}
	}
	return b.String()
}

// RenderMarkdown converts the markdown form of t to sanitized HTML.
func RenderMarkdown(t Text) (string, error) {
	initRender()
	var buf bytes.Buffer
	if err := md.Convert([]byte(t.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return policy.Sanitize(buf.String()), nil
}

func openTags(styles []string) string {
	var b strings.Builder
	for _, s := range styles {
		if tag, ok := htmlTags[s]; ok {
			b.WriteString("<" + tag + ">")
			continue
		}
		b.WriteString(`<span class="style-` + templ.EscapeString(s) + `">`)
	}
	return b.String()
}

func closeTags(styles []string) string {
	var b strings.Builder
	for i := len(styles) - 1; i >= 0; i-- {
		if tag, ok := htmlTags[styles[i]]; ok {
			b.WriteString("</" + tag + ">")
			continue
		}
		b.WriteString("</span>")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
