// Package shape provides the value adapters the resolution engine rewrites:
// [Plain] for strings and [Rich] for styled [Text].
//
// Text is a sequence of runs, each carrying a sorted set of style names such
// as "bold" or "italic". Attributes tokens style ranges with [Style]; plain
// source values are embedded with [Embed]:
//
//	engine := resolve.NewEngine(shape.Plain{}, shape.Rich{}, shape.Embed())
//	out, err := engine.Resolve(t, template, resolve.Data[string, shape.Text]{
//		Attributes: map[token.Token]func(*shape.Text, token.Range){
//			bold: shape.Style("bold"),
//		},
//	})
//
// Styled text renders as a templ component ([Text.HTML]), as sanitized HTML
// ([RenderHTML]) or as inline markdown ([Text.Markdown], [RenderMarkdown]).
package shape
