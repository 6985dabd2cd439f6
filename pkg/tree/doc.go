// Package tree builds the replacement forest of a localization template.
//
// [Build] scans a template for every token of a [Config] and turns each
// occurrence into one or more spans. A span has a content Range and a
// Container that also covers its tokens. The spans of a multiple-words token
// (one per alternative) share their Container and a [Group].
//
// Spans nest by strict containment. A span whose content range contains the
// whole container of another becomes its parent; attributes spans are always
// leaves and may overlap each other freely. Any other overlap is ambiguous
// markup: the later occurrence is logged and left as plain text.
//
// After the forest is built, escape tokens and the tokens of attributes spans
// are removed from the text. Each removal is recorded in Tree.Removals so the
// same cuts can be replayed on a rich source value.
//
//	cfg := tree.Config{
//		Escape:     `\`,
//		Ordered:    []token.Token{token.MultipleWords("<", ":", ">")},
//		Attributes: []token.Token{token.OneWord("*", "*")},
//	}
//	t := tree.Build("the *<house:houses>*", cfg)
//	// t.Text == "the <house:houses>"
//
// A template may start with a plural override prologue, "||rule|rule||",
// when Config.Prologue is set. Each rule overrides the plural definition of
// one plural group in template order; "_" keeps the default.
//
// Spans are stored in an arena and address each other by index, so a tree can
// be cloned cheaply and serialized as JSON.
package tree
