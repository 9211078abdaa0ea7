package ui

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	"gopkg.in/yaml.v3"

	"hdrbar/pkg/types"
)

// inspector shows the current layout as highlighted YAML
type inspector struct {
	view  viewport.Model
	style string
}

func newInspector(style string) *inspector {
	return &inspector{view: viewport.New(0, 0), style: style}
}

func (i *inspector) setSize(width, height int) {
	i.view.Width = width
	i.view.Height = height
}

func (i *inspector) show(layout types.Layout) error {
	text, err := layoutYAML(layout)
	if err != nil {
		return err
	}

	highlighted, err := highlight(text, "yaml", i.style)
	if err != nil {
		// plain text is still useful
		highlighted = text
	}
	i.view.SetContent(highlighted)
	return nil
}

func layoutYAML(layout types.Layout) (string, error) {
	data, err := yaml.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("failed to encode layout: %w", err)
	}
	return string(data), nil
}

// highlight colours source with chroma for a 256 colour terminal
func highlight(source, language, styleName string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("failed to format: %w", err)
	}
	return buf.String(), nil
}
