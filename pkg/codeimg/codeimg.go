// Package codeimg renders source code into a syntax-highlighted PNG.
package codeimg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/codeblock"
)

var (
	ErrUnavailable = errors.New("code image rendering is unavailable")
	ErrEmptyCode   = errors.New("nothing to render")
)

const (
	DefaultFontSize = 14
	defaultPadding  = 24
	defaultMaxLines = 300
	defaultMaxCols  = 160
	tabWidth        = 4
)

type Options struct {
	Disabled bool
	FontSize float64
	Padding  int
	MaxLines int
	MaxCols  int
}

type Renderer struct {
	font *opentype.Font
	opts Options
}

// New parses the bundled Go Mono font. When it fails, or rendering is
// disabled, the returned Renderer reports itself unavailable.
func New(opts Options) (*Renderer, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.Padding <= 0 {
		opts.Padding = defaultPadding
	}
	if opts.MaxLines <= 0 {
		opts.MaxLines = defaultMaxLines
	}
	if opts.MaxCols <= 0 {
		opts.MaxCols = defaultMaxCols
	}
	r := &Renderer{opts: opts}
	if opts.Disabled {
		return r, nil
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return r, fmt.Errorf("failed to parse monospace font: %w", err)
	}
	r.font = f
	return r, nil
}

func (r *Renderer) Available() bool {
	return r != nil && r.font != nil
}

// Render draws the fenced code found in text, or text itself when it has no
// fence, using the palette resolved from theme.
func (r *Renderer) Render(text string, theme string) ([]byte, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}
	code := model.ExtractedCode{Code: text}
	if extracted, ok := codeblock.Extract(text); ok {
		code = extracted
	}
	if strings.TrimSpace(code.Code) == "" {
		return nil, ErrEmptyCode
	}

	lexer := chroma.Coalesce(lexerFor(code))
	iterator, err := lexer.Tokenise(nil, code.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenise code: %w", err)
	}
	lines := r.clip(chroma.SplitTokensIntoLines(iterator.Tokens()))

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    r.opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	img := r.paint(lines, face, styles.Get(model.ResolvePalette(theme)))

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func lexerFor(code model.ExtractedCode) chroma.Lexer {
	if code.Language != "" {
		if lexer := lexers.Get(code.Language); lexer != nil {
			return lexer
		}
	}
	if lexer := lexers.Analyse(code.Code); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// clip normalises tokens for drawing: newlines dropped, tabs expanded, and
// the line and column caps applied.
func (r *Renderer) clip(lines [][]chroma.Token) [][]chroma.Token {
	for len(lines) > 0 && lineIsBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > r.opts.MaxLines {
		lines = lines[:r.opts.MaxLines]
	}
	out := make([][]chroma.Token, 0, len(lines))
	for _, line := range lines {
		cols := 0
		clipped := make([]chroma.Token, 0, len(line))
		for _, token := range line {
			value := strings.ReplaceAll(token.Value, "\n", "")
			value = strings.ReplaceAll(value, "\t", strings.Repeat(" ", tabWidth))
			runes := []rune(value)
			if cols+len(runes) > r.opts.MaxCols {
				runes = runes[:r.opts.MaxCols-cols]
			}
			cols += len(runes)
			if len(runes) > 0 {
				clipped = append(clipped, chroma.Token{Type: token.Type, Value: string(runes)})
			}
			if cols >= r.opts.MaxCols {
				break
			}
		}
		out = append(out, clipped)
	}
	return out
}

func (r *Renderer) paint(lines [][]chroma.Token, face font.Face, style *chroma.Style) *image.RGBA {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance = fixed.I(int(r.opts.FontSize * 0.6))
	}

	widest := 1
	for _, line := range lines {
		cols := 0
		for _, token := range line {
			cols += len([]rune(token.Value))
		}
		widest = max(widest, cols)
	}
	rows := max(len(lines), 1)
	pad := r.opts.Padding
	width := pad*2 + (advance * fixed.Int26_6(widest)).Ceil()
	height := pad*2 + rows*lineHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	background := style.Get(chroma.Background)
	draw.Draw(img, img.Bounds(), image.NewUniform(toColor(background.Background, color.RGBA{0x27, 0x28, 0x22, 0xff})), image.Point{}, draw.Src)
	foreground := toColor(background.Colour, color.RGBA{0xf8, 0xf8, 0xf2, 0xff})

	drawer := &font.Drawer{Dst: img, Face: face}
	for i, line := range lines {
		drawer.Dot = fixed.Point26_6{
			X: fixed.I(pad),
			Y: fixed.I(pad+i*lineHeight) + metrics.Ascent,
		}
		for _, token := range line {
			drawer.Src = image.NewUniform(toColor(style.Get(token.Type).Colour, foreground))
			drawer.DrawString(token.Value)
		}
	}
	return img
}

func toColor(c chroma.Colour, fallback color.RGBA) color.RGBA {
	if !c.IsSet() {
		return fallback
	}
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}

func lineIsBlank(line []chroma.Token) bool {
	for _, token := range line {
		if strings.TrimSpace(token.Value) != "" {
			return false
		}
	}
	return true
}
