// Package program holds IntCode program images: the comma-separated integer
// text a puzzle ships, parsed into the initial memory a VM is loaded from.
package program

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/colorfulnotion/intcode/vmerrors"
	"golang.org/x/exp/slices"
)

// Image is the initial memory of an IntCode program.
type Image []int64

// Parse decodes comma-separated signed integers. Whitespace around tokens and
// a trailing comma or newline are tolerated.
func Parse(text string) (Image, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	if text == "" {
		return nil, vmerrors.ErrEmptyProgram
	}
	tokens := strings.Split(text, ",")
	img := make(Image, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w (index=%d, token=%q)", vmerrors.ErrBadProgramText, i, tok)
		}
		img = append(img, v)
	}
	return img, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(text string) Image {
	img, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return img
}

// Load reads and parses a program file.
func Load(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %s: %w", path, err)
	}
	img, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (img Image) Clone() Image {
	return slices.Clone(img)
}

// Patch returns a copy of img with cell addr set to value, growing the copy
// with zeros when addr is past the end.
func (img Image) Patch(addr int, value int64) (Image, error) {
	if addr < 0 {
		return nil, fmt.Errorf("%w (patch addr=%d)", vmerrors.ErrNegativeAddress, addr)
	}
	out := img.Clone()
	if addr >= len(out) {
		out = append(out, make(Image, addr+1-len(out))...)
	}
	out[addr] = value
	return out, nil
}

func (img Image) String() string {
	var sb strings.Builder
	for i, v := range img {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
