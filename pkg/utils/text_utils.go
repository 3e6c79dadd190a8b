package utils

import (
	"strings"

	"github.com/rivo/uniseg"
)

// GraphemeSplitter 将标题文本按字素簇（grapheme cluster）拆分为逐字段落
// 支持中文、emoji 等多码点字符，不会把组合字符拆散
//
// 返回:
//   - []string: 每个元素为一个可独立显示的字素
type GraphemeSplitter struct{}

// Split 拆分文本为字素簇序列
func (GraphemeSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	var segments []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		segments = append(segments, g.Str())
	}
	return segments
}

// WordSplitter 将标题文本按单词拆分
// 每个单词携带其后的空白，拼接后与原文宽度一致
type WordSplitter struct{}

// Split 拆分文本为单词序列（保留单词间空白）
func (WordSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	var segments []string
	var current strings.Builder
	inSpace := false

	for _, r := range text {
		isSpace := r == ' ' || r == '\t'
		if inSpace && !isSpace && current.Len() > 0 {
			// 空白段结束，前一个单词（含尾随空白）完成
			segments = append(segments, current.String())
			current.Reset()
		}
		current.WriteRune(r)
		inSpace = isSpace
	}

	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}
