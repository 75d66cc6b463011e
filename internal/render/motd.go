package render

import "image/color"

// MinecraftFormatColor 表示Minecraft格式控制符对应的RGB颜色
var MinecraftFormatColor = map[rune]color.Color{
	'0': color.RGBA{0x00, 0x00, 0x00, 0xff}, // 黑色
	'1': color.RGBA{0x00, 0x00, 0xaa, 0xff}, // 深蓝色
	'2': color.RGBA{0x00, 0xaa, 0x00, 0xff}, // 深绿色
	'3': color.RGBA{0x00, 0xaa, 0xaa, 0xff}, // 湖蓝色
	'4': color.RGBA{0xaa, 0x00, 0x00, 0xff}, // 深红色
	'5': color.RGBA{0xaa, 0x00, 0xaa, 0xff}, // 紫色
	'6': color.RGBA{0xff, 0xaa, 0x00, 0xff}, // 金色
	'7': color.RGBA{0xaa, 0xaa, 0xaa, 0xff}, // 灰色
	'8': color.RGBA{0x55, 0x55, 0x55, 0xff}, // 深灰色
	'9': color.RGBA{0x55, 0x55, 0xff, 0xff}, // 蓝色
	'a': color.RGBA{0x55, 0xff, 0x55, 0xff}, // 绿色
	'b': color.RGBA{0x55, 0xff, 0xff, 0xff}, // 天蓝色
	'c': color.RGBA{0xff, 0x55, 0x55, 0xff}, // 红色
	'd': color.RGBA{0xff, 0x55, 0xff, 0xff}, // 粉红色
	'e': color.RGBA{0xff, 0xff, 0x55, 0xff}, // 黄色
	'f': color.RGBA{0xff, 0xff, 0xff, 0xff}, // 白色
}

// Span 表示一段颜色和样式一致的文本
type Span struct {
	Text  string
	Color color.Color
	Bold  bool
}

// ParseFormatCodes 将含§格式控制符的文本切分为带颜色的Span序列
//
// 颜色代码切换当前颜色并清除粗体（与游戏内行为一致），§l开启粗体，
// §r重置到基础颜色。其余样式代码（随机字符、删除线、下划线、斜体）
// 在卡片上不渲染，直接丢弃。
func ParseFormatCodes(text string, base color.Color) []Span {
	var spans []Span
	current := Span{Color: base}

	flush := func() {
		if current.Text != "" {
			spans = append(spans, current)
			current.Text = ""
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '§' && i < len(runes)-1 {
			code := runes[i+1]
			if c, ok := MinecraftFormatColor[code]; ok {
				flush()
				current.Color = c
				current.Bold = false
				i++
				continue
			}
			switch code {
			case 'l':
				flush()
				current.Bold = true
				i++
				continue
			case 'r':
				flush()
				current.Color = base
				current.Bold = false
				i++
				continue
			case 'x':
				// §x后最多跟6组§<hex>组成RGB颜色，整段丢弃，
				// 避免hex位被误认成调色板颜色代码
				j := i + 2
				for k := 0; k < 6 && j+1 < len(runes) && runes[j] == '§' && isHexDigit(runes[j+1]); k++ {
					j += 2
				}
				i = j - 1
				continue
			case 'k', 'm', 'n', 'o':
				// 不渲染的样式代码
				i++
				continue
			}
		}

		if runes[i] == '\r' {
			continue
		}
		current.Text += string(runes[i])
	}

	flush()
	return spans
}

// isHexDigit 判断是否为十六进制字符
func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// StripFormatCodes 去掉文本中的所有§格式控制符，用于纯文本输出
func StripFormatCodes(text string) string {
	result := ""
	for _, span := range ParseFormatCodes(text, color.White) {
		result += span.Text
	}
	return result
}
