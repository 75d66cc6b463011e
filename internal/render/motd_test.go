package render

import (
	"image/color"
	"testing"
)

func TestParseFormatCodes(t *testing.T) {
	base := color.White

	spans := ParseFormatCodes("§6牛腩小镇§r欢迎你", base)
	if len(spans) != 2 {
		t.Fatalf("Span数量 = %d, 期望 2: %+v", len(spans), spans)
	}
	if spans[0].Text != "牛腩小镇" || spans[0].Color != MinecraftFormatColor['6'] {
		t.Errorf("第一段 = %+v", spans[0])
	}
	if spans[1].Text != "欢迎你" || spans[1].Color != base {
		t.Errorf("第二段 = %+v", spans[1])
	}
}

func TestParseFormatCodesBold(t *testing.T) {
	spans := ParseFormatCodes("§l粗体§c红字", color.White)
	if len(spans) != 2 {
		t.Fatalf("Span数量 = %d: %+v", len(spans), spans)
	}
	if !spans[0].Bold {
		t.Error("§l之后应为粗体")
	}
	// 颜色代码清除粗体
	if spans[1].Bold {
		t.Error("颜色代码应清除粗体")
	}
	if spans[1].Color != MinecraftFormatColor['c'] {
		t.Errorf("第二段颜色 = %v", spans[1].Color)
	}
}

func TestParseFormatCodesEdgeCases(t *testing.T) {
	// 无格式控制符
	spans := ParseFormatCodes("plain text", color.White)
	if len(spans) != 1 || spans[0].Text != "plain text" {
		t.Errorf("纯文本 = %+v", spans)
	}

	// 样式代码被丢弃
	spans = ParseFormatCodes("§kx§my§nz", color.White)
	if len(spans) != 1 || spans[0].Text != "xyz" {
		t.Errorf("样式代码未丢弃: %+v", spans)
	}

	// §x引导的十六进制颜色序列整段丢弃，hex位不切换调色板颜色
	spans = ParseFormatCodes("§x§f§a§0§0§5§5hex色", color.White)
	if len(spans) != 1 || spans[0].Text != "hex色" || spans[0].Color != color.White {
		t.Errorf("十六进制颜色序列未整段丢弃: %+v", spans)
	}

	// 截断的十六进制序列只丢弃已有的hex组
	spans = ParseFormatCodes("§x§f§ftext", color.White)
	if len(spans) != 1 || spans[0].Text != "text" || spans[0].Color != color.White {
		t.Errorf("截断的十六进制序列处理错误: %+v", spans)
	}

	// §x之后的非hex代码不被吞掉
	spans = ParseFormatCodes("§x§f§f§g文本", color.White)
	if len(spans) != 1 || spans[0].Text != "§g文本" || spans[0].Color != color.White {
		t.Errorf("§x不应吞掉非hex代码: %+v", spans)
	}

	// 末尾孤立的§原样保留
	spans = ParseFormatCodes("text§", color.White)
	if len(spans) != 1 || spans[0].Text != "text§" {
		t.Errorf("孤立§处理错误: %+v", spans)
	}

	// 未知代码不当作格式控制符
	spans = ParseFormatCodes("a§zb", color.White)
	if len(spans) != 1 || spans[0].Text != "a§zb" {
		t.Errorf("未知代码处理错误: %+v", spans)
	}

	// 空字符串
	if spans := ParseFormatCodes("", color.White); len(spans) != 0 {
		t.Errorf("空字符串应无Span: %+v", spans)
	}
}

func TestStripFormatCodes(t *testing.T) {
	if got := StripFormatCodes("§6§lHypixel§r Network"); got != "Hypixel Network" {
		t.Errorf("StripFormatCodes = %q", got)
	}
}
