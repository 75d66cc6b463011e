package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // 个别服务器的favicon实际是JPEG
	_ "image/png"
	"strings"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"city.newnan/motd-bot/pkg/mcprobe"
)

// 卡片布局常量
const (
	cardWidth  = 700
	cardHeight = 170

	cardCornerRadius = 12.0
	cardMargin       = 25.0

	iconSize = 100.0
	iconX    = cardMargin
	iconY    = 35.0

	textX    = iconX + iconSize + 25.0
	textMaxX = cardWidth - cardMargin

	motdLine1Y = 58.0
	motdLine2Y = 90.0
	infoLineY  = 122.0
	sampleY    = 150.0
)

// 卡片配色
var (
	cardBackground = color.RGBA{0x18, 0x18, 0x1c, 0xff}
	textPrimary    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	textSecondary  = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	textGood       = color.RGBA{0x55, 0xff, 0x55, 0xff}
	textBad        = color.RGBA{0xff, 0x55, 0x55, 0xff}
)

// Renderer 将服务器状态组合成固定布局的卡片图片
//
// 字体face在创建时注入，渲染本身是StatusResult的纯函数。
type Renderer struct {
	face font.Face
}

// NewRenderer 创建卡片渲染器
func NewRenderer(face font.Face) *Renderer {
	return &Renderer{face: face}
}

// LoadFontFace 从TTF文件加载指定字号的字体
//
// 字体缺失属于部署配置错误，调用方应在启动时加载并以失败终止，
// 而不是把错误留到每次请求。
func LoadFontFace(path string, points float64) (font.Face, error) {
	face, err := gg.LoadFontFace(path, points)
	if err != nil {
		return nil, fmt.Errorf("加载字体失败 %s: %w", path, err)
	}
	return face, nil
}

// Render 渲染状态卡片，返回PNG数据
func (r *Renderer) Render(status *mcprobe.StatusResult) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetFontFace(r.face)

	// 深色圆角背景，圆角外保持透明
	dc.DrawRoundedRectangle(0, 0, cardWidth, cardHeight, cardCornerRadius)
	dc.SetColor(cardBackground)
	dc.Fill()

	r.drawIcon(dc, status.Favicon)

	if status.Online {
		r.drawOnline(dc, status)
	} else {
		r.drawOffline(dc, status)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码卡片PNG失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawOnline 绘制在线服务器的状态内容
func (r *Renderer) drawOnline(dc *gg.Context, status *mcprobe.StatusResult) {
	// MOTD最多两行
	lines := strings.Split(status.Motd, "\n")
	r.drawSpans(dc, ParseFormatCodes(lines[0], textPrimary), textX, motdLine1Y)
	if len(lines) > 1 {
		r.drawSpans(dc, ParseFormatCodes(lines[1], textPrimary), textX, motdLine2Y)
	}

	// 玩家数右对齐在第一行
	players := fmt.Sprintf("%d/%d", status.Players, status.MaxPlayers)
	r.drawRightAligned(dc, players, textGood, textMaxX, motdLine1Y)

	// 版本、协议、延迟
	version := StripFormatCodes(status.Version)
	info := fmt.Sprintf("%s  |  %s  |  %.0fms", editionLabel(status.Edition), version, status.Latency)
	r.drawSpans(dc, []Span{{Text: info, Color: textSecondary}}, textX, infoLineY)

	// 玩家样本（最多5个）
	if len(status.Sample) > 0 {
		sample := status.Sample
		if len(sample) > 5 {
			sample = sample[:5]
		}
		text := "在线: " + strings.Join(sample, "、")
		r.drawSpans(dc, []Span{{Text: text, Color: textSecondary}}, textX, sampleY)
	}
}

// drawOffline 绘制离线占位内容
func (r *Renderer) drawOffline(dc *gg.Context, status *mcprobe.StatusResult) {
	r.drawSpans(dc, []Span{{Text: "服务器离线", Color: textBad, Bold: true}}, textX, motdLine1Y)

	target := mcprobe.ServerTarget{Host: status.Host, Port: status.Port}
	if status.Host != "" {
		r.drawSpans(dc, []Span{{Text: target.String(), Color: textSecondary}}, textX, motdLine2Y)
	}
}

// drawIcon 绘制服务器图标，favicon缺失或损坏时使用默认图标
func (r *Renderer) drawIcon(dc *gg.Context, favicon []byte) {
	if favicon != nil {
		if img, _, err := image.Decode(bytes.NewReader(favicon)); err == nil {
			scaled := image.NewRGBA(image.Rect(0, 0, int(iconSize), int(iconSize)))
			xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Over, nil)
			dc.DrawImage(scaled, int(iconX), int(iconY))
			return
		}
	}

	// 默认图标：草方块样式的色块
	dc.DrawRectangle(iconX, iconY, iconSize, iconSize)
	dc.SetColor(color.RGBA{0x79, 0x55, 0x3a, 0xff})
	dc.Fill()
	dc.DrawRectangle(iconX, iconY, iconSize, iconSize*0.3)
	dc.SetColor(color.RGBA{0x5d, 0x9c, 0x3f, 0xff})
	dc.Fill()
}

// drawSpans 从(x,y)基线开始依次绘制Span，超出右边界时截断
func (r *Renderer) drawSpans(dc *gg.Context, spans []Span, x, y float64) {
	for _, span := range spans {
		text := span.Text
		w, _ := dc.MeasureString(text)

		// 逐字符截断直到放得下
		for w > textMaxX-x && text != "" {
			runes := []rune(text)
			text = string(runes[:len(runes)-1])
			w, _ = dc.MeasureString(text)
		}
		if text == "" {
			return
		}

		dc.SetColor(span.Color)
		dc.DrawString(text, x, y)
		if span.Bold {
			// 没有独立的粗体face，重叠偏移近似
			dc.DrawString(text, x+0.6, y)
		}
		x += w

		if len(text) < len(span.Text) {
			return
		}
	}
}

// drawRightAligned 以右边界对齐绘制单色文本
func (r *Renderer) drawRightAligned(dc *gg.Context, text string, c color.Color, rightX, y float64) {
	w, _ := dc.MeasureString(text)
	dc.SetColor(c)
	dc.DrawString(text, rightX-w, y)
}

// editionLabel 返回协议版本的展示名称
func editionLabel(edition mcprobe.Edition) string {
	switch edition {
	case mcprobe.EditionBedrock:
		return "基岩版"
	default:
		return "Java版"
	}
}
