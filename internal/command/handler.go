package command

import (
	"context"
	"errors"
	"log"
	"strings"

	"city.newnan/motd-bot/pkg/mcprobe"
)

// 用户可见文案
const (
	usageText = "用法:\n" +
		"/motd <server_ip>[:<port>]\n" +
		"示例:\n" +
		"/motd play.example.com:25565\n" +
		"port 可省略，默认 25565（Java 版），基岩版自动回退到 19132"

	invalidAddressText = "参数格式错误，请使用 /motd <server_ip>[:<port>]"
)

// Prober 状态探测能力
type Prober interface {
	Probe(ctx context.Context, target *mcprobe.ServerTarget) (*mcprobe.StatusResult, error)
}

// Renderer 状态卡片渲染能力
type Renderer interface {
	Render(status *mcprobe.StatusResult) ([]byte, error)
}

// Reply 表示命令处理的回复内容
//
// Text和ImagePNG至多一个非空；任何失败都只体现为Text，
// 不会有未处理的错误穿透到聊天框架。
type Reply struct {
	Text     string
	ImagePNG []byte
}

// Handler 处理/motd命令：解析参数、探测服务器、渲染卡片
//
// 每次调用独立完成，不保存任何跨调用状态。
type Handler struct {
	prefix   string
	prober   Prober
	renderer Renderer
}

// NewHandler 创建命令处理器
func NewHandler(prefix string, prober Prober, renderer Renderer) *Handler {
	if prefix == "" {
		prefix = "/motd"
	}
	return &Handler{
		prefix:   prefix,
		prober:   prober,
		renderer: renderer,
	}
}

// Match 判断一条消息是否是本命令，是则返回命令后的参数部分
func (h *Handler) Match(message string) (string, bool) {
	message = strings.TrimSpace(message)
	if !strings.HasPrefix(message, h.prefix) {
		return "", false
	}

	rest := message[len(h.prefix):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		// 避免把 /motdxxx 当成本命令
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// Handle 执行一次命令调用：解析地址 → 探测状态 → 渲染卡片
func (h *Handler) Handle(ctx context.Context, args string) *Reply {
	if args == "" {
		return &Reply{Text: usageText}
	}

	// 只取第一个参数，忽略多余内容
	address := strings.Fields(args)[0]

	target, err := mcprobe.ParseTarget(address)
	if err != nil {
		return &Reply{Text: invalidAddressText}
	}

	status, err := h.prober.Probe(ctx, target)
	if err != nil {
		return &Reply{Text: failureText(target, err)}
	}

	image, err := h.renderer.Render(status)
	if err != nil {
		// 渲染失败属于程序问题，记录日志后给用户一句兜底
		log.Printf("渲染状态卡片失败 %s: %v", target, err)
		return &Reply{Text: "生成状态图失败，请稍后再试"}
	}

	return &Reply{ImagePNG: image}
}

// failureText 将类型化的探测失败转换为用户可见的错误文案
func failureText(target *mcprobe.ServerTarget, err error) string {
	var perr *mcprobe.ProbeError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case mcprobe.FailTimeout:
			return "查询失败：连接 " + target.String() + " 超时，服务器可能不在线"
		case mcprobe.FailRefused:
			return "查询失败：" + target.String() + " 拒绝连接"
		case mcprobe.FailInvalidResponse:
			return "查询失败：" + target.String() + " 返回了无法解析的数据"
		}
	}

	return "查询失败：" + err.Error()
}
