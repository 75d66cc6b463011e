package mcprobe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sandertv/go-raknet"
	"github.com/xrjr/mcutils/pkg/ping"
	"github.com/xrjr/mcutils/pkg/query"
)

// Prober 对Minecraft服务器执行状态探测
//
// 策略：用户指定了端口时，先在该端口上尝试Java协议，失败后在同一端口
// 尝试基岩版协议；未指定端口时，先探测Java默认端口25565，失败后探测
// 基岩版默认端口19132。每个协议只尝试一次，不做重试。
type Prober struct {
	Timeout            time.Duration // 单次探测超时
	Prefer             Edition       // 协议偏好，为空时按回退策略探测
	JavaDefaultPort    int           // Java版默认端口
	BedrockDefaultPort int           // 基岩版默认端口

	// 探测函数，测试时可替换
	javaPing    func(host string, port int) (ping.JSON, int, error)
	javaQuery   func(host string, port int) (query.FullStat, error)
	bedrockPing func(addr string, timeout time.Duration) ([]byte, error)
}

// NewProber 创建探测器，timeout为0时使用5秒
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		Timeout:            timeout,
		JavaDefaultPort:    DefaultJavaPort,
		BedrockDefaultPort: DefaultBedrockPort,
		javaPing:           ping.Ping,
		javaQuery:          query.QueryFull,
		bedrockPing:        raknet.PingTimeout,
	}
}

// Probe 按回退策略探测目标服务器，返回归一化状态
//
// 设置了Prefer时只探测指定协议；否则两个协议都失败时返回
// Java协议的ProbeError（主协议）。
func (p *Prober) Probe(ctx context.Context, target *ServerTarget) (*StatusResult, error) {
	javaPort, bedrockPort := target.Port, target.Port
	if target.Port == 0 {
		javaPort, bedrockPort = p.JavaDefaultPort, p.BedrockDefaultPort
	}

	// 指定了协议偏好时只探测该协议，不做回退
	switch p.Prefer {
	case EditionJava:
		return p.probeJava(ctx, target.Host, javaPort)
	case EditionBedrock:
		return p.probeBedrock(ctx, target.Host, bedrockPort)
	}

	result, javaErr := p.probeJava(ctx, target.Host, javaPort)
	if javaErr == nil {
		return result, nil
	}

	if result, err := p.probeBedrock(ctx, target.Host, bedrockPort); err == nil {
		return result, nil
	}

	return nil, javaErr
}

// probeJava 通过服务器列表Ping协议探测Java版服务器
func (p *Prober) probeJava(ctx context.Context, host string, port int) (*StatusResult, error) {
	start := time.Now()
	properties, latency, err := runWithTimeout2(ctx, p.Timeout, func() (ping.JSON, int, error) {
		return p.javaPing(host, port)
	})
	if err != nil {
		return nil, &ProbeError{Kind: classifyError(err), Edition: EditionJava, Err: err}
	}

	// 将Ping返回的属性经由JSON转换为结构体
	jsonData, err := sonic.Marshal(properties)
	if err != nil {
		return nil, &ProbeError{Kind: FailInvalidResponse, Edition: EditionJava, Err: fmt.Errorf("序列化服务器属性失败: %v", err)}
	}

	var mcStatus MinecraftStatus
	if err := sonic.Unmarshal(jsonData, &mcStatus); err != nil {
		return nil, &ProbeError{Kind: FailInvalidResponse, Edition: EditionJava, Err: fmt.Errorf("解析服务器状态失败: %v", err)}
	}

	result := &StatusResult{
		Online:     true,
		Edition:    EditionJava,
		Host:       host,
		Port:       port,
		Motd:       mcStatus.GetDescriptionText(),
		Players:    mcStatus.Players.Online,
		MaxPlayers: mcStatus.Players.Max,
		Version:    mcStatus.Version.Name,
		Protocol:   mcStatus.Version.Protocol,
		Latency:    float64(latency),
	}
	if result.Latency == 0 {
		result.Latency = float64(time.Since(start).Milliseconds())
	}

	for _, player := range mcStatus.Players.Sample {
		if player.Name != "" {
			result.Sample = append(result.Sample, player.Name)
		}
	}

	// Ping样本为空时尝试GameSpy完整查询补充玩家列表，失败不影响探测结果
	if len(result.Sample) == 0 && result.Players > 0 {
		if full, err := runWithTimeout1(ctx, p.Timeout, func() (query.FullStat, error) {
			return p.javaQuery(host, port)
		}); err == nil {
			result.Sample = append(result.Sample, full.OnlinePlayers...)
		}
	}

	result.Favicon = decodeFavicon(mcStatus.Favicon)

	return result, nil
}

// probeBedrock 通过RakNet无连接Ping探测基岩版服务器
func (p *Prober) probeBedrock(ctx context.Context, host string, port int) (*StatusResult, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	start := time.Now()
	pong, err := runWithTimeout1(ctx, p.Timeout, func() ([]byte, error) {
		return p.bedrockPing(addr, p.Timeout)
	})
	if err != nil {
		return nil, &ProbeError{Kind: classifyError(err), Edition: EditionBedrock, Err: err}
	}
	latency := time.Since(start)

	result, err := parseBedrockPong(pong)
	if err != nil {
		return nil, &ProbeError{Kind: FailInvalidResponse, Edition: EditionBedrock, Err: err}
	}

	result.Host = host
	result.Port = port
	result.Latency = float64(latency.Milliseconds())

	return result, nil
}

// classifyError 将底层网络错误归类为探测失败类型
func classifyError(err error) FailKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, errProbeTimeout) {
		return FailTimeout
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return FailTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || strings.Contains(err.Error(), "connection refused") {
		return FailRefused
	}

	return FailInvalidResponse
}

// decodeFavicon 解码 data:image/png;base64, 形式的服务器图标
func decodeFavicon(favicon string) []byte {
	if favicon == "" {
		return nil
	}

	idx := strings.Index(favicon, "base64,")
	if idx < 0 {
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(favicon[idx+len("base64,"):]))
	if err != nil {
		return nil
	}
	return data
}

// errProbeTimeout 表示在底层库返回之前本地超时已到
var errProbeTimeout = errors.New("探测超时")

// runWithTimeout1 在独立goroutine中执行fn，在超时或ctx取消时提前返回
//
// mcutils的便捷函数不提供超时入口，只能在外层限制等待时间；
// 超时后fn的goroutine会在底层连接超时后自行结束。
func runWithTimeout1[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{v, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-ch:
		return out.value, out.err
	case <-timer.C:
		return zero, errProbeTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// runWithTimeout2 同runWithTimeout1，用于返回两个值的探测函数
func runWithTimeout2[T any, U any](ctx context.Context, timeout time.Duration, fn func() (T, U, error)) (T, U, error) {
	type outcome struct {
		v1  T
		v2  U
		err error
	}

	ch := make(chan outcome, 1)
	go func() {
		v1, v2, err := fn()
		ch <- outcome{v1, v2, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero1 T
	var zero2 U
	select {
	case out := <-ch:
		return out.v1, out.v2, out.err
	case <-timer.C:
		return zero1, zero2, errProbeTimeout
	case <-ctx.Done():
		return zero1, zero2, ctx.Err()
	}
}
