package mcprobe

import (
	"errors"
	"fmt"
)

// AddressFamily 表示服务器地址的类型
type AddressFamily string

const (
	// FamilyIPv4 IPv4地址
	FamilyIPv4 AddressFamily = "ipv4"

	// FamilyIPv6 IPv6地址
	FamilyIPv6 AddressFamily = "ipv6"

	// FamilyDomain 域名
	FamilyDomain AddressFamily = "domain"
)

// Edition 表示Minecraft服务器的版本类型
type Edition string

const (
	// EditionJava Java版（状态查询走TCP服务器列表Ping协议）
	EditionJava Edition = "java"

	// EditionBedrock 基岩版（状态查询走RakNet的UDP无连接Ping）
	EditionBedrock Edition = "bedrock"
)

// 协议默认端口

const (
	// DefaultJavaPort Java版默认端口
	DefaultJavaPort = 25565

	// DefaultBedrockPort 基岩版默认端口
	DefaultBedrockPort = 19132
)

// ErrInvalidAddress 表示用户输入的服务器地址无法解析
var ErrInvalidAddress = errors.New("无效的服务器地址")

// ServerTarget 表示一次查询的目标服务器
//
// 每次命令调用创建一个，使用后即丢弃，不跨调用保存。
type ServerTarget struct {
	Host   string        // 主机名或IP（IPv6不带方括号）
	Port   int           // 端口，0表示用户未指定（由Prober按协议选择默认端口）
	Family AddressFamily // 地址类型
}

// String 返回目标的展示形式，IPv6地址会加回方括号
func (t *ServerTarget) String() string {
	host := t.Host
	if t.Family == FamilyIPv6 {
		host = "[" + host + "]"
	}
	if t.Port == 0 {
		return host
	}
	return fmt.Sprintf("%s:%d", host, t.Port)
}

// FailKind 表示探测失败的类型
type FailKind string

const (
	// FailTimeout 连接或读取超时
	FailTimeout FailKind = "timeout"

	// FailRefused 连接被拒绝
	FailRefused FailKind = "refused"

	// FailInvalidResponse 服务器返回了无法解析的数据
	FailInvalidResponse FailKind = "invalid-response"
)

// ProbeError 表示一次探测的类型化失败
type ProbeError struct {
	Kind    FailKind // 失败类型
	Edition Edition  // 失败发生在哪个协议上
	Err     error    // 底层错误
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s探测失败(%s): %v", e.Edition, e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// StatusResult 表示一次成功探测得到的归一化服务器状态
//
// 由Prober产出，被Renderer消费一次，不跨调用保存。
type StatusResult struct {
	// 基本状态

	Online  bool    // 服务器是否在线
	Edition Edition // 实际响应的协议版本
	Host    string  // 实际探测的主机
	Port    int     // 实际探测的端口

	// 服务器信息

	Motd       string   // 服务器描述（MOTD），可能包含§格式控制符和换行
	Players    int      // 当前在线玩家数量
	MaxPlayers int      // 最大玩家数量
	Sample     []string // 在线玩家样本（可能为空）
	Version    string   // 服务器版本名称
	Protocol   int      // 协议版本号
	Latency    float64  // 延迟，单位：毫秒

	// 图标

	Favicon []byte // 服务器图标（PNG数据），可能为nil
}

// MinecraftStatusData 相关结构体 - 用于解析Java版Ping返回的JSON数据

// MCOnlinePlayer 表示在线玩家信息
type MCOnlinePlayer struct {
	ID   string `json:"id"`   // 玩家UUID
	Name string `json:"name"` // 玩家名称
}

// MCVersion 表示服务器版本信息
type MCVersion struct {
	Name     string `json:"name"`     // 版本名称
	Protocol int    `json:"protocol"` // 协议版本
}

// MCPlayers 表示玩家信息
type MCPlayers struct {
	Max    int              `json:"max"`    // 最大玩家数
	Online int              `json:"online"` // 在线玩家数
	Sample []MCOnlinePlayer `json:"sample"` // 在线玩家样本
}

// MinecraftStatus 表示Java版服务器状态的完整数据结构
type MinecraftStatus struct {
	Version     MCVersion   `json:"version"`     // 版本信息
	Players     MCPlayers   `json:"players"`     // 玩家信息
	Description interface{} `json:"description"` // 服务器描述，可能是字符串或对象
	Favicon     string      `json:"favicon"`     // 服务器图标（Base64编码的data URI）
}

// GetDescriptionText 从不同格式的描述字段中提取文本
//
// 新版服务器返回的描述是Chat组件对象，旧版直接返回字符串，
// 两种格式都要兼容；extra链中的格式信息丢弃，只保留文本。
func (m *MinecraftStatus) GetDescriptionText() string {
	switch desc := m.Description.(type) {
	case string:
		// 直接是字符串的情况
		return desc
	case map[string]interface{}:
		// 是对象的情况
		result := ""
		if text, ok := desc["text"].(string); ok {
			result = text
		}

		// 处理可能存在的额外文本
		if extra, ok := desc["extra"].([]interface{}); ok {
			for _, item := range extra {
				if extraItem, ok := item.(map[string]interface{}); ok {
					if extraText, ok := extraItem["text"].(string); ok {
						result += extraText
					}
				}
			}
		}

		return result
	}

	// 默认返回空字符串
	return ""
}
