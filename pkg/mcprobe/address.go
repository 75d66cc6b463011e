package mcprobe

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// 域名语法：字母数字开头结尾的label，用点分隔，允许中间有连字符
var domainPattern = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*$`)

// ParseTarget 将用户输入的地址字符串解析为ServerTarget
//
// 支持的形式：
//   - 域名或IPv4，可选端口：play.example.com、play.example.com:25565、1.2.3.4:25565
//   - 方括号IPv6，可选端口：[2001:db8::1]、[2001:db8::1]:19132
//   - 裸IPv6（不带端口）：2001:db8::1
//
// 未指定端口时Port为0，由Prober按协议补默认端口。
func ParseTarget(raw string) (*ServerTarget, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidAddress
	}

	// 方括号形式的IPv6：[addr] 或 [addr]:port
	if strings.HasPrefix(raw, "[") {
		end := strings.Index(raw, "]")
		if end < 0 {
			return nil, fmt.Errorf("%w: 方括号不匹配", ErrInvalidAddress)
		}

		host := raw[1:end]
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() != nil {
			return nil, fmt.Errorf("%w: 方括号内不是合法的IPv6地址", ErrInvalidAddress)
		}

		port := 0
		rest := raw[end+1:]
		if rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return nil, fmt.Errorf("%w: 端口格式错误", ErrInvalidAddress)
			}
			p, err := parsePort(rest[1:])
			if err != nil {
				return nil, err
			}
			port = p
		}

		return &ServerTarget{Host: host, Port: port, Family: FamilyIPv6}, nil
	}

	// 裸IP（无端口）：IPv4或IPv6字面量
	if ip := net.ParseIP(raw); ip != nil {
		family := FamilyIPv6
		if ip.To4() != nil {
			family = FamilyIPv4
		}
		return &ServerTarget{Host: raw, Family: family}, nil
	}

	// host:port 形式（裸IPv6会因为冒号过多在上一步之后被拒绝）
	host, port := raw, 0
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		if strings.Count(raw, ":") > 1 {
			return nil, fmt.Errorf("%w: IPv6地址需要使用方括号形式 [addr]:port", ErrInvalidAddress)
		}

		p, err := parsePort(raw[idx+1:])
		if err != nil {
			return nil, err
		}
		host, port = raw[:idx], p
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return nil, fmt.Errorf("%w: IPv6地址需要使用方括号形式", ErrInvalidAddress)
		}
		return &ServerTarget{Host: host, Port: port, Family: FamilyIPv4}, nil
	}

	if !isValidDomain(host) {
		return nil, fmt.Errorf("%w: %q 不是合法的域名或IP", ErrInvalidAddress, host)
	}

	return &ServerTarget{Host: host, Port: port, Family: FamilyDomain}, nil
}

// parsePort 解析并校验端口号
func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return 0, fmt.Errorf("%w: 端口必须是1-65535之间的数字", ErrInvalidAddress)
	}
	return p, nil
}

// isValidDomain 校验域名语法（RFC 1035，整体不超过253字符，label不超过63字符）
func isValidDomain(host string) bool {
	if len(host) == 0 || len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) > 63 {
			return false
		}
	}
	return domainPattern.MatchString(host)
}
