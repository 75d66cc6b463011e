package mcprobe

import (
	"errors"
	"testing"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		host   string
		port   int
		family AddressFamily
	}{
		{"域名不带端口", "play.example.com", "play.example.com", 0, FamilyDomain},
		{"域名带端口", "play.example.com:25565", "play.example.com", 25565, FamilyDomain},
		{"单label域名", "localhost", "localhost", 0, FamilyDomain},
		{"IPv4不带端口", "192.168.1.1", "192.168.1.1", 0, FamilyIPv4},
		{"IPv4带端口", "192.168.1.1:19132", "192.168.1.1", 19132, FamilyIPv4},
		{"裸IPv6", "2001:db8::1", "2001:db8::1", 0, FamilyIPv6},
		{"方括号IPv6不带端口", "[2001:db8::1]", "2001:db8::1", 0, FamilyIPv6},
		{"方括号IPv6带端口", "[2001:db8::1]:19132", "2001:db8::1", 19132, FamilyIPv6},
		{"带空白", "  mc.hypixel.net  ", "mc.hypixel.net", 0, FamilyDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ParseTarget(tt.input)
			if err != nil {
				t.Fatalf("ParseTarget(%q) 意外失败: %v", tt.input, err)
			}
			if target.Host != tt.host || target.Port != tt.port || target.Family != tt.family {
				t.Errorf("ParseTarget(%q) = {%s %d %s}, 期望 {%s %d %s}",
					tt.input, target.Host, target.Port, target.Family, tt.host, tt.port, tt.family)
			}
		})
	}
}

func TestParseTargetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"空字符串", ""},
		{"纯空白", "   "},
		{"端口越界", "example.com:70000"},
		{"端口为零", "example.com:0"},
		{"端口非数字", "example.com:abc"},
		{"端口为空", "example.com:"},
		{"方括号不匹配", "[2001:db8::1"},
		{"方括号内是IPv4", "[192.168.1.1]:25565"},
		{"方括号后缺少冒号", "[2001:db8::1]25565"},
		{"裸IPv6带端口", "2001:db8::1:25565"},
		{"label以连字符开头", "-bad.example.com"},
		{"非法字符", "exa mple.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTarget(tt.input)
			if err == nil {
				t.Fatalf("ParseTarget(%q) 应当失败", tt.input)
			}
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("ParseTarget(%q) 错误类型不对: %v", tt.input, err)
			}
		})
	}
}

func TestServerTargetString(t *testing.T) {
	tests := []struct {
		target ServerTarget
		want   string
	}{
		{ServerTarget{Host: "example.com", Port: 25565, Family: FamilyDomain}, "example.com:25565"},
		{ServerTarget{Host: "example.com", Family: FamilyDomain}, "example.com"},
		{ServerTarget{Host: "2001:db8::1", Port: 19132, Family: FamilyIPv6}, "[2001:db8::1]:19132"},
		{ServerTarget{Host: "2001:db8::1", Family: FamilyIPv6}, "[2001:db8::1]"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Errorf("String() = %q, 期望 %q", got, tt.want)
		}
	}
}
