package mcprobe

import (
	"fmt"
	"strconv"
	"strings"
)

// parseBedrockPong 解析基岩版无连接Ping返回的分号分隔字段
//
// 格式（RakNet unconnected pong的附加数据）：
//
//	MCPE;主MOTD;协议号;版本;在线人数;最大人数;服务器GUID;副MOTD;游戏模式;...
//
// 前6个字段是必需的，后面的字段旧版服务器可能缺失。
func parseBedrockPong(data []byte) (*StatusResult, error) {
	fields := strings.Split(string(data), ";")
	if len(fields) < 6 {
		return nil, fmt.Errorf("基岩版Pong数据字段不足: %d", len(fields))
	}

	edition := fields[0]
	if edition != "MCPE" && edition != "MCEE" {
		return nil, fmt.Errorf("未知的基岩版服务器类型: %q", edition)
	}

	protocol, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("协议号无法解析: %q", fields[2])
	}

	online, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("在线人数无法解析: %q", fields[4])
	}

	max, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("最大人数无法解析: %q", fields[5])
	}

	motd := fields[1]
	if len(fields) > 7 && fields[7] != "" {
		// 副MOTD作为第二行
		motd += "\n" + fields[7]
	}

	version := fields[3]
	if len(fields) > 8 && fields[8] != "" {
		// 展示时带上游戏模式
		version += " " + fields[8]
	}

	return &StatusResult{
		Online:     true,
		Edition:    EditionBedrock,
		Motd:       motd,
		Players:    online,
		MaxPlayers: max,
		Version:    version,
		Protocol:   protocol,
	}, nil
}
