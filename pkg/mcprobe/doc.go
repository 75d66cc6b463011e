/*
Package mcprobe 提供Minecraft服务器的地址解析与状态探测功能。

主要特性:

  - 地址解析：支持IPv4、方括号IPv6和域名，端口可省略
  - Java版探测：通过服务器列表Ping协议获取MOTD、玩家数、版本和图标
  - 基岩版探测：通过RakNet无连接Ping获取同等信息
  - 回退策略：Java探测失败后自动回退到基岩版，单协议单次尝试

此包依赖github.com/xrjr/mcutils实现Java版协议，
依赖github.com/sandertv/go-raknet实现基岩版协议。

基本用法:

	target, err := mcprobe.ParseTarget("play.example.com:25565")
	if err != nil {
		// 处理错误
	}

	prober := mcprobe.NewProber(5 * time.Second)
	status, err := prober.Probe(ctx, target)
	if err != nil {
		var perr *mcprobe.ProbeError
		if errors.As(err, &perr) {
			// 按perr.Kind区分超时/拒绝/无效响应
		}
	}
*/
package mcprobe
