package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"city.newnan/motd-bot/internal/render"
	"city.newnan/motd-bot/pkg/mcprobe"
)

// CLI颜色设置
var (
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	labelColor   = color.New(color.FgCyan, color.Bold)
)

// CLI选项
type cliOptions struct {
	timeout     time.Duration
	edition     string
	output      string
	fontPath    string
	fontSize    float64
	enableColor bool
}

func main() {
	options := parseFlags()
	color.NoColor = !options.enableColor

	address := flag.Arg(0)
	target, err := mcprobe.ParseTarget(address)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "地址解析失败: %v\n", err)
		os.Exit(1)
	}

	prober := mcprobe.NewProber(options.timeout)
	switch options.edition {
	case "auto":
	case "java":
		prober.Prefer = mcprobe.EditionJava
	case "bedrock":
		prober.Prefer = mcprobe.EditionBedrock
	default:
		errorColor.Fprintf(os.Stderr, "未知的协议偏好: %s（可选 auto/java/bedrock）\n", options.edition)
		os.Exit(1)
	}

	status, err := prober.Probe(context.Background(), target)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "服务器离线或不可达: %v\n", err)
		os.Exit(1)
	}

	printStatus(status)

	// 可选地把状态卡片写到文件
	if options.output != "" {
		if err := writeCard(status, options); err != nil {
			errorColor.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		successColor.Printf("状态卡片已保存: %s\n", options.output)
	}
}

// parseFlags 解析命令行参数
func parseFlags() cliOptions {
	options := cliOptions{}

	flag.DurationVar(&options.timeout, "timeout", 5*time.Second, "单次探测超时")
	flag.StringVar(&options.edition, "edition", "auto", "协议偏好 (auto/java/bedrock)，auto按Java→基岩版回退")
	flag.StringVar(&options.output, "o", "", "把状态卡片PNG保存到指定路径")
	flag.StringVar(&options.fontPath, "font", "assets/font.ttf", "卡片字体文件路径（仅保存卡片时需要）")
	flag.Float64Var(&options.fontSize, "font-size", 22, "卡片字体字号")
	flag.BoolVar(&options.enableColor, "color", isatty.IsTerminal(os.Stdout.Fd()), "启用彩色输出")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "用法: motdcli [选项] <server_ip>[:<port>]")
		flag.Usage()
		os.Exit(1)
	}

	return options
}

// printStatus 打印探测结果摘要
func printStatus(status *mcprobe.StatusResult) {
	successColor.Println("服务器在线!")

	labelColor.Print("协议:   ")
	fmt.Println(editionName(status.Edition))
	labelColor.Print("地址:   ")
	target := mcprobe.ServerTarget{Host: status.Host, Port: status.Port}
	fmt.Println(target.String())
	labelColor.Print("描述:   ")
	fmt.Println(strings.ReplaceAll(render.StripFormatCodes(status.Motd), "\n", " / "))
	labelColor.Print("版本:   ")
	fmt.Printf("%s (协议号 %d)\n", render.StripFormatCodes(status.Version), status.Protocol)
	labelColor.Print("玩家:   ")
	fmt.Printf("%d/%d\n", status.Players, status.MaxPlayers)
	if len(status.Sample) > 0 {
		labelColor.Print("在线:   ")
		fmt.Println(strings.Join(status.Sample, ", "))
	}
	labelColor.Print("延迟:   ")
	fmt.Printf("%.0f ms\n", status.Latency)
}

// writeCard 渲染状态卡片并写入文件
func writeCard(status *mcprobe.StatusResult, options cliOptions) error {
	face, err := render.LoadFontFace(options.fontPath, options.fontSize)
	if err != nil {
		return fmt.Errorf("加载字体失败: %w", err)
	}

	image, err := render.NewRenderer(face).Render(status)
	if err != nil {
		return fmt.Errorf("渲染卡片失败: %w", err)
	}

	if err := os.WriteFile(options.output, image, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

// editionName 返回协议版本的展示名称
func editionName(edition mcprobe.Edition) string {
	if edition == mcprobe.EditionBedrock {
		return "基岩版 (Bedrock)"
	}
	return "Java版"
}
