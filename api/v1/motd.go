package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"city.newnan/motd-bot/internal/bot"
	"city.newnan/motd-bot/internal/command"
	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/model"
	"city.newnan/motd-bot/pkg/mcprobe"
)

// MotdController 服务器状态相关API控制器
type MotdController struct {
	Prober   command.Prober
	Renderer command.Renderer
	Handler  *command.Handler
	Config   *config.Config
}

// NewMotdController 创建状态控制器
func NewMotdController(cfg *config.Config, prober command.Prober, renderer command.Renderer, handler *command.Handler) *MotdController {
	return &MotdController{
		Prober:   prober,
		Renderer: renderer,
		Handler:  handler,
		Config:   cfg,
	}
}

// Status 查询服务器状态
// @Summary 查询Minecraft服务器状态
// @Description 按Java→基岩版回退策略探测服务器，返回归一化状态
// @Tags 状态查询
// @Produce json
// @Param address query string true "服务器地址，host[:port]"
// @Success 200 {object} model.Response{data=model.StatusResponse} "查询成功"
// @Failure 400 {object} model.Response "地址格式错误"
// @Failure 502 {object} model.Response "服务器不可达"
// @Router /api/v1/motd/status [get]
func (c *MotdController) Status(ctx *gin.Context) {
	status, ok := c.probe(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, model.SuccessResponse(model.NewStatusResponse(status)))
}

// Card 查询服务器状态并返回卡片图片
// @Summary 获取服务器状态卡片
// @Description 探测服务器并渲染PNG状态卡片
// @Tags 状态查询
// @Produce png
// @Param address query string true "服务器地址，host[:port]"
// @Success 200 {file} png "状态卡片"
// @Failure 400 {object} model.Response "地址格式错误"
// @Failure 502 {object} model.Response "服务器不可达"
// @Router /api/v1/motd/card [get]
func (c *MotdController) Card(ctx *gin.Context) {
	status, ok := c.probe(ctx)
	if !ok {
		return
	}

	image, err := c.Renderer.Render(status)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, model.ErrorResponse(http.StatusInternalServerError, "渲染卡片失败: "+err.Error()))
		return
	}

	ctx.Data(http.StatusOK, "image/png", image)
}

// Event 处理聊天框架的HTTP事件回调
// @Summary 聊天事件回调
// @Description 接收OneBot风格的消息事件，命中/motd命令时返回快速回复
// @Tags 机器人
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "快速回复"
// @Success 204 "事件与本插件无关"
// @Router /api/v1/motd/event [post]
func (c *MotdController) Event(ctx *gin.Context) {
	var event bot.Event
	if err := ctx.ShouldBindJSON(&event); err != nil {
		ctx.JSON(http.StatusBadRequest, model.ErrorResponse(http.StatusBadRequest, "无效的事件数据: "+err.Error()))
		return
	}

	if event.PostType != "message" {
		ctx.Status(http.StatusNoContent)
		return
	}

	args, ok := c.Handler.Match(event.RawMessage)
	if !ok {
		ctx.Status(http.StatusNoContent)
		return
	}

	reply := c.Handler.Handle(ctx.Request.Context(), args)

	var segments []bot.Segment
	if reply.ImagePNG != nil {
		segments = append(segments, bot.ImageSegment(reply.ImagePNG))
	}
	if reply.Text != "" {
		segments = append(segments, bot.TextSegment(reply.Text))
	}

	ctx.JSON(http.StatusOK, gin.H{"reply": segments})
}

// probe 解析address参数并执行探测，失败时直接写出错误响应
func (c *MotdController) probe(ctx *gin.Context) (*mcprobe.StatusResult, bool) {
	address := ctx.Query("address")
	if address == "" {
		ctx.JSON(http.StatusBadRequest, model.ErrorResponse(http.StatusBadRequest, "缺少address参数"))
		return nil, false
	}

	target, err := mcprobe.ParseTarget(address)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.ErrorResponse(http.StatusBadRequest, "地址格式错误: "+err.Error()))
		return nil, false
	}

	status, err := c.Prober.Probe(ctx.Request.Context(), target)
	if err != nil {
		code := http.StatusBadGateway
		var perr *mcprobe.ProbeError
		if errors.As(err, &perr) && perr.Kind == mcprobe.FailTimeout {
			code = http.StatusGatewayTimeout
		}
		ctx.JSON(code, model.ErrorResponse(code, "探测失败: "+err.Error()))
		return nil, false
	}

	return status, true
}
