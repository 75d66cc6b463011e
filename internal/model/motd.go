package model

import (
	"encoding/base64"

	"city.newnan/motd-bot/pkg/mcprobe"
)

// StatusResponse 状态查询接口的返回数据
type StatusResponse struct {
	Online        bool     `json:"online"`
	Edition       string   `json:"edition"`
	Host          string   `json:"host"`
	Port          int      `json:"port"`
	Motd          string   `json:"motd"`
	PlayersOnline int      `json:"players_online"`
	PlayersMax    int      `json:"players_max"`
	Sample        []string `json:"sample,omitempty"`
	Version       string   `json:"version"`
	Protocol      int      `json:"protocol"`
	LatencyMs     float64  `json:"latency_ms"`
	Favicon       string   `json:"favicon,omitempty"` // Base64编码的PNG
}

// NewStatusResponse 由探测结果构造接口返回数据
func NewStatusResponse(status *mcprobe.StatusResult) StatusResponse {
	resp := StatusResponse{
		Online:        status.Online,
		Edition:       string(status.Edition),
		Host:          status.Host,
		Port:          status.Port,
		Motd:          status.Motd,
		PlayersOnline: status.Players,
		PlayersMax:    status.MaxPlayers,
		Sample:        status.Sample,
		Version:       status.Version,
		Protocol:      status.Protocol,
		LatencyMs:     status.Latency,
	}
	if status.Favicon != nil {
		resp.Favicon = base64.StdEncoding.EncodeToString(status.Favicon)
	}
	return resp
}

// TokenRequest 换取API Token的请求体
type TokenRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}
