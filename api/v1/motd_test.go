package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	v1 "city.newnan/motd-bot/api/v1"
	"city.newnan/motd-bot/internal/command"
	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/model"
	"city.newnan/motd-bot/internal/router"
	"city.newnan/motd-bot/pkg/mcprobe"
)

type stubProber struct {
	status *mcprobe.StatusResult
	err    error
}

func (s *stubProber) Probe(ctx context.Context, target *mcprobe.ServerTarget) (*mcprobe.StatusResult, error) {
	return s.status, s.err
}

type stubRenderer struct{}

func (stubRenderer) Render(status *mcprobe.StatusResult) ([]byte, error) {
	return []byte("\x89PNG-fake"), nil
}

func testEngine(prober command.Prober, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = &config.Config{Mode: gin.TestMode, AllowedOrigins: []string{"*"}, CommandPrefix: "/motd"}
	}

	renderer := stubRenderer{}
	handler := command.NewHandler(cfg.CommandPrefix, prober, renderer)
	controller := v1.NewMotdController(cfg, prober, renderer, handler)
	return router.SetupRouter(cfg, controller)
}

func onlineStatus() *mcprobe.StatusResult {
	return &mcprobe.StatusResult{
		Online:     true,
		Edition:    mcprobe.EditionJava,
		Host:       "mc.example.com",
		Port:       25565,
		Motd:       "A Minecraft Server",
		Players:    3,
		MaxPlayers: 20,
		Version:    "1.20.4",
		Protocol:   765,
		Latency:    17,
	}
}

func TestStatusEndpoint(t *testing.T) {
	r := testEngine(&stubProber{status: onlineStatus()}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/motd/status?address=mc.example.com", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int                  `json:"code"`
		Data model.StatusResponse `json:"data"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	if !resp.Data.Online || resp.Data.PlayersOnline != 3 || resp.Data.Version != "1.20.4" {
		t.Errorf("响应数据错误: %+v", resp.Data)
	}
}

func TestStatusEndpointBadAddress(t *testing.T) {
	r := testEngine(&stubProber{status: onlineStatus()}, nil)

	for _, url := range []string{
		"/api/v1/motd/status",
		"/api/v1/motd/status?address=bad!!address",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s 状态码 = %d, 期望 400", url, w.Code)
		}
	}
}

func TestStatusEndpointProbeFailure(t *testing.T) {
	prober := &stubProber{err: &mcprobe.ProbeError{
		Kind:    mcprobe.FailTimeout,
		Edition: mcprobe.EditionJava,
		Err:     context.DeadlineExceeded,
	}}
	r := testEngine(prober, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/motd/status?address=mc.example.com", nil))

	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("超时应返回504, 实际 %d", w.Code)
	}
}

func TestCardEndpoint(t *testing.T) {
	r := testEngine(&stubProber{status: onlineStatus()}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/motd/card?address=mc.example.com", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("图片内容为空")
	}
}

func TestEventEndpoint(t *testing.T) {
	r := testEngine(&stubProber{status: onlineStatus()}, nil)

	body := `{"post_type":"message","message_type":"group","group_id":1,"raw_message":"/motd mc.example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/motd/event", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"reply"`) {
		t.Errorf("应返回快速回复: %s", w.Body.String())
	}
}

func TestEventEndpointUnrelated(t *testing.T) {
	r := testEngine(&stubProber{status: onlineStatus()}, nil)

	body := `{"post_type":"message","message_type":"group","raw_message":"闲聊消息"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/motd/event", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("无关消息应返回204, 实际 %d", w.Code)
	}
}

func TestAuthProtectedRoutes(t *testing.T) {
	cfg := &config.Config{
		Mode:           gin.TestMode,
		AllowedOrigins: []string{"*"},
		CommandPrefix:  "/motd",
		APIAccessKey:   "secret-key",
		JWTSecret:      "jwt-secret",
		JWTExpireTime:  time.Hour,
		JWTIssuer:      "motd-bot",
	}
	r := testEngine(&stubProber{status: onlineStatus()}, cfg)

	// 未带Token应被拒绝
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/motd/status?address=mc.example.com", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未授权请求状态码 = %d, 期望 401", w.Code)
	}

	// 用访问密钥换取Token
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"access_key":"secret-key"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("换取Token失败: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Data.Token == "" {
		t.Fatalf("Token响应错误: %s", w.Body.String())
	}

	// 带Token的请求应放行
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/motd/status?address=mc.example.com", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("带Token请求状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	// 错误的密钥换不到Token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"access_key":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错误密钥状态码 = %d, 期望 401", w.Code)
	}
}
