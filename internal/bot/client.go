package bot

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"city.newnan/motd-bot/internal/command"
	"city.newnan/motd-bot/internal/config"
)

// 重连退避参数
const (
	reconnectBaseDelay = 2 * time.Second
	reconnectMaxDelay  = 60 * time.Second
	writeTimeout       = 10 * time.Second
)

// Client 以正向WebSocket连接OneBot实现，接收消息事件并回复/motd命令
//
// 每个事件在独立goroutine中处理，处理器本身无共享状态。
type Client struct {
	url     string
	token   string
	handler *command.Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// 发送通道，writeLoop串行写出，避免并发写同一连接
	send chan []byte
}

// NewClient 创建机器人客户端
func NewClient(cfg *config.Config, handler *command.Handler) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:     cfg.OneBotWSURL,
		token:   cfg.OneBotAccessToken,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		send:    make(chan []byte, 16),
	}
}

// Start 启动连接循环（非阻塞）
//
// 未配置ONEBOT_WS_URL时不做任何事，插件只通过HTTP接口工作。
func (c *Client) Start() {
	if c.url == "" {
		log.Println("未配置ONEBOT_WS_URL，跳过机器人连接")
		return
	}

	c.wg.Add(1)
	go c.run()
}

// Stop 断开连接并等待处理中的事件结束
func (c *Client) Stop() {
	c.cancel()
	c.wg.Wait()
}

// run 带退避的重连循环
func (c *Client) run() {
	defer c.wg.Done()

	delay := reconnectBaseDelay
	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		conn, err := c.dial()
		if err != nil {
			log.Printf("连接聊天框架失败: %v，%v后重试", err, delay)
			select {
			case <-c.ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > reconnectMaxDelay {
				delay = reconnectMaxDelay
			}
			continue
		}

		log.Printf("已连接聊天框架: %s", c.url)
		delay = reconnectBaseDelay

		c.serve(conn)
	}
}

// dial 建立WebSocket连接，携带可选的访问令牌
func (c *Client) dial() (*websocket.Conn, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(c.ctx, c.url, header)
	return conn, err
}

// serve 在一条连接上收发消息，连接断开后返回由run重连
func (c *Client) serve(conn *websocket.Conn) {
	done := make(chan struct{})

	// 写循环
	go func() {
		for {
			select {
			case <-done:
				return
			case <-c.ctx.Done():
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
				conn.Close()
				return
			case payload := <-c.send:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					log.Printf("发送回复失败: %v", err)
					return
				}
			}
		}
	}()

	// 读循环
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				log.Printf("连接断开: %v", err)
			}
			break
		}
		c.dispatch(data)
	}

	close(done)
	conn.Close()
}

// dispatch 解析上报事件并分发命令处理
func (c *Client) dispatch(data []byte) {
	var event Event
	if err := sonic.Unmarshal(data, &event); err != nil {
		// 心跳等无关上报也会走到这里，解析失败直接忽略
		return
	}

	if event.PostType != "message" {
		return
	}

	args, ok := c.handler.Match(event.RawMessage)
	if !ok {
		return
	}

	// 每个命令调用独立处理，互不阻塞
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.reply(&event, c.handler.Handle(c.ctx, args))
	}()
}

// reply 把命令结果包装为send_msg动作发回聊天框架
func (c *Client) reply(event *Event, result *command.Reply) {
	var segments []Segment
	if result.ImagePNG != nil {
		segments = append(segments, ImageSegment(result.ImagePNG))
	}
	if result.Text != "" {
		segments = append(segments, TextSegment(result.Text))
	}
	if len(segments) == 0 {
		return
	}

	action := NewSendMsgAction(event, uuid.NewString(), segments)
	payload, err := sonic.Marshal(action)
	if err != nil {
		log.Printf("序列化回复失败: %v", err)
		return
	}

	select {
	case c.send <- payload:
	case <-c.ctx.Done():
	}
}
