package config

import (
	"os"
	"strconv"
	"time"
)

// Config 存储应用程序配置
type Config struct {
	// 服务器配置
	ServerPort     int
	ServerHost     string
	Mode           string
	AllowedOrigins []string

	// 聊天框架（OneBot）配置
	OneBotWSURL       string
	OneBotAccessToken string
	CommandPrefix     string

	// 探测配置
	ProbeTimeout       time.Duration
	JavaDefaultPort    int
	BedrockDefaultPort int

	// 渲染配置
	FontPath string
	FontSize float64

	// API认证配置
	APIAccessKey  string
	JWTSecret     string
	JWTExpireTime time.Duration
	JWTIssuer     string
}

// GetEnv 从环境变量中获取字符串值，如果不存在则返回默认值
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetEnvInt 从环境变量中获取整数值，如果不存在或解析失败则返回默认值
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetEnvFloat 从环境变量中获取浮点值，如果不存在或解析失败则返回默认值
func GetEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// GetEnvDuration 从环境变量中获取时间间隔，如果不存在则返回默认值
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	durationValue, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return durationValue
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	return &Config{
		// 服务器配置
		ServerPort:     GetEnvInt("SERVER_PORT", 8080),
		ServerHost:     GetEnv("SERVER_HOST", "0.0.0.0"),
		Mode:           GetEnv("GIN_MODE", "debug"),
		AllowedOrigins: []string{GetEnv("ALLOWED_ORIGINS", "*")},

		// 聊天框架配置，ONEBOT_WS_URL为空时不启动机器人连接
		OneBotWSURL:       GetEnv("ONEBOT_WS_URL", ""),
		OneBotAccessToken: GetEnv("ONEBOT_ACCESS_TOKEN", ""),
		CommandPrefix:     GetEnv("COMMAND_PREFIX", "/motd"),

		// 探测配置
		ProbeTimeout:       GetEnvDuration("PROBE_TIMEOUT", 5*time.Second),
		JavaDefaultPort:    GetEnvInt("JAVA_DEFAULT_PORT", 25565),
		BedrockDefaultPort: GetEnvInt("BEDROCK_DEFAULT_PORT", 19132),

		// 渲染配置
		FontPath: GetEnv("FONT_PATH", "assets/font.ttf"),
		FontSize: GetEnvFloat("FONT_SIZE", 22),

		// API认证配置，API_ACCESS_KEY为空时接口不鉴权
		APIAccessKey:  GetEnv("API_ACCESS_KEY", ""),
		JWTSecret:     GetEnv("JWT_SECRET", "your-secret-key"),
		JWTExpireTime: GetEnvDuration("JWT_EXPIRE_TIME", 24*time.Hour),
		JWTIssuer:     GetEnv("JWT_ISSUER", "motd-bot"),
	}
}
