package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Room     RoomConfig     `yaml:"room"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RoomConfig 房间配置
type RoomConfig struct {
	MaxPlayers    int `yaml:"max_players"`    // 房间人数上限
	RoomTTL       int `yaml:"room_ttl"`       // 空房间存活时间（小时）
	SweepInterval int `yaml:"sweep_interval"` // 过期清扫间隔（分钟）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	MessageLimit   MsgLimitConfig  `yaml:"message_limit"`
	ChatLimit      ChatLimitConfig `yaml:"chat_limit"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 封禁时长（秒）
}

// MsgLimitConfig 消息速率限制
type MsgLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// ChatLimitConfig 聊天速率限制
type ChatLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	Cooldown     int `yaml:"cooldown"` // 超限冷却时长（秒）
}

// RoomTTLDuration 返回空房间存活时长
func (c *RoomConfig) RoomTTLDuration() time.Duration {
	return time.Duration(c.RoomTTL) * time.Hour
}

// SweepIntervalDuration 返回清扫间隔时长
func (c *RoomConfig) SweepIntervalDuration() time.Duration {
	return time.Duration(c.SweepInterval) * time.Minute
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// CooldownDuration 返回聊天冷却时长
func (c *ChatLimitConfig) CooldownDuration() time.Duration {
	return time.Duration(c.Cooldown) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 填充缺省值
func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1024
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Room.MaxPlayers == 0 {
		cfg.Room.MaxPlayers = 8
	}
	if cfg.Room.RoomTTL == 0 {
		cfg.Room.RoomTTL = 24
	}
	if cfg.Room.SweepInterval == 0 {
		cfg.Room.SweepInterval = 5
	}
	if cfg.Security.RateLimit.MaxPerSecond == 0 {
		cfg.Security.RateLimit.MaxPerSecond = 5
	}
	if cfg.Security.RateLimit.MaxPerMinute == 0 {
		cfg.Security.RateLimit.MaxPerMinute = 60
	}
	if cfg.Security.RateLimit.BanDuration == 0 {
		cfg.Security.RateLimit.BanDuration = 300
	}
	if cfg.Security.MessageLimit.MaxPerSecond == 0 {
		cfg.Security.MessageLimit.MaxPerSecond = 30
	}
	if cfg.Security.ChatLimit.MaxPerSecond == 0 {
		cfg.Security.ChatLimit.MaxPerSecond = 2
	}
	if cfg.Security.ChatLimit.MaxPerMinute == 0 {
		cfg.Security.ChatLimit.MaxPerMinute = 30
	}
	if cfg.Security.ChatLimit.Cooldown == 0 {
		cfg.Security.ChatLimit.Cooldown = 10
	}
}
