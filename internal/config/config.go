package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr    string        `yaml:"listen_addr"`
	AllowedOrigin string        `yaml:"allowed_origin"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	// "postgres" or "memory". The memory store is the self-contained
	// variant with no external database.
	Storage string `yaml:"storage"`

	// Companion "thinking" delay before an engine reply is appended.
	ThinkingDelay  time.Duration `yaml:"thinking_delay"`
	ThinkingJitter time.Duration `yaml:"thinking_jitter"`

	// Community mentor auto-replies to new posts.
	MentorReplies bool          `yaml:"mentor_replies"`
	MentorDelay   time.Duration `yaml:"mentor_delay"`

	BreathingTick time.Duration `yaml:"breathing_tick"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (s *Config) applyDefaults() {
	if s.Public.ListenAddr == "" {
		s.Public.ListenAddr = ":8080"
	}
	if s.Public.Storage == "" {
		s.Public.Storage = "postgres"
	}
	if s.Public.JwtTTL == 0 {
		s.Public.JwtTTL = 24 * time.Hour
	}
	if s.Public.ThinkingDelay == 0 {
		s.Public.ThinkingDelay = 1500 * time.Millisecond
	}
	if s.Public.ThinkingJitter == 0 {
		s.Public.ThinkingJitter = time.Second
	}
	if s.Public.MentorDelay == 0 {
		s.Public.MentorDelay = 3 * time.Second
	}
	if s.Public.BreathingTick == 0 {
		s.Public.BreathingTick = time.Second
	}
}
