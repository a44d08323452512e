package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tubescribe/internal/appdirs"
	"tubescribe/log"
)

// BilibiliCookieEnv carries the Bilibili session cookie for authenticated
// downloads. Read once during config resolution, never ad hoc.
const BilibiliCookieEnv = "BILIBILI_COOKIE"

type App struct {
	Proxy       string   `toml:"proxy"`
	ParsedProxy *url.URL `toml:"-" json:"-"`
	// BilibiliCookie comes from the environment, not the config file.
	BilibiliCookie string `toml:"-" json:"-"`
	FfmpegPath     string `toml:"ffmpeg_path"`
	YtdlpPath      string `toml:"ytdlp_path"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type FasterwhisperConfig struct {
	BinaryPath string `toml:"binary_path"`
	Model      string `toml:"model"`
}

type OpenaiConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
}

type Transcribe struct {
	// Provider selects the speech backend: fasterwhisper | openai
	Provider    string `toml:"provider"`
	Device      string `toml:"device"`
	ComputeType string `toml:"compute_type"`
	Language    string `toml:"language"`
	// FilterRepeats collapses consecutive near-duplicate lines before output.
	// Whisper 静音段会循环同一句，按需开启，默认保留原始逐句结果。
	FilterRepeats bool                `toml:"filter_repeats"`
	Fasterwhisper FasterwhisperConfig `toml:"fasterwhisper"`
	Openai        OpenaiConfig        `toml:"openai"`
}

type Config struct {
	App        App        `toml:"app"`
	Server     Server     `toml:"server"`
	Transcribe Transcribe `toml:"transcribe"`
}

var Conf Config

var resolveConfigPath = defaultResolveConfigPath

func defaultResolveConfigPath() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

// ResolveConfigPath reports where the config file lives for this run.
func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Transcribe: Transcribe{
			Provider:    "fasterwhisper",
			Device:      "cpu",
			ComputeType: "int8",
			Fasterwhisper: FasterwhisperConfig{
				Model: "base",
			},
		},
	}
}

// LoadOrCreateConfig loads the config file, writing defaults first when the
// file is missing. Returns created=true when a fresh default file was written.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		applyEnv()
		return true, nil
	} else if err != nil {
		return false, err
	}

	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("解析配置文件失败 decode config %s: %w", configPath, err)
	}
	applyEnv()
	return false, nil
}

// SaveConfig writes the current Conf to the resolved config path.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// LoadConfig is the startup entry: load or create, then validate.
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("加载配置失败 failed to load config", zap.Error(err))
		return false
	}
	if created {
		path, _ := resolveConfigPath()
		log.GetLogger().Info("已生成默认配置文件 generated default config", zap.String("path", path))
	}
	return true
}

// applyEnv layers environment values over the file config. A .env next to the
// working directory is honored when present (ignored otherwise).
func applyEnv() {
	_ = godotenv.Load()

	if cookie := strings.TrimSpace(os.Getenv(BilibiliCookieEnv)); cookie != "" {
		Conf.App.BilibiliCookie = cookie
	}
}

func CheckConfig() error {
	if Conf.App.Proxy != "" {
		parsed, err := url.Parse(Conf.App.Proxy)
		if err != nil {
			return fmt.Errorf("代理地址不合法 invalid proxy address %q: %w", Conf.App.Proxy, err)
		}
		Conf.App.ParsedProxy = parsed
	}

	switch Conf.Transcribe.Provider {
	case "fasterwhisper":
		if Conf.Transcribe.Fasterwhisper.Model == "" {
			return fmt.Errorf("fasterwhisper 需要配置 model")
		}
	case "openai":
		if Conf.Transcribe.Openai.ApiKey == "" {
			return fmt.Errorf("openai 转录需要配置 api_key")
		}
	default:
		return fmt.Errorf("不支持的转录源 unsupported transcribe provider: %s", Conf.Transcribe.Provider)
	}
	return nil
}
