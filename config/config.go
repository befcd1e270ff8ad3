package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"clip-automator/internal/appdirs"
	"clip-automator/log"
)

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AppConfig struct {
	Proxy       string   `toml:"proxy"`
	ParsedProxy *url.URL `toml:"-"`
}

type DownloadConfig struct {
	FfmpegPath      string `toml:"ffmpeg_path"`
	YtdlpPath       string `toml:"ytdlp_path"`
	MaxDurationMins int    `toml:"max_video_duration_minutes"`
	CookiesFile     string `toml:"cookies_file"`
}

// ClipConfig bounds the windows the selector may produce.
type ClipConfig struct {
	MinDurationSec    float64 `toml:"min_duration_seconds"`
	MaxDurationSec    float64 `toml:"max_duration_seconds"`
	TargetDurationSec float64 `toml:"target_duration_seconds"`
	Count             int     `toml:"count"`
}

// SelectorConfig holds the scoring knobs for highlight selection.
// These are product tuning values, never hardcoded in the algorithm.
type SelectorConfig struct {
	PeakStddevFactor     float64  `toml:"peak_stddev_factor"`
	MergeOverlapFraction float64  `toml:"merge_overlap_fraction"`
	EnergyWeight         float64  `toml:"energy_weight"`
	KeywordWeight        float64  `toml:"keyword_weight"`
	ChapterWeight        float64  `toml:"chapter_weight"`
	Keywords             []string `toml:"keywords"`
}

type SubtitleStyleConfig struct {
	FontSize        int    `toml:"font_size"`
	OutlineWidth    int    `toml:"outline_width"`
	Position        string `toml:"position"` // center, top, bottom
	MaxCharsPerLine int    `toml:"max_chars_per_line"`
}

type HeadlineConfig struct {
	FontSize int    `toml:"font_size"`
	Category string `toml:"category"`
}

type OutputConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Fps    int `toml:"fps"`
}

type TranscribeConfig struct {
	BaseUrl  string `toml:"base_url"`
	ApiKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

type LlmConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type TwitchConfig struct {
	ClientId     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

type QueueConfig struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Config struct {
	Server     ServerConfig        `toml:"server"`
	App        AppConfig           `toml:"app"`
	Download   DownloadConfig      `toml:"download"`
	Clip       ClipConfig          `toml:"clip"`
	Selector   SelectorConfig      `toml:"selector"`
	Subtitle   SubtitleStyleConfig `toml:"subtitle"`
	Headline   HeadlineConfig      `toml:"headline"`
	Output     OutputConfig        `toml:"output"`
	Transcribe TranscribeConfig    `toml:"transcribe"`
	Llm        LlmConfig           `toml:"llm"`
	Twitch     TwitchConfig        `toml:"twitch"`
	Queue      QueueConfig         `toml:"queue"`
}

var Conf Config

var resolveConfigPath = func() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

// ResolveConfigPath returns the path the config file is read from and saved to.
func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Download: DownloadConfig{
			MaxDurationMins: 180,
		},
		Clip: ClipConfig{
			MinDurationSec:    30,
			MaxDurationSec:    90,
			TargetDurationSec: 60,
			Count:             5,
		},
		Selector: SelectorConfig{
			PeakStddevFactor:     1.0,
			MergeOverlapFraction: 0.3,
			EnergyWeight:         0.5,
			KeywordWeight:        0.15,
			ChapterWeight:        0.3,
			Keywords:             defaultKeywords(),
		},
		Subtitle: SubtitleStyleConfig{
			FontSize:        48,
			OutlineWidth:    3,
			Position:        "center",
			MaxCharsPerLine: 40,
		},
		Headline: HeadlineConfig{
			FontSize: 56,
			Category: "FAMOSOS",
		},
		Output: OutputConfig{
			Width:  1080,
			Height: 1920,
			Fps:    30,
		},
		Transcribe: TranscribeConfig{
			Model:    "whisper-1",
			Language: "pt",
		},
		Llm: LlmConfig{
			Model: "gpt-4o-mini",
		},
		// RedisAddr left empty runs pipelines on the in-process runner;
		// set it to enable the durable Asynq queue.
		Queue: QueueConfig{
			Concurrency: 3,
		},
	}
}

// defaultKeywords is the reaction lexicon for Portuguese-language creators.
// Deployments targeting other languages override it in config.toml.
func defaultKeywords() []string {
	return []string{
		"nossa", "caramba", "meu deus", "sério", "não acredito",
		"inacreditável", "absurdo", "impressionante", "incrível",
		"que loucura", "mentira", "jura", "socorro",
		"polêmica", "bomba", "exclusivo", "revelação", "verdade",
		"nunca contei", "segredo", "primeira vez", "ninguém sabe",
	}
}

// LoadOrCreateConfig reads the config file, writing the defaults first when
// it does not exist yet. The bool reports whether a new file was created.
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
		return true, nil
	} else if err != nil {
		return false, err
	}

	Conf = defaultConfig()
	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
	}
	return false, nil
}

// LoadConfig is the server-style entry point: it logs instead of returning
// errors and reports success as a bool.
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		if log.GetLogger() != nil {
			log.GetLogger().Error("failed to load config: " + err.Error())
		}
		return false
	}
	if created && log.GetLogger() != nil {
		configPath, _ := ResolveConfigPath()
		log.GetLogger().Info("created default config file at " + configPath)
	}
	return true
}

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

// CheckConfig validates field combinations and fills derived values.
func CheckConfig() error {
	if Conf.App.Proxy != "" {
		parsed, err := url.Parse(Conf.App.Proxy)
		if err != nil {
			return fmt.Errorf("invalid proxy address %q: %w", Conf.App.Proxy, err)
		}
		Conf.App.ParsedProxy = parsed
	}

	clip := Conf.Clip
	if clip.MinDurationSec <= 0 || clip.MaxDurationSec <= 0 {
		return fmt.Errorf("clip durations must be positive, got min=%.1f max=%.1f", clip.MinDurationSec, clip.MaxDurationSec)
	}
	if clip.MinDurationSec > clip.MaxDurationSec {
		return fmt.Errorf("clip min_duration_seconds %.1f exceeds max_duration_seconds %.1f", clip.MinDurationSec, clip.MaxDurationSec)
	}
	if clip.TargetDurationSec < clip.MinDurationSec || clip.TargetDurationSec > clip.MaxDurationSec {
		return fmt.Errorf("clip target_duration_seconds %.1f outside [%.1f, %.1f]", clip.TargetDurationSec, clip.MinDurationSec, clip.MaxDurationSec)
	}
	if clip.Count <= 0 {
		return fmt.Errorf("clip count must be positive, got %d", clip.Count)
	}

	sel := Conf.Selector
	if sel.MergeOverlapFraction < 0 || sel.MergeOverlapFraction >= 1 {
		return fmt.Errorf("selector merge_overlap_fraction %.2f outside [0, 1)", sel.MergeOverlapFraction)
	}
	if sel.EnergyWeight < 0 || sel.KeywordWeight < 0 || sel.ChapterWeight < 0 {
		return fmt.Errorf("selector weights must be non-negative")
	}

	if pos := strings.TrimSpace(Conf.Subtitle.Position); pos != "" && pos != "center" && pos != "top" && pos != "bottom" {
		return fmt.Errorf("subtitle position %q not one of center/top/bottom", pos)
	}

	return nil
}
