package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 提取服务提供方。
const (
	ExtractorProviderGemini = "gemini" // Vertex AI Gemini
	ExtractorProviderStub   = "stub"   // 本地占位实现（恒定走回退路径）
)

// ServerConfig 定义 HTTP 服务器的监听配置参数
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 8080
}

// IntakeConfig 定义文档录入流水线的配置
type IntakeConfig struct {
	MaxUploadBytes    int64         // 单个扫描件的最大字节数，默认 20MB
	ExtractionTimeout time.Duration // 单次提取调用的超时时间，默认 30s
	ScansPerMinute    int           // 单个 IP 每分钟允许的扫描次数，默认 10
}

// ExtractorConfig 定义文档理解服务的配置
type ExtractorConfig struct {
	Provider  string // 提供方: "gemini" 或 "stub"
	ProjectID string // GCP 项目 ID（provider=gemini 时必填）
	Region    string // Vertex AI 区域（provider=gemini 时必填）
	Model     string // 模型名称，默认 "gemini-1.5-flash"
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 启用彩色输出和详细堆栈信息
}

// RegistryConfig 定义信件登记册的配置
type RegistryConfig struct {
	SeedSampleData bool // 启动时写入示例信件（仅建议开发模式使用）
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server    ServerConfig    // HTTP 服务器配置
	Intake    IntakeConfig    // 录入流水线配置
	Extractor ExtractorConfig // 文档理解服务配置
	CORS      CORSConfig      // 跨域配置
	Log       LogConfig       // 日志配置
	Registry  RegistryConfig  // 登记册配置
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量（最高优先级）
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: COURRIER_
// 例如: COURRIER_SERVER_PORT, COURRIER_EXTRACTOR_PROJECT_ID
func Load() (*Config, error) {
	// 尝试加载 .env 文件（静默失败，因为 .env 文件是可选的）
	loadEnvFile()

	viper.SetEnvPrefix("courrier")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("intake.max_upload_bytes", 20*1024*1024)
	viper.SetDefault("intake.extraction_timeout", "30s")
	viper.SetDefault("intake.scans_per_minute", 10)
	viper.SetDefault("extractor.provider", ExtractorProviderStub)
	viper.SetDefault("extractor.project_id", "")
	viper.SetDefault("extractor.region", "")
	viper.SetDefault("extractor.model", "gemini-1.5-flash")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("registry.seed_sample_data", false)

	extractionTimeout, err := time.ParseDuration(viper.GetString("intake.extraction_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid intake.extraction_timeout: %w", err)
	}

	maxUploadBytes := viper.GetInt64("intake.max_upload_bytes")
	if maxUploadBytes <= 0 {
		return nil, fmt.Errorf("intake.max_upload_bytes must be positive")
	}

	scansPerMinute := viper.GetInt("intake.scans_per_minute")
	if scansPerMinute <= 0 {
		scansPerMinute = 10
	}

	provider := strings.ToLower(viper.GetString("extractor.provider"))
	switch provider {
	case ExtractorProviderGemini:
		if viper.GetString("extractor.project_id") == "" || viper.GetString("extractor.region") == "" {
			return nil, fmt.Errorf("extractor.project_id and extractor.region are required when extractor.provider is %q", ExtractorProviderGemini)
		}
	case ExtractorProviderStub:
		// 无需额外配置
	default:
		return nil, fmt.Errorf("invalid extractor.provider: %q", provider)
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Intake: IntakeConfig{
			MaxUploadBytes:    maxUploadBytes,
			ExtractionTimeout: extractionTimeout,
			ScansPerMinute:    scansPerMinute,
		},
		Extractor: ExtractorConfig{
			Provider:  provider,
			ProjectID: viper.GetString("extractor.project_id"),
			Region:    viper.GetString("extractor.region"),
			Model:     viper.GetString("extractor.model"),
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
		},
		Registry: RegistryConfig{
			SeedSampleData: viper.GetBool("registry.seed_sample_data"),
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 先找当前目录，再找父目录（从 backend/ 子目录运行的情况）。
// 文件不存在时静默失败；已存在的环境变量不会被覆盖。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
