package configs

type Config struct {
	// 基础配置
	MinTVL   float64 `json:"min_tvl" yaml:"min_tvl"`     // TVL下限，低于此值的协议被过滤
	TopN     int     `json:"top_n" yaml:"top_n"`         // 报告显示的项目数
	CacheDir string  `json:"cache_dir" yaml:"cache_dir"` // API响应缓存目录
	CacheTTL string  `json:"cache_ttl" yaml:"cache_ttl"` // 缓存有效期 (time.ParseDuration)

	OutputDir string `json:"output_dir" yaml:"output_dir"` // 仪表盘HTML输出目录

	Database Database `json:"database" yaml:"database"`

	// AI 模型参数
	AIConfig AIConfig `json:"ai_config" yaml:"ai_config"`
}

type AIConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key"`       // AI服务API密钥，空值禁用AI笔记
	ModelType string `json:"model_type" yaml:"model_type"` // AI模型类型
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"` // 数据库连接字符串，空值跳过持久化
}

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	return &Config{
		MinTVL:    100_000,
		TopN:      100,
		CacheDir:  "cache",
		CacheTTL:  "6h",
		OutputDir: "output",
	}
}
