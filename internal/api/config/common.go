package config

// Config 配置主体
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	DB            DBConfig            `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Identity      IdentityConfig      `mapstructure:"identity"`
	LLM           LLMConfig           `mapstructure:"llm"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Elastic       ElasticConfig       `mapstructure:"elastic"`
	Logstash      LogstashConfig      `mapstructure:"logstash"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	KafkaLikes    KafkaTopicConsumer  `mapstructure:"kafka_likes_consumer"`
	KafkaFollows  KafkaTopicConsumer  `mapstructure:"kafka_follows_consumer"`
	KafkaComments KafkaTopicConsumer  `mapstructure:"kafka_comments_consumer"`
	KafkaPosts    KafkaTopicConsumer  `mapstructure:"kafka_posts_consumer"`
	KafkaUsers    KafkaTopicConsumer  `mapstructure:"kafka_users_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// IdentityConfig 外部身份提供方配置
type IdentityConfig struct {
	UserinfoURL string `mapstructure:"userinfo_url"`
	Timeout     int    `mapstructure:"timeout"`
}

type LLMConfig struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	UploadExpires int    `mapstructure:"upload_expires"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaTopicConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
