package config

type CacheKind string

const (
	CacheKindNone   CacheKind = "none"
	CacheKindMemory CacheKind = "memory"
	CacheKindFS     CacheKind = "fs"
	CacheKindRedis  CacheKind = "redis"
)

type ServerSettings struct {
	Port     int      `json:"port"`
	CORS     []string `json:"cors"`
	Compress bool     `json:"compress"`
	// Reported by the health endpoint.
	Service string `json:"service"`
}

type RedisSettings struct {
	Address string `json:"address"`
	// Seconds.
	TTL int `json:"ttl"`
}

type CacheSettings struct {
	Kind       CacheKind     `json:"kind"`
	Directory  string        `json:"directory"`
	MaxEntries int           `json:"maxEntries"`
	Redis      RedisSettings `json:"redis"`
}

type LiveSettings struct {
	MessagesPerSecond float64 `json:"messagesPerSecond"`
	Burst             int     `json:"burst"`
}

type CodecSettings struct {
	MultiplicationSign bool `json:"multiplicationSign"`
}

type RenderSettings struct {
	PNGScale int `json:"pngScale"`
}

type Config struct {
	Server ServerSettings `json:"server"`
	Cache  CacheSettings  `json:"cache"`
	Live   LiveSettings   `json:"live"`
	Codec  CodecSettings  `json:"codec"`
	Render RenderSettings `json:"render"`
}
