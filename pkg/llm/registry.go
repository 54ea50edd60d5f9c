package llm

import (
	"deepthink/pkg/config"
)

// StreamFactory 定義建立串流（reasoning）client 的工廠介面
type StreamFactory interface {
	Create(cfg *config.Config, system *config.SystemConfig) (StreamClient, error)
}

// ChatFactory 定義建立完成式（response）client 的工廠介面
type ChatFactory interface {
	Create(cfg *config.Config, system *config.SystemConfig) (ChatClient, error)
}

// 全域 Provider 註冊表
var (
	streamRegistry = make(map[string]StreamFactory)
	chatRegistry   = make(map[string]ChatFactory)
)

// RegisterStreamProvider 註冊一個串流 Provider Factory
func RegisterStreamProvider(name string, factory StreamFactory) {
	streamRegistry[name] = factory
}

// RegisterChatProvider 註冊一個完成式 Provider Factory
func RegisterChatProvider(name string, factory ChatFactory) {
	chatRegistry[name] = factory
}

// GetStreamFactory 取得指定名稱的串流 Provider Factory
func GetStreamFactory(name string) (StreamFactory, bool) {
	f, ok := streamRegistry[name]
	return f, ok
}

// GetChatFactory 取得指定名稱的完成式 Provider Factory
func GetChatFactory(name string) (ChatFactory, bool) {
	f, ok := chatRegistry[name]
	return f, ok
}
