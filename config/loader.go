package config

// Loader 把配置源解码到 target 并负责变更通知
type Loader interface {
	// Load 读取配置源, 解码并校验到 target
	Load(target any) error

	// Watch 在配置源变化时调用 callback, 源不存在时不做任何事
	Watch(callback func()) error

	// Source 返回实际读取的配置源, 未读取到时为空
	Source() string
}
