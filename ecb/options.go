package ecb

import "runtime"

// Options 引擎选项
type Options struct {
	Workers           int // 并行加解密的最大goroutine数, <=1为串行
	ParallelThreshold int // 分组数达到该值才并行
	CacheSize         int // 缓存的密钥编排数上限, 0不缓存
}

// Option 引擎选项设置
type Option func(*Options)

// NewOptions 默认值 + 选项
func NewOptions(opts ...Option) Options {
	opt := Options{
		Workers:           runtime.NumCPU(),
		ParallelThreshold: 64,
		CacheSize:         1024,
	}
	for _, o := range opts {
		o(&opt)
	}
	return opt
}

// Workers 并行度(n<=0时使用CPU数)
func Workers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.Workers = n
	}
}

// ParallelThreshold 启用并行的最小分组数
func ParallelThreshold(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ParallelThreshold = n
		}
	}
}

// CacheSize 密钥编排缓存上限
func CacheSize(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.CacheSize = n
		}
	}
}
