package log

import "fmt"

// Options 日志选项
type Options struct {
	Debug       bool   // 调试模式: Debug级别并输出到控制台
	ProcessID   string // 进程分组ID,拼入日志文件名
	LogDir      string // 日志目录,为空则不写文件
	LogFileName func(logdir, prefix, processID, suffix string) string
	Console     bool // 非调试模式下是否仍输出到stderr
}

// Option 日志选项设置
type Option func(*Options)

func newOptions(opts ...Option) Options {
	opt := Options{
		Console: true,
		LogFileName: func(logdir, prefix, processID, suffix string) string {
			return fmt.Sprintf("%s/%v%s%s", logdir, prefix, processID, suffix)
		},
	}
	for _, o := range opts {
		o(&opt)
	}
	return opt
}

// WithDebug 调试模式
func WithDebug(v bool) Option {
	return func(o *Options) { o.Debug = v }
}

// WithProcessID 进程分组ID
func WithProcessID(v string) Option {
	return func(o *Options) { o.ProcessID = v }
}

// WithLogDir 日志目录
func WithLogDir(v string) Option {
	return func(o *Options) { o.LogDir = v }
}

// WithLogFileName 日志文件名生成规则
func WithLogFileName(v func(logdir, prefix, processID, suffix string) string) Option {
	return func(o *Options) {
		if v != nil {
			o.LogFileName = v
		}
	}
}

// WithConsole 是否输出到stderr
func WithConsole(v bool) Option {
	return func(o *Options) { o.Console = v }
}
