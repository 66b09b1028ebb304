// aes128 命令行: 加密/解密/服务
//
//	aes128 -conf aes128.json -in plain.txt -out cipher.hex
//	aes128 -conf aes128.json -d -in cipher.hex
//	aes128 -conf aes128.json -serve
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudapex/aes128/codec"
	"github.com/cloudapex/aes128/conf"
	"github.com/cloudapex/aes128/ecb"
	"github.com/cloudapex/aes128/log"
	"github.com/cloudapex/aes128/service"
	"github.com/cloudapex/aes128/tools"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// 退出时等待在途请求的最长时间
const killWaitTTL = time.Minute

// 启动参数(命令行优先级比环境变量高)
type startUpArgs struct {
	ConfPath string `env:"AES_CONF" env-default:""`
	Decrypt  bool   `env:"AES_DECRYPT"`
	In       string `env:"AES_IN" env-default:"-"`
	Out      string `env:"AES_OUT" env-default:"-"`
	Codec    string `env:"AES_CLI_CODEC" env-default:""`
	Serve    bool   `env:"AES_SERVE"`
	Remote   bool   `env:"AES_REMOTE"`
}

func parseArgs(fs *flag.FlagSet, argv []string) (startUpArgs, error) {
	var args startUpArgs
	// 其次使用环境变量
	if err := cleanenv.ReadEnv(&args); err != nil {
		return args, errors.Wrap(err, "read env")
	}
	// 优先使用命令行参数
	fs.StringVar(&args.ConfPath, "conf", args.ConfPath, "config file (json/yaml/toml/env)")
	fs.BoolVar(&args.Decrypt, "d", args.Decrypt, "decrypt instead of encrypt")
	fs.StringVar(&args.In, "in", args.In, "input file, - for stdin")
	fs.StringVar(&args.Out, "out", args.Out, "output file, - for stdout")
	fs.StringVar(&args.Codec, "codec", args.Codec, "ciphertext codec: hex|base64|json|msgpack")
	fs.BoolVar(&args.Serve, "serve", args.Serve, "run the nats service")
	fs.BoolVar(&args.Remote, "remote", args.Remote, "call the nats service instead of local engine")
	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if args.Serve && args.Remote {
		return args, errors.New("-serve and -remote are exclusive")
	}
	return args, nil
}

// loadConfig 配置文件 -> consul -> 环境变量, 后者覆盖前者
func loadConfig(args startUpArgs) (*conf.Config, error) {
	cfg := &conf.Conf
	if args.ConfPath != "" {
		if err := conf.Load(args.ConfPath, cfg); err != nil {
			return nil, err
		}
	} else if err := conf.ReadEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Consul.Addr != "" {
		if err := conf.LoadConsul(cfg.Consul.Addr, cfg.Consul.Key, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aes128: %+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	// init log, 命令行模式下不输出到控制台, 避免混入结果
	if err := log.Init(log.WithDebug(cfg.Log.Debug),
		log.WithProcessID(cfg.ProcessEnv),
		log.WithLogDir(cfg.Log.Dir),
		log.WithConsole(args.Serve)); err != nil {
		return err
	}
	defer log.Sync()

	key, err := cfg.KeyBytes()
	if err != nil {
		return err
	}
	engine := ecb.NewEngine(
		ecb.Workers(cfg.Workers),
		ecb.ParallelThreshold(cfg.ParallelThreshold))

	if args.Serve {
		return serve(cfg, engine, key)
	}

	cd, err := codec.Lookup(tools.Tern(args.Codec != "", args.Codec, cfg.Codec))
	if err != nil {
		return err
	}
	in, out, closeAll, err := openStreams(args.In, args.Out)
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cryptor = localCryptor{engine: engine, key: key}
	if args.Remote {
		nc, err := service.Connect(cfg.Nats)
		if err != nil {
			return err
		}
		defer nc.Close()
		c = service.NewClient(nc, cfg.Nats.Subject, cfg.Nats.Timeout())
	}
	if args.Decrypt {
		return decryptStream(ctx, c, cd, in, out)
	}
	return encryptStream(ctx, c, cd, in, out)
}

func serve(cfg *conf.Config, engine *ecb.Engine, key []byte) error {
	handler, err := service.NewHandler(engine, key)
	if err != nil {
		return err
	}
	nc, err := service.Connect(cfg.Nats)
	if err != nil {
		return err
	}
	defer nc.Close()

	srv := service.NewServer(nc, cfg.Nats.Subject, cfg.Nats.Queue, handler, cfg.Nats.Timeout())
	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("aes128 started|env=%s|key=%016x", cfg.ProcessEnv, ecb.KeyFingerprint(key))

	// close
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c

	if err := srv.Shutdown(); err != nil {
		return err
	}
	return waitClosed(nc, sig)
}

// waitClosed Drain完成后连接会关闭, 超时则放弃
func waitClosed(nc *nats.Conn, sig os.Signal) error {
	timeout := time.NewTimer(killWaitTTL)
	defer timeout.Stop()
	for nc.NumSubscriptions() > 0 {
		select {
		case <-timeout.C:
			return errors.Errorf("aes128 close timeout (signal: %v)", sig)
		case <-time.After(50 * time.Millisecond):
		}
	}
	log.Info("aes128 closing down (signal: %v)", sig)
	return nil
}

// openStreams "-"表示标准输入/输出
func openStreams(inPath, outPath string) (io.Reader, io.Writer, func(), error) {
	var (
		in      io.Reader = os.Stdin
		out     io.Writer = os.Stdout
		closers []io.Closer
	)
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, nil, nil, errors.WithStack(err)
		}
		in = f
		closers = append(closers, f)
	}
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			closeAll()
			return nil, nil, nil, errors.WithStack(err)
		}
		out = f
		closers = append(closers, f)
	}
	return in, out, closeAll, nil
}
