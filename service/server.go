package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cloudapex/aes128/conf"
	"github.com/cloudapex/aes128/log"
	"github.com/cloudapex/aes128/tools"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

func setAddrs(addrs []string) []string {
	var cAddrs []string
	for _, addr := range addrs {
		if len(addr) == 0 {
			continue
		}
		if !strings.HasPrefix(addr, "nats://") {
			addr = "nats://" + addr
		}
		cAddrs = append(cAddrs, addr)
	}
	if len(cAddrs) == 0 {
		cAddrs = []string{nats.DefaultURL}
	}
	return cAddrs
}

// Connect 按配置连接nats(Addr可用逗号分隔多个)
func Connect(cfg conf.Nats) (*nats.Conn, error) {
	url := strings.Join(setAddrs(strings.Split(cfg.Addr, ",")), ",")
	nc, err := nats.Connect(url,
		nats.Name("aes128"),
		nats.MaxReconnects(cfg.MaxReconnects))
	if err != nil {
		return nil, errors.Wrapf(err, "nats connect %s", url)
	}
	log.Info("nats addr:%s", url)
	return nc, nil
}

// Server nats队列订阅服务
type Server struct {
	nc      *nats.Conn
	subject string
	queue   string
	handler *Handler
	timeout time.Duration

	mu   sync.Mutex
	subs *nats.Subscription
}

// NewServer 创建服务(未启动)
func NewServer(nc *nats.Conn, subject, queue string, handler *Handler, timeout time.Duration) *Server {
	return &Server{
		nc:      nc,
		subject: subject,
		queue:   queue,
		handler: handler,
		timeout: timeout,
	}
}

// Start 开始订阅
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs != nil {
		return errors.New("service already started")
	}
	subs, err := s.nc.QueueSubscribe(s.subject, s.queue, s.onRequest)
	if err != nil {
		return errors.Wrapf(err, "subscribe %s", s.subject)
	}
	s.subs = subs
	log.Info("aes128 service listening|subject=%s|queue=%s", s.subject, s.queue)
	return nil
}

// Shutdown 注销订阅, 处理完已收到的请求后返回
func (s *Server) Shutdown() error {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	if subs == nil {
		return nil
	}
	return subs.Drain()
}

// onRequest 接收请求信息
func (s *Server) onRequest(m *nats.Msg) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("aes128 service panic|%v", tools.Catch(r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	body, err := s.handler.ServeMsg(ctx, m.Data)
	if err != nil {
		log.Error("aes128 service marshal response|%v", err)
		return
	}
	if m.Reply == "" {
		return
	}
	if err := m.Respond(body); err != nil {
		log.Warning("aes128 service respond error with '%v'", err)
	}
}
