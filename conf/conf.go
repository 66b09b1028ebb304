// Copyright 2014 mqant Author. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudapex/aes128/rijndael"
	"github.com/hashicorp/consul/api"
	"github.com/ilyakaznacheev/cleanenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Conf 全局配置结构体
var Conf = Config{}

// LoadConfig 加载本地配置(失败panic)
func LoadConfig(Path string) {
	fmt.Println("app configuration path :", Path)

	if err := Load(Path, &Conf); err != nil {
		panic(err)
	}
}

// Config 配置结构体
type Config struct {
	Key               string `json:"Key" yaml:"key" toml:"key" env:"AES_KEY"`                        // 32位hex, 不要提交到仓库
	Codec             string `json:"Codec" yaml:"codec" toml:"codec" env:"AES_CODEC" env-default:"hex"` // hex|base64|json|msgpack
	Workers           int    `json:"Workers" yaml:"workers" toml:"workers" env:"AES_WORKERS"`         // 0表示CPU数
	ParallelThreshold int    `json:"ParallelThreshold" yaml:"parallel_threshold" toml:"parallel_threshold" env:"AES_PARALLEL_THRESHOLD" env-default:"64"`
	ProcessEnv        string `json:"ProcessEnv" yaml:"process_env" toml:"process_env" env:"AES_ENV" env-default:"dev"`
	Log               Log    `json:"Log" yaml:"log" toml:"log"`
	Nats              Nats   `json:"Nats" yaml:"nats" toml:"nats"`
	Consul            Consul `json:"Consul" yaml:"consul" toml:"consul"`
}

// Log 日志配置
type Log struct {
	Debug bool   `json:"Debug" yaml:"debug" toml:"debug" env:"AES_LOG_DEBUG"`
	Dir   string `json:"Dir" yaml:"dir" toml:"dir" env:"AES_LOG_DIR"`
}

// Nats nats配置
type Nats struct {
	Addr          string `json:"Addr" yaml:"addr" toml:"addr" env:"AES_NATS_ADDR" env-default:"127.0.0.1:4222"`
	Subject       string `json:"Subject" yaml:"subject" toml:"subject" env:"AES_NATS_SUBJECT" env-default:"aes128.ecb"`
	Queue         string `json:"Queue" yaml:"queue" toml:"queue" env:"AES_NATS_QUEUE" env-default:"aes128"`
	MaxReconnects int    `json:"MaxReconnects" yaml:"max_reconnects" toml:"max_reconnects" env:"AES_NATS_MAX_RECONNECTS" env-default:"60"`
	TimeoutMS     int    `json:"TimeoutMS" yaml:"timeout_ms" toml:"timeout_ms" env:"AES_NATS_TIMEOUT_MS" env-default:"10000"` // 请求超时(毫秒)
}

// Timeout 请求超时
func (n Nats) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// Consul consul配置中心(Addr为空则不用)
type Consul struct {
	Addr string `json:"Addr" yaml:"addr" toml:"addr" env:"AES_CONSUL_ADDR"`
	Key  string `json:"Key" yaml:"key" toml:"key" env:"AES_CONSUL_KEY" env-default:"config/dev/aes128"`
}

// KeyBytes 解析十六进制密钥, 必须16字节
func (c *Config) KeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(c.Key))
	if err != nil {
		return nil, errors.Wrap(err, "config Key is not hex")
	}
	if len(key) != rijndael.KeySize {
		return nil, errors.Wrapf(rijndael.ErrInvalidKeyLength, "config Key has %d bytes", len(key))
	}
	return key, nil
}

// Load 读取配置文件到cfg, 再用环境变量覆盖
// .json文件允许整行//注释, 其它格式(yaml/toml/env)交给cleanenv
func Load(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := readFileStripped(path)
		if err != nil {
			return err
		}
		return Parse(data, cfg)
	}
	return errors.Wrapf(cleanenv.ReadConfig(path, cfg), "read config %s", path)
}

// Parse 解析JSON配置(允许整行//注释)并应用环境变量
func Parse(data []byte, cfg *Config) error {
	if err := json.Unmarshal(stripComments(data), cfg); err != nil {
		return errors.Wrap(err, "parse config")
	}
	return ReadEnv(cfg)
}

// ReadEnv 只从环境变量读取(未设置的字段取env-default)
func ReadEnv(cfg *Config) error {
	return errors.Wrap(cleanenv.ReadEnv(cfg), "read env")
}

// LoadConsul 从consul KV读取JSON配置
func LoadConsul(addr, key string, cfg *Config) error {
	ccfg := api.DefaultConfig()
	ccfg.Address = addr
	client, err := api.NewClient(ccfg)
	if err != nil {
		return errors.Wrap(err, "consul client")
	}
	pair, _, err := client.KV().Get(key, nil)
	if err != nil {
		return errors.Wrapf(err, "无法从consul获取配置:%s", key)
	}
	if pair == nil {
		return errors.Errorf("consul配置不存在:%s", key)
	}
	return Parse(pair.Value, cfg)
}

func readFileStripped(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return stripComments(data), nil
}

// stripComments 去掉以//开头的行
func stripComments(data []byte) []byte {
	buf := new(bytes.Buffer)
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if !isComment(line) {
			buf.Write(line)
		}
	}
	return buf.Bytes()
}

func isComment(line []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(line, "\t "), []byte("//"))
}
