package config

import (
	"flag"
	"net"
	"regexp"
	"strconv"
)

type Config struct {
	Addr  string
	DBUrl string
	Debug bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 5000, "listen port number (default 5000)")
	flag.StringVar(&cfg.DBUrl, "db-url", "whisperbox.sqlite", "path to SQLite3 DB file (default whisperbox.sqlite)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
