package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the standard logger at stdout and, when addr is set, mirrors
// every line to Logstash. The returned closer releases the TCP connection.
func Setup(service, addr string) (io.Closer, error) {
	log.SetFlags(0)
	if strings.TrimSpace(addr) == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}
	writer, err := NewLogstashWriter(addr, WithServiceName(service))
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	return writer, nil
}
