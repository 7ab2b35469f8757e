package logging

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"
)

var (
	appName  string
	nameOnce sync.Once
	initOnce sync.Once
)

// ElasticsearchWriter posts each log line as a document to an Elasticsearch
// index endpoint.
type ElasticsearchWriter struct {
	URL string
}

func (ew ElasticsearchWriter) Write(p []byte) (n int, err error) {
	resp, err := http.Post(ew.URL+"/_doc", "application/json", bytes.NewBuffer(p))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("elasticsearch returned %d", resp.StatusCode)
	}
	return len(p), nil
}

// SetAppName sets the application name attached to every log event. It only
// takes effect on the first call.
func SetAppName(name string) {
	nameOnce.Do(func() {
		appName = name
	})
}

// Setup configures the global logger. When elasticsearchURL is empty, logs go
// to a pretty console writer only; otherwise ECS-formatted events are shipped
// to Elasticsearch in addition to the console. Run SetAppName first.
func Setup(elasticsearchURL, index, level string) error {
	if index == "" && elasticsearchURL != "" {
		return fmt.Errorf("index is required when shipping to elasticsearch")
	}
	initOnce.Do(func() {
		configure(elasticsearchURL, index, level)
	})
	return nil
}

func configure(elasticsearchURL, index, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}

	if elasticsearchURL == "" {
		log.Logger = zerolog.New(consoleWriter).With().
			Str("app", appName).
			Timestamp().Logger()
		return
	}

	ecsLogger := ecszerolog.New(&ElasticsearchWriter{
		URL: elasticsearchURL + "/" + index,
	})

	multi := zerolog.MultiLevelWriter(ecsLogger, consoleWriter)

	log.Logger = zerolog.New(multi).With().
		Str("app", appName).
		Timestamp().Logger()
}
