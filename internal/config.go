package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BaseURL        string `env:"BASE_URL,required=true"`
	EventStreamURL string `env:"EVENT_STREAM_URL,required=true"`
	APIToken       string `env:"API_TOKEN"`
	UserID         string `env:"USER_ID,required=true"`
	Nickname       string `env:"NICKNAME"`

	LogLevel       string `env:"LOG_LEVEL,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	ChannelPageSize int           `env:"CHANNEL_PAGE_SIZE,default=30"`
	HistoryPageSize int           `env:"HISTORY_PAGE_SIZE,default=20"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`

	MaxTrackedOperations int           `env:"MAX_TRACKED_OPERATIONS,default=512"`
	OperationRetention   time.Duration `env:"OPERATION_RETENTION,default=10m"`
}

func (c Config) Validate() error {
	if c.ChannelPageSize <= 0 || c.HistoryPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive, got channel=%d history=%d",
			c.ChannelPageSize, c.HistoryPageSize)
	}
	if c.MaxTrackedOperations <= 0 {
		return fmt.Errorf("MAX_TRACKED_OPERATIONS must be positive, got %d", c.MaxTrackedOperations)
	}
	return nil
}
