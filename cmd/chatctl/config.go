package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Endpoint             string        `env:"CHAT_ENDPOINT,required=true"`
	ParticipantToken     string        `env:"PARTICIPANT_TOKEN,required=true"`
	ContactID            string        `env:"CONTACT_ID,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	PageSize             int           `env:"PAGE_SIZE,required=true"`
	SearchFlushEvery     int           `env:"SEARCH_FLUSH_EVERY,required=true"`
	MaxReconnectAttempts int           `env:"MAX_RECONNECT_ATTEMPTS,required=true"`
	MaxReconnectInterval time.Duration `env:"MAX_RECONNECT_INTERVAL,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT,required=true"`
	TokenTTL             time.Duration `env:"TOKEN_TTL,required=true"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,required=true"`
	DenyList             string        `env:"DENY_LIST"`
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}

// DenyListed splits the comma separated deny list, dropping empty entries.
func (c Config) DenyListed() []string {
	return lo.FilterMap(strings.Split(c.DenyList, ","), func(s string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	})
}
