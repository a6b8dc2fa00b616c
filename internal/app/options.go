package service

import (
	workerpool "github.com/okian/jamstats/internal/adapters/mq/worker"
	"github.com/okian/jamstats/internal/adapters/repository"
	"github.com/okian/jamstats/internal/domain/roster"
	"github.com/okian/jamstats/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithParseWorkers sets the number of concurrent statbook parsers.
func WithParseWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.parseWorkers = count
		}
	}
}

// WithQueueSize sets the capacity of the parse job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithAliases sets the number alias table applied to every run.
func WithAliases(aliases []roster.Alias) Option {
	return func(s *Service) {
		s.aliases = aliases
	}
}

// WithParser replaces the statbook parser.
func WithParser(parser workerpool.Parser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithStore replaces the snapshot store that receives each run's output.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
