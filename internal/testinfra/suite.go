//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TestSuite holds the containers one integration package runs against.
type TestSuite struct {
	Postgres *PostgresContainer
	Kafka    *KafkaContainer
	Wiremock *WiremockContainer
}

type SuiteOptions struct {
	WithPostgres bool
	WithKafka    bool
	WithWiremock bool
	// MappingsPath is the Wiremock stub directory standing in for Square and GoHighLevel.
	MappingsPath string
}

// NewTestSuite starts the requested containers concurrently. On failure the
// ones that did start are terminated.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	var g errgroup.Group

	if opts.WithPostgres {
		g.Go(func() (err error) {
			suite.Postgres, err = NewPostgres(ctx)
			return wrap("postgres", err)
		})
	}
	if opts.WithKafka {
		g.Go(func() (err error) {
			suite.Kafka, err = NewKafka(ctx)
			return wrap("kafka", err)
		})
	}
	if opts.WithWiremock {
		g.Go(func() (err error) {
			suite.Wiremock, err = NewWiremock(ctx, opts.MappingsPath)
			return wrap("wiremock", err)
		})
	}

	if err := g.Wait(); err != nil {
		suite.Cleanup(ctx)
		return nil, fmt.Errorf("start containers: %w", err)
	}
	return suite, nil
}

func wrap(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Wiremock != nil {
		s.Wiremock.Cleanup(ctx)
	}
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}
