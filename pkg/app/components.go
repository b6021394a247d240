package app

import (
	"context"
	"fmt"

	"securebook/internal/booking/repository"
	"securebook/internal/booking/service"
	"securebook/internal/booking/submitter"
	"securebook/pkg/config"
	"securebook/pkg/kafka"
	kafka_config "securebook/pkg/kafka/config"
	kafka_middleware "securebook/pkg/kafka/middleware"
)

// setDraftStore connects the configured draft repository. The Mongo store
// needs cfg.SetMongo to have run.
func (a *Application) setDraftStore() error {
	switch a.cfg.DraftStore {
	case config.DraftStoreMongo:
		db := a.cfg.Client.Mongo.Database(a.cfg.MongoDatabaseName)

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.MongoConnTimeout)
		defer cancel()
		if err := repository.EnsureIndexes(ctx, db, a.cfg.DraftTTL); err != nil {
			return err
		}
		a.repo = repository.NewMongoDraftRepository(db, a.cfg.DraftTTL, a.cfg.MongoConnTimeout)

	default:
		memory := repository.NewMemoryDraftRepository(a.cfg.DraftTTL)
		a.repo = memory
		a.stoppers = append(a.stoppers, memory.Stop)
	}

	a.cfg.Log.Info("Draft store configured", "store", a.cfg.DraftStore)
	return nil
}

func (a *Application) setSubmitter() (submitter.Submitter, error) {
	log := a.cfg.Log.WithComponent("submitter")

	switch a.cfg.Submitter {
	case config.SubmitterHTTP:
		a.cfg.Log.Info("Submitting bookings over HTTP", "backend", a.cfg.BookingBackendURL)
		return submitter.NewHTTPSubmitter(a.cfg.BookingBackendURL, a.cfg.SubmitTimeout, log), nil

	case config.SubmitterKafka:
		kcfg, err := kafka_config.Load()
		if err != nil {
			return nil, err
		}
		kcfg.LogConfiguration(a.cfg.Log.Info)
		a.kafkaCfg = kcfg
		a.metrics = kafka_middleware.NewMetrics()

		producer, err := kafka.NewProducer(kcfg, kcfg.BookingTopic, kcfg.DLQTopic, a.cfg.Log.WithComponent("kafka-producer"))
		if err != nil {
			return nil, fmt.Errorf("failed to create booking producer: %w", err)
		}
		if kcfg.EnableMiddleware {
			producer.Use(kafka_middleware.LoggingProducerMiddleware(a.cfg.Log))
			producer.Use(a.metrics.ProducerMiddleware())
		}
		a.producer = producer
		return submitter.NewKafkaSubmitter(producer, log), nil

	default:
		return submitter.NewLogSubmitter(log), nil
	}
}

// setResultsConsumer applies booking.result events to the forms. It is a
// no-op unless bookings are submitted through Kafka.
func (a *Application) setResultsConsumer(svc service.FormService) error {
	if a.kafkaCfg == nil {
		return nil
	}

	consumer, err := kafka.NewConsumer(
		a.kafkaCfg,
		a.kafkaCfg.ResultsTopic,
		a.kafkaCfg.ConsumerGroup,
		a.kafkaCfg.DLQTopic,
		submitter.ResultsHandler(svc, a.cfg.Log.WithComponent("results")),
		a.cfg.Log.WithComponent("kafka-consumer"),
	)
	if err != nil {
		return fmt.Errorf("failed to create results consumer: %w", err)
	}
	if a.kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(a.cfg.Log))
		consumer.Use(a.metrics.ConsumerMiddleware())
	}
	a.consumer = consumer
	return nil
}

func (a *Application) startResultsConsumer() {
	if a.consumer == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopConsumer = cancel
	a.consumerDone = make(chan struct{})

	go func() {
		defer close(a.consumerDone)
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.cfg.Log.Error("Results consumer stopped", "error", err)
		}
	}()
	a.cfg.Log.Info("Results consumer started", "topic", a.kafkaCfg.ResultsTopic, "group", a.kafkaCfg.ConsumerGroup)
}

func (a *Application) stopKafka() {
	if a.consumer != nil {
		a.stopConsumer()
		<-a.consumerDone
		if err := a.consumer.Close(); err != nil {
			a.cfg.Log.Error("Failed to close results consumer", "error", err)
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.cfg.Log.Error("Failed to close booking producer", "error", err)
		}
	}
}
