package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

const pollTimeout = 200 * time.Millisecond

var _ VenueQueue = (*KafkaVenueQueue)(nil)

type KafkaOptions struct {
	Brokers string
	Topic   string
	GroupID string
}

// KafkaVenueQueue publishes venue events keyed by venue id so updates for
// one venue stay ordered within a partition.
type KafkaVenueQueue struct {
	opts     KafkaOptions
	producer *kafka.Producer
}

func NewKafkaVenueQueue(opts KafkaOptions) (*KafkaVenueQueue, error) {
	if opts.Topic == "" {
		opts.Topic = DefaultVenueTopic
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": opts.Brokers,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return &KafkaVenueQueue{opts: opts, producer: producer}, nil
}

func (k *KafkaVenueQueue) PublishVenueUpdated(ctx context.Context, event *VenueEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.opts.Topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.VenueID),
		Value:          value,
	}, delivery)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-delivery:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected kafka event %v", e)
		}
		return msg.TopicPartition.Error
	}
}

func (k *KafkaVenueQueue) SubscribeVenueUpdates(ctx context.Context) (<-chan *VenueEvent, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": k.opts.Brokers,
		"group.id":          k.opts.GroupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	if err := consumer.SubscribeTopics([]string{k.opts.Topic}, nil); err != nil {
		_ = consumer.Close()
		return nil, err
	}

	events := make(chan *VenueEvent)
	go func() {
		defer close(events)
		defer consumer.Close()

		for ctx.Err() == nil {
			msg, err := consumer.ReadMessage(pollTimeout)
			if err != nil {
				var kerr kafka.Error
				if errors.As(err, &kerr) && kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				logrus.Errorf("kafka read %s: %v", k.opts.Topic, err)
				continue
			}

			event := &VenueEvent{}
			if err := json.Unmarshal(msg.Value, event); err != nil {
				logrus.Warnf("dropping malformed venue event at %v: %v", msg.TopicPartition, err)
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (k *KafkaVenueQueue) Close() error {
	k.producer.Flush(int((5 * time.Second).Milliseconds()))
	k.producer.Close()
	return nil
}
