package kafka

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	likesConsumer sarama.ConsumerGroup
	likesHandler  sarama.ConsumerGroupHandler

	followsConsumer sarama.ConsumerGroup
	followsHandler  sarama.ConsumerGroupHandler

	commentsConsumer sarama.ConsumerGroup
	commentsHandler  sarama.ConsumerGroupHandler

	postsConsumer sarama.ConsumerGroup
	postsHandler  sarama.ConsumerGroupHandler

	usersConsumer sarama.ConsumerGroup
	usersHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	userDBRepo repository.UserRepo,
	postESRepo es.PostRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikes.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	likesHandler := NewLikesHandler()

	followsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaFollows.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	followsHandler := NewFollowsHandler()

	commentsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaComments.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	commentsHandler := NewCommentsHandler()

	postsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPosts.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	postsHandler := NewPostsHandler(userDBRepo, postESRepo)

	usersConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaUsers.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	usersHandler := NewUsersHandler(postESRepo)

	return &ConsumerManager{
		likesConsumer:    likesConsumer,
		likesHandler:     likesHandler,
		followsConsumer:  followsConsumer,
		followsHandler:   followsHandler,
		commentsConsumer: commentsConsumer,
		commentsHandler:  commentsHandler,
		postsConsumer:    postsConsumer,
		postsHandler:     postsHandler,
		usersConsumer:    usersConsumer,
		usersHandler:     usersHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Like Consumer
	go func() {
		topic := cfg.KafkaLikes.Topic
		log.Info("Like consumer started", "topic", topic)
		for {
			if err := m.likesConsumer.Consume(ctx, []string{topic}, m.likesHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Follow Consumer
	go func() {
		topic := cfg.KafkaFollows.Topic
		log.Info("Follow consumer started", "topic", topic)
		for {
			if err := m.followsConsumer.Consume(ctx, []string{topic}, m.followsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Comment Consumer
	go func() {
		topic := cfg.KafkaComments.Topic
		log.Info("Comment consumer started", "topic", topic)
		for {
			if err := m.commentsConsumer.Consume(ctx, []string{topic}, m.commentsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Post Consumer
	go func() {
		topic := cfg.KafkaPosts.Topic
		log.Info("Post consumer started", "topic", topic)
		for {
			if err := m.postsConsumer.Consume(ctx, []string{topic}, m.postsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 User Consumer
	go func() {
		topic := cfg.KafkaUsers.Topic
		log.Info("User consumer started", "topic", topic)
		for {
			if err := m.usersConsumer.Consume(ctx, []string{topic}, m.usersHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	for _, consumer := range []sarama.ConsumerGroup{
		m.likesConsumer, m.followsConsumer, m.commentsConsumer, m.postsConsumer, m.usersConsumer,
	} {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close consumer", "err", err)
		}
	}

	return nil
}
