package events

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Publisher - публикация событий для подписчиков (обновление канбана, аналитика)
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

var Instance Publisher = noop{}

// StageChanged - событие о переводе кандидата на другой этап
type StageChanged struct {
	Type        string `json:"type"`
	SpaceID     string `json:"spaceId"`
	CandidateID string `json:"candidateId"`
	JobID       string `json:"jobId"`
	From        string `json:"from"`
	To          string `json:"to"`
	UserID      string `json:"userId"`
}

// Connect подключает публикацию через redis, пустой url - события не публикуются
func Connect(ctx context.Context, redisURL string) error {
	if redisURL == "" {
		log.Warn("redis не настроен, события о смене этапа не публикуются")
		Instance = noop{}
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return errors.Wrap(err, "ошибка разбора адреса redis")
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis недоступен")
	}
	Instance = NewRedisPublisher(client)
	log.Info("Сервис успешно подключен к redis")
	return nil
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisImpl{
		client: client,
	}
}

type redisImpl struct {
	client *redis.Client
}

func (i redisImpl) Publish(ctx context.Context, channel string, payload interface{}) error {
	body, err := encode(payload)
	if err != nil {
		return err
	}
	return i.client.Publish(ctx, channel, body).Err()
}

func encode(payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации события")
	}
	return body, nil
}

type noop struct{}

func (noop) Publish(ctx context.Context, channel string, payload interface{}) error {
	return nil
}
