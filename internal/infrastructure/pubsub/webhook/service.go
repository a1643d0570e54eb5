package webhookpubsub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/nftex-network/nftex-daemon/internal/core/application"
)

const requestTimeout = 15 * time.Second

type webhookService struct {
	store      *webhookStore
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a pubsub service notifying subscribers
// with a POST request per published message.
func NewWebhookPubSubService() application.PubSubService {
	return &webhookService{
		store:      newWebhookStore(),
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         newCircuitBreaker(),
	}
}

func (ws *webhookService) Subscribe(topic string, args ...interface{}) (string, error) {
	actionType, ok := stringToAction[topic]
	if !ok {
		return "", ErrInvalidTopic
	}
	if len(args) != 2 {
		return "", ErrInvalidArgs
	}
	endpoint, ok := args[0].(string)
	if !ok {
		return "", ErrInvalidArgType
	}
	secret, ok := args[1].(string)
	if !ok {
		return "", ErrInvalidArgType
	}

	hook, err := NewWebhook(actionType, endpoint, secret)
	if err != nil {
		return "", err
	}

	ws.store.add(hook)
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(_, id string) error {
	ws.store.remove(id)
	return nil
}

func (ws *webhookService) ListSubscriptionsForTopic(topic string) []application.Subscription {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return nil
	}
	hooks := ws.store.listForAction(actionType)
	subs := make([]application.Subscription, len(hooks))
	for i, h := range hooks {
		subs[i] = h
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for the
// topic. It adopts a circuit breaker approach in order to maximize the
// chances that every webhook gets invoked without errors.
func (ws *webhookService) Publish(topic string, message string) error {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return ErrUnknownWebhookAction
	}
	hooks := ws.store.listForAction(actionType)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) TopicsByLabel() map[string]application.Topic {
	topics := make(map[string]application.Topic)
	for label, action := range stringToAction {
		topics[label] = action
	}
	return topics
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			secret := []byte(hook.Secret)
			tokenString, _ := token.SignedString(secret)
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.post(hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook replied with status %d: %s", status, resp)
		}
		return nil, nil
	})

	return err
}

func (ws *webhookService) post(
	endpoint, payload string, headers map[string]string,
) (int, string, error) {
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode, string(buf), nil
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "webhook",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn("webhook subscribers seem down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info("checking webhook subscribers status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info("webhook subscribers seem ok, restart allowing requests")
			}
		},
	})
}
