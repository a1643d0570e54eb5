package webhookpubsub

import "sync"

// webhookStore keeps the registered hooks indexed by id and by action.
// Subscriptions are runtime state, so a locker-guarded map per bucket is
// enough.
type webhookStore struct {
	lock          sync.Mutex
	hooks         map[string]*Webhook
	hooksByAction map[WebhookAction][]*Webhook
}

func newWebhookStore() *webhookStore {
	return &webhookStore{
		hooks:         make(map[string]*Webhook),
		hooksByAction: make(map[WebhookAction][]*Webhook),
	}
}

// add stores the hook, preventing overwrites/duplications of ids.
func (s *webhookStore) add(hook *Webhook) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.hooks[hook.ID]; ok {
		return
	}
	s.hooks[hook.ID] = hook
	s.hooksByAction[hook.ActionType] = append(s.hooksByAction[hook.ActionType], hook)
}

// remove drops the hook identified by id. Nothing is done in case the hook
// does not actually exist in the store.
func (s *webhookStore) remove(hookID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	hook, ok := s.hooks[hookID]
	if !ok {
		return
	}
	delete(s.hooks, hookID)

	hooks := s.hooksByAction[hook.ActionType]
	for i, h := range hooks {
		if h.ID == hookID {
			s.hooksByAction[hook.ActionType] = append(hooks[:i], hooks[i+1:]...)
			break
		}
	}
}

func (s *webhookStore) listForAction(actionType WebhookAction) []*Webhook {
	s.lock.Lock()
	defer s.lock.Unlock()

	hooks := append([]*Webhook(nil), s.hooksByAction[actionType]...)
	if actionType != AllActions {
		hooks = append(hooks, s.hooksByAction[AllActions]...)
	}
	return hooks
}
