package events

import (
	evbus "github.com/asaskevich/EventBus"
)

// Topic names for the underlying bus. Callers never see these; the
// typed Publish/Subscribe methods are the only way on or off the bus.
const (
	topicAPIError         = "api:error"
	topicRateLimitWarning = "api:rate_limit_warning"
	topicUserLogin        = "auth:user_login"
	topicUserLogout       = "auth:user_logout"
	topicConnectivity     = "system:connectivity"
)

// Bus delivers typed events synchronously to subscribers in registration
// order, in the publisher's goroutine. Construct one per process and
// inject it; there is no package-level instance.
type Bus struct {
	bus evbus.Bus
}

// NewBus creates an empty synchronous bus.
func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

// PublishAPIError delivers ev to all APIError subscribers.
func (b *Bus) PublishAPIError(ev APIErrorEvent) {
	b.bus.Publish(topicAPIError, ev)
}

// SubscribeAPIError registers fn for APIError events. The same fn value
// must be passed to UnsubscribeAPIError.
func (b *Bus) SubscribeAPIError(fn func(APIErrorEvent)) error {
	return b.bus.Subscribe(topicAPIError, fn)
}

// UnsubscribeAPIError removes a previously registered handler.
func (b *Bus) UnsubscribeAPIError(fn func(APIErrorEvent)) error {
	return b.bus.Unsubscribe(topicAPIError, fn)
}

// PublishRateLimitWarning delivers ev to all RateLimitWarning subscribers.
func (b *Bus) PublishRateLimitWarning(ev RateLimitWarningEvent) {
	b.bus.Publish(topicRateLimitWarning, ev)
}

// SubscribeRateLimitWarning registers fn for RateLimitWarning events.
func (b *Bus) SubscribeRateLimitWarning(fn func(RateLimitWarningEvent)) error {
	return b.bus.Subscribe(topicRateLimitWarning, fn)
}

// UnsubscribeRateLimitWarning removes a previously registered handler.
func (b *Bus) UnsubscribeRateLimitWarning(fn func(RateLimitWarningEvent)) error {
	return b.bus.Unsubscribe(topicRateLimitWarning, fn)
}

// PublishUserLogin delivers ev to all UserLogin subscribers.
func (b *Bus) PublishUserLogin(ev UserLoginEvent) {
	b.bus.Publish(topicUserLogin, ev)
}

// SubscribeUserLogin registers fn for UserLogin events.
func (b *Bus) SubscribeUserLogin(fn func(UserLoginEvent)) error {
	return b.bus.Subscribe(topicUserLogin, fn)
}

// UnsubscribeUserLogin removes a previously registered handler.
func (b *Bus) UnsubscribeUserLogin(fn func(UserLoginEvent)) error {
	return b.bus.Unsubscribe(topicUserLogin, fn)
}

// PublishUserLogout delivers ev to all UserLogout subscribers.
func (b *Bus) PublishUserLogout(ev UserLogoutEvent) {
	b.bus.Publish(topicUserLogout, ev)
}

// SubscribeUserLogout registers fn for UserLogout events.
func (b *Bus) SubscribeUserLogout(fn func(UserLogoutEvent)) error {
	return b.bus.Subscribe(topicUserLogout, fn)
}

// UnsubscribeUserLogout removes a previously registered handler.
func (b *Bus) UnsubscribeUserLogout(fn func(UserLogoutEvent)) error {
	return b.bus.Unsubscribe(topicUserLogout, fn)
}

// PublishConnectivity delivers ev to all Connectivity subscribers.
func (b *Bus) PublishConnectivity(ev ConnectivityEvent) {
	b.bus.Publish(topicConnectivity, ev)
}

// SubscribeConnectivity registers fn for Connectivity events.
func (b *Bus) SubscribeConnectivity(fn func(ConnectivityEvent)) error {
	return b.bus.Subscribe(topicConnectivity, fn)
}

// UnsubscribeConnectivity removes a previously registered handler.
func (b *Bus) UnsubscribeConnectivity(fn func(ConnectivityEvent)) error {
	return b.bus.Unsubscribe(topicConnectivity, fn)
}
