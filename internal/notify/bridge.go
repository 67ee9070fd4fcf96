package notify

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"lycosidae/internal/events"
	"lycosidae/pkg/apierrors"
)

// Quota thresholds for rate-limit warnings.
const (
	quotaCritical = 2
	quotaWarning  = 5
)

// Bridge subscribes to the event bus and turns failure, quota and
// connectivity events into user notifications. Errors with statuses 400
// and 409 are suppressed here: forms surface those inline, a global
// toast on top would be noise.
type Bridge struct {
	bus    *events.Bus
	sink   Sink
	logger *slog.Logger

	// Handler values are retained so Stop can unsubscribe the exact
	// functions Start registered.
	onAPIError     func(events.APIErrorEvent)
	onRateLimit    func(events.RateLimitWarningEvent)
	onConnectivity func(events.ConnectivityEvent)

	mu      sync.Mutex
	started bool
}

// BridgeOption configures the Bridge.
type BridgeOption func(*Bridge)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// NewBridge constructs a stopped bridge. Call Start to attach it to the
// bus.
func NewBridge(bus *events.Bus, sink Sink, opts ...BridgeOption) *Bridge {
	b := &Bridge{bus: bus, sink: sink}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.onAPIError = b.handleAPIError
	b.onRateLimit = b.handleRateLimit
	b.onConnectivity = b.handleConnectivity
	return b
}

// Start subscribes the bridge to the bus. Starting twice is an error.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return fmt.Errorf("notification bridge already started")
	}
	if err := b.bus.SubscribeAPIError(b.onAPIError); err != nil {
		return fmt.Errorf("subscribe api errors: %w", err)
	}
	if err := b.bus.SubscribeRateLimitWarning(b.onRateLimit); err != nil {
		return fmt.Errorf("subscribe rate limit warnings: %w", err)
	}
	if err := b.bus.SubscribeConnectivity(b.onConnectivity); err != nil {
		return fmt.Errorf("subscribe connectivity: %w", err)
	}
	b.started = true
	return nil
}

// Stop detaches the bridge from the bus. Stopping a stopped bridge is a
// no-op, so shutdown paths can call it unconditionally.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return
	}
	if err := b.bus.UnsubscribeAPIError(b.onAPIError); err != nil {
		b.logger.Warn("unsubscribe api errors", "error", err)
	}
	if err := b.bus.UnsubscribeRateLimitWarning(b.onRateLimit); err != nil {
		b.logger.Warn("unsubscribe rate limit warnings", "error", err)
	}
	if err := b.bus.UnsubscribeConnectivity(b.onConnectivity); err != nil {
		b.logger.Warn("unsubscribe connectivity", "error", err)
	}
	b.started = false
}

func (b *Bridge) handleAPIError(ev events.APIErrorEvent) {
	if ev.Err == nil {
		return
	}
	switch ev.Err.Status {
	case http.StatusBadRequest, http.StatusConflict:
		b.logger.Debug("suppressed api error notification", "status", ev.Err.Status, "endpoint", ev.Endpoint)
		return
	}

	n := Notification{
		Kind:        KindAPIError,
		Title:       "Erro na API",
		Description: ev.Err.Message,
		Severity:    SeverityCritical,
		Duration:    durationDefault,
	}

	switch ev.Err.Status {
	case http.StatusUnauthorized:
		n.Title = "Não autorizado"
		n.Description = "Sua sessão expirou ou você não está autenticado."
	case http.StatusForbidden:
		n.Title = "Acesso negado"
		n.Description = "Você não tem permissão para realizar esta ação."
	case http.StatusNotFound:
		n.Title = "Não encontrado"
		n.Description = "O recurso solicitado não foi encontrado."
	case http.StatusTooManyRequests:
		retryAfter := 60
		if ev.Err.RateLimit != nil && ev.Err.RateLimit.RetryAfter > 0 {
			retryAfter = ev.Err.RateLimit.RetryAfter
		}
		n.Title = "Limite de requisições excedido"
		n.Description = fmt.Sprintf("Aguarde %ds antes de tentar novamente.", retryAfter)
		n.Duration = durationRateLimited
	case http.StatusInternalServerError:
		n.Title = "Erro do servidor"
		n.Description = "Problema interno do servidor. Tente novamente mais tarde."
	case http.StatusServiceUnavailable:
		n.Title = "Serviço indisponível"
		n.Description = "O servidor está temporariamente indisponível."
	default:
		if n.Description == "" {
			n.Description = fmt.Sprintf("Falha na requisição para %s", ev.Endpoint)
		}
	}

	b.sink.Show(n)
}

func (b *Bridge) handleRateLimit(ev events.RateLimitWarningEvent) {
	n := Notification{
		Kind:        KindRateLimit,
		Title:       "Atenção ao limite de requisições",
		Description: fmt.Sprintf("Restam %d de %d requisições.", ev.Remaining, ev.Limit),
		Severity:    SeverityWarning,
		Duration:    durationQuotaWarning,
	}
	if ev.Remaining <= quotaCritical {
		n.Title = "Limite de requisições quase esgotado"
		n.Description = fmt.Sprintf("Apenas %d de %d requisições restantes. Use com moderação.", ev.Remaining, ev.Limit)
		n.Severity = SeverityCritical
		n.Duration = durationQuotaCritical
	}
	b.sink.Show(n)
}

func (b *Bridge) handleConnectivity(ev events.ConnectivityEvent) {
	if ev.Online {
		b.sink.Show(Notification{
			Kind:        KindConnectivity,
			Title:       "Conexão restaurada",
			Description: "Você está online novamente.",
			Severity:    SeverityInfo,
			Duration:    durationBackOnline,
		})
		return
	}
	// Offline stays on screen until connectivity comes back.
	b.sink.Show(Notification{
		Kind:        KindConnectivity,
		Title:       "Sem conexão",
		Description: "Você está offline. Algumas funcionalidades podem não funcionar.",
		Severity:    SeverityCritical,
		Duration:    durationPersistent,
	})
}

// ShowMaintenance announces scheduled maintenance. The message persists
// until dismissed.
func (b *Bridge) ShowMaintenance(message string) {
	if message == "" {
		message = "O sistema está em manutenção. Tente novamente mais tarde."
	}
	b.sink.Show(Notification{
		Kind:        KindMaintenance,
		Title:       "Sistema em manutenção",
		Description: message,
		Severity:    SeverityWarning,
		Duration:    durationPersistent,
	})
}

// ShowRateLimitStatus surfaces the current quota accounting on demand,
// for example after an explicit status query.
func (b *Bridge) ShowRateLimitStatus(info apierrors.RateLimitInfo) {
	b.sink.Show(Notification{
		Kind:        KindRateLimit,
		Title:       "Status do rate limit",
		Description: fmt.Sprintf("%d de %d requisições disponíveis.", info.Remaining, info.Limit),
		Severity:    SeverityInfo,
		Duration:    durationDefault,
	})
}
