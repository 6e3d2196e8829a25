// Package circuitbreaker 熔断器
//
// 三种状态：
//   - CLOSED：请求正常通过，统计失败次数
//   - OPEN：快速失败，不调用下游；Timeout之后转为HALF_OPEN
//   - HALF_OPEN：放行少量探测请求，成功则CLOSED，失败则回到OPEN
//
// 目录服务用它包住Redis缓存调用：Redis不可用时直接按未命中处理，
// 请求不再为每次缓存访问等待超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/baitboost/catalog/pkg/metrics"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大请求数
	MaxRequests uint32

	// Interval CLOSED状态的统计窗口，到期后计数清零
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// ReadyToTrip 判断是否应该打开熔断器，为nil时连续失败5次熔断
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断err是否算作成功，为nil时只有err==nil算成功
	// 缓存场景下"key不存在"不应计为失败
	IsSuccessful func(err error) bool
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	}
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 计算失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// Reset 重置统计
func (c *Counts) Reset() {
	*c = Counts{}
}

// Requests已经在beforeRequest中递增，这里不再重复
func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(counts Counts) bool
	isSuccessful  func(err error) bool
	onStateChange func(name string, from State, to State)

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃切换前发出的请求结果
	counts     Counts
	expiry     time.Time
}

// ErrOpenState 熔断器打开错误
var ErrOpenState = errors.New("circuit breaker is open")

// NewCircuitBreaker 创建熔断器，零值配置项使用DefaultConfig中的值
//
//	cb := NewCircuitBreaker("redis-cache", Config{
//	    Timeout: 10 * time.Second,
//	    IsSuccessful: func(err error) bool {
//	        return err == nil || errors.Is(err, redis.Nil)
//	    },
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	def := DefaultConfig()
	if config.MaxRequests == 0 {
		config.MaxRequests = def.MaxRequests
	}
	if config.Interval <= 0 {
		config.Interval = def.Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.ReadyToTrip == nil {
		config.ReadyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		}
	}
	if config.IsSuccessful == nil {
		config.IsSuccessful = func(err error) bool { return err == nil }
	}

	cb := &CircuitBreaker{
		name:          name,
		maxRequests:   config.MaxRequests,
		interval:      config.Interval,
		timeout:       config.Timeout,
		readyToTrip:   config.ReadyToTrip,
		isSuccessful:  config.IsSuccessful,
		onStateChange: func(string, State, State) {},
		state:         StateClosed,
		expiry:        time.Now().Add(config.Interval),
	}
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(StateClosed))
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// SetStateChangeCallback 设置状态变化回调（记录日志、告警）
// Prometheus状态指标总会更新，不依赖回调
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if fn == nil {
		fn = func(string, State, State) {}
	}
	cb.onStateChange = fn
}

// Execute 执行请求
// 熔断器打开时返回ErrOpenState，否则返回req的错误
//
//	err := cb.Execute(func() error {
//	    return rdb.Get(ctx, key).Err()
//	})
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": cb.name, "result": "rejected"})
		return err
	}

	err = req()

	success := cb.isSuccessful(err)
	cb.afterRequest(generation, success)

	result := "success"
	if !success {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": cb.name, "result": result})

	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(time.Now())

	if state == StateOpen {
		return generation, ErrOpenState
	} else if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.Reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.Reset()

	switch state {
	case StateClosed:
		cb.expiry = now.Add(cb.interval)
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": cb.name}, float64(state))
	cb.onStateChange(cb.name, prev, state)
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
