package backtrack

import "time"

// TimeProvider supplies the clock used to timestamp snapshots.
// Inject a MockTimeProvider to make snapshot timestamps deterministic.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// NowMillis returns the current time as Unix milliseconds.
	NowMillis() int64
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// NowMillis returns the current system time in Unix milliseconds.
func (p *DefaultTimeProvider) NowMillis() int64 {
	return p.Now().UnixMilli()
}

// MockTimeProvider is a TimeProvider that returns a fixed time.
// Useful for testing time-dependent functionality.
type MockTimeProvider struct {
	fixedTime time.Time
}

// NewMockTimeProvider creates a MockTimeProvider with the given fixed time.
func NewMockTimeProvider(t time.Time) *MockTimeProvider {
	return &MockTimeProvider{fixedTime: t}
}

// SetTime updates the fixed time returned by Now().
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.fixedTime = t
}

// Advance moves the fixed time forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.fixedTime = m.fixedTime.Add(d)
}

// Now returns the fixed time.
func (m *MockTimeProvider) Now() time.Time {
	return m.fixedTime
}

// NowMillis returns the fixed time in Unix milliseconds.
func (m *MockTimeProvider) NowMillis() int64 {
	return m.fixedTime.UnixMilli()
}

// Compile-time checks.
var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)
