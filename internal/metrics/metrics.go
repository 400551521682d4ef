// Package metrics records setup generation and table activity.
package metrics

// Recorder receives instrumentation events.
type Recorder interface {
	SetupGenerated(players int)
	SetupFailed(kind string)
	TableOpened()
	TableClosed()
}

// Failure kinds passed to SetupFailed.
const (
	FailureConfiguration = "configuration"
	FailureInternal      = "internal"
)

// Nop discards everything.
type Nop struct{}

func NewNop() *Nop { return &Nop{} }

func (*Nop) SetupGenerated(int) {}
func (*Nop) SetupFailed(string) {}
func (*Nop) TableOpened()       {}
func (*Nop) TableClosed()       {}

var _ Recorder = (*Nop)(nil)
