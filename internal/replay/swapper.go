package replay

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/sway"
)

// UnmatchedPolicy decides what happens to a new window that matches no
// pending placeholder.
type UnmatchedPolicy string

const (
	// UnmatchedFloating forces unmatched windows into floating
	// placement so they do not disturb the reconstructed tiling.
	UnmatchedFloating UnmatchedPolicy = "floating"
	// UnmatchedLeave leaves unmatched windows wherever the WM puts them.
	UnmatchedLeave UnmatchedPolicy = "leave"
)

// Swapper reconciles arriving and pre-existing real windows against the
// pending placeholders. It terminates only when the registry empties;
// a prematurely-ended event stream is an I/O failure, never completion.
type Swapper struct {
	conn     Conn
	events   Events
	registry *Registry
	policy   UnmatchedPolicy
	log      *zap.Logger
}

func NewSwapper(conn Conn, events Events, registry *Registry, policy UnmatchedPolicy, log *zap.Logger) *Swapper {
	return &Swapper{
		conn:     conn,
		events:   events,
		registry: registry,
		policy:   policy,
		log:      log,
	}
}

// Run first resolves the day-zero candidates gathered before replay,
// then consumes the event stream until every placeholder has been
// swapped or cancelled.
func (s *Swapper) Run(candidates []*layout.Node) error {
	for _, c := range candidates {
		id, ok := s.registry.Consume(c)
		if !ok {
			continue
		}
		if err := s.swap(id, c.ID); err != nil {
			return err
		}
	}
	if s.registry.Empty() {
		return nil
	}

	for {
		ev, err := s.events.Next()
		if err != nil {
			return err
		}
		switch ev.Change {
		case sway.WindowClose:
			if !isPlaceholder(&ev.Container) {
				continue
			}
			// A placeholder died before being swallowed (crashed spawn,
			// user closed it). Cancel its entry so completion is still
			// reachable.
			if s.registry.Remove(ev.Container.ID) {
				s.log.Debug("placeholder closed unmatched", zap.Int64("id", ev.Container.ID))
			}
			if s.registry.Empty() {
				return nil
			}
		case sway.WindowNew:
			id, ok := s.registry.Consume(&ev.Container)
			if !ok {
				if s.policy == UnmatchedFloating {
					if err := s.run(fmt.Sprintf("[con_id=%d] floating enable", ev.Container.ID)); err != nil {
						return err
					}
				}
				continue
			}
			if err := s.swap(id, ev.Container.ID); err != nil {
				return err
			}
			if s.registry.Empty() {
				return nil
			}
		}
	}
}

func (s *Swapper) run(cmd string) error {
	s.log.Debug("run command", zap.String("cmd", cmd))
	return s.conn.RunCommand(cmd)
}

// swap transplants the real window into the placeholder's tree position
// and destroys the placeholder.
func (s *Swapper) swap(placeholder, window int64) error {
	s.log.Debug("swap window",
		zap.Int64("placeholder", placeholder),
		zap.Int64("window", window))
	if err := s.run(fmt.Sprintf("[con_id=%d] swap container with con_id %d", placeholder, window)); err != nil {
		return err
	}
	return s.run(fmt.Sprintf("[con_id=%d] kill", placeholder))
}
