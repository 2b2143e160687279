package system

import (
	"fmt"

	"github.com/milk9111/cluehunt/ecs"
)

const (
	defaultNoticeTTL = 180
	maxNotices       = 6
)

type notice struct {
	text string
	ttl  int
}

// NoticeSystem drains the world event queue into short-lived on-screen
// notices. It must run last so it sees everything pushed during the tick.
type NoticeSystem struct {
	ttl     int
	notices []notice

	// OnEvent sees every drained event.
	OnEvent func(ecs.Event)
}

func NewNoticeSystem() *NoticeSystem {
	return &NoticeSystem{ttl: defaultNoticeTTL}
}

func (s *NoticeSystem) Update(w *ecs.World) {
	live := s.notices[:0]
	for _, n := range s.notices {
		n.ttl--
		if n.ttl > 0 {
			live = append(live, n)
		}
	}
	s.notices = live

	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if s.OnEvent != nil {
			s.OnEvent(evt)
		}
		if text := noticeText(evt); text != "" {
			s.notices = append(s.notices, notice{text: text, ttl: s.ttl})
		}
	}
	if over := len(s.notices) - maxNotices; over > 0 {
		s.notices = append([]notice(nil), s.notices[over:]...)
	}
}

// Notices returns live notice texts, oldest first.
func (s *NoticeSystem) Notices() []string {
	out := make([]string, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, n.text)
	}
	return out
}

func noticeText(evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventClueSolved:
		return fmt.Sprintf("clue solved: %v", evt.Data)
	case ecs.EventCluesDone:
		return "all clues solved"
	case ecs.EventCluesReset:
		return "clue progress reset"
	case ecs.EventModeChanged:
		return fmt.Sprintf("input: %v", evt.Data)
	case ecs.EventPrefabReload:
		return fmt.Sprintf("reloaded %v", evt.Data)
	case ecs.EventScenarioRun:
		if s, ok := evt.Data.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", evt.Data)
	default:
		return ""
	}
}
